package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"

	httpadp "creditpool/internal/adapter/http"
	"creditpool/internal/adapter/middleware"
	"creditpool/internal/adapter/repository/mysql"
	"creditpool/internal/adapter/scheduler"
	"creditpool/internal/adapter/wallet"
	"creditpool/internal/config"
	"creditpool/internal/domain/loan"
	"creditpool/internal/domain/transaction"
	"creditpool/internal/domain/user"
	"creditpool/internal/infrastructure/cache"
	"creditpool/internal/infrastructure/db"
	"creditpool/internal/usecase/ledger"
	pooluc "creditpool/internal/usecase/pool"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := gdb.AutoMigrate(&user.User{}, &loan.Loan{}, &transaction.Transaction{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	users := mysql.NewUserRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	txs := mysql.NewTransactionRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	gw := wallet.NewClient(
		cfg.WalletBaseURL,
		cfg.WalletBotID,
		decimal.NewFromInt(cfg.MinTransfer),
		time.Duration(cfg.WalletTimeoutSecs)*time.Second,
	)

	pools := pooluc.NewUsecase(users, loans)

	policy := ledger.DefaultPolicy()
	policy.MinTransfer = decimal.NewFromInt(cfg.MinTransfer)
	uc := ledger.NewUsecase(users, loans, txs, uow, gw, pools, policy)

	h := httpadp.NewHandler()
	loanH := httpadp.NewLoanHandler(uc, decimal.NewFromInt(cfg.FeeFlat))
	custodyH := httpadp.NewCustodyHandler(uc)
	poolH := httpadp.NewPoolHandler(pools)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)
	httpadp.RegisterRoutes(e, h, loanH, custodyH, poolH, idemp)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go scheduler.RunSweeper(ctx, uc, time.Duration(cfg.SweepIntervalSecs)*time.Second)

	go func() {
		addr := ":" + cfg.AppPort
		log.Printf("listening on %s", addr)
		if err := e.Start(addr); err != nil {
			log.Printf("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
