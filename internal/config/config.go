package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// Platform wallet service (custodial transfers run through it).
	WalletBaseURL     string
	WalletBotID       string
	WalletTimeoutSecs int
	MinTransfer       int64

	FeeFlat int64 // default origination fee when a request omits one

	SweepIntervalSecs int // overdue-loan sweep period; 0 disables the scheduler
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "creditpool"),
		MySQLUser: getenv("MYSQL_USER", "creditpool"),
		MySQLPass: getenv("MYSQL_PASS", "creditpool"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getint("REDIS_DB", 0),
		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		WalletBaseURL:     getenv("WALLET_BASE_URL", "http://wallet:9090"),
		WalletBotID:       getenv("WALLET_BOT_ID", ""),
		WalletTimeoutSecs: getint("WALLET_TIMEOUT_SECONDS", 10),
		MinTransfer:       int64(getint("MIN_TRANSFER", 1000)),

		FeeFlat: int64(getint("LOAN_FEE_FLAT", 5000)),

		SweepIntervalSecs: getint("SWEEP_INTERVAL_SECONDS", 3600),
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.WalletBaseURL == "" {
		return errors.New("missing WALLET_BASE_URL")
	}
	if c.WalletBotID == "" {
		return errors.New("missing WALLET_BOT_ID")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
