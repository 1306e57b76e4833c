package http

import "github.com/labstack/echo/v4"

// RegisterRoutes wires every exposed ledger operation. The caller
// decides which middleware (idempotency, logging) wraps the group.
func RegisterRoutes(e *echo.Echo, h *Handler, loans *LoanHandler, custody *CustodyHandler, pools *PoolHandler, mw ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health)

	api := e.Group("", mw...)

	api.POST("/users", custody.RegisterUser)
	api.GET("/users/:user_id", custody.GetUser)
	api.GET("/users/:user_id/loan", loans.ActiveLoan)
	api.GET("/users/:user_id/transactions", custody.History)

	api.POST("/loans", loans.CreateLoan)
	api.GET("/loans/pending", loans.ListPending)
	api.GET("/loans/:loan_id", loans.GetLoan)
	api.POST("/loans/:loan_id/fund", loans.FundLoan)
	api.POST("/loans/:loan_id/repay", loans.RepayLoan)
	api.POST("/loans/sweep-overdue", loans.SweepOverdue)

	api.POST("/deposits", custody.Deposit)
	api.POST("/withdrawals", custody.Withdraw)
	api.GET("/pool", pools.Snapshot)

	// webhooks come from the platform, not users; no idempotency
	// headers to enforce (the external tx id dedups)
	e.POST("/webhooks/deposit", custody.DepositWebhook)
}
