package http

import (
	"net/http"

	"creditpool/internal/domain/transaction"
	"creditpool/internal/usecase/ledger"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type CustodyHandler struct{ uc *ledger.Usecase }

func NewCustodyHandler(uc *ledger.Usecase) *CustodyHandler { return &CustodyHandler{uc: uc} }

type registerUserReq struct {
	PlatformID string `json:"platform_id" validate:"required"`
	Username   string `json:"username"`
}

// RegisterUser is find-or-create: reposting the same platform id returns
// the existing account.
func (h *CustodyHandler) RegisterUser(c echo.Context) error {
	var req registerUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.FindOrCreateUser(c.Request().Context(), req.PlatformID, req.Username)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CustodyHandler) GetUser(c echo.Context) error {
	dto, err := h.uc.GetUser(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type moveFundsReq struct {
	UserID string          `json:"user_id" validate:"required,hex32"`
	Amount decimal.Decimal `json:"amount"`
}

func (h *CustodyHandler) Deposit(c echo.Context) error {
	var req moveFundsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Deposit(c.Request().Context(), ledger.DepositInput{
		UserID: req.UserID,
		Amount: req.Amount,
		Source: transaction.SourceManual,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *CustodyHandler) Withdraw(c echo.Context) error {
	var req moveFundsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Withdraw(c.Request().Context(), ledger.WithdrawInput{
		UserID: req.UserID,
		Amount: req.Amount,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *CustodyHandler) History(c echo.Context) error {
	out, err := h.uc.TransactionHistory(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type depositWebhookReq struct {
	TransactionID string          `json:"transaction_id"`
	UserID        string          `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
}

// DepositWebhook ingests platform deposit notifications. Redeliveries of
// the same external transaction id return 200 with the original record.
func (h *CustodyHandler) DepositWebhook(c echo.Context) error {
	var req depositWebhookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.RecordDepositWebhook(c.Request().Context(), ledger.WebhookDeposit{
		ExternalTxID: req.TransactionID,
		PlatformID:   req.UserID,
		Amount:       req.Amount,
		Status:       req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}
	if dto == nil {
		// non-final status, acknowledged but not recorded
		return c.NoContent(http.StatusAccepted)
	}
	return c.JSON(http.StatusOK, dto)
}
