package http

import (
	"net/http"

	"creditpool/internal/domain/loan"
	"creditpool/internal/usecase/ledger"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct {
	uc         *ledger.Usecase
	defaultFee decimal.Decimal
}

func NewLoanHandler(uc *ledger.Usecase, defaultFee decimal.Decimal) *LoanHandler {
	return &LoanHandler{uc: uc, defaultFee: defaultFee}
}

type createLoanReq struct {
	BorrowerID        string           `json:"borrower_id" validate:"required,hex32"`
	Principal         decimal.Decimal  `json:"principal"`
	AnnualRatePercent decimal.Decimal  `json:"annual_rate_percent"`
	TermUnit          string           `json:"term_unit" validate:"required,termunit"`
	TermQuantity      int              `json:"term_quantity" validate:"required,gte=1,lte=24"`
	FeeFlat           *decimal.Decimal `json:"fee_flat"` // omitted → platform default
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	fee := h.defaultFee
	if req.FeeFlat != nil {
		fee = *req.FeeFlat
	}
	dto, err := h.uc.CreateLoanRequest(c.Request().Context(), ledger.CreateLoanInput{
		BorrowerID:        req.BorrowerID,
		Principal:         req.Principal,
		AnnualRatePercent: req.AnnualRatePercent,
		TermUnit:          loan.TermUnit(req.TermUnit),
		TermQuantity:      req.TermQuantity,
		FeeFlat:           fee,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.GetLoanByID(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListPending(c echo.Context) error {
	out, err := h.uc.ListPendingLoans(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type fundLoanReq struct {
	LenderID string `json:"lender_id" validate:"required,hex32"`
}

func (h *LoanHandler) FundLoan(c echo.Context) error {
	var req fundLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.FundLoan(c.Request().Context(), ledger.FundLoanInput{
		LoanID:   c.Param("loan_id"),
		LenderID: req.LenderID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type repayLoanReq struct {
	BorrowerID string `json:"borrower_id" validate:"required,hex32"`
}

func (h *LoanHandler) RepayLoan(c echo.Context) error {
	var req repayLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	out, err := h.uc.RepayLoan(c.Request().Context(), ledger.RepayLoanInput{
		LoanID:     c.Param("loan_id"),
		BorrowerID: req.BorrowerID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) ActiveLoan(c echo.Context) error {
	dto, err := h.uc.GetActiveLoanForUser(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) SweepOverdue(c echo.Context) error {
	out, err := h.uc.SweepOverdueLoans(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
