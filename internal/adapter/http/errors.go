package http

import (
	"errors"
	"net/http"

	"creditpool/internal/domain/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps ledger error kinds onto HTTP statuses. Gateway
// failures are the only retryable kind; the payload says so.
func writeError(c echo.Context, err error) error {
	var (
		ve *errs.ValidationError
		nf *errs.NotFoundError
		sc *errs.StateConflictError
		ib *errs.InsufficientBalanceError
		gt *errs.GatewayTransferError
	)
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Error()})
	case errors.As(err, &nf):
		return c.JSON(http.StatusNotFound, map[string]string{"error": nf.Error()})
	case errors.As(err, &sc):
		return c.JSON(http.StatusConflict, map[string]string{"error": sc.Error()})
	case errors.As(err, &ib):
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"error":     ib.Error(),
			"required":  ib.Required,
			"available": ib.Available,
		})
	case errors.As(err, &gt):
		return c.JSON(http.StatusBadGateway, map[string]any{
			"error":     gt.Error(),
			"retryable": true,
		})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
