package http

import (
	"net/http"

	"creditpool/internal/usecase/pool"

	"github.com/labstack/echo/v4"
)

type PoolHandler struct{ uc *pool.Usecase }

func NewPoolHandler(uc *pool.Usecase) *PoolHandler { return &PoolHandler{uc: uc} }

// Snapshot serves the cached projection; pass ?recompute=1 to force a
// rebuild from live data.
func (h *PoolHandler) Snapshot(c echo.Context) error {
	ctx := c.Request().Context()
	if c.QueryParam("recompute") == "1" {
		s, err := h.uc.Recompute(ctx)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, s)
	}
	s, err := h.uc.Snapshot(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}
