package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"app/internal/config"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SweepHandlerは外部スケジューラからの回収トリガー。
// 共有シークレットの完全一致だけで認証する。
type SweepHandler struct {
	sweeper *usecase.SweeperUsecase
	secret  string
}

func NewSweepHandler(sweeper *usecase.SweeperUsecase, secret string) *SweepHandler {
	return &SweepHandler{sweeper: sweeper, secret: secret}
}

type SweepResponse struct {
	CancelledCount int       `json:"cancelled_count"`
	Timestamp      time.Time `json:"timestamp"`
}

func (h *SweepHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/internal/sweep-expired", h.sweep)
}

func (h *SweepHandler) sweep(c echo.Context) error {
	got := c.Request().Header.Get("X-Sweep-Secret")
	if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	count, err := h.sweeper.SweepExpiredOrders(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SweepResponse{
		CancelledCount: count,
		Timestamp:      time.Now(),
	})
}
