package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc        *usecase.OrderUsecase
	paymentUC *usecase.PaymentUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase, paymentUC *usecase.PaymentUsecase) *OrderHandler {
	return &OrderHandler{uc: uc, paymentUC: paymentUC}
}

type OrderCreateRequest struct {
	ReceiverName    string                   `json:"receiver_name"`
	ReceiverPhone   string                   `json:"receiver_phone"`
	ShippingAddress string                   `json:"shipping_address"`
	AddressID       *int64                   `json:"address_id"`
	PaymentMethod   string                   `json:"payment_method"`
	Lines           []usecase.OrderLineInput `json:"lines"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")

	//作成・受領書・チェックアウトはゲストも通す（注文側の所有チェックはusecase）
	g.POST("", h.create, middleware.OptionalAuthJWT(cfg))
	g.POST("/:id/receipt", h.uploadReceipt, middleware.OptionalAuthJWT(cfg))
	g.POST("/:id/checkout", h.checkout, middleware.OptionalAuthJWT(cfg))

	g.GET("", h.list, middleware.AuthJWT(cfg))
	g.GET("/:id", h.detail, middleware.OptionalAuthJWT(cfg))
	g.POST("/:id/cancel", h.cancel, middleware.AuthJWT(cfg))
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateOrder(c.Request().Context(), getAuthFromContext(c), usecase.CreateOrderInput{
		ReceiverName:    req.ReceiverName,
		ReceiverPhone:   req.ReceiverPhone,
		ShippingAddress: req.ShippingAddress,
		AddressID:       req.AddressID,
		PaymentMethod:   req.PaymentMethod,
		Lines:           req.Lines,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) uploadReceipt(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	fh, err := c.FormFile("receipt")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "receipt file is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid file"})
	}
	defer src.Close()

	out, err := h.uc.UploadReceipt(c.Request().Context(), getAuthFromContext(c), id, fh.Filename, src)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) checkout(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.paymentUC.CreatePreference(c.Request().Context(), getAuthFromContext(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	out, err := h.uc.ListMyOrders(c.Request().Context(), getAuthFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetOrder(c.Request().Context(), getAuthFromContext(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) cancel(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.CancelOrder(c.Request().Context(), getAuthFromContext(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "canceled"})
}
