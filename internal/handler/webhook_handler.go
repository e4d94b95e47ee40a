package handler

import (
	"log"
	"net/http"

	"app/internal/config"
	"app/internal/gateway"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// WebhookHandlerはゲートウェイ通知の受け口。
// 署名以外の失敗で非2xxを返すとゲートウェイが無限再送するので、
// 署名NG（401）以外は常に200を返す。
type WebhookHandler struct {
	paymentUC *usecase.PaymentUsecase
	secret    string
}

func NewWebhookHandler(paymentUC *usecase.PaymentUsecase, secret string) *WebhookHandler {
	return &WebhookHandler{paymentUC: paymentUC, secret: secret}
}

type WebhookRequest struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type WebhookResponse struct {
	Status string `json:"status"`
}

func (h *WebhookHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/webhooks/payment", h.receive)
}

func (h *WebhookHandler) receive(c echo.Context) error {
	var req WebhookRequest
	if err := c.Bind(&req); err != nil {
		//不明なペイロードは受理して無視
		return c.JSON(http.StatusOK, WebhookResponse{Status: "ignored"})
	}

	//payment以外の通知は対象外
	if req.Type != "payment" || req.Data.ID == "" {
		return c.JSON(http.StatusOK, WebhookResponse{Status: "ignored"})
	}

	//署名検証だけは状態変更の前に行い、NGなら拒否してよい
	sig := c.Request().Header.Get("x-signature")
	requestID := c.Request().Header.Get("x-request-id")
	if err := gateway.VerifyWebhookSignature(sig, requestID, req.Data.ID, h.secret); err != nil {
		log.Printf("webhook: signature rejected for payment %s: %v", req.Data.ID, err)
		return writeError(c, usecase.NewSecurityError("invalid signature"))
	}

	if err := h.paymentUC.ProcessNotification(c.Request().Context(), req.Data.ID); err != nil {
		//処理失敗でも200。ゲートウェイの再送に任せる。
		log.Printf("webhook: processing failed for payment %s: %v", req.Data.ID, err)
	}

	return c.JSON(http.StatusOK, WebhookResponse{Status: "ok"})
}
