package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"app/internal/gateway"
	"app/internal/usecase"
)

const webhookSecret = "test-webhook-secret"

type stubGateway struct {
	payment gateway.Payment
	err     error
	calls   int
}

func (g *stubGateway) CreatePreference(_ context.Context, _ gateway.PreferenceRequest) (gateway.Preference, error) {
	return gateway.Preference{}, errors.New("not used")
}

func (g *stubGateway) GetPayment(_ context.Context, _ string) (gateway.Payment, error) {
	g.calls++
	if g.err != nil {
		return gateway.Payment{}, g.err
	}
	return g.payment, nil
}

func signWebhook(paymentID, requestID, ts string) string {
	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", paymentID, requestID, ts)
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write([]byte(manifest))
	return fmt.Sprintf("ts=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func postWebhook(t *testing.T, h *WebhookHandler, body, signature, requestID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if signature != "" {
		req.Header.Set("x-signature", signature)
	}
	if requestID != "" {
		req.Header.Set("x-request-id", requestID)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.receive(c))
	return rec
}

func newWebhookHandler(gw gateway.Client) *WebhookHandler {
	//署名NGとゲートウェイ照会失敗の経路はDBに触らない
	uc := usecase.NewPaymentUsecase(nil, nil, nil, gw, "http://front.local", "http://api.local")
	return NewWebhookHandler(uc, webhookSecret)
}

func TestWebhook_GarbageBodyIsAccepted(t *testing.T) {
	gw := &stubGateway{}
	h := newWebhookHandler(gw)

	rec := postWebhook(t, h, "{not json", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ignored")
	assert.Equal(t, 0, gw.calls)
}

func TestWebhook_NonPaymentTypeIsIgnored(t *testing.T) {
	gw := &stubGateway{}
	h := newWebhookHandler(gw)

	rec := postWebhook(t, h, `{"type":"merchant_order","data":{"id":"mo-1"}}`, "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ignored")

	rec = postWebhook(t, h, `{"type":"payment","data":{"id":""}}`, "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ignored")
	assert.Equal(t, 0, gw.calls)
}

func TestWebhook_BadSignatureIsRejected(t *testing.T) {
	gw := &stubGateway{}
	h := newWebhookHandler(gw)
	body := `{"type":"payment","data":{"id":"pay-1"}}`

	//ヘッダなし
	rec := postWebhook(t, h, body, "", "req-1")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	//別の支払いID用の署名を流用
	rec = postWebhook(t, h, body, signWebhook("pay-2", "req-1", "1700000000"), "req-1")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	//検証を通るまで照会しない
	assert.Equal(t, 0, gw.calls)
}

func TestWebhook_ProcessingFailureStillReturns200(t *testing.T) {
	gw := &stubGateway{err: errors.New("gateway timeout")}
	h := newWebhookHandler(gw)
	body := `{"type":"payment","data":{"id":"pay-1"}}`

	rec := postWebhook(t, h, body, signWebhook("pay-1", "req-1", "1700000000"), "req-1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
	assert.Equal(t, 1, gw.calls)
}
