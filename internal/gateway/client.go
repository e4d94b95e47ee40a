package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PreferenceItemはゲートウェイに渡す明細1行。
type PreferenceItem struct {
	Title     string `json:"title"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

type Payer struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// PreferenceRequestはホスト型チェックアウトの作成依頼。
// ExternalReferenceに注文IDを入れて通知と突き合わせる。
type PreferenceRequest struct {
	Items             []PreferenceItem `json:"items"`
	Payer             Payer            `json:"payer"`
	BackURLs          BackURLs         `json:"back_urls"`
	ExternalReference string           `json:"external_reference"`
	NotificationURL   string           `json:"notification_url,omitempty"`
}

type Preference struct {
	ID              string `json:"id"`
	InitPoint       string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// Paymentはゲートウェイが持つ正の支払いレコード。
// 通知ペイロードは信用せず、必ずこれを取り直す。
type Payment struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	TransactionAmount int64  `json:"transaction_amount"`
	PaymentType       string `json:"payment_type_id"`
	ExternalReference string `json:"external_reference"`
}

type Client interface {
	CreatePreference(ctx context.Context, req PreferenceRequest) (Preference, error)
	GetPayment(ctx context.Context, paymentID string) (Payment, error)
}

// HTTPClientはREST実装。
type HTTPClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func NewHTTPClient(baseURL, accessToken string) *HTTPClient {
	return &HTTPClient{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *HTTPClient) CreatePreference(ctx context.Context, req PreferenceRequest) (Preference, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Preference{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout/preferences", bytes.NewReader(body))
	if err != nil {
		return Preference{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Preference{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Preference{}, fmt.Errorf("gateway: create preference status %d: %s", resp.StatusCode, string(b))
	}

	var pref Preference
	if err := json.NewDecoder(resp.Body).Decode(&pref); err != nil {
		return Preference{}, err
	}
	return pref, nil
}

func (c *HTTPClient) GetPayment(ctx context.Context, paymentID string) (Payment, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/payments/"+paymentID, nil)
	if err != nil {
		return Payment{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Payment{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Payment{}, fmt.Errorf("gateway: get payment status %d: %s", resp.StatusCode, string(b))
	}

	// idは数値で返ることがあるのでjson.Numberで受ける
	var raw struct {
		ID                json.Number `json:"id"`
		Status            string      `json:"status"`
		TransactionAmount json.Number `json:"transaction_amount"`
		PaymentType       string      `json:"payment_type_id"`
		ExternalReference string      `json:"external_reference"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Payment{}, err
	}

	amount, _ := raw.TransactionAmount.Int64()
	return Payment{
		ID:                raw.ID.String(),
		Status:            raw.Status,
		TransactionAmount: amount,
		PaymentType:       raw.PaymentType,
		ExternalReference: raw.ExternalReference,
	}, nil
}
