package model

import "time"

type OrderStatus string

const (
	OrderStatusPendingPayment   OrderStatus = "PENDING_PAYMENT"
	OrderStatusPaymentSubmitted OrderStatus = "PAYMENT_SUBMITTED"
	OrderStatusPaymentApproved  OrderStatus = "PAYMENT_APPROVED"
	OrderStatusPaymentRejected  OrderStatus = "PAYMENT_REJECTED"
	OrderStatusShipped          OrderStatus = "SHIPPED"
	OrderStatusDelivered        OrderStatus = "DELIVERED"
	OrderStatusCanceled         OrderStatus = "CANCELED"
	OrderStatusRefunded         OrderStatus = "REFUNDED"
)

type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodGateway      PaymentMethod = "GATEWAY"
)

// 通常遷移の一覧。遷移表はここだけが正。
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPendingPayment:   {OrderStatusPaymentSubmitted, OrderStatusCanceled},
	OrderStatusPaymentSubmitted: {OrderStatusPaymentApproved, OrderStatusPaymentRejected, OrderStatusCanceled},
	OrderStatusPaymentRejected:  {OrderStatusPaymentSubmitted, OrderStatusPaymentApproved, OrderStatusCanceled},
	OrderStatusPaymentApproved:  {OrderStatusShipped, OrderStatusCanceled, OrderStatusRefunded},
	OrderStatusShipped:          {OrderStatusDelivered, OrderStatusRefunded},
	OrderStatusDelivered:        {OrderStatusRefunded},
	OrderStatusCanceled:         {},
	OrderStatusRefunded:         {},
}

// ValidStatusは既知のステータスかどうか。
func ValidStatus(s OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

// IsTerminalStatusは終端（以降の遷移なし）かどうか。
func IsTerminalStatus(s OrderStatus) bool {
	edges, ok := orderTransitions[s]
	return ok && len(edges) == 0
}

// CanTransitionは通常の遷移辺かどうか。
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanOverrideは管理者の強制遷移。終端からの脱出だけは許さない。
func CanOverride(from, to OrderStatus) bool {
	if !ValidStatus(from) || !ValidStatus(to) {
		return false
	}
	if IsTerminalStatus(from) {
		return false
	}
	return from != to
}

// HoldsStockはキャンセル時に在庫を戻すべき状態かどうか。
// 出荷後は商品が手元にないので戻さない。
func HoldsStock(s OrderStatus) bool {
	switch s {
	case OrderStatusPendingPayment, OrderStatusPaymentSubmitted,
		OrderStatusPaymentRejected, OrderStatusPaymentApproved:
		return true
	default:
		return false
	}
}

// Orderは購入の集約ルート。
// 受取先と金額は作成時点のスナップショットで、以後再計算しない。
type Order struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *int64 `gorm:"index" json:"user_id"`    // ゲスト購入はnull
	AddressID *int64 `gorm:"index" json:"address_id"` // 参照元住所（任意）

	// 受取先スナップショット（住所編集の影響を受けない）
	ReceiverName    string `gorm:"type:varchar(255);not null" json:"receiver_name"`
	ReceiverPhone   string `gorm:"type:varchar(50)" json:"receiver_phone"`
	ShippingAddress string `gorm:"type:text;not null" json:"shipping_address"`

	TotalPrice    int64         `gorm:"not null" json:"total_price"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`

	// 銀行振込
	PaymentReceiptURL string     `gorm:"type:varchar(500)" json:"payment_receipt_url"`
	ReceiptUploadedAt *time.Time `json:"receipt_uploaded_at"`

	// 決済ゲートウェイ
	PreferenceID  string `gorm:"type:varchar(255);index" json:"preference_id"`
	PaymentID     string `gorm:"type:varchar(255);index" json:"payment_id"`
	GatewayStatus string `gorm:"type:varchar(50)" json:"gateway_status"`
	PaymentType   string `gorm:"type:varchar(50)" json:"payment_type"`

	// ライフサイクルの時刻（最初の1回だけ書く）
	SubmittedAt *time.Time `json:"submitted_at"`
	ApprovedAt  *time.Time `json:"approved_at"`
	ShippedAt   *time.Time `json:"shipped_at"`
	DeliveredAt *time.Time `json:"delivered_at"`

	AdminNotes       string `gorm:"type:text" json:"admin_notes"`
	TrackingNumber   string `gorm:"type:varchar(100)" json:"tracking_number"`
	ShippingProvider string `gorm:"type:varchar(100)" json:"shipping_provider"`

	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
	ExpiresAt *time.Time `gorm:"index" json:"expires_at"`
}
