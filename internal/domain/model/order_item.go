package model

import "time"

// OrderItemは購入時点の商品スナップショット。作成後は変更しない。
// 商品が編集・削除されても注文履歴は描画できる。
type OrderItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64 `gorm:"not null;index" json:"order_id"`
	ProductID int64 `gorm:"not null;index" json:"product_id"`

	ProductNameSnapshot  string `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	ProductImageSnapshot string `gorm:"type:varchar(500)" json:"product_image_snapshot"`
	BrandSnapshot        string `gorm:"type:varchar(100)" json:"brand_snapshot"`
	ModelSnapshot        string `gorm:"type:varchar(100)" json:"model_snapshot"`

	UnitPriceSnapshot int64 `gorm:"not null" json:"unit_price_snapshot"`
	Quantity          int64 `gorm:"not null" json:"quantity"`
	Subtotal          int64 `gorm:"not null" json:"subtotal"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
