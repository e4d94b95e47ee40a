package model

import "time"

//在庫増減の履歴（予約・戻し）

const (
	AdjustmentReasonReserve = "RESERVE"
	AdjustmentReasonRestore = "RESTORE"
)

type InventoryAdjustment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	OrderID   int64     `gorm:"not null;index" json:"order_id"`
	Delta     int64     `gorm:"not null" json:"delta"`
	Reason    string    `gorm:"type:varchar(255);not null" json:"reason"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
