package repository

import (
	"app/internal/domain/model"
	"context"
)

// 在庫台帳。stock列への変更は必ずここを通す（read-modify-writeは禁止）。
type InventoryRepository interface {
	// 在庫が足りるときだけ減算（1回の条件付きUPDATE）
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫戻し（キャンセル・補償）
	IncreaseStock(ctx context.Context, productID int64, qty int64) error

	// 増減履歴の作成
	CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error
}
