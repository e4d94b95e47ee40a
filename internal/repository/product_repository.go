package repository

import (
	"app/internal/domain/model"
	"context"
)

// 商品の取得だけを約束。在庫の更新はInventoryRepositoryへ。
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (model.Product, error)
}
