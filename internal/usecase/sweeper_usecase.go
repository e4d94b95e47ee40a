package usecase

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// SweeperUsecaseは支払われないまま期限を過ぎた注文を回収する。
// 顧客キャンセルや自分自身との並行実行と競合しても安全（Tx内で状態を読み直す）。
type SweeperUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	auditRepo repo.AuditLogRepository
	now       func() time.Time
}

func NewSweeperUsecase(tx repo.TransactionManager, orders repo.OrderRepository, auditRepo repo.AuditLogRepository) *SweeperUsecase {
	return &SweeperUsecase{
		tx:        tx,
		orders:    orders,
		auditRepo: auditRepo,
		now:       time.Now,
	}
}

// SweepExpiredOrdersは期限切れPENDING_PAYMENTをキャンセルして在庫を戻す。
// 処理できた件数を返す。すでにキャンセル済みの注文はスキップ。
func (u *SweeperUsecase) SweepExpiredOrders(ctx context.Context) (int, error) {
	expired, err := u.orders.ListExpiredPending(ctx, u.now())
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	count := 0
	for _, candidate := range expired {
		err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			o, err := r.Orders().FindByID(ctx, candidate.ID)
			if errors.Is(err, repo.ErrNotFound) {
				return nil
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			//一覧取得後に誰かがキャンセル/支払した場合はno-op
			if o.Status != model.OrderStatusPendingPayment {
				return nil
			}

			if err := restoreOrderStock(ctx, r, o); err != nil {
				return err
			}

			now := u.now()
			before := o.Status
			o.Status = model.OrderStatusCanceled
			o.UpdatedAt = now
			if err := r.Orders().Save(ctx, o); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			beforeJSON := `{"status":"` + string(before) + `"}`
			afterJSON := `{"status":"` + string(model.OrderStatusCanceled) + `"}`
			if err := u.auditRepo.Create(ctx, model.AuditLog{
				ActorUserID:  0,
				Action:       model.AuditActionSweepExpired,
				ResourceType: model.AuditResourceOrder,
				ResourceID:   o.ID,
				BeforeJSON:   beforeJSON,
				AfterJSON:    afterJSON,
				CreatedAt:    now,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			count++
			return nil
		})
		if err != nil {
			//1件失敗しても残りは回収する
			log.Printf("sweeper: order %d failed: %v", candidate.ID, err)
		}
	}

	return count, nil
}
