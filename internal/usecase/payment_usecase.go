package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"app/internal/domain/model"
	"app/internal/gateway"
	repo "app/internal/repository"
)

// PaymentUsecaseはゲートウェイ決済の作成と通知の突き合わせを行う。
// 通知はat-least-onceで重複・順序逆転するので、適用は冪等にする。
type PaymentUsecase struct {
	tx          repo.TransactionManager
	orders      repo.OrderRepository
	auditRepo   repo.AuditLogRepository
	gw          gateway.Client
	frontendURL string
	publicURL   string
}

func NewPaymentUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	auditRepo repo.AuditLogRepository,
	gw gateway.Client,
	frontendURL string,
	publicURL string,
) *PaymentUsecase {
	return &PaymentUsecase{
		tx:          tx,
		orders:      orders,
		auditRepo:   auditRepo,
		gw:          gw,
		frontendURL: frontendURL,
		publicURL:   publicURL,
	}
}

type CheckoutOutput struct {
	PreferenceID     string `json:"preference_id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// CreatePreferenceはホスト型チェックアウトを登録してリダイレクト先を返す。
// 戻りURLと外部参照に注文IDを埋めて、後の通知と突き合わせる。
func (u *PaymentUsecase) CreatePreference(ctx context.Context, auth AuthContext, orderID int64) (CheckoutOutput, error) {
	if orderID <= 0 {
		return CheckoutOutput{}, NewValidationError("invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return CheckoutOutput{}, NewNotFoundError("not found")
	}
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	//ゲスト注文は注文IDだけで許可
	if o.UserID != nil && !auth.Owns(o) && !auth.IsAdmin() {
		return CheckoutOutput{}, NewNotFoundError("not found")
	}
	if o.TotalPrice <= 0 {
		return CheckoutOutput{}, NewValidationError("order total must be positive")
	}
	if o.Status != model.OrderStatusPendingPayment && o.Status != model.OrderStatusPaymentRejected {
		return CheckoutOutput{}, NewInvalidStateError("checkout not available in current status")
	}

	var items []model.OrderItem
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		items, err = r.OrderItems().ListByOrderID(ctx, orderID)
		return err
	})
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	ref := strconv.FormatInt(orderID, 10)
	req := gateway.PreferenceRequest{
		Payer: gateway.Payer{
			Name:  o.ReceiverName,
			Phone: o.ReceiverPhone,
		},
		BackURLs: gateway.BackURLs{
			Success: fmt.Sprintf("%s/orders/%d/success", u.frontendURL, orderID),
			Failure: fmt.Sprintf("%s/orders/%d/failure", u.frontendURL, orderID),
			Pending: fmt.Sprintf("%s/orders/%d/pending", u.frontendURL, orderID),
		},
		ExternalReference: ref,
		NotificationURL:   u.publicURL + "/webhooks/payment",
	}
	for _, it := range items {
		req.Items = append(req.Items, gateway.PreferenceItem{
			Title:     it.ProductNameSnapshot,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPriceSnapshot,
		})
	}

	pref, err := u.gw.CreatePreference(ctx, req)
	if err != nil {
		return CheckoutOutput{}, NewExternalError("payment gateway unavailable")
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cur, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		cur.PreferenceID = pref.ID
		cur.PaymentMethod = model.PaymentMethodGateway
		cur.UpdatedAt = time.Now()
		if err := r.Orders().Save(ctx, cur); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return CheckoutOutput{}, err
	}

	return CheckoutOutput{
		PreferenceID:     pref.ID,
		InitPoint:        pref.InitPoint,
		SandboxInitPoint: pref.SandboxInitPoint,
	}, nil
}

// ゲートウェイのステータスを正準のOrderStatusへ寄せる。
// 未知の文字列は対象外（no-op）。
func mapGatewayStatus(s string) (model.OrderStatus, bool) {
	switch s {
	case "approved":
		return model.OrderStatusPaymentApproved, true
	case "pending", "in_process":
		return model.OrderStatusPaymentSubmitted, true
	case "rejected", "cancelled":
		return model.OrderStatusPaymentRejected, true
	case "refunded", "charged_back":
		return model.OrderStatusRefunded, true
	default:
		return "", false
	}
}

// ProcessNotificationは署名検証済みの通知を処理する。
// 通知本文は信用せず、支払いレコードをゲートウェイから取り直す。
// 不明な参照は握りつぶす（エラーにするとゲートウェイが無限再送する）。
func (u *PaymentUsecase) ProcessNotification(ctx context.Context, paymentID string) error {
	if paymentID == "" {
		return nil
	}

	payment, err := u.gw.GetPayment(ctx, paymentID)
	if err != nil {
		//取得失敗は再送に任せる
		return NewExternalError("payment fetch failed")
	}

	orderID, err := strconv.ParseInt(payment.ExternalReference, 10, 64)
	if err != nil || orderID <= 0 {
		log.Printf("payment: notification %s without usable external reference, ignored", paymentID)
		return nil
	}

	target, known := mapGatewayStatus(payment.Status)
	if !known {
		log.Printf("payment: unknown gateway status %q for payment %s, ignored", payment.Status, paymentID)
		return nil
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			//存在しない注文への通知もno-op
			return nil
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//同じ終着点の再適用はno-op（タイムスタンプも上書きしない）
		if o.Status == target && o.PaymentID == payment.ID && o.GatewayStatus == payment.Status {
			return nil
		}

		//ゲートウェイ注文は受領書を介さないので、PENDINGからの
		//承認/拒否は提出辺を畳んだものとして受け付ける
		allowed := model.CanTransition(o.Status, target) ||
			(o.Status == model.OrderStatusPendingPayment &&
				(target == model.OrderStatusPaymentApproved || target == model.OrderStatusPaymentRejected))
		if !allowed {
			if o.Status != target {
				log.Printf("payment: notification %s maps %s -> %s, not applicable, ignored", paymentID, o.Status, target)
				return nil
			}
			//ステータスは同じでゲートウェイ欄だけ未記入のケース
		}

		now := time.Now()
		before := o.Status
		o.PaymentID = payment.ID
		o.GatewayStatus = payment.Status
		o.PaymentType = payment.PaymentType
		o.PaymentMethod = model.PaymentMethodGateway
		o.Status = target
		o.UpdatedAt = now

		//時刻は最初の1回だけ
		switch target {
		case model.OrderStatusPaymentSubmitted:
			if o.SubmittedAt == nil {
				o.SubmittedAt = &now
			}
		case model.OrderStatusPaymentApproved:
			if o.SubmittedAt == nil {
				o.SubmittedAt = &now
			}
			if o.ApprovedAt == nil {
				o.ApprovedAt = &now
			}
		}

		if err := r.Orders().Save(ctx, o); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if before != target {
			beforeJSON := `{"status":"` + string(before) + `"}`
			afterJSON := `{"status":"` + string(target) + `","payment_id":"` + payment.ID + `"}`
			if err := u.auditRepo.Create(ctx, model.AuditLog{
				ActorUserID:  0,
				Action:       model.AuditActionReconcilePayment,
				ResourceType: model.AuditResourceOrder,
				ResourceID:   orderID,
				BeforeJSON:   beforeJSON,
				AfterJSON:    afterJSON,
				CreatedAt:    now,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
		return nil
	})
}
