package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/storage"
)

// OrderUsecaseは注文ライフサイクルの全操作を持つ。
// 状態の変更は必ず「読み直し→ガード→書き戻し」を1つのTxで行う。
type OrderUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	products  repo.ProductRepository
	inventory repo.InventoryRepository
	auditRepo repo.AuditLogRepository
	files     storage.FileStorage
	expiry    time.Duration
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	products repo.ProductRepository,
	inventory repo.InventoryRepository,
	auditRepo repo.AuditLogRepository,
	files storage.FileStorage,
	expiry time.Duration,
) *OrderUsecase {
	return &OrderUsecase{
		tx:        tx,
		orders:    orders,
		products:  products,
		inventory: inventory,
		auditRepo: auditRepo,
		files:     files,
		expiry:    expiry,
	}
}

type OrderLineInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CreateOrderInput struct {
	ReceiverName    string
	ReceiverPhone   string
	ShippingAddress string
	AddressID       *int64
	PaymentMethod   string
	Lines           []OrderLineInput
}

type OrderItemOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

type OrderOutput struct {
	ID                int64             `json:"id"`
	UserID            *int64            `json:"user_id"`
	Status            string            `json:"status"`
	PaymentMethod     string            `json:"payment_method"`
	ReceiverName      string            `json:"receiver_name"`
	ReceiverPhone     string            `json:"receiver_phone"`
	ShippingAddress   string            `json:"shipping_address"`
	TotalPrice        int64             `json:"total_price"`
	PaymentReceiptURL string            `json:"payment_receipt_url,omitempty"`
	PreferenceID      string            `json:"preference_id,omitempty"`
	TrackingNumber    string            `json:"tracking_number,omitempty"`
	ShippingProvider  string            `json:"shipping_provider,omitempty"`
	AdminNotes        string            `json:"admin_notes,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	ExpiresAt         *time.Time        `json:"expires_at"`
	Items             []OrderItemOutput `json:"items"`
}

// 予約済み分の巻き戻し。失敗してもログだけ残して続行する。
type reservedLine struct {
	productID int64
	qty       int64
}

func (u *OrderUsecase) compensate(ctx context.Context, reserved []reservedLine) {
	for _, r := range reserved {
		if err := u.inventory.IncreaseStock(ctx, r.productID, r.qty); err != nil {
			log.Printf("order: compensation failed product=%d qty=%d: %v", r.productID, r.qty, err)
		}
	}
}

// CreateOrderは在庫を予約して注文をPENDING_PAYMENTで作る。
// 明細ごとの減算は条件付きUPDATE1発。途中で失敗したら予約済み分を戻し、
// 呼び出し側から見て全か無かになる。
func (u *OrderUsecase) CreateOrder(ctx context.Context, auth AuthContext, in CreateOrderInput) (OrderOutput, error) {
	if strings.TrimSpace(in.ReceiverName) == "" {
		return OrderOutput{}, NewValidationError("receiver_name is required")
	}
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return OrderOutput{}, NewValidationError("shipping_address is required")
	}
	if in.AddressID != nil && *in.AddressID <= 0 {
		return OrderOutput{}, NewValidationError("invalid address_id")
	}
	method := model.PaymentMethod(in.PaymentMethod)
	if method != model.PaymentMethodBankTransfer && method != model.PaymentMethodGateway {
		return OrderOutput{}, NewValidationError("invalid payment_method")
	}
	if len(in.Lines) == 0 {
		return OrderOutput{}, NewValidationError("order has no lines")
	}
	seen := make(map[int64]bool, len(in.Lines))
	for _, l := range in.Lines {
		if l.ProductID <= 0 || l.Quantity <= 0 {
			return OrderOutput{}, NewValidationError("invalid line")
		}
		if seen[l.ProductID] {
			return OrderOutput{}, NewValidationError("duplicate product in lines")
		}
		seen[l.ProductID] = true
	}

	//商品の存在・有効チェックとスナップショット作成
	now := time.Now()
	items := make([]model.OrderItem, 0, len(in.Lines))
	var total int64 = 0

	for _, l := range in.Lines {
		p, err := u.products.FindByID(ctx, l.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return OrderOutput{}, NewValidationError("product not found")
		}
		if err != nil {
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !p.IsActive {
			return OrderOutput{}, NewValidationError("product not available")
		}

		subtotal := p.Price * l.Quantity
		items = append(items, model.OrderItem{
			ProductID:            p.ID,
			ProductNameSnapshot:  p.Name,
			ProductImageSnapshot: p.ImageURL,
			BrandSnapshot:        p.Brand,
			ModelSnapshot:        p.Model,
			UnitPriceSnapshot:    p.Price,
			Quantity:             l.Quantity,
			Subtotal:             subtotal,
			CreatedAt:            now,
		})
		total += subtotal
	}

	//在庫予約。商品をまたぐTxは張れないので、失敗時は手動補償。
	reserved := make([]reservedLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		ok, err := u.inventory.DecreaseStockIfEnough(ctx, l.ProductID, l.Quantity)
		if err != nil {
			u.compensate(ctx, reserved)
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !ok {
			u.compensate(ctx, reserved)
			return OrderOutput{}, NewValidationError("out of stock")
		}
		reserved = append(reserved, reservedLine{productID: l.ProductID, qty: l.Quantity})
	}

	var userID *int64
	if auth.Authenticated {
		id := auth.UserID
		userID = &id
	}
	expiresAt := now.Add(u.expiry)

	order := model.Order{
		UserID:          userID,
		AddressID:       in.AddressID,
		ReceiverName:    strings.TrimSpace(in.ReceiverName),
		ReceiverPhone:   strings.TrimSpace(in.ReceiverPhone),
		ShippingAddress: strings.TrimSpace(in.ShippingAddress),
		TotalPrice:      total,
		Status:          model.OrderStatusPendingPayment,
		PaymentMethod:   method,
		CreatedAt:       now,
		UpdatedAt:       now,
		ExpiresAt:       &expiresAt,
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//予約の履歴
		for _, l := range in.Lines {
			adj := model.InventoryAdjustment{
				ProductID: l.ProductID,
				OrderID:   orderID,
				Delta:     -l.Quantity,
				Reason:    model.AdjustmentReasonReserve,
				CreatedAt: now,
			}
			if err := r.Inventory().CreateAdjustment(ctx, adj); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		order.ID = orderID
		out = toOrderOutput(order, items)
		return nil
	})
	if err != nil {
		//注文が残らなかったので予約も戻す
		u.compensate(ctx, reserved)
		return OrderOutput{}, err
	}

	return out, nil
}

// UploadReceiptは振込明細を保存してPAYMENT_SUBMITTEDへ進める。
// PENDING_PAYMENTと（差し戻し後の）PAYMENT_REJECTEDからだけ合法。
func (u *OrderUsecase) UploadReceipt(ctx context.Context, auth AuthContext, orderID int64, filename string, content io.Reader) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewValidationError("invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewNotFoundError("not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//ゲスト注文は注文IDだけで受け付ける（所有者がいない）
	if o.UserID != nil && !auth.Owns(o) && !auth.IsAdmin() {
		return OrderOutput{}, NewNotFoundError("not found")
	}
	if o.Status != model.OrderStatusPendingPayment && o.Status != model.OrderStatusPaymentRejected {
		return OrderOutput{}, NewInvalidStateError("receipt not accepted in current status")
	}

	//外部保存はTxの外。失敗は同期呼び出しなのでそのまま返す。
	url, err := u.files.Save(ctx, filename, content, "receipts")
	if err != nil {
		return OrderOutput{}, NewExternalError("file storage unavailable")
	}

	var out OrderOutput
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cur, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if cur.Status != model.OrderStatusPendingPayment && cur.Status != model.OrderStatusPaymentRejected {
			return NewInvalidStateError("receipt not accepted in current status")
		}

		now := time.Now()
		cur.PaymentReceiptURL = url
		cur.ReceiptUploadedAt = &now
		if cur.SubmittedAt == nil {
			cur.SubmittedAt = &now
		}
		cur.PaymentMethod = model.PaymentMethodBankTransfer
		cur.Status = model.OrderStatusPaymentSubmitted
		cur.UpdatedAt = now

		if err := r.Orders().Save(ctx, cur); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = toOrderOutput(cur, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ApprovePaymentはPAYMENT_SUBMITTEDからだけ合法。
func (u *OrderUsecase) ApprovePayment(ctx context.Context, auth AuthContext, orderID int64, notes string) error {
	if !auth.IsAdmin() {
		return NewHTTPError(http.StatusForbidden, "admin only")
	}
	return u.adminTransition(ctx, auth, orderID, model.OrderStatusPaymentSubmitted, model.OrderStatusPaymentApproved, func(o *model.Order, now time.Time) {
		if o.ApprovedAt == nil {
			o.ApprovedAt = &now
		}
		if notes != "" {
			o.AdminNotes = notes
		}
	})
}

// RejectPaymentは理由必須。再アップロードで再提出できる。
func (u *OrderUsecase) RejectPayment(ctx context.Context, auth AuthContext, orderID int64, reason string) error {
	if !auth.IsAdmin() {
		return NewHTTPError(http.StatusForbidden, "admin only")
	}
	if strings.TrimSpace(reason) == "" {
		return NewValidationError("reason is required")
	}
	return u.adminTransition(ctx, auth, orderID, model.OrderStatusPaymentSubmitted, model.OrderStatusPaymentRejected, func(o *model.Order, now time.Time) {
		o.AdminNotes = reason
	})
}

// MarkShippedは追跡番号と配送業者が必須。
func (u *OrderUsecase) MarkShipped(ctx context.Context, auth AuthContext, orderID int64, trackingNumber, provider, notes string) error {
	if !auth.IsAdmin() {
		return NewHTTPError(http.StatusForbidden, "admin only")
	}
	if strings.TrimSpace(trackingNumber) == "" || strings.TrimSpace(provider) == "" {
		return NewValidationError("tracking_number and provider are required")
	}
	return u.adminTransition(ctx, auth, orderID, model.OrderStatusPaymentApproved, model.OrderStatusShipped, func(o *model.Order, now time.Time) {
		o.TrackingNumber = strings.TrimSpace(trackingNumber)
		o.ShippingProvider = strings.TrimSpace(provider)
		if o.ShippedAt == nil {
			o.ShippedAt = &now
		}
		if notes != "" {
			o.AdminNotes = notes
		}
	})
}

func (u *OrderUsecase) MarkDelivered(ctx context.Context, auth AuthContext, orderID int64, notes string) error {
	if !auth.IsAdmin() {
		return NewHTTPError(http.StatusForbidden, "admin only")
	}
	return u.adminTransition(ctx, auth, orderID, model.OrderStatusShipped, model.OrderStatusDelivered, func(o *model.Order, now time.Time) {
		if o.DeliveredAt == nil {
			o.DeliveredAt = &now
		}
		if notes != "" {
			o.AdminNotes = notes
		}
	})
}

// adminTransitionは「読み直し→単一の遷移元ガード→書き戻し」の共通部分。
func (u *OrderUsecase) adminTransition(
	ctx context.Context,
	auth AuthContext,
	orderID int64,
	from model.OrderStatus,
	to model.OrderStatus,
	mutate func(o *model.Order, now time.Time),
) error {
	if orderID <= 0 {
		return NewValidationError("invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.Status != from {
			return NewInvalidStateError("illegal transition from " + string(o.Status))
		}

		now := time.Now()
		before := o.Status
		o.Status = to
		o.UpdatedAt = now
		mutate(&o, now)

		if err := r.Orders().Save(ctx, o); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return u.writeAudit(ctx, auth.UserID, model.AuditActionOrderTransition, orderID, before, to)
	})
}

// CancelOrderは顧客（PENDING/SUBMITTEDのみ）か管理者が取り消す。
// CANCELEDへ入る遷移の中でだけ在庫を戻すので、二重実行しても二重加算しない。
func (u *OrderUsecase) CancelOrder(ctx context.Context, auth AuthContext, orderID int64) error {
	if orderID <= 0 {
		return NewValidationError("invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if !auth.IsAdmin() {
			if !auth.Owns(o) {
				return NewNotFoundError("not found")
			}
			//顧客は審査前だけ取り消せる
			if o.Status != model.OrderStatusPendingPayment && o.Status != model.OrderStatusPaymentSubmitted {
				if o.Status == model.OrderStatusCanceled {
					return nil
				}
				return NewInvalidStateError("cannot cancel in current status")
			}
		} else {
			//sweeperや再送と競合したときのno-op
			if o.Status == model.OrderStatusCanceled {
				return nil
			}
			if !model.CanTransition(o.Status, model.OrderStatusCanceled) {
				return NewInvalidStateError("cannot cancel in current status")
			}
		}

		if err := restoreOrderStock(ctx, r, o); err != nil {
			return err
		}

		now := time.Now()
		before := o.Status
		o.Status = model.OrderStatusCanceled
		o.UpdatedAt = now
		if err := r.Orders().Save(ctx, o); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		actor := int64(0)
		if auth.Authenticated {
			actor = auth.UserID
		}
		return u.writeAudit(ctx, actor, model.AuditActionOrderTransition, orderID, before, model.OrderStatusCanceled)
	})
}

// OverrideStatusは管理者専用の強制上書き。遷移表のoverride辺を通す。
func (u *OrderUsecase) OverrideStatus(ctx context.Context, auth AuthContext, orderID int64, status string, notes string) error {
	if !auth.IsAdmin() {
		return NewHTTPError(http.StatusForbidden, "admin only")
	}
	if orderID <= 0 {
		return NewValidationError("invalid id")
	}
	to := model.OrderStatus(strings.TrimSpace(status))
	if !model.ValidStatus(to) {
		return NewValidationError("invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//同じなら何もしない
		if o.Status == to {
			return nil
		}
		if !model.CanOverride(o.Status, to) {
			return NewInvalidStateError("cannot override from " + string(o.Status))
		}

		//強制キャンセルでも在庫は一度だけ戻す
		if to == model.OrderStatusCanceled {
			if err := restoreOrderStock(ctx, r, o); err != nil {
				return err
			}
		}

		now := time.Now()
		before := o.Status
		o.Status = to
		o.UpdatedAt = now
		if notes != "" {
			o.AdminNotes = notes
		}
		if err := r.Orders().Save(ctx, o); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return u.writeAudit(ctx, auth.UserID, model.AuditActionOverrideOrderStatus, orderID, before, to)
	})
}

// restoreOrderStockは在庫を保持している状態からの離脱時だけ戻す。
func restoreOrderStock(ctx context.Context, r repo.TxRepos, o model.Order) error {
	if !model.HoldsStock(o.Status) {
		return nil
	}

	items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	now := time.Now()
	for _, it := range items {
		if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		adj := model.InventoryAdjustment{
			ProductID: it.ProductID,
			OrderID:   o.ID,
			Delta:     it.Quantity,
			Reason:    model.AdjustmentReasonRestore,
			CreatedAt: now,
		}
		if err := r.Inventory().CreateAdjustment(ctx, adj); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}
	return nil
}

func (u *OrderUsecase) writeAudit(ctx context.Context, actorID int64, action model.AuditAction, orderID int64, before, after model.OrderStatus) error {
	beforeJSON := `{"status":"` + string(before) + `"}`
	afterJSON := `{"status":"` + string(after) + `"}`
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, auth AuthContext) ([]OrderOutput, error) {
	if !auth.Authenticated {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, auth.UserID, 1, 50)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})
	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, auth AuthContext, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewValidationError("invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//他人の注文は「存在しない扱い」にする
		if !auth.IsAdmin() && o.UserID != nil && !auth.Owns(o) {
			return NewNotFoundError("not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 管理者用一覧。
func (u *OrderUsecase) ListAdmin(ctx context.Context, auth AuthContext, f repo.AdminOrderListFilter) ([]OrderOutput, error) {
	if !auth.IsAdmin() {
		return []OrderOutput{}, NewHTTPError(http.StatusForbidden, "admin only")
	}
	if f.Page < 1 {
		return []OrderOutput{}, NewValidationError("invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return []OrderOutput{}, NewValidationError("invalid limit")
	}
	if f.Status != "" && !model.ValidStatus(model.OrderStatus(f.Status)) {
		return []OrderOutput{}, NewValidationError("invalid status")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})
	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Image:     it.ProductImageSnapshot,
			Brand:     it.BrandSnapshot,
			Model:     it.ModelSnapshot,
			Price:     it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		})
	}

	return OrderOutput{
		ID:                o.ID,
		UserID:            o.UserID,
		Status:            string(o.Status),
		PaymentMethod:     string(o.PaymentMethod),
		ReceiverName:      o.ReceiverName,
		ReceiverPhone:     o.ReceiverPhone,
		ShippingAddress:   o.ShippingAddress,
		TotalPrice:        o.TotalPrice,
		PaymentReceiptURL: o.PaymentReceiptURL,
		PreferenceID:      o.PreferenceID,
		TrackingNumber:    o.TrackingNumber,
		ShippingProvider:  o.ShippingProvider,
		AdminNotes:        o.AdminNotes,
		CreatedAt:         o.CreatedAt,
		ExpiresAt:         o.ExpiresAt,
		Items:             outItems,
	}
}
