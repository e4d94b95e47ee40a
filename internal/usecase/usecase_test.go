package usecase_test

import (
	"context"
	"io"
	"sort"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"
)

// =====================
// インメモリのフェイク（1つの状態をTx内外で共有する）
// =====================

type fakeStore struct {
	products    map[int64]*model.Product
	orders      map[int64]model.Order
	orderItems  map[int64][]model.OrderItem
	adjustments []model.InventoryAdjustment
	auditLogs   []model.AuditLog
	nextOrderID int64

	//failDecreaseForに入っている商品は在庫減算を失敗させる（補償テスト用）
	failDecreaseFor map[int64]bool
	//saveErrを立てるとOrders().Saveが失敗する
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:        map[int64]*model.Product{},
		orders:          map[int64]model.Order{},
		orderItems:      map[int64][]model.OrderItem{},
		nextOrderID:     1,
		failDecreaseFor: map[int64]bool{},
	}
}

func (s *fakeStore) addProduct(p model.Product) {
	cp := p
	s.products[p.ID] = &cp
}

func (s *fakeStore) stock(productID int64) int64 {
	return s.products[productID].Stock
}

// --- repo interfaces ---

type fakeOrderRepo struct{ s *fakeStore }

func (r *fakeOrderRepo) FindByID(_ context.Context, orderID int64) (model.Order, error) {
	o, ok := r.s.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) ListByUserID(_ context.Context, userID int64, page, limit int) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.s.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) Create(_ context.Context, order model.Order) (int64, error) {
	order.ID = r.s.nextOrderID
	r.s.nextOrderID++
	r.s.orders[order.ID] = order
	return order.ID, nil
}

func (r *fakeOrderRepo) Save(_ context.Context, order model.Order) error {
	if r.s.saveErr != nil {
		return r.s.saveErr
	}
	if _, ok := r.s.orders[order.ID]; !ok {
		return repo.ErrNotFound
	}
	r.s.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) ListExpiredPending(_ context.Context, now time.Time) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.s.orders {
		if o.Status == model.OrderStatusPendingPayment && o.ExpiresAt != nil && !o.ExpiresAt.After(now) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeOrderRepo) ListAdmin(_ context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.s.orders {
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		if f.UserID != nil && (o.UserID == nil || *o.UserID != *f.UserID) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

type fakeOrderItemRepo struct{ s *fakeStore }

func (r *fakeOrderItemRepo) CreateBulk(_ context.Context, orderID int64, items []model.OrderItem) error {
	for i := range items {
		items[i].OrderID = orderID
	}
	r.s.orderItems[orderID] = append(r.s.orderItems[orderID], items...)
	return nil
}

func (r *fakeOrderItemRepo) ListByOrderID(_ context.Context, orderID int64) ([]model.OrderItem, error) {
	return r.s.orderItems[orderID], nil
}

type fakeInventoryRepo struct{ s *fakeStore }

func (r *fakeInventoryRepo) DecreaseStockIfEnough(_ context.Context, productID int64, qty int64) (bool, error) {
	if r.s.failDecreaseFor[productID] {
		return false, nil
	}
	p, ok := r.s.products[productID]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (r *fakeInventoryRepo) IncreaseStock(_ context.Context, productID int64, qty int64) error {
	p, ok := r.s.products[productID]
	if !ok {
		return repo.ErrNotFound
	}
	p.Stock += qty
	return nil
}

func (r *fakeInventoryRepo) CreateAdjustment(_ context.Context, adj model.InventoryAdjustment) error {
	r.s.adjustments = append(r.s.adjustments, adj)
	return nil
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) FindByID(_ context.Context, id int64) (model.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return *p, nil
}

type fakeAuditRepo struct{ s *fakeStore }

func (r *fakeAuditRepo) Create(_ context.Context, log model.AuditLog) error {
	r.s.auditLogs = append(r.s.auditLogs, log)
	return nil
}

type fakeTxRepos struct{ s *fakeStore }

func (r *fakeTxRepos) Orders() repo.OrderRepository         { return &fakeOrderRepo{s: r.s} }
func (r *fakeTxRepos) OrderItems() repo.OrderItemRepository { return &fakeOrderItemRepo{s: r.s} }
func (r *fakeTxRepos) Inventory() repo.InventoryRepository  { return &fakeInventoryRepo{s: r.s} }
func (r *fakeTxRepos) Products() repo.ProductRepository     { return &fakeProductRepo{s: r.s} }

type fakeTxManager struct{ s *fakeStore }

func (m *fakeTxManager) WithinTx(_ context.Context, fn func(r repo.TxRepos) error) error {
	return fn(&fakeTxRepos{s: m.s})
}

type fakeFileStorage struct {
	url string
	err error
}

func (f *fakeFileStorage) Save(_ context.Context, filename string, _ io.Reader, folder string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.url != "" {
		return f.url, nil
	}
	return "http://files.local/" + folder + "/" + filename, nil
}

// =====================
// 共通ヘルパー
// =====================

const testExpiry = 24 * time.Hour

func newOrderUsecase(s *fakeStore) *usecase.OrderUsecase {
	return usecase.NewOrderUsecase(
		&fakeTxManager{s: s},
		&fakeOrderRepo{s: s},
		&fakeProductRepo{s: s},
		&fakeInventoryRepo{s: s},
		&fakeAuditRepo{s: s},
		&fakeFileStorage{},
		testExpiry,
	)
}

func adminAuth() usecase.AuthContext {
	return usecase.AuthContext{UserID: 99, Role: model.RoleAdmin, Authenticated: true}
}

func userAuth(id int64) usecase.AuthContext {
	return usecase.AuthContext{UserID: id, Role: model.RoleUser, Authenticated: true}
}

func receiptFile() io.Reader {
	return strings.NewReader("fake image bytes")
}

func adminFilter(status string) repo.AdminOrderListFilter {
	return repo.AdminOrderListFilter{Page: 1, Limit: 20, Status: status}
}

func seedProduct(s *fakeStore, id int64, price int64, stock int64) {
	s.addProduct(model.Product{
		ID:       id,
		Name:     "商品",
		Brand:    "ACME",
		Model:    "X-1",
		ImageURL: "http://img.local/p.jpg",
		Price:    price,
		Stock:    stock,
		IsActive: true,
	})
}
