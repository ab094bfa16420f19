package usecase

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) ListAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListByStatus(ctx context.Context, status string) ([]model.Order, error) {
	args := m.Called(ctx, status)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, id int64) (model.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByOrderNumber(ctx context.Context, orderNumber string) (model.Order, error) {
	args := m.Called(ctx, orderNumber)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, o model.Order) (int64, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) Update(ctx context.Context, o model.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *OrderRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type OrderNumberRepoMock struct{ mock.Mock }

func (m *OrderNumberRepoMock) NextSequence(ctx context.Context, day string) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}

// トランザクションを張らずにそのままfnを呼ぶスタブ。
type txReposStub struct {
	categories   repo.CategoryRepository
	dresses      repo.DressRepository
	orders       repo.OrderRepository
	orderNumbers repo.OrderNumberRepository
}

func (r *txReposStub) Categories() repo.CategoryRepository      { return r.categories }
func (r *txReposStub) Dresses() repo.DressRepository            { return r.dresses }
func (r *txReposStub) Orders() repo.OrderRepository             { return r.orders }
func (r *txReposStub) OrderNumbers() repo.OrderNumberRepository { return r.orderNumbers }

type txManagerStub struct{ repos txReposStub }

func (m *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(&m.repos)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertErrStatus(t *testing.T, err error, status int) {
	t.Helper()
	he, ok := AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
	}
}

// =====================
// 採番
// =====================

func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "WD202501010001", formatOrderNumber("20250101", 1))
	assert.Equal(t, "WD202501019999", formatOrderNumber("20250101", 9999))
	//9999を超えたら桁が増えるだけ
	assert.Equal(t, "WD2025010110000", formatOrderNumber("20250101", 10000))
}

// =====================
// Create
// =====================

func TestOrderUsecase_Create_ComputesTotalsAndGeneratesNumber(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	nRepo := new(OrderNumberRepoMock)
	tx := &txManagerStub{repos: txReposStub{orders: oRepo, orderNumbers: nRepo}}
	uc := NewOrderUsecase(tx, oRepo)

	day := time.Now().UTC().Format("20060102")
	wantNumber := formatOrderNumber(day, 7)

	nRepo.On("NextSequence", mock.Anything, day).Return(int64(7), nil)

	var saved model.Order
	oRepo.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		saved = o
		return true
	})).Return(int64(1), nil)
	oRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Order{ID: 1, OrderNumber: wantNumber}, nil)

	out, err := uc.Create(ctx, OrderInput{
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		Tax:           dec("1.50"),
		ShippingCost:  dec("3.00"),
		Items: []OrderItemInput{
			{DressID: 1, Quantity: 2, UnitPrice: dec("10.00")},
			{DressID: 2, Quantity: 1, UnitPrice: dec("5.00")},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)

	//小計は明細合計、総額は小計+税+送料
	assert.True(t, saved.SubTotal.Equal(dec("25.00")), "sub_total = %s", saved.SubTotal)
	assert.True(t, saved.Total.Equal(dec("29.50")), "total = %s", saved.Total)
	assert.Equal(t, wantNumber, saved.OrderNumber)
	assert.Equal(t, model.OrderStatusPending, saved.Status)
	assert.Equal(t, model.PaymentStatusPending, saved.PaymentStatus)
	assert.False(t, saved.OrderDate.IsZero())
	assert.Len(t, saved.Items, 2)
	assert.True(t, saved.Items[0].TotalPrice.Equal(dec("20.00")))
	assert.True(t, saved.Items[1].TotalPrice.Equal(dec("5.00")))

	oRepo.AssertExpectations(t)
	nRepo.AssertExpectations(t)
}

func TestOrderUsecase_Create_UsesSuppliedOrderNumber(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	nRepo := new(OrderNumberRepoMock)
	tx := &txManagerStub{repos: txReposStub{orders: oRepo, orderNumbers: nRepo}}
	uc := NewOrderUsecase(tx, oRepo)

	oRepo.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.OrderNumber == "WD202501010042"
	})).Return(int64(5), nil)
	oRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Order{ID: 5}, nil)

	_, err := uc.Create(ctx, OrderInput{
		OrderNumber:   "WD202501010042",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		Items: []OrderItemInput{
			{DressID: 1, Quantity: 1, UnitPrice: dec("10.00")},
		},
	})
	assert.NoError(t, err)

	//採番カウンタは触らない
	nRepo.AssertNotCalled(t, "NextSequence", mock.Anything, mock.Anything)
	oRepo.AssertExpectations(t)
}

func TestOrderUsecase_Create_SuppliedItemTotalPriceWins(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	nRepo := new(OrderNumberRepoMock)
	tx := &txManagerStub{repos: txReposStub{orders: oRepo, orderNumbers: nRepo}}
	uc := NewOrderUsecase(tx, oRepo)

	nRepo.On("NextSequence", mock.Anything, mock.Anything).Return(int64(1), nil)

	var saved model.Order
	oRepo.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		saved = o
		return true
	})).Return(int64(1), nil)
	oRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Order{ID: 1}, nil)

	_, err := uc.Create(ctx, OrderInput{
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		Items: []OrderItemInput{
			//割引済みの明細合計が来たらそれを使う
			{DressID: 1, Quantity: 2, UnitPrice: dec("10.00"), TotalPrice: dec("18.00")},
		},
	})
	assert.NoError(t, err)
	assert.True(t, saved.SubTotal.Equal(dec("18.00")))
	assert.True(t, saved.Total.Equal(dec("18.00")))
}

func TestOrderUsecase_Create_NoItems(t *testing.T) {
	uc := NewOrderUsecase(&txManagerStub{}, new(OrderRepoMock))

	_, err := uc.Create(context.Background(), OrderInput{
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
	})
	assertErrStatus(t, err, 400)
}

func TestOrderUsecase_Create_InvalidItem(t *testing.T) {
	uc := NewOrderUsecase(&txManagerStub{}, new(OrderRepoMock))

	_, err := uc.Create(context.Background(), OrderInput{
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		Items: []OrderItemInput{
			{DressID: 1, Quantity: 0, UnitPrice: dec("10.00")},
		},
	})
	assertErrStatus(t, err, 400)
}

func TestOrderUsecase_Create_MissingCustomer(t *testing.T) {
	uc := NewOrderUsecase(&txManagerStub{}, new(OrderRepoMock))

	_, err := uc.Create(context.Background(), OrderInput{
		CustomerEmail: "jane@example.com",
		Items: []OrderItemInput{
			{DressID: 1, Quantity: 1, UnitPrice: dec("10.00")},
		},
	})
	assertErrStatus(t, err, 400)
}

func TestOrderUsecase_Create_DuplicateNumberConflict(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	nRepo := new(OrderNumberRepoMock)
	tx := &txManagerStub{repos: txReposStub{orders: oRepo, orderNumbers: nRepo}}
	uc := NewOrderUsecase(tx, oRepo)

	oRepo.On("Create", mock.Anything, mock.Anything).Return(int64(0), repo.ErrConflict)

	_, err := uc.Create(ctx, OrderInput{
		OrderNumber:   "WD202501010001",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		Items: []OrderItemInput{
			{DressID: 1, Quantity: 1, UnitPrice: dec("10.00")},
		},
	})
	assertErrStatus(t, err, 400)
}

// =====================
// Update
// =====================

func TestOrderUsecase_Update_RecomputesTotalsFromPersistedItems(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	tx := &txManagerStub{repos: txReposStub{orders: oRepo}}
	uc := NewOrderUsecase(tx, oRepo)

	existing := model.Order{
		ID:          3,
		OrderNumber: "WD202501010003",
		SubTotal:    dec("25.00"),
		Tax:         dec("1.50"),
		Total:       dec("29.50"),
		Items: []model.OrderItem{
			{ID: 1, DressID: 1, Quantity: 2, UnitPrice: dec("10.00"), TotalPrice: dec("20.00")},
			{ID: 2, DressID: 2, Quantity: 1, UnitPrice: dec("5.00"), TotalPrice: dec("5.00")},
		},
	}
	oRepo.On("FindByID", mock.Anything, int64(3)).Return(existing, nil).Once()

	var saved model.Order
	oRepo.On("Update", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		saved = o
		return true
	})).Return(nil)
	oRepo.On("FindByID", mock.Anything, int64(3)).Return(existing, nil)

	_, err := uc.Update(ctx, 3, OrderUpdateInput{
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		Status:        "Shipped",
		PaymentStatus: "Paid",
		Tax:           dec("2.00"),
		ShippingCost:  dec("0.00"),
	})
	assert.NoError(t, err)

	//明細はそのまま、小計は保存済み明細から、総額は新しい税・送料で
	assert.True(t, saved.SubTotal.Equal(dec("25.00")), "sub_total = %s", saved.SubTotal)
	assert.True(t, saved.Total.Equal(dec("27.00")), "total = %s", saved.Total)
	assert.Equal(t, "Shipped", saved.Status)
	assert.Equal(t, "WD202501010003", saved.OrderNumber)

	oRepo.AssertExpectations(t)
}

func TestOrderUsecase_Update_NotFound(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	tx := &txManagerStub{repos: txReposStub{orders: oRepo}}
	uc := NewOrderUsecase(tx, oRepo)

	oRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.Update(ctx, 99, OrderUpdateInput{
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
	})
	assertErrStatus(t, err, 404)
}

// =====================
// Query / Delete
// =====================

func TestOrderUsecase_List_ByStatusExactMatch(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	uc := NewOrderUsecase(&txManagerStub{}, oRepo)

	oRepo.On("ListByStatus", mock.Anything, "Pending").Return([]model.Order{{ID: 1}}, nil)

	out, err := uc.List(ctx, "Pending")
	assert.NoError(t, err)
	assert.Len(t, out, 1)

	oRepo.AssertNotCalled(t, "ListAll", mock.Anything)
	oRepo.AssertExpectations(t)
}

func TestOrderUsecase_GetByNumber_NotFound(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	uc := NewOrderUsecase(&txManagerStub{}, oRepo)

	oRepo.On("FindByOrderNumber", mock.Anything, "WD202501010001").Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.GetByNumber(ctx, "WD202501010001")
	assertErrStatus(t, err, 404)
}

func TestOrderUsecase_Delete_NotFound(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	uc := NewOrderUsecase(&txManagerStub{}, oRepo)

	oRepo.On("Delete", mock.Anything, int64(42)).Return(repo.ErrNotFound)

	err := uc.Delete(ctx, 42)
	assertErrStatus(t, err, 404)
}
