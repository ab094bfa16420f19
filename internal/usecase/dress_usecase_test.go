package usecase

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type DressRepoMock struct{ mock.Mock }

func (m *DressRepoMock) ListAll(ctx context.Context) ([]model.Dress, error) {
	args := m.Called(ctx)
	dresses, _ := args.Get(0).([]model.Dress)
	return dresses, args.Error(1)
}

func (m *DressRepoMock) ListByCategory(ctx context.Context, categoryID int64) ([]model.Dress, error) {
	args := m.Called(ctx, categoryID)
	dresses, _ := args.Get(0).([]model.Dress)
	return dresses, args.Error(1)
}

func (m *DressRepoMock) ListFeatured(ctx context.Context) ([]model.Dress, error) {
	args := m.Called(ctx)
	dresses, _ := args.Get(0).([]model.Dress)
	return dresses, args.Error(1)
}

func (m *DressRepoMock) Search(ctx context.Context, term string) ([]model.Dress, error) {
	args := m.Called(ctx, term)
	dresses, _ := args.Get(0).([]model.Dress)
	return dresses, args.Error(1)
}

func (m *DressRepoMock) FindByID(ctx context.Context, id int64) (model.Dress, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(model.Dress)
	return d, args.Error(1)
}

func (m *DressRepoMock) Create(ctx context.Context, d model.Dress) (model.Dress, error) {
	args := m.Called(ctx, d)
	out, _ := args.Get(0).(model.Dress)
	return out, args.Error(1)
}

func (m *DressRepoMock) Update(ctx context.Context, d model.Dress) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *DressRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *DressRepoMock) CountByCategoryID(ctx context.Context, categoryID int64) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

// searchとcategoryIdが両方来たらsearchを使う。
func TestDressUsecase_List_SearchWins(t *testing.T) {
	ctx := context.Background()

	dRepo := new(DressRepoMock)
	uc := NewDressUsecase(dRepo)

	dRepo.On("Search", mock.Anything, "lace").Return([]model.Dress{{ID: 1}}, nil)

	catID := int64(3)
	out, err := uc.List(ctx, "lace", &catID)
	assert.NoError(t, err)
	assert.Len(t, out, 1)

	dRepo.AssertNotCalled(t, "ListByCategory", mock.Anything, mock.Anything)
	dRepo.AssertNotCalled(t, "ListAll", mock.Anything)
	dRepo.AssertExpectations(t)
}

func TestDressUsecase_List_ByCategory(t *testing.T) {
	ctx := context.Background()

	dRepo := new(DressRepoMock)
	uc := NewDressUsecase(dRepo)

	dRepo.On("ListByCategory", mock.Anything, int64(3)).Return([]model.Dress{}, nil)

	catID := int64(3)
	_, err := uc.List(ctx, "", &catID)
	assert.NoError(t, err)

	dRepo.AssertExpectations(t)
}

func TestDressUsecase_List_All(t *testing.T) {
	ctx := context.Background()

	dRepo := new(DressRepoMock)
	uc := NewDressUsecase(dRepo)

	dRepo.On("ListAll", mock.Anything).Return([]model.Dress{}, nil)

	_, err := uc.List(ctx, "", nil)
	assert.NoError(t, err)

	dRepo.AssertExpectations(t)
}

func TestDressUsecase_List_InvalidCategoryID(t *testing.T) {
	uc := NewDressUsecase(new(DressRepoMock))

	catID := int64(0)
	_, err := uc.List(context.Background(), "", &catID)
	assertErrStatus(t, err, 400)
}

func TestDressUsecase_Create_DuplicateSKU(t *testing.T) {
	ctx := context.Background()

	dRepo := new(DressRepoMock)
	uc := NewDressUsecase(dRepo)

	dRepo.On("Create", mock.Anything, mock.Anything).Return(model.Dress{}, repo.ErrConflict)

	_, err := uc.Create(ctx, DressInput{
		Name:       "Aurora",
		SKU:        "WD-001",
		Price:      dec("1200.00"),
		CategoryID: 1,
	})
	assertErrStatus(t, err, 400)
}

func TestDressUsecase_Create_Validates(t *testing.T) {
	uc := NewDressUsecase(new(DressRepoMock))

	cases := []DressInput{
		//name missing
		{SKU: "WD-001", Price: dec("10"), CategoryID: 1},
		//sku missing
		{Name: "Aurora", Price: dec("10"), CategoryID: 1},
		//negative price
		{Name: "Aurora", SKU: "WD-001", Price: dec("-1"), CategoryID: 1},
		//category missing
		{Name: "Aurora", SKU: "WD-001", Price: dec("10")},
		//negative stock
		{Name: "Aurora", SKU: "WD-001", Price: dec("10"), Stock: -1, CategoryID: 1},
	}
	for _, in := range cases {
		_, err := uc.Create(context.Background(), in)
		assertErrStatus(t, err, 400)
	}
}

func TestDressUsecase_Delete_ReferencedByOrders(t *testing.T) {
	ctx := context.Background()

	dRepo := new(DressRepoMock)
	uc := NewDressUsecase(dRepo)

	dRepo.On("Delete", mock.Anything, int64(7)).Return(repo.ErrConflict)

	err := uc.Delete(ctx, 7)
	assertErrStatus(t, err, 400)

	he, _ := AsHTTPError(err)
	assert.Equal(t, "dress is referenced by orders", he.Message)
}

func TestDressUsecase_Get_NotFound(t *testing.T) {
	ctx := context.Background()

	dRepo := new(DressRepoMock)
	uc := NewDressUsecase(dRepo)

	dRepo.On("FindByID", mock.Anything, int64(42)).Return(model.Dress{}, repo.ErrNotFound)

	_, err := uc.Get(ctx, 42)
	assertErrStatus(t, err, 404)
}
