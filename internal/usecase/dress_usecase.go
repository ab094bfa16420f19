package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type DressUsecase struct {
	dresses repo.DressRepository
}

// DI
func NewDressUsecase(dresses repo.DressRepository) *DressUsecase {
	return &DressUsecase{dresses: dresses}
}

type DressInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	SalePrice   *decimal.Decimal
	SKU         string
	Stock       int
	Designer    string
	Style       string
	Silhouette  string
	Neckline    string
	SleeveStyle string
	Color       string
	Fabric      string
	TrainStyle  string
	IsAvailable bool
	IsFeatured  bool
	CategoryID  int64
}

// List は search > categoryId > 全件 の優先順で1つだけ適用する。
func (u *DressUsecase) List(ctx context.Context, search string, categoryID *int64) ([]model.Dress, error) {
	var (
		dresses []model.Dress
		err     error
	)

	switch {
	case strings.TrimSpace(search) != "":
		dresses, err = u.dresses.Search(ctx, search)
	case categoryID != nil:
		if *categoryID <= 0 {
			return []model.Dress{}, NewHTTPError(http.StatusBadRequest, "invalid categoryId")
		}
		dresses, err = u.dresses.ListByCategory(ctx, *categoryID)
	default:
		dresses, err = u.dresses.ListAll(ctx)
	}

	if err != nil {
		return []model.Dress{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return dresses, nil
}

func (u *DressUsecase) Get(ctx context.Context, id int64) (model.Dress, error) {
	if id <= 0 {
		return model.Dress{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	d, err := u.dresses.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Dress{}, NewHTTPError(http.StatusNotFound, "dress not found")
	}
	if err != nil {
		return model.Dress{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return d, nil
}

func (u *DressUsecase) Featured(ctx context.Context) ([]model.Dress, error) {
	dresses, err := u.dresses.ListFeatured(ctx)
	if err != nil {
		return []model.Dress{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return dresses, nil
}

func (u *DressUsecase) Create(ctx context.Context, in DressInput) (model.Dress, error) {
	if err := validateDressInput(in); err != nil {
		return model.Dress{}, err
	}

	now := time.Now().UTC()
	created, err := u.dresses.Create(ctx, dressFromInput(0, in, now, now))
	if err == repo.ErrConflict {
		return model.Dress{}, NewHTTPError(http.StatusBadRequest, "duplicate sku or unknown category")
	}
	if err != nil {
		return model.Dress{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//カテゴリ・画像・サイズ込みで返す
	d, err := u.dresses.FindByID(ctx, created.ID)
	if err != nil {
		return created, nil
	}
	return d, nil
}

// 全フィールド置き換え更新。updated_atを打ち直す。
func (u *DressUsecase) Update(ctx context.Context, id int64, in DressInput) (model.Dress, error) {
	if id <= 0 {
		return model.Dress{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validateDressInput(in); err != nil {
		return model.Dress{}, err
	}

	err := u.dresses.Update(ctx, dressFromInput(id, in, time.Time{}, time.Now().UTC()))
	if err == repo.ErrNotFound {
		return model.Dress{}, NewHTTPError(http.StatusNotFound, "dress not found")
	}
	if err == repo.ErrConflict {
		return model.Dress{}, NewHTTPError(http.StatusBadRequest, "duplicate sku or unknown category")
	}
	if err != nil {
		return model.Dress{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	d, err := u.dresses.FindByID(ctx, id)
	if err != nil {
		return model.Dress{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return d, nil
}

// 注文明細から参照されているドレスは消せない。
func (u *DressUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.dresses.Delete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "dress not found")
	}
	if err == repo.ErrConflict {
		return NewHTTPError(http.StatusBadRequest, "dress is referenced by orders")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func validateDressInput(in DressInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if len(name) > 200 {
		return NewHTTPError(http.StatusBadRequest, "name too long")
	}
	if strings.TrimSpace(in.SKU) == "" {
		return NewHTTPError(http.StatusBadRequest, "sku required")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.SalePrice != nil && in.SalePrice.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "sale_price must be >= 0")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	if in.CategoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "category_id required")
	}
	return nil
}

func dressFromInput(id int64, in DressInput, createdAt time.Time, updatedAt time.Time) model.Dress {
	return model.Dress{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		SalePrice:   in.SalePrice,
		SKU:         strings.TrimSpace(in.SKU),
		Stock:       in.Stock,
		Designer:    in.Designer,
		Style:       in.Style,
		Silhouette:  in.Silhouette,
		Neckline:    in.Neckline,
		SleeveStyle: in.SleeveStyle,
		Color:       in.Color,
		Fabric:      in.Fabric,
		TrainStyle:  in.TrainStyle,
		IsAvailable: in.IsAvailable,
		IsFeatured:  in.IsFeatured,
		CategoryID:  in.CategoryID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}
