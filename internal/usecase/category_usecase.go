package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type CategoryUsecase struct {
	tx         repo.TransactionManager
	categories repo.CategoryRepository
}

// DI
func NewCategoryUsecase(tx repo.TransactionManager, categories repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{tx: tx, categories: categories}
}

type CategoryInput struct {
	Name        string
	Description string
	ImageURL    string
	IsActive    bool
	SortOrder   int
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	categories, err := u.categories.ListActive(ctx)
	if err != nil {
		return []model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return categories, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, id int64) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	c, err := u.categories.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CategoryUsecase) Create(ctx context.Context, in CategoryInput) (model.Category, error) {
	if err := validateCategoryInput(in); err != nil {
		return model.Category{}, err
	}

	c, err := u.categories.Create(ctx, model.Category{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		ImageURL:    in.ImageURL,
		IsActive:    in.IsActive,
		SortOrder:   in.SortOrder,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// 全フィールド置き換え更新。
func (u *CategoryUsecase) Update(ctx context.Context, id int64, in CategoryInput) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validateCategoryInput(in); err != nil {
		return model.Category{}, err
	}

	err := u.categories.Update(ctx, model.Category{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		ImageURL:    in.ImageURL,
		IsActive:    in.IsActive,
		SortOrder:   in.SortOrder,
	})
	if err == repo.ErrNotFound {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	c, err := u.categories.FindByID(ctx, id)
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// Delete はドレスが紐づくカテゴリを消さずに無効化する。
// 戻り値は無効化だったかどうか。
func (u *CategoryUsecase) Delete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	deactivated := false

	//存在確認→分岐→書き込みまで1トランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		count, err := r.Dresses().CountByCategoryID(ctx, id)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if count > 0 {
			//参照されているのでソフト削除
			deactivated = true
			err = r.Categories().SetActive(ctx, id, false)
		} else {
			err = r.Categories().Delete(ctx, id)
		}

		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "category not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return false, err
	}
	return deactivated, nil
}

func validateCategoryInput(in CategoryInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if len(name) > 100 {
		return NewHTTPError(http.StatusBadRequest, "name too long")
	}
	return nil
}
