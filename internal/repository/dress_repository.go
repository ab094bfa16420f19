package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一意制約・参照制約に当たったとき
var ErrConflict = errors.New("conflict")

// ドレスの永続化だけを約束。一覧系は常にカテゴリ・画像・サイズ込み。
type DressRepository interface {
	ListAll(ctx context.Context) ([]model.Dress, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]model.Dress, error)
	ListFeatured(ctx context.Context) ([]model.Dress, error)
	//name/description/designer/style/color/カテゴリ名を対象に部分一致
	Search(ctx context.Context, term string) ([]model.Dress, error)
	FindByID(ctx context.Context, id int64) (model.Dress, error)

	Create(ctx context.Context, d model.Dress) (model.Dress, error)
	Update(ctx context.Context, d model.Dress) error
	Delete(ctx context.Context, id int64) error
	CountByCategoryID(ctx context.Context, categoryID int64) (int64, error)
}
