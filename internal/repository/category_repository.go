package repository

import (
	"context"

	"app/internal/domain/model"
)

// カテゴリの永続化（保存・取得）だけを約束。
type CategoryRepository interface {
	//有効なカテゴリをsort_order、nameの順で返す
	ListActive(ctx context.Context) ([]model.Category, error)
	//所属ドレス込みで1件取得
	FindByID(ctx context.Context, id int64) (model.Category, error)

	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, c model.Category) error
	Delete(ctx context.Context, id int64) error
	SetActive(ctx context.Context, id int64, isActive bool) error
}
