package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

// 有効なカテゴリのみ、sort_order→nameの順で返す。
func (r *CategoryGormRepository) ListActive(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order asc").
		Order("name asc").
		Find(&categories).Error
	if err != nil {
		return []model.Category{}, err
	}
	return categories, nil
}

// 所属ドレス込みで1件取得。
func (r *CategoryGormRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Preload("Dresses").First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Category{}, err
	}
	return c, nil
}

// 全フィールド置き換え更新。
func (r *CategoryGormRepository) Update(ctx context.Context, c model.Category) error {
	res := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"name":        c.Name,
		"description": c.Description,
		"image_url":   c.ImageURL,
		"is_active":   c.IsActive,
		"sort_order":  c.SortOrder,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CategoryGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Category{}, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
			return repo.ErrConflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CategoryGormRepository) SetActive(ctx context.Context, id int64, isActive bool) error {
	res := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", id).
		Update("is_active", isActive)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
