package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type DressGormRepository struct {
	db *gorm.DB
}

// DI
func NewDressGormRepository(db *gorm.DB) *DressGormRepository {
	return &DressGormRepository{db: db}
}

// 一覧は常にカテゴリ・画像・サイズ込み。
func withAssociations(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Category").Preload("Images").Preload("Sizes")
}

func (r *DressGormRepository) ListAll(ctx context.Context) ([]model.Dress, error) {
	var dresses []model.Dress
	err := withAssociations(r.db.WithContext(ctx)).
		Order("name asc").
		Find(&dresses).Error
	if err != nil {
		return []model.Dress{}, err
	}
	return dresses, nil
}

// カテゴリ絞り込みは販売可能なものだけ。
func (r *DressGormRepository) ListByCategory(ctx context.Context, categoryID int64) ([]model.Dress, error) {
	var dresses []model.Dress
	err := withAssociations(r.db.WithContext(ctx)).
		Where("category_id = ? AND is_available = ?", categoryID, true).
		Order("name asc").
		Find(&dresses).Error
	if err != nil {
		return []model.Dress{}, err
	}
	return dresses, nil
}

func (r *DressGormRepository) ListFeatured(ctx context.Context) ([]model.Dress, error) {
	var dresses []model.Dress
	err := withAssociations(r.db.WithContext(ctx)).
		Where("is_featured = ? AND is_available = ?", true, true).
		Order("name asc").
		Find(&dresses).Error
	if err != nil {
		return []model.Dress{}, err
	}
	return dresses, nil
}

// name/description/designer/style/color/カテゴリ名を大文字小文字を無視して部分一致。
// 販売可能なものだけが対象。
func (r *DressGormRepository) Search(ctx context.Context, term string) ([]model.Dress, error) {
	like := "%" + strings.TrimSpace(term) + "%"

	var dresses []model.Dress
	err := withAssociations(r.db.WithContext(ctx)).
		Joins("JOIN categories ON categories.id = dresses.category_id").
		Where("dresses.is_available = ?", true).
		Where(`dresses.name ILIKE ?
			OR dresses.description ILIKE ?
			OR dresses.designer ILIKE ?
			OR dresses.style ILIKE ?
			OR dresses.color ILIKE ?
			OR categories.name ILIKE ?`,
			like, like, like, like, like, like).
		Order("dresses.name asc").
		Find(&dresses).Error
	if err != nil {
		return []model.Dress{}, err
	}
	return dresses, nil
}

func (r *DressGormRepository) FindByID(ctx context.Context, id int64) (model.Dress, error) {
	var d model.Dress
	err := withAssociations(r.db.WithContext(ctx)).First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Dress{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Dress{}, err
	}
	return d, nil
}

// SKU重複・存在しないカテゴリはErrConflict。
func (r *DressGormRepository) Create(ctx context.Context, d model.Dress) (model.Dress, error) {
	if err := r.db.WithContext(ctx).Create(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
			return model.Dress{}, repo.ErrConflict
		}
		return model.Dress{}, err
	}
	return d, nil
}

// 全フィールド置き換え更新。画像・サイズはこの操作では触らない。
func (r *DressGormRepository) Update(ctx context.Context, d model.Dress) error {
	res := r.db.WithContext(ctx).Model(&model.Dress{}).Where("id = ?", d.ID).Updates(map[string]interface{}{
		"name":         d.Name,
		"description":  d.Description,
		"price":        d.Price,
		"sale_price":   d.SalePrice,
		"sku":          d.SKU,
		"stock":        d.Stock,
		"designer":     d.Designer,
		"style":        d.Style,
		"silhouette":   d.Silhouette,
		"neckline":     d.Neckline,
		"sleeve_style": d.SleeveStyle,
		"color":        d.Color,
		"fabric":       d.Fabric,
		"train_style":  d.TrainStyle,
		"is_available": d.IsAvailable,
		"is_featured":  d.IsFeatured,
		"category_id":  d.CategoryID,
		"updated_at":   d.UpdatedAt,
	})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) || errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
			return repo.ErrConflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 画像・サイズはCASCADEで消える。注文明細から参照されていれば削除できない。
func (r *DressGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Dress{}, id)
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

func (r *DressGormRepository) CountByCategoryID(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Dress{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
