package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// 一覧・取得は常に明細＋ドレス込み。
func withOrderAssociations(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Items").Preload("Items.Dress")
}

func (r *OrderGormRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := withOrderAssociations(r.db.WithContext(ctx)).
		Order("order_date desc").
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

// ステータスは完全一致（大文字小文字を区別）。
func (r *OrderGormRepository) ListByStatus(ctx context.Context, status string) ([]model.Order, error) {
	var orders []model.Order
	err := withOrderAssociations(r.db.WithContext(ctx)).
		Where("status = ?", status).
		Order("order_date desc").
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, id int64) (model.Order, error) {
	var o model.Order
	err := withOrderAssociations(r.db.WithContext(ctx)).First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (model.Order, error) {
	var o model.Order
	err := withOrderAssociations(r.db.WithContext(ctx)).
		Where("order_number = ?", orderNumber).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// 注文と明細をまとめて保存。注文番号の重複はErrConflict。
func (r *OrderGormRepository) Create(ctx context.Context, o model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
			return 0, repo.ErrConflict
		}
		return 0, err
	}
	return o.ID, nil
}

// 明細以外の全フィールドを置き換え更新。
func (r *OrderGormRepository) Update(ctx context.Context, o model.Order) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", o.ID).Updates(map[string]interface{}{
		"customer_name":    o.CustomerName,
		"customer_email":   o.CustomerEmail,
		"customer_phone":   o.CustomerPhone,
		"shipping_address": o.ShippingAddress,
		"billing_address":  o.BillingAddress,
		"sub_total":        o.SubTotal,
		"tax":              o.Tax,
		"shipping_cost":    o.ShippingCost,
		"total":            o.Total,
		"status":           o.Status,
		"payment_status":   o.PaymentStatus,
		"notes":            o.Notes,
		"shipped_date":     o.ShippedDate,
		"delivered_date":   o.DeliveredDate,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細はCASCADEで消える。
func (r *OrderGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type OrderNumberGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderNumberGormRepository(db *gorm.DB) *OrderNumberGormRepository {
	return &OrderNumberGormRepository{db: db}
}

// NextSequence は日付キーのカウンタをatomicにインクリメントして返す。
// 同日の同時採番が同じ番号を引くことはない。
func (r *OrderNumberGormRepository) NextSequence(ctx context.Context, day string) (int64, error) {
	var seq int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO order_number_counters (day, last_seq)
		VALUES (?, 1)
		ON CONFLICT (day)
		DO UPDATE SET last_seq = order_number_counters.last_seq + 1
		RETURNING last_seq`, day).
		Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}
