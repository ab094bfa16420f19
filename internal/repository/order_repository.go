package repository

import (
	"context"

	"app/internal/domain/model"
)

// 注文の永続化。一覧・取得は常に明細＋ドレス込み。
type OrderRepository interface {
	ListAll(ctx context.Context) ([]model.Order, error)
	ListByStatus(ctx context.Context, status string) ([]model.Order, error)
	FindByID(ctx context.Context, id int64) (model.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (model.Order, error)

	//注文と明細をまとめて保存
	Create(ctx context.Context, o model.Order) (int64, error)
	Update(ctx context.Context, o model.Order) error
	Delete(ctx context.Context, id int64) error
}

// 日付キーの採番カウンタ。NextSequenceはatomicに払い出す。
type OrderNumberRepository interface {
	NextSequence(ctx context.Context, day string) (int64, error)
}
