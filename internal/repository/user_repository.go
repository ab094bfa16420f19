package repository

import (
	"context"

	"app/internal/domain/model"
)

// ユーザーの永続化。取得は常にロール込み。
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
}
