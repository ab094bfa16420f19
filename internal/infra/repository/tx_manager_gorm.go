package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	categories   repo.CategoryRepository
	dresses      repo.DressRepository
	orders       repo.OrderRepository
	orderNumbers repo.OrderNumberRepository
}

func (r *txReposGorm) Categories() repo.CategoryRepository      { return r.categories }
func (r *txReposGorm) Dresses() repo.DressRepository            { return r.dresses }
func (r *txReposGorm) Orders() repo.OrderRepository             { return r.orders }
func (r *txReposGorm) OrderNumbers() repo.OrderNumberRepository { return r.orderNumbers }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			categories:   NewCategoryGormRepository(tx),
			dresses:      NewDressGormRepository(tx),
			orders:       NewOrderGormRepository(tx),
			orderNumbers: NewOrderNumberGormRepository(tx),
		}
		return fn(r)
	})
}
