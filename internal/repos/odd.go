package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/types"
)

type ODDRepo interface {
	Create(ctx context.Context, tx *gorm.DB, odd *types.ODD) error
	Save(ctx context.Context, tx *gorm.DB, odd *types.ODD) error
	Delete(ctx context.Context, tx *gorm.DB, odd *types.ODD) error
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.ODD, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.ODD, error)
}

type oddRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewODDRepo(db *gorm.DB, baseLog *logger.Logger) ODDRepo {
	repoLog := baseLog.With("repo", "ODDRepo")
	return &oddRepo{db: db, log: repoLog}
}

func (r *oddRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *oddRepo) Create(ctx context.Context, tx *gorm.DB, odd *types.ODD) error {
	return r.handle(tx).WithContext(ctx).Create(odd).Error
}

func (r *oddRepo) Save(ctx context.Context, tx *gorm.DB, odd *types.ODD) error {
	return r.handle(tx).WithContext(ctx).Save(odd).Error
}

func (r *oddRepo) Delete(ctx context.Context, tx *gorm.DB, odd *types.ODD) error {
	return r.handle(tx).WithContext(ctx).Delete(odd).Error
}

func (r *oddRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.ODD, error) {
	var results []*types.ODD
	err := r.handle(tx).WithContext(ctx).
		Where("name = ?", name).
		Limit(1).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *oddRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.ODD, error) {
	var results []*types.ODD
	if err := r.handle(tx).WithContext(ctx).Order("id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
