package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/types"
)

type EnvironmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, environment *types.Environment) error
	Save(ctx context.Context, tx *gorm.DB, environment *types.Environment) error
	Delete(ctx context.Context, tx *gorm.DB, environment *types.Environment) error
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Environment, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Environment, error)
}

type environmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnvironmentRepo(db *gorm.DB, baseLog *logger.Logger) EnvironmentRepo {
	repoLog := baseLog.With("repo", "EnvironmentRepo")
	return &environmentRepo{db: db, log: repoLog}
}

func (r *environmentRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *environmentRepo) Create(ctx context.Context, tx *gorm.DB, environment *types.Environment) error {
	return r.handle(tx).WithContext(ctx).Create(environment).Error
}

func (r *environmentRepo) Save(ctx context.Context, tx *gorm.DB, environment *types.Environment) error {
	return r.handle(tx).WithContext(ctx).Save(environment).Error
}

func (r *environmentRepo) Delete(ctx context.Context, tx *gorm.DB, environment *types.Environment) error {
	return r.handle(tx).WithContext(ctx).Delete(environment).Error
}

func (r *environmentRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Environment, error) {
	var results []*types.Environment
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

func (r *environmentRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Environment, error) {
	var results []*types.Environment
	if err := r.handle(tx).WithContext(ctx).Order("id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
