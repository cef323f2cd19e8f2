package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/types"
)

type TrailerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, trailer *types.Trailer) error
	Save(ctx context.Context, tx *gorm.DB, trailer *types.Trailer) error
	Delete(ctx context.Context, tx *gorm.DB, trailer *types.Trailer) error
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Trailer, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Trailer, error)
}

type trailerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrailerRepo(db *gorm.DB, baseLog *logger.Logger) TrailerRepo {
	repoLog := baseLog.With("repo", "TrailerRepo")
	return &trailerRepo{db: db, log: repoLog}
}

func (r *trailerRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *trailerRepo) Create(ctx context.Context, tx *gorm.DB, trailer *types.Trailer) error {
	return r.handle(tx).WithContext(ctx).Create(trailer).Error
}

func (r *trailerRepo) Save(ctx context.Context, tx *gorm.DB, trailer *types.Trailer) error {
	return r.handle(tx).WithContext(ctx).Save(trailer).Error
}

func (r *trailerRepo) Delete(ctx context.Context, tx *gorm.DB, trailer *types.Trailer) error {
	return r.handle(tx).WithContext(ctx).Delete(trailer).Error
}

func (r *trailerRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Trailer, error) {
	var results []*types.Trailer
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

func (r *trailerRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Trailer, error) {
	var results []*types.Trailer
	if err := r.handle(tx).WithContext(ctx).Order("id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
