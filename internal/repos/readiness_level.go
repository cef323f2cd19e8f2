package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/types"
)

type ReadinessLevelRepo interface {
	Save(ctx context.Context, tx *gorm.DB, level *types.TechnicalReadinessLevel) error
	GetByLevel(ctx context.Context, tx *gorm.DB, level int) (*types.TechnicalReadinessLevel, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.TechnicalReadinessLevel, error)
}

type readinessLevelRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReadinessLevelRepo(db *gorm.DB, baseLog *logger.Logger) ReadinessLevelRepo {
	repoLog := baseLog.With("repo", "ReadinessLevelRepo")
	return &readinessLevelRepo{db: db, log: repoLog}
}

func (r *readinessLevelRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *readinessLevelRepo) Save(ctx context.Context, tx *gorm.DB, level *types.TechnicalReadinessLevel) error {
	return r.handle(tx).WithContext(ctx).Save(level).Error
}

func (r *readinessLevelRepo) GetByLevel(ctx context.Context, tx *gorm.DB, level int) (*types.TechnicalReadinessLevel, error) {
	var results []*types.TechnicalReadinessLevel
	err := r.handle(tx).WithContext(ctx).
		Where("level = ?", level).
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

func (r *readinessLevelRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.TechnicalReadinessLevel, error) {
	var results []*types.TechnicalReadinessLevel
	if err := r.handle(tx).WithContext(ctx).Order("level").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
