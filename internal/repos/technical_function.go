package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/types"
)

type TechnicalFunctionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, function *types.TechnicalFunction) error
	Save(ctx context.Context, tx *gorm.DB, function *types.TechnicalFunction) error
	Delete(ctx context.Context, tx *gorm.DB, function *types.TechnicalFunction) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.TechnicalFunction, error)
	GetByNameOrLabel(ctx context.Context, tx *gorm.DB, ref string) (*types.TechnicalFunction, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.TechnicalFunction, error)
	ReplaceCapabilities(ctx context.Context, tx *gorm.DB, function *types.TechnicalFunction, caps []*types.Capability) error
}

type technicalFunctionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTechnicalFunctionRepo(db *gorm.DB, baseLog *logger.Logger) TechnicalFunctionRepo {
	repoLog := baseLog.With("repo", "TechnicalFunctionRepo")
	return &technicalFunctionRepo{db: db, log: repoLog}
}

func (r *technicalFunctionRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *technicalFunctionRepo) Create(ctx context.Context, tx *gorm.DB, function *types.TechnicalFunction) error {
	return r.handle(tx).WithContext(ctx).Create(function).Error
}

func (r *technicalFunctionRepo) Save(ctx context.Context, tx *gorm.DB, function *types.TechnicalFunction) error {
	return r.handle(tx).WithContext(ctx).Save(function).Error
}

func (r *technicalFunctionRepo) Delete(ctx context.Context, tx *gorm.DB, function *types.TechnicalFunction) error {
	transaction := r.handle(tx).WithContext(ctx)
	if err := transaction.Model(function).Association("Capabilities").Clear(); err != nil {
		return err
	}
	return transaction.Delete(function).Error
}

func (r *technicalFunctionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.TechnicalFunction, error) {
	var result types.TechnicalFunction
	err := r.handle(tx).WithContext(ctx).
		Preload("Capabilities").
		Preload("VehiclePlatform").
		First(&result, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *technicalFunctionRepo) GetByNameOrLabel(ctx context.Context, tx *gorm.DB, ref string) (*types.TechnicalFunction, error) {
	var results []*types.TechnicalFunction
	err := r.handle(tx).WithContext(ctx).
		Preload("Capabilities").
		Where("name = ?", ref).
		Limit(1).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	if len(results) > 0 {
		return results[0], nil
	}
	err = r.handle(tx).WithContext(ctx).
		Preload("Capabilities").
		Where("label = ? AND label <> ''", ref).
		Limit(1).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	if len(results) > 0 {
		return results[0], nil
	}
	return nil, nil
}

func (r *technicalFunctionRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.TechnicalFunction, error) {
	var results []*types.TechnicalFunction
	err := r.handle(tx).WithContext(ctx).
		Preload("Capabilities").
		Preload("VehiclePlatform").
		Order("id").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *technicalFunctionRepo) ReplaceCapabilities(ctx context.Context, tx *gorm.DB, function *types.TechnicalFunction, caps []*types.Capability) error {
	return r.handle(tx).WithContext(ctx).Model(function).Association("Capabilities").Replace(caps)
}
