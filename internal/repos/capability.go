package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/types"
)

type CapabilityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, capability *types.Capability) error
	Save(ctx context.Context, tx *gorm.DB, capability *types.Capability) error
	Delete(ctx context.Context, tx *gorm.DB, capability *types.Capability) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Capability, error)
	GetByNameOrLabel(ctx context.Context, tx *gorm.DB, ref string) (*types.Capability, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Capability, error)
	ReplaceTechnicalFunctions(ctx context.Context, tx *gorm.DB, capability *types.Capability, funcs []*types.TechnicalFunction) error
	ReplaceProductFeatures(ctx context.Context, tx *gorm.DB, capability *types.Capability, features []*types.ProductFeature) error
	// ListTechnicalFunctionIDs returns the ids of the technical functions
	// linked to any of the given capabilities.
	ListTechnicalFunctionIDs(ctx context.Context, tx *gorm.DB, capabilityIDs []uint) ([]uint, error)
	CountLinks(ctx context.Context, tx *gorm.DB, capabilityID uint) (functionLinks int64, featureLinks int64, err error)
}

type capabilityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCapabilityRepo(db *gorm.DB, baseLog *logger.Logger) CapabilityRepo {
	repoLog := baseLog.With("repo", "CapabilityRepo")
	return &capabilityRepo{db: db, log: repoLog}
}

func (r *capabilityRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *capabilityRepo) Create(ctx context.Context, tx *gorm.DB, capability *types.Capability) error {
	return r.handle(tx).WithContext(ctx).Create(capability).Error
}

func (r *capabilityRepo) Save(ctx context.Context, tx *gorm.DB, capability *types.Capability) error {
	return r.handle(tx).WithContext(ctx).Save(capability).Error
}

func (r *capabilityRepo) Delete(ctx context.Context, tx *gorm.DB, capability *types.Capability) error {
	transaction := r.handle(tx).WithContext(ctx)
	if err := transaction.Model(capability).Association("TechnicalFunctions").Clear(); err != nil {
		return err
	}
	if err := transaction.Model(capability).Association("ProductFeatures").Clear(); err != nil {
		return err
	}
	return transaction.Delete(capability).Error
}

func (r *capabilityRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Capability, error) {
	var result types.Capability
	err := r.handle(tx).WithContext(ctx).
		Preload("TechnicalFunctions").
		Preload("ProductFeatures").
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

func (r *capabilityRepo) GetByNameOrLabel(ctx context.Context, tx *gorm.DB, ref string) (*types.Capability, error) {
	var results []*types.Capability
	err := r.handle(tx).WithContext(ctx).
		Preload("TechnicalFunctions").
		Preload("ProductFeatures").
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
		Preload("TechnicalFunctions").
		Preload("ProductFeatures").
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

func (r *capabilityRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Capability, error) {
	var results []*types.Capability
	err := r.handle(tx).WithContext(ctx).
		Preload("TechnicalFunctions").
		Preload("ProductFeatures").
		Preload("VehiclePlatform").
		Order("id").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *capabilityRepo) ReplaceTechnicalFunctions(ctx context.Context, tx *gorm.DB, capability *types.Capability, funcs []*types.TechnicalFunction) error {
	return r.handle(tx).WithContext(ctx).Model(capability).Association("TechnicalFunctions").Replace(funcs)
}

func (r *capabilityRepo) ReplaceProductFeatures(ctx context.Context, tx *gorm.DB, capability *types.Capability, features []*types.ProductFeature) error {
	return r.handle(tx).WithContext(ctx).Model(capability).Association("ProductFeatures").Replace(features)
}

func (r *capabilityRepo) ListTechnicalFunctionIDs(ctx context.Context, tx *gorm.DB, capabilityIDs []uint) ([]uint, error) {
	var ids []uint
	if len(capabilityIDs) == 0 {
		return ids, nil
	}
	err := r.handle(tx).WithContext(ctx).
		Table("capability_technical_functions").
		Where("capability_id IN ?", capabilityIDs).
		Distinct("technical_function_id").
		Pluck("technical_function_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *capabilityRepo) CountLinks(ctx context.Context, tx *gorm.DB, capabilityID uint) (int64, int64, error) {
	transaction := r.handle(tx).WithContext(ctx)
	var functionLinks, featureLinks int64
	if err := transaction.
		Table("capability_technical_functions").
		Where("capability_id = ?", capabilityID).
		Count(&functionLinks).Error; err != nil {
		return 0, 0, err
	}
	if err := transaction.
		Table("capability_product_features").
		Where("capability_id = ?", capabilityID).
		Count(&featureLinks).Error; err != nil {
		return 0, 0, err
	}
	return functionLinks, featureLinks, nil
}
