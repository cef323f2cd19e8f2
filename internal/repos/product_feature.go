package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/types"
)

type ProductFeatureRepo interface {
	Create(ctx context.Context, tx *gorm.DB, feature *types.ProductFeature) error
	Save(ctx context.Context, tx *gorm.DB, feature *types.ProductFeature) error
	Delete(ctx context.Context, tx *gorm.DB, feature *types.ProductFeature) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.ProductFeature, error)
	// GetByNameOrLabel returns nil without error when no row matches.
	GetByNameOrLabel(ctx context.Context, tx *gorm.DB, ref string) (*types.ProductFeature, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.ProductFeature, error)
	ReplaceCapabilities(ctx context.Context, tx *gorm.DB, feature *types.ProductFeature, caps []*types.Capability) error
	CountCapabilityLinks(ctx context.Context, tx *gorm.DB, featureID uint) (int64, error)
}

type productFeatureRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductFeatureRepo(db *gorm.DB, baseLog *logger.Logger) ProductFeatureRepo {
	repoLog := baseLog.With("repo", "ProductFeatureRepo")
	return &productFeatureRepo{db: db, log: repoLog}
}

func (r *productFeatureRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *productFeatureRepo) Create(ctx context.Context, tx *gorm.DB, feature *types.ProductFeature) error {
	return r.handle(tx).WithContext(ctx).Create(feature).Error
}

func (r *productFeatureRepo) Save(ctx context.Context, tx *gorm.DB, feature *types.ProductFeature) error {
	return r.handle(tx).WithContext(ctx).Save(feature).Error
}

func (r *productFeatureRepo) Delete(ctx context.Context, tx *gorm.DB, feature *types.ProductFeature) error {
	transaction := r.handle(tx).WithContext(ctx)
	if err := transaction.Model(feature).Association("Capabilities").Clear(); err != nil {
		return err
	}
	return transaction.Delete(feature).Error
}

func (r *productFeatureRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.ProductFeature, error) {
	var result types.ProductFeature
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

func (r *productFeatureRepo) GetByNameOrLabel(ctx context.Context, tx *gorm.DB, ref string) (*types.ProductFeature, error) {
	var results []*types.ProductFeature
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

func (r *productFeatureRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.ProductFeature, error) {
	var results []*types.ProductFeature
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

func (r *productFeatureRepo) ReplaceCapabilities(ctx context.Context, tx *gorm.DB, feature *types.ProductFeature, caps []*types.Capability) error {
	return r.handle(tx).WithContext(ctx).Model(feature).Association("Capabilities").Replace(caps)
}

func (r *productFeatureRepo) CountCapabilityLinks(ctx context.Context, tx *gorm.DB, featureID uint) (int64, error) {
	var count int64
	err := r.handle(tx).WithContext(ctx).
		Table("capability_product_features").
		Where("product_feature_id = ?", featureID).
		Count(&count).Error
	return count, err
}
