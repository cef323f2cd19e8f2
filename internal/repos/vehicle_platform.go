package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/types"
)

type VehiclePlatformRepo interface {
	Create(ctx context.Context, tx *gorm.DB, platform *types.VehiclePlatform) error
	Save(ctx context.Context, tx *gorm.DB, platform *types.VehiclePlatform) error
	Delete(ctx context.Context, tx *gorm.DB, platform *types.VehiclePlatform) error
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.VehiclePlatform, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.VehiclePlatform, error)
}

type vehiclePlatformRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVehiclePlatformRepo(db *gorm.DB, baseLog *logger.Logger) VehiclePlatformRepo {
	repoLog := baseLog.With("repo", "VehiclePlatformRepo")
	return &vehiclePlatformRepo{db: db, log: repoLog}
}

func (r *vehiclePlatformRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *vehiclePlatformRepo) Create(ctx context.Context, tx *gorm.DB, platform *types.VehiclePlatform) error {
	return r.handle(tx).WithContext(ctx).Create(platform).Error
}

func (r *vehiclePlatformRepo) Save(ctx context.Context, tx *gorm.DB, platform *types.VehiclePlatform) error {
	return r.handle(tx).WithContext(ctx).Save(platform).Error
}

func (r *vehiclePlatformRepo) Delete(ctx context.Context, tx *gorm.DB, platform *types.VehiclePlatform) error {
	return r.handle(tx).WithContext(ctx).Delete(platform).Error
}

func (r *vehiclePlatformRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.VehiclePlatform, error) {
	var results []*types.VehiclePlatform
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

func (r *vehiclePlatformRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.VehiclePlatform, error) {
	var results []*types.VehiclePlatform
	if err := r.handle(tx).WithContext(ctx).Order("id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
