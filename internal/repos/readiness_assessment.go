package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/types"
)

// AssessmentFilter narrows assessment listings; zero values mean "no filter".
type AssessmentFilter struct {
	ProductFeatureID    uint
	TechnicalFunctionID uint
	VehiclePlatformID   uint
	MinTRL              int
}

type ReadinessAssessmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assessment *types.ReadinessAssessment) error
	Save(ctx context.Context, tx *gorm.DB, assessment *types.ReadinessAssessment) error
	GetByFunctionIDs(ctx context.Context, tx *gorm.DB, functionIDs []uint) ([]*types.ReadinessAssessment, error)
	CountByFunctionID(ctx context.Context, tx *gorm.DB, functionID uint) (int64, error)
	// CountByColumn counts assessments referencing a configuration row, e.g.
	// CountByColumn(ctx, tx, "odd_id", 3).
	CountByColumn(ctx context.Context, tx *gorm.DB, column string, id uint) (int64, error)
	DeleteByFunctionID(ctx context.Context, tx *gorm.DB, functionID uint) error
	List(ctx context.Context, tx *gorm.DB, filter AssessmentFilter) ([]*types.ReadinessAssessment, error)
}

type readinessAssessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReadinessAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) ReadinessAssessmentRepo {
	repoLog := baseLog.With("repo", "ReadinessAssessmentRepo")
	return &readinessAssessmentRepo{db: db, log: repoLog}
}

func (r *readinessAssessmentRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *readinessAssessmentRepo) Create(ctx context.Context, tx *gorm.DB, assessment *types.ReadinessAssessment) error {
	return r.handle(tx).WithContext(ctx).Create(assessment).Error
}

func (r *readinessAssessmentRepo) Save(ctx context.Context, tx *gorm.DB, assessment *types.ReadinessAssessment) error {
	return r.handle(tx).WithContext(ctx).Save(assessment).Error
}

func (r *readinessAssessmentRepo) GetByFunctionIDs(ctx context.Context, tx *gorm.DB, functionIDs []uint) ([]*types.ReadinessAssessment, error) {
	var results []*types.ReadinessAssessment
	if len(functionIDs) == 0 {
		return results, nil
	}
	err := r.handle(tx).WithContext(ctx).
		Where("technical_function_id IN ?", functionIDs).
		Order("id").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *readinessAssessmentRepo) CountByFunctionID(ctx context.Context, tx *gorm.DB, functionID uint) (int64, error) {
	var count int64
	err := r.handle(tx).WithContext(ctx).
		Model(&types.ReadinessAssessment{}).
		Where("technical_function_id = ?", functionID).
		Count(&count).Error
	return count, err
}

func (r *readinessAssessmentRepo) CountByColumn(ctx context.Context, tx *gorm.DB, column string, id uint) (int64, error) {
	var count int64
	err := r.handle(tx).WithContext(ctx).
		Model(&types.ReadinessAssessment{}).
		Where(column+" = ?", id).
		Count(&count).Error
	return count, err
}

func (r *readinessAssessmentRepo) DeleteByFunctionID(ctx context.Context, tx *gorm.DB, functionID uint) error {
	return r.handle(tx).WithContext(ctx).
		Where("technical_function_id = ?", functionID).
		Delete(&types.ReadinessAssessment{}).Error
}

func (r *readinessAssessmentRepo) List(ctx context.Context, tx *gorm.DB, filter AssessmentFilter) ([]*types.ReadinessAssessment, error) {
	query := r.handle(tx).WithContext(ctx).
		Model(&types.ReadinessAssessment{}).
		Preload("TechnicalFunction").
		Preload("ReadinessLevel").
		Preload("VehiclePlatform").
		Preload("ODD").
		Preload("Environment").
		Preload("Trailer")

	if filter.ProductFeatureID != 0 {
		query = query.Where(`technical_function_id IN (
			SELECT ctf.technical_function_id
			FROM capability_technical_functions ctf
			JOIN capability_product_features cpf ON cpf.capability_id = ctf.capability_id
			WHERE cpf.product_feature_id = ?)`, filter.ProductFeatureID)
	}
	if filter.TechnicalFunctionID != 0 {
		query = query.Where("technical_function_id = ?", filter.TechnicalFunctionID)
	}
	if filter.VehiclePlatformID != 0 {
		query = query.Where("vehicle_platform_id = ?", filter.VehiclePlatformID)
	}
	if filter.MinTRL != 0 {
		query = query.Where(`readiness_level_id IN (
			SELECT id FROM technical_readiness_levels WHERE level >= ?)`, filter.MinTRL)
	}

	var results []*types.ReadinessAssessment
	if err := query.Order("id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
