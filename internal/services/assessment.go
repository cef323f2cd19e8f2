package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/repos"
	"github.com/avready/readiness-backend/internal/types"
)

type AssessmentInput struct {
	TechnicalFunctionID uint    `json:"technical_function_id"`
	Level               int     `json:"level"`
	VehiclePlatformID   uint    `json:"vehicle_platform_id"`
	ODDID               uint    `json:"odd_id"`
	EnvironmentID       uint    `json:"environment_id"`
	TrailerID           *uint   `json:"trailer_id"`
	Assessor            string  `json:"assessor"`
	Notes               string  `json:"notes"`
	Confidence          *int    `json:"confidence"`
	TargetTRL           *int    `json:"target_trl"`
	AssessmentDate      *string `json:"assessment_date"`
	NextReviewDate      *string `json:"next_review_date"`
}

type AssessmentService interface {
	List(ctx context.Context, filter repos.AssessmentFilter) ([]*types.ReadinessAssessment, error)
	Create(ctx context.Context, input AssessmentInput) (*types.ReadinessAssessment, error)
}

type assessmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	assessmentRepo repos.ReadinessAssessmentRepo
	functionRepo   repos.TechnicalFunctionRepo
	levelRepo      repos.ReadinessLevelRepo
	now            func() time.Time
}

func NewAssessmentService(db *gorm.DB, baseLog *logger.Logger, assessmentRepo repos.ReadinessAssessmentRepo, functionRepo repos.TechnicalFunctionRepo, levelRepo repos.ReadinessLevelRepo) AssessmentService {
	serviceLog := baseLog.With("service", "AssessmentService")
	return &assessmentService{
		db:             db,
		log:            serviceLog,
		assessmentRepo: assessmentRepo,
		functionRepo:   functionRepo,
		levelRepo:      levelRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *assessmentService) List(ctx context.Context, filter repos.AssessmentFilter) ([]*types.ReadinessAssessment, error) {
	return s.assessmentRepo.List(ctx, nil, filter)
}

func (s *assessmentService) Create(ctx context.Context, input AssessmentInput) (*types.ReadinessAssessment, error) {
	if input.Level < 1 || input.Level > 9 {
		return nil, fmt.Errorf("level %d out of range 1-9: %w", input.Level, ErrValidation)
	}
	if input.Confidence != nil && (*input.Confidence < 1 || *input.Confidence > 5) {
		return nil, fmt.Errorf("confidence %d out of range 1-5: %w", *input.Confidence, ErrValidation)
	}
	if input.TargetTRL != nil && (*input.TargetTRL < 1 || *input.TargetTRL > 9) {
		return nil, fmt.Errorf("target_trl %d out of range 1-9: %w", *input.TargetTRL, ErrValidation)
	}

	var created *types.ReadinessAssessment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		function, err := s.functionRepo.GetByID(ctx, tx, input.TechnicalFunctionID)
		if err != nil {
			return err
		}
		if function == nil {
			return fmt.Errorf("technical function %d: %w", input.TechnicalFunctionID, ErrNotFound)
		}
		level, err := s.levelRepo.GetByLevel(ctx, tx, input.Level)
		if err != nil {
			return err
		}
		if level == nil {
			return fmt.Errorf("TRL level %d: %w", input.Level, ErrNotFound)
		}

		assessment := &types.ReadinessAssessment{
			TechnicalFunctionID: function.ID,
			ReadinessLevelID:    level.ID,
			VehiclePlatformID:   input.VehiclePlatformID,
			ODDID:               input.ODDID,
			EnvironmentID:       input.EnvironmentID,
			TrailerID:           input.TrailerID,
			Assessor:            input.Assessor,
			Notes:               input.Notes,
			Confidence:          3,
			AssessmentDate:      s.now(),
		}
		if input.Confidence != nil {
			assessment.Confidence = *input.Confidence
		}
		if input.TargetTRL != nil {
			assessment.TargetTRL = *input.TargetTRL
		}
		when, err := parseInputDate(input.AssessmentDate, "assessment_date")
		if err != nil {
			return err
		}
		if when != nil {
			assessment.AssessmentDate = *when
		}
		review, err := parseInputDate(input.NextReviewDate, "next_review_date")
		if err != nil {
			return err
		}
		assessment.NextReviewDate = review

		if err := s.assessmentRepo.Create(ctx, tx, assessment); err != nil {
			return err
		}
		created = assessment
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Readiness assessment recorded",
		"id", created.ID,
		"technical_function_id", created.TechnicalFunctionID,
		"level", input.Level)
	return created, nil
}
