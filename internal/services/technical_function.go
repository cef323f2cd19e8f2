package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/repos"
	"github.com/avready/readiness-backend/internal/types"
)

type TechnicalFunctionInput struct {
	Name              string    `json:"name"`
	Description       *string   `json:"description"`
	Label             *string   `json:"label"`
	SuccessCriteria   *string   `json:"success_criteria"`
	TMOS              *string   `json:"tmos"`
	Progress          *float64  `json:"status_relative_to_tmos"`
	VehiclePlatformID *uint     `json:"vehicle_platform_id"`
	PlannedStartDate  *string   `json:"planned_start_date"`
	PlannedEndDate    *string   `json:"planned_end_date"`
	DocumentURL       *string   `json:"document_url"`
	Capabilities      *[]string `json:"capabilities"`
}

type TechnicalFunctionService interface {
	List(ctx context.Context) ([]*types.TechnicalFunction, error)
	Get(ctx context.Context, id uint) (*types.TechnicalFunction, error)
	Create(ctx context.Context, input TechnicalFunctionInput) (*types.TechnicalFunction, error)
	Update(ctx context.Context, id uint, input TechnicalFunctionInput) (*types.TechnicalFunction, error)
	Delete(ctx context.Context, id uint, force bool) error
}

type technicalFunctionService struct {
	db             *gorm.DB
	log            *logger.Logger
	functionRepo   repos.TechnicalFunctionRepo
	capabilityRepo repos.CapabilityRepo
	assessmentRepo repos.ReadinessAssessmentRepo
}

func NewTechnicalFunctionService(db *gorm.DB, baseLog *logger.Logger, functionRepo repos.TechnicalFunctionRepo, capabilityRepo repos.CapabilityRepo, assessmentRepo repos.ReadinessAssessmentRepo) TechnicalFunctionService {
	serviceLog := baseLog.With("service", "TechnicalFunctionService")
	return &technicalFunctionService{db: db, log: serviceLog, functionRepo: functionRepo, capabilityRepo: capabilityRepo, assessmentRepo: assessmentRepo}
}

func (s *technicalFunctionService) List(ctx context.Context) ([]*types.TechnicalFunction, error) {
	return s.functionRepo.GetAll(ctx, nil)
}

func (s *technicalFunctionService) Get(ctx context.Context, id uint) (*types.TechnicalFunction, error) {
	function, err := s.functionRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if function == nil {
		return nil, fmt.Errorf("technical function %d: %w", id, ErrNotFound)
	}
	return function, nil
}

func (s *technicalFunctionService) Create(ctx context.Context, input TechnicalFunctionInput) (*types.TechnicalFunction, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}
	var created *types.TechnicalFunction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.functionRepo.GetByNameOrLabel(ctx, tx, input.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("technical function %q: %w", input.Name, ErrConflict)
		}
		function := &types.TechnicalFunction{Name: input.Name}
		if err := applyFunctionInput(function, &input); err != nil {
			return err
		}
		if err := s.functionRepo.Create(ctx, tx, function); err != nil {
			return err
		}
		if input.Capabilities != nil {
			caps, err := resolveCapabilityRefs(ctx, tx, s.capabilityRepo, *input.Capabilities)
			if err != nil {
				return err
			}
			if err := s.functionRepo.ReplaceCapabilities(ctx, tx, function, caps); err != nil {
				return err
			}
		}
		created = function
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Technical function created", "id", created.ID, "name", created.Name)
	return created, nil
}

func (s *technicalFunctionService) Update(ctx context.Context, id uint, input TechnicalFunctionInput) (*types.TechnicalFunction, error) {
	var updated *types.TechnicalFunction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		function, err := s.functionRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if function == nil {
			return fmt.Errorf("technical function %d: %w", id, ErrNotFound)
		}
		if input.Name != "" {
			function.Name = input.Name
		}
		if err := applyFunctionInput(function, &input); err != nil {
			return err
		}
		if err := s.functionRepo.Save(ctx, tx, function); err != nil {
			return err
		}
		if input.Capabilities != nil {
			caps, err := resolveCapabilityRefs(ctx, tx, s.capabilityRepo, *input.Capabilities)
			if err != nil {
				return err
			}
			if err := s.functionRepo.ReplaceCapabilities(ctx, tx, function, caps); err != nil {
				return err
			}
		}
		updated = function
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *technicalFunctionService) Delete(ctx context.Context, id uint, force bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		function, err := s.functionRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if function == nil {
			return fmt.Errorf("technical function %d: %w", id, ErrNotFound)
		}
		assessments, err := s.assessmentRepo.CountByFunctionID(ctx, tx, function.ID)
		if err != nil {
			return err
		}
		if assessments > 0 && !force {
			return fmt.Errorf("technical function %q has %d readiness assessments: %w", function.Name, assessments, ErrConflict)
		}
		if assessments > 0 {
			if err := s.assessmentRepo.DeleteByFunctionID(ctx, tx, function.ID); err != nil {
				return err
			}
		}
		return s.functionRepo.Delete(ctx, tx, function)
	})
}

func applyFunctionInput(function *types.TechnicalFunction, input *TechnicalFunctionInput) error {
	if input.Description != nil {
		function.Description = *input.Description
	}
	if input.Label != nil {
		function.Label = *input.Label
	}
	if input.SuccessCriteria != nil {
		function.SuccessCriteria = *input.SuccessCriteria
	}
	if input.TMOS != nil {
		function.TMOS = *input.TMOS
	}
	if input.DocumentURL != nil {
		function.DocumentURL = *input.DocumentURL
	}
	if input.Progress != nil {
		if *input.Progress < 0.0 || *input.Progress > 100.0 {
			return fmt.Errorf("progress %v out of range 0.0-100.0: %w", *input.Progress, ErrValidation)
		}
		function.ProgressRelativeToTMOS = *input.Progress
	}
	if input.VehiclePlatformID != nil {
		function.VehiclePlatformID = input.VehiclePlatformID
	}
	start, err := parseInputDate(input.PlannedStartDate, "planned_start_date")
	if err != nil {
		return err
	}
	if start != nil {
		function.PlannedStartDate = start
	}
	end, err := parseInputDate(input.PlannedEndDate, "planned_end_date")
	if err != nil {
		return err
	}
	if end != nil {
		function.PlannedEndDate = end
	}
	return nil
}
