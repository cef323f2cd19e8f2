package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/repos"
	"github.com/avready/readiness-backend/internal/types"
)

type CapabilityInput struct {
	Name               string    `json:"name"`
	Label              *string   `json:"label"`
	SuccessCriteria    *string   `json:"success_criteria"`
	TMOS               *string   `json:"tmos"`
	Progress           *float64  `json:"progress_relative_to_tmos"`
	VehiclePlatformID  *uint     `json:"vehicle_platform_id"`
	PlannedStartDate   *string   `json:"planned_start_date"`
	PlannedEndDate     *string   `json:"planned_end_date"`
	DocumentURL        *string   `json:"document_url"`
	TechnicalFunctions *[]string `json:"technical_functions"`
	ProductFeatures    *[]string `json:"product_features"`
}

type CapabilityService interface {
	List(ctx context.Context) ([]*types.Capability, error)
	Get(ctx context.Context, id uint) (*types.Capability, error)
	Create(ctx context.Context, input CapabilityInput) (*types.Capability, error)
	Update(ctx context.Context, id uint, input CapabilityInput) (*types.Capability, error)
	Delete(ctx context.Context, id uint, force bool) error
}

type capabilityService struct {
	db             *gorm.DB
	log            *logger.Logger
	capabilityRepo repos.CapabilityRepo
	functionRepo   repos.TechnicalFunctionRepo
	featureRepo    repos.ProductFeatureRepo
}

func NewCapabilityService(db *gorm.DB, baseLog *logger.Logger, capabilityRepo repos.CapabilityRepo, functionRepo repos.TechnicalFunctionRepo, featureRepo repos.ProductFeatureRepo) CapabilityService {
	serviceLog := baseLog.With("service", "CapabilityService")
	return &capabilityService{db: db, log: serviceLog, capabilityRepo: capabilityRepo, functionRepo: functionRepo, featureRepo: featureRepo}
}

func (s *capabilityService) List(ctx context.Context) ([]*types.Capability, error) {
	return s.capabilityRepo.GetAll(ctx, nil)
}

func (s *capabilityService) Get(ctx context.Context, id uint) (*types.Capability, error) {
	capability, err := s.capabilityRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if capability == nil {
		return nil, fmt.Errorf("capability %d: %w", id, ErrNotFound)
	}
	return capability, nil
}

func (s *capabilityService) Create(ctx context.Context, input CapabilityInput) (*types.Capability, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}
	var created *types.Capability
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.capabilityRepo.GetByNameOrLabel(ctx, tx, input.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("capability %q: %w", input.Name, ErrConflict)
		}
		capability := &types.Capability{Name: input.Name}
		if err := s.applyInput(ctx, tx, capability, &input); err != nil {
			return err
		}
		if err := s.capabilityRepo.Create(ctx, tx, capability); err != nil {
			return err
		}
		if err := s.applyLinks(ctx, tx, capability, &input); err != nil {
			return err
		}
		created = capability
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Capability created", "id", created.ID, "name", created.Name)
	return created, nil
}

func (s *capabilityService) Update(ctx context.Context, id uint, input CapabilityInput) (*types.Capability, error) {
	var updated *types.Capability
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		capability, err := s.capabilityRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if capability == nil {
			return fmt.Errorf("capability %d: %w", id, ErrNotFound)
		}
		if input.Name != "" {
			capability.Name = input.Name
		}
		if err := s.applyInput(ctx, tx, capability, &input); err != nil {
			return err
		}
		if err := s.capabilityRepo.Save(ctx, tx, capability); err != nil {
			return err
		}
		if err := s.applyLinks(ctx, tx, capability, &input); err != nil {
			return err
		}
		updated = capability
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *capabilityService) Delete(ctx context.Context, id uint, force bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		capability, err := s.capabilityRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if capability == nil {
			return fmt.Errorf("capability %d: %w", id, ErrNotFound)
		}
		functionLinks, featureLinks, err := s.capabilityRepo.CountLinks(ctx, tx, capability.ID)
		if err != nil {
			return err
		}
		if (functionLinks > 0 || featureLinks > 0) && !force {
			return fmt.Errorf("capability %q has %d technical functions, %d product features: %w",
				capability.Name, functionLinks, featureLinks, ErrConflict)
		}
		return s.capabilityRepo.Delete(ctx, tx, capability)
	})
}

func (s *capabilityService) applyInput(ctx context.Context, tx *gorm.DB, capability *types.Capability, input *CapabilityInput) error {
	if input.Label != nil {
		capability.Label = *input.Label
	}
	if input.SuccessCriteria != nil {
		capability.SuccessCriteria = *input.SuccessCriteria
	}
	if input.TMOS != nil {
		capability.TMOS = *input.TMOS
	}
	if input.DocumentURL != nil {
		capability.DocumentURL = *input.DocumentURL
	}
	if input.Progress != nil {
		if *input.Progress < 0.0 || *input.Progress > 100.0 {
			return fmt.Errorf("progress %v out of range 0.0-100.0: %w", *input.Progress, ErrValidation)
		}
		capability.ProgressRelativeToTMOS = *input.Progress
	}
	if input.VehiclePlatformID != nil {
		capability.VehiclePlatformID = input.VehiclePlatformID
	}
	start, err := parseInputDate(input.PlannedStartDate, "planned_start_date")
	if err != nil {
		return err
	}
	if start != nil {
		capability.PlannedStartDate = start
	}
	end, err := parseInputDate(input.PlannedEndDate, "planned_end_date")
	if err != nil {
		return err
	}
	if end != nil {
		capability.PlannedEndDate = end
	}
	return nil
}

func (s *capabilityService) applyLinks(ctx context.Context, tx *gorm.DB, capability *types.Capability, input *CapabilityInput) error {
	if input.TechnicalFunctions != nil {
		funcs := make([]*types.TechnicalFunction, 0, len(*input.TechnicalFunctions))
		for _, ref := range *input.TechnicalFunctions {
			fn, err := s.functionRepo.GetByNameOrLabel(ctx, tx, ref)
			if err != nil {
				return err
			}
			if fn == nil {
				return fmt.Errorf("technical function %q: %w", ref, ErrNotFound)
			}
			funcs = append(funcs, fn)
		}
		if err := s.capabilityRepo.ReplaceTechnicalFunctions(ctx, tx, capability, funcs); err != nil {
			return err
		}
	}
	if input.ProductFeatures != nil {
		features := make([]*types.ProductFeature, 0, len(*input.ProductFeatures))
		for _, ref := range *input.ProductFeatures {
			pf, err := s.featureRepo.GetByNameOrLabel(ctx, tx, ref)
			if err != nil {
				return err
			}
			if pf == nil {
				return fmt.Errorf("product feature %q: %w", ref, ErrNotFound)
			}
			features = append(features, pf)
		}
		if err := s.capabilityRepo.ReplaceProductFeatures(ctx, tx, capability, features); err != nil {
			return err
		}
	}
	return nil
}
