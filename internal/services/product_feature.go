package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/avready/readiness-backend/internal/batch"
	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/repos"
	"github.com/avready/readiness-backend/internal/types"
)

// ProductFeatureInput carries the writable fields of a product feature. Nil
// pointers mean "leave unchanged" on update.
type ProductFeatureInput struct {
	Name               string    `json:"name"`
	Description        *string   `json:"description"`
	Label              *string   `json:"label"`
	SwimlaneDecorators *string   `json:"swimlane_decorators"`
	TMOS               *string   `json:"tmos"`
	Progress           *float64  `json:"status_relative_to_tmos"`
	VehiclePlatformID  *uint     `json:"vehicle_platform_id"`
	PlannedStartDate   *string   `json:"planned_start_date"`
	PlannedEndDate     *string   `json:"planned_end_date"`
	ActiveFlag         *string   `json:"active_flag"`
	DocumentURL        *string   `json:"document_url"`
	Capabilities       *[]string `json:"capabilities"`
}

type ProductFeatureService interface {
	List(ctx context.Context) ([]*types.ProductFeature, error)
	Get(ctx context.Context, id uint) (*types.ProductFeature, error)
	Create(ctx context.Context, input ProductFeatureInput) (*types.ProductFeature, error)
	Update(ctx context.Context, id uint, input ProductFeatureInput) (*types.ProductFeature, error)
	Delete(ctx context.Context, id uint, force bool) error
}

type productFeatureService struct {
	db             *gorm.DB
	log            *logger.Logger
	featureRepo    repos.ProductFeatureRepo
	capabilityRepo repos.CapabilityRepo
}

func NewProductFeatureService(db *gorm.DB, baseLog *logger.Logger, featureRepo repos.ProductFeatureRepo, capabilityRepo repos.CapabilityRepo) ProductFeatureService {
	serviceLog := baseLog.With("service", "ProductFeatureService")
	return &productFeatureService{db: db, log: serviceLog, featureRepo: featureRepo, capabilityRepo: capabilityRepo}
}

func (s *productFeatureService) List(ctx context.Context) ([]*types.ProductFeature, error) {
	return s.featureRepo.GetAll(ctx, nil)
}

func (s *productFeatureService) Get(ctx context.Context, id uint) (*types.ProductFeature, error) {
	feature, err := s.featureRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if feature == nil {
		return nil, fmt.Errorf("product feature %d: %w", id, ErrNotFound)
	}
	return feature, nil
}

func (s *productFeatureService) Create(ctx context.Context, input ProductFeatureInput) (*types.ProductFeature, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}
	var created *types.ProductFeature
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.featureRepo.GetByNameOrLabel(ctx, tx, input.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("product feature %q: %w", input.Name, ErrConflict)
		}
		feature := &types.ProductFeature{Name: input.Name}
		if err := applyFeatureInput(feature, &input); err != nil {
			return err
		}
		if err := s.featureRepo.Create(ctx, tx, feature); err != nil {
			return err
		}
		if input.Capabilities != nil {
			caps, err := resolveCapabilityRefs(ctx, tx, s.capabilityRepo, *input.Capabilities)
			if err != nil {
				return err
			}
			if err := s.featureRepo.ReplaceCapabilities(ctx, tx, feature, caps); err != nil {
				return err
			}
		}
		created = feature
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Product feature created", "id", created.ID, "name", created.Name)
	return created, nil
}

func (s *productFeatureService) Update(ctx context.Context, id uint, input ProductFeatureInput) (*types.ProductFeature, error) {
	var updated *types.ProductFeature
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		feature, err := s.featureRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if feature == nil {
			return fmt.Errorf("product feature %d: %w", id, ErrNotFound)
		}
		if input.Name != "" {
			feature.Name = input.Name
		}
		if err := applyFeatureInput(feature, &input); err != nil {
			return err
		}
		if err := s.featureRepo.Save(ctx, tx, feature); err != nil {
			return err
		}
		if input.Capabilities != nil {
			caps, err := resolveCapabilityRefs(ctx, tx, s.capabilityRepo, *input.Capabilities)
			if err != nil {
				return err
			}
			if err := s.featureRepo.ReplaceCapabilities(ctx, tx, feature, caps); err != nil {
				return err
			}
		}
		updated = feature
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *productFeatureService) Delete(ctx context.Context, id uint, force bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		feature, err := s.featureRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if feature == nil {
			return fmt.Errorf("product feature %d: %w", id, ErrNotFound)
		}
		links, err := s.featureRepo.CountCapabilityLinks(ctx, tx, feature.ID)
		if err != nil {
			return err
		}
		if links > 0 && !force {
			return fmt.Errorf("product feature %q has %d capabilities: %w", feature.Name, links, ErrConflict)
		}
		return s.featureRepo.Delete(ctx, tx, feature)
	})
}

func applyFeatureInput(feature *types.ProductFeature, input *ProductFeatureInput) error {
	if input.Description != nil {
		feature.Description = *input.Description
	}
	if input.Label != nil {
		feature.Label = *input.Label
	}
	if input.SwimlaneDecorators != nil {
		feature.SwimlaneDecorators = *input.SwimlaneDecorators
	}
	if input.TMOS != nil {
		feature.TMOS = *input.TMOS
	}
	if input.ActiveFlag != nil {
		feature.ActiveFlag = *input.ActiveFlag
	}
	if input.DocumentURL != nil {
		feature.DocumentURL = *input.DocumentURL
	}
	if input.Progress != nil {
		if *input.Progress < 0.0 || *input.Progress > 100.0 {
			return fmt.Errorf("progress %v out of range 0.0-100.0: %w", *input.Progress, ErrValidation)
		}
		feature.ProgressRelativeToTMOS = *input.Progress
	}
	if input.VehiclePlatformID != nil {
		feature.VehiclePlatformID = input.VehiclePlatformID
	}
	start, err := parseInputDate(input.PlannedStartDate, "planned_start_date")
	if err != nil {
		return err
	}
	if start != nil {
		feature.PlannedStartDate = start
	}
	end, err := parseInputDate(input.PlannedEndDate, "planned_end_date")
	if err != nil {
		return err
	}
	if end != nil {
		feature.PlannedEndDate = end
	}
	return nil
}

func parseInputDate(value *string, field string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := batch.ParseDate(*value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", field, *value, ErrValidation)
	}
	return t, nil
}

func resolveCapabilityRefs(ctx context.Context, tx *gorm.DB, capabilityRepo repos.CapabilityRepo, refs []string) ([]*types.Capability, error) {
	caps := make([]*types.Capability, 0, len(refs))
	for _, ref := range refs {
		capability, err := capabilityRepo.GetByNameOrLabel(ctx, tx, ref)
		if err != nil {
			return nil, err
		}
		if capability == nil {
			return nil, fmt.Errorf("capability %q: %w", ref, ErrNotFound)
		}
		caps = append(caps, capability)
	}
	return caps, nil
}
