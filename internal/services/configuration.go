package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/repos"
	"github.com/avready/readiness-backend/internal/types"
)

// ConfigurationSnapshot is the full set of assessment dimensions plus the
// TRL scale, as served on the configurations page.
type ConfigurationSnapshot struct {
	VehiclePlatforms []*types.VehiclePlatform         `json:"vehicle_platforms"`
	ODDs             []*types.ODD                     `json:"odds"`
	Environments     []*types.Environment             `json:"environments"`
	Trailers         []*types.Trailer                 `json:"trailers"`
	ReadinessLevels  []*types.TechnicalReadinessLevel `json:"readiness_levels"`
}

type ConfigurationService interface {
	Snapshot(ctx context.Context) (*ConfigurationSnapshot, error)
}

type configurationService struct {
	db           *gorm.DB
	log          *logger.Logger
	platformRepo repos.VehiclePlatformRepo
	oddRepo      repos.ODDRepo
	envRepo      repos.EnvironmentRepo
	trailerRepo  repos.TrailerRepo
	levelRepo    repos.ReadinessLevelRepo
}

func NewConfigurationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	platformRepo repos.VehiclePlatformRepo,
	oddRepo repos.ODDRepo,
	envRepo repos.EnvironmentRepo,
	trailerRepo repos.TrailerRepo,
	levelRepo repos.ReadinessLevelRepo,
) ConfigurationService {
	serviceLog := baseLog.With("service", "ConfigurationService")
	return &configurationService{
		db:           db,
		log:          serviceLog,
		platformRepo: platformRepo,
		oddRepo:      oddRepo,
		envRepo:      envRepo,
		trailerRepo:  trailerRepo,
		levelRepo:    levelRepo,
	}
}

func (s *configurationService) Snapshot(ctx context.Context) (*ConfigurationSnapshot, error) {
	platforms, err := s.platformRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	odds, err := s.oddRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	environments, err := s.envRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	trailers, err := s.trailerRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	levels, err := s.levelRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &ConfigurationSnapshot{
		VehiclePlatforms: platforms,
		ODDs:             odds,
		Environments:     environments,
		Trailers:         trailers,
		ReadinessLevels:  levels,
	}, nil
}
