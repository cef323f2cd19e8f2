package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/repos"
)

// FeatureRollup summarizes readiness for one product feature.
type FeatureRollup struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Label           string  `json:"label,omitempty"`
	ActiveFlag      string  `json:"active_flag"`
	Progress        float64 `json:"status_relative_to_tmos"`
	AssessmentCount int     `json:"assessment_count"`
	AverageTRL      float64 `json:"avg_trl"`
}

type DashboardOverview struct {
	TotalAssessments int             `json:"total_assessments"`
	HighReadiness    int             `json:"high_readiness"`   // TRL 7-9
	MediumReadiness  int             `json:"medium_readiness"` // TRL 4-6
	LowReadiness     int             `json:"low_readiness"`    // TRL 1-3
	Features         []FeatureRollup `json:"features"`
}

type ProductReadiness struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	AverageTRL      float64 `json:"avg_trl"`
	AssessmentCount int     `json:"assessment_count"`
}

// ReadinessChartData feeds the frontend charts: how many assessments sit at
// each TRL, and the average TRL per product feature.
type ReadinessChartData struct {
	TRLDistribution map[int]int        `json:"trl_distribution"`
	Products        []ProductReadiness `json:"products"`
}

type DashboardService interface {
	Overview(ctx context.Context) (*DashboardOverview, error)
	ChartData(ctx context.Context) (*ReadinessChartData, error)
}

type dashboardService struct {
	db             *gorm.DB
	log            *logger.Logger
	featureRepo    repos.ProductFeatureRepo
	assessmentRepo repos.ReadinessAssessmentRepo
	levelRepo      repos.ReadinessLevelRepo
}

func NewDashboardService(
	db *gorm.DB,
	baseLog *logger.Logger,
	featureRepo repos.ProductFeatureRepo,
	assessmentRepo repos.ReadinessAssessmentRepo,
	levelRepo repos.ReadinessLevelRepo,
) DashboardService {
	serviceLog := baseLog.With("service", "DashboardService")
	return &dashboardService{
		db:             db,
		log:            serviceLog,
		featureRepo:    featureRepo,
		assessmentRepo: assessmentRepo,
		levelRepo:      levelRepo,
	}
}

func (s *dashboardService) levelMap(ctx context.Context) (map[uint]int, error) {
	levels, err := s.levelRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]int, len(levels))
	for _, l := range levels {
		byID[l.ID] = l.Level
	}
	return byID, nil
}

func (s *dashboardService) Overview(ctx context.Context) (*DashboardOverview, error) {
	levelByID, err := s.levelMap(ctx)
	if err != nil {
		return nil, err
	}

	assessments, err := s.assessmentRepo.List(ctx, nil, repos.AssessmentFilter{})
	if err != nil {
		return nil, err
	}

	overview := &DashboardOverview{TotalAssessments: len(assessments)}
	for _, a := range assessments {
		switch level := levelByID[a.ReadinessLevelID]; {
		case level >= 7:
			overview.HighReadiness++
		case level >= 4:
			overview.MediumReadiness++
		default:
			overview.LowReadiness++
		}
	}

	features, err := s.featureRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, pf := range features {
		rollup := FeatureRollup{
			ID:         pf.ID,
			Name:       pf.Name,
			Label:      pf.Label,
			ActiveFlag: pf.ActiveFlag,
			Progress:   pf.ProgressRelativeToTMOS,
		}
		owned, err := s.assessmentRepo.List(ctx, nil, repos.AssessmentFilter{ProductFeatureID: pf.ID})
		if err != nil {
			return nil, err
		}
		rollup.AssessmentCount = len(owned)
		sum := 0
		for _, a := range owned {
			sum += levelByID[a.ReadinessLevelID]
		}
		if len(owned) > 0 {
			rollup.AverageTRL = float64(sum) / float64(len(owned))
		}
		overview.Features = append(overview.Features, rollup)
	}
	return overview, nil
}

func (s *dashboardService) ChartData(ctx context.Context) (*ReadinessChartData, error) {
	levelByID, err := s.levelMap(ctx)
	if err != nil {
		return nil, err
	}

	assessments, err := s.assessmentRepo.List(ctx, nil, repos.AssessmentFilter{})
	if err != nil {
		return nil, err
	}
	data := &ReadinessChartData{TRLDistribution: make(map[int]int, 9)}
	for level := 1; level <= 9; level++ {
		data.TRLDistribution[level] = 0
	}
	for _, a := range assessments {
		data.TRLDistribution[levelByID[a.ReadinessLevelID]]++
	}

	features, err := s.featureRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, pf := range features {
		owned, err := s.assessmentRepo.List(ctx, nil, repos.AssessmentFilter{ProductFeatureID: pf.ID})
		if err != nil {
			return nil, err
		}
		product := ProductReadiness{ID: pf.ID, Name: pf.Name, AssessmentCount: len(owned)}
		sum := 0
		for _, a := range owned {
			sum += levelByID[a.ReadinessLevelID]
		}
		if len(owned) > 0 {
			product.AverageTRL = float64(sum) / float64(len(owned))
		}
		data.Products = append(data.Products, product)
	}
	return data, nil
}
