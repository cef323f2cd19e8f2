package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/repos"
)

// MatrixEntry is one assessment placed in the readiness matrix: the
// configuration tuple it was assessed under plus the outcome.
type MatrixEntry struct {
	AssessmentID    uint       `json:"assessment_id"`
	VehiclePlatform string     `json:"vehicle_platform"`
	ODD             string     `json:"odd"`
	Environment     string     `json:"environment"`
	Trailer         string     `json:"trailer,omitempty"`
	Level           int        `json:"level"`
	TargetTRL       int        `json:"target_trl,omitempty"`
	Confidence      int        `json:"confidence"`
	Assessor        string     `json:"assessor,omitempty"`
	AssessmentDate  time.Time  `json:"assessment_date"`
	NextReviewDate  *time.Time `json:"next_review_date,omitempty"`
}

// MatrixRow groups a technical function's assessments across configurations.
type MatrixRow struct {
	TechnicalFunctionID uint          `json:"technical_function_id"`
	TechnicalFunction   string        `json:"technical_function"`
	Label               string        `json:"label,omitempty"`
	Entries             []MatrixEntry `json:"entries"`
}

type MatrixService interface {
	Matrix(ctx context.Context) ([]MatrixRow, error)
}

type matrixService struct {
	db             *gorm.DB
	log            *logger.Logger
	assessmentRepo repos.ReadinessAssessmentRepo
}

func NewMatrixService(db *gorm.DB, baseLog *logger.Logger, assessmentRepo repos.ReadinessAssessmentRepo) MatrixService {
	serviceLog := baseLog.With("service", "MatrixService")
	return &matrixService{db: db, log: serviceLog, assessmentRepo: assessmentRepo}
}

func (s *matrixService) Matrix(ctx context.Context) ([]MatrixRow, error) {
	assessments, err := s.assessmentRepo.List(ctx, nil, repos.AssessmentFilter{})
	if err != nil {
		return nil, err
	}

	rows := make([]MatrixRow, 0)
	index := make(map[uint]int)
	for _, a := range assessments {
		pos, ok := index[a.TechnicalFunctionID]
		if !ok {
			row := MatrixRow{TechnicalFunctionID: a.TechnicalFunctionID}
			if a.TechnicalFunction != nil {
				row.TechnicalFunction = a.TechnicalFunction.Name
				row.Label = a.TechnicalFunction.Label
			}
			rows = append(rows, row)
			pos = len(rows) - 1
			index[a.TechnicalFunctionID] = pos
		}

		entry := MatrixEntry{
			AssessmentID:   a.ID,
			Confidence:     a.Confidence,
			TargetTRL:      a.TargetTRL,
			Assessor:       a.Assessor,
			AssessmentDate: a.AssessmentDate,
			NextReviewDate: a.NextReviewDate,
		}
		if a.VehiclePlatform != nil {
			entry.VehiclePlatform = a.VehiclePlatform.Name
		}
		if a.ODD != nil {
			entry.ODD = a.ODD.Name
		}
		if a.Environment != nil {
			entry.Environment = a.Environment.Name
		}
		if a.Trailer != nil {
			entry.Trailer = a.Trailer.Name
		}
		if a.ReadinessLevel != nil {
			entry.Level = a.ReadinessLevel.Level
		}
		rows[pos].Entries = append(rows[pos].Entries, entry)
	}
	return rows, nil
}
