package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"

	"github.com/avready/readiness-backend/internal/batch"
	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/repos"
	"github.com/avready/readiness-backend/internal/types"
)

// ExportDocument is a batch document built from the current database state.
// Sections are ordered so every reference resolves when the document is fed
// back through the batch engine: configurations first, then capabilities,
// then the entities that link to them.
type ExportDocument struct {
	Metadata       batch.Metadata `json:"metadata"`
	Configurations []ConfigItem   `json:"configurations"`
	Entities       []EntityItem   `json:"entities"`
}

type ConfigItem struct {
	ConfigType  string `json:"config_type"`
	Operation   string `json:"operation"`
	Name        string `json:"name,omitempty"`
	Level       *int   `json:"level,omitempty"`
	Description string `json:"description,omitempty"`

	VehicleType string   `json:"vehicle_type,omitempty"`
	MaxPayload  *float64 `json:"max_payload,omitempty"`

	MaxSpeed          *int   `json:"max_speed,omitempty"`
	Direction         string `json:"direction,omitempty"`
	Lanes             string `json:"lanes,omitempty"`
	Intersections     string `json:"intersections,omitempty"`
	Infrastructure    string `json:"infrastructure,omitempty"`
	Hazards           string `json:"hazards,omitempty"`
	Actors            string `json:"actors,omitempty"`
	HandlingEquipment string `json:"handling_equipment,omitempty"`
	Traction          string `json:"traction,omitempty"`
	Inclines          string `json:"inclines,omitempty"`

	Region  string `json:"region,omitempty"`
	Climate string `json:"climate,omitempty"`
	Terrain string `json:"terrain,omitempty"`

	TrailerType string   `json:"trailer_type,omitempty"`
	Length      *float64 `json:"length,omitempty"`
	MaxWeight   *float64 `json:"max_weight,omitempty"`
	AxleCount   *int     `json:"axle_count,omitempty"`

	TRLName string `json:"trl_name,omitempty"`
}

type EntityItem struct {
	EntityType string `json:"entity_type"`
	Operation  string `json:"operation"`
	Name       string `json:"name"`

	Description        string   `json:"description,omitempty"`
	Label              string   `json:"label,omitempty"`
	SwimlaneDecorators string   `json:"swimlane_decorators,omitempty"`
	SuccessCriteria    string   `json:"success_criteria,omitempty"`
	TMOS               string   `json:"tmos,omitempty"`
	ActiveFlag         string   `json:"active_flag,omitempty"`
	DocumentURL        string   `json:"document_url,omitempty"`
	Progress           *float64 `json:"progress_relative_to_tmos,omitempty"`
	VehiclePlatformID  *uint    `json:"vehicle_platform_id,omitempty"`
	PlannedStartDate   string   `json:"planned_start_date,omitempty"`
	PlannedEndDate     string   `json:"planned_end_date,omitempty"`

	Capabilities []string `json:"capabilities,omitempty"`
}

// ExportService rebuilds the import document format from the database so an
// export can be applied back through the batch engine.
type ExportService interface {
	ExportDocument(ctx context.Context) (*ExportDocument, error)
	ExportJSON(ctx context.Context) ([]byte, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	Template() []byte
}

type exportService struct {
	db             *gorm.DB
	log            *logger.Logger
	featureRepo    repos.ProductFeatureRepo
	capabilityRepo repos.CapabilityRepo
	functionRepo   repos.TechnicalFunctionRepo
	assessmentRepo repos.ReadinessAssessmentRepo
	platformRepo   repos.VehiclePlatformRepo
	oddRepo        repos.ODDRepo
	envRepo        repos.EnvironmentRepo
	trailerRepo    repos.TrailerRepo
	levelRepo      repos.ReadinessLevelRepo
	now            func() time.Time
}

func NewExportService(
	db *gorm.DB,
	baseLog *logger.Logger,
	featureRepo repos.ProductFeatureRepo,
	capabilityRepo repos.CapabilityRepo,
	functionRepo repos.TechnicalFunctionRepo,
	assessmentRepo repos.ReadinessAssessmentRepo,
	platformRepo repos.VehiclePlatformRepo,
	oddRepo repos.ODDRepo,
	envRepo repos.EnvironmentRepo,
	trailerRepo repos.TrailerRepo,
	levelRepo repos.ReadinessLevelRepo,
) ExportService {
	serviceLog := baseLog.With("service", "ExportService")
	return &exportService{
		db:             db,
		log:            serviceLog,
		featureRepo:    featureRepo,
		capabilityRepo: capabilityRepo,
		functionRepo:   functionRepo,
		assessmentRepo: assessmentRepo,
		platformRepo:   platformRepo,
		oddRepo:        oddRepo,
		envRepo:        envRepo,
		trailerRepo:    trailerRepo,
		levelRepo:      levelRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

const exportDateLayout = "2006-01-02"

func (s *exportService) ExportDocument(ctx context.Context) (*ExportDocument, error) {
	doc := &ExportDocument{
		Metadata: batch.Metadata{
			Version:    "1.0",
			ExportedBy: "readiness-backend",
			ExportDate: s.now().Format(time.RFC3339),
		},
	}

	platforms, err := s.platformRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, p := range platforms {
		doc.Configurations = append(doc.Configurations, ConfigItem{
			ConfigType:  string(batch.EntityVehiclePlatform),
			Operation:   string(batch.OpCreate),
			Name:        p.Name,
			Description: p.Description,
			VehicleType: p.VehicleType,
			MaxPayload:  p.MaxPayload,
		})
	}

	odds, err := s.oddRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, o := range odds {
		doc.Configurations = append(doc.Configurations, ConfigItem{
			ConfigType:        string(batch.EntityODD),
			Operation:         string(batch.OpCreate),
			Name:              o.Name,
			Description:       o.Description,
			MaxSpeed:          o.MaxSpeed,
			Direction:         o.Direction,
			Lanes:             o.Lanes,
			Intersections:     o.Intersections,
			Infrastructure:    o.Infrastructure,
			Hazards:           o.Hazards,
			Actors:            o.Actors,
			HandlingEquipment: o.HandlingEquipment,
			Traction:          o.Traction,
			Inclines:          o.Inclines,
		})
	}

	environments, err := s.envRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, e := range environments {
		doc.Configurations = append(doc.Configurations, ConfigItem{
			ConfigType:  string(batch.EntityEnvironment),
			Operation:   string(batch.OpCreate),
			Name:        e.Name,
			Description: e.Description,
			Region:      e.Region,
			Climate:     e.Climate,
			Terrain:     e.Terrain,
		})
	}

	trailers, err := s.trailerRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, t := range trailers {
		doc.Configurations = append(doc.Configurations, ConfigItem{
			ConfigType:  string(batch.EntityTrailer),
			Operation:   string(batch.OpCreate),
			Name:        t.Name,
			Description: t.Description,
			TrailerType: t.TrailerType,
			Length:      t.Length,
			MaxWeight:   t.MaxWeight,
			AxleCount:   t.AxleCount,
		})
	}

	levels, err := s.levelRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, l := range levels {
		level := l.Level
		doc.Configurations = append(doc.Configurations, ConfigItem{
			ConfigType:  string(batch.EntityReadinessLevel),
			Operation:   string(batch.OpUpdate),
			Level:       &level,
			TRLName:     l.Name,
			Description: l.Description,
		})
	}

	capabilities, err := s.capabilityRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, c := range capabilities {
		doc.Entities = append(doc.Entities, EntityItem{
			EntityType:        string(batch.EntityCapability),
			Operation:         string(batch.OpCreate),
			Name:              c.Name,
			Label:             c.Label,
			SuccessCriteria:   c.SuccessCriteria,
			TMOS:              c.TMOS,
			DocumentURL:       c.DocumentURL,
			Progress:          nonZeroFloat(c.ProgressRelativeToTMOS),
			VehiclePlatformID: c.VehiclePlatformID,
			PlannedStartDate:  formatDate(c.PlannedStartDate),
			PlannedEndDate:    formatDate(c.PlannedEndDate),
		})
	}

	functions, err := s.functionRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, f := range functions {
		doc.Entities = append(doc.Entities, EntityItem{
			EntityType:        string(batch.EntityTechnicalFunction),
			Operation:         string(batch.OpCreate),
			Name:              f.Name,
			Description:       f.Description,
			Label:             f.Label,
			SuccessCriteria:   f.SuccessCriteria,
			TMOS:              f.TMOS,
			DocumentURL:       f.DocumentURL,
			Progress:          nonZeroFloat(f.ProgressRelativeToTMOS),
			VehiclePlatformID: f.VehiclePlatformID,
			PlannedStartDate:  formatDate(f.PlannedStartDate),
			PlannedEndDate:    formatDate(f.PlannedEndDate),
			Capabilities:      capabilityNames(f.Capabilities),
		})
	}

	features, err := s.featureRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, pf := range features {
		doc.Entities = append(doc.Entities, EntityItem{
			EntityType:         string(batch.EntityProductFeature),
			Operation:          string(batch.OpCreate),
			Name:               pf.Name,
			Description:        pf.Description,
			Label:              pf.Label,
			SwimlaneDecorators: pf.SwimlaneDecorators,
			TMOS:               pf.TMOS,
			ActiveFlag:         pf.ActiveFlag,
			DocumentURL:        pf.DocumentURL,
			Progress:           nonZeroFloat(pf.ProgressRelativeToTMOS),
			VehiclePlatformID:  pf.VehiclePlatformID,
			PlannedStartDate:   formatDate(pf.PlannedStartDate),
			PlannedEndDate:     formatDate(pf.PlannedEndDate),
			Capabilities:       capabilityNames(pf.Capabilities),
		})
	}

	return doc, nil
}

func (s *exportService) ExportJSON(ctx context.Context) ([]byte, error) {
	doc, err := s.ExportDocument(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ExportCSV writes one summary row per capability and technical function:
// current average TRL across the reachable assessments, assessment count and
// the latest update time.
func (s *exportService) ExportCSV(ctx context.Context, w io.Writer) error {
	levels, err := s.levelRepo.GetAll(ctx, nil)
	if err != nil {
		return err
	}
	levelByID := make(map[uint]int, len(levels))
	for _, l := range levels {
		levelByID[l.ID] = l.Level
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"capability_type", "capability_name", "description", "current_avg_trl", "assessment_count", "last_updated"}); err != nil {
		return err
	}

	capabilities, err := s.capabilityRepo.GetAll(ctx, nil)
	if err != nil {
		return err
	}
	for _, c := range capabilities {
		functionIDs, err := s.capabilityRepo.ListTechnicalFunctionIDs(ctx, nil, []uint{c.ID})
		if err != nil {
			return err
		}
		assessments, err := s.assessmentRepo.GetByFunctionIDs(ctx, nil, functionIDs)
		if err != nil {
			return err
		}
		if err := writer.Write(summaryRow("capability", c.Name, c.SuccessCriteria, c.UpdatedAt, assessments, levelByID)); err != nil {
			return err
		}
	}

	functions, err := s.functionRepo.GetAll(ctx, nil)
	if err != nil {
		return err
	}
	for _, f := range functions {
		assessments, err := s.assessmentRepo.GetByFunctionIDs(ctx, nil, []uint{f.ID})
		if err != nil {
			return err
		}
		if err := writer.Write(summaryRow("technical_function", f.Name, f.Description, f.UpdatedAt, assessments, levelByID)); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func summaryRow(kind, name, description string, updatedAt time.Time, assessments []*types.ReadinessAssessment, levelByID map[uint]int) []string {
	lastUpdated := updatedAt
	sum := 0
	for _, a := range assessments {
		sum += levelByID[a.ReadinessLevelID]
		if a.UpdatedAt.After(lastUpdated) {
			lastUpdated = a.UpdatedAt
		}
	}
	avg := ""
	if len(assessments) > 0 {
		avg = fmt.Sprintf("%.1f", float64(sum)/float64(len(assessments)))
	}
	return []string{
		kind,
		name,
		description,
		avg,
		fmt.Sprintf("%d", len(assessments)),
		lastUpdated.Format(time.RFC3339),
	}
}

// Template returns a minimal example document covering the common operations.
func (s *exportService) Template() []byte {
	doc := ExportDocument{
		Metadata: batch.Metadata{
			Version:     "1.0",
			Description: "Example batch update document",
			CreatedBy:   "your name",
			CreatedDate: s.now().Format(exportDateLayout),
		},
		Configurations: []ConfigItem{
			{
				ConfigType:  string(batch.EntityVehiclePlatform),
				Operation:   string(batch.OpCreate),
				Name:        "Example Platform",
				Description: "New vehicle platform",
				VehicleType: "truck",
			},
		},
		Entities: []EntityItem{
			{
				EntityType:      string(batch.EntityCapability),
				Operation:       string(batch.OpCreate),
				Name:            "Example Capability",
				Label:           "C-EX-1.1",
				SuccessCriteria: "What done looks like",
			},
			{
				EntityType:   string(batch.EntityTechnicalFunction),
				Operation:    string(batch.OpCreate),
				Name:         "Example Technical Function",
				Description:  "What the function does",
				Capabilities: []string{"Example Capability"},
			},
			{
				EntityType:   string(batch.EntityProductFeature),
				Operation:    string(batch.OpUpdate),
				Name:         "Existing Product Feature",
				Capabilities: []string{"Example Capability"},
			},
		},
	}
	out, _ := json.MarshalIndent(doc, "", "  ")
	return out
}

func capabilityNames(caps []*types.Capability) []string {
	if len(caps) == 0 {
		return nil
	}
	names := make([]string, 0, len(caps))
	for _, c := range caps {
		names = append(names, c.Name)
	}
	return names
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(exportDateLayout)
}

func nonZeroFloat(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
