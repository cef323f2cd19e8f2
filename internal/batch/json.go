package batch

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Metadata struct {
	Version     interface{} `json:"version,omitempty"`
	Description string      `json:"description,omitempty"`
	CreatedBy   string      `json:"created_by,omitempty"`
	CreatedDate string      `json:"created_date,omitempty"`
	ExportedBy  string      `json:"exported_by,omitempty"`
	ExportDate  string      `json:"export_date,omitempty"`
}

// ParseResult is the outcome of parsing one batch document: the validated
// operations plus one issue line per item that failed validation and was
// skipped.
type ParseResult struct {
	Metadata Metadata
	Ops      []Operation
	Issues   []string
}

type rawDocument struct {
	Metadata       Metadata    `json:"metadata"`
	Entities       []rawEntity `json:"entities"`
	Configurations []rawConfig `json:"configurations"`
}

type rawEntity struct {
	EntityType  string `json:"entity_type"`
	Operation   string `json:"operation"`
	Name        string `json:"name"`
	ForceDelete bool   `json:"force_delete,omitempty"`

	Description        *string `json:"description,omitempty"`
	Label              *string `json:"label,omitempty"`
	SwimlaneDecorators *string `json:"swimlane_decorators,omitempty"`
	SuccessCriteria    *string `json:"success_criteria,omitempty"`
	TMOS               *string `json:"tmos,omitempty"`
	ActiveFlag         *string `json:"active_flag,omitempty"`
	DocumentURL        *string `json:"document_url,omitempty"`

	StatusRelativeToTMOS   *float64 `json:"status_relative_to_tmos,omitempty"`
	ProgressRelativeToTMOS *float64 `json:"progress_relative_to_tmos,omitempty"`

	VehiclePlatformID interface{} `json:"vehicle_platform_id,omitempty"`
	VehicleType       *string     `json:"vehicle_type,omitempty"`

	PlannedStartDate *string `json:"planned_start_date,omitempty"`
	PlannedEndDate   *string `json:"planned_end_date,omitempty"`

	DueDate   *string `json:"due_date,omitempty"`
	TargetTRL *int    `json:"target_trl,omitempty"`
	Assessor  *string `json:"assessor,omitempty"`
	Notes     *string `json:"notes,omitempty"`

	Capabilities         *[]string `json:"capabilities,omitempty"`
	CapabilitiesRequired *[]string `json:"capabilities_required,omitempty"`
	TechnicalFunctions   *[]string `json:"technical_functions,omitempty"`
	ProductFeatureIDs    *[]string `json:"product_feature_ids,omitempty"`
	ProductFeature       *string   `json:"product_feature,omitempty"` // legacy 1:N shape
}

type rawConfigData struct {
	Name        string  `json:"name,omitempty"`
	Level       *int    `json:"level,omitempty"`
	ForceDelete bool    `json:"force_delete,omitempty"`
	Description *string `json:"description,omitempty"`

	VehicleType *string  `json:"vehicle_type,omitempty"`
	MaxPayload  *float64 `json:"max_payload,omitempty"`

	MaxSpeed          *int    `json:"max_speed,omitempty"`
	Direction         *string `json:"direction,omitempty"`
	Lanes             *string `json:"lanes,omitempty"`
	Intersections     *string `json:"intersections,omitempty"`
	Infrastructure    *string `json:"infrastructure,omitempty"`
	Hazards           *string `json:"hazards,omitempty"`
	Actors            *string `json:"actors,omitempty"`
	HandlingEquipment *string `json:"handling_equipment,omitempty"`
	Traction          *string `json:"traction,omitempty"`
	Inclines          *string `json:"inclines,omitempty"`

	Region  *string `json:"region,omitempty"`
	Climate *string `json:"climate,omitempty"`
	Terrain *string `json:"terrain,omitempty"`

	TrailerType *string  `json:"trailer_type,omitempty"`
	Length      *float64 `json:"length,omitempty"`
	MaxWeight   *float64 `json:"max_weight,omitempty"`
	AxleCount   *int     `json:"axle_count,omitempty"`

	TRLName *string `json:"trl_name,omitempty"`
}

// rawConfig accepts both the flat legacy shape (config_type + fields inline)
// and the nested {"type", "operation", "data"} shape.
type rawConfig struct {
	rawConfigData

	ConfigType string         `json:"config_type,omitempty"`
	Type       string         `json:"type,omitempty"`
	Operation  string         `json:"operation"`
	Data       *rawConfigData `json:"data,omitempty"`
}

var entityTypes = map[string]EntityType{
	"product_feature":    EntityProductFeature,
	"capability":         EntityCapability,
	"technical_function": EntityTechnicalFunction,
}

var configTypes = map[string]EntityType{
	"vehicle_platform":          EntityVehiclePlatform,
	"odd":                       EntityODD,
	"environment":               EntityEnvironment,
	"trailer":                   EntityTrailer,
	"technical_readiness_level": EntityReadinessLevel,
}

var opKinds = map[string]OpKind{
	"create": OpCreate,
	"update": OpUpdate,
	"delete": OpDelete,
}

// ParseJSONDocument validates a batch JSON document and converts it into
// operations. Individual items that fail validation are reported in Issues
// and skipped; a malformed document or one with no entities and no
// configurations is a fatal error.
func ParseJSONDocument(data []byte) (*ParseResult, error) {
	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON format: %w", err)
	}
	if len(doc.Entities) == 0 && len(doc.Configurations) == 0 {
		return nil, fmt.Errorf("no 'entities' or 'configurations' section found")
	}

	// Configurations first so entities can reference rows the same document
	// creates.
	result := &ParseResult{Metadata: doc.Metadata}
	for i, raw := range doc.Configurations {
		ref := fmt.Sprintf("configuration %d", i+1)
		op, errs := convertConfig(raw, ref)
		if len(errs) > 0 {
			for _, e := range errs {
				result.Issues = append(result.Issues, fmt.Sprintf("%s: %s", ref, e))
			}
			continue
		}
		result.Ops = append(result.Ops, *op)
	}
	for i, raw := range doc.Entities {
		ref := fmt.Sprintf("entity %d", i+1)
		op, errs := convertEntity(raw, ref)
		if len(errs) > 0 {
			for _, e := range errs {
				result.Issues = append(result.Issues, fmt.Sprintf("%s: %s", ref, e))
			}
			continue
		}
		result.Ops = append(result.Ops, *op)
	}
	return result, nil
}

func convertEntity(raw rawEntity, ref string) (*Operation, []string) {
	var errs []string

	entity, ok := entityTypes[strings.ToLower(strings.TrimSpace(raw.EntityType))]
	if !ok {
		errs = append(errs, fmt.Sprintf("invalid entity_type %q", raw.EntityType))
	}
	kind, ok := opKinds[strings.ToLower(strings.TrimSpace(raw.Operation))]
	if !ok {
		errs = append(errs, fmt.Sprintf("invalid operation %q", raw.Operation))
	}
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		errs = append(errs, "missing required field 'name'")
	}

	fields := EntityFields{
		Description:        raw.Description,
		Label:              raw.Label,
		SwimlaneDecorators: raw.SwimlaneDecorators,
		SuccessCriteria:    raw.SuccessCriteria,
		TMOS:               raw.TMOS,
		ActiveFlag:         raw.ActiveFlag,
		DocumentURL:        raw.DocumentURL,
		TargetTRL:          raw.TargetTRL,
		Assessor:           raw.Assessor,
		Notes:              raw.Notes,
		TechnicalFunctions: raw.TechnicalFunctions,
	}

	if raw.StatusRelativeToTMOS != nil {
		fields.Progress = raw.StatusRelativeToTMOS
	} else if raw.ProgressRelativeToTMOS != nil {
		fields.Progress = raw.ProgressRelativeToTMOS
	}
	if fields.Progress != nil && (*fields.Progress < 0.0 || *fields.Progress > 100.0) {
		errs = append(errs, fmt.Sprintf("invalid progress %v, must be 0.0-100.0", *fields.Progress))
	}
	if fields.TargetTRL != nil && (*fields.TargetTRL < 1 || *fields.TargetTRL > 9) {
		errs = append(errs, fmt.Sprintf("invalid target_trl %d, must be 1-9", *fields.TargetTRL))
	}

	if raw.VehiclePlatformID != nil {
		fields.VehiclePlatformID = NormalizePlatformRef(raw.VehiclePlatformID)
	} else if raw.VehicleType != nil {
		fields.VehiclePlatformID = NormalizePlatformRef(*raw.VehicleType)
	}

	fields.PlannedStartDate = parseDateField(raw.PlannedStartDate, "planned_start_date", &errs)
	fields.PlannedEndDate = parseDateField(raw.PlannedEndDate, "planned_end_date", &errs)
	fields.DueDate = parseDateField(raw.DueDate, "due_date", &errs)

	if raw.Capabilities != nil {
		fields.Capabilities = raw.Capabilities
	} else if raw.CapabilitiesRequired != nil {
		fields.Capabilities = raw.CapabilitiesRequired
	}
	if raw.ProductFeatureIDs != nil {
		fields.ProductFeatures = raw.ProductFeatureIDs
	} else if raw.ProductFeature != nil {
		single := []string{*raw.ProductFeature}
		fields.ProductFeatures = &single
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &Operation{
		Entity:      entity,
		Kind:        kind,
		Name:        name,
		ForceDelete: raw.ForceDelete,
		Ref:         ref,
		Fields:      fields,
	}, nil
}

func convertConfig(raw rawConfig, ref string) (*Operation, []string) {
	var errs []string

	typeName := raw.ConfigType
	data := raw.rawConfigData
	if typeName == "" {
		typeName = raw.Type
		if raw.Data != nil {
			data = *raw.Data
		}
	}

	entity, ok := configTypes[strings.ToLower(strings.TrimSpace(typeName))]
	if !ok {
		errs = append(errs, fmt.Sprintf("invalid config type %q", typeName))
	}
	kind, ok := opKinds[strings.ToLower(strings.TrimSpace(raw.Operation))]
	if !ok {
		errs = append(errs, fmt.Sprintf("invalid operation %q", raw.Operation))
	}

	name := strings.TrimSpace(data.Name)
	if entity == EntityReadinessLevel {
		if data.Level == nil {
			errs = append(errs, "missing required field 'level' for technical_readiness_level")
		} else if *data.Level < 1 || *data.Level > 9 {
			errs = append(errs, fmt.Sprintf("invalid level %d, must be 1-9", *data.Level))
		}
	} else if name == "" {
		errs = append(errs, "missing required field 'name'")
	}

	if len(errs) > 0 {
		return nil, errs
	}

	// Readiness levels are addressed by level; their "name" is a data field.
	levelName := data.TRLName
	if entity == EntityReadinessLevel {
		if levelName == nil && name != "" {
			levelName = &name
		}
		name = ""
	}

	return &Operation{
		Entity:      entity,
		Kind:        kind,
		Name:        name,
		Level:       data.Level,
		ForceDelete: data.ForceDelete,
		Ref:         ref,
		Config: ConfigFields{
			Description:       data.Description,
			LevelName:         levelName,
			VehicleType:       data.VehicleType,
			MaxPayload:        data.MaxPayload,
			MaxSpeed:          data.MaxSpeed,
			Direction:         data.Direction,
			Lanes:             data.Lanes,
			Intersections:     data.Intersections,
			Infrastructure:    data.Infrastructure,
			Hazards:           data.Hazards,
			Actors:            data.Actors,
			HandlingEquipment: data.HandlingEquipment,
			Traction:          data.Traction,
			Inclines:          data.Inclines,
			Region:            data.Region,
			Climate:           data.Climate,
			Terrain:           data.Terrain,
			TrailerType:       data.TrailerType,
			Length:            data.Length,
			MaxWeight:         data.MaxWeight,
			AxleCount:         data.AxleCount,
		},
	}, nil
}

func parseDateField(value *string, field string, errs *[]string) *time.Time {
	if value == nil {
		return nil
	}
	t, err := ParseDate(*value)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid %s format %q", field, *value))
		return nil
	}
	return t
}
