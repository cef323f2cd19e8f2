package batch

import (
	"time"
)

type EntityType string

const (
	EntityProductFeature    EntityType = "product_feature"
	EntityCapability        EntityType = "capability"
	EntityTechnicalFunction EntityType = "technical_function"

	EntityVehiclePlatform EntityType = "vehicle_platform"
	EntityODD             EntityType = "odd"
	EntityEnvironment     EntityType = "environment"
	EntityTrailer         EntityType = "trailer"
	EntityReadinessLevel  EntityType = "technical_readiness_level"
)

type OpKind string

const (
	OpCreate OpKind = "create"
	OpUpdate OpKind = "update"
	OpDelete OpKind = "delete"
)

// Operation is one validated batch instruction. The parsers guarantee that
// Entity/Kind is a known combination and that every populated field already
// passed bounds and format checks, so the engine never sees raw payloads.
type Operation struct {
	Entity      EntityType
	Kind        OpKind
	Name        string
	Level       *int // readiness-level operations address rows by level, not name
	ForceDelete bool
	Ref         string // source position ("entity 3", "row 5") for messages
	Fields      EntityFields
	Config      ConfigFields
}

// EntityFields carries the optional fields of product feature, capability and
// technical function operations. Nil means "not supplied"; for relationship
// lists an empty non-nil slice means "clear all links".
type EntityFields struct {
	Description        *string
	Label              *string
	SwimlaneDecorators *string
	SuccessCriteria    *string
	TMOS               *string
	ActiveFlag         *string
	DocumentURL        *string
	Progress           *float64
	VehiclePlatformID  *uint
	PlannedStartDate   *time.Time
	PlannedEndDate     *time.Time

	// Cascading fields.
	DueDate   *time.Time
	TargetTRL *int
	Assessor  *string
	Notes     *string

	Capabilities       *[]string
	TechnicalFunctions *[]string
	ProductFeatures    *[]string
}

// ConfigFields carries the optional fields of configuration operations
// (vehicle platform, ODD, environment, trailer, readiness level).
type ConfigFields struct {
	Description *string
	LevelName   *string

	VehicleType *string
	MaxPayload  *float64

	MaxSpeed          *int
	Direction         *string
	Lanes             *string
	Intersections     *string
	Infrastructure    *string
	Hazards           *string
	Actors            *string
	HandlingEquipment *string
	Traction          *string
	Inclines          *string

	Region  *string
	Climate *string
	Terrain *string

	TrailerType *string
	Length      *float64
	MaxWeight   *float64
	AxleCount   *int
}

// Cascades reports whether applying this operation must propagate into the
// readiness assessments reachable from the target entity.
func (op *Operation) Cascades() bool {
	return op.Kind == OpUpdate && (op.Fields.DueDate != nil || op.Fields.TargetTRL != nil)
}
