package types

import (
	"time"
)

type TechnicalFunction struct {
	ID                     uint    `gorm:"primaryKey" json:"id"`
	Name                   string  `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Label                  string  `gorm:"size:50;index" json:"label,omitempty"`
	Description            string  `gorm:"type:text" json:"description"`
	SuccessCriteria        string  `gorm:"type:text" json:"success_criteria,omitempty"`
	VehiclePlatformID      *uint   `gorm:"index" json:"vehicle_platform_id,omitempty"`
	VehiclePlatform        *VehiclePlatform `gorm:"foreignKey:VehiclePlatformID;references:ID" json:"vehicle_platform,omitempty"`
	TMOS                   string  `gorm:"column:tmos;type:text" json:"tmos,omitempty"`
	ProgressRelativeToTMOS float64 `gorm:"column:status_relative_to_tmos;default:0" json:"status_relative_to_tmos"`
	PlannedStartDate       *time.Time `gorm:"type:date" json:"planned_start_date,omitempty"`
	PlannedEndDate         *time.Time `gorm:"type:date" json:"planned_end_date,omitempty"`
	DocumentURL            string  `gorm:"size:500" json:"document_url,omitempty"`
	Capabilities           []*Capability          `gorm:"many2many:capability_technical_functions;joinForeignKey:TechnicalFunctionID;joinReferences:CapabilityID" json:"capabilities,omitempty"`
	ReadinessAssessments   []*ReadinessAssessment `gorm:"foreignKey:TechnicalFunctionID" json:"readiness_assessments,omitempty"`
	CreatedAt              time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt              time.Time `gorm:"not null" json:"updated_at"`
}

func (TechnicalFunction) TableName() string { return "technical_functions" }
