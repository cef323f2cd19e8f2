package types

import (
	"time"
)

type Capability struct {
	ID                     uint    `gorm:"primaryKey" json:"id"`
	Name                   string  `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Label                  string  `gorm:"size:50;index" json:"label,omitempty"`
	SuccessCriteria        string  `gorm:"type:text" json:"success_criteria"`
	VehiclePlatformID      *uint   `gorm:"index" json:"vehicle_platform_id,omitempty"`
	VehiclePlatform        *VehiclePlatform `gorm:"foreignKey:VehiclePlatformID;references:ID" json:"vehicle_platform,omitempty"`
	PlannedStartDate       *time.Time `gorm:"type:date" json:"planned_start_date,omitempty"`
	PlannedEndDate         *time.Time `gorm:"type:date" json:"planned_end_date,omitempty"`
	TMOS                   string  `gorm:"column:tmos;type:text" json:"tmos,omitempty"`
	ProgressRelativeToTMOS float64 `gorm:"column:progress_relative_to_tmos;default:0" json:"progress_relative_to_tmos"`
	DocumentURL            string  `gorm:"size:500" json:"document_url,omitempty"`
	ProductFeatures        []*ProductFeature    `gorm:"many2many:capability_product_features;joinForeignKey:CapabilityID;joinReferences:ProductFeatureID" json:"product_features,omitempty"`
	TechnicalFunctions     []*TechnicalFunction `gorm:"many2many:capability_technical_functions;joinForeignKey:CapabilityID;joinReferences:TechnicalFunctionID" json:"technical_functions,omitempty"`
	CreatedAt              time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt              time.Time `gorm:"not null" json:"updated_at"`
}

func (Capability) TableName() string { return "capabilities" }
