package types

import (
	"time"
)

type ProductFeature struct {
	ID                 uint    `gorm:"primaryKey" json:"id"`
	Name               string  `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description        string  `gorm:"type:text" json:"description"`
	Label              string  `gorm:"size:50;index" json:"label,omitempty"` // e.g. "baseline" or "PF-<SWIM_LANE>-1.1"
	SwimlaneDecorators string  `gorm:"size:200" json:"swimlane_decorators,omitempty"`
	VehiclePlatformID  *uint   `gorm:"index" json:"vehicle_platform_id,omitempty"`
	VehiclePlatform    *VehiclePlatform `gorm:"foreignKey:VehiclePlatformID;references:ID" json:"vehicle_platform,omitempty"`
	TMOS               string  `gorm:"column:tmos;type:text" json:"tmos,omitempty"`
	ProgressRelativeToTMOS float64 `gorm:"column:status_relative_to_tmos;default:0" json:"status_relative_to_tmos"`
	PlannedStartDate   *time.Time `gorm:"type:date" json:"planned_start_date,omitempty"`
	PlannedEndDate     *time.Time `gorm:"type:date" json:"planned_end_date,omitempty"`
	ActiveFlag         string  `gorm:"size:10;default:'next'" json:"active_flag"`
	DocumentURL        string  `gorm:"size:500" json:"document_url,omitempty"`
	Capabilities       []*Capability `gorm:"many2many:capability_product_features;joinForeignKey:ProductFeatureID;joinReferences:CapabilityID" json:"capabilities,omitempty"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null" json:"updated_at"`
}

func (ProductFeature) TableName() string { return "product_features" }
