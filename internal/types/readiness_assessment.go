package types

import (
	"time"
)

type ReadinessAssessment struct {
	ID                  uint  `gorm:"primaryKey" json:"id"`
	TechnicalFunctionID uint  `gorm:"not null;index" json:"technical_function_id"`
	TechnicalFunction   *TechnicalFunction `gorm:"foreignKey:TechnicalFunctionID;references:ID;constraint:OnDelete:CASCADE" json:"technical_function,omitempty"`
	ReadinessLevelID    uint  `gorm:"not null;index" json:"readiness_level_id"`
	ReadinessLevel      *TechnicalReadinessLevel `gorm:"foreignKey:ReadinessLevelID;references:ID" json:"readiness_level,omitempty"`
	VehiclePlatformID   uint  `gorm:"not null;index" json:"vehicle_platform_id"`
	VehiclePlatform     *VehiclePlatform `gorm:"foreignKey:VehiclePlatformID;references:ID" json:"vehicle_platform,omitempty"`
	ODDID               uint  `gorm:"column:odd_id;not null;index" json:"odd_id"`
	ODD                 *ODD  `gorm:"foreignKey:ODDID;references:ID" json:"odd,omitempty"`
	EnvironmentID       uint  `gorm:"not null;index" json:"environment_id"`
	Environment         *Environment `gorm:"foreignKey:EnvironmentID;references:ID" json:"environment,omitempty"`
	TrailerID           *uint `gorm:"index" json:"trailer_id,omitempty"`
	Trailer             *Trailer `gorm:"foreignKey:TrailerID;references:ID" json:"trailer,omitempty"`

	AssessmentDate time.Time  `gorm:"not null" json:"assessment_date"`
	Assessor       string     `gorm:"size:100" json:"assessor,omitempty"`
	Notes          string     `gorm:"type:text" json:"notes,omitempty"`
	Confidence     int        `gorm:"default:3" json:"confidence"` // 1-5
	NextReviewDate *time.Time `gorm:"type:date" json:"next_review_date,omitempty"`
	TargetTRL      int        `gorm:"column:target_trl" json:"target_trl,omitempty"` // 1-9

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ReadinessAssessment) TableName() string { return "readiness_assessments" }
