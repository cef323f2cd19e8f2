package types

// TechnicalReadinessLevel is the static TRL 1-9 reference table.
type TechnicalReadinessLevel struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Level       int    `gorm:"not null;uniqueIndex" json:"level"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
}

func (TechnicalReadinessLevel) TableName() string { return "technical_readiness_levels" }
