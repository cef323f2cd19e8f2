package types

import (
	"time"
)

type Environment struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Region      string `gorm:"size:100" json:"region,omitempty"`
	Climate     string `gorm:"size:50" json:"climate,omitempty"` // e.g. temperate, tropical, arctic
	Terrain     string `gorm:"size:100" json:"terrain,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Environment) TableName() string { return "environments" }
