package types

import (
	"time"
)

type Trailer struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	TrailerType string   `gorm:"size:50" json:"trailer_type,omitempty"` // e.g. flatbed, box, tanker
	Length      *float64 `json:"length,omitempty"`                      // meters
	MaxWeight   *float64 `json:"max_weight,omitempty"`                  // kg
	AxleCount   *int     `json:"axle_count,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Trailer) TableName() string { return "trailers" }
