package types

import (
	"time"
)

type ODD struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	Name              string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description       string `gorm:"type:text" json:"description"`
	MaxSpeed          *int   `json:"max_speed,omitempty"` // km/h
	Direction         string `gorm:"size:50" json:"direction,omitempty"`
	Lanes             string `gorm:"size:75" json:"lanes,omitempty"`
	Intersections     string `gorm:"size:200" json:"intersections,omitempty"`
	Infrastructure    string `gorm:"size:200" json:"infrastructure,omitempty"`
	Hazards           string `gorm:"size:200" json:"hazards,omitempty"`
	Actors            string `gorm:"size:200" json:"actors,omitempty"`
	HandlingEquipment string `gorm:"size:200" json:"handling_equipment,omitempty"`
	Traction          string `gorm:"size:200" json:"traction,omitempty"`
	Inclines          string `gorm:"size:100" json:"inclines,omitempty"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}

func (ODD) TableName() string { return "odds" }
