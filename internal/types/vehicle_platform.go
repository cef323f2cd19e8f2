package types

import (
	"time"
)

// Platform ids are a fixed table: 1=Terberg ATT, 2=CA500, 3=T800, 4=AEV,
// 5=Truck, 6=Van, 7=Car, 8=Generic. Seeded at startup.
type VehiclePlatform struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	VehicleType string   `gorm:"size:50" json:"vehicle_type,omitempty"` // e.g. truck, van, car
	MaxPayload  *float64 `json:"max_payload,omitempty"`                 // kg
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (VehiclePlatform) TableName() string { return "vehicle_platforms" }
