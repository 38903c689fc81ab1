package models

import (
	"time"
)

// Pet represents a patient owned by a pet owner profile. Pets are soft-deleted
// via the IsActive flag, never removed.
type Pet struct {
	BaseModel
	PetOwnerID  uint       `gorm:"index" json:"petOwnerId"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Species     string     `gorm:"size:50" json:"species"`
	Breed       string     `gorm:"size:100" json:"breed,omitempty"`
	Gender      string     `gorm:"size:10" json:"gender,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	WeightKg    float64    `gorm:"default:0" json:"weightKg,omitempty"`
	PhotoURL    string     `gorm:"size:512" json:"photoUrl,omitempty"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`

	// Relations
	Owner PetOwnerProfile `gorm:"foreignKey:PetOwnerID" json:"-"`
}
