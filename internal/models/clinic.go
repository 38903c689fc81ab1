package models

// Clinic represents a veterinary clinic location.
type Clinic struct {
	BaseModel
	Name         string `gorm:"size:255;not null" json:"name"`
	Address      string `gorm:"size:255" json:"address"`
	City         string `gorm:"size:100" json:"city"`
	PhoneNumber  string `gorm:"size:30" json:"phoneNumber,omitempty"`
	Email        string `gorm:"size:255" json:"email,omitempty"`
	OpeningHours string `gorm:"size:255" json:"openingHours,omitempty"`

	// Relations
	Veterinarians []Veterinarian `gorm:"foreignKey:ClinicID" json:"-"`
	Services      []Service      `gorm:"foreignKey:ClinicID" json:"services,omitempty"`
}

// Service represents a clinical service offered by a clinic.
type Service struct {
	BaseModel
	ClinicID        uint    `gorm:"index" json:"clinicId"`
	Name            string  `gorm:"size:255;not null" json:"name"`
	Description     string  `gorm:"type:text" json:"description,omitempty"`
	Price           float64 `gorm:"default:0" json:"price"`
	DurationMinutes int     `gorm:"default:30" json:"durationMinutes"`
	IsActive        bool    `gorm:"default:true" json:"isActive"`

	// Relations
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"-"`
}
