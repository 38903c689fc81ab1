package models

// PetOwnerProfile is the pet-owner identity record, linked 1:1 to a User.
type PetOwnerProfile struct {
	BaseModel
	UserID  uint   `gorm:"uniqueIndex" json:"userId"`
	Address string `gorm:"size:255" json:"address,omitempty"`
	City    string `gorm:"size:100" json:"city,omitempty"`

	// Relations
	User User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Pets []Pet `gorm:"foreignKey:PetOwnerID" json:"-"`
}

// Veterinarian is the veterinarian identity record, linked 1:1 to a User
// and attached to a clinic.
type Veterinarian struct {
	BaseModel
	UserID            uint   `gorm:"uniqueIndex" json:"userId"`
	ClinicID          uint   `gorm:"index" json:"clinicId"`
	Specialization    string `gorm:"size:100" json:"specialization,omitempty"`
	LicenseNumber     string `gorm:"size:50" json:"licenseNumber,omitempty"`
	Bio               string `gorm:"type:text" json:"bio,omitempty"`
	YearsOfExperience int    `gorm:"default:0" json:"yearsOfExperience"`

	// Relations
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
}
