package models

// Review represents a pet owner's rating of a veterinarian after a completed
// appointment. One review per appointment.
type Review struct {
	BaseModel
	PetOwnerID     uint   `gorm:"index" json:"petOwnerId"`
	VeterinarianID uint   `gorm:"index" json:"veterinarianId"`
	AppointmentID  uint   `gorm:"uniqueIndex" json:"appointmentId"`
	Rating         int    `gorm:"not null" json:"rating"` // 1..5
	Comment        string `gorm:"type:text" json:"comment,omitempty"`

	// Relations
	Owner        PetOwnerProfile `gorm:"foreignKey:PetOwnerID" json:"owner,omitempty"`
	Veterinarian Veterinarian    `gorm:"foreignKey:VeterinarianID" json:"-"`
	Appointment  Appointment     `gorm:"foreignKey:AppointmentID" json:"-"`
}
