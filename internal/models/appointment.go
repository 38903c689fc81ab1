package models

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// Appointment represents a scheduled clinical visit linking a pet, its owner,
// a veterinarian, a clinic and a service. Appointments are never hard-deleted;
// cancellation is a status value.
type Appointment struct {
	BaseModel
	PetOwnerID     uint `gorm:"index" json:"petOwnerId"`
	PatientID      uint `gorm:"index" json:"patientId"`
	VeterinarianID uint `gorm:"index" json:"veterinarianId"`
	ClinicID       uint `gorm:"index" json:"clinicId"`
	ServiceID      uint `gorm:"index" json:"serviceId"`

	AppointmentDate string `gorm:"size:10;index" json:"appointmentDate"` // YYYY-MM-DD
	AppointmentTime string `gorm:"size:5" json:"appointmentTime"`        // HH:MM

	Status         AppointmentStatus `gorm:"size:20;default:'pending'" json:"status"`
	ReasonForVisit string            `gorm:"size:255" json:"reasonForVisit"`
	Symptoms       string            `gorm:"type:text" json:"symptoms,omitempty"`
	Notes          string            `gorm:"type:text" json:"notes,omitempty"`
	DeclineReason  string            `gorm:"size:255" json:"declineReason,omitempty"`
	TotalAmount    float64           `gorm:"default:0" json:"totalAmount"`

	// Relations
	Owner        PetOwnerProfile `gorm:"foreignKey:PetOwnerID" json:"owner,omitempty"`
	Patient      Pet             `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Veterinarian Veterinarian    `gorm:"foreignKey:VeterinarianID" json:"veterinarian,omitempty"`
	Clinic       Clinic          `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	Service      Service         `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}
