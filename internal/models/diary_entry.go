package models

// DiaryCategory represents the kind of pet diary entry
type DiaryCategory string

const (
	DiaryCategoryNote        DiaryCategory = "note"
	DiaryCategorySymptom     DiaryCategory = "symptom"
	DiaryCategoryMedication  DiaryCategory = "medication"
	DiaryCategoryVaccination DiaryCategory = "vaccination"
	DiaryCategoryWeight      DiaryCategory = "weight"
)

// PetDiaryEntry represents a dated entry in a pet's diary, written by the owner.
type PetDiaryEntry struct {
	BaseModel
	PetOwnerID uint          `gorm:"index" json:"petOwnerId"`
	PetID      uint          `gorm:"index" json:"petId"`
	EntryDate  string        `gorm:"size:10;index" json:"entryDate"` // YYYY-MM-DD
	Title      string        `gorm:"size:255;not null" json:"title"`
	Content    string        `gorm:"type:text" json:"content,omitempty"`
	Category   DiaryCategory `gorm:"size:20;default:'note'" json:"category"`
	ImageURL   string        `gorm:"size:512" json:"imageUrl,omitempty"`

	// Relations
	Owner PetOwnerProfile `gorm:"foreignKey:PetOwnerID" json:"-"`
	Pet   Pet             `gorm:"foreignKey:PetID" json:"-"`
}
