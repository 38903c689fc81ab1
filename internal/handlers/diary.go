package handlers

import (
	"strconv"

	"vetclinic-app-server/internal/models"
	"vetclinic-app-server/internal/storage"
	"vetclinic-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DiaryHandler handles pet diary entries.
type DiaryHandler struct {
	DB     *gorm.DB
	Images *storage.ImageStore
}

// NewDiaryHandler creates a new DiaryHandler.
func NewDiaryHandler(db *gorm.DB, images *storage.ImageStore) *DiaryHandler {
	return &DiaryHandler{DB: db, Images: images}
}

// CreateDiaryEntryRequest represents the request body for a new diary entry.
type CreateDiaryEntryRequest struct {
	PetID     uint   `json:"petId" binding:"required"`
	EntryDate string `json:"entryDate" binding:"required,datetime=2006-01-02"`
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content"`
	Category  string `json:"category" binding:"omitempty,oneof=note symptom medication vaccination weight"`
}

// CreateEntry adds a diary entry for one of the caller's pets.
func (h *DiaryHandler) CreateEntry(c *gin.Context) {
	var req CreateDiaryEntryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	owner, ok := currentOwnerProfile(c, h.DB)
	if !ok {
		return
	}

	var pet models.Pet
	if err := h.DB.Where("id = ? AND pet_owner_id = ?", req.PetID, owner.ID).First(&pet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Pet not found among your pets")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	entry := models.PetDiaryEntry{
		PetOwnerID: owner.ID,
		PetID:      pet.ID,
		EntryDate:  req.EntryDate,
		Title:      req.Title,
		Content:    req.Content,
		Category:   models.DiaryCategory(req.Category),
	}
	if entry.Category == "" {
		entry.Category = models.DiaryCategoryNote
	}

	if err := h.DB.Create(&entry).Error; err != nil {
		utils.InternalServerError(c, "Failed to create diary entry: "+err.Error())
		return
	}

	utils.Created(c, "Diary entry created successfully", entry)
}

// GetEntriesForPet lists diary entries for one of the caller's pets, newest
// first. Optional category filter.
func (h *DiaryHandler) GetEntriesForPet(c *gin.Context) {
	petID, err := strconv.ParseUint(c.Param("petId"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid Pet ID format")
		return
	}

	owner, ok := currentOwnerProfile(c, h.DB)
	if !ok {
		return
	}

	var pet models.Pet
	if err := h.DB.Where("id = ? AND pet_owner_id = ?", uint(petID), owner.ID).First(&pet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Pet not found among your pets")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	query := h.DB.Where("pet_id = ?", pet.ID).Order("entry_date desc, created_at desc")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var entries []models.PetDiaryEntry
	if err := query.Find(&entries).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch diary entries: "+err.Error())
		return
	}

	utils.Success(c, "Diary entries fetched successfully", entries)
}

// UpdateDiaryEntryRequest represents the request body for editing an entry.
type UpdateDiaryEntryRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category" binding:"omitempty,oneof=note symptom medication vaccination weight"`
}

// UpdateEntry edits a diary entry owned by the caller.
func (h *DiaryHandler) UpdateEntry(c *gin.Context) {
	entry, ok := h.loadOwnedEntry(c)
	if !ok {
		return
	}

	var req UpdateDiaryEntryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.Title != "" {
		entry.Title = req.Title
	}
	if req.Content != "" {
		entry.Content = req.Content
	}
	if req.Category != "" {
		entry.Category = models.DiaryCategory(req.Category)
	}

	if err := h.DB.Save(entry).Error; err != nil {
		utils.InternalServerError(c, "Failed to update diary entry: "+err.Error())
		return
	}

	utils.Success(c, "Diary entry updated successfully", entry)
}

// DeleteEntry removes a diary entry owned by the caller.
func (h *DiaryHandler) DeleteEntry(c *gin.Context) {
	entry, ok := h.loadOwnedEntry(c)
	if !ok {
		return
	}

	if err := h.DB.Delete(entry).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete diary entry: "+err.Error())
		return
	}

	utils.Success(c, "Diary entry deleted successfully", nil)
}

// UploadEntryImage uploads an image for a diary entry and saves its URL.
func (h *DiaryHandler) UploadEntryImage(c *gin.Context) {
	entry, ok := h.loadOwnedEntry(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "A file field is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.InternalServerError(c, "Failed to read uploaded file: "+err.Error())
		return
	}
	defer file.Close()

	url, err := h.Images.UploadImage(c.Request.Context(), file, "diary")
	if err != nil {
		utils.InternalServerError(c, "Failed to upload image: "+err.Error())
		return
	}

	entry.ImageURL = url
	if err := h.DB.Save(entry).Error; err != nil {
		utils.InternalServerError(c, "Failed to save diary image: "+err.Error())
		return
	}

	utils.Success(c, "Diary image uploaded successfully", gin.H{"imageUrl": url})
}

// loadOwnedEntry loads the entry from the :id param and verifies ownership.
func (h *DiaryHandler) loadOwnedEntry(c *gin.Context) (*models.PetDiaryEntry, bool) {
	entryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid entry ID format")
		return nil, false
	}

	owner, ok := currentOwnerProfile(c, h.DB)
	if !ok {
		return nil, false
	}

	var entry models.PetDiaryEntry
	if err := h.DB.First(&entry, uint(entryID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Diary entry not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}

	if entry.PetOwnerID != owner.ID {
		utils.Forbidden(c, "You are not authorized to manage this diary entry")
		return nil, false
	}

	return &entry, true
}
