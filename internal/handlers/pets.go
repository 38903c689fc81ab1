package handlers

import (
	"strconv"
	"time"

	"vetclinic-app-server/internal/models"
	"vetclinic-app-server/internal/storage"
	"vetclinic-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PetHandler handles pet (patient) related requests.
type PetHandler struct {
	DB     *gorm.DB
	Images *storage.ImageStore
}

// NewPetHandler creates a new PetHandler.
func NewPetHandler(db *gorm.DB, images *storage.ImageStore) *PetHandler {
	return &PetHandler{DB: db, Images: images}
}

// CreatePetRequest represents the request body for registering a pet.
type CreatePetRequest struct {
	Name        string  `json:"name" binding:"required"`
	Species     string  `json:"species" binding:"required"`
	Breed       string  `json:"breed"`
	Gender      string  `json:"gender" binding:"omitempty,oneof=male female"`
	DateOfBirth string  `json:"dateOfBirth" binding:"omitempty,datetime=2006-01-02"`
	WeightKg    float64 `json:"weightKg"`
}

// CreatePet registers a new pet for the authenticated owner.
func (h *PetHandler) CreatePet(c *gin.Context) {
	var req CreatePetRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	owner, ok := currentOwnerProfile(c, h.DB)
	if !ok {
		return
	}

	pet := models.Pet{
		PetOwnerID: owner.ID,
		Name:       req.Name,
		Species:    req.Species,
		Breed:      req.Breed,
		Gender:     req.Gender,
		WeightKg:   req.WeightKg,
		IsActive:   true,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			utils.BadRequest(c, "Invalid dateOfBirth format, expected YYYY-MM-DD")
			return
		}
		pet.DateOfBirth = &dob
	}

	if err := h.DB.Create(&pet).Error; err != nil {
		utils.InternalServerError(c, "Failed to create pet: "+err.Error())
		return
	}

	utils.Created(c, "Pet registered successfully", pet)
}

// GetPets lists the authenticated owner's active pets. Pass includeInactive=true
// to also return soft-deleted pets.
func (h *PetHandler) GetPets(c *gin.Context) {
	owner, ok := currentOwnerProfile(c, h.DB)
	if !ok {
		return
	}

	query := h.DB.Where("pet_owner_id = ?", owner.ID)
	if c.Query("includeInactive") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var pets []models.Pet
	if err := query.Order("name asc").Find(&pets).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch pets: "+err.Error())
		return
	}

	utils.Success(c, "Pets fetched successfully", pets)
}

// GetPetByID fetches a single pet owned by the caller.
func (h *PetHandler) GetPetByID(c *gin.Context) {
	pet, ok := h.loadOwnedPet(c)
	if !ok {
		return
	}
	utils.Success(c, "Pet fetched successfully", pet)
}

// UpdatePetRequest represents the request body for updating a pet.
type UpdatePetRequest struct {
	Name     string  `json:"name"`
	Breed    string  `json:"breed"`
	WeightKg float64 `json:"weightKg"`
}

// UpdatePet updates a pet owned by the caller.
func (h *PetHandler) UpdatePet(c *gin.Context) {
	pet, ok := h.loadOwnedPet(c)
	if !ok {
		return
	}

	var req UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if req.Name != "" {
		pet.Name = req.Name
	}
	if req.Breed != "" {
		pet.Breed = req.Breed
	}
	if req.WeightKg > 0 {
		pet.WeightKg = req.WeightKg
	}

	if err := h.DB.Save(pet).Error; err != nil {
		utils.InternalServerError(c, "Failed to update pet: "+err.Error())
		return
	}

	utils.Success(c, "Pet updated successfully", pet)
}

// DeletePet soft-deletes a pet by clearing its active flag. The row, and any
// appointment history referencing it, is kept.
func (h *PetHandler) DeletePet(c *gin.Context) {
	pet, ok := h.loadOwnedPet(c)
	if !ok {
		return
	}

	pet.IsActive = false
	if err := h.DB.Save(pet).Error; err != nil {
		utils.InternalServerError(c, "Failed to deactivate pet: "+err.Error())
		return
	}

	utils.Success(c, "Pet deactivated successfully", pet)
}

// UploadPetPhoto uploads a pet photo to image storage and saves its URL.
func (h *PetHandler) UploadPetPhoto(c *gin.Context) {
	pet, ok := h.loadOwnedPet(c)
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

	url, err := h.Images.UploadImage(c.Request.Context(), file, "pet")
	if err != nil {
		utils.InternalServerError(c, "Failed to upload image: "+err.Error())
		return
	}

	pet.PhotoURL = url
	if err := h.DB.Save(pet).Error; err != nil {
		utils.InternalServerError(c, "Failed to save pet photo: "+err.Error())
		return
	}

	utils.Success(c, "Pet photo uploaded successfully", gin.H{"photoUrl": url})
}

// loadOwnedPet loads the pet from the :id param and verifies it belongs to the
// authenticated owner. Sends the error response itself on failure.
func (h *PetHandler) loadOwnedPet(c *gin.Context) (*models.Pet, bool) {
	petID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid Pet ID format")
		return nil, false
	}

	owner, ok := currentOwnerProfile(c, h.DB)
	if !ok {
		return nil, false
	}

	var pet models.Pet
	if err := h.DB.First(&pet, uint(petID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Pet not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}

	if pet.PetOwnerID != owner.ID {
		utils.Forbidden(c, "You are not authorized to manage this pet")
		return nil, false
	}

	return &pet, true
}
