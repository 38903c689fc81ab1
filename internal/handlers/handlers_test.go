package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"vetclinic-app-server/internal/config"
	"vetclinic-app-server/internal/models"
	"vetclinic-app-server/internal/routes"
	"vetclinic-app-server/internal/storage"
	"vetclinic-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// apiResponse mirrors utils.ResponseData with a raw data payload.
type apiResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// fixture is a fully wired test server with one owner, one vet, a clinic,
// a service and a pet.
type fixture struct {
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config

	owner      models.PetOwnerProfile
	ownerToken string
	vet        models.Veterinarian
	vetToken   string
	clinic     models.Clinic
	service    models.Service
	pet        models.Pet
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		Environment:               "development",
		JWTSecret:                 "test-secret",
		JWTRefreshSecret:          "test-refresh-secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 1,
	}

	images, err := storage.NewImageStore(config.CloudinaryConfig{})
	if err != nil {
		t.Fatalf("failed to build image store: %v", err)
	}

	router := gin.New()
	routes.SetupRoutes(router, db, cfg, images)

	f := &fixture{router: router, db: db, cfg: cfg}

	f.clinic = models.Clinic{Name: "Happy Paws", Address: "1 Main St", City: "Springfield"}
	mustCreate(t, db, &f.clinic)

	f.service = models.Service{ClinicID: f.clinic.ID, Name: "General Checkup", Price: 50, DurationMinutes: 30, IsActive: true}
	mustCreate(t, db, &f.service)

	ownerUser := f.createUser(t, "owner@example.com", models.RolePetOwner)
	f.owner = models.PetOwnerProfile{UserID: ownerUser.ID, City: "Springfield"}
	mustCreate(t, db, &f.owner)
	f.ownerToken = f.tokenFor(t, ownerUser)

	vetUser := f.createUser(t, "vet@example.com", models.RoleVeterinarian)
	f.vet = models.Veterinarian{UserID: vetUser.ID, ClinicID: f.clinic.ID, Specialization: "general"}
	mustCreate(t, db, &f.vet)
	f.vetToken = f.tokenFor(t, vetUser)

	f.pet = models.Pet{PetOwnerID: f.owner.ID, Name: "Rex", Species: "dog", IsActive: true}
	mustCreate(t, db, &f.pet)

	return f
}

func (f *fixture) createUser(t *testing.T, email string, role models.Role) models.User {
	t.Helper()
	user := models.User{Email: email, FirstName: "Test", LastName: "User", Role: role}
	if err := user.SetPassword("password123"); err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	mustCreate(t, f.db, &user)
	return user
}

// newOwner creates an additional pet owner and returns their profile and token.
func (f *fixture) newOwner(t *testing.T, email string) (models.PetOwnerProfile, string) {
	t.Helper()
	user := f.createUser(t, email, models.RolePetOwner)
	profile := models.PetOwnerProfile{UserID: user.ID}
	mustCreate(t, f.db, &profile)
	return profile, f.tokenFor(t, user)
}

func (f *fixture) tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	access, _, err := utils.GenerateTokens(&user, f.cfg)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return access
}

// seedAppointment inserts an appointment directly, bypassing the HTTP layer.
func (f *fixture) seedAppointment(t *testing.T, ownerID uint, date string, status models.AppointmentStatus) *models.Appointment {
	t.Helper()
	appt := &models.Appointment{
		PetOwnerID:      ownerID,
		PatientID:       f.pet.ID,
		VeterinarianID:  f.vet.ID,
		ClinicID:        f.clinic.ID,
		ServiceID:       f.service.ID,
		AppointmentDate: date,
		AppointmentTime: "10:00",
		Status:          status,
		ReasonForVisit:  "checkup",
	}
	mustCreate(t, f.db, appt)
	return appt
}

func (f *fixture) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return w, resp
}

func (f *fixture) reloadAppointment(t *testing.T, id uint) models.Appointment {
	t.Helper()
	var appt models.Appointment
	if err := f.db.First(&appt, id).Error; err != nil {
		t.Fatalf("failed to reload appointment %d: %v", id, err)
	}
	return appt
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("failed to create %T: %v", value, err)
	}
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func statusPath(id uint) string {
	return fmt.Sprintf("/api/v1/appointments/%d/status", id)
}

func assertCode(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status code = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}
