package sessiontype

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pageforge/core/internal/database"
	"github.com/pageforge/core/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTest(t *testing.T) (*gin.Engine, *gorm.DB, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	r := gin.New()
	api := r.Group("/api")
	NewHandler(NewService(db)).RegisterRoutes(api)

	return r, db, func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("failed to encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateSessionTypeDefaultDuration(t *testing.T) {
	r, _, cleanup := setupTest(t)
	defer cleanup()

	w := doJSON(t, r, http.MethodPost, "/api/session-types", map[string]interface{}{
		"name": "Intro Call", "slug": "intro-call",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var created models.SessionTypeModel
	json.Unmarshal(w.Body.Bytes(), &created)
	if created.Duration != 60 {
		t.Fatalf("expected default duration 60, got %d", created.Duration)
	}

	w = doJSON(t, r, http.MethodPost, "/api/session-types", map[string]interface{}{
		"name": "Workshop", "slug": "workshop", "duration": 120,
	})
	json.Unmarshal(w.Body.Bytes(), &created)
	if created.Duration != 120 {
		t.Fatalf("expected duration 120, got %d", created.Duration)
	}
}

func TestCreateSessionTypeNameConflict(t *testing.T) {
	r, _, cleanup := setupTest(t)
	defer cleanup()

	if w := doJSON(t, r, http.MethodPost, "/api/session-types", map[string]interface{}{
		"name": "Intro Call", "slug": "intro-call",
	}); w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/api/session-types", map[string]interface{}{
		"name": "Intro Call", "slug": "intro-call-2",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "A session type with this name already exists" {
		t.Fatalf("unexpected error message: %q", resp["error"])
	}
}

func TestUpdateSessionTypeDuration(t *testing.T) {
	r, db, cleanup := setupTest(t)
	defer cleanup()

	st := models.SessionTypeModel{Name: "Intro Call", Slug: "intro-call", Duration: 60}
	if err := db.Create(&st).Error; err != nil {
		t.Fatalf("failed to seed session type: %v", err)
	}

	w := doJSON(t, r, http.MethodPut, "/api/session-types/"+st.ID, map[string]interface{}{
		"duration": 45,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.SessionTypeModel
	if err := db.First(&updated, "id = ?", st.ID).Error; err != nil {
		t.Fatalf("failed to reload session type: %v", err)
	}
	if updated.Duration != 45 {
		t.Fatalf("expected duration 45, got %d", updated.Duration)
	}
	if updated.Name != "Intro Call" {
		t.Fatalf("expected name untouched, got %q", updated.Name)
	}
}

func TestDeleteSessionType(t *testing.T) {
	r, db, cleanup := setupTest(t)
	defer cleanup()

	st := models.SessionTypeModel{Name: "Intro Call", Slug: "intro-call", Duration: 60}
	if err := db.Create(&st).Error; err != nil {
		t.Fatalf("failed to seed session type: %v", err)
	}

	w := doJSON(t, r, http.MethodDelete, "/api/session-types/"+st.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["message"] != "Session type deleted successfully" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}
