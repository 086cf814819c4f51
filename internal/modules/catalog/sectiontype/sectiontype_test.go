package sectiontype

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

type syncResponse struct {
	Message      string                    `json:"message"`
	Count        int                       `json:"count"`
	SectionTypes []models.SectionTypeModel `json:"sectionTypes"`
}

func TestSyncCreatesAllBuiltins(t *testing.T) {
	r, db, cleanup := setupTest(t)
	defer cleanup()

	w := doJSON(t, r, http.MethodPost, "/api/section-types/sync", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp syncResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Built-in section types synced successfully" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	if resp.Count != len(Builtin) {
		t.Fatalf("expected count %d, got %d", len(Builtin), resp.Count)
	}

	var count int64
	db.Model(&models.SectionTypeModel{}).Count(&count)
	if count != int64(len(Builtin)) {
		t.Fatalf("expected %d rows, got %d", len(Builtin), count)
	}
}

func TestSyncIsIdempotentAndPreservesEdits(t *testing.T) {
	r, db, cleanup := setupTest(t)
	defer cleanup()

	if w := doJSON(t, r, http.MethodPost, "/api/section-types/sync", nil); w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var hero models.SectionTypeModel
	if err := db.First(&hero, "slug = ?", "HERO").Error; err != nil {
		t.Fatalf("failed to load HERO record: %v", err)
	}
	if err := db.Model(&hero).Updates(map[string]interface{}{
		"name":      "Big Banner",
		"is_active": false,
	}).Error; err != nil {
		t.Fatalf("failed to edit HERO record: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/section-types/sync", nil)
	var resp syncResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count != len(Builtin) {
		t.Fatalf("expected count %d, got %d", len(Builtin), resp.Count)
	}

	var count int64
	db.Model(&models.SectionTypeModel{}).Count(&count)
	if count != int64(len(Builtin)) {
		t.Fatalf("expected no duplicate rows, got %d", count)
	}

	var after models.SectionTypeModel
	db.First(&after, "slug = ?", "HERO")
	if after.Name != "Big Banner" || after.IsActive {
		t.Fatalf("expected user edits preserved, got name=%q active=%v", after.Name, after.IsActive)
	}
}

func TestSyncStateShowsTemplatesBeforeSync(t *testing.T) {
	r, _, cleanup := setupTest(t)
	defer cleanup()

	w := doJSON(t, r, http.MethodGet, "/api/section-types/sync", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var items []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(items) != len(Builtin) {
		t.Fatalf("expected %d entries, got %d", len(Builtin), len(items))
	}
	if items[0]["id"] != nil {
		t.Fatalf("expected template id to be null, got %v", items[0]["id"])
	}
	if items[0]["slug"] != "HEADER" {
		t.Fatalf("expected first template HEADER, got %v", items[0]["slug"])
	}
}

func TestDeleteBuiltinRejected(t *testing.T) {
	r, db, cleanup := setupTest(t)
	defer cleanup()

	if w := doJSON(t, r, http.MethodPost, "/api/section-types/sync", nil); w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var hero models.SectionTypeModel
	if err := db.First(&hero, "slug = ?", "HERO").Error; err != nil {
		t.Fatalf("failed to load HERO record: %v", err)
	}

	w := doJSON(t, r, http.MethodDelete, "/api/section-types/"+hero.ID, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "Cannot delete built-in section types. You can deactivate them instead." {
		t.Fatalf("unexpected error message: %q", resp["error"])
	}

	var count int64
	db.Model(&models.SectionTypeModel{}).Where("slug = ?", "HERO").Count(&count)
	if count != 1 {
		t.Fatalf("expected HERO record to survive, got %d rows", count)
	}
}

func TestUpdateBuiltinSlugRejected(t *testing.T) {
	r, db, cleanup := setupTest(t)
	defer cleanup()

	if w := doJSON(t, r, http.MethodPost, "/api/section-types/sync", nil); w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var hero models.SectionTypeModel
	db.First(&hero, "slug = ?", "HERO")

	w := doJSON(t, r, http.MethodPut, "/api/section-types/"+hero.ID, map[string]interface{}{
		"slug": "BANNER",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "Cannot change slug for built-in section types" {
		t.Fatalf("unexpected error message: %q", resp["error"])
	}

	// A case-only change of the same slug is allowed.
	w = doJSON(t, r, http.MethodPut, "/api/section-types/"+hero.ID, map[string]interface{}{
		"slug": "hero",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 for case-only slug change, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeactivateBuiltin(t *testing.T) {
	r, db, cleanup := setupTest(t)
	defer cleanup()

	if w := doJSON(t, r, http.MethodPost, "/api/section-types/sync", nil); w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var hero models.SectionTypeModel
	db.First(&hero, "slug = ?", "HERO")

	w := doJSON(t, r, http.MethodPut, "/api/section-types/"+hero.ID, map[string]interface{}{
		"isActive": false,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var after models.SectionTypeModel
	db.First(&after, "id = ?", hero.ID)
	if after.IsActive {
		t.Fatal("expected HERO to be deactivated")
	}
}

func TestCustomSectionTypeDeletable(t *testing.T) {
	r, _, cleanup := setupTest(t)
	defer cleanup()

	w := doJSON(t, r, http.MethodPost, "/api/section-types", map[string]interface{}{
		"name": "Countdown", "slug": "COUNTDOWN",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var created models.SectionTypeModel
	json.Unmarshal(w.Body.Bytes(), &created)
	if !created.IsActive {
		t.Fatal("expected new section type active by default")
	}

	w = doJSON(t, r, http.MethodDelete, "/api/section-types/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["message"] != "Section type deleted successfully" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}
