package section

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pageforge/core/internal/database"
	"github.com/pageforge/core/internal/models"
	"gorm.io/datatypes"
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

func seedSection(t *testing.T, db *gorm.DB) models.SectionModel {
	t.Helper()
	p := models.PageModel{Title: "Home", Slug: "home"}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("failed to seed page: %v", err)
	}
	sec := models.SectionModel{
		PageID:  p.ID,
		Type:    "CONTENT",
		Title:   "Intro",
		Content: "hello",
		Config:  datatypes.JSONMap{"height": 300.0},
	}
	if err := db.Create(&sec).Error; err != nil {
		t.Fatalf("failed to seed section: %v", err)
	}
	return sec
}

func TestGetSection(t *testing.T) {
	r, db, cleanup := setupTest(t)
	defer cleanup()

	sec := seedSection(t, db)
	w := doJSON(t, r, http.MethodGet, "/api/sections/"+sec.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	if w := doJSON(t, r, http.MethodGet, "/api/sections/missing", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown id, got %d", w.Code)
	}
}

func TestUpdateSectionKeepsUnsentTextFields(t *testing.T) {
	r, db, cleanup := setupTest(t)
	defer cleanup()

	sec := seedSection(t, db)
	w := doJSON(t, r, http.MethodPut, "/api/sections/"+sec.ID, map[string]interface{}{
		"title":  "Updated",
		"config": map[string]interface{}{"height": 500},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.SectionModel
	if err := db.First(&updated, "id = ?", sec.ID).Error; err != nil {
		t.Fatalf("failed to reload section: %v", err)
	}
	if updated.Title != "Updated" {
		t.Fatalf("expected title updated, got %s", updated.Title)
	}
	if updated.Content != "hello" {
		t.Fatalf("expected content untouched, got %q", updated.Content)
	}
	if updated.Config["height"] != 500.0 {
		t.Fatalf("expected config replaced, got %v", updated.Config)
	}
}

func TestUpdateSectionResetsConfigWhenOmitted(t *testing.T) {
	r, db, cleanup := setupTest(t)
	defer cleanup()

	sec := seedSection(t, db)
	w := doJSON(t, r, http.MethodPut, "/api/sections/"+sec.ID, map[string]interface{}{
		"title": "Updated",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var updated models.SectionModel
	if err := db.First(&updated, "id = ?", sec.ID).Error; err != nil {
		t.Fatalf("failed to reload section: %v", err)
	}
	if len(updated.Config) != 0 {
		t.Fatalf("expected config reset to empty object, got %v", updated.Config)
	}
}

func TestDeleteSection(t *testing.T) {
	r, db, cleanup := setupTest(t)
	defer cleanup()

	sec := seedSection(t, db)
	w := doJSON(t, r, http.MethodDelete, "/api/sections/"+sec.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["message"] != "Section deleted successfully" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}

	if w := doJSON(t, r, http.MethodDelete, "/api/sections/"+sec.ID, nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 on second delete, got %d", w.Code)
	}
}
