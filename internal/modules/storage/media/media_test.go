package media

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageforge/core/internal/database"
	"github.com/pageforge/core/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTest(t *testing.T) (*gin.Engine, *gorm.DB, string, func()) {
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

	uploadsDir := filepath.Join(t.TempDir(), "uploads")

	r := gin.New()
	api := r.Group("/api")
	NewHandler(NewService(db, uploadsDir, zap.NewNop())).RegisterRoutes(api)

	return r, db, uploadsDir, func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"logo.png", "logo.png"},
		{"my photo (1).jpg", "my_photo__1_.jpg"},
		{"über cool.png", "_ber_cool.png"},
		{"a-b_c.d", "a-b_c.d"},
	}
	for _, tc := range cases {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStoredName(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	if got := StoredName("my photo.jpg", now); got != "1700000000000-my_photo.jpg" {
		t.Fatalf("unexpected stored name: %q", got)
	}
}

func TestUploadSavesFileAndRecord(t *testing.T) {
	r, _, uploadsDir, cleanup := setupTest(t)
	defer cleanup()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "my photo.jpg")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	part.Write([]byte("fake image bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/media/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var created models.MediaModel
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.Filename != "my photo.jpg" {
		t.Fatalf("expected original filename kept, got %q", created.Filename)
	}
	if created.Alt != "my photo.jpg" {
		t.Fatalf("expected alt defaulted to filename, got %q", created.Alt)
	}
	if !strings.HasPrefix(created.URL, "/uploads/") || !strings.HasSuffix(created.URL, "-my_photo.jpg") {
		t.Fatalf("unexpected url: %q", created.URL)
	}
	if created.Width != nil || created.Height != nil {
		t.Fatal("expected width and height to stay null")
	}
	if created.Size != int64(len("fake image bytes")) {
		t.Fatalf("unexpected size: %d", created.Size)
	}

	onDisk := filepath.Join(uploadsDir, strings.TrimPrefix(created.URL, "/uploads/"))
	data, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("expected saved file at %s: %v", onDisk, err)
	}
	if string(data) != "fake image bytes" {
		t.Fatalf("unexpected file contents: %q", data)
	}
}

func TestUploadRequiresFile(t *testing.T) {
	r, _, _, cleanup := setupTest(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodPost, "/api/media/upload", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "No file provided" {
		t.Fatalf("unexpected error message: %q", resp["error"])
	}
}

func TestCreateMediaValidation(t *testing.T) {
	r, _, _, cleanup := setupTest(t)
	defer cleanup()

	payload, _ := json.Marshal(map[string]interface{}{"filename": "a.png", "url": "/uploads/a.png"})
	req := httptest.NewRequest(http.MethodPost, "/api/media", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "Filename, URL, mimeType, and size are required" {
		t.Fatalf("unexpected error message: %q", resp["error"])
	}
}

func TestDeleteMediaIgnoresMissingFile(t *testing.T) {
	r, db, _, cleanup := setupTest(t)
	defer cleanup()

	m := models.MediaModel{
		Filename: "gone.png",
		URL:      "/uploads/123-gone.png",
		MimeType: "image/png",
		Size:     42,
	}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("failed to seed media: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/media/"+m.ID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 even without a file on disk, got %d", w.Code)
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["message"] != "Media deleted successfully" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}

	var count int64
	db.Model(&models.MediaModel{}).Where("id = ?", m.ID).Count(&count)
	if count != 0 {
		t.Fatal("expected record removed")
	}
}
