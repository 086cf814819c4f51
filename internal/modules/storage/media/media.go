package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageforge/core/internal/models"
	"github.com/pageforge/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SanitizeFilename replaces anything outside [a-zA-Z0-9.-] with underscores.
func SanitizeFilename(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

type CreateMediaDTO struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
	Width    *int   `json:"width"`
	Height   *int   `json:"height"`
	Alt      string `json:"alt"`
}

type Service struct {
	db         *gorm.DB
	uploadsDir string
	log        *zap.Logger
}

func NewService(db *gorm.DB, uploadsDir string, log *zap.Logger) *Service {
	return &Service{db: db, uploadsDir: uploadsDir, log: log}
}

func (s *Service) List() ([]models.MediaModel, error) {
	var items []models.MediaModel
	err := s.db.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) GetByID(id string) (*models.MediaModel, error) {
	var m models.MediaModel
	err := s.db.First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) Create(dto *CreateMediaDTO) (*models.MediaModel, error) {
	m := models.MediaModel{
		Filename: dto.Filename,
		URL:      dto.URL,
		MimeType: dto.MimeType,
		Size:     dto.Size,
		Width:    dto.Width,
		Height:   dto.Height,
		Alt:      dto.Alt,
	}
	return &m, s.db.Create(&m).Error
}

// StoredName builds the on-disk name for an upload: a millisecond
// timestamp prefix keeps names unique, sanitizing keeps them safe.
func StoredName(original string, now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), SanitizeFilename(original))
}

// DiskPath resolves a served /uploads URL back to the file on disk.
func (s *Service) DiskPath(url string) string {
	return filepath.Join(s.uploadsDir, strings.TrimPrefix(url, "/uploads/"))
}

// Delete removes the file from disk (best effort) and then the record.
// A failed unlink is logged and otherwise ignored.
func (s *Service) Delete(id string) (bool, error) {
	m, err := s.GetByID(id)
	if err != nil {
		return false, err
	}
	if m == nil {
		return false, nil
	}

	if err := os.Remove(s.DiskPath(m.URL)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("failed to delete media file",
			zap.String("url", m.URL),
			zap.Error(err),
		)
	}

	err = s.db.Delete(&models.MediaModel{}, "id = ?", id).Error
	return err == nil, err
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/media")
	g.GET("", h.list)
	g.POST("", h.create)
	g.POST("/upload", h.upload)
	g.GET("/:id", h.get)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err, "Failed to fetch media")
		return
	}
	response.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	m, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err, "Failed to fetch media")
		return
	}
	if m == nil {
		response.NotFound(c, "Media not found")
		return
	}
	response.OK(c, m)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateMediaDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if dto.Filename == "" || dto.URL == "" || dto.MimeType == "" || dto.Size == 0 {
		response.BadRequest(c, "Filename, URL, mimeType, and size are required")
		return
	}
	m, err := h.svc.Create(&dto)
	if err != nil {
		response.InternalError(c, err, "Failed to create media")
		return
	}
	response.Created(c, m)
}

func (h *Handler) upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file provided")
		return
	}

	if err := os.MkdirAll(h.svc.uploadsDir, 0o755); err != nil {
		response.InternalError(c, err, "Failed to upload file")
		return
	}

	stored := StoredName(file.Filename, time.Now())
	if err := c.SaveUploadedFile(file, filepath.Join(h.svc.uploadsDir, stored)); err != nil {
		response.InternalError(c, err, "Failed to upload file")
		return
	}

	// Width and height stay null; dimension probing is not implemented.
	m, err := h.svc.Create(&CreateMediaDTO{
		Filename: file.Filename,
		URL:      "/uploads/" + stored,
		MimeType: file.Header.Get("Content-Type"),
		Size:     file.Size,
		Alt:      file.Filename,
	})
	if err != nil {
		response.InternalError(c, err, "Failed to upload file")
		return
	}
	response.Created(c, m)
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err, "Failed to delete media")
		return
	}
	if !deleted {
		response.NotFound(c, "Media not found")
		return
	}
	response.Message(c, "Media deleted successfully")
}
