package settings

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/pageforge/core/internal/models"
	"github.com/pageforge/core/internal/pkg/response"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Well-known keys consumed by the public renderer.
const (
	KeyGlobalHeader = "globalHeader"
	KeyGlobalFooter = "globalFooter"
)

// Service stores site-wide settings and keeps them in a process-wide
// cache. Every write invalidates the cache.
type Service struct {
	db    *gorm.DB
	mu    sync.RWMutex
	cache map[string]datatypes.JSONMap
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// All returns every setting as a key to value map.
func (s *Service) All() (map[string]datatypes.JSONMap, error) {
	s.mu.RLock()
	if s.cache != nil {
		defer s.mu.RUnlock()
		return s.cache, nil
	}
	s.mu.RUnlock()

	return s.load()
}

func (s *Service) load() (map[string]datatypes.JSONMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []models.SettingModel
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	m := make(map[string]datatypes.JSONMap, len(rows))
	for _, row := range rows {
		m[row.Key] = row.Value
	}
	s.cache = m
	return m, nil
}

// Value returns one setting's value, or nil when the key is absent.
func (s *Service) Value(key string) (datatypes.JSONMap, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	return all[key], nil
}

// GetRecord fetches the full stored row for a key.
func (s *Service) GetRecord(key string) (*models.SettingModel, error) {
	// Map condition so gorm quotes the column; KEY is reserved in MySQL.
	var row models.SettingModel
	err := s.db.Where(map[string]interface{}{"key": key}).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert writes a setting and invalidates the cache.
func (s *Service) Upsert(key string, value datatypes.JSONMap) (*models.SettingModel, error) {
	row := models.SettingModel{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"value": value}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	s.Invalidate()
	return s.GetRecord(key)
}

// Invalidate drops the cache; the next read reloads from the database.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()
}

type upsertDTO struct {
	Key   string            `json:"key"`
	Value datatypes.JSONMap `json:"value"`
}

type valueDTO struct {
	Value datatypes.JSONMap `json:"value"`
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/settings")
	g.GET("", h.list)
	g.POST("", h.upsert)
	g.GET("/:key", h.get)
	g.PUT("/:key", h.put)
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.svc.All()
	if err != nil {
		response.InternalError(c, err, "Failed to fetch settings")
		return
	}
	response.OK(c, all)
}

func (h *Handler) get(c *gin.Context) {
	row, err := h.svc.GetRecord(c.Param("key"))
	if err != nil {
		response.InternalError(c, err, "Failed to fetch setting")
		return
	}
	if row == nil {
		response.NotFound(c, "Setting not found")
		return
	}
	response.OK(c, row)
}

func (h *Handler) upsert(c *gin.Context) {
	var dto upsertDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if dto.Key == "" {
		response.BadRequest(c, "Key is required")
		return
	}
	row, err := h.svc.Upsert(dto.Key, dto.Value)
	if err != nil {
		response.InternalError(c, err, "Failed to save setting")
		return
	}
	response.OK(c, row)
}

func (h *Handler) put(c *gin.Context) {
	var dto valueDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	row, err := h.svc.Upsert(c.Param("key"), dto.Value)
	if err != nil {
		response.InternalError(c, err, "Failed to update setting")
		return
	}
	response.OK(c, row)
}
