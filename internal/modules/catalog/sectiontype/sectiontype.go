package sectiontype

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pageforge/core/internal/models"
	"github.com/pageforge/core/internal/pkg/response"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrSlugExists    = errors.New("A section type with this slug already exists")
	ErrNameExists    = errors.New("A section type with this name already exists")
	ErrBuiltinSlug   = errors.New("Cannot change slug for built-in section types")
	ErrBuiltinDelete = errors.New("Cannot delete built-in section types. You can deactivate them instead.")
)

type CreateDTO struct {
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	Description string             `json:"description"`
	Icon        string             `json:"icon"`
	Component   string             `json:"component"`
	Fields      []models.FieldSpec `json:"fields"`
	Config      datatypes.JSONMap  `json:"config"`
	IsActive    *bool              `json:"isActive"`
}

type UpdateDTO struct {
	Name        *string            `json:"name"`
	Slug        *string            `json:"slug"`
	Description *string            `json:"description"`
	Icon        *string            `json:"icon"`
	Component   *string            `json:"component"`
	Fields      []models.FieldSpec `json:"fields"`
	Config      datatypes.JSONMap  `json:"config"`
	IsActive    *bool              `json:"isActive"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List() ([]models.SectionTypeModel, error) {
	var items []models.SectionTypeModel
	err := s.db.Order("updated_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) GetByID(id string) (*models.SectionTypeModel, error) {
	var st models.SectionTypeModel
	err := s.db.First(&st, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Service) getBySlug(slug string) (*models.SectionTypeModel, error) {
	var st models.SectionTypeModel
	err := s.db.First(&st, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Service) taken(column, value, excludeID string) (bool, error) {
	var count int64
	tx := s.db.Model(&models.SectionTypeModel{}).Where(column+" = ?", value)
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	err := tx.Count(&count).Error
	return count > 0, err
}

func (s *Service) Create(dto *CreateDTO) (*models.SectionTypeModel, error) {
	if taken, err := s.taken("slug", dto.Slug, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrSlugExists
	}
	if taken, err := s.taken("name", dto.Name, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrNameExists
	}

	st := models.SectionTypeModel{
		Name:        dto.Name,
		Slug:        dto.Slug,
		Description: dto.Description,
		Icon:        dto.Icon,
		Component:   dto.Component,
		Fields:      dto.Fields,
		Config:      dto.Config,
		IsActive:    true,
	}
	if dto.IsActive != nil {
		st.IsActive = *dto.IsActive
	}
	if err := s.db.Create(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return &st, nil
}

func (s *Service) Update(id string, dto *UpdateDTO) (*models.SectionTypeModel, error) {
	existing, err := s.GetByID(id)
	if err != nil || existing == nil {
		return existing, err
	}

	// Built-in records keep their slug forever.
	if IsBuiltinSlug(existing.Slug) && dto.Slug != nil &&
		!strings.EqualFold(*dto.Slug, existing.Slug) {
		return nil, ErrBuiltinSlug
	}

	if dto.Slug != nil && *dto.Slug != existing.Slug {
		if taken, err := s.taken("slug", *dto.Slug, id); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrSlugExists
		}
	}
	if dto.Name != nil && *dto.Name != existing.Name {
		if taken, err := s.taken("name", *dto.Name, id); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrNameExists
		}
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Slug != nil {
		updates["slug"] = *dto.Slug
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Icon != nil {
		updates["icon"] = *dto.Icon
	}
	if dto.Component != nil {
		updates["component"] = *dto.Component
	}
	if dto.Fields != nil {
		updates["fields"] = dto.Fields
	}
	if dto.Config != nil {
		updates["config"] = dto.Config
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	if len(updates) > 0 {
		if err := s.db.Model(existing).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrSlugExists
			}
			return nil, err
		}
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) (bool, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	if IsBuiltinSlug(existing.Slug) {
		return false, ErrBuiltinDelete
	}
	err = s.db.Delete(&models.SectionTypeModel{}, "id = ?", id).Error
	return err == nil, err
}

// Sync inserts any built-in definition missing from the catalog and leaves
// existing records alone, so user edits survive. Safe to run repeatedly.
func (s *Service) Sync() ([]models.SectionTypeModel, error) {
	results := make([]models.SectionTypeModel, 0, len(Builtin))
	for _, def := range Builtin {
		existing, err := s.getBySlug(def.Slug)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			results = append(results, *existing)
			continue
		}
		st := models.SectionTypeModel{
			Name:        def.Name,
			Slug:        def.Slug,
			Description: def.Description,
			Icon:        def.Icon,
			Component:   def.Component,
			IsActive:    true,
		}
		if err := s.db.Create(&st).Error; err != nil {
			return nil, err
		}
		results = append(results, st)
	}
	return results, nil
}

// SyncState returns the stored record per built-in slug, or the shipped
// template (with a null id) where no record exists yet.
func (s *Service) SyncState() ([]interface{}, error) {
	results := make([]interface{}, 0, len(Builtin))
	for _, def := range Builtin {
		existing, err := s.getBySlug(def.Slug)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			results = append(results, existing)
			continue
		}
		results = append(results, gin.H{
			"id":          nil,
			"name":        def.Name,
			"slug":        def.Slug,
			"description": def.Description,
			"icon":        def.Icon,
			"component":   def.Component,
			"isActive":    true,
			"createdAt":   nil,
			"updatedAt":   nil,
		})
	}
	return results, nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/section-types")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/sync", h.syncState)
	g.POST("/sync", h.sync)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func isConflict(err error) bool {
	return errors.Is(err, ErrSlugExists) || errors.Is(err, ErrNameExists) ||
		errors.Is(err, ErrBuiltinSlug)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err, "Failed to fetch section types")
		return
	}
	response.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	st, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err, "Failed to fetch section type")
		return
	}
	if st == nil {
		response.NotFound(c, "Section type not found")
		return
	}
	response.OK(c, st)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if dto.Name == "" || dto.Slug == "" {
		response.BadRequest(c, "Name and slug are required")
		return
	}
	st, err := h.svc.Create(&dto)
	if err != nil {
		if isConflict(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err, "Failed to create section type")
		return
	}
	response.Created(c, st)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	st, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		if isConflict(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err, "Failed to update section type")
		return
	}
	if st == nil {
		response.NotFound(c, "Section type not found")
		return
	}
	response.OK(c, st)
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrBuiltinDelete) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err, "Failed to delete section type")
		return
	}
	if !deleted {
		response.NotFound(c, "Section type not found")
		return
	}
	response.Message(c, "Section type deleted successfully")
}

func (h *Handler) sync(c *gin.Context) {
	records, err := h.svc.Sync()
	if err != nil {
		response.InternalError(c, err, "Failed to sync section types")
		return
	}
	response.OK(c, gin.H{
		"message":      "Built-in section types synced successfully",
		"count":        len(records),
		"sectionTypes": records,
	})
}

func (h *Handler) syncState(c *gin.Context) {
	results, err := h.svc.SyncState()
	if err != nil {
		response.InternalError(c, err, "Failed to fetch built-in section types")
		return
	}
	response.OK(c, results)
}
