package contenttype

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/pageforge/core/internal/models"
	"github.com/pageforge/core/internal/pkg/response"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrSlugExists = errors.New("A content type with this slug already exists")
	ErrNameExists = errors.New("A content type with this name already exists")
)

type CreateDTO struct {
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	Description string             `json:"description"`
	Fields      []models.FieldSpec `json:"fields"`
	Config      datatypes.JSONMap  `json:"config"`
}

// UpdateDTO is a partial update; absent fields are left untouched.
type UpdateDTO struct {
	Name        *string            `json:"name"`
	Slug        *string            `json:"slug"`
	Description *string            `json:"description"`
	Fields      []models.FieldSpec `json:"fields"`
	Config      datatypes.JSONMap  `json:"config"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List() ([]models.ContentTypeModel, error) {
	var items []models.ContentTypeModel
	err := s.db.Order("updated_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) GetByID(id string) (*models.ContentTypeModel, error) {
	var ct models.ContentTypeModel
	err := s.db.First(&ct, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

func (s *Service) taken(column, value, excludeID string) (bool, error) {
	var count int64
	tx := s.db.Model(&models.ContentTypeModel{}).Where(column+" = ?", value)
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	err := tx.Count(&count).Error
	return count > 0, err
}

func (s *Service) Create(dto *CreateDTO) (*models.ContentTypeModel, error) {
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

	ct := models.ContentTypeModel{
		Name:        dto.Name,
		Slug:        dto.Slug,
		Description: dto.Description,
		Fields:      dto.Fields,
		Config:      dto.Config,
	}
	if err := s.db.Create(&ct).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return &ct, nil
}

func (s *Service) Update(id string, dto *UpdateDTO) (*models.ContentTypeModel, error) {
	existing, err := s.GetByID(id)
	if err != nil || existing == nil {
		return existing, err
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
	if dto.Fields != nil {
		updates["fields"] = dto.Fields
	}
	if dto.Config != nil {
		updates["config"] = dto.Config
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
	err = s.db.Delete(&models.ContentTypeModel{}, "id = ?", id).Error
	return err == nil, err
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/content-types")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err, "Failed to fetch content types")
		return
	}
	response.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	ct, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err, "Failed to fetch content type")
		return
	}
	if ct == nil {
		response.NotFound(c, "Content type not found")
		return
	}
	response.OK(c, ct)
}

func isConflict(err error) bool {
	return errors.Is(err, ErrSlugExists) || errors.Is(err, ErrNameExists)
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
	ct, err := h.svc.Create(&dto)
	if err != nil {
		if isConflict(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err, "Failed to create content type")
		return
	}
	response.Created(c, ct)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	ct, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		if isConflict(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err, "Failed to update content type")
		return
	}
	if ct == nil {
		response.NotFound(c, "Content type not found")
		return
	}
	response.OK(c, ct)
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err, "Failed to delete content type")
		return
	}
	if !deleted {
		response.NotFound(c, "Content type not found")
		return
	}
	response.Message(c, "Content type deleted successfully")
}
