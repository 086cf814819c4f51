package section

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/pageforge/core/internal/models"
	"github.com/pageforge/core/internal/pkg/response"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UpdateSectionDTO carries a section edit. Absent text fields stay as they
// are; config is always replaced and falls back to an empty object.
type UpdateSectionDTO struct {
	Type       *string           `json:"type"`
	Order      *int              `json:"order"`
	Title      *string           `json:"title"`
	Subtitle   *string           `json:"subtitle"`
	Content    *string           `json:"content"`
	ImageURL   *string           `json:"imageUrl"`
	ButtonText *string           `json:"buttonText"`
	ButtonLink *string           `json:"buttonLink"`
	Config     datatypes.JSONMap `json:"config"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) GetByID(id string) (*models.SectionModel, error) {
	var sec models.SectionModel
	err := s.db.First(&sec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sec, nil
}

func (s *Service) Update(id string, dto *UpdateSectionDTO) (*models.SectionModel, error) {
	existing, err := s.GetByID(id)
	if err != nil || existing == nil {
		return existing, err
	}

	cfg := dto.Config
	if cfg == nil {
		cfg = datatypes.JSONMap{}
	}
	updates := map[string]interface{}{"config": cfg}
	if dto.Type != nil {
		updates["type"] = *dto.Type
	}
	if dto.Order != nil {
		updates["order_num"] = *dto.Order
	}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Subtitle != nil {
		updates["subtitle"] = *dto.Subtitle
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.ImageURL != nil {
		updates["image_url"] = *dto.ImageURL
	}
	if dto.ButtonText != nil {
		updates["button_text"] = *dto.ButtonText
	}
	if dto.ButtonLink != nil {
		updates["button_link"] = *dto.ButtonLink
	}
	if err := s.db.Model(&models.SectionModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
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
	err = s.db.Delete(&models.SectionModel{}, "id = ?", id).Error
	return err == nil, err
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/sections")
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) get(c *gin.Context) {
	sec, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err, "Failed to fetch section")
		return
	}
	if sec == nil {
		response.NotFound(c, "Section not found")
		return
	}
	response.OK(c, sec)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateSectionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	sec, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err, "Failed to update section")
		return
	}
	if sec == nil {
		response.NotFound(c, "Section not found")
		return
	}
	response.OK(c, sec)
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err, "Failed to delete section")
		return
	}
	if !deleted {
		response.NotFound(c, "Section not found")
		return
	}
	response.Message(c, "Section deleted successfully")
}
