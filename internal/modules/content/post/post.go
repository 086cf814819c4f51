package post

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/pageforge/core/internal/models"
	"github.com/pageforge/core/internal/pkg/response"
	"gorm.io/gorm"
)

type PostDTO struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List() ([]models.PostModel, error) {
	var posts []models.PostModel
	err := s.db.Order("updated_at DESC").Find(&posts).Error
	return posts, err
}

func (s *Service) GetByID(id string) (*models.PostModel, error) {
	var p models.PostModel
	err := s.db.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) Create(dto *PostDTO) (*models.PostModel, error) {
	p := models.PostModel{Title: dto.Title, Content: dto.Content}
	return &p, s.db.Create(&p).Error
}

func (s *Service) Update(id string, dto *PostDTO) (*models.PostModel, error) {
	existing, err := s.GetByID(id)
	if err != nil || existing == nil {
		return existing, err
	}
	err = s.db.Model(existing).Updates(map[string]interface{}{
		"title":   dto.Title,
		"content": dto.Content,
	}).Error
	if err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *Service) Delete(id string) (bool, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	err = s.db.Delete(&models.PostModel{}, "id = ?", id).Error
	return err == nil, err
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/posts")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	posts, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err, "Failed to fetch posts")
		return
	}
	response.OK(c, posts)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err, "Failed to fetch post")
		return
	}
	if p == nil {
		response.NotFound(c, "Post not found")
		return
	}
	response.OK(c, p)
}

func (h *Handler) create(c *gin.Context) {
	var dto PostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if dto.Title == "" || dto.Content == "" {
		response.BadRequest(c, "Title and content are required")
		return
	}
	p, err := h.svc.Create(&dto)
	if err != nil {
		response.InternalError(c, err, "Failed to create post")
		return
	}
	response.Created(c, p)
}

func (h *Handler) update(c *gin.Context) {
	var dto PostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if dto.Title == "" || dto.Content == "" {
		response.BadRequest(c, "Title and content are required")
		return
	}
	p, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err, "Failed to update post")
		return
	}
	if p == nil {
		response.NotFound(c, "Post not found")
		return
	}
	response.OK(c, p)
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err, "Failed to delete post")
		return
	}
	if !deleted {
		response.NotFound(c, "Post not found")
		return
	}
	response.Message(c, "Post deleted successfully")
}
