package page

import (
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/pageforge/core/internal/models"
	"github.com/pageforge/core/internal/pkg/response"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrSlugExists is returned when a create or update would collide with
// another page's slug.
var ErrSlugExists = errors.New("A page with this slug already exists")

type CreatePageDTO struct {
	Title          string `json:"title"`
	Slug           string `json:"slug"`
	Status         string `json:"status"`
	SeoTitle       string `json:"seoTitle"`
	SeoDescription string `json:"seoDescription"`
	SeoKeywords    string `json:"seoKeywords"`
	OgImage        string `json:"ogImage"`
}

// UpdatePageDTO requires title and slug; the remaining fields are left
// untouched when absent.
type UpdatePageDTO struct {
	Title          string  `json:"title"`
	Slug           string  `json:"slug"`
	Status         *string `json:"status"`
	SeoTitle       *string `json:"seoTitle"`
	SeoDescription *string `json:"seoDescription"`
	SeoKeywords    *string `json:"seoKeywords"`
	OgImage        *string `json:"ogImage"`
}

type CreateSectionDTO struct {
	Type       string            `json:"type"`
	Title      string            `json:"title"`
	Subtitle   string            `json:"subtitle"`
	Content    string            `json:"content"`
	ImageURL   string            `json:"imageUrl"`
	ButtonText string            `json:"buttonText"`
	ButtonLink string            `json:"buttonLink"`
	Config     datatypes.JSONMap `json:"config"`
	Order      *int              `json:"order"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func sectionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("order_num ASC, created_at ASC, id ASC")
}

func (s *Service) List() ([]models.PageModel, error) {
	var pages []models.PageModel
	err := s.db.Preload("Sections", sectionOrder).
		Order("updated_at DESC").
		Find(&pages).Error
	return pages, err
}

func (s *Service) GetByID(id string) (*models.PageModel, error) {
	var p models.PageModel
	err := s.db.Preload("Sections", sectionOrder).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPublishedBySlug fetches a page by slug, visible only when published.
func (s *Service) GetPublishedBySlug(slug string) (*models.PageModel, error) {
	var p models.PageModel
	err := s.db.Preload("Sections", sectionOrder).
		First(&p, "slug = ? AND status = ?", slug, models.PageStatusPublished).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) Create(dto *CreatePageDTO) (*models.PageModel, error) {
	var count int64
	if err := s.db.Model(&models.PageModel{}).Where("slug = ?", dto.Slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	status := dto.Status
	if status == "" {
		status = models.PageStatusDraft
	}
	p := models.PageModel{
		Title:          dto.Title,
		Slug:           dto.Slug,
		Status:         status,
		SeoTitle:       dto.SeoTitle,
		SeoDescription: dto.SeoDescription,
		SeoKeywords:    dto.SeoKeywords,
		OgImage:        dto.OgImage,
	}
	if err := s.db.Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	p.Sections = []models.SectionModel{}
	return &p, nil
}

func (s *Service) Update(id string, dto *UpdatePageDTO) (*models.PageModel, error) {
	existing, err := s.GetByID(id)
	if err != nil || existing == nil {
		return existing, err
	}

	if dto.Slug != existing.Slug {
		var count int64
		if err := s.db.Model(&models.PageModel{}).
			Where("slug = ? AND id <> ?", dto.Slug, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugExists
		}
	}

	updates := map[string]interface{}{
		"title": dto.Title,
		"slug":  dto.Slug,
	}
	if dto.Status != nil {
		updates["status"] = *dto.Status
	}
	if dto.SeoTitle != nil {
		updates["seo_title"] = *dto.SeoTitle
	}
	if dto.SeoDescription != nil {
		updates["seo_description"] = *dto.SeoDescription
	}
	if dto.SeoKeywords != nil {
		updates["seo_keywords"] = *dto.SeoKeywords
	}
	if dto.OgImage != nil {
		updates["og_image"] = *dto.OgImage
	}
	if err := s.db.Model(&models.PageModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes the page and its sections. Sections are deleted in the
// same transaction so the cascade holds on every driver.
func (s *Service) Delete(id string) (bool, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", id).Delete(&models.SectionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.PageModel{}, "id = ?", id).Error
	})
	return err == nil, err
}

func (s *Service) ListSections(pageID string) ([]models.SectionModel, error) {
	var sections []models.SectionModel
	err := sectionOrder(s.db).Find(&sections, "page_id = ?", pageID).Error
	return sections, err
}

// CreateSection appends a section to a page. When no order is given the
// section lands after the current last one.
func (s *Service) CreateSection(pageID string, dto *CreateSectionDTO) (*models.SectionModel, error) {
	order := 0
	if dto.Order != nil {
		order = *dto.Order
	} else {
		var max sql.NullInt64
		if err := s.db.Model(&models.SectionModel{}).
			Where("page_id = ?", pageID).
			Select("MAX(order_num)").
			Scan(&max).Error; err != nil {
			return nil, err
		}
		if max.Valid {
			order = int(max.Int64) + 1
		}
	}

	cfg := dto.Config
	if cfg == nil {
		cfg = datatypes.JSONMap{}
	}
	sec := models.SectionModel{
		PageID:     pageID,
		Type:       dto.Type,
		Order:      order,
		Title:      dto.Title,
		Subtitle:   dto.Subtitle,
		Content:    dto.Content,
		ImageURL:   dto.ImageURL,
		ButtonText: dto.ButtonText,
		ButtonLink: dto.ButtonLink,
		Config:     cfg,
	}
	return &sec, s.db.Create(&sec).Error
}

func (s *Service) pageExists(id string) (bool, error) {
	var count int64
	err := s.db.Model(&models.PageModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/pages")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/slug/:slug", h.getBySlug)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.GET("/:id/sections", h.listSections)
	g.POST("/:id/sections", h.createSection)
}

func withSections(p *models.PageModel) *models.PageModel {
	if p.Sections == nil {
		p.Sections = []models.SectionModel{}
	}
	return p
}

func (h *Handler) list(c *gin.Context) {
	pages, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err, "Failed to fetch pages")
		return
	}
	for i := range pages {
		withSections(&pages[i])
	}
	response.OK(c, pages)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err, "Failed to fetch page")
		return
	}
	if p == nil {
		response.NotFound(c, "Page not found")
		return
	}
	response.OK(c, withSections(p))
}

func (h *Handler) getBySlug(c *gin.Context) {
	p, err := h.svc.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err, "Failed to fetch page")
		return
	}
	if p == nil {
		response.NotFound(c, "Page not found")
		return
	}
	response.OK(c, withSections(p))
}

func (h *Handler) create(c *gin.Context) {
	var dto CreatePageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if dto.Title == "" || dto.Slug == "" {
		response.BadRequest(c, "Title and slug are required")
		return
	}
	p, err := h.svc.Create(&dto)
	if err != nil {
		if errors.Is(err, ErrSlugExists) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err, "Failed to create page")
		return
	}
	response.Created(c, p)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdatePageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if dto.Title == "" || dto.Slug == "" {
		response.BadRequest(c, "Title and slug are required")
		return
	}
	p, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, ErrSlugExists) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err, "Failed to update page")
		return
	}
	if p == nil {
		response.NotFound(c, "Page not found")
		return
	}
	response.OK(c, withSections(p))
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err, "Failed to delete page")
		return
	}
	if !deleted {
		response.NotFound(c, "Page not found")
		return
	}
	response.Message(c, "Page deleted successfully")
}

func (h *Handler) listSections(c *gin.Context) {
	sections, err := h.svc.ListSections(c.Param("id"))
	if err != nil {
		response.InternalError(c, err, "Failed to fetch sections")
		return
	}
	response.OK(c, sections)
}

func (h *Handler) createSection(c *gin.Context) {
	var dto CreateSectionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if dto.Type == "" {
		response.BadRequest(c, "Section type is required")
		return
	}
	pageID := c.Param("id")
	exists, err := h.svc.pageExists(pageID)
	if err != nil {
		response.InternalError(c, err, "Failed to create section")
		return
	}
	if !exists {
		response.NotFound(c, "Page not found")
		return
	}
	sec, err := h.svc.CreateSection(pageID, &dto)
	if err != nil {
		response.InternalError(c, err, "Failed to create section")
		return
	}
	response.Created(c, sec)
}
