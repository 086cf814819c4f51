package render

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pageforge/core/internal/models"
	"github.com/pageforge/core/internal/modules/content/page"
	"github.com/pageforge/core/internal/modules/system/settings"
	"github.com/pageforge/core/internal/pkg/response"
	"gorm.io/datatypes"
)

// Slugs that can never resolve to a page.
var reservedSlugs = map[string]bool{
	"admin": true,
	"api":   true,
}

type Handler struct {
	pages    *page.Service
	settings *settings.Service
}

func NewHandler(pages *page.Service, settings *settings.Service) *Handler {
	return &Handler{pages: pages, settings: settings}
}

// RegisterRoutes mounts the public page route at the site root.
func (h *Handler) RegisterRoutes(root *gin.RouterGroup) {
	root.GET("/:slug", h.servePage)
}

// RegisterAPIRoutes mounts the admin preview, which renders any page
// regardless of its status.
func (h *Handler) RegisterAPIRoutes(api *gin.RouterGroup) {
	api.GET("/pages/:id/preview", h.preview)
}

func (h *Handler) servePage(c *gin.Context) {
	slug := c.Param("slug")
	if reservedSlugs[slug] {
		notFoundPage(c)
		return
	}
	p, err := h.pages.GetPublishedBySlug(slug)
	if err != nil {
		response.InternalError(c, err, "Failed to render page")
		return
	}
	if p == nil {
		notFoundPage(c)
		return
	}
	doc, err := h.RenderDocument(p)
	if err != nil {
		response.InternalError(c, err, "Failed to render page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

func (h *Handler) preview(c *gin.Context) {
	p, err := h.pages.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err, "Failed to render page")
		return
	}
	if p == nil {
		response.NotFound(c, "Page not found")
		return
	}
	doc, err := h.RenderDocument(p)
	if err != nil {
		response.InternalError(c, err, "Failed to render page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

func notFoundPage(c *gin.Context) {
	c.Data(http.StatusNotFound, "text/html; charset=utf-8",
		[]byte(`<!DOCTYPE html><html><head><title>404</title></head><body><h1>404</h1><p>Page not found.</p></body></html>`))
}

// RenderDocument builds the full HTML document for a page: SEO head,
// header, content sections in order and footer. The page's own header and
// footer sections win over the global settings.
func (h *Handler) RenderDocument(p *models.PageModel) (string, error) {
	var headerSec, footerSec *models.SectionModel
	var content []*models.SectionModel
	for i := range p.Sections {
		sec := &p.Sections[i]
		switch sec.Type {
		case "HEADER":
			if headerSec == nil {
				headerSec = sec
			}
		case "FOOTER":
			if footerSec == nil {
				footerSec = sec
			}
		default:
			content = append(content, sec)
		}
	}

	if headerSec == nil {
		value, err := h.settings.Value(settings.KeyGlobalHeader)
		if err != nil {
			return "", err
		}
		headerSec = globalHeaderSection(value)
	}
	if footerSec == nil {
		value, err := h.settings.Value(settings.KeyGlobalFooter)
		if err != nil {
			return "", err
		}
		footerSec = globalFooterSection(value)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString(`<meta charset="utf-8">` + "\n")
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")

	title := p.SeoTitle
	if title == "" {
		title = p.Title
	}
	fmt.Fprintf(&b, "<title>%s</title>\n", esc(title))
	if p.SeoDescription != "" {
		fmt.Fprintf(&b, `<meta name="description" content="%s">`+"\n", esc(p.SeoDescription))
	}
	if p.SeoKeywords != "" {
		fmt.Fprintf(&b, `<meta name="keywords" content="%s">`+"\n", esc(p.SeoKeywords))
	}
	fmt.Fprintf(&b, `<meta property="og:title" content="%s">`+"\n", esc(title))
	if p.SeoDescription != "" {
		fmt.Fprintf(&b, `<meta property="og:description" content="%s">`+"\n", esc(p.SeoDescription))
	}
	if p.OgImage != "" {
		fmt.Fprintf(&b, `<meta property="og:image" content="%s">`+"\n", esc(p.OgImage))
	}
	b.WriteString("</head>\n<body>\n")

	if headerSec != nil {
		b.WriteString(Dispatch(headerSec))
		b.WriteString("\n")
	}
	if len(content) > 0 {
		for _, sec := range content {
			b.WriteString(Dispatch(sec))
			b.WriteString("\n")
		}
	} else {
		fmt.Fprintf(&b, `<div class="empty-state"><h1>%s</h1><p>No sections added yet. Add sections in the editor to see content here.</p></div>`+"\n", esc(p.Title))
	}
	if footerSec != nil {
		b.WriteString(Dispatch(footerSec))
		b.WriteString("\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

// globalHeaderSection lifts the globalHeader setting into a virtual
// section so the normal header renderer can draw it.
func globalHeaderSection(v datatypes.JSONMap) *models.SectionModel {
	if v == nil {
		return nil
	}
	sec := &models.SectionModel{Type: "HEADER"}
	sec.ID = "global-header"
	sec.Title = cfgString(v, "title")
	sec.ImageURL = cfgString(v, "logoUrl")
	sec.ButtonText = cfgString(v, "buttonText")
	sec.ButtonLink = cfgString(v, "buttonLink")

	cfg := datatypes.JSONMap{"showLogo": true}
	if logo := cfgString(v, "logoUrl"); logo != "" {
		cfg["logoUrl"] = logo
	}
	for _, key := range []string{"menuItems", "sticky", "height", "minHeight", "maxHeight"} {
		if val, ok := v[key]; ok {
			cfg[key] = val
		}
	}
	sec.Config = cfg
	return sec
}

// globalFooterSection does the same for the globalFooter setting.
func globalFooterSection(v datatypes.JSONMap) *models.SectionModel {
	if v == nil {
		return nil
	}
	sec := &models.SectionModel{Type: "FOOTER"}
	sec.ID = "global-footer"
	sec.Title = cfgString(v, "title")
	sec.Subtitle = cfgString(v, "subtitle")
	sec.ImageURL = cfgString(v, "logoUrl")

	cfg := datatypes.JSONMap{"showLogo": true}
	if logo := cfgString(v, "logoUrl"); logo != "" {
		cfg["logoUrl"] = logo
	}
	for _, key := range []string{"socialLinks", "columns", "copyright", "height", "minHeight", "maxHeight"} {
		if val, ok := v[key]; ok {
			cfg[key] = val
		}
	}
	sec.Config = cfg
	return sec
}
