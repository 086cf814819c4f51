package render

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pageforge/core/internal/pkg/response"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(ghtml.WithUnsafe()),
)

var sanitizer = bluemonday.UGCPolicy()

// RenderMarkdown converts markdown to sanitized HTML.
func RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return sanitizer.Sanitize(buf.String()), nil
}

type markdownDTO struct {
	Md    string `json:"md"`
	Title string `json:"title"`
}

type MarkdownHandler struct{}

func NewMarkdownHandler() *MarkdownHandler { return &MarkdownHandler{} }

func (h *MarkdownHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/render/markdown", h.render)
}

// render returns a standalone HTML document for the post editor preview.
func (h *MarkdownHandler) render(c *gin.Context) {
	var dto markdownDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	body, err := RenderMarkdown(dto.Md)
	if err != nil {
		response.InternalError(c, err, "Failed to render markdown")
		return
	}

	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", esc(dto.Title))
	b.WriteString("</head>\n<body>\n<article class=\"prose\">\n")
	b.WriteString(body)
	b.WriteString("\n</article>\n</body>\n</html>\n")
	c.Data(http.StatusOK, "text/html; charset=utf-8", b.Bytes())
}
