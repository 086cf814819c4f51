package render

import (
	"fmt"

	"github.com/pageforge/core/internal/models"
)

// RenderFunc turns one section into an HTML fragment.
type RenderFunc func(*models.SectionModel) string

// renderers maps built-in section tags to their emitters. Custom section
// types have no renderer and fall through to the placeholder.
var renderers = map[string]RenderFunc{
	"HEADER":       renderHeader,
	"HERO":         renderHero,
	"FEATURES":     renderFeatures,
	"TESTIMONIALS": renderTestimonials,
	"PRICING":      renderPricing,
	"CTA":          renderCTA,
	"CONTENT":      renderContent,
	"GALLERY":      renderGallery,
	"FAQ":          renderFAQ,
	"TEAM":         renderTeam,
	"STATS":        renderStats,
	"FOOTER":       renderFooter,
}

// Dispatch renders a section by its type tag. Unknown tags yield a
// visible placeholder instead of an error.
func Dispatch(sec *models.SectionModel) string {
	if fn, ok := renderers[sec.Type]; ok {
		return fn(sec)
	}
	return fmt.Sprintf(`<div class="section-unknown">Unknown section type: %s</div>`, esc(sec.Type))
}
