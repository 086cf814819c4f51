package sectiontype

import "strings"

// BuiltinDef is the shipped template for one of the built-in section kinds.
type BuiltinDef struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Component   string `json:"component"`
}

// Builtin lists the section kinds the renderer knows how to draw. Their
// catalog records can be edited and deactivated but never deleted, and
// their slug is immutable.
var Builtin = []BuiltinDef{
	{Name: "Header", Slug: "HEADER", Description: "Navigation header section", Icon: "layout", Component: "HeaderSection"},
	{Name: "Hero Section", Slug: "HERO", Description: "Eye-catching banner section with CTA", Icon: "zap", Component: "HeroSection"},
	{Name: "Features", Slug: "FEATURES", Description: "Showcase product features", Icon: "star", Component: "FeaturesSection"},
	{Name: "Testimonials", Slug: "TESTIMONIALS", Description: "Display customer reviews and testimonials", Icon: "message-square", Component: "TestimonialsSection"},
	{Name: "Pricing", Slug: "PRICING", Description: "Pricing tables and plans", Icon: "dollar-sign", Component: "PricingSection"},
	{Name: "Call to Action", Slug: "CTA", Description: "Call-to-action blocks", Icon: "target", Component: "CTASection"},
	{Name: "Content Block", Slug: "CONTENT", Description: "Rich text content blocks", Icon: "file-text", Component: "ContentSection"},
	{Name: "Gallery", Slug: "GALLERY", Description: "Image galleries and portfolios", Icon: "image", Component: "GallerySection"},
	{Name: "FAQ", Slug: "FAQ", Description: "Frequently asked questions", Icon: "help-circle", Component: "FAQSection"},
	{Name: "Team", Slug: "TEAM", Description: "Team member profiles", Icon: "users", Component: "TeamSection"},
	{Name: "Statistics", Slug: "STATS", Description: "Statistics and metrics", Icon: "bar-chart", Component: "StatsSection"},
	{Name: "Footer", Slug: "FOOTER", Description: "Footer section", Icon: "layout", Component: "FooterSection"},
}

// IsBuiltinSlug reports whether slug names a built-in section kind.
// The comparison is case-insensitive.
func IsBuiltinSlug(slug string) bool {
	u := strings.ToUpper(slug)
	for _, def := range Builtin {
		if def.Slug == u {
			return true
		}
	}
	return false
}
