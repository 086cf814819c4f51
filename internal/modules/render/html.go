package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/pageforge/core/internal/models"
	"gorm.io/datatypes"
)

func esc(s string) string { return html.EscapeString(s) }

func cfgString(cfg datatypes.JSONMap, key string) string {
	if cfg == nil {
		return ""
	}
	if v, ok := cfg[key].(string); ok {
		return v
	}
	return ""
}

func cfgFloat(cfg datatypes.JSONMap, key string, fallback float64) float64 {
	if cfg == nil {
		return fallback
	}
	if v, ok := cfg[key].(float64); ok {
		return v
	}
	return fallback
}

// cfgDimension renders a height value as CSS pixels. JSON numbers come in
// as float64; strings pass through untouched before the px suffix.
func cfgDimension(v interface{}) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64) + "px"
	case string:
		if n == "" {
			return ""
		}
		return n + "px"
	default:
		return ""
	}
}

// heightStyle builds the style attribute from the shared height config
// keys. Empty when none are set.
func heightStyle(cfg datatypes.JSONMap) string {
	if cfg == nil {
		return ""
	}
	var rules []string
	if d := cfgDimension(cfg["height"]); d != "" {
		rules = append(rules, "height:"+d)
	}
	if d := cfgDimension(cfg["minHeight"]); d != "" {
		rules = append(rules, "min-height:"+d)
	}
	if d := cfgDimension(cfg["maxHeight"]); d != "" {
		rules = append(rules, "max-height:"+d)
	}
	if len(rules) == 0 {
		return ""
	}
	return ` style="` + esc(strings.Join(rules, ";")) + `"`
}

func cfgMenuItems(cfg datatypes.JSONMap, key string) []MenuItem {
	if cfg == nil {
		return nil
	}
	raw, ok := cfg[key].([]interface{})
	if !ok {
		return nil
	}
	var items []MenuItem
	for _, entry := range raw {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		item := MenuItem{}
		if v, ok := m["label"].(string); ok {
			item.Label = v
		}
		if v, ok := m["link"].(string); ok {
			item.Link = v
		}
		items = append(items, item)
	}
	return items
}

func cfgColumns(cfg datatypes.JSONMap, key string) []FooterColumn {
	if cfg == nil {
		return nil
	}
	raw, ok := cfg[key].([]interface{})
	if !ok {
		return nil
	}
	var columns []FooterColumn
	for _, entry := range raw {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		col := FooterColumn{}
		if v, ok := m["title"].(string); ok {
			col.Title = v
		}
		if links, ok := m["links"].([]interface{}); ok {
			for _, l := range links {
				lm, ok := l.(map[string]interface{})
				if !ok {
					continue
				}
				item := MenuItem{}
				if v, ok := lm["label"].(string); ok {
					item.Label = v
				}
				if v, ok := lm["link"].(string); ok {
					item.Link = v
				}
				col.Links = append(col.Links, item)
			}
		}
		columns = append(columns, col)
	}
	return columns
}

func writeHeading(b *strings.Builder, sec *models.SectionModel) {
	if sec.Subtitle != "" {
		fmt.Fprintf(b, `<p class="section-subtitle">%s</p>`, esc(sec.Subtitle))
	}
	if sec.Title != "" {
		fmt.Fprintf(b, `<h2 class="section-title">%s</h2>`, esc(sec.Title))
	}
}

func writeButton(b *strings.Builder, sec *models.SectionModel) {
	if sec.ButtonText != "" && sec.ButtonLink != "" {
		fmt.Fprintf(b, `<a class="button" href="%s">%s</a>`, esc(sec.ButtonLink), esc(sec.ButtonText))
	}
}

func renderHeader(sec *models.SectionModel) string {
	items := cfgMenuItems(sec.Config, "menuItems")
	if len(items) == 0 && sec.Content != "" {
		items = ParseMenuItems(sec.Content)
	}
	logoURL := cfgString(sec.Config, "logoUrl")
	if logoURL == "" {
		logoURL = sec.ImageURL
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<header class="section section-header"%s><nav>`, heightStyle(sec.Config))
	if logoURL != "" {
		fmt.Fprintf(&b, `<a class="logo" href="/"><img src="%s" alt="%s"></a>`, esc(logoURL), esc(titleOr(sec.Title, "Logo")))
	} else {
		fmt.Fprintf(&b, `<a class="logo" href="/">%s</a>`, esc(titleOr(sec.Title, "Logo")))
	}
	if len(items) > 0 {
		b.WriteString(`<ul class="menu">`)
		for _, item := range items {
			fmt.Fprintf(&b, `<li><a href="%s">%s</a></li>`, esc(item.Link), esc(item.Label))
		}
		b.WriteString(`</ul>`)
	}
	writeButton(&b, sec)
	b.WriteString(`</nav></header>`)
	return b.String()
}

func titleOr(title, fallback string) string {
	if title != "" {
		return title
	}
	return fallback
}

func renderHero(sec *models.SectionModel) string {
	bg := cfgString(sec.Config, "backgroundImageUrl")
	var b strings.Builder
	b.WriteString(`<section class="section section-hero"`)
	var rules []string
	if bg != "" {
		rules = append(rules, "background-image:url("+bg+")")
	}
	if d := cfgDimension(sec.Config["height"]); d != "" {
		rules = append(rules, "height:"+d)
	}
	if d := cfgDimension(sec.Config["minHeight"]); d != "" {
		rules = append(rules, "min-height:"+d)
	}
	if d := cfgDimension(sec.Config["maxHeight"]); d != "" {
		rules = append(rules, "max-height:"+d)
	}
	if len(rules) > 0 {
		fmt.Fprintf(&b, ` style="%s"`, esc(strings.Join(rules, ";")))
	}
	b.WriteString(`>`)
	if bg != "" {
		opacity := cfgFloat(sec.Config, "overlayOpacity", 0.5)
		fmt.Fprintf(&b, `<div class="overlay" style="opacity:%s"></div>`,
			strconv.FormatFloat(opacity, 'f', -1, 64))
	}
	b.WriteString(`<div class="hero-body">`)
	if sec.Subtitle != "" {
		fmt.Fprintf(&b, `<p class="section-subtitle">%s</p>`, esc(sec.Subtitle))
	}
	if sec.Title != "" {
		fmt.Fprintf(&b, `<h1 class="hero-title">%s</h1>`, esc(sec.Title))
	}
	if sec.Content != "" {
		fmt.Fprintf(&b, `<p class="hero-text">%s</p>`, esc(sec.Content))
	}
	writeButton(&b, sec)
	if sec.ImageURL != "" {
		fmt.Fprintf(&b, `<img class="hero-image" src="%s" alt="%s">`, esc(sec.ImageURL), esc(titleOr(sec.Title, "Hero image")))
	}
	b.WriteString(`</div></section>`)
	return b.String()
}

func renderFeatures(sec *models.SectionModel) string {
	features := ParseFeatures(sec.Content)
	var b strings.Builder
	fmt.Fprintf(&b, `<section class="section section-features"%s>`, heightStyle(sec.Config))
	writeHeading(&b, sec)
	if len(features) > 0 {
		b.WriteString(`<ul class="features">`)
		for _, f := range features {
			fmt.Fprintf(&b, `<li>%s</li>`, esc(f))
		}
		b.WriteString(`</ul>`)
	}
	b.WriteString(`</section>`)
	return b.String()
}

func renderTestimonials(sec *models.SectionModel) string {
	quotes := ParseTestimonials(sec.Content)
	var b strings.Builder
	fmt.Fprintf(&b, `<section class="section section-testimonials"%s>`, heightStyle(sec.Config))
	writeHeading(&b, sec)
	for _, q := range quotes {
		fmt.Fprintf(&b, `<blockquote>%s</blockquote>`, esc(q))
	}
	b.WriteString(`</section>`)
	return b.String()
}

// renderPricing shows placeholder plans; real tiers are not modeled yet.
func renderPricing(sec *models.SectionModel) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<section class="section section-pricing"%s>`, heightStyle(sec.Config))
	writeHeading(&b, sec)
	b.WriteString(`<div class="plans">`)
	for i := 1; i <= 3; i++ {
		fmt.Fprintf(&b, `<div class="plan"><h3>Plan %d</h3><p class="price">$99<span>/month</span></p>`, i)
		b.WriteString(`<ul><li>Feature 1</li><li>Feature 2</li><li>Feature 3</li></ul>`)
		b.WriteString(`<a class="button" href="#">Get Started</a></div>`)
	}
	b.WriteString(`</div></section>`)
	return b.String()
}

func renderCTA(sec *models.SectionModel) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<section class="section section-cta"%s>`, heightStyle(sec.Config))
	writeHeading(&b, sec)
	if sec.Content != "" {
		fmt.Fprintf(&b, `<p class="cta-text">%s</p>`, esc(sec.Content))
	}
	writeButton(&b, sec)
	b.WriteString(`</section>`)
	return b.String()
}

func renderContent(sec *models.SectionModel) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<section class="section section-content"%s>`, heightStyle(sec.Config))
	writeHeading(&b, sec)
	if sec.Content != "" {
		body := strings.ReplaceAll(esc(sec.Content), "\n", "<br />")
		fmt.Fprintf(&b, `<div class="prose">%s</div>`, body)
	}
	b.WriteString(`</section>`)
	return b.String()
}

func renderGallery(sec *models.SectionModel) string {
	urls := ParseGalleryURLs(sec.Content, sec.ImageURL)
	var b strings.Builder
	fmt.Fprintf(&b, `<section class="section section-gallery"%s>`, heightStyle(sec.Config))
	writeHeading(&b, sec)
	if len(urls) > 0 {
		b.WriteString(`<div class="gallery">`)
		for _, u := range urls {
			fmt.Fprintf(&b, `<img src="%s" alt="">`, esc(u))
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</section>`)
	return b.String()
}

func renderFAQ(sec *models.SectionModel) string {
	items := ParseFAQ(sec.Content)
	var b strings.Builder
	fmt.Fprintf(&b, `<section class="section section-faq"%s>`, heightStyle(sec.Config))
	writeHeading(&b, sec)
	for _, item := range items {
		fmt.Fprintf(&b, `<details><summary>%s</summary><p>%s</p></details>`,
			esc(item.Question), esc(item.Answer))
	}
	b.WriteString(`</section>`)
	return b.String()
}

func renderTeam(sec *models.SectionModel) string {
	members := ParseTeam(sec.Content)
	var b strings.Builder
	fmt.Fprintf(&b, `<section class="section section-team"%s>`, heightStyle(sec.Config))
	writeHeading(&b, sec)
	if len(members) > 0 {
		b.WriteString(`<ul class="team">`)
		for _, m := range members {
			fmt.Fprintf(&b, `<li><span class="name">%s</span><span class="role">%s</span></li>`,
				esc(m.Name), esc(m.Role))
		}
		b.WriteString(`</ul>`)
	}
	b.WriteString(`</section>`)
	return b.String()
}

func renderStats(sec *models.SectionModel) string {
	stats := ParseStats(sec.Content)
	var b strings.Builder
	fmt.Fprintf(&b, `<section class="section section-stats"%s>`, heightStyle(sec.Config))
	writeHeading(&b, sec)
	if len(stats) > 0 {
		b.WriteString(`<dl class="stats">`)
		for _, s := range stats {
			fmt.Fprintf(&b, `<div><dt>%s</dt><dd>%s</dd></div>`, esc(s.Label), esc(s.Value))
		}
		b.WriteString(`</dl>`)
	}
	b.WriteString(`</section>`)
	return b.String()
}

// socialKeys fixes the emit order for the socialLinks config block.
var socialKeys = []string{"facebook", "twitter", "instagram", "linkedin", "email", "phone"}

// cfgSocialLinks reads the socialLinks config object. Email and phone
// entries become mailto: and tel: links.
func cfgSocialLinks(cfg datatypes.JSONMap) []MenuItem {
	if cfg == nil {
		return nil
	}
	raw, ok := cfg["socialLinks"].(map[string]interface{})
	if !ok {
		return nil
	}
	var links []MenuItem
	for _, key := range socialKeys {
		v, ok := raw[key].(string)
		if !ok || v == "" {
			continue
		}
		link := v
		switch key {
		case "email":
			link = "mailto:" + v
		case "phone":
			link = "tel:" + v
		}
		links = append(links, MenuItem{Label: key, Link: link})
	}
	return links
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func renderFooter(sec *models.SectionModel) string {
	columns := cfgColumns(sec.Config, "columns")
	if len(columns) == 0 && sec.Content != "" {
		columns = ParseFooterColumns(sec.Content)
	}
	copyright := cfgString(sec.Config, "copyright")
	if copyright == "" {
		copyright = fmt.Sprintf("© %d %s. All rights reserved.",
			time.Now().Year(), titleOr(sec.Title, "Company"))
	}
	showLogo := true
	if v, ok := sec.Config["showLogo"].(bool); ok {
		showLogo = v
	}
	logoURL := cfgString(sec.Config, "logoUrl")
	if logoURL == "" {
		logoURL = sec.ImageURL
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<footer class="section section-footer"%s>`, heightStyle(sec.Config))
	if showLogo && logoURL != "" {
		fmt.Fprintf(&b, `<img class="footer-logo" src="%s" alt="%s">`, esc(logoURL), esc(titleOr(sec.Title, "Logo")))
	}
	if sec.Title != "" {
		fmt.Fprintf(&b, `<h3 class="footer-title">%s</h3>`, esc(sec.Title))
	}
	if sec.Subtitle != "" {
		fmt.Fprintf(&b, `<p class="footer-subtitle">%s</p>`, esc(sec.Subtitle))
	}
	for _, col := range columns {
		fmt.Fprintf(&b, `<div class="footer-column"><h4>%s</h4>`, esc(col.Title))
		if len(col.Links) > 0 {
			b.WriteString(`<ul>`)
			for _, link := range col.Links {
				fmt.Fprintf(&b, `<li><a href="%s">%s</a></li>`, esc(link.Link), esc(link.Label))
			}
			b.WriteString(`</ul>`)
		}
		b.WriteString(`</div>`)
	}
	if social := cfgSocialLinks(sec.Config); len(social) > 0 {
		b.WriteString(`<div class="social-links">`)
		for _, link := range social {
			fmt.Fprintf(&b, `<a class="social-%s" href="%s">%s</a>`,
				esc(link.Label), esc(link.Link), esc(capitalize(link.Label)))
		}
		b.WriteString(`</div>`)
	}
	fmt.Fprintf(&b, `<p class="copyright">%s</p></footer>`, esc(copyright))
	return b.String()
}
