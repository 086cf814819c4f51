package models

import "gorm.io/datatypes"

// Page lifecycle states. Only published pages are served on the public route.
const (
	PageStatusDraft     = "DRAFT"
	PageStatusPublished = "PUBLISHED"
	PageStatusArchived  = "ARCHIVED"
)

// PageModel is a site page composed of ordered sections.
type PageModel struct {
	Base
	Title          string         `json:"title"          gorm:"not null"`
	Slug           string         `json:"slug"           gorm:"size:191;uniqueIndex;not null"`
	Status         string         `json:"status"         gorm:"size:20;not null;default:DRAFT"`
	SeoTitle       string         `json:"seoTitle"`
	SeoDescription string         `json:"seoDescription" gorm:"type:text"`
	SeoKeywords    string         `json:"seoKeywords"`
	OgImage        string         `json:"ogImage"`
	Sections       []SectionModel `json:"sections"       gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE"`
}

func (PageModel) TableName() string { return "pages" }

// SectionModel is one typed block of a page. Type is a free string tag;
// the renderer decides what to do with it.
type SectionModel struct {
	Base
	PageID     string            `json:"pageId"     gorm:"type:char(36);index;not null"`
	Type       string            `json:"type"       gorm:"size:64;not null"`
	Order      int               `json:"order"      gorm:"column:order_num;not null;default:0"`
	Title      string            `json:"title"`
	Subtitle   string            `json:"subtitle"`
	Content    string            `json:"content"    gorm:"type:longtext"`
	ImageURL   string            `json:"imageUrl"`
	ButtonText string            `json:"buttonText"`
	ButtonLink string            `json:"buttonLink"`
	Config     datatypes.JSONMap `json:"config"`
}

func (SectionModel) TableName() string { return "sections" }
