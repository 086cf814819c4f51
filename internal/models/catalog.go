package models

import "gorm.io/datatypes"

// FieldSpec describes one editable field of a content or section type.
type FieldSpec struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type"` // text, textarea, number, select, checkbox, image, url, color
	Required bool     `json:"required,omitempty"`
	Default  string   `json:"default,omitempty"`
	Options  []string `json:"options,omitempty"`
}

// ContentTypeModel is a reusable content schema definition.
type ContentTypeModel struct {
	Base
	Name        string            `json:"name"        gorm:"size:191;uniqueIndex;not null"`
	Slug        string            `json:"slug"        gorm:"size:191;uniqueIndex;not null"`
	Description string            `json:"description" gorm:"type:text"`
	Fields      []FieldSpec       `json:"fields"      gorm:"type:longtext;serializer:json"`
	Config      datatypes.JSONMap `json:"config"`
}

func (ContentTypeModel) TableName() string { return "content_types" }

// SectionTypeModel catalogs the section kinds offered in the page editor.
// Built-in entries (see sectiontype.Builtin) keep their slug forever and
// can only be deactivated, never deleted.
type SectionTypeModel struct {
	Base
	Name        string            `json:"name"        gorm:"size:191;uniqueIndex;not null"`
	Slug        string            `json:"slug"        gorm:"size:191;uniqueIndex;not null"`
	Description string            `json:"description" gorm:"type:text"`
	Icon        string            `json:"icon"`
	Component   string            `json:"component"`
	Fields      []FieldSpec       `json:"fields"      gorm:"type:longtext;serializer:json"`
	Config      datatypes.JSONMap `json:"config"`
	IsActive    bool              `json:"isActive"    gorm:"not null;default:true"`
}

func (SectionTypeModel) TableName() string { return "section_types" }

// SessionTypeModel is a bookable session kind with a duration in minutes.
type SessionTypeModel struct {
	Base
	Name        string            `json:"name"        gorm:"size:191;uniqueIndex;not null"`
	Slug        string            `json:"slug"        gorm:"size:191;uniqueIndex;not null"`
	Description string            `json:"description" gorm:"type:text"`
	Duration    int               `json:"duration"    gorm:"not null;default:60"`
	Config      datatypes.JSONMap `json:"config"`
}

func (SessionTypeModel) TableName() string { return "session_types" }
