package models

// MediaModel records an uploaded file. Width and height stay null;
// image dimension extraction is not implemented.
type MediaModel struct {
	Base
	Filename string `json:"filename" gorm:"not null"`
	URL      string `json:"url"      gorm:"not null"`
	MimeType string `json:"mimeType" gorm:"size:128;not null"`
	Size     int64  `json:"size"     gorm:"not null"`
	Width    *int   `json:"width"`
	Height   *int   `json:"height"`
	Alt      string `json:"alt"`
}

func (MediaModel) TableName() string { return "media" }
