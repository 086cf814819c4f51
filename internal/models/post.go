package models

// PostModel is a blog post.
type PostModel struct {
	Base
	Title   string `json:"title"   gorm:"not null"`
	Content string `json:"content" gorm:"type:longtext"`
}

func (PostModel) TableName() string { return "posts" }
