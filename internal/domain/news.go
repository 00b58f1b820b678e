package domain

import (
	"time"
)

// NewsItem is one entry of the paginated news collection.
// The same type is persisted by the API, served as JSON and decoded by the
// reader's feed client, so json and validate tags describe the wire shape.
type NewsItem struct {
	ID          string     `gorm:"type:text;primaryKey" json:"id,omitempty" validate:"omitempty,max=64"`
	SourceType  string     `gorm:"type:text;index:idx_news_source,unique" json:"-"`
	SourceID    string     `gorm:"type:text;index:idx_news_source,unique" json:"-"`
	Title       string     `gorm:"type:text;not null" json:"title" validate:"required,max=512"`
	Summary     string     `gorm:"type:text" json:"summary,omitempty"`
	URL         string     `gorm:"type:text" json:"url,omitempty" validate:"omitempty,url"`
	ImageURL    string     `gorm:"type:text" json:"image_url,omitempty" validate:"omitempty,url"`
	Category    string     `gorm:"type:text;index:idx_news_category" json:"category,omitempty"`
	PublishedAt *time.Time `gorm:"index:idx_news_published" json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"-"`
	UpdatedAt   time.Time  `json:"-"`
}

// TableName returns the database table name for NewsItem.
func (NewsItem) TableName() string {
	return "news_items"
}

// Content is the text a slide shows for this item.
func (n NewsItem) Content() string {
	return n.Title
}
