package models

import "time"

// Post is a blog/CMS entry served on the marketing site. Publishing is a
// manual flag flip; there is no scheduled publishing here.
type Post struct {
	ID          uint   `gorm:"primaryKey"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Title       string `gorm:"not null"`
	Content     string `gorm:"type:text"`
	Excerpt     string
	Published   bool `gorm:"not null;default:false;index"`
	PublishedAt *time.Time
	AuthorID    *uint // nil when written outside a staff session
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
