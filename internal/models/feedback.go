package models

import "time"

// Feedback is a client's review of delivered work, rated 1 to 5.
type Feedback struct {
	ID        uint   `gorm:"primaryKey"`
	ClientID  uint   `gorm:"not null;index"`
	ProjectID *uint  `gorm:"index"`
	Rating    int    `gorm:"not null"`
	Content   string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
