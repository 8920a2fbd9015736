package models

import "time"

const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusReview     = "review"
	ProjectStatusCompleted  = "completed"
	ProjectStatusOnHold     = "on_hold"
)

// Project is a piece of contracted work for a client.
type Project struct {
	ID          uint   `gorm:"primaryKey"`
	ClientID    uint   `gorm:"not null;index"`
	Client      Client `gorm:"foreignKey:ClientID"`
	Name        string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Status      string `gorm:"not null;default:'planning';index"`
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      int64 // KRW
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
