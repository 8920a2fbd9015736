package models

import "time"

const (
	MeetingStatusScheduled = "scheduled"
	MeetingStatusDone      = "done"
	MeetingStatusCancelled = "cancelled"
)

// Meeting is an appointment with a lead or a client; either side may be nil
// depending on where in the pipeline the meeting happens.
type Meeting struct {
	ID          uint   `gorm:"primaryKey"`
	LeadID      *uint  `gorm:"index"`
	ClientID    *uint  `gorm:"index"`
	Title       string `gorm:"not null"`
	ScheduledAt time.Time
	Location    string
	Notes       string `gorm:"type:text"`
	Status      string `gorm:"not null;default:'scheduled'"`
	CreatedBy   *uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
