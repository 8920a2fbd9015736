package models

import "time"

const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

const (
	TicketPriorityLow    = "low"
	TicketPriorityNormal = "normal"
	TicketPriorityHigh   = "high"
	TicketPriorityUrgent = "urgent"
)

// Ticket is a client support request. ResolvedAt is stamped when the
// status moves to resolved or closed.
type Ticket struct {
	ID         uint   `gorm:"primaryKey"`
	ClientID   uint   `gorm:"not null;index"`
	Subject    string `gorm:"not null"`
	Content    string `gorm:"type:text"`
	Priority   string `gorm:"not null;default:'normal'"`
	Status     string `gorm:"not null;default:'open';index"`
	ResolvedAt *time.Time
	CreatedBy  *uint
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
