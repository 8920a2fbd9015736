package models

import "time"

// Lead pipeline statuses. Status writes are unconditional single-field
// updates; the pipeline order below is informational only.
const (
	LeadStatusNew              = "new"
	LeadStatusContacted        = "contacted"
	LeadStatusMeetingScheduled = "meeting_scheduled"
	LeadStatusProposalSent     = "proposal_sent"
	LeadStatusNegotiating      = "negotiating"
	LeadStatusWon              = "won"
	LeadStatusLost             = "lost"
)

// Service types offered on the intake form.
const (
	ServiceHomepage   = "homepage"
	ServiceApp        = "app"
	ServiceSolution   = "solution"
	ServiceAutomation = "automation"
)

// Lead is an inbound inquiry submitted through the marketing-site form.
// Never hard-deleted except by an explicit admin delete.
type Lead struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Phone       string `gorm:"not null"`
	Email       string
	Company     string
	ServiceType string `gorm:"not null;index"` // homepage, app, solution, automation
	BudgetRange string
	Description string `gorm:"type:text"`
	Source      string // referral channel reported by the applicant
	Status      string `gorm:"not null;default:'new';index"`
	CreatedBy   *uint  // staff user; nil for public form submissions
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LeadStatuses lists every accepted lead status value.
var LeadStatuses = []string{
	LeadStatusNew, LeadStatusContacted, LeadStatusMeetingScheduled,
	LeadStatusProposalSent, LeadStatusNegotiating, LeadStatusWon, LeadStatusLost,
}

// ServiceTypes lists every accepted service type value.
var ServiceTypes = []string{ServiceHomepage, ServiceApp, ServiceSolution, ServiceAutomation}
