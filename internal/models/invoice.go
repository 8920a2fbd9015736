package models

import "time"

const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// DefaultTaxRate is the VAT percentage applied when the caller does not
// supply one.
const DefaultTaxRate = 10.0

// Invoice header. All amounts are KRW, stored as integers (no decimals).
// Totals are fixed at creation time; later header edits are not reconciled
// against the items.
type Invoice struct {
	ID          uint          `gorm:"primaryKey"`
	ClientID    uint          `gorm:"not null;index"`
	ProjectID   *uint         `gorm:"index"`
	Items       []InvoiceItem `gorm:"foreignKey:InvoiceID"`
	DueDate     *time.Time
	Subtotal    int64   `gorm:"not null"`
	TaxRate     float64 `gorm:"not null;default:10"` // percent
	TaxAmount   int64   `gorm:"not null"`
	TotalAmount int64   `gorm:"not null"`
	Status      string  `gorm:"not null;default:'draft';index"`
	PaidAt      *time.Time
	Notes       string `gorm:"type:text"`
	CreatedBy   *uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InvoiceItem is one billable line. Amount and SortOrder are set at
// creation and never rewritten.
type InvoiceItem struct {
	ID          uint   `gorm:"primaryKey"`
	InvoiceID   uint   `gorm:"not null;index"`
	Description string `gorm:"not null"`
	Quantity    int    `gorm:"not null"`
	UnitPrice   int64  `gorm:"not null"`
	Amount      int64  `gorm:"not null"` // Quantity × UnitPrice
	SortOrder   int    `gorm:"not null"` // zero-based position in the submitted list
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InvoiceStatuses lists every accepted invoice status value.
var InvoiceStatuses = []string{
	InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid,
	InvoiceStatusOverdue, InvoiceStatusCancelled,
}
