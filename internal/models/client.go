package models

import "time"

// Client is a contracted customer. LeadID points back at the originating
// lead when the client came out of a conversion; clients created directly
// by staff carry a nil LeadID. Uniqueness of LeadID is not enforced (see
// the conversion workflow notes).
type Client struct {
	ID           uint   `gorm:"primaryKey"`
	CompanyName  string `gorm:"not null;index"`
	ContactName  string
	ContactEmail string
	ContactPhone string
	LeadID       *uint `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
