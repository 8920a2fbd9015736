package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/haneulsoft/agency-office/internal/models"
)

var ErrEmptyInvoice = errors.New("invoice needs at least one item")
var ErrBadLineItem = errors.New("quantity must be positive and unit price non-negative")

// InvoiceItemInput is one billable line as submitted by the caller.
type InvoiceItemInput struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
}

// InvoiceInput is the create-invoice request.
type InvoiceInput struct {
	ClientID  uint               `json:"client_id"`
	ProjectID *uint              `json:"project_id"`
	DueDate   *time.Time         `json:"due_date"`
	TaxRate   *float64           `json:"tax_rate"` // percent; nil means the default 10
	Notes     string             `json:"notes"`
	Items     []InvoiceItemInput `json:"items"`
}

// InvoiceService computes invoice money fields and persists header+items.
type InvoiceService struct{ DB *gorm.DB }

func NewInvoiceService(db *gorm.DB) *InvoiceService { return &InvoiceService{DB: db} }

// ComputeTotals derives subtotal, tax and total from the items. Line amounts
// are exact (quantity × unit price, integer KRW). Tax rounds half away
// from zero.
func (s *InvoiceService) ComputeTotals(items []InvoiceItemInput, taxRate float64) (subtotal, tax, total int64) {
	for _, it := range items {
		subtotal += int64(it.Quantity) * it.UnitPrice
	}
	tax = int64(math.Round(float64(subtotal) * taxRate / 100))
	total = subtotal + tax
	return subtotal, tax, total
}

// Create validates the items, computes totals, and persists the header plus
// N item rows in one transaction. SortOrder records each item's zero-based
// position in the submitted list.
func (s *InvoiceService) Create(in InvoiceInput, createdBy *uint) (*models.Invoice, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyInvoice
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 || it.UnitPrice < 0 {
			return nil, ErrBadLineItem
		}
	}
	taxRate := models.DefaultTaxRate
	if in.TaxRate != nil {
		taxRate = *in.TaxRate
	}
	subtotal, tax, total := s.ComputeTotals(in.Items, taxRate)
	inv := models.Invoice{
		ClientID:    in.ClientID,
		ProjectID:   in.ProjectID,
		DueDate:     in.DueDate,
		Subtotal:    subtotal,
		TaxRate:     taxRate,
		TaxAmount:   tax,
		TotalAmount: total,
		Status:      models.InvoiceStatusDraft,
		Notes:       in.Notes,
		CreatedBy:   createdBy,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		items := make([]models.InvoiceItem, 0, len(in.Items))
		for i, it := range in.Items {
			items = append(items, models.InvoiceItem{
				InvoiceID:   inv.ID,
				Description: it.Description,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				Amount:      int64(it.Quantity) * it.UnitPrice,
				SortOrder:   i,
			})
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}
	if err := s.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order asc")
	}).First(&inv, inv.ID).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}
