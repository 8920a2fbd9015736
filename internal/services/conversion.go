package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/haneulsoft/agency-office/internal/models"
)

// ErrLeadNotFound carries the user-facing message verbatim.
var ErrLeadNotFound = errors.New("리드를 찾을 수 없습니다.")

// ConversionStore is the data access needed by the conversion workflow.
type ConversionStore interface {
	LeadByID(ctx context.Context, id uint) (models.Lead, error)
	// SaveConversion inserts the client and marks the lead won in one
	// atomic step. On failure nothing is persisted.
	SaveConversion(ctx context.Context, leadID uint, client *models.Client) error
}

// ConversionService turns a lead into a client. The lead reaches status
// "won" exactly when a client referencing it was created; both writes share
// one transaction. There is no already-converted guard and no row lock, so
// two concurrent conversions of the same lead can still produce two clients.
type ConversionService struct {
	Store ConversionStore
}

func NewConversionService(store ConversionStore) *ConversionService {
	return &ConversionService{Store: store}
}

// Convert creates a client from the lead and returns the new client id.
// A missing lead aborts with ErrLeadNotFound and performs no writes; store
// errors surface verbatim.
func (s *ConversionService) Convert(ctx context.Context, leadID uint) (uint, error) {
	lead, err := s.Store.LeadByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrLeadNotFound
		}
		return 0, err
	}
	companyName := lead.Company
	if companyName == "" {
		companyName = lead.Name
	}
	id := lead.ID
	client := models.Client{
		CompanyName:  companyName,
		ContactName:  lead.Name,
		ContactEmail: lead.Email,
		ContactPhone: lead.Phone,
		LeadID:       &id,
	}
	if err := s.Store.SaveConversion(ctx, lead.ID, &client); err != nil {
		return 0, err
	}
	return client.ID, nil
}

// GormConversionStore backs the workflow with the real database.
type GormConversionStore struct{ DB *gorm.DB }

func (s GormConversionStore) LeadByID(ctx context.Context, id uint) (models.Lead, error) {
	var lead models.Lead
	err := s.DB.WithContext(ctx).First(&lead, id).Error
	return lead, err
}

func (s GormConversionStore) SaveConversion(ctx context.Context, leadID uint, client *models.Client) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(client).Error; err != nil {
			return err
		}
		return tx.Model(&models.Lead{}).Where("id = ?", leadID).
			Update("status", models.LeadStatusWon).Error
	})
}
