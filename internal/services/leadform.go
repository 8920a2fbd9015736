package services

import (
	"strings"

	"github.com/haneulsoft/agency-office/internal/models"
	"github.com/haneulsoft/agency-office/validation"
)

// LeadForm is the payload posted by the marketing-site application form.
type LeadForm struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	ServiceType string `json:"service_type"`
	BudgetRange string `json:"budget_range"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// ValidateLeadForm normalizes the form and checks every field, reporting all
// violations together. It is pure: no store access, no side effects, and
// running it on its own normalized output yields the same output with no
// violations.
func ValidateLeadForm(in LeadForm) (LeadForm, validation.Violations) {
	out := LeadForm{
		Name:        strings.TrimSpace(in.Name),
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.TrimSpace(in.Email),
		Company:     strings.TrimSpace(in.Company),
		ServiceType: strings.TrimSpace(in.ServiceType),
		BudgetRange: strings.TrimSpace(in.BudgetRange),
		Description: strings.TrimSpace(in.Description),
		Source:      strings.TrimSpace(in.Source),
	}
	v := make(validation.Violations)
	validation.MinRunes("name", out.Name, 2, v)
	validation.Phone("phone", out.Phone, 10, v)
	validation.Email("email", out.Email, v)
	validation.OneOf("service_type", out.ServiceType, models.ServiceTypes, "invalid_service_type", v)
	validation.MinRunes("description", out.Description, 10, v)
	// company, budget_range, source are optional free form
	return out, v
}

// Lead materializes the normalized form into a lead row.
func (f LeadForm) Lead(createdBy *uint) models.Lead {
	return models.Lead{
		Name:        f.Name,
		Phone:       f.Phone,
		Email:       f.Email,
		Company:     f.Company,
		ServiceType: f.ServiceType,
		BudgetRange: f.BudgetRange,
		Description: f.Description,
		Source:      f.Source,
		Status:      models.LeadStatusNew,
		CreatedBy:   createdBy,
	}
}
