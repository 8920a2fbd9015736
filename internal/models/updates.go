package models

import "time"

// Per-entity update-field sets. A nil field means "leave the column as is",
// so a handler can never write a column the struct does not name. Changes
// builds the gorm column map; derived stamps (Invoice.paid_at,
// Ticket.resolved_at) are applied here and nowhere else.

type LeadUpdate struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Company     *string `json:"company"`
	ServiceType *string `json:"service_type"`
	BudgetRange *string `json:"budget_range"`
	Description *string `json:"description"`
	Source      *string `json:"source"`
	Status      *string `json:"status"`
}

func (u LeadUpdate) Changes() map[string]any {
	m := map[string]any{}
	setStr(m, "name", u.Name)
	setStr(m, "phone", u.Phone)
	setStr(m, "email", u.Email)
	setStr(m, "company", u.Company)
	setStr(m, "service_type", u.ServiceType)
	setStr(m, "budget_range", u.BudgetRange)
	setStr(m, "description", u.Description)
	setStr(m, "source", u.Source)
	setStr(m, "status", u.Status)
	return m
}

type ClientUpdate struct {
	CompanyName  *string `json:"company_name"`
	ContactName  *string `json:"contact_name"`
	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
}

func (u ClientUpdate) Changes() map[string]any {
	m := map[string]any{}
	setStr(m, "company_name", u.CompanyName)
	setStr(m, "contact_name", u.ContactName)
	setStr(m, "contact_email", u.ContactEmail)
	setStr(m, "contact_phone", u.ContactPhone)
	return m
}

type ProjectUpdate struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Budget      *int64     `json:"budget"`
}

func (u ProjectUpdate) Changes() map[string]any {
	m := map[string]any{}
	setStr(m, "name", u.Name)
	setStr(m, "description", u.Description)
	setStr(m, "status", u.Status)
	if u.StartDate != nil {
		m["start_date"] = *u.StartDate
	}
	if u.EndDate != nil {
		m["end_date"] = *u.EndDate
	}
	if u.Budget != nil {
		m["budget"] = *u.Budget
	}
	return m
}

// InvoiceUpdate covers header edits. Totals edited here are deliberately
// not reconciled against the stored items.
type InvoiceUpdate struct {
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	Notes       *string    `json:"notes"`
	Subtotal    *int64     `json:"subtotal"`
	TaxAmount   *int64     `json:"tax_amount"`
	TotalAmount *int64     `json:"total_amount"`
}

func (u InvoiceUpdate) Changes() map[string]any {
	m := map[string]any{}
	setStr(m, "status", u.Status)
	if u.DueDate != nil {
		m["due_date"] = *u.DueDate
	}
	setStr(m, "notes", u.Notes)
	if u.Subtotal != nil {
		m["subtotal"] = *u.Subtotal
	}
	if u.TaxAmount != nil {
		m["tax_amount"] = *u.TaxAmount
	}
	if u.TotalAmount != nil {
		m["total_amount"] = *u.TotalAmount
	}
	if u.Status != nil && *u.Status == InvoiceStatusPaid {
		m["paid_at"] = time.Now()
	}
	return m
}

type TicketUpdate struct {
	Subject  *string `json:"subject"`
	Content  *string `json:"content"`
	Priority *string `json:"priority"`
	Status   *string `json:"status"`
}

func (u TicketUpdate) Changes() map[string]any {
	m := map[string]any{}
	setStr(m, "subject", u.Subject)
	setStr(m, "content", u.Content)
	setStr(m, "priority", u.Priority)
	setStr(m, "status", u.Status)
	if u.Status != nil && (*u.Status == TicketStatusResolved || *u.Status == TicketStatusClosed) {
		m["resolved_at"] = time.Now()
	}
	return m
}

type MeetingUpdate struct {
	Title       *string    `json:"title"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Location    *string    `json:"location"`
	Notes       *string    `json:"notes"`
	Status      *string    `json:"status"`
}

func (u MeetingUpdate) Changes() map[string]any {
	m := map[string]any{}
	setStr(m, "title", u.Title)
	if u.ScheduledAt != nil {
		m["scheduled_at"] = *u.ScheduledAt
	}
	setStr(m, "location", u.Location)
	setStr(m, "notes", u.Notes)
	setStr(m, "status", u.Status)
	return m
}

type FeedbackUpdate struct {
	Rating  *int    `json:"rating"`
	Content *string `json:"content"`
}

func (u FeedbackUpdate) Changes() map[string]any {
	m := map[string]any{}
	if u.Rating != nil {
		m["rating"] = *u.Rating
	}
	setStr(m, "content", u.Content)
	return m
}

type PostUpdate struct {
	Slug        *string    `json:"slug"`
	Title       *string    `json:"title"`
	Content     *string    `json:"content"`
	Excerpt     *string    `json:"excerpt"`
	Published   *bool      `json:"published"`
	PublishedAt *time.Time `json:"published_at"`
}

func (u PostUpdate) Changes() map[string]any {
	m := map[string]any{}
	setStr(m, "slug", u.Slug)
	setStr(m, "title", u.Title)
	setStr(m, "content", u.Content)
	setStr(m, "excerpt", u.Excerpt)
	if u.Published != nil {
		m["published"] = *u.Published
	}
	if u.PublishedAt != nil {
		m["published_at"] = *u.PublishedAt
	}
	return m
}

func setStr(m map[string]any, col string, v *string) {
	if v != nil {
		m[col] = *v
	}
}
