package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/haneulsoft/agency-office/auth"
	"github.com/haneulsoft/agency-office/httpx"
	"github.com/haneulsoft/agency-office/i18n"
	"github.com/haneulsoft/agency-office/internal/models"
	"github.com/haneulsoft/agency-office/internal/services"
)

// LeadHandler owns the lead pipeline: the public application form, staff
// CRUD, and the conversion into a client.
type LeadHandler struct {
	DB   *gorm.DB
	Conv *services.ConversionService
}

func NewLeadHandler(db *gorm.DB, conv *services.ConversionService) *LeadHandler {
	return &LeadHandler{DB: db, Conv: conv}
}

// Apply: POST /leads/apply — the marketing-site form posts here, no session
// required. All field violations come back together.
func (h *LeadHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var form services.LeadForm
	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid_json")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid_form")
			return
		}
		form = services.LeadForm{
			Name:        r.Form.Get("name"),
			Phone:       r.Form.Get("phone"),
			Email:       r.Form.Get("email"),
			Company:     r.Form.Get("company"),
			ServiceType: r.Form.Get("service_type"),
			BudgetRange: r.Form.Get("budget_range"),
			Description: r.Form.Get("description"),
			Source:      r.Form.Get("source"),
		}
	}
	normalized, violations := services.ValidateLeadForm(form)
	if !violations.Empty() {
		lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		httpx.FailFields(w, http.StatusBadRequest, "validation_failed", i18n.TranslateAll(lang, violations))
		return
	}
	lead := normalized.Lead(auth.CurrentUserID(r.Context()))
	if err := h.DB.Create(&lead).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OK(w, http.StatusCreated, map[string]any{"id": lead.ID})
}

// List: GET /leads — paginated, filterable by status and free-text q.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r, 50, 200)
	dbq := h.DB.Model(&models.Lead{})
	if status := r.URL.Query().Get("status"); status != "" {
		dbq = dbq.Where("status = ?", status)
	}
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		safe := regexp.MustCompile(`[^\p{L}0-9 \-_@.]`).ReplaceAllString(q, "")
		like := "%" + strings.ToLower(safe) + "%"
		dbq = dbq.Where("lower(name) LIKE ? OR lower(company) LIKE ?", like, like)
	}
	var total int64
	dbq.Count(&total)
	var leads []models.Lead
	if err := dbq.Order("id desc").Limit(limit).Offset(offset).Find(&leads).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "failed_to_list_leads")
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"items": leads, "total": total, "limit": limit, "offset": offset})
}

// Get: GET /leads/get?id=...
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	var lead models.Lead
	if err := h.DB.First(&lead, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(w, http.StatusNotFound, services.ErrLeadNotFound.Error())
			return
		}
		httpx.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"lead": lead})
}

// Update: POST /leads/update?id=... — typed field set; status writes are
// unconditional (no pipeline-order validation).
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	var upd models.LeadUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}
	changes := upd.Changes()
	if len(changes) == 0 {
		httpx.Fail(w, http.StatusBadRequest, "no_fields")
		return
	}
	res := h.DB.Model(&models.Lead{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		httpx.Fail(w, http.StatusInternalServerError, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		httpx.Fail(w, http.StatusNotFound, services.ErrLeadNotFound.Error())
		return
	}
	httpx.OK(w, http.StatusOK, nil)
}

// Delete: POST /leads/delete?id=... — the one hard delete, admin action.
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	res := h.DB.Delete(&models.Lead{}, id)
	if res.Error != nil {
		httpx.Fail(w, http.StatusInternalServerError, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		httpx.Fail(w, http.StatusNotFound, services.ErrLeadNotFound.Error())
		return
	}
	httpx.OK(w, http.StatusOK, nil)
}

// Convert: POST /leads/convert?id=... — creates the client and marks the
// lead won. Store error messages pass through verbatim.
func (h *LeadHandler) Convert(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	clientID, err := h.Conv.Convert(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrLeadNotFound) {
			httpx.Fail(w, http.StatusNotFound, err.Error())
			return
		}
		httpx.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"client_id": clientID})
}
