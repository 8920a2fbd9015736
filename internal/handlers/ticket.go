package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/haneulsoft/agency-office/auth"
	"github.com/haneulsoft/agency-office/httpx"
	"github.com/haneulsoft/agency-office/internal/models"
	"github.com/haneulsoft/agency-office/validation"
)

type TicketHandler struct{ DB *gorm.DB }

func NewTicketHandler(db *gorm.DB) *TicketHandler { return &TicketHandler{DB: db} }

func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r, 50, 200)
	dbq := h.DB.Model(&models.Ticket{})
	if v := r.URL.Query().Get("client_id"); v != "" {
		dbq = dbq.Where("client_id = ?", v)
	}
	if v := r.URL.Query().Get("status"); v != "" {
		dbq = dbq.Where("status = ?", v)
	}
	var total int64
	dbq.Count(&total)
	var tickets []models.Ticket
	if err := dbq.Order("id desc").Limit(limit).Offset(offset).Find(&tickets).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "failed_to_list_tickets")
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"items": tickets, "total": total, "limit": limit, "offset": offset})
}

func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID uint   `json:"client_id"`
		Subject  string `json:"subject"`
		Content  string `json:"content"`
		Priority string `json:"priority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}
	v := make(validation.Violations)
	validation.Required("subject", req.Subject, v)
	if req.ClientID == 0 {
		v["client_id"] = "required"
	}
	if !v.Empty() {
		httpx.FailFields(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	priority := req.Priority
	if priority == "" {
		priority = models.TicketPriorityNormal
	}
	ticket := models.Ticket{
		ClientID:  req.ClientID,
		Subject:   req.Subject,
		Content:   req.Content,
		Priority:  priority,
		Status:    models.TicketStatusOpen,
		CreatedBy: auth.CurrentUserID(r.Context()),
	}
	if err := h.DB.Create(&ticket).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OK(w, http.StatusCreated, map[string]any{"id": ticket.ID})
}

func (h *TicketHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	var ticket models.Ticket
	if err := h.DB.First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(w, http.StatusNotFound, "ticket_not_found")
			return
		}
		httpx.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"ticket": ticket})
}

// Update: POST /tickets/update?id=... — moving to resolved or closed stamps
// resolved_at; all other writes are plain field updates.
func (h *TicketHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	var upd models.TicketUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}
	changes := upd.Changes()
	if len(changes) == 0 {
		httpx.Fail(w, http.StatusBadRequest, "no_fields")
		return
	}
	res := h.DB.Model(&models.Ticket{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		httpx.Fail(w, http.StatusInternalServerError, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		httpx.Fail(w, http.StatusNotFound, "ticket_not_found")
		return
	}
	httpx.OK(w, http.StatusOK, nil)
}

func (h *TicketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	res := h.DB.Delete(&models.Ticket{}, id)
	if res.Error != nil {
		httpx.Fail(w, http.StatusInternalServerError, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		httpx.Fail(w, http.StatusNotFound, "ticket_not_found")
		return
	}
	httpx.OK(w, http.StatusOK, nil)
}
