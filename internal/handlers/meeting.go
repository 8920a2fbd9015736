package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/haneulsoft/agency-office/auth"
	"github.com/haneulsoft/agency-office/httpx"
	"github.com/haneulsoft/agency-office/internal/models"
	"github.com/haneulsoft/agency-office/validation"
)

type MeetingHandler struct{ DB *gorm.DB }

func NewMeetingHandler(db *gorm.DB) *MeetingHandler { return &MeetingHandler{DB: db} }

func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r, 50, 200)
	dbq := h.DB.Model(&models.Meeting{})
	if v := r.URL.Query().Get("lead_id"); v != "" {
		dbq = dbq.Where("lead_id = ?", v)
	}
	if v := r.URL.Query().Get("client_id"); v != "" {
		dbq = dbq.Where("client_id = ?", v)
	}
	var total int64
	dbq.Count(&total)
	var meetings []models.Meeting
	if err := dbq.Order("scheduled_at desc").Limit(limit).Offset(offset).Find(&meetings).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "failed_to_list_meetings")
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"items": meetings, "total": total, "limit": limit, "offset": offset})
}

func (h *MeetingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LeadID      *uint     `json:"lead_id"`
		ClientID    *uint     `json:"client_id"`
		Title       string    `json:"title"`
		ScheduledAt time.Time `json:"scheduled_at"`
		Location    string    `json:"location"`
		Notes       string    `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}
	v := make(validation.Violations)
	validation.Required("title", req.Title, v)
	if req.ScheduledAt.IsZero() {
		v["scheduled_at"] = "required"
	}
	if !v.Empty() {
		httpx.FailFields(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	meeting := models.Meeting{
		LeadID:      req.LeadID,
		ClientID:    req.ClientID,
		Title:       req.Title,
		ScheduledAt: req.ScheduledAt,
		Location:    req.Location,
		Notes:       req.Notes,
		Status:      models.MeetingStatusScheduled,
		CreatedBy:   auth.CurrentUserID(r.Context()),
	}
	if err := h.DB.Create(&meeting).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OK(w, http.StatusCreated, map[string]any{"id": meeting.ID})
}

func (h *MeetingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	var meeting models.Meeting
	if err := h.DB.First(&meeting, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(w, http.StatusNotFound, "meeting_not_found")
			return
		}
		httpx.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"meeting": meeting})
}

func (h *MeetingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	var upd models.MeetingUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}
	changes := upd.Changes()
	if len(changes) == 0 {
		httpx.Fail(w, http.StatusBadRequest, "no_fields")
		return
	}
	res := h.DB.Model(&models.Meeting{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		httpx.Fail(w, http.StatusInternalServerError, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		httpx.Fail(w, http.StatusNotFound, "meeting_not_found")
		return
	}
	httpx.OK(w, http.StatusOK, nil)
}

func (h *MeetingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	res := h.DB.Delete(&models.Meeting{}, id)
	if res.Error != nil {
		httpx.Fail(w, http.StatusInternalServerError, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		httpx.Fail(w, http.StatusNotFound, "meeting_not_found")
		return
	}
	httpx.OK(w, http.StatusOK, nil)
}
