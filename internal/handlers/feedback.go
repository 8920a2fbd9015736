package handlers

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"github.com/haneulsoft/agency-office/httpx"
	"github.com/haneulsoft/agency-office/internal/models"
	"github.com/haneulsoft/agency-office/validation"
)

type FeedbackHandler struct{ DB *gorm.DB }

func NewFeedbackHandler(db *gorm.DB) *FeedbackHandler { return &FeedbackHandler{DB: db} }

func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r, 50, 200)
	dbq := h.DB.Model(&models.Feedback{})
	if v := r.URL.Query().Get("client_id"); v != "" {
		dbq = dbq.Where("client_id = ?", v)
	}
	if v := r.URL.Query().Get("project_id"); v != "" {
		dbq = dbq.Where("project_id = ?", v)
	}
	var total int64
	dbq.Count(&total)
	var items []models.Feedback
	if err := dbq.Order("id desc").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "failed_to_list_feedback")
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"items": items, "total": total, "limit": limit, "offset": offset})
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID  uint   `json:"client_id"`
		ProjectID *uint  `json:"project_id"`
		Rating    int    `json:"rating"`
		Content   string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}
	v := make(validation.Violations)
	if req.ClientID == 0 {
		v["client_id"] = "required"
	}
	validation.RangeInt("rating", req.Rating, 1, 5, v)
	if !v.Empty() {
		httpx.FailFields(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	fb := models.Feedback{
		ClientID:  req.ClientID,
		ProjectID: req.ProjectID,
		Rating:    req.Rating,
		Content:   req.Content,
	}
	if err := h.DB.Create(&fb).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OK(w, http.StatusCreated, map[string]any{"id": fb.ID})
}

func (h *FeedbackHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	var fb models.Feedback
	if err := h.DB.First(&fb, id).Error; err != nil {
		httpx.Fail(w, http.StatusNotFound, "feedback_not_found")
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"feedback": fb})
}

func (h *FeedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	var upd models.FeedbackUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if upd.Rating != nil {
		v := make(validation.Violations)
		validation.RangeInt("rating", *upd.Rating, 1, 5, v)
		if !v.Empty() {
			httpx.FailFields(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
	}
	changes := upd.Changes()
	if len(changes) == 0 {
		httpx.Fail(w, http.StatusBadRequest, "no_fields")
		return
	}
	res := h.DB.Model(&models.Feedback{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		httpx.Fail(w, http.StatusInternalServerError, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		httpx.Fail(w, http.StatusNotFound, "feedback_not_found")
		return
	}
	httpx.OK(w, http.StatusOK, nil)
}

func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	res := h.DB.Delete(&models.Feedback{}, id)
	if res.Error != nil {
		httpx.Fail(w, http.StatusInternalServerError, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		httpx.Fail(w, http.StatusNotFound, "feedback_not_found")
		return
	}
	httpx.OK(w, http.StatusOK, nil)
}
