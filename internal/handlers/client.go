package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/haneulsoft/agency-office/httpx"
	"github.com/haneulsoft/agency-office/internal/models"
	"github.com/haneulsoft/agency-office/validation"
)

type ClientHandler struct{ DB *gorm.DB }

func NewClientHandler(db *gorm.DB) *ClientHandler { return &ClientHandler{DB: db} }

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r, 20, 200)
	dbq := h.DB.Model(&models.Client{})
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		dbq = dbq.Where("lower(company_name) LIKE ? OR lower(contact_name) LIKE ?", like, like)
	}
	var total int64
	dbq.Count(&total)
	var clients []models.Client
	if err := dbq.Order("company_name").Limit(limit).Offset(offset).Find(&clients).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "failed_to_list_clients")
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"items": clients, "total": total, "limit": limit, "offset": offset})
}

// Create: POST /clients — direct client creation, without a lead.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CompanyName  string `json:"company_name"`
		ContactName  string `json:"contact_name"`
		ContactEmail string `json:"contact_email"`
		ContactPhone string `json:"contact_phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}
	v := make(validation.Violations)
	validation.Required("company_name", req.CompanyName, v)
	validation.Email("contact_email", req.ContactEmail, v)
	if !v.Empty() {
		httpx.FailFields(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	client := models.Client{
		CompanyName:  strings.TrimSpace(req.CompanyName),
		ContactName:  strings.TrimSpace(req.ContactName),
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
	}
	if err := h.DB.Create(&client).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OK(w, http.StatusCreated, map[string]any{"id": client.ID})
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	var client models.Client
	if err := h.DB.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(w, http.StatusNotFound, "client_not_found")
			return
		}
		httpx.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"client": client})
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	var upd models.ClientUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}
	changes := upd.Changes()
	if len(changes) == 0 {
		httpx.Fail(w, http.StatusBadRequest, "no_fields")
		return
	}
	res := h.DB.Model(&models.Client{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		httpx.Fail(w, http.StatusInternalServerError, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		httpx.Fail(w, http.StatusNotFound, "client_not_found")
		return
	}
	httpx.OK(w, http.StatusOK, nil)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	res := h.DB.Delete(&models.Client{}, id)
	if res.Error != nil {
		httpx.Fail(w, http.StatusInternalServerError, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		httpx.Fail(w, http.StatusNotFound, "client_not_found")
		return
	}
	httpx.OK(w, http.StatusOK, nil)
}
