package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/haneulsoft/agency-office/auth"
	"github.com/haneulsoft/agency-office/httpx"
	"github.com/haneulsoft/agency-office/internal/models"
	"github.com/haneulsoft/agency-office/internal/services"
)

type InvoiceHandler struct {
	DB  *gorm.DB
	Svc *services.InvoiceService
}

func NewInvoiceHandler(db *gorm.DB, svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Svc: svc}
}

// List: GET /invoices — filterable by client_id and status.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r, 50, 200)
	dbq := h.DB.Model(&models.Invoice{})
	if v := r.URL.Query().Get("client_id"); v != "" {
		dbq = dbq.Where("client_id = ?", v)
	}
	if v := r.URL.Query().Get("status"); v != "" {
		dbq = dbq.Where("status = ?", v)
	}
	var total int64
	dbq.Count(&total)
	var invs []models.Invoice
	if err := dbq.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order asc")
	}).Order("id desc").Limit(limit).Offset(offset).Find(&invs).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "failed_to_list_invoices")
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"items": invs, "total": total, "limit": limit, "offset": offset})
}

// Create: POST /invoices — header plus items in one transaction; totals are
// computed, not taken from the caller.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.InvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if in.ClientID == 0 {
		httpx.FailFields(w, http.StatusBadRequest, "validation_failed", map[string]string{"client_id": "required"})
		return
	}
	inv, err := h.Svc.Create(in, auth.CurrentUserID(r.Context()))
	if err != nil {
		if errors.Is(err, services.ErrEmptyInvoice) || errors.Is(err, services.ErrBadLineItem) {
			httpx.Fail(w, http.StatusBadRequest, err.Error())
			return
		}
		httpx.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OK(w, http.StatusCreated, map[string]any{
		"id":           inv.ID,
		"subtotal":     inv.Subtotal,
		"tax_amount":   inv.TaxAmount,
		"total_amount": inv.TotalAmount,
		"status":       inv.Status,
	})
}

// Get: GET /invoices/get?id=... — header with ordered items.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	var inv models.Invoice
	err := h.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order asc")
	}).First(&inv, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(w, http.StatusNotFound, "invoice_not_found")
			return
		}
		httpx.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"invoice": inv})
}

// Update: POST /invoices/update?id=... — header-only edits. A status write
// of "paid" stamps paid_at; items are never touched here.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	var upd models.InvoiceUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}
	changes := upd.Changes()
	if len(changes) == 0 {
		httpx.Fail(w, http.StatusBadRequest, "no_fields")
		return
	}
	res := h.DB.Model(&models.Invoice{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		httpx.Fail(w, http.StatusInternalServerError, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		httpx.Fail(w, http.StatusNotFound, "invoice_not_found")
		return
	}
	httpx.OK(w, http.StatusOK, nil)
}

// Delete: POST /invoices/delete?id=... — removes header and items.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Invoice{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(w, http.StatusNotFound, "invoice_not_found")
			return
		}
		httpx.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OK(w, http.StatusOK, nil)
}
