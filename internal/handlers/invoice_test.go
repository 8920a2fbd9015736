package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/haneulsoft/agency-office/internal/models"
	"github.com/haneulsoft/agency-office/internal/services"
)

func setupInvoiceHandlerDB(t *testing.T) (*gorm.DB, models.Client) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Client{}, &models.Project{}, &models.Invoice{}, &models.InvoiceItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	client := models.Client{CompanyName: "ACME"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	return db, client
}

func TestInvoiceCreateAndListJSON(t *testing.T) {
	db, client := setupInvoiceHandlerDB(t)
	h := NewInvoiceHandler(db, services.NewInvoiceService(db))

	body := `{"client_id":` + strconv.Itoa(int(client.ID)) + `,"items":[{"description":"디자인","quantity":2,"unit_price":1000},{"description":"퍼블리싱","quantity":1,"unit_price":500}]}`
	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created["subtotal"] != float64(2500) || created["tax_amount"] != float64(250) || created["total_amount"] != float64(2750) {
		t.Fatalf("unexpected totals: %v", created)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/invoices", nil)
	listW := httptest.NewRecorder()
	h.List(listW, listReq)
	if listW.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", listW.Code)
	}
	var list struct {
		Items []models.Invoice `json:"items"`
		Total int64            `json:"total"`
	}
	if err := json.Unmarshal(listW.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Items) != 1 || list.Total != 1 {
		t.Fatalf("unexpected list: %+v", list)
	}
	if len(list.Items[0].Items) != 2 || list.Items[0].Items[0].SortOrder != 0 {
		t.Fatalf("expected ordered items preloaded: %+v", list.Items[0].Items)
	}
}

func TestInvoiceCreateRejectsEmptyItems(t *testing.T) {
	db, client := setupInvoiceHandlerDB(t)
	h := NewInvoiceHandler(db, services.NewInvoiceService(db))

	body := `{"client_id":` + strconv.Itoa(int(client.ID)) + `,"items":[]}`
	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestInvoiceMarkPaidStampsPaidAt(t *testing.T) {
	db, client := setupInvoiceHandlerDB(t)
	h := NewInvoiceHandler(db, services.NewInvoiceService(db))

	inv, err := services.NewInvoiceService(db).Create(services.InvoiceInput{
		ClientID: client.ID,
		Items:    []services.InvoiceItemInput{{Description: "운영", Quantity: 1, UnitPrice: 100000}},
	}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inv.PaidAt != nil {
		t.Fatalf("fresh invoice must not be paid")
	}

	// non-paid status write leaves paid_at untouched
	req := httptest.NewRequest(http.MethodPost, "/invoices/update?id="+strconv.Itoa(int(inv.ID)), strings.NewReader(`{"status":"sent"}`))
	w := httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var sent models.Invoice
	db.First(&sent, inv.ID)
	if sent.Status != models.InvoiceStatusSent || sent.PaidAt != nil {
		t.Fatalf("sent write must not stamp paid_at: %+v", sent)
	}

	req = httptest.NewRequest(http.MethodPost, "/invoices/update?id="+strconv.Itoa(int(inv.ID)), strings.NewReader(`{"status":"paid"}`))
	w = httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var paid models.Invoice
	db.First(&paid, inv.ID)
	if paid.Status != models.InvoiceStatusPaid || paid.PaidAt == nil {
		t.Fatalf("paid write must stamp paid_at: %+v", paid)
	}
}

func TestInvoiceHeaderEditNotReconciled(t *testing.T) {
	db, client := setupInvoiceHandlerDB(t)
	h := NewInvoiceHandler(db, services.NewInvoiceService(db))

	inv, err := services.NewInvoiceService(db).Create(services.InvoiceInput{
		ClientID: client.ID,
		Items:    []services.InvoiceItemInput{{Description: "운영", Quantity: 1, UnitPrice: 1000}},
	}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// A header total edit is accepted as-is; items stay what they were.
	req := httptest.NewRequest(http.MethodPost, "/invoices/update?id="+strconv.Itoa(int(inv.ID)), strings.NewReader(`{"total_amount":99}`))
	w := httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var after models.Invoice
	db.Preload("Items").First(&after, inv.ID)
	if after.TotalAmount != 99 {
		t.Fatalf("expected edited total got %d", after.TotalAmount)
	}
	if len(after.Items) != 1 || after.Items[0].Amount != 1000 {
		t.Fatalf("items must be untouched: %+v", after.Items)
	}
}

func TestInvoiceDeleteRemovesItems(t *testing.T) {
	db, client := setupInvoiceHandlerDB(t)
	h := NewInvoiceHandler(db, services.NewInvoiceService(db))

	inv, err := services.NewInvoiceService(db).Create(services.InvoiceInput{
		ClientID: client.ID,
		Items:    []services.InvoiceItemInput{{Description: "운영", Quantity: 1, UnitPrice: 1000}},
	}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/invoices/delete?id="+strconv.Itoa(int(inv.ID)), nil)
	w := httptest.NewRecorder()
	h.Delete(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var headers, items int64
	db.Model(&models.Invoice{}).Count(&headers)
	db.Model(&models.InvoiceItem{}).Count(&items)
	if headers != 0 || items != 0 {
		t.Fatalf("expected full cleanup, headers=%d items=%d", headers, items)
	}
}
