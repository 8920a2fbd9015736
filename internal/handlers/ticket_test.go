package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/haneulsoft/agency-office/internal/models"
)

func setupTicketTestDB(t *testing.T) (*gorm.DB, models.Ticket) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Client{}, &models.Ticket{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	client := models.Client{CompanyName: "ACME"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	ticket := models.Ticket{ClientID: client.ID, Subject: "사이트 접속 오류", Priority: models.TicketPriorityHigh, Status: models.TicketStatusOpen}
	if err := db.Create(&ticket).Error; err != nil {
		t.Fatalf("ticket: %v", err)
	}
	return db, ticket
}

func TestTicketResolveStampsResolvedAt(t *testing.T) {
	db, ticket := setupTicketTestDB(t)
	h := NewTicketHandler(db)

	// in_progress write leaves resolved_at alone
	req := httptest.NewRequest(http.MethodPost, "/tickets/update?id="+strconv.Itoa(int(ticket.ID)), strings.NewReader(`{"status":"in_progress"}`))
	w := httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var working models.Ticket
	db.First(&working, ticket.ID)
	if working.ResolvedAt != nil {
		t.Fatalf("in_progress must not stamp resolved_at")
	}

	req = httptest.NewRequest(http.MethodPost, "/tickets/update?id="+strconv.Itoa(int(ticket.ID)), strings.NewReader(`{"status":"resolved"}`))
	w = httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var resolved models.Ticket
	db.First(&resolved, ticket.ID)
	if resolved.Status != models.TicketStatusResolved || resolved.ResolvedAt == nil {
		t.Fatalf("resolved write must stamp resolved_at: %+v", resolved)
	}
}

func TestTicketClosedStampsResolvedAt(t *testing.T) {
	db, ticket := setupTicketTestDB(t)
	h := NewTicketHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/tickets/update?id="+strconv.Itoa(int(ticket.ID)), strings.NewReader(`{"status":"closed"}`))
	w := httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var closed models.Ticket
	db.First(&closed, ticket.ID)
	if closed.ResolvedAt == nil {
		t.Fatalf("closed write must stamp resolved_at")
	}
}

func TestTicketCreateRequiresSubject(t *testing.T) {
	db, ticket := setupTicketTestDB(t)
	h := NewTicketHandler(db)

	body := `{"client_id":` + strconv.Itoa(int(ticket.ClientID)) + `,"subject":""}`
	req := httptest.NewRequest(http.MethodPost, "/tickets", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}
