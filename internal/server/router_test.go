package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/haneulsoft/agency-office/internal/db"
	"github.com/haneulsoft/agency-office/internal/models"
)

func setupRouter(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	for _, m := range db.Models() {
		if err := conn.AutoMigrate(m); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	}
	return New(conn), conn
}

func seedStaff(t *testing.T, conn *gorm.DB) models.User {
	t.Helper()
	role := models.Role{Name: "staff"}
	if err := conn.Create(&role).Error; err != nil {
		t.Fatalf("role: %v", err)
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	user := models.User{Email: "staff@agency.kr", Password: string(hash), Name: "담당자", RoleID: role.ID}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	return user
}

func login(t *testing.T, h http.Handler) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"staff@agency.kr","password":"secret123"}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatalf("no session cookie set")
	return nil
}

func TestHealthEndpoints(t *testing.T) {
	h, _ := setupRouter(t)
	for _, path := range []string{"/health", "/healthz"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s expected 200 got %d", path, w.Code)
		}
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	h, _ := setupRouter(t)
	for _, path := range []string{"/leads", "/clients", "/invoices", "/tickets", "/admin/posts"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s expected 401 got %d", path, w.Code)
		}
	}
}

func TestApplyIsPublic(t *testing.T) {
	h, conn := setupRouter(t)
	body := `{"name":"김철수","phone":"010-1234-5678","service_type":"homepage","description":"홈페이지 제작 문의입니다."}`
	req := httptest.NewRequest(http.MethodPost, "/leads/apply", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var lead models.Lead
	if err := conn.First(&lead).Error; err != nil {
		t.Fatalf("lead not persisted: %v", err)
	}
	if lead.CreatedBy != nil {
		t.Fatalf("anonymous application must carry nil created_by")
	}
}

func TestLoginThenListLeads(t *testing.T) {
	h, conn := setupRouter(t)
	seedStaff(t, conn)
	cookie := login(t, h)

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success envelope got %v", resp)
	}
}

func TestDeleteRequiresManagerRole(t *testing.T) {
	h, conn := setupRouter(t)
	seedStaff(t, conn)
	cookie := login(t, h)

	lead := models.Lead{Name: "김철수", Phone: "010-1234-5678", ServiceType: models.ServiceHomepage, Description: "홈페이지 제작 문의입니다.", Status: models.LeadStatusNew}
	if err := conn.Create(&lead).Error; err != nil {
		t.Fatalf("seed lead: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/leads/delete?id=%d", lead.ID), nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("staff delete expected 403 got %d body=%s", w.Code, w.Body.String())
	}
	var still models.Lead
	if err := conn.First(&still, lead.ID).Error; err != nil {
		t.Fatalf("lead must survive a denied delete: %v", err)
	}

	// An admin account may delete.
	adminRole := models.Role{Name: "admin"}
	if err := conn.Create(&adminRole).Error; err != nil {
		t.Fatalf("role: %v", err)
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	admin := models.User{Email: "boss@agency.kr", Password: string(hash), Name: "대표", RoleID: adminRole.ID}
	if err := conn.Create(&admin).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"boss@agency.kr","password":"secret123"}`))
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin login: %d", w.Code)
	}
	var adminCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			adminCookie = c
		}
	}
	req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/leads/delete?id=%d", lead.ID), nil)
	req.AddCookie(adminCookie)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin delete expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if err := conn.First(&still, lead.ID).Error; err == nil {
		t.Fatalf("lead should be gone after admin delete")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h, conn := setupRouter(t)
	seedStaff(t, conn)
	cookie := login(t, h)

	req := httptest.NewRequest(http.MethodDelete, "/leads", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", w.Code)
	}
	if allow := w.Header().Get("Allow"); allow != "GET,POST" {
		t.Fatalf("expected Allow header, got %q", allow)
	}
}
