package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/haneulsoft/agency-office/auth"
	"github.com/haneulsoft/agency-office/httpx"
	"github.com/haneulsoft/agency-office/i18n"
	"github.com/haneulsoft/agency-office/internal/models"
)

// ensureDefaultRole fetches or creates the base "staff" role.
func ensureDefaultRole(db *gorm.DB) (*models.Role, error) {
	var role models.Role
	if err := db.Where("name = ?", "staff").First(&role).Error; err == nil {
		return &role, nil
	}
	role = models.Role{Name: "staff", Description: "Default staff role"}
	if err := db.Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

type AuthHandler struct{ DB *gorm.DB }

func NewAuthHandler(db *gorm.DB) *AuthHandler { return &AuthHandler{DB: db} }

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/signup", h.signup)
	mux.HandleFunc("/login", h.login)
	mux.HandleFunc("/logout", h.logout)
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.Fail(w, http.StatusMethodNotAllowed, "method_not_allowed")
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		httpx.Fail(w, http.StatusBadRequest, "email_and_password_required")
		return
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	role, err := ensureDefaultRole(h.DB)
	if err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "could_not_ensure_role")
		return
	}
	user := models.User{Email: email, Password: string(hash), Name: strings.TrimSpace(req.Name), RoleID: role.ID}
	if err := h.DB.Create(&user).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "could_not_create_user")
		return
	}
	auth.CreateSession(w, user.ID)
	httpx.OK(w, http.StatusCreated, map[string]any{"id": user.ID})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.Fail(w, http.StatusMethodNotAllowed, "method_not_allowed")
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}
	lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		httpx.Fail(w, http.StatusBadRequest, "email_and_password_required")
		return
	}
	var user models.User
	if err := h.DB.Where("email = ?", email).First(&user).Error; err != nil {
		httpx.Fail(w, http.StatusUnauthorized, i18n.T(lang, "invalid_credentials"))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		httpx.Fail(w, http.StatusUnauthorized, i18n.T(lang, "invalid_credentials"))
		return
	}
	auth.CreateSession(w, user.ID)
	httpx.OK(w, http.StatusOK, map[string]any{"id": user.ID, "name": user.Name})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.Fail(w, http.StatusMethodNotAllowed, "method_not_allowed")
		return
	}
	auth.ClearSession(w)
	httpx.OK(w, http.StatusOK, nil)
}
