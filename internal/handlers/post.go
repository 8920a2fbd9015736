package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/haneulsoft/agency-office/auth"
	"github.com/haneulsoft/agency-office/httpx"
	"github.com/haneulsoft/agency-office/internal/models"
	"github.com/haneulsoft/agency-office/validation"
)

// PostHandler is the blog/CMS surface. Listing published posts is public;
// everything else sits behind staff auth.
type PostHandler struct{ DB *gorm.DB }

func NewPostHandler(db *gorm.DB) *PostHandler { return &PostHandler{DB: db} }

var slugPattern = regexp.MustCompile(`^[a-z0-9가-힣]+(?:-[a-z0-9가-힣]+)*$`)

// ListPublished: GET /posts — the marketing site reads from here.
func (h *PostHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r, 20, 100)
	dbq := h.DB.Model(&models.Post{}).Where("published = ?", true)
	var total int64
	dbq.Count(&total)
	var posts []models.Post
	if err := dbq.Order("published_at desc").Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "failed_to_list_posts")
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"items": posts, "total": total, "limit": limit, "offset": offset})
}

// List: GET /admin/posts — drafts included.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r, 20, 100)
	dbq := h.DB.Model(&models.Post{})
	var total int64
	dbq.Count(&total)
	var posts []models.Post
	if err := dbq.Order("id desc").Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "failed_to_list_posts")
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"items": posts, "total": total, "limit": limit, "offset": offset})
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Slug    string `json:"slug"`
		Title   string `json:"title"`
		Content string `json:"content"`
		Excerpt string `json:"excerpt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}
	req.Slug = strings.TrimSpace(strings.ToLower(req.Slug))
	v := make(validation.Violations)
	validation.Required("title", req.Title, v)
	if req.Slug == "" || !slugPattern.MatchString(req.Slug) {
		v["slug"] = "invalid_slug"
	}
	if !v.Empty() {
		httpx.FailFields(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	post := models.Post{
		Slug:     req.Slug,
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		AuthorID: auth.CurrentUserID(r.Context()),
	}
	if err := h.DB.Create(&post).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OK(w, http.StatusCreated, map[string]any{"id": post.ID, "slug": post.Slug})
}

// GetBySlug: GET /posts/get?slug=... — public, published posts only.
func (h *PostHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(r.URL.Query().Get("slug"))
	if slug == "" {
		httpx.Fail(w, http.StatusBadRequest, "missing_slug")
		return
	}
	var post models.Post
	err := h.DB.Where("slug = ? AND published = ?", slug, true).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(w, http.StatusNotFound, "post_not_found")
			return
		}
		httpx.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"post": post})
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	var upd models.PostUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid_json")
		return
	}
	// Publishing manually stamps published_at unless the caller set one.
	if upd.Published != nil && *upd.Published && upd.PublishedAt == nil {
		now := time.Now()
		upd.PublishedAt = &now
	}
	changes := upd.Changes()
	if len(changes) == 0 {
		httpx.Fail(w, http.StatusBadRequest, "no_fields")
		return
	}
	res := h.DB.Model(&models.Post{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		httpx.Fail(w, http.StatusInternalServerError, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		httpx.Fail(w, http.StatusNotFound, "post_not_found")
		return
	}
	httpx.OK(w, http.StatusOK, nil)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(r)
	if !ok {
		httpx.Fail(w, http.StatusBadRequest, "invalid_id")
		return
	}
	res := h.DB.Delete(&models.Post{}, id)
	if res.Error != nil {
		httpx.Fail(w, http.StatusInternalServerError, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		httpx.Fail(w, http.StatusNotFound, "post_not_found")
		return
	}
	httpx.OK(w, http.StatusOK, nil)
}
