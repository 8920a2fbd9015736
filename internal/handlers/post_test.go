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
)

func setupPostTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Post{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestPostPublishFlow(t *testing.T) {
	db := setupPostTestDB(t)
	h := NewPostHandler(db)

	body := `{"slug":"hello-world","title":"첫 글","content":"본문입니다.","excerpt":"요약"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/posts", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	id := int(created["id"].(float64))

	// Draft is invisible publicly.
	pubReq := httptest.NewRequest(http.MethodGet, "/posts/get?slug=hello-world", nil)
	pubW := httptest.NewRecorder()
	h.GetBySlug(pubW, pubReq)
	if pubW.Code != http.StatusNotFound {
		t.Fatalf("draft must be hidden, got %d", pubW.Code)
	}

	// Publish stamps published_at.
	updReq := httptest.NewRequest(http.MethodPost, "/admin/posts/update?id="+strconv.Itoa(id), strings.NewReader(`{"published":true}`))
	updW := httptest.NewRecorder()
	h.Update(updW, updReq)
	if updW.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", updW.Code)
	}
	var post models.Post
	db.First(&post, id)
	if !post.Published || post.PublishedAt == nil {
		t.Fatalf("expected published with stamp: %+v", post)
	}

	// Now public.
	pubW = httptest.NewRecorder()
	h.GetBySlug(pubW, httptest.NewRequest(http.MethodGet, "/posts/get?slug=hello-world", nil))
	if pubW.Code != http.StatusOK {
		t.Fatalf("published post must be visible, got %d", pubW.Code)
	}
}

func TestPostCreateRejectsBadSlug(t *testing.T) {
	db := setupPostTestDB(t)
	h := NewPostHandler(db)

	body := `{"slug":"Hello World!","title":"제목"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/posts", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestPostListPublishedFiltersDrafts(t *testing.T) {
	db := setupPostTestDB(t)
	h := NewPostHandler(db)

	db.Create(&models.Post{Slug: "draft-post", Title: "초안"})
	published := models.Post{Slug: "live-post", Title: "공개 글", Published: true}
	db.Create(&published)

	w := httptest.NewRecorder()
	h.ListPublished(w, httptest.NewRequest(http.MethodGet, "/posts", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var resp struct {
		Items []models.Post `json:"items"`
		Total int64         `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 || len(resp.Items) != 1 || resp.Items[0].Slug != "live-post" {
		t.Fatalf("unexpected public list: %+v", resp)
	}
}
