package server

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	"github.com/haneulsoft/agency-office/auth"
	"github.com/haneulsoft/agency-office/httpx"
	"github.com/haneulsoft/agency-office/internal/handlers"
	"github.com/haneulsoft/agency-office/internal/models"
	"github.com/haneulsoft/agency-office/internal/policy"
	"github.com/haneulsoft/agency-office/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// Configure a user verifier so RequireAuth can ensure the user still exists.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		// Perform a lightweight DB check (SELECT 1) – ignore detailed errors in body
		if err := db.Exec("SELECT 1").Error; err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			if _, werr := w.Write([]byte(`{"status":"degraded"}`)); werr != nil {
				_ = werr
			}
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter

	// Auth endpoints
	authHandler := handlers.NewAuthHandler(db)
	authHandler.Register(mux)

	protected := func(fn http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(fn))
	}
	// guarded adds a role check on top of authentication. Deletes and blog
	// authoring go through here; plain staff accounts are denied.
	guarded := func(resource string, action policy.Action, fn http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(policy.Guard(db, resource, action, fn)))
	}
	listCreate := func(list, create http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				list(w, r)
			case http.MethodPost:
				create(w, r)
			default:
				w.Header().Set("Allow", "GET,POST")
				httpx.Fail(w, http.StatusMethodNotAllowed, "method_not_allowed")
			}
		}
	}
	postOnly := func(fn http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				w.Header().Set("Allow", "POST")
				httpx.Fail(w, http.StatusMethodNotAllowed, "method_not_allowed")
				return
			}
			fn(w, r)
		}
	}

	// Lead pipeline. The application form endpoint is public: the marketing
	// site posts straight to it. Staff session only decides the created_by
	// stamp there.
	convSvc := services.NewConversionService(services.GormConversionStore{DB: db})
	lh := handlers.NewLeadHandler(db, convSvc)
	mux.Handle("/leads/apply", auth.Middleware(postOnly(lh.Apply)))
	mux.Handle("/leads", protected(listCreate(lh.List, lh.Apply)))
	mux.Handle("/leads/get", protected(lh.Get))
	mux.Handle("/leads/update", protected(postOnly(lh.Update)))
	mux.Handle("/leads/delete", guarded("leads", policy.ActionDelete, postOnly(lh.Delete)))
	mux.Handle("/leads/convert", protected(postOnly(lh.Convert)))

	// Clients
	ch := handlers.NewClientHandler(db)
	mux.Handle("/clients", protected(listCreate(ch.List, ch.Create)))
	mux.Handle("/clients/get", protected(ch.Get))
	mux.Handle("/clients/update", protected(postOnly(ch.Update)))
	mux.Handle("/clients/delete", guarded("clients", policy.ActionDelete, postOnly(ch.Delete)))

	// Projects
	ph := handlers.NewProjectHandler(db)
	mux.Handle("/projects", protected(listCreate(ph.List, ph.Create)))
	mux.Handle("/projects/get", protected(ph.Get))
	mux.Handle("/projects/update", protected(postOnly(ph.Update)))
	mux.Handle("/projects/delete", guarded("projects", policy.ActionDelete, postOnly(ph.Delete)))

	// Invoices
	invSvc := services.NewInvoiceService(db)
	ih := handlers.NewInvoiceHandler(db, invSvc)
	mux.Handle("/invoices", protected(listCreate(ih.List, ih.Create)))
	mux.Handle("/invoices/get", protected(ih.Get))
	mux.Handle("/invoices/update", protected(postOnly(ih.Update)))
	mux.Handle("/invoices/delete", guarded("invoices", policy.ActionDelete, postOnly(ih.Delete)))

	// Tickets
	th := handlers.NewTicketHandler(db)
	mux.Handle("/tickets", protected(listCreate(th.List, th.Create)))
	mux.Handle("/tickets/get", protected(th.Get))
	mux.Handle("/tickets/update", protected(postOnly(th.Update)))
	mux.Handle("/tickets/delete", guarded("tickets", policy.ActionDelete, postOnly(th.Delete)))

	// Meetings
	mh := handlers.NewMeetingHandler(db)
	mux.Handle("/meetings", protected(listCreate(mh.List, mh.Create)))
	mux.Handle("/meetings/get", protected(mh.Get))
	mux.Handle("/meetings/update", protected(postOnly(mh.Update)))
	mux.Handle("/meetings/delete", guarded("meetings", policy.ActionDelete, postOnly(mh.Delete)))

	// Feedback
	fh := handlers.NewFeedbackHandler(db)
	mux.Handle("/feedback", protected(listCreate(fh.List, fh.Create)))
	mux.Handle("/feedback/get", protected(fh.Get))
	mux.Handle("/feedback/update", protected(postOnly(fh.Update)))
	mux.Handle("/feedback/delete", guarded("feedback", policy.ActionDelete, postOnly(fh.Delete)))

	// Blog. Published posts are public reads; authoring is staff-only.
	bh := handlers.NewPostHandler(db)
	mux.HandleFunc("/posts", bh.ListPublished)
	mux.HandleFunc("/posts/get", bh.GetBySlug)
	mux.Handle("/admin/posts", guarded("posts", policy.ActionCreate, listCreate(bh.List, bh.Create)))
	mux.Handle("/admin/posts/update", guarded("posts", policy.ActionUpdate, postOnly(bh.Update)))
	mux.Handle("/admin/posts/delete", guarded("posts", policy.ActionDelete, postOnly(bh.Delete)))

	return withRecover(mux)
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.Fail(w, http.StatusInternalServerError, "internal_error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
