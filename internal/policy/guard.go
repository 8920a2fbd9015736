package policy

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/haneulsoft/agency-office/auth"
	"github.com/haneulsoft/agency-office/httpx"
	"github.com/haneulsoft/agency-office/internal/models"
)

// Guard wraps a handler with a role check. The request must already carry an
// authenticated user in context (RequireAuth runs before this), so a missing
// role here means a broken account and is treated as forbidden.
func Guard(db *gorm.DB, resource string, action Action, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			httpx.Fail(w, http.StatusForbidden, "forbidden")
			return
		}
		role, err := roleName(db, uid)
		if err != nil || !Allow(role, resource, action) {
			httpx.Fail(w, http.StatusForbidden, "forbidden")
			return
		}
		next(w, r)
	})
}

func roleName(db *gorm.DB, uid uint) (string, error) {
	var user models.User
	if err := db.Preload("Role").First(&user, uid).Error; err != nil {
		return "", err
	}
	return user.Role.Name, nil
}
