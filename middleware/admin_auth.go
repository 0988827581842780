package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/GleritasToken/gleritas-token-manager/store"
	"github.com/GleritasToken/gleritas-token-manager/utils"
)

// AdminAuthMiddleware resolves the adminSessionId cookie to an admin account.
// Admin sessions are real server-side tokens with enforced expiry, looked up
// the same way user sessions are.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(utils.AdminSessionCookie)
		if err != nil || cookie.Value == "" {
			utils.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		session, err := store.GetAdminSession(r.Context(), cookie.Value)
		if err != nil {
			utils.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if _, err := store.GetAdmin(r.Context(), session.AdminID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				utils.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		ctx := context.WithValue(r.Context(), utils.AdminIDKey, session.AdminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
