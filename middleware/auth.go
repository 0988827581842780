package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/GleritasToken/gleritas-token-manager/store"
	"github.com/GleritasToken/gleritas-token-manager/utils"
)

// AuthMiddleware resolves the sessionId cookie to a user and stores the user
// id in the request context. Missing, unknown and expired sessions all
// produce the same 401; storage failures never leak to the client.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(utils.SessionCookie)
		if err != nil || cookie.Value == "" {
			utils.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		session, err := store.GetSession(r.Context(), cookie.Value)
		if err != nil {
			utils.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		// the session may outlive the account (admin deletion)
		if _, err := store.GetUser(r.Context(), session.UserID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				utils.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserIDKey, session.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
