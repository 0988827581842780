package auth

import (
	"log"
	"net/http"

	"github.com/GleritasToken/gleritas-token-manager/store"
	"github.com/GleritasToken/gleritas-token-manager/utils"
)

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(utils.SessionCookie); err == nil && cookie.Value != "" {
		if err := store.DeleteSession(r.Context(), cookie.Value); err != nil {
			// the cookie is cleared regardless; the row lingers until expiry
			log.Printf("[logout] delete session error: %v", err)
		}
	}
	utils.ClearSessionCookie(w, utils.SessionCookie)
	utils.WriteMessage(w, http.StatusOK, "Logout successful")
}
