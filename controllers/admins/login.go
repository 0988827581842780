package admins

import (
	"errors"
	"log"
	"net/http"

	"github.com/GleritasToken/gleritas-token-manager/middleware"
	"github.com/GleritasToken/gleritas-token-manager/store"
	"github.com/GleritasToken/gleritas-token-manager/utils"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginHandler authenticates the administrator and issues a server-side
// admin session token; the cookie never carries the admin id itself.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	admin, err := store.GetAdminByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Printf("[admin login] lookup error: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !admin.ValidatePassword(req.Password) {
		utils.WriteMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	session, err := store.CreateAdminSession(r.Context(), admin.ID)
	if err != nil {
		log.Printf("[admin login] create session error: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.SetSessionCookie(w, utils.AdminSessionCookie, session.Token, session.ExpiresAt)

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"admin":   map[string]interface{}{"id": admin.ID, "username": admin.Username},
		"message": "Admin login successful",
	})
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(utils.AdminSessionCookie); err == nil && cookie.Value != "" {
		if err := store.DeleteAdminSession(r.Context(), cookie.Value); err != nil {
			log.Printf("[admin logout] delete session error: %v", err)
		}
	}
	utils.ClearSessionCookie(w, utils.AdminSessionCookie)
	utils.WriteMessage(w, http.StatusOK, "Admin logout successful")
}

func MeHandler(w http.ResponseWriter, r *http.Request) {
	aid, ok := utils.GetAdminID(r)
	if !ok || aid == 0 {
		utils.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	admin, err := store.GetAdmin(r.Context(), aid)
	if err != nil {
		utils.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"admin": map[string]interface{}{"id": admin.ID, "username": admin.Username},
	})
}
