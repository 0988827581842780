package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/GleritasToken/gleritas-token-manager/middleware"
	"github.com/GleritasToken/gleritas-token-manager/store"
	"github.com/GleritasToken/gleritas-token-manager/utils"

	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,emailok"`
	Password string `json:"password" validate:"required,pwdmin"`
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	user, err := store.GetUserByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Printf("[login] lookup error: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if locked, retry := middleware.IsAccountLocked(user.ID); locked {
		w.Header().Set("Retry-After", retry.Round(1e9).String())
		utils.WriteMessage(w, http.StatusTooManyRequests, "Too many login attempts, try again later")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		middleware.RecordFailedLogin(user.ID)
		utils.WriteMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	middleware.ResetFailedLogin(user.ID)

	session, err := store.CreateSession(r.Context(), user.ID)
	if err != nil {
		log.Printf("[login] create session error: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.SetSessionCookie(w, utils.SessionCookie, session.Token, session.ExpiresAt)

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user":    user,
		"message": "Login successful",
	})
}
