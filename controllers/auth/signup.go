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

type SignupRequest struct {
	Username   string `json:"username" validate:"required,nameok"`
	Email      string `json:"email" validate:"required,emailok"`
	Password   string `json:"password" validate:"required,pwdmin"`
	ReferredBy string `json:"referredBy"`
}

// SignupHandler registers a user, links the referral when the submitted code
// resolves (an unknown code is kept on the user but silently ignored), opens
// a session and sets the session cookie.
func SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.ReferredBy = strings.TrimSpace(req.ReferredBy)

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[signup] bcrypt error: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var referredBy *string
	if req.ReferredBy != "" {
		referredBy = &req.ReferredBy
	}

	user, err := store.CreateUser(r.Context(), req.Username, req.Email, string(hashed), referredBy)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			utils.WriteMessage(w, http.StatusBadRequest, "User already exists")
		case errors.Is(err, store.ErrDuplicateUsername):
			utils.WriteMessage(w, http.StatusBadRequest, "Username already taken")
		default:
			log.Printf("[signup] create user error: %v", err)
			utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	if req.ReferredBy != "" {
		referrer, err := store.GetUserByReferralCode(r.Context(), req.ReferredBy)
		if err == nil && referrer.ID != user.ID {
			if _, err := store.CreateReferral(r.Context(), referrer.ID, user.ID, store.ReferralBonus); err != nil {
				// the new account is fine either way; just record the failure
				log.Printf("[signup] referral credit failed for code %s: %v", req.ReferredBy, err)
			}
		}
	}

	session, err := store.CreateSession(r.Context(), user.ID)
	if err != nil {
		log.Printf("[signup] create session error: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.SetSessionCookie(w, utils.SessionCookie, session.Token, session.ExpiresAt)

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user":    user,
		"message": "Registration successful",
	})
}
