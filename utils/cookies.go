package utils

import (
	"net/http"
	"os"
	"strings"
	"time"
)

// Cookie names shared between controllers and auth middleware.
const (
	SessionCookie      = "sessionId"
	AdminSessionCookie = "adminSessionId"
)

func secureCookies() bool {
	return strings.ToLower(os.Getenv("ENV")) != "development" && os.Getenv("ENV") != ""
}

// SetSessionCookie attaches an http-only session cookie. Secure is set
// outside development so the cookie survives plain-http local testing.
func SetSessionCookie(w http.ResponseWriter, name, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   secureCookies(),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the named cookie immediately.
func ClearSessionCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secureCookies(),
		SameSite: http.SameSiteLaxMode,
	})
}
