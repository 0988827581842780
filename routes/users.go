package routes

import (
	"net/http"
	"time"

	"github.com/GleritasToken/gleritas-token-manager/controllers/auth"
	"github.com/GleritasToken/gleritas-token-manager/controllers/users"
	"github.com/GleritasToken/gleritas-token-manager/middleware"

	"github.com/gorilla/mux"
)

// UsersRoutes registers the public auth endpoints and the session-guarded
// user endpoints on the given subrouter.
func UsersRoutes(api *mux.Router) {
	// signup/login share one limiter so credential stuffing can't rotate endpoints
	authLimiter := middleware.NewIPRateLimiter(30, 5*time.Minute)

	api.Handle("/auth/signup", authLimiter.Middleware(http.HandlerFunc(auth.SignupHandler))).Methods(http.MethodPost)
	api.Handle("/auth/login", authLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)
	api.Handle("/auth/logout", middleware.AuthMiddleware(http.HandlerFunc(auth.LogoutHandler))).Methods(http.MethodPost)
	api.Handle("/auth/me", middleware.AuthMiddleware(http.HandlerFunc(auth.MeHandler))).Methods(http.MethodGet)

	api.Handle("/user/connect-wallet", middleware.AuthMiddleware(http.HandlerFunc(users.ConnectWalletHandler))).Methods(http.MethodPost)

	api.Handle("/tasks", middleware.AuthMiddleware(http.HandlerFunc(users.TaskListHandler))).Methods(http.MethodGet)
	api.Handle("/tasks/{taskId:[0-9]+}/complete", middleware.AuthMiddleware(http.HandlerFunc(users.CompleteTaskHandler))).Methods(http.MethodPost)

	api.Handle("/referrals", middleware.AuthMiddleware(http.HandlerFunc(users.ReferralListHandler))).Methods(http.MethodGet)
}
