package routes

import (
	"net/http"
	"time"

	"github.com/GleritasToken/gleritas-token-manager/controllers/admins"
	"github.com/GleritasToken/gleritas-token-manager/middleware"

	"github.com/gorilla/mux"
)

func SetAdminRoutes(api *mux.Router) {
	// Rate limiter for admin login: 5 attempts per IP per minute
	adminLoginLimiter := middleware.NewIPRateLimiter(5, time.Minute)

	api.Handle("/admin/login", adminLoginLimiter.Middleware(http.HandlerFunc(admins.LoginHandler))).Methods(http.MethodPost)

	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.AdminAuthMiddleware)

	adminRouter.Handle("/logout", http.HandlerFunc(admins.LogoutHandler)).Methods(http.MethodPost)
	adminRouter.Handle("/me", http.HandlerFunc(admins.MeHandler)).Methods(http.MethodGet)

	// User management
	adminRouter.Handle("/users", http.HandlerFunc(admins.UserListHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/users/{id:[0-9]+}", http.HandlerFunc(admins.DeleteUserHandler)).Methods(http.MethodDelete)

	// Task management
	adminRouter.Handle("/tasks", http.HandlerFunc(admins.TaskListHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/tasks", http.HandlerFunc(admins.CreateTaskHandler)).Methods(http.MethodPost)
	adminRouter.Handle("/tasks/{id:[0-9]+}", http.HandlerFunc(admins.UpdateTaskHandler)).Methods(http.MethodPut)
	adminRouter.Handle("/tasks/{id:[0-9]+}", http.HandlerFunc(admins.DeleteTaskHandler)).Methods(http.MethodDelete)
}
