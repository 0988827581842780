package utils

import "net/http"

type contextKey string

const UserIDKey = contextKey("userID")
const AdminIDKey = contextKey("adminID")
const RequestIDKey = contextKey("requestID")

// GetUserID returns the authenticated user id set by the auth middleware.
func GetUserID(r *http.Request) (uint, bool) {
	v := r.Context().Value(UserIDKey)
	id, ok := v.(uint)
	return id, ok
}

// GetAdminID returns the authenticated admin id set by the admin auth middleware.
func GetAdminID(r *http.Request) (uint, bool) {
	v := r.Context().Value(AdminIDKey)
	id, ok := v.(uint)
	return id, ok
}
