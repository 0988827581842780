package admins

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/GleritasToken/gleritas-token-manager/store"
	"github.com/GleritasToken/gleritas-token-manager/utils"

	"github.com/gorilla/mux"
)

// GET /api/admin/users
func UserListHandler(w http.ResponseWriter, r *http.Request) {
	users, err := store.GetAllUsers(r.Context())
	if err != nil {
		log.Printf("[admin users] list error: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	// password hashes never serialize (json:"-"); nothing else to strip
	utils.WriteJSON(w, http.StatusOK, users)
}

// DELETE /api/admin/users/{id}
func DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := store.DeleteUser(r.Context(), uint(id)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("[admin users] delete error: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.WriteMessage(w, http.StatusOK, "User deleted successfully")
}
