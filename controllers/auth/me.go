package auth

import (
	"net/http"

	"github.com/GleritasToken/gleritas-token-manager/store"
	"github.com/GleritasToken/gleritas-token-manager/utils"
)

func MeHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	user, err := store.GetUser(r.Context(), uid)
	if err != nil {
		utils.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
