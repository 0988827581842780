package users

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/GleritasToken/gleritas-token-manager/middleware"
	"github.com/GleritasToken/gleritas-token-manager/store"
	"github.com/GleritasToken/gleritas-token-manager/utils"
)

type ConnectWalletRequest struct {
	WalletAddress string `json:"walletAddress" validate:"required,wallet42"`
}

// ConnectWalletHandler stores the wallet address on the account. The address
// is a format-checked string only; nothing touches a chain.
func ConnectWalletHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ConnectWalletRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	user, err := store.ConnectWallet(r.Context(), uid, strings.TrimSpace(req.WalletAddress))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidWallet):
			utils.WriteMessage(w, http.StatusBadRequest, "Invalid wallet address")
		case errors.Is(err, store.ErrNotFound):
			utils.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		default:
			log.Printf("[wallet] connect error: %v", err)
			utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user":    user,
		"message": "Wallet connected successfully",
	})
}
