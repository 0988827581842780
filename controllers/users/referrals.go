package users

import (
	"log"
	"net/http"

	"github.com/GleritasToken/gleritas-token-manager/store"
	"github.com/GleritasToken/gleritas-token-manager/utils"
)

// GET /api/referrals
func ReferralListHandler(w http.ResponseWriter, r *http.Request) {
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

	referrals, err := store.GetReferralsByUser(r.Context(), uid)
	if err != nil {
		log.Printf("[referrals] list error: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	count, err := store.GetReferralCount(r.Context(), uid)
	if err != nil {
		log.Printf("[referrals] count error: %v", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	totalEarnings := 0
	for _, ref := range referrals {
		totalEarnings += ref.PointsEarned
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"referrals":     referrals,
		"referralCount": count,
		"referralCode":  user.ReferralCode,
		"totalEarnings": totalEarnings,
	})
}
