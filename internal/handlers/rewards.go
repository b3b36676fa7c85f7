package handlers

import (
	"net/http"

	"wastetrack-backend/internal/middleware"
	"wastetrack-backend/internal/models"
	"wastetrack-backend/internal/services"
	"wastetrack-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// GetRewardHistory returns the caller's ledger, newest first, with the
// cached balance alongside
func GetRewardHistory(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetUserFromContext(r)

		var rewards []models.Reward
		err := db.Select(&rewards, `
			SELECT id, user_id, reward_type, points, description, earned_at
			FROM rewards
			WHERE user_id = ?
			ORDER BY earned_at DESC, id DESC
		`, claims.UserID)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch rewards")
			return
		}

		balance, err := services.PointsBalance(db, claims.UserID)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch balance")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"balance": balance,
			"rewards": rewards,
		})
	}
}
