package handlers

import (
	"net/http"

	"wastetrack-backend/internal/middleware"
	"wastetrack-backend/internal/models"
	"wastetrack-backend/internal/services"
	"wastetrack-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

func trainingDescription(m services.TrainingModule) string {
	return "Training completed: " + m.Title
}

// GetTrainingModules lists the modules with the caller's completion flags
// derived from the rewards ledger
func GetTrainingModules(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetUserFromContext(r)

		type moduleStatus struct {
			services.TrainingModule
			Completed bool `json:"completed"`
		}

		modules := services.TrainingModules()
		statuses := make([]moduleStatus, len(modules))
		for i, m := range modules {
			var count int
			err := db.Get(&count, `
				SELECT COUNT(*) FROM rewards
				WHERE user_id = ? AND reward_type = ? AND description = ?
			`, claims.UserID, models.RewardTraining, trainingDescription(m))
			if err != nil {
				utils.RespondError(w, http.StatusInternalServerError, "Database error")
				return
			}
			statuses[i] = moduleStatus{TrainingModule: m, Completed: count > 0}
		}

		utils.RespondJSON(w, http.StatusOK, statuses)
	}
}

// CompleteTrainingModule awards a module's points once per user. Finishing
// the last module flips the user's training_completed flag.
func CompleteTrainingModule(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetUserFromContext(r)

		moduleID := chi.URLParam(r, "id")
		module, ok := services.TrainingModuleByID(moduleID)
		if !ok {
			utils.RespondError(w, http.StatusNotFound, "Unknown training module")
			return
		}

		tx, err := db.Beginx()
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to begin transaction")
			return
		}
		defer tx.Rollback()

		var count int
		err = tx.Get(&count, `
			SELECT COUNT(*) FROM rewards
			WHERE user_id = ? AND reward_type = ? AND description = ?
		`, claims.UserID, models.RewardTraining, trainingDescription(module))
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if count > 0 {
			utils.RespondError(w, http.StatusConflict, "Module already completed")
			return
		}

		if err := services.AwardPoints(tx, claims.UserID, models.RewardTraining, module.Points, trainingDescription(module)); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to credit points")
			return
		}

		// Completing every module marks the citizen as trained
		var completed int
		err = tx.Get(&completed, `
			SELECT COUNT(DISTINCT description) FROM rewards
			WHERE user_id = ? AND reward_type = ?
		`, claims.UserID, models.RewardTraining)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if completed == len(services.TrainingModules()) {
			if _, err := tx.Exec("UPDATE users SET training_completed = 1 WHERE id = ?", claims.UserID); err != nil {
				utils.RespondError(w, http.StatusInternalServerError, "Database error")
				return
			}
		}

		if err := tx.Commit(); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to commit transaction")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":       true,
			"module":        module.Title,
			"points_earned": module.Points,
		})
	}
}
