package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"wastetrack-backend/internal/middleware"
	"wastetrack-backend/internal/models"
	"wastetrack-backend/internal/services"
	"wastetrack-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CreateComplaint files a citizen complaint and credits the reporting
// bonus in the same transaction
func CreateComplaint(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetUserFromContext(r)

		var req models.CreateComplaintRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.ComplaintType == "" || req.Description == "" || req.Location == "" {
			utils.RespondError(w, http.StatusBadRequest, "Complaint type, description, and location are required")
			return
		}

		complaint := models.Complaint{
			ID:            uuid.New().String(),
			UserID:        claims.UserID,
			ComplaintType: req.ComplaintType,
			Description:   req.Description,
			Location:      req.Location,
			Latitude:      req.Latitude,
			Longitude:     req.Longitude,
			PhotoURL:      req.PhotoURL,
			Status:        models.ComplaintOpen,
			CreatedAt:     time.Now().Unix(),
		}

		tx, err := db.Beginx()
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to begin transaction")
			return
		}
		defer tx.Rollback()

		_, err = tx.NamedExec(`
			INSERT INTO complaints (id, user_id, complaint_type, description, location, latitude, longitude, photo_url, status, created_at)
			VALUES (:id, :user_id, :complaint_type, :description, :location, :latitude, :longitude, :photo_url, :status, :created_at)
		`, complaint)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to file complaint")
			return
		}

		if err := services.AwardPoints(tx, claims.UserID, models.RewardComplaint, services.ComplaintReportPoints, "Complaint reported"); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to credit points")
			return
		}

		if err := tx.Commit(); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to commit transaction")
			return
		}

		utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
			"success":       true,
			"complaint":     complaint,
			"points_earned": services.ComplaintReportPoints,
		})
	}
}

// GetMyComplaints returns the caller's complaints, newest first
func GetMyComplaints(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetUserFromContext(r)

		var complaints []models.Complaint
		err := db.Select(&complaints, `
			SELECT * FROM complaints WHERE user_id = ? ORDER BY created_at DESC
		`, claims.UserID)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch complaints")
			return
		}

		utils.RespondJSON(w, http.StatusOK, complaints)
	}
}

// GetAllComplaints lists every complaint for workers and admins
func GetAllComplaints(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := "SELECT * FROM complaints"
		args := []interface{}{}

		if status := r.URL.Query().Get("status"); status != "" {
			query += " WHERE status = ?"
			args = append(args, status)
		}
		query += " ORDER BY created_at DESC"

		var complaints []models.Complaint
		if err := db.Select(&complaints, query, args...); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch complaints")
			return
		}

		utils.RespondJSON(w, http.StatusOK, complaints)
	}
}

// ResolveComplaint closes an open complaint
func ResolveComplaint(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetUserFromContext(r)

		id := chi.URLParam(r, "id")
		if id == "" {
			utils.RespondError(w, http.StatusBadRequest, "Complaint id is required")
			return
		}

		var existing models.Complaint
		err := db.Get(&existing, "SELECT * FROM complaints WHERE id = ?", id)
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, "Complaint not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		if existing.Status == models.ComplaintResolved {
			utils.RespondError(w, http.StatusConflict, "Complaint is already resolved")
			return
		}

		now := time.Now().Unix()
		_, err = db.Exec(`
			UPDATE complaints SET status = ?, resolved_at = ?, resolved_by = ? WHERE id = ?
		`, models.ComplaintResolved, now, claims.UserID, id)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to resolve complaint")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":     true,
			"status":      models.ComplaintResolved,
			"resolved_at": now,
		})
	}
}
