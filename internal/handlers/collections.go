package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"wastetrack-backend/internal/middleware"
	"wastetrack-backend/internal/models"
	"wastetrack-backend/internal/services"
	"wastetrack-backend/internal/websocket"
	"wastetrack-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func validWasteType(t string) bool {
	for _, wt := range models.WasteTypes {
		if wt == t {
			return true
		}
	}
	return false
}

// ScheduleCollection books a pickup and credits segregation points. The
// collection row, the ledger entry, and the balance move commit in one
// transaction so the cached balance cannot drift from the ledger.
func ScheduleCollection(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetUserFromContext(r)

		var req models.ScheduleCollectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if !validWasteType(req.WasteType) {
			utils.RespondError(w, http.StatusBadRequest, "Waste type must be one of: "+strings.Join(models.WasteTypes, ", "))
			return
		}
		if req.WeightKg <= 0 || req.WeightKg > 100 {
			utils.RespondError(w, http.StatusBadRequest, "Weight must be between 0 and 100 kg")
			return
		}

		collectionDate := time.Now()
		if req.CollectionDateIso != "" {
			parsed, err := time.Parse(time.RFC3339, req.CollectionDateIso)
			if err != nil {
				utils.RespondError(w, http.StatusBadRequest, "collectionDateIso must be RFC3339")
				return
			}
			collectionDate = parsed
		}

		now := time.Now().Unix()
		collection := models.Collection{
			ID:             uuid.New().String(),
			UserID:         claims.UserID,
			CollectionDate: collectionDate.Unix(),
			WasteType:      req.WasteType,
			WeightKg:       req.WeightKg,
			Segregated:     req.Segregated,
			Status:         models.CollectionScheduled,
			Latitude:       req.Latitude,
			Longitude:      req.Longitude,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		tx, err := db.Beginx()
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to begin transaction")
			return
		}
		defer tx.Rollback()

		_, err = tx.NamedExec(`
			INSERT INTO collections (id, user_id, collection_date, waste_type, weight_kg, segregated, status, latitude, longitude, created_at, updated_at)
			VALUES (:id, :user_id, :collection_date, :waste_type, :weight_kg, :segregated, :status, :latitude, :longitude, :created_at, :updated_at)
		`, collection)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to schedule collection")
			return
		}

		pointsEarned := services.CollectionPoints(req.Segregated)
		if err := services.AwardPoints(tx, claims.UserID, models.RewardCollection, pointsEarned, "Collection scheduled ("+req.WasteType+")"); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to credit points")
			return
		}

		if err := tx.Commit(); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to commit transaction")
			return
		}

		utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
			"success":       true,
			"collection":    collection.ToCollectionResponse(),
			"points_earned": pointsEarned,
		})
	}
}

// GetMyCollections returns the caller's collections, newest first
func GetMyCollections(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetUserFromContext(r)

		query := `
			SELECT id, user_id, collection_date, waste_type, weight_kg, segregated,
			       collected_by, vehicle_number, status, latitude, longitude,
			       created_at, updated_at
			FROM collections
			WHERE user_id = ?
		`
		args := []interface{}{claims.UserID}

		if status := r.URL.Query().Get("status"); status != "" {
			query += " AND status = ?"
			args = append(args, status)
		}
		query += " ORDER BY collection_date DESC"

		var collections []models.Collection
		if err := db.Select(&collections, query, args...); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch collections")
			return
		}

		responses := make([]models.CollectionResponse, len(collections))
		for i, c := range collections {
			responses[i] = c.ToCollectionResponse()
		}
		utils.RespondJSON(w, http.StatusOK, responses)
	}
}

// GetMyCollectionSummary aggregates the caller's collection history for
// the track-waste view
func GetMyCollectionSummary(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetUserFromContext(r)

		var summary struct {
			TotalCollections int     `json:"total_collections" db:"total_collections"`
			TotalWeightKg    float64 `json:"total_weight_kg" db:"total_weight_kg"`
			SegregatedCount  int     `json:"segregated_count" db:"segregated_count"`
		}
		err := db.Get(&summary, `
			SELECT COUNT(*) AS total_collections,
			       COALESCE(SUM(weight_kg), 0) AS total_weight_kg,
			       COALESCE(SUM(segregated), 0) AS segregated_count
			FROM collections
			WHERE user_id = ?
		`, claims.UserID)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch summary")
			return
		}

		balance, err := services.PointsBalance(db, claims.UserID)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch balance")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"total_collections": summary.TotalCollections,
			"total_weight_kg":   summary.TotalWeightKg,
			"segregated_count":  summary.SegregatedCount,
			"points":            balance,
		})
	}
}

// GetTodayCollections lists today's pickups joined with citizen contact
// details for the worker round sheet
func GetTodayCollections(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Unix()
		dayEnd := dayStart + 24*60*60

		var collections []models.WorkerCollection
		err := db.Select(&collections, `
			SELECT c.id, c.user_id, c.collection_date, c.waste_type, c.weight_kg,
			       c.segregated, c.collected_by, c.vehicle_number, c.status,
			       c.latitude, c.longitude, c.created_at, c.updated_at,
			       u.full_name, u.address, u.phone, u.ward
			FROM collections c
			JOIN users u ON c.user_id = u.id
			WHERE c.collection_date >= ? AND c.collection_date < ?
			ORDER BY c.collection_date ASC
		`, dayStart, dayEnd)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch collections")
			return
		}

		utils.RespondJSON(w, http.StatusOK, collections)
	}
}

// nextStatus holds the only legal transition out of each state
var nextStatus = map[string]string{
	models.CollectionScheduled: models.CollectionCollected,
	models.CollectionCollected: models.CollectionProcessed,
}

// UpdateCollectionStatus advances a pickup through its lifecycle.
// Transitions are forward-only: scheduled -> collected -> processed.
func UpdateCollectionStatus(db *sqlx.DB, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetUserFromContext(r)

		id := chi.URLParam(r, "id")
		if id == "" {
			utils.RespondError(w, http.StatusBadRequest, "Collection id is required")
			return
		}

		var req models.UpdateCollectionStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		var existing models.Collection
		err := db.Get(&existing, "SELECT * FROM collections WHERE id = ?", id)
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, "Collection not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		if nextStatus[existing.Status] != req.Status {
			utils.RespondError(w, http.StatusConflict, "Cannot move collection from "+existing.Status+" to "+req.Status)
			return
		}

		now := time.Now().Unix()
		if req.Status == models.CollectionCollected {
			if req.VehicleNumber == "" {
				utils.RespondError(w, http.StatusBadRequest, "Vehicle number is required when marking collected")
				return
			}
			_, err = db.Exec(`
				UPDATE collections
				SET status = ?, collected_by = ?, vehicle_number = ?, updated_at = ?
				WHERE id = ?
			`, req.Status, claims.Username, req.VehicleNumber, now, id)
		} else {
			_, err = db.Exec(`
				UPDATE collections SET status = ?, updated_at = ? WHERE id = ?
			`, req.Status, now, id)
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update collection")
			return
		}

		// Let the citizen know their pickup moved along
		if hub != nil {
			hub.BroadcastToUser(existing.UserID, map[string]interface{}{
				"type": "collection_update",
				"data": map[string]interface{}{
					"collection_id": id,
					"status":        req.Status,
					"updated_at":    now,
				},
			})
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"status":  req.Status,
		})
	}
}
