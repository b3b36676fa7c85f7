package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"wastetrack-backend/internal/models"
	"wastetrack-backend/internal/websocket"
	"wastetrack-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var validVehicleStatuses = map[string]bool{
	models.VehicleIdle:        true,
	models.VehicleCollecting:  true,
	models.VehicleInTransit:   true,
	models.VehicleMaintenance: true,
}

// GetVehicles returns the fleet for the tracking map
func GetVehicles(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var vehicles []models.Vehicle
		err := db.Select(&vehicles, `
			SELECT id, vehicle_number, vehicle_type, capacity_tons, latitude, longitude,
			       driver_name, driver_phone, status, last_updated
			FROM vehicles
			ORDER BY vehicle_number ASC
		`)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch vehicles")
			return
		}

		responses := make([]models.VehicleResponse, len(vehicles))
		for i, v := range vehicles {
			responses[i] = v.ToVehicleResponse()
		}
		utils.RespondJSON(w, http.StatusOK, responses)
	}
}

// CreateVehicle adds a vehicle to the fleet
func CreateVehicle(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateVehicleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.VehicleNumber == "" || req.VehicleType == "" {
			utils.RespondError(w, http.StatusBadRequest, "Vehicle number and type are required")
			return
		}
		if req.CapacityTons <= 0 {
			utils.RespondError(w, http.StatusBadRequest, "Capacity must be positive")
			return
		}

		var exists int
		if err := db.Get(&exists, "SELECT COUNT(*) FROM vehicles WHERE vehicle_number = ?", req.VehicleNumber); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if exists > 0 {
			utils.RespondError(w, http.StatusConflict, "Vehicle with this number already exists")
			return
		}

		vehicle := models.Vehicle{
			ID:            uuid.New().String(),
			VehicleNumber: req.VehicleNumber,
			VehicleType:   req.VehicleType,
			CapacityTons:  req.CapacityTons,
			Latitude:      req.Latitude,
			Longitude:     req.Longitude,
			DriverName:    req.DriverName,
			DriverPhone:   req.DriverPhone,
			Status:        models.VehicleIdle,
			LastUpdated:   time.Now().Unix(),
		}

		_, err := db.NamedExec(`
			INSERT INTO vehicles (id, vehicle_number, vehicle_type, capacity_tons, latitude, longitude, driver_name, driver_phone, status, last_updated)
			VALUES (:id, :vehicle_number, :vehicle_type, :capacity_tons, :latitude, :longitude, :driver_name, :driver_phone, :status, :last_updated)
		`, vehicle)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create vehicle")
			return
		}

		utils.RespondJSON(w, http.StatusCreated, vehicle.ToVehicleResponse())
	}
}

// UpdateVehicleLocation moves a vehicle on the map and broadcasts the new
// position to every connected client
func UpdateVehicleLocation(db *sqlx.DB, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.RespondError(w, http.StatusBadRequest, "Vehicle id is required")
			return
		}

		var req models.UpdateVehicleLocationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if !validVehicleStatuses[req.Status] {
			utils.RespondError(w, http.StatusBadRequest, "Invalid vehicle status")
			return
		}

		var vehicle models.Vehicle
		err := db.Get(&vehicle, "SELECT * FROM vehicles WHERE id = ?", id)
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		now := time.Now().Unix()
		_, err = db.Exec(`
			UPDATE vehicles SET latitude = ?, longitude = ?, status = ?, last_updated = ? WHERE id = ?
		`, req.Latitude, req.Longitude, req.Status, now, id)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update vehicle")
			return
		}

		if hub != nil {
			hub.BroadcastToAll(map[string]interface{}{
				"type": "vehicle_location",
				"data": map[string]interface{}{
					"vehicle_id":     id,
					"vehicle_number": vehicle.VehicleNumber,
					"latitude":       req.Latitude,
					"longitude":      req.Longitude,
					"status":         req.Status,
					"updated_at":     now,
				},
			})
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":    true,
			"updated_at": now,
		})
	}
}
