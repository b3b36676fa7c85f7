package handlers

import (
	"encoding/json"
	"net/http"

	"wastetrack-backend/internal/models"
	"wastetrack-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func validFacilityType(t string) bool {
	for _, ft := range models.FacilityTypes {
		if ft == t {
			return true
		}
	}
	return false
}

// GetFacilities returns all processing facilities for the map view
func GetFacilities(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var facilities []models.Facility
		err := db.Select(&facilities, `
			SELECT id, name, facility_type, address, latitude, longitude,
			       capacity_tpd, contact_number, operational_hours
			FROM facilities
			ORDER BY name ASC
		`)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch facilities")
			return
		}

		utils.RespondJSON(w, http.StatusOK, facilities)
	}
}

// CreateFacility registers a new processing facility
func CreateFacility(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateFacilityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Name == "" || req.Address == "" {
			utils.RespondError(w, http.StatusBadRequest, "Name and address are required")
			return
		}
		if !validFacilityType(req.FacilityType) {
			utils.RespondError(w, http.StatusBadRequest, "Invalid facility type")
			return
		}
		if req.CapacityTpd <= 0 {
			utils.RespondError(w, http.StatusBadRequest, "Capacity must be positive")
			return
		}

		facility := models.Facility{
			ID:               uuid.New().String(),
			Name:             req.Name,
			FacilityType:     req.FacilityType,
			Address:          req.Address,
			Latitude:         req.Latitude,
			Longitude:        req.Longitude,
			CapacityTpd:      req.CapacityTpd,
			ContactNumber:    req.ContactNumber,
			OperationalHours: req.OperationalHours,
		}

		_, err := db.NamedExec(`
			INSERT INTO facilities (id, name, facility_type, address, latitude, longitude, capacity_tpd, contact_number, operational_hours)
			VALUES (:id, :name, :facility_type, :address, :latitude, :longitude, :capacity_tpd, :contact_number, :operational_hours)
		`, facility)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create facility")
			return
		}

		utils.RespondJSON(w, http.StatusCreated, facility)
	}
}
