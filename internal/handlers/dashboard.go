package handlers

import (
	"net/http"

	"wastetrack-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// GetDashboardStats returns the headline numbers for the admin landing
// page in a single response
func GetDashboardStats(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type stats struct {
			TotalCitizens    int     `json:"total_citizens" db:"total_citizens"`
			TrainedCitizens  int     `json:"trained_citizens" db:"trained_citizens"`
			TotalCollections int     `json:"total_collections" db:"total_collections"`
			TotalWeightKg    float64 `json:"total_weight_kg" db:"total_weight_kg"`
			SegregatedCount  int     `json:"segregated_count" db:"segregated_count"`
			OpenComplaints   int     `json:"open_complaints" db:"open_complaints"`
			Facilities       int     `json:"facilities" db:"facilities"`
			ActiveVehicles   int     `json:"active_vehicles" db:"active_vehicles"`
		}

		var s stats
		err := db.Get(&s, `
			SELECT
				(SELECT COUNT(*) FROM users WHERE role = 'citizen') AS total_citizens,
				(SELECT COUNT(*) FROM users WHERE role = 'citizen' AND training_completed = 1) AS trained_citizens,
				(SELECT COUNT(*) FROM collections) AS total_collections,
				(SELECT COALESCE(SUM(weight_kg), 0) FROM collections) AS total_weight_kg,
				(SELECT COALESCE(SUM(segregated), 0) FROM collections) AS segregated_count,
				(SELECT COUNT(*) FROM complaints WHERE status = 'open') AS open_complaints,
				(SELECT COUNT(*) FROM facilities) AS facilities,
				(SELECT COUNT(*) FROM vehicles WHERE status != 'maintenance') AS active_vehicles
		`)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
			return
		}

		segregationRate := 0.0
		if s.TotalCollections > 0 {
			segregationRate = float64(s.SegregatedCount) * 100.0 / float64(s.TotalCollections)
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"total_citizens":    s.TotalCitizens,
			"trained_citizens":  s.TrainedCitizens,
			"total_collections": s.TotalCollections,
			"total_weight_kg":   s.TotalWeightKg,
			"segregated_count":  s.SegregatedCount,
			"segregation_rate":  segregationRate,
			"open_complaints":   s.OpenComplaints,
			"facilities":        s.Facilities,
			"active_vehicles":   s.ActiveVehicles,
		})
	}
}
