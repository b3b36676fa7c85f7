package handlers

import (
	"net/http"
	"strconv"

	"wastetrack-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// GetWardPerformance ranks wards by collection activity so the admin
// dashboard can surface which neighbourhoods segregate best
func GetWardPerformance(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metric := r.URL.Query().Get("metric") // segregation_rate, weight, collections
		limitStr := r.URL.Query().Get("limit")

		if metric == "" {
			metric = "segregation_rate"
		}

		limit := 20
		if limitStr != "" {
			if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
				limit = parsed
			}
		}

		type WardPerformance struct {
			Ward             string  `json:"ward" db:"ward"`
			Citizens         int     `json:"citizens" db:"citizens"`
			TotalCollections int     `json:"total_collections" db:"total_collections"`
			TotalWeightKg    float64 `json:"total_weight_kg" db:"total_weight_kg"`
			SegregatedCount  int     `json:"segregated_count" db:"segregated_count"`
			SegregationRate  float64 `json:"segregation_rate" db:"segregation_rate"`
			OpenComplaints   int     `json:"open_complaints" db:"open_complaints"`
		}

		var orderBy string
		switch metric {
		case "segregation_rate":
			orderBy = "segregation_rate DESC, total_collections DESC"
		case "weight":
			orderBy = "total_weight_kg DESC"
		case "collections":
			orderBy = "total_collections DESC"
		default:
			utils.RespondError(w, http.StatusBadRequest, "Invalid metric. Use: segregation_rate, weight, collections")
			return
		}

		query := `
			SELECT
				u.ward,
				COUNT(DISTINCT u.id) AS citizens,
				COUNT(c.id) AS total_collections,
				COALESCE(SUM(c.weight_kg), 0) AS total_weight_kg,
				COALESCE(SUM(c.segregated), 0) AS segregated_count,
				ROUND(
					COALESCE(SUM(c.segregated), 0) * 100.0 / MAX(COUNT(c.id), 1),
					2
				) AS segregation_rate,
				(SELECT COUNT(*) FROM complaints cm
				 JOIN users cu ON cm.user_id = cu.id
				 WHERE cu.ward = u.ward AND cm.status = 'open') AS open_complaints
			FROM users u
			LEFT JOIN collections c ON c.user_id = u.id
			WHERE u.role = 'citizen' AND u.ward != ''
			GROUP BY u.ward
			ORDER BY ` + orderBy + `
			LIMIT ?
		`

		var results []WardPerformance
		if err := db.Select(&results, query, limit); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch ward performance")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"metric": metric,
			"limit":  limit,
			"wards":  results,
		})
	}
}
