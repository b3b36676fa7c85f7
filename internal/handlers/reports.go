package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"wastetrack-backend/internal/models"
	"wastetrack-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// parseReportRange reads optional ?start= and ?end= RFC3339 bounds,
// defaulting to the last 30 days
func parseReportRange(r *http.Request) (int64, int64, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -30)

	if s := r.URL.Query().Get("start"); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid start date: %w", err)
		}
		start = parsed
	}
	if s := r.URL.Query().Get("end"); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid end date: %w", err)
		}
		end = parsed
	}
	if end.Before(start) {
		return 0, 0, fmt.Errorf("end date before start date")
	}

	return start.Unix(), end.Unix(), nil
}

// GetCollectionReport aggregates collections over a date range for the
// admin reports screen
func GetCollectionReport(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startUnix, endUnix, err := parseReportRange(r)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		type totals struct {
			TotalCollections int     `db:"total_collections"`
			TotalWeightKg    float64 `db:"total_weight_kg"`
			SegregatedCount  int     `db:"segregated_count"`
		}
		var t totals
		err = db.Get(&t, `
			SELECT
				COUNT(*) AS total_collections,
				COALESCE(SUM(weight_kg), 0) AS total_weight_kg,
				COALESCE(SUM(segregated), 0) AS segregated_count
			FROM collections
			WHERE collection_date BETWEEN ? AND ?
		`, startUnix, endUnix)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch report totals")
			return
		}

		segregationRate := 0.0
		if t.TotalCollections > 0 {
			segregationRate = float64(t.SegregatedCount) * 100.0 / float64(t.TotalCollections)
		}

		type typeBreakdown struct {
			WasteType     string  `json:"waste_type" db:"waste_type"`
			Collections   int     `json:"collections" db:"collections"`
			TotalWeightKg float64 `json:"total_weight_kg" db:"total_weight_kg"`
		}
		var byType []typeBreakdown
		err = db.Select(&byType, `
			SELECT waste_type, COUNT(*) AS collections, COALESCE(SUM(weight_kg), 0) AS total_weight_kg
			FROM collections
			WHERE collection_date BETWEEN ? AND ?
			GROUP BY waste_type
			ORDER BY total_weight_kg DESC
		`, startUnix, endUnix)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch type breakdown")
			return
		}

		type wardBreakdown struct {
			Ward          string  `json:"ward" db:"ward"`
			Collections   int     `json:"collections" db:"collections"`
			TotalWeightKg float64 `json:"total_weight_kg" db:"total_weight_kg"`
		}
		var byWard []wardBreakdown
		err = db.Select(&byWard, `
			SELECT u.ward, COUNT(*) AS collections, COALESCE(SUM(c.weight_kg), 0) AS total_weight_kg
			FROM collections c
			JOIN users u ON c.user_id = u.id
			WHERE c.collection_date BETWEEN ? AND ?
			GROUP BY u.ward
			ORDER BY total_weight_kg DESC
		`, startUnix, endUnix)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch ward breakdown")
			return
		}

		type dayBreakdown struct {
			Day           string  `json:"day" db:"day"`
			Collections   int     `json:"collections" db:"collections"`
			TotalWeightKg float64 `json:"total_weight_kg" db:"total_weight_kg"`
		}
		var byDay []dayBreakdown
		err = db.Select(&byDay, `
			SELECT date(collection_date, 'unixepoch') AS day,
			       COUNT(*) AS collections,
			       COALESCE(SUM(weight_kg), 0) AS total_weight_kg
			FROM collections
			WHERE collection_date BETWEEN ? AND ?
			GROUP BY day
			ORDER BY day
		`, startUnix, endUnix)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch daily breakdown")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"start":             time.Unix(startUnix, 0).UTC().Format(time.RFC3339),
			"end":               time.Unix(endUnix, 0).UTC().Format(time.RFC3339),
			"total_collections": t.TotalCollections,
			"total_weight_kg":   t.TotalWeightKg,
			"segregated_count":  t.SegregatedCount,
			"segregation_rate":  segregationRate,
			"by_type":           byType,
			"by_ward":           byWard,
			"by_day":            byDay,
		})
	}
}

// ExportCollectionsCSV streams the raw collection rows for a date range
// as a CSV download
func ExportCollectionsCSV(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startUnix, endUnix, err := parseReportRange(r)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		type exportRow struct {
			models.Collection
			Username string `db:"username"`
			Ward     string `db:"ward"`
		}
		var rows []exportRow
		err = db.Select(&rows, `
			SELECT c.*, u.username, u.ward
			FROM collections c
			JOIN users u ON c.user_id = u.id
			WHERE c.collection_date BETWEEN ? AND ?
			ORDER BY c.collection_date
		`, startUnix, endUnix)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch collections")
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="collections.csv"`)

		cw := csv.NewWriter(w)
		defer cw.Flush()

		cw.Write([]string{"id", "username", "ward", "waste_type", "weight_kg", "segregated", "status", "collection_date", "collected_by", "vehicle_number"})
		for _, row := range rows {
			collectedBy := ""
			if row.CollectedBy != nil {
				collectedBy = *row.CollectedBy
			}
			vehicle := ""
			if row.VehicleNumber != nil {
				vehicle = *row.VehicleNumber
			}
			cw.Write([]string{
				row.ID,
				row.Username,
				row.Ward,
				row.WasteType,
				strconv.FormatFloat(row.WeightKg, 'f', 2, 64),
				strconv.FormatBool(row.Segregated),
				row.Status,
				time.Unix(row.CollectionDate, 0).UTC().Format(time.RFC3339),
				collectedBy,
				vehicle,
			})
		}
	}
}
