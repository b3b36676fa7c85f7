package handlers

import (
	"net/http"
	"strconv"

	"wastetrack-backend/internal/middleware"
	"wastetrack-backend/internal/models"
	"wastetrack-backend/internal/services"
	"wastetrack-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// GetProfile returns the authenticated user's own record
func GetProfile(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetUserFromContext(r)

		var user models.User
		if err := db.Get(&user, "SELECT * FROM users WHERE id = ?", claims.UserID); err != nil {
			utils.RespondError(w, http.StatusNotFound, "User not found")
			return
		}

		utils.RespondJSON(w, http.StatusOK, user.ToUserResponse())
	}
}

// GetWasteIDCard renders the user's waste ID as a PNG QR code
func GetWasteIDCard(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetUserFromContext(r)

		var wasteID string
		if err := db.Get(&wasteID, "SELECT waste_id FROM users WHERE id = ?", claims.UserID); err != nil {
			utils.RespondError(w, http.StatusNotFound, "User not found")
			return
		}

		size := 256
		if s := r.URL.Query().Get("size"); s != "" {
			if parsed, err := strconv.Atoi(s); err == nil && parsed >= 64 && parsed <= 1024 {
				size = parsed
			}
		}

		png, err := services.WasteIDQRCode(wasteID, size)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to generate QR code")
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	}
}
