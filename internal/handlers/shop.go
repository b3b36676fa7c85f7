package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"wastetrack-backend/internal/middleware"
	"wastetrack-backend/internal/models"
	"wastetrack-backend/internal/services"
	"wastetrack-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

type RedeemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// GetShopItems returns the eco-shop catalog, optionally filtered by
// category
func GetShopItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		utils.RespondJSON(w, http.StatusOK, services.ShopItems(category))
	}
}

// RedeemItem exchanges points for a shop item. The balance check, the
// debit, and the ledger entry happen inside one transaction; an
// insufficient balance leaves both untouched.
func RedeemItem(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetUserFromContext(r)

		var req RedeemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Quantity == 0 {
			req.Quantity = 1
		}
		if req.Quantity < 1 || req.Quantity > 5 {
			utils.RespondError(w, http.StatusBadRequest, "Quantity must be between 1 and 5")
			return
		}

		item, ok := services.ShopItemByID(req.ItemID)
		if !ok {
			utils.RespondError(w, http.StatusNotFound, "Unknown shop item")
			return
		}
		if req.Quantity > item.Stock {
			utils.RespondError(w, http.StatusConflict, "Not enough stock")
			return
		}

		totalCost := item.Points * req.Quantity

		tx, err := db.Beginx()
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to begin transaction")
			return
		}
		defer tx.Rollback()

		var balance int
		if err := tx.Get(&balance, "SELECT points FROM users WHERE id = ?", claims.UserID); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		if balance < totalCost {
			utils.RespondError(w, http.StatusConflict, "Insufficient points")
			return
		}

		description := fmt.Sprintf("Redeemed %dx %s", req.Quantity, item.Name)
		if err := services.AwardPoints(tx, claims.UserID, models.RewardRedemption, -totalCost, description); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to redeem item")
			return
		}

		if err := tx.Commit(); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to commit transaction")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":      true,
			"item":         item.Name,
			"quantity":     req.Quantity,
			"points_spent": totalCost,
			"balance":      balance - totalCost,
		})
	}
}
