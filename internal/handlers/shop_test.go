package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"wastetrack-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestRedeemItem_DebitsBalanceAndLedger(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice", "citizen", 500)

	req := authedRequest(t, http.MethodPost, "/api/shop/redeem", map[string]interface{}{
		"item_id":  "eco-bags",
		"quantity": 2,
	}, user)
	w := httptest.NewRecorder()
	RedeemItem(db)(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON(t, w)
	require.Equal(t, float64(200), resp["points_spent"])
	require.Equal(t, float64(300), resp["balance"])

	require.Equal(t, 300, userBalance(t, db, user.ID))
	require.Equal(t, 300, ledgerSum(t, db, user.ID))

	var entry models.Reward
	require.NoError(t, db.Get(&entry, "SELECT * FROM rewards WHERE user_id = ? AND reward_type = ?", user.ID, models.RewardRedemption))
	require.Equal(t, -200, entry.Points)
}

func TestRedeemItem_InsufficientPoints(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bob", "citizen", 50)

	req := authedRequest(t, http.MethodPost, "/api/shop/redeem", map[string]interface{}{
		"item_id": "solar-bin",
	}, user)
	w := httptest.NewRecorder()
	RedeemItem(db)(w, req)

	require.Equal(t, http.StatusConflict, w.Code)

	// A failed redemption leaves both the balance and the ledger untouched
	require.Equal(t, 50, userBalance(t, db, user.ID))

	var redemptions int
	require.NoError(t, db.Get(&redemptions, "SELECT COUNT(*) FROM rewards WHERE user_id = ? AND reward_type = ?", user.ID, models.RewardRedemption))
	require.Equal(t, 0, redemptions)
}

func TestRedeemItem_UnknownItem(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "carol", "citizen", 500)

	req := authedRequest(t, http.MethodPost, "/api/shop/redeem", map[string]interface{}{
		"item_id": "jetpack",
	}, user)
	w := httptest.NewRecorder()
	RedeemItem(db)(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, 500, userBalance(t, db, user.ID))
}

func TestGetShopItems_CategoryFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/shop/items?category=Safety", nil)
	w := httptest.NewRecorder()
	GetShopItems()(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "safety-gloves")
	require.NotContains(t, w.Body.String(), "compost-kit")
}
