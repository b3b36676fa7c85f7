package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"wastetrack-backend/internal/models"

	"github.com/stretchr/testify/require"
)

// Walks a citizen through register, schedule, redeem and checks that the
// ledger folds to the cached balance at every step.
func TestCitizenJourney(t *testing.T) {
	db := setupTestDB(t)

	w := postJSON(t, Register(db), "/api/auth/register", map[string]string{
		"username":  "alice",
		"email":     "alice@example.com",
		"password":  "secret123",
		"full_name": "Alice Kumar",
		"ward":      "Ward 2",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var alice models.User
	require.NoError(t, db.Get(&alice, "SELECT * FROM users WHERE username = ?", "alice"))
	require.Equal(t, 50, userBalance(t, db, alice.ID))

	req := authedRequest(t, http.MethodPost, "/api/collections", map[string]interface{}{
		"waste_type": "wet",
		"weight_kg":  4.2,
		"segregated": true,
	}, alice)
	rec := httptest.NewRecorder()
	ScheduleCollection(db)(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, 60, userBalance(t, db, alice.ID))

	req = authedRequest(t, http.MethodPost, "/api/shop/redeem", map[string]interface{}{
		"item_id": "safety-gloves",
	}, alice)
	rec = httptest.NewRecorder()
	RedeemItem(db)(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 0, userBalance(t, db, alice.ID))

	require.Equal(t, userBalance(t, db, alice.ID), ledgerSum(t, db, alice.ID))

	var entries int
	require.NoError(t, db.Get(&entries, "SELECT COUNT(*) FROM rewards WHERE user_id = ?", alice.ID))
	require.Equal(t, 3, entries)
}
