package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"wastetrack-backend/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestCreateComplaint_CreditsReportingBonus(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice", "citizen", 50)

	req := authedRequest(t, http.MethodPost, "/api/complaints", map[string]interface{}{
		"complaint_type": "missed_collection",
		"description":    "Truck skipped our street on Tuesday",
		"location":       "Green Park, Block C",
	}, user)
	w := httptest.NewRecorder()
	CreateComplaint(db)(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 55, userBalance(t, db, user.ID))
	require.Equal(t, 55, ledgerSum(t, db, user.ID))

	var complaint models.Complaint
	require.NoError(t, db.Get(&complaint, "SELECT * FROM complaints WHERE user_id = ?", user.ID))
	require.Equal(t, models.ComplaintOpen, complaint.Status)
}

func TestCreateComplaint_MissingFields(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bob", "citizen", 50)

	req := authedRequest(t, http.MethodPost, "/api/complaints", map[string]interface{}{
		"complaint_type": "overflowing_bin",
	}, user)
	w := httptest.NewRecorder()
	CreateComplaint(db)(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 50, userBalance(t, db, user.ID))
}

func TestResolveComplaint_OnlyOnce(t *testing.T) {
	db := setupTestDB(t)
	citizen := createTestUser(t, db, "carol", "citizen", 50)
	admin := createTestUser(t, db, "admin", "admin", 0)

	req := authedRequest(t, http.MethodPost, "/api/complaints", map[string]interface{}{
		"complaint_type": "illegal_dumping",
		"description":    "Construction debris dumped by the canal",
		"location":       "Canal Road",
	}, citizen)
	w := httptest.NewRecorder()
	CreateComplaint(db)(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var complaintID string
	require.NoError(t, db.Get(&complaintID, "SELECT id FROM complaints WHERE user_id = ?", citizen.ID))

	router := chi.NewRouter()
	router.Patch("/api/complaints/{id}/resolve", ResolveComplaint(db))

	req = authedRequest(t, http.MethodPatch, "/api/complaints/"+complaintID+"/resolve", nil, admin)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resolved models.Complaint
	require.NoError(t, db.Get(&resolved, "SELECT * FROM complaints WHERE id = ?", complaintID))
	require.Equal(t, models.ComplaintResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)
	require.Equal(t, admin.ID, *resolved.ResolvedBy)

	// Second resolve attempt conflicts
	req = authedRequest(t, http.MethodPatch, "/api/complaints/"+complaintID+"/resolve", nil, admin)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusConflict, w.Code)
}
