package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"wastetrack-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func trainingRouter(db *sqlx.DB) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/training/modules", GetTrainingModules(db))
	r.Post("/api/training/modules/{id}/complete", CompleteTrainingModule(db))
	return r
}

func TestCompleteTrainingModule_CreditsOnce(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice", "citizen", 50)
	router := trainingRouter(db)

	req := authedRequest(t, http.MethodPost, "/api/training/modules/waste-classification/complete", nil, user)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 100, userBalance(t, db, user.ID))

	// Repeating the same module is rejected and credits nothing
	req = authedRequest(t, http.MethodPost, "/api/training/modules/waste-classification/complete", nil, user)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, 100, userBalance(t, db, user.ID))
	require.Equal(t, 100, ledgerSum(t, db, user.ID))
}

func TestCompleteTrainingModule_UnknownModule(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bob", "citizen", 50)
	router := trainingRouter(db)

	req := authedRequest(t, http.MethodPost, "/api/training/modules/underwater-basket-weaving/complete", nil, user)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompleteAllModules_MarksTrained(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "carol", "citizen", 50)
	router := trainingRouter(db)

	expected := 50
	for _, m := range services.TrainingModules() {
		req := authedRequest(t, http.MethodPost, "/api/training/modules/"+m.ID+"/complete", nil, user)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		expected += m.Points
	}

	require.Equal(t, expected, userBalance(t, db, user.ID))

	var trained bool
	require.NoError(t, db.Get(&trained, "SELECT training_completed FROM users WHERE id = ?", user.ID))
	require.True(t, trained)

	// Completion flags reflect the ledger
	req := authedRequest(t, http.MethodGet, "/api/training/modules", nil, user)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), `"completed":false`)
}
