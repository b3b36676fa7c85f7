package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"wastetrack-backend/internal/database"
	"wastetrack-backend/internal/middleware"
	"wastetrack-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// createTestUser inserts a user directly with a matching welcome ledger
// entry so the cached balance always folds from the ledger
func createTestUser(t *testing.T, db *sqlx.DB, username, role string, points int) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now().Unix()
	user := models.User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     username + "@example.com",
		Password:  string(hashed),
		FullName:  "Test " + username,
		Phone:     "9999999999",
		Address:   "12 Test Lane",
		Role:      role,
		Ward:      "Ward 1",
		WasteID:   newWasteID(),
		Points:    points,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = db.NamedExec(`
		INSERT INTO users (id, username, email, password, full_name, phone, address, role, ward, waste_id, points, created_at, updated_at)
		VALUES (:id, :username, :email, :password, :full_name, :phone, :address, :role, :ward, :waste_id, :points, :created_at, :updated_at)
	`, user)
	require.NoError(t, err)

	if points != 0 {
		_, err = db.Exec(`
			INSERT INTO rewards (user_id, reward_type, points, description, earned_at)
			VALUES (?, ?, ?, ?, ?)
		`, user.ID, models.RewardWelcomeBonus, points, "Welcome bonus", now)
		require.NoError(t, err)
	}

	return user
}

// authedRequest builds a request carrying the user's claims, skipping the
// token round trip
func authedRequest(t *testing.T, method, target string, body interface{}, user models.User) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	claims := middleware.UserClaims{UserID: user.ID, Username: user.Username, Role: user.Role}
	return req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, claims))
}

func userBalance(t *testing.T, db *sqlx.DB, userID string) int {
	t.Helper()
	var balance int
	require.NoError(t, db.Get(&balance, "SELECT points FROM users WHERE id = ?", userID))
	return balance
}

func ledgerSum(t *testing.T, db *sqlx.DB, userID string) int {
	t.Helper()
	var sum int
	require.NoError(t, db.Get(&sum, "SELECT COALESCE(SUM(points), 0) FROM rewards WHERE user_id = ?", userID))
	return sum
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
