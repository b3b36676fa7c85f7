package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"wastetrack-backend/internal/models"
	"wastetrack-backend/internal/services"

	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, handler http.HandlerFunc, target string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestRegister_CreditsWelcomeBonus(t *testing.T) {
	db := setupTestDB(t)

	w := postJSON(t, Register(db), "/api/auth/register", map[string]string{
		"username":  "alice",
		"email":     "alice@example.com",
		"password":  "secret123",
		"full_name": "Alice Kumar",
		"ward":      "Ward 3",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, db.Get(&user, "SELECT * FROM users WHERE username = ?", "alice"))
	require.Equal(t, "citizen", user.Role)
	require.Equal(t, services.WelcomeBonusPoints, user.Points)
	require.Regexp(t, `^WG\d{4}[0-9A-F]{8}$`, user.WasteID)

	var reward models.Reward
	require.NoError(t, db.Get(&reward, "SELECT * FROM rewards WHERE user_id = ?", user.ID))
	require.Equal(t, models.RewardWelcomeBonus, reward.RewardType)
	require.Equal(t, services.WelcomeBonusPoints, reward.Points)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "bob", "citizen", 50)

	w := postJSON(t, Register(db), "/api/auth/register", map[string]string{
		"username":  "bob",
		"email":     "other@example.com",
		"password":  "secret123",
		"full_name": "Other Bob",
	})

	require.Equal(t, http.StatusConflict, w.Code)

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM users WHERE username = ?", "bob"))
	require.Equal(t, 1, count)
}

func TestLogin_Success(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "carol", "citizen", 50)

	w := postJSON(t, Login(db), "/api/auth/login", map[string]string{
		"username": "carol",
		"password": "password123",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.OK)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "carol", resp.User.Username)
}

func TestLogin_FailureResponsesAreIdentical(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "dave", "citizen", 50)

	wrongPassword := postJSON(t, Login(db), "/api/auth/login", map[string]string{
		"username": "dave",
		"password": "not-the-password",
	})
	unknownUser := postJSON(t, Login(db), "/api/auth/login", map[string]string{
		"username": "nobody",
		"password": "whatever",
	})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	require.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestIsUniqueViolation(t *testing.T) {
	db := setupTestDB(t)
	existing := createTestUser(t, db, "eve", "citizen", 0)

	// Same username slipped past the pre-check: the constraint error must
	// classify as a duplicate, everything else must not
	_, err := db.Exec(`
		INSERT INTO users (id, username, email, password, full_name, phone, address, role, ward, waste_id, points, created_at, updated_at)
		VALUES (?, ?, 'eve2@example.com', 'x', 'Eve Clone', '', '', 'citizen', 'Ward 1', ?, 0, 0, 0)
	`, existing.ID+"-clone", existing.Username, newWasteID())
	require.Error(t, err)
	require.True(t, isUniqueViolation(err))

	require.False(t, isUniqueViolation(sql.ErrNoRows))
	require.False(t, isUniqueViolation(nil))
}
