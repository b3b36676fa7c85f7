package services

import (
	"testing"
	"time"

	"wastetrack-backend/internal/database"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func setupPointsDB(t *testing.T) (*sqlx.DB, string) {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })

	userID := uuid.New().String()
	now := time.Now().Unix()
	_, err = db.Exec(`
		INSERT INTO users (id, username, email, password, full_name, phone, address, role, ward, waste_id, points, created_at, updated_at)
		VALUES (?, 'tester', 'tester@example.com', 'x', 'Test User', '', '', 'citizen', 'Ward 1', 'WG2026TESTID01', 0, ?, ?)
	`, userID, now, now)
	require.NoError(t, err)

	return db, userID
}

func award(t *testing.T, db *sqlx.DB, userID, rewardType string, points int, description string) {
	t.Helper()
	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, AwardPoints(tx, userID, rewardType, points, description))
	require.NoError(t, tx.Commit())
}

func TestAwardPoints_LedgerFoldsToBalance(t *testing.T) {
	db, userID := setupPointsDB(t)

	award(t, db, userID, "welcome_bonus", WelcomeBonusPoints, "Welcome bonus")
	award(t, db, userID, "collection", SegregatedCollectionPoints, "Collection scheduled (wet)")
	award(t, db, userID, "complaint", ComplaintReportPoints, "Complaint reported")
	award(t, db, userID, "redemption", -60, "Redeemed 1x Safety Gloves")

	balance, err := PointsBalance(db, userID)
	require.NoError(t, err)
	require.Equal(t, 5, balance)

	var ledgerSum int
	require.NoError(t, db.Get(&ledgerSum, "SELECT COALESCE(SUM(points), 0) FROM rewards WHERE user_id = ?", userID))
	require.Equal(t, balance, ledgerSum)
}

func TestAwardPoints_RollbackLeavesNothing(t *testing.T) {
	db, userID := setupPointsDB(t)

	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, AwardPoints(tx, userID, "collection", 10, "Collection scheduled (dry)"))
	require.NoError(t, tx.Rollback())

	balance, err := PointsBalance(db, userID)
	require.NoError(t, err)
	require.Equal(t, 0, balance)

	var entries int
	require.NoError(t, db.Get(&entries, "SELECT COUNT(*) FROM rewards WHERE user_id = ?", userID))
	require.Equal(t, 0, entries)
}

func TestCollectionPoints(t *testing.T) {
	require.Equal(t, SegregatedCollectionPoints, CollectionPoints(true))
	require.Equal(t, UnsegregatedCollectionPoints, CollectionPoints(false))
}
