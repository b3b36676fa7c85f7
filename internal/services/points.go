package services

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Point awards are fixed amounts, mirroring the municipal reward schedule.
const (
	WelcomeBonusPoints           = 50
	SegregatedCollectionPoints   = 10
	UnsegregatedCollectionPoints = 5
	ComplaintReportPoints        = 5
)

// CollectionPoints returns the credit for a scheduled collection.
func CollectionPoints(segregated bool) int {
	if segregated {
		return SegregatedCollectionPoints
	}
	return UnsegregatedCollectionPoints
}

// AwardPoints appends a ledger entry and moves the user's cached balance by
// the same amount. Both writes happen on the caller's transaction: the
// cached balance is never recomputed from the ledger, so they must commit
// or roll back together. Points may be negative (redemptions).
func AwardPoints(tx *sqlx.Tx, userID, rewardType string, points int, description string) error {
	now := time.Now().Unix()

	_, err := tx.Exec(`
		INSERT INTO rewards (user_id, reward_type, points, description, earned_at)
		VALUES (?, ?, ?, ?, ?)
	`, userID, rewardType, points, description, now)
	if err != nil {
		return fmt.Errorf("failed to append reward ledger entry: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE users SET points = points + ?, updated_at = ? WHERE id = ?
	`, points, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update points balance: %w", err)
	}

	return nil
}

// PointsBalance returns the cached balance for a user.
func PointsBalance(db *sqlx.DB, userID string) (int, error) {
	var balance int
	if err := db.Get(&balance, "SELECT points FROM users WHERE id = ?", userID); err != nil {
		return 0, err
	}
	return balance, nil
}
