package models

// Reward types recorded in the append-only ledger. Redemptions carry
// negative points; everything else is a credit.
const (
	RewardWelcomeBonus = "welcome_bonus"
	RewardCollection   = "collection"
	RewardComplaint    = "complaint"
	RewardTraining     = "training"
	RewardRedemption   = "redemption"
)

type Reward struct {
	ID          int    `json:"id" db:"id"`
	UserID      string `json:"user_id" db:"user_id"`
	RewardType  string `json:"reward_type" db:"reward_type"`
	Points      int    `json:"points" db:"points"`
	Description string `json:"description" db:"description"`
	EarnedAt    int64  `json:"earned_at" db:"earned_at"`
}
