package domain

import "time"

const (
	MinCreditScore     = 300
	MaxCreditScore     = 850
	NeutralCreditScore = 650
)

// CreditRating is the 4-band display rating shown to the player.
type CreditRating string

const (
	RatingExcellent CreditRating = "Excellent"
	RatingGood      CreditRating = "Good"
	RatingFair      CreditRating = "Fair"
	RatingPoor      CreditRating = "Poor"
)

// RatingForScore maps a score to its display rating and the 1..5 tier
// used by the interest/lease multiplier tables. Tier 5 has no display
// band of its own; it shows as Poor but prices worse.
func RatingForScore(score int) (CreditRating, int) {
	switch {
	case score >= 750:
		return RatingExcellent, 1
	case score >= 670:
		return RatingGood, 2
	case score >= 580:
		return RatingFair, 3
	case score >= 500:
		return RatingPoor, 4
	default:
		return RatingPoor, 5
	}
}

// CreditScoreRecord is a computed snapshot, never stored independently
// of the assets/debt/history it derives from.
type CreditScoreRecord struct {
	FarmID int          `json:"farm_id"`
	Score  int          `json:"score"`
	Rating CreditRating `json:"rating"`
	Tier   int          `json:"tier"`
}

// PaymentOutcome classifies a credit history entry.
type PaymentOutcome string

const (
	OutcomeOnTime        PaymentOutcome = "on_time"
	OutcomeMissed        PaymentOutcome = "missed"
	OutcomeDealCompleted PaymentOutcome = "deal_completed"
)

// CreditHistoryEntry is one append-only ledger row. Only the payment
// collection step of the finance manager writes these.
type CreditHistoryEntry struct {
	FarmID     int            `json:"farm_id"`
	Month      int            `json:"month"` // game month the entry was recorded
	RecordedAt time.Time      `json:"recorded_at"`
	Outcome    PaymentOutcome `json:"outcome"`
	ScoreDelta int            `json:"score_delta"`
}

// CreditHistorySummary aggregates a farm's entire payment ledger.
type CreditHistorySummary struct {
	NetChange      int `json:"net_change"`
	PaymentsOnTime int `json:"payments_on_time"`
	PaymentsMissed int `json:"payments_missed"`
	DealsCompleted int `json:"deals_completed"`
}

// EligibilityResult is the answer to "can this farm finance X".
type EligibilityResult struct {
	Eligible         bool   `json:"eligible"`
	MinScoreRequired int    `json:"min_score_required"`
	CurrentScore     int    `json:"current_score"`
	Message          string `json:"message"`
}
