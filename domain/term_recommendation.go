package domain

// TermRecommendationInput asks the engine to scan financing terms for
// an item and pick the best fit for the player's budget.
type TermRecommendationInput struct {
	FarmID            int      `json:"farm_id"`
	DealType          DealType `json:"deal_type"`
	Amount            float64  `json:"amount"`
	DownPayment       float64  `json:"down_payment"`
	MinTermMonths     int      `json:"min_term_months"`
	MaxTermMonths     int      `json:"max_term_months"`
	MaxMonthlyPayment float64  `json:"max_monthly_payment"`
	Preference        string   `json:"preference"` // "minimize_interest", "minimize_payment", "balanced"
}

type TermRecommendation struct {
	TermMonths     int     `json:"term_months"`
	AnnualRate     float64 `json:"annual_rate"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalInterest  float64 `json:"total_interest"`
	Score          float64 `json:"score"`
	Reason         string  `json:"reason"`
}

type TermRecommendationResult struct {
	RecommendedTerm int                  `json:"recommended_term"`
	Recommendations []TermRecommendation `json:"recommendations"`
}
