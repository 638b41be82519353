package domain

// DealType identifies what kind of obligation a deal is. The numeric
// values are part of the host-game event payload and must not change.
type DealType int

const (
	DealTypeVehicle  DealType = 1
	DealTypeLease    DealType = 2
	DealTypeCashLoan DealType = 3 // repair and workshop financing
	DealTypeLand     DealType = 4
)

// FinanceCategory is the eligibility bucket used by credit gates and
// minimum-amount checks.
type FinanceCategory string

const (
	CategoryVehicle FinanceCategory = "VEHICLE_FINANCE"
	CategoryRepair  FinanceCategory = "REPAIR_FINANCE"
	CategoryLand    FinanceCategory = "LAND_FINANCE"
)

// Category maps a deal type onto its eligibility bucket.
func (t DealType) Category() FinanceCategory {
	switch t {
	case DealTypeLand:
		return CategoryLand
	case DealTypeCashLoan:
		return CategoryRepair
	default:
		return CategoryVehicle
	}
}

type DealStatus string

const (
	DealActive    DealStatus = "active"
	DealPaidOff   DealStatus = "paid_off"
	DealDefaulted DealStatus = "defaulted"
)

// FinanceDeal is one financing obligation. Deals are never deleted;
// terminated deals stay around for lifetime statistics.
type FinanceDeal struct {
	ID                 string     `json:"id"`
	FarmID             int        `json:"farm_id"`
	DealType           DealType   `json:"deal_type"`
	ItemType           string     `json:"item_type"`
	ItemID             int        `json:"item_id"`
	ItemName           string     `json:"item_name"`
	Price              float64    `json:"price"`
	DownPayment        float64    `json:"down_payment"`
	TermMonths         int        `json:"term_months"`
	AnnualRate         float64    `json:"annual_rate"` // percent
	CashBack           float64    `json:"cash_back"`
	MonthlyPayment     float64    `json:"monthly_payment"`
	AmountFinanced     float64    `json:"amount_financed"`
	CurrentBalance     float64    `json:"current_balance"`
	TotalInterestPaid  float64    `json:"total_interest_paid"`
	ResidualValue      float64    `json:"residual_value"` // lease buyout, zero otherwise
	Status             DealStatus `json:"status"`
	MonthsElapsed      int        `json:"months_elapsed"`
	MissedInARow       int        `json:"-"`
	LastProcessedMonth int        `json:"-"`
}

// FarmFinanceStats aggregates a farm's deals for the dashboard.
type FarmFinanceStats struct {
	ActiveDeals        int     `json:"active_deals"`
	CompletedDeals     int     `json:"completed_deals"`
	DefaultedDeals     int     `json:"defaulted_deals"`
	MonthlyObligation  float64 `json:"monthly_obligation"`
	TotalFinanced      float64 `json:"total_financed"`
	TotalInterestPaid  float64 `json:"total_interest_paid"`
	OutstandingBalance float64 `json:"outstanding_balance"`
}

// FinanceRequest is the wire payload the GUI sends to open a deal.
type FinanceRequest struct {
	FarmID      int      `json:"farm_id"`
	DealType    DealType `json:"deal_type"`
	ItemType    string   `json:"item_type"`
	ItemID      int      `json:"item_id"`
	ItemName    string   `json:"item_name"`
	BasePrice   float64  `json:"base_price"`
	DownPayment float64  `json:"down_payment"`
	TermMonths  int      `json:"term_months"`
	CashBack    float64  `json:"cash_back"`
}

// PaymentQuote is the output of the amortization preview.
type PaymentQuote struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
	TotalInterest  float64 `json:"total_interest"`
}

// LandPriceQuote is the credit-adjusted land price preview.
type LandPriceQuote struct {
	AdjustedPrice     float64 `json:"adjusted_price"`
	AdjustmentAmount  float64 `json:"adjustment_amount"`
	AdjustmentPercent float64 `json:"adjustment_percent"`
	TierName          string  `json:"tier_name"`
}

// DepositQuote is the lease security-deposit preview.
type DepositQuote struct {
	DepositAmount float64 `json:"deposit_amount"`
	DepositMonths int     `json:"deposit_months"`
	TierName      string  `json:"tier_name"`
}

// FinancePreview bundles everything a finance dialog shows live while
// the player drags sliders. Producing one must have no side effects.
type FinancePreview struct {
	Quote          PaymentQuote      `json:"quote"`
	AnnualRate     float64           `json:"annual_rate"`
	AmountFinanced float64           `json:"amount_financed"`
	LandPrice      *LandPriceQuote   `json:"land_price,omitempty"`
	Deposit        *DepositQuote     `json:"deposit,omitempty"`
	ResidualValue  float64           `json:"residual_value,omitempty"`
	Eligibility    EligibilityResult `json:"eligibility"`
}
