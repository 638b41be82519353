package domain

// MoneyReason tags every farm money mutation so the host game can
// attribute transactions in its finance overview.
type MoneyReason string

const (
	ReasonDownPayment     MoneyReason = "down_payment"
	ReasonMonthlyPayment  MoneyReason = "monthly_payment"
	ReasonSecurityDeposit MoneyReason = "security_deposit"
	ReasonCashBack        MoneyReason = "cash_back"
	ReasonLoanPayout      MoneyReason = "loan_payout"
	ReasonSaleProceeds    MoneyReason = "sale_proceeds"
	ReasonEarlyPayoff     MoneyReason = "early_payoff"
)

// Vehicle is the slice of host-game vehicle state the engine cares about.
type Vehicle struct {
	ID         int
	Name       string
	StorePrice float64
	AgeMonths  int
	Condition  float64 // 0..1, 1 = factory new
}

// Farmland is the slice of host-game land state the engine cares about.
type Farmland struct {
	ID          int
	AreaHa      float64
	SoilQuality float64 // 0..1
	Price       float64
}

// Farm mirrors the host game's farm entity. The engine reads it for
// previews and mutates money only through typed transactions.
type Farm struct {
	ID       int
	Name     string
	Money    float64
	Loan     float64 // legacy lump-sum debt from the base game
	Vehicles []Vehicle
	Land     []Farmland
}

// AssetValue sums the current value of everything the farm owns.
func (f *Farm) AssetValue() float64 {
	total := 0.0
	for _, v := range f.Vehicles {
		total += v.StorePrice * v.Condition
	}
	for _, l := range f.Land {
		total += l.Price
	}
	return total
}
