package domain

// AgentTier is the broker category a seller hires. Better agents find
// buyers faster and closer to the asking range, but take a larger cut.
type AgentTier struct {
	Name            string  `json:"name"`
	FeePercent      float64 `json:"fee_percent"`
	BaseSuccessRate float64 `json:"base_success_rate"` // per game hour while searching
	DurationHours   int     `json:"duration_hours"`
}

// PriceTier is the asking-price strategy for a listing.
type PriceTier struct {
	Name            string  `json:"name"`
	SuccessModifier float64 `json:"success_modifier"`
	MinMultiplier   float64 `json:"min_multiplier"`
	MaxMultiplier   float64 `json:"max_multiplier"`
}

var AgentTiers = []AgentTier{
	{Name: "Private", FeePercent: 2, BaseSuccessRate: 0.005, DurationHours: 720},
	{Name: "Local", FeePercent: 4, BaseSuccessRate: 0.010, DurationHours: 480},
	{Name: "Regional", FeePercent: 6, BaseSuccessRate: 0.015, DurationHours: 360},
	{Name: "National", FeePercent: 8, BaseSuccessRate: 0.025, DurationHours: 240},
}

var PriceTiers = []PriceTier{
	{Name: "Quick", SuccessModifier: 0.50, MinMultiplier: 0.70, MaxMultiplier: 0.85},
	{Name: "Market", SuccessModifier: 0.00, MinMultiplier: 0.85, MaxMultiplier: 1.05},
	{Name: "Premium", SuccessModifier: -0.35, MinMultiplier: 1.05, MaxMultiplier: 1.30},
}

// AgentTierByName looks up an agent tier; ok is false for unknown names.
func AgentTierByName(name string) (AgentTier, bool) {
	for _, t := range AgentTiers {
		if t.Name == name {
			return t, true
		}
	}
	return AgentTier{}, false
}

// PriceTierByName looks up a price tier; ok is false for unknown names.
func PriceTierByName(name string) (PriceTier, bool) {
	for _, t := range PriceTiers {
		if t.Name == name {
			return t, true
		}
	}
	return PriceTier{}, false
}

type ListingStatus string

const (
	ListingActive       ListingStatus = "active"
	ListingOfferPending ListingStatus = "offer_pending"
	ListingSold         ListingStatus = "sold"
	ListingExpired      ListingStatus = "expired"
)

// VehicleSaleListing is one vehicle placed with a sale agent. Status
// only moves forward, except offer_pending falling back to active when
// the player declines.
type VehicleSaleListing struct {
	ID                string        `json:"id"`
	FarmID            int           `json:"farm_id"`
	VehicleID         int           `json:"vehicle_id"`
	VehicleName       string        `json:"vehicle_name"`
	Agent             AgentTier     `json:"agent"`
	Pricing           PriceTier     `json:"pricing"`
	VanillaSellPrice  float64       `json:"vanilla_sell_price"`
	ExpectedMinPrice  float64       `json:"expected_min_price"`
	ExpectedMaxPrice  float64       `json:"expected_max_price"`
	Status            ListingStatus `json:"status"`
	CurrentOffer      float64       `json:"current_offer"`
	OfferExpiresIn    int           `json:"offer_expires_in"` // game hours
	HoursElapsed      int           `json:"hours_elapsed"`
	HoursRemaining    int           `json:"hours_remaining"`
	OffersReceived    int           `json:"offers_received"`
	OffersDeclined    int           `json:"offers_declined"`
	LastProcessedHour int           `json:"-"`
}

// SaleOutcome reports what an accepted offer paid out.
type SaleOutcome struct {
	ListingID  string  `json:"listing_id"`
	SalePrice  float64 `json:"sale_price"`
	AgentFee   float64 `json:"agent_fee"`
	NetPayout  float64 `json:"net_payout"`
	FeePercent float64 `json:"fee_percent"`
}
