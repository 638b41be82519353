package service

import "time"

const (
	MaxFinanceAmount = 10_000_000.0 // sanity ceiling for any single deal
	MaxAnnualRate    = 12.0         // percent
	MinAnnualRate    = 2.5
	MaxTermMonths    = 120 // 10 game years
	MinTermMonths    = 1
	DefaultTerm      = 36 // substituted when the request carries a bad term

	// Credit score formula
	BaseCreditScore      = 575
	MaxAssetPoints       = 150.0
	AssetPointsMidpoint  = 500_000.0 // asset value earning half the asset points
	MaxDebtPenalty       = 120.0
	HistoryAdjustmentCap = 60

	// History deltas per payment event
	DeltaOnTime        = 2
	DeltaMissed        = -8
	DeltaDealCompleted = 15

	// Minimum credit score per financing category; land is the strictest
	MinScoreRepair  = 520
	MinScoreVehicle = 560
	MinScoreLand    = 640

	// Financing floors to keep micro-loans out of the system
	MinAmountRepair  = 1_000.0
	MinAmountVehicle = 5_000.0
	MinAmountLand    = 50_000.0

	// Base annual rates (percent) before credit adjustment
	BaseLandRate    = 4.5
	BaseVehicleRate = 6.5

	// Consecutive missed payments before a deal defaults
	DefaultMissedPayments = 3

	// Game time
	HoursPerMonth    = 720 // 30 game days
	OfferExpiryHours = 48

	// Each declined offer costs this share of the remaining search time
	DeclineLifetimePenalty = 0.20

	// Quick-sale value of a vehicle relative to depreciated store price
	VanillaSellFactor = 0.65

	LeaseResidualFloor = 0.10

	// Balance below this is treated as fully amortized
	BalanceTolerance = 0.01

	ScoreCacheTTL = 5 * time.Minute

	// Maximum term window a recommendation request may scan
	MaxTermRangeMonths = 120
)

// Multiplier tables indexed by credit tier (1..5).
var (
	interestAdjustmentByTier = [5]float64{-0.75, -0.25, 0.0, 1.0, 2.25}
	landAdjustmentPctByTier  = [5]float64{-5.0, -2.0, 0.0, 4.0, 8.0}
	depositMonthsByTier      = [5]int{0, 1, 2, 3, 4}
)
