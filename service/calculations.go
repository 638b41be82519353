package service

import (
	"math"

	"farm-finance/domain"
)

// roundTo2Decimals rounds a float64 to cents.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// CalculateMonthlyPayment amortizes a principal over termMonths at the
// given annual percentage rate. A zero rate is exact division; a zero
// or negative term means the full amount is due immediately.
func CalculateMonthlyPayment(principal float64, annualRate float64, termMonths int) domain.PaymentQuote {
	if principal <= 0 {
		return domain.PaymentQuote{}
	}
	if termMonths <= 0 {
		return domain.PaymentQuote{
			MonthlyPayment: roundTo2Decimals(principal),
			TotalPayment:   roundTo2Decimals(principal),
			TotalInterest:  0,
		}
	}

	var monthly float64
	if annualRate == 0 {
		monthly = principal / float64(termMonths)
	} else {
		monthlyRate := (annualRate / 100) / 12
		n := float64(termMonths)
		monthly = principal * (monthlyRate / (1 - math.Pow(1+monthlyRate, -n)))
	}

	total := monthly * float64(termMonths)
	interest := total - principal
	if interest < 0 {
		interest = 0
	}

	return domain.PaymentQuote{
		MonthlyPayment: roundTo2Decimals(monthly),
		TotalPayment:   roundTo2Decimals(total),
		TotalInterest:  roundTo2Decimals(interest),
	}
}

// CreditInterestAdjustment returns the rate delta (in percent points)
// a credit score earns. Non-increasing in score: excellent credit gets
// a discount, weak credit a surcharge.
func CreditInterestAdjustment(score int) float64 {
	_, tier := domain.RatingForScore(score)
	return interestAdjustmentByTier[tier-1]
}

// CalculateLandInterestRate prices land financing: base land rate plus
// the credit adjustment, a term-length penalty above five years, and a
// discount for larger down payments. Clamped to [MinAnnualRate, MaxAnnualRate].
func CalculateLandInterestRate(creditScore int, termYears int, downPaymentPercent float64) float64 {
	rate := BaseLandRate
	rate += CreditInterestAdjustment(creditScore)
	rate += float64(termYears-5) * 0.10
	rate -= downPaymentPercent * 0.02

	return roundTo2Decimals(clampRate(rate))
}

// CalculateVehicleInterestRate prices vehicle, lease and repair
// financing. Longer terms cost more; credit adjusts as for land.
func CalculateVehicleInterestRate(creditScore int, termMonths int) float64 {
	rate := BaseVehicleRate
	rate += CreditInterestAdjustment(creditScore)
	rate += (float64(termMonths)/12 - 3) * 0.15

	return roundTo2Decimals(clampRate(rate))
}

func clampRate(rate float64) float64 {
	if rate < MinAnnualRate {
		return MinAnnualRate
	}
	if rate > MaxAnnualRate {
		return MaxAnnualRate
	}
	return rate
}

// CalculateAdjustedLandPrice applies the credit tier's discount or
// premium to a land price. Good credit buys land below list price.
func CalculateAdjustedLandPrice(basePrice float64, creditScore int) domain.LandPriceQuote {
	rating, tier := domain.RatingForScore(creditScore)
	pct := landAdjustmentPctByTier[tier-1]
	amount := roundTo2Decimals(basePrice * pct / 100)

	return domain.LandPriceQuote{
		AdjustedPrice:     roundTo2Decimals(basePrice + amount),
		AdjustmentAmount:  amount,
		AdjustmentPercent: pct,
		TierName:          string(rating),
	}
}

// CalculateSecurityDeposit returns the lease deposit owed up front:
// a whole number of monthly payments stepped by credit tier.
func CalculateSecurityDeposit(monthlyPayment float64, creditScore int) domain.DepositQuote {
	rating, tier := domain.RatingForScore(creditScore)
	months := depositMonthsByTier[tier-1]

	return domain.DepositQuote{
		DepositAmount: roundTo2Decimals(monthlyPayment * float64(months)),
		DepositMonths: months,
		TierName:      string(rating),
	}
}

// MeetsMinimumAmount gates each financing category behind its floor.
// The boundary is inclusive.
func MeetsMinimumAmount(price float64, category domain.FinanceCategory) (bool, float64) {
	var minimum float64
	switch category {
	case domain.CategoryLand:
		minimum = MinAmountLand
	case domain.CategoryRepair:
		minimum = MinAmountRepair
	default:
		minimum = MinAmountVehicle
	}
	return price >= minimum, minimum
}

// CalculateLeaseResidual estimates the buyout value left in a leased
// vehicle at term end. Longer leases leave less residual.
func CalculateLeaseResidual(price float64, termMonths int) float64 {
	factor := 0.55 - 0.01*float64(termMonths)
	if factor < LeaseResidualFloor {
		factor = LeaseResidualFloor
	}
	return roundTo2Decimals(price * factor)
}
