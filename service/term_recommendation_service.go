package service

import (
	"errors"
	"fmt"
	"sort"

	"farm-finance/domain"
)

// TermRecommendationService scans the allowed term window for a
// finance request and ranks each term by the player's preference.
// Pure preview: rates come from the farm's current credit score and
// nothing is persisted.
type TermRecommendationService struct {
	scores *CreditScoreService
}

func NewTermRecommendationService(scores *CreditScoreService) *TermRecommendationService {
	return &TermRecommendationService{scores: scores}
}

// RecommendTerm evaluates every candidate term and recommends the one
// scoring highest under the requested preference.
func (s *TermRecommendationService) RecommendTerm(
	input domain.TermRecommendationInput,
) (domain.TermRecommendationResult, error) {

	if input.Amount <= 0 {
		return domain.TermRecommendationResult{}, errors.New("invalid amount")
	}
	if input.DownPayment < 0 || input.DownPayment >= input.Amount {
		return domain.TermRecommendationResult{}, errors.New("invalid down payment")
	}
	if input.MinTermMonths <= 0 || input.MaxTermMonths <= 0 {
		return domain.TermRecommendationResult{}, errors.New("invalid term bounds")
	}
	if input.MinTermMonths > input.MaxTermMonths {
		return domain.TermRecommendationResult{}, errors.New("minimum term exceeds maximum term")
	}
	if input.MaxTermMonths > MaxTermMonths {
		return domain.TermRecommendationResult{}, fmt.Errorf("maximum term exceeds the limit of %d months", MaxTermMonths)
	}
	if input.MaxTermMonths-input.MinTermMonths > MaxTermRangeMonths {
		return domain.TermRecommendationResult{}, fmt.Errorf("term window exceeds the maximum of %d months", MaxTermRangeMonths)
	}
	if input.MaxMonthlyPayment <= 0 {
		return domain.TermRecommendationResult{}, errors.New("invalid maximum monthly payment")
	}

	preferences := map[string]bool{
		"minimize_interest": true,
		"minimize_payment":  true,
		"balanced":          true,
	}
	if !preferences[input.Preference] {
		return domain.TermRecommendationResult{}, errors.New("invalid preference")
	}

	score := s.scores.Calculate(input.FarmID)
	principal := input.Amount - input.DownPayment

	recommendations := []domain.TermRecommendation{}
	for term := input.MinTermMonths; term <= input.MaxTermMonths; term++ {
		var rate float64
		if input.DealType == domain.DealTypeLand {
			dpPct := input.DownPayment / input.Amount * 100
			rate = CalculateLandInterestRate(score, yearsForTerm(term), dpPct)
		} else {
			rate = CalculateVehicleInterestRate(score, term)
		}

		quote := CalculateMonthlyPayment(principal, rate, term)
		if quote.MonthlyPayment > input.MaxMonthlyPayment {
			continue
		}

		recommendations = append(recommendations, domain.TermRecommendation{
			TermMonths:     term,
			AnnualRate:     rate,
			MonthlyPayment: quote.MonthlyPayment,
			TotalInterest:  quote.TotalInterest,
			Score:          s.rankTerm(quote, input, principal, term),
			Reason:         reasonForPreference(input.Preference),
		})
	}

	if len(recommendations) == 0 {
		return domain.TermRecommendationResult{}, errors.New("no term fits under the maximum monthly payment")
	}

	sort.Slice(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	return domain.TermRecommendationResult{
		RecommendedTerm: recommendations[0].TermMonths,
		Recommendations: recommendations,
	}, nil
}

// rankTerm normalizes interest cost, payment size and term length to
// 0-10 and blends them by preference weight.
func (s *TermRecommendationService) rankTerm(
	quote domain.PaymentQuote,
	input domain.TermRecommendationInput,
	principal float64,
	term int,
) float64 {

	maxInterest := principal * (MaxAnnualRate / 100) * float64(input.MaxTermMonths) / 12
	minPayment := principal / float64(input.MaxTermMonths)
	paymentRange := input.MaxMonthlyPayment - minPayment

	interestScore := 0.0
	if maxInterest > 0 {
		interestScore = 10.0 * (1.0 - quote.TotalInterest/maxInterest)
	}
	paymentScore := 0.0
	if paymentRange > 0 {
		paymentScore = 10.0 * (1.0 - (quote.MonthlyPayment-minPayment)/paymentRange)
	}
	termScore := 10.0
	if input.MaxTermMonths > input.MinTermMonths {
		termScore = 10.0 * (1.0 - float64(term-input.MinTermMonths)/float64(input.MaxTermMonths-input.MinTermMonths))
	}

	var rank float64
	switch input.Preference {
	case "minimize_interest":
		rank = 0.6*interestScore + 0.2*paymentScore + 0.2*termScore
	case "minimize_payment":
		rank = 0.2*interestScore + 0.6*paymentScore + 0.2*termScore
	case "balanced":
		rank = 0.4*interestScore + 0.4*paymentScore + 0.2*termScore
	}

	return roundTo2Decimals(rank)
}

func reasonForPreference(preference string) string {
	switch preference {
	case "minimize_interest":
		return "term optimized for lowest total interest"
	case "minimize_payment":
		return "term optimized for lowest monthly payment"
	case "balanced":
		return "best balance of monthly payment and total cost"
	}
	return "recommendation based on the provided parameters"
}
