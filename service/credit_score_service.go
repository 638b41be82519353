package service

import (
	"fmt"
	"log"
	"math"
	"strconv"

	"farm-finance/domain"
	"farm-finance/repository"
)

// CreditScoreService derives a farm's score from what it owns, what it
// owes and how it has paid. Deterministic given current state; cached
// because finance dialogs poll it on every slider movement.
type CreditScoreService struct {
	farms   repository.FarmRepository
	deals   repository.DealRepository
	history *CreditHistoryService
	cache   repository.CacheRepository
}

func NewCreditScoreService(
	farms repository.FarmRepository,
	deals repository.DealRepository,
	history *CreditHistoryService,
	cache repository.CacheRepository,
) *CreditScoreService {
	return &CreditScoreService{farms: farms, deals: deals, history: history, cache: cache}
}

func scoreCacheKey(farmID int) string {
	return fmt.Sprintf("credit_score:%d", farmID)
}

// Calculate computes the farm's current credit score. A missing farm
// falls back to the neutral score so preview dialogs never hard-fail.
func (s *CreditScoreService) Calculate(farmID int) int {
	if cached, ok := s.cache.Get(scoreCacheKey(farmID)); ok {
		if score, err := strconv.Atoi(cached); err == nil {
			return score
		}
	}

	farm, ok := s.farms.FindByID(farmID)
	if !ok {
		log.Printf("Warning: no farm %d for credit score, using neutral default", farmID)
		return domain.NeutralCreditScore
	}

	assets := s.AssetsOf(farm)
	debt := s.DebtOf(farm)

	score := float64(BaseCreditScore)
	score += MaxAssetPoints * assets / (assets + AssetPointsMidpoint)
	if assets+debt > 0 {
		score -= MaxDebtPenalty * debt / (debt + assets)
	}
	score += float64(s.history.ScoreAdjustment(farmID))

	result := int(math.Round(score))
	if result < domain.MinCreditScore {
		result = domain.MinCreditScore
	}
	if result > domain.MaxCreditScore {
		result = domain.MaxCreditScore
	}

	if err := s.cache.Set(scoreCacheKey(farmID), strconv.Itoa(result), ScoreCacheTTL); err != nil {
		log.Printf("Warning: failed to cache credit score for farm %d: %v", farmID, err)
	}

	return result
}

// Record bundles score, rating and tier for the GUI.
func (s *CreditScoreService) Record(farmID int) domain.CreditScoreRecord {
	score := s.Calculate(farmID)
	rating, tier := domain.RatingForScore(score)
	return domain.CreditScoreRecord{
		FarmID: farmID,
		Score:  score,
		Rating: rating,
		Tier:   tier,
	}
}

// Invalidate drops the cached score after anything that moves it:
// payments, new deals, completed deals.
func (s *CreditScoreService) Invalidate(farmID int) {
	if err := s.cache.Delete(scoreCacheKey(farmID)); err != nil {
		log.Printf("Warning: failed to invalidate credit score for farm %d: %v", farmID, err)
	}
}

// AssetsOf sums the current value of everything the farm owns.
func (s *CreditScoreService) AssetsOf(farm *domain.Farm) float64 {
	return farm.AssetValue()
}

// DebtOf sums active deal balances plus the base game's legacy loan.
func (s *CreditScoreService) DebtOf(farm *domain.Farm) float64 {
	debt := farm.Loan
	for _, deal := range s.deals.FindByFarm(farm.ID) {
		if deal.Status == domain.DealActive {
			debt += deal.CurrentBalance
		}
	}
	return debt
}

// InterestAdjustment exposes the tier-based rate delta for dashboards.
func (s *CreditScoreService) InterestAdjustment(farmID int) float64 {
	return CreditInterestAdjustment(s.Calculate(farmID))
}

// CanFinance answers whether a farm clears the credit gate for a
// financing category. Land demands the strongest score.
func (s *CreditScoreService) CanFinance(farmID int, category domain.FinanceCategory) domain.EligibilityResult {
	var minScore int
	switch category {
	case domain.CategoryLand:
		minScore = MinScoreLand
	case domain.CategoryRepair:
		minScore = MinScoreRepair
	default:
		minScore = MinScoreVehicle
	}

	score := s.Calculate(farmID)
	result := domain.EligibilityResult{
		Eligible:         score >= minScore,
		MinScoreRequired: minScore,
		CurrentScore:     score,
	}
	if result.Eligible {
		result.Message = fmt.Sprintf("approved: score %d meets the %s minimum of %d", score, category, minScore)
	} else {
		result.Message = fmt.Sprintf("declined: score %d is below the %s minimum of %d", score, category, minScore)
	}
	return result
}
