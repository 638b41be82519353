package service

import (
	"farm-finance/domain"
	"farm-finance/repository"
)

// CreditHistoryService is the read side of the payment ledger. Entries
// are appended by the finance manager's collection step, never here.
type CreditHistoryService struct {
	history repository.HistoryRepository
}

func NewCreditHistoryService(history repository.HistoryRepository) *CreditHistoryService {
	return &CreditHistoryService{history: history}
}

// Summary aggregates every ledger entry for a farm.
func (s *CreditHistoryService) Summary(farmID int) domain.CreditHistorySummary {
	summary := domain.CreditHistorySummary{}
	for _, entry := range s.history.FindByFarm(farmID) {
		summary.NetChange += entry.ScoreDelta
		switch entry.Outcome {
		case domain.OutcomeOnTime:
			summary.PaymentsOnTime++
		case domain.OutcomeMissed:
			summary.PaymentsMissed++
		case domain.OutcomeDealCompleted:
			summary.DealsCompleted++
		}
	}
	return summary
}

// ScoreAdjustment converts a farm's payment history into the bounded
// delta the score formula consumes.
func (s *CreditHistoryService) ScoreAdjustment(farmID int) int {
	adjustment := s.Summary(farmID).NetChange
	if adjustment > HistoryAdjustmentCap {
		return HistoryAdjustmentCap
	}
	if adjustment < -HistoryAdjustmentCap {
		return -HistoryAdjustmentCap
	}
	return adjustment
}
