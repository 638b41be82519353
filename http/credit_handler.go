package http

import (
	"net/http"

	"farm-finance/domain"
	"farm-finance/service"
)

type CreditHandler struct {
	scores  *service.CreditScoreService
	history *service.CreditHistoryService
}

func NewCreditHandler(scores *service.CreditScoreService, history *service.CreditHistoryService) *CreditHandler {
	return &CreditHandler{scores: scores, history: history}
}

type creditReport struct {
	Record             domain.CreditScoreRecord                            `json:"record"`
	InterestAdjustment float64                                             `json:"interest_adjustment"`
	Summary            domain.CreditHistorySummary                         `json:"summary"`
	Eligibility        map[domain.FinanceCategory]domain.EligibilityResult `json:"eligibility"`
}

// Report is the one call the credit dashboard needs: score, rating,
// payment history and the per-category financing gates.
func (h *CreditHandler) Report(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	farmID, err := farmIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report := creditReport{
		Record:             h.scores.Record(farmID),
		InterestAdjustment: h.scores.InterestAdjustment(farmID),
		Summary:            h.history.Summary(farmID),
		Eligibility:        make(map[domain.FinanceCategory]domain.EligibilityResult),
	}
	for _, category := range []domain.FinanceCategory{
		domain.CategoryVehicle, domain.CategoryRepair, domain.CategoryLand,
	} {
		report.Eligibility[category] = h.scores.CanFinance(farmID, category)
	}

	writeJSON(w, http.StatusOK, report)
}
