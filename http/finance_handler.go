package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"farm-finance/domain"
	"farm-finance/service"
)

type FinanceHandler struct {
	finance *service.FinanceManager
	terms   *service.TermRecommendationService
}

func NewFinanceHandler(finance *service.FinanceManager, terms *service.TermRecommendationService) *FinanceHandler {
	return &FinanceHandler{finance: finance, terms: terms}
}

// Preview prices a finance request without side effects. Dialogs call
// this on every slider movement.
func (h *FinanceHandler) Preview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.FinanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, h.finance.Preview(req))
}

// Deals creates a deal on POST and lists a farm's deals on GET.
func (h *FinanceHandler) Deals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createDeal(w, r)
	case http.MethodGet:
		h.listDeals(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *FinanceHandler) createDeal(w http.ResponseWriter, r *http.Request) {
	var req domain.FinanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	deal, err := h.finance.AddDeal(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, deal)
}

func (h *FinanceHandler) listDeals(w http.ResponseWriter, r *http.Request) {
	farmID, err := farmIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"deals": h.finance.DealsForFarm(farmID),
		"stats": h.finance.Stats(farmID),
	})
}

// PayOff settles an active deal early.
func (h *FinanceHandler) PayOff(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		DealID string `json:"deal_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	deal, err := h.finance.PayOff(req.DealID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deal)
}

// RecommendTerm ranks financing terms for a budget.
func (h *FinanceHandler) RecommendTerm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input domain.TermRecommendationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.terms.RecommendTerm(input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func farmIDParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("farm_id")
	farmID, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidFarmID
	}
	return farmID, nil
}
