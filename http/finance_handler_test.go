package http

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"farm-finance/domain"
	"farm-finance/repository"
	"farm-finance/service"
)

type testStack struct {
	farms   *repository.FarmRepositoryMemory
	finance *service.FinanceManager
	scores  *service.CreditScoreService
	history *service.CreditHistoryService
	sales   *service.SaleManager
	terms   *service.TermRecommendationService
}

func newTestStack() *testStack {
	farms := repository.NewFarmRepositoryMemory()
	deals := repository.NewDealRepositoryMemory()
	listings := repository.NewListingRepositoryMemory()
	ledger := repository.NewHistoryRepositoryMemory()
	notifier := service.NewHostNotifier("")

	history := service.NewCreditHistoryService(ledger)
	scores := service.NewCreditScoreService(farms, deals, history, repository.NewMockCache())
	finance := service.NewFinanceManager(farms, deals, ledger, scores, notifier)
	sales := service.NewSaleManager(listings, farms, notifier, rand.New(rand.NewSource(1)))

	return &testStack{
		farms:   farms,
		finance: finance,
		scores:  scores,
		history: history,
		sales:   sales,
		terms:   service.NewTermRecommendationService(scores),
	}
}

func (s *testStack) seedFarm(id int, money float64) {
	s.farms.Save(&domain.Farm{ID: id, Money: money})
}

func TestPreviewHandler_OK(t *testing.T) {

	stack := newTestStack()
	stack.seedFarm(1, 20000)
	handler := NewFinanceHandler(stack.finance, stack.terms)

	body := []byte(`{
		"farm_id": 1,
		"deal_type": 1,
		"base_price": 30000,
		"down_payment": 5000,
		"term_months": 36
	}`)

	req := httptest.NewRequest(http.MethodPost, "/finance/preview", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.Preview(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var preview domain.FinancePreview
	if err := json.NewDecoder(w.Body).Decode(&preview); err != nil {
		t.Fatalf("failed to decode preview: %v", err)
	}
	if preview.Quote.MonthlyPayment <= 0 {
		t.Errorf("expected monthly payment > 0, got %.2f", preview.Quote.MonthlyPayment)
	}
}

func TestPreviewHandler_MethodNotAllowed(t *testing.T) {

	stack := newTestStack()
	handler := NewFinanceHandler(stack.finance, stack.terms)

	req := httptest.NewRequest(http.MethodGet, "/finance/preview", nil)
	w := httptest.NewRecorder()

	handler.Preview(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestPreviewHandler_BadRequest(t *testing.T) {

	stack := newTestStack()
	handler := NewFinanceHandler(stack.finance, stack.terms)

	req := httptest.NewRequest(http.MethodPost, "/finance/preview", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()

	handler.Preview(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestDealsHandler_CreateAndList(t *testing.T) {

	stack := newTestStack()
	stack.seedFarm(1, 20000)
	handler := NewFinanceHandler(stack.finance, stack.terms)

	body := []byte(`{
		"farm_id": 1,
		"deal_type": 1,
		"item_type": "vehicle",
		"item_id": 7,
		"item_name": "Harvester X9",
		"base_price": 30000,
		"down_payment": 5000,
		"term_months": 36
	}`)

	req := httptest.NewRequest(http.MethodPost, "/finance/deals", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.Deals(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	listReq := httptest.NewRequest(http.MethodGet, "/finance/deals?farm_id=1", nil)
	listW := httptest.NewRecorder()

	handler.Deals(listW, listReq)

	if listW.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", listW.Code)
	}

	var payload struct {
		Deals []domain.FinanceDeal    `json:"deals"`
		Stats domain.FarmFinanceStats `json:"stats"`
	}
	if err := json.NewDecoder(listW.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(payload.Deals) != 1 {
		t.Fatalf("expected 1 deal, got %d", len(payload.Deals))
	}
	if payload.Stats.ActiveDeals != 1 {
		t.Errorf("expected 1 active deal in stats, got %d", payload.Stats.ActiveDeals)
	}
}

func TestDealsHandler_InsufficientFunds(t *testing.T) {

	stack := newTestStack()
	stack.seedFarm(1, 100)
	handler := NewFinanceHandler(stack.finance, stack.terms)

	body := []byte(`{
		"farm_id": 1,
		"deal_type": 1,
		"base_price": 30000,
		"down_payment": 5000,
		"term_months": 36
	}`)

	req := httptest.NewRequest(http.MethodPost, "/finance/deals", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.Deals(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	var resp struct {
		Error     string  `json:"error"`
		Shortfall float64 `json:"shortfall"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error: %v", err)
	}
	if resp.Shortfall != 4900 {
		t.Errorf("expected shortfall 4900, got %.2f", resp.Shortfall)
	}
}

func TestDealsHandler_MissingFarm(t *testing.T) {

	stack := newTestStack()
	handler := NewFinanceHandler(stack.finance, stack.terms)

	body := []byte(`{"farm_id": 42, "deal_type": 1, "base_price": 30000, "term_months": 36}`)

	req := httptest.NewRequest(http.MethodPost, "/finance/deals", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.Deals(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestRecommendTermHandler_OK(t *testing.T) {

	stack := newTestStack()
	stack.seedFarm(1, 20000)
	handler := NewFinanceHandler(stack.finance, stack.terms)

	body := []byte(`{
		"farm_id": 1,
		"deal_type": 1,
		"amount": 30000,
		"down_payment": 5000,
		"min_term_months": 12,
		"max_term_months": 60,
		"max_monthly_payment": 2500,
		"preference": "balanced"
	}`)

	req := httptest.NewRequest(http.MethodPost, "/finance/recommend-term", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.RecommendTerm(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
