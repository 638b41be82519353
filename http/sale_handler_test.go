package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"farm-finance/domain"
)

func seedVehicle(stack *testStack, farmID, vehicleID int) {
	farm, _ := stack.farms.FindByID(farmID)
	farm.Vehicles = append(farm.Vehicles, domain.Vehicle{
		ID: vehicleID, Name: "Harvester X9", StorePrice: 100000, Condition: 0.5,
	})
	stack.farms.Save(farm)
}

func TestListingsHandler_Create(t *testing.T) {

	stack := newTestStack()
	stack.seedFarm(1, 0)
	seedVehicle(stack, 1, 7)
	handler := NewSaleHandler(stack.sales)

	body := []byte(`{
		"farm_id": 1,
		"vehicle_id": 7,
		"agent_tier": "Regional",
		"price_tier": "Market"
	}`)

	req := httptest.NewRequest(http.MethodPost, "/sale/listings", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.Listings(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var listing domain.VehicleSaleListing
	if err := json.NewDecoder(w.Body).Decode(&listing); err != nil {
		t.Fatalf("failed to decode listing: %v", err)
	}
	if listing.Status != domain.ListingActive {
		t.Errorf("expected active listing, got %s", listing.Status)
	}
	if listing.ExpectedMinPrice >= listing.ExpectedMaxPrice {
		t.Errorf("expected a price range, got [%.2f, %.2f]",
			listing.ExpectedMinPrice, listing.ExpectedMaxPrice)
	}
}

func TestListingsHandler_DuplicateVehicleRejected(t *testing.T) {

	stack := newTestStack()
	stack.seedFarm(1, 0)
	seedVehicle(stack, 1, 7)
	handler := NewSaleHandler(stack.sales)

	body := `{"farm_id": 1, "vehicle_id": 7, "agent_tier": "Local", "price_tier": "Quick"}`

	first := httptest.NewRecorder()
	handler.Listings(first, httptest.NewRequest(http.MethodPost, "/sale/listings", bytes.NewBufferString(body)))
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.Listings(second, httptest.NewRequest(http.MethodPost, "/sale/listings", bytes.NewBufferString(body)))
	if second.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for duplicate listing, got %d", second.Code)
	}
}

func TestRespondHandler_UnknownListing(t *testing.T) {

	stack := newTestStack()
	handler := NewSaleHandler(stack.sales)

	body := `{"listing_id": "missing", "action": "accept"}`

	w := httptest.NewRecorder()
	handler.Respond(w, httptest.NewRequest(http.MethodPost, "/sale/respond", bytes.NewBufferString(body)))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestRespondHandler_InvalidAction(t *testing.T) {

	stack := newTestStack()
	handler := NewSaleHandler(stack.sales)

	body := `{"listing_id": "x", "action": "haggle"}`

	w := httptest.NewRecorder()
	handler.Respond(w, httptest.NewRequest(http.MethodPost, "/sale/respond", bytes.NewBufferString(body)))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCreditReportHandler_OK(t *testing.T) {

	stack := newTestStack()
	stack.seedFarm(1, 5000)
	handler := NewCreditHandler(stack.scores, stack.history)

	req := httptest.NewRequest(http.MethodGet, "/credit/report?farm_id=1", nil)
	w := httptest.NewRecorder()

	handler.Report(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var report struct {
		Record      domain.CreditScoreRecord                            `json:"record"`
		Eligibility map[domain.FinanceCategory]domain.EligibilityResult `json:"eligibility"`
	}
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if report.Record.Score < domain.MinCreditScore || report.Record.Score > domain.MaxCreditScore {
		t.Errorf("score %d outside valid range", report.Record.Score)
	}
	if len(report.Eligibility) != 3 {
		t.Errorf("expected eligibility for 3 categories, got %d", len(report.Eligibility))
	}
}

func TestCreditReportHandler_MissingFarmID(t *testing.T) {

	stack := newTestStack()
	handler := NewCreditHandler(stack.scores, stack.history)

	req := httptest.NewRequest(http.MethodGet, "/credit/report", nil)
	w := httptest.NewRecorder()

	handler.Report(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
