package http

import (
	"encoding/json"
	"net/http"

	"farm-finance/service"
)

type SaleHandler struct {
	sales *service.SaleManager
}

func NewSaleHandler(sales *service.SaleManager) *SaleHandler {
	return &SaleHandler{sales: sales}
}

type createListingRequest struct {
	FarmID    int    `json:"farm_id"`
	VehicleID int    `json:"vehicle_id"`
	AgentTier string `json:"agent_tier"`
	PriceTier string `json:"price_tier"`
}

type offerResponseRequest struct {
	ListingID string `json:"listing_id"`
	Action    string `json:"action"` // "accept" or "decline"
}

// Listings places a vehicle with an agent on POST and lists a farm's
// listings on GET.
func (h *SaleHandler) Listings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createListing(w, r)
	case http.MethodGet:
		h.listListings(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SaleHandler) createListing(w http.ResponseWriter, r *http.Request) {
	var req createListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	listing, err := h.sales.CreateListing(req.FarmID, req.VehicleID, req.AgentTier, req.PriceTier)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, listing)
}

func (h *SaleHandler) listListings(w http.ResponseWriter, r *http.Request) {
	farmID, err := farmIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, h.sales.ListingsForFarm(farmID))
}

// Respond resolves a pending offer one way or the other.
func (h *SaleHandler) Respond(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req offerResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	switch req.Action {
	case "accept":
		outcome, err := h.sales.AcceptOffer(req.ListingID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, outcome)
	case "decline":
		listing, err := h.sales.DeclineOffer(req.ListingID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, listing)
	default:
		http.Error(w, "action must be \"accept\" or \"decline\"", http.StatusBadRequest)
	}
}
