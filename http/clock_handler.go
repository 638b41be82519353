package http

import (
	"encoding/json"
	"net/http"

	"farm-finance/clock"
)

type ClockHandler struct {
	clock *clock.GameClock
}

func NewClockHandler(gameClock *clock.GameClock) *ClockHandler {
	return &ClockHandler{clock: gameClock}
}

// Advance lets the host game push elapsed time into the engine. GET
// returns the current game time without advancing it.
func (h *ClockHandler) Advance(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.clock.Current())
	case http.MethodPost:
		var req struct {
			Hours int `json:"hours"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.Hours < 1 || req.Hours > 24*365 {
			http.Error(w, "hours must be between 1 and one game year", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, h.clock.AdvanceHours(req.Hours))
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
