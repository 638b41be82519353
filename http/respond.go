package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"farm-finance/service"
)

var errInvalidFarmID = errors.New("missing or invalid farm_id parameter")

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error     string  `json:"error"`
	Shortfall float64 `json:"shortfall,omitempty"`
}

// writeServiceError maps engine errors onto HTTP statuses. Rejections
// carry their specifics (threshold, shortfall) in the message.
func writeServiceError(w http.ResponseWriter, err error) {
	var insufficient *service.InsufficientFundsError
	switch {
	case errors.Is(err, service.ErrFarmNotFound),
		errors.Is(err, service.ErrDealNotFound),
		errors.Is(err, service.ErrListingNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrIneligible):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.As(err, &insufficient):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:     err.Error(),
			Shortfall: insufficient.Shortfall(),
		})
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
}
