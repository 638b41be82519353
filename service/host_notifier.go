package service

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"farm-finance/domain"
)

// HostNotifier forwards engine events to the host game's event
// endpoint, standing in for the mod's sendToServer dispatch. It is
// disabled when no endpoint is configured, and a failed delivery is
// logged and dropped: engine state has already moved on and the host
// resyncs on its own schedule. The payload is encoded while the caller
// still holds its lock, then delivered on a separate goroutine so a
// slow host endpoint never stalls a tick.
type HostNotifier struct {
	endpointURL string
	enabled     bool
	httpClient  *http.Client
}

type hostEvent struct {
	Event  string      `json:"event"`
	FarmID int         `json:"farm_id"`
	Reason string      `json:"reason,omitempty"`
	Amount float64     `json:"amount,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

func NewHostNotifier(endpointURL string) *HostNotifier {
	return &HostNotifier{
		endpointURL: endpointURL,
		enabled:     endpointURL != "",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NotifyDealEvent announces a deal lifecycle change (created, payment
// collected or missed, paid off, defaulted).
func (n *HostNotifier) NotifyDealEvent(event string, deal *domain.FinanceDeal) {
	n.post(hostEvent{Event: event, FarmID: deal.FarmID, Data: deal})
}

// NotifySaleEvent announces a listing lifecycle change (listed, offer
// received, sold, expired).
func (n *HostNotifier) NotifySaleEvent(event string, listing *domain.VehicleSaleListing) {
	n.post(hostEvent{Event: event, FarmID: listing.FarmID, Data: listing})
}

// NotifyMoney announces a typed money mutation so the host game can
// book it under the right finance category.
func (n *HostNotifier) NotifyMoney(farmID int, amount float64, reason domain.MoneyReason) {
	n.post(hostEvent{Event: "money", FarmID: farmID, Amount: amount, Reason: string(reason)})
}

func (n *HostNotifier) post(event hostEvent) {
	if !n.enabled {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Warning: failed to encode host event %q: %v", event.Event, err)
		return
	}

	go n.deliver(event.Event, body)
}

func (n *HostNotifier) deliver(name string, body []byte) {
	resp, err := n.httpClient.Post(n.endpointURL, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("Warning: failed to deliver host event %q: %v", name, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("Warning: host event %q rejected with status %d", name, resp.StatusCode)
	}
}
