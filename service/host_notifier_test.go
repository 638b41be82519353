package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"farm-finance/domain"
)

func TestHostNotifier_SlowHostNeverBlocksCaller(t *testing.T) {
	release := make(chan struct{})
	received := make(chan hostEvent, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var event hostEvent
		json.NewDecoder(r.Body).Decode(&event)
		received <- event
		<-release
	}))
	defer server.Close()
	defer close(release)

	notifier := NewHostNotifier(server.URL)

	done := make(chan struct{})
	go func() {
		notifier.NotifyMoney(7, 125.50, domain.ReasonSaleProceeds)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notify blocked on a hanging host endpoint")
	}

	select {
	case event := <-received:
		assert.Equal(t, "money", event.Event)
		assert.Equal(t, 7, event.FarmID)
		assert.Equal(t, 125.50, event.Amount)
	case <-time.After(2 * time.Second):
		t.Fatal("event never delivered")
	}
}

func TestHostNotifier_DisabledWithoutEndpoint(t *testing.T) {
	notifier := NewHostNotifier("")
	assert.False(t, notifier.enabled)

	// Must be a no-op, not a connection attempt.
	notifier.NotifyMoney(1, 10, domain.ReasonCashBack)
}
