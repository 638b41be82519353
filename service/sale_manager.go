package service

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"farm-finance/domain"
	"farm-finance/repository"
)

// SaleManager owns vehicle sale listings and advances them one game
// hour at a time: active listings roll for buyers, pending offers
// count down, terminal listings stay queryable for the GUI.
type SaleManager struct {
	mu       sync.Mutex
	listings repository.ListingRepository
	farms    repository.FarmRepository
	notifier *HostNotifier
	rng      *rand.Rand

	lastProcessedHour int
}

func NewSaleManager(
	listings repository.ListingRepository,
	farms repository.FarmRepository,
	notifier *HostNotifier,
	rng *rand.Rand,
) *SaleManager {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &SaleManager{
		listings: listings,
		farms:    farms,
		notifier: notifier,
		rng:      rng,
	}
}

// CreateListing places a vehicle with a sale agent. A vehicle can only
// carry one live listing; unknown tier names fall back to defaults so
// a stale GUI never wedges the dialog.
func (m *SaleManager) CreateListing(farmID, vehicleID int, agentName, priceName string) (*domain.VehicleSaleListing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	farm, ok := m.farms.FindByID(farmID)
	if !ok {
		return nil, fmt.Errorf("%w: farm %d", ErrFarmNotFound, farmID)
	}

	var vehicle *domain.Vehicle
	for i := range farm.Vehicles {
		if farm.Vehicles[i].ID == vehicleID {
			vehicle = &farm.Vehicles[i]
			break
		}
	}
	if vehicle == nil {
		return nil, fmt.Errorf("farm %d does not own vehicle %d", farmID, vehicleID)
	}

	if existing, ok := m.listings.FindActiveByVehicle(vehicleID); ok {
		return nil, fmt.Errorf("vehicle %d is already listed (%s)", vehicleID, existing.ID)
	}

	agent, ok := domain.AgentTierByName(agentName)
	if !ok {
		log.Printf("Warning: unknown agent tier %q, using Local", agentName)
		agent, _ = domain.AgentTierByName("Local")
	}
	pricing, ok := domain.PriceTierByName(priceName)
	if !ok {
		log.Printf("Warning: unknown price tier %q, using Market", priceName)
		pricing, _ = domain.PriceTierByName("Market")
	}

	vanilla := roundTo2Decimals(vehicle.StorePrice * vehicle.Condition * VanillaSellFactor)

	listing := &domain.VehicleSaleListing{
		ID:                uuid.NewString(),
		FarmID:            farmID,
		VehicleID:         vehicleID,
		VehicleName:       vehicle.Name,
		Agent:             agent,
		Pricing:           pricing,
		VanillaSellPrice:  vanilla,
		ExpectedMinPrice:  roundTo2Decimals(vanilla * pricing.MinMultiplier),
		ExpectedMaxPrice:  roundTo2Decimals(vanilla * pricing.MaxMultiplier),
		Status:            domain.ListingActive,
		HoursRemaining:    agent.DurationHours,
		LastProcessedHour: m.lastProcessedHour,
	}

	if err := m.listings.Save(listing); err != nil {
		return nil, fmt.Errorf("failed to save listing: %w", err)
	}

	m.notifier.NotifySaleEvent("vehicle_listed", listing)
	return listing, nil
}

// AdvanceHour steps every listing by one game hour. Duplicate calls
// for the same hour are ignored.
func (m *SaleManager) AdvanceHour(hour int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hour <= m.lastProcessedHour {
		log.Printf("Warning: hour %d already processed, ignoring duplicate tick", hour)
		return
	}

	for _, listing := range m.listings.FindAll() {
		if listing.LastProcessedHour >= hour {
			continue
		}
		switch listing.Status {
		case domain.ListingActive:
			m.advanceSearch(listing)
		case domain.ListingOfferPending:
			m.advanceOffer(listing)
		default:
			continue // terminal
		}
		listing.LastProcessedHour = hour
		if err := m.listings.Save(listing); err != nil {
			log.Printf("Warning: failed to save listing %s: %v", listing.ID, err)
		}
	}

	m.lastProcessedHour = hour
}

func (m *SaleManager) advanceSearch(listing *domain.VehicleSaleListing) {
	listing.HoursElapsed++
	listing.HoursRemaining--
	if listing.HoursRemaining <= 0 {
		listing.Status = domain.ListingExpired
		m.notifier.NotifySaleEvent("listing_expired", listing)
		return
	}

	chance := listing.Agent.BaseSuccessRate * (1 + listing.Pricing.SuccessModifier)
	if m.rng.Float64() >= chance {
		return
	}

	listing.CurrentOffer = m.drawOffer(listing)
	listing.Status = domain.ListingOfferPending
	listing.OfferExpiresIn = OfferExpiryHours
	listing.OffersReceived++
	m.notifier.NotifySaleEvent("offer_received", listing)
}

func (m *SaleManager) advanceOffer(listing *domain.VehicleSaleListing) {
	listing.HoursElapsed++
	listing.OfferExpiresIn--
	if listing.OfferExpiresIn > 0 {
		return
	}
	// Ignored offers lapse back to searching, with the same lifetime
	// penalty a decline costs.
	listing.CurrentOffer = 0
	listing.Status = domain.ListingActive
	m.applyDeclinePenalty(listing)
	m.notifier.NotifySaleEvent("offer_lapsed", listing)
}

// drawOffer samples uniformly inside the expected range, never outside
// it. A degenerate range yields that exact price.
func (m *SaleManager) drawOffer(listing *domain.VehicleSaleListing) float64 {
	lo, hi := listing.ExpectedMinPrice, listing.ExpectedMaxPrice
	if hi <= lo {
		return lo
	}
	return roundTo2Decimals(lo + m.rng.Float64()*(hi-lo))
}

// AcceptOffer closes a pending offer: the agent takes its fee and the
// net proceeds land on the farm account.
func (m *SaleManager) AcceptOffer(listingID string) (domain.SaleOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	listing, ok := m.listings.FindByID(listingID)
	if !ok {
		return domain.SaleOutcome{}, fmt.Errorf("%w: %s", ErrListingNotFound, listingID)
	}
	if listing.Status != domain.ListingOfferPending {
		return domain.SaleOutcome{}, fmt.Errorf("listing %s has no pending offer (status %s)", listingID, listing.Status)
	}

	if _, ok := m.farms.FindByID(listing.FarmID); !ok {
		return domain.SaleOutcome{}, fmt.Errorf("%w: farm %d", ErrFarmNotFound, listing.FarmID)
	}

	fee := roundTo2Decimals(listing.CurrentOffer * listing.Agent.FeePercent / 100)
	payout := roundTo2Decimals(listing.CurrentOffer - fee)

	listing.Status = domain.ListingSold
	if err := m.listings.Save(listing); err != nil {
		return domain.SaleOutcome{}, fmt.Errorf("failed to save listing: %w", err)
	}

	// The farm repository owns money mutation; a monthly collection
	// running on the clock goroutine cannot clobber the payout.
	if _, err := m.farms.AdjustMoney(listing.FarmID, payout); err != nil {
		log.Printf("Warning: failed to credit farm %d: %v", listing.FarmID, err)
	}
	m.notifier.NotifyMoney(listing.FarmID, payout, domain.ReasonSaleProceeds)
	m.notifier.NotifySaleEvent("vehicle_sold", listing)

	return domain.SaleOutcome{
		ListingID:  listing.ID,
		SalePrice:  listing.CurrentOffer,
		AgentFee:   fee,
		NetPayout:  payout,
		FeePercent: listing.Agent.FeePercent,
	}, nil
}

// DeclineOffer sends the listing back to searching. Each decline costs
// part of the remaining search time so offers can't be farmed forever.
func (m *SaleManager) DeclineOffer(listingID string) (*domain.VehicleSaleListing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	listing, ok := m.listings.FindByID(listingID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrListingNotFound, listingID)
	}
	if listing.Status != domain.ListingOfferPending {
		return nil, fmt.Errorf("listing %s has no pending offer (status %s)", listingID, listing.Status)
	}

	listing.CurrentOffer = 0
	listing.OfferExpiresIn = 0
	listing.Status = domain.ListingActive
	listing.OffersDeclined++
	m.applyDeclinePenalty(listing)

	if err := m.listings.Save(listing); err != nil {
		return nil, fmt.Errorf("failed to save listing: %w", err)
	}

	m.notifier.NotifySaleEvent("offer_declined", listing)
	return listing, nil
}

func (m *SaleManager) applyDeclinePenalty(listing *domain.VehicleSaleListing) {
	remaining := int(float64(listing.HoursRemaining) * (1 - DeclineLifetimePenalty))
	if remaining < 1 {
		remaining = 1
	}
	listing.HoursRemaining = remaining
}

// ListingsForFarm returns every listing the farm created, including
// sold and expired ones.
func (m *SaleManager) ListingsForFarm(farmID int) []*domain.VehicleSaleListing {
	return m.listings.FindByFarm(farmID)
}

// ListingByID looks up one listing.
func (m *SaleManager) ListingByID(id string) (*domain.VehicleSaleListing, error) {
	listing, ok := m.listings.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrListingNotFound, id)
	}
	return listing, nil
}
