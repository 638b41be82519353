package repository

import (
	"sync"

	"farm-finance/domain"
)

// ListingRepository stores vehicle sale listings. Sold and expired
// listings stay queryable until the host game archives them.
type ListingRepository interface {
	Save(listing *domain.VehicleSaleListing) error
	FindByID(id string) (*domain.VehicleSaleListing, bool)
	FindByFarm(farmID int) []*domain.VehicleSaleListing
	FindActiveByVehicle(vehicleID int) (*domain.VehicleSaleListing, bool)
	FindAll() []*domain.VehicleSaleListing
}

// ListingRepositoryMemory is an in-memory implementation of ListingRepository.
type ListingRepositoryMemory struct {
	mu       sync.RWMutex
	listings map[string]*domain.VehicleSaleListing
	order    []string
}

func NewListingRepositoryMemory() *ListingRepositoryMemory {
	return &ListingRepositoryMemory{
		listings: make(map[string]*domain.VehicleSaleListing),
	}
}

func (r *ListingRepositoryMemory) Save(listing *domain.VehicleSaleListing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.listings[listing.ID]; !exists {
		r.order = append(r.order, listing.ID)
	}
	r.listings[listing.ID] = listing
	return nil
}

func (r *ListingRepositoryMemory) FindByID(id string) (*domain.VehicleSaleListing, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	listing, ok := r.listings[id]
	return listing, ok
}

func (r *ListingRepositoryMemory) FindByFarm(farmID int) []*domain.VehicleSaleListing {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := []*domain.VehicleSaleListing{}
	for _, id := range r.order {
		if r.listings[id].FarmID == farmID {
			result = append(result, r.listings[id])
		}
	}
	return result
}

// FindActiveByVehicle enforces the one-listing-per-vehicle rule:
// only listings still searching or holding an offer count.
func (r *ListingRepositoryMemory) FindActiveByVehicle(vehicleID int) (*domain.VehicleSaleListing, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		l := r.listings[id]
		if l.VehicleID != vehicleID {
			continue
		}
		if l.Status == domain.ListingActive || l.Status == domain.ListingOfferPending {
			return l, true
		}
	}
	return nil, false
}

func (r *ListingRepositoryMemory) FindAll() []*domain.VehicleSaleListing {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.VehicleSaleListing, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.listings[id])
	}
	return result
}
