package repository

import (
	"sync"

	"farm-finance/domain"
)

// DealRepository stores every finance deal ever opened. Deals are
// never removed; terminated deals feed lifetime statistics.
type DealRepository interface {
	Save(deal *domain.FinanceDeal) error
	FindByID(id string) (*domain.FinanceDeal, bool)
	FindByFarm(farmID int) []*domain.FinanceDeal
	FindAll() []*domain.FinanceDeal
}

// DealRepositoryMemory is an in-memory implementation of DealRepository.
type DealRepositoryMemory struct {
	mu    sync.RWMutex
	deals map[string]*domain.FinanceDeal
	order []string
}

// NewDealRepositoryMemory creates a new in-memory deal repository.
func NewDealRepositoryMemory() *DealRepositoryMemory {
	return &DealRepositoryMemory{
		deals: make(map[string]*domain.FinanceDeal),
	}
}

func (r *DealRepositoryMemory) Save(deal *domain.FinanceDeal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.deals[deal.ID]; !exists {
		r.order = append(r.order, deal.ID)
	}
	r.deals[deal.ID] = deal
	return nil
}

func (r *DealRepositoryMemory) FindByID(id string) (*domain.FinanceDeal, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	deal, ok := r.deals[id]
	return deal, ok
}

func (r *DealRepositoryMemory) FindByFarm(farmID int) []*domain.FinanceDeal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := []*domain.FinanceDeal{}
	for _, id := range r.order {
		if r.deals[id].FarmID == farmID {
			result = append(result, r.deals[id])
		}
	}
	return result
}

func (r *DealRepositoryMemory) FindAll() []*domain.FinanceDeal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.FinanceDeal, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.deals[id])
	}
	return result
}
