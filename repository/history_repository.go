package repository

import (
	"sync"

	"farm-finance/domain"
)

// HistoryRepository is the append-only credit payment ledger.
type HistoryRepository interface {
	Append(entry domain.CreditHistoryEntry) error
	FindByFarm(farmID int) []domain.CreditHistoryEntry
}

// HistoryRepositoryMemory is an in-memory implementation of HistoryRepository.
type HistoryRepositoryMemory struct {
	mu      sync.RWMutex
	entries []domain.CreditHistoryEntry
}

func NewHistoryRepositoryMemory() *HistoryRepositoryMemory {
	return &HistoryRepositoryMemory{
		entries: []domain.CreditHistoryEntry{},
	}
}

func (r *HistoryRepositoryMemory) Append(entry domain.CreditHistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *HistoryRepositoryMemory) FindByFarm(farmID int) []domain.CreditHistoryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := []domain.CreditHistoryEntry{}
	for _, e := range r.entries {
		if e.FarmID == farmID {
			result = append(result, e)
		}
	}
	return result
}
