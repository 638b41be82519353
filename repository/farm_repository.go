package repository

import (
	"fmt"
	"math"
	"sync"

	"farm-finance/domain"
)

// FarmRepository is the engine's view of host-game farm state. Money
// moves only through AdjustMoney so the finance and sale managers can
// never lose each other's writes, whatever order their ticks land in.
type FarmRepository interface {
	FindByID(farmID int) (*domain.Farm, bool)
	Save(farm *domain.Farm) error
	AdjustMoney(farmID int, delta float64) (*domain.Farm, error)
}

// FarmRepositoryMemory holds farm state in memory. In production the
// host game feeds it through sync events; tests seed it directly.
type FarmRepositoryMemory struct {
	mu    sync.RWMutex
	farms map[int]*domain.Farm
}

func NewFarmRepositoryMemory() *FarmRepositoryMemory {
	return &FarmRepositoryMemory{
		farms: make(map[int]*domain.Farm),
	}
}

// FindByID returns a snapshot of the farm. Callers get a consistent
// read even while another goroutine adjusts the balance.
func (r *FarmRepositoryMemory) FindByID(farmID int) (*domain.Farm, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	farm, ok := r.farms[farmID]
	if !ok {
		return nil, false
	}
	snapshot := *farm
	return &snapshot, true
}

func (r *FarmRepositoryMemory) Save(farm *domain.Farm) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.farms[farm.ID] = farm
	return nil
}

// AdjustMoney applies a balance delta under the repository lock and
// returns the updated snapshot.
func (r *FarmRepositoryMemory) AdjustMoney(farmID int, delta float64) (*domain.Farm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	farm, ok := r.farms[farmID]
	if !ok {
		return nil, fmt.Errorf("farm %d not found", farmID)
	}
	farm.Money = math.Round((farm.Money+delta)*100) / 100
	snapshot := *farm
	return &snapshot, nil
}
