package repository

import (
	"sync"
	"testing"

	"farm-finance/domain"
)

func TestFarmRepository_AdjustMoney(t *testing.T) {

	repo := NewFarmRepositoryMemory()
	repo.Save(&domain.Farm{ID: 1, Money: 100})

	farm, err := repo.AdjustMoney(1, 25.505)
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if farm.Money != 125.51 {
		t.Errorf("expected 125.51, got %.2f", farm.Money)
	}

	if _, err := repo.AdjustMoney(404, 10); err == nil {
		t.Error("adjusting a missing farm should fail")
	}
}

func TestFarmRepository_ConcurrentAdjustmentsNeverLoseWrites(t *testing.T) {

	repo := NewFarmRepositoryMemory()
	repo.Save(&domain.Farm{ID: 1, Money: 0})

	// Sale payouts credit while monthly collections debit. Every
	// delta must land, whatever the interleaving.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				repo.AdjustMoney(1, 10)
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				repo.AdjustMoney(1, -5)
			}
		}()
	}
	wg.Wait()

	farm, _ := repo.FindByID(1)
	if farm.Money != 2000 {
		t.Errorf("expected 2000 after 400 credits and 400 debits, got %.2f", farm.Money)
	}
}

func TestFarmRepository_FindByIDReturnsSnapshot(t *testing.T) {

	repo := NewFarmRepositoryMemory()
	repo.Save(&domain.Farm{ID: 1, Money: 100})

	snapshot, _ := repo.FindByID(1)
	snapshot.Money = 999999

	fresh, _ := repo.FindByID(1)
	if fresh.Money != 100 {
		t.Errorf("stored farm mutated through a read, got %.2f", fresh.Money)
	}
}
