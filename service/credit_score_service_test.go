package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farm-finance/domain"
)

func TestCalculate_MissingFarmFallsBackToNeutral(t *testing.T) {
	f := newEngineFixture()

	score := f.scores.Calculate(404)
	assert.Equal(t, domain.NeutralCreditScore, score)
}

func TestCalculate_DeterministicAndCached(t *testing.T) {
	f := newEngineFixture()
	f.seedFarm(t, 1, 50000, 250000)

	first := f.scores.Calculate(1)
	second := f.scores.Calculate(1)
	assert.Equal(t, first, second)

	// Same inputs after invalidation give the same score.
	f.scores.Invalidate(1)
	assert.Equal(t, first, f.scores.Calculate(1))
}

func TestCalculate_AssetsRaiseAndDebtLowers(t *testing.T) {
	f := newEngineFixture()
	f.seedFarm(t, 1, 0, 0)
	f.seedFarm(t, 2, 0, 500000)
	indebted := f.seedFarm(t, 3, 0, 500000)
	indebted.Loan = 400000
	require.NoError(t, f.farms.Save(indebted))

	bare := f.scores.Calculate(1)
	wealthy := f.scores.Calculate(2)
	leveraged := f.scores.Calculate(3)

	assert.Equal(t, BaseCreditScore, bare)
	assert.Greater(t, wealthy, bare)
	assert.Less(t, leveraged, wealthy)
}

func TestCalculate_ActiveDealsCountAsDebt(t *testing.T) {
	f := newEngineFixture()
	f.seedFarm(t, 1, 0, 500000)

	before := f.scores.Calculate(1)

	f.seedDeal(t, &domain.FinanceDeal{
		ID: "D1", FarmID: 1, CurrentBalance: 300000,
	})
	f.scores.Invalidate(1)

	assert.Less(t, f.scores.Calculate(1), before)
}

func TestCalculate_ConcurrentWithInvalidate(t *testing.T) {
	f := newEngineFixture()
	f.seedFarm(t, 1, 50000, 250000)

	expected := f.scores.Calculate(1)

	// Handlers and the clock goroutine hit the score cache at the
	// same time; reads and invalidations must not corrupt it.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, expected, f.scores.Calculate(1))
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.scores.Invalidate(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, expected, f.scores.Calculate(1))
}

func TestCalculate_HistoryDragsScoreDown(t *testing.T) {
	f := newEngineFixture()
	f.seedFarm(t, 1, 0, 0)

	for i := 0; i < 10; i++ {
		require.NoError(t, f.ledger.Append(domain.CreditHistoryEntry{
			FarmID: 1, Month: i + 1, RecordedAt: time.Now(),
			Outcome: domain.OutcomeMissed, ScoreDelta: DeltaMissed,
		}))
	}

	// 10 misses is -80, clamped to the -60 cap.
	assert.Equal(t, BaseCreditScore-HistoryAdjustmentCap, f.scores.Calculate(1))
}

func TestCanFinance_LandIsStrictest(t *testing.T) {
	f := newEngineFixture()
	f.seedFarm(t, 1, 0, 0) // base score, between the vehicle and land gates

	vehicle := f.scores.CanFinance(1, domain.CategoryVehicle)
	assert.True(t, vehicle.Eligible)
	assert.Equal(t, MinScoreVehicle, vehicle.MinScoreRequired)

	land := f.scores.CanFinance(1, domain.CategoryLand)
	assert.False(t, land.Eligible)
	assert.Equal(t, MinScoreLand, land.MinScoreRequired)
	assert.Contains(t, land.Message, "declined")

	repair := f.scores.CanFinance(1, domain.CategoryRepair)
	assert.True(t, repair.Eligible)
	assert.Less(t, repair.MinScoreRequired, land.MinScoreRequired)
}

func TestRecord_MatchesRatingTables(t *testing.T) {
	f := newEngineFixture()
	f.seedFarm(t, 1, 0, 500000)

	record := f.scores.Record(1)
	rating, tier := domain.RatingForScore(record.Score)
	assert.Equal(t, rating, record.Rating)
	assert.Equal(t, tier, record.Tier)
	assert.Equal(t, 1, record.FarmID)
}
