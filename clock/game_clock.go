package clock

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"farm-finance/service"
)

// GameClock is the single owner of game time. Every game hour it steps
// the sale manager, and on month boundaries the finance manager. The
// managers' own idempotency guards make a duplicated tick harmless,
// but the clock is the only component that should be issuing them.
type GameClock struct {
	mu      sync.Mutex
	hour    int
	finance *service.FinanceManager
	sales   *service.SaleManager
	cron    *cron.Cron
}

// State is a snapshot of game time for the GUI.
type State struct {
	Hour  int `json:"hour"`
	Day   int `json:"day"`
	Month int `json:"month"`
}

func New(finance *service.FinanceManager, sales *service.SaleManager) *GameClock {
	return &GameClock{finance: finance, sales: sales}
}

func (c *GameClock) Current() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *GameClock) stateLocked() State {
	return State{
		Hour:  c.hour,
		Day:   c.hour / 24,
		Month: c.hour / service.HoursPerMonth,
	}
}

// AdvanceHours moves game time forward by n hours, driving both
// managers exactly once per hour/month.
func (c *GameClock) AdvanceHours(n int) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := 0; i < n; i++ {
		c.hour++
		c.sales.AdvanceHour(c.hour)
		if c.hour%service.HoursPerMonth == 0 {
			c.finance.ProcessMonth(c.hour / service.HoursPerMonth)
		}
	}
	return c.stateLocked()
}

// StartAuto advances the clock one game hour on the given cron
// schedule (e.g. "@every 5s") for standalone simulation runs.
func (c *GameClock) StartAuto(schedule string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cron != nil {
		return fmt.Errorf("clock already running")
	}
	runner := cron.New()
	if _, err := runner.AddFunc(schedule, func() { c.AdvanceHours(1) }); err != nil {
		return fmt.Errorf("invalid clock schedule %q: %w", schedule, err)
	}
	runner.Start()
	c.cron = runner
	return nil
}

// Stop halts the standalone scheduler, if one is running.
func (c *GameClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cron != nil {
		c.cron.Stop()
		c.cron = nil
	}
}
