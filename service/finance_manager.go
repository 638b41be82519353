package service

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"farm-finance/domain"
	"farm-finance/repository"
)

// FinanceManager owns every financing obligation: it opens deals,
// collects payments once per game month and moves deals through
// active -> paid_off / defaulted. Deals are never deleted.
type FinanceManager struct {
	mu       sync.Mutex
	farms    repository.FarmRepository
	deals    repository.DealRepository
	history  repository.HistoryRepository
	scores   *CreditScoreService
	notifier *HostNotifier

	lastProcessedMonth int
}

// MonthlyReport summarizes one collection pass.
type MonthlyReport struct {
	Month             int     `json:"month"`
	DealsProcessed    int     `json:"deals_processed"`
	PaymentsCollected int     `json:"payments_collected"`
	PaymentsMissed    int     `json:"payments_missed"`
	PaidOff           int     `json:"paid_off"`
	Defaulted         int     `json:"defaulted"`
	InterestAccrued   float64 `json:"interest_accrued"`
}

func NewFinanceManager(
	farms repository.FarmRepository,
	deals repository.DealRepository,
	history repository.HistoryRepository,
	scores *CreditScoreService,
	notifier *HostNotifier,
) *FinanceManager {
	return &FinanceManager{
		farms:    farms,
		deals:    deals,
		history:  history,
		scores:   scores,
		notifier: notifier,
	}
}

// normalizeTerm substitutes the default term for out-of-range values
// so a broken slider never breaks a live preview.
func normalizeTerm(termMonths int) int {
	if termMonths < MinTermMonths || termMonths > MaxTermMonths {
		log.Printf("Warning: term %d months out of range, using default of %d", termMonths, DefaultTerm)
		return DefaultTerm
	}
	return termMonths
}

// Preview prices a finance request without touching any state. Safe to
// call once per slider movement.
func (m *FinanceManager) Preview(req domain.FinanceRequest) domain.FinancePreview {
	term := normalizeTerm(req.TermMonths)
	price := req.BasePrice
	if price < 0 {
		price = 0
	}
	downPayment := req.DownPayment
	if downPayment < 0 {
		downPayment = 0
	}

	score := m.scores.Calculate(req.FarmID)
	preview := domain.FinancePreview{
		Eligibility: m.scores.CanFinance(req.FarmID, req.DealType.Category()),
	}

	effectivePrice := price
	switch req.DealType {
	case domain.DealTypeLand:
		quote := CalculateAdjustedLandPrice(price, score)
		preview.LandPrice = &quote
		effectivePrice = quote.AdjustedPrice
		dpPct := 0.0
		if effectivePrice > 0 {
			dpPct = downPayment / effectivePrice * 100
		}
		preview.AnnualRate = CalculateLandInterestRate(score, yearsForTerm(term), dpPct)
	default:
		preview.AnnualRate = CalculateVehicleInterestRate(score, term)
	}

	if req.DealType == domain.DealTypeLease {
		preview.ResidualValue = CalculateLeaseResidual(price, term)
		preview.AmountFinanced = roundTo2Decimals(math.Max(0, price-preview.ResidualValue))
	} else {
		preview.AmountFinanced = roundTo2Decimals(math.Max(0, effectivePrice-downPayment+req.CashBack))
	}

	preview.Quote = CalculateMonthlyPayment(preview.AmountFinanced, preview.AnnualRate, term)

	if req.DealType == domain.DealTypeLease {
		quote := CalculateSecurityDeposit(preview.Quote.MonthlyPayment, score)
		preview.Deposit = &quote
	}

	return preview
}

// AddDeal validates a finance request end to end (price floor, credit
// gate, upfront funds) and only then mutates farm money and persists
// the deal. A rejected request leaves everything untouched.
func (m *FinanceManager) AddDeal(req domain.FinanceRequest) (*domain.FinanceDeal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if req.BasePrice <= 0 {
		return nil, fmt.Errorf("invalid price $%.2f", req.BasePrice)
	}
	if req.BasePrice > MaxFinanceAmount {
		return nil, fmt.Errorf("price exceeds the financing ceiling of $%.2f", MaxFinanceAmount)
	}
	if req.CashBack < 0 {
		return nil, fmt.Errorf("invalid cash back $%.2f", req.CashBack)
	}

	farm, ok := m.farms.FindByID(req.FarmID)
	if !ok {
		return nil, fmt.Errorf("%w: farm %d", ErrFarmNotFound, req.FarmID)
	}

	category := req.DealType.Category()
	if ok, minimum := MeetsMinimumAmount(req.BasePrice, category); !ok {
		return nil, fmt.Errorf("%w: price $%.2f is below the %s minimum of $%.2f",
			ErrIneligible, req.BasePrice, category, minimum)
	}
	if elig := m.scores.CanFinance(req.FarmID, category); !elig.Eligible {
		return nil, fmt.Errorf("%w: %s", ErrIneligible, elig.Message)
	}

	term := normalizeTerm(req.TermMonths)
	downPayment := req.DownPayment
	if downPayment < 0 {
		downPayment = 0
	}
	if req.DealType == domain.DealTypeLease {
		// Leases take a security deposit in lieu of a down payment.
		downPayment = 0
	}
	if downPayment >= req.BasePrice {
		return nil, fmt.Errorf("down payment $%.2f covers the full price, nothing to finance", downPayment)
	}

	score := m.scores.Calculate(req.FarmID)

	effectivePrice := req.BasePrice
	var annualRate float64
	switch req.DealType {
	case domain.DealTypeLand:
		landQuote := CalculateAdjustedLandPrice(req.BasePrice, score)
		effectivePrice = landQuote.AdjustedPrice
		dpPct := downPayment / effectivePrice * 100
		annualRate = CalculateLandInterestRate(score, yearsForTerm(term), dpPct)
	default:
		annualRate = CalculateVehicleInterestRate(score, term)
	}

	var residual float64
	var amountFinanced float64
	if req.DealType == domain.DealTypeLease {
		residual = CalculateLeaseResidual(req.BasePrice, term)
		amountFinanced = roundTo2Decimals(req.BasePrice - residual)
	} else {
		amountFinanced = roundTo2Decimals(effectivePrice - downPayment + req.CashBack)
	}

	quote := CalculateMonthlyPayment(amountFinanced, annualRate, term)

	upfront := downPayment
	upfrontReason := domain.ReasonDownPayment
	if req.DealType == domain.DealTypeLease {
		deposit := CalculateSecurityDeposit(quote.MonthlyPayment, score)
		upfront = deposit.DepositAmount
		upfrontReason = domain.ReasonSecurityDeposit
	}

	if farm.Money < upfront {
		return nil, &InsufficientFundsError{Required: upfront, Available: farm.Money}
	}

	// All gates passed: mutate from here on.
	if upfront > 0 {
		m.moveMoney(farm.ID, -upfront, upfrontReason)
	}
	if req.CashBack > 0 {
		m.moveMoney(farm.ID, req.CashBack, domain.ReasonCashBack)
	}

	deal := &domain.FinanceDeal{
		ID:                 uuid.NewString(),
		FarmID:             req.FarmID,
		DealType:           req.DealType,
		ItemType:           req.ItemType,
		ItemID:             req.ItemID,
		ItemName:           req.ItemName,
		Price:              req.BasePrice,
		DownPayment:        downPayment,
		TermMonths:         term,
		AnnualRate:         annualRate,
		CashBack:           req.CashBack,
		MonthlyPayment:     quote.MonthlyPayment,
		AmountFinanced:     amountFinanced,
		CurrentBalance:     amountFinanced,
		ResidualValue:      residual,
		Status:             domain.DealActive,
		LastProcessedMonth: m.lastProcessedMonth,
	}

	if err := m.deals.Save(deal); err != nil {
		return nil, fmt.Errorf("failed to save deal: %w", err)
	}

	m.scores.Invalidate(req.FarmID)
	m.notifier.NotifyDealEvent("deal_created", deal)

	return deal, nil
}

// DealsForFarm returns every deal the farm ever opened, active and
// terminated, in creation order.
func (m *FinanceManager) DealsForFarm(farmID int) []*domain.FinanceDeal {
	return m.deals.FindByFarm(farmID)
}

// DealByID looks up one deal.
func (m *FinanceManager) DealByID(id string) (*domain.FinanceDeal, error) {
	deal, ok := m.deals.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDealNotFound, id)
	}
	return deal, nil
}

// PayOff settles an active deal early by paying the remaining balance
// in full.
func (m *FinanceManager) PayOff(dealID string) (*domain.FinanceDeal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deal, ok := m.deals.FindByID(dealID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDealNotFound, dealID)
	}
	if deal.Status != domain.DealActive {
		return nil, fmt.Errorf("deal %s is %s, nothing to pay off", dealID, deal.Status)
	}

	farm, ok := m.farms.FindByID(deal.FarmID)
	if !ok {
		return nil, fmt.Errorf("%w: farm %d", ErrFarmNotFound, deal.FarmID)
	}

	payoff := deal.CurrentBalance
	if farm.Money < payoff {
		return nil, &InsufficientFundsError{Required: payoff, Available: farm.Money}
	}

	m.moveMoney(farm.ID, -payoff, domain.ReasonEarlyPayoff)
	deal.CurrentBalance = 0
	deal.Status = domain.DealPaidOff
	m.appendHistory(deal.FarmID, domain.OutcomeDealCompleted, DeltaDealCompleted)
	if err := m.deals.Save(deal); err != nil {
		return nil, fmt.Errorf("failed to save deal: %w", err)
	}

	m.scores.Invalidate(deal.FarmID)
	m.notifier.NotifyDealEvent("deal_paid_off", deal)

	return deal, nil
}

// ProcessMonth runs one monthly collection pass over every active
// deal. Calling it twice for the same month is a no-op: both the
// manager and each deal track the last month they processed.
func (m *FinanceManager) ProcessMonth(month int) MonthlyReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	report := MonthlyReport{Month: month}
	if month <= m.lastProcessedMonth {
		log.Printf("Warning: month %d already processed, ignoring duplicate tick", month)
		return report
	}

	for _, deal := range m.deals.FindAll() {
		if deal.Status != domain.DealActive || deal.LastProcessedMonth >= month {
			continue
		}
		report.DealsProcessed++
		m.collectPayment(deal, month, &report)
		deal.LastProcessedMonth = month
		deal.MonthsElapsed++
		if err := m.deals.Save(deal); err != nil {
			log.Printf("Warning: failed to save deal %s: %v", deal.ID, err)
		}
	}

	m.lastProcessedMonth = month
	report.InterestAccrued = roundTo2Decimals(report.InterestAccrued)
	return report
}

// collectPayment applies one monthly payment, interest first. A farm
// that cannot cover the payment misses the month: the balance stays
// put and the miss lands on its credit history.
func (m *FinanceManager) collectPayment(deal *domain.FinanceDeal, month int, report *MonthlyReport) {
	farm, ok := m.farms.FindByID(deal.FarmID)
	if !ok {
		log.Printf("Warning: farm %d missing for deal %s, skipping collection", deal.FarmID, deal.ID)
		return
	}

	monthlyRate := (deal.AnnualRate / 100) / 12
	interest := roundTo2Decimals(deal.CurrentBalance * monthlyRate)

	payment := deal.MonthlyPayment
	// Final installment: never collect past the remaining balance.
	if payment > deal.CurrentBalance+interest {
		payment = roundTo2Decimals(deal.CurrentBalance + interest)
	}

	if farm.Money < payment {
		deal.MissedInARow++
		report.PaymentsMissed++
		m.appendHistoryAt(deal.FarmID, month, domain.OutcomeMissed, DeltaMissed)
		m.scores.Invalidate(deal.FarmID)
		m.notifier.NotifyDealEvent("payment_missed", deal)

		if deal.MissedInARow >= DefaultMissedPayments {
			deal.Status = domain.DealDefaulted
			report.Defaulted++
			m.notifier.NotifyDealEvent("deal_defaulted", deal)
		}
		return
	}

	m.moveMoney(farm.ID, -payment, domain.ReasonMonthlyPayment)

	principal := payment - interest
	if principal < 0 {
		principal = 0
	}
	deal.CurrentBalance = roundTo2Decimals(deal.CurrentBalance - principal)
	if deal.CurrentBalance <= BalanceTolerance {
		deal.CurrentBalance = 0
	}
	deal.TotalInterestPaid = roundTo2Decimals(deal.TotalInterestPaid + interest)
	deal.MissedInARow = 0

	report.PaymentsCollected++
	report.InterestAccrued += interest
	m.appendHistoryAt(deal.FarmID, month, domain.OutcomeOnTime, DeltaOnTime)
	m.scores.Invalidate(deal.FarmID)

	if deal.CurrentBalance == 0 {
		deal.Status = domain.DealPaidOff
		report.PaidOff++
		m.appendHistoryAt(deal.FarmID, month, domain.OutcomeDealCompleted, DeltaDealCompleted)
		m.notifier.NotifyDealEvent("deal_paid_off", deal)
	}
}

// Stats aggregates a farm's lifetime financing activity.
func (m *FinanceManager) Stats(farmID int) domain.FarmFinanceStats {
	stats := domain.FarmFinanceStats{}
	for _, deal := range m.deals.FindByFarm(farmID) {
		stats.TotalFinanced += deal.AmountFinanced
		stats.TotalInterestPaid += deal.TotalInterestPaid
		switch deal.Status {
		case domain.DealActive:
			stats.ActiveDeals++
			stats.MonthlyObligation += deal.MonthlyPayment
			stats.OutstandingBalance += deal.CurrentBalance
		case domain.DealPaidOff:
			stats.CompletedDeals++
		case domain.DealDefaulted:
			stats.DefaultedDeals++
		}
	}
	stats.TotalFinanced = roundTo2Decimals(stats.TotalFinanced)
	stats.TotalInterestPaid = roundTo2Decimals(stats.TotalInterestPaid)
	stats.MonthlyObligation = roundTo2Decimals(stats.MonthlyObligation)
	stats.OutstandingBalance = roundTo2Decimals(stats.OutstandingBalance)
	return stats
}

// moveMoney delegates the balance change to the farm repository, the
// single owner of farm money, so sale proceeds landing mid-collection
// can never be lost.
func (m *FinanceManager) moveMoney(farmID int, amount float64, reason domain.MoneyReason) {
	if _, err := m.farms.AdjustMoney(farmID, amount); err != nil {
		log.Printf("Warning: failed to adjust money for farm %d: %v", farmID, err)
		return
	}
	m.notifier.NotifyMoney(farmID, amount, reason)
}

func (m *FinanceManager) appendHistory(farmID int, outcome domain.PaymentOutcome, delta int) {
	m.appendHistoryAt(farmID, m.lastProcessedMonth, outcome, delta)
}

func (m *FinanceManager) appendHistoryAt(farmID, month int, outcome domain.PaymentOutcome, delta int) {
	entry := domain.CreditHistoryEntry{
		FarmID:     farmID,
		Month:      month,
		RecordedAt: time.Now(),
		Outcome:    outcome,
		ScoreDelta: delta,
	}
	if err := m.history.Append(entry); err != nil {
		log.Printf("Warning: failed to append credit history for farm %d: %v", farmID, err)
	}
}

// yearsForTerm rounds a month count up to whole years for the land
// rate's term adjustment.
func yearsForTerm(termMonths int) int {
	years := termMonths / 12
	if termMonths%12 != 0 {
		years++
	}
	return years
}
