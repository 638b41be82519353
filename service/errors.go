package service

import (
	"errors"
	"fmt"
)

var (
	ErrFarmNotFound    = errors.New("farm not found")
	ErrDealNotFound    = errors.New("deal not found")
	ErrListingNotFound = errors.New("listing not found")
	ErrIneligible      = errors.New("not eligible")
)

// InsufficientFundsError rejects a mutation before any state changes
// and tells the dialog exactly how short the farm is.
type InsufficientFundsError struct {
	Required  float64
	Available float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need $%.2f, have $%.2f (short $%.2f)",
		e.Required, e.Available, e.Shortfall())
}

func (e *InsufficientFundsError) Shortfall() float64 {
	return roundTo2Decimals(e.Required - e.Available)
}
