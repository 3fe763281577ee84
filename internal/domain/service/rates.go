package service

import "fmt"

// ---------------------------------------------------------------------------
// Interest rate tiers
// ---------------------------------------------------------------------------

// RateTable holds the annual interest rate for each credit tier. Rates are
// configuration, not constants: DefaultRateTable supplies the defaults and
// callers may override any tier.
type RateTable struct {
	Excellent float64 // credit score >= 750
	Good      float64 // credit score >= 700
	Fair      float64 // credit score >= 650
	Poor      float64 // everything below
}

// DefaultRateTable returns the standard rate tiers.
func DefaultRateTable() RateTable {
	return RateTable{
		Excellent: 0.05,
		Good:      0.08,
		Fair:      0.12,
		Poor:      0.18,
	}
}

// RateFor resolves the annual interest rate for a credit score. Thresholds
// are evaluated high to low, first match wins.
func (t RateTable) RateFor(creditScore int) float64 {
	switch {
	case creditScore >= 750:
		return t.Excellent
	case creditScore >= 700:
		return t.Good
	case creditScore >= 650:
		return t.Fair
	default:
		return t.Poor
	}
}

// Validate reports whether the table is usable. A zero-valued table means the
// tiers were never configured.
func (t RateTable) Validate() error {
	if t == (RateTable{}) {
		return fmt.Errorf("%w: rate tiers are not configured", ErrConfiguration)
	}
	for _, r := range []float64{t.Excellent, t.Good, t.Fair, t.Poor} {
		if r < 0 {
			return fmt.Errorf("%w: rate tiers must be non-negative", ErrConfiguration)
		}
	}
	return nil
}
