package service

import "math"

// MonthlyPayment computes the fixed monthly payment for a loan using the
// standard annuity formula:
//
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// where r is the monthly rate (annualRate / 12) and n is the term in months.
// A zero annual rate degenerates to a straight-line split. The result is
// rounded to the currency's minor unit (2 decimals).
func MonthlyPayment(principal, annualRate float64, termMonths int) float64 {
	if annualRate == 0 {
		return round2(principal / float64(termMonths))
	}

	monthlyRate := annualRate / 12
	factor := math.Pow(1+monthlyRate, float64(termMonths))
	payment := principal * monthlyRate * factor / (factor - 1)

	return round2(payment)
}

// TotalPayable computes the total amount paid over the loan term from the
// already-rounded monthly payment. Rounding the single monthly figure and
// then multiplying introduces a small, bounded discrepancy versus summing a
// real amortization schedule; that approximation is the defined behavior.
func TotalPayable(monthlyPayment float64, termMonths int) float64 {
	return round2(monthlyPayment * float64(termMonths))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
