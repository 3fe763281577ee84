package service

// Per-year depreciation rates by completed year of age. Years beyond the
// table depreciate at laterYearRate.
var yearlyDepreciationRates = map[int]float64{
	0: 0.20,
	1: 0.15,
	2: 0.12,
	3: 0.10,
	4: 0.08,
}

const (
	laterYearRate = 0.05

	// A vehicle never depreciates below 10% of its base value.
	minDepreciationFactor = 0.10
)

// DepreciationFactor returns the cumulative remaining-value fraction for a
// vehicle of the given age in years: the product of (1 - rate) across all
// completed years, floored at minDepreciationFactor.
//
// An age of 0 means no completed depreciation years, so the factor is 1.0.
// Negative ages are treated as 0.
func DepreciationFactor(age int) float64 {
	remaining := 1.0
	for year := 0; year < age; year++ {
		rate, ok := yearlyDepreciationRates[year]
		if !ok {
			rate = laterYearRate
		}
		remaining *= 1 - rate
	}

	if remaining < minDepreciationFactor {
		return minDepreciationFactor
	}
	return remaining
}
