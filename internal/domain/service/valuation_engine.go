package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/motorlend/motorlend/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// ValuationEngine – domain service for vehicle market-value estimation
// ---------------------------------------------------------------------------

// VehicleSnapshot carries the physical attributes a valuation is computed
// from. It is supplied per call and never retained by the engine.
type VehicleSnapshot struct {
	VIN           string
	Make          string
	Model         string
	Year          int
	Mileage       float64 // km
	Condition     valueobject.VehicleCondition
	PurchasePrice float64 // original purchase price; 0 = unknown
}

// AppraisalOverrides lets a caller replace the snapshot's mileage or
// condition for a single appraisal. Zero values fall back to the snapshot.
type AppraisalOverrides struct {
	Mileage   float64
	Condition valueobject.VehicleCondition
}

// ValuationFactors records every input the engine applied, making an
// Appraisal auditable.
type ValuationFactors struct {
	AgeYears           int     `json:"age_years"`
	Mileage            float64 `json:"mileage"`
	Condition          string  `json:"condition"`
	MarketDemandPct    float64 `json:"market_demand_pct"`
	LocationAdjustment float64 `json:"location_adjustment"`
	SeasonalFactor     float64 `json:"seasonal_factor"`
	DepreciationFactor float64 `json:"depreciation_factor"`
}

// Appraisal is the full output of a valuation run. It is immutable once
// produced; superseding an appraisal means computing a new one.
type Appraisal struct {
	EstimatedValue    decimal.Decimal
	TradeInValue      decimal.Decimal
	RetailValue       decimal.Decimal
	PrivatePartyValue decimal.Decimal
	ConfidenceScore   int
	Source            string
	Factors           ValuationFactors
	CreatedAt         time.Time
	ValidUntil        time.Time
	Active            bool
}

// ValuationConfig holds the pricing tables and tuning constants for the
// engine. DefaultValuationConfig supplies production defaults; every field
// is overridable.
type ValuationConfig struct {
	// BaseValuesByMake maps lower-cased makes to default base prices used
	// when a vehicle's original purchase price is unknown.
	BaseValuesByMake map[string]float64
	DefaultBaseValue float64

	// PopularMakes receive the demand premium multiplier.
	PopularMakes  map[string]struct{}
	DemandPremium float64

	// AnnualMileageBaseline is the expected km driven per year of age.
	// Mileage beyond age*baseline reduces value by ExcessMileageRate per km.
	AnnualMileageBaseline float64
	ExcessMileageRate     float64 // per km over expectation

	ConfidenceScore int
	ValidityDays    int
	Source          string
}

// DefaultValuationConfig returns the standard pricing configuration.
func DefaultValuationConfig() ValuationConfig {
	return ValuationConfig{
		BaseValuesByMake: map[string]float64{
			"toyota":        28000,
			"honda":         27000,
			"ford":          35000,
			"tesla":         45000,
			"bmw":           42000,
			"mercedes-benz": 50000,
		},
		DefaultBaseValue: 30000,
		PopularMakes: map[string]struct{}{
			"toyota":    {},
			"honda":     {},
			"ford":      {},
			"chevrolet": {},
		},
		DemandPremium:         1.05,
		AnnualMileageBaseline: 15000,
		ExcessMileageRate:     0.0002 / 1000, // 0.02% per 1000 km
		ConfidenceScore:       85,
		ValidityDays:          90,
		Source:                "Motorlend Valuation Engine v1.0",
	}
}

// ValuationEngine estimates a vehicle's market value from its physical
// attributes. It is stateless apart from its read-only configuration and is
// safe for concurrent use.
type ValuationEngine struct {
	cfg ValuationConfig
}

// NewValuationEngine returns an engine using the given configuration.
func NewValuationEngine(cfg ValuationConfig) *ValuationEngine {
	return &ValuationEngine{cfg: cfg}
}

// Appraise computes a full valuation for the vehicle as of now. The caller
// supplies the clock so repeated calls with identical inputs are
// reproducible.
//
// The estimated value is
//
//	base * depreciation(age) * condition * mileageFactor * demand
//
// rounded to the nearest whole currency unit. Trade-in, retail and
// private-party values are fixed ratios (0.85 / 1.15 / 0.95) of the
// unrounded estimate, each rounded independently.
func (e *ValuationEngine) Appraise(vehicle VehicleSnapshot, overrides AppraisalOverrides, now time.Time) (Appraisal, error) {
	if vehicle.Year == 0 {
		return Appraisal{}, fmt.Errorf("%w: vehicle manufacturing year is required", ErrValidation)
	}

	mileage := vehicle.Mileage
	if overrides.Mileage > 0 {
		mileage = overrides.Mileage
	}
	condition := vehicle.Condition
	if !overrides.Condition.IsZero() {
		condition = overrides.Condition
	}

	baseValue := e.baseValue(vehicle)

	// A model year in the future is priced as a current-year vehicle.
	age := now.Year() - vehicle.Year
	if age < 0 {
		age = 0
	}

	depreciation := DepreciationFactor(age)
	conditionMultiplier := condition.Multiplier()
	mileageFactor := e.mileageFactor(age, mileage)
	demand := e.marketDemand(vehicle.Make)

	estimated := baseValue * depreciation * conditionMultiplier * mileageFactor * demand

	createdAt := now.UTC()
	return Appraisal{
		EstimatedValue:    roundWhole(estimated),
		TradeInValue:      roundWhole(estimated * 0.85),
		RetailValue:       roundWhole(estimated * 1.15),
		PrivatePartyValue: roundWhole(estimated * 0.95),
		ConfidenceScore:   e.cfg.ConfidenceScore,
		Source:            e.cfg.Source,
		Factors: ValuationFactors{
			AgeYears:           age,
			Mileage:            mileage,
			Condition:          condition.String(),
			MarketDemandPct:    demand * 100,
			LocationAdjustment: 1.0,
			SeasonalFactor:     1.0,
			DepreciationFactor: depreciation,
		},
		CreatedAt:  createdAt,
		ValidUntil: createdAt.AddDate(0, 0, e.cfg.ValidityDays),
		Active:     true,
	}, nil
}

// baseValue resolves the starting price: a known purchase price wins,
// otherwise the make table, otherwise the global default.
func (e *ValuationEngine) baseValue(vehicle VehicleSnapshot) float64 {
	if vehicle.PurchasePrice > 0 {
		return vehicle.PurchasePrice
	}
	if v, ok := e.cfg.BaseValuesByMake[strings.ToLower(vehicle.Make)]; ok {
		return v
	}
	return e.cfg.DefaultBaseValue
}

// mileageFactor computes the value retention factor for mileage beyond the
// expected total for the vehicle's age. The factor is clamped to [0, 1]:
// without the clamp, extreme mileage could drive the estimate negative.
func (e *ValuationEngine) mileageFactor(age int, mileage float64) float64 {
	expected := float64(age) * e.cfg.AnnualMileageBaseline
	excess := mileage - expected
	if excess < 0 {
		excess = 0
	}

	factor := 1 - excess*e.cfg.ExcessMileageRate
	if factor < 0 {
		return 0
	}
	if factor > 1 {
		return 1
	}
	return factor
}

// marketDemand returns the demand multiplier for the make.
func (e *ValuationEngine) marketDemand(vehicleMake string) float64 {
	if _, ok := e.cfg.PopularMakes[strings.ToLower(vehicleMake)]; ok {
		return e.cfg.DemandPremium
	}
	return 1.0
}

func roundWhole(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(0)
}
