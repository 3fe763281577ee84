package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorlend/motorlend/internal/domain/service"
	"github.com/motorlend/motorlend/internal/domain/valueobject"
)

var appraisalClock = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func testSnapshot() service.VehicleSnapshot {
	return service.VehicleSnapshot{
		VIN:       "JT2BF22K1W0123456",
		Make:      "Toyota",
		Model:     "Camry",
		Year:      2021,
		Mileage:   90_000,
		Condition: valueobject.ConditionGood,
	}
}

func newEngine() *service.ValuationEngine {
	return service.NewValuationEngine(service.DefaultValuationConfig())
}

func TestAppraise_FiveYearOldToyota(t *testing.T) {
	// base 28000, age 5 (dep 0.80*0.85*0.88*0.90*0.92), condition GOOD 0.85,
	// 15000 km excess (factor 0.997), popular make premium 1.05.
	appraisal, err := newEngine().Appraise(testSnapshot(), service.AppraisalOverrides{}, appraisalClock)
	require.NoError(t, err)

	assert.True(t, appraisal.EstimatedValue.Equal(decimal.NewFromInt(12345)),
		"estimated value should be 12345, got %s", appraisal.EstimatedValue)
	assert.True(t, appraisal.TradeInValue.Equal(decimal.NewFromInt(10493)),
		"trade-in should be 10493, got %s", appraisal.TradeInValue)
	assert.True(t, appraisal.RetailValue.Equal(decimal.NewFromInt(14196)),
		"retail should be 14196, got %s", appraisal.RetailValue)
	assert.True(t, appraisal.PrivatePartyValue.Equal(decimal.NewFromInt(11728)),
		"private party should be 11728, got %s", appraisal.PrivatePartyValue)

	assert.Equal(t, 85, appraisal.ConfidenceScore)
	assert.True(t, appraisal.Active)
	assert.Equal(t, appraisal.CreatedAt.AddDate(0, 0, 90), appraisal.ValidUntil)

	factors := appraisal.Factors
	assert.Equal(t, 5, factors.AgeYears)
	assert.Equal(t, 90_000.0, factors.Mileage)
	assert.Equal(t, "GOOD", factors.Condition)
	assert.InDelta(t, 105, factors.MarketDemandPct, 1e-9)
	assert.Equal(t, 1.0, factors.LocationAdjustment)
	assert.Equal(t, 1.0, factors.SeasonalFactor)
	assert.InDelta(t, 0.80*0.85*0.88*0.90*0.92, factors.DepreciationFactor, 1e-9)
}

func TestAppraise_Deterministic(t *testing.T) {
	engine := newEngine()
	first, err := engine.Appraise(testSnapshot(), service.AppraisalOverrides{}, appraisalClock)
	require.NoError(t, err)
	second, err := engine.Appraise(testSnapshot(), service.AppraisalOverrides{}, appraisalClock)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs must yield identical appraisals")
}

func TestAppraise_ValueOrdering(t *testing.T) {
	snapshots := []service.VehicleSnapshot{
		testSnapshot(),
		{Make: "Ferrari", Model: "Roma", Year: 2024, Mileage: 5_000, Condition: valueobject.ConditionExcellent},
		{Make: "Honda", Model: "Civic", Year: 2010, Mileage: 220_000, Condition: valueobject.ConditionFair},
	}

	for _, snap := range snapshots {
		a, err := newEngine().Appraise(snap, service.AppraisalOverrides{}, appraisalClock)
		require.NoError(t, err)

		assert.True(t, a.TradeInValue.LessThan(a.EstimatedValue),
			"%s %s: trade-in %s must be below estimate %s", snap.Make, snap.Model, a.TradeInValue, a.EstimatedValue)
		assert.True(t, a.RetailValue.GreaterThan(a.EstimatedValue),
			"%s %s: retail %s must be above estimate %s", snap.Make, snap.Model, a.RetailValue, a.EstimatedValue)
		assert.True(t, a.PrivatePartyValue.LessThan(a.EstimatedValue),
			"%s %s: private party %s must be below estimate %s", snap.Make, snap.Model, a.PrivatePartyValue, a.EstimatedValue)
	}
}

func TestAppraise_ExtremeMileageNeverGoesNegative(t *testing.T) {
	snap := testSnapshot()
	snap.Mileage = 50_000_000 // far beyond the unclamped break-even point

	appraisal, err := newEngine().Appraise(snap, service.AppraisalOverrides{}, appraisalClock)
	require.NoError(t, err)

	assert.True(t, appraisal.EstimatedValue.GreaterThanOrEqual(decimal.Zero),
		"estimated value must never be negative, got %s", appraisal.EstimatedValue)
	assert.True(t, appraisal.EstimatedValue.Equal(decimal.Zero),
		"mileage this extreme should clamp the estimate to zero")
}

func TestAppraise_PurchasePriceOverridesMakeTable(t *testing.T) {
	snap := testSnapshot()
	snap.PurchasePrice = 60_000

	withPrice, err := newEngine().Appraise(snap, service.AppraisalOverrides{}, appraisalClock)
	require.NoError(t, err)
	withoutPrice, err := newEngine().Appraise(testSnapshot(), service.AppraisalOverrides{}, appraisalClock)
	require.NoError(t, err)

	assert.True(t, withPrice.EstimatedValue.GreaterThan(withoutPrice.EstimatedValue))
}

func TestAppraise_UnknownMakeFallsBackToDefaultBase(t *testing.T) {
	snap := service.VehicleSnapshot{Make: "Zenvo", Model: "TS1", Year: 2026, Condition: valueobject.ConditionNew}

	appraisal, err := newEngine().Appraise(snap, service.AppraisalOverrides{}, appraisalClock)
	require.NoError(t, err)

	// Age 0, NEW condition, no excess mileage, not a popular make: the
	// estimate is exactly the global default base value.
	assert.True(t, appraisal.EstimatedValue.Equal(decimal.NewFromInt(30_000)),
		"got %s", appraisal.EstimatedValue)
}

func TestAppraise_FutureModelYearClampedToAgeZero(t *testing.T) {
	snap := testSnapshot()
	snap.Year = appraisalClock.Year() + 1

	appraisal, err := newEngine().Appraise(snap, service.AppraisalOverrides{}, appraisalClock)
	require.NoError(t, err)
	assert.Equal(t, 0, appraisal.Factors.AgeYears)
	assert.Equal(t, 1.0, appraisal.Factors.DepreciationFactor)
}

func TestAppraise_MissingYearIsValidationError(t *testing.T) {
	snap := testSnapshot()
	snap.Year = 0

	_, err := newEngine().Appraise(snap, service.AppraisalOverrides{}, appraisalClock)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestAppraise_Overrides(t *testing.T) {
	base, err := newEngine().Appraise(testSnapshot(), service.AppraisalOverrides{}, appraisalClock)
	require.NoError(t, err)

	overridden, err := newEngine().Appraise(testSnapshot(), service.AppraisalOverrides{
		Mileage:   200_000,
		Condition: valueobject.ConditionPoor,
	}, appraisalClock)
	require.NoError(t, err)

	assert.Equal(t, 200_000.0, overridden.Factors.Mileage)
	assert.Equal(t, "POOR", overridden.Factors.Condition)
	assert.True(t, overridden.EstimatedValue.LessThan(base.EstimatedValue))
}

func TestAppraise_UnsetConditionPricedAsGood(t *testing.T) {
	snap := testSnapshot()
	snap.Condition = valueobject.VehicleCondition{}

	withDefault, err := newEngine().Appraise(snap, service.AppraisalOverrides{}, appraisalClock)
	require.NoError(t, err)
	withGood, err := newEngine().Appraise(testSnapshot(), service.AppraisalOverrides{}, appraisalClock)
	require.NoError(t, err)

	assert.True(t, withDefault.EstimatedValue.Equal(withGood.EstimatedValue))
}
