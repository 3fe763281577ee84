package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorlend/motorlend/internal/domain/service"
)

func eligibleInput() service.LoanApplicationInput {
	return service.LoanApplicationInput{
		CreditScore:     750,
		VehicleValue:    10_000_000,
		RequestedAmount: 8_000_000,
		DownPayment:     2_000_000,
		MonthlyIncome:   500_000,
		TermMonths:      48,
	}
}

func TestEvaluate_EligibleApplication(t *testing.T) {
	engine := service.NewEligibilityEngine()

	decision, err := engine.Evaluate(eligibleInput(), service.DefaultThresholds())
	require.NoError(t, err)

	assert.True(t, decision.Eligible)
	assert.Empty(t, decision.Reasons)

	assert.True(t, decision.CreditScore.Passed)
	assert.Equal(t, 750.0, decision.CreditScore.Value)

	// financed = 8M - 2M = 6M against a 10M vehicle.
	assert.True(t, decision.LoanToValue.Passed)
	assert.InDelta(t, 0.6, decision.LoanToValue.Value, 1e-9)

	assert.True(t, decision.DownPayment.Passed)
	assert.InDelta(t, 20, decision.DownPayment.Value, 1e-9)

	// 6M at the excellent tier (5%) over 48 months is ~138,164/month.
	assert.True(t, decision.DebtToIncome.Passed)
	assert.InDelta(t, 0.276, decision.DebtToIncome.Value, 0.001)

	assert.True(t, decision.LoanTerm.Passed)

	assert.Equal(t, 0.05, decision.RecommendedRate)
	assert.Equal(t, 8_000_000.0, decision.MaxApprovedAmount)
}

func TestEvaluate_RejectedOnCreditScoreOnly(t *testing.T) {
	engine := service.NewEligibilityEngine()
	input := eligibleInput()
	input.CreditScore = 580

	decision, err := engine.Evaluate(input, service.DefaultThresholds())
	require.NoError(t, err)

	assert.False(t, decision.Eligible)
	require.Len(t, decision.Reasons, 1)
	assert.Contains(t, decision.Reasons[0], "Credit score 580")

	// The remaining four checks still pass and are still reported.
	assert.False(t, decision.CreditScore.Passed)
	assert.True(t, decision.LoanToValue.Passed)
	assert.True(t, decision.DownPayment.Passed)
	assert.True(t, decision.DebtToIncome.Passed)
	assert.True(t, decision.LoanTerm.Passed)

	assert.Zero(t, decision.RecommendedRate)

	// Regression baseline for the fallback ceiling:
	// min(10M * 0.8, 500K * 0.43 * 48 - 0) = min(8M, 10.32M) = 8M.
	assert.Equal(t, 8_000_000.0, decision.MaxApprovedAmount)
}

func TestEvaluate_AlwaysReportsFiveChecks(t *testing.T) {
	engine := service.NewEligibilityEngine()

	// Fail everything at once.
	input := service.LoanApplicationInput{
		CreditScore:     400,
		VehicleValue:    1_000_000,
		RequestedAmount: 5_000_000,
		DownPayment:     0,
		MonthlyIncome:   50_000,
		ExistingDebts:   40_000,
		TermMonths:      120,
	}

	decision, err := engine.Evaluate(input, service.DefaultThresholds())
	require.NoError(t, err)

	checks := decision.Checks()
	require.Len(t, checks, 5, "all five checks are always reported")
	for i, check := range checks {
		assert.False(t, check.Passed, "check %d should fail", i)
	}
	assert.Len(t, decision.Reasons, 5, "one reason per failed check")
	assert.False(t, decision.Eligible)
}

func TestEvaluate_ReasonCountMatchesFailedChecks(t *testing.T) {
	engine := service.NewEligibilityEngine()

	// Fail term and down payment, pass the rest.
	input := eligibleInput()
	input.DownPayment = 500_000
	input.TermMonths = 84

	decision, err := engine.Evaluate(input, service.DefaultThresholds())
	require.NoError(t, err)

	failed := 0
	for _, check := range decision.Checks() {
		if !check.Passed {
			failed++
		}
	}
	assert.Equal(t, failed, len(decision.Reasons))
}

func TestEvaluate_ReasonsFollowCheckOrder(t *testing.T) {
	engine := service.NewEligibilityEngine()
	input := eligibleInput()
	input.CreditScore = 580
	input.TermMonths = 84

	decision, err := engine.Evaluate(input, service.DefaultThresholds())
	require.NoError(t, err)

	require.Len(t, decision.Reasons, 2)
	assert.Contains(t, decision.Reasons[0], "Credit score")
	assert.Contains(t, decision.Reasons[1], "Loan term")
}

func TestEvaluate_ExcessDownPaymentClampsFinancedAmount(t *testing.T) {
	engine := service.NewEligibilityEngine()
	input := eligibleInput()
	input.DownPayment = 9_000_000 // more than requested

	decision, err := engine.Evaluate(input, service.DefaultThresholds())
	require.NoError(t, err)

	assert.True(t, decision.LoanToValue.Passed)
	assert.Zero(t, decision.LoanToValue.Value, "financed amount floors at zero")
}

func TestEvaluate_ExistingDebtsRaiseDTI(t *testing.T) {
	engine := service.NewEligibilityEngine()

	clean, err := engine.Evaluate(eligibleInput(), service.DefaultThresholds())
	require.NoError(t, err)

	input := eligibleInput()
	input.ExistingDebts = 100_000
	indebted, err := engine.Evaluate(input, service.DefaultThresholds())
	require.NoError(t, err)

	assert.Greater(t, indebted.DebtToIncome.Value, clean.DebtToIncome.Value)
	assert.False(t, indebted.DebtToIncome.Passed)
}

func TestEvaluate_Deterministic(t *testing.T) {
	engine := service.NewEligibilityEngine()
	input := eligibleInput()
	input.CreditScore = 580

	first, err := engine.Evaluate(input, service.DefaultThresholds())
	require.NoError(t, err)
	second, err := engine.Evaluate(input, service.DefaultThresholds())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEvaluate_ValidationErrors(t *testing.T) {
	engine := service.NewEligibilityEngine()

	t.Run("zero vehicle value", func(t *testing.T) {
		input := eligibleInput()
		input.VehicleValue = 0
		_, err := engine.Evaluate(input, service.DefaultThresholds())
		assert.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("negative vehicle value", func(t *testing.T) {
		input := eligibleInput()
		input.VehicleValue = -1
		_, err := engine.Evaluate(input, service.DefaultThresholds())
		assert.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("zero monthly income", func(t *testing.T) {
		input := eligibleInput()
		input.MonthlyIncome = 0
		_, err := engine.Evaluate(input, service.DefaultThresholds())
		assert.ErrorIs(t, err, service.ErrValidation)
	})
}

func TestEvaluate_MissingConfigurationIsConfigurationError(t *testing.T) {
	engine := service.NewEligibilityEngine()

	t.Run("zero thresholds", func(t *testing.T) {
		_, err := engine.Evaluate(eligibleInput(), service.Thresholds{})
		assert.ErrorIs(t, err, service.ErrConfiguration)
	})

	t.Run("missing rate tiers", func(t *testing.T) {
		cfg := service.DefaultThresholds()
		cfg.Rates = service.RateTable{}
		_, err := engine.Evaluate(eligibleInput(), cfg)
		assert.ErrorIs(t, err, service.ErrConfiguration)
	})
}

func TestEvaluate_AlternateThresholds(t *testing.T) {
	engine := service.NewEligibilityEngine()

	cfg := service.DefaultThresholds()
	cfg.MinCreditScore = 760

	decision, err := engine.Evaluate(eligibleInput(), cfg)
	require.NoError(t, err)
	assert.False(t, decision.Eligible)
	assert.False(t, decision.CreditScore.Passed)
}
