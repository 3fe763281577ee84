package service

import "fmt"

// ---------------------------------------------------------------------------
// EligibilityEngine – domain service for financing decisions
// ---------------------------------------------------------------------------

// maxDebtToIncomeRatio is the industry-standard DTI ceiling. It is a fixed
// rule, not configuration.
const maxDebtToIncomeRatio = 0.43

// Thresholds holds the configurable approval criteria. DefaultThresholds
// supplies production defaults; tests and callers may pass alternates.
type Thresholds struct {
	MinCreditScore           int
	MaxLoanToValueRatio      float64
	MinDownPaymentPercentage float64
	MaxLoanTermMonths        int
	Rates                    RateTable
}

// DefaultThresholds returns the standard approval criteria.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinCreditScore:           600,
		MaxLoanToValueRatio:      0.8,
		MinDownPaymentPercentage: 10,
		MaxLoanTermMonths:        72,
		Rates:                    DefaultRateTable(),
	}
}

// Validate reports whether the thresholds are usable.
func (t Thresholds) Validate() error {
	if t.MinCreditScore <= 0 || t.MaxLoanToValueRatio <= 0 ||
		t.MinDownPaymentPercentage < 0 || t.MaxLoanTermMonths <= 0 {
		return fmt.Errorf("%w: eligibility thresholds are not configured", ErrConfiguration)
	}
	return t.Rates.Validate()
}

// LoanApplicationInput carries the applicant financials and the vehicle value
// a financing request is evaluated against.
type LoanApplicationInput struct {
	CreditScore     int // 300-850
	VehicleValue    float64
	RequestedAmount float64
	DownPayment     float64
	MonthlyIncome   float64
	ExistingDebts   float64 // existing monthly debt obligations
	TermMonths      int
}

// CheckDirection states which side of the threshold passes.
type CheckDirection string

const (
	CheckMinimum CheckDirection = "minimum"
	CheckMaximum CheckDirection = "maximum"
)

// EligibilityCheck records the outcome of a single criterion.
type EligibilityCheck struct {
	Passed    bool           `json:"passed"`
	Value     float64        `json:"value"`
	Threshold float64        `json:"threshold"`
	Direction CheckDirection `json:"direction"`
}

// EligibilityDecision is the fully-explained outcome of an evaluation. All
// five checks are always populated, regardless of how many fail.
type EligibilityDecision struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons,omitempty"`

	CreditScore  EligibilityCheck `json:"credit_score"`
	LoanToValue  EligibilityCheck `json:"loan_to_value"`
	DownPayment  EligibilityCheck `json:"down_payment"`
	DebtToIncome EligibilityCheck `json:"debt_to_income"`
	LoanTerm     EligibilityCheck `json:"loan_term"`

	// RecommendedRate is set only on eligible decisions.
	RecommendedRate   float64 `json:"recommended_rate,omitempty"`
	MaxApprovedAmount float64 `json:"max_approved_amount"`
}

// Checks returns the five criterion records in evaluation order.
func (d EligibilityDecision) Checks() []EligibilityCheck {
	return []EligibilityCheck{d.CreditScore, d.LoanToValue, d.DownPayment, d.DebtToIncome, d.LoanTerm}
}

// EligibilityEngine evaluates financing requests against configured
// thresholds. It is a pure function of its inputs: no hidden state, no
// clock, no randomness.
type EligibilityEngine struct{}

// NewEligibilityEngine returns a new engine instance.
func NewEligibilityEngine() *EligibilityEngine {
	return &EligibilityEngine{}
}

// Evaluate runs all five criteria and produces a decision. Checks never
// short-circuit, so a rejection reports the status of every criterion.
func (e *EligibilityEngine) Evaluate(input LoanApplicationInput, cfg Thresholds) (EligibilityDecision, error) {
	if input.VehicleValue <= 0 {
		return EligibilityDecision{}, fmt.Errorf("%w: vehicle value must be positive", ErrValidation)
	}
	if input.MonthlyIncome <= 0 {
		return EligibilityDecision{}, fmt.Errorf("%w: monthly income must be positive", ErrValidation)
	}
	if err := cfg.Validate(); err != nil {
		return EligibilityDecision{}, err
	}

	decision := EligibilityDecision{Eligible: true}
	var reasons []string

	// 1. Credit score.
	decision.CreditScore = EligibilityCheck{
		Passed:    input.CreditScore >= cfg.MinCreditScore,
		Value:     float64(input.CreditScore),
		Threshold: float64(cfg.MinCreditScore),
		Direction: CheckMinimum,
	}
	if !decision.CreditScore.Passed {
		decision.Eligible = false
		reasons = append(reasons, fmt.Sprintf(
			"Credit score %d is below minimum required %d",
			input.CreditScore, cfg.MinCreditScore))
	}

	// 2. Loan-to-value, on the financed amount.
	financedAmount := input.RequestedAmount - input.DownPayment
	if financedAmount < 0 {
		financedAmount = 0
	}
	ltv := financedAmount / input.VehicleValue
	decision.LoanToValue = EligibilityCheck{
		Passed:    ltv <= cfg.MaxLoanToValueRatio,
		Value:     ltv,
		Threshold: cfg.MaxLoanToValueRatio,
		Direction: CheckMaximum,
	}
	if !decision.LoanToValue.Passed {
		decision.Eligible = false
		reasons = append(reasons, fmt.Sprintf(
			"Loan-to-value ratio %.2f%% exceeds maximum %.2f%%",
			ltv*100, cfg.MaxLoanToValueRatio*100))
	}

	// 3. Down payment percentage.
	downPaymentPct := input.DownPayment / input.VehicleValue * 100
	decision.DownPayment = EligibilityCheck{
		Passed:    downPaymentPct >= cfg.MinDownPaymentPercentage,
		Value:     downPaymentPct,
		Threshold: cfg.MinDownPaymentPercentage,
		Direction: CheckMinimum,
	}
	if !decision.DownPayment.Passed {
		decision.Eligible = false
		reasons = append(reasons, fmt.Sprintf(
			"Down payment %.2f%% is below minimum %g%%",
			downPaymentPct, cfg.MinDownPaymentPercentage))
	}

	// 4. Debt-to-income, using the tier rate the applicant would pay.
	rate := cfg.Rates.RateFor(input.CreditScore)
	monthlyPayment := MonthlyPayment(financedAmount, rate, input.TermMonths)
	dti := (monthlyPayment + input.ExistingDebts) / input.MonthlyIncome
	decision.DebtToIncome = EligibilityCheck{
		Passed:    dti <= maxDebtToIncomeRatio,
		Value:     dti,
		Threshold: maxDebtToIncomeRatio,
		Direction: CheckMaximum,
	}
	if !decision.DebtToIncome.Passed {
		decision.Eligible = false
		reasons = append(reasons, fmt.Sprintf(
			"Debt-to-income ratio %.2f%% exceeds maximum 43%%", dti*100))
	}

	// 5. Loan term.
	decision.LoanTerm = EligibilityCheck{
		Passed:    input.TermMonths <= cfg.MaxLoanTermMonths,
		Value:     float64(input.TermMonths),
		Threshold: float64(cfg.MaxLoanTermMonths),
		Direction: CheckMaximum,
	}
	if !decision.LoanTerm.Passed {
		decision.Eligible = false
		reasons = append(reasons, fmt.Sprintf(
			"Loan term %d months exceeds maximum %d months",
			input.TermMonths, cfg.MaxLoanTermMonths))
	}

	decision.Reasons = reasons

	if decision.Eligible {
		decision.RecommendedRate = rate
		decision.MaxApprovedAmount = input.RequestedAmount
		return decision, nil
	}

	// Fallback ceiling for rejected requests. The affordability term
	// multiplies a monthly figure by the term without discounting; that
	// inconsistency is long-standing, documented behavior and is pinned by
	// regression tests, so keep it literal.
	byCollateral := input.VehicleValue * cfg.MaxLoanToValueRatio
	byIncome := input.MonthlyIncome*maxDebtToIncomeRatio*float64(input.TermMonths) -
		input.ExistingDebts*float64(input.TermMonths)

	maxAmount := byCollateral
	if byIncome < maxAmount {
		maxAmount = byIncome
	}
	if maxAmount < 0 {
		maxAmount = 0
	}
	decision.MaxApprovedAmount = maxAmount

	return decision, nil
}
