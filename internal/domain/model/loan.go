package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motorlend/motorlend/internal/domain/event"
	"github.com/motorlend/motorlend/internal/domain/service"
	"github.com/motorlend/motorlend/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Loan aggregate root
// ---------------------------------------------------------------------------

// Loan is an immutable aggregate. Mutations return a new copy.
type Loan struct {
	id             string
	applicantName  string
	applicantEmail string
	vehicleID      string

	requestedAmount decimal.Decimal
	downPayment     decimal.Decimal
	vehicleValue    decimal.Decimal
	monthlyIncome   decimal.Decimal
	existingDebts   decimal.Decimal
	creditScore     int
	termMonths      int

	decision       service.EligibilityDecision
	interestRate   float64
	monthlyPayment decimal.Decimal
	totalPayable   decimal.Decimal
	loanToValue    float64
	debtToIncome   float64

	status         valueobject.LoanStatus
	statusReason   string
	approvedAmount decimal.Decimal
	approvedAt     *time.Time
	rejectedAt     *time.Time
	disbursedAt    *time.Time

	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLoan creates a decisioned loan application. Eligible applications start
// in UNDER_REVIEW with the requested amount approved; ineligible ones start
// in REJECTED with the decision reasons joined into the status reason.
func NewLoan(
	applicantName, applicantEmail, vehicleID string,
	requestedAmount, downPayment, vehicleValue, monthlyIncome, existingDebts decimal.Decimal,
	creditScore, termMonths int,
	decision service.EligibilityDecision,
	interestRate float64,
	monthlyPayment, totalPayable decimal.Decimal,
	now time.Time,
) (Loan, error) {
	if applicantName == "" {
		return Loan{}, fmt.Errorf("applicant name is required")
	}
	if applicantEmail == "" {
		return Loan{}, fmt.Errorf("applicant email is required")
	}
	if vehicleID == "" {
		return Loan{}, fmt.Errorf("vehicle ID is required")
	}
	if requestedAmount.LessThanOrEqual(decimal.Zero) {
		return Loan{}, fmt.Errorf("requested amount must be positive")
	}
	if termMonths <= 0 {
		return Loan{}, fmt.Errorf("term months must be positive")
	}

	id := uuid.New().String()

	loan := Loan{
		id:              id,
		applicantName:   applicantName,
		applicantEmail:  applicantEmail,
		vehicleID:       vehicleID,
		requestedAmount: requestedAmount,
		downPayment:     downPayment,
		vehicleValue:    vehicleValue,
		monthlyIncome:   monthlyIncome,
		existingDebts:   existingDebts,
		creditScore:     creditScore,
		termMonths:      termMonths,
		decision:        decision,
		interestRate:    interestRate,
		monthlyPayment:  monthlyPayment,
		totalPayable:    totalPayable,
		loanToValue:     decision.LoanToValue.Value,
		debtToIncome:    decision.DebtToIncome.Value,
		approvedAmount:  decimal.NewFromFloat(decision.MaxApprovedAmount).Round(2),
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}

	if decision.Eligible {
		loan.status = valueobject.LoanStatusUnderReview
		loan.statusReason = "Application passed automated eligibility checks"
	} else {
		loan.status = valueobject.LoanStatusRejected
		loan.statusReason = joinReasons(decision.Reasons)
		rejectedAt := now
		loan.rejectedAt = &rejectedAt
	}

	loan.domainEvents = append(loan.domainEvents, event.NewLoanDecisioned(
		id, applicantEmail, vehicleID, decision.Eligible,
		requestedAmount, loan.approvedAmount, decision.Reasons,
	))

	return loan, nil
}

// ReconstructLoan rebuilds a Loan aggregate from persistence.
func ReconstructLoan(
	id, applicantName, applicantEmail, vehicleID string,
	requestedAmount, downPayment, vehicleValue, monthlyIncome, existingDebts decimal.Decimal,
	creditScore, termMonths int,
	decision service.EligibilityDecision,
	interestRate float64,
	monthlyPayment, totalPayable decimal.Decimal,
	loanToValue, debtToIncome float64,
	status valueobject.LoanStatus,
	statusReason string,
	approvedAmount decimal.Decimal,
	approvedAt, rejectedAt, disbursedAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) Loan {
	return Loan{
		id:              id,
		applicantName:   applicantName,
		applicantEmail:  applicantEmail,
		vehicleID:       vehicleID,
		requestedAmount: requestedAmount,
		downPayment:     downPayment,
		vehicleValue:    vehicleValue,
		monthlyIncome:   monthlyIncome,
		existingDebts:   existingDebts,
		creditScore:     creditScore,
		termMonths:      termMonths,
		decision:        decision,
		interestRate:    interestRate,
		monthlyPayment:  monthlyPayment,
		totalPayable:    totalPayable,
		loanToValue:     loanToValue,
		debtToIncome:    debtToIncome,
		status:          status,
		statusReason:    statusReason,
		approvedAmount:  approvedAmount,
		approvedAt:      approvedAt,
		rejectedAt:      rejectedAt,
		disbursedAt:     disbursedAt,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// UpdateStatus overwrites the loan status unconditionally. The lifecycle has
// no transition-legality rules: any status may follow any other, and
// re-applying the current status still stamps updatedAt and emits the event.
// APPROVED, REJECTED and DISBURSED stamp their timestamp; REJECTED also
// clears the approved amount.
func (l Loan) UpdateStatus(status valueobject.LoanStatus, reason string, now time.Time) (Loan, error) {
	if status.IsZero() {
		return l, fmt.Errorf("status is required")
	}

	next := l
	previous := l.status
	next.status = status
	next.statusReason = reason
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)

	switch {
	case status.Equal(valueobject.LoanStatusApproved):
		at := now
		next.approvedAt = &at
	case status.Equal(valueobject.LoanStatusRejected):
		at := now
		next.rejectedAt = &at
		next.approvedAmount = decimal.Zero
	case status.Equal(valueobject.LoanStatusDisbursed):
		at := now
		next.disbursedAt = &at
	}

	next.domainEvents = append(next.domainEvents, event.NewLoanStatusChanged(
		l.id, previous.String(), status.String(),
	))

	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() string                            { return l.id }
func (l Loan) ApplicantName() string                 { return l.applicantName }
func (l Loan) ApplicantEmail() string                { return l.applicantEmail }
func (l Loan) VehicleID() string                     { return l.vehicleID }
func (l Loan) RequestedAmount() decimal.Decimal      { return l.requestedAmount }
func (l Loan) DownPayment() decimal.Decimal          { return l.downPayment }
func (l Loan) VehicleValue() decimal.Decimal         { return l.vehicleValue }
func (l Loan) MonthlyIncome() decimal.Decimal        { return l.monthlyIncome }
func (l Loan) ExistingDebts() decimal.Decimal        { return l.existingDebts }
func (l Loan) CreditScore() int                      { return l.creditScore }
func (l Loan) TermMonths() int                       { return l.termMonths }
func (l Loan) Decision() service.EligibilityDecision { return l.decision }
func (l Loan) InterestRate() float64                 { return l.interestRate }
func (l Loan) MonthlyPayment() decimal.Decimal       { return l.monthlyPayment }
func (l Loan) TotalPayable() decimal.Decimal         { return l.totalPayable }
func (l Loan) LoanToValue() float64                  { return l.loanToValue }
func (l Loan) DebtToIncome() float64                 { return l.debtToIncome }
func (l Loan) Status() valueobject.LoanStatus        { return l.status }
func (l Loan) StatusReason() string                  { return l.statusReason }
func (l Loan) ApprovedAmount() decimal.Decimal       { return l.approvedAmount }
func (l Loan) ApprovedAt() *time.Time                { return l.approvedAt }
func (l Loan) RejectedAt() *time.Time                { return l.rejectedAt }
func (l Loan) DisbursedAt() *time.Time               { return l.disbursedAt }
func (l Loan) Version() int                          { return l.version }
func (l Loan) CreatedAt() time.Time                  { return l.createdAt }
func (l Loan) UpdatedAt() time.Time                  { return l.updatedAt }
func (l Loan) DomainEvents() []event.DomainEvent     { return l.domainEvents }

// ClearEvents returns a copy with an empty event list.
func (l Loan) ClearEvents() Loan {
	next := l
	next.domainEvents = nil
	return next
}

func joinReasons(reasons []string) string {
	return strings.Join(reasons, "; ")
}
