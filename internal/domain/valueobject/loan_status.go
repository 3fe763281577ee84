package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the lifecycle stage of a financing application.
//
// Status updates are unconditional overwrites: the lifecycle deliberately
// carries no transition-legality rules, so any status may follow any other.
type LoanStatus struct {
	value string
}

const (
	loanStatusPending     = "PENDING"
	loanStatusUnderReview = "UNDER_REVIEW"
	loanStatusApproved    = "APPROVED"
	loanStatusRejected    = "REJECTED"
	loanStatusDisbursed   = "DISBURSED"
	loanStatusActive      = "ACTIVE"
	loanStatusCompleted   = "COMPLETED"
	loanStatusDefaulted   = "DEFAULTED"
	loanStatusCancelled   = "CANCELLED"
)

var (
	LoanStatusPending     = LoanStatus{value: loanStatusPending}
	LoanStatusUnderReview = LoanStatus{value: loanStatusUnderReview}
	LoanStatusApproved    = LoanStatus{value: loanStatusApproved}
	LoanStatusRejected    = LoanStatus{value: loanStatusRejected}
	LoanStatusDisbursed   = LoanStatus{value: loanStatusDisbursed}
	LoanStatusActive      = LoanStatus{value: loanStatusActive}
	LoanStatusCompleted   = LoanStatus{value: loanStatusCompleted}
	LoanStatusDefaulted   = LoanStatus{value: loanStatusDefaulted}
	LoanStatusCancelled   = LoanStatus{value: loanStatusCancelled}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusPending:     LoanStatusPending,
	loanStatusUnderReview: LoanStatusUnderReview,
	loanStatusApproved:    LoanStatusApproved,
	loanStatusRejected:    LoanStatusRejected,
	loanStatusDisbursed:   LoanStatusDisbursed,
	loanStatusActive:      LoanStatusActive,
	loanStatusCompleted:   LoanStatusCompleted,
	loanStatusDefaulted:   LoanStatusDefaulted,
	loanStatusCancelled:   LoanStatusCancelled,
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }
