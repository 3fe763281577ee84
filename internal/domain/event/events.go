package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/motorlend/motorlend/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Vehicle Events
// ---------------------------------------------------------------------------

// VehicleRegistered is raised when a vehicle enters the system.
type VehicleRegistered struct {
	events.BaseEvent
	VIN       string `json:"vin"`
	Make      string `json:"make"`
	Model     string `json:"model"`
	Year      int    `json:"year"`
	Condition string `json:"condition"`
}

func NewVehicleRegistered(vehicleID, vin, vehicleMake, model string, year int, condition string) VehicleRegistered {
	return VehicleRegistered{
		BaseEvent: events.NewBaseEvent("motorlend.vehicle.registered", vehicleID, "Vehicle"),
		VIN:       vin,
		Make:      vehicleMake,
		Model:     model,
		Year:      year,
		Condition: condition,
	}
}

// ---------------------------------------------------------------------------
// Valuation Events
// ---------------------------------------------------------------------------

// ValuationRecorded is raised when a new appraisal is stored for a vehicle.
type ValuationRecorded struct {
	events.BaseEvent
	VehicleID      string          `json:"vehicle_id"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	Source         string          `json:"source"`
	ValidUntil     time.Time       `json:"valid_until"`
}

func NewValuationRecorded(valuationID, vehicleID string, estimatedValue decimal.Decimal, source string, validUntil time.Time) ValuationRecorded {
	return ValuationRecorded{
		BaseEvent:      events.NewBaseEvent("motorlend.valuation.recorded", valuationID, "Valuation"),
		VehicleID:      vehicleID,
		EstimatedValue: estimatedValue,
		Source:         source,
		ValidUntil:     validUntil,
	}
}

// ---------------------------------------------------------------------------
// Loan Events
// ---------------------------------------------------------------------------

// LoanDecisioned is raised once when a loan application has been evaluated.
type LoanDecisioned struct {
	events.BaseEvent
	ApplicantEmail    string          `json:"applicant_email"`
	VehicleID         string          `json:"vehicle_id"`
	Eligible          bool            `json:"eligible"`
	RequestedAmount   decimal.Decimal `json:"requested_amount"`
	MaxApprovedAmount decimal.Decimal `json:"max_approved_amount"`
	Reasons           []string        `json:"reasons,omitempty"`
}

func NewLoanDecisioned(loanID, applicantEmail, vehicleID string, eligible bool, requested, maxApproved decimal.Decimal, reasons []string) LoanDecisioned {
	return LoanDecisioned{
		BaseEvent:         events.NewBaseEvent("motorlend.loan.decisioned", loanID, "Loan"),
		ApplicantEmail:    applicantEmail,
		VehicleID:         vehicleID,
		Eligible:          eligible,
		RequestedAmount:   requested,
		MaxApprovedAmount: maxApproved,
		Reasons:           reasons,
	}
}

// LoanStatusChanged is raised whenever a loan's lifecycle status is overwritten.
type LoanStatusChanged struct {
	events.BaseEvent
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
}

func NewLoanStatusChanged(loanID, previousStatus, newStatus string) LoanStatusChanged {
	return LoanStatusChanged{
		BaseEvent:      events.NewBaseEvent("motorlend.loan.status_changed", loanID, "Loan"),
		PreviousStatus: previousStatus,
		NewStatus:      newStatus,
	}
}
