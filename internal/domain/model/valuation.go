package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motorlend/motorlend/internal/domain/event"
	"github.com/motorlend/motorlend/internal/domain/service"
)

// ---------------------------------------------------------------------------
// Valuation aggregate root
// ---------------------------------------------------------------------------

// Valuation is a stored appraisal for a vehicle. The figures are never
// recomputed in place; a fresher appraisal is a new Valuation and the prior
// one is deactivated.
type Valuation struct {
	id           string
	vehicleID    string
	appraisal    service.Appraisal
	version      int
	domainEvents []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewValuation records an appraisal produced by the valuation engine.
func NewValuation(vehicleID string, appraisal service.Appraisal) (Valuation, error) {
	if vehicleID == "" {
		return Valuation{}, fmt.Errorf("vehicle ID is required")
	}
	if appraisal.EstimatedValue.LessThanOrEqual(decimal.Zero) {
		return Valuation{}, fmt.Errorf("estimated value must be positive")
	}

	id := uuid.New().String()
	valuation := Valuation{
		id:        id,
		vehicleID: vehicleID,
		appraisal: appraisal,
		version:   1,
	}

	valuation.domainEvents = append(valuation.domainEvents, event.NewValuationRecorded(
		id, vehicleID, appraisal.EstimatedValue, appraisal.Source, appraisal.ValidUntil,
	))

	return valuation, nil
}

// ReconstructValuation rebuilds a Valuation aggregate from persistence.
func ReconstructValuation(id, vehicleID string, appraisal service.Appraisal, version int) Valuation {
	return Valuation{
		id:        id,
		vehicleID: vehicleID,
		appraisal: appraisal,
		version:   version,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// Deactivate marks the valuation as superseded.
func (v Valuation) Deactivate() Valuation {
	next := v
	next.appraisal.Active = false
	next.domainEvents = copyEvents(v.domainEvents)
	return next
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (v Valuation) ID() string                            { return v.id }
func (v Valuation) VehicleID() string                     { return v.vehicleID }
func (v Valuation) EstimatedValue() decimal.Decimal       { return v.appraisal.EstimatedValue }
func (v Valuation) TradeInValue() decimal.Decimal         { return v.appraisal.TradeInValue }
func (v Valuation) RetailValue() decimal.Decimal          { return v.appraisal.RetailValue }
func (v Valuation) PrivatePartyValue() decimal.Decimal    { return v.appraisal.PrivatePartyValue }
func (v Valuation) ConfidenceScore() int                  { return v.appraisal.ConfidenceScore }
func (v Valuation) Source() string                        { return v.appraisal.Source }
func (v Valuation) Factors() service.ValuationFactors     { return v.appraisal.Factors }
func (v Valuation) CreatedAt() time.Time                  { return v.appraisal.CreatedAt }
func (v Valuation) ValidUntil() time.Time                 { return v.appraisal.ValidUntil }
func (v Valuation) Active() bool                          { return v.appraisal.Active }
func (v Valuation) Version() int                          { return v.version }
func (v Valuation) Appraisal() service.Appraisal          { return v.appraisal }
func (v Valuation) DomainEvents() []event.DomainEvent     { return v.domainEvents }

// Expired reports whether the appraisal window has lapsed as of now.
func (v Valuation) Expired(now time.Time) bool {
	return now.After(v.appraisal.ValidUntil)
}

// ClearEvents returns a copy with an empty event list.
func (v Valuation) ClearEvents() Valuation {
	next := v
	next.domainEvents = nil
	return next
}
