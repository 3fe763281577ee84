package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/motorlend/motorlend/internal/domain/event"
	"github.com/motorlend/motorlend/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Vehicle aggregate root
// ---------------------------------------------------------------------------

// Vehicle is an immutable aggregate. Mutations return a new copy.
type Vehicle struct {
	id            string
	vin           string
	make          string
	model         string
	year          int
	mileage       float64
	condition     valueobject.VehicleCondition
	purchasePrice float64 // 0 = unknown
	active        bool
	version       int
	createdAt     time.Time
	updatedAt     time.Time
	domainEvents  []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewVehicle registers a vehicle. The VIN is normalised to upper case; the
// model year may be at most one year ahead of the wall clock.
func NewVehicle(
	vin, vehicleMake, vehicleModel string,
	year int,
	mileage float64,
	condition valueobject.VehicleCondition,
	purchasePrice float64,
	now time.Time,
) (Vehicle, error) {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	if vin == "" {
		return Vehicle{}, fmt.Errorf("vin is required")
	}
	if vehicleMake == "" {
		return Vehicle{}, fmt.Errorf("make is required")
	}
	if vehicleModel == "" {
		return Vehicle{}, fmt.Errorf("model is required")
	}
	if year <= 0 {
		return Vehicle{}, fmt.Errorf("year is required")
	}
	if nextYear := now.Year() + 1; year > nextYear {
		return Vehicle{}, fmt.Errorf("year %d is beyond next model year %d", year, nextYear)
	}
	if mileage < 0 {
		return Vehicle{}, fmt.Errorf("mileage cannot be negative")
	}
	if condition.IsZero() {
		condition = valueobject.ConditionGood
	}

	id := uuid.New().String()
	vehicle := Vehicle{
		id:            id,
		vin:           vin,
		make:          vehicleMake,
		model:         vehicleModel,
		year:          year,
		mileage:       mileage,
		condition:     condition,
		purchasePrice: purchasePrice,
		active:        true,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}

	vehicle.domainEvents = append(vehicle.domainEvents, event.NewVehicleRegistered(
		id, vin, vehicleMake, vehicleModel, year, condition.String(),
	))

	return vehicle, nil
}

// ReconstructVehicle rebuilds a Vehicle aggregate from persistence.
func ReconstructVehicle(
	id, vin, vehicleMake, vehicleModel string,
	year int,
	mileage float64,
	condition valueobject.VehicleCondition,
	purchasePrice float64,
	active bool,
	version int,
	createdAt, updatedAt time.Time,
) Vehicle {
	return Vehicle{
		id:            id,
		vin:           vin,
		make:          vehicleMake,
		model:         vehicleModel,
		year:          year,
		mileage:       mileage,
		condition:     condition,
		purchasePrice: purchasePrice,
		active:        active,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// RecordMileage updates the odometer reading. Readings lower than the current
// one are rejected.
func (v Vehicle) RecordMileage(mileage float64, now time.Time) (Vehicle, error) {
	if mileage < v.mileage {
		return v, fmt.Errorf("mileage %.0f is below current reading %.0f", mileage, v.mileage)
	}
	next := v
	next.mileage = mileage
	next.updatedAt = now
	next.domainEvents = copyEvents(v.domainEvents)
	return next, nil
}

// Deactivate retires the vehicle from financing.
func (v Vehicle) Deactivate(now time.Time) Vehicle {
	next := v
	next.active = false
	next.updatedAt = now
	next.domainEvents = copyEvents(v.domainEvents)
	return next
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (v Vehicle) ID() string                              { return v.id }
func (v Vehicle) VIN() string                             { return v.vin }
func (v Vehicle) Make() string                            { return v.make }
func (v Vehicle) Model() string                           { return v.model }
func (v Vehicle) Year() int                               { return v.year }
func (v Vehicle) Mileage() float64                        { return v.mileage }
func (v Vehicle) Condition() valueobject.VehicleCondition { return v.condition }
func (v Vehicle) PurchasePrice() float64                  { return v.purchasePrice }
func (v Vehicle) Active() bool                            { return v.active }
func (v Vehicle) Version() int                            { return v.version }
func (v Vehicle) CreatedAt() time.Time                    { return v.createdAt }
func (v Vehicle) UpdatedAt() time.Time                    { return v.updatedAt }
func (v Vehicle) DomainEvents() []event.DomainEvent       { return v.domainEvents }

// ClearEvents returns a copy with an empty event list.
func (v Vehicle) ClearEvents() Vehicle {
	next := v
	next.domainEvents = nil
	return next
}

func copyEvents(events []event.DomainEvent) []event.DomainEvent {
	if events == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(events))
	copy(out, events)
	return out
}
