package port

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/motorlend/motorlend/internal/domain/event"
	"github.com/motorlend/motorlend/internal/domain/model"
	"github.com/motorlend/motorlend/internal/domain/service"
	"github.com/motorlend/motorlend/internal/domain/valueobject"
)

// Not-found sentinels. Repositories return these wrapped, so callers test
// with errors.Is.
var (
	ErrVehicleNotFound   = errors.New("vehicle not found")
	ErrValuationNotFound = errors.New("valuation not found")
	ErrLoanNotFound      = errors.New("loan not found")
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// VehicleRepository persists and retrieves vehicles.
type VehicleRepository interface {
	Save(ctx context.Context, vehicle model.Vehicle) error
	FindByID(ctx context.Context, id string) (model.Vehicle, error)
	FindByVIN(ctx context.Context, vin string) (model.Vehicle, error)
	FindAll(ctx context.Context, limit, offset int) ([]model.Vehicle, error)
}

// ValuationRepository persists and retrieves valuations.
type ValuationRepository interface {
	Save(ctx context.Context, valuation model.Valuation) error
	FindByID(ctx context.Context, id string) (model.Valuation, error)
	FindByVehicleID(ctx context.Context, vehicleID string) ([]model.Valuation, error)
	FindLatestActive(ctx context.Context, vehicleID string) (model.Valuation, error)
	DeactivateForVehicle(ctx context.Context, vehicleID string) error
}

// LoanRepository persists and retrieves loans.
type LoanRepository interface {
	Save(ctx context.Context, loan model.Loan) error
	FindByID(ctx context.Context, id string) (model.Loan, error)
	FindByApplicantEmail(ctx context.Context, email string) ([]model.Loan, error)
	FindByVehicleID(ctx context.Context, vehicleID string) ([]model.Loan, error)
	CountByStatus(ctx context.Context) (map[valueobject.LoanStatus]int, error)
	SumAmounts(ctx context.Context) (requested, approved decimal.Decimal, err error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// DecodedVIN is the vehicle identity returned by a VIN decoding provider.
type DecodedVIN struct {
	VIN   string
	Make  string
	Model string
	Year  int
}

// VinDecoderClient resolves a VIN to its vehicle identity.
type VinDecoderClient interface {
	Decode(ctx context.Context, vin string) (DecodedVIN, error)
}

// ValuationCache stores recent appraisals keyed by a vehicle attribute
// fingerprint. A miss returns (zero, false, nil).
type ValuationCache interface {
	Get(ctx context.Context, fingerprint string) (service.Appraisal, bool, error)
	Set(ctx context.Context, fingerprint string, appraisal service.Appraisal) error
}
