package usecase_test

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/motorlend/motorlend/internal/domain/event"
	"github.com/motorlend/motorlend/internal/domain/model"
	"github.com/motorlend/motorlend/internal/domain/port"
	"github.com/motorlend/motorlend/internal/domain/service"
	"github.com/motorlend/motorlend/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockVehicleRepository struct {
	saveFunc      func(ctx context.Context, vehicle model.Vehicle) error
	findByIDFunc  func(ctx context.Context, id string) (model.Vehicle, error)
	findByVINFunc func(ctx context.Context, vin string) (model.Vehicle, error)
	savedVehicles []model.Vehicle
}

func (m *mockVehicleRepository) Save(ctx context.Context, vehicle model.Vehicle) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, vehicle)
	}
	m.savedVehicles = append(m.savedVehicles, vehicle)
	return nil
}

func (m *mockVehicleRepository) FindByID(ctx context.Context, id string) (model.Vehicle, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Vehicle{}, fmt.Errorf("lookup: %w", port.ErrVehicleNotFound)
}

func (m *mockVehicleRepository) FindByVIN(ctx context.Context, vin string) (model.Vehicle, error) {
	if m.findByVINFunc != nil {
		return m.findByVINFunc(ctx, vin)
	}
	return model.Vehicle{}, fmt.Errorf("lookup: %w", port.ErrVehicleNotFound)
}

func (m *mockVehicleRepository) FindAll(_ context.Context, _, _ int) ([]model.Vehicle, error) {
	return nil, nil
}

type mockValuationRepository struct {
	saveFunc             func(ctx context.Context, valuation model.Valuation) error
	findLatestActiveFunc func(ctx context.Context, vehicleID string) (model.Valuation, error)
	deactivatedVehicles  []string
	savedValuations      []model.Valuation
}

func (m *mockValuationRepository) Save(ctx context.Context, valuation model.Valuation) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, valuation)
	}
	m.savedValuations = append(m.savedValuations, valuation)
	return nil
}

func (m *mockValuationRepository) FindByID(_ context.Context, _ string) (model.Valuation, error) {
	return model.Valuation{}, fmt.Errorf("lookup: %w", port.ErrValuationNotFound)
}

func (m *mockValuationRepository) FindByVehicleID(_ context.Context, _ string) ([]model.Valuation, error) {
	return nil, nil
}

func (m *mockValuationRepository) FindLatestActive(ctx context.Context, vehicleID string) (model.Valuation, error) {
	if m.findLatestActiveFunc != nil {
		return m.findLatestActiveFunc(ctx, vehicleID)
	}
	return model.Valuation{}, fmt.Errorf("lookup: %w", port.ErrValuationNotFound)
}

func (m *mockValuationRepository) DeactivateForVehicle(_ context.Context, vehicleID string) error {
	m.deactivatedVehicles = append(m.deactivatedVehicles, vehicleID)
	return nil
}

type mockLoanRepository struct {
	saveFunc          func(ctx context.Context, loan model.Loan) error
	findByIDFunc      func(ctx context.Context, id string) (model.Loan, error)
	countByStatusFunc func(ctx context.Context) (map[valueobject.LoanStatus]int, error)
	sumAmountsFunc    func(ctx context.Context) (decimal.Decimal, decimal.Decimal, error)
	savedLoans        []model.Loan
}

func (m *mockLoanRepository) Save(ctx context.Context, loan model.Loan) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, loan)
	}
	m.savedLoans = append(m.savedLoans, loan)
	return nil
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id string) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Loan{}, fmt.Errorf("lookup: %w", port.ErrLoanNotFound)
}

func (m *mockLoanRepository) FindByApplicantEmail(_ context.Context, _ string) ([]model.Loan, error) {
	return nil, nil
}

func (m *mockLoanRepository) FindByVehicleID(_ context.Context, _ string) ([]model.Loan, error) {
	return nil, nil
}

func (m *mockLoanRepository) CountByStatus(ctx context.Context) (map[valueobject.LoanStatus]int, error) {
	if m.countByStatusFunc != nil {
		return m.countByStatusFunc(ctx)
	}
	return map[valueobject.LoanStatus]int{}, nil
}

func (m *mockLoanRepository) SumAmounts(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	if m.sumAmountsFunc != nil {
		return m.sumAmountsFunc(ctx)
	}
	return decimal.Zero, decimal.Zero, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockVinDecoderClient struct {
	decodeFunc func(ctx context.Context, vin string) (port.DecodedVIN, error)
}

func (m *mockVinDecoderClient) Decode(ctx context.Context, vin string) (port.DecodedVIN, error) {
	if m.decodeFunc != nil {
		return m.decodeFunc(ctx, vin)
	}
	return port.DecodedVIN{VIN: vin, Make: "Toyota", Model: "Corolla", Year: 2022}, nil
}

type mockValuationCache struct {
	getFunc func(ctx context.Context, fingerprint string) (service.Appraisal, bool, error)
	stored  map[string]service.Appraisal
}

func (m *mockValuationCache) Get(ctx context.Context, fingerprint string) (service.Appraisal, bool, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, fingerprint)
	}
	if a, ok := m.stored[fingerprint]; ok {
		return a, true, nil
	}
	return service.Appraisal{}, false, nil
}

func (m *mockValuationCache) Set(_ context.Context, fingerprint string, appraisal service.Appraisal) error {
	if m.stored == nil {
		m.stored = make(map[string]service.Appraisal)
	}
	m.stored[fingerprint] = appraisal
	return nil
}
