package grpc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/motorlend/motorlend/internal/application/usecase"
	"github.com/motorlend/motorlend/internal/domain/event"
	"github.com/motorlend/motorlend/internal/domain/model"
	"github.com/motorlend/motorlend/internal/domain/port"
	"github.com/motorlend/motorlend/internal/domain/service"
	"github.com/motorlend/motorlend/internal/domain/valueobject"
	"github.com/motorlend/motorlend/pkg/auth"
)

// --- Mock implementations ---

type mockVehicleRepo struct {
	savedVehicle  *model.Vehicle
	saveErr       error
	findByIDFunc  func(ctx context.Context, id string) (model.Vehicle, error)
	findByVINFunc func(ctx context.Context, vin string) (model.Vehicle, error)
	findAllFunc   func(ctx context.Context, limit, offset int) ([]model.Vehicle, error)
}

func (m *mockVehicleRepo) Save(_ context.Context, vehicle model.Vehicle) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.savedVehicle = &vehicle
	return nil
}

func (m *mockVehicleRepo) FindByID(ctx context.Context, id string) (model.Vehicle, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Vehicle{}, fmt.Errorf("find vehicle: %w", port.ErrVehicleNotFound)
}

func (m *mockVehicleRepo) FindByVIN(ctx context.Context, vin string) (model.Vehicle, error) {
	if m.findByVINFunc != nil {
		return m.findByVINFunc(ctx, vin)
	}
	return model.Vehicle{}, fmt.Errorf("find vehicle: %w", port.ErrVehicleNotFound)
}

func (m *mockVehicleRepo) FindAll(ctx context.Context, limit, offset int) ([]model.Vehicle, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return nil, nil
}

type mockValuationRepo struct {
	savedValuation       *model.Valuation
	findLatestActiveFunc func(ctx context.Context, vehicleID string) (model.Valuation, error)
	findByIDFunc         func(ctx context.Context, id string) (model.Valuation, error)
}

func (m *mockValuationRepo) Save(_ context.Context, valuation model.Valuation) error {
	m.savedValuation = &valuation
	return nil
}

func (m *mockValuationRepo) FindByID(ctx context.Context, id string) (model.Valuation, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Valuation{}, fmt.Errorf("find valuation: %w", port.ErrValuationNotFound)
}

func (m *mockValuationRepo) FindByVehicleID(_ context.Context, _ string) ([]model.Valuation, error) {
	return nil, nil
}

func (m *mockValuationRepo) FindLatestActive(ctx context.Context, vehicleID string) (model.Valuation, error) {
	if m.findLatestActiveFunc != nil {
		return m.findLatestActiveFunc(ctx, vehicleID)
	}
	return model.Valuation{}, fmt.Errorf("find valuation: %w", port.ErrValuationNotFound)
}

func (m *mockValuationRepo) DeactivateForVehicle(_ context.Context, _ string) error {
	return nil
}

type mockLoanRepo struct {
	savedLoan    *model.Loan
	findByIDFunc func(ctx context.Context, id string) (model.Loan, error)
}

func (m *mockLoanRepo) Save(_ context.Context, loan model.Loan) error {
	m.savedLoan = &loan
	return nil
}

func (m *mockLoanRepo) FindByID(ctx context.Context, id string) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Loan{}, fmt.Errorf("find loan: %w", port.ErrLoanNotFound)
}

func (m *mockLoanRepo) FindByApplicantEmail(_ context.Context, _ string) ([]model.Loan, error) {
	return nil, nil
}

func (m *mockLoanRepo) FindByVehicleID(_ context.Context, _ string) ([]model.Loan, error) {
	return nil, nil
}

func (m *mockLoanRepo) CountByStatus(_ context.Context) (map[valueobject.LoanStatus]int, error) {
	return map[valueobject.LoanStatus]int{
		valueobject.LoanStatusUnderReview: 3,
		valueobject.LoanStatusRejected:    1,
	}, nil
}

func (m *mockLoanRepo) SumAmounts(_ context.Context) (decimal.Decimal, decimal.Decimal, error) {
	return decimal.NewFromInt(42_000_000), decimal.NewFromInt(30_000_000), nil
}

type mockEventPublisher struct {
	publishErr error
}

func (m *mockEventPublisher) Publish(_ context.Context, _ ...event.DomainEvent) error {
	return m.publishErr
}

type mockVinDecoder struct{}

func (mockVinDecoder) Decode(_ context.Context, vin string) (port.DecodedVIN, error) {
	return port.DecodedVIN{VIN: vin, Make: "Toyota", Model: "Corolla", Year: 2022}, nil
}

type mockCache struct{}

func (mockCache) Get(_ context.Context, _ string) (service.Appraisal, bool, error) {
	return service.Appraisal{}, false, nil
}

func (mockCache) Set(_ context.Context, _ string, _ service.Appraisal) error {
	return nil
}

// --- Helpers ---

type testRepos struct {
	vehicles   *mockVehicleRepo
	valuations *mockValuationRepo
	loans      *mockLoanRepo
}

func contextWithRoles(roles ...string) context.Context {
	claims := &auth.Claims{
		UserID: uuid.New().String(),
		Roles:  roles,
	}
	return auth.ContextWithClaims(context.Background(), claims)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func buildTestHandler() (*Handler, *testRepos) {
	repos := &testRepos{
		vehicles:   &mockVehicleRepo{},
		valuations: &mockValuationRepo{},
		loans:      &mockLoanRepo{},
	}
	publisher := &mockEventPublisher{}
	logger := testLogger()

	valuationEngine := service.NewValuationEngine(service.DefaultValuationConfig())
	eligibilityEngine := service.NewEligibilityEngine()
	thresholds := service.DefaultThresholds()

	requestValuation := usecase.NewRequestValuationUseCase(
		repos.vehicles, repos.valuations, publisher, mockVinDecoder{}, mockCache{}, valuationEngine, logger,
	)

	return NewHandler(
		usecase.NewRegisterVehicleUseCase(repos.vehicles, publisher),
		usecase.NewGetVehicleUseCase(repos.vehicles),
		requestValuation,
		usecase.NewGetValuationUseCase(repos.valuations),
		usecase.NewCreateLoanUseCase(repos.vehicles, repos.valuations, repos.loans, publisher, requestValuation, eligibilityEngine, thresholds),
		usecase.NewGetLoanUseCase(repos.loans),
		usecase.NewUpdateLoanStatusUseCase(repos.loans, publisher),
		usecase.NewCheckEligibilityUseCase(eligibilityEngine, thresholds),
		usecase.NewLoanStatisticsUseCase(repos.loans),
		logger,
	), repos
}

func makeVehicle(t *testing.T) model.Vehicle {
	t.Helper()
	now := time.Now().UTC()
	v, err := model.NewVehicle("1HGBH41JXMN109186", "Toyota", "Corolla", 2021, 45000, valueobject.ConditionGood, 0, now)
	require.NoError(t, err)
	v = v.ClearEvents()
	return v
}

func makeActiveValuation(vehicleID string, estimate int64) model.Valuation {
	now := time.Now().UTC()
	appraisal := service.Appraisal{
		EstimatedValue:    decimal.NewFromInt(estimate),
		TradeInValue:      decimal.NewFromInt(estimate).Mul(decimal.NewFromFloat(0.85)).Round(0),
		RetailValue:       decimal.NewFromInt(estimate).Mul(decimal.NewFromFloat(1.15)).Round(0),
		PrivatePartyValue: decimal.NewFromInt(estimate).Mul(decimal.NewFromFloat(0.95)).Round(0),
		ConfidenceScore:   85,
		Source:            "Motorlend Valuation Engine v1.0",
		CreatedAt:         now,
		ValidUntil:        now.AddDate(0, 0, 90),
		Active:            true,
	}
	return model.ReconstructValuation(uuid.New().String(), vehicleID, appraisal, 1)
}

// requireGRPCCode asserts that an error is a gRPC status error with the given code.
func requireGRPCCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok, "expected gRPC status error, got %T: %v", err, err)
	assert.Equal(t, code, st.Code(), "expected gRPC code %s, got %s: %s", code, st.Code(), st.Message())
}

// --- Tests ---

func TestAuthEnforcement(t *testing.T) {
	t.Run("missing claims returns Unauthenticated", func(t *testing.T) {
		h, _ := buildTestHandler()
		_, err := h.GetVehicle(context.Background(), &GetVehicleRequest{VehicleId: uuid.New().String()})
		requireGRPCCode(t, err, codes.Unauthenticated)
	})

	t.Run("dealer cannot read statistics", func(t *testing.T) {
		h, _ := buildTestHandler()
		_, err := h.GetLoanStatistics(contextWithRoles(auth.RoleDealer), &GetLoanStatisticsRequest{})
		requireGRPCCode(t, err, codes.PermissionDenied)
	})

	t.Run("api client cannot update loan status", func(t *testing.T) {
		h, _ := buildTestHandler()
		_, err := h.UpdateLoanStatus(contextWithRoles(auth.RoleAPIClient), &UpdateLoanStatusRequest{
			LoanId: uuid.New().String(),
			Status: "APPROVED",
		})
		requireGRPCCode(t, err, codes.PermissionDenied)
	})
}

func TestRegisterVehicle(t *testing.T) {
	t.Run("missing vin returns InvalidArgument", func(t *testing.T) {
		h, _ := buildTestHandler()
		_, err := h.RegisterVehicle(contextWithRoles(auth.RoleDealer), &RegisterVehicleRequest{
			Make: "Toyota", Model: "Corolla", Year: 2021,
		})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("happy path returns registered vehicle", func(t *testing.T) {
		h, repos := buildTestHandler()
		resp, err := h.RegisterVehicle(contextWithRoles(auth.RoleDealer), &RegisterVehicleRequest{
			Vin:     "1hgbh41jxmn109186",
			Make:    "Toyota",
			Model:   "Corolla",
			Year:    2021,
			Mileage: 45000,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Vehicle)
		assert.Equal(t, "1HGBH41JXMN109186", resp.Vehicle.Vin)
		assert.Equal(t, "GOOD", resp.Vehicle.Condition)
		require.NotNil(t, repos.vehicles.savedVehicle)
	})

	t.Run("duplicate vin returns AlreadyExists", func(t *testing.T) {
		h, repos := buildTestHandler()
		existing := makeVehicle(t)
		repos.vehicles.findByVINFunc = func(_ context.Context, _ string) (model.Vehicle, error) {
			return existing, nil
		}
		_, err := h.RegisterVehicle(contextWithRoles(auth.RoleDealer), &RegisterVehicleRequest{
			Vin:   "1HGBH41JXMN109186",
			Make:  "Toyota",
			Model: "Corolla",
			Year:  2021,
		})
		requireGRPCCode(t, err, codes.AlreadyExists)
	})
}

func TestGetVehicle(t *testing.T) {
	t.Run("missing identifiers returns InvalidArgument", func(t *testing.T) {
		h, _ := buildTestHandler()
		_, err := h.GetVehicle(contextWithRoles(auth.RoleAPIClient), &GetVehicleRequest{})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("unknown id returns NotFound", func(t *testing.T) {
		h, _ := buildTestHandler()
		_, err := h.GetVehicle(contextWithRoles(auth.RoleAPIClient), &GetVehicleRequest{VehicleId: uuid.New().String()})
		requireGRPCCode(t, err, codes.NotFound)
	})

	t.Run("happy path returns vehicle", func(t *testing.T) {
		h, repos := buildTestHandler()
		vehicle := makeVehicle(t)
		repos.vehicles.findByIDFunc = func(_ context.Context, id string) (model.Vehicle, error) {
			if id == vehicle.ID() {
				return vehicle, nil
			}
			return model.Vehicle{}, fmt.Errorf("find vehicle: %w", port.ErrVehicleNotFound)
		}
		resp, err := h.GetVehicle(contextWithRoles(auth.RoleAPIClient), &GetVehicleRequest{VehicleId: vehicle.ID()})
		require.NoError(t, err)
		assert.Equal(t, vehicle.ID(), resp.Vehicle.Id)
		assert.Equal(t, int32(2021), resp.Vehicle.Year)
	})
}

func TestListVehicles(t *testing.T) {
	h, repos := buildTestHandler()
	v1 := makeVehicle(t)
	repos.vehicles.findAllFunc = func(_ context.Context, limit, offset int) ([]model.Vehicle, error) {
		assert.Equal(t, 50, limit)
		assert.Equal(t, 0, offset)
		return []model.Vehicle{v1}, nil
	}

	resp, err := h.ListVehicles(contextWithRoles(auth.RoleUnderwriter), &ListVehiclesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Vehicles, 1)
	assert.Equal(t, v1.VIN(), resp.Vehicles[0].Vin)
}

func TestRequestValuation(t *testing.T) {
	t.Run("missing identifiers returns InvalidArgument", func(t *testing.T) {
		h, _ := buildTestHandler()
		_, err := h.RequestValuation(contextWithRoles(auth.RoleDealer), &RequestValuationRequest{})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("happy path stores and returns appraisal", func(t *testing.T) {
		h, repos := buildTestHandler()
		vehicle := makeVehicle(t)
		repos.vehicles.findByIDFunc = func(_ context.Context, _ string) (model.Vehicle, error) {
			return vehicle, nil
		}

		resp, err := h.RequestValuation(contextWithRoles(auth.RoleDealer), &RequestValuationRequest{
			VehicleId: vehicle.ID(),
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Valuation)
		assert.Equal(t, vehicle.ID(), resp.Valuation.VehicleId)
		assert.True(t, resp.Valuation.Active)
		assert.NotEmpty(t, resp.Valuation.EstimatedValue)
		require.NotNil(t, repos.valuations.savedValuation)
	})

	t.Run("api client cannot request valuations", func(t *testing.T) {
		h, _ := buildTestHandler()
		_, err := h.RequestValuation(contextWithRoles(auth.RoleAPIClient), &RequestValuationRequest{Vin: "1HGBH41JXMN109186"})
		requireGRPCCode(t, err, codes.PermissionDenied)
	})
}

func TestCreateLoan(t *testing.T) {
	t.Run("invalid decimal returns InvalidArgument", func(t *testing.T) {
		h, _ := buildTestHandler()
		_, err := h.CreateLoan(contextWithRoles(auth.RoleDealer), &CreateLoanRequest{
			ApplicantName:   "Ada Vale",
			ApplicantEmail:  "ada@example.com",
			VehicleId:       uuid.New().String(),
			RequestedAmount: "not-a-number",
			DownPayment:     "2000000",
			MonthlyIncome:   "500000",
			CreditScore:     750,
			TermMonths:      48,
		})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("unknown vehicle returns NotFound", func(t *testing.T) {
		h, _ := buildTestHandler()
		_, err := h.CreateLoan(contextWithRoles(auth.RoleDealer), &CreateLoanRequest{
			ApplicantName:   "Ada Vale",
			ApplicantEmail:  "ada@example.com",
			VehicleId:       uuid.New().String(),
			RequestedAmount: "8000000",
			DownPayment:     "2000000",
			MonthlyIncome:   "500000",
			CreditScore:     750,
			TermMonths:      48,
		})
		requireGRPCCode(t, err, codes.NotFound)
	})

	t.Run("eligible application lands in UNDER_REVIEW", func(t *testing.T) {
		h, repos := buildTestHandler()
		vehicle := makeVehicle(t)
		repos.vehicles.findByIDFunc = func(_ context.Context, _ string) (model.Vehicle, error) {
			return vehicle, nil
		}
		repos.valuations.findLatestActiveFunc = func(_ context.Context, _ string) (model.Valuation, error) {
			return makeActiveValuation(vehicle.ID(), 10_000_000), nil
		}

		resp, err := h.CreateLoan(contextWithRoles(auth.RoleDealer), &CreateLoanRequest{
			ApplicantName:   "Ada Vale",
			ApplicantEmail:  "ada@example.com",
			VehicleId:       vehicle.ID(),
			RequestedAmount: "8000000",
			DownPayment:     "2000000",
			MonthlyIncome:   "500000",
			CreditScore:     750,
			TermMonths:      48,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Loan)
		assert.True(t, resp.Loan.Eligible)
		assert.Equal(t, "UNDER_REVIEW", resp.Loan.Status)
		assert.InDelta(t, 0.05, resp.Loan.InterestRate, 1e-9)
		require.NotNil(t, repos.loans.savedLoan)
	})
}

func TestUpdateLoanStatus(t *testing.T) {
	t.Run("unknown status returns InvalidArgument", func(t *testing.T) {
		h, _ := buildTestHandler()
		_, err := h.UpdateLoanStatus(contextWithRoles(auth.RoleUnderwriter), &UpdateLoanStatusRequest{
			LoanId: uuid.New().String(),
			Status: "SIGNED",
		})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("unknown loan returns NotFound", func(t *testing.T) {
		h, _ := buildTestHandler()
		_, err := h.UpdateLoanStatus(contextWithRoles(auth.RoleUnderwriter), &UpdateLoanStatusRequest{
			LoanId: uuid.New().String(),
			Status: "APPROVED",
		})
		requireGRPCCode(t, err, codes.NotFound)
	})
}

func TestCheckEligibility(t *testing.T) {
	t.Run("invalid input returns InvalidArgument", func(t *testing.T) {
		h, _ := buildTestHandler()
		_, err := h.CheckEligibility(contextWithRoles(auth.RoleAPIClient), &CheckEligibilityRequest{
			CreditScore:   750,
			VehicleValue:  0,
			MonthlyIncome: 500_000,
			TermMonths:    48,
		})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("eligible scenario quotes a payment", func(t *testing.T) {
		h, _ := buildTestHandler()
		resp, err := h.CheckEligibility(contextWithRoles(auth.RoleAPIClient), &CheckEligibilityRequest{
			CreditScore:     750,
			VehicleValue:    10_000_000,
			RequestedAmount: 8_000_000,
			DownPayment:     2_000_000,
			MonthlyIncome:   500_000,
			TermMonths:      48,
		})
		require.NoError(t, err)
		assert.True(t, resp.Eligible)
		assert.Empty(t, resp.Reasons)
		assert.True(t, resp.CreditScore.Passed)
		assert.InDelta(t, 0.05, resp.RecommendedRate, 1e-9)
		assert.Greater(t, resp.MonthlyPayment, 0.0)
	})

	t.Run("low credit score fails with explained checks", func(t *testing.T) {
		h, _ := buildTestHandler()
		resp, err := h.CheckEligibility(contextWithRoles(auth.RoleAPIClient), &CheckEligibilityRequest{
			CreditScore:     580,
			VehicleValue:    10_000_000,
			RequestedAmount: 8_000_000,
			DownPayment:     2_000_000,
			MonthlyIncome:   500_000,
			TermMonths:      48,
		})
		require.NoError(t, err)
		assert.False(t, resp.Eligible)
		assert.False(t, resp.CreditScore.Passed)
		assert.Zero(t, resp.MonthlyPayment)
	})
}

func TestGetLoanStatistics(t *testing.T) {
	h, _ := buildTestHandler()
	resp, err := h.GetLoanStatistics(contextWithRoles(auth.RoleUnderwriter), &GetLoanStatisticsRequest{})
	require.NoError(t, err)
	assert.Equal(t, int32(4), resp.TotalLoans)
	assert.Equal(t, int32(3), resp.CountsByStatus["UNDER_REVIEW"])
	assert.Equal(t, "42000000.00", resp.TotalRequested)
}
