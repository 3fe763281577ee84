package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/motorlend/motorlend/internal/application/dto"
	"github.com/motorlend/motorlend/internal/domain/model"
	"github.com/motorlend/motorlend/internal/domain/port"
	"github.com/motorlend/motorlend/internal/domain/service"
)

// CreateLoanUseCase decisions a financing application: it resolves the
// vehicle's current value, runs the eligibility engine and stores the loan
// with its full decision record.
type CreateLoanUseCase struct {
	vehicleRepo   port.VehicleRepository
	valuationRepo port.ValuationRepository
	loanRepo      port.LoanRepository
	publisher     port.EventPublisher
	valuations    *RequestValuationUseCase
	engine        *service.EligibilityEngine
	thresholds    service.Thresholds
}

// NewCreateLoanUseCase wires dependencies.
func NewCreateLoanUseCase(
	vehicleRepo port.VehicleRepository,
	valuationRepo port.ValuationRepository,
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
	valuations *RequestValuationUseCase,
	engine *service.EligibilityEngine,
	thresholds service.Thresholds,
) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		vehicleRepo:   vehicleRepo,
		valuationRepo: valuationRepo,
		loanRepo:      loanRepo,
		publisher:     publisher,
		valuations:    valuations,
		engine:        engine,
		thresholds:    thresholds,
	}
}

// Execute evaluates and persists a financing application. Eligible
// applications land in UNDER_REVIEW, ineligible ones in REJECTED; both are
// stored with the complete decision.
func (uc *CreateLoanUseCase) Execute(ctx context.Context, req dto.CreateLoanRequest) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	vehicle, err := uc.vehicleRepo.FindByID(ctx, req.VehicleID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find vehicle: %w", err)
	}

	vehicleValue, err := uc.currentVehicleValue(ctx, vehicle.ID(), now)
	if err != nil {
		return dto.LoanResponse{}, err
	}

	requested, _ := req.RequestedAmount.Float64()
	downPayment, _ := req.DownPayment.Float64()
	income, _ := req.MonthlyIncome.Float64()
	debts, _ := req.ExistingDebts.Float64()

	decision, err := uc.engine.Evaluate(service.LoanApplicationInput{
		CreditScore:     req.CreditScore,
		VehicleValue:    vehicleValue,
		RequestedAmount: requested,
		DownPayment:     downPayment,
		MonthlyIncome:   income,
		ExistingDebts:   debts,
		TermMonths:      req.TermMonths,
	}, uc.thresholds)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("evaluate eligibility: %w", err)
	}

	financed := requested - downPayment
	if financed < 0 {
		financed = 0
	}
	rate := uc.thresholds.Rates.RateFor(req.CreditScore)
	monthlyPayment := service.MonthlyPayment(financed, rate, req.TermMonths)
	totalPayable := service.TotalPayable(monthlyPayment, req.TermMonths)

	loan, err := model.NewLoan(
		req.ApplicantName, req.ApplicantEmail, vehicle.ID(),
		req.RequestedAmount, req.DownPayment,
		decimal.NewFromFloat(vehicleValue).Round(2),
		req.MonthlyIncome, req.ExistingDebts,
		req.CreditScore, req.TermMonths,
		decision, rate,
		decimal.NewFromFloat(monthlyPayment).Round(2),
		decimal.NewFromFloat(totalPayable).Round(2),
		now,
	)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("%w: %s", service.ErrValidation, err)
	}

	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan), nil
}

// currentVehicleValue returns the estimated value from the latest active,
// unexpired valuation, requesting a fresh appraisal when none exists.
func (uc *CreateLoanUseCase) currentVehicleValue(ctx context.Context, vehicleID string, now time.Time) (float64, error) {
	valuation, err := uc.valuationRepo.FindLatestActive(ctx, vehicleID)
	if err == nil && !valuation.Expired(now) {
		value, _ := valuation.EstimatedValue().Float64()
		return value, nil
	}
	if err != nil && !errors.Is(err, port.ErrValuationNotFound) {
		return 0, fmt.Errorf("find latest valuation: %w", err)
	}

	fresh, err := uc.valuations.Execute(ctx, dto.RequestValuationRequest{VehicleID: vehicleID})
	if err != nil {
		return 0, fmt.Errorf("request valuation: %w", err)
	}
	value, _ := fresh.EstimatedValue.Float64()
	return value, nil
}

func toLoanResponse(l model.Loan) dto.LoanResponse {
	return dto.LoanResponse{
		ID:              l.ID(),
		ApplicantName:   l.ApplicantName(),
		ApplicantEmail:  l.ApplicantEmail(),
		VehicleID:       l.VehicleID(),
		RequestedAmount: l.RequestedAmount(),
		DownPayment:     l.DownPayment(),
		VehicleValue:    l.VehicleValue(),
		MonthlyIncome:   l.MonthlyIncome(),
		ExistingDebts:   l.ExistingDebts(),
		CreditScore:     l.CreditScore(),
		TermMonths:      l.TermMonths(),
		Eligible:        l.Decision().Eligible,
		Reasons:         l.Decision().Reasons,
		InterestRate:    l.InterestRate(),
		MonthlyPayment:  l.MonthlyPayment(),
		TotalPayable:    l.TotalPayable(),
		LoanToValue:     l.LoanToValue(),
		DebtToIncome:    l.DebtToIncome(),
		ApprovedAmount:  l.ApprovedAmount(),
		Status:          l.Status().String(),
		StatusReason:    l.StatusReason(),
		ApprovedAt:      l.ApprovedAt(),
		RejectedAt:      l.RejectedAt(),
		DisbursedAt:     l.DisbursedAt(),
		CreatedAt:       l.CreatedAt(),
		UpdatedAt:       l.UpdatedAt(),
	}
}
