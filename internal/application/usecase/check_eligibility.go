package usecase

import (
	"context"
	"fmt"

	"github.com/motorlend/motorlend/internal/application/dto"
	"github.com/motorlend/motorlend/internal/domain/service"
)

// CheckEligibilityUseCase runs a standalone eligibility evaluation without
// creating a loan. Dealers use it for pre-qualification.
type CheckEligibilityUseCase struct {
	engine     *service.EligibilityEngine
	thresholds service.Thresholds
}

// NewCheckEligibilityUseCase wires dependencies.
func NewCheckEligibilityUseCase(engine *service.EligibilityEngine, thresholds service.Thresholds) *CheckEligibilityUseCase {
	return &CheckEligibilityUseCase{engine: engine, thresholds: thresholds}
}

// Execute evaluates the financials and, for eligible applicants, quotes the
// projected monthly payment and total payable.
func (uc *CheckEligibilityUseCase) Execute(ctx context.Context, req dto.CheckEligibilityRequest) (dto.EligibilityResponse, error) {
	decision, err := uc.engine.Evaluate(service.LoanApplicationInput{
		CreditScore:     req.CreditScore,
		VehicleValue:    req.VehicleValue,
		RequestedAmount: req.RequestedAmount,
		DownPayment:     req.DownPayment,
		MonthlyIncome:   req.MonthlyIncome,
		ExistingDebts:   req.ExistingDebts,
		TermMonths:      req.TermMonths,
	}, uc.thresholds)
	if err != nil {
		return dto.EligibilityResponse{}, fmt.Errorf("evaluate eligibility: %w", err)
	}

	resp := dto.EligibilityResponse{
		Eligible:          decision.Eligible,
		Reasons:           decision.Reasons,
		CreditScore:       decision.CreditScore,
		LoanToValue:       decision.LoanToValue,
		DownPayment:       decision.DownPayment,
		DebtToIncome:      decision.DebtToIncome,
		LoanTerm:          decision.LoanTerm,
		RecommendedRate:   decision.RecommendedRate,
		MaxApprovedAmount: decision.MaxApprovedAmount,
	}

	if decision.Eligible {
		financed := req.RequestedAmount - req.DownPayment
		if financed < 0 {
			financed = 0
		}
		resp.MonthlyPayment = service.MonthlyPayment(financed, decision.RecommendedRate, req.TermMonths)
		resp.TotalPayable = service.TotalPayable(resp.MonthlyPayment, req.TermMonths)
	}

	return resp, nil
}
