package usecase

import (
	"context"
	"fmt"

	"github.com/motorlend/motorlend/internal/application/dto"
	"github.com/motorlend/motorlend/internal/domain/port"
)

// GetLoanUseCase retrieves loans.
type GetLoanUseCase struct {
	loanRepo port.LoanRepository
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(loanRepo port.LoanRepository) *GetLoanUseCase {
	return &GetLoanUseCase{loanRepo: loanRepo}
}

// Execute retrieves a loan by ID.
func (uc *GetLoanUseCase) Execute(ctx context.Context, id string) (dto.LoanResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, id)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}
	return toLoanResponse(loan), nil
}

// ExecuteByApplicant lists every loan for an applicant email.
func (uc *GetLoanUseCase) ExecuteByApplicant(ctx context.Context, email string) ([]dto.LoanResponse, error) {
	loans, err := uc.loanRepo.FindByApplicantEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find loans by applicant: %w", err)
	}
	out := make([]dto.LoanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, toLoanResponse(l))
	}
	return out, nil
}
