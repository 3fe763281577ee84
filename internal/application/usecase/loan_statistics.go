package usecase

import (
	"context"
	"fmt"

	"github.com/motorlend/motorlend/internal/application/dto"
	"github.com/motorlend/motorlend/internal/domain/port"
)

// LoanStatisticsUseCase aggregates portfolio-level loan figures.
type LoanStatisticsUseCase struct {
	loanRepo port.LoanRepository
}

// NewLoanStatisticsUseCase wires dependencies.
func NewLoanStatisticsUseCase(loanRepo port.LoanRepository) *LoanStatisticsUseCase {
	return &LoanStatisticsUseCase{loanRepo: loanRepo}
}

// Execute returns per-status counts and portfolio amount totals.
func (uc *LoanStatisticsUseCase) Execute(ctx context.Context) (dto.LoanStatisticsResponse, error) {
	counts, err := uc.loanRepo.CountByStatus(ctx)
	if err != nil {
		return dto.LoanStatisticsResponse{}, fmt.Errorf("count loans: %w", err)
	}

	totalRequested, totalApproved, err := uc.loanRepo.SumAmounts(ctx)
	if err != nil {
		return dto.LoanStatisticsResponse{}, fmt.Errorf("sum loan amounts: %w", err)
	}

	resp := dto.LoanStatisticsResponse{
		CountsByStatus: make(map[string]int, len(counts)),
		TotalRequested: totalRequested,
		TotalApproved:  totalApproved,
	}
	for status, n := range counts {
		resp.CountsByStatus[status.String()] = n
		resp.TotalLoans += n
	}

	return resp, nil
}
