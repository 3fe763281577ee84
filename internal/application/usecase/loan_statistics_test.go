package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorlend/motorlend/internal/application/usecase"
	"github.com/motorlend/motorlend/internal/domain/valueobject"
)

func TestLoanStatistics_Execute(t *testing.T) {
	loanRepo := &mockLoanRepository{
		countByStatusFunc: func(_ context.Context) (map[valueobject.LoanStatus]int, error) {
			return map[valueobject.LoanStatus]int{
				valueobject.LoanStatusUnderReview: 3,
				valueobject.LoanStatusApproved:    2,
				valueobject.LoanStatusRejected:    5,
			}, nil
		},
		sumAmountsFunc: func(_ context.Context) (decimal.Decimal, decimal.Decimal, error) {
			return decimal.NewFromInt(42_000_000), decimal.NewFromInt(30_000_000), nil
		},
	}
	uc := usecase.NewLoanStatisticsUseCase(loanRepo)

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, resp.TotalLoans)
	assert.Equal(t, 3, resp.CountsByStatus["UNDER_REVIEW"])
	assert.Equal(t, 5, resp.CountsByStatus["REJECTED"])
	assert.True(t, resp.TotalRequested.Equal(decimal.NewFromInt(42_000_000)))
	assert.True(t, resp.TotalApproved.Equal(decimal.NewFromInt(30_000_000)))
}
