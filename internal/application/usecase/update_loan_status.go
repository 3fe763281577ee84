package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/motorlend/motorlend/internal/application/dto"
	"github.com/motorlend/motorlend/internal/domain/port"
	"github.com/motorlend/motorlend/internal/domain/service"
	"github.com/motorlend/motorlend/internal/domain/valueobject"
)

// UpdateLoanStatusUseCase overwrites a loan's lifecycle status.
type UpdateLoanStatusUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewUpdateLoanStatusUseCase wires dependencies.
func NewUpdateLoanStatusUseCase(loanRepo port.LoanRepository, publisher port.EventPublisher) *UpdateLoanStatusUseCase {
	return &UpdateLoanStatusUseCase{loanRepo: loanRepo, publisher: publisher}
}

// Execute applies the status overwrite and announces the change.
func (uc *UpdateLoanStatusUseCase) Execute(ctx context.Context, req dto.UpdateLoanStatusRequest) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	status, err := valueobject.NewLoanStatus(req.Status)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("%w: %s", service.ErrValidation, err)
	}

	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	loan, err = loan.UpdateStatus(status, req.Reason, now)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("update status: %w", err)
	}

	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan), nil
}
