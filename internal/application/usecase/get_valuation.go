package usecase

import (
	"context"
	"fmt"

	"github.com/motorlend/motorlend/internal/application/dto"
	"github.com/motorlend/motorlend/internal/domain/port"
)

// GetValuationUseCase retrieves stored valuations.
type GetValuationUseCase struct {
	valuationRepo port.ValuationRepository
}

// NewGetValuationUseCase wires dependencies.
func NewGetValuationUseCase(valuationRepo port.ValuationRepository) *GetValuationUseCase {
	return &GetValuationUseCase{valuationRepo: valuationRepo}
}

// Execute retrieves a valuation by ID.
func (uc *GetValuationUseCase) Execute(ctx context.Context, id string) (dto.ValuationResponse, error) {
	valuation, err := uc.valuationRepo.FindByID(ctx, id)
	if err != nil {
		return dto.ValuationResponse{}, fmt.Errorf("find valuation: %w", err)
	}
	return toValuationResponse(valuation), nil
}

// ExecuteLatest retrieves the latest active valuation for a vehicle.
func (uc *GetValuationUseCase) ExecuteLatest(ctx context.Context, vehicleID string) (dto.ValuationResponse, error) {
	valuation, err := uc.valuationRepo.FindLatestActive(ctx, vehicleID)
	if err != nil {
		return dto.ValuationResponse{}, fmt.Errorf("find latest valuation: %w", err)
	}
	return toValuationResponse(valuation), nil
}

// ExecuteHistory retrieves every valuation recorded for a vehicle.
func (uc *GetValuationUseCase) ExecuteHistory(ctx context.Context, vehicleID string) ([]dto.ValuationResponse, error) {
	valuations, err := uc.valuationRepo.FindByVehicleID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("find valuations: %w", err)
	}
	out := make([]dto.ValuationResponse, 0, len(valuations))
	for _, v := range valuations {
		out = append(out, toValuationResponse(v))
	}
	return out, nil
}
