package usecase

import (
	"context"
	"fmt"

	"github.com/motorlend/motorlend/internal/application/dto"
	"github.com/motorlend/motorlend/internal/domain/port"
)

// GetVehicleUseCase retrieves a vehicle by ID or VIN.
type GetVehicleUseCase struct {
	vehicleRepo port.VehicleRepository
}

// NewGetVehicleUseCase wires dependencies.
func NewGetVehicleUseCase(vehicleRepo port.VehicleRepository) *GetVehicleUseCase {
	return &GetVehicleUseCase{vehicleRepo: vehicleRepo}
}

// Execute retrieves a vehicle by ID.
func (uc *GetVehicleUseCase) Execute(ctx context.Context, id string) (dto.VehicleResponse, error) {
	vehicle, err := uc.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return dto.VehicleResponse{}, fmt.Errorf("find vehicle: %w", err)
	}
	return toVehicleResponse(vehicle), nil
}

// ExecuteByVIN retrieves a vehicle by VIN.
func (uc *GetVehicleUseCase) ExecuteByVIN(ctx context.Context, vin string) (dto.VehicleResponse, error) {
	vehicle, err := uc.vehicleRepo.FindByVIN(ctx, vin)
	if err != nil {
		return dto.VehicleResponse{}, fmt.Errorf("find vehicle by vin: %w", err)
	}
	return toVehicleResponse(vehicle), nil
}

// ExecuteList retrieves a page of registered vehicles.
func (uc *GetVehicleUseCase) ExecuteList(ctx context.Context, limit, offset int) ([]dto.VehicleResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	vehicles, err := uc.vehicleRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	responses := make([]dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		responses = append(responses, toVehicleResponse(v))
	}
	return responses, nil
}
