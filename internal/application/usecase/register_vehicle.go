package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/motorlend/motorlend/internal/application/dto"
	"github.com/motorlend/motorlend/internal/domain/model"
	"github.com/motorlend/motorlend/internal/domain/port"
	"github.com/motorlend/motorlend/internal/domain/service"
	"github.com/motorlend/motorlend/internal/domain/valueobject"
)

// ErrVINAlreadyRegistered is returned when a vehicle with the same VIN exists.
var ErrVINAlreadyRegistered = errors.New("vin already registered")

// RegisterVehicleUseCase registers a vehicle for financing.
type RegisterVehicleUseCase struct {
	vehicleRepo port.VehicleRepository
	publisher   port.EventPublisher
}

// NewRegisterVehicleUseCase wires dependencies.
func NewRegisterVehicleUseCase(vehicleRepo port.VehicleRepository, publisher port.EventPublisher) *RegisterVehicleUseCase {
	return &RegisterVehicleUseCase{vehicleRepo: vehicleRepo, publisher: publisher}
}

// Execute validates, persists and announces a new vehicle.
func (uc *RegisterVehicleUseCase) Execute(ctx context.Context, req dto.RegisterVehicleRequest) (dto.VehicleResponse, error) {
	now := time.Now().UTC()

	var condition valueobject.VehicleCondition
	if req.Condition != "" {
		var err error
		condition, err = valueobject.NewVehicleCondition(req.Condition)
		if err != nil {
			return dto.VehicleResponse{}, fmt.Errorf("%w: %s", service.ErrValidation, err)
		}
	}

	vehicle, err := model.NewVehicle(
		req.VIN, req.Make, req.Model, req.Year,
		req.Mileage, condition, req.PurchasePrice, now,
	)
	if err != nil {
		return dto.VehicleResponse{}, fmt.Errorf("%w: %s", service.ErrValidation, err)
	}

	// VIN uniqueness.
	if _, err := uc.vehicleRepo.FindByVIN(ctx, vehicle.VIN()); err == nil {
		return dto.VehicleResponse{}, fmt.Errorf("%w: %s", ErrVINAlreadyRegistered, vehicle.VIN())
	} else if !errors.Is(err, port.ErrVehicleNotFound) {
		return dto.VehicleResponse{}, fmt.Errorf("check vin: %w", err)
	}

	if err := uc.vehicleRepo.Save(ctx, vehicle); err != nil {
		return dto.VehicleResponse{}, fmt.Errorf("save vehicle: %w", err)
	}

	if err := uc.publisher.Publish(ctx, vehicle.DomainEvents()...); err != nil {
		return dto.VehicleResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toVehicleResponse(vehicle), nil
}

func toVehicleResponse(v model.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		ID:            v.ID(),
		VIN:           v.VIN(),
		Make:          v.Make(),
		Model:         v.Model(),
		Year:          v.Year(),
		Mileage:       v.Mileage(),
		Condition:     v.Condition().String(),
		PurchasePrice: v.PurchasePrice(),
		Active:        v.Active(),
		CreatedAt:     v.CreatedAt(),
		UpdatedAt:     v.UpdatedAt(),
	}
}
