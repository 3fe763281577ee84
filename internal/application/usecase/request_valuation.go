package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/motorlend/motorlend/internal/application/dto"
	"github.com/motorlend/motorlend/internal/domain/model"
	"github.com/motorlend/motorlend/internal/domain/port"
	"github.com/motorlend/motorlend/internal/domain/service"
	"github.com/motorlend/motorlend/internal/domain/valueobject"
)

// ErrVehicleLookup is returned when neither a vehicle ID nor a VIN is given.
var ErrVehicleLookup = errors.New("vehicle_id or vin is required")

// RequestValuationUseCase produces a fresh appraisal for a vehicle, becoming
// its single active valuation.
type RequestValuationUseCase struct {
	vehicleRepo   port.VehicleRepository
	valuationRepo port.ValuationRepository
	publisher     port.EventPublisher
	vinDecoder    port.VinDecoderClient
	cache         port.ValuationCache
	engine        *service.ValuationEngine
	logger        *slog.Logger
}

// NewRequestValuationUseCase wires dependencies.
func NewRequestValuationUseCase(
	vehicleRepo port.VehicleRepository,
	valuationRepo port.ValuationRepository,
	publisher port.EventPublisher,
	vinDecoder port.VinDecoderClient,
	cache port.ValuationCache,
	engine *service.ValuationEngine,
	logger *slog.Logger,
) *RequestValuationUseCase {
	return &RequestValuationUseCase{
		vehicleRepo:   vehicleRepo,
		valuationRepo: valuationRepo,
		publisher:     publisher,
		vinDecoder:    vinDecoder,
		cache:         cache,
		engine:        engine,
		logger:        logger,
	}
}

// Execute resolves the vehicle, runs the valuation engine (or serves a cached
// appraisal), supersedes prior valuations, and stores the new one.
func (uc *RequestValuationUseCase) Execute(ctx context.Context, req dto.RequestValuationRequest) (dto.ValuationResponse, error) {
	now := time.Now().UTC()

	vehicle, err := uc.resolveVehicle(ctx, req, now)
	if err != nil {
		return dto.ValuationResponse{}, err
	}

	overrides := service.AppraisalOverrides{Mileage: req.MileageOverride}
	if req.ConditionOverride != "" {
		condition, err := valueobject.NewVehicleCondition(req.ConditionOverride)
		if err != nil {
			return dto.ValuationResponse{}, fmt.Errorf("%w: %s", service.ErrValidation, err)
		}
		overrides.Condition = condition
	}

	snapshot := service.VehicleSnapshot{
		VIN:           vehicle.VIN(),
		Make:          vehicle.Make(),
		Model:         vehicle.Model(),
		Year:          vehicle.Year(),
		Mileage:       vehicle.Mileage(),
		Condition:     vehicle.Condition(),
		PurchasePrice: vehicle.PurchasePrice(),
	}

	fingerprint := appraisalFingerprint(snapshot, overrides)

	appraisal, cached, err := uc.cache.Get(ctx, fingerprint)
	if err != nil {
		// Cache trouble never blocks an appraisal.
		uc.logger.Warn("valuation cache read failed", "error", err)
		cached = false
	}
	if !cached {
		appraisal, err = uc.engine.Appraise(snapshot, overrides, now)
		if err != nil {
			return dto.ValuationResponse{}, fmt.Errorf("appraise vehicle: %w", err)
		}
		if err := uc.cache.Set(ctx, fingerprint, appraisal); err != nil {
			uc.logger.Warn("valuation cache write failed", "error", err)
		}
	}

	valuation, err := model.NewValuation(vehicle.ID(), appraisal)
	if err != nil {
		return dto.ValuationResponse{}, fmt.Errorf("create valuation: %w", err)
	}

	if err := uc.valuationRepo.DeactivateForVehicle(ctx, vehicle.ID()); err != nil {
		return dto.ValuationResponse{}, fmt.Errorf("deactivate prior valuations: %w", err)
	}
	if err := uc.valuationRepo.Save(ctx, valuation); err != nil {
		return dto.ValuationResponse{}, fmt.Errorf("save valuation: %w", err)
	}

	if err := uc.publisher.Publish(ctx, valuation.DomainEvents()...); err != nil {
		return dto.ValuationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toValuationResponse(valuation), nil
}

// resolveVehicle loads the vehicle by ID or VIN. An unknown VIN is decoded
// through the VIN provider and auto-registered.
func (uc *RequestValuationUseCase) resolveVehicle(ctx context.Context, req dto.RequestValuationRequest, now time.Time) (model.Vehicle, error) {
	switch {
	case req.VehicleID != "":
		vehicle, err := uc.vehicleRepo.FindByID(ctx, req.VehicleID)
		if err != nil {
			return model.Vehicle{}, fmt.Errorf("find vehicle: %w", err)
		}
		return vehicle, nil

	case req.VIN != "":
		vehicle, err := uc.vehicleRepo.FindByVIN(ctx, req.VIN)
		if err == nil {
			return vehicle, nil
		}
		if !errors.Is(err, port.ErrVehicleNotFound) {
			return model.Vehicle{}, fmt.Errorf("find vehicle by vin: %w", err)
		}

		decoded, err := uc.vinDecoder.Decode(ctx, req.VIN)
		if err != nil {
			return model.Vehicle{}, fmt.Errorf("decode vin: %w", err)
		}

		vehicle, err = model.NewVehicle(
			decoded.VIN, decoded.Make, decoded.Model, decoded.Year,
			req.MileageOverride, valueobject.VehicleCondition{}, 0, now,
		)
		if err != nil {
			return model.Vehicle{}, fmt.Errorf("register decoded vehicle: %w", err)
		}
		if err := uc.vehicleRepo.Save(ctx, vehicle); err != nil {
			return model.Vehicle{}, fmt.Errorf("save decoded vehicle: %w", err)
		}
		if err := uc.publisher.Publish(ctx, vehicle.DomainEvents()...); err != nil {
			return model.Vehicle{}, fmt.Errorf("publish events: %w", err)
		}
		uc.logger.Info("auto-registered vehicle from vin decode", "vin", vehicle.VIN())
		return vehicle, nil

	default:
		return model.Vehicle{}, ErrVehicleLookup
	}
}

// appraisalFingerprint hashes every engine input so identical requests hit
// the cache and any attribute change misses it.
func appraisalFingerprint(s service.VehicleSnapshot, o service.AppraisalOverrides) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%d|%.1f|%s|%.2f|%.1f|%s",
		s.VIN, s.Make, s.Model, s.Year, s.Mileage, s.Condition.String(),
		s.PurchasePrice, o.Mileage, o.Condition.String(),
	)
	return hex.EncodeToString(h.Sum(nil))
}

func toValuationResponse(v model.Valuation) dto.ValuationResponse {
	return dto.ValuationResponse{
		ID:                v.ID(),
		VehicleID:         v.VehicleID(),
		EstimatedValue:    v.EstimatedValue(),
		TradeInValue:      v.TradeInValue(),
		RetailValue:       v.RetailValue(),
		PrivatePartyValue: v.PrivatePartyValue(),
		ConfidenceScore:   v.ConfidenceScore(),
		Source:            v.Source(),
		Factors:           v.Factors(),
		CreatedAt:         v.CreatedAt(),
		ValidUntil:        v.ValidUntil(),
		Active:            v.Active(),
	}
}
