package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/motorlend/motorlend/internal/domain/model"
	"github.com/motorlend/motorlend/internal/domain/port"
	"github.com/motorlend/motorlend/internal/domain/service"
)

// ValuationRepo implements port.ValuationRepository.
type ValuationRepo struct {
	pool *pgxpool.Pool
}

// NewValuationRepo creates a new PostgreSQL-backed valuation repository.
func NewValuationRepo(pool *pgxpool.Pool) *ValuationRepo {
	return &ValuationRepo{pool: pool}
}

// Save persists a valuation (optimistic-version upsert).
func (r *ValuationRepo) Save(ctx context.Context, valuation model.Valuation) error {
	factorsJSON, err := json.Marshal(valuation.Factors())
	if err != nil {
		return fmt.Errorf("marshal factors: %w", err)
	}

	query := `
		INSERT INTO valuations (
			id, vehicle_id, estimated_value, trade_in_value, retail_value,
			private_party_value, confidence_score, source, factors,
			created_at, valid_until, active, version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (id) DO UPDATE SET
			active  = EXCLUDED.active,
			version = valuations.version + 1
		WHERE valuations.version = $13
	`
	tag, err := r.pool.Exec(ctx, query,
		valuation.ID(), valuation.VehicleID(),
		valuation.EstimatedValue(), valuation.TradeInValue(),
		valuation.RetailValue(), valuation.PrivatePartyValue(),
		valuation.ConfidenceScore(), valuation.Source(), factorsJSON,
		valuation.CreatedAt(), valuation.ValidUntil(), valuation.Active(),
		valuation.Version(),
	)
	if err != nil {
		return fmt.Errorf("save valuation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("optimistic locking conflict on valuation")
	}
	return nil
}

// FindByID retrieves a valuation by ID.
func (r *ValuationRepo) FindByID(ctx context.Context, id string) (model.Valuation, error) {
	row := r.pool.QueryRow(ctx, valuationSelect+` WHERE id = $1`, id)
	return scanValuation(row)
}

// FindByVehicleID retrieves every valuation for a vehicle, newest first.
func (r *ValuationRepo) FindByVehicleID(ctx context.Context, vehicleID string) ([]model.Valuation, error) {
	rows, err := r.pool.Query(ctx, valuationSelect+` WHERE vehicle_id = $1 ORDER BY created_at DESC`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("query valuations: %w", err)
	}
	defer rows.Close()

	var result []model.Valuation
	for rows.Next() {
		v, err := scanValuation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

// FindLatestActive retrieves the newest active valuation for a vehicle.
func (r *ValuationRepo) FindLatestActive(ctx context.Context, vehicleID string) (model.Valuation, error) {
	row := r.pool.QueryRow(ctx,
		valuationSelect+` WHERE vehicle_id = $1 AND active ORDER BY created_at DESC LIMIT 1`,
		vehicleID,
	)
	return scanValuation(row)
}

// DeactivateForVehicle marks every active valuation for a vehicle as
// superseded.
func (r *ValuationRepo) DeactivateForVehicle(ctx context.Context, vehicleID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE valuations SET active = false, version = version + 1 WHERE vehicle_id = $1 AND active`,
		vehicleID,
	)
	if err != nil {
		return fmt.Errorf("deactivate valuations: %w", err)
	}
	return nil
}

const valuationSelect = `
	SELECT id, vehicle_id, estimated_value, trade_in_value, retail_value,
	       private_party_value, confidence_score, source, factors,
	       created_at, valid_until, active, version
	FROM valuations`

func scanValuation(s scannable) (model.Valuation, error) {
	var (
		id, vehicleID, source                          string
		estimated, tradeIn, retail, privateParty       decimal.Decimal
		confidenceScore, version                       int
		factorsJSON                                    []byte
		createdAt, validUntil                          time.Time
		active                                         bool
	)

	err := s.Scan(&id, &vehicleID, &estimated, &tradeIn, &retail, &privateParty,
		&confidenceScore, &source, &factorsJSON, &createdAt, &validUntil, &active, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Valuation{}, port.ErrValuationNotFound
		}
		return model.Valuation{}, fmt.Errorf("scan valuation: %w", err)
	}

	var factors service.ValuationFactors
	if err := json.Unmarshal(factorsJSON, &factors); err != nil {
		return model.Valuation{}, fmt.Errorf("unmarshal factors: %w", err)
	}

	return model.ReconstructValuation(id, vehicleID, service.Appraisal{
		EstimatedValue:    estimated,
		TradeInValue:      tradeIn,
		RetailValue:       retail,
		PrivatePartyValue: privateParty,
		ConfidenceScore:   confidenceScore,
		Source:            source,
		Factors:           factors,
		CreatedAt:         createdAt,
		ValidUntil:        validUntil,
		Active:            active,
	}, version), nil
}
