package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/motorlend/motorlend/internal/domain/model"
	"github.com/motorlend/motorlend/internal/domain/port"
	"github.com/motorlend/motorlend/internal/domain/valueobject"
)

// scannable abstracts pgx.Row and pgx.Rows for shared scan helpers.
type scannable interface {
	Scan(dest ...any) error
}

// VehicleRepo implements port.VehicleRepository.
type VehicleRepo struct {
	pool *pgxpool.Pool
}

// NewVehicleRepo creates a new PostgreSQL-backed vehicle repository.
func NewVehicleRepo(pool *pgxpool.Pool) *VehicleRepo {
	return &VehicleRepo{pool: pool}
}

// Save persists a vehicle (optimistic-version upsert).
func (r *VehicleRepo) Save(ctx context.Context, vehicle model.Vehicle) error {
	query := `
		INSERT INTO vehicles (
			id, vin, make, model, year, mileage, condition,
			purchase_price, active, version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET
			mileage        = EXCLUDED.mileage,
			condition      = EXCLUDED.condition,
			purchase_price = EXCLUDED.purchase_price,
			active         = EXCLUDED.active,
			version        = vehicles.version + 1,
			updated_at     = EXCLUDED.updated_at
		WHERE vehicles.version = $10
	`
	tag, err := r.pool.Exec(ctx, query,
		vehicle.ID(), vehicle.VIN(), vehicle.Make(), vehicle.Model(),
		vehicle.Year(), vehicle.Mileage(), vehicle.Condition().String(),
		vehicle.PurchasePrice(), vehicle.Active(), vehicle.Version(),
		vehicle.CreatedAt(), vehicle.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("optimistic locking conflict on vehicle")
	}
	return nil
}

// FindByID retrieves a vehicle by ID.
func (r *VehicleRepo) FindByID(ctx context.Context, id string) (model.Vehicle, error) {
	row := r.pool.QueryRow(ctx, vehicleSelect+` WHERE id = $1`, id)
	return scanVehicle(row)
}

// FindByVIN retrieves a vehicle by VIN.
func (r *VehicleRepo) FindByVIN(ctx context.Context, vin string) (model.Vehicle, error) {
	row := r.pool.QueryRow(ctx, vehicleSelect+` WHERE vin = $1`, vin)
	return scanVehicle(row)
}

// FindAll retrieves vehicles ordered by registration time.
func (r *VehicleRepo) FindAll(ctx context.Context, limit, offset int) ([]model.Vehicle, error) {
	rows, err := r.pool.Query(ctx, vehicleSelect+` ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query vehicles: %w", err)
	}
	defer rows.Close()

	var result []model.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

const vehicleSelect = `
	SELECT id, vin, make, model, year, mileage, condition,
	       purchase_price, active, version, created_at, updated_at
	FROM vehicles`

func scanVehicle(s scannable) (model.Vehicle, error) {
	var (
		id, vin, mk, mdl, conditionStr string
		year, version                  int
		mileage, purchasePrice         float64
		active                         bool
		createdAt, updatedAt           time.Time
	)

	err := s.Scan(&id, &vin, &mk, &mdl, &year, &mileage, &conditionStr,
		&purchasePrice, &active, &version, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Vehicle{}, port.ErrVehicleNotFound
		}
		return model.Vehicle{}, fmt.Errorf("scan vehicle: %w", err)
	}

	condition, err := valueobject.NewVehicleCondition(conditionStr)
	if err != nil {
		return model.Vehicle{}, fmt.Errorf("parse vehicle condition: %w", err)
	}

	return model.ReconstructVehicle(
		id, vin, mk, mdl, year, mileage, condition, purchasePrice,
		active, version, createdAt, updatedAt,
	), nil
}
