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
	"github.com/motorlend/motorlend/internal/domain/valueobject"
)

// LoanRepo implements port.LoanRepository.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a new PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// Save persists a loan with its decision record (optimistic-version upsert).
func (r *LoanRepo) Save(ctx context.Context, loan model.Loan) error {
	decisionJSON, err := json.Marshal(loan.Decision())
	if err != nil {
		return fmt.Errorf("marshal decision: %w", err)
	}

	query := `
		INSERT INTO loans (
			id, applicant_name, applicant_email, vehicle_id,
			requested_amount, down_payment, vehicle_value,
			monthly_income, existing_debts, credit_score, term_months,
			decision, interest_rate, monthly_payment, total_payable,
			loan_to_value, debt_to_income,
			status, status_reason, approved_amount,
			approved_at, rejected_at, disbursed_at,
			version, created_at, updated_at
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,
			$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26
		)
		ON CONFLICT (id) DO UPDATE SET
			status          = EXCLUDED.status,
			status_reason   = EXCLUDED.status_reason,
			approved_amount = EXCLUDED.approved_amount,
			approved_at     = EXCLUDED.approved_at,
			rejected_at     = EXCLUDED.rejected_at,
			disbursed_at    = EXCLUDED.disbursed_at,
			version         = loans.version + 1,
			updated_at      = EXCLUDED.updated_at
		WHERE loans.version = $24
	`
	tag, err := r.pool.Exec(ctx, query,
		loan.ID(), loan.ApplicantName(), loan.ApplicantEmail(), loan.VehicleID(),
		loan.RequestedAmount(), loan.DownPayment(), loan.VehicleValue(),
		loan.MonthlyIncome(), loan.ExistingDebts(), loan.CreditScore(), loan.TermMonths(),
		decisionJSON, loan.InterestRate(), loan.MonthlyPayment(), loan.TotalPayable(),
		loan.LoanToValue(), loan.DebtToIncome(),
		loan.Status().String(), loan.StatusReason(), loan.ApprovedAmount(),
		loan.ApprovedAt(), loan.RejectedAt(), loan.DisbursedAt(),
		loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("optimistic locking conflict on loan")
	}
	return nil
}

// FindByID retrieves a loan by ID.
func (r *LoanRepo) FindByID(ctx context.Context, id string) (model.Loan, error) {
	row := r.pool.QueryRow(ctx, loanSelect+` WHERE id = $1`, id)
	return scanLoan(row)
}

// FindByApplicantEmail retrieves every loan for an applicant, newest first.
func (r *LoanRepo) FindByApplicantEmail(ctx context.Context, email string) ([]model.Loan, error) {
	return r.queryLoans(ctx, loanSelect+` WHERE applicant_email = $1 ORDER BY created_at DESC`, email)
}

// FindByVehicleID retrieves every loan against a vehicle, newest first.
func (r *LoanRepo) FindByVehicleID(ctx context.Context, vehicleID string) ([]model.Loan, error) {
	return r.queryLoans(ctx, loanSelect+` WHERE vehicle_id = $1 ORDER BY created_at DESC`, vehicleID)
}

// CountByStatus returns the number of loans per lifecycle status.
func (r *LoanRepo) CountByStatus(ctx context.Context) (map[valueobject.LoanStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM loans GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count loans: %w", err)
	}
	defer rows.Close()

	counts := make(map[valueobject.LoanStatus]int)
	for rows.Next() {
		var statusStr string
		var n int
		if err := rows.Scan(&statusStr, &n); err != nil {
			return nil, fmt.Errorf("scan loan count: %w", err)
		}
		status, err := valueobject.NewLoanStatus(statusStr)
		if err != nil {
			return nil, fmt.Errorf("parse loan status: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// SumAmounts returns the portfolio totals for requested and approved amounts.
func (r *LoanRepo) SumAmounts(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	var requested, approved decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(requested_amount), 0), COALESCE(SUM(approved_amount), 0) FROM loans`,
	).Scan(&requested, &approved)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum loan amounts: %w", err)
	}
	return requested, approved, nil
}

func (r *LoanRepo) queryLoans(ctx context.Context, query string, args ...any) ([]model.Loan, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var result []model.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

const loanSelect = `
	SELECT id, applicant_name, applicant_email, vehicle_id,
	       requested_amount, down_payment, vehicle_value,
	       monthly_income, existing_debts, credit_score, term_months,
	       decision, interest_rate, monthly_payment, total_payable,
	       loan_to_value, debt_to_income,
	       status, status_reason, approved_amount,
	       approved_at, rejected_at, disbursed_at,
	       version, created_at, updated_at
	FROM loans`

func scanLoan(s scannable) (model.Loan, error) {
	var (
		id, applicantName, applicantEmail, vehicleID          string
		requested, downPayment, vehicleValue                  decimal.Decimal
		monthlyIncome, existingDebts                          decimal.Decimal
		creditScore, termMonths, version                      int
		decisionJSON                                          []byte
		interestRate, loanToValue, debtToIncome               float64
		monthlyPayment, totalPayable, approvedAmount          decimal.Decimal
		statusStr, statusReason                               string
		approvedAt, rejectedAt, disbursedAt                   *time.Time
		createdAt, updatedAt                                  time.Time
	)

	err := s.Scan(&id, &applicantName, &applicantEmail, &vehicleID,
		&requested, &downPayment, &vehicleValue,
		&monthlyIncome, &existingDebts, &creditScore, &termMonths,
		&decisionJSON, &interestRate, &monthlyPayment, &totalPayable,
		&loanToValue, &debtToIncome,
		&statusStr, &statusReason, &approvedAmount,
		&approvedAt, &rejectedAt, &disbursedAt,
		&version, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, port.ErrLoanNotFound
		}
		return model.Loan{}, fmt.Errorf("scan loan: %w", err)
	}

	var decision service.EligibilityDecision
	if err := json.Unmarshal(decisionJSON, &decision); err != nil {
		return model.Loan{}, fmt.Errorf("unmarshal decision: %w", err)
	}

	status, err := valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse loan status: %w", err)
	}

	return model.ReconstructLoan(
		id, applicantName, applicantEmail, vehicleID,
		requested, downPayment, vehicleValue, monthlyIncome, existingDebts,
		creditScore, termMonths,
		decision, interestRate, monthlyPayment, totalPayable,
		loanToValue, debtToIncome,
		status, statusReason, approvedAmount,
		approvedAt, rejectedAt, disbursedAt,
		version, createdAt, updatedAt,
	), nil
}
