package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/motorlend/motorlend/internal/domain/service"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// RegisterVehicleRequest carries the data needed to register a vehicle.
type RegisterVehicleRequest struct {
	VIN           string  `json:"vin"`
	Make          string  `json:"make"`
	Model         string  `json:"model"`
	Year          int     `json:"year"`
	Mileage       float64 `json:"mileage"`
	Condition     string  `json:"condition"`
	PurchasePrice float64 `json:"purchase_price,omitempty"`
}

// RequestValuationRequest identifies the vehicle to appraise. Either
// VehicleID or VIN must be set; overrides are optional.
type RequestValuationRequest struct {
	VehicleID         string  `json:"vehicle_id,omitempty"`
	VIN               string  `json:"vin,omitempty"`
	MileageOverride   float64 `json:"mileage_override,omitempty"`
	ConditionOverride string  `json:"condition_override,omitempty"`
}

// CreateLoanRequest carries a financing application.
type CreateLoanRequest struct {
	ApplicantName   string          `json:"applicant_name"`
	ApplicantEmail  string          `json:"applicant_email"`
	VehicleID       string          `json:"vehicle_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	DownPayment     decimal.Decimal `json:"down_payment"`
	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	ExistingDebts   decimal.Decimal `json:"existing_debts"`
	CreditScore     int             `json:"credit_score"`
	TermMonths      int             `json:"term_months"`
}

// CheckEligibilityRequest carries the raw financials for a standalone
// eligibility evaluation, without creating a loan.
type CheckEligibilityRequest struct {
	CreditScore     int     `json:"credit_score"`
	VehicleValue    float64 `json:"vehicle_value"`
	RequestedAmount float64 `json:"requested_amount"`
	DownPayment     float64 `json:"down_payment"`
	MonthlyIncome   float64 `json:"monthly_income"`
	ExistingDebts   float64 `json:"existing_debts"`
	TermMonths      int     `json:"term_months"`
}

// UpdateLoanStatusRequest carries a lifecycle status overwrite.
type UpdateLoanStatusRequest struct {
	LoanID string `json:"loan_id"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// VehicleResponse is the external representation of a vehicle.
type VehicleResponse struct {
	ID            string    `json:"id"`
	VIN           string    `json:"vin"`
	Make          string    `json:"make"`
	Model         string    `json:"model"`
	Year          int       `json:"year"`
	Mileage       float64   `json:"mileage"`
	Condition     string    `json:"condition"`
	PurchasePrice float64   `json:"purchase_price,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValuationResponse is the external representation of a stored appraisal.
type ValuationResponse struct {
	ID                string                   `json:"id"`
	VehicleID         string                   `json:"vehicle_id"`
	EstimatedValue    decimal.Decimal          `json:"estimated_value"`
	TradeInValue      decimal.Decimal          `json:"trade_in_value"`
	RetailValue       decimal.Decimal          `json:"retail_value"`
	PrivatePartyValue decimal.Decimal          `json:"private_party_value"`
	ConfidenceScore   int                      `json:"confidence_score"`
	Source            string                   `json:"source"`
	Factors           service.ValuationFactors `json:"factors"`
	CreatedAt         time.Time                `json:"created_at"`
	ValidUntil        time.Time                `json:"valid_until"`
	Active            bool                     `json:"active"`
}

// LoanResponse is the external representation of a loan.
type LoanResponse struct {
	ID              string          `json:"id"`
	ApplicantName   string          `json:"applicant_name"`
	ApplicantEmail  string          `json:"applicant_email"`
	VehicleID       string          `json:"vehicle_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	DownPayment     decimal.Decimal `json:"down_payment"`
	VehicleValue    decimal.Decimal `json:"vehicle_value"`
	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	ExistingDebts   decimal.Decimal `json:"existing_debts"`
	CreditScore     int             `json:"credit_score"`
	TermMonths      int             `json:"term_months"`

	Eligible          bool            `json:"eligible"`
	Reasons           []string        `json:"reasons,omitempty"`
	InterestRate      float64         `json:"interest_rate"`
	MonthlyPayment    decimal.Decimal `json:"monthly_payment"`
	TotalPayable      decimal.Decimal `json:"total_payable"`
	LoanToValue       float64         `json:"loan_to_value"`
	DebtToIncome      float64         `json:"debt_to_income"`
	ApprovedAmount    decimal.Decimal `json:"approved_amount"`

	Status       string     `json:"status"`
	StatusReason string     `json:"status_reason,omitempty"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	RejectedAt   *time.Time `json:"rejected_at,omitempty"`
	DisbursedAt  *time.Time `json:"disbursed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// EligibilityResponse is the external representation of a standalone
// eligibility decision.
type EligibilityResponse struct {
	Eligible          bool                       `json:"eligible"`
	Reasons           []string                   `json:"reasons,omitempty"`
	CreditScore       service.EligibilityCheck   `json:"credit_score"`
	LoanToValue       service.EligibilityCheck   `json:"loan_to_value"`
	DownPayment       service.EligibilityCheck   `json:"down_payment"`
	DebtToIncome      service.EligibilityCheck   `json:"debt_to_income"`
	LoanTerm          service.EligibilityCheck   `json:"loan_term"`
	RecommendedRate   float64                    `json:"recommended_rate,omitempty"`
	MaxApprovedAmount float64                    `json:"max_approved_amount"`
	MonthlyPayment    float64                    `json:"monthly_payment,omitempty"`
	TotalPayable      float64                    `json:"total_payable,omitempty"`
}

// LoanStatisticsResponse aggregates portfolio counts and totals.
type LoanStatisticsResponse struct {
	TotalLoans     int             `json:"total_loans"`
	CountsByStatus map[string]int  `json:"counts_by_status"`
	TotalRequested decimal.Decimal `json:"total_requested"`
	TotalApproved  decimal.Decimal `json:"total_approved"`
}
