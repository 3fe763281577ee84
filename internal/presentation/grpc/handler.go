package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/motorlend/motorlend/internal/application/dto"
	"github.com/motorlend/motorlend/internal/application/usecase"
	"github.com/motorlend/motorlend/internal/domain/port"
	"github.com/motorlend/motorlend/internal/domain/service"
	"github.com/motorlend/motorlend/internal/domain/valueobject"
	"github.com/motorlend/motorlend/pkg/auth"
)

// ---------------------------------------------------------------------------
// Message types (mirroring motorlend.v1 proto messages)
// ---------------------------------------------------------------------------

// VehicleMessage is the wire representation of a vehicle.
type VehicleMessage struct {
	Id            string  `json:"id"`
	Vin           string  `json:"vin"`
	Make          string  `json:"make"`
	Model         string  `json:"model"`
	Year          int32   `json:"year"`
	Mileage       float64 `json:"mileage"`
	Condition     string  `json:"condition"`
	PurchasePrice float64 `json:"purchase_price,omitempty"`
	Active        bool    `json:"active"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// ValuationFactorsMessage records the inputs applied to an appraisal.
type ValuationFactorsMessage struct {
	AgeYears           int32   `json:"age_years"`
	Mileage            float64 `json:"mileage"`
	Condition          string  `json:"condition"`
	MarketDemandPct    float64 `json:"market_demand_pct"`
	LocationAdjustment float64 `json:"location_adjustment"`
	SeasonalFactor     float64 `json:"seasonal_factor"`
	DepreciationFactor float64 `json:"depreciation_factor"`
}

// ValuationMessage is the wire representation of a stored appraisal.
// Monetary amounts are decimal strings.
type ValuationMessage struct {
	Id                string                   `json:"id"`
	VehicleId         string                   `json:"vehicle_id"`
	EstimatedValue    string                   `json:"estimated_value"`
	TradeInValue      string                   `json:"trade_in_value"`
	RetailValue       string                   `json:"retail_value"`
	PrivatePartyValue string                   `json:"private_party_value"`
	ConfidenceScore   int32                    `json:"confidence_score"`
	Source            string                   `json:"source"`
	Factors           *ValuationFactorsMessage `json:"factors,omitempty"`
	CreatedAt         string                   `json:"created_at"`
	ValidUntil        string                   `json:"valid_until"`
	Active            bool                     `json:"active"`
}

// LoanMessage is the wire representation of a loan.
type LoanMessage struct {
	Id              string `json:"id"`
	ApplicantName   string `json:"applicant_name"`
	ApplicantEmail  string `json:"applicant_email"`
	VehicleId       string `json:"vehicle_id"`
	RequestedAmount string `json:"requested_amount"`
	DownPayment     string `json:"down_payment"`
	VehicleValue    string `json:"vehicle_value"`
	MonthlyIncome   string `json:"monthly_income"`
	ExistingDebts   string `json:"existing_debts"`
	CreditScore     int32  `json:"credit_score"`
	TermMonths      int32  `json:"term_months"`

	Eligible       bool     `json:"eligible"`
	Reasons        []string `json:"reasons,omitempty"`
	InterestRate   float64  `json:"interest_rate"`
	MonthlyPayment string   `json:"monthly_payment"`
	TotalPayable   string   `json:"total_payable"`
	LoanToValue    float64  `json:"loan_to_value"`
	DebtToIncome   float64  `json:"debt_to_income"`
	ApprovedAmount string   `json:"approved_amount"`

	Status       string `json:"status"`
	StatusReason string `json:"status_reason,omitempty"`
	ApprovedAt   string `json:"approved_at,omitempty"`
	RejectedAt   string `json:"rejected_at,omitempty"`
	DisbursedAt  string `json:"disbursed_at,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// EligibilityCheckMessage records the outcome of a single criterion.
type EligibilityCheckMessage struct {
	Passed    bool    `json:"passed"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	Direction string  `json:"direction"`
}

// RegisterVehicleRequest is the request for RegisterVehicle.
type RegisterVehicleRequest struct {
	Vin           string  `json:"vin"`
	Make          string  `json:"make"`
	Model         string  `json:"model"`
	Year          int32   `json:"year"`
	Mileage       float64 `json:"mileage"`
	Condition     string  `json:"condition,omitempty"`
	PurchasePrice float64 `json:"purchase_price,omitempty"`
}

// RegisterVehicleResponse is the response for RegisterVehicle.
type RegisterVehicleResponse struct {
	Vehicle *VehicleMessage `json:"vehicle"`
}

// GetVehicleRequest identifies a vehicle by ID or VIN.
type GetVehicleRequest struct {
	VehicleId string `json:"vehicle_id,omitempty"`
	Vin       string `json:"vin,omitempty"`
}

// GetVehicleResponse is the response for GetVehicle.
type GetVehicleResponse struct {
	Vehicle *VehicleMessage `json:"vehicle"`
}

// ListVehiclesRequest pages through registered vehicles.
type ListVehiclesRequest struct {
	Limit  int32 `json:"limit,omitempty"`
	Offset int32 `json:"offset,omitempty"`
}

// ListVehiclesResponse is the response for ListVehicles.
type ListVehiclesResponse struct {
	Vehicles []*VehicleMessage `json:"vehicles"`
}

// RequestValuationRequest is the request for RequestValuation.
type RequestValuationRequest struct {
	VehicleId         string  `json:"vehicle_id,omitempty"`
	Vin               string  `json:"vin,omitempty"`
	MileageOverride   float64 `json:"mileage_override,omitempty"`
	ConditionOverride string  `json:"condition_override,omitempty"`
}

// RequestValuationResponse is the response for RequestValuation.
type RequestValuationResponse struct {
	Valuation *ValuationMessage `json:"valuation"`
}

// GetValuationRequest identifies a valuation by ID.
type GetValuationRequest struct {
	ValuationId string `json:"valuation_id"`
}

// GetValuationResponse is the response for GetValuation.
type GetValuationResponse struct {
	Valuation *ValuationMessage `json:"valuation"`
}

// GetLatestValuationRequest identifies a vehicle whose current appraisal is
// wanted. Set IncludeHistory to also return superseded appraisals.
type GetLatestValuationRequest struct {
	VehicleId      string `json:"vehicle_id"`
	IncludeHistory bool   `json:"include_history,omitempty"`
}

// GetLatestValuationResponse is the response for GetLatestValuation.
type GetLatestValuationResponse struct {
	Valuation *ValuationMessage   `json:"valuation"`
	History   []*ValuationMessage `json:"history,omitempty"`
}

// CreateLoanRequest is the request for CreateLoan. Monetary amounts are
// decimal strings.
type CreateLoanRequest struct {
	ApplicantName   string `json:"applicant_name"`
	ApplicantEmail  string `json:"applicant_email"`
	VehicleId       string `json:"vehicle_id"`
	RequestedAmount string `json:"requested_amount"`
	DownPayment     string `json:"down_payment"`
	MonthlyIncome   string `json:"monthly_income"`
	ExistingDebts   string `json:"existing_debts,omitempty"`
	CreditScore     int32  `json:"credit_score"`
	TermMonths      int32  `json:"term_months"`
}

// CreateLoanResponse is the response for CreateLoan.
type CreateLoanResponse struct {
	Loan *LoanMessage `json:"loan"`
}

// GetLoanRequest identifies a loan by ID.
type GetLoanRequest struct {
	LoanId string `json:"loan_id"`
}

// GetLoanResponse is the response for GetLoan.
type GetLoanResponse struct {
	Loan *LoanMessage `json:"loan"`
}

// ListLoansByApplicantRequest identifies loans by applicant email.
type ListLoansByApplicantRequest struct {
	ApplicantEmail string `json:"applicant_email"`
}

// ListLoansByApplicantResponse is the response for ListLoansByApplicant.
type ListLoansByApplicantResponse struct {
	Loans []*LoanMessage `json:"loans"`
}

// UpdateLoanStatusRequest is the request for UpdateLoanStatus.
type UpdateLoanStatusRequest struct {
	LoanId string `json:"loan_id"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// UpdateLoanStatusResponse is the response for UpdateLoanStatus.
type UpdateLoanStatusResponse struct {
	Loan *LoanMessage `json:"loan"`
}

// CheckEligibilityRequest is the request for CheckEligibility.
type CheckEligibilityRequest struct {
	CreditScore     int32   `json:"credit_score"`
	VehicleValue    float64 `json:"vehicle_value"`
	RequestedAmount float64 `json:"requested_amount"`
	DownPayment     float64 `json:"down_payment"`
	MonthlyIncome   float64 `json:"monthly_income"`
	ExistingDebts   float64 `json:"existing_debts,omitempty"`
	TermMonths      int32   `json:"term_months"`
}

// CheckEligibilityResponse is the response for CheckEligibility.
type CheckEligibilityResponse struct {
	Eligible          bool                     `json:"eligible"`
	Reasons           []string                 `json:"reasons,omitempty"`
	CreditScore       *EligibilityCheckMessage `json:"credit_score"`
	LoanToValue       *EligibilityCheckMessage `json:"loan_to_value"`
	DownPayment       *EligibilityCheckMessage `json:"down_payment"`
	DebtToIncome      *EligibilityCheckMessage `json:"debt_to_income"`
	LoanTerm          *EligibilityCheckMessage `json:"loan_term"`
	RecommendedRate   float64                  `json:"recommended_rate,omitempty"`
	MaxApprovedAmount float64                  `json:"max_approved_amount"`
	MonthlyPayment    float64                  `json:"monthly_payment,omitempty"`
	TotalPayable      float64                  `json:"total_payable,omitempty"`
}

// GetLoanStatisticsRequest is the request for GetLoanStatistics.
type GetLoanStatisticsRequest struct{}

// GetLoanStatisticsResponse aggregates portfolio counts and totals.
type GetLoanStatisticsResponse struct {
	TotalLoans     int32            `json:"total_loans"`
	CountsByStatus map[string]int32 `json:"counts_by_status"`
	TotalRequested string           `json:"total_requested"`
	TotalApproved  string           `json:"total_approved"`
}

// ---------------------------------------------------------------------------
// Handler
// ---------------------------------------------------------------------------

// Handler implements MotorlendServiceServer on top of the application
// use cases.
type Handler struct {
	UnimplementedMotorlendServiceServer

	registerVehicle  *usecase.RegisterVehicleUseCase
	getVehicle       *usecase.GetVehicleUseCase
	requestValuation *usecase.RequestValuationUseCase
	getValuation     *usecase.GetValuationUseCase
	createLoan       *usecase.CreateLoanUseCase
	getLoan          *usecase.GetLoanUseCase
	updateLoanStatus *usecase.UpdateLoanStatusUseCase
	checkEligibility *usecase.CheckEligibilityUseCase
	loanStatistics   *usecase.LoanStatisticsUseCase
	logger           *slog.Logger
}

var _ MotorlendServiceServer = (*Handler)(nil)

// NewHandler wires the gRPC handler.
func NewHandler(
	registerVehicle *usecase.RegisterVehicleUseCase,
	getVehicle *usecase.GetVehicleUseCase,
	requestValuation *usecase.RequestValuationUseCase,
	getValuation *usecase.GetValuationUseCase,
	createLoan *usecase.CreateLoanUseCase,
	getLoan *usecase.GetLoanUseCase,
	updateLoanStatus *usecase.UpdateLoanStatusUseCase,
	checkEligibility *usecase.CheckEligibilityUseCase,
	loanStatistics *usecase.LoanStatisticsUseCase,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		registerVehicle:  registerVehicle,
		getVehicle:       getVehicle,
		requestValuation: requestValuation,
		getValuation:     getValuation,
		createLoan:       createLoan,
		getLoan:          getLoan,
		updateLoanStatus: updateLoanStatus,
		checkEligibility: checkEligibility,
		loanStatistics:   loanStatistics,
		logger:           logger,
	}
}

// RegisterVehicle registers a vehicle in the inventory.
func (h *Handler) RegisterVehicle(ctx context.Context, req *RegisterVehicleRequest) (*RegisterVehicleResponse, error) {
	if err := requireRole(ctx, auth.RoleDealer, auth.RoleUnderwriter, auth.RoleAdmin); err != nil {
		return nil, err
	}
	if req.Vin == "" {
		return nil, status.Error(codes.InvalidArgument, "vin is required")
	}
	if req.Make == "" || req.Model == "" {
		return nil, status.Error(codes.InvalidArgument, "make and model are required")
	}

	resp, err := h.registerVehicle.Execute(ctx, dto.RegisterVehicleRequest{
		VIN:           req.Vin,
		Make:          req.Make,
		Model:         req.Model,
		Year:          int(req.Year),
		Mileage:       req.Mileage,
		Condition:     req.Condition,
		PurchasePrice: req.PurchasePrice,
	})
	if err != nil {
		return nil, h.toStatusError(ctx, "RegisterVehicle", err)
	}
	return &RegisterVehicleResponse{Vehicle: toVehicleMessage(resp)}, nil
}

// GetVehicle retrieves a vehicle by ID or VIN.
func (h *Handler) GetVehicle(ctx context.Context, req *GetVehicleRequest) (*GetVehicleResponse, error) {
	if err := requireRole(ctx, auth.RoleDealer, auth.RoleUnderwriter, auth.RoleAPIClient, auth.RoleAdmin); err != nil {
		return nil, err
	}

	var (
		resp dto.VehicleResponse
		err  error
	)
	switch {
	case req.VehicleId != "":
		resp, err = h.getVehicle.Execute(ctx, req.VehicleId)
	case req.Vin != "":
		resp, err = h.getVehicle.ExecuteByVIN(ctx, req.Vin)
	default:
		return nil, status.Error(codes.InvalidArgument, "vehicle_id or vin is required")
	}
	if err != nil {
		return nil, h.toStatusError(ctx, "GetVehicle", err)
	}
	return &GetVehicleResponse{Vehicle: toVehicleMessage(resp)}, nil
}

// ListVehicles pages through registered vehicles.
func (h *Handler) ListVehicles(ctx context.Context, req *ListVehiclesRequest) (*ListVehiclesResponse, error) {
	if err := requireRole(ctx, auth.RoleDealer, auth.RoleUnderwriter, auth.RoleAPIClient, auth.RoleAdmin); err != nil {
		return nil, err
	}

	vehicles, err := h.getVehicle.ExecuteList(ctx, int(req.Limit), int(req.Offset))
	if err != nil {
		return nil, h.toStatusError(ctx, "ListVehicles", err)
	}
	out := make([]*VehicleMessage, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleMessage(v))
	}
	return &ListVehiclesResponse{Vehicles: out}, nil
}

// RequestValuation computes and stores a fresh appraisal for a vehicle,
// superseding any previous active one.
func (h *Handler) RequestValuation(ctx context.Context, req *RequestValuationRequest) (*RequestValuationResponse, error) {
	if err := requireRole(ctx, auth.RoleDealer, auth.RoleUnderwriter, auth.RoleAdmin); err != nil {
		return nil, err
	}
	if req.VehicleId == "" && req.Vin == "" {
		return nil, status.Error(codes.InvalidArgument, "vehicle_id or vin is required")
	}

	resp, err := h.requestValuation.Execute(ctx, dto.RequestValuationRequest{
		VehicleID:         req.VehicleId,
		VIN:               req.Vin,
		MileageOverride:   req.MileageOverride,
		ConditionOverride: req.ConditionOverride,
	})
	if err != nil {
		return nil, h.toStatusError(ctx, "RequestValuation", err)
	}
	return &RequestValuationResponse{Valuation: toValuationMessage(resp)}, nil
}

// GetValuation retrieves a stored appraisal by ID.
func (h *Handler) GetValuation(ctx context.Context, req *GetValuationRequest) (*GetValuationResponse, error) {
	if err := requireRole(ctx, auth.RoleDealer, auth.RoleUnderwriter, auth.RoleAPIClient, auth.RoleAdmin); err != nil {
		return nil, err
	}
	if req.ValuationId == "" {
		return nil, status.Error(codes.InvalidArgument, "valuation_id is required")
	}

	resp, err := h.getValuation.Execute(ctx, req.ValuationId)
	if err != nil {
		return nil, h.toStatusError(ctx, "GetValuation", err)
	}
	return &GetValuationResponse{Valuation: toValuationMessage(resp)}, nil
}

// GetLatestValuation retrieves the current active appraisal for a vehicle,
// optionally with the full appraisal history.
func (h *Handler) GetLatestValuation(ctx context.Context, req *GetLatestValuationRequest) (*GetLatestValuationResponse, error) {
	if err := requireRole(ctx, auth.RoleDealer, auth.RoleUnderwriter, auth.RoleAPIClient, auth.RoleAdmin); err != nil {
		return nil, err
	}
	if req.VehicleId == "" {
		return nil, status.Error(codes.InvalidArgument, "vehicle_id is required")
	}

	latest, err := h.getValuation.ExecuteLatest(ctx, req.VehicleId)
	if err != nil {
		return nil, h.toStatusError(ctx, "GetLatestValuation", err)
	}
	out := &GetLatestValuationResponse{Valuation: toValuationMessage(latest)}

	if req.IncludeHistory {
		history, err := h.getValuation.ExecuteHistory(ctx, req.VehicleId)
		if err != nil {
			return nil, h.toStatusError(ctx, "GetLatestValuation", err)
		}
		out.History = make([]*ValuationMessage, 0, len(history))
		for _, v := range history {
			out.History = append(out.History, toValuationMessage(v))
		}
	}
	return out, nil
}

// CreateLoan submits a financing application. The loan is decisioned
// synchronously against the vehicle's current valuation.
func (h *Handler) CreateLoan(ctx context.Context, req *CreateLoanRequest) (*CreateLoanResponse, error) {
	if err := requireRole(ctx, auth.RoleDealer, auth.RoleUnderwriter, auth.RoleAdmin); err != nil {
		return nil, err
	}
	if req.ApplicantName == "" || req.ApplicantEmail == "" {
		return nil, status.Error(codes.InvalidArgument, "applicant_name and applicant_email are required")
	}
	if req.VehicleId == "" {
		return nil, status.Error(codes.InvalidArgument, "vehicle_id is required")
	}

	requested, err := parseAmount(req.RequestedAmount, "requested_amount")
	if err != nil {
		return nil, err
	}
	downPayment, err := parseAmount(req.DownPayment, "down_payment")
	if err != nil {
		return nil, err
	}
	income, err := parseAmount(req.MonthlyIncome, "monthly_income")
	if err != nil {
		return nil, err
	}
	debts := decimal.Zero
	if req.ExistingDebts != "" {
		debts, err = parseAmount(req.ExistingDebts, "existing_debts")
		if err != nil {
			return nil, err
		}
	}

	resp, err := h.createLoan.Execute(ctx, dto.CreateLoanRequest{
		ApplicantName:   req.ApplicantName,
		ApplicantEmail:  req.ApplicantEmail,
		VehicleID:       req.VehicleId,
		RequestedAmount: requested,
		DownPayment:     downPayment,
		MonthlyIncome:   income,
		ExistingDebts:   debts,
		CreditScore:     int(req.CreditScore),
		TermMonths:      int(req.TermMonths),
	})
	if err != nil {
		return nil, h.toStatusError(ctx, "CreateLoan", err)
	}
	return &CreateLoanResponse{Loan: toLoanMessage(resp)}, nil
}

// GetLoan retrieves a loan by ID.
func (h *Handler) GetLoan(ctx context.Context, req *GetLoanRequest) (*GetLoanResponse, error) {
	if err := requireRole(ctx, auth.RoleDealer, auth.RoleUnderwriter, auth.RoleAPIClient, auth.RoleAdmin); err != nil {
		return nil, err
	}
	if req.LoanId == "" {
		return nil, status.Error(codes.InvalidArgument, "loan_id is required")
	}

	resp, err := h.getLoan.Execute(ctx, req.LoanId)
	if err != nil {
		return nil, h.toStatusError(ctx, "GetLoan", err)
	}
	return &GetLoanResponse{Loan: toLoanMessage(resp)}, nil
}

// ListLoansByApplicant retrieves all loans for an applicant email.
func (h *Handler) ListLoansByApplicant(ctx context.Context, req *ListLoansByApplicantRequest) (*ListLoansByApplicantResponse, error) {
	if err := requireRole(ctx, auth.RoleUnderwriter, auth.RoleAPIClient, auth.RoleAdmin); err != nil {
		return nil, err
	}
	if req.ApplicantEmail == "" {
		return nil, status.Error(codes.InvalidArgument, "applicant_email is required")
	}

	loans, err := h.getLoan.ExecuteByApplicant(ctx, req.ApplicantEmail)
	if err != nil {
		return nil, h.toStatusError(ctx, "ListLoansByApplicant", err)
	}
	out := make([]*LoanMessage, 0, len(loans))
	for _, l := range loans {
		out = append(out, toLoanMessage(l))
	}
	return &ListLoansByApplicantResponse{Loans: out}, nil
}

// UpdateLoanStatus overwrites a loan's lifecycle status.
func (h *Handler) UpdateLoanStatus(ctx context.Context, req *UpdateLoanStatusRequest) (*UpdateLoanStatusResponse, error) {
	if err := requireRole(ctx, auth.RoleUnderwriter, auth.RoleAdmin); err != nil {
		return nil, err
	}
	if req.LoanId == "" {
		return nil, status.Error(codes.InvalidArgument, "loan_id is required")
	}
	if _, err := valueobject.NewLoanStatus(req.Status); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	resp, err := h.updateLoanStatus.Execute(ctx, dto.UpdateLoanStatusRequest{
		LoanID: req.LoanId,
		Status: req.Status,
		Reason: req.Reason,
	})
	if err != nil {
		return nil, h.toStatusError(ctx, "UpdateLoanStatus", err)
	}
	return &UpdateLoanStatusResponse{Loan: toLoanMessage(resp)}, nil
}

// CheckEligibility evaluates raw financials without creating a loan.
func (h *Handler) CheckEligibility(ctx context.Context, req *CheckEligibilityRequest) (*CheckEligibilityResponse, error) {
	if err := requireRole(ctx, auth.RoleDealer, auth.RoleUnderwriter, auth.RoleAPIClient, auth.RoleAdmin); err != nil {
		return nil, err
	}

	resp, err := h.checkEligibility.Execute(ctx, dto.CheckEligibilityRequest{
		CreditScore:     int(req.CreditScore),
		VehicleValue:    req.VehicleValue,
		RequestedAmount: req.RequestedAmount,
		DownPayment:     req.DownPayment,
		MonthlyIncome:   req.MonthlyIncome,
		ExistingDebts:   req.ExistingDebts,
		TermMonths:      int(req.TermMonths),
	})
	if err != nil {
		return nil, h.toStatusError(ctx, "CheckEligibility", err)
	}
	return &CheckEligibilityResponse{
		Eligible:          resp.Eligible,
		Reasons:           resp.Reasons,
		CreditScore:       toCheckMessage(resp.CreditScore),
		LoanToValue:       toCheckMessage(resp.LoanToValue),
		DownPayment:       toCheckMessage(resp.DownPayment),
		DebtToIncome:      toCheckMessage(resp.DebtToIncome),
		LoanTerm:          toCheckMessage(resp.LoanTerm),
		RecommendedRate:   resp.RecommendedRate,
		MaxApprovedAmount: resp.MaxApprovedAmount,
		MonthlyPayment:    resp.MonthlyPayment,
		TotalPayable:      resp.TotalPayable,
	}, nil
}

// GetLoanStatistics aggregates portfolio counts and amount totals.
func (h *Handler) GetLoanStatistics(ctx context.Context, _ *GetLoanStatisticsRequest) (*GetLoanStatisticsResponse, error) {
	if err := requireRole(ctx, auth.RoleUnderwriter, auth.RoleAdmin); err != nil {
		return nil, err
	}

	stats, err := h.loanStatistics.Execute(ctx)
	if err != nil {
		return nil, h.toStatusError(ctx, "GetLoanStatistics", err)
	}
	counts := make(map[string]int32, len(stats.CountsByStatus))
	for s, n := range stats.CountsByStatus {
		counts[s] = int32(n)
	}
	return &GetLoanStatisticsResponse{
		TotalLoans:     int32(stats.TotalLoans),
		CountsByStatus: counts,
		TotalRequested: stats.TotalRequested.StringFixed(2),
		TotalApproved:  stats.TotalApproved.StringFixed(2),
	}, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient role")
}

func parseAmount(raw, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, status.Errorf(codes.InvalidArgument, "%s: invalid decimal %q", field, raw)
	}
	return d, nil
}

func (h *Handler) toStatusError(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, port.ErrVehicleNotFound),
		errors.Is(err, port.ErrValuationNotFound),
		errors.Is(err, port.ErrLoanNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, usecase.ErrVINAlreadyRegistered):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, usecase.ErrVehicleLookup):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	h.logger.ErrorContext(ctx, "request failed", "method", method, "error", err)
	return status.Error(codes.Internal, "internal error")
}

func toVehicleMessage(v dto.VehicleResponse) *VehicleMessage {
	return &VehicleMessage{
		Id:            v.ID,
		Vin:           v.VIN,
		Make:          v.Make,
		Model:         v.Model,
		Year:          int32(v.Year),
		Mileage:       v.Mileage,
		Condition:     v.Condition,
		PurchasePrice: v.PurchasePrice,
		Active:        v.Active,
		CreatedAt:     v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     v.UpdatedAt.Format(time.RFC3339),
	}
}

func toValuationMessage(v dto.ValuationResponse) *ValuationMessage {
	return &ValuationMessage{
		Id:                v.ID,
		VehicleId:         v.VehicleID,
		EstimatedValue:    v.EstimatedValue.StringFixed(2),
		TradeInValue:      v.TradeInValue.StringFixed(2),
		RetailValue:       v.RetailValue.StringFixed(2),
		PrivatePartyValue: v.PrivatePartyValue.StringFixed(2),
		ConfidenceScore:   int32(v.ConfidenceScore),
		Source:            v.Source,
		Factors: &ValuationFactorsMessage{
			AgeYears:           int32(v.Factors.AgeYears),
			Mileage:            v.Factors.Mileage,
			Condition:          v.Factors.Condition,
			MarketDemandPct:    v.Factors.MarketDemandPct,
			LocationAdjustment: v.Factors.LocationAdjustment,
			SeasonalFactor:     v.Factors.SeasonalFactor,
			DepreciationFactor: v.Factors.DepreciationFactor,
		},
		CreatedAt:  v.CreatedAt.Format(time.RFC3339),
		ValidUntil: v.ValidUntil.Format(time.RFC3339),
		Active:     v.Active,
	}
}

func toLoanMessage(l dto.LoanResponse) *LoanMessage {
	return &LoanMessage{
		Id:              l.ID,
		ApplicantName:   l.ApplicantName,
		ApplicantEmail:  l.ApplicantEmail,
		VehicleId:       l.VehicleID,
		RequestedAmount: l.RequestedAmount.StringFixed(2),
		DownPayment:     l.DownPayment.StringFixed(2),
		VehicleValue:    l.VehicleValue.StringFixed(2),
		MonthlyIncome:   l.MonthlyIncome.StringFixed(2),
		ExistingDebts:   l.ExistingDebts.StringFixed(2),
		CreditScore:     int32(l.CreditScore),
		TermMonths:      int32(l.TermMonths),
		Eligible:        l.Eligible,
		Reasons:         l.Reasons,
		InterestRate:    l.InterestRate,
		MonthlyPayment:  l.MonthlyPayment.StringFixed(2),
		TotalPayable:    l.TotalPayable.StringFixed(2),
		LoanToValue:     l.LoanToValue,
		DebtToIncome:    l.DebtToIncome,
		ApprovedAmount:  l.ApprovedAmount.StringFixed(2),
		Status:          l.Status,
		StatusReason:    l.StatusReason,
		ApprovedAt:      formatStamp(l.ApprovedAt),
		RejectedAt:      formatStamp(l.RejectedAt),
		DisbursedAt:     formatStamp(l.DisbursedAt),
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       l.UpdatedAt.Format(time.RFC3339),
	}
}

func toCheckMessage(c service.EligibilityCheck) *EligibilityCheckMessage {
	return &EligibilityCheckMessage{
		Passed:    c.Passed,
		Value:     c.Value,
		Threshold: c.Threshold,
		Direction: string(c.Direction),
	}
}

func formatStamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
