package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CreateDealRequest carries the data needed to open a new deal.
type CreateDealRequest struct {
	TenantID        string          `json:"tenant_id"`
	MerchantID      string          `json:"merchant_id"`
	BrokerID        string          `json:"broker_id,omitempty"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Source          string          `json:"source"`
	Actor           string          `json:"actor"`
}

// AnalyzeDealRequest identifies a deal to run the underwriting engine on.
type AnalyzeDealRequest struct {
	TenantID string `json:"tenant_id"`
	DealID   string `json:"deal_id"`
}

// QuoteOfferRequest asks for the offer ladder, optionally at an explicit
// grade and with custom overrides.
type QuoteOfferRequest struct {
	TenantID         string           `json:"tenant_id"`
	DealID           string           `json:"deal_id"`
	Grade            string           `json:"grade,omitempty"`
	CustomAmount     *decimal.Decimal `json:"custom_amount,omitempty"`
	CustomFactorRate *decimal.Decimal `json:"custom_factor_rate,omitempty"`
	CustomTermDays   *int             `json:"custom_term_days,omitempty"`
}

// DecideDealRequest carries an underwriting decision and its payload.
type DecideDealRequest struct {
	TenantID       string           `json:"tenant_id"`
	DealID         string           `json:"deal_id"`
	Decision       string           `json:"decision"`
	PaperGrade     string           `json:"paper_grade,omitempty"`
	RiskScore      *int             `json:"risk_score,omitempty"`
	ApprovedAmount *decimal.Decimal `json:"approved_amount,omitempty"`
	FactorRate     *decimal.Decimal `json:"factor_rate,omitempty"`
	TermDays       *int             `json:"term_days,omitempty"`
	DailyPayment   *decimal.Decimal `json:"daily_payment,omitempty"`
	WeeklyPayment  *decimal.Decimal `json:"weekly_payment,omitempty"`
	PaybackAmount  *decimal.Decimal `json:"payback_amount,omitempty"`
	DeclineReasons []string         `json:"decline_reasons,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	UnderwriterID  string           `json:"underwriter_id"`
}

// AdvanceDealStageRequest moves a deal forward through the lifecycle.
type AdvanceDealStageRequest struct {
	TenantID    string `json:"tenant_id"`
	DealID      string `json:"deal_id"`
	TargetStage string `json:"target_stage"`
	Actor       string `json:"actor"`
	Note        string `json:"note,omitempty"`
}

// GetDealRequest identifies a deal to retrieve.
type GetDealRequest struct {
	TenantID string `json:"tenant_id"`
	DealID   string `json:"deal_id"`
}

// AddDealCommentRequest attaches a standalone audit note to a deal,
// outside any stage transition.
type AddDealCommentRequest struct {
	TenantID string `json:"tenant_id"`
	DealID   string `json:"deal_id"`
	Author   string `json:"author"`
	Body     string `json:"body"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// ApprovedTermsResponse is the external representation of funding terms.
type ApprovedTermsResponse struct {
	Amount        decimal.Decimal `json:"amount"`
	FactorRate    decimal.Decimal `json:"factor_rate"`
	TermDays      int             `json:"term_days"`
	DailyPayment  decimal.Decimal `json:"daily_payment"`
	WeeklyPayment decimal.Decimal `json:"weekly_payment"`
	PaybackAmount decimal.Decimal `json:"payback_amount"`
}

// DealResponse is the external representation of a deal.
type DealResponse struct {
	ID                string                 `json:"id"`
	TenantID          string                 `json:"tenant_id"`
	MerchantID        string                 `json:"merchant_id"`
	BrokerID          string                 `json:"broker_id,omitempty"`
	Source            string                 `json:"source,omitempty"`
	RequestedAmount   decimal.Decimal        `json:"requested_amount"`
	ExistingPositions int                    `json:"existing_positions"`
	StackingDetected  bool                   `json:"stacking_detected"`
	Stage             string                 `json:"stage"`
	StageChangedAt    time.Time              `json:"stage_changed_at"`
	PaperGrade        string                 `json:"paper_grade,omitempty"`
	RiskScore         *int                   `json:"risk_score,omitempty"`
	ApprovedTerms     *ApprovedTermsResponse `json:"approved_terms,omitempty"`
	DecisionNotes     string                 `json:"decision_notes,omitempty"`
	DeclineReasons    []string               `json:"decline_reasons,omitempty"`
	UnderwriterID     string                 `json:"underwriter_id,omitempty"`
	DecisionAt        *time.Time             `json:"decision_at,omitempty"`
	FundedAt          *time.Time             `json:"funded_at,omitempty"`
	Version           int                    `json:"version"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// StageTransitionResponse is one row of the append-only audit trail.
type StageTransitionResponse struct {
	ID         string    `json:"id"`
	FromStage  string    `json:"from_stage,omitempty"`
	ToStage    string    `json:"to_stage"`
	Actor      string    `json:"actor"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// DealCommentResponse is one audit comment.
type DealCommentResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// ScoringFactorResponse is one weighted factor of the risk model.
type ScoringFactorResponse struct {
	Name   string          `json:"name"`
	Weight decimal.Decimal `json:"weight"`
	Score  int             `json:"score"`
	Impact string          `json:"impact"`
}

// RiskAnalysisResponse is the scorer's advisory output.
type RiskAnalysisResponse struct {
	Score   int                     `json:"score"`
	Grade   string                  `json:"grade"`
	Factors []ScoringFactorResponse `json:"factors"`
	Signals []string                `json:"signals,omitempty"`
}

// StackingAnalysisResponse is the stacking determination with its evidence.
type StackingAnalysisResponse struct {
	StackingDetected bool     `json:"stacking_detected"`
	Signals          []string `json:"signals,omitempty"`
	PositionCount    int      `json:"position_count"`
}

// BankMetricsResponse surfaces derived bank-health indicators. Ratio fields
// are omitted when the analysis window was empty.
type BankMetricsResponse struct {
	NSFPerMonth        *decimal.Decimal `json:"nsf_per_month,omitempty"`
	OverdraftsPerMonth *decimal.Decimal `json:"overdrafts_per_month,omitempty"`
	DepositDayCoverage *decimal.Decimal `json:"deposit_day_coverage,omitempty"`
	BalanceVolatility  *decimal.Decimal `json:"balance_volatility,omitempty"`
	AvgDepositSize     decimal.Decimal  `json:"avg_deposit_size"`
	MonthsAnalyzed     int              `json:"months_analyzed"`
}

// OfferResponse is one structured funding proposal.
type OfferResponse struct {
	Grade           string          `json:"grade"`
	ApprovedAmount  decimal.Decimal `json:"approved_amount"`
	FactorRate      decimal.Decimal `json:"factor_rate"`
	TermDays        int             `json:"term_days"`
	PaybackAmount   decimal.Decimal `json:"payback_amount"`
	DailyPayment    decimal.Decimal `json:"daily_payment"`
	WeeklyPayment   decimal.Decimal `json:"weekly_payment"`
	HoldbackPercent decimal.Decimal `json:"holdback_percent"`
	Position        int             `json:"position"`
	Commission      decimal.Decimal `json:"commission"`
	PolicyVersion   string          `json:"policy_version"`
}

// OfferTierResponse is one labeled alternative in the offer ladder.
type OfferTierResponse struct {
	Label string        `json:"label"`
	Offer OfferResponse `json:"offer"`
}

// OfferConstraintsResponse is the grade's policy envelope.
type OfferConstraintsResponse struct {
	Grade          string          `json:"grade"`
	MaxApprovalCap decimal.Decimal `json:"max_approval_cap"`
	MinFactorRate  decimal.Decimal `json:"min_factor_rate"`
	MaxFactorRate  decimal.Decimal `json:"max_factor_rate"`
	MinTermDays    int             `json:"min_term_days"`
	MaxTermDays    int             `json:"max_term_days"`
	DailyCapacity  decimal.Decimal `json:"daily_capacity"`
	PolicyVersion  string          `json:"policy_version"`
	ClampCustom    bool            `json:"clamp_custom"`
}

// AnalyzeDealResponse is the read-only underwriting snapshot for a deal.
type AnalyzeDealResponse struct {
	DealID           string                   `json:"deal_id"`
	MerchantName     string                   `json:"merchant_name"`
	RiskAnalysis     RiskAnalysisResponse     `json:"risk_analysis"`
	StackingAnalysis StackingAnalysisResponse `json:"stacking_analysis"`
	Offer            *OfferResponse           `json:"offer,omitempty"`
	BankMetrics      *BankMetricsResponse     `json:"bank_metrics,omitempty"`
	AnalyzedAt       time.Time                `json:"analyzed_at"`
}

// QuoteOfferResponse is the standard offer, the ladder, an optional custom
// offer, and the policy constraints.
type QuoteOfferResponse struct {
	DealID        string                   `json:"deal_id"`
	Grade         string                   `json:"grade"`
	StandardOffer OfferResponse            `json:"standard_offer"`
	Tiers         []OfferTierResponse      `json:"tiers"`
	CustomOffer   *OfferResponse           `json:"custom_offer,omitempty"`
	Constraints   OfferConstraintsResponse `json:"constraints"`
}

// DecideDealResponse is the updated deal plus a human-readable summary.
type DecideDealResponse struct {
	Deal    DealResponse `json:"deal"`
	Message string       `json:"message"`
}

// GetDealResponse is a deal with its full audit trail.
type GetDealResponse struct {
	Deal     DealResponse              `json:"deal"`
	History  []StageTransitionResponse `json:"history"`
	Comments []DealCommentResponse     `json:"comments"`
}
