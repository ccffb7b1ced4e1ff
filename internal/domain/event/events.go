package event

import (
	"github.com/shopspring/decimal"

	"github.com/advancehub/underwriting-service/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Deal lifecycle events
// ---------------------------------------------------------------------------

// DealCreated is raised when a new lead enters the pipeline.
type DealCreated struct {
	events.BaseEvent
	MerchantID      string          `json:"merchant_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Source          string          `json:"source"`
}

func NewDealCreated(dealID, tenantID, merchantID string, requested decimal.Decimal, source string) DealCreated {
	return DealCreated{
		BaseEvent:       events.NewBaseEvent("underwriting.deal.created", dealID, "Deal", tenantID),
		MerchantID:      merchantID,
		RequestedAmount: requested,
		Source:          source,
	}
}

// DealStageChanged is raised on every non-decision stage movement.
type DealStageChanged struct {
	events.BaseEvent
	FromStage string `json:"from_stage"`
	ToStage   string `json:"to_stage"`
	Actor     string `json:"actor"`
}

func NewDealStageChanged(dealID, tenantID, fromStage, toStage, actor string) DealStageChanged {
	return DealStageChanged{
		BaseEvent: events.NewBaseEvent("underwriting.deal.stage_changed", dealID, "Deal", tenantID),
		FromStage: fromStage,
		ToStage:   toStage,
		Actor:     actor,
	}
}

// DealApproved is raised when an APPROVE or COUNTER decision lands.
type DealApproved struct {
	events.BaseEvent
	PaperGrade     string          `json:"paper_grade"`
	RiskScore      int             `json:"risk_score"`
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
	FactorRate     decimal.Decimal `json:"factor_rate"`
	TermDays       int             `json:"term_days"`
	UnderwriterID  string          `json:"underwriter_id"`
	Countered      bool            `json:"countered"`
}

func NewDealApproved(
	dealID, tenantID, grade string, score int,
	amount, rate decimal.Decimal, termDays int,
	underwriterID string, countered bool,
) DealApproved {
	return DealApproved{
		BaseEvent:      events.NewBaseEvent("underwriting.deal.approved", dealID, "Deal", tenantID),
		PaperGrade:     grade,
		RiskScore:      score,
		ApprovedAmount: amount,
		FactorRate:     rate,
		TermDays:       termDays,
		UnderwriterID:  underwriterID,
		Countered:      countered,
	}
}

// DealDeclined is raised when a DECLINE decision lands.
type DealDeclined struct {
	events.BaseEvent
	Reasons       []string `json:"reasons"`
	UnderwriterID string   `json:"underwriter_id"`
}

func NewDealDeclined(dealID, tenantID string, reasons []string, underwriterID string) DealDeclined {
	return DealDeclined{
		BaseEvent:     events.NewBaseEvent("underwriting.deal.declined", dealID, "Deal", tenantID),
		Reasons:       reasons,
		UnderwriterID: underwriterID,
	}
}

// DealFunded is raised when the advance is wired and the deal reaches FUNDED.
type DealFunded struct {
	events.BaseEvent
	ApprovedAmount decimal.Decimal `json:"approved_amount"`
	PaybackAmount  decimal.Decimal `json:"payback_amount"`
	Actor          string          `json:"actor"`
}

func NewDealFunded(dealID, tenantID string, approved, payback decimal.Decimal, actor string) DealFunded {
	return DealFunded{
		BaseEvent:      events.NewBaseEvent("underwriting.deal.funded", dealID, "Deal", tenantID),
		ApprovedAmount: approved,
		PaybackAmount:  payback,
		Actor:          actor,
	}
}
