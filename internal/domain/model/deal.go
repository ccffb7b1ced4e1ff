package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/advancehub/underwriting-service/internal/domain/event"
	"github.com/advancehub/underwriting-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Deal aggregate root
// ---------------------------------------------------------------------------

var (
	// ErrInvalidDecisionPayload is returned when a decision is missing the
	// fields its type requires. Checked before any state mutation.
	ErrInvalidDecisionPayload = errors.New("invalid decision payload")
)

// ApprovedTerms are the funding terms stamped onto a deal by an approval.
type ApprovedTerms struct {
	Amount        decimal.Decimal
	FactorRate    decimal.Decimal
	TermDays      int
	DailyPayment  decimal.Decimal
	WeeklyPayment decimal.Decimal
	PaybackAmount decimal.Decimal
}

// DecisionPayload carries everything a decision needs to stamp onto the deal.
type DecisionPayload struct {
	PaperGrade     valueobject.PaperGrade
	RiskScore      *int
	Terms          *ApprovedTerms
	DeclineReasons []string
	Notes          string
	UnderwriterID  string
}

// Deal is an immutable aggregate. Every mutation returns a new copy carrying
// the pending stage-history rows, audit comments, and domain events produced
// by the transition; the repository persists all of them atomically.
type Deal struct {
	id                string
	tenantID          string
	merchantID        string
	brokerID          string
	source            string
	requestedAmount   decimal.Decimal
	existingPositions int
	stackingDetected  bool

	stage          valueobject.DealStage
	stageChangedAt time.Time

	paperGrade     valueobject.PaperGrade
	riskScore      *int
	terms          *ApprovedTerms
	decisionNotes  string
	declineReasons []string
	underwriterID  string
	decisionAt     *time.Time
	fundedAt       *time.Time

	version   int
	createdAt time.Time
	updatedAt time.Time

	pendingHistory  []StageTransition
	pendingComments []DealComment
	domainEvents    []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewDeal creates a brand-new deal in the NEW_LEAD stage. The creation itself
// is recorded as the first history row (with an empty from-stage).
func NewDeal(
	tenantID, merchantID, brokerID string,
	requestedAmount decimal.Decimal,
	source, actor string,
	now time.Time,
) (Deal, error) {
	if tenantID == "" {
		return Deal{}, errors.New("tenant ID is required")
	}
	if merchantID == "" {
		return Deal{}, errors.New("merchant ID is required")
	}
	if requestedAmount.LessThanOrEqual(decimal.Zero) {
		return Deal{}, errors.New("requested amount must be positive")
	}

	id := uuid.New().String()
	d := Deal{
		id:              id,
		tenantID:        tenantID,
		merchantID:      merchantID,
		brokerID:        brokerID,
		source:          source,
		requestedAmount: requestedAmount,
		stage:           valueobject.DealStageNewLead,
		stageChangedAt:  now,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}

	d.pendingHistory = append(d.pendingHistory, StageTransition{
		ID:         uuid.New().String(),
		DealID:     id,
		FromStage:  "",
		ToStage:    d.stage.String(),
		Actor:      actor,
		Note:       "deal created",
		OccurredAt: now,
	})
	d.domainEvents = append(d.domainEvents, event.NewDealCreated(id, tenantID, merchantID, requestedAmount, source))
	return d, nil
}

// ReconstructDeal rebuilds an aggregate from persistence without side-effects.
func ReconstructDeal(
	id, tenantID, merchantID, brokerID, source string,
	requestedAmount decimal.Decimal,
	existingPositions int,
	stackingDetected bool,
	stage valueobject.DealStage,
	stageChangedAt time.Time,
	paperGrade valueobject.PaperGrade,
	riskScore *int,
	terms *ApprovedTerms,
	decisionNotes string,
	declineReasons []string,
	underwriterID string,
	decisionAt, fundedAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) Deal {
	return Deal{
		id:                id,
		tenantID:          tenantID,
		merchantID:        merchantID,
		brokerID:          brokerID,
		source:            source,
		requestedAmount:   requestedAmount,
		existingPositions: existingPositions,
		stackingDetected:  stackingDetected,
		stage:             stage,
		stageChangedAt:    stageChangedAt,
		paperGrade:        paperGrade,
		riskScore:         riskScore,
		terms:             terms,
		decisionNotes:     decisionNotes,
		declineReasons:    declineReasons,
		underwriterID:     underwriterID,
		decisionAt:        decisionAt,
		fundedAt:          fundedAt,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// ---------------------------------------------------------------------------
// Decision transitions
// ---------------------------------------------------------------------------

// Decide applies an underwriting decision. APPROVE and COUNTER both land in
// APPROVED (a counter-offer is an approval with different terms); DECLINE
// lands in DECLINED. Decisions are deliberately permitted from any stage,
// terminal ones included: re-decisioning a funded or declined deal is legal
// and fully recorded in history.
func (d Deal) Decide(
	decision valueobject.DecisionType,
	p DecisionPayload,
	now time.Time,
) (Deal, error) {
	if decision.IsZero() {
		return d, fmt.Errorf("%w: decision type is required", ErrInvalidDecisionPayload)
	}
	if err := validateDecisionPayload(decision, p); err != nil {
		return d, err
	}

	next := d.copyForMutation()
	from := d.stage

	switch {
	case decision.IsApproval():
		next.stage = valueobject.DealStageApproved
		next.paperGrade = p.PaperGrade
		next.riskScore = p.RiskScore
		terms := *p.Terms
		next.terms = &terms
		next.declineReasons = nil
		next.domainEvents = append(next.domainEvents, event.NewDealApproved(
			d.id, d.tenantID, p.PaperGrade.String(), *p.RiskScore,
			terms.Amount, terms.FactorRate, terms.TermDays,
			p.UnderwriterID, decision.Equal(valueobject.DecisionCounter),
		))

	case decision.Equal(valueobject.DecisionDecline):
		next.stage = valueobject.DealStageDeclined
		next.declineReasons = append([]string(nil), p.DeclineReasons...)
		if !p.PaperGrade.IsZero() {
			next.paperGrade = p.PaperGrade
		}
		if p.RiskScore != nil {
			next.riskScore = p.RiskScore
		}
		next.domainEvents = append(next.domainEvents, event.NewDealDeclined(
			d.id, d.tenantID, p.DeclineReasons, p.UnderwriterID,
		))
	}

	next.decisionNotes = p.Notes
	next.underwriterID = p.UnderwriterID
	nowCopy := now
	next.decisionAt = &nowCopy
	next.stageChangedAt = now
	next.updatedAt = now

	next.pendingHistory = append(next.pendingHistory, StageTransition{
		ID:         uuid.New().String(),
		DealID:     d.id,
		FromStage:  from.String(),
		ToStage:    next.stage.String(),
		Actor:      p.UnderwriterID,
		Note:       p.Notes,
		OccurredAt: now,
	})
	next.pendingComments = append(next.pendingComments, DealComment{
		ID:        uuid.New().String(),
		DealID:    d.id,
		Author:    p.UnderwriterID,
		Body:      decisionSummary(decision, p),
		CreatedAt: now,
	})
	return next, nil
}

func validateDecisionPayload(decision valueobject.DecisionType, p DecisionPayload) error {
	if decision.IsApproval() {
		switch {
		case p.PaperGrade.IsZero():
			return fmt.Errorf("%w: paper grade is required for %s", ErrInvalidDecisionPayload, decision)
		case p.RiskScore == nil:
			return fmt.Errorf("%w: risk score is required for %s", ErrInvalidDecisionPayload, decision)
		case p.Terms == nil:
			return fmt.Errorf("%w: approved terms are required for %s", ErrInvalidDecisionPayload, decision)
		case p.Terms.Amount.LessThanOrEqual(decimal.Zero):
			return fmt.Errorf("%w: approved amount must be positive", ErrInvalidDecisionPayload)
		case p.Terms.FactorRate.LessThanOrEqual(decimal.NewFromInt(1)):
			return fmt.Errorf("%w: factor rate must exceed 1.0", ErrInvalidDecisionPayload)
		case p.Terms.TermDays <= 0:
			return fmt.Errorf("%w: term days must be positive", ErrInvalidDecisionPayload)
		}
		return nil
	}
	if len(p.DeclineReasons) == 0 {
		return fmt.Errorf("%w: at least one decline reason is required", ErrInvalidDecisionPayload)
	}
	return nil
}

func decisionSummary(decision valueobject.DecisionType, p DecisionPayload) string {
	if decision.IsApproval() {
		s := fmt.Sprintf("%s: grade %s, score %d, approved %s at %s over %d days",
			decision, p.PaperGrade, *p.RiskScore,
			p.Terms.Amount.StringFixed(2), p.Terms.FactorRate.String(), p.Terms.TermDays)
		if p.Notes != "" {
			s += ". " + p.Notes
		}
		return s
	}
	s := fmt.Sprintf("%s: %s", decision, strings.Join(p.DeclineReasons, "; "))
	if p.Notes != "" {
		s += ". " + p.Notes
	}
	return s
}

// ---------------------------------------------------------------------------
// Lifecycle stage transitions (non-decision)
// ---------------------------------------------------------------------------

// expectedPriorStage maps each forward stage to the stage it must follow.
var expectedPriorStage = map[string]valueobject.DealStage{
	valueobject.DealStageDocsRequested.String():  valueobject.DealStageNewLead,
	valueobject.DealStageDocsReceived.String():   valueobject.DealStageDocsRequested,
	valueobject.DealStageInUnderwriting.String(): valueobject.DealStageDocsReceived,
	valueobject.DealStageContractSent.String():   valueobject.DealStageApproved,
	valueobject.DealStageContractSigned.String(): valueobject.DealStageContractSent,
	valueobject.DealStageFunded.String():         valueobject.DealStageContractSigned,
}

// AdvanceTo moves the deal forward through the ordered lifecycle. Unlike
// Decide, forward movements require the expected prior stage. Reaching
// FUNDED stamps the funded date. DEAD is reachable from any non-terminal
// stage.
func (d Deal) AdvanceTo(
	to valueobject.DealStage,
	actor, note string,
	now time.Time,
) (Deal, error) {
	if to.Equal(valueobject.DealStageDead) {
		if d.stage.IsTerminal() {
			return d, fmt.Errorf("%w: %s is terminal", valueobject.ErrInvalidStageTransition, d.stage)
		}
	} else {
		expected, ok := expectedPriorStage[to.String()]
		if !ok {
			return d, fmt.Errorf("%w: cannot advance to %s", valueobject.ErrInvalidStageTransition, to)
		}
		if !d.stage.Equal(expected) {
			return d, fmt.Errorf("%w: %s requires %s, deal is %s",
				valueobject.ErrInvalidStageTransition, to, expected, d.stage)
		}
	}

	next := d.copyForMutation()
	from := d.stage
	next.stage = to
	next.stageChangedAt = now
	next.updatedAt = now

	if to.Equal(valueobject.DealStageFunded) {
		nowCopy := now
		next.fundedAt = &nowCopy
		payback := decimal.Zero
		approved := decimal.Zero
		if d.terms != nil {
			payback = d.terms.PaybackAmount
			approved = d.terms.Amount
		}
		next.domainEvents = append(next.domainEvents, event.NewDealFunded(d.id, d.tenantID, approved, payback, actor))
	} else {
		next.domainEvents = append(next.domainEvents, event.NewDealStageChanged(
			d.id, d.tenantID, from.String(), to.String(), actor,
		))
	}

	next.pendingHistory = append(next.pendingHistory, StageTransition{
		ID:         uuid.New().String(),
		DealID:     d.id,
		FromStage:  from.String(),
		ToStage:    to.String(),
		Actor:      actor,
		Note:       note,
		OccurredAt: now,
	})
	return next, nil
}

// SetStackingDetected records the stacking flag derived during analysis.
func (d Deal) SetStackingDetected(detected bool, positions int, now time.Time) Deal {
	next := d.copyForMutation()
	next.stackingDetected = detected
	next.existingPositions = positions
	next.updatedAt = now
	return next
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (d Deal) ID() string                         { return d.id }
func (d Deal) TenantID() string                   { return d.tenantID }
func (d Deal) MerchantID() string                 { return d.merchantID }
func (d Deal) BrokerID() string                   { return d.brokerID }
func (d Deal) Source() string                     { return d.source }
func (d Deal) RequestedAmount() decimal.Decimal   { return d.requestedAmount }
func (d Deal) ExistingPositions() int             { return d.existingPositions }
func (d Deal) StackingDetected() bool             { return d.stackingDetected }
func (d Deal) Stage() valueobject.DealStage       { return d.stage }
func (d Deal) StageChangedAt() time.Time          { return d.stageChangedAt }
func (d Deal) PaperGrade() valueobject.PaperGrade { return d.paperGrade }
func (d Deal) RiskScore() *int                    { return d.riskScore }
func (d Deal) Terms() *ApprovedTerms              { return d.terms }
func (d Deal) DecisionNotes() string              { return d.decisionNotes }
func (d Deal) DeclineReasons() []string           { return d.declineReasons }
func (d Deal) UnderwriterID() string              { return d.underwriterID }
func (d Deal) DecisionAt() *time.Time             { return d.decisionAt }
func (d Deal) FundedAt() *time.Time               { return d.fundedAt }
func (d Deal) Version() int                       { return d.version }
func (d Deal) CreatedAt() time.Time               { return d.createdAt }
func (d Deal) UpdatedAt() time.Time               { return d.updatedAt }

// PendingHistory returns history rows produced since the last persist.
func (d Deal) PendingHistory() []StageTransition { return d.pendingHistory }

// PendingComments returns audit comments produced since the last persist.
func (d Deal) PendingComments() []DealComment { return d.pendingComments }

// DomainEvents returns events produced since the last persist.
func (d Deal) DomainEvents() []event.DomainEvent { return d.domainEvents }

// ClearPending returns a copy with pending rows and events dropped.
// Call after a successful persist + publish.
func (d Deal) ClearPending() Deal {
	next := d
	next.pendingHistory = nil
	next.pendingComments = nil
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

// copyForMutation copies the aggregate with the pending slices duplicated so
// appends on the copy never alias the original's backing arrays. The copy
// carries the next version; the repository's optimistic guard checks the
// prior one, so a transitioned copy reports the version it will persist as.
func (d Deal) copyForMutation() Deal {
	next := d
	next.version = d.version + 1
	next.pendingHistory = copySlice(d.pendingHistory)
	next.pendingComments = copySlice(d.pendingComments)
	next.domainEvents = copySlice(d.domainEvents)
	return next
}

func copySlice[T any](src []T) []T {
	if len(src) == 0 {
		return nil
	}
	dst := make([]T, len(src))
	copy(dst, src)
	return dst
}
