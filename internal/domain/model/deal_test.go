package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advancehub/underwriting-service/internal/domain/valueobject"
)

func newTestDeal(t *testing.T) Deal {
	t.Helper()
	d, err := NewDeal(
		"tenant-1", "merchant-1", "broker-1",
		decimal.NewFromInt(50000), "BROKER_PORTAL", "system",
		time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return d
}

func approvalPayload(t *testing.T) DecisionPayload {
	t.Helper()
	score := 70
	return DecisionPayload{
		PaperGrade: mustGrade(t, "B"),
		RiskScore:  &score,
		Terms: &ApprovedTerms{
			Amount:        decimal.NewFromInt(50000),
			FactorRate:    decimal.RequireFromString("1.30"),
			TermDays:      140,
			DailyPayment:  decimal.RequireFromString("464.29"),
			WeeklyPayment: decimal.RequireFromString("2321.45"),
			PaybackAmount: decimal.NewFromInt(65000),
		},
		Notes:         "solid deposits",
		UnderwriterID: "uw-1",
	}
}

func mustGrade(t *testing.T, s string) valueobject.PaperGrade {
	t.Helper()
	g, err := valueobject.NewPaperGrade(s)
	require.NoError(t, err)
	return g
}

func TestNewDeal(t *testing.T) {
	t.Run("starts in NEW_LEAD with creation history and event", func(t *testing.T) {
		d := newTestDeal(t)

		assert.True(t, d.Stage().Equal(valueobject.DealStageNewLead))
		assert.Equal(t, 1, d.Version())
		require.Len(t, d.PendingHistory(), 1)
		assert.Empty(t, d.PendingHistory()[0].FromStage)
		assert.Equal(t, "NEW_LEAD", d.PendingHistory()[0].ToStage)
		require.Len(t, d.DomainEvents(), 1)
		assert.Equal(t, "underwriting.deal.created", d.DomainEvents()[0].EventType())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewDeal("tenant-1", "merchant-1", "", decimal.Zero, "API", "system", time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects missing merchant", func(t *testing.T) {
		_, err := NewDeal("tenant-1", "", "", decimal.NewFromInt(100), "API", "system", time.Now())
		assert.Error(t, err)
	})
}

func TestDealDecide(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	t.Run("approve stamps grade, score and terms", func(t *testing.T) {
		d := newTestDeal(t)

		decided, err := d.Decide(valueobject.DecisionApprove, approvalPayload(t), now)
		require.NoError(t, err)

		assert.True(t, decided.Stage().Equal(valueobject.DealStageApproved))
		assert.Equal(t, "B", decided.PaperGrade().String())
		require.NotNil(t, decided.RiskScore())
		assert.Equal(t, 70, *decided.RiskScore())
		require.NotNil(t, decided.Terms())
		assert.True(t, decided.Terms().Amount.Equal(decimal.NewFromInt(50000)))
		require.NotNil(t, decided.DecisionAt())
		assert.Equal(t, now, *decided.DecisionAt())

		// creation row plus decision row, plus audit comment
		require.Len(t, decided.PendingHistory(), 2)
		assert.Equal(t, "NEW_LEAD", decided.PendingHistory()[1].FromStage)
		assert.Equal(t, "APPROVED", decided.PendingHistory()[1].ToStage)
		require.Len(t, decided.PendingComments(), 1)
		assert.Contains(t, decided.PendingComments()[0].Body, "grade B")
	})

	t.Run("counter lands in APPROVED and marks countered", func(t *testing.T) {
		d := newTestDeal(t)

		decided, err := d.Decide(valueobject.DecisionCounter, approvalPayload(t), now)
		require.NoError(t, err)

		assert.True(t, decided.Stage().Equal(valueobject.DealStageApproved))
		last := decided.DomainEvents()[len(decided.DomainEvents())-1]
		assert.Equal(t, "underwriting.deal.approved", last.EventType())
	})

	t.Run("decline requires at least one reason", func(t *testing.T) {
		d := newTestDeal(t)

		_, err := d.Decide(valueobject.DecisionDecline, DecisionPayload{UnderwriterID: "uw-1"}, now)
		assert.ErrorIs(t, err, ErrInvalidDecisionPayload)
	})

	t.Run("decline records reasons and clears nothing else", func(t *testing.T) {
		d := newTestDeal(t)

		decided, err := d.Decide(valueobject.DecisionDecline, DecisionPayload{
			DeclineReasons: []string{"excessive stacking", "negative balance days"},
			UnderwriterID:  "uw-1",
		}, now)
		require.NoError(t, err)

		assert.True(t, decided.Stage().Equal(valueobject.DealStageDeclined))
		assert.Equal(t, []string{"excessive stacking", "negative balance days"}, decided.DeclineReasons())
		assert.Nil(t, decided.Terms())
	})

	t.Run("approve without terms fails before mutating", func(t *testing.T) {
		d := newTestDeal(t)
		p := approvalPayload(t)
		p.Terms = nil

		same, err := d.Decide(valueobject.DecisionApprove, p, now)
		assert.ErrorIs(t, err, ErrInvalidDecisionPayload)
		assert.True(t, same.Stage().Equal(valueobject.DealStageNewLead))
	})

	t.Run("re-decision from a terminal stage is permitted", func(t *testing.T) {
		d := newTestDeal(t)
		declined, err := d.Decide(valueobject.DecisionDecline, DecisionPayload{
			DeclineReasons: []string{"thin file"},
			UnderwriterID:  "uw-1",
		}, now)
		require.NoError(t, err)

		approved, err := declined.Decide(valueobject.DecisionApprove, approvalPayload(t), now.Add(time.Hour))
		require.NoError(t, err)
		assert.True(t, approved.Stage().Equal(valueobject.DealStageApproved))
		assert.Empty(t, approved.DeclineReasons())
		// both decisions kept in history
		last := approved.PendingHistory()[len(approved.PendingHistory())-1]
		assert.Equal(t, "DECLINED", last.FromStage)
		assert.Equal(t, "APPROVED", last.ToStage)
	})

	t.Run("original is untouched by a decision", func(t *testing.T) {
		d := newTestDeal(t)
		_, err := d.Decide(valueobject.DecisionApprove, approvalPayload(t), now)
		require.NoError(t, err)

		assert.True(t, d.Stage().Equal(valueobject.DealStageNewLead))
		assert.Nil(t, d.Terms())
		assert.Len(t, d.PendingHistory(), 1)
		assert.Equal(t, 1, d.Version())
	})

	t.Run("each transition carries the next version", func(t *testing.T) {
		d := newTestDeal(t)
		require.Equal(t, 1, d.Version())

		decided, err := d.Decide(valueobject.DecisionApprove, approvalPayload(t), now)
		require.NoError(t, err)
		assert.Equal(t, 2, decided.Version())

		sent, err := decided.AdvanceTo(valueobject.DealStageContractSent, "ops-1", "", now)
		require.NoError(t, err)
		assert.Equal(t, 3, sent.Version())
	})
}

func TestDealAdvanceTo(t *testing.T) {
	now := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)

	t.Run("happy path through document stages", func(t *testing.T) {
		d := newTestDeal(t)

		d, err := d.AdvanceTo(valueobject.DealStageDocsRequested, "ops-1", "requested 4 months statements", now)
		require.NoError(t, err)
		d, err = d.AdvanceTo(valueobject.DealStageDocsReceived, "ops-1", "", now)
		require.NoError(t, err)
		d, err = d.AdvanceTo(valueobject.DealStageInUnderwriting, "uw-1", "", now)
		require.NoError(t, err)

		assert.True(t, d.Stage().Equal(valueobject.DealStageInUnderwriting))
		assert.Len(t, d.PendingHistory(), 4)
	})

	t.Run("skipping a stage is rejected", func(t *testing.T) {
		d := newTestDeal(t)

		_, err := d.AdvanceTo(valueobject.DealStageDocsReceived, "ops-1", "", now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStageTransition)
	})

	t.Run("contract flow requires approval first", func(t *testing.T) {
		d := newTestDeal(t)

		_, err := d.AdvanceTo(valueobject.DealStageContractSent, "ops-1", "", now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStageTransition)
	})

	t.Run("funding stamps the funded date and raises an event", func(t *testing.T) {
		d := newTestDeal(t)
		d, err := d.Decide(valueobject.DecisionApprove, approvalPayload(t), now)
		require.NoError(t, err)
		d, err = d.AdvanceTo(valueobject.DealStageContractSent, "ops-1", "", now)
		require.NoError(t, err)
		d, err = d.AdvanceTo(valueobject.DealStageContractSigned, "ops-1", "", now)
		require.NoError(t, err)

		funded, err := d.AdvanceTo(valueobject.DealStageFunded, "ops-1", "wired", now.Add(time.Hour))
		require.NoError(t, err)

		require.NotNil(t, funded.FundedAt())
		last := funded.DomainEvents()[len(funded.DomainEvents())-1]
		assert.Equal(t, "underwriting.deal.funded", last.EventType())
	})

	t.Run("dead is reachable from any non-terminal stage", func(t *testing.T) {
		d := newTestDeal(t)
		d, err := d.AdvanceTo(valueobject.DealStageDocsRequested, "ops-1", "", now)
		require.NoError(t, err)

		dead, err := d.AdvanceTo(valueobject.DealStageDead, "ops-1", "merchant went quiet", now)
		require.NoError(t, err)
		assert.True(t, dead.Stage().Equal(valueobject.DealStageDead))
	})

	t.Run("dead from a terminal stage is rejected", func(t *testing.T) {
		d := newTestDeal(t)
		d, err := d.Decide(valueobject.DecisionApprove, approvalPayload(t), now)
		require.NoError(t, err)
		d, err = d.AdvanceTo(valueobject.DealStageContractSent, "ops-1", "", now)
		require.NoError(t, err)
		d, err = d.AdvanceTo(valueobject.DealStageContractSigned, "ops-1", "", now)
		require.NoError(t, err)
		d, err = d.AdvanceTo(valueobject.DealStageFunded, "ops-1", "", now)
		require.NoError(t, err)

		_, err = d.AdvanceTo(valueobject.DealStageDead, "ops-1", "", now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStageTransition)
	})
}

func TestDealClearPending(t *testing.T) {
	d := newTestDeal(t)

	cleared := d.ClearPending()

	assert.Empty(t, cleared.PendingHistory())
	assert.Empty(t, cleared.PendingComments())
	assert.Empty(t, cleared.DomainEvents())
	assert.Len(t, d.PendingHistory(), 1)
}
