package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advancehub/underwriting-service/internal/domain/model"
	"github.com/advancehub/underwriting-service/internal/domain/valueobject"
)

func intPtr(v int) *int { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func midTierInput() ScoreInput {
	return ScoreInput{
		Merchant: model.Merchant{
			ID:                   "merchant-1",
			TenantID:             "tenant-1",
			LegalName:            "Riverside Bakery LLC",
			IndustryTier:         valueobject.IndustryTierMedium,
			TimeInBusinessMonths: intPtr(36),
			MonthlyRevenue:       decPtr("75000"),
		},
		Owners: []model.OwnerSnapshot{
			{
				ID:           "owner-1",
				MerchantID:   "merchant-1",
				FullName:     "Dana Reyes",
				OwnershipPct: decimal.NewFromInt(100),
				FICOScore:    intPtr(680),
				IsPrimary:    true,
			},
		},
	}
}

func TestRiskScorer(t *testing.T) {
	scorer := NewRiskScorer()

	t.Run("established merchant without bank data lands mid tier", func(t *testing.T) {
		result, err := scorer.Score(midTierInput())
		require.NoError(t, err)

		assert.True(t, result.Grade.Equal(valueobject.PaperGradeB) || result.Grade.Equal(valueobject.PaperGradeC),
			"expected mid tier, got %s (score %d)", result.Grade, result.Score)
		assert.Contains(t, result.Signals, "bank_analysis_missing")
		// bank factor skipped entirely, not zero-filled
		for _, f := range result.Factors {
			assert.NotEqual(t, "bank_health", f.Name)
		}
	})

	t.Run("identical inputs yield identical output", func(t *testing.T) {
		in := midTierInput()
		first, err := scorer.Score(in)
		require.NoError(t, err)
		second, err := scorer.Score(in)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("score is monotonically non-increasing in positions", func(t *testing.T) {
		prev := 101
		for positions := 0; positions <= 6; positions++ {
			in := midTierInput()
			in.ExistingPositions = positions
			result, err := scorer.Score(in)
			require.NoError(t, err)
			assert.LessOrEqual(t, result.Score, prev,
				"score rose from %d to %d at %d positions", prev, result.Score, positions)
			prev = result.Score
		}
	})

	t.Run("stacking detection lowers the score", func(t *testing.T) {
		clean, err := scorer.Score(midTierInput())
		require.NoError(t, err)

		in := midTierInput()
		in.StackingDetected = true
		stacked, err := scorer.Score(in)
		require.NoError(t, err)

		assert.Less(t, stacked.Score, clean.Score)
	})

	t.Run("missing FICO is penalized, not fatal", func(t *testing.T) {
		in := midTierInput()
		in.Owners[0].FICOScore = nil

		result, err := scorer.Score(in)
		require.NoError(t, err)
		assert.Contains(t, result.Signals, "fico_missing")
	})

	t.Run("zero owners proceeds with reduced confidence", func(t *testing.T) {
		in := midTierInput()
		in.Owners = nil

		result, err := scorer.Score(in)
		require.NoError(t, err)
		assert.Contains(t, result.Signals, "no_owners")
		assert.Greater(t, result.Score, 0)
	})

	t.Run("negative revenue is a structural error", func(t *testing.T) {
		in := midTierInput()
		in.Merchant.MonthlyRevenue = decPtr("-100")

		_, err := scorer.Score(in)
		assert.Error(t, err)
	})

	t.Run("healthy bank data raises the score over no bank data", func(t *testing.T) {
		noBank, err := scorer.Score(midTierInput())
		require.NoError(t, err)

		in := midTierInput()
		in.BankAnalysis = &model.BankAnalysis{
			ID:              "ba-1",
			DealID:          "deal-1",
			AvgDailyBalance: decimal.NewFromInt(20000),
			MinDailyBalance: decimal.NewFromInt(15000),
			MaxDailyBalance: decimal.NewFromInt(26000),
			DepositDayCount: 80,
			MonthsAnalyzed:  4,
			RevenueTrend:    valueobject.RevenueTrendIncreasing,
		}
		withBank, err := scorer.Score(in)
		require.NoError(t, err)

		assert.Greater(t, withBank.Score, noBank.Score)
	})

	t.Run("NSF-heavy bank data drags the score down", func(t *testing.T) {
		in := midTierInput()
		in.BankAnalysis = &model.BankAnalysis{
			AvgDailyBalance: decimal.NewFromInt(1000),
			MinDailyBalance: decimal.NewFromInt(-500),
			MaxDailyBalance: decimal.NewFromInt(9000),
			NSFCount:        12,
			OverdraftCount:  8,
			DepositDayCount: 10,
			MonthsAnalyzed:  4,
			RevenueTrend:    valueobject.RevenueTrendDeclining,
		}
		distressed, err := scorer.Score(in)
		require.NoError(t, err)

		noBank, err := scorer.Score(midTierInput())
		require.NoError(t, err)
		assert.Less(t, distressed.Score, noBank.Score)
	})
}

func TestPrimaryOwner(t *testing.T) {
	t.Run("flagged primary wins", func(t *testing.T) {
		owners := []model.OwnerSnapshot{
			{ID: "a", OwnershipPct: decimal.NewFromInt(60)},
			{ID: "b", OwnershipPct: decimal.NewFromInt(40), IsPrimary: true},
		}
		owner, ok := PrimaryOwner(owners)
		require.True(t, ok)
		assert.Equal(t, "b", owner.ID)
	})

	t.Run("no primary falls back to highest ownership", func(t *testing.T) {
		owners := []model.OwnerSnapshot{
			{ID: "a", OwnershipPct: decimal.NewFromInt(30)},
			{ID: "b", OwnershipPct: decimal.NewFromInt(70)},
		}
		owner, ok := PrimaryOwner(owners)
		require.True(t, ok)
		assert.Equal(t, "b", owner.ID)
	})

	t.Run("multiple primaries resolve by ownership, earliest on tie", func(t *testing.T) {
		owners := []model.OwnerSnapshot{
			{ID: "a", OwnershipPct: decimal.NewFromInt(50), IsPrimary: true},
			{ID: "b", OwnershipPct: decimal.NewFromInt(50), IsPrimary: true},
		}
		owner, ok := PrimaryOwner(owners)
		require.True(t, ok)
		assert.Equal(t, "a", owner.ID)
	})

	t.Run("empty slice reports absence", func(t *testing.T) {
		_, ok := PrimaryOwner(nil)
		assert.False(t, ok)
	})
}
