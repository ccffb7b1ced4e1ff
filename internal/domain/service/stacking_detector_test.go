package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/advancehub/underwriting-service/internal/domain/model"
)

func TestStackingDetector(t *testing.T) {
	detector := NewStackingDetector()

	activeFiling := model.UCCFiling{
		ID:           "ucc-1",
		MerchantID:   "merchant-1",
		SecuredParty: "Apex Capital LLC",
		FilingNumber: "2024-001234",
		FiledAt:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:       "ACTIVE",
	}

	t.Run("nothing to inspect means not stacked", func(t *testing.T) {
		result := detector.Detect(nil, nil)
		assert.False(t, result.StackingDetected)
		assert.Empty(t, result.Signals)
	})

	t.Run("one active filing alone is enough", func(t *testing.T) {
		result := detector.Detect(nil, []model.UCCFiling{activeFiling})
		assert.True(t, result.StackingDetected)
		assert.Len(t, result.Signals, 1)
		assert.Contains(t, result.Signals[0], "Apex Capital")
	})

	t.Run("terminated filings are ignored", func(t *testing.T) {
		lapsed := activeFiling
		lapsed.Status = "TERMINATED"
		result := detector.Detect(nil, []model.UCCFiling{lapsed})
		assert.False(t, result.StackingDetected)
	})

	t.Run("daily debit pattern alone is enough", func(t *testing.T) {
		ba := &model.BankAnalysis{
			DetectedPayments: []model.DetectedPayment{
				{Description: "ACH FUNDR DAILY", Amount: decimal.RequireFromString("389.50"), Frequency: "DAILY", Occurrences: 42},
			},
		}
		result := detector.Detect(ba, nil)
		assert.True(t, result.StackingDetected)
		assert.Equal(t, 1, result.PositionCount)
	})

	t.Run("non-advance frequencies are not signals", func(t *testing.T) {
		ba := &model.BankAnalysis{
			DetectedPayments: []model.DetectedPayment{
				{Description: "RENT", Amount: decimal.NewFromInt(4000), Frequency: "MONTHLY", Occurrences: 4},
			},
		}
		result := detector.Detect(ba, nil)
		assert.False(t, result.StackingDetected)
	})

	t.Run("both sources accumulate", func(t *testing.T) {
		ba := &model.BankAnalysis{
			DetectedPayments: []model.DetectedPayment{
				{Description: "ACH FUNDR DAILY", Amount: decimal.RequireFromString("389.50"), Frequency: "DAILY", Occurrences: 42},
				{Description: "WKLY ADV PMT", Amount: decimal.RequireFromString("1200.00"), Frequency: "WEEKLY", Occurrences: 9},
			},
		}
		result := detector.Detect(ba, []model.UCCFiling{activeFiling})
		assert.True(t, result.StackingDetected)
		assert.Equal(t, 3, result.PositionCount)
	})
}
