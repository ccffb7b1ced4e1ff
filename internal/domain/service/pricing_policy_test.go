package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advancehub/underwriting-service/internal/domain/valueobject"
)

func TestPricingPolicy(t *testing.T) {
	t.Run("default table covers every grade", func(t *testing.T) {
		policy := DefaultPricingPolicy()
		assert.Equal(t, "2025.1", policy.Version())

		for _, g := range valueobject.AllPaperGrades() {
			terms, err := policy.TermsFor(g)
			require.NoError(t, err)
			assert.True(t, terms.DefaultFactorRate.GreaterThanOrEqual(terms.MinFactorRate))
			assert.True(t, terms.DefaultFactorRate.LessThanOrEqual(terms.MaxFactorRate))
			assert.GreaterOrEqual(t, terms.DefaultTermDays, terms.MinTermDays)
			assert.LessOrEqual(t, terms.DefaultTermDays, terms.MaxTermDays)
		}
	})

	t.Run("worse grades pay more and get less", func(t *testing.T) {
		policy := DefaultPricingPolicy()
		grades := valueobject.AllPaperGrades()
		for i := 1; i < len(grades); i++ {
			better, err := policy.TermsFor(grades[i-1])
			require.NoError(t, err)
			worse, err := policy.TermsFor(grades[i])
			require.NoError(t, err)

			assert.True(t, worse.DefaultFactorRate.GreaterThan(better.DefaultFactorRate))
			assert.True(t, worse.MaxRevenueMultiple.LessThan(better.MaxRevenueMultiple))
		}
	})

	t.Run("rejects an incomplete table", func(t *testing.T) {
		table := gradeTableForTest()
		delete(table, "D")

		_, err := NewPricingPolicy("broken", table, decimal.RequireFromString("0.10"), false)
		assert.Error(t, err)
	})

	t.Run("rejects an inverted rate range", func(t *testing.T) {
		table := gradeTableForTest()
		terms := table["A"]
		terms.MinFactorRate = decimal.RequireFromString("2.0")
		table["A"] = terms

		_, err := NewPricingPolicy("broken", table, decimal.RequireFromString("0.10"), false)
		assert.Error(t, err)
	})
}
