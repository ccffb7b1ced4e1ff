package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/advancehub/underwriting-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// PricingPolicy – immutable, versioned policy table
// ---------------------------------------------------------------------------

// GradeTerms holds the pricing constraints for a single paper grade.
type GradeTerms struct {
	MinFactorRate     decimal.Decimal
	MaxFactorRate     decimal.Decimal
	DefaultFactorRate decimal.Decimal
	MinTermDays       int
	MaxTermDays       int
	DefaultTermDays   int
	// MaxRevenueMultiple caps the approved amount at monthly revenue
	// times this multiple.
	MaxRevenueMultiple decimal.Decimal
}

// PricingPolicy is a static table injected into the offer calculator.
// It carries no behavior beyond lookups, so it can be audited and swapped
// without touching the calculation code.
type PricingPolicy struct {
	version                 string
	grades                  map[string]GradeTerms
	defaultBrokerCommission decimal.Decimal
	clampCustomOffers       bool
	businessDaysPerMonth    int
	businessDaysPerWeek     int
}

// NewPricingPolicy builds a policy from an explicit grade table.
func NewPricingPolicy(
	version string,
	grades map[string]GradeTerms,
	defaultBrokerCommission decimal.Decimal,
	clampCustomOffers bool,
) (PricingPolicy, error) {
	if version == "" {
		return PricingPolicy{}, fmt.Errorf("policy version is required")
	}
	for _, g := range valueobject.AllPaperGrades() {
		terms, ok := grades[g.String()]
		if !ok {
			return PricingPolicy{}, fmt.Errorf("policy missing grade %s", g)
		}
		if terms.MinFactorRate.GreaterThan(terms.MaxFactorRate) {
			return PricingPolicy{}, fmt.Errorf("grade %s: min factor rate exceeds max", g)
		}
		if terms.MinTermDays > terms.MaxTermDays || terms.MinTermDays <= 0 {
			return PricingPolicy{}, fmt.Errorf("grade %s: invalid term day range", g)
		}
	}
	copied := make(map[string]GradeTerms, len(grades))
	for k, v := range grades {
		copied[k] = v
	}
	return PricingPolicy{
		version:                 version,
		grades:                  copied,
		defaultBrokerCommission: defaultBrokerCommission,
		clampCustomOffers:       clampCustomOffers,
		businessDaysPerMonth:    22,
		businessDaysPerWeek:     5,
	}, nil
}

// DefaultPricingPolicy returns the standing production table.
func DefaultPricingPolicy() PricingPolicy {
	p, err := NewPricingPolicy(
		"2025.1",
		map[string]GradeTerms{
			"A": {
				MinFactorRate:      decimal.RequireFromString("1.15"),
				MaxFactorRate:      decimal.RequireFromString("1.25"),
				DefaultFactorRate:  decimal.RequireFromString("1.18"),
				MinTermDays:        120,
				MaxTermDays:        220,
				DefaultTermDays:    180,
				MaxRevenueMultiple: decimal.RequireFromString("1.50"),
			},
			"B": {
				MinFactorRate:      decimal.RequireFromString("1.25"),
				MaxFactorRate:      decimal.RequireFromString("1.35"),
				DefaultFactorRate:  decimal.RequireFromString("1.30"),
				MinTermDays:        100,
				MaxTermDays:        180,
				DefaultTermDays:    140,
				MaxRevenueMultiple: decimal.RequireFromString("1.25"),
			},
			"C": {
				MinFactorRate:      decimal.RequireFromString("1.35"),
				MaxFactorRate:      decimal.RequireFromString("1.45"),
				DefaultFactorRate:  decimal.RequireFromString("1.40"),
				MinTermDays:        80,
				MaxTermDays:        140,
				DefaultTermDays:    100,
				MaxRevenueMultiple: decimal.RequireFromString("1.00"),
			},
			"D": {
				MinFactorRate:      decimal.RequireFromString("1.45"),
				MaxFactorRate:      decimal.RequireFromString("1.49"),
				DefaultFactorRate:  decimal.RequireFromString("1.49"),
				MinTermDays:        60,
				MaxTermDays:        100,
				DefaultTermDays:    80,
				MaxRevenueMultiple: decimal.RequireFromString("0.75"),
			},
		},
		decimal.RequireFromString("0.10"),
		false,
	)
	if err != nil {
		panic(err)
	}
	return p
}

// WithClampCustomOffers returns a copy of the policy with the custom-offer
// clamping behaviour overridden.
func (p PricingPolicy) WithClampCustomOffers(clamp bool) PricingPolicy {
	p.clampCustomOffers = clamp
	return p
}

// Version returns the policy table version string.
func (p PricingPolicy) Version() string { return p.version }

// TermsFor looks up the grade's pricing constraints.
func (p PricingPolicy) TermsFor(grade valueobject.PaperGrade) (GradeTerms, error) {
	terms, ok := p.grades[grade.String()]
	if !ok {
		return GradeTerms{}, fmt.Errorf("no pricing terms for grade %q", grade.String())
	}
	return terms, nil
}

// DefaultBrokerCommission is the commission rate used when no broker is
// attached to the deal.
func (p PricingPolicy) DefaultBrokerCommission() decimal.Decimal {
	return p.defaultBrokerCommission
}

// ClampCustomOffers reports whether custom rate/term overrides are clamped
// into the grade's allowed range rather than accepted verbatim.
func (p PricingPolicy) ClampCustomOffers() bool { return p.clampCustomOffers }

// BusinessDaysPerMonth is the divisor used for holdback math.
func (p PricingPolicy) BusinessDaysPerMonth() int { return p.businessDaysPerMonth }

// BusinessDaysPerWeek converts daily to weekly payments.
func (p PricingPolicy) BusinessDaysPerWeek() int { return p.businessDaysPerWeek }
