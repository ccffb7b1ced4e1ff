package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// IndustryTier – immutable value object
// ---------------------------------------------------------------------------

// IndustryTier is the ordered industry risk classification of a merchant.
type IndustryTier struct {
	value string
}

var (
	IndustryTierLow    = IndustryTier{value: "LOW"}
	IndustryTierMedium = IndustryTier{value: "MEDIUM"}
	IndustryTierHigh   = IndustryTier{value: "HIGH"}
)

// NewIndustryTier creates an IndustryTier from a raw string.
func NewIndustryTier(s string) (IndustryTier, error) {
	switch s {
	case "LOW":
		return IndustryTierLow, nil
	case "MEDIUM":
		return IndustryTierMedium, nil
	case "HIGH":
		return IndustryTierHigh, nil
	default:
		return IndustryTier{}, fmt.Errorf("invalid industry tier %q: %w", s, ErrUnknownValue)
	}
}

// String returns the string representation.
func (t IndustryTier) String() string { return t.value }

// IsZero returns true when not initialised.
func (t IndustryTier) IsZero() bool { return t.value == "" }

// Equal returns true when both tiers match.
func (t IndustryTier) Equal(other IndustryTier) bool { return t.value == other.value }

// ---------------------------------------------------------------------------
// RevenueTrend – immutable value object
// ---------------------------------------------------------------------------

// RevenueTrend is the direction of deposit revenue over the analysed period.
type RevenueTrend struct {
	value string
}

var (
	RevenueTrendIncreasing = RevenueTrend{value: "INCREASING"}
	RevenueTrendStable     = RevenueTrend{value: "STABLE"}
	RevenueTrendDeclining  = RevenueTrend{value: "DECLINING"}
)

// NewRevenueTrend creates a RevenueTrend from a raw string.
func NewRevenueTrend(s string) (RevenueTrend, error) {
	switch s {
	case "INCREASING":
		return RevenueTrendIncreasing, nil
	case "STABLE":
		return RevenueTrendStable, nil
	case "DECLINING":
		return RevenueTrendDeclining, nil
	default:
		return RevenueTrend{}, fmt.Errorf("invalid revenue trend %q: %w", s, ErrUnknownValue)
	}
}

// String returns the string representation.
func (t RevenueTrend) String() string { return t.value }

// IsZero returns true when not initialised.
func (t RevenueTrend) IsZero() bool { return t.value == "" }

// Equal returns true when both trends match.
func (t RevenueTrend) Equal(other RevenueTrend) bool { return t.value == other.value }
