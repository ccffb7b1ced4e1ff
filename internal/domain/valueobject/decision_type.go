package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// DecisionType – immutable value object
// ---------------------------------------------------------------------------

// DecisionType represents an underwriting decision applied to a deal.
// A COUNTER is modelled as an approval with different terms, not a distinct
// stage; both APPROVE and COUNTER move the deal to APPROVED.
type DecisionType struct {
	value string
}

const (
	decisionApprove = "APPROVE"
	decisionDecline = "DECLINE"
	decisionCounter = "COUNTER"
)

var (
	DecisionApprove = DecisionType{value: decisionApprove}
	DecisionDecline = DecisionType{value: decisionDecline}
	DecisionCounter = DecisionType{value: decisionCounter}
)

var validDecisionTypes = map[string]DecisionType{
	decisionApprove: DecisionApprove,
	decisionDecline: DecisionDecline,
	decisionCounter: DecisionCounter,
}

// NewDecisionType creates a DecisionType from a raw string.
func NewDecisionType(s string) (DecisionType, error) {
	v, ok := validDecisionTypes[s]
	if !ok {
		return DecisionType{}, fmt.Errorf("invalid decision type %q: %w", s, ErrUnknownValue)
	}
	return v, nil
}

// String returns the string representation of the decision.
func (d DecisionType) String() string { return d.value }

// IsZero returns true if the decision has not been initialised.
func (d DecisionType) IsZero() bool { return d.value == "" }

// Equal returns true when both decisions carry the same value.
func (d DecisionType) Equal(other DecisionType) bool { return d.value == other.value }

// IsApproval reports whether the decision results in approved terms.
func (d DecisionType) IsApproval() bool {
	return d.value == decisionApprove || d.value == decisionCounter
}
