package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// DealStage – immutable value object
// ---------------------------------------------------------------------------

// DealStage represents the lifecycle stage of a funding deal.
type DealStage struct {
	value string
}

const (
	dealStageNewLead        = "NEW_LEAD"
	dealStageDocsRequested  = "DOCS_REQUESTED"
	dealStageDocsReceived   = "DOCS_RECEIVED"
	dealStageInUnderwriting = "IN_UNDERWRITING"
	dealStageApproved       = "APPROVED"
	dealStageContractSent   = "CONTRACT_SENT"
	dealStageContractSigned = "CONTRACT_SIGNED"
	dealStageFunded         = "FUNDED"
	dealStageDeclined       = "DECLINED"
	dealStageDead           = "DEAD"
)

var (
	DealStageNewLead        = DealStage{value: dealStageNewLead}
	DealStageDocsRequested  = DealStage{value: dealStageDocsRequested}
	DealStageDocsReceived   = DealStage{value: dealStageDocsReceived}
	DealStageInUnderwriting = DealStage{value: dealStageInUnderwriting}
	DealStageApproved       = DealStage{value: dealStageApproved}
	DealStageContractSent   = DealStage{value: dealStageContractSent}
	DealStageContractSigned = DealStage{value: dealStageContractSigned}
	DealStageFunded         = DealStage{value: dealStageFunded}
	DealStageDeclined       = DealStage{value: dealStageDeclined}
	DealStageDead           = DealStage{value: dealStageDead}
)

var validDealStages = map[string]DealStage{
	dealStageNewLead:        DealStageNewLead,
	dealStageDocsRequested:  DealStageDocsRequested,
	dealStageDocsReceived:   DealStageDocsReceived,
	dealStageInUnderwriting: DealStageInUnderwriting,
	dealStageApproved:       DealStageApproved,
	dealStageContractSent:   DealStageContractSent,
	dealStageContractSigned: DealStageContractSigned,
	dealStageFunded:         DealStageFunded,
	dealStageDeclined:       DealStageDeclined,
	dealStageDead:           DealStageDead,
}

// NewDealStage creates a DealStage from a raw string.
func NewDealStage(s string) (DealStage, error) {
	v, ok := validDealStages[s]
	if !ok {
		return DealStage{}, fmt.Errorf("invalid deal stage %q: %w", s, ErrUnknownValue)
	}
	return v, nil
}

// String returns the string representation of the stage.
func (s DealStage) String() string { return s.value }

// IsZero returns true if the stage has not been initialised.
func (s DealStage) IsZero() bool { return s.value == "" }

// Equal returns true when both stages carry the same value.
func (s DealStage) Equal(other DealStage) bool { return s.value == other.value }

// IsTerminal reports whether the stage ends the deal lifecycle.
func (s DealStage) IsTerminal() bool {
	switch s.value {
	case dealStageFunded, dealStageDeclined, dealStageDead:
		return true
	default:
		return false
	}
}

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStageTransition = errors.New("invalid stage transition")
)
