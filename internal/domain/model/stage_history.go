package model

import (
	"errors"
	"time"
)

// ErrEmptyComment rejects a comment with no body.
var ErrEmptyComment = errors.New("comment body is empty")

// ---------------------------------------------------------------------------
// Stage history and audit comments (append-only event log)
// ---------------------------------------------------------------------------

// StageTransition is one immutable row in a deal's stage history. FromStage
// is the zero value for the row recording the deal's creation. The deal's
// current stage always equals the ToStage of its most recent row.
type StageTransition struct {
	ID         string
	DealID     string
	FromStage  string
	ToStage    string
	Actor      string
	Note       string
	OccurredAt time.Time
}

// DealComment is an append-only audit note attached to a deal. Comments are
// a human-readable record of decision rationale, never a computation input.
type DealComment struct {
	ID        string
	DealID    string
	Author    string
	Body      string
	CreatedAt time.Time
}
