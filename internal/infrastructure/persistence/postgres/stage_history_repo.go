package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/advancehub/underwriting-service/internal/domain/model"
)

// StageHistoryRepo implements port.StageHistoryRepository. The tables are
// append-only; rows are written through the deal repository's transactions
// and read here.
type StageHistoryRepo struct {
	pool *pgxpool.Pool
}

// NewStageHistoryRepo creates a new repository backed by PostgreSQL.
func NewStageHistoryRepo(pool *pgxpool.Pool) *StageHistoryRepo {
	return &StageHistoryRepo{pool: pool}
}

// ListTransitions retrieves the ordered stage trail for a deal.
func (r *StageHistoryRepo) ListTransitions(ctx context.Context, dealID string) ([]model.StageTransition, error) {
	query := `
		SELECT id, deal_id, from_stage, to_stage, actor, note, occurred_at
		FROM deal_stage_history
		WHERE deal_id = $1
		ORDER BY occurred_at ASC, id ASC
	`
	rows, err := r.pool.Query(ctx, query, dealID)
	if err != nil {
		return nil, fmt.Errorf("query stage history: %w", err)
	}
	defer rows.Close()

	var transitions []model.StageTransition
	for rows.Next() {
		var t model.StageTransition
		if err := rows.Scan(&t.ID, &t.DealID, &t.FromStage, &t.ToStage, &t.Actor, &t.Note, &t.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan stage transition: %w", err)
		}
		transitions = append(transitions, t)
	}
	return transitions, rows.Err()
}

// ListComments retrieves the ordered audit comments for a deal.
func (r *StageHistoryRepo) ListComments(ctx context.Context, dealID string) ([]model.DealComment, error) {
	query := `
		SELECT id, deal_id, author, body, created_at
		FROM deal_comments
		WHERE deal_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.pool.Query(ctx, query, dealID)
	if err != nil {
		return nil, fmt.Errorf("query deal comments: %w", err)
	}
	defer rows.Close()

	var comments []model.DealComment
	for rows.Next() {
		var c model.DealComment
		if err := rows.Scan(&c.ID, &c.DealID, &c.Author, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan deal comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// AddComment appends a standalone human note outside a stage transition.
func (r *StageHistoryRepo) AddComment(ctx context.Context, c model.DealComment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO deal_comments (id, deal_id, author, body, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, c.ID, c.DealID, c.Author, c.Body, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert deal comment: %w", err)
	}
	return nil
}
