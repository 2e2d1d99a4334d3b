package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/renanvzd/nlw-pocket/internal/model"
)

type CompletionRepository interface {
	Create(ctx context.Context, completion *model.Completion) error
	// InRange returns completions with start <= created_at <= end, joined
	// with their goal's title. Completions without a goal are skipped.
	InRange(ctx context.Context, start, end time.Time) ([]*model.CompletionRow, error)
	CountForGoal(ctx context.Context, goalID string, start, end time.Time) (int, error)
	// CountByGoalInRange maps goal id to its number of completions in range.
	// Goals with no completions are absent.
	CountByGoalInRange(ctx context.Context, start, end time.Time) (map[string]int, error)
}

type completionRepository struct {
	db *sqlx.DB
}

func NewCompletionRepository(db *sqlx.DB) CompletionRepository {
	return &completionRepository{db: db}
}

func (r *completionRepository) Create(ctx context.Context, completion *model.Completion) error {
	query := `INSERT INTO goal_completions (id, goal_id, created_at) VALUES ($1, $2, $3)`

	_, err := r.db.ExecContext(ctx, query,
		completion.ID,
		completion.GoalID,
		completion.CreatedAt.UTC(),
	)

	return err
}

func (r *completionRepository) InRange(ctx context.Context, start, end time.Time) ([]*model.CompletionRow, error) {
	rows := []*model.CompletionRow{}
	query := `SELECT c.id, c.goal_id, g.title AS goal_title, c.created_at AS completed_at
	          FROM goal_completions c
	          INNER JOIN goals g ON g.id = c.goal_id
	          WHERE c.created_at >= $1 AND c.created_at <= $2
	          ORDER BY c.created_at ASC, c.id ASC`

	err := r.db.SelectContext(ctx, &rows, query, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *completionRepository) CountForGoal(ctx context.Context, goalID string, start, end time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goal_completions
	          WHERE goal_id = $1 AND created_at >= $2 AND created_at <= $3`

	err := r.db.QueryRowContext(ctx, query, goalID, start.UTC(), end.UTC()).Scan(&count)
	return count, err
}

func (r *completionRepository) CountByGoalInRange(ctx context.Context, start, end time.Time) (map[string]int, error) {
	var rows []struct {
		GoalID string `db:"goal_id"`
		Count  int    `db:"completion_count"`
	}
	query := `SELECT goal_id, COUNT(*) AS completion_count
	          FROM goal_completions
	          WHERE created_at >= $1 AND created_at <= $2
	          GROUP BY goal_id`

	err := r.db.SelectContext(ctx, &rows, query, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.GoalID] = row.Count
	}

	return counts, nil
}
