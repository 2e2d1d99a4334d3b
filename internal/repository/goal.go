package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/renanvzd/nlw-pocket/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	ByID(ctx context.Context, goalID string) (*model.Goal, error)
	// CreatedUpTo returns every goal created at or before end.
	CreatedUpTo(ctx context.Context, end time.Time) ([]*model.Goal, error)
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	query := `INSERT INTO goals (id, title, desired_weekly_frequency, created_at)
	          VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query,
		goal.ID,
		goal.Title,
		goal.DesiredWeeklyFrequency,
		goal.CreatedAt.UTC(),
	)

	return err
}

func (r *goalRepository) ByID(ctx context.Context, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT id, title, desired_weekly_frequency, created_at FROM goals WHERE id = $1`

	err := r.db.GetContext(ctx, goal, query, goalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (r *goalRepository) CreatedUpTo(ctx context.Context, end time.Time) ([]*model.Goal, error) {
	goals := []*model.Goal{}
	query := `SELECT id, title, desired_weekly_frequency, created_at
	          FROM goals
	          WHERE created_at <= $1
	          ORDER BY created_at ASC, id ASC`

	err := r.db.SelectContext(ctx, &goals, query, end.UTC())
	if err != nil {
		return nil, err
	}

	return goals, nil
}
