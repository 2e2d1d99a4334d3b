package model

import (
	"time"
)

type Completion struct {
	ID        string    `db:"id" json:"id"`
	GoalID    string    `db:"goal_id" json:"goalId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// CompletionRow is a completion joined with the title of its goal.
type CompletionRow struct {
	ID          string    `db:"id"`
	GoalID      string    `db:"goal_id"`
	GoalTitle   string    `db:"goal_title"`
	CompletedAt time.Time `db:"completed_at"`
}
