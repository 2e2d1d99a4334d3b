package model

import (
	"time"
)

const (
	GoalMinWeeklyFrequency = 1
	GoalMaxWeeklyFrequency = 7
)

type Goal struct {
	ID                     string    `db:"id" json:"id"`
	Title                  string    `db:"title" json:"title"`
	DesiredWeeklyFrequency int       `db:"desired_weekly_frequency" json:"desiredWeeklyFrequency"`
	CreatedAt              time.Time `db:"created_at" json:"createdAt"`
}

// PendingGoal is a goal eligible this week with how often it was done so far.
type PendingGoal struct {
	ID                     string `json:"id"`
	Title                  string `json:"title"`
	DesiredWeeklyFrequency int    `json:"desiredWeeklyFrequency"`
	CompletionCount        int    `json:"completionCount"`
}
