package model

import (
	"time"
)

// WeekCompletion is a completion inside the week window, tagged with the
// calendar date it falls on.
type WeekCompletion struct {
	ID              string
	Title           string
	CompletedAt     time.Time
	CompletedAtDate string
}

type DayCompletion struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CompletedAt time.Time `json:"completedAt"`
}

// WeekSummary is the weekly progress report.
// Completed always equals the number of entries across GoalsPerDay.
type WeekSummary struct {
	Completed   int                        `json:"completed"`
	Total       int                        `json:"total"`
	GoalsPerDay map[string][]DayCompletion `json:"goalsPerDay"`
}
