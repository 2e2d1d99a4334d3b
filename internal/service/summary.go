package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/renanvzd/nlw-pocket/internal/model"
	"github.com/renanvzd/nlw-pocket/internal/week"
)

// SummaryStore is the read side the weekly summary depends on.
type SummaryStore interface {
	GoalsCreatedUpTo(ctx context.Context, end time.Time) ([]*model.Goal, error)
	CompletionsInRange(ctx context.Context, start, end time.Time) ([]*model.CompletionRow, error)
}

type SummaryService struct {
	store     SummaryStore
	weekStart time.Weekday
	now       func() time.Time
}

func NewSummaryService(store SummaryStore, weekStart time.Weekday, now func() time.Time) *SummaryService {
	return &SummaryService{
		store:     store,
		weekStart: weekStart,
		now:       now,
	}
}

// WeekSummary reports progress for the week containing the service clock's
// current instant. Any store failure fails the whole summary.
func (s *SummaryService) WeekSummary(ctx context.Context) (*model.WeekSummary, error) {
	window := week.Resolve(s.now(), s.weekStart)

	goals, err := s.store.GoalsCreatedUpTo(ctx, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	rows, err := s.store.CompletionsInRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}

	summary := BuildSummary(window, goals, SelectWeekCompletions(window, rows))

	slog.Debug("week summary computed",
		"week_start", window.Start.Format(week.DateLayout),
		"completed", summary.Completed,
		"total", summary.Total,
		"days", len(summary.GoalsPerDay),
	)

	return summary, nil
}

// SelectWeekCompletions keeps the rows inside the window and tags each with
// its calendar date. Rows without a goal are dropped.
func SelectWeekCompletions(window week.Window, rows []*model.CompletionRow) []model.WeekCompletion {
	completions := make([]model.WeekCompletion, 0, len(rows))
	for _, row := range rows {
		if row == nil || row.GoalID == "" || !window.Contains(row.CompletedAt) {
			continue
		}

		completions = append(completions, model.WeekCompletion{
			ID:              row.ID,
			Title:           row.GoalTitle,
			CompletedAt:     row.CompletedAt.In(window.Start.Location()),
			CompletedAtDate: window.Day(row.CompletedAt),
		})
	}
	return completions
}

// EligibleTotal sums the weekly targets of goals that existed by the end of the window.
func EligibleTotal(window week.Window, goals []*model.Goal) int {
	total := 0
	for _, goal := range goals {
		if goal == nil || goal.CreatedAt.After(window.End) {
			continue
		}
		total += goal.DesiredWeeklyFrequency
	}
	return total
}

// GroupByDay buckets completions by date. Days without completions are absent.
// Each day is ordered by completion time, then id.
func GroupByDay(completions []model.WeekCompletion) map[string][]model.DayCompletion {
	perDay := make(map[string][]model.DayCompletion)
	for _, c := range completions {
		perDay[c.CompletedAtDate] = append(perDay[c.CompletedAtDate], model.DayCompletion{
			ID:          c.ID,
			Title:       c.Title,
			CompletedAt: c.CompletedAt,
		})
	}

	for _, day := range perDay {
		slices.SortStableFunc(day, func(a, b model.DayCompletion) int {
			if c := a.CompletedAt.Compare(b.CompletedAt); c != 0 {
				return c
			}
			return strings.Compare(a.ID, b.ID)
		})
	}

	return perDay
}

func BuildSummary(window week.Window, goals []*model.Goal, completions []model.WeekCompletion) *model.WeekSummary {
	return &model.WeekSummary{
		Completed:   len(completions),
		Total:       EligibleTotal(window, goals),
		GoalsPerDay: GroupByDay(completions),
	}
}
