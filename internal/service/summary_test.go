package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renanvzd/nlw-pocket/internal/model"
	"github.com/renanvzd/nlw-pocket/internal/week"
)

type mockSummaryStore struct {
	mock.Mock
}

func (m *mockSummaryStore) GoalsCreatedUpTo(ctx context.Context, end time.Time) ([]*model.Goal, error) {
	args := m.Called(ctx, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Goal), args.Error(1)
}

func (m *mockSummaryStore) CompletionsInRange(ctx context.Context, start, end time.Time) ([]*model.CompletionRow, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CompletionRow), args.Error(1)
}

// Thursday, so the sunday-start week is 2024-08-04 .. 2024-08-10
var thursday = time.Date(2024, 8, 8, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func day(d int, hour, minute int) time.Time {
	return time.Date(2024, 8, d, hour, minute, 0, 0, time.UTC)
}

func TestWeekSummaryScenarioRepeatedCompletions(t *testing.T) {
	store := new(mockSummaryStore)
	window := week.Resolve(thursday, time.Sunday)

	goalA := &model.Goal{ID: "a", Title: "Meditate", DesiredWeeklyFrequency: 3, CreatedAt: thursday.AddDate(0, 0, -10)}
	store.On("GoalsCreatedUpTo", mock.Anything, window.End).Return([]*model.Goal{goalA}, nil)
	store.On("CompletionsInRange", mock.Anything, window.Start, window.End).Return([]*model.CompletionRow{
		{ID: "c3", GoalID: "a", GoalTitle: "Meditate", CompletedAt: day(7, 7, 0)},
		{ID: "c2", GoalID: "a", GoalTitle: "Meditate", CompletedAt: day(5, 20, 0)},
		{ID: "c1", GoalID: "a", GoalTitle: "Meditate", CompletedAt: day(5, 8, 13)},
	}, nil)

	svc := NewSummaryService(store, time.Sunday, fixedClock(thursday))

	summary, err := svc.WeekSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Completed)
	assert.Equal(t, 3, summary.Total)
	require.Len(t, summary.GoalsPerDay, 2)

	monday := summary.GoalsPerDay["2024-08-05"]
	require.Len(t, monday, 2)
	assert.Equal(t, "c1", monday[0].ID)
	assert.Equal(t, "c2", monday[1].ID)
	assert.Equal(t, "Meditate", monday[0].Title)

	wednesday := summary.GoalsPerDay["2024-08-07"]
	require.Len(t, wednesday, 1)
	assert.Equal(t, "c3", wednesday[0].ID)

	store.AssertExpectations(t)
}

func TestWeekSummaryScenarioEmptyStore(t *testing.T) {
	store := new(mockSummaryStore)
	store.On("GoalsCreatedUpTo", mock.Anything, mock.Anything).Return([]*model.Goal{}, nil)
	store.On("CompletionsInRange", mock.Anything, mock.Anything, mock.Anything).Return([]*model.CompletionRow{}, nil)

	svc := NewSummaryService(store, time.Sunday, fixedClock(thursday))

	summary, err := svc.WeekSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Completed)
	assert.Equal(t, 0, summary.Total)
	assert.NotNil(t, summary.GoalsPerDay)
	assert.Empty(t, summary.GoalsPerDay)
}

func TestWeekSummaryScenarioGoalCreatedAfterWeek(t *testing.T) {
	saturday := time.Date(2024, 8, 10, 12, 0, 0, 0, time.UTC)
	store := new(mockSummaryStore)

	goalA := &model.Goal{ID: "a", Title: "Meditate", DesiredWeeklyFrequency: 2, CreatedAt: saturday.AddDate(0, 0, -3)}
	goalB := &model.Goal{ID: "b", Title: "Swim", DesiredWeeklyFrequency: 5, CreatedAt: saturday.AddDate(0, 0, 1)}
	store.On("GoalsCreatedUpTo", mock.Anything, mock.Anything).Return([]*model.Goal{goalA, goalB}, nil)
	store.On("CompletionsInRange", mock.Anything, mock.Anything, mock.Anything).Return([]*model.CompletionRow{
		{ID: "c1", GoalID: "b", GoalTitle: "Swim", CompletedAt: saturday},
	}, nil)

	svc := NewSummaryService(store, time.Sunday, fixedClock(saturday))

	summary, err := svc.WeekSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Completed)
}

func TestWeekSummaryPropagatesStoreErrors(t *testing.T) {
	dbErr := errors.New("connection refused")

	t.Run("goals", func(t *testing.T) {
		store := new(mockSummaryStore)
		store.On("GoalsCreatedUpTo", mock.Anything, mock.Anything).Return(nil, dbErr)

		summary, err := NewSummaryService(store, time.Sunday, fixedClock(thursday)).WeekSummary(context.Background())
		assert.ErrorIs(t, err, dbErr)
		assert.Nil(t, summary)
		store.AssertNotCalled(t, "CompletionsInRange", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("completions", func(t *testing.T) {
		store := new(mockSummaryStore)
		store.On("GoalsCreatedUpTo", mock.Anything, mock.Anything).Return([]*model.Goal{}, nil)
		store.On("CompletionsInRange", mock.Anything, mock.Anything, mock.Anything).Return(nil, dbErr)

		summary, err := NewSummaryService(store, time.Sunday, fixedClock(thursday)).WeekSummary(context.Background())
		assert.ErrorIs(t, err, dbErr)
		assert.Nil(t, summary)
	})
}

func TestWeekSummaryIsIdempotent(t *testing.T) {
	store := new(mockSummaryStore)
	store.On("GoalsCreatedUpTo", mock.Anything, mock.Anything).Return([]*model.Goal{
		{ID: "a", Title: "Meditate", DesiredWeeklyFrequency: 3, CreatedAt: day(1, 0, 0)},
	}, nil)
	store.On("CompletionsInRange", mock.Anything, mock.Anything, mock.Anything).Return([]*model.CompletionRow{
		{ID: "c1", GoalID: "a", GoalTitle: "Meditate", CompletedAt: day(6, 9, 0)},
		{ID: "c2", GoalID: "a", GoalTitle: "Meditate", CompletedAt: day(6, 9, 0)},
	}, nil)

	now := thursday
	svc := NewSummaryService(store, time.Sunday, func() time.Time { return now })

	first, err := svc.WeekSummary(context.Background())
	require.NoError(t, err)

	now = thursday.Add(30 * time.Hour)
	second, err := svc.WeekSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSelectWeekCompletions(t *testing.T) {
	window := week.Resolve(thursday, time.Sunday)
	loc := time.FixedZone("BRT", -3*60*60)

	rows := []*model.CompletionRow{
		{ID: "start", GoalID: "a", GoalTitle: "A", CompletedAt: window.Start},
		{ID: "end", GoalID: "a", GoalTitle: "A", CompletedAt: window.End},
		{ID: "before", GoalID: "a", GoalTitle: "A", CompletedAt: window.Start.Add(-time.Nanosecond)},
		{ID: "after", GoalID: "a", GoalTitle: "A", CompletedAt: window.End.Add(time.Nanosecond)},
		{ID: "orphan", GoalTitle: "", CompletedAt: day(6, 0, 0)},
		{ID: "zone", GoalID: "a", GoalTitle: "A", CompletedAt: time.Date(2024, 8, 6, 22, 0, 0, 0, loc)},
		nil,
	}

	got := SelectWeekCompletions(window, rows)
	require.Len(t, got, 3)

	assert.Equal(t, "start", got[0].ID)
	assert.Equal(t, "2024-08-04", got[0].CompletedAtDate)
	assert.Equal(t, "end", got[1].ID)
	assert.Equal(t, "2024-08-10", got[1].CompletedAtDate)
	// 22:00 BRT is 01:00 the next day in the window's zone
	assert.Equal(t, "zone", got[2].ID)
	assert.Equal(t, "2024-08-07", got[2].CompletedAtDate)
	assert.Equal(t, time.UTC, got[2].CompletedAt.Location())
}

func TestEligibleTotal(t *testing.T) {
	window := week.Resolve(thursday, time.Sunday)

	goals := []*model.Goal{
		{ID: "old", DesiredWeeklyFrequency: 3, CreatedAt: window.Start.AddDate(-1, 0, 0)},
		{ID: "edge", DesiredWeeklyFrequency: 2, CreatedAt: window.End},
		{ID: "future", DesiredWeeklyFrequency: 7, CreatedAt: window.End.Add(time.Nanosecond)},
		nil,
	}

	assert.Equal(t, 5, EligibleTotal(window, goals))
	assert.Equal(t, 0, EligibleTotal(window, nil))
}

func TestGroupByDayOrdersEachDay(t *testing.T) {
	completions := []model.WeekCompletion{
		{ID: "b", Title: "Swim", CompletedAt: day(5, 9, 0), CompletedAtDate: "2024-08-05"},
		{ID: "c", Title: "Read", CompletedAt: day(9, 9, 0), CompletedAtDate: "2024-08-09"},
		{ID: "a", Title: "Swim", CompletedAt: day(5, 9, 0), CompletedAtDate: "2024-08-05"},
		{ID: "z", Title: "Swim", CompletedAt: day(5, 7, 0), CompletedAtDate: "2024-08-05"},
	}

	perDay := GroupByDay(completions)

	require.Len(t, perDay, 2)
	ids := []string{}
	for _, c := range perDay["2024-08-05"] {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"z", "a", "b"}, ids)
	assert.Len(t, perDay["2024-08-09"], 1)
}

func TestBuildSummaryInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	window := week.Resolve(thursday, time.Sunday)
	days := window.Days()

	for i := 0; i < 50; i++ {
		var goals []*model.Goal
		wantTotal := 0
		goalCount := rng.Intn(6)
		for g := 0; g < goalCount; g++ {
			createdAt := window.End.Add(time.Duration(rng.Intn(20*24)-10*24) * time.Hour)
			freq := rng.Intn(7) + 1
			goals = append(goals, &model.Goal{
				ID:                     fmt.Sprintf("g%d", g),
				DesiredWeeklyFrequency: freq,
				CreatedAt:              createdAt,
			})
			if !createdAt.After(window.End) {
				wantTotal += freq
			}
		}

		var rows []*model.CompletionRow
		wantCompleted := 0
		completionCount := rng.Intn(30)
		for c := 0; c < completionCount; c++ {
			at := window.Start.Add(time.Duration(rng.Intn(9*24*60)-24*60) * time.Minute)
			rows = append(rows, &model.CompletionRow{
				ID:          fmt.Sprintf("c%d", c),
				GoalID:      "g0",
				GoalTitle:   "Goal",
				CompletedAt: at,
			})
			if window.Contains(at) {
				wantCompleted++
			}
		}

		summary := BuildSummary(window, goals, SelectWeekCompletions(window, rows))

		assert.Equal(t, wantTotal, summary.Total)
		assert.Equal(t, wantCompleted, summary.Completed)

		perDayCount := 0
		for date, entries := range summary.GoalsPerDay {
			assert.Contains(t, days, date)
			assert.NotEmpty(t, entries)
			perDayCount += len(entries)
		}
		assert.Equal(t, summary.Completed, perDayCount)
	}
}
