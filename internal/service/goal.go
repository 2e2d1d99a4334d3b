package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/renanvzd/nlw-pocket/internal/model"
	"github.com/renanvzd/nlw-pocket/internal/repository"
	"github.com/renanvzd/nlw-pocket/internal/validation"
	"github.com/renanvzd/nlw-pocket/internal/week"
)

var (
	ErrGoalAlreadyCompleted = errors.New("goal already completed this week")
)

type GoalService struct {
	repo           repository.GoalRepository
	completionRepo repository.CompletionRepository
	weekStart      time.Weekday
	now            func() time.Time
}

func NewGoalService(
	repo repository.GoalRepository,
	completionRepo repository.CompletionRepository,
	weekStart time.Weekday,
	now func() time.Time,
) *GoalService {
	return &GoalService{
		repo:           repo,
		completionRepo: completionRepo,
		weekStart:      weekStart,
		now:            now,
	}
}

func (s *GoalService) Create(ctx context.Context, title string, desiredWeeklyFrequency int) (*model.Goal, error) {
	err := validation.ValidateGoalTitle(title)
	if err != nil {
		return nil, err
	}

	err = validation.ValidateWeeklyFrequency(desiredWeeklyFrequency)
	if err != nil {
		return nil, err
	}

	goal := &model.Goal{
		ID:                     uuid.New().String(),
		Title:                  strings.TrimSpace(title),
		DesiredWeeklyFrequency: desiredWeeklyFrequency,
		CreatedAt:              s.now(),
	}

	err = s.repo.Create(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	slog.Info("goal created", "goal_id", goal.ID, "desired_weekly_frequency", goal.DesiredWeeklyFrequency)
	return goal, nil
}

// Complete records one completion of the goal now. A goal can't be
// completed more often in a week than its desired weekly frequency.
func (s *GoalService) Complete(ctx context.Context, goalID string) (*model.Completion, error) {
	goal, err := s.repo.ByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	window := week.Resolve(now, s.weekStart)

	count, err := s.completionRepo.CountForGoal(ctx, goal.ID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to count completions: %w", err)
	}

	if count >= goal.DesiredWeeklyFrequency {
		return nil, ErrGoalAlreadyCompleted
	}

	completion := &model.Completion{
		ID:        uuid.New().String(),
		GoalID:    goal.ID,
		CreatedAt: now,
	}

	err = s.completionRepo.Create(ctx, completion)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion: %w", err)
	}

	return completion, nil
}

// PendingGoals lists this week's eligible goals with their completion counts.
func (s *GoalService) PendingGoals(ctx context.Context) ([]*model.PendingGoal, error) {
	window := week.Resolve(s.now(), s.weekStart)

	goals, err := s.repo.CreatedUpTo(ctx, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	counts, err := s.completionRepo.CountByGoalInRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to count completions: %w", err)
	}

	pending := make([]*model.PendingGoal, 0, len(goals))
	for _, goal := range goals {
		pending = append(pending, &model.PendingGoal{
			ID:                     goal.ID,
			Title:                  goal.Title,
			DesiredWeeklyFrequency: goal.DesiredWeeklyFrequency,
			CompletionCount:        counts[goal.ID],
		})
	}

	return pending, nil
}
