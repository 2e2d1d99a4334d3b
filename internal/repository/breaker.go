package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/renanvzd/nlw-pocket/internal/model"
	"github.com/sony/gobreaker/v2"
)

// ErrStoreUnavailable is returned while the breaker is open.
var ErrStoreUnavailable = errors.New("store unavailable")

type BreakerSettings struct {
	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32
	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration
	// MaxRequests is the number of probes allowed while half-open.
	MaxRequests uint32
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		FailureThreshold: 5,
		Timeout:          30 * time.Second,
		MaxRequests:      1,
	}
}

// BreakerStore serves the weekly summary reads through a circuit breaker,
// so an unreachable database fails requests fast instead of piling them up.
type BreakerStore struct {
	goals       GoalRepository
	completions CompletionRepository
	breaker     *gobreaker.CircuitBreaker[any]
}

func NewBreakerStore(goals GoalRepository, completions CompletionRepository, settings BreakerSettings) *BreakerStore {
	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "summary-store",
		MaxRequests: settings.MaxRequests,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			// A caller giving up says nothing about the store's health
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &BreakerStore{
		goals:       goals,
		completions: completions,
		breaker:     breaker,
	}
}

func (s *BreakerStore) GoalsCreatedUpTo(ctx context.Context, end time.Time) ([]*model.Goal, error) {
	result, err := s.execute(func() (any, error) {
		return s.goals.CreatedUpTo(ctx, end)
	})
	if err != nil {
		return nil, err
	}
	return result.([]*model.Goal), nil
}

func (s *BreakerStore) CompletionsInRange(ctx context.Context, start, end time.Time) ([]*model.CompletionRow, error) {
	result, err := s.execute(func() (any, error) {
		return s.completions.InRange(ctx, start, end)
	})
	if err != nil {
		return nil, err
	}
	return result.([]*model.CompletionRow), nil
}

// State exposes the breaker state for health reporting.
func (s *BreakerStore) State() string {
	return s.breaker.State().String()
}

func (s *BreakerStore) execute(fn func() (any, error)) (any, error) {
	result, err := s.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return result, err
}
