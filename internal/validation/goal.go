package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/renanvzd/nlw-pocket/internal/model"
)

const GoalTitleMaxLength = 100

// Error is a user-facing validation failure on a single field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ValidateGoalTitle validates a goal title after trimming surrounding space
func ValidateGoalTitle(title string) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return &Error{Field: "title", Message: "title is required"}
	}

	if utf8.RuneCountInString(trimmed) > GoalTitleMaxLength {
		return &Error{
			Field:   "title",
			Message: fmt.Sprintf("title is too long (max %d characters)", GoalTitleMaxLength),
		}
	}

	return nil
}

// ValidateWeeklyFrequency checks the target fits in a single week
func ValidateWeeklyFrequency(frequency int) error {
	if frequency < model.GoalMinWeeklyFrequency || frequency > model.GoalMaxWeeklyFrequency {
		return &Error{
			Field: "desiredWeeklyFrequency",
			Message: fmt.Sprintf("desired weekly frequency must be between %d and %d",
				model.GoalMinWeeklyFrequency, model.GoalMaxWeeklyFrequency),
		}
	}

	return nil
}
