package validation

import (
	"fmt"
	"regexp"
	"strings"

	"readnest/internal/models"
)

var (
	dateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateDate checks a calendar date in YYYY-MM-DD form
func ValidateDate(date string) error {
	if date == "" {
		return ValidationError{Field: "date", Message: "date is required"}
	}
	if !dateRegex.MatchString(date) {
		return ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"}
	}
	return nil
}

// ValidateMonth checks a calendar month in YYYY-MM form
func ValidateMonth(month string) error {
	if !monthRegex.MatchString(month) {
		return ValidationError{Field: "month", Message: "month must be YYYY-MM"}
	}
	return nil
}

// ValidateUnit checks a goal unit
func ValidateUnit(unit string) error {
	if unit != models.UnitPages && unit != models.UnitMinutes {
		return ValidationError{Field: "unit", Message: "unit must be pages or minutes"}
	}
	return nil
}

// ValidateChildID checks a child identifier is present
func ValidateChildID(childID string) error {
	if strings.TrimSpace(childID) == "" {
		return ValidationError{Field: "child_id", Message: "child_id is required"}
	}
	return nil
}
