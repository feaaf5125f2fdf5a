package usecase

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/xavierca1/leadtrack/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates per-field failures so the boundary can
// report all of them at once.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

func ValidateCreateLeadInput(input CreateLeadInput) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errs = append(errs, ValidationError{"phone", "is required"})
	}

	if strings.TrimSpace(input.Source) == "" {
		errs = append(errs, ValidationError{"source", "is required"})
	} else if !entity.IsValidSource(input.Source) {
		errs = append(errs, ValidationError{"source", "is not a known source"})
	}

	if input.Status != "" && !entity.IsValidStatus(input.Status) {
		errs = append(errs, ValidationError{"status", "must be Cold, Warm or Hot"})
	}

	return errs
}

func ValidateUpdateLeadInput(input UpdateLeadInput) ValidationErrors {
	var errs ValidationErrors

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		errs = append(errs, ValidationError{"name", "must not be empty"})
	}

	if input.Email != nil {
		if strings.TrimSpace(*input.Email) == "" {
			errs = append(errs, ValidationError{"email", "must not be empty"})
		} else if _, err := mail.ParseAddress(*input.Email); err != nil {
			errs = append(errs, ValidationError{"email", "is invalid"})
		}
	}

	if input.Phone != nil && strings.TrimSpace(*input.Phone) == "" {
		errs = append(errs, ValidationError{"phone", "must not be empty"})
	}

	if input.Source != nil && !entity.IsValidSource(*input.Source) {
		errs = append(errs, ValidationError{"source", "is not a known source"})
	}

	if input.Status != nil && !entity.IsValidStatus(*input.Status) {
		errs = append(errs, ValidationError{"status", "must be Cold, Warm or Hot"})
	}

	return errs
}
