package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldError is one entry of the details list on a validation failure.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// humanize turns "student_id" into "Student Id". A Caser is not safe for
// concurrent use, so one is built per call.
func humanize(field string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(field, "_", " "))
}

func fieldMessage(e validator.FieldError) string {
	name := humanize(e.Field())
	switch e.Tag() {
	case "required":
		return name + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, e.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", name, e.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", name, e.Param())
	default:
		return name + " is invalid"
	}
}

// MapValidationError converts a binding error into an AppError whose message
// describes the first failing field and whose details list every failure.
// Field names come from json tags (see Init).
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return New(CodeInvalidInput, "Invalid input", http.StatusBadRequest)
	}

	details := make([]FieldError, 0, len(errs))
	for _, e := range errs {
		details = append(details, FieldError{Field: e.Field(), Rule: e.Tag(), Param: e.Param()})
	}
	return New(CodeInvalidInput, fieldMessage(errs[0]), http.StatusBadRequest).WithDetails(details)
}
