package model

import (
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateRecord checks a GateRecord for constraint violations.
// It returns a *ValidationError if any rules fail, or nil if the record is valid.
func ValidateRecord(r *GateRecord) error {
	var ve ValidationError

	if r.GroupID == 0 {
		ve.Errors = append(ve.Errors, FieldError{Field: "group_id", Message: "is required"})
	}
	if r.MemberID == 0 {
		ve.Errors = append(ve.Errors, FieldError{Field: "member_id", Message: "is required"})
	}
	if !r.Phase.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "phase",
			Message: fmt.Sprintf("invalid value %q", r.Phase),
		})
	}
	if r.QuestionID == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "question_id", Message: "is required"})
	}
	if r.AttemptsRemaining < 0 {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "attempts_remaining",
			Message: fmt.Sprintf("must be non-negative, got %d", r.AttemptsRemaining),
		})
	}
	if r.Deadline.IsZero() {
		ve.Errors = append(ve.Errors, FieldError{Field: "deadline", Message: "is required"})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateQuestion checks a Question for constraint violations.
func ValidateQuestion(q *Question) error {
	var ve ValidationError

	if strings.TrimSpace(q.ID) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "id", Message: "is required"})
	}
	if strings.TrimSpace(q.Prompt) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "prompt", Message: "is required"})
	}
	if len(q.Answers) == 0 {
		ve.Errors = append(ve.Errors, FieldError{Field: "answers", Message: "at least one accepted answer is required"})
	}
	for i, a := range q.Answers {
		if strings.TrimSpace(a) == "" {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   "answers",
				Message: fmt.Sprintf("answer %d is empty", i),
			})
		}
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
