package question

import (
	"errors"
	"fmt"
)

// Error codes shared by the bank, the store and the session runner.
const (
	// Validation errors
	CodeValidationFailed = "validation_failed"

	// Resource errors
	CodeNotFound = "not_found"

	// Data integrity errors
	CodeInvalidQuestionData = "invalid_question_data"
	CodePersistenceDecode   = "persistence_decode"

	// Session errors
	CodePreconditionFailed = "precondition_failed"
)

// Error is a classified failure. Two Errors match under errors.Is when
// their codes are equal.
type Error struct {
	Code    string
	Message string
	Field   string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches by code so wrapped instances compare equal to the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrValidation          = &Error{Code: CodeValidationFailed, Message: "invalid input"}
	ErrNotFound            = &Error{Code: CodeNotFound, Message: "question not found"}
	ErrInvalidQuestionData = &Error{Code: CodeInvalidQuestionData, Message: "stored question is malformed"}
	ErrPersistenceDecode   = &Error{Code: CodePersistenceDecode, Message: "question file is not valid JSON"}
	ErrNotEnoughActive     = &Error{Code: CodePreconditionFailed, Message: "not enough active questions"}
)

func validationError(field, msg string) error {
	return &Error{Code: CodeValidationFailed, Message: msg, Field: field}
}

// ValidationError reports malformed user input for field.
func ValidationError(field, msg string) error {
	return validationError(field, msg)
}

// NotFound reports a missing question id.
func NotFound(id int) error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("question %d not found", id)}
}

// InvalidData reports a stored question that breaks the letter mapping or type invariants.
func InvalidData(q Question, msg string) error {
	return &Error{Code: CodeInvalidQuestionData, Message: fmt.Sprintf("question %d: %s", q.ID, msg)}
}

// NotEnoughActive reports that a session cannot start with only have active questions.
func NotEnoughActive(need, have int) error {
	return &Error{
		Code:    CodePreconditionFailed,
		Message: fmt.Sprintf("add at least %d active questions to start (have %d)", need, have),
	}
}

// CodeOf extracts the code of a classified error, or "" for anything else.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
