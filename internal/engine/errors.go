// Package engine holds the booking, cancellation and credit-settlement rules.
// Nothing here touches storage: callers hand in the records a decision depends on
// and apply the mutations that come back.
package engine

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeDuplicateSession    Code = "DUPLICATE_SESSION"
	CodeCancellationLocked  Code = "CANCELLATION_LOCKED"
	CodeInsufficientCredits Code = "INSUFFICIENT_CREDITS"
	CodeInvalidUser         Code = "INVALID_USER"
	CodeNotFound            Code = "NOT_FOUND"
	CodeInvalidInput        Code = "INVALID_INPUT"
)

// Error is a recoverable rule violation. Two errors match under errors.Is
// when their codes are equal, so the package-level values work as sentinels
// even when the message was specialised.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrDuplicateSession    = &Error{Code: CodeDuplicateSession, Message: "A session with this name, date, and time already exists."}
	ErrCancellationLocked  = &Error{Code: CodeCancellationLocked, Message: "Cancellations are locked within 30 minutes of the session starting."}
	ErrInsufficientCredits = &Error{Code: CodeInsufficientCredits, Message: "Insufficient credits. Please purchase more."}
	ErrInvalidUser         = &Error{Code: CodeInvalidUser, Message: "Invalid user."}
	ErrNotFound            = &Error{Code: CodeNotFound, Message: "Session or user not found."}
	ErrInvalidInput        = &Error{Code: CodeInvalidInput, Message: "Invalid input."}
)

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the rule code carried by err, or "" when err is not a rule violation.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

type Outcome string

const (
	OutcomeBooked     Outcome = "BOOKED"
	OutcomeWaitlisted Outcome = "WAITLISTED"
	OutcomeCancelled  Outcome = "CANCELLED"
	OutcomeAttended   Outcome = "ATTENDED"
	OutcomeRejected   Outcome = "REJECTED"
)

// Result is what a caller shows to the person who triggered the action.
type Result struct {
	Success bool    `json:"success"`
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message"`
}

// Failure renders err as an unsuccessful result.
func Failure(err error) Result {
	return Result{Success: false, Outcome: OutcomeRejected, Message: err.Error()}
}
