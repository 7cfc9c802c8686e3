// Package lgmp implements the host side of a shared-memory multi-queue
// message protocol: a single publisher process manages a mapped region
// that zero or more client processes attach to and consume from.
package lgmp

import "fmt"

// Error represents a structured lgmp error with enough context to
// diagnose which operation and, where relevant, which queue produced it.
type Error struct {
	Op      string    // operation that failed (e.g. "Init", "AddQueue", "Post")
	QueueID uint32    // queue ID, meaningful only if HasQ
	HasQ    bool      // whether QueueID is meaningful
	Code    ErrorCode // high-level error category
	Msg     string    // human-readable message
	Inner   error     // wrapped error, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}
	if e.HasQ {
		return fmt.Sprintf("lgmp: %s (op=%s queue=%d)", msg, e.Op, e.QueueID)
	}
	if e.Op != "" {
		return fmt.Sprintf("lgmp: %s (op=%s)", msg, e.Op)
	}
	return fmt.Sprintf("lgmp: %s", msg)
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Inner
}

// Is supports errors.Is against both *Error (by Code) and a bare
// ErrorCode sentinel.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if code, ok := target.(ErrorCode); ok {
		return e.Code == code
	}
	if te, ok := target.(*Error); ok {
		return e.Code == te.Code
	}
	return false
}

// ErrorCode represents a high-level error category. It also implements
// error, so callers may compare with errors.Is(err, CodeQueueFull)
// directly without constructing an *Error.
type ErrorCode string

func (c ErrorCode) Error() string { return string(c) }

const (
	CodeClockFailure      ErrorCode = "clock failure"
	CodeInvalidSize       ErrorCode = "invalid region size"
	CodeNoMem             ErrorCode = "insufficient host memory"
	CodeHostStarted       ErrorCode = "host already started"
	CodeNoQueues          ErrorCode = "queue table full"
	CodeNoSharedMem       ErrorCode = "insufficient shared memory"
	CodeQueueFull         ErrorCode = "queue full"
	CodeInvalidSubscriber ErrorCode = "subscriber bit out of range"
)

func newError(op string, code ErrorCode, msg string) *Error {
	return &Error{Op: op, Code: code, Msg: msg}
}

func newQueueError(op string, queueID uint32, code ErrorCode, msg string) *Error {
	return &Error{Op: op, QueueID: queueID, HasQ: true, Code: code, Msg: msg}
}

// IsCode reports whether err (or something it wraps) carries the given
// ErrorCode.
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code == code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
