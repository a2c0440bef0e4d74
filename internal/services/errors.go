package services

// ErrorKind tags a domain error so the HTTP boundary can map it to a
// status code without matching on message text.
type ErrorKind int

const (
	// KindConflict is a business-rule collision (occupied slot,
	// illegal state transition, referenced catalog row).
	KindConflict ErrorKind = iota
	// KindInvalidInput is a malformed or out-of-range value.
	KindInvalidInput
	// KindInactiveActor is a booking that references an inactive
	// patient or clinician.
	KindInactiveActor
	// KindNotFound is a reference to a row that does not exist.
	KindNotFound
	// KindInternal is anything unexpected; detail is logged, not
	// surfaced.
	KindInternal
)

// Error is a domain error with a user-facing message. The message is
// safe to return verbatim to the client for every kind except
// KindInternal.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrConflict builds a business-rule violation error.
func ErrConflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// ErrInvalidInput builds a validation error.
func ErrInvalidInput(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

// ErrInactiveActor builds an inactive patient/clinician error.
func ErrInactiveActor(msg string) *Error {
	return &Error{Kind: KindInactiveActor, Message: msg}
}

// ErrNotFound builds a missing-row error.
func ErrNotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// ErrInternal wraps an unexpected failure.
func ErrInternal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}
