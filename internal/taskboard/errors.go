package taskboard

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized matches every AuthError through errors.Is
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBoardNotInTeam is returned when a board id does not belong to
	// the current team's board set.
	ErrBoardNotInTeam = errors.New("board does not belong to team")
)

// AuthReason says why a credential was refused
type AuthReason string

const (
	AuthMissing  AuthReason = "missing"
	AuthExpired  AuthReason = "expired"
	AuthRejected AuthReason = "rejected"
)

// AuthError means the stored credential is missing, expired or was
// rejected by the board service. It is never retried.
type AuthError struct {
	Reason AuthReason
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("credential %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("credential %s", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrUnauthorized) hold for any AuthError.
func (e *AuthError) Is(target error) bool {
	return target == ErrUnauthorized
}

// FetchError is any transport or data-layer failure talking to the board
// service. Status is the HTTP status when one was received.
type FetchError struct {
	Op     string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsAuth reports whether err carries an AuthError.
func IsAuth(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}
