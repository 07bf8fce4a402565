package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized    = errors.New("authentication required")
	ErrForbidden       = errors.New("access forbidden")
	ErrArticleNotFound = errors.New("article not found")
)

// AuthenticationError is a business rejection from the datastore (bad
// credentials, duplicate username, spent invitation). Message comes from the
// datastore and is safe to show to the end user. Not retryable.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return "authentication failed: " + e.Message
}

// PoolError means no datastore connection could be acquired in time.
// Retryable.
type PoolError struct {
	Err error
}

func (e *PoolError) Error() string {
	return fmt.Sprintf("acquire connection: %v", e.Err)
}

func (e *PoolError) Unwrap() error { return e.Err }

// QueryError means the datastore rejected the shape of a call. Op names the
// call; Err may contain query detail and must only be logged.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// DispatchError means the outbound email could not be delivered to the mail
// API. StatusCode is zero for transport failures.
type DispatchError struct {
	StatusCode int
	Err        error
}

func (e *DispatchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("email dispatch: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("email dispatch: %v", e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is an infrastructure failure worth retrying.
func IsRetryable(err error) bool {
	var pe *PoolError
	return errors.As(err, &pe)
}
