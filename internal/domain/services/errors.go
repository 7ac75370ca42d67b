package services

import (
	"errors"
	"fmt"

	"github.com/manjito26/ESTOP-System/internal/domain/models"
)

// Typed outcomes returned by the services. Controllers map these onto
// the error-code table; services never swallow them.
var (
	// ErrNotPermitted means the actor's role lacks permission. It is
	// returned before any store is touched and carries no detail
	// about which permission was missing.
	ErrNotPermitted = errors.New("not permitted")
	// ErrNotFound means the target id/username does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists means a unique key is already taken.
	ErrAlreadyExists = errors.New("already exists")
	// ErrSelfDelete means an admin tried to delete their own account.
	ErrSelfDelete = errors.New("cannot delete own account")
	// ErrBadCredentials means the username/password pair did not
	// match. Deliberately the same for unknown user and wrong
	// password.
	ErrBadCredentials = errors.New("incorrect username or password")
	// ErrStoreUnavailable means the backing store is unreachable.
	// Retryable; never silently turned into an empty result.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError rejects malformed or out-of-enum input before it
// reaches storage.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Actor is the per-request identity supplied by the authentication
// layer. It is never cached across requests; the role is re-read from
// the token on every call.
type Actor struct {
	Username string
	Role     models.Role
}
