package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	StatusActivated   = "activated"
	StatusDeactivated = "deactivated"
)

var (
	MessageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageFailedTokenNotFound  = "failed to token not found"
	MessageInternalError        = "internal server error"
)

// Error kinds. Every error returned by a service wraps exactly one of these.
var (
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUpstream        = errors.New("upstream error")
	ErrInternal        = errors.New("internal error")
)

var (
	ErrParseUUID      = fmt.Errorf("%w: failed to parse UUID", ErrValidation)
	ErrUserNotAllowed = fmt.Errorf("%w: user not allowed", ErrForbidden)
	ErrTokenNotFound  = fmt.Errorf("%w: token not found", ErrUnauthenticated)
	ErrTokenInvalid   = fmt.Errorf("%w: token invalid", ErrUnauthenticated)
	ErrTokenExpired   = fmt.Errorf("%w: token expired", ErrUnauthenticated)
)

// Identity is the verified claim the auth middleware attaches to a request.
type Identity struct {
	AccountID uuid.UUID
	Email     string
	Role      string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// FieldErrors lists the violated rules per request field.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field string, rules ...string) {
	f[field] = append(f[field], rules...)
}

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for field, rules := range f {
		parts = append(parts, field+": "+strings.Join(rules, ","))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (f FieldErrors) Unwrap() error {
	return ErrValidation
}

func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, ErrParseUUID
	}
	return id, nil
}

var errorKinds = []error{
	ErrValidation,
	ErrUnauthenticated,
	ErrForbidden,
	ErrNotFound,
	ErrConflict,
	ErrUpstream,
	ErrInternal,
}

// KindOf returns the taxonomy sentinel err wraps, or nil for errors from outside the domain.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range errorKinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
