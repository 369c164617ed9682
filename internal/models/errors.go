package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrScoreNotFound is returned by the score store when an update targets a
// player with no recorded matches.
var ErrScoreNotFound = errors.New("no score record for player")

// ValidationError reports a caller mistake (bad sort key, malformed filter).
// It is never retried and always carries the actionable detail.
type ValidationError struct {
	Field     string   `json:"field"`
	Message   string   `json:"message"`
	ValidKeys []string `json:"valid_keys,omitempty"`
}

func (e *ValidationError) Error() string {
	if len(e.ValidKeys) > 0 {
		return fmt.Sprintf("%s: %s (valid: %s)", e.Field, e.Message, strings.Join(e.ValidKeys, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewInvalidSortKeyError builds the canonical bad-sort-key error with the
// full valid set attached.
func NewInvalidSortKeyError(key string) *ValidationError {
	return &ValidationError{
		Field:     "sortKey",
		Message:   fmt.Sprintf("unknown sort key %q", key),
		ValidKeys: ValidSortKeys,
	}
}

// UpstreamError reports a failure in a collaborator (score store, identity
// service, trivia API). The composer surfaces it unchanged rather than
// substituting a best-effort result.
type UpstreamError struct {
	Status  int
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsUpstreamError unwraps err into an *UpstreamError if it is one.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
