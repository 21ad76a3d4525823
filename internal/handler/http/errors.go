package http

import "errors"

// Sentinel errors used by the authentication middleware and the sync
// handlers when parsing request inputs. Callers can match against them
// with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but cannot be split into at least two space-separated
	// parts (i.e. the token value is missing entirely).
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	// ErrMissingLastSync is returned when a pull request omits the required
	// last_sync query parameter.
	ErrMissingLastSync = errors.New("missing `last_sync` query parameter")

	// ErrInvalidLastSync is returned when the last_sync query parameter is
	// not an RFC 3339 timestamp.
	ErrInvalidLastSync = errors.New("invalid `last_sync` query parameter, want RFC 3339 timestamp")
)
