package service

import "errors"

var (
	// ErrInvalidDataProvided indicates that required credential fields were
	// empty or malformed.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongPassword indicates that the supplied password does not match
	// the stored hash.
	ErrWrongPassword = errors.New("wrong password")

	// ErrTokenCreationFailed indicates that JWT generation failed.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrTokenIsExpiredOrInvalid is the normalised result of any JWT
	// validation failure: expired, wrong issuer, bad signature, malformed.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrVersionIsNotSpecified indicates that the application version was
	// not configured at startup.
	ErrVersionIsNotSpecified = errors.New("version is not specified")
)
