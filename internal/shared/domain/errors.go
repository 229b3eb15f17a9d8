package domain

import "errors"

// Error taxonomy shared by every bounded context. Concrete errors wrap one of
// these sentinels so callers can branch with errors.Is.
var (
	// ErrValidation marks malformed or missing required input to a mutation.
	ErrValidation = errors.New("validation failed")
	// ErrAuthorization marks an actor lacking the role a mutation requires.
	ErrAuthorization = errors.New("not authorized")
	// ErrNotFound marks a lookup of an unknown identifier.
	ErrNotFound = errors.New("not found")
	// ErrPersistence marks a write the external store rejected or never acknowledged.
	ErrPersistence = errors.New("persistence failed")
	// ErrUpstreamService marks a failed or empty response from the text-generation service.
	ErrUpstreamService = errors.New("upstream service unavailable")
)
