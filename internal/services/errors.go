package services

import "errors"

// Error taxonomy shared by every service. Handlers translate these to HTTP
// status codes; anything else is a 500.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthenticated = errors.New("unauthenticated")
)
