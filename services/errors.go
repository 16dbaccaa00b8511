package services

import "errors"

// Sentinel errors returned by the service layer. Controllers map these onto
// HTTP statuses; wrap with fmt.Errorf("...: %w", Err...) to add context.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrUnauthorized    = errors.New("invalid credentials")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUpstream        = errors.New("upstream request failed")
)
