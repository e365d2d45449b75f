package models

import "errors"

// Errors returned by the repositories and services. Storage errors are
// translated into these before they leave the database layer.
var (
	ErrNotFound             = errors.New("record not found")
	ErrUniqueViolation      = errors.New("uniqueness violation")
	ErrReferentialIntegrity = errors.New("referential integrity violation")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrForbidden            = errors.New("not allowed")
	ErrSelfFollow           = errors.New("cannot follow yourself")
	ErrInvalidInput         = errors.New("invalid input")
)
