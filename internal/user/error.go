package user

import "errors"

var (
	ErrEmailExists        = errors.New("user already exists with this email")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrWeakPassword       = errors.New("password must be at least 6 characters long")
	ErrMissingFields      = errors.New("name, email, and password are required")

	// Postgres unique violation code, surfaced by lib/pq
	PgUniqueViolation = "23505"
)
