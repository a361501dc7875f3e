// Package apperrors defines the sentinel errors shared between the storage
// layer and the HTTP handlers. Handlers translate them into flash messages
// and redirects; nothing here ever reaches a client verbatim.
package apperrors

import "errors"

var (
	// ErrInvalidCredentials is returned when a username/password pair does
	// not match a stored user.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUserNotFound is returned when a user lookup finds no row.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUsername is returned when registration or a profile edit
	// would violate username uniqueness.
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrTransactionNotFound is returned when an income or outcome lookup
	// finds no row owned by the requesting user.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrSessionInvalid is returned for missing, expired, or unknown
	// session tokens.
	ErrSessionInvalid = errors.New("session invalid or expired")
)
