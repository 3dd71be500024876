// Package sentinel holds the infrastructure errors stores return. Services
// translate them into coded domain errors; handlers never see them directly.
package sentinel

import "errors"

var (
	// ErrNotFound means the requested key has no row.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyUsed means a unique key (a provider id) is taken.
	ErrAlreadyUsed = errors.New("already used")
)
