// Package domain holds the typed identifiers shared across the registry.
//
// Identifiers are parsed once at trust boundaries (HTTP handlers, CLI) and carried
// as distinct types afterwards so a ProviderID can never be passed where a
// Principal is expected.
package domain

import (
	"strings"

	dErrors "provider-registry/pkg/domain-errors"
)

const (
	MaxProviderIDLength = 64
	MaxPrincipalLength  = 128
)

// ProviderID is the opaque, caller-chosen key of a provider record.
type ProviderID string

// Principal is the authenticated identity of a caller. It is the ownership key
// of every provider record.
type Principal string

func (p ProviderID) String() string { return string(p) }

func (p ProviderID) IsZero() bool { return p == "" }

func (p Principal) String() string { return string(p) }

func (p Principal) IsZero() bool { return p == "" }

// ParseProviderID trims and validates a provider identifier.
func ParseProviderID(s string) (ProviderID, error) {
	v, err := parseToken(s, "provider_id", MaxProviderIDLength)
	if err != nil {
		return "", err
	}
	return ProviderID(v), nil
}

// ParsePrincipal trims and validates a caller identity.
func ParsePrincipal(s string) (Principal, error) {
	v, err := parseToken(s, "principal", MaxPrincipalLength)
	if err != nil {
		return "", err
	}
	return Principal(v), nil
}

// parseToken accepts ASCII letters, digits and the separators - _ . : @
func parseToken(s, field string, maxLen int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	if len(s) > maxLen {
		return "", dErrors.New(dErrors.CodeInvalidInput, field+" is too long")
	}
	for i := 0; i < len(s); i++ {
		if !isTokenByte(s[i]) {
			return "", dErrors.New(dErrors.CodeInvalidInput, field+" contains invalid characters")
		}
	}
	return s, nil
}

func isTokenByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == ':', c == '@':
		return true
	}
	return false
}
