package models

import (
	dErrors "provider-registry/pkg/domain-errors"
)

// Numeric result codes kept compatible with the registry's original contract
// interface, where failures were reported as {err: code}.
const (
	ResultUnauthorized          uint32 = 1
	ResultProviderAlreadyExists uint32 = 2
	ResultProviderNotFound      uint32 = 3
	ResultInvalidInput          uint32 = 4
)

// ResultCode maps a service error to its numeric result code, or 0 when the
// error is not part of the registry taxonomy.
func ResultCode(err error) uint32 {
	code, ok := dErrors.CodeOf(err)
	if !ok {
		return 0
	}
	switch code {
	case dErrors.CodeForbidden, dErrors.CodeUnauthorized:
		return ResultUnauthorized
	case dErrors.CodeConflict:
		return ResultProviderAlreadyExists
	case dErrors.CodeNotFound:
		return ResultProviderNotFound
	case dErrors.CodeValidation, dErrors.CodeInvalidInput:
		return ResultInvalidInput
	default:
		return 0
	}
}
