package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "provider-registry/pkg/domain-errors"
)

type sample struct {
	Name string `json:"name" validate:"required,max=5"`
	Code string `json:"code" validate:"omitempty,printascii"`
}

func TestStruct(t *testing.T) {
	t.Run("valid struct passes", func(t *testing.T) {
		require.NoError(t, Struct(sample{Name: "ok"}))
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := Struct(sample{Name: "", Code: "é"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Contains(t, err.Error(), "name is required")
		assert.Contains(t, err.Error(), "code must contain printable ASCII only")
	})

	t.Run("max counts characters", func(t *testing.T) {
		err := Struct(sample{Name: "toolong"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name must be at most 5 characters")
	})
}
