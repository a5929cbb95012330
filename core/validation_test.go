package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateChunking(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		overlap   int
		wantErr   bool
	}{
		{"valid defaults", 512, 200, false},
		{"zero overlap", 100, 0, false},
		{"zero chunk size", 0, 0, true},
		{"negative chunk size", -1, 0, true},
		{"negative overlap", 100, -1, true},
		{"overlap equals chunk size", 100, 100, true},
		{"overlap exceeds chunk size", 100, 150, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunking(tt.chunkSize, tt.overlap)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTopK(t *testing.T) {
	assert.NoError(t, ValidateTopK(1))
	assert.NoError(t, ValidateTopK(100))

	err := ValidateTopK(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.ErrorIs(t, ValidateTopK(-3), ErrInvalidArgument)
}

func TestValidateDimension(t *testing.T) {
	vec := []float32{1, 2, 3}

	t.Run("matching dimension", func(t *testing.T) {
		assert.NoError(t, ValidateDimension(vec, 3))
	})

	t.Run("zero dimension disables the check", func(t *testing.T) {
		assert.NoError(t, ValidateDimension(vec, 0))
	})

	t.Run("mismatch is a configuration error", func(t *testing.T) {
		err := ValidateDimension(vec, 4)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfiguration)
	})
}
