package proto

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Is(t *testing.T) {
	err := ErrMissingToken.WithCausef("token was empty")
	assert.True(t, errors.Is(err, ErrMissingToken))
	assert.False(t, errors.Is(err, ErrMissingValidationID))
	assert.False(t, errors.Is(err, ErrInternal))

	wrapped := fmt.Errorf("start di: %w", err)
	assert.True(t, errors.Is(wrapped, ErrMissingToken))
}

func TestError_WithCausef(t *testing.T) {
	cause := io.ErrUnexpectedEOF
	err := ErrInternal.WithCausef("read frame: %w", cause)

	require.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "read frame")
	assert.Contains(t, err.Error(), "InternalError")

	// The original value stays pristine.
	assert.Nil(t, ErrInternal.Unwrap())
}

func TestError_WithCause(t *testing.T) {
	cause := errors.New("boom")
	err := ErrInternal.WithCause(cause)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestValidationStatus_Valid(t *testing.T) {
	tests := []struct {
		status ValidationStatus
		valid  bool
	}{
		{ValidationStatus_Succeeded, true},
		{ValidationStatus_Failed, true},
		{ValidationStatus_Pending, true},
		{ValidationStatus(""), false},
		{ValidationStatus("SUCCEEDED"), false},
		{ValidationStatus("done"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.Valid())
		})
	}
}
