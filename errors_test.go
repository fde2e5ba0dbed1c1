package commits

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		target   error
		expected bool
	}{
		// Direct sentinel errors
		{"ErrNotRepository direct", ErrNotRepository, ErrNotRepository, true},
		{"ErrInvalidOptions direct", ErrInvalidOptions, ErrInvalidOptions, true},
		{"ErrInvalidRef direct", ErrInvalidRef, ErrInvalidRef, true},
		{"ErrResolveFailed direct", ErrResolveFailed, ErrResolveFailed, true},
		{"ErrStop direct", ErrStop, ErrStop, true},

		// Wrapped errors
		{"ErrNotRepository wrapped", WrapError(ErrNotRepository, "context"), ErrNotRepository, true},
		{"ErrResolveFailed wrapped", WrapErrorf(ErrResolveFailed, "context %s", "arg"), ErrResolveFailed, true},

		// Non-matching errors
		{"ErrNotRepository vs ErrInvalidRef", ErrNotRepository, ErrInvalidRef, false},
		{"ErrResolveFailed vs ErrStop", ErrResolveFailed, ErrStop, false},

		// Nil handling
		{"WrapError with nil", WrapError(nil, "context"), ErrNotRepository, false},
		{"WrapErrorf with nil", WrapErrorf(nil, "context"), ErrNotRepository, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := errors.Is(tt.err, tt.target)
			assert.Equal(t, tt.expected, result,
				"errors.Is(%v, %v) should be %v", tt.err, tt.target, tt.expected)
		})
	}
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		msg      string
		expected string
	}{
		{"wraps with context", ErrNotRepository, "open /tmp/x", "open /tmp/x: not a git repository"},
		{"nil stays nil", nil, "ignored", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapError(tt.err, tt.msg)
			if tt.err == nil {
				assert.NoError(t, wrapped)
				return
			}
			assert.Equal(t, tt.expected, wrapped.Error())
		})
	}
}

func TestWrapErrorf(t *testing.T) {
	wrapped := WrapErrorf(ErrResolveFailed, "failed to resolve %q", "feature/x")
	assert.Equal(t, `failed to resolve "feature/x": cannot resolve revision`, wrapped.Error())
}
