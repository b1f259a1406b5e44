package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrSSH,
		ErrSource,
		ErrDiscovery,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid configuration in .qw.yaml",
			suggestion: "Check your configuration file syntax",
		},
		{
			name:       "discovery error",
			code:       ErrDiscovery,
			message:    "Source discovery failed",
			suggestion: "Check the host is reachable and the list command works",
		},
		{
			name:       "source error",
			code:       ErrSource,
			message:    "Read command returned no value",
			suggestion: "Verify the read command prints a single number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)
			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormat(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := New(ErrConfig, "Something failed", "")
		out := err.Error()
		assert.True(t, strings.HasPrefix(out, "✗ Something failed"))
		assert.NotContains(t, out, "\n\n")
	})

	t.Run("message with suggestion", func(t *testing.T) {
		err := New(ErrConfig, "Something failed", "Do the thing")
		out := err.Error()
		assert.Contains(t, out, "✗ Something failed")
		assert.Contains(t, out, "  Do the thing")
	})

	t.Run("message with cause and suggestion", func(t *testing.T) {
		cause := errors.New("dial tcp: connection refused")
		err := WrapWithCode(cause, ErrSSH, "Cannot reach host", "Check the host is up")
		out := err.Error()
		assert.Contains(t, out, "✗ Cannot reach host")
		assert.Contains(t, out, "dial tcp: connection refused")
		assert.Contains(t, out, "Check the host is up")
	})
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying failure")
	err := Wrap(cause, "Poll failed")

	assert.Equal(t, ErrSource, err.Code)
	assert.Equal(t, "Poll failed", err.Message)
	assert.Equal(t, cause, err.Cause)
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapWithCode(cause, ErrDiscovery, "Discovery failed", "")

	assert.True(t, errors.Is(err, cause))

	var structured *Error
	require.True(t, errors.As(error(err), &structured))
	assert.Equal(t, ErrDiscovery, structured.Code)
}

func TestIsCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		want bool
	}{
		{"nil error", nil, ErrConfig, false},
		{"matching code", New(ErrConfig, "bad config", ""), ErrConfig, true},
		{"different code", New(ErrSSH, "ssh failed", ""), ErrConfig, false},
		{"plain error", errors.New("plain"), ErrConfig, false},
		{"wrapped structured error", WrapWithCode(New(ErrSSH, "inner", ""), ErrDiscovery, "outer", ""), ErrDiscovery, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCode(tt.err, tt.code))
		})
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"structured without cause", New(ErrSource, "Read failed", "try again"), "Read failed"},
		{
			"structured with cause",
			Wrap(errors.New("timeout"), "Read failed"),
			"Read failed: timeout",
		},
		{"plain error", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.err))
		})
	}
}
