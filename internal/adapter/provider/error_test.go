package provider

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responseWith(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNewAPIError(t *testing.T) {
	err := NewAPIError("openweathermap", responseWith(http.StatusUnauthorized, `{"message": "Invalid API key"}`))

	assert.Equal(t, "openweathermap", err.Provider)
	assert.Equal(t, http.StatusUnauthorized, err.StatusCode)
	assert.Contains(t, err.Body, "Invalid API key")
	assert.Contains(t, err.Error(), "status 401")
}

func TestNewAPIError_TruncatesLongBody(t *testing.T) {
	long := strings.Repeat("x", 4096)
	err := NewAPIError("ticketmaster", responseWith(http.StatusInternalServerError, long))

	require.Len(t, err.Body, maxErrorBody)
}
