// Package provider holds the error taxonomy shared by the external data
// provider clients. Collectors use it to log upstream API failures (a response
// arrived, status was non-2xx) distinctly from transport failures (no response
// at all).
package provider

import (
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody caps how much of an error response body is kept for logging.
const maxErrorBody = 1 << 10

// APIError is a non-2xx response from an upstream provider.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error: status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// NewAPIError builds an APIError from a response, consuming a bounded prefix
// of its body. The caller keeps responsibility for closing the body.
func NewAPIError(providerName string, resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &APIError{
		Provider:   providerName,
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
}
