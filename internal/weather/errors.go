package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the mock file path does not exist.
	ErrNotFound = errors.New("mock file not found")

	// ErrParse is returned when a provider document or mock file is not valid JSON.
	ErrParse = errors.New("invalid json")

	// ErrTimeout is returned when the provider does not respond within the request timeout.
	ErrTimeout = errors.New("request timeout: server took too long to respond")

	// ErrNetwork covers transport-level failures (DNS, refused connections, TLS).
	ErrNetwork = errors.New("network failure")

	// ErrSchema is returned when a provider document is missing an expected field.
	ErrSchema = errors.New("unexpected provider response shape")

	// ErrNoAPIKey is returned when live mode is requested without a configured key.
	ErrNoAPIKey = errors.New("WEATHER_KEY is not set")
)

// HTTPError reports a non-success status from the provider. BodyPrefix holds
// at most 200 bytes of the response body.
type HTTPError struct {
	StatusCode int
	BodyPrefix string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error %d: %s", e.StatusCode, e.BodyPrefix)
}

// ProviderError reports a logical failure carried inside a 200 response,
// such as an unknown city or a rejected key.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return "api error: " + e.Message
}
