package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/vlysenko/weather-cli/internal/weather"
)

// bodyPrefixLen bounds how much of an error response body is surfaced.
const bodyPrefixLen = 200

var errNoHTTPClient = errors.New("http client not configured")

// doRequest executes a single GET through the circuit breaker and classifies
// failures into the weather error taxonomy. There are no retries: any failure
// is terminal for the invocation. The breaker only matters in serve mode,
// where the same provider is reused across many invocations.
func doRequest(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, reqURL string) ([]byte, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrNetwork, err)
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, readErr
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &weather.HTTPError{
				StatusCode: resp.StatusCode,
				BodyPrefix: truncate(body, bodyPrefixLen),
			}
		}

		return body, nil
	})
	if err != nil {
		return nil, classify(err)
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return body, nil
}

// classify maps transport errors onto the weather error taxonomy.
func classify(err error) error {
	var httpErr *weather.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: circuit breaker open: %v", weather.ErrNetwork, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return weather.ErrTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return weather.ErrTimeout
	}

	return fmt.Errorf("%w: %v", weather.ErrNetwork, err)
}

func truncate(body []byte, n int) string {
	if len(body) > n {
		body = body[:n]
	}
	return string(body)
}
