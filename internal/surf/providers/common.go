// Package providers contains the Open-Meteo data source adapters. Outbound
// calls go through a shared resilience wrapper: bounded retries with
// exponential backoff behind a per-provider circuit breaker.
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

const (
	maxRetries     = 2
	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 4 * time.Second
)

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errBadStatus   = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
)

// resilient bundles the shared HTTP client with a provider's circuit breaker.
type resilient struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func newResilient(client *http.Client, name string) resilient {
	return resilient{
		client: client,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 5,
			Interval:    time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}
}

// getJSON fetches the URL and decodes the JSON body into out. Rate limits and
// 5xx responses are retried with backoff; an open circuit fails fast. The
// request honors ctx cancellation throughout.
func (r resilient) getJSON(ctx context.Context, url string, out any) error {
	var lastErr error

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		result, err := r.breaker.Execute(func() (any, error) {
			resp, err := r.client.Do(req)
			if err != nil {
				return nil, err
			}
			switch {
			case resp.StatusCode == http.StatusTooManyRequests:
				resp.Body.Close()
				return nil, errRateLimited
			case resp.StatusCode >= 500:
				resp.Body.Close()
				return nil, errServerError
			case resp.StatusCode < 200 || resp.StatusCode >= 300:
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errBadStatus, resp.StatusCode)
			}
			return resp, nil
		})

		if err == nil {
			resp := result.(*http.Response)
			defer resp.Body.Close()
			return json.NewDecoder(resp.Body).Decode(out)
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		lastErr = err
		if attempt >= maxRetries {
			return lastErr
		}

		delay := initialBackoff << attempt
		if delay > maxBackoff {
			delay = maxBackoff
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
