package reels

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DurationProvider supplies the delay value that sets how long a spin lasts.
// The value is unitless; Config.DurationScale turns it into milliseconds.
type DurationProvider interface {
	SpinDelay(ctx context.Context) (float64, error)
}

// DurationFetchError is returned when the delay could not be obtained or was
// not a positive number.
type DurationFetchError struct {
	URL string
	Err error
}

func (e *DurationFetchError) Error() string {
	if e.URL == "" {
		return "fetch spin delay: " + e.Err.Error()
	}
	return fmt.Sprintf("fetch spin delay from %s: %v", e.URL, e.Err)
}

func (e *DurationFetchError) Unwrap() error { return e.Err }

// delayResponse is the wire format of the delay endpoint.
type delayResponse struct {
	Delay *float64 `json:"delay"`
}

// DefaultMaxDelay is the largest delay accepted unless configured otherwise.
const DefaultMaxDelay = 60

// HTTPDelayProvider fetches {"delay": n} from a fixed URL. Delays above
// MaxDelay are rejected; zero means DefaultMaxDelay.
type HTTPDelayProvider struct {
	URL      string
	Client   *http.Client
	MaxDelay float64
}

// NewHTTPDelayProvider creates a provider using http.DefaultClient.
func NewHTTPDelayProvider(url string) *HTTPDelayProvider {
	return &HTTPDelayProvider{URL: url, Client: http.DefaultClient, MaxDelay: DefaultMaxDelay}
}

// SpinDelay performs one GET request. Deadlines come from ctx.
func (p *HTTPDelayProvider) SpinDelay(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return 0, &DurationFetchError{URL: p.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, &DurationFetchError{URL: p.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, &DurationFetchError{URL: p.URL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var body delayResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err != nil {
		return 0, &DurationFetchError{URL: p.URL, Err: fmt.Errorf("decode response: %w", err)}
	}
	if body.Delay == nil {
		return 0, &DurationFetchError{URL: p.URL, Err: fmt.Errorf("response has no delay field")}
	}
	d := *body.Delay
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, &DurationFetchError{URL: p.URL, Err: fmt.Errorf("delay must be finite, got %g", d)}
	}
	if d <= 0 {
		return 0, &DurationFetchError{URL: p.URL, Err: fmt.Errorf("delay must be positive, got %g", d)}
	}
	limit := p.MaxDelay
	if limit <= 0 {
		limit = DefaultMaxDelay
	}
	if d > limit {
		return 0, &DurationFetchError{URL: p.URL, Err: fmt.Errorf("delay %g exceeds maximum %g", d, limit)}
	}
	return d, nil
}

// StaticDelay always returns its own value. Non-positive values fail the same
// way a bad server response would.
type StaticDelay float64

func (d StaticDelay) SpinDelay(context.Context) (float64, error) {
	if d <= 0 {
		return 0, &DurationFetchError{Err: fmt.Errorf("delay must be positive, got %g", float64(d))}
	}
	return float64(d), nil
}

// DelayFunc adapts a function to DurationProvider.
type DelayFunc func(ctx context.Context) (float64, error)

func (f DelayFunc) SpinDelay(ctx context.Context) (float64, error) { return f(ctx) }
