package footballdata

import (
	"net/http"
	"time"

	"github.com/s0up4200/matchboard/scheduler"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL        string
	proxyURL       string
	httpClient     *http.Client
	timeout        time.Duration
	minInterval    time.Duration
	quotaPerMinute int
	recorder       scheduler.Recorder
	userAgent      string
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:     DefaultBaseURL,
		minInterval: scheduler.DefaultMinInterval,
		userAgent:   "matchboard",
	}
}

// WithBaseURL overrides the provider URL used in direct mode.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithProxy switches the client to proxy mode, sending every request to
// proxyURL instead of the provider.
func WithProxy(proxyURL string) Option {
	return func(o *clientOptions) {
		o.proxyURL = proxyURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithTimeout bounds each network call. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout >= 0 {
			o.timeout = timeout
		}
	}
}

// WithMinInterval sets the minimum spacing between two requests.
func WithMinInterval(d time.Duration) Option {
	return func(o *clientOptions) {
		if d >= 0 {
			o.minInterval = d
		}
	}
}

// WithQuota caps the number of requests per minute. Zero disables the cap.
func WithQuota(perMinute int) Option {
	return func(o *clientOptions) {
		o.quotaPerMinute = perMinute
	}
}

// WithRecorder attaches a metrics recorder to the request queue.
func WithRecorder(r scheduler.Recorder) Option {
	return func(o *clientOptions) {
		o.recorder = r
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}
