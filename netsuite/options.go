package netsuite

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/suitegate/go-suitetalk/cache"
	"github.com/suitegate/go-suitetalk/soap"
	"github.com/suitegate/go-suitetalk/soap/passport"
	"github.com/suitegate/go-suitetalk/soap/transport"
)

// Option configures a Client at construction.
type Option func(*Client)

// WithSandbox selects between the sandbox (default) and production
// environments.
func WithSandbox(sandbox bool) Option {
	return func(c *Client) { c.sandbox = sandbox }
}

// WithVersion sets the endpoint version. Must be MAJOR.MINOR.MICRO, e.g.
// "2017.2.0".
func WithVersion(version string) Option {
	return func(c *Client) { c.version = version }
}

// WithWSDLURL overrides the generated WSDL location entirely. The sandbox
// flag and version no longer influence where the client connects, though
// the version still determines schema URNs.
func WithWSDLURL(url string) Option {
	return func(c *Client) { c.wsdlURLOverride = url }
}

// WithCache overrides the default SQLite schema cache. The client does not
// close a provided cache.
func WithCache(sc cache.Cache) Option {
	return func(c *Client) { c.cacheOverride = sc }
}

// WithHTTPClient supplies the underlying *http.Client, e.g. one with
// custom proxy or TLS settings.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTransportOptions appends options for the HTTP transport, such as
// transport.WithTrace or transport.WithTimeout.
func WithTransportOptions(opts ...transport.HTTPTransportOption) Option {
	return func(c *Client) { c.transportOpts = append(c.transportOpts, opts...) }
}

// WithLogger sets the structured logger. Nil (the default) discards logs.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithClock injects the time source used for passport signatures and
// breaker timing.
func WithClock(clk Clock) Option {
	return func(c *Client) { c.clock = clk }
}

// WithPassport overrides the authentication provider derived from Config.
// Credential fields in Config are then ignored.
func WithPassport(p passport.Provider) Option {
	return func(c *Client) { c.passport = p }
}

// WithRetryPolicy replaces DefaultRetryPolicy. A policy with MaxAttempts
// of 1 disables retries.
func WithRetryPolicy(p *RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// WithCircuitBreakerPolicy replaces DefaultCircuitBreakerPolicy. Pass a
// policy with Enabled false to run without lockout protection.
func WithCircuitBreakerPolicy(p *CircuitBreakerPolicy) Option {
	return func(c *Client) { c.breakerPolicy = p }
}

// WithConcurrencyLimit caps concurrent requests. Set it to the account's
// web services concurrency allowance.
func WithConcurrencyLimit(n int) Option {
	return func(c *Client) { c.concurrencyLimit = n }
}

// WithRequestQueue bounds how many requests may wait for a concurrency
// slot (-1 = unbounded) and how long each waits before giving up.
func WithRequestQueue(maxQueue int, timeout time.Duration) Option {
	return func(c *Client) {
		c.maxQueue = maxQueue
		c.acquireTimeout = timeout
	}
}

// WithPreferences attaches a request-level preferences header to every
// call.
func WithPreferences(p *soap.Preferences) Option {
	return func(c *Client) { c.preferences = p }
}

// WithSearchPreferences attaches a search preferences header to every
// call, controlling page size and column returns.
func WithSearchPreferences(p *soap.SearchPreferences) Option {
	return func(c *Client) { c.searchPrefs = p }
}
