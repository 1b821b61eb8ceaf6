package netsuite

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/suitegate/go-suitetalk/cache"
	"github.com/suitegate/go-suitetalk/soap"
	"github.com/suitegate/go-suitetalk/soap/passport"
	"github.com/suitegate/go-suitetalk/soap/transport"
	"github.com/suitegate/go-suitetalk/wsdl"
)

const (
	// DefaultVersion is the SuiteTalk endpoint version used when no
	// WithVersion option is given.
	DefaultVersion = "2017.2.0"

	// DefaultConcurrencyLimit matches the web services concurrency
	// allowance of a standard account tier.
	DefaultConcurrencyLimit = 5
)

// Client is a high-level SuiteTalk client bound to one account and one
// endpoint version.
//
// Construction validates configuration only; the WSDL fetch, schema cache,
// transport and service binding are built lazily on first use and then
// memoized for the life of the client. Explicit overrides (WithWSDLURL,
// WithCache, WithHTTPClient) are used as-is and never rebuilt.
type Client struct {
	config     Config
	sandbox    bool
	version    string
	urnVersion string

	logger *slog.Logger
	clock  Clock

	passport      passport.Provider
	retry         *RetryPolicy
	breakerPolicy *CircuitBreakerPolicy
	breaker       *CircuitBreaker
	semaphore     *requestSemaphore
	preferences   *soap.Preferences
	searchPrefs   *soap.SearchPreferences

	wsdlURLOverride string
	cacheOverride   cache.Cache
	httpClient      *http.Client
	transportOpts   []transport.HTTPTransportOption

	concurrencyLimit int
	maxQueue         int
	acquireTimeout   time.Duration

	wsdlOnce sync.Once
	wsdlURL  string
	hostOnce sync.Once
	hostname string

	mu        sync.Mutex
	cache     cache.Cache
	ownsCache bool
	transport *transport.HTTPTransport
	svc       *soap.Client
	def       *wsdl.Definition
	factories map[string]*soap.Factory
}

// New creates a client for the given account configuration.
//
// Defaults: sandbox endpoints, version 2017.2.0, an SQLite schema cache
// under the user cache directory, DefaultRetryPolicy, and the credential
// breaker from DefaultCircuitBreakerPolicy.
func New(cfg Config, opts ...Option) (*Client, error) {
	c := &Client{
		config:           cfg,
		sandbox:          true,
		version:          DefaultVersion,
		clock:            realClock{},
		concurrencyLimit: DefaultConcurrencyLimit,
		maxQueue:         -1,
		factories:        make(map[string]*soap.Factory),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := wsdl.ValidateVersion(c.version); err != nil {
		return nil, err
	}
	urnVersion, err := wsdl.EndpointVersion(c.version)
	if err != nil {
		return nil, err
	}
	c.urnVersion = urnVersion

	if c.passport == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		p, err := cfg.Passport()
		if err != nil {
			return nil, err
		}
		if tp, ok := p.(*passport.TokenPassport); ok {
			tp.Clock = c.clock
		}
		c.passport = p
	}

	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.retry == nil {
		c.retry = DefaultRetryPolicy()
	}

	policy := c.breakerPolicy
	if policy == nil {
		policy = DefaultCircuitBreakerPolicy()
	}
	c.breaker = NewCircuitBreaker(policy)
	c.breaker.clock = c.clock

	c.semaphore = newRequestSemaphore(c.concurrencyLimit, c.maxQueue, c.acquireTimeout)

	return c, nil
}

// String renders the client as "<NetSuite {hostname}({version})>".
func (c *Client) String() string {
	return fmt.Sprintf("<NetSuite %s(%s)>", c.Hostname(), c.version)
}

// Version returns the configured endpoint version, e.g. "2017.2.0".
func (c *Client) Version() string {
	return c.version
}

// Sandbox reports whether the client targets the sandbox environment.
func (c *Client) Sandbox() bool {
	return c.sandbox
}

// Config returns the account configuration.
func (c *Client) Config() Config {
	return c.config
}

// WSDLURL returns the WSDL location: the WithWSDLURL override when given,
// otherwise the generated environment URL.
func (c *Client) WSDLURL() string {
	c.wsdlOnce.Do(func() {
		if c.wsdlURLOverride != "" {
			c.wsdlURL = c.wsdlURLOverride
			return
		}
		// Version was validated in New, so this cannot fail.
		u, _ := wsdl.URL(c.version, c.sandbox)
		c.wsdlURL = u
	})
	return c.wsdlURL
}

// Hostname returns the host of the WSDL URL.
func (c *Client) Hostname() string {
	c.hostOnce.Do(func() {
		c.hostname = wsdl.Hostname(c.WSDLURL())
	})
	return c.hostname
}

// Transport returns the HTTP transport, building it on first use.
func (c *Client) Transport() *transport.HTTPTransport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transportLocked()
}

func (c *Client) transportLocked() *transport.HTTPTransport {
	if c.transport == nil {
		opts := []transport.HTTPTransportOption{transport.WithLogger(c.logger)}
		if c.httpClient != nil {
			opts = append(opts, transport.WithHTTPClient(c.httpClient))
		}
		opts = append(opts, c.transportOpts...)
		c.transport = transport.NewHTTPTransport(opts...)
	}
	return c.transport
}

// schemaCacheLocked returns the document cache, creating the default
// SQLite cache on first use. Caller holds c.mu.
func (c *Client) schemaCacheLocked() (cache.Cache, error) {
	if c.cache != nil {
		return c.cache, nil
	}
	if c.cacheOverride != nil {
		c.cache = c.cacheOverride
		return c.cache, nil
	}

	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	sqlite, err := cache.NewSQLiteCache(filepath.Join(dir, "suitetalk", "schemas.db"), cache.DefaultTimeout)
	if err != nil {
		return nil, fmt.Errorf("netsuite: open schema cache: %w", err)
	}
	c.cache = sqlite
	c.ownsCache = true
	return c.cache, nil
}

// Definition returns the parsed WSDL, fetched through the schema cache on
// first use. A fetch failure is not memoized; the next call retries.
func (c *Client) Definition(ctx context.Context) (*wsdl.Definition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.definitionLocked(ctx)
}

func (c *Client) definitionLocked(ctx context.Context) (*wsdl.Definition, error) {
	if c.def != nil {
		return c.def, nil
	}

	schemaCache, err := c.schemaCacheLocked()
	if err != nil {
		// The cache only saves refetches; resolve the WSDL without it.
		c.logger.WarnContext(ctx, "schema cache unavailable", "error", err)
		schemaCache = nil
	}

	loader := wsdl.NewLoader(c.transportLocked(), schemaCache, c.logger)
	def, err := loader.Load(ctx, c.WSDLURL())
	if err != nil {
		return nil, err
	}
	c.def = def
	return c.def, nil
}

// service returns the SOAP client bound to the service address the WSDL
// advertises.
func (c *Client) service(ctx context.Context) (*soap.Client, *wsdl.Definition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	def, err := c.definitionLocked(ctx)
	if err != nil {
		return nil, nil, err
	}

	if c.svc == nil {
		endpoint := def.ServiceAddress
		if endpoint == "" {
			endpoint = fmt.Sprintf("https://%s/services/NetSuitePort_%s", c.Hostname(), c.urnVersion)
		}
		c.svc = soap.NewClient(endpoint, c.transportLocked())
	}
	return c.svc, def, nil
}

// Close releases held resources: the schema cache when the client created
// it, and idle transport connections.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	if c.ownsCache && c.cache != nil {
		err = c.cache.Close()
	}
	c.cache = nil
	c.ownsCache = false

	if c.transport != nil {
		c.transport.CloseIdleConnections()
	}
	return err
}
