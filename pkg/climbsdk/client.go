package climbsdk

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/climblog/pkg/eventx"
	"github.com/aussiebroadwan/climblog/pkg/securestore"
)

const (
	// DefaultBaseURL is the local development API.
	DefaultBaseURL = "http://127.0.0.1:5000"

	// DefaultTimeout bounds each attempt of a request. It is generous since
	// the app runs on patchy mobile connections.
	DefaultTimeout = 8 * time.Second

	// DefaultRetries is how many times a failed GET is retried.
	DefaultRetries = 2

	defaultUserAgent = "climblog-go"
)

// TokenSource hands out the bearer token of the live session, or "" when
// there is none. *session.Manager satisfies it.
type TokenSource interface {
	Token() string
}

// TokenExpirer is implemented by token sources that can end a session for
// one specific token, deleting its stored copy in the same step. It reports
// whether anything was removed. *session.Manager satisfies it.
type TokenExpirer interface {
	Expire(ctx context.Context, token string) bool
}

// Client is the only path from the process to the climbing API. It is safe
// for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	sessions   TokenSource
	store      securestore.Store
	notifier   *eventx.Bus
	logger     *slog.Logger
	retries    int
	retryDelay time.Duration
	userAgent  string

	// Fingerprint of the last token whose rejection was handled.
	rejectedMu   sync.Mutex
	lastRejected string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The client keeps its
// own copy, so hc is never modified; its Timeout applies unless WithTimeout
// is also given.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-attempt timeout, overriding DefaultTimeout or the
// Timeout of a client given to WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithStore sets the token store a rejected token is deleted from when the
// TokenSource is not a TokenExpirer. Only a stored copy of the rejected
// token is deleted.
func WithStore(s securestore.Store) Option {
	return func(c *Client) { c.store = s }
}

// WithNotifier sets the bus EventAuthenticationExpired is published on.
func WithNotifier(b *eventx.Bus) Option {
	return func(c *Client) { c.notifier = b }
}

// WithLogger sets the logger; slog.Default is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRetries sets how many times an idempotent GET is retried after a
// network failure, timeout or 5xx. 4xx responses are never retried.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithRetryDelay sets the base backoff between retries; attempt n waits n
// times this long.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient returns a client for the API at baseURL. An empty baseURL means
// DefaultBaseURL. A nil sessions sends every request unauthenticated.
func NewClient(baseURL string, sessions TokenSource, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		sessions:   sessions,
		logger:     slog.Default(),
		retries:    DefaultRetries,
		retryDelay: 250 * time.Millisecond,
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.httpClient
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.httpClient = &hc
	return c
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func (c *Client) currentToken() string {
	if c.sessions == nil {
		return ""
	}
	return c.sessions.Token()
}
