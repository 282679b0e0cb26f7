package spendwise

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spendwise/spendwise-go/internal/transport"
	internalTypes "github.com/spendwise/spendwise-go/internal/types"
)

const (
	// DefaultBaseURL is the default SpendWise API base URL
	DefaultBaseURL = "http://localhost:8080/api"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second

	// UserAgent is the user agent string
	UserAgent = "spendwise-go/1.0.0"
)

// Client is the main SpendWise API client
type Client struct {
	// Service interfaces
	Auth       AuthService
	Categories CategoryService
	Expenses   ExpenseService
	Budgets    BudgetService

	// Internal fields
	baseURL    string
	httpClient *http.Client
	transport  Transport
	options    *ClientOptions
	session    *Session
	auth       *authService

	invalidated    chan struct{}
	invalidateOnce sync.Once
}

// ClientOptions configures the client
type ClientOptions struct {
	// BaseURL overrides the default API base URL
	BaseURL string

	// HTTPClient allows using a custom HTTP client
	HTTPClient *http.Client

	// Timeout sets the HTTP client timeout
	Timeout time.Duration

	// Token provides direct authentication token
	Token string

	// SessionFile path for session persistence
	SessionFile string

	// Logger for debug logging
	Logger Logger

	// RetryConfig configures retry behavior
	RetryConfig *internalTypes.RetryConfig

	// RateLimiter for rate limiting
	RateLimiter RateLimiter

	// Hooks for observability
	Hooks *internalTypes.Hooks

	// OnSessionInvalid is called once when any request comes back 401.
	// The session (and the session file, if configured) is cleared
	// before the callback runs; the failed request is not retried.
	OnSessionInvalid func()

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
}

// Logger interface for logging
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// RateLimiter interface for rate limiting
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// Transport handles HTTP communication
type Transport interface {
	Execute(ctx context.Context, method, path string, query url.Values, body, result interface{}) error
	SetAuth(token string)
	SetSession(session *internalTypes.Session)
}

// NewClient creates a new SpendWise client
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = &ClientOptions{}
	}

	// Initialize Sentry if DSN is provided
	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}

		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}

		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}

		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}

		if err := sentry.Init(sentryOpts); err != nil {
			// Log error but don't fail client creation
			if opts.Logger != nil {
				opts.Logger.Error("Failed to initialize Sentry", "error", err)
			}
		}
	}

	// Set defaults
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: DefaultTimeout,
		}
	}

	if opts.Timeout > 0 {
		opts.HTTPClient.Timeout = opts.Timeout
	}

	c := &Client{
		baseURL:     opts.BaseURL,
		httpClient:  opts.HTTPClient,
		options:     opts,
		invalidated: make(chan struct{}),
	}

	// Create transport using the internal package
	transportOpts := &transport.Options{
		BaseURL:        opts.BaseURL,
		HTTPClient:     opts.HTTPClient,
		RetryConfig:    opts.RetryConfig,
		Logger:         opts.Logger,
		Hooks:          opts.Hooks,
		OnUnauthorized: c.invalidateSession,
	}
	c.transport = transport.NewRESTTransport(transportOpts)

	// Set auth if token provided
	if opts.Token != "" {
		c.transport.SetAuth(opts.Token)
		c.session = &Session{Token: opts.Token}
	}

	// Initialize services
	c.initServices()

	// Load session if file specified
	if opts.SessionFile != "" {
		if err := c.Auth.LoadSession(opts.SessionFile); err != nil && opts.Logger != nil {
			opts.Logger.Warn("Failed to load session", "error", err)
		}
	}

	return c, nil
}

// NewClientWithToken creates a client with an auth token
func NewClientWithToken(token string) (*Client, error) {
	return NewClient(&ClientOptions{
		Token: token,
	})
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.Categories = &categoryService{client: c}
	c.Expenses = &expenseService{client: c}
	c.Budgets = &budgetService{client: c}
	c.auth = newAuthService(c)
	c.Auth = c.auth
}

// Session returns the current session
func (c *Client) Session() *Session {
	return c.session
}

// SetToken sets the authentication token
func (c *Client) SetToken(token string) {
	c.transport.SetAuth(token)
	if c.session == nil {
		c.session = &Session{}
	}
	c.session.Token = token
	c.rearmInvalidation()
}

// SessionInvalidated returns a channel closed the first time the
// server rejects the current session with a 401. Views subscribe to
// it to force navigation back to sign-in. Re-authenticating replaces
// the channel, so subscribers must re-subscribe after a sign-in.
func (c *Client) SessionInvalidated() <-chan struct{} {
	return c.invalidated
}

// SignOut clears the in-memory session and the persisted session file
func (c *Client) SignOut() {
	c.session = nil
	c.auth.clearSession()
	c.transport.SetSession(nil)
	if c.options.SessionFile != "" {
		_ = os.Remove(c.options.SessionFile)
	}
}

// invalidateSession is the forced-logout hook fired by the transport on 401
func (c *Client) invalidateSession() {
	c.session = nil
	c.auth.clearSession()
	if c.options.SessionFile != "" {
		_ = os.Remove(c.options.SessionFile)
	}
	if c.options.Logger != nil {
		c.options.Logger.Warn("Session invalidated by server")
	}
	c.invalidateOnce.Do(func() {
		close(c.invalidated)
		if c.options.OnSessionInvalid != nil {
			c.options.OnSessionInvalid()
		}
	})
}

// rearmInvalidation resets the forced-logout notification for a new
// credential. Each session gets its own channel and its own single
// notification.
func (c *Client) rearmInvalidation() {
	c.invalidated = make(chan struct{})
	c.invalidateOnce = sync.Once{}
}

// execute performs a request through the transport with rate limiting,
// hooks, and error tracking applied
func (c *Client) execute(ctx context.Context, method, path string, query url.Values, body, result interface{}) error {
	// Rate limiting
	if c.options != nil && c.options.RateLimiter != nil {
		if err := c.options.RateLimiter.Wait(ctx); err != nil {
			if hub := sentry.GetHubFromContext(ctx); hub != nil {
				hub.CaptureException(err)
			} else if c.sentryEnabled() {
				sentry.CaptureException(err)
			}
			return WrapError(err, "RATE_LIMITED", "rate limiter")
		}
	}

	// Execute request
	start := time.Now()
	err := c.transport.Execute(ctx, method, path, query, body, result)
	duration := time.Since(start)

	// Capture errors in Sentry
	if err != nil && c.sentryEnabled() {
		if hub := sentry.GetHubFromContext(ctx); hub != nil {
			hub.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("http.method", method)
				scope.SetTag("http.path", path)
				scope.SetContext("request", map[string]interface{}{
					"method":   method,
					"path":     path,
					"duration": duration.String(),
				})
				hub.CaptureException(err)
			})
		} else {
			sentry.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("http.method", method)
				scope.SetTag("http.path", path)
				scope.SetContext("request", map[string]interface{}{
					"method":   method,
					"path":     path,
					"duration": duration.String(),
				})
				sentry.CaptureException(err)
			})
		}
	}

	return err
}

// sentryEnabled reports whether error tracking was configured
func (c *Client) sentryEnabled() bool {
	return c.options != nil && (c.options.SentryDSN != "" || c.options.SentryOptions != nil)
}

// Close flushes any pending Sentry events and performs cleanup
func (c *Client) Close() {
	if c.sentryEnabled() {
		sentry.Flush(2 * time.Second)
	}
}

// toInternalSession converts a public session for the transport layer
func toInternalSession(s *Session) *internalTypes.Session {
	if s == nil {
		return nil
	}
	return &internalTypes.Session{
		Token:    s.Token,
		UserID:   s.UserID,
		Email:    s.Email,
		Name:     s.Name,
		Currency: s.Currency,
		SavedAt:  s.SavedAt,
	}
}
