package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/spendwise/spendwise-go/internal/types"
)

const (
	authHeaderKey = "Authorization"
	contentType   = "application/json"
)

// RESTTransport handles JSON-over-HTTP communication with the SpendWise API
type RESTTransport struct {
	baseURL     string
	httpClient  *http.Client
	retryClient *retryablehttp.Client
	headers     map[string]string
	session     *types.Session
	logger      types.Logger
	hooks       *types.Hooks

	onUnauthorized func()
	invalidateOnce sync.Once
}

// Options for the REST transport
type Options struct {
	BaseURL     string
	HTTPClient  *http.Client
	Headers     map[string]string
	RetryConfig *types.RetryConfig
	Logger      types.Logger
	Hooks       *types.Hooks

	// OnUnauthorized is invoked once when any request comes back 401.
	// The transport clears its session before calling it.
	OnUnauthorized func()
}

// NewRESTTransport creates a new REST transport
func NewRESTTransport(opts *Options) *RESTTransport {
	if opts == nil {
		opts = &Options{}
	}

	// Set defaults
	if opts.BaseURL == "" {
		opts.BaseURL = types.DefaultBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: types.DefaultTimeout,
		}
	}

	// Create retry client if configured
	var retryClient *retryablehttp.Client
	if opts.RetryConfig != nil {
		retryClient = retryablehttp.NewClient()
		retryClient.HTTPClient = opts.HTTPClient
		retryClient.RetryMax = opts.RetryConfig.MaxRetries
		retryClient.RetryWaitMin = opts.RetryConfig.RetryWait
		retryClient.RetryWaitMax = opts.RetryConfig.MaxWait

		if opts.Logger != nil {
			retryClient.Logger = &retryLogger{logger: opts.Logger}
		}
	}

	// Set default headers
	headers := map[string]string{
		"Accept":       contentType,
		"Content-Type": contentType,
		"User-Agent":   types.UserAgent,
	}

	// Merge custom headers
	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &RESTTransport{
		baseURL:        opts.BaseURL,
		httpClient:     opts.HTTPClient,
		retryClient:    retryClient,
		headers:        headers,
		logger:         opts.Logger,
		hooks:          opts.Hooks,
		onUnauthorized: opts.OnUnauthorized,
	}
}

// Execute performs an authenticated JSON request against the API.
// body may be nil for requests without a payload; result may be nil
// when the response body is not needed.
func (t *RESTTransport) Execute(ctx context.Context, method, path string, query url.Values, body, result interface{}) error {
	// An absent credential is treated the same as a rejected one:
	// the forced-logout hook fires, but no request goes out
	if t.session == nil || t.session.Token == "" {
		t.invalidateSession()
		return types.ErrNotAuthenticated
	}

	// Build URL
	u := t.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	// Marshal body
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request")
		}
		reader = bytes.NewReader(data)
	}

	// Create HTTP request
	httpReq, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	// Set headers
	for k, v := range t.headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set(authHeaderKey, "Bearer "+t.session.Token)

	// Call request hook
	if t.hooks != nil && t.hooks.OnRequest != nil {
		t.hooks.OnRequest(ctx, httpReq)
	}

	// Log request
	if t.logger != nil {
		t.logger.Debug("API request", "method", method, "path", path)
	}

	// Execute request
	start := time.Now()
	resp, err := t.doRequest(httpReq)
	duration := time.Since(start)

	if err != nil {
		if t.hooks != nil && t.hooks.OnError != nil {
			t.hooks.OnError(ctx, err)
		}
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	// Call response hook
	if t.hooks != nil && t.hooks.OnResponse != nil {
		t.hooks.OnResponse(ctx, resp, duration)
	}

	// Read response
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}

	// Log response
	if t.logger != nil {
		t.logger.Debug("API response", "status", resp.StatusCode, "duration", duration, "size", len(respBody))
	}

	// Check status code
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return t.handleHTTPError(resp.StatusCode, respBody)
	}

	// Unmarshal response
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return errors.Wrap(err, "failed to unmarshal result")
		}
	}

	return nil
}

// SetAuth sets the authentication token
func (t *RESTTransport) SetAuth(token string) {
	if t.session == nil {
		t.session = &types.Session{}
	}
	t.session.Token = token
	t.invalidateOnce = sync.Once{}
}

// SetSession sets the session
func (t *RESTTransport) SetSession(session *types.Session) {
	t.session = session
	t.invalidateOnce = sync.Once{}
}

// doRequest executes the HTTP request with retry if configured
func (t *RESTTransport) doRequest(req *http.Request) (*http.Response, error) {
	if t.retryClient != nil {
		retryReq, err := retryablehttp.FromRequest(req)
		if err != nil {
			return nil, err
		}
		return t.retryClient.Do(retryReq)
	}
	return t.httpClient.Do(req)
}

// invalidateSession clears the session and fires the unauthorized hook.
// The hook runs at most once per session; the original request is never retried.
func (t *RESTTransport) invalidateSession() {
	t.session = nil
	if t.onUnauthorized != nil {
		t.invalidateOnce.Do(t.onUnauthorized)
	}
}

// handleHTTPError maps HTTP errors to the client error taxonomy
func (t *RESTTransport) handleHTTPError(statusCode int, body []byte) error {
	// Try to parse error response
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}

	_ = json.Unmarshal(body, &errResp)

	switch statusCode {
	case http.StatusUnauthorized:
		t.invalidateSession()
		return types.ErrNotAuthenticated
	case http.StatusForbidden:
		return types.ErrNotAuthenticated
	case http.StatusNotFound:
		return types.ErrNotFound
	case http.StatusTooManyRequests:
		return types.ErrRateLimited
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return types.ErrTimeout
	case http.StatusBadRequest:
		msg := errResp.Message
		if msg == "" {
			msg = errResp.Error
		}
		return &types.Error{
			Code:       "BAD_REQUEST",
			Message:    msg,
			StatusCode: statusCode,
		}
	default:
		if statusCode >= 500 {
			msg := errResp.Message
			if msg == "" {
				msg = errResp.Error
			}

			baseMsg := fmt.Sprintf("server error: %d", statusCode)
			if msg != "" {
				baseMsg = fmt.Sprintf("%s: %s", baseMsg, msg)
			}

			return &types.Error{
				Code:       "SERVER_ERROR",
				Message:    baseMsg,
				StatusCode: statusCode,
				Err:        types.ErrServerError,
			}
		}
		return &types.Error{
			Code:       "HTTP_ERROR",
			Message:    fmt.Sprintf("HTTP error: %d", statusCode),
			StatusCode: statusCode,
		}
	}
}

// retryLogger adapts our logger to retryablehttp
type retryLogger struct {
	logger types.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}
