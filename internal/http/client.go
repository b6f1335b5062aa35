package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fivetwenty-io/adsapi/internal/auth"
	"github.com/fivetwenty-io/adsapi/internal/constants"
	"github.com/fivetwenty-io/adsapi/pkg/ads"
	"github.com/hashicorp/go-retryablehttp"
)

// Logger is the logging interface used by the transport.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request is one API call. Query and Form are already encoded; an empty Form
// sends no body.
type Request struct {
	Method  string
	Path    string
	Query   string
	Form    string
	Headers map[string]string
}

// Response is the raw result of an API call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is the HTTP transport for the Ads API.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager auth.TokenManager
	userAgent    string
	debug        bool
	logger       Logger
	interceptors *ads.InterceptorChain
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig enables retries of idempotent requests on 429 and 5xx.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient = client
	}
}

// WithInterceptors installs a request/response interceptor chain.
func WithInterceptors(chain *ads.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a transport rooted at baseURL. tokenManager may be nil
// for unauthenticated use.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = 0
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.CheckRetry = checkRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   retryClient,
		tokenManager: tokenManager,
		userAgent:    constants.DefaultUserAgent,
		logger:       noopLogger{},
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			client.logger.Warn("Retrying request", map[string]interface{}{
				"method":  req.Method,
				"url":     req.URL.String(),
				"attempt": attempt,
			})
		}
	}

	return client
}

type noRetryKey struct{}

// checkRetry applies the default policy to idempotent requests only.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if noRetry, _ := ctx.Value(noRetryKey{}).(bool); noRetry {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		return false, nil
	}

	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// Do sends req. Non-2xx responses return both the Response and an error
// wrapping *ads.ResponseError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	resp, err := c.do(ctx, req)

	var errResp *ads.ResponseError
	if errors.As(err, &errResp) && errResp.StatusCode == http.StatusUnauthorized && c.tokenManager != nil {
		refreshErr := c.tokenManager.RefreshToken(ctx)
		if refreshErr == nil {
			return c.do(ctx, req)
		}

		c.logger.Debug("Token refresh after 401 failed", map[string]interface{}{"error": refreshErr.Error()})
	}

	return resp, err
}

//nolint:funlen,cyclop // one linear request lifecycle
func (c *Client) do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if req.Query != "" {
		fullURL += "?" + req.Query
	}

	var body interface{}
	if req.Form != "" {
		body = []byte(req.Form)
	}

	if req.Method == http.MethodPost {
		ctx = context.WithValue(ctx, noRetryKey{}, true)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if req.Form != "" {
		httpReq.Header.Set("Content-Type", ads.ContentTypeForm)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting access token: %w", err)
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	intercepted := ads.NewRequest(req.Method, req.Path, req.Query, httpReq.Header, []byte(req.Form))

	err = c.interceptors.BeforeRequest(ctx, intercepted)
	if err != nil {
		return nil, err
	}

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
			"body":   req.Form,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.afterResponse(ctx, intercepted, ads.NewResponse(0, nil, nil, err))

		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"body":   string(respBody),
		})
	}

	var apiErr error
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr = responseError(resp)
	}

	c.afterResponse(ctx, intercepted, ads.NewResponse(resp.StatusCode, resp.Headers, resp.Body, apiErr))

	if apiErr != nil {
		return resp, apiErr
	}

	return resp, nil
}

func (c *Client) afterResponse(ctx context.Context, req *ads.Request, resp *ads.Response) {
	err := c.interceptors.AfterResponse(ctx, req, resp)
	if err != nil {
		c.logger.Warn("Response interceptor failed", map[string]interface{}{"error": err.Error()})
	}
}

// responseError builds the typed error for a non-2xx response. Bodies that
// are not the API's error envelope become a single synthetic entry.
func responseError(resp *Response) error {
	errResp, err := ads.ParseResponseError(resp.StatusCode, resp.Body)
	if err != nil || len(errResp.Errors) == 0 {
		message := strings.TrimSpace(string(resp.Body))
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}

		errResp = &ads.ResponseError{
			StatusCode: resp.StatusCode,
			Errors: []ads.APIError{{
				Code:    strings.ToUpper(strings.ReplaceAll(http.StatusText(resp.StatusCode), " ", "_")),
				Message: message,
			}},
		}
	}

	return fmt.Errorf("API request failed with status %d: %w", resp.StatusCode, errResp)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path, query string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a URL-encoded form body.
func (c *Client) Post(ctx context.Context, path, form string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Form: form})
}

// Put performs a PUT request with a URL-encoded form body.
func (c *Client) Put(ctx context.Context, path, form string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Form: form})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

type noopLogger struct{}

func (noopLogger) Debug(string, map[string]interface{}) {}
func (noopLogger) Info(string, map[string]interface{})  {}
func (noopLogger) Warn(string, map[string]interface{})  {}
func (noopLogger) Error(string, map[string]interface{}) {}
