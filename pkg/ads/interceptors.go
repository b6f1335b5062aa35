package ads

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Rate limit headers the API attaches to every response. Endpoints limited
// per advertising account use the x-account-rate-limit-* variants.
const (
	HeaderRateLimitLimit            = "X-Rate-Limit-Limit"
	HeaderRateLimitRemaining        = "X-Rate-Limit-Remaining"
	HeaderRateLimitReset            = "X-Rate-Limit-Reset"
	HeaderAccountRateLimitLimit     = "X-Account-Rate-Limit-Limit"
	HeaderAccountRateLimitRemaining = "X-Account-Rate-Limit-Remaining"
	HeaderAccountRateLimitReset     = "X-Account-Rate-Limit-Reset"
)

// Request describes one outgoing API call as seen by interceptors. Headers
// are the live request headers; changes made by a RequestInterceptor are sent.
type Request struct {
	Method string
	Path   string
	// Route is Path with account and entity ids replaced by placeholders,
	// e.g. "/12/accounts/:account_id/campaigns/:id".
	Route     string
	AccountID string
	Query     string
	Headers   http.Header
	Body      []byte
	StartedAt time.Time
}

// NewRequest describes a call to path, deriving its Route and AccountID.
func NewRequest(method, path, query string, headers http.Header, body []byte) *Request {
	route, accountID := routeOf(path)

	return &Request{
		Method:    method,
		Path:      path,
		Route:     route,
		AccountID: accountID,
		Query:     query,
		Headers:   headers,
		Body:      body,
		StartedAt: time.Now(),
	}
}

// Endpoint names the call as "METHOD route".
func (r *Request) Endpoint() string {
	return r.Method + " " + r.Route
}

// Response is the outcome of one call. Error is the transport error or the
// *ResponseError built for a non-2xx status.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
	RateLimit  *RateLimit
}

// NewResponse wraps a completed call and parses its rate limit headers.
func NewResponse(statusCode int, headers http.Header, body []byte, err error) *Response {
	resp := &Response{StatusCode: statusCode, Headers: headers, Body: body, Error: err}

	if rl, ok := ParseRateLimit(headers); ok {
		resp.RateLimit = &rl
	}

	return resp
}

// RateLimit is the quota window reported by the API.
type RateLimit struct {
	Limit     int
	Remaining int
	Reset     time.Time
	// PerAccount is set when the quota applies to one advertising account
	// rather than the calling application.
	PerAccount bool
}

// ParseRateLimit reads the rate limit headers. ok is false when the response
// carries none or they are not integers.
func ParseRateLimit(headers http.Header) (RateLimit, bool) {
	if rl, ok := parseRateLimit(headers, HeaderRateLimitLimit, HeaderRateLimitRemaining, HeaderRateLimitReset); ok {
		return rl, true
	}

	rl, ok := parseRateLimit(headers,
		HeaderAccountRateLimitLimit, HeaderAccountRateLimitRemaining, HeaderAccountRateLimitReset)
	rl.PerAccount = ok

	return rl, ok
}

func parseRateLimit(headers http.Header, limitKey, remainingKey, resetKey string) (RateLimit, bool) {
	if headers == nil || headers.Get(remainingKey) == "" {
		return RateLimit{}, false
	}

	limit, err := strconv.Atoi(headers.Get(limitKey))
	if err != nil {
		return RateLimit{}, false
	}

	remaining, err := strconv.Atoi(headers.Get(remainingKey))
	if err != nil {
		return RateLimit{}, false
	}

	rl := RateLimit{Limit: limit, Remaining: remaining}

	if raw := headers.Get(resetKey); raw != "" {
		reset, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return RateLimit{}, false
		}

		rl.Reset = time.Unix(reset, 0).UTC()
	}

	return rl, true
}

// routeOf templates the id segments of an API path. Collection names and
// the version prefix are kept; the segment after "accounts" is the account
// id and any segment after a collection name is an entity id.
func routeOf(path string) (string, string) {
	segments := strings.Split(strings.Trim(path, "/"), "/")

	var accountID string

	for i := 2; i < len(segments); i++ {
		switch {
		case segments[i-1] == "accounts":
			accountID = segments[i]
			segments[i] = ":account_id"
		case i == 4 && segments[1] == "accounts":
			segments[i] = ":id"
		}
	}

	return "/" + strings.Join(segments, "/"), accountID
}

// RequestInterceptor runs before a call is sent. A non-nil error aborts the
// call and is returned to the caller.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor runs after every attempt that reached the network,
// successful or not. Its errors are logged and never replace the call's result.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// InterceptorChain holds the hooks installed through Config.Interceptors.
// A nil chain runs nothing.
type InterceptorChain struct {
	mu       sync.RWMutex
	request  []RequestInterceptor
	response []ResponseInterceptor
}

// NewInterceptorChain creates an empty chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{}
}

// AddRequestInterceptor appends a hook run in insertion order before each call.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) *InterceptorChain {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.request = append(c.request, interceptor)

	return c
}

// AddResponseInterceptor appends a hook run in insertion order after each call.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) *InterceptorChain {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.response = append(c.response, interceptor)

	return c
}

// BeforeRequest runs the request hooks, stopping at the first error.
func (c *InterceptorChain) BeforeRequest(ctx context.Context, req *Request) error {
	if c == nil {
		return nil
	}

	c.mu.RLock()
	hooks := c.request
	c.mu.RUnlock()

	for _, interceptor := range hooks {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor for %s: %w", req.Endpoint(), err)
		}
	}

	return nil
}

// AfterResponse runs the response hooks, stopping at the first error.
func (c *InterceptorChain) AfterResponse(ctx context.Context, req *Request, resp *Response) error {
	if c == nil {
		return nil
	}

	c.mu.RLock()
	hooks := c.response
	c.mu.RUnlock()

	for _, interceptor := range hooks {
		err := interceptor(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("response interceptor for %s: %w", req.Endpoint(), err)
		}
	}

	return nil
}

// HeaderInterceptor sets fixed headers on every call.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(_ context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		for key, value := range headers {
			req.Headers.Set(key, value)
		}

		return nil
	}
}

// CallLogger logs one entry per completed call: Error for failures carrying
// the first API error code, Debug otherwise.
func CallLogger(logger Logger) ResponseInterceptor {
	return func(_ context.Context, req *Request, resp *Response) error {
		fields := map[string]interface{}{
			"method":      req.Method,
			"route":       req.Route,
			"status_code": resp.StatusCode,
			"duration_ms": time.Since(req.StartedAt).Milliseconds(),
		}

		if req.AccountID != "" {
			fields["account_id"] = req.AccountID
		}

		if resp.RateLimit != nil {
			fields["rate_limit_remaining"] = resp.RateLimit.Remaining
		}

		if resp.Error == nil {
			logger.Debug("API call", fields)

			return nil
		}

		fields["error"] = resp.Error.Error()

		if apiErr := firstAPIError(resp.Error); apiErr != nil {
			fields["error_code"] = apiErr.Code
		}

		logger.Error("API call failed", fields)

		return nil
	}
}

// RateLimitWarning logs a warning once the remaining quota of a window drops
// to threshold or below.
func RateLimitWarning(logger Logger, threshold int) ResponseInterceptor {
	return func(_ context.Context, req *Request, resp *Response) error {
		rl := resp.RateLimit
		if rl == nil || rl.Remaining > threshold {
			return nil
		}

		fields := map[string]interface{}{
			"endpoint":  req.Endpoint(),
			"limit":     rl.Limit,
			"remaining": rl.Remaining,
		}

		if !rl.Reset.IsZero() {
			fields["reset"] = FormatTimestamp(rl.Reset)
		}

		if rl.PerAccount {
			fields["account_id"] = req.AccountID
		}

		logger.Warn("API rate limit nearly exhausted", fields)

		return nil
	}
}

// EndpointUsage aggregates the calls made to one endpoint.
type EndpointUsage struct {
	Calls          int64
	Failures       int64
	ErrorCodes     map[string]int64
	TotalLatency   time.Duration
	AverageLatency time.Duration
	LastCall       time.Time
	RateLimit      *RateLimit
}

// UsageCollector tallies calls per endpoint ("METHOD route"). Install it with
// Attach.
type UsageCollector struct {
	mu       sync.Mutex
	usage    map[string]*EndpointUsage
	onChange func(endpoint string, usage EndpointUsage)
}

// NewUsageCollector creates an empty collector.
func NewUsageCollector() *UsageCollector {
	return &UsageCollector{usage: make(map[string]*EndpointUsage)}
}

// SetOnChange registers a callback run after each recorded call.
func (u *UsageCollector) SetOnChange(fn func(endpoint string, usage EndpointUsage)) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.onChange = fn
}

// Attach adds the collector's response hook to chain and returns chain.
func (u *UsageCollector) Attach(chain *InterceptorChain) *InterceptorChain {
	return chain.AddResponseInterceptor(u.record)
}

// Usage returns a copy of one endpoint's tally, or nil when it was never called.
func (u *UsageCollector) Usage(endpoint string) *EndpointUsage {
	u.mu.Lock()
	defer u.mu.Unlock()

	usage, ok := u.usage[endpoint]
	if !ok {
		return nil
	}

	snapshot := usage.clone()

	return &snapshot
}

// Endpoints lists every endpoint called so far.
func (u *UsageCollector) Endpoints() []string {
	u.mu.Lock()
	defer u.mu.Unlock()

	endpoints := make([]string, 0, len(u.usage))
	for endpoint := range u.usage {
		endpoints = append(endpoints, endpoint)
	}

	return endpoints
}

func (u *UsageCollector) record(_ context.Context, req *Request, resp *Response) error {
	endpoint := req.Endpoint()

	u.mu.Lock()

	usage, ok := u.usage[endpoint]
	if !ok {
		usage = &EndpointUsage{ErrorCodes: make(map[string]int64)}
		u.usage[endpoint] = usage
	}

	usage.Calls++
	usage.LastCall = time.Now()

	if !req.StartedAt.IsZero() {
		usage.TotalLatency += usage.LastCall.Sub(req.StartedAt)
		usage.AverageLatency = usage.TotalLatency / time.Duration(usage.Calls)
	}

	if resp.Error != nil || resp.StatusCode >= http.StatusBadRequest {
		usage.Failures++

		if apiErr := firstAPIError(resp.Error); apiErr != nil {
			usage.ErrorCodes[apiErr.Code]++
		}
	}

	if resp.RateLimit != nil {
		rl := *resp.RateLimit
		usage.RateLimit = &rl
	}

	snapshot := usage.clone()
	onChange := u.onChange

	u.mu.Unlock()

	if onChange != nil {
		onChange(endpoint, snapshot)
	}

	return nil
}

func (e *EndpointUsage) clone() EndpointUsage {
	snapshot := *e

	snapshot.ErrorCodes = make(map[string]int64, len(e.ErrorCodes))
	for code, n := range e.ErrorCodes {
		snapshot.ErrorCodes[code] = n
	}

	if e.RateLimit != nil {
		rl := *e.RateLimit
		snapshot.RateLimit = &rl
	}

	return snapshot
}

func firstAPIError(err error) *APIError {
	var respErr *ResponseError
	if !errors.As(err, &respErr) {
		return nil
	}

	return respErr.FirstError()
}
