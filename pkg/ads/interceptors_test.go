package ads_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/fivetwenty-io/adsapi/pkg/ads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestRoutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path      string
		route     string
		accountID string
	}{
		{path: "/12/accounts", route: "/12/accounts"},
		{path: "/12/accounts/18ce54d4x5t", route: "/12/accounts/:account_id", accountID: "18ce54d4x5t"},
		{
			path:      "/12/accounts/18ce54d4x5t/campaigns",
			route:     "/12/accounts/:account_id/campaigns",
			accountID: "18ce54d4x5t",
		},
		{
			path:      "/12/accounts/18ce54d4x5t/line_items/8v7jo",
			route:     "/12/accounts/:account_id/line_items/:id",
			accountID: "18ce54d4x5t",
		},
		{
			path:      "/12/stats/accounts/18ce54d4x5t",
			route:     "/12/stats/accounts/:account_id",
			accountID: "18ce54d4x5t",
		},
		{path: "/12/targeting_criteria/locations", route: "/12/targeting_criteria/locations"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			req := ads.NewRequest(http.MethodGet, tt.path, "", nil, nil)
			assert.Equal(t, tt.route, req.Route)
			assert.Equal(t, tt.accountID, req.AccountID)
			assert.Equal(t, "GET "+tt.route, req.Endpoint())
			assert.False(t, req.StartedAt.IsZero())
		})
	}
}

func TestParseRateLimit(t *testing.T) {
	t.Parallel()

	t.Run("application window", func(t *testing.T) {
		t.Parallel()

		headers := http.Header{}
		headers.Set(ads.HeaderRateLimitLimit, "450")
		headers.Set(ads.HeaderRateLimitRemaining, "12")
		headers.Set(ads.HeaderRateLimitReset, "1705320000")

		rl, ok := ads.ParseRateLimit(headers)
		require.True(t, ok)
		assert.Equal(t, 450, rl.Limit)
		assert.Equal(t, 12, rl.Remaining)
		assert.True(t, rl.Reset.Equal(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)))
		assert.False(t, rl.PerAccount)
	})

	t.Run("account window", func(t *testing.T) {
		t.Parallel()

		headers := http.Header{}
		headers.Set(ads.HeaderAccountRateLimitLimit, "2000")
		headers.Set(ads.HeaderAccountRateLimitRemaining, "1999")

		rl, ok := ads.ParseRateLimit(headers)
		require.True(t, ok)
		assert.Equal(t, 1999, rl.Remaining)
		assert.True(t, rl.Reset.IsZero())
		assert.True(t, rl.PerAccount)
	})

	t.Run("absent or malformed", func(t *testing.T) {
		t.Parallel()

		_, ok := ads.ParseRateLimit(nil)
		assert.False(t, ok)

		headers := http.Header{}
		headers.Set(ads.HeaderRateLimitLimit, "450")
		headers.Set(ads.HeaderRateLimitRemaining, "soon")

		_, ok = ads.ParseRateLimit(headers)
		assert.False(t, ok)
	})

	resp := ads.NewResponse(http.StatusOK, http.Header{}, nil, nil)
	assert.Nil(t, resp.RateLimit)
}

func TestInterceptorChainOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	var executionOrder []string

	chain := ads.NewInterceptorChain().
		AddRequestInterceptor(func(ctx context.Context, req *ads.Request) error {
			executionOrder = append(executionOrder, "request first")

			return nil
		}).
		AddRequestInterceptor(func(ctx context.Context, req *ads.Request) error {
			executionOrder = append(executionOrder, "request second")

			return nil
		}).
		AddResponseInterceptor(func(ctx context.Context, req *ads.Request, resp *ads.Response) error {
			executionOrder = append(executionOrder, "response")

			return nil
		})

	req := ads.NewRequest(http.MethodGet, "/12/accounts", "", http.Header{}, nil)

	require.NoError(t, chain.BeforeRequest(ctx, req))
	require.NoError(t, chain.AfterResponse(ctx, req, ads.NewResponse(http.StatusOK, nil, nil, nil)))

	assert.Equal(t, []string{"request first", "request second", "response"}, executionOrder)
}

func TestInterceptorChainStopsOnError(t *testing.T) {
	t.Parallel()

	errBlocked := errors.New("blocked")
	called := false

	chain := ads.NewInterceptorChain().
		AddRequestInterceptor(func(ctx context.Context, req *ads.Request) error {
			return errBlocked
		}).
		AddRequestInterceptor(func(ctx context.Context, req *ads.Request) error {
			called = true

			return nil
		})

	err := chain.BeforeRequest(context.Background(), ads.NewRequest(http.MethodPost, "/12/accounts/a1/campaigns", "", nil, nil))
	require.ErrorIs(t, err, errBlocked)
	assert.Contains(t, err.Error(), "POST /12/accounts/:account_id/campaigns")
	assert.False(t, called)
}

func TestNilInterceptorChainRunsNothing(t *testing.T) {
	t.Parallel()

	var chain *ads.InterceptorChain

	req := ads.NewRequest(http.MethodGet, "/12/accounts", "", nil, nil)
	require.NoError(t, chain.BeforeRequest(context.Background(), req))
	require.NoError(t, chain.AfterResponse(context.Background(), req, ads.NewResponse(http.StatusOK, nil, nil, nil)))
}

func TestHeaderInterceptor(t *testing.T) {
	t.Parallel()

	interceptor := ads.HeaderInterceptor(map[string]string{"X-Request-Source": "reporting"})

	req := ads.NewRequest(http.MethodGet, "/12/accounts", "", http.Header{"Accept": []string{"application/json"}}, nil)
	require.NoError(t, interceptor(context.Background(), req))
	assert.Equal(t, "reporting", req.Headers.Get("X-Request-Source"))
	assert.Equal(t, "application/json", req.Headers.Get("Accept"))
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (l *recordingLogger) Debug(msg string, f map[string]interface{}) { l.record("debug", msg, f) }
func (l *recordingLogger) Info(msg string, f map[string]interface{})  { l.record("info", msg, f) }
func (l *recordingLogger) Warn(msg string, f map[string]interface{})  { l.record("warn", msg, f) }
func (l *recordingLogger) Error(msg string, f map[string]interface{}) { l.record("error", msg, f) }

func TestCallLogger(t *testing.T) {
	t.Parallel()

	logger := &recordingLogger{}
	ctx := context.Background()
	req := ads.NewRequest(http.MethodGet, "/12/accounts/a1/campaigns/c1", "", nil, nil)

	require.NoError(t, ads.CallLogger(logger)(ctx, req, ads.NewResponse(http.StatusOK, nil, nil, nil)))
	require.NoError(t, ads.CallLogger(logger)(ctx, req, ads.NewResponse(http.StatusNotFound, nil, nil,
		&ads.ResponseError{
			StatusCode: http.StatusNotFound,
			Errors:     []ads.APIError{{Code: ads.ErrorCodeNotFound, Message: "campaign not found"}},
		})))

	require.Len(t, logger.entries, 2)

	assert.Equal(t, "debug", logger.entries[0].level)
	assert.Equal(t, "API call", logger.entries[0].msg)
	assert.Equal(t, "/12/accounts/:account_id/campaigns/:id", logger.entries[0].fields["route"])
	assert.Equal(t, "a1", logger.entries[0].fields["account_id"])

	assert.Equal(t, "error", logger.entries[1].level)
	assert.Equal(t, "API call failed", logger.entries[1].msg)
	assert.Equal(t, ads.ErrorCodeNotFound, logger.entries[1].fields["error_code"])
}

func TestRateLimitWarning(t *testing.T) {
	t.Parallel()

	logger := &recordingLogger{}
	warn := ads.RateLimitWarning(logger, 5)
	ctx := context.Background()
	req := ads.NewRequest(http.MethodGet, "/12/accounts/a1/campaigns", "", nil, nil)

	headers := func(remaining string) http.Header {
		h := http.Header{}
		h.Set(ads.HeaderRateLimitLimit, "450")
		h.Set(ads.HeaderRateLimitRemaining, remaining)

		return h
	}

	require.NoError(t, warn(ctx, req, ads.NewResponse(http.StatusOK, nil, nil, nil)))
	require.NoError(t, warn(ctx, req, ads.NewResponse(http.StatusOK, headers("6"), nil, nil)))
	assert.Empty(t, logger.entries)

	require.NoError(t, warn(ctx, req, ads.NewResponse(http.StatusOK, headers("5"), nil, nil)))
	require.Len(t, logger.entries, 1)
	assert.Equal(t, "warn", logger.entries[0].level)
	assert.Equal(t, 5, logger.entries[0].fields["remaining"])
	assert.Equal(t, "GET /12/accounts/:account_id/campaigns", logger.entries[0].fields["endpoint"])
}

func TestUsageCollector(t *testing.T) {
	t.Parallel()

	collector := ads.NewUsageCollector()
	chain := collector.Attach(ads.NewInterceptorChain())
	ctx := context.Background()

	var (
		changes  int
		endpoint string
	)

	collector.SetOnChange(func(e string, _ ads.EndpointUsage) {
		changes++
		endpoint = e
	})

	rateLimited := http.Header{}
	rateLimited.Set(ads.HeaderRateLimitLimit, "450")
	rateLimited.Set(ads.HeaderRateLimitRemaining, "0")

	responses := []*ads.Response{
		ads.NewResponse(http.StatusOK, nil, nil, nil),
		ads.NewResponse(http.StatusTooManyRequests, rateLimited, nil, &ads.ResponseError{
			StatusCode: http.StatusTooManyRequests,
			Errors:     []ads.APIError{{Code: ads.ErrorCodeTooManyRequests}},
		}),
	}

	for i, resp := range responses {
		path := "/12/accounts/a" + string(rune('1'+i)) + "/campaigns"
		require.NoError(t, chain.AfterResponse(ctx, ads.NewRequest(http.MethodGet, path, "", nil, nil), resp))
	}

	usage := collector.Usage("GET /12/accounts/:account_id/campaigns")
	require.NotNil(t, usage)
	assert.Equal(t, int64(2), usage.Calls)
	assert.Equal(t, int64(1), usage.Failures)
	assert.Equal(t, map[string]int64{ads.ErrorCodeTooManyRequests: 1}, usage.ErrorCodes)
	require.NotNil(t, usage.RateLimit)
	assert.Zero(t, usage.RateLimit.Remaining)
	assert.Equal(t, 2, changes)
	assert.Equal(t, "GET /12/accounts/:account_id/campaigns", endpoint)
	assert.Equal(t, []string{"GET /12/accounts/:account_id/campaigns"}, collector.Endpoints())

	usage.ErrorCodes["MUTATED"] = 1
	assert.NotContains(t, collector.Usage("GET /12/accounts/:account_id/campaigns").ErrorCodes, "MUTATED")

	assert.Nil(t, collector.Usage("POST /12/accounts/:account_id/campaigns"))
}
