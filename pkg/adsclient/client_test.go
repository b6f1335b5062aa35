package adsclient_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/fivetwenty-io/adsapi/internal/fakeapi"
	"github.com/fivetwenty-io/adsapi/pkg/ads"
	"github.com/fivetwenty-io/adsapi/pkg/adsclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"ads-api.example.com", "https://ads-api.example.com"},
		{"ads-api.example.com/", "https://ads-api.example.com"},
		{"  https://ads-api.example.com/ ", "https://ads-api.example.com"},
		{"http://localhost:8080", "http://localhost:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, adsclient.NormalizeEndpoint(tt.in))
		})
	}
}

func TestNewRejectsIncompleteConfig(t *testing.T) {
	t.Parallel()

	_, err := adsclient.New(context.Background(), nil)
	require.ErrorIs(t, err, ads.ErrConfigRequired)

	_, err = adsclient.New(context.Background(), &ads.Config{AccessToken: "t"})
	require.ErrorIs(t, err, ads.ErrAPIEndpointRequired)
}

func TestNewDoesNotModifyConfig(t *testing.T) {
	t.Parallel()

	config := &ads.Config{APIEndpoint: "ads-api.example.com/", AccessToken: "t"}

	_, err := adsclient.New(context.Background(), config)
	require.NoError(t, err)
	assert.Equal(t, "ads-api.example.com/", config.APIEndpoint)
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	srv := fakeapi.New()
	defer srv.Close()

	srv.RequireToken("static-token")
	srv.AddAccount("18ce54d4x5t", "Acme")

	c, err := adsclient.NewWithToken(context.Background(), srv.URL+"/", "static-token")
	require.NoError(t, err)

	account, err := c.Accounts().Get(context.Background(), "18ce54d4x5t")
	require.NoError(t, err)
	assert.Equal(t, "Acme", account.Name)

	denied, err := adsclient.NewWithToken(context.Background(), srv.URL, "wrong")
	require.NoError(t, err)

	_, err = denied.Accounts().Get(context.Background(), "18ce54d4x5t")
	require.Error(t, err)
	assert.True(t, ads.IsUnauthorized(err))
}

func TestNewWithClientCredentials(t *testing.T) {
	t.Parallel()

	srv := fakeapi.New()
	defer srv.Close()

	srv.AllowClientCredentials("reporting", "s3cret")
	srv.RequireToken("never-issued")
	srv.AddAccount("18ce54d4x5t", "Acme")

	c, err := adsclient.NewWithClientCredentials(context.Background(), srv.URL, "reporting", "s3cret")
	require.NoError(t, err)

	accounts, err := c.Accounts().ListAll(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, 1, srv.TokensIssued())

	requests := srv.RequestsTo("/" + fakeapi.Version + "/accounts")
	require.Len(t, requests, 1)
	assert.Equal(t, "Bearer token-1", requests[0].Authorization)
}

func TestNewInstallsInterceptors(t *testing.T) {
	t.Parallel()

	srv := fakeapi.New()
	defer srv.Close()

	const accountID = "18ce54d4x5t"

	srv.AddAccount(accountID, "Acme")
	srv.SetRateLimit(450, 11, time.Date(2024, 1, 15, 12, 15, 0, 0, time.UTC))

	accountPath := "/" + fakeapi.Version + "/accounts/" + accountID
	srv.FailNext(accountPath, http.StatusNotFound, ads.ErrorCodeNotFound, "account not found")

	collector := ads.NewUsageCollector()
	chain := collector.Attach(ads.NewInterceptorChain().
		AddRequestInterceptor(ads.HeaderInterceptor(map[string]string{"X-Request-Source": "reporting"})))

	c, err := adsclient.New(context.Background(), &ads.Config{
		APIEndpoint:  srv.URL,
		AccessToken:  "static-token",
		Interceptors: chain,
	})
	require.NoError(t, err)

	_, err = c.Accounts().Get(context.Background(), accountID)
	require.True(t, ads.IsNotFound(err))

	account, err := c.Accounts().Get(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", account.Name)

	requests := srv.RequestsTo(accountPath)
	require.Len(t, requests, 2)

	for _, req := range requests {
		assert.Equal(t, "reporting", req.Header.Get("X-Request-Source"))
		assert.Equal(t, "Bearer static-token", req.Authorization)
	}

	usage := collector.Usage("GET /" + fakeapi.Version + "/accounts/:account_id")
	require.NotNil(t, usage)
	assert.Equal(t, int64(2), usage.Calls)
	assert.Equal(t, int64(1), usage.Failures)
	assert.Equal(t, map[string]int64{ads.ErrorCodeNotFound: 1}, usage.ErrorCodes)
	require.NotNil(t, usage.RateLimit)
	assert.Equal(t, 450, usage.RateLimit.Limit)
	assert.Equal(t, 9, usage.RateLimit.Remaining)
	assert.True(t, usage.RateLimit.Reset.Equal(time.Date(2024, 1, 15, 12, 15, 0, 0, time.UTC)))
}
