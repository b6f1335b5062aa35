package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fivetwenty-io/adsapi/internal/auth"
	"github.com/fivetwenty-io/adsapi/internal/constants"
	"github.com/fivetwenty-io/adsapi/internal/http"
	"github.com/fivetwenty-io/adsapi/pkg/ads"
)

// Static errors for err113 compliance.
var (
	ErrNoTokenManagerConfigured = errors.New("no token manager configured")
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
)

// Client implements the ads.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	version      string
	logger       ads.Logger

	// Resource clients
	accounts           *AccountsClient
	fundingInstruments *FundingInstrumentsClient
	campaigns          *CampaignsClient
	lineItems          *LineItemsClient
	promotedTweets     *PromotedTweetsClient
	targetingCriteria  *TargetingCriteriaClient
	tailoredAudiences  *TailoredAudiencesClient
	stats              *StatsClient
}

// createTokenManager creates appropriate token manager based on config.
// A configured access token seeds the OAuth2 manager when client credentials
// or a refresh token are also present, so a 401 can fetch a new one.
func createTokenManager(config *ads.Config) auth.TokenManager {
	hasOAuth := (config.ClientID != "" && config.ClientSecret != "") || config.RefreshToken != ""

	if hasOAuth {
		return auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL:     getTokenURL(config),
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			RefreshToken: config.RefreshToken,
			AccessToken:  config.AccessToken,
		})
	}

	if config.AccessToken != "" {
		return &staticTokenManager{token: config.AccessToken}
	}

	return nil // No authentication
}

// getTokenURL returns token URL from config or the endpoint's default.
func getTokenURL(config *ads.Config) string {
	if config.TokenURL != "" {
		return config.TokenURL
	}

	return strings.TrimSuffix(config.APIEndpoint, "/") + constants.TokenPath
}

func apiVersion(config *ads.Config) string {
	if config.APIVersion != "" {
		return strings.Trim(config.APIVersion, "/")
	}

	return constants.DefaultAPIVersion
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *ads.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	return httpOpts
}

// New creates a new Ads API client. ctx is reserved for start-up calls and
// currently unused.
func New(_ context.Context, config *ads.Config) (*Client, error) {
	if config == nil {
		return nil, ads.ErrConfigRequired
	}

	return NewWithTokenManager(config, createTokenManager(config))
}

// NewWithTokenManager creates a new Ads API client with a custom token manager.
func NewWithTokenManager(config *ads.Config, tokenManager auth.TokenManager, opts ...http.Option) (*Client, error) {
	if config == nil {
		return nil, ads.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, ads.ErrAPIEndpointRequired
	}

	httpOpts := append(createHTTPClientOptions(config), opts...)

	httpClient := http.NewClient(config.APIEndpoint, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.APIEndpoint,
		version:      apiVersion(config),
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// GetToken returns the current access token.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", ErrNoTokenManagerConfigured
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

// Resource client accessors

// Accounts implements ads.Client.Accounts.
func (c *Client) Accounts() ads.AccountsClient {
	return c.accounts
}

// FundingInstruments implements ads.Client.FundingInstruments.
func (c *Client) FundingInstruments() ads.FundingInstrumentsClient {
	return c.fundingInstruments
}

// Campaigns implements ads.Client.Campaigns.
func (c *Client) Campaigns() ads.CampaignsClient {
	return c.campaigns
}

// LineItems implements ads.Client.LineItems.
func (c *Client) LineItems() ads.LineItemsClient {
	return c.lineItems
}

// PromotedTweets implements ads.Client.PromotedTweets.
func (c *Client) PromotedTweets() ads.PromotedTweetsClient {
	return c.promotedTweets
}

// TargetingCriteria implements ads.Client.TargetingCriteria.
func (c *Client) TargetingCriteria() ads.TargetingCriteriaClient {
	return c.targetingCriteria
}

// TailoredAudiences implements ads.Client.TailoredAudiences.
func (c *Client) TailoredAudiences() ads.TailoredAudiencesClient {
	return c.tailoredAudiences
}

// Stats implements ads.Client.Stats.
func (c *Client) Stats() ads.StatsClient {
	return c.stats
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.accounts = NewAccountsClient(c.httpClient, c.version)
	c.fundingInstruments = NewFundingInstrumentsClient(c.httpClient, c.version)
	c.campaigns = NewCampaignsClient(c.httpClient, c.version)
	c.lineItems = NewLineItemsClient(c.httpClient, c.version)
	c.promotedTweets = NewPromotedTweetsClient(c.httpClient, c.version)
	c.targetingCriteria = NewTargetingCriteriaClient(c.httpClient, c.version)
	c.tailoredAudiences = NewTailoredAudiencesClient(c.httpClient, c.version)
	c.stats = NewStatsClient(c.httpClient, c.version)
}

// staticTokenManager provides a static token.
type staticTokenManager struct {
	token string
}

func (m *staticTokenManager) GetToken(_ context.Context) (string, error) {
	return m.token, nil
}

func (m *staticTokenManager) RefreshToken(_ context.Context) error {
	return ErrStaticTokenCannotRefresh
}

func (m *staticTokenManager) SetToken(token string, _ time.Time) {
	m.token = token
}

// loggerAdapter adapts ads.Logger to http.Logger.
type loggerAdapter struct {
	logger ads.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
