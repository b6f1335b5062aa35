package adsclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/adsapi/internal/client"
	"github.com/fivetwenty-io/adsapi/pkg/ads"
)

// New creates a new Ads API client. The config is copied; the endpoint is
// normalized to carry a scheme and no trailing slash.
func New(ctx context.Context, config *ads.Config) (ads.Client, error) {
	if config == nil {
		return nil, ads.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, ads.ErrAPIEndpointRequired
	}

	normalized := *config
	normalized.APIEndpoint = NormalizeEndpoint(config.APIEndpoint)

	c, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NormalizeEndpoint trims whitespace and a trailing slash and adds "https://"
// when no scheme is present.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(strings.TrimSpace(endpoint), "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

// NewWithToken creates a new client with an API endpoint and access token.
func NewWithToken(ctx context.Context, endpoint, token string) (ads.Client, error) {
	return New(ctx, &ads.Config{
		APIEndpoint: endpoint,
		AccessToken: token,
	})
}

// NewWithClientCredentials creates a new client using OAuth2 client credentials.
func NewWithClientCredentials(ctx context.Context, endpoint, clientID, clientSecret string) (ads.Client, error) {
	return New(ctx, &ads.Config{
		APIEndpoint:  endpoint,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}

// NewWithRefreshToken creates a new client that obtains access tokens through
// the refresh_token grant.
func NewWithRefreshToken(ctx context.Context, endpoint, clientID, clientSecret, refreshToken string) (ads.Client, error) {
	return New(ctx, &ads.Config{
		APIEndpoint:  endpoint,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RefreshToken: refreshToken,
	})
}
