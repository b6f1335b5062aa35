package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/adsapi/internal/http"
	"github.com/fivetwenty-io/adsapi/pkg/ads"
)

// StatsClient implements ads.StatsClient.
type StatsClient struct {
	httpClient *http.Client
	version    string
}

// NewStatsClient creates a new stats client.
func NewStatsClient(httpClient *http.Client, version string) *StatsClient {
	return &StatsClient{
		httpClient: httpClient,
		version:    version,
	}
}

// Fetch implements ads.StatsClient.Fetch. The query is validated against the
// metric catalogue before any request is sent.
func (c *StatsClient) Fetch(ctx context.Context, accountID string, query *ads.StatsQuery) ([]ads.StatisticsSnapshot, error) {
	if accountID == "" {
		return nil, fmt.Errorf("fetching stats: %w", ads.ErrAccountIDRequired)
	}

	if query == nil {
		return nil, fmt.Errorf("fetching stats: %w", ads.ErrEntityRequired)
	}

	err := query.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating stats query: %w", err)
	}

	encoded, err := ads.QueryString(query)
	if err != nil {
		return nil, fmt.Errorf("encoding stats query: %w", err)
	}

	path := "/" + c.version + "/stats/accounts/" + url.PathEscape(accountID)

	resp, err := c.httpClient.Get(ctx, path, encoded)
	if err != nil {
		return nil, fmt.Errorf("fetching stats: %w", err)
	}

	snapshots, err := ads.DecodeStats(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing stats response: %w", err)
	}

	return snapshots, nil
}
