package client

import (
	"context"

	"github.com/fivetwenty-io/adsapi/internal/http"
	"github.com/fivetwenty-io/adsapi/pkg/ads"
)

// FundingInstrumentsClient implements ads.FundingInstrumentsClient.
type FundingInstrumentsClient struct {
	resources resourceClient[ads.FundingInstrument]
}

// NewFundingInstrumentsClient creates a new funding instruments client.
func NewFundingInstrumentsClient(httpClient *http.Client, version string) *FundingInstrumentsClient {
	return &FundingInstrumentsClient{
		resources: newResourceClient[ads.FundingInstrument](httpClient, version, "funding_instruments", "funding instrument"),
	}
}

// List implements ads.FundingInstrumentsClient.List.
func (c *FundingInstrumentsClient) List(ctx context.Context, accountID string, query *ads.FundingInstrumentQuery) (*ads.ListResponse[ads.FundingInstrument], error) {
	if query == nil {
		query = &ads.FundingInstrumentQuery{}
	}

	return c.resources.list(ctx, accountID, query)
}

// Get implements ads.FundingInstrumentsClient.Get.
func (c *FundingInstrumentsClient) Get(ctx context.Context, accountID, fundingInstrumentID string) (*ads.FundingInstrument, error) {
	return c.resources.get(ctx, accountID, fundingInstrumentID)
}
