package client

import (
	"context"

	"github.com/fivetwenty-io/adsapi/internal/http"
	"github.com/fivetwenty-io/adsapi/pkg/ads"
)

// CampaignsClient implements ads.CampaignsClient.
type CampaignsClient struct {
	resources resourceClient[ads.Campaign]
}

// NewCampaignsClient creates a new campaigns client.
func NewCampaignsClient(httpClient *http.Client, version string) *CampaignsClient {
	return &CampaignsClient{
		resources: newResourceClient[ads.Campaign](httpClient, version, "campaigns", "campaign"),
	}
}

// List implements ads.CampaignsClient.List.
func (c *CampaignsClient) List(ctx context.Context, accountID string, query *ads.CampaignQuery) (*ads.ListResponse[ads.Campaign], error) {
	if query == nil {
		query = ads.NewCampaignQuery()
	}

	return c.resources.list(ctx, accountID, query)
}

// ListAll implements ads.CampaignsClient.ListAll.
func (c *CampaignsClient) ListAll(ctx context.Context, accountID string, query *ads.CampaignQuery) ([]ads.Campaign, error) {
	base := ads.CampaignQuery{}
	if query != nil {
		base = *query
	}

	return walkPages(ctx, base.ListOptions, func(ctx context.Context, page ads.ListOptions) (*ads.ListResponse[ads.Campaign], error) {
		q := base
		q.ListOptions = page

		return c.List(ctx, accountID, &q)
	})
}

// Get implements ads.CampaignsClient.Get.
func (c *CampaignsClient) Get(ctx context.Context, accountID, campaignID string) (*ads.Campaign, error) {
	return c.resources.get(ctx, accountID, campaignID)
}

// Create implements ads.CampaignsClient.Create.
func (c *CampaignsClient) Create(ctx context.Context, accountID string, form *ads.CampaignForm) (*ads.Campaign, error) {
	if form == nil {
		form = ads.NewCampaignForm()
	}

	return c.resources.create(ctx, accountID, form)
}

// Update implements ads.CampaignsClient.Update. Only fields set on form are sent.
func (c *CampaignsClient) Update(ctx context.Context, accountID, campaignID string, form *ads.CampaignForm) (*ads.Campaign, error) {
	if form == nil {
		form = ads.NewCampaignForm()
	}

	return c.resources.update(ctx, accountID, campaignID, form)
}

// Delete implements ads.CampaignsClient.Delete.
func (c *CampaignsClient) Delete(ctx context.Context, accountID, campaignID string) (*ads.Campaign, error) {
	return c.resources.remove(ctx, accountID, campaignID)
}
