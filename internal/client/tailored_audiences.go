package client

import (
	"context"

	"github.com/fivetwenty-io/adsapi/internal/http"
	"github.com/fivetwenty-io/adsapi/pkg/ads"
)

// TailoredAudiencesClient implements ads.TailoredAudiencesClient.
type TailoredAudiencesClient struct {
	resources resourceClient[ads.TailoredAudience]
}

// NewTailoredAudiencesClient creates a new tailored audiences client.
func NewTailoredAudiencesClient(httpClient *http.Client, version string) *TailoredAudiencesClient {
	return &TailoredAudiencesClient{
		resources: newResourceClient[ads.TailoredAudience](httpClient, version, "tailored_audiences", "tailored audience"),
	}
}

// List implements ads.TailoredAudiencesClient.List.
func (c *TailoredAudiencesClient) List(ctx context.Context, accountID string, query *ads.TailoredAudienceQuery) (*ads.ListResponse[ads.TailoredAudience], error) {
	if query == nil {
		query = &ads.TailoredAudienceQuery{}
	}

	return c.resources.list(ctx, accountID, query)
}

// Get implements ads.TailoredAudiencesClient.Get.
func (c *TailoredAudiencesClient) Get(ctx context.Context, accountID, audienceID string) (*ads.TailoredAudience, error) {
	return c.resources.get(ctx, accountID, audienceID)
}

// Create implements ads.TailoredAudiencesClient.Create.
func (c *TailoredAudiencesClient) Create(ctx context.Context, accountID string, form *ads.TailoredAudienceForm) (*ads.TailoredAudience, error) {
	if form == nil {
		form = &ads.TailoredAudienceForm{}
	}

	return c.resources.create(ctx, accountID, form)
}

// Delete implements ads.TailoredAudiencesClient.Delete.
func (c *TailoredAudiencesClient) Delete(ctx context.Context, accountID, audienceID string) (*ads.TailoredAudience, error) {
	return c.resources.remove(ctx, accountID, audienceID)
}
