package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/fivetwenty-io/adsapi/internal/http"
	"github.com/fivetwenty-io/adsapi/pkg/ads"
)

// Static errors for err113 compliance.
var (
	ErrLineItemIDsRequired = errors.New("targeting criteria list requires line item or criterion IDs")
)

// TargetingCriteriaClient implements ads.TargetingCriteriaClient.
type TargetingCriteriaClient struct {
	resources resourceClient[ads.TargetingCriterion]
}

// NewTargetingCriteriaClient creates a new targeting criteria client.
func NewTargetingCriteriaClient(httpClient *http.Client, version string) *TargetingCriteriaClient {
	return &TargetingCriteriaClient{
		resources: newResourceClient[ads.TargetingCriterion](httpClient, version, "targeting_criteria", "targeting criterion"),
	}
}

// List implements ads.TargetingCriteriaClient.List. The API requires either
// line item IDs or criterion IDs.
func (c *TargetingCriteriaClient) List(ctx context.Context, accountID string, query *ads.TargetingCriteriaQuery) (*ads.ListResponse[ads.TargetingCriterion], error) {
	if query == nil || (!query.LineItemIDs.IsSet() && !query.TargetingCriterionIDs.IsSet()) {
		return nil, fmt.Errorf("listing targeting criteria: %w", ErrLineItemIDsRequired)
	}

	return c.resources.list(ctx, accountID, query)
}

// Get implements ads.TargetingCriteriaClient.Get.
func (c *TargetingCriteriaClient) Get(ctx context.Context, accountID, criterionID string) (*ads.TargetingCriterion, error) {
	return c.resources.get(ctx, accountID, criterionID)
}

// Create implements ads.TargetingCriteriaClient.Create.
func (c *TargetingCriteriaClient) Create(ctx context.Context, accountID string, form *ads.TargetingCriterionForm) (*ads.TargetingCriterion, error) {
	if form == nil {
		form = &ads.TargetingCriterionForm{}
	}

	return c.resources.create(ctx, accountID, form)
}

// Delete implements ads.TargetingCriteriaClient.Delete.
func (c *TargetingCriteriaClient) Delete(ctx context.Context, accountID, criterionID string) (*ads.TargetingCriterion, error) {
	return c.resources.remove(ctx, accountID, criterionID)
}

// Locations implements ads.TargetingCriteriaClient.Locations.
func (c *TargetingCriteriaClient) Locations(ctx context.Context, query *ads.TargetingLocationQuery) (*ads.ListResponse[ads.TargetingLocation], error) {
	if query == nil {
		query = &ads.TargetingLocationQuery{}
	}

	path := "/" + c.resources.version + "/targeting_criteria/locations"

	return getList[ads.TargetingLocation](ctx, c.resources.httpClient, path, query, "targeting location")
}
