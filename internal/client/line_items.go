package client

import (
	"context"

	"github.com/fivetwenty-io/adsapi/internal/http"
	"github.com/fivetwenty-io/adsapi/pkg/ads"
)

// LineItemsClient implements ads.LineItemsClient.
type LineItemsClient struct {
	resources resourceClient[ads.LineItem]
}

// NewLineItemsClient creates a new line items client.
func NewLineItemsClient(httpClient *http.Client, version string) *LineItemsClient {
	return &LineItemsClient{
		resources: newResourceClient[ads.LineItem](httpClient, version, "line_items", "line item"),
	}
}

// List implements ads.LineItemsClient.List.
func (c *LineItemsClient) List(ctx context.Context, accountID string, query *ads.LineItemQuery) (*ads.ListResponse[ads.LineItem], error) {
	if query == nil {
		query = ads.NewLineItemQuery()
	}

	return c.resources.list(ctx, accountID, query)
}

// ListAll implements ads.LineItemsClient.ListAll.
func (c *LineItemsClient) ListAll(ctx context.Context, accountID string, query *ads.LineItemQuery) ([]ads.LineItem, error) {
	base := ads.LineItemQuery{}
	if query != nil {
		base = *query
	}

	return walkPages(ctx, base.ListOptions, func(ctx context.Context, page ads.ListOptions) (*ads.ListResponse[ads.LineItem], error) {
		q := base
		q.ListOptions = page

		return c.List(ctx, accountID, &q)
	})
}

// Get implements ads.LineItemsClient.Get.
func (c *LineItemsClient) Get(ctx context.Context, accountID, lineItemID string) (*ads.LineItem, error) {
	return c.resources.get(ctx, accountID, lineItemID)
}

// Create implements ads.LineItemsClient.Create.
func (c *LineItemsClient) Create(ctx context.Context, accountID string, form *ads.LineItemForm) (*ads.LineItem, error) {
	if form == nil {
		form = ads.NewLineItemForm()
	}

	return c.resources.create(ctx, accountID, form)
}

// Update implements ads.LineItemsClient.Update. Only fields set on form are sent.
func (c *LineItemsClient) Update(ctx context.Context, accountID, lineItemID string, form *ads.LineItemForm) (*ads.LineItem, error) {
	if form == nil {
		form = ads.NewLineItemForm()
	}

	return c.resources.update(ctx, accountID, lineItemID, form)
}

// Delete implements ads.LineItemsClient.Delete.
func (c *LineItemsClient) Delete(ctx context.Context, accountID, lineItemID string) (*ads.LineItem, error) {
	return c.resources.remove(ctx, accountID, lineItemID)
}
