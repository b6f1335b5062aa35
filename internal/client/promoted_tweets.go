package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/adsapi/internal/http"
	"github.com/fivetwenty-io/adsapi/pkg/ads"
)

// PromotedTweetsClient implements ads.PromotedTweetsClient.
type PromotedTweetsClient struct {
	resources resourceClient[ads.PromotedTweet]
}

// NewPromotedTweetsClient creates a new promoted tweets client.
func NewPromotedTweetsClient(httpClient *http.Client, version string) *PromotedTweetsClient {
	return &PromotedTweetsClient{
		resources: newResourceClient[ads.PromotedTweet](httpClient, version, "promoted_tweets", "promoted tweet"),
	}
}

// List implements ads.PromotedTweetsClient.List.
func (c *PromotedTweetsClient) List(ctx context.Context, accountID string, query *ads.PromotedTweetQuery) (*ads.ListResponse[ads.PromotedTweet], error) {
	if query == nil {
		query = &ads.PromotedTweetQuery{}
	}

	return c.resources.list(ctx, accountID, query)
}

// Get implements ads.PromotedTweetsClient.Get.
func (c *PromotedTweetsClient) Get(ctx context.Context, accountID, promotedTweetID string) (*ads.PromotedTweet, error) {
	return c.resources.get(ctx, accountID, promotedTweetID)
}

// Create implements ads.PromotedTweetsClient.Create. One promoted tweet is
// created per tweet ID and the response is a list.
func (c *PromotedTweetsClient) Create(ctx context.Context, accountID string, form *ads.PromotedTweetForm) ([]ads.PromotedTweet, error) {
	path, err := c.resources.collectionPath(accountID)
	if err != nil {
		return nil, fmt.Errorf("creating promoted tweets: %w", err)
	}

	if form == nil {
		form = &ads.PromotedTweetForm{}
	}

	body, err := ads.FormBody(form)
	if err != nil {
		return nil, fmt.Errorf("encoding promoted tweet form: %w", err)
	}

	resp, err := c.resources.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("creating promoted tweets: %w", err)
	}

	list, err := ads.DecodeList(resp.Body, ads.DecodeJSON[ads.PromotedTweet])
	if err != nil {
		return nil, fmt.Errorf("parsing promoted tweets response: %w", err)
	}

	return list.Data, nil
}

// Delete implements ads.PromotedTweetsClient.Delete.
func (c *PromotedTweetsClient) Delete(ctx context.Context, accountID, promotedTweetID string) (*ads.PromotedTweet, error) {
	return c.resources.remove(ctx, accountID, promotedTweetID)
}
