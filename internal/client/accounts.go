package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/adsapi/internal/http"
	"github.com/fivetwenty-io/adsapi/pkg/ads"
)

// AccountsClient implements ads.AccountsClient.
type AccountsClient struct {
	httpClient *http.Client
	version    string
}

// NewAccountsClient creates a new accounts client.
func NewAccountsClient(httpClient *http.Client, version string) *AccountsClient {
	return &AccountsClient{
		httpClient: httpClient,
		version:    version,
	}
}

// List implements ads.AccountsClient.List.
func (c *AccountsClient) List(ctx context.Context, query *ads.AccountQuery) (*ads.ListResponse[ads.Account], error) {
	if query == nil {
		query = ads.NewAccountQuery()
	}

	return getList[ads.Account](ctx, c.httpClient, "/"+c.version+"/accounts", query, "account")
}

// ListAll implements ads.AccountsClient.ListAll.
func (c *AccountsClient) ListAll(ctx context.Context, query *ads.AccountQuery) ([]ads.Account, error) {
	base := ads.AccountQuery{}
	if query != nil {
		base = *query
	}

	return walkPages(ctx, base.ListOptions, func(ctx context.Context, page ads.ListOptions) (*ads.ListResponse[ads.Account], error) {
		q := base
		q.ListOptions = page

		return c.List(ctx, &q)
	})
}

// Get implements ads.AccountsClient.Get.
func (c *AccountsClient) Get(ctx context.Context, accountID string) (*ads.Account, error) {
	if accountID == "" {
		return nil, fmt.Errorf("getting account: %w", ads.ErrAccountIDRequired)
	}

	path := "/" + c.version + "/accounts/" + url.PathEscape(accountID)

	resp, err := c.httpClient.Get(ctx, path, "")
	if err != nil {
		return nil, fmt.Errorf("getting account: %w", err)
	}

	account, err := ads.DecodeEntity[ads.Account](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing account: %w", err)
	}

	return account, nil
}
