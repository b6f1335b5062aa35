package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/adsapi/internal/constants"
	"github.com/fivetwenty-io/adsapi/internal/http"
	"github.com/fivetwenty-io/adsapi/pkg/ads"
)

// resourceClient provides the calls shared by account-scoped entities that
// live under /{version}/accounts/{account_id}/{collection}.
type resourceClient[T any] struct {
	httpClient *http.Client
	version    string
	collection string
	kind       string
}

func newResourceClient[T any](httpClient *http.Client, version, collection, kind string) resourceClient[T] {
	return resourceClient[T]{
		httpClient: httpClient,
		version:    version,
		collection: collection,
		kind:       kind,
	}
}

func (c resourceClient[T]) collectionPath(accountID string) (string, error) {
	if accountID == "" {
		return "", ads.ErrAccountIDRequired
	}

	return "/" + c.version + "/accounts/" + url.PathEscape(accountID) + "/" + c.collection, nil
}

func (c resourceClient[T]) entityPath(accountID, id string) (string, error) {
	path, err := c.collectionPath(accountID)
	if err != nil {
		return "", err
	}

	if id == "" {
		return "", ads.ErrEntityIDRequired
	}

	return path + "/" + url.PathEscape(id), nil
}

// list fetches one page. A nil query sends no parameters.
func (c resourceClient[T]) list(ctx context.Context, accountID string, query ads.Fielder) (*ads.ListResponse[T], error) {
	path, err := c.collectionPath(accountID)
	if err != nil {
		return nil, fmt.Errorf("listing %ss: %w", c.kind, err)
	}

	return getList[T](ctx, c.httpClient, path, query, c.kind)
}

func (c resourceClient[T]) get(ctx context.Context, accountID, id string) (*T, error) {
	path, err := c.entityPath(accountID, id)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", c.kind, err)
	}

	resp, err := c.httpClient.Get(ctx, path, "")
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", c.kind, err)
	}

	entity, err := ads.DecodeEntity[T](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", c.kind, err)
	}

	return entity, nil
}

func (c resourceClient[T]) create(ctx context.Context, accountID string, form ads.Fielder) (*T, error) {
	path, err := c.collectionPath(accountID)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", c.kind, err)
	}

	body, err := ads.FormBody(form)
	if err != nil {
		return nil, fmt.Errorf("encoding %s form: %w", c.kind, err)
	}

	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", c.kind, err)
	}

	entity, err := ads.DecodeEntity[T](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", c.kind, err)
	}

	return entity, nil
}

func (c resourceClient[T]) update(ctx context.Context, accountID, id string, form ads.Fielder) (*T, error) {
	path, err := c.entityPath(accountID, id)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", c.kind, err)
	}

	body, err := ads.FormBody(form)
	if err != nil {
		return nil, fmt.Errorf("encoding %s form: %w", c.kind, err)
	}

	resp, err := c.httpClient.Put(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", c.kind, err)
	}

	entity, err := ads.DecodeEntity[T](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", c.kind, err)
	}

	return entity, nil
}

// remove deletes an entity. The API answers with the entity flagged deleted.
func (c resourceClient[T]) remove(ctx context.Context, accountID, id string) (*T, error) {
	path, err := c.entityPath(accountID, id)
	if err != nil {
		return nil, fmt.Errorf("deleting %s: %w", c.kind, err)
	}

	resp, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("deleting %s: %w", c.kind, err)
	}

	entity, err := ads.DecodeEntity[T](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", c.kind, err)
	}

	return entity, nil
}

// getList issues a GET for one list page and decodes it.
func getList[T any](ctx context.Context, httpClient *http.Client, path string, query ads.Fielder, kind string) (*ads.ListResponse[T], error) {
	var encoded string

	if query != nil {
		var err error

		encoded, err = ads.QueryString(query)
		if err != nil {
			return nil, fmt.Errorf("encoding %s query: %w", kind, err)
		}
	}

	resp, err := httpClient.Get(ctx, path, encoded)
	if err != nil {
		return nil, fmt.Errorf("listing %ss: %w", kind, err)
	}

	list, err := ads.DecodeList(resp.Body, ads.DecodeJSON[T])
	if err != nil {
		return nil, fmt.Errorf("parsing %ss list: %w", kind, err)
	}

	return list, nil
}

// pageSize returns the count to request per page when walking all pages.
func pageSize(options ads.ListOptions) ads.Opt[int] {
	if options.Count.IsSet() {
		return options.Count
	}

	return ads.Set(constants.DefaultPageSize)
}

// walkPages follows next_cursor across every page. fetch receives the list
// options for each page with the cursor filled in. After constants.MaxPages
// pages the items gathered so far are returned with ads.ErrMaxPagesReached.
func walkPages[T any](ctx context.Context, options ads.ListOptions, fetch func(ctx context.Context, page ads.ListOptions) (*ads.ListResponse[T], error)) ([]T, error) {
	options.Count = pageSize(options)

	pages := ads.PageFunc[T](func(ctx context.Context, cursor string) (*ads.ListResponse[T], error) {
		page := options
		if cursor != "" {
			page.Cursor = ads.Set(cursor)
		}

		return fetch(ctx, page)
	})

	return ads.FetchAllPages[T](ctx, pages, &ads.PaginationOptions{MaxPages: constants.MaxPages})
}
