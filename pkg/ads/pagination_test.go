package ads_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/fivetwenty-io/adsapi/pkg/ads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errPageUnavailable = errors.New("page unavailable")

// mockPages serves pages keyed by cursor and records the cursors requested.
type mockPages struct {
	pages    map[string]*ads.ListResponse[testEntity]
	failAt   string
	requests []string
}

func newMockPages() *mockPages {
	next := func(s string) *string { return &s }

	return &mockPages{
		pages: map[string]*ads.ListResponse[testEntity]{
			"": {
				Data:       []testEntity{{ID: "1"}, {ID: "2"}},
				NextCursor: next("c2"),
			},
			"c2": {
				Data:       []testEntity{},
				NextCursor: next("c3"),
			},
			"c3": {
				Data: []testEntity{{ID: "3"}},
			},
		},
	}
}

func (m *mockPages) ListPage(_ context.Context, cursor string) (*ads.ListResponse[testEntity], error) {
	m.requests = append(m.requests, cursor)

	if m.failAt != "" && cursor == m.failAt {
		return nil, errPageUnavailable
	}

	page, ok := m.pages[cursor]
	if !ok {
		return nil, errPageUnavailable
	}

	return page, nil
}

func ids(items []testEntity) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}

	return out
}

func TestFetchAllPages(t *testing.T) {
	t.Parallel()

	pages := newMockPages()

	all, err := ads.FetchAllPages[testEntity](context.Background(), pages, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids(all))
	assert.Equal(t, []string{"", "c2", "c3"}, pages.requests)
}

func TestFetchAllPagesMaxPages(t *testing.T) {
	t.Parallel()

	pages := newMockPages()

	all, err := ads.FetchAllPages[testEntity](context.Background(), pages, &ads.PaginationOptions{MaxPages: 1})
	require.ErrorIs(t, err, ads.ErrMaxPagesReached)
	assert.Equal(t, []string{"1", "2"}, ids(all))
	assert.Equal(t, []string{""}, pages.requests)

	exact := newMockPages()

	all, err = ads.FetchAllPages[testEntity](context.Background(), exact, &ads.PaginationOptions{MaxPages: 3})
	require.NoError(t, err, "a limit met by the final page is not a truncation")
	assert.Equal(t, []string{"1", "2", "3"}, ids(all))
}

func TestFetchAllPagesReportsTruncation(t *testing.T) {
	t.Parallel()

	endless := ads.PageFunc[int](func(_ context.Context, cursor string) (*ads.ListResponse[int], error) {
		n := 0
		if cursor != "" {
			var err error

			n, err = strconv.Atoi(cursor)
			if err != nil {
				return nil, err
			}
		}

		next := strconv.Itoa(n + 1)

		return &ads.ListResponse[int]{Data: []int{n}, NextCursor: &next}, nil
	})

	items, err := ads.FetchAllPages[int](context.Background(), endless, &ads.PaginationOptions{MaxPages: 3})
	require.ErrorIs(t, err, ads.ErrMaxPagesReached)
	assert.Contains(t, err.Error(), "3 pages")
	assert.Equal(t, []int{0, 1, 2}, items)
}

func TestFetchAllPagesRejectsNilPage(t *testing.T) {
	t.Parallel()

	pages := newMockPages()
	pages.pages["c2"] = nil

	all, err := ads.FetchAllPages[testEntity](context.Background(), pages, nil)
	require.ErrorIs(t, err, ads.ErrUnexpectedResponseBody)
	assert.Equal(t, []string{"1", "2"}, ids(all))

	iterator := ads.NewPaginationIterator[testEntity](context.Background(), pages, nil)

	all, err = iterator.All()
	require.ErrorIs(t, err, ads.ErrUnexpectedResponseBody)
	assert.Equal(t, []string{"1", "2"}, ids(all))
	assert.False(t, iterator.HasNext())
}

func TestFetchAllPagesKeepsItemsBeforeFailure(t *testing.T) {
	t.Parallel()

	pages := newMockPages()
	pages.failAt = "c3"

	all, err := ads.FetchAllPages[testEntity](context.Background(), pages, nil)
	require.ErrorIs(t, err, errPageUnavailable)
	assert.Equal(t, []string{"1", "2"}, ids(all))
}

func TestPaginationIterator(t *testing.T) {
	t.Parallel()

	pages := newMockPages()
	iterator := ads.NewPaginationIterator[testEntity](context.Background(), pages, nil)

	assert.Empty(t, pages.requests, "pages are fetched lazily")

	var seen []string

	for iterator.HasNext() {
		item, err := iterator.Next()
		require.NoError(t, err)

		seen = append(seen, item.ID)
	}

	assert.Equal(t, []string{"1", "2", "3"}, seen)
	assert.Equal(t, []string{"", "c2", "c3"}, pages.requests)

	_, err := iterator.Next()
	require.ErrorIs(t, err, ads.ErrNoMoreItems)
}

func TestPaginationIteratorAll(t *testing.T) {
	t.Parallel()

	iterator := ads.NewPaginationIterator[testEntity](context.Background(), newMockPages(), &ads.PaginationOptions{MaxPages: 2})

	all, err := iterator.All()
	require.ErrorIs(t, err, ads.ErrMaxPagesReached)
	assert.Equal(t, []string{"1", "2"}, ids(all))
	assert.False(t, iterator.HasNext())
}

func TestPaginationIteratorForEachStopsOnError(t *testing.T) {
	t.Parallel()

	errStop := errors.New("stop")

	var seen []string

	err := ads.NewPaginationIterator[testEntity](context.Background(), newMockPages(), nil).
		ForEach(func(item testEntity) error {
			seen = append(seen, item.ID)
			if item.ID == "2" {
				return errStop
			}

			return nil
		})

	require.ErrorIs(t, err, errStop)
	assert.Equal(t, []string{"1", "2"}, seen)
}

func TestPaginationIteratorSurfacesFetchError(t *testing.T) {
	t.Parallel()

	pages := newMockPages()
	pages.failAt = "c2"

	iterator := ads.NewPaginationIterator[testEntity](context.Background(), pages, nil)

	all, err := iterator.All()
	require.ErrorIs(t, err, errPageUnavailable)
	assert.Equal(t, []string{"1", "2"}, ids(all))
}

func TestPageFunc(t *testing.T) {
	t.Parallel()

	calls := 0
	pages := ads.PageFunc[testEntity](func(_ context.Context, cursor string) (*ads.ListResponse[testEntity], error) {
		calls++

		return &ads.ListResponse[testEntity]{Data: []testEntity{{ID: cursor}}}, nil
	})

	all, err := ads.FetchAllPages[testEntity](context.Background(), pages, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, ids(all))
	assert.Equal(t, 1, calls)
}
