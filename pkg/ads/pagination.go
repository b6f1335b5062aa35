package ads

import (
	"context"
	"errors"
	"fmt"
)

// PaginationClient fetches one page of a list. An empty cursor requests the
// first page.
type PaginationClient[T any] interface {
	ListPage(ctx context.Context, cursor string) (*ListResponse[T], error)
}

// PageFunc adapts a plain function to PaginationClient.
type PageFunc[T any] func(ctx context.Context, cursor string) (*ListResponse[T], error)

// ListPage implements PaginationClient.
func (f PageFunc[T]) ListPage(ctx context.Context, cursor string) (*ListResponse[T], error) {
	return f(ctx, cursor)
}

// PaginationOptions bounds a multi-page fetch.
type PaginationOptions struct {
	// MaxPages stops after this many pages; 0 means no limit. Stopping with a
	// next_cursor still pending yields ErrMaxPagesReached.
	MaxPages int
}

// PaginationIterator walks every item of a cursor-paginated list, fetching
// pages lazily.
type PaginationIterator[T any] struct {
	ctx     context.Context //nolint:containedctx // iterator is bound to one traversal
	client  PaginationClient[T]
	items   []T
	index   int
	cursor  string
	started bool
	done    bool
	pages   int
	err     error
	opts    PaginationOptions
}

// NewPaginationIterator creates an iterator over client's pages.
func NewPaginationIterator[T any](ctx context.Context, client PaginationClient[T], opts *PaginationOptions) *PaginationIterator[T] {
	it := &PaginationIterator[T]{
		ctx:    ctx,
		client: client,
	}

	if opts != nil {
		it.opts = *opts
	}

	return it
}

// HasNext reports whether another item is available, fetching the next page
// when the current one is exhausted. Fetch errors are surfaced by Next.
func (it *PaginationIterator[T]) HasNext() bool {
	for it.index >= len(it.items) {
		if it.done {
			return false
		}

		it.err = it.fetch()
		if it.err != nil {
			return true
		}
	}

	return true
}

// Next returns the next item.
func (it *PaginationIterator[T]) Next() (T, error) {
	var zero T

	if it.err != nil {
		err := it.err
		it.err = nil

		return zero, err
	}

	for it.index >= len(it.items) {
		if it.done {
			return zero, ErrNoMoreItems
		}

		err := it.fetch()
		if err != nil {
			return zero, err
		}
	}

	item := it.items[it.index]
	it.index++

	return item, nil
}

// All drains the iterator.
func (it *PaginationIterator[T]) All() ([]T, error) {
	var all []T

	for {
		item, err := it.Next()
		if errors.Is(err, ErrNoMoreItems) {
			return all, nil
		}

		if err != nil {
			return all, err
		}

		all = append(all, item)
	}
}

// ForEach calls fn for every remaining item, stopping at the first error.
func (it *PaginationIterator[T]) ForEach(fn func(T) error) error {
	for {
		item, err := it.Next()
		if errors.Is(err, ErrNoMoreItems) {
			return nil
		}

		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}
}

func (it *PaginationIterator[T]) fetch() error {
	if it.started && it.cursor == "" {
		it.done = true

		return nil
	}

	if it.opts.MaxPages > 0 && it.pages >= it.opts.MaxPages {
		it.done = true

		return maxPagesReached(it.opts.MaxPages)
	}

	page, err := it.client.ListPage(it.ctx, it.cursor)
	if err != nil {
		it.done = true

		return err
	}

	if page == nil {
		it.done = true

		return fmt.Errorf("%w: nil page for cursor %q", ErrUnexpectedResponseBody, it.cursor)
	}

	it.started = true
	it.pages++
	it.items = page.Data
	it.index = 0
	it.cursor = page.Cursor()

	return nil
}

// FetchAllPages follows next_cursor from the first page until the server
// stops returning one, concatenating items in source order. Items fetched
// before an error are returned along with it.
func FetchAllPages[T any](ctx context.Context, client PaginationClient[T], opts *PaginationOptions) ([]T, error) {
	maxPages := 0
	if opts != nil {
		maxPages = opts.MaxPages
	}

	var (
		all    []T
		cursor string
	)

	for pages := 0; ; pages++ {
		if maxPages > 0 && pages >= maxPages {
			return all, maxPagesReached(maxPages)
		}

		page, err := client.ListPage(ctx, cursor)
		if err != nil {
			return all, err
		}

		if page == nil {
			return all, fmt.Errorf("%w: nil page for cursor %q", ErrUnexpectedResponseBody, cursor)
		}

		all = append(all, page.Data...)

		if !page.HasNext() {
			return all, nil
		}

		cursor = page.Cursor()
	}
}

func maxPagesReached(maxPages int) error {
	return fmt.Errorf("%w: stopped after %d pages", ErrMaxPagesReached, maxPages)
}
