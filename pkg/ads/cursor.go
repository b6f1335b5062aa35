package ads

import (
	"encoding/json"
	"fmt"
)

// ListResponse is one decoded page of a cursor-paginated list.
type ListResponse[T any] struct {
	Data       []T     `json:"data"                  yaml:"data"`
	NextCursor *string `json:"next_cursor,omitempty" yaml:"next_cursor,omitempty"`
	TotalCount *int64  `json:"total_count,omitempty" yaml:"total_count,omitempty"`
}

// HasNext reports whether the server announced a further page.
func (r *ListResponse[T]) HasNext() bool {
	return r != nil && r.NextCursor != nil
}

// Cursor returns the next-page cursor, or "" on the last page.
func (r *ListResponse[T]) Cursor() string {
	if !r.HasNext() {
		return ""
	}

	return *r.NextCursor
}

type rawListEnvelope struct {
	Data       *[]json.RawMessage `json:"data"`
	NextCursor *string            `json:"next_cursor"`
	TotalCount *int64             `json:"total_count"`
}

// DecodeList decodes a list envelope, handing each element of data to
// decodeOne in source order.
//
// A missing or null data array is malformed. The first element that fails
// to decode aborts the page with a PartialDecodeError carrying its index.
// An empty next_cursor is treated the same as an absent one.
func DecodeList[T any](body []byte, decodeOne func(json.RawMessage) (T, error)) (*ListResponse[T], error) {
	var env rawListEnvelope

	err := json.Unmarshal(body, &env)
	if err != nil {
		return nil, &MalformedValueError{Field: "envelope", Raw: truncate(body), Err: err}
	}

	if env.Data == nil {
		return nil, &MalformedValueError{Field: "data", Raw: truncate(body)}
	}

	items := make([]T, 0, len(*env.Data))

	for i, raw := range *env.Data {
		item, err := decodeOne(raw)
		if err != nil {
			return nil, &PartialDecodeError{Index: i, Err: err}
		}

		items = append(items, item)
	}

	resp := &ListResponse[T]{
		Data:       items,
		TotalCount: env.TotalCount,
	}

	if env.NextCursor != nil && *env.NextCursor != "" {
		next := *env.NextCursor
		resp.NextCursor = &next
	}

	return resp, nil
}

// DecodeJSON is the default element decoder: plain json.Unmarshal into T.
func DecodeJSON[T any](raw json.RawMessage) (T, error) {
	var v T

	err := json.Unmarshal(raw, &v)
	if err != nil {
		return v, fmt.Errorf("decoding %T: %w", v, err)
	}

	return v, nil
}

// DecodeEntity decodes a single-entity envelope of the form {"data": {...}}.
func DecodeEntity[T any](body []byte) (*T, error) {
	var env struct {
		Data json.RawMessage `json:"data"`
	}

	err := json.Unmarshal(body, &env)
	if err != nil {
		return nil, &MalformedValueError{Field: "envelope", Raw: truncate(body), Err: err}
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, &MalformedValueError{Field: "data", Raw: truncate(body)}
	}

	v, err := DecodeJSON[T](env.Data)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

const maxRawInError = 128

func truncate(body []byte) string {
	if len(body) <= maxRawInError {
		return string(body)
	}

	return string(body[:maxRawInError]) + "..."
}
