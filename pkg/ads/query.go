package ads

import (
	"cmp"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ListOptions holds the parameters shared by every list endpoint. They are
// emitted after the endpoint's own filters.
type ListOptions struct {
	Count          Opt[int]
	Cursor         Opt[string]
	SortBy         Opt[[]string]
	WithDeleted    Opt[bool]
	WithTotalCount Opt[bool]
}

var (
	countField          = FieldDescriptor{Order: 90, Name: "Count", Wire: "count", Kind: KindInteger}
	cursorField         = FieldDescriptor{Order: 91, Name: "Cursor", Wire: "cursor", Kind: KindString}
	sortByField         = FieldDescriptor{Order: 92, Name: "SortBy", Wire: "sort_by", Kind: KindStringList}
	withDeletedField    = FieldDescriptor{Order: 93, Name: "WithDeleted", Wire: "with_deleted", Kind: KindBoolean}
	withTotalCountField = FieldDescriptor{Order: 94, Name: "WithTotalCount", Wire: "with_total_count", Kind: KindBoolean}
)

// Fields implements Fielder.
func (o ListOptions) Fields() []FieldValue {
	return []FieldValue{
		Field(countField, o.Count),
		Field(cursorField, o.Cursor),
		Field(sortByField, o.SortBy),
		Field(withDeletedField, o.WithDeleted),
		Field(withTotalCountField, o.WithTotalCount),
	}
}

// pair is one encoded key/value.
type pair struct {
	key   string
	value string
}

// encodePairs walks fields in declared order and encodes every set value.
func encodePairs(fields []FieldValue) ([]pair, error) {
	ordered := slices.Clone(fields)
	slices.SortStableFunc(ordered, func(a, b FieldValue) int {
		return cmp.Compare(a.Descriptor.Order, b.Descriptor.Order)
	})

	pairs := make([]pair, 0, len(ordered))

	for _, f := range ordered {
		if !f.Set {
			continue
		}

		d := f.Descriptor

		if d.Kind == KindTimestampRange {
			ranged, err := encodeRange(d, f.Value)
			if err != nil {
				return nil, err
			}

			pairs = append(pairs, ranged...)

			continue
		}

		value, err := EncodeValue(d.Name, d.Kind, f.Value)
		if err != nil {
			return nil, err
		}

		pairs = append(pairs, pair{key: d.wireFor(listLen(f.Value)), value: value})
	}

	return pairs, nil
}

func encodeRange(d FieldDescriptor, value any) ([]pair, error) {
	r, ok := value.(TimeRange)
	if !ok {
		return nil, &UnsupportedValueKindError{Field: d.Name, Kind: d.Kind, Value: value}
	}

	if r.Start.IsZero() && r.End.IsZero() {
		return nil, fmt.Errorf("field %q: %w", d.Name, ErrEmptyTimeRange)
	}

	out := make([]pair, 0, len(d.RangeWire))

	if !r.Start.IsZero() {
		out = append(out, pair{key: d.RangeWire[0], value: FormatTimestamp(r.Start)})
	}

	if !r.End.IsZero() {
		out = append(out, pair{key: d.RangeWire[1], value: FormatTimestamp(r.End)})
	}

	return out, nil
}

// listLen returns the element count of list values and 1 otherwise.
func listLen(value any) int {
	if list, ok := value.([]string); ok {
		return len(list)
	}

	if names, ok := enumNames(value); ok {
		return len(names)
	}

	return 1
}

func joinPairs(pairs []pair) string {
	if len(pairs) == 0 {
		return ""
	}

	var b strings.Builder

	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}

		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}

	return b.String()
}

// EncodeQuery builds a canonical query string (without the leading "?")
// from fields. Unset fields are skipped and the rest are emitted in declared
// order, so the output never depends on the order setters were called.
// Zero set fields produce an empty string.
func EncodeQuery(fields []FieldValue) (string, error) {
	pairs, err := encodePairs(fields)
	if err != nil {
		return "", err
	}

	return joinPairs(pairs), nil
}

// QueryString encodes any query type.
func QueryString(q Fielder) (string, error) {
	if q == nil {
		return "", nil
	}

	return EncodeQuery(q.Fields())
}
