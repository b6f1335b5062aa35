package ads

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the wire form of every timestamp the API exchanges.
const TimestampLayout = "2006-01-02T15:04:05Z"

const (
	wireTrue  = "true"
	wireFalse = "false"
)

// EncodeValue renders a single typed value as its wire string. The value's Go
// type must agree with kind; otherwise an UnsupportedValueKindError naming
// field is returned.
//
// Lists are comma-joined in input order. Money amounts are written as
// micro-unit integers. Timestamps are written in UTC at second precision.
func EncodeValue(field string, kind Kind, value any) (string, error) {
	mismatch := &UnsupportedValueKindError{Field: field, Kind: kind, Value: value}

	switch kind {
	case KindString:
		s, ok := value.(string)
		if !ok {
			return "", mismatch
		}

		return s, nil

	case KindStringList:
		list, ok := value.([]string)
		if !ok {
			return "", mismatch
		}

		return strings.Join(list, ","), nil

	case KindEnum:
		e, ok := value.(Enum)
		if !ok {
			return "", mismatch
		}

		return e.WireName(), nil

	case KindEnumList:
		names, ok := enumNames(value)
		if !ok {
			return "", mismatch
		}

		return strings.Join(names, ","), nil

	case KindInteger:
		switch n := value.(type) {
		case int:
			return strconv.Itoa(n), nil
		case int64:
			return strconv.FormatInt(n, 10), nil
		case int32:
			return strconv.FormatInt(int64(n), 10), nil
		default:
			return "", mismatch
		}

	case KindDecimal:
		switch m := value.(type) {
		case Money:
			return encodeMicros(field, m)
		case decimal.Decimal:
			return encodeMicros(field, MoneyFromDecimal(m))
		default:
			return "", mismatch
		}

	case KindBoolean:
		b, ok := value.(bool)
		if !ok {
			return "", mismatch
		}

		if b {
			return wireTrue, nil
		}

		return wireFalse, nil

	case KindTimestamp:
		switch t := value.(type) {
		case time.Time:
			return FormatTimestamp(t), nil
		case Timestamp:
			return FormatTimestamp(t.Time), nil
		default:
			return "", mismatch
		}

	case KindTimestampRange:
		// Ranges expand into two keys and are handled by the encoders.
		return "", mismatch

	default:
		return "", mismatch
	}
}

// enumNames collects the wire names of any slice whose elements implement Enum.
func enumNames(value any) ([]string, bool) {
	if value == nil {
		return nil, false
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}

	names := make([]string, 0, rv.Len())

	for i := range rv.Len() {
		e, ok := rv.Index(i).Interface().(Enum)
		if !ok {
			return nil, false
		}

		names = append(names, e.WireName())
	}

	return names, true
}

// FormatTimestamp renders t in UTC, truncated to whole seconds.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(TimestampLayout)
}

func encodeMicros(field string, m Money) (string, error) {
	micros, err := m.Micros()
	if err != nil {
		return "", &MalformedValueError{Field: field, Raw: m.String(), Err: ErrMoneyOutOfRange}
	}

	return strconv.FormatInt(micros, 10), nil
}

// ParseTimestamp reads a wire timestamp. The digits are kept as written and
// interpreted as UTC, never shifted into the local zone.
func ParseTimestamp(field, raw string) (time.Time, error) {
	t, err := time.ParseInLocation(TimestampLayout, raw, time.UTC)
	if err != nil {
		// Some endpoints echo fractional seconds or explicit offsets.
		t, err = time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return time.Time{}, &MalformedValueError{Field: field, Raw: raw, Err: err}
		}

		t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}

	return t, nil
}

// DecodeValue parses a wire string into the Go type matching kind: string,
// []string, int64, Money, bool or time.Time. Enum kinds need the target type
// and are decoded with DecodeEnum instead.
func DecodeValue(field string, kind Kind, raw string) (any, error) {
	switch kind {
	case KindString:
		return raw, nil

	case KindStringList:
		return DecodeStringList(raw), nil

	case KindInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &MalformedValueError{Field: field, Raw: raw, Err: err}
		}

		return n, nil

	case KindDecimal:
		return DecodeMicros(field, raw)

	case KindBoolean:
		return DecodeBool(field, raw)

	case KindTimestamp:
		return ParseTimestamp(field, raw)

	default:
		return nil, &UnsupportedValueKindError{Field: field, Kind: kind, Value: raw}
	}
}

// DecodeStringList splits a comma-joined list. An empty input is an empty list.
func DecodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}

	return strings.Split(raw, ",")
}

// DecodeBool accepts exactly "true" or "false".
func DecodeBool(field, raw string) (bool, error) {
	switch raw {
	case wireTrue:
		return true, nil
	case wireFalse:
		return false, nil
	default:
		return false, &MalformedValueError{Field: field, Raw: raw}
	}
}

// DecodeMicros converts a micro-unit integer into a Money amount.
func DecodeMicros(field, raw string) (Money, error) {
	micros, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Money{}, &MalformedValueError{Field: field, Raw: raw, Err: err}
	}

	return MoneyFromMicros(micros), nil
}

// DecodeEnum resolves a wire token against the enum's closed set.
func DecodeEnum[E Enum](raw string, parse func(string) (E, error)) (E, error) {
	return parse(raw)
}

// DecodeEnumList resolves a comma-joined list of wire tokens.
func DecodeEnumList[E Enum](raw string, parse func(string) (E, error)) ([]E, error) {
	tokens := DecodeStringList(raw)
	out := make([]E, 0, len(tokens))

	for _, tok := range tokens {
		v, err := parse(tok)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

// Timestamp is a time.Time carried in the API's timestamp format.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// MarshalJSON emits the wire timestamp, or null for the zero time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(FormatTimestamp(t.Time))
}

// UnmarshalJSON reads a wire timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}

		return nil
	}

	var raw string

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return &MalformedValueError{Field: "timestamp", Raw: string(data), Err: err}
	}

	parsed, err := ParseTimestamp("timestamp", raw)
	if err != nil {
		return err
	}

	t.Time = parsed

	return nil
}

// MarshalYAML renders the wire timestamp.
func (t Timestamp) MarshalYAML() (interface{}, error) {
	if t.IsZero() {
		return nil, nil
	}

	return FormatTimestamp(t.Time), nil
}
