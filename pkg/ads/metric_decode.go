package ads

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// MetricValue is one decoded metric: a per-bucket series for scalar metrics,
// or a map of sub-key to per-bucket series for breakdown metrics.
type MetricValue struct {
	Descriptor MetricDescriptor
	Series     []float64
	Breakdown  map[string][]float64
	null       bool
}

// Name returns the metric name.
func (v MetricValue) Name() string {
	return v.Descriptor.Name
}

// IsBreakdown reports whether the value carries sub-keyed series.
func (v MetricValue) IsBreakdown() bool {
	return v.Descriptor.Shape == ShapeBreakdown
}

// Null reports whether the API returned null for the metric, meaning no data
// was recorded in the window.
func (v MetricValue) Null() bool {
	return v.null
}

// Component returns one breakdown sub-series and whether it was present.
// Absent sub-keys are not zero-filled.
func (v MetricValue) Component(key string) ([]float64, bool) {
	s, ok := v.Breakdown[key]

	return s, ok
}

// Keys lists the breakdown sub-keys present, sorted.
func (v MetricValue) Keys() []string {
	return slices.Sorted(maps.Keys(v.Breakdown))
}

// Total returns the per-bucket total of a breakdown metric. An explicit
// "total" sub-key wins; otherwise the present parts among post_view,
// post_engagement and assisted are summed bucket by bucket. Parts are never
// checked against an explicit total, because the upstream figures may lag
// one another. For scalar metrics Total returns the series.
func (v MetricValue) Total() []float64 {
	if !v.IsBreakdown() {
		return v.Series
	}

	if total, ok := v.Breakdown[BreakdownTotal]; ok {
		return total
	}

	var sum []float64

	for _, key := range []string{BreakdownPostView, BreakdownPostEngagement, BreakdownAssisted} {
		part, ok := v.Breakdown[key]
		if !ok {
			continue
		}

		for len(sum) < len(part) {
			sum = append(sum, 0)
		}

		for i, n := range part {
			sum[i] += n
		}
	}

	return sum
}

// DecodeMetric decodes one metric's raw JSON value according to its
// catalogue entry. Names missing from the catalogue yield UnknownMetricError.
func DecodeMetric(name string, raw json.RawMessage) (MetricValue, error) {
	desc, err := LookupMetric(name)
	if err != nil {
		return MetricValue{}, err
	}

	value := MetricValue{Descriptor: desc}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		value.null = true

		return value, nil
	}

	switch desc.Shape {
	case ShapeScalar:
		series, err := decodeSeries(name, trimmed)
		if err != nil {
			return MetricValue{}, err
		}

		value.Series = series

	case ShapeBreakdown:
		parts, err := decodeBreakdown(name, trimmed)
		if err != nil {
			return MetricValue{}, err
		}

		value.Breakdown = parts

	default:
		return MetricValue{}, &MalformedValueError{Field: name, Raw: string(trimmed)}
	}

	return value, nil
}

// decodeSeries reads a bucket-indexed number array. Null elements are
// rejected rather than defaulted.
func decodeSeries(field string, raw []byte) ([]float64, error) {
	if raw[0] != '[' {
		return nil, &MalformedValueError{Field: field, Raw: string(raw), Err: fmt.Errorf("%w: expected array", ErrUnexpectedResponseBody)}
	}

	var nullable []*float64

	err := json.Unmarshal(raw, &nullable)
	if err != nil {
		return nil, &MalformedValueError{Field: field, Raw: string(raw), Err: err}
	}

	series := make([]float64, len(nullable))

	for i, n := range nullable {
		if n == nil {
			return nil, &MalformedValueError{Field: fmt.Sprintf("%s[%d]", field, i), Raw: "null"}
		}

		series[i] = *n
	}

	return series, nil
}

// decodeBreakdown reads an object of sub-key series. A null sub-series is
// treated like an absent one.
func decodeBreakdown(field string, raw []byte) (map[string][]float64, error) {
	if raw[0] != '{' {
		return nil, &MalformedValueError{Field: field, Raw: string(raw), Err: fmt.Errorf("%w: expected object", ErrUnexpectedResponseBody)}
	}

	var subs map[string]json.RawMessage

	err := json.Unmarshal(raw, &subs)
	if err != nil {
		return nil, &MalformedValueError{Field: field, Raw: string(raw), Err: err}
	}

	parts := make(map[string][]float64, len(subs))

	for key, sub := range subs {
		sub = bytes.TrimSpace(sub)
		if bytes.Equal(sub, []byte("null")) {
			continue
		}

		series, err := decodeSeries(field+"."+key, sub)
		if err != nil {
			return nil, err
		}

		parts[key] = series
	}

	return parts, nil
}

// DecodeMetrics decodes a metrics object keyed by metric name. The first
// failing metric aborts the whole object.
func DecodeMetrics(raw map[string]json.RawMessage) (map[string]MetricValue, error) {
	out := make(map[string]MetricValue, len(raw))

	for _, name := range slices.Sorted(maps.Keys(raw)) {
		v, err := DecodeMetric(name, raw[name])
		if err != nil {
			return nil, err
		}

		out[name] = v
	}

	return out, nil
}
