package ads_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fivetwenty-io/adsapi/pkg/ads"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:funlen
func TestEncodeValue(t *testing.T) {
	t.Parallel()

	plus2 := time.FixedZone("plus2", 2*60*60)

	tests := []struct {
		name     string
		kind     ads.Kind
		value    any
		expected string
	}{
		{name: "string", kind: ads.KindString, value: "summer sale", expected: "summer sale"},
		{name: "empty string", kind: ads.KindString, value: "", expected: ""},
		{name: "string list keeps order", kind: ads.KindStringList, value: []string{"b", "a", "c"}, expected: "b,a,c"},
		{name: "enum", kind: ads.KindEnum, value: ads.EntityLineItem, expected: "LINE_ITEM"},
		{
			name:     "enum list",
			kind:     ads.KindEnumList,
			value:    []ads.MetricFamily{ads.FamilyEngagement, ads.FamilyBilling},
			expected: "ENGAGEMENT,BILLING",
		},
		{name: "int", kind: ads.KindInteger, value: 42, expected: "42"},
		{name: "int64", kind: ads.KindInteger, value: int64(-7), expected: "-7"},
		{name: "zero int", kind: ads.KindInteger, value: 0, expected: "0"},
		{name: "money", kind: ads.KindDecimal, value: ads.MustMoney("1.00"), expected: "1000000"},
		{name: "raw decimal", kind: ads.KindDecimal, value: decimal.RequireFromString("0.25"), expected: "250000"},
		{name: "true", kind: ads.KindBoolean, value: true, expected: "true"},
		{name: "false", kind: ads.KindBoolean, value: false, expected: "false"},
		{
			name:     "timestamp in UTC at second precision",
			kind:     ads.KindTimestamp,
			value:    time.Date(2024, 1, 15, 14, 0, 0, 999_000_000, plus2),
			expected: "2024-01-15T12:00:00Z",
		},
		{
			name:     "wrapped timestamp",
			kind:     ads.KindTimestamp,
			value:    ads.NewTimestamp(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)),
			expected: "2024-01-15T12:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ads.EncodeValue("Field", tt.kind, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEncodeValueKindMismatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		kind  ads.Kind
		value any
	}{
		{name: "string for integer", kind: ads.KindInteger, value: "5"},
		{name: "float for decimal", kind: ads.KindDecimal, value: 1.5},
		{name: "string for boolean", kind: ads.KindBoolean, value: "true"},
		{name: "plain string for enum", kind: ads.KindEnum, value: "CAMPAIGN"},
		{name: "strings for enum list", kind: ads.KindEnumList, value: []string{"ENGAGEMENT"}},
		{name: "range outside an encoder", kind: ads.KindTimestampRange, value: ads.TimeRange{}},
		{name: "nil", kind: ads.KindString, value: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ads.EncodeValue("Budget", tt.kind, tt.value)
			require.Error(t, err)
			require.ErrorIs(t, err, ads.ErrUnsupportedValueKind)

			var kindErr *ads.UnsupportedValueKindError
			require.ErrorAs(t, err, &kindErr)
			assert.Equal(t, "Budget", kindErr.Field)
			assert.Equal(t, tt.kind, kindErr.Kind)
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	got, err := ads.ParseTimestamp("created_at", "2024-01-15T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), got)

	// Offsets are dropped, never applied.
	got, err = ads.ParseTimestamp("created_at", "2024-01-15T12:00:00.5+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 12, 0, 0, 500_000_000, time.UTC), got)

	_, err = ads.ParseTimestamp("created_at", "15/01/2024")
	require.ErrorIs(t, err, ads.ErrMalformedValue)
	assert.Contains(t, err.Error(), "created_at")
}

func TestDecodeValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		kind     ads.Kind
		raw      string
		expected any
	}{
		{name: "string", kind: ads.KindString, raw: "x", expected: "x"},
		{name: "string list", kind: ads.KindStringList, raw: "a,b", expected: []string{"a", "b"}},
		{name: "empty string list", kind: ads.KindStringList, raw: "", expected: []string{}},
		{name: "integer", kind: ads.KindInteger, raw: "12", expected: int64(12)},
		{name: "boolean", kind: ads.KindBoolean, raw: "false", expected: false},
		{name: "timestamp", kind: ads.KindTimestamp, raw: "2024-02-01T00:00:00Z", expected: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ads.DecodeValue("Field", tt.kind, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	money, err := ads.DecodeValue("Budget", ads.KindDecimal, "1500000")
	require.NoError(t, err)
	assert.True(t, ads.MustMoney("1.5").Equal(money.(ads.Money)))
}

func TestDecodeValueRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		kind ads.Kind
		raw  string
	}{
		{name: "integer", kind: ads.KindInteger, raw: "12.5"},
		{name: "micros", kind: ads.KindDecimal, raw: "1.00"},
		{name: "capitalised boolean", kind: ads.KindBoolean, raw: "True"},
		{name: "numeric boolean", kind: ads.KindBoolean, raw: "1"},
		{name: "date only", kind: ads.KindTimestamp, raw: "2024-02-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ads.DecodeValue("Field", tt.kind, tt.raw)
			require.ErrorIs(t, err, ads.ErrMalformedValue)
		})
	}

	_, err := ads.DecodeValue("Field", ads.KindEnum, "ACTIVE")
	require.ErrorIs(t, err, ads.ErrUnsupportedValueKind)
}

func TestDecodeEnumList(t *testing.T) {
	t.Parallel()

	families, err := ads.DecodeEnumList("BILLING,VIDEO", ads.ParseMetricFamily)
	require.NoError(t, err)
	assert.Equal(t, []ads.MetricFamily{ads.FamilyBilling, ads.FamilyVideo}, families)

	_, err = ads.DecodeEnumList("BILLING,AUDIO", ads.ParseMetricFamily)
	require.ErrorIs(t, err, ads.ErrUnrecognizedEnumValue)

	var enumErr *ads.UnrecognizedEnumValueError
	require.ErrorAs(t, err, &enumErr)
	assert.Equal(t, "AUDIO", enumErr.Value)
}

func TestEnumJSONRejectsUnknownValues(t *testing.T) {
	t.Parallel()

	var granularity ads.Granularity

	require.NoError(t, json.Unmarshal([]byte(`"HOUR"`), &granularity))
	assert.Equal(t, ads.GranularityHour, granularity)

	err := json.Unmarshal([]byte(`"WEEK"`), &granularity)
	require.ErrorIs(t, err, ads.ErrUnrecognizedEnumValue)
	assert.Equal(t, ads.GranularityHour, granularity)

	var status ads.EntityStatus

	require.NoError(t, json.Unmarshal([]byte(`null`), &status))
	assert.Empty(t, status)
}

func TestParseTargetingType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw      string
		expected ads.TargetingType
	}{
		{raw: "LOCATION", expected: ads.TargetingTypeLocation},
		{raw: "SIMILAR_TO_FOLLOWERS_OF_USER", expected: ads.TargetingTypeSimilarFollowers},
		{raw: "TAILORED_AUDIENCE", expected: ads.TargetingTypeTailoredAudience},
		{raw: "NETWORK_OPERATOR", expected: ads.TargetingTypeNetworkOperator},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			got, err := ads.ParseTargetingType(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.raw, got.WireName())
		})
	}

	_, err := ads.ParseTargetingType("ZIP_CODE")
	require.ErrorIs(t, err, ads.ErrUnrecognizedEnumValue)

	var location ads.TargetingLocation

	require.NoError(t, json.Unmarshal([]byte(`{"name":"United States","targeting_value":"96683cc9126741d1"}`), &location))
	assert.Equal(t, "96683cc9126741d1", location.TargetingValue)
}

func TestMetricFamiliesReturnsCopy(t *testing.T) {
	t.Parallel()

	families := ads.MetricFamilies()
	require.Len(t, families, 7)
	assert.Equal(t, ads.FamilyEngagement, families[0])

	families[0] = ads.FamilyVideo
	assert.Equal(t, ads.FamilyEngagement, ads.MetricFamilies()[0])
}

func TestTimestampJSON(t *testing.T) {
	t.Parallel()

	var payload struct {
		At ads.Timestamp `json:"at"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"at":"2024-01-15T12:00:00Z"}`), &payload))
	assert.Equal(t, time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), payload.At.Time)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"2024-01-15T12:00:00Z"}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"at":null}`), &payload))
	assert.True(t, payload.At.IsZero())

	out, err = json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":null}`, string(out))

	err = json.Unmarshal([]byte(`{"at":1705320000}`), &payload)
	require.ErrorIs(t, err, ads.ErrMalformedValue)
}
