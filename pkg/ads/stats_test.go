package ads_test

import (
	"testing"
	"time"

	"github.com/fivetwenty-io/adsapi/pkg/ads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:funlen
func TestStatsQueryValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		query   *ads.StatsQuery
		wantErr error
	}{
		{
			name:    "valid",
			query:   ads.NewStatsQuery(ads.EntityCampaign, "c1").Between(janFirst, janThird),
			wantErr: nil,
		},
		{
			name:    "open-ended window",
			query:   ads.NewStatsQuery(ads.EntityCampaign, "c1").Between(janFirst, time.Time{}),
			wantErr: nil,
		},
		{
			name:    "missing entity",
			query:   &ads.StatsQuery{},
			wantErr: ads.ErrEntityRequired,
		},
		{
			name:    "missing ids",
			query:   ads.NewStatsQuery(ads.EntityCampaign).Between(janFirst, janThird),
			wantErr: ads.ErrEntityIDsRequired,
		},
		{
			name:    "missing window",
			query:   ads.NewStatsQuery(ads.EntityCampaign, "c1"),
			wantErr: ads.ErrTimeWindowRequired,
		},
		{
			name:    "window without start",
			query:   ads.NewStatsQuery(ads.EntityCampaign, "c1").Between(time.Time{}, janThird),
			wantErr: ads.ErrTimeWindowRequired,
		},
		{
			name: "unknown metric",
			query: ads.NewStatsQuery(ads.EntityCampaign, "c1").
				Between(janFirst, janThird).
				WithMetrics("impressions", "impresions"),
			wantErr: ads.ErrUnknownMetric,
		},
		{
			name: "metric needing segmentation",
			query: ads.NewStatsQuery(ads.EntityCampaign, "c1").
				Between(janFirst, janThird).
				WithMetrics("conversion_custom"),
			wantErr: ads.ErrMetricNeedsSegment,
		},
		{
			name: "metric with wrong segmentation",
			query: ads.NewStatsQuery(ads.EntityCampaign, "c1").
				Between(janFirst, janThird).
				SegmentedBy(ads.SegmentGender).
				WithMetrics("conversion_custom"),
			wantErr: ads.ErrMetricNeedsSegment,
		},
		{
			name: "metric with its segmentation",
			query: ads.NewStatsQuery(ads.EntityCampaign, "c1").
				Between(janFirst, janThird).
				SegmentedBy(ads.SegmentConversionTags).
				WithMetrics("conversion_custom"),
			wantErr: nil,
		},
		{
			name: "metric not reported for promoted accounts",
			query: ads.NewStatsQuery(ads.EntityPromotedAccount, "pa1").
				Between(janFirst, janThird).
				WithMetrics("retweets"),
			wantErr: ads.ErrMetricNotForEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.query.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

const statsResponse = `{
  "data_type": "stats",
  "time_series_length": 2,
  "data": [
    {"id": "c1", "id_data": [{"segment": null, "metrics": {
      "impressions": [10, 20],
      "likes": null,
      "conversion_purchases": {"post_view": [1, 0], "post_engagement": [2, 3]}
    }}]},
    {"id": "c2", "id_data": [{"segment": null, "metrics": {"impressions": [0, 0]}}]}
  ],
  "request": {"params": {
    "start_time": "2024-01-01T00:00:00Z",
    "end_time": "2024-01-03T00:00:00Z",
    "granularity": "DAY",
    "entity": "CAMPAIGN",
    "placement": "ALL_ON_TWITTER"
  }}
}`

func TestDecodeStats(t *testing.T) {
	t.Parallel()

	snapshots, err := ads.DecodeStats([]byte(statsResponse))
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	first := snapshots[0]
	assert.Equal(t, "c1", first.EntityID)
	assert.Equal(t, ads.EntityCampaign, first.Entity)
	assert.Equal(t, ads.GranularityDay, first.Granularity)
	assert.Equal(t, ads.PlacementAllOnPlatform, first.Placement)
	assert.Empty(t, first.SegmentationType)
	assert.Nil(t, first.Segment)
	assert.Equal(t, janFirst, first.StartTime)
	assert.Equal(t, janThird, first.EndTime)

	require.Len(t, first.Metrics, 3)
	assert.Equal(t, []float64{10, 20}, first.Metrics["impressions"].Series)
	assert.True(t, first.Metrics["likes"].Null())
	assert.Equal(t, []float64{3, 3}, first.Metrics["conversion_purchases"].Total())

	assert.Equal(t, "c2", snapshots[1].EntityID)
	assert.Equal(t, []float64{0, 0}, snapshots[1].Metrics["impressions"].Series)
}

func TestDecodeStatsKeepsSegmentsApart(t *testing.T) {
	t.Parallel()

	body := `{"data": [{"id": "c1", "id_data": [
	    {"segment": {"segment_name": "Male", "segment_value": "g1"}, "metrics": {"impressions": [4]}},
	    {"segment": {"segment_name": "Female", "segment_value": "g2"}, "metrics": {"impressions": [6]}}
	  ]}],
	  "request": {"params": {"granularity": "TOTAL", "entity": "CAMPAIGN", "segmentation_type": "GENDER",
	    "start_time": "2024-01-01T00:00:00Z", "end_time": "2024-01-03T00:00:00Z"}}}`

	snapshots, err := ads.DecodeStats([]byte(body))
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	for i, want := range []ads.Segment{{Name: "Male", Value: "g1"}, {Name: "Female", Value: "g2"}} {
		assert.Equal(t, "c1", snapshots[i].EntityID)
		assert.Equal(t, ads.SegmentGender, snapshots[i].SegmentationType)
		require.NotNil(t, snapshots[i].Segment)
		assert.Equal(t, want, *snapshots[i].Segment)
	}

	assert.Equal(t, []float64{4}, snapshots[0].Metrics["impressions"].Series)
	assert.Equal(t, []float64{6}, snapshots[1].Metrics["impressions"].Series)
}

func TestDecodeStatsErrors(t *testing.T) {
	t.Parallel()

	_, err := ads.DecodeStats([]byte(`{"request": {}}`))
	require.ErrorIs(t, err, ads.ErrMalformedValue)

	_, err = ads.DecodeStats([]byte(`not json`))
	require.ErrorIs(t, err, ads.ErrMalformedValue)

	body := `{"data": [
	    {"id": "c1", "id_data": [{"metrics": {"impressions": [1]}}]},
	    {"id": "c2", "id_data": [{"metrics": {"impresions": [1]}}]}
	  ], "request": {"params": {}}}`

	_, err = ads.DecodeStats([]byte(body))
	require.ErrorIs(t, err, ads.ErrPartialDecodeFailure)
	require.ErrorIs(t, err, ads.ErrUnknownMetric)

	var partial *ads.PartialDecodeError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, 1, partial.Index)

	_, err = ads.DecodeStats([]byte(`{"data": [], "request": {"params": {"granularity": "WEEK"}}}`))
	require.ErrorIs(t, err, ads.ErrMalformedValue)
}
