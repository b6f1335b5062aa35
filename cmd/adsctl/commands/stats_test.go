package commands_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/fivetwenty-io/adsapi/cmd/adsctl/commands"
	"github.com/fivetwenty-io/adsapi/internal/fakeapi"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const campaignStats = `[
  {"id": "c1", "id_data": [{"segment": null, "metrics": {
    "impressions": [10, 20],
    "billed_charge_local_micro": [5000000, 0],
    "likes": null,
    "conversion_purchases": {"post_view": [1, 0], "post_engagement": [2, 3]}
  }}]}
]`

func TestNewStatsCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewStatsCommand()
	assert.Equal(t, "stats", cmd.Use)
	assert.Equal(t, []string{"analytics"}, cmd.Aliases)

	fetch := findSubcommand(cmd, "fetch")
	require.NotNil(t, fetch)
	assert.NotEmpty(t, fetch.Example)

	tests := []struct {
		flag     string
		defValue string
	}{
		{"entity", "campaign"},
		{"ids", "[]"},
		{"start", ""},
		{"end", ""},
		{"granularity", "day"},
		{"metric-groups", "[engagement]"},
		{"placement", ""},
		{"segment", ""},
		{"metrics", "[]"},
	}

	for _, tt := range tests {
		flag := fetch.Flags().Lookup(tt.flag)
		require.NotNil(t, flag, tt.flag)
		assert.Equal(t, tt.defValue, flag.DefValue, tt.flag)
	}
}

//nolint:paralleltest // mutates global viper state
func TestStatsFetchTable(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	srv.SetStats("18ce54d4x5t", campaignStats)
	useServer(t, srv, "18ce54d4x5t")

	out, err := runCommand(t, commands.NewStatsCommand(), "fetch",
		"--ids", "c1",
		"--start", "2024-01-01",
		"--end", "2024-01-03",
		"--metric-groups", "engagement,billing,web_conversion",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "impressions")
	assert.Contains(t, out, "30")
	assert.Contains(t, out, "5000000")
	assert.Contains(t, out, "conversion_purchases")
	assert.Contains(t, out, "2024-01-01T00:00:00Z .. 2024-01-03T00:00:00Z")

	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "likes") {
			assert.Contains(t, line, "-")
		}

		if strings.Contains(line, "conversion_purchases") {
			assert.Contains(t, line, " 6 ")
		}
	}

	requests := srv.RequestsTo("/" + fakeapi.Version + "/stats/accounts/18ce54d4x5t")
	require.Len(t, requests, 1)
	assert.Contains(t, requests[0].RawQuery, "entity=CAMPAIGN&entity_ids=c1")
	assert.Contains(t, requests[0].RawQuery, "start_time=2024-01-01T00%3A00%3A00Z&end_time=2024-01-03T00%3A00%3A00Z")
	assert.Contains(t, requests[0].RawQuery, "granularity=DAY")
}

//nolint:paralleltest // mutates global viper state
func TestStatsFetchJSONKeepsSeries(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	srv.SetStats("18ce54d4x5t", campaignStats)
	useServer(t, srv, "18ce54d4x5t")
	viper.Set("output", "json")

	out, err := runCommand(t, commands.NewStatsCommand(), "fetch", "--ids", "c1", "--start", "2024-01-01")
	require.NoError(t, err)

	var snapshots []struct {
		EntityID string                     `json:"entity_id"`
		Metrics  map[string]json.RawMessage `json:"metrics"`
	}

	require.NoError(t, json.Unmarshal([]byte(out), &snapshots))
	require.Len(t, snapshots, 1)
	assert.Equal(t, "c1", snapshots[0].EntityID)
	assert.JSONEq(t, "[10,20]", string(snapshots[0].Metrics["impressions"]))
	assert.JSONEq(t, "null", string(snapshots[0].Metrics["likes"]))
}

//nolint:paralleltest // mutates global viper state
func TestStatsFetchValidatesBeforeSending(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	useServer(t, srv, "18ce54d4x5t")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "unknown granularity",
			args: []string{"fetch", "--ids", "c1", "--start", "2024-01-01", "--granularity", "weekly"},
			want: "granularity",
		},
		{
			name: "bad date",
			args: []string{"fetch", "--ids", "c1", "--start", "yesterday"},
			want: "invalid date",
		},
		{
			name: "unknown metric",
			args: []string{"fetch", "--ids", "c1", "--start", "2024-01-01", "--metrics", "impresions"},
			want: "impresions",
		},
		{
			name: "metric needing segmentation",
			args: []string{"fetch", "--ids", "c1", "--start", "2024-01-01", "--metrics", "conversion_custom"},
			want: "CONVERSION_TAGS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCommand(t, commands.NewStatsCommand(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	assert.Empty(t, srv.Requests())
}

func TestNewMetricsCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewMetricsCommand()
	assert.Equal(t, "metrics", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("family"))
	assert.NotNil(t, cmd.Flags().Lookup("entity"))
}

//nolint:paralleltest // mutates global viper state
func TestMetricsFilteredByFamilyAndEntity(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	out, err := runCommand(t, commands.NewMetricsCommand(), "--family", "engagement", "--entity", "promoted_account")
	require.NoError(t, err)
	assert.Contains(t, out, "impressions")
	assert.Contains(t, out, "follows")
	assert.NotContains(t, out, "retweets")
	assert.NotContains(t, out, "billed_charge_local_micro")
}
