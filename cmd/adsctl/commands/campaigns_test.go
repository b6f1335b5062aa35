package commands_test

import (
	"testing"

	"github.com/fivetwenty-io/adsapi/cmd/adsctl/commands"
	"github.com/fivetwenty-io/adsapi/internal/fakeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCampaignsCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewCampaignsCommand()
	assert.Equal(t, "campaigns", cmd.Use)
	assert.Equal(t, []string{"campaign"}, cmd.Aliases)
	assert.Equal(t, "Manage campaigns", cmd.Short)

	commandNames := make([]string, 0, len(cmd.Commands()))
	for _, subcmd := range cmd.Commands() {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.ElementsMatch(t, []string{"list", "get", "create", "pause", "resume", "delete"}, commandNames)
}

func TestCampaignsCreateCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := findSubcommand(commands.NewCampaignsCommand(), "create")
	require.NotNil(t, cmd)
	assert.Equal(t, "create", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	tests := []struct {
		flag     string
		defValue string
	}{
		{"name", ""},
		{"currency", ""},
		{"funding-instrument", ""},
		{"total-budget", ""},
		{"daily-budget", ""},
		{"start", ""},
		{"end", ""},
		{"standard-delivery", "true"},
		{"paused", "false"},
	}

	for _, tt := range tests {
		flag := cmd.Flags().Lookup(tt.flag)
		require.NotNil(t, flag, tt.flag)
		assert.Equal(t, tt.defValue, flag.DefValue, tt.flag)
	}

	for _, required := range []string{"name", "funding-instrument", "daily-budget"} {
		annotations := cmd.Flags().Lookup(required).Annotations
		assert.Contains(t, annotations, "cobra_annotation_bash_completion_one_required_flag", required)
	}
}

//nolint:paralleltest // mutates global viper state
func TestCampaignsCreate(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	useServer(t, srv, "18ce54d4x5t")

	out, err := runCommand(t, commands.NewCampaignsCommand(), "create",
		"--name", "launch",
		"--funding-instrument", "lygyi",
		"--daily-budget", "1.00",
		"--total-budget", "10.00",
		"--start", "2024-02-01",
		"--paused",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "launch")
	assert.Contains(t, out, "Paused")
	assert.Contains(t, out, "2024-02-01T00:00:00Z")

	requests := srv.RequestsTo("/" + fakeapi.Version + "/accounts/18ce54d4x5t/campaigns")
	require.Len(t, requests, 1)
	assert.Equal(t, "POST", requests[0].Method)
	assert.Equal(t, "application/x-www-form-urlencoded", requests[0].ContentType)
	assert.Equal(t,
		"name=launch&funding_instrument_id=lygyi&total_budget_amount_local_micro=10000000"+
			"&daily_budget_amount_local_micro=1000000&start_time=2024-02-01T00%3A00%3A00Z&paused=true",
		requests[0].Form)
}

//nolint:paralleltest // mutates global viper state
func TestCampaignsCreateRejectsBadBudget(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	useServer(t, srv, "18ce54d4x5t")

	_, err := runCommand(t, commands.NewCampaignsCommand(), "create",
		"--name", "launch",
		"--funding-instrument", "lygyi",
		"--daily-budget", "lots",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid budget amount")
	assert.Empty(t, srv.Requests())
}

//nolint:paralleltest // mutates global viper state
func TestCampaignsPauseAndResume(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	srv.AddEntity("18ce54d4x5t", "campaigns", fakeapi.Entity{
		"id":            "8wku2",
		"name":          "evergreen",
		"entity_status": "ACTIVE",
		"paused":        false,
	})

	useServer(t, srv, "18ce54d4x5t")

	out, err := runCommand(t, commands.NewCampaignsCommand(), "pause", "8wku2")
	require.NoError(t, err)
	assert.Equal(t, "Campaign 8wku2 is now Paused\n", out)

	out, err = runCommand(t, commands.NewCampaignsCommand(), "resume", "8wku2")
	require.NoError(t, err)
	assert.Equal(t, "Campaign 8wku2 is now Active\n", out)

	requests := srv.RequestsTo("/" + fakeapi.Version + "/accounts/18ce54d4x5t/campaigns/8wku2")
	require.Len(t, requests, 2)
	assert.Equal(t, "paused=true", requests[0].Form)
	assert.Equal(t, "paused=false", requests[1].Form)
}

//nolint:paralleltest // mutates global viper state
func TestCampaignsListHidesDeleted(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	srv.AddEntity("18ce54d4x5t", "campaigns", fakeapi.Entity{"id": "a1", "name": "live", "entity_status": "ACTIVE"})
	srv.AddEntity("18ce54d4x5t", "campaigns", fakeapi.Entity{"id": "a2", "name": "gone", "entity_status": "DELETED", "deleted": true})

	useServer(t, srv, "18ce54d4x5t")

	out, err := runCommand(t, commands.NewCampaignsCommand(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "live")
	assert.NotContains(t, out, "gone")

	out, err = runCommand(t, commands.NewCampaignsCommand(), "list", "--with-deleted")
	require.NoError(t, err)
	assert.Contains(t, out, "gone")

	requests := srv.RequestsTo("/" + fakeapi.Version + "/accounts/18ce54d4x5t/campaigns")
	require.Len(t, requests, 2)
	assert.Equal(t, "count=200", requests[0].RawQuery)
	assert.Equal(t, "count=200&with_deleted=true", requests[1].RawQuery)
}

//nolint:paralleltest // mutates global viper state
func TestCampaignsListEmpty(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	useServer(t, srv, "18ce54d4x5t")

	out, err := runCommand(t, commands.NewCampaignsCommand(), "list")
	require.NoError(t, err)
	assert.Equal(t, "No campaigns found\n", out)
}

func TestNewLineItemsCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewLineItemsCommand()
	assert.Equal(t, "line-items", cmd.Use)
	assert.Equal(t, []string{"line-item", "li"}, cmd.Aliases)

	list := findSubcommand(cmd, "list")
	require.NotNil(t, list)
	assert.NotNil(t, list.Flags().Lookup("campaign"))
	assert.NotNil(t, findSubcommand(cmd, "get"))
}

//nolint:paralleltest // mutates global viper state
func TestLineItemsListByCampaign(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	srv.AddEntity("18ce54d4x5t", "line_items", fakeapi.Entity{
		"id": "li1", "campaign_id": "c1", "name": "timeline", "objective": "TWEET_ENGAGEMENTS",
		"placements": []string{"TWITTER_TIMELINE"}, "entity_status": "ACTIVE", "bid_amount_local_micro": 1500000,
	})
	srv.AddEntity("18ce54d4x5t", "line_items", fakeapi.Entity{
		"id": "li2", "campaign_id": "c2", "name": "search", "objective": "WEBSITE_CLICKS",
		"placements": []string{"TWITTER_SEARCH"}, "entity_status": "ACTIVE",
	})

	useServer(t, srv, "18ce54d4x5t")

	out, err := runCommand(t, commands.NewLineItemsCommand(), "list", "--campaign", "c1")
	require.NoError(t, err)
	assert.Contains(t, out, "timeline")
	assert.Contains(t, out, "Twitter Timeline")
	assert.Contains(t, out, "Tweet Engagements")
	assert.Contains(t, out, "1.5")
	assert.NotContains(t, out, "search")
}
