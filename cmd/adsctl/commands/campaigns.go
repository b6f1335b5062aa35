package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fivetwenty-io/adsapi/internal/constants"
	"github.com/fivetwenty-io/adsapi/pkg/ads"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewCampaignsCommand creates the campaigns command group.
func NewCampaignsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "campaigns",
		Aliases: []string{"campaign"},
		Short:   "Manage campaigns",
		Long:    "List, create, pause, resume and delete campaigns of the selected account",
	}

	cmd.AddCommand(newCampaignsListCommand())
	cmd.AddCommand(newCampaignsGetCommand())
	cmd.AddCommand(newCampaignsCreateCommand())
	cmd.AddCommand(newCampaignsPauseCommand(true))
	cmd.AddCommand(newCampaignsPauseCommand(false))
	cmd.AddCommand(newCampaignsDeleteCommand())

	return cmd
}

type campaignListOptions struct {
	allPages           bool
	perPage            int
	search             string
	fundingInstruments []string
	withDeleted        bool
	withDraft          bool
}

func newCampaignsListCommand() *cobra.Command {
	opts := campaignListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List campaigns",
		Long:  "List campaigns of the selected account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCampaignsListCommand(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&opts.perPage, "per-page", constants.DefaultPageSize, "results per page")
	cmd.Flags().StringVarP(&opts.search, "query", "q", "", "filter by campaign name")
	cmd.Flags().StringSliceVar(&opts.fundingInstruments, "funding-instrument", nil, "filter by funding instrument IDs")
	cmd.Flags().BoolVar(&opts.withDeleted, "with-deleted", false, "include deleted campaigns")
	cmd.Flags().BoolVar(&opts.withDraft, "with-draft", false, "include draft campaigns")

	return cmd
}

func buildCampaignQuery(opts campaignListOptions) *ads.CampaignQuery {
	query := ads.NewCampaignQuery().WithCount(opts.perPage)

	if opts.search != "" {
		query.WithQuery(opts.search)
	}

	if len(opts.fundingInstruments) > 0 {
		query.WithFundingInstrumentIDs(opts.fundingInstruments...)
	}

	if opts.withDeleted {
		query.IncludeDeleted(true)
	}

	if opts.withDraft {
		query.WithDraftCampaigns(true)
	}

	return query
}

func runCampaignsListCommand(cmd *cobra.Command, opts campaignListOptions) error {
	err := validatePageSize(opts.perPage)
	if err != nil {
		return err
	}

	accountID, err := requireAccount()
	if err != nil {
		return err
	}

	client, err := createClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	query := buildCampaignQuery(opts)

	var campaigns []ads.Campaign

	if opts.allPages {
		campaigns, err = client.Campaigns().ListAll(ctx, accountID, query)
	} else {
		var page *ads.ListResponse[ads.Campaign]

		page, err = client.Campaigns().List(ctx, accountID, query)
		if page != nil {
			campaigns = page.Data
		}
	}

	if err != nil {
		return fmt.Errorf("failed to list campaigns: %w", err)
	}

	rendered, err := renderStructured(cmd.OutOrStdout(), campaigns)
	if rendered {
		return err
	}

	return renderCampaignsTable(cmd.OutOrStdout(), campaigns)
}

func renderCampaignsTable(w io.Writer, campaigns []ads.Campaign) error {
	if len(campaigns) == 0 {
		_, _ = fmt.Fprintln(w, "No campaigns found")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Status", "Currency", "Daily Budget", "Total Budget", "Start", "End")

	for _, campaign := range campaigns {
		_ = table.Append(
			campaign.ID,
			truncateName(campaign.Name),
			displayEnum(campaign.EntityStatus.WireName()),
			campaign.Currency,
			formatMoney(campaign.DailyBudget),
			formatMoney(campaign.TotalBudget),
			formatTimestamp(campaign.StartTime),
			formatTimestamp(campaign.EndTime),
		)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newCampaignsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CAMPAIGN_ID",
		Short: "Get campaign details",
		Long:  "Display details about a specific campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := requireAccount()
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			campaign, err := client.Campaigns().Get(context.Background(), accountID, args[0])
			if err != nil {
				return fmt.Errorf("failed to get campaign: %w", err)
			}

			return renderCampaign(cmd.OutOrStdout(), campaign)
		},
	}
}

func renderCampaign(w io.Writer, campaign *ads.Campaign) error {
	rendered, err := renderStructured(w, campaign)
	if rendered {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	_ = table.Append("ID", campaign.ID)
	_ = table.Append("Name", campaign.Name)
	_ = table.Append("Status", displayEnum(campaign.EntityStatus.WireName()))
	_ = table.Append("Funding Instrument", campaign.FundingInstrumentID)
	_ = table.Append("Currency", campaign.Currency)
	_ = table.Append("Daily Budget", formatMoney(campaign.DailyBudget))
	_ = table.Append("Total Budget", formatMoney(campaign.TotalBudget))
	_ = table.Append("Standard Delivery", formatBool(campaign.StandardDelivery))
	_ = table.Append("Servable", formatBool(campaign.Servable))
	_ = table.Append("Start", formatTimestamp(campaign.StartTime))
	_ = table.Append("End", formatTimestamp(campaign.EndTime))
	_ = table.Append("Updated", formatTimestamp(campaign.UpdatedAt))

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

type campaignCreateOptions struct {
	name              string
	currency          string
	fundingInstrument string
	totalBudget       string
	dailyBudget       string
	start             string
	end               string
	standardDelivery  bool
	paused            bool
}

func newCampaignsCreateCommand() *cobra.Command {
	opts := campaignCreateOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a campaign",
		Long:  "Create a campaign in the selected account. Budgets are decimal amounts in the campaign currency.",
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := buildCampaignForm(cmd, opts)
			if err != nil {
				return err
			}

			accountID, err := requireAccount()
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			campaign, err := client.Campaigns().Create(context.Background(), accountID, form)
			if err != nil {
				return fmt.Errorf("failed to create campaign: %w", err)
			}

			return renderCampaign(cmd.OutOrStdout(), campaign)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "campaign name")
	cmd.Flags().StringVar(&opts.currency, "currency", "", "ISO 4217 currency code")
	cmd.Flags().StringVar(&opts.fundingInstrument, "funding-instrument", "", "funding instrument ID")
	cmd.Flags().StringVar(&opts.totalBudget, "total-budget", "", "lifetime budget, e.g. 100.00")
	cmd.Flags().StringVar(&opts.dailyBudget, "daily-budget", "", "daily budget, e.g. 10.00")
	cmd.Flags().StringVar(&opts.start, "start", "", "start time (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().StringVar(&opts.end, "end", "", "end time (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().BoolVar(&opts.standardDelivery, "standard-delivery", true, "pace spend evenly")
	cmd.Flags().BoolVar(&opts.paused, "paused", false, "create the campaign paused")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("funding-instrument")
	_ = cmd.MarkFlagRequired("daily-budget")

	return cmd
}

// buildCampaignForm touches only the fields whose flags were given, plus the
// required ones.
func buildCampaignForm(cmd *cobra.Command, opts campaignCreateOptions) (*ads.CampaignForm, error) {
	form := ads.NewCampaignForm().
		WithName(opts.name).
		WithFundingInstrument(opts.fundingInstrument)

	if opts.currency != "" {
		form.WithCurrency(opts.currency)
	}

	if opts.totalBudget != "" {
		budget, err := ads.NewMoney(opts.totalBudget)
		if err != nil {
			return nil, fmt.Errorf("%w: total budget %q", constants.ErrInvalidBudget, opts.totalBudget)
		}

		form.WithTotalBudget(budget)
	}

	if opts.dailyBudget != "" {
		budget, err := ads.NewMoney(opts.dailyBudget)
		if err != nil {
			return nil, fmt.Errorf("%w: daily budget %q", constants.ErrInvalidBudget, opts.dailyBudget)
		}

		form.WithDailyBudget(budget)
	}

	if opts.start != "" || opts.end != "" {
		start, err := parseDate(opts.start)
		if err != nil {
			return nil, err
		}

		end, err := parseDate(opts.end)
		if err != nil {
			return nil, err
		}

		form.WithActiveWindow(ads.NewTimeRange(start, end))
	}

	if cmd.Flags().Changed("standard-delivery") {
		form.WithStandardDelivery(opts.standardDelivery)
	}

	if opts.paused {
		form.WithPaused(true)
	}

	return form, nil
}

func newCampaignsPauseCommand(pause bool) *cobra.Command {
	use, short, verb := "resume CAMPAIGN_ID", "Resume a paused campaign", "resume"
	if pause {
		use, short, verb = "pause CAMPAIGN_ID", "Pause a campaign", "pause"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  short + " by updating its paused flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := requireAccount()
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			form := ads.NewCampaignForm().WithPaused(pause)

			campaign, err := client.Campaigns().Update(context.Background(), accountID, args[0], form)
			if err != nil {
				return fmt.Errorf("failed to %s campaign: %w", verb, err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Campaign %s is now %s\n",
				campaign.ID, displayEnum(campaign.EntityStatus.WireName()))

			return nil
		},
	}
}

func newCampaignsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete CAMPAIGN_ID",
		Short: "Delete a campaign",
		Long:  "Soft-delete a campaign. Deleted campaigns are listed only with --with-deleted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := requireAccount()
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			campaign, err := client.Campaigns().Delete(context.Background(), accountID, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete campaign: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted campaign %s\n", campaign.ID)

			return nil
		},
	}
}
