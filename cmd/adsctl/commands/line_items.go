package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fivetwenty-io/adsapi/internal/constants"
	"github.com/fivetwenty-io/adsapi/pkg/ads"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewLineItemsCommand creates the line items command group.
func NewLineItemsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "line-items",
		Aliases: []string{"line-item", "li"},
		Short:   "Manage line items",
		Long:    "List and inspect line items of the selected account",
	}

	cmd.AddCommand(newLineItemsListCommand())
	cmd.AddCommand(newLineItemsGetCommand())

	return cmd
}

func newLineItemsListCommand() *cobra.Command {
	var (
		allPages  bool
		perPage   int
		campaigns []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List line items",
		Long:  "List line items of the selected account, optionally restricted to campaigns",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := validatePageSize(perPage)
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

			query := ads.NewLineItemQuery().WithCount(perPage)
			if len(campaigns) > 0 {
				query.WithCampaignIDs(campaigns...)
			}

			var items []ads.LineItem

			if allPages {
				items, err = client.LineItems().ListAll(ctx, accountID, query)
			} else {
				var page *ads.ListResponse[ads.LineItem]

				page, err = client.LineItems().List(ctx, accountID, query)
				if page != nil {
					items = page.Data
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list line items: %w", err)
			}

			rendered, err := renderStructured(cmd.OutOrStdout(), items)
			if rendered {
				return err
			}

			return renderLineItemsTable(cmd.OutOrStdout(), items)
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")
	cmd.Flags().StringSliceVar(&campaigns, "campaign", nil, "filter by campaign IDs")

	return cmd
}

func placementNames(placements []ads.Placement) string {
	if len(placements) == 0 {
		return constants.None
	}

	names := make([]string, 0, len(placements))
	for _, p := range placements {
		names = append(names, displayEnum(p.WireName()))
	}

	return strings.Join(names, ", ")
}

func renderLineItemsTable(w io.Writer, items []ads.LineItem) error {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(w, "No line items found")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Campaign", "Objective", "Placements", "Status", "Bid")

	for _, item := range items {
		_ = table.Append(
			item.ID,
			truncateName(item.Name),
			item.CampaignID,
			displayEnum(item.Objective.WireName()),
			placementNames(item.Placements),
			displayEnum(item.EntityStatus.WireName()),
			formatMoney(item.BidAmount),
		)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newLineItemsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get LINE_ITEM_ID",
		Short: "Get line item details",
		Long:  "Display details about a specific line item",
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

			item, err := client.LineItems().Get(context.Background(), accountID, args[0])
			if err != nil {
				return fmt.Errorf("failed to get line item: %w", err)
			}

			rendered, err := renderStructured(cmd.OutOrStdout(), item)
			if rendered {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Property", "Value")

			_ = table.Append("ID", item.ID)
			_ = table.Append("Name", item.Name)
			_ = table.Append("Campaign", item.CampaignID)
			_ = table.Append("Product Type", displayEnum(item.ProductType.WireName()))
			_ = table.Append("Objective", displayEnum(item.Objective.WireName()))
			_ = table.Append("Placements", placementNames(item.Placements))
			_ = table.Append("Status", displayEnum(item.EntityStatus.WireName()))
			_ = table.Append("Bid", formatMoney(item.BidAmount))
			_ = table.Append("Automatic Bid", formatBool(item.AutomaticallySelectBid))
			_ = table.Append("Total Budget", formatMoney(item.TotalBudget))
			_ = table.Append("Start", formatTimestamp(item.StartTime))
			_ = table.Append("End", formatTimestamp(item.EndTime))

			err = table.Render()
			if err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}
