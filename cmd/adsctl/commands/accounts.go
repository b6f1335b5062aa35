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

// NewAccountsCommand creates the accounts command group.
func NewAccountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account"},
		Short:   "Manage ads accounts",
		Long:    "List and inspect the advertising accounts the credentials can access",
	}

	cmd.AddCommand(newAccountsListCommand())
	cmd.AddCommand(newAccountsGetCommand())

	return cmd
}

func newAccountsListCommand() *cobra.Command {
	var (
		allPages bool
		perPage  int
		search   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Long:  "List all advertising accounts the credentials can access",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccountsListCommand(cmd, allPages, perPage, search)
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")
	cmd.Flags().StringVarP(&search, "query", "q", "", "filter by account name")

	return cmd
}

func runAccountsListCommand(cmd *cobra.Command, allPages bool, perPage int, search string) error {
	err := validatePageSize(perPage)
	if err != nil {
		return err
	}

	client, err := createClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	query := ads.NewAccountQuery()
	query.Count.Set(perPage)

	if search != "" {
		query.WithQuery(search)
	}

	var accounts []ads.Account

	if allPages {
		accounts, err = client.Accounts().ListAll(ctx, query)
	} else {
		var page *ads.ListResponse[ads.Account]

		page, err = client.Accounts().List(ctx, query)
		if page != nil {
			accounts = page.Data
		}
	}

	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	rendered, err := renderStructured(cmd.OutOrStdout(), accounts)
	if rendered {
		return err
	}

	return renderAccountsTable(cmd.OutOrStdout(), accounts)
}

func renderAccountsTable(w io.Writer, accounts []ads.Account) error {
	if len(accounts) == 0 {
		_, _ = fmt.Fprintln(w, "No accounts found")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Timezone", "Approval", "Created")

	for _, account := range accounts {
		_ = table.Append(
			account.ID,
			truncateName(account.Name),
			account.Timezone,
			displayEnum(account.ApprovalStatus.WireName()),
			formatTimestamp(account.CreatedAt),
		)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newAccountsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ACCOUNT_ID",
		Short: "Get account details",
		Long:  "Display details about a specific advertising account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			account, err := client.Accounts().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get account: %w", err)
			}

			rendered, err := renderStructured(cmd.OutOrStdout(), account)
			if rendered {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Property", "Value")

			_ = table.Append("ID", account.ID)
			_ = table.Append("Name", account.Name)
			_ = table.Append("Business Name", valueOrNone(account.BusinessName))
			_ = table.Append("Timezone", account.Timezone)
			_ = table.Append("Timezone Switch", formatTimestamp(account.TimezoneSwitch))
			_ = table.Append("Approval Status", displayEnum(account.ApprovalStatus.WireName()))
			_ = table.Append("Industry", valueOrNone(account.Industry))
			_ = table.Append("Created", formatTimestamp(account.CreatedAt))
			_ = table.Append("Updated", formatTimestamp(account.UpdatedAt))

			err = table.Render()
			if err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

// NewFundingInstrumentsCommand creates the funding instruments command group.
func NewFundingInstrumentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "funding-instruments",
		Aliases: []string{"fi"},
		Short:   "Inspect funding instruments",
		Long:    "List the funding instruments campaigns of an account can draw from",
	}

	cmd.AddCommand(newFundingInstrumentsListCommand())

	return cmd
}

func newFundingInstrumentsListCommand() *cobra.Command {
	var perPage int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List funding instruments",
		Long:  "List the funding instruments of the selected account",
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

			query := &ads.FundingInstrumentQuery{}
			query.Count.Set(perPage)

			page, err := client.FundingInstruments().List(context.Background(), accountID, query)
			if err != nil {
				return fmt.Errorf("failed to list funding instruments: %w", err)
			}

			rendered, err := renderStructured(cmd.OutOrStdout(), page.Data)
			if rendered {
				return err
			}

			return renderFundingInstrumentsTable(cmd.OutOrStdout(), page.Data)
		},
	}

	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageSize, "results per page")

	return cmd
}

func renderFundingInstrumentsTable(w io.Writer, instruments []ads.FundingInstrument) error {
	if len(instruments) == 0 {
		_, _ = fmt.Fprintln(w, "No funding instruments found")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Type", "Description", "Currency", "Status", "Credit Remaining")

	for _, fi := range instruments {
		_ = table.Append(
			fi.ID,
			displayEnum(fi.Type.WireName()),
			truncateName(fi.Description),
			fi.Currency,
			displayEnum(fi.EntityStatus.WireName()),
			formatMoney(fi.CreditRemaining),
		)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
