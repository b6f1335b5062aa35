package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fivetwenty-io/adsapi/cmd/adsctl/commands"
	"github.com/fivetwenty-io/adsapi/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "adsctl",
	Short: "Advertising API CLI",
	Long: `A command-line interface for the advertising REST API.

Lists accounts, campaigns and line items, creates and pauses campaigns,
and fetches synchronous statistics.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.adsctl/config.yml)")
	rootCmd.PersistentFlags().StringP("api", "a", "", "API endpoint URL")
	rootCmd.PersistentFlags().StringP("token", "t", "", "access token")
	rootCmd.PersistentFlags().String("account", "", "ads account ID")
	rootCmd.PersistentFlags().StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("api", rootCmd.PersistentFlags().Lookup("api"))
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("account_id", rootCmd.PersistentFlags().Lookup("account"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewAccountsCommand())
	rootCmd.AddCommand(commands.NewFundingInstrumentsCommand())
	rootCmd.AddCommand(commands.NewCampaignsCommand())
	rootCmd.AddCommand(commands.NewLineItemsCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewMetricsCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".adsctl")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		}

		// Search config in ~/.adsctl/config.yml
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match, e.g. ADS_TOKEN
	viper.SetEnvPrefix("ADS")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
