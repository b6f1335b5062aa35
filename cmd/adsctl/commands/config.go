package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fivetwenty-io/adsapi/internal/auth"
	"github.com/fivetwenty-io/adsapi/internal/client"
	"github.com/fivetwenty-io/adsapi/internal/constants"
	"github.com/fivetwenty-io/adsapi/pkg/ads"
	"github.com/fivetwenty-io/adsapi/pkg/adsclient"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	API            string     `json:"api,omitempty"              yaml:"api,omitempty"`
	Token          string     `json:"token,omitempty"            yaml:"token,omitempty"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty" yaml:"token_expires_at,omitempty"`
	RefreshToken   string     `json:"refresh_token,omitempty"    yaml:"refresh_token,omitempty"`
	ClientID       string     `json:"client_id,omitempty"        yaml:"client_id,omitempty"`
	ClientSecret   string     `json:"client_secret,omitempty"    yaml:"client_secret,omitempty"`
	TokenURL       string     `json:"token_url,omitempty"        yaml:"token_url,omitempty"`
	AccountID      string     `json:"account_id,omitempty"       yaml:"account_id,omitempty"`
	Output         string     `json:"output,omitempty"           yaml:"output,omitempty"`
}

// configKeys lists the keys accepted by config set and unset.
var configKeys = []string{
	"api", "token", "refresh_token", "client_id", "client_secret", "token_url", "account_id", "output",
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the endpoint, credentials and defaults stored in the adsctl config file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := maskSecrets(loadConfig())

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(cmd.OutOrStdout(), config)
			case constants.FormatYAML:
				return StandardYAMLRenderer(cmd.OutOrStdout(), config)
			default:
				return displayConfigTable(cmd, config)
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: api, token, refresh_token, client_id, client_secret, token_url, account_id, output",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], "")
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", args[0])

			return nil
		},
	}
}

// setConfigValue assigns value to the field named by key. An empty value
// clears it.
func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "api":
		if value != "" {
			value = adsclient.NormalizeEndpoint(value)
		}

		config.API = value
	case "token":
		config.Token = value
		config.TokenExpiresAt = nil
	case "refresh_token":
		config.RefreshToken = value
	case "client_id":
		config.ClientID = value
	case "client_secret":
		config.ClientSecret = value
	case "token_url":
		config.TokenURL = value
	case "account_id":
		config.AccountID = value
	case "output":
		if value != "" {
			err := validateOutputFormat(value)
			if err != nil {
				return err
			}
		}

		config.Output = value
	default:
		return fmt.Errorf("%w: %s (valid keys: %v)", constants.ErrUnknownConfigKey, key, configKeys)
	}

	return nil
}

func displayConfigTable(cmd *cobra.Command, config *Config) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Key", "Value")

	_ = table.Append("api", valueOrNone(config.API))
	_ = table.Append("token", valueOrNone(config.Token))

	expiry := constants.None
	if config.TokenExpiresAt != nil {
		expiry = config.TokenExpiresAt.Format(time.RFC3339)
	}

	_ = table.Append("token_expires_at", expiry)
	_ = table.Append("refresh_token", valueOrNone(config.RefreshToken))
	_ = table.Append("client_id", valueOrNone(config.ClientID))
	_ = table.Append("client_secret", valueOrNone(config.ClientSecret))
	_ = table.Append("token_url", valueOrNone(config.TokenURL))
	_ = table.Append("account_id", valueOrNone(config.AccountID))
	_ = table.Append("output", valueOrNone(config.Output))

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func maskSecrets(config *Config) *Config {
	masked := *config

	if masked.Token != "" {
		masked.Token = constants.MaskedSecret
	}

	if masked.RefreshToken != "" {
		masked.RefreshToken = constants.MaskedSecret
	}

	if masked.ClientSecret != "" {
		masked.ClientSecret = constants.MaskedSecret
	}

	return &masked
}

// loadConfig reads the configuration from viper, so flags and ADS_*
// environment variables override the config file.
func loadConfig() *Config {
	config := &Config{
		API:          viper.GetString("api"),
		Token:        viper.GetString("token"),
		RefreshToken: viper.GetString("refresh_token"),
		ClientID:     viper.GetString("client_id"),
		ClientSecret: viper.GetString("client_secret"),
		TokenURL:     viper.GetString("token_url"),
		AccountID:    viper.GetString("account_id"),
		Output:       viper.GetString("output"),
	}

	if viper.IsSet("token_expires_at") {
		expiresAt := viper.GetTime("token_expires_at")
		if !expiresAt.IsZero() {
			config.TokenExpiresAt = &expiresAt
		}
	}

	return config
}

// configFilePath returns the file in use, or ~/.adsctl/config.yml.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".adsctl")

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.yml"), nil
}

// saveConfigStruct writes config to disk and mirrors it into viper.
func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	viper.Set("api", config.API)
	viper.Set("token", config.Token)
	viper.Set("refresh_token", config.RefreshToken)
	viper.Set("client_id", config.ClientID)
	viper.Set("client_secret", config.ClientSecret)
	viper.Set("token_url", config.TokenURL)
	viper.Set("account_id", config.AccountID)
	viper.Set("output", config.Output)

	if config.TokenExpiresAt != nil {
		viper.Set("token_expires_at", *config.TokenExpiresAt)
	} else {
		viper.Set("token_expires_at", nil)
	}

	return nil
}

// createClient builds an API client from the stored configuration.
func createClient() (ads.Client, error) {
	c, err := createClientFromConfig(loadConfig())
	if err != nil {
		return nil, err
	}

	return c, nil
}

// createClientFromConfig uses a persisting token manager for client
// credentials or a refresh token, and a bare token as is.
func createClientFromConfig(config *Config) (*client.Client, error) {
	if config.API == "" {
		return nil, constants.ErrNoAPIEndpoint
	}

	adsConfig := buildAdsConfig(config)

	tokenManager := createTokenManager(config, adsConfig.APIEndpoint)
	if tokenManager != nil {
		c, err := client.NewWithTokenManager(adsConfig, tokenManager)
		if err != nil {
			return nil, fmt.Errorf("failed to create client with token manager: %w", err)
		}

		return c, nil
	}

	if config.Token != "" {
		adsConfig.AccessToken = config.Token

		c, err := client.New(context.Background(), adsConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create client: %w", err)
		}

		return c, nil
	}

	return nil, constants.ErrNoCredentials
}

func buildAdsConfig(config *Config) *ads.Config {
	verbose := viper.GetBool("verbose")
	logger := newLogger(verbose)

	return &ads.Config{
		APIEndpoint:  adsclient.NormalizeEndpoint(config.API),
		TokenURL:     config.TokenURL,
		HTTPTimeout:  constants.DefaultHTTPTimeout,
		UserAgent:    constants.CLIUserAgent,
		Debug:        verbose,
		Logger:       logger,
		RetryMax:     constants.DefaultRetryMax,
		RetryWaitMin: constants.DefaultRetryWaitMin,
		RetryWaitMax: constants.DefaultRetryWaitMax,
		Interceptors: cliInterceptors(logger, verbose),
	}
}

// cliInterceptors warns on nearly spent rate limits and, when verbose, logs
// every call.
func cliInterceptors(logger ads.Logger, verbose bool) *ads.InterceptorChain {
	chain := ads.NewInterceptorChain().
		AddResponseInterceptor(ads.RateLimitWarning(logger, constants.RateLimitWarnThreshold))
	if verbose {
		chain.AddResponseInterceptor(ads.CallLogger(logger))
	}

	return chain
}

func createTokenManager(config *Config, endpoint string) auth.TokenManager {
	hasOAuth := (config.ClientID != "" && config.ClientSecret != "") || config.RefreshToken != ""
	if !hasOAuth {
		return nil
	}

	tokenURL := config.TokenURL
	if tokenURL == "" {
		tokenURL = endpoint + constants.TokenPath
	}

	oauth2Config := &auth.OAuth2Config{
		TokenURL:     tokenURL,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RefreshToken: config.RefreshToken,
	}

	initialExpiry := time.Time{}
	if config.TokenExpiresAt != nil {
		initialExpiry = *config.TokenExpiresAt
	}

	manager := auth.NewConfigTokenManager(oauth2Config, NewConfigPersister(), endpoint, config.Token, initialExpiry)
	manager.OnPersistError(func(err error) {
		if viper.GetBool("verbose") {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to save refreshed token: %v\n", err)
		}
	})

	return manager
}
