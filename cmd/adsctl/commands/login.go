package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/fivetwenty-io/adsapi/internal/auth"
	"github.com/fivetwenty-io/adsapi/pkg/ads"
	"github.com/fivetwenty-io/adsapi/pkg/adsclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// ErrAPIEndpointRequired is returned when login has no endpoint to talk to.
var ErrAPIEndpointRequired = errors.New("API endpoint is required")

type loginOptions struct {
	clientID     string
	clientSecret string
	refreshToken string
	tokenURL     string
}

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	opts := loginOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the API",
		Long: `Authenticate with the advertising API and store the credentials.

With --client-id the client_credentials grant is used and the secret is
prompted for when not given. With --refresh-token the refresh_token grant
is used. Otherwise an access token is read from --token or prompted for.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := collectLoginConfig(opts)
			if err != nil {
				return err
			}

			return runLogin(cmd, config)
		},
	}

	cmd.Flags().StringVar(&opts.clientID, "client-id", "", "OAuth2 client ID")
	cmd.Flags().StringVar(&opts.clientSecret, "client-secret", "", "OAuth2 client secret")
	cmd.Flags().StringVar(&opts.refreshToken, "refresh-token", "", "OAuth2 refresh token")
	cmd.Flags().StringVar(&opts.tokenURL, "token-url", "", "OAuth2 token endpoint (default is <api>/oauth2/token)")

	return cmd
}

func collectLoginConfig(opts loginOptions) (*Config, error) {
	config := loadConfig()

	if config.API == "" {
		reader := bufio.NewReader(os.Stdin)
		_, _ = fmt.Fprint(os.Stderr, "API endpoint: ")
		line, _ := reader.ReadString('\n')
		config.API = strings.TrimSpace(line)
	}

	if config.API == "" {
		return nil, ErrAPIEndpointRequired
	}

	config.API = adsclient.NormalizeEndpoint(config.API)
	config.TokenExpiresAt = nil

	if opts.tokenURL != "" {
		config.TokenURL = opts.tokenURL
	}

	switch {
	case opts.clientID != "":
		config.ClientID = opts.clientID
		config.ClientSecret = opts.clientSecret
		config.RefreshToken = opts.refreshToken

		if config.ClientSecret == "" {
			secret, err := readSecret("Client secret: ")
			if err != nil {
				return nil, err
			}

			config.ClientSecret = secret
		}

		// A stale token from an earlier login must not be reused.
		config.Token = ""
	case opts.refreshToken != "":
		config.RefreshToken = opts.refreshToken
		config.Token = ""
	case viper.GetString("token") == "":
		token, err := readSecret("Access token: ")
		if err != nil {
			return nil, err
		}

		config.Token = token
	}

	return config, nil
}

func readSecret(prompt string) (string, error) {
	_, _ = fmt.Fprint(os.Stderr, prompt)

	secret, err := term.ReadPassword(int(syscall.Stdin)) //nolint:unconvert
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	_, _ = fmt.Fprintln(os.Stderr)

	return strings.TrimSpace(string(secret)), nil
}

// runLogin verifies the credentials with an account listing before saving
// them, and selects the account when exactly one is visible.
func runLogin(cmd *cobra.Command, config *Config) error {
	c, err := createClientFromConfig(config)
	if err != nil {
		return err
	}

	ctx := context.Background()

	query := ads.NewAccountQuery()
	query.Count.Set(2) //nolint:mnd

	accounts, err := c.Accounts().List(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to connect to API: %w", err)
	}

	token, err := c.GetToken(ctx)
	if err == nil {
		config.Token = token
	}

	if manager, ok := c.GetTokenManager().(*auth.ConfigTokenManager); ok {
		expiry := manager.GetTokenExpiry()
		if !expiry.IsZero() {
			config.TokenExpiresAt = &expiry
		}
	}

	if config.AccountID == "" && len(accounts.Data) == 1 {
		config.AccountID = accounts.Data[0].ID
	}

	err = saveConfigStruct(config)
	if err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Logged in to %s\n", config.API)

	if config.TokenExpiresAt != nil {
		_, _ = fmt.Fprintf(out, "Token expires at %s\n", config.TokenExpiresAt.Format(time.RFC3339))
	}

	if config.AccountID != "" {
		_, _ = fmt.Fprintf(out, "Account: %s\n", config.AccountID)
	}

	return nil
}
