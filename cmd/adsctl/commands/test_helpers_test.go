package commands_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fivetwenty-io/adsapi/internal/fakeapi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// runCommand executes cmd with args and returns what it wrote to stdout.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

// useServer points the global configuration at srv with a static token and
// a throwaway config file. Tests calling it must not run in parallel.
func useServer(t *testing.T, srv *fakeapi.Server, accountID string) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	configFile := filepath.Join(t.TempDir(), "config.yml")
	viper.SetConfigFile(configFile)

	viper.Set("api", srv.URL)
	viper.Set("token", "static-token")
	viper.Set("account_id", accountID)
	viper.Set("output", "table")

	return configFile
}
