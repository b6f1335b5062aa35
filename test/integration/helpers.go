//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	APIEndpoint         string
	AccessToken         string
	ClientID            string
	ClientSecret        string
	AccountID           string
	FundingInstrumentID string
	AdsctlPath          string
	Verbose             bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIEndpoint:         os.Getenv("ADS_IT_API"),
		AccessToken:         os.Getenv("ADS_IT_TOKEN"),
		ClientID:            os.Getenv("ADS_IT_CLIENT_ID"),
		ClientSecret:        os.Getenv("ADS_IT_CLIENT_SECRET"),
		AccountID:           os.Getenv("ADS_IT_ACCOUNT_ID"),
		FundingInstrumentID: os.Getenv("ADS_IT_FUNDING_INSTRUMENT_ID"),
		AdsctlPath:          getAdsctlPath(),
		Verbose:             os.Getenv("ADS_IT_VERBOSE") == "true",
	}
}

// getAdsctlPath determines the path to the adsctl binary.
func getAdsctlPath() string {
	if path := os.Getenv("ADSCTL_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../adsctl",
		"./adsctl",
		"../adsctl",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "adsctl" // Fallback to PATH
}

// SkipIfMissingConfig skips the test if required config is missing.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIEndpoint == "" || config.AccountID == "" {
		t.Skip("ADS_IT_API or ADS_IT_ACCOUNT_ID not set, skipping integration test")
	}

	if config.AccessToken == "" && config.ClientID == "" {
		t.Skip("no ADS_IT_TOKEN or ADS_IT_CLIENT_ID set, skipping integration test")
	}

	if _, err := exec.LookPath(config.AdsctlPath); err != nil {
		t.Skipf("adsctl binary not found at %s, skipping integration test", config.AdsctlPath)
	}
}

// CommandRunner runs adsctl against an isolated config file.
type CommandRunner struct {
	config     *TestConfig
	configFile string
	t          *testing.T
}

// NewCommandRunner creates a new command runner with a fresh config file.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:     config,
		configFile: filepath.Join(t.TempDir(), "config.yml"),
		t:          t,
	}
}

// Run executes an adsctl command and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--config", runner.configFile}, args...)

	cmd := exec.Command(runner.config.AdsctlPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.AdsctlPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunJSON executes an adsctl command with JSON output and decodes it into v.
func (runner *CommandRunner) RunJSON(v any, args ...string) error {
	stdout, stderr, err := runner.Run(append(args, "--output", "json")...)
	if err != nil {
		return fmt.Errorf("%w: %s", err, stderr)
	}

	err = json.Unmarshal([]byte(stdout), v)
	if err != nil {
		return fmt.Errorf("decoding output %q: %w", stdout, err)
	}

	return nil
}

// Login stores the endpoint, credentials and account in the runner's config.
func (runner *CommandRunner) Login() error {
	args := []string{"login", "--api", runner.config.APIEndpoint}

	if runner.config.ClientID != "" {
		args = append(args, "--client-id", runner.config.ClientID, "--client-secret", runner.config.ClientSecret)
	} else {
		args = append(args, "--token", runner.config.AccessToken)
	}

	_, stderr, err := runner.Run(args...)
	if err != nil {
		return fmt.Errorf("failed to log in: %s", stderr)
	}

	_, stderr, err = runner.Run("config", "set", "account_id", runner.config.AccountID)
	if err != nil {
		return fmt.Errorf("failed to select account: %s", stderr)
	}

	return nil
}

// GenerateTestName creates a unique test resource name.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

// CleanupCampaign deletes a campaign, logging failures.
func (runner *CommandRunner) CleanupCampaign(id string) {
	stdout, stderr, err := runner.Run("campaigns", "delete", id)
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for campaign %s: %s\nStderr: %s", id, stdout, stderr)
	}
}
