package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fivetwenty-io/adsapi/internal/constants"
	"github.com/fivetwenty-io/adsapi/pkg/ads"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// StandardJSONRenderer writes data as indented JSON.
func StandardJSONRenderer(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes data as YAML.
func StandardYAMLRenderer(w io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(constants.JSONIndentSize)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return encoder.Close()
}

// renderStructured writes data as JSON or YAML when one of those formats is
// selected and reports whether it did.
func renderStructured(w io.Writer, data interface{}) (bool, error) {
	switch viper.GetString("output") {
	case constants.FormatJSON:
		return true, StandardJSONRenderer(w, data)
	case constants.FormatYAML:
		return true, StandardYAMLRenderer(w, data)
	default:
		return false, nil
	}
}

func validateOutputFormat(format string) error {
	switch format {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w: %s", constants.ErrInvalidOutputFormat, format)
	}
}

// validatePageSize checks a --per-page value against the API's limits.
func validatePageSize(perPage int) error {
	if perPage < 1 || perPage > constants.MaxPageSize {
		return fmt.Errorf("%w: %d", constants.ErrInvalidPageSize, perPage)
	}

	return nil
}

// requireAccount returns the --account flag or the configured account.
func requireAccount() (string, error) {
	accountID := viper.GetString("account_id")
	if accountID == "" {
		return "", constants.ErrNoAccountSelected
	}

	return accountID, nil
}

// displayEnum turns a wire name such as TWITTER_TIMELINE into "Twitter Timeline".
func displayEnum(wire string) string {
	if wire == "" {
		return constants.NotAvailable
	}

	words := strings.ReplaceAll(strings.ToLower(wire), "_", " ")

	return cases.Title(language.English).String(words)
}

// enumArg normalizes a flag value to wire form, so "day" and "DAY" both parse.
func enumArg(raw string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), "-", "_"))
}

func formatMoney(m *ads.Money) string {
	if m == nil {
		return constants.NotAvailable
	}

	return m.String()
}

func formatTimestamp(t ads.Timestamp) string {
	if t.IsZero() {
		return constants.NotAvailable
	}

	return ads.FormatTimestamp(t.Time)
}

func formatBool(b bool) string {
	if b {
		return constants.CheckMarkSymbol
	}

	return ""
}

func valueOrNone(s string) string {
	if s == "" {
		return constants.None
	}

	return s
}

func truncateName(s string) string {
	runes := []rune(s)
	if len(runes) <= constants.DescriptionDisplayLength {
		return s
	}

	return string(runes[:constants.DescriptionDisplayLength-3]) + "..."
}

// parseDate accepts a calendar day (midnight UTC) or an RFC 3339 timestamp.
// An empty value returns the zero time.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(constants.DateLayout, raw)
	if err == nil {
		return t.UTC(), nil
	}

	t, err = time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", constants.ErrInvalidDate, raw)
	}

	return t.UTC(), nil
}
