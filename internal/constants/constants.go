package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API defaults.
const (
	// DefaultAPIVersion is the path prefix of every request.
	DefaultAPIVersion = "12"

	// DefaultUserAgent identifies the client library.
	DefaultUserAgent = "adsapi-go/1.0"

	// CLIUserAgent identifies requests sent by adsctl.
	CLIUserAgent = "adsctl/1.0"

	// TokenPath is appended to the API endpoint when no token URL is configured.
	TokenPath = "/oauth2/token"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the CLI's retry count for idempotent requests.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// RateLimitWarnThreshold is the remaining request count at which adsctl
// warns that a rate limit window is nearly spent.
const RateLimitWarnThreshold = 10

// Token handling.
const (
	// TokenExpirationBuffer is the buffer time before token expiration.
	TokenExpirationBuffer = 30 * time.Second
)

// Pagination and display limits.
const (
	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 200

	// MaxPageSize is the largest count the API accepts.
	MaxPageSize = 1000

	// MaxPages bounds a ListAll walk; reaching it with a cursor pending is an error.
	MaxPages = 50
)

// UI and display constants.
const (
	// CheckMarkSymbol is used to indicate current/active items.
	CheckMarkSymbol = "✓"

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// None is used when no value is present.
	None = "none"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// DescriptionDisplayLength is the default length for displaying names.
	DescriptionDisplayLength = 40
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)

// Date input layouts accepted by the CLI.
const (
	// DateLayout is a calendar day.
	DateLayout = "2006-01-02"
)
