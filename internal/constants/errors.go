package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIEndpoint     = errors.New("no API endpoint configured, use 'adsctl login' or 'adsctl config set api <url>'")
	ErrNoCredentials     = errors.New("no credentials configured, use 'adsctl login' or set client credentials")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrNoAccountSelected = errors.New("no account selected, pass --account or use 'adsctl config set account_id <id>'")
)

// Validation errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format, expected table, json or yaml")
	ErrInvalidDate         = errors.New("invalid date, expected YYYY-MM-DD or RFC 3339")
	ErrInvalidBudget       = errors.New("invalid budget amount")
	ErrInvalidPageSize     = errors.New("invalid page size, expected 1 to 1000")
)
