package ads

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError represents a single error entry returned by the Ads API.
type APIError struct {
	Code      string `json:"code"                yaml:"code"`
	Message   string `json:"message"             yaml:"message"`
	Attribute string `json:"attribute,omitempty" yaml:"attribute,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Attribute != "" {
		return fmt.Sprintf("%s: %s (attribute: %s)", e.Code, e.Message, e.Attribute)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ResponseError represents the error envelope of a non-2xx response.
type ResponseError struct {
	StatusCode int        `json:"-"`
	Errors     []APIError `json:"errors"`
}

// Error implements the error interface for ResponseError.
func (e *ResponseError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("unknown error (status: %d)", e.StatusCode)
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	msgs := make([]string, 0, len(e.Errors))
	for i := range e.Errors {
		msgs = append(msgs, e.Errors[i].Error())
	}

	return "multiple errors: " + strings.Join(msgs, "; ")
}

// FirstError returns the first error or nil.
func (e *ResponseError) FirstError() *APIError {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// Common error codes.
const (
	ErrorCodeNotFound             = "NOT_FOUND"
	ErrorCodeUnauthorized         = "UNAUTHORIZED_ACCESS"
	ErrorCodeForbidden            = "UNAUTHORIZED_CLIENT_APPLICATION"
	ErrorCodeInvalidParameter     = "INVALID_PARAMETER"
	ErrorCodeMissingParameter     = "MISSING_PARAMETER"
	ErrorCodeTooManyRequests      = "TOO_MANY_REQUESTS"
	ErrorCodeServiceUnavailable   = "SERVICE_UNAVAILABLE"
	ErrorCodeDuplicateEntity      = "DUPLICATE_ENTITY"
	ErrorCodeUnsupportedOperation = "UNSUPPORTED_OPERATION"
)

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired         = errors.New("config is required")
	ErrAPIEndpointRequired    = errors.New("API endpoint is required")
	ErrAccountIDRequired      = errors.New("account ID is required")
	ErrEntityIDRequired       = errors.New("entity ID is required")
	ErrEntityRequired         = errors.New("stats entity is required")
	ErrEntityIDsRequired      = errors.New("stats entity IDs are required")
	ErrTimeWindowRequired     = errors.New("stats time window is required")
	ErrNoMoreItems            = errors.New("no more items")
	ErrNotAuthenticated       = errors.New("not authenticated")
	ErrInvalidClientType      = errors.New("invalid client type")
	ErrMetricNeedsSegment     = errors.New("metric requires a segmentation type")
	ErrMetricNotForEntity     = errors.New("metric is not available for entity")
	ErrUnsupportedValueKind   = errors.New("unsupported value kind")
	ErrMalformedValue         = errors.New("malformed value")
	ErrUnrecognizedEnumValue  = errors.New("unrecognized enum value")
	ErrUnknownMetric          = errors.New("unknown metric")
	ErrPartialDecodeFailure   = errors.New("partial decode failure")
	ErrEmptyTimeRange         = errors.New("time range has neither start nor end")
	ErrUnexpectedResponseBody = errors.New("unexpected response body")
	ErrMoneyOutOfRange        = errors.New("money amount exceeds the micro-unit range")
	ErrMaxPagesReached        = errors.New("page limit reached with results remaining")
)

// UnsupportedValueKindError is returned when a field value's Go type does not
// match the field's declared Kind.
type UnsupportedValueKindError struct {
	Field string
	Kind  Kind
	Value any
}

func (e *UnsupportedValueKindError) Error() string {
	return fmt.Sprintf("field %q: %s cannot encode value of type %T", e.Field, e.Kind, e.Value)
}

func (e *UnsupportedValueKindError) Unwrap() error { return ErrUnsupportedValueKind }

// MalformedValueError is returned when a wire value cannot be parsed.
type MalformedValueError struct {
	Field string
	Raw   string
	Err   error
}

func (e *MalformedValueError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("field %q: malformed value %q: %v", e.Field, e.Raw, e.Err)
	}

	return fmt.Sprintf("field %q: malformed value %q", e.Field, e.Raw)
}

// Unwrap exposes both the sentinel and the parse cause.
func (e *MalformedValueError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedValue}
	}

	return []error{ErrMalformedValue, e.Err}
}

// UnrecognizedEnumValueError is returned when a wire token is not a declared
// member of its enum.
type UnrecognizedEnumValueError struct {
	Enum  string
	Value string
}

func (e *UnrecognizedEnumValueError) Error() string {
	return fmt.Sprintf("%s: unrecognized value %q", e.Enum, e.Value)
}

func (e *UnrecognizedEnumValueError) Unwrap() error { return ErrUnrecognizedEnumValue }

// UnknownMetricError is returned for metric names absent from the catalogue.
type UnknownMetricError struct {
	Name string
}

func (e *UnknownMetricError) Error() string {
	return fmt.Sprintf("unknown metric %q", e.Name)
}

func (e *UnknownMetricError) Unwrap() error { return ErrUnknownMetric }

// PartialDecodeError reports the first element of a list page that failed to decode.
type PartialDecodeError struct {
	Index int
	Err   error
}

func (e *PartialDecodeError) Error() string {
	return fmt.Sprintf("decoding element %d: %v", e.Index, e.Err)
}

func (e *PartialDecodeError) Unwrap() []error {
	return []error{ErrPartialDecodeFailure, e.Err}
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasErrorCode(err, http.StatusNotFound, ErrorCodeNotFound)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return hasErrorCode(err, http.StatusUnauthorized, ErrorCodeUnauthorized)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return hasErrorCode(err, http.StatusForbidden, ErrorCodeForbidden)
}

// IsRateLimited checks if the error reports an exhausted rate limit.
func IsRateLimited(err error) bool {
	return hasErrorCode(err, http.StatusTooManyRequests, ErrorCodeTooManyRequests)
}

func hasErrorCode(err error, status int, code string) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}

	errResp := &ResponseError{}
	if errors.As(err, &errResp) {
		if errResp.StatusCode == status {
			return true
		}

		first := errResp.FirstError()
		if first != nil {
			return first.Code == code
		}
	}

	return false
}

// ParseResponseError parses an error response from JSON.
func ParseResponseError(statusCode int, data []byte) (*ResponseError, error) {
	errResp := ResponseError{StatusCode: statusCode}

	err := json.Unmarshal(data, &errResp)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal response error: %w", err)
	}

	return &errResp, nil
}
