package ads_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/adsapi/pkg/ads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorError(t *testing.T) {
	t.Parallel()

	err := &ads.APIError{Code: ads.ErrorCodeNotFound, Message: "Campaign not found"}
	assert.Equal(t, "NOT_FOUND: Campaign not found", err.Error())

	err.Attribute = "campaign_id"
	assert.Equal(t, "NOT_FOUND: Campaign not found (attribute: campaign_id)", err.Error())
}

func TestResponseErrorError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response *ads.ResponseError
		expected string
	}{
		{
			name:     "empty errors",
			response: &ads.ResponseError{StatusCode: http.StatusBadGateway},
			expected: "unknown error (status: 502)",
		},
		{
			name: "single error",
			response: &ads.ResponseError{
				StatusCode: http.StatusBadRequest,
				Errors:     []ads.APIError{{Code: ads.ErrorCodeInvalidParameter, Message: "bad name"}},
			},
			expected: "INVALID_PARAMETER: bad name",
		},
		{
			name: "multiple errors",
			response: &ads.ResponseError{
				StatusCode: http.StatusBadRequest,
				Errors: []ads.APIError{
					{Code: ads.ErrorCodeInvalidParameter, Message: "bad name", Attribute: "name"},
					{Code: ads.ErrorCodeMissingParameter, Message: "missing funding instrument"},
				},
			},
			expected: "multiple errors: INVALID_PARAMETER: bad name (attribute: name); MISSING_PARAMETER: missing funding instrument",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.response.Error())
		})
	}
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	notFound := &ads.ResponseError{StatusCode: http.StatusNotFound}
	wrapped := fmt.Errorf("getting campaign: %w", notFound)
	codeOnly := &ads.ResponseError{
		StatusCode: http.StatusBadRequest,
		Errors:     []ads.APIError{{Code: ads.ErrorCodeNotFound}},
	}
	rateLimited := &ads.ResponseError{StatusCode: http.StatusTooManyRequests}

	assert.True(t, ads.IsNotFound(notFound))
	assert.True(t, ads.IsNotFound(wrapped))
	assert.True(t, ads.IsNotFound(codeOnly))
	assert.True(t, ads.IsNotFound(&ads.APIError{Code: ads.ErrorCodeNotFound}))
	assert.False(t, ads.IsNotFound(rateLimited))
	assert.False(t, ads.IsNotFound(nil))

	assert.True(t, ads.IsRateLimited(rateLimited))
	assert.True(t, ads.IsUnauthorized(&ads.ResponseError{StatusCode: http.StatusUnauthorized}))
	assert.True(t, ads.IsForbidden(&ads.ResponseError{StatusCode: http.StatusForbidden}))
	assert.False(t, ads.IsUnauthorized(notFound))
}

func TestParseResponseError(t *testing.T) {
	t.Parallel()

	body := []byte(`{"errors":[{"code":"INVALID_PARAMETER","message":"Expected a value","attribute":"name"}],"request":{}}`)

	resp, err := ads.ParseResponseError(http.StatusBadRequest, body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, resp.FirstError())
	assert.Equal(t, "name", resp.FirstError().Attribute)

	_, err = ads.ParseResponseError(http.StatusBadGateway, []byte(`<html>`))
	require.Error(t, err)

	assert.Nil(t, (&ads.ResponseError{}).FirstError())
}

func TestTypedErrorsUnwrapToSentinels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err      error
		sentinel error
	}{
		{err: &ads.UnsupportedValueKindError{Field: "f", Kind: ads.KindInteger}, sentinel: ads.ErrUnsupportedValueKind},
		{err: &ads.MalformedValueError{Field: "f", Raw: "x"}, sentinel: ads.ErrMalformedValue},
		{err: &ads.UnrecognizedEnumValueError{Enum: "entity", Value: "X"}, sentinel: ads.ErrUnrecognizedEnumValue},
		{err: &ads.UnknownMetricError{Name: "x"}, sentinel: ads.ErrUnknownMetric},
		{err: &ads.PartialDecodeError{Index: 1, Err: ads.ErrMalformedValue}, sentinel: ads.ErrPartialDecodeFailure},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			t.Parallel()

			require.ErrorIs(t, tt.err, tt.sentinel)
			require.ErrorIs(t, fmt.Errorf("wrapped: %w", tt.err), tt.sentinel)
		})
	}

	assert.Equal(t, `field "f": integer cannot encode value of type string`,
		(&ads.UnsupportedValueKindError{Field: "f", Kind: ads.KindInteger, Value: "5"}).Error())
}
