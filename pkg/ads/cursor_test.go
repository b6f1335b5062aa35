package ads_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/fivetwenty-io/adsapi/pkg/ads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEntity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestDecodeList(t *testing.T) {
	t.Parallel()

	body := []byte(`{"data":[{"id":"a","name":"first"},{"id":"b","name":"second"}],"next_cursor":"c2","total_count":5}`)

	page, err := ads.DecodeList(body, ads.DecodeJSON[testEntity])
	require.NoError(t, err)
	assert.Equal(t, []testEntity{{ID: "a", Name: "first"}, {ID: "b", Name: "second"}}, page.Data)
	assert.True(t, page.HasNext())
	assert.Equal(t, "c2", page.Cursor())
	require.NotNil(t, page.TotalCount)
	assert.Equal(t, int64(5), *page.TotalCount)
}

func TestDecodeListLastPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "absent cursor", body: `{"data":[{"id":"a"}]}`},
		{name: "null cursor", body: `{"data":[{"id":"a"}],"next_cursor":null}`},
		{name: "empty cursor", body: `{"data":[{"id":"a"}],"next_cursor":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page, err := ads.DecodeList([]byte(tt.body), ads.DecodeJSON[testEntity])
			require.NoError(t, err)
			assert.Len(t, page.Data, 1)
			assert.False(t, page.HasNext())
			assert.Empty(t, page.Cursor())
		})
	}
}

func TestDecodeListEmptyPage(t *testing.T) {
	t.Parallel()

	page, err := ads.DecodeList([]byte(`{"data":[]}`), ads.DecodeJSON[testEntity])
	require.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}

func TestDecodeListMalformedEnvelope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing data", body: `{"next_cursor":"c2"}`},
		{name: "null data", body: `{"data":null}`},
		{name: "data is an object", body: `{"data":{"id":"a"}}`},
		{name: "not json", body: `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ads.DecodeList([]byte(tt.body), ads.DecodeJSON[testEntity])
			require.ErrorIs(t, err, ads.ErrMalformedValue)
		})
	}
}

func TestDecodeListReportsFailingElement(t *testing.T) {
	t.Parallel()

	body := []byte(`{"data":[{"id":"a"},{"id":"b"},{"id":7},{"id":"d"}]}`)

	_, err := ads.DecodeList(body, ads.DecodeJSON[testEntity])
	require.ErrorIs(t, err, ads.ErrPartialDecodeFailure)

	var partial *ads.PartialDecodeError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, 2, partial.Index)
}

func TestDecodeListStopsAtFirstDecoderError(t *testing.T) {
	t.Parallel()

	errRejected := errors.New("rejected")
	calls := 0

	decode := func(raw json.RawMessage) (string, error) {
		calls++
		if calls > 1 {
			return "", errRejected
		}

		return string(raw), nil
	}

	_, err := ads.DecodeList([]byte(`{"data":[1,2,3]}`), decode)
	require.ErrorIs(t, err, errRejected)
	assert.Equal(t, 2, calls)
}

func TestDecodeEntity(t *testing.T) {
	t.Parallel()

	entity, err := ads.DecodeEntity[testEntity]([]byte(`{"data":{"id":"a","name":"first"},"request":{}}`))
	require.NoError(t, err)
	assert.Equal(t, &testEntity{ID: "a", Name: "first"}, entity)

	_, err = ads.DecodeEntity[testEntity]([]byte(`{"data":null}`))
	require.ErrorIs(t, err, ads.ErrMalformedValue)

	_, err = ads.DecodeEntity[testEntity]([]byte(`{}`))
	require.ErrorIs(t, err, ads.ErrMalformedValue)
}

func TestDecodeAccount(t *testing.T) {
	t.Parallel()

	body := []byte(`{"data":{"id":"18ce54d4x5t","name":"Acme","timezone":"America/Los_Angeles",` +
		`"timezone_switch_at":"2024-01-15T08:00:00Z","approval_status":"ACCEPTED",` +
		`"created_at":"2024-01-15T12:00:00Z","updated_at":"2024-01-16T12:00:00Z","deleted":false}}`)

	account, err := ads.DecodeEntity[ads.Account](body)
	require.NoError(t, err)
	assert.Equal(t, "18ce54d4x5t", account.ID)
	assert.Equal(t, "Acme", account.Name)
	assert.Equal(t, ads.ApprovalStatusAccepted, account.ApprovalStatus)
	assert.Equal(t, 2024, account.CreatedAt.Year())

	_, err = ads.DecodeEntity[ads.Account]([]byte(`{"data":{"id":"x","approval_status":"MAYBE"}}`))
	require.ErrorIs(t, err, ads.ErrUnrecognizedEnumValue)
}
