package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAPIError(t *testing.T) {
	body := []byte(`{"json": {"errors": [["LIVEUPDATE_ALREADY_CONTRIBUTOR", "they are already a contributor", "name"]]}}`)

	apiErr := ExtractAPIError(body)
	require.NotNil(t, apiErr)
	assert.Equal(t, "LIVEUPDATE_ALREADY_CONTRIBUTOR", apiErr.Code)
	assert.Equal(t, "they are already a contributor", apiErr.Message)
	assert.Equal(t, "name", apiErr.Field)
	assert.True(t, apiErr.Conflict())
	assert.Contains(t, apiErr.Error(), "LIVEUPDATE_ALREADY_CONTRIBUTOR")
}

func TestExtractAPIErrorNullField(t *testing.T) {
	body := []byte(`{"json": {"errors": [["NO_TEXT", "we need something here", null]]}}`)

	apiErr := ExtractAPIError(body)
	require.NotNil(t, apiErr)
	assert.Equal(t, "NO_TEXT", apiErr.Code)
	assert.Empty(t, apiErr.Field)
	assert.False(t, apiErr.Conflict())
}

func TestExtractAPIErrorNoErrors(t *testing.T) {
	assert.Nil(t, ExtractAPIError([]byte(`{"json": {"errors": []}}`)))
	assert.Nil(t, ExtractAPIError([]byte(`{"kind": "LiveUpdateEvent", "data": {}}`)))
	assert.Nil(t, ExtractAPIError([]byte(`not json`)))
	assert.Nil(t, ExtractAPIError(nil))
}

func TestIsConflict(t *testing.T) {
	conflict := &APIError{Code: "LIVEUPDATE_ALREADY_CONTRIBUTOR"}
	assert.True(t, IsConflict(conflict))
	assert.True(t, IsConflict(fmt.Errorf("failed to invite spez: %w", conflict)))

	assert.False(t, IsConflict(&APIError{Code: "NO_TEXT"}))
	assert.False(t, IsConflict(&RequestError{StatusCode: 500}))
	assert.False(t, IsConflict(nil))
}

func TestRequestErrorMessage(t *testing.T) {
	err := &RequestError{StatusCode: 404, Body: "not found"}
	assert.Equal(t, "API request failed with status 404: not found", err.Error())
}
