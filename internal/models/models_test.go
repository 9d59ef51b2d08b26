package models

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBriefUnmarshalKeepsKeyPresence(t *testing.T) {
	var brief Brief
	require.NoError(t, json.Unmarshal([]byte(`{"id":1234,"status":"live","niceToHaveRequirements":[],"essentialRequirements":["a"]}`), &brief))

	assert.Equal(t, 1234, brief.ID)
	assert.True(t, brief.HasKey("niceToHaveRequirements"))
	assert.Empty(t, brief.List("niceToHaveRequirements"))
	assert.False(t, brief.HasKey("evaluationType"))
	assert.True(t, brief.IsLive())
}

func TestBriefResponseUnmarshalSeparatesAnswers(t *testing.T) {
	var response BriefResponse
	payload := `{"id":5,"briefId":1234,"supplierId":1,"status":"draft","dayRate":"300","essentialRequirementsMet":true}`
	require.NoError(t, json.Unmarshal([]byte(payload), &response))

	assert.Equal(t, DraftResponse, response.Status)
	assert.True(t, response.BelongsTo(1234, 1))
	assert.False(t, response.BelongsTo(1234, 2))

	rate, ok := response.Answer("dayRate")
	assert.True(t, ok)
	assert.Equal(t, "300", rate)
	_, ok = response.Answer("status")
	assert.False(t, ok)
}

func TestServiceRolePriceMax(t *testing.T) {
	var service Service
	require.NoError(t, json.Unmarshal([]byte(`{"id":"123","lot":"digital-specialists","developerPriceMax":"1000"}`), &service))

	assert.Equal(t, "1000", service.RolePriceMax("developer"))
	assert.Equal(t, "", service.RolePriceMax("designer"))
	assert.Equal(t, "", service.RolePriceMax(""))
}

func TestParseValidationErrors(t *testing.T) {
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"respondToEmailAddress": "invalid_format",
		"essentialRequirements": [
			{"field": "evidence", "index": 0, "error": "under_100_words"},
			{"field": "evidence", "index": 2, "error": "answer_required"}
		]
	}`), &payload))

	errs := ParseValidationErrors(payload)
	require.Len(t, errs, 3)

	fe, ok := errs.Find("essentialRequirements", "evidence", 2)
	require.True(t, ok)
	assert.Equal(t, "answer_required", fe.Code)
	assert.True(t, fe.Indexed())

	assert.True(t, errs.Has("respondToEmailAddress", "invalid_format"))
	assert.Len(t, errs.For("essentialRequirements"), 2)
}

func TestNewErrorResponseKinds(t *testing.T) {
	assert.Equal(t, KindNotFound, NotFound().Kind)
	assert.Equal(t, KindForbidden, Forbidden("no").Kind)
	assert.Equal(t, KindUpstreamUnavailable, Unavailable("down").Kind)
	assert.Equal(t, KindInternal, NewErrorResponse(http.StatusInternalServerError, "boom").Kind)
}

func TestAPIErrorServerError(t *testing.T) {
	assert.True(t, (&APIError{StatusCode: 503, Message: "down"}).IsServerError())

	err := &APIError{StatusCode: 400, Message: map[string]any{"dayRate": "answer_required"}}
	assert.False(t, err.IsServerError())
	fields, ok := err.Fields()
	require.True(t, ok)
	assert.Equal(t, "answer_required", fields["dayRate"])
}
