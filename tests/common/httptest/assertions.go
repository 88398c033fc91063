//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ErrorBody is the envelope httperr writes. Detail stays raw so callers decode what they expect.
type ErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail json.RawMessage `json:"detail,omitempty"`
}

// AssertSuccessResponse checks the status and, for 2xx with a target, decodes the body into it.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if target == nil || expectedStatus < 200 || expectedStatus >= 300 {
		return
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "Failed to decode response JSON: %s", w.Body.String())
}

// AssertErrorResponse checks the status and the error envelope. An empty expectedErrorMsg only
// requires the envelope to decode.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) ErrorBody {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var body ErrorBody
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "Failed to decode error response JSON: %s", w.Body.String())
	if expectedErrorMsg != "" {
		assert.Contains(t, body.Error.Message, expectedErrorMsg)
	}
	return body
}

// DecodeDetail unmarshals the detail of an error envelope.
func DecodeDetail(t *testing.T, body ErrorBody, target any) {
	t.Helper()
	require.NotEmpty(t, body.Detail, "error response has no detail")
	require.NoError(t, json.Unmarshal(body.Detail, target))
}
