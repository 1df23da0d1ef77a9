package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// DecodeData reads a success envelope and decodes its data field into v.
func DecodeData(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	var envelope struct {
		StatusCode int             `json:"statusCode"`
		Data       json.RawMessage `json:"data"`
		Success    bool            `json:"success"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope), "failed to unmarshal response: %s", string(body))
	assert.True(t, envelope.Success, "expected success envelope: %s", string(body))
	assert.Equal(t, resp.StatusCode, envelope.StatusCode)
	if v != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, v), "failed to unmarshal data: %s", string(envelope.Data))
	}
}

// AssertErrorResponse verifies the failure envelope carries the expected
// status and message.
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	var envelope struct {
		StatusCode int      `json:"statusCode"`
		Message    string   `json:"message"`
		Success    bool     `json:"success"`
		Errors     []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope), "failed to unmarshal response: %s", string(body))
	assert.False(t, envelope.Success)
	assert.Equal(t, expectedStatus, envelope.StatusCode)
	assert.NotNil(t, envelope.Errors)
	if expectedMessage != "" {
		assert.Equal(t, expectedMessage, envelope.Message, "error message mismatch")
	}
}

// CookieValue returns the named cookie from the response, or "".
func CookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
