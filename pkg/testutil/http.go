// Package testutil holds helpers shared by handler and integration tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewJSONRequest builds a request whose body is the JSON encoding of body.
// A nil body produces an empty request.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// Do runs the request through the handler and returns the recorder.
func Do(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// DecodeData unpacks the data half of a success envelope into T.
func DecodeData[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.True(t, env.Success, "expected a success envelope, got %s", rr.Body.String())

	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

// DecodeErrorCode returns the error code from a failure envelope.
func DecodeErrorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.False(t, env.Success, "expected an error envelope, got %s", rr.Body.String())
	require.NotNil(t, env.Error)
	return env.Error.Code
}
