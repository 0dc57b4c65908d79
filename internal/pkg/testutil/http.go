package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Envelope is the decoded form of a response envelope.
type Envelope struct {
	Success    bool                   `json:"success"`
	Message    *string                `json:"message"`
	Code       int                    `json:"code"`
	Data       json.RawMessage        `json:"data"`
	Pagination map[string]interface{} `json:"pagination"`
	Errors     map[string][]string    `json:"errors"`
}

// PerformRequest sends a request with an optional JSON body through handler.
func PerformRequest(t *testing.T, handler http.Handler, method, target string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

// DecodeEnvelope decodes a recorded response envelope.
func DecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

// DecodeData decodes the data member of an envelope into v.
func DecodeData(t *testing.T, env Envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v), string(env.Data))
}
