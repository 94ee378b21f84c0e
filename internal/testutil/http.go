package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Serve executes a request against the provided handler and returns the recorder.
func Serve(h http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// ServeRequest executes the given request against the handler.
func ServeRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// ServeWithPath calls a single handler outside the router. pathValues are
// name, value pairs set the way the mux would set {name} wildcards.
func ServeWithPath(fn http.HandlerFunc, method, target string, body io.Reader, pathValues ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	return ServeRequest(fn, req)
}

// JSONBody encodes v as a request body.
func JSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(data)
}

// AssertStatus verifies the response status code.
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rr.Code, rr.Body.String())
	}
}

// DecodeJSON decodes the recorder body into dest, failing the test on error.
func DecodeJSON(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dest); err != nil {
		t.Fatalf("failed to decode response %q: %v", rr.Body.String(), err)
	}
}

// AssertError checks the status and the "error" message of an error response.
func AssertError(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	AssertStatus(t, rr, status)
	var resp struct {
		Error string `json:"error"`
	}
	DecodeJSON(t, rr, &resp)
	if resp.Error != message {
		t.Fatalf("expected error %q, got %q", message, resp.Error)
	}
}
