package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequestIDMiddleware_GeneratesUniqueIDs(t *testing.T) {
	var seen []string
	handler := RequestIDMiddleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = append(seen, getRequestID(r.Context()))
	}))

	for i := 0; i < 2; i++ {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/", nil))

		if header := recorder.Header().Get("X-Request-ID"); header != seen[i] {
			t.Errorf("response header %q does not match context id %q", header, seen[i])
		}
	}

	if seen[0] == seen[1] {
		t.Errorf("expected distinct request ids, got %q twice", seen[0])
	}
	for _, id := range seen {
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("request id %q is not a valid uuid: %v", id, err)
		}
	}
}

func TestRequestIDMiddleware_KeepsClientProvidedID(t *testing.T) {
	handler := RequestIDMiddleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		if got := getRequestID(r.Context()); got != "client-id-1" {
			t.Errorf("expected client id to pass through, got %q", got)
		}
	}))

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/", nil)
	request.Header.Set("X-Request-ID", "client-id-1")

	handler.ServeHTTP(recorder, request)

	if header := recorder.Header().Get("X-Request-ID"); header != "client-id-1" {
		t.Errorf("expected echoed client id, got %q", header)
	}
}
