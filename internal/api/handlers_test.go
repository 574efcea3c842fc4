package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRootAnnouncesRoutes(t *testing.T) {
	t.Parallel()

	handler := NewHandler()
	rr := httptest.NewRecorder()
	handler.Root(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["message"] != "Server is running. Visit /public or /protected" {
		t.Fatalf("unexpected root message %q", body["message"])
	}
}

func TestRootServesNotFoundForOtherPaths(t *testing.T) {
	t.Parallel()

	handler := NewHandler()
	rr := httptest.NewRecorder()
	handler.Root(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assertNotFound(t, rr)
}

func TestPublicResponds200(t *testing.T) {
	t.Parallel()

	handler := NewHandler()
	rr := httptest.NewRecorder()
	handler.Public(rr, httptest.NewRequest(http.MethodGet, "/public", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["message"] != "This is a public route" {
		t.Fatalf("unexpected public message %q", body["message"])
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected JSON content type, got %q", got)
	}
}

func TestProtectedIncludesTimestamp(t *testing.T) {
	t.Parallel()

	handler := NewHandler()
	before := time.Now().UTC().Add(-2 * time.Second)
	rr := httptest.NewRecorder()
	handler.Protected(rr, httptest.NewRequest(http.MethodGet, "/protected", nil))
	after := time.Now().UTC().Add(2 * time.Second)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["message"] != "Access granted to protected route" {
		t.Fatalf("unexpected protected message %q", body["message"])
	}

	stamp, err := time.Parse(time.RFC3339, body["timestamp"])
	if err != nil {
		t.Fatalf("timestamp %q is not RFC 3339: %v", body["timestamp"], err)
	}
	if stamp.Before(before) || stamp.After(after) {
		t.Fatalf("timestamp %v outside the call window [%v, %v]", stamp, before, after)
	}
}

func TestHealthResponds200(t *testing.T) {
	t.Parallel()

	handler := NewHandler()
	rr := httptest.NewRecorder()
	handler.Health(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body := decodeBody(t, rr); body["status"] != "ok" {
		t.Fatalf("unexpected health body %v", body)
	}
}

func TestNonGETMethodsAreNotFound(t *testing.T) {
	t.Parallel()

	handler := NewHandler()
	routes := []struct {
		name string
		path string
		call func(http.ResponseWriter, *http.Request)
	}{
		{name: "root", path: "/", call: handler.Root},
		{name: "public", path: "/public", call: handler.Public},
		{name: "protected", path: "/protected", call: handler.Protected},
		{name: "health", path: "/healthz", call: handler.Health},
	}

	for _, route := range routes {
		route := route
		t.Run(route.name, func(t *testing.T) {
			t.Parallel()
			rr := httptest.NewRecorder()
			route.call(rr, httptest.NewRequest(http.MethodPost, route.path, nil))
			assertNotFound(t, rr)
		})
	}
}

func TestRequestErrorMessage(t *testing.T) {
	t.Parallel()

	err := RequestError{Status: http.StatusForbidden, Message: "Invalid token"}
	if err.Error() != "Invalid token" {
		t.Fatalf("unexpected error string %q", err.Error())
	}
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	body := map[string]string{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body %q: %v", rr.Body.String(), err)
	}
	return body
}

func assertNotFound(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if body := decodeBody(t, rr); body["error"] != "Not Found" {
		t.Fatalf("unexpected not-found body %v", body)
	}
}
