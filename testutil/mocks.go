package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// MockWebServer mocks an HTTP upstream (osu! web, attachment CDN) with
// per-path handlers.
type MockWebServer struct {
	*httptest.Server
	Handlers map[string]http.HandlerFunc
}

// NewMockWebServer creates a mock upstream; unhandled paths return 404.
func NewMockWebServer(t *testing.T) *MockWebServer {
	t.Helper()
	m := &MockWebServer{
		Handlers: make(map[string]http.HandlerFunc),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := m.Handlers[r.URL.Path]; ok {
			handler(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(m.Close)
	return m
}

// MockBody serves a fixed body with status 200 at path.
func (m *MockWebServer) MockBody(path string, body []byte) {
	m.Handlers[path] = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body) //nolint:errcheck // test mock response
	}
}

// MockStatus serves a fixed status code at path.
func (m *MockWebServer) MockStatus(path string, status int) {
	m.Handlers[path] = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}
}
