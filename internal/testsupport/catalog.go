package testsupport

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// CatalogServer serves a fixed catalog response and counts requests.
type CatalogServer struct {
	*httptest.Server
	requests atomic.Int64
}

// Requests returns how many requests the server has handled.
func (s *CatalogServer) Requests() int64 {
	return s.requests.Load()
}

// ServeCatalog starts an HTTP server answering every request with status and body.
func ServeCatalog(t testing.TB, status int, body string) *CatalogServer {
	t.Helper()

	srv := &CatalogServer{}
	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srv.requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}
