package source

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
)

// serve starts a server which responds to all requests with the specified document. The returned function lists URIs
// of the requests received so far.
func serve(t *testing.T, status int, contentType string, body string) (string, func() []string) {
	var (
		lock     sync.Mutex
		requests []string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lock.Lock()
		requests = append(requests, r.URL.RequestURI())
		lock.Unlock()

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server.URL, func() []string {
		lock.Lock()
		defer lock.Unlock()
		return slices.Clone(requests)
	}
}
