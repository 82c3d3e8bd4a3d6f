// Package transport abstracts the HTTP round trip so the client can run
// both on a regular Go runtime and inside Cloudflare Workers.
package transport

import "net/http"

// HTTPClient sends a single HTTP request.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
