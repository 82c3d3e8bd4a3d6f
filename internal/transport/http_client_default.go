//go:build !js || !wasm

package transport

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates a new HTTP client for regular environments.
// Request deadlines are applied per attempt through the request context,
// so the client itself carries no overall timeout.
func NewHTTPClient() HTTPClient {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			ForceAttemptHTTP2:   true,
		},
	}
}
