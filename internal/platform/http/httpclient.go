// Package http builds the HTTP clients used by the external data providers.
package http

import (
	"net"
	"net/http"
	"time"
)

// DefaultUserAgent is sent by provider clients that reject Go's default agent.
const DefaultUserAgent = "Mozilla/5.0 (compatible; fund_backend/1.0)"

// NewHTTPClient creates an HTTP client for calls to external data providers.
//
// Settings:
//   - Proxy: honours HTTP_PROXY / HTTPS_PROXY
//   - Dialer.Timeout: TCP connect timeout, shorter than the default
//   - MaxIdleConns / IdleConnTimeout: connection reuse across requests of one run
//   - TLSHandshakeTimeout: upper bound for the HTTPS handshake
//   - Client.Timeout: overall request timeout, passed by the caller
//
// http.DefaultClient has no timeout, so providers always go through this constructor.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
