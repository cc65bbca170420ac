// Package utils contains shared helpers for provider listing clients.
package utils

import (
	"time"

	"github.com/valyala/fasthttp"
)

// DefaultRequestTimeout bounds every listing request. The cache core itself
// never cancels a fetch; the client owns its own timeout.
const DefaultRequestTimeout = 30 * time.Second

// NewHTTPClient builds the fasthttp client used by listing providers, with
// timeouts and connection limits suitable for occasional catalog fetches.
func NewHTTPClient(timeout time.Duration) *fasthttp.Client {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &fasthttp.Client{
		ReadTimeout:         timeout,
		WriteTimeout:        timeout,
		MaxConnsPerHost:     64,
		MaxIdleConnDuration: 30 * time.Second,
		MaxConnWaitTimeout:  10 * time.Second,
	}
}
