// Package utils provides helpers shared by the client packages: the resty
// client wrapper used by the transport adapter and device IMEI generation.
package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Example usage:
//
//	client := utils.NewHTTPClient(utils.WithTimeout(10 * time.Second))
//	resp, err := client.R().Get("https://id.zalo.me/account")
type HTTPClient struct {
	*resty.Client
	followRedirects bool
}

// HTTPClientOption configures an HTTPClient.
type HTTPClientOption func(*HTTPClient)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) HTTPClientOption {
	return func(c *HTTPClient) {
		if d > 0 {
			c.SetTimeout(d)
		}
	}
}

// WithoutRedirects makes the client return 3xx responses as they are
// instead of following them.
func WithoutRedirects() HTTPClientOption {
	return func(c *HTTPClient) {
		c.followRedirects = false
		c.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))
	}
}

// WithHeaders sets headers sent with every request.
func WithHeaders(headers map[string]string) HTTPClientOption {
	return func(c *HTTPClient) {
		c.SetHeaders(headers)
	}
}

// NewHTTPClient creates an independent HTTPClient. Redirects are followed
// unless WithoutRedirects is given.
func NewHTTPClient(opts ...HTTPClientOption) *HTTPClient {
	c := &HTTPClient{Client: resty.New(), followRedirects: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FollowsRedirects reports whether the client follows 3xx responses.
func (c *HTTPClient) FollowsRedirects() bool {
	return c.followRedirects
}
