package netxlite

//
// HTTP client factory
//

import (
	"net"
	"net/http"
	"net/url"
	"time"
)

// DefaultHTTPTimeout is the default overall timeout of an HTTP exchange.
const DefaultHTTPTimeout = 60 * time.Second

// HTTPClientConfig configures [NewHTTPClient].
//
// The zero value is valid and means default timeout and no proxy.
type HTTPClientConfig struct {
	// ProxyURL is the OPTIONAL proxy URL. We support the
	// http, https, and socks5 schemes.
	ProxyURL *url.URL

	// Timeout is the OPTIONAL overall timeout. When zero or
	// negative, we use [DefaultHTTPTimeout].
	Timeout time.Duration
}

// NewHTTPClient creates a pooled [*http.Client] honouring the config. The
// returned client is safe for concurrent use by multiple goroutines.
func NewHTTPClient(config *HTTPClientConfig) (*http.Client, error) {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	dialer := &net.Dialer{
		Timeout:   15 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	txp := &http.Transport{
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if URL := config.ProxyURL; URL != nil {
		switch URL.Scheme {
		case "http", "https":
			txp.Proxy = http.ProxyURL(URL)
		case "socks5":
			txp.DialContext = MaybeWrapWithProxyDialer(dialer, URL).DialContext
		default:
			return nil, ErrProxyUnsupportedScheme
		}
	}
	client := &http.Client{
		Transport: txp,
		Timeout:   timeout,
	}
	return client, nil
}
