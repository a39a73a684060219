package netxlite

//
// Optional SOCKS5 proxy support
//

import (
	"context"
	"errors"
	"net"
	"net/url"

	"golang.org/x/net/proxy"
)

// Dialer dials network connections.
//
// [*net.Dialer] implements this interface.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// proxyDialer is a dialer using a SOCKS5 proxy.
type proxyDialer struct {
	Dialer   Dialer
	ProxyURL *url.URL
}

// MaybeWrapWithProxyDialer returns the original dialer if the proxyURL is nil
// and otherwise returns a wrapped dialer that dials through the SOCKS5 proxy.
func MaybeWrapWithProxyDialer(dialer Dialer, proxyURL *url.URL) Dialer {
	if proxyURL == nil {
		return dialer
	}
	return &proxyDialer{
		Dialer:   dialer,
		ProxyURL: proxyURL,
	}
}

// ErrProxyUnsupportedScheme indicates we don't support the proxy scheme.
var ErrProxyUnsupportedScheme = errors.New("proxy: unsupported scheme")

// DialContext implements Dialer.
func (d *proxyDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	URL := d.ProxyURL
	if URL.Scheme != "socks5" {
		return nil, ErrProxyUnsupportedScheme
	}
	var auth *proxy.Auth
	if user := URL.User; user != nil {
		password, _ := user.Password()
		auth = &proxy.Auth{User: user.Username(), Password: password}
	}
	child, err := proxy.SOCKS5(network, URL.Host, auth, &proxyDialerWrapper{d.Dialer})
	if err != nil {
		return nil, err
	}
	cd := child.(proxy.ContextDialer) // the SOCKS5 dialer implements it
	return cd.DialContext(ctx, network, address)
}

// proxyDialerWrapper adapts our Dialer to what SOCKS5 expects. The
// SOCKS5 code checks whether DialContext is available and prefers it.
type proxyDialerWrapper struct {
	Dialer
}

func (d *proxyDialerWrapper) Dial(network, address string) (net.Conn, error) {
	panic(errors.New("proxyDialerWrapper.Dial should not be called directly"))
}
