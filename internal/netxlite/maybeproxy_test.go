package netxlite

import (
	"context"
	"errors"
	"net"
	"net/url"
	"testing"
)

type dialerFunc func(ctx context.Context, network, address string) (net.Conn, error)

func (f dialerFunc) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	return f(ctx, network, address)
}

func TestMaybeWrapWithProxyDialer(t *testing.T) {
	t.Run("without a proxy URL", func(t *testing.T) {
		child := &net.Dialer{}
		if MaybeWrapWithProxyDialer(child, nil) != Dialer(child) {
			t.Fatal("expected the original dialer")
		}
	})

	t.Run("with an unsupported scheme", func(t *testing.T) {
		URL := &url.URL{Scheme: "ftp", Host: "127.0.0.1:21"}
		dialer := MaybeWrapWithProxyDialer(&net.Dialer{}, URL)
		conn, err := dialer.DialContext(context.Background(), "tcp", "api.postmarkapp.com:443")
		if !errors.Is(err, ErrProxyUnsupportedScheme) {
			t.Fatal("unexpected error", err)
		}
		if conn != nil {
			t.Fatal("expected nil conn")
		}
	})

	t.Run("dials the proxy using the child dialer", func(t *testing.T) {
		expected := errors.New("mocked error")
		var gotAddress string
		child := dialerFunc(func(ctx context.Context, network, address string) (net.Conn, error) {
			gotAddress = address
			return nil, expected
		})
		URL := &url.URL{Scheme: "socks5", Host: "127.0.0.1:9050", User: url.UserPassword("u", "p")}
		dialer := MaybeWrapWithProxyDialer(child, URL)
		conn, err := dialer.DialContext(context.Background(), "tcp", "api.postmarkapp.com:443")
		if !errors.Is(err, expected) {
			t.Fatal("unexpected error", err)
		}
		if conn != nil {
			t.Fatal("expected nil conn")
		}
		if gotAddress != "127.0.0.1:9050" {
			t.Fatal("did not dial the proxy", gotAddress)
		}
	})

	t.Run("proxyDialerWrapper.Dial panics", func(t *testing.T) {
		d := &proxyDialerWrapper{}
		err := func() (rv error) {
			defer func() {
				if r := recover(); r != nil {
					rv = r.(error)
				}
			}()
			d.Dial("tcp", "10.0.0.1:1234")
			return
		}()
		if err == nil || err.Error() != "proxyDialerWrapper.Dial should not be called directly" {
			t.Fatal("unexpected result", err)
		}
	})
}
