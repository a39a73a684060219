package postmark

//
// Wire exchange
//

import (
	"context"
	"net/http"

	"github.com/postmarkgo/postmark/internal/model"
)

// WireRequest is the request that [Execute] hands to a [Transport].
type WireRequest struct {
	// Method is the HTTP method.
	Method string

	// Path is the endpoint path, relative to the service root, possibly
	// including a query string.
	Path string

	// Header contains the headers set by [Execute].
	Header http.Header

	// Body is the serialized request body. It is empty for [NoBody].
	Body []byte
}

// WireResponse is the response that a [Transport] returns.
type WireResponse struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Header contains the response headers.
	Header http.Header

	// Body is the raw response body.
	Body []byte
}

// Transport performs one wire exchange with the Postmark API.
//
// Implementations MUST be safe for concurrent use, MUST NOT modify the
// [*WireRequest], MUST NOT retry, and MUST attach their own credentials.
// A non-2xx status is not an error: it is returned as part of the
// [*WireResponse] along with the body.
type Transport interface {
	Execute(ctx context.Context, req *WireRequest) (*WireResponse, error)
}

// TransportFunc adapts a function to the [Transport] interface.
type TransportFunc func(ctx context.Context, req *WireRequest) (*WireResponse, error)

// Execute implements Transport.
func (fx TransportFunc) Execute(ctx context.Context, req *WireRequest) (*WireResponse, error) {
	return fx(ctx, req)
}

// Logger is the logger used by [*HTTPTransport]. The apex/log `log.Log`
// logger implements this interface.
type Logger = model.Logger

// HTTPClient is the HTTP client used by [*HTTPTransport].
// [*http.Client] implements this interface.
type HTTPClient = model.HTTPClient
