package model

//
// HTTP definitions
//

import "net/http"

const (
	// HTTPHeaderUserAgent is the default User-Agent header.
	HTTPHeaderUserAgent = "postmark-go/0.1"

	// HTTPHeaderServerToken is the header carrying a server-scoped token.
	HTTPHeaderServerToken = "X-Postmark-Server-Token"

	// HTTPHeaderAccountToken is the header carrying an account-scoped token.
	HTTPHeaderAccountToken = "X-Postmark-Account-Token"

	// ApplicationJSON is the content-type for JSON.
	ApplicationJSON = "application/json"
)

// HTTPClient is the HTTP client used to talk to the Postmark API.
//
// [*http.Client] implements this interface.
type HTTPClient interface {
	// Do performs the given request.
	Do(req *http.Request) (*http.Response, error)

	// CloseIdleConnections closes the idle connections in the pool.
	CloseIdleConnections()
}

var _ HTTPClient = &http.Client{}
