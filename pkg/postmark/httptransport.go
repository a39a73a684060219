package postmark

//
// HTTP transport
//

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/postmarkgo/postmark/internal/model"
	"github.com/postmarkgo/postmark/internal/netxlite"
)

// DefaultBaseURL is the base URL of the Postmark API.
const DefaultBaseURL = "https://api.postmarkapp.com/"

// DefaultMaxBodySize is the default maximum response body size.
const DefaultMaxBodySize = 1 << 22

// HTTPTransport is the [Transport] talking to the Postmark API over HTTP.
//
// All fields are OPTIONAL and the zero value talks to [DefaultBaseURL]
// without credentials using [http.DefaultClient]. Do not modify the
// fields once you started using the transport. With that constraint,
// this struct is safe for concurrent use.
type HTTPTransport struct {
	// AccountToken is the OPTIONAL account-scoped token, required by
	// account-level operations such as servers management.
	AccountToken string

	// BaseURL is the OPTIONAL base URL. When empty, we use [DefaultBaseURL].
	BaseURL string

	// Client is the OPTIONAL [HTTPClient]. When nil, we use [http.DefaultClient].
	Client HTTPClient

	// Logger is the OPTIONAL [Logger]. When nil, we do not log.
	Logger Logger

	// MaxBodySize is the OPTIONAL maximum response body size. When
	// zero or negative, we use [DefaultMaxBodySize].
	MaxBodySize int64

	// ServerToken is the OPTIONAL server-scoped token, required by
	// server-level operations such as sending email.
	ServerToken string

	// UserAgent is the OPTIONAL User-Agent. When empty, we use
	// [model.HTTPHeaderUserAgent].
	UserAgent string
}

// NewHTTPTransport creates a new [*HTTPTransport] using the given server token.
func NewHTTPTransport(serverToken string) *HTTPTransport {
	return &HTTPTransport{
		AccountToken: "",
		BaseURL:      DefaultBaseURL,
		Client:       http.DefaultClient,
		Logger:       model.DiscardLogger,
		MaxBodySize:  DefaultMaxBodySize,
		ServerToken:  serverToken,
		UserAgent:    model.HTTPHeaderUserAgent,
	}
}

var _ Transport = &HTTPTransport{}

// Execute implements Transport.
func (txp *HTTPTransport) Execute(ctx context.Context, req *WireRequest) (*WireResponse, error) {
	logger := model.ValidLoggerOrDefault(txp.Logger)

	// create the HTTP request
	httpReq, err := txp.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	logger.Debugf("postmark: %s %s: request body length: %d", req.Method, req.Path, len(req.Body))

	// perform the round trip
	httpResp, err := txp.client().Do(httpReq)
	if err != nil {
		logger.Debugf("postmark: %s %s: %s", req.Method, req.Path, err.Error())
		return nil, err
	}
	defer httpResp.Body.Close()

	// read the body, including the body of non-successful responses
	maxBodySize := txp.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	data, err := netxlite.ReadAllContext(ctx, io.LimitReader(httpResp.Body, maxBodySize))
	if err != nil {
		logger.Debugf("postmark: %s %s: reading body: %s", req.Method, req.Path, err.Error())
		return nil, err
	}
	logger.Debugf("postmark: %s %s: status %d, response body length: %d",
		req.Method, req.Path, httpResp.StatusCode, len(data))

	resp := &WireResponse{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       data,
	}
	return resp, nil
}

// newRequest converts a [*WireRequest] to an [*http.Request].
func (txp *HTTPTransport) newRequest(ctx context.Context, req *WireRequest) (*http.Request, error) {
	URL, err := resolveURL(txp.baseURL(), req.Path)
	if err != nil {
		return nil, err
	}
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, URL, body)
	if err != nil {
		return nil, err
	}
	// copy, so the request we were given stays untouched
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	if txp.ServerToken != "" {
		httpReq.Header.Set(model.HTTPHeaderServerToken, txp.ServerToken)
	}
	if txp.AccountToken != "" {
		httpReq.Header.Set(model.HTTPHeaderAccountToken, txp.AccountToken)
	}
	userAgent := txp.UserAgent
	if userAgent == "" {
		userAgent = model.HTTPHeaderUserAgent
	}
	httpReq.Header.Set("User-Agent", userAgent)
	return httpReq, nil
}

func (txp *HTTPTransport) baseURL() string {
	if txp.BaseURL != "" {
		return txp.BaseURL
	}
	return DefaultBaseURL
}

func (txp *HTTPTransport) client() HTTPClient {
	if txp.Client != nil {
		return txp.Client
	}
	return http.DefaultClient
}

// resolveURL joins the endpoint path with the base URL, preserving the
// query string and the escaping of the endpoint path.
func resolveURL(baseURL, endpointPath string) (string, error) {
	URL, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(endpointPath)
	if err != nil {
		return "", err
	}
	URL.RawPath = joinURLPath(URL.EscapedPath(), ref.EscapedPath())
	URL.Path = joinURLPath(URL.Path, ref.Path)
	URL.RawQuery = ref.RawQuery
	return URL.String(), nil
}

// joinURLPath appends resourcePath to urlPath.
func joinURLPath(urlPath, resourcePath string) string {
	if resourcePath == "" {
		if urlPath == "" {
			return "/"
		}
		return urlPath
	}
	if !strings.HasSuffix(urlPath, "/") {
		urlPath += "/"
	}
	resourcePath = strings.TrimPrefix(resourcePath, "/")
	return urlPath + resourcePath
}
