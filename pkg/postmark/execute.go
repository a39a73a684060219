package postmark

//
// Dispatching endpoints to transports
//

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/postmarkgo/postmark/internal/model"
)

// Execute performs the call described by endpoint using txp.
//
// The request body is serialized as JSON, the transport is invoked, and
// the response body is deserialized as JSON into Response regardless of
// the HTTP status code, since the service reports application errors
// inside the body. Each step that fails short-circuits the call with
// an [*Error] of the corresponding [ErrorKind].
//
// Execute holds no state and is safe to call concurrently as long as
// txp is safe for concurrent use.
func Execute[Request, Response any](
	ctx context.Context, txp Transport, endpoint Endpoint[Request, Response]) (Response, error) {
	var zero Response
	method, path := methodOf(endpoint), endpoint.Path()

	// serialize the request body
	payload, err := encodeBody(endpoint.RequestBody())
	if err != nil {
		return zero, newError(ErrorKindEncode, method, path, err)
	}

	// build the wire request
	req := &WireRequest{
		Method: method,
		Path:   path,
		Header: http.Header{
			"Accept":       {model.ApplicationJSON},
			"Content-Type": {model.ApplicationJSON},
		},
		Body: payload,
	}

	// perform the exchange
	resp, err := txp.Execute(ctx, req)
	if err == nil && resp == nil {
		err = ErrNilWireResponse
	}
	if err != nil {
		return zero, newError(ErrorKindTransport, method, path, err)
	}

	// parse the response body, where json.Unmarshal would accept null as a no-op
	var output Response
	if err := decodeBody(resp.Body, &output); err != nil {
		perr := newError(ErrorKindDecode, method, path, err)
		perr.StatusCode = resp.StatusCode
		return zero, perr
	}
	return output, nil
}

// ErrNilWireResponse indicates that a [Transport] returned neither
// a response nor an error.
var ErrNilWireResponse = errors.New("postmark: transport returned nil response")

// ErrNullBody indicates that the response body is the JSON null literal.
var ErrNullBody = errors.New("postmark: response body is null")

// decodeBody deserializes a response body.
func decodeBody(data []byte, output any) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return ErrNullBody
	}
	return json.Unmarshal(data, output)
}

// encodeBody serializes the body of a request.
func encodeBody(body any) ([]byte, error) {
	if _, ok := body.(NoBody); ok {
		return nil, nil
	}
	return json.Marshal(body)
}
