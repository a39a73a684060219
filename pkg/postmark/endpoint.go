package postmark

//
// Operation descriptors
//

import "net/http"

// Endpoint describes a single Postmark API call whose request body has
// type Request and whose response body decodes into type Response.
//
// The Response type is bound to the concrete endpoint type by embedding
// [Returns], so [Execute] always yields the response type declared by
// the endpoint itself.
type Endpoint[Request, Response any] interface {
	// Path returns the path of the resource relative to the service root
	// (e.g., /templates/12345). It may contain a query string.
	Path() string

	// RequestBody returns the value to serialize as the request body. It
	// MUST NOT perform any I/O and MUST return equal values when called
	// multiple times on the same endpoint.
	RequestBody() Request

	responseType() Response
}

// MethodOverrider is the optional interface implemented by endpoints
// that do not use the POST method.
type MethodOverrider interface {
	Method() string
}

// Returns binds an endpoint to its Response type. Embed it into the
// struct implementing [Endpoint].
type Returns[Response any] struct{}

func (Returns[Response]) responseType() (r Response) {
	return
}

// NoBody is the Request type of endpoints without a request body, which
// typically are GET and DELETE endpoints.
type NoBody struct{}

// methodOf returns the method to use for the given endpoint.
func methodOf(endpoint any) string {
	if mo, ok := endpoint.(MethodOverrider); ok && mo.Method() != "" {
		return mo.Method()
	}
	return http.MethodPost
}
