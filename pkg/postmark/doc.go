// Package postmark is a typed client binding for the Postmark
// transactional-email REST API.
//
// The package separates three concerns:
//
// - an [Endpoint] describes one remote call: its path, its method, the
// request body to serialize, and the response type to expect;
//
// - a [Transport] performs one wire exchange and knows nothing about
// the semantics of the call;
//
// - [Execute] ties an endpoint to a transport, encodes the body, invokes
// the transport, and decodes the response into the endpoint's response
// type, returning an [*Error] when any step fails.
//
// The operations already supported live in the subpackages of the api
// directory. You may define your own endpoints by embedding [Returns] in
// a struct and implementing Path and RequestBody.
//
// [*HTTPTransport] is the [Transport] that talks to the real service. It
// attaches the server and account tokens and resolves endpoint paths
// against its base URL (by default [DefaultBaseURL]).
//
// Application-level failures (e.g., an inactive recipient) are not
// errors at this layer: they arrive as successfully decoded responses
// whose ErrorCode field is nonzero.
package postmark
