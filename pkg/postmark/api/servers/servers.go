package servers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/postmarkgo/postmark/pkg/postmark"
	"github.com/postmarkgo/postmark/pkg/postmark/api"
)

// ServerColor is the color of a server in the web UI.
type ServerColor string

const (
	ServerColorPurple    = ServerColor("Purple")
	ServerColorBlue      = ServerColor("Blue")
	ServerColorTurquoise = ServerColor("Turquoise")
	ServerColorGreen     = ServerColor("Green")
	ServerColorRed       = ServerColor("Red")
	ServerColorYellow    = ServerColor("Yellow")
	ServerColorGrey      = ServerColor("Grey")
	ServerColorOrange    = ServerColor("Orange")
)

// DeliveryType tells whether a server delivers messages.
type DeliveryType string

const (
	// DeliveryTypeLive delivers messages.
	DeliveryTypeLive = DeliveryType("Live")

	// DeliveryTypeSandbox accepts messages without delivering them.
	DeliveryTypeSandbox = DeliveryType("Sandbox")
)

// Server describes a server.
type Server struct {
	ID               int64          `json:"ID"`
	Name             string         `json:",omitempty"`
	APITokens        []string       `json:"ApiTokens,omitempty"`
	Color            ServerColor    `json:",omitempty"`
	SMTPAPIActivated bool           `json:"SmtpApiActivated"`
	DeliveryType     DeliveryType   `json:",omitempty"`
	ServerLink       string         `json:",omitempty"`
	InboundAddress   string         `json:",omitempty"`
	TrackOpens       bool           `json:",omitempty"`
	TrackLinks       api.TrackLinks `json:",omitempty"`
}

// ServerResponse is the response of operations returning a server.
type ServerResponse struct {
	api.Status
	Server
}

// serverPath returns the path of the given server. The ref is
// path-escaped, so a name such as "a/b" becomes "a%2Fb".
func serverPath(server api.Ref) string {
	return "/servers/" + url.PathEscape(server.String())
}

// CreateServerRequest creates a server.
type CreateServerRequest struct {
	postmark.Returns[ServerResponse] `json:"-"`

	// Name is the MANDATORY server name.
	Name string

	Color            ServerColor  `json:",omitempty"`
	DeliveryType     DeliveryType `json:",omitempty"`
	SMTPAPIActivated bool         `json:"SmtpApiActivated"`
}

var _ postmark.Endpoint[*CreateServerRequest, ServerResponse] = &CreateServerRequest{}

// Path implements postmark.Endpoint.
func (r *CreateServerRequest) Path() string {
	return "/servers"
}

// RequestBody implements postmark.Endpoint.
func (r *CreateServerRequest) RequestBody() *CreateServerRequest {
	return r
}

// Execute creates the server using txp.
func (r *CreateServerRequest) Execute(ctx context.Context, txp postmark.Transport) (ServerResponse, error) {
	return postmark.Execute[*CreateServerRequest, ServerResponse](ctx, txp, r)
}

// GetServerRequest fetches a server.
type GetServerRequest struct {
	postmark.Returns[ServerResponse]
	Server api.Ref
}

var _ postmark.Endpoint[postmark.NoBody, ServerResponse] = &GetServerRequest{}

// Path implements postmark.Endpoint.
func (r *GetServerRequest) Path() string {
	return serverPath(r.Server)
}

// Method implements postmark.MethodOverrider.
func (r *GetServerRequest) Method() string {
	return http.MethodGet
}

// RequestBody implements postmark.Endpoint.
func (r *GetServerRequest) RequestBody() postmark.NoBody {
	return postmark.NoBody{}
}

// Execute fetches the server using txp.
func (r *GetServerRequest) Execute(ctx context.Context, txp postmark.Transport) (ServerResponse, error) {
	return postmark.Execute[postmark.NoBody, ServerResponse](ctx, txp, r)
}

// EditServerRequest edits a server. Only the fields that are set
// are modified.
type EditServerRequest struct {
	postmark.Returns[ServerResponse] `json:"-"`

	// Server is the MANDATORY server to edit.
	Server api.Ref `json:"-"`

	Name             string         `json:",omitempty"`
	Color            ServerColor    `json:",omitempty"`
	SMTPAPIActivated *bool          `json:"SmtpApiActivated,omitempty"`
	TrackOpens       *bool          `json:",omitempty"`
	TrackLinks       api.TrackLinks `json:",omitempty"`
}

var _ postmark.Endpoint[*EditServerRequest, ServerResponse] = &EditServerRequest{}

// Path implements postmark.Endpoint.
func (r *EditServerRequest) Path() string {
	return serverPath(r.Server)
}

// Method implements postmark.MethodOverrider.
func (r *EditServerRequest) Method() string {
	return http.MethodPut
}

// RequestBody implements postmark.Endpoint.
func (r *EditServerRequest) RequestBody() *EditServerRequest {
	return r
}

// Execute edits the server using txp.
func (r *EditServerRequest) Execute(ctx context.Context, txp postmark.Transport) (ServerResponse, error) {
	return postmark.Execute[*EditServerRequest, ServerResponse](ctx, txp, r)
}

// DeleteServerRequest deletes a server.
type DeleteServerRequest struct {
	postmark.Returns[api.Status]
	Server api.Ref
}

var _ postmark.Endpoint[postmark.NoBody, api.Status] = &DeleteServerRequest{}

// Path implements postmark.Endpoint.
func (r *DeleteServerRequest) Path() string {
	return serverPath(r.Server)
}

// Method implements postmark.MethodOverrider.
func (r *DeleteServerRequest) Method() string {
	return http.MethodDelete
}

// RequestBody implements postmark.Endpoint.
func (r *DeleteServerRequest) RequestBody() postmark.NoBody {
	return postmark.NoBody{}
}

// Execute deletes the server using txp.
func (r *DeleteServerRequest) Execute(ctx context.Context, txp postmark.Transport) (api.Status, error) {
	return postmark.Execute[postmark.NoBody, api.Status](ctx, txp, r)
}
