package streams

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/postmarkgo/postmark/pkg/postmark"
	"github.com/postmarkgo/postmark/pkg/postmark/api"
)

// SuppressionStatus is the outcome of changing a suppression.
type SuppressionStatus string

const (
	SuppressionStatusSuppressed = SuppressionStatus("Suppressed")
	SuppressionStatusDeleted    = SuppressionStatus("Deleted")
	SuppressionStatusFailed     = SuppressionStatus("Failed")
)

// Suppression is an entry of a suppression list.
type Suppression struct {
	EmailAddress      string
	SuppressionReason string
	Origin            string

	// CreatedAt is an RFC 3339 timestamp on the wire.
	CreatedAt time.Time
}

// SuppressionChange is the outcome of changing a suppression.
type SuppressionChange struct {
	EmailAddress string
	Status       SuppressionStatus
	Message      *string
}

// Recipient identifies a suppressed address.
type Recipient struct {
	EmailAddress string
}

// Recipients returns the [Recipient] list for the given addresses.
func Recipients(addresses ...string) []Recipient {
	out := make([]Recipient, 0, len(addresses))
	for _, address := range addresses {
		out = append(out, Recipient{EmailAddress: address})
	}
	return out
}

// suppressionsPath returns the suppressions path of the given stream.
// The stream ID is path-escaped, so "a/b" becomes "a%2Fb".
func suppressionsPath(stream string) string {
	return "/message-streams/" + url.PathEscape(stream) + "/suppressions"
}

// ListSuppressionsRequest dumps the suppression list of a stream.
type ListSuppressionsRequest struct {
	postmark.Returns[ListSuppressionsResponse]

	// Stream is the MANDATORY stream ID.
	Stream string

	// The following are OPTIONAL filters.
	SuppressionReason string
	Origin            string
	EmailAddress      string
}

var _ postmark.Endpoint[postmark.NoBody, ListSuppressionsResponse] = &ListSuppressionsRequest{}

// Path implements postmark.Endpoint.
func (r *ListSuppressionsRequest) Path() string {
	query := url.Values{}
	if r.SuppressionReason != "" {
		query.Set("SuppressionReason", r.SuppressionReason)
	}
	if r.Origin != "" {
		query.Set("Origin", r.Origin)
	}
	if r.EmailAddress != "" {
		query.Set("EmailAddress", r.EmailAddress)
	}
	path := suppressionsPath(r.Stream) + "/dump"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return path
}

// Method implements postmark.MethodOverrider.
func (r *ListSuppressionsRequest) Method() string {
	return http.MethodGet
}

// RequestBody implements postmark.Endpoint.
func (r *ListSuppressionsRequest) RequestBody() postmark.NoBody {
	return postmark.NoBody{}
}

// Execute dumps the suppressions using txp.
func (r *ListSuppressionsRequest) Execute(ctx context.Context, txp postmark.Transport) (ListSuppressionsResponse, error) {
	return postmark.Execute[postmark.NoBody, ListSuppressionsResponse](ctx, txp, r)
}

// ListSuppressionsResponse contains the suppressions.
type ListSuppressionsResponse struct {
	api.Status
	Suppressions []Suppression
}

// CreateSuppressionsRequest suppresses addresses in a stream.
type CreateSuppressionsRequest struct {
	postmark.Returns[ChangeSuppressionsResponse] `json:"-"`

	// Stream is the MANDATORY stream ID.
	Stream string `json:"-"`

	// Suppressions contains the addresses to suppress.
	Suppressions []Recipient
}

var _ postmark.Endpoint[*CreateSuppressionsRequest, ChangeSuppressionsResponse] = &CreateSuppressionsRequest{}

// Path implements postmark.Endpoint.
func (r *CreateSuppressionsRequest) Path() string {
	return suppressionsPath(r.Stream)
}

// RequestBody implements postmark.Endpoint.
func (r *CreateSuppressionsRequest) RequestBody() *CreateSuppressionsRequest {
	return r
}

// Execute suppresses the addresses using txp.
func (r *CreateSuppressionsRequest) Execute(
	ctx context.Context, txp postmark.Transport) (ChangeSuppressionsResponse, error) {
	return postmark.Execute[*CreateSuppressionsRequest, ChangeSuppressionsResponse](ctx, txp, r)
}

// DeleteSuppressionsRequest reactivates addresses in a stream.
type DeleteSuppressionsRequest struct {
	postmark.Returns[ChangeSuppressionsResponse] `json:"-"`

	// Stream is the MANDATORY stream ID.
	Stream string `json:"-"`

	// Suppressions contains the addresses to reactivate.
	Suppressions []Recipient
}

var _ postmark.Endpoint[*DeleteSuppressionsRequest, ChangeSuppressionsResponse] = &DeleteSuppressionsRequest{}

// Path implements postmark.Endpoint.
func (r *DeleteSuppressionsRequest) Path() string {
	return suppressionsPath(r.Stream) + "/delete"
}

// RequestBody implements postmark.Endpoint.
func (r *DeleteSuppressionsRequest) RequestBody() *DeleteSuppressionsRequest {
	return r
}

// Execute reactivates the addresses using txp.
func (r *DeleteSuppressionsRequest) Execute(
	ctx context.Context, txp postmark.Transport) (ChangeSuppressionsResponse, error) {
	return postmark.Execute[*DeleteSuppressionsRequest, ChangeSuppressionsResponse](ctx, txp, r)
}

// ChangeSuppressionsResponse contains the per-address outcomes.
type ChangeSuppressionsResponse struct {
	api.Status
	Suppressions []SuppressionChange
}
