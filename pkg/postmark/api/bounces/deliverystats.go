package bounces

import (
	"context"
	"net/http"

	"github.com/postmarkgo/postmark/pkg/postmark"
	"github.com/postmarkgo/postmark/pkg/postmark/api"
)

// DeliveryStatsRequest fetches the bounce counts of the server.
type DeliveryStatsRequest struct {
	postmark.Returns[DeliveryStatsResponse]
}

var _ postmark.Endpoint[postmark.NoBody, DeliveryStatsResponse] = &DeliveryStatsRequest{}

// Path implements postmark.Endpoint.
func (r *DeliveryStatsRequest) Path() string {
	return "/deliverystats"
}

// Method implements postmark.MethodOverrider.
func (r *DeliveryStatsRequest) Method() string {
	return http.MethodGet
}

// RequestBody implements postmark.Endpoint.
func (r *DeliveryStatsRequest) RequestBody() postmark.NoBody {
	return postmark.NoBody{}
}

// Execute fetches the stats using txp.
func (r *DeliveryStatsRequest) Execute(ctx context.Context, txp postmark.Transport) (DeliveryStatsResponse, error) {
	return postmark.Execute[postmark.NoBody, DeliveryStatsResponse](ctx, txp, r)
}

// DeliveryStatsResponse contains the bounce counts.
type DeliveryStatsResponse struct {
	api.Status

	// InactiveMails is the number of inactive addresses.
	InactiveMails int64

	// Bounces contains the count of each bounce type.
	Bounces []Bounce
}

// Bounce is the count of a bounce type. The entry summarizing all
// types has no Type.
type Bounce struct {
	Name  string
	Count int64
	Type  string `json:",omitempty"`
}
