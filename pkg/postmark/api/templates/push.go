package templates

import (
	"context"
	"net/http"

	"github.com/postmarkgo/postmark/pkg/postmark"
	"github.com/postmarkgo/postmark/pkg/postmark/api"
)

// PushTemplatesRequest copies templates between servers. It requires
// the account token.
type PushTemplatesRequest struct {
	postmark.Returns[PushTemplatesResponse] `json:"-"`

	SourceServerID      int64 `json:"SourceServerID"`
	DestinationServerID int64 `json:"DestinationServerID"`

	// PerformChanges is false for a dry run.
	PerformChanges bool
}

// NewPushTemplatesRequest creates a [*PushTemplatesRequest] that
// performs the changes.
func NewPushTemplatesRequest(source, destination int64) *PushTemplatesRequest {
	return &PushTemplatesRequest{
		SourceServerID:      source,
		DestinationServerID: destination,
		PerformChanges:      true,
	}
}

var _ postmark.Endpoint[*PushTemplatesRequest, PushTemplatesResponse] = &PushTemplatesRequest{}

// Path implements postmark.Endpoint.
func (r *PushTemplatesRequest) Path() string {
	return "/templates/push"
}

// Method implements postmark.MethodOverrider.
func (r *PushTemplatesRequest) Method() string {
	return http.MethodPut
}

// RequestBody implements postmark.Endpoint.
func (r *PushTemplatesRequest) RequestBody() *PushTemplatesRequest {
	return r
}

// Execute pushes the templates using txp.
func (r *PushTemplatesRequest) Execute(ctx context.Context, txp postmark.Transport) (PushTemplatesResponse, error) {
	return postmark.Execute[*PushTemplatesRequest, PushTemplatesResponse](ctx, txp, r)
}

// PushTemplatesResponse describes what pushing did or would do.
type PushTemplatesResponse struct {
	api.Status
	TotalCount int64
	Templates  []PushedTemplate
}

// PushedTemplate is a template affected by pushing.
type PushedTemplate struct {
	Action       TemplateAction
	TemplateID   int64 `json:"TemplateId"`
	Alias        string
	Name         string
	TemplateType TemplateType
}
