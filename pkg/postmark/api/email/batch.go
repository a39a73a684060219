package email

import (
	"context"

	"github.com/postmarkgo/postmark/pkg/postmark"
)

const (
	// SendEmailBatchPath is the path of the [SendEmailBatchRequest] endpoint.
	SendEmailBatchPath = "/email/batch"

	// SendEmailBatchWithTemplatesPath is the path of the
	// [SendEmailBatchWithTemplatesRequest] endpoint.
	SendEmailBatchWithTemplatesPath = "/email/batchWithTemplates"
)

// SendEmailBatchRequest sends up to 500 messages in a single call. The
// request body is the JSON array of messages.
type SendEmailBatchRequest struct {
	postmark.Returns[[]SendEmailResponse]

	Messages []*SendEmailRequest
}

var _ postmark.Endpoint[[]*SendEmailRequest, []SendEmailResponse] = &SendEmailBatchRequest{}

// Path implements postmark.Endpoint.
func (r *SendEmailBatchRequest) Path() string {
	return SendEmailBatchPath
}

// RequestBody implements postmark.Endpoint.
func (r *SendEmailBatchRequest) RequestBody() []*SendEmailRequest {
	if r.Messages == nil {
		return []*SendEmailRequest{}
	}
	return r.Messages
}

// Execute sends the messages using txp. The responses are in the
// same order as the messages and each carries its own status.
func (r *SendEmailBatchRequest) Execute(ctx context.Context, txp postmark.Transport) ([]SendEmailResponse, error) {
	return postmark.Execute[[]*SendEmailRequest, []SendEmailResponse](ctx, txp, r)
}

// SendEmailBatchWithTemplatesRequest sends multiple templated messages
// in a single call.
type SendEmailBatchWithTemplatesRequest struct {
	postmark.Returns[[]SendEmailResponse] `json:"-"`

	Messages []*SendEmailWithTemplateRequest
}

var _ postmark.Endpoint[*SendEmailBatchWithTemplatesRequest, []SendEmailResponse] = &SendEmailBatchWithTemplatesRequest{}

// Path implements postmark.Endpoint.
func (r *SendEmailBatchWithTemplatesRequest) Path() string {
	return SendEmailBatchWithTemplatesPath
}

// RequestBody implements postmark.Endpoint.
func (r *SendEmailBatchWithTemplatesRequest) RequestBody() *SendEmailBatchWithTemplatesRequest {
	return r
}

// Execute sends the messages using txp.
func (r *SendEmailBatchWithTemplatesRequest) Execute(
	ctx context.Context, txp postmark.Transport) ([]SendEmailResponse, error) {
	return postmark.Execute[*SendEmailBatchWithTemplatesRequest, []SendEmailResponse](ctx, txp, r)
}
