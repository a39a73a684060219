package email

import (
	"context"
	"encoding/json"

	"github.com/postmarkgo/postmark/pkg/postmark"
	"github.com/postmarkgo/postmark/pkg/postmark/api"
)

// SendEmailWithTemplatePath is the path of the [SendEmailWithTemplateRequest] endpoint.
const SendEmailWithTemplatePath = "/email/withTemplate"

// TemplateModel contains the values used to render a template.
type TemplateModel map[string]any

// Set sets the value of key.
func (m TemplateModel) Set(key string, value any) {
	m[key] = value
}

// Delete removes key.
func (m TemplateModel) Delete(key string) {
	delete(m, key)
}

// MarshalJSON implements json.Marshaler. A nil model is an empty object.
func (m TemplateModel) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]any(m))
}

// SendEmailWithTemplateRequest sends a single email rendering a template.
//
// Exactly one of TemplateID and TemplateAlias must be set; constructing
// the request using [NewSendEmailWithTemplateRequest] guarantees that.
type SendEmailWithTemplateRequest struct {
	postmark.Returns[SendEmailResponse] `json:"-"`

	From          string
	To            string
	TemplateID    int64  `json:"TemplateId,omitempty"`
	TemplateAlias string `json:",omitempty"`
	TemplateModel TemplateModel

	InlineCss     *bool             `json:",omitempty"`
	Cc            string            `json:",omitempty"`
	Bcc           string            `json:",omitempty"`
	Tag           string            `json:",omitempty"`
	ReplyTo       string            `json:",omitempty"`
	Headers       []api.Header      `json:",omitempty"`
	TrackOpens    *bool             `json:",omitempty"`
	TrackLinks    api.TrackLinks    `json:",omitempty"`
	Attachments   []api.Attachment  `json:",omitempty"`
	Metadata      map[string]string `json:",omitempty"`
	MessageStream string            `json:",omitempty"`
}

// NewSendEmailWithTemplateRequest creates a [*SendEmailWithTemplateRequest]
// for the template identified by template, which is either a numeric ID
// or an alias.
func NewSendEmailWithTemplateRequest(
	from, to string, template api.Ref, model TemplateModel) *SendEmailWithTemplateRequest {
	req := &SendEmailWithTemplateRequest{From: from, To: to, TemplateModel: model}
	if alias, ok := template.Name(); ok {
		req.TemplateAlias = alias
	} else {
		req.TemplateID, _ = template.ID()
	}
	return req
}

var _ postmark.Endpoint[*SendEmailWithTemplateRequest, SendEmailResponse] = &SendEmailWithTemplateRequest{}

// Path implements postmark.Endpoint.
func (r *SendEmailWithTemplateRequest) Path() string {
	return SendEmailWithTemplatePath
}

// RequestBody implements postmark.Endpoint.
func (r *SendEmailWithTemplateRequest) RequestBody() *SendEmailWithTemplateRequest {
	return r
}

// Execute sends the email using txp.
func (r *SendEmailWithTemplateRequest) Execute(ctx context.Context, txp postmark.Transport) (SendEmailResponse, error) {
	return postmark.Execute[*SendEmailWithTemplateRequest, SendEmailResponse](ctx, txp, r)
}
