package email

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/postmarkgo/postmark/pkg/postmark"
	"github.com/postmarkgo/postmark/pkg/postmark/api"
)

// SendEmailPath is the path of the [SendEmailRequest] endpoint.
const SendEmailPath = "/email"

// SendEmailRequest sends a single email.
//
// Construct it with [NewSendEmailRequest] and then set the optional
// fields you need. Empty optional fields are omitted from the request.
type SendEmailRequest struct {
	postmark.Returns[SendEmailResponse] `json:"-"`

	// From is the MANDATORY sender address. It must have a registered and
	// confirmed sender signature. Use "Full Name <sender@domain.com>" to
	// include a name.
	From string

	// To is the MANDATORY recipient. Separate multiple addresses with
	// commas (max 50).
	To string

	// Body is the MANDATORY message body.
	Body api.Body `json:"-"`

	Cc            string            `json:",omitempty"`
	Bcc           string            `json:",omitempty"`
	Subject       string            `json:",omitempty"`
	Tag           string            `json:",omitempty"`
	ReplyTo       string            `json:",omitempty"`
	Headers       []api.Header      `json:",omitempty"`
	TrackOpens    *bool             `json:",omitempty"`
	TrackLinks    api.TrackLinks    `json:",omitempty"`
	Attachments   []api.Attachment  `json:",omitempty"`
	Metadata      map[string]string `json:",omitempty"`
	MessageStream string            `json:",omitempty"`
}

// NewSendEmailRequest creates a [*SendEmailRequest] with the mandatory fields.
func NewSendEmailRequest(from, to string, body api.Body) *SendEmailRequest {
	return &SendEmailRequest{From: from, To: to, Body: body}
}

var _ postmark.Endpoint[*SendEmailRequest, SendEmailResponse] = &SendEmailRequest{}

// Path implements postmark.Endpoint.
func (r *SendEmailRequest) Path() string {
	return SendEmailPath
}

// RequestBody implements postmark.Endpoint.
func (r *SendEmailRequest) RequestBody() *SendEmailRequest {
	return r
}

// ErrMissingSender indicates that From is empty.
var ErrMissingSender = errors.New("email: missing sender")

// ErrMissingRecipient indicates that To is empty.
var ErrMissingRecipient = errors.New("email: missing recipient")

// Validate checks the mandatory fields.
func (r *SendEmailRequest) Validate() error {
	if r.From == "" {
		return ErrMissingSender
	}
	if r.To == "" {
		return ErrMissingRecipient
	}
	return nil
}

// Execute sends the email using txp.
func (r *SendEmailRequest) Execute(ctx context.Context, txp postmark.Transport) (SendEmailResponse, error) {
	return postmark.Execute[*SendEmailRequest, SendEmailResponse](ctx, txp, r)
}

// MarshalJSON implements json.Marshaler flattening the body variants.
func (r SendEmailRequest) MarshalJSON() ([]byte, error) {
	type plain SendEmailRequest
	return json.Marshal(struct {
		plain
		api.BodyFields
	}{plain(r), r.Body.Fields()})
}

// UnmarshalJSON implements json.Unmarshaler. A message without body
// variants decodes to the zero [api.Body].
func (r *SendEmailRequest) UnmarshalJSON(data []byte) error {
	type plain SendEmailRequest
	var aux struct {
		plain
		api.BodyFields
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = SendEmailRequest(aux.plain)
	if body, err := aux.BodyFields.Body(); err == nil {
		r.Body = body
	}
	return nil
}

// SendEmailResponse is the response to sending an email.
//
// The embedded [api.Status] carries the application-level outcome: use
// its Err method to check whether the message was accepted.
type SendEmailResponse struct {
	api.Status

	// To is the recipient.
	To string `json:",omitempty"`

	// SubmittedAt is the submission time (e.g., 2014-02-17T07:25:01.4178645-05:00).
	SubmittedAt string `json:",omitempty"`

	// MessageID identifies the message.
	MessageID string `json:",omitempty"`
}
