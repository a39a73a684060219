package webhooks

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/postmarkgo/postmark/pkg/postmark"
	"github.com/postmarkgo/postmark/pkg/postmark/api"
)

// TriggerConfig configures a single webhook trigger.
type TriggerConfig struct {
	Enabled bool

	// PostFirstOpenOnly only applies to the Open trigger.
	PostFirstOpenOnly bool `json:",omitempty"`

	// IncludeContent only applies to the Bounce and SpamComplaint triggers.
	IncludeContent bool `json:",omitempty"`
}

// Triggers selects the events posted to a webhook. Nil triggers
// are omitted from requests.
type Triggers struct {
	Open               *TriggerConfig `json:",omitempty"`
	Click              *TriggerConfig `json:",omitempty"`
	Delivery           *TriggerConfig `json:",omitempty"`
	Bounce             *TriggerConfig `json:",omitempty"`
	SpamComplaint      *TriggerConfig `json:",omitempty"`
	SubscriptionChange *TriggerConfig `json:",omitempty"`
}

// HTTPAuth contains the basic auth credentials for a webhook.
type HTTPAuth struct {
	Username string
	Password string
}

// Webhook describes a webhook.
type Webhook struct {
	ID            int64        `json:"ID,omitempty"`
	URL           string       `json:"Url"`
	MessageStream string       `json:",omitempty"`
	HTTPAuth      *HTTPAuth    `json:"HttpAuth,omitempty"`
	HTTPHeaders   []api.Header `json:"HttpHeaders,omitempty"`
	Triggers      Triggers
}

// WebhookResponse is the response of operations returning a webhook.
type WebhookResponse struct {
	api.Status
	Webhook
}

func webhookPath(id int64) string {
	return "/webhooks/" + strconv.FormatInt(id, 10)
}

// CreateWebhookRequest creates a webhook.
type CreateWebhookRequest struct {
	postmark.Returns[WebhookResponse] `json:"-"`
	Webhook
}

// NewCreateWebhookRequest creates a [*CreateWebhookRequest] posting
// the selected triggers of the given stream to hookURL.
func NewCreateWebhookRequest(hookURL, stream string, triggers Triggers) *CreateWebhookRequest {
	return &CreateWebhookRequest{
		Webhook: Webhook{URL: hookURL, MessageStream: stream, Triggers: triggers},
	}
}

var _ postmark.Endpoint[*CreateWebhookRequest, WebhookResponse] = &CreateWebhookRequest{}

// Path implements postmark.Endpoint.
func (r *CreateWebhookRequest) Path() string {
	return "/webhooks"
}

// RequestBody implements postmark.Endpoint.
func (r *CreateWebhookRequest) RequestBody() *CreateWebhookRequest {
	return r
}

// Execute creates the webhook using txp.
func (r *CreateWebhookRequest) Execute(ctx context.Context, txp postmark.Transport) (WebhookResponse, error) {
	return postmark.Execute[*CreateWebhookRequest, WebhookResponse](ctx, txp, r)
}

// GetWebhookRequest fetches a webhook.
type GetWebhookRequest struct {
	postmark.Returns[WebhookResponse]
	ID int64
}

var _ postmark.Endpoint[postmark.NoBody, WebhookResponse] = &GetWebhookRequest{}

// Path implements postmark.Endpoint.
func (r *GetWebhookRequest) Path() string {
	return webhookPath(r.ID)
}

// Method implements postmark.MethodOverrider.
func (r *GetWebhookRequest) Method() string {
	return http.MethodGet
}

// RequestBody implements postmark.Endpoint.
func (r *GetWebhookRequest) RequestBody() postmark.NoBody {
	return postmark.NoBody{}
}

// Execute fetches the webhook using txp.
func (r *GetWebhookRequest) Execute(ctx context.Context, txp postmark.Transport) (WebhookResponse, error) {
	return postmark.Execute[postmark.NoBody, WebhookResponse](ctx, txp, r)
}

// ListWebhooksRequest lists the webhooks.
type ListWebhooksRequest struct {
	postmark.Returns[ListWebhooksResponse]

	// MessageStream is the OPTIONAL stream filter.
	MessageStream string
}

var _ postmark.Endpoint[postmark.NoBody, ListWebhooksResponse] = &ListWebhooksRequest{}

// Path implements postmark.Endpoint.
func (r *ListWebhooksRequest) Path() string {
	if r.MessageStream == "" {
		return "/webhooks"
	}
	query := url.Values{}
	query.Set("MessageStream", r.MessageStream)
	return "/webhooks?" + query.Encode()
}

// Method implements postmark.MethodOverrider.
func (r *ListWebhooksRequest) Method() string {
	return http.MethodGet
}

// RequestBody implements postmark.Endpoint.
func (r *ListWebhooksRequest) RequestBody() postmark.NoBody {
	return postmark.NoBody{}
}

// Execute lists the webhooks using txp.
func (r *ListWebhooksRequest) Execute(ctx context.Context, txp postmark.Transport) (ListWebhooksResponse, error) {
	return postmark.Execute[postmark.NoBody, ListWebhooksResponse](ctx, txp, r)
}

// ListWebhooksResponse contains the webhooks.
type ListWebhooksResponse struct {
	api.Status
	Webhooks []Webhook
}

// EditWebhookRequest edits a webhook. Only the fields that are set are
// modified; the message stream cannot be changed.
type EditWebhookRequest struct {
	postmark.Returns[WebhookResponse] `json:"-"`

	// ID is the MANDATORY webhook to edit.
	ID int64 `json:"-"`

	URL         string       `json:"Url,omitempty"`
	HTTPAuth    *HTTPAuth    `json:"HttpAuth,omitempty"`
	HTTPHeaders []api.Header `json:"HttpHeaders,omitempty"`
	Triggers    *Triggers    `json:",omitempty"`
}

var _ postmark.Endpoint[*EditWebhookRequest, WebhookResponse] = &EditWebhookRequest{}

// Path implements postmark.Endpoint.
func (r *EditWebhookRequest) Path() string {
	return webhookPath(r.ID)
}

// Method implements postmark.MethodOverrider.
func (r *EditWebhookRequest) Method() string {
	return http.MethodPut
}

// RequestBody implements postmark.Endpoint.
func (r *EditWebhookRequest) RequestBody() *EditWebhookRequest {
	return r
}

// Execute edits the webhook using txp.
func (r *EditWebhookRequest) Execute(ctx context.Context, txp postmark.Transport) (WebhookResponse, error) {
	return postmark.Execute[*EditWebhookRequest, WebhookResponse](ctx, txp, r)
}

// DeleteWebhookRequest deletes a webhook.
type DeleteWebhookRequest struct {
	postmark.Returns[api.Status]
	ID int64
}

var _ postmark.Endpoint[postmark.NoBody, api.Status] = &DeleteWebhookRequest{}

// Path implements postmark.Endpoint.
func (r *DeleteWebhookRequest) Path() string {
	return webhookPath(r.ID)
}

// Method implements postmark.MethodOverrider.
func (r *DeleteWebhookRequest) Method() string {
	return http.MethodDelete
}

// RequestBody implements postmark.Endpoint.
func (r *DeleteWebhookRequest) RequestBody() postmark.NoBody {
	return postmark.NoBody{}
}

// Execute deletes the webhook using txp.
func (r *DeleteWebhookRequest) Execute(ctx context.Context, txp postmark.Transport) (api.Status, error) {
	return postmark.Execute[postmark.NoBody, api.Status](ctx, txp, r)
}
