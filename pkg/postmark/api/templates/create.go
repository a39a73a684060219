package templates

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/postmarkgo/postmark/pkg/postmark"
	"github.com/postmarkgo/postmark/pkg/postmark/api"
)

// CreateTemplateRequest creates a template.
type CreateTemplateRequest struct {
	postmark.Returns[TemplateResponse] `json:"-"`

	// Name is the MANDATORY template name.
	Name string

	// Body is the MANDATORY template content.
	Body api.Body `json:"-"`

	Alias          string       `json:",omitempty"`
	Subject        string       `json:",omitempty"`
	TemplateType   TemplateType `json:",omitempty"`
	LayoutTemplate string       `json:",omitempty"`
}

// NewCreateTemplateRequest creates a [*CreateTemplateRequest].
func NewCreateTemplateRequest(name string, body api.Body) *CreateTemplateRequest {
	return &CreateTemplateRequest{Name: name, Body: body}
}

var _ postmark.Endpoint[*CreateTemplateRequest, TemplateResponse] = &CreateTemplateRequest{}

// Path implements postmark.Endpoint.
func (r *CreateTemplateRequest) Path() string {
	return "/templates"
}

// RequestBody implements postmark.Endpoint.
func (r *CreateTemplateRequest) RequestBody() *CreateTemplateRequest {
	return r
}

// Execute creates the template using txp.
func (r *CreateTemplateRequest) Execute(ctx context.Context, txp postmark.Transport) (TemplateResponse, error) {
	return postmark.Execute[*CreateTemplateRequest, TemplateResponse](ctx, txp, r)
}

// MarshalJSON implements json.Marshaler flattening the body variants.
func (r CreateTemplateRequest) MarshalJSON() ([]byte, error) {
	type plain CreateTemplateRequest
	return json.Marshal(struct {
		plain
		api.BodyFields
	}{plain(r), r.Body.Fields()})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *CreateTemplateRequest) UnmarshalJSON(data []byte) error {
	type plain CreateTemplateRequest
	var aux struct {
		plain
		api.BodyFields
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = CreateTemplateRequest(aux.plain)
	if body, err := aux.BodyFields.Body(); err == nil {
		r.Body = body
	}
	return nil
}

// TemplateResponse is the response to creating or editing a template.
type TemplateResponse struct {
	api.Status
	TemplateInfo
}

// EditTemplateRequest edits the template identified by Template.
type EditTemplateRequest struct {
	postmark.Returns[TemplateResponse] `json:"-"`

	// Template is the MANDATORY template to edit.
	Template api.Ref `json:"-"`

	// Name is the MANDATORY template name.
	Name string

	// Body is the MANDATORY template content.
	Body api.Body `json:"-"`

	Alias          string `json:",omitempty"`
	Subject        string `json:",omitempty"`
	LayoutTemplate string `json:",omitempty"`
}

// NewEditTemplateRequest creates a [*EditTemplateRequest].
func NewEditTemplateRequest(template api.Ref, name string, body api.Body) *EditTemplateRequest {
	return &EditTemplateRequest{Template: template, Name: name, Body: body}
}

var _ postmark.Endpoint[*EditTemplateRequest, TemplateResponse] = &EditTemplateRequest{}

// Path implements postmark.Endpoint.
func (r *EditTemplateRequest) Path() string {
	return templatePath(r.Template)
}

// Method implements postmark.MethodOverrider.
func (r *EditTemplateRequest) Method() string {
	return http.MethodPut
}

// RequestBody implements postmark.Endpoint.
func (r *EditTemplateRequest) RequestBody() *EditTemplateRequest {
	return r
}

// Execute edits the template using txp.
func (r *EditTemplateRequest) Execute(ctx context.Context, txp postmark.Transport) (TemplateResponse, error) {
	return postmark.Execute[*EditTemplateRequest, TemplateResponse](ctx, txp, r)
}

// MarshalJSON implements json.Marshaler flattening the body variants.
func (r EditTemplateRequest) MarshalJSON() ([]byte, error) {
	type plain EditTemplateRequest
	return json.Marshal(struct {
		plain
		api.BodyFields
	}{plain(r), r.Body.Fields()})
}

// UnmarshalJSON implements json.Unmarshaler. The Template field is not
// part of the body and is left untouched.
func (r *EditTemplateRequest) UnmarshalJSON(data []byte) error {
	type plain EditTemplateRequest
	var aux struct {
		plain
		api.BodyFields
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	template := r.Template
	*r = EditTemplateRequest(aux.plain)
	r.Template = template
	if body, err := aux.BodyFields.Body(); err == nil {
		r.Body = body
	}
	return nil
}
