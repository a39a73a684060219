package templates

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/postmarkgo/postmark/pkg/postmark"
	"github.com/postmarkgo/postmark/pkg/postmark/api"
)

// templatePath returns the path of the given template. The ref is
// path-escaped, so an alias such as "a/b" becomes "a%2Fb".
func templatePath(template api.Ref) string {
	return "/templates/" + url.PathEscape(template.String())
}

// GetTemplateRequest fetches a template.
type GetTemplateRequest struct {
	postmark.Returns[GetTemplateResponse]
	Template api.Ref
}

var _ postmark.Endpoint[postmark.NoBody, GetTemplateResponse] = &GetTemplateRequest{}

// Path implements postmark.Endpoint.
func (r *GetTemplateRequest) Path() string {
	return templatePath(r.Template)
}

// Method implements postmark.MethodOverrider.
func (r *GetTemplateRequest) Method() string {
	return http.MethodGet
}

// RequestBody implements postmark.Endpoint.
func (r *GetTemplateRequest) RequestBody() postmark.NoBody {
	return postmark.NoBody{}
}

// Execute fetches the template using txp.
func (r *GetTemplateRequest) Execute(ctx context.Context, txp postmark.Transport) (GetTemplateResponse, error) {
	return postmark.Execute[postmark.NoBody, GetTemplateResponse](ctx, txp, r)
}

// GetTemplateResponse is a template with its content.
type GetTemplateResponse struct {
	api.Status
	TemplateInfo

	Subject            string   `json:",omitempty"`
	Body               api.Body `json:"-"`
	AssociatedServerID int64    `json:"AssociatedServerId,omitempty"`
}

// MarshalJSON implements json.Marshaler flattening the body variants.
func (r GetTemplateResponse) MarshalJSON() ([]byte, error) {
	type plain GetTemplateResponse
	return json.Marshal(struct {
		plain
		api.BodyFields
	}{plain(r), r.Body.Fields()})
}

// UnmarshalJSON implements json.Unmarshaler. Error replies carry no
// content and leave Body zero.
func (r *GetTemplateResponse) UnmarshalJSON(data []byte) error {
	type plain GetTemplateResponse
	var aux struct {
		plain
		api.BodyFields
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = GetTemplateResponse(aux.plain)
	if body, err := aux.BodyFields.Body(); err == nil {
		r.Body = body
	}
	return nil
}

// DeleteTemplateRequest deletes a template.
type DeleteTemplateRequest struct {
	postmark.Returns[api.Status]
	Template api.Ref
}

var _ postmark.Endpoint[postmark.NoBody, api.Status] = &DeleteTemplateRequest{}

// Path implements postmark.Endpoint.
func (r *DeleteTemplateRequest) Path() string {
	return templatePath(r.Template)
}

// Method implements postmark.MethodOverrider.
func (r *DeleteTemplateRequest) Method() string {
	return http.MethodDelete
}

// RequestBody implements postmark.Endpoint.
func (r *DeleteTemplateRequest) RequestBody() postmark.NoBody {
	return postmark.NoBody{}
}

// Execute deletes the template using txp.
func (r *DeleteTemplateRequest) Execute(ctx context.Context, txp postmark.Transport) (api.Status, error) {
	return postmark.Execute[postmark.NoBody, api.Status](ctx, txp, r)
}

// DefaultListCount is the number of templates [ListTemplatesRequest]
// fetches when Count is zero.
const DefaultListCount = 100

// ListTemplatesRequest lists templates.
type ListTemplatesRequest struct {
	postmark.Returns[ListTemplatesResponse]

	// Count is the OPTIONAL number of templates to return. When zero
	// we use [DefaultListCount].
	Count int64

	// Offset is the OPTIONAL number of templates to skip.
	Offset int64

	// TemplateType is the OPTIONAL type filter. When empty we list
	// templates of all types.
	TemplateType TemplateType
}

var _ postmark.Endpoint[postmark.NoBody, ListTemplatesResponse] = &ListTemplatesRequest{}

// Path implements postmark.Endpoint.
func (r *ListTemplatesRequest) Path() string {
	count := r.Count
	if count <= 0 {
		count = DefaultListCount
	}
	ttype := r.TemplateType
	if ttype == "" {
		ttype = TemplateTypeAll
	}
	query := url.Values{}
	query.Set("Count", strconv.FormatInt(count, 10))
	query.Set("Offset", strconv.FormatInt(r.Offset, 10))
	query.Set("TemplateType", string(ttype))
	return "/templates?" + query.Encode()
}

// Method implements postmark.MethodOverrider.
func (r *ListTemplatesRequest) Method() string {
	return http.MethodGet
}

// RequestBody implements postmark.Endpoint.
func (r *ListTemplatesRequest) RequestBody() postmark.NoBody {
	return postmark.NoBody{}
}

// Execute lists the templates using txp.
func (r *ListTemplatesRequest) Execute(ctx context.Context, txp postmark.Transport) (ListTemplatesResponse, error) {
	return postmark.Execute[postmark.NoBody, ListTemplatesResponse](ctx, txp, r)
}

// ListTemplatesResponse is a page of templates.
type ListTemplatesResponse struct {
	api.Status
	TotalCount int64
	Templates  []TemplateInfo
}
