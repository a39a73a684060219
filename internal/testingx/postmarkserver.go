package testingx

//
// Fake Postmark API for testing.
//

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/postmarkgo/postmark/internal/model"
	"github.com/postmarkgo/postmark/internal/must"
	"github.com/postmarkgo/postmark/internal/runtimex"
	"github.com/postmarkgo/postmark/pkg/postmark/api"
	"github.com/postmarkgo/postmark/pkg/postmark/api/bounces"
	"github.com/postmarkgo/postmark/pkg/postmark/api/email"
	"github.com/postmarkgo/postmark/pkg/postmark/api/templates"
)

// Error codes returned by [*PostmarkServer].
const (
	PostmarkErrorMissingToken     = 10
	PostmarkErrorInvalidJSON      = 402
	PostmarkErrorInactive         = 406
	PostmarkErrorInvalidRequest   = 300
	PostmarkErrorTemplateNotFound = 1101
	PostmarkErrorAliasConflict    = 1105
)

// PostmarkServer implements a subset of the Postmark API for testing.
//
// The zero value is ready to use and accepts any non-empty token.
//
// This struct methods panics for several errors. Only use for testing purposes!
type PostmarkServer struct {
	// AccountToken is the OPTIONAL account token to require.
	AccountToken string

	// InactiveRecipients contains the OPTIONAL recipients that cause
	// the server to reply with error code 406.
	InactiveRecipients []string

	// Now is the OPTIONAL function returning the submission time.
	Now func() time.Time

	// ServerToken is the OPTIONAL server token to require.
	ServerToken string

	// mu provides mutual exclusion.
	mu sync.Mutex

	// nextTemplateID is the ID of the next template minus one.
	nextTemplateID int64

	// sent contains the messages we accepted.
	sent []*email.SendEmailRequest

	// templates maps the template ID to the template.
	templates map[int64]*templates.GetTemplateResponse
}

// Sent returns a copy of the messages accepted so far.
//
// This method is safe to call concurrently with other methods.
func (ps *PostmarkServer) Sent() []*email.SendEmailRequest {
	defer ps.mu.Unlock()
	ps.mu.Lock()
	return append([]*email.SendEmailRequest{}, ps.sent...)
}

// AddTemplate stores a template and returns its ID.
//
// This method is safe to call concurrently with other methods.
func (ps *PostmarkServer) AddTemplate(tmpl *templates.GetTemplateResponse) int64 {
	defer ps.mu.Unlock()
	ps.mu.Lock()
	return ps.addTemplateLocked(tmpl)
}

func (ps *PostmarkServer) addTemplateLocked(tmpl *templates.GetTemplateResponse) int64 {
	if ps.templates == nil {
		ps.templates = make(map[int64]*templates.GetTemplateResponse)
	}
	ps.nextTemplateID++
	tmpl.TemplateID = ps.nextTemplateID
	if tmpl.TemplateType == "" {
		tmpl.TemplateType = templates.TemplateTypeStandard
	}
	tmpl.Active = true
	ps.templates[tmpl.TemplateID] = tmpl
	return tmpl.TemplateID
}

// findTemplateLocked returns the template with the given ID or alias.
func (ps *PostmarkServer) findTemplateLocked(ref string) *templates.GetTemplateResponse {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return ps.templates[id]
	}
	for _, tmpl := range ps.templates {
		if tmpl.Alias == ref {
			return tmpl
		}
	}
	return nil
}

func (ps *PostmarkServer) now() time.Time {
	if ps.Now != nil {
		return ps.Now()
	}
	return time.Now()
}

// ServeHTTP implements [http.Handler].
//
// This method is safe to call concurrently with other methods.
func (ps *PostmarkServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// the API only speaks JSON
	if r.Header.Get("Accept") != model.ApplicationJSON {
		log.Printf("PostmarkServer: missing accept header")
		w.WriteHeader(http.StatusNotAcceptable)
		return
	}

	// read the raw request body or panic if we cannot read it
	body := runtimex.Try1(io.ReadAll(r.Body))

	log.Printf("PostmarkServer: %s %s", r.Method, r.URL.Path)

	// server management and pushing templates use the account token
	path := r.URL.Path
	if strings.HasPrefix(path, "/servers") || path == "/templates/push" {
		if !ps.authorized(r.Header.Get(model.HTTPHeaderAccountToken), ps.AccountToken) {
			ps.writeStatus(w, http.StatusUnauthorized, PostmarkErrorMissingToken, "No Account API token was supplied.")
			return
		}
	} else if !ps.authorized(r.Header.Get(model.HTTPHeaderServerToken), ps.ServerToken) {
		ps.writeStatus(w, http.StatusUnauthorized, PostmarkErrorMissingToken, "No Server API token was supplied.")
		return
	}

	switch {
	case r.Method == http.MethodPost && path == email.SendEmailPath:
		ps.sendEmail(w, body)

	case r.Method == http.MethodPost && path == email.SendEmailBatchPath:
		ps.sendEmailBatch(w, body)

	case r.Method == http.MethodPost && path == email.SendEmailWithTemplatePath:
		ps.sendEmailWithTemplate(w, body)

	case r.Method == http.MethodPost && path == "/templates":
		ps.createTemplate(w, body)

	case r.Method == http.MethodGet && path == "/templates":
		ps.listTemplates(w, r)

	case strings.HasPrefix(path, "/templates/") && path != "/templates/push":
		ps.templateByRef(w, r, strings.TrimPrefix(path, "/templates/"), body)

	case r.Method == http.MethodGet && path == "/deliverystats":
		ps.deliveryStats(w)

	default:
		// like the real API, unknown routes do not return JSON
		log.Printf("PostmarkServer: no such route")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Not Found"))
	}
}

// authorized checks the token we received against the expected one.
func (ps *PostmarkServer) authorized(got, expected string) bool {
	if expected == "" {
		return got != ""
	}
	return got == expected
}

// writeJSON serializes and sends a response.
func (ps *PostmarkServer) writeJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", model.ApplicationJSON)
	w.WriteHeader(status)
	w.Write(must.MarshalJSON(response))
}

// writeStatus sends an application-level error.
func (ps *PostmarkServer) writeStatus(w http.ResponseWriter, status int, code int64, message string) {
	ps.writeJSON(w, status, api.Status{ErrorCode: code, Message: message})
}

// accept validates a message and returns the response for it.
func (ps *PostmarkServer) accept(msg *email.SendEmailRequest) email.SendEmailResponse {
	if err := msg.Validate(); err != nil {
		return email.SendEmailResponse{
			Status: api.Status{ErrorCode: PostmarkErrorInvalidRequest, Message: err.Error()},
		}
	}
	for _, inactive := range ps.InactiveRecipients {
		if strings.EqualFold(inactive, msg.To) {
			return email.SendEmailResponse{
				Status: api.Status{
					ErrorCode: PostmarkErrorInactive,
					Message:   "You tried to send to a recipient that has been marked as inactive.",
				},
			}
		}
	}
	ps.mu.Lock()
	ps.sent = append(ps.sent, msg)
	ps.mu.Unlock()
	return email.SendEmailResponse{
		Status:      api.Status{ErrorCode: 0, Message: "OK"},
		To:          msg.To,
		SubmittedAt: ps.now().Format(time.RFC3339Nano),
		MessageID:   uuid.Must(uuid.NewRandom()).String(),
	}
}

// statusFor returns the HTTP status code for a send response.
func statusFor(resp email.SendEmailResponse) int {
	if resp.ErrorCode != 0 {
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}

func (ps *PostmarkServer) sendEmail(w http.ResponseWriter, body []byte) {
	var msg email.SendEmailRequest
	if err := json.Unmarshal(body, &msg); err != nil {
		log.Printf("PostmarkServer: cannot unmarshal JSON: %s", err.Error())
		ps.writeStatus(w, http.StatusUnprocessableEntity, PostmarkErrorInvalidJSON, "Invalid JSON")
		return
	}
	if msg.Body.IsZero() {
		ps.writeStatus(w, http.StatusUnprocessableEntity, PostmarkErrorInvalidRequest,
			"Provide either email TextBody or HtmlBody or both.")
		return
	}
	resp := ps.accept(&msg)
	ps.writeJSON(w, statusFor(resp), resp)
}

func (ps *PostmarkServer) sendEmailBatch(w http.ResponseWriter, body []byte) {
	var msgs []*email.SendEmailRequest
	if err := json.Unmarshal(body, &msgs); err != nil {
		log.Printf("PostmarkServer: cannot unmarshal JSON: %s", err.Error())
		ps.writeStatus(w, http.StatusUnprocessableEntity, PostmarkErrorInvalidJSON, "Invalid JSON")
		return
	}
	out := []email.SendEmailResponse{}
	for _, msg := range msgs {
		out = append(out, ps.accept(msg))
	}
	ps.writeJSON(w, http.StatusOK, out)
}

func (ps *PostmarkServer) sendEmailWithTemplate(w http.ResponseWriter, body []byte) {
	var msg email.SendEmailWithTemplateRequest
	if err := json.Unmarshal(body, &msg); err != nil {
		log.Printf("PostmarkServer: cannot unmarshal JSON: %s", err.Error())
		ps.writeStatus(w, http.StatusUnprocessableEntity, PostmarkErrorInvalidJSON, "Invalid JSON")
		return
	}
	ref := msg.TemplateAlias
	if ref == "" {
		ref = strconv.FormatInt(msg.TemplateID, 10)
	}
	ps.mu.Lock()
	tmpl := ps.findTemplateLocked(ref)
	ps.mu.Unlock()
	if tmpl == nil {
		ps.writeStatus(w, http.StatusUnprocessableEntity, PostmarkErrorTemplateNotFound, "Template not found.")
		return
	}
	rendered := &email.SendEmailRequest{
		From:          msg.From,
		To:            msg.To,
		Body:          tmpl.Body,
		Subject:       tmpl.Subject,
		MessageStream: msg.MessageStream,
	}
	resp := ps.accept(rendered)
	ps.writeJSON(w, statusFor(resp), resp)
}

func (ps *PostmarkServer) createTemplate(w http.ResponseWriter, body []byte) {
	var req templates.CreateTemplateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Printf("PostmarkServer: cannot unmarshal JSON: %s", err.Error())
		ps.writeStatus(w, http.StatusUnprocessableEntity, PostmarkErrorInvalidJSON, "Invalid JSON")
		return
	}
	tmpl := &templates.GetTemplateResponse{
		TemplateInfo: templates.TemplateInfo{
			Name:           req.Name,
			Alias:          req.Alias,
			TemplateType:   req.TemplateType,
			LayoutTemplate: req.LayoutTemplate,
		},
		Subject: req.Subject,
		Body:    req.Body,
	}

	defer ps.mu.Unlock()
	ps.mu.Lock()

	// creating the same template twice is idempotent while reusing
	// the alias for different content is a conflict
	if req.Alias != "" {
		if existing := ps.findTemplateLocked(req.Alias); existing != nil {
			candidate := *tmpl
			candidate.TemplateID, candidate.Active = existing.TemplateID, existing.Active
			if candidate.TemplateType == "" {
				candidate.TemplateType = existing.TemplateType
			}
			if !cmp.Equal(&candidate, existing) {
				ps.writeStatus(w, http.StatusUnprocessableEntity, PostmarkErrorAliasConflict,
					"This alias is already in use.")
				return
			}
			ps.writeJSON(w, http.StatusOK, templates.TemplateResponse{TemplateInfo: existing.TemplateInfo})
			return
		}
	}
	ps.addTemplateLocked(tmpl)
	ps.writeJSON(w, http.StatusOK, templates.TemplateResponse{TemplateInfo: tmpl.TemplateInfo})
}

func (ps *PostmarkServer) listTemplates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	count, err := strconv.Atoi(query.Get("Count"))
	if err != nil || count <= 0 {
		ps.writeStatus(w, http.StatusUnprocessableEntity, PostmarkErrorInvalidRequest, "Count is required.")
		return
	}
	offset, _ := strconv.Atoi(query.Get("Offset"))
	ttype := templates.TemplateType(query.Get("TemplateType"))

	defer ps.mu.Unlock()
	ps.mu.Lock()
	var ids []int64
	for id := 1; int64(id) <= ps.nextTemplateID; id++ {
		tmpl := ps.templates[int64(id)]
		if tmpl == nil || (ttype != "" && ttype != templates.TemplateTypeAll && ttype != tmpl.TemplateType) {
			continue
		}
		ids = append(ids, int64(id))
	}
	resp := templates.ListTemplatesResponse{TotalCount: int64(len(ids)), Templates: []templates.TemplateInfo{}}
	for idx, id := range ids {
		if idx >= offset && idx < offset+count {
			resp.Templates = append(resp.Templates, ps.templates[id].TemplateInfo)
		}
	}
	ps.writeJSON(w, http.StatusOK, resp)
}

func (ps *PostmarkServer) templateByRef(w http.ResponseWriter, r *http.Request, ref string, body []byte) {
	defer ps.mu.Unlock()
	ps.mu.Lock()
	tmpl := ps.findTemplateLocked(ref)
	if tmpl == nil {
		ps.writeStatus(w, http.StatusUnprocessableEntity, PostmarkErrorTemplateNotFound, "Template not found.")
		return
	}

	switch r.Method {
	case http.MethodGet:
		ps.writeJSON(w, http.StatusOK, tmpl)

	case http.MethodPut:
		var req templates.EditTemplateRequest
		if err := json.Unmarshal(body, &req); err != nil {
			log.Printf("PostmarkServer: cannot unmarshal JSON: %s", err.Error())
			ps.writeStatus(w, http.StatusUnprocessableEntity, PostmarkErrorInvalidJSON, "Invalid JSON")
			return
		}
		tmpl.Name, tmpl.Body = req.Name, req.Body
		if req.Alias != "" {
			tmpl.Alias = req.Alias
		}
		if req.Subject != "" {
			tmpl.Subject = req.Subject
		}
		if req.LayoutTemplate != "" {
			tmpl.LayoutTemplate = req.LayoutTemplate
		}
		ps.writeJSON(w, http.StatusOK, templates.TemplateResponse{TemplateInfo: tmpl.TemplateInfo})

	case http.MethodDelete:
		delete(ps.templates, tmpl.TemplateID)
		ps.writeStatus(w, http.StatusOK, 0, "Template "+strconv.FormatInt(tmpl.TemplateID, 10)+" removed.")

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (ps *PostmarkServer) deliveryStats(w http.ResponseWriter) {
	inactive := int64(len(ps.InactiveRecipients))
	resp := bounces.DeliveryStatsResponse{
		InactiveMails: inactive,
		Bounces: []bounces.Bounce{
			{Name: "All", Count: inactive},
			{Type: "HardBounce", Name: "Hard bounce", Count: inactive},
		},
	}
	ps.writeJSON(w, http.StatusOK, resp)
}
