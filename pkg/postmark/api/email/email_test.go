package email_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/postmarkgo/postmark/internal/mocks"
	"github.com/postmarkgo/postmark/pkg/postmark"
	"github.com/postmarkgo/postmark/pkg/postmark/api"
	"github.com/postmarkgo/postmark/pkg/postmark/api/email"
)

// newTransport returns a transport replying with status and body that
// saves the request it receives into got.
func newTransport(status int, body string, got **postmark.WireRequest) *mocks.Transport {
	return &mocks.Transport{
		MockExecute: func(ctx context.Context, req *postmark.WireRequest) (*postmark.WireResponse, error) {
			*got = req
			return &postmark.WireResponse{StatusCode: status, Body: []byte(body)}, nil
		},
	}
}

// decodeBody decodes a wire body into a generic value.
func decodeBody(t *testing.T, data []byte) any {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		t.Fatal(err)
	}
	return value
}

func TestSendEmailRequest(t *testing.T) {
	t.Run("a text-only email has the expected wire body", func(t *testing.T) {
		req := email.NewSendEmailRequest("a@x.com", "b@y.com", api.TextBody("hi"))
		var got *postmark.WireRequest
		txp := newTransport(http.StatusOK, `{"ErrorCode":0,"Message":"OK","To":"b@y.com","MessageID":"abc"}`, &got)

		resp, err := req.Execute(context.Background(), txp)
		if err != nil {
			t.Fatal(err)
		}

		if got.Method != http.MethodPost {
			t.Fatal("unexpected method", got.Method)
		}
		if got.Path != "/email" {
			t.Fatal("unexpected path", got.Path)
		}
		expectBody := map[string]any{
			"From":     "a@x.com",
			"To":       "b@y.com",
			"TextBody": "hi",
		}
		if diff := cmp.Diff(any(expectBody), decodeBody(t, got.Body)); diff != "" {
			t.Fatal(diff)
		}

		expectResp := email.SendEmailResponse{
			Status:    api.Status{ErrorCode: 0, Message: "OK"},
			To:        "b@y.com",
			MessageID: "abc",
		}
		if diff := cmp.Diff(expectResp, resp); diff != "" {
			t.Fatal(diff)
		}
		if err := resp.Err(); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("optional fields appear only when set", func(t *testing.T) {
		trackOpens := true
		req := email.NewSendEmailRequest("a@x.com", "b@y.com", api.HTMLAndTextBody("<b>hi</b>", "hi"))
		req.Subject = "greetings"
		req.TrackOpens = &trackOpens
		req.TrackLinks = api.TrackLinksHTMLAndText
		req.Headers = []api.Header{{Name: "X-Foo", Value: "bar"}}
		req.Metadata = map[string]string{"color": "blue"}
		req.MessageStream = "outbound"

		data, err := json.Marshal(req)
		if err != nil {
			t.Fatal(err)
		}

		expect := map[string]any{
			"From":          "a@x.com",
			"To":            "b@y.com",
			"Subject":       "greetings",
			"HtmlBody":      "<b>hi</b>",
			"TextBody":      "hi",
			"TrackOpens":    true,
			"TrackLinks":    "HtmlAndText",
			"Headers":       []any{map[string]any{"Name": "X-Foo", "Value": "bar"}},
			"Metadata":      map[string]any{"color": "blue"},
			"MessageStream": "outbound",
		}
		if diff := cmp.Diff(any(expect), decodeBody(t, data)); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("the request survives a JSON round trip", func(t *testing.T) {
		req := email.NewSendEmailRequest("a@x.com", "b@y.com", api.HTMLBody("<i>hi</i>"))
		req.Cc = "c@z.com"
		data, err := json.Marshal(req)
		if err != nil {
			t.Fatal(err)
		}
		var decoded email.SendEmailRequest
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(req, &decoded); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("a message without body re-encodes without body keys", func(t *testing.T) {
		var decoded email.SendEmailRequest
		if err := json.Unmarshal([]byte(`{"From":"a","To":"b"}`), &decoded); err != nil {
			t.Fatal(err)
		}
		if !decoded.Body.IsZero() {
			t.Fatal("expected the zero body", decoded.Body)
		}
		data, err := json.Marshal(&decoded)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(`{"From":"a","To":"b"}`, string(data)); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("an inactive recipient decodes as an API error", func(t *testing.T) {
		req := email.NewSendEmailRequest("a@x.com", "b@y.com", api.TextBody("hi"))
		var got *postmark.WireRequest
		txp := newTransport(http.StatusUnprocessableEntity, `{"ErrorCode":406,"Message":"Inactive recipient"}`, &got)

		resp, err := req.Execute(context.Background(), txp)
		if err != nil {
			t.Fatal(err)
		}
		var apiErr *api.APIError
		if !errors.As(resp.Err(), &apiErr) {
			t.Fatal("expected an API error, got", resp.Err())
		}
		if apiErr.ErrorCode != 406 || apiErr.Message != "Inactive recipient" {
			t.Fatal("unexpected API error", apiErr)
		}
	})

	t.Run("Validate checks the mandatory addresses", func(t *testing.T) {
		if err := email.NewSendEmailRequest("", "b@y.com", api.TextBody("hi")).Validate(); !errors.Is(err, email.ErrMissingSender) {
			t.Fatal("unexpected error", err)
		}
		if err := email.NewSendEmailRequest("a@x.com", "", api.TextBody("hi")).Validate(); !errors.Is(err, email.ErrMissingRecipient) {
			t.Fatal("unexpected error", err)
		}
		if err := email.NewSendEmailRequest("a@x.com", "b@y.com", api.TextBody("hi")).Validate(); err != nil {
			t.Fatal(err)
		}
	})
}

func TestSendEmailWithTemplateRequest(t *testing.T) {
	t.Run("the model is sent under the TemplateModel key", func(t *testing.T) {
		model := email.TemplateModel{}
		model.Set("name", "Alice")
		model.Set("stale", 1)
		model.Delete("stale")
		req := email.NewSendEmailWithTemplateRequest("a@x.com", "b@y.com", api.RefName("welcome"), model)
		var got *postmark.WireRequest
		txp := newTransport(http.StatusOK, `{"ErrorCode":0,"Message":"OK"}`, &got)

		if _, err := req.Execute(context.Background(), txp); err != nil {
			t.Fatal(err)
		}

		if got.Path != "/email/withTemplate" {
			t.Fatal("unexpected path", got.Path)
		}
		expect := map[string]any{
			"From":          "a@x.com",
			"To":            "b@y.com",
			"TemplateAlias": "welcome",
			"TemplateModel": map[string]any{"name": "Alice"},
		}
		if diff := cmp.Diff(any(expect), decodeBody(t, got.Body)); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("a numeric ref sets the template ID", func(t *testing.T) {
		req := email.NewSendEmailWithTemplateRequest("a@x.com", "b@y.com", api.RefID(12345), nil)
		data, err := json.Marshal(req)
		if err != nil {
			t.Fatal(err)
		}
		expect := map[string]any{
			"From":          "a@x.com",
			"To":            "b@y.com",
			"TemplateId":    float64(12345),
			"TemplateModel": map[string]any{},
		}
		if diff := cmp.Diff(any(expect), decodeBody(t, data)); diff != "" {
			t.Fatal(diff)
		}
	})
}

func TestSendEmailBatchRequest(t *testing.T) {
	t.Run("the body is the array of messages", func(t *testing.T) {
		req := &email.SendEmailBatchRequest{
			Messages: []*email.SendEmailRequest{
				email.NewSendEmailRequest("a@x.com", "b@y.com", api.TextBody("one")),
				email.NewSendEmailRequest("a@x.com", "c@y.com", api.TextBody("two")),
			},
		}
		var got *postmark.WireRequest
		txp := newTransport(http.StatusOK, `[
			{"ErrorCode":0,"Message":"OK","To":"b@y.com","MessageID":"1"},
			{"ErrorCode":406,"Message":"Inactive recipient"}
		]`, &got)

		resp, err := req.Execute(context.Background(), txp)
		if err != nil {
			t.Fatal(err)
		}

		if got.Path != "/email/batch" {
			t.Fatal("unexpected path", got.Path)
		}
		expectBody := []any{
			map[string]any{"From": "a@x.com", "To": "b@y.com", "TextBody": "one"},
			map[string]any{"From": "a@x.com", "To": "c@y.com", "TextBody": "two"},
		}
		if diff := cmp.Diff(any(expectBody), decodeBody(t, got.Body)); diff != "" {
			t.Fatal(diff)
		}
		if len(resp) != 2 {
			t.Fatal("expected two responses")
		}
		if resp[0].Err() != nil || resp[1].Err() == nil {
			t.Fatal("unexpected per-message outcomes")
		}
	})

	t.Run("an empty batch is an empty array", func(t *testing.T) {
		var got *postmark.WireRequest
		txp := newTransport(http.StatusOK, `[]`, &got)
		if _, err := (&email.SendEmailBatchRequest{}).Execute(context.Background(), txp); err != nil {
			t.Fatal(err)
		}
		if string(got.Body) != "[]" {
			t.Fatal("unexpected body", string(got.Body))
		}
	})

	t.Run("templated batches wrap the messages", func(t *testing.T) {
		req := &email.SendEmailBatchWithTemplatesRequest{
			Messages: []*email.SendEmailWithTemplateRequest{
				email.NewSendEmailWithTemplateRequest("a@x.com", "b@y.com", api.RefID(7), email.TemplateModel{"n": 1}),
			},
		}
		var got *postmark.WireRequest
		txp := newTransport(http.StatusOK, `[{"ErrorCode":0,"Message":"OK"}]`, &got)
		if _, err := req.Execute(context.Background(), txp); err != nil {
			t.Fatal(err)
		}
		if got.Path != "/email/batchWithTemplates" {
			t.Fatal("unexpected path", got.Path)
		}
		expect := map[string]any{
			"Messages": []any{map[string]any{
				"From":          "a@x.com",
				"To":            "b@y.com",
				"TemplateId":    float64(7),
				"TemplateModel": map[string]any{"n": float64(1)},
			}},
		}
		if diff := cmp.Diff(any(expect), decodeBody(t, got.Body)); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("a non-JSON reply is a decode error", func(t *testing.T) {
		var got *postmark.WireRequest
		txp := newTransport(http.StatusBadGateway, `<html>bad gateway</html>`, &got)
		_, err := (&email.SendEmailBatchRequest{}).Execute(context.Background(), txp)
		if !errors.Is(err, postmark.ErrDecode) {
			t.Fatal("expected a decode error, got", err)
		}
	})
}
