package postmark_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/postmarkgo/postmark/internal/mocks"
	"github.com/postmarkgo/postmark/pkg/postmark"
)

type greetingRequest struct {
	postmark.Returns[greetingResponse]
	Name string
}

func (r *greetingRequest) Path() string                  { return "/greetings" }
func (r *greetingRequest) RequestBody() *greetingRequest { return r }

type greetingResponse struct {
	ErrorCode int64
	Message   string
	Greeting  string `json:",omitempty"`
}

type getGreetingRequest struct {
	postmark.Returns[greetingResponse]
	ID string
}

func (r *getGreetingRequest) Path() string                { return "/greetings/" + r.ID }
func (r *getGreetingRequest) Method() string              { return http.MethodGet }
func (r *getGreetingRequest) RequestBody() postmark.NoBody { return postmark.NoBody{} }

type unencodableRequest struct {
	postmark.Returns[greetingResponse]
}

func (r *unencodableRequest) Path() string          { return "/greetings" }
func (r *unencodableRequest) RequestBody() chan int { return make(chan int) }

// spyTransport records the requests it receives and returns a canned response.
type spyTransport struct {
	mu       sync.Mutex
	requests []*postmark.WireRequest
	status   int
	body     string
	err      error
}

func (txp *spyTransport) Execute(ctx context.Context, req *postmark.WireRequest) (*postmark.WireResponse, error) {
	txp.mu.Lock()
	txp.requests = append(txp.requests, req)
	txp.mu.Unlock()
	if txp.err != nil {
		return nil, txp.err
	}
	resp := &postmark.WireResponse{
		StatusCode: txp.status,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       []byte(txp.body),
	}
	return resp, nil
}

func (txp *spyTransport) calls() int {
	txp.mu.Lock()
	defer txp.mu.Unlock()
	return len(txp.requests)
}

type customTransportError struct {
	Reason string
}

func (err *customTransportError) Error() string {
	return err.Reason
}

func TestExecute(t *testing.T) {
	t.Run("on success", func(t *testing.T) {
		txp := &spyTransport{
			status: 200,
			body:   `{"ErrorCode":0,"Message":"OK","Greeting":"hello, ferris"}`,
		}
		req := &greetingRequest{Name: "ferris"}

		resp, err := postmark.Execute[*greetingRequest, greetingResponse](context.Background(), txp, req)
		if err != nil {
			t.Fatal(err)
		}

		expectResp := greetingResponse{ErrorCode: 0, Message: "OK", Greeting: "hello, ferris"}
		if diff := cmp.Diff(expectResp, resp); diff != "" {
			t.Fatal(diff)
		}

		if txp.calls() != 1 {
			t.Fatal("expected exactly one call")
		}
		expectReq := &postmark.WireRequest{
			Method: "POST",
			Path:   "/greetings",
			Header: http.Header{
				"Accept":       {"application/json"},
				"Content-Type": {"application/json"},
			},
			Body: []byte(`{"Name":"ferris"}`),
		}
		if diff := cmp.Diff(expectReq, txp.requests[0]); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("with method override and without body", func(t *testing.T) {
		txp := &spyTransport{status: 200, body: `{"ErrorCode":0,"Message":"OK"}`}
		req := &getGreetingRequest{ID: "12345"}

		if _, err := postmark.Execute[postmark.NoBody, greetingResponse](context.Background(), txp, req); err != nil {
			t.Fatal(err)
		}

		got := txp.requests[0]
		if got.Method != "GET" {
			t.Fatal("unexpected method", got.Method)
		}
		if got.Path != "/greetings/12345" {
			t.Fatal("unexpected path", got.Path)
		}
		if len(got.Body) != 0 {
			t.Fatal("expected empty body", string(got.Body))
		}
	})

	t.Run("when we cannot encode the body", func(t *testing.T) {
		txp := &spyTransport{status: 200, body: `{}`}

		resp, err := postmark.Execute[chan int, greetingResponse](context.Background(), txp, &unencodableRequest{})

		if !errors.Is(err, postmark.ErrEncode) {
			t.Fatal("unexpected error", err)
		}
		var perr *postmark.Error
		if !errors.As(err, &perr) || perr.Kind != postmark.ErrorKindEncode {
			t.Fatal("expected encode *postmark.Error", err)
		}
		if err.Error() != "postmark: POST /greetings: encode: json: unsupported type: chan int" {
			t.Fatal("unexpected error string", err.Error())
		}
		if diff := cmp.Diff(greetingResponse{}, resp); diff != "" {
			t.Fatal(diff)
		}
		if txp.calls() != 0 {
			t.Fatal("the transport should not have been called")
		}
	})

	t.Run("when the transport fails", func(t *testing.T) {
		expected := &customTransportError{Reason: "connection_reset"}
		txp := &mocks.Transport{
			MockExecute: func(ctx context.Context, req *postmark.WireRequest) (*postmark.WireResponse, error) {
				return nil, expected
			},
		}

		resp, err := postmark.Execute[*greetingRequest, greetingResponse](
			context.Background(), txp, &greetingRequest{Name: "ferris"})

		if !errors.Is(err, postmark.ErrTransport) {
			t.Fatal("unexpected error", err)
		}
		if errors.Is(err, postmark.ErrDecode) || errors.Is(err, postmark.ErrEncode) {
			t.Fatal("the error should only match ErrTransport")
		}
		got, ok := postmark.AsTransportError[*customTransportError](err)
		if !ok || got != expected {
			t.Fatal("expected to obtain the transport's own error", got)
		}
		if diff := cmp.Diff(greetingResponse{}, resp); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("when the transport returns nil response and nil error", func(t *testing.T) {
		txp := postmark.TransportFunc(func(ctx context.Context, req *postmark.WireRequest) (*postmark.WireResponse, error) {
			return nil, nil
		})

		_, err := postmark.Execute[*greetingRequest, greetingResponse](
			context.Background(), txp, &greetingRequest{Name: "ferris"})

		if !errors.Is(err, postmark.ErrTransport) || !errors.Is(err, postmark.ErrNilWireResponse) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("when we cannot decode the body", func(t *testing.T) {
		txp := &spyTransport{status: 500, body: `<html>Internal Server Error</html>`}

		_, err := postmark.Execute[*greetingRequest, greetingResponse](
			context.Background(), txp, &greetingRequest{Name: "ferris"})

		if !errors.Is(err, postmark.ErrDecode) {
			t.Fatal("unexpected error", err)
		}
		var perr *postmark.Error
		if !errors.As(err, &perr) {
			t.Fatal("expected *postmark.Error")
		}
		if perr.StatusCode != 500 {
			t.Fatal("unexpected status code", perr.StatusCode)
		}
		if _, ok := postmark.AsTransportError[*customTransportError](err); ok {
			t.Fatal("a decode error is not a transport error")
		}
	})

	t.Run("when the body is null", func(t *testing.T) {
		for _, body := range []string{"null", " null\n"} {
			txp := &spyTransport{status: 500, body: body}

			resp, err := postmark.Execute[*greetingRequest, greetingResponse](
				context.Background(), txp, &greetingRequest{Name: "ferris"})

			if !errors.Is(err, postmark.ErrDecode) {
				t.Fatal("unexpected error", err)
			}
			if !errors.Is(err, postmark.ErrNullBody) {
				t.Fatal("expected the null body cause", err)
			}
			var perr *postmark.Error
			if !errors.As(err, &perr) || perr.StatusCode != 500 {
				t.Fatal("expected the status code to be preserved", err)
			}
			if diff := cmp.Diff(greetingResponse{}, resp); diff != "" {
				t.Fatal(diff)
			}
		}
	})

	t.Run("does not branch on the status code", func(t *testing.T) {
		success := &spyTransport{status: 200, body: `{"ErrorCode":0,"Message":"OK"}`}
		failure := &spyTransport{status: 422, body: `{"ErrorCode":406,"Message":"Inactive recipient"}`}
		req := &greetingRequest{Name: "ferris"}

		okResp, err := postmark.Execute[*greetingRequest, greetingResponse](context.Background(), success, req)
		if err != nil {
			t.Fatal(err)
		}
		failResp, err := postmark.Execute[*greetingRequest, greetingResponse](context.Background(), failure, req)
		if err != nil {
			t.Fatal(err)
		}
		if okResp.ErrorCode != 0 || failResp.ErrorCode != 406 {
			t.Fatal("unexpected error codes", okResp.ErrorCode, failResp.ErrorCode)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		txp := &spyTransport{status: 200, body: `{"ErrorCode":0,"Message":"OK","Greeting":"hi"}`}

		first, err1 := postmark.Execute[*greetingRequest, greetingResponse](
			context.Background(), txp, &greetingRequest{Name: "ferris"})
		second, err2 := postmark.Execute[*greetingRequest, greetingResponse](
			context.Background(), txp, &greetingRequest{Name: "ferris"})

		if err1 != nil || err2 != nil {
			t.Fatal(err1, err2)
		}
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatal(diff)
		}
		if diff := cmp.Diff(txp.requests[0], txp.requests[1]); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		txp := &spyTransport{status: 200, body: `{"ErrorCode":0,"Message":"OK"}`}
		const count = 16
		errch := make(chan error, count)
		wg := &sync.WaitGroup{}
		for idx := 0; idx < count; idx++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := postmark.Execute[*greetingRequest, greetingResponse](
					context.Background(), txp, &greetingRequest{Name: "ferris"})
				errch <- err
			}()
		}
		wg.Wait()
		close(errch)
		for err := range errch {
			if err != nil {
				t.Fatal(err)
			}
		}
		if txp.calls() != count {
			t.Fatal("unexpected number of calls", txp.calls())
		}
	})
}
