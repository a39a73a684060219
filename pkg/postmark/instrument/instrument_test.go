package instrument_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/postmarkgo/postmark/internal/mocks"
	"github.com/postmarkgo/postmark/pkg/postmark"
	"github.com/postmarkgo/postmark/pkg/postmark/api/bounces"
	"github.com/postmarkgo/postmark/pkg/postmark/instrument"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestTransport(t *testing.T) {
	t.Run("successful calls are counted by method and status code", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		inner := &mocks.Transport{
			MockExecute: func(ctx context.Context, req *postmark.WireRequest) (*postmark.WireResponse, error) {
				return &postmark.WireResponse{StatusCode: http.StatusUnprocessableEntity, Body: []byte(`{"ErrorCode":406}`)}, nil
			},
		}
		txp := instrument.NewTransport(inner, reg)

		for i := 0; i < 3; i++ {
			resp, err := (&bounces.DeliveryStatsRequest{}).Execute(context.Background(), txp)
			if err != nil {
				t.Fatal(err)
			}
			if resp.ErrorCode != 406 {
				t.Fatal("the response should pass through unchanged")
			}
		}

		expect := `
# HELP postmark_client_requests_count Total number of Postmark API calls
# TYPE postmark_client_requests_count counter
postmark_client_requests_count{code="422",method="GET"} 3
`
		if err := testutil.GatherAndCompare(reg, strings.NewReader(expect), "postmark_client_requests_count"); err != nil {
			t.Fatal(err)
		}
		if count := testutil.CollectAndCount(reg, "postmark_client_request_duration_seconds"); count != 1 {
			t.Fatal("expected one duration summary, got", count)
		}
	})

	t.Run("transport errors pass through and are counted", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		expected := errors.New("mocked error")
		inner := &mocks.Transport{
			MockExecute: func(ctx context.Context, req *postmark.WireRequest) (*postmark.WireResponse, error) {
				return nil, expected
			},
		}
		txp := instrument.NewTransport(inner, reg)

		_, err := (&bounces.DeliveryStatsRequest{}).Execute(context.Background(), txp)
		if !errors.Is(err, expected) {
			t.Fatal("unexpected error", err)
		}

		expect := `
# HELP postmark_client_requests_count Total number of Postmark API calls
# TYPE postmark_client_requests_count counter
postmark_client_requests_count{code="error",method="GET"} 1
`
		if err := testutil.GatherAndCompare(reg, strings.NewReader(expect), "postmark_client_requests_count"); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("no call is inflight after returning", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		inner := &mocks.Transport{
			MockExecute: func(ctx context.Context, req *postmark.WireRequest) (*postmark.WireResponse, error) {
				return &postmark.WireResponse{StatusCode: http.StatusOK, Body: []byte(`{}`)}, nil
			},
		}
		txp := instrument.NewTransport(inner, reg)
		if _, err := (&bounces.DeliveryStatsRequest{}).Execute(context.Background(), txp); err != nil {
			t.Fatal(err)
		}

		expect := `
# HELP postmark_client_requests_inflight_gauge The number of Postmark API calls currently inflight
# TYPE postmark_client_requests_inflight_gauge gauge
postmark_client_requests_inflight_gauge 0
`
		if err := testutil.GatherAndCompare(reg, strings.NewReader(expect), "postmark_client_requests_inflight_gauge"); err != nil {
			t.Fatal(err)
		}
	})
}
