package bounces_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/postmarkgo/postmark/internal/mocks"
	"github.com/postmarkgo/postmark/pkg/postmark"
	"github.com/postmarkgo/postmark/pkg/postmark/api/bounces"
)

func TestDeliveryStatsRequest(t *testing.T) {
	var got *postmark.WireRequest
	txp := &mocks.Transport{
		MockExecute: func(ctx context.Context, req *postmark.WireRequest) (*postmark.WireResponse, error) {
			got = req
			body := `{
				"InactiveMails": 192,
				"Bounces": [
					{"Name": "All", "Count": 253},
					{"Type": "HardBounce", "Name": "Hard bounce", "Count": 195},
					{"Type": "Transient", "Name": "Message delayed", "Count": 10}
				]
			}`
			return &postmark.WireResponse{StatusCode: http.StatusOK, Body: []byte(body)}, nil
		},
	}

	resp, err := (&bounces.DeliveryStatsRequest{}).Execute(context.Background(), txp)
	if err != nil {
		t.Fatal(err)
	}

	if got.Method != http.MethodGet || got.Path != "/deliverystats" {
		t.Fatal("unexpected request", got.Method, got.Path)
	}
	if len(got.Body) != 0 {
		t.Fatal("expected no body")
	}
	expect := bounces.DeliveryStatsResponse{
		InactiveMails: 192,
		Bounces: []bounces.Bounce{
			{Name: "All", Count: 253},
			{Type: "HardBounce", Name: "Hard bounce", Count: 195},
			{Type: "Transient", Name: "Message delayed", Count: 10},
		},
	}
	if diff := cmp.Diff(expect, resp); diff != "" {
		t.Fatal(diff)
	}
}
