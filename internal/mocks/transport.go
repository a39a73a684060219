package mocks

import (
	"context"

	"github.com/postmarkgo/postmark/pkg/postmark"
)

// Transport is a mockable [postmark.Transport].
type Transport struct {
	MockExecute func(ctx context.Context, req *postmark.WireRequest) (*postmark.WireResponse, error)
}

var _ postmark.Transport = &Transport{}

// Execute calls MockExecute.
func (txp *Transport) Execute(ctx context.Context, req *postmark.WireRequest) (*postmark.WireResponse, error) {
	return txp.MockExecute(ctx, req)
}
