package signer

import (
	"context"
	"encoding/json"
)

// PrimarySigner is the wallet's high-level "sign typed data" API.
type PrimarySigner interface {
	SignTypedData(ctx context.Context, domain, types json.RawMessage, primaryType string, message json.RawMessage) (string, error)
}

// RawRequester issues a raw provider RPC call and returns the signature it yields.
type RawRequester interface {
	Request(ctx context.Context, method string, params []any) (string, error)
}

type PrimarySignerFunc func(ctx context.Context, domain, types json.RawMessage, primaryType string, message json.RawMessage) (string, error)

func (f PrimarySignerFunc) SignTypedData(ctx context.Context, domain, types json.RawMessage, primaryType string, message json.RawMessage) (string, error) {
	return f(ctx, domain, types, primaryType, message)
}

type RawRequesterFunc func(ctx context.Context, method string, params []any) (string, error)

func (f RawRequesterFunc) Request(ctx context.Context, method string, params []any) (string, error) {
	return f(ctx, method, params)
}

// Capabilities is what a connected wallet lends the dispatcher for one call.
// Raw may be nil; the dispatcher then degrades to primary-only signing.
type Capabilities struct {
	Primary PrimarySigner
	Raw     RawRequester
}
