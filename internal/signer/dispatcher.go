package signer

import (
	"context"
	"strings"

	"github.com/quantumauth-io/typed-data-signer/internal/constants"
	"github.com/quantumauth-io/typed-data-signer/internal/typeddata"
)

// Payload forms tried by the fallback chain, in order.
const (
	PayloadString = "string"
	PayloadObject = "object"
)

// AttemptHook observes each raw RPC call the fallback chain issues.
type AttemptHook func(method typeddata.Method, payload string)

type Option func(*Dispatcher)

func WithClassifier(c Classifier) Option {
	return func(d *Dispatcher) {
		if c != nil {
			d.classify = c
		}
	}
}

func WithAttemptHook(h AttemptHook) Option {
	return func(d *Dispatcher) {
		d.onAttempt = h
	}
}

// Dispatcher runs one signing attempt per call: the wallet's high-level API
// first, then, for address-shape rejections only, raw RPC with the payload as
// a JSON string and finally as an object. It keeps no state between calls.
type Dispatcher struct {
	classify  Classifier
	onAttempt AttemptHook
}

func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{classify: AddressMismatch}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) Sign(ctx context.Context, method typeddata.Method, req *typeddata.Request, account string, caps Capabilities) Outcome {
	if strings.TrimSpace(account) == "" {
		return failed(method, StageValidation, constants.WalletNotConnectedText, "")
	}
	if !req.Valid() {
		return failed(method, StageValidation, constants.InvalidJSONShapeText, "")
	}
	if caps.Primary == nil {
		return failed(method, StageValidation, constants.NoPrimarySignerText, "")
	}

	sig, err := caps.Primary.SignTypedData(ctx, req.Domain, req.Types, req.PrimaryType, req.Message)
	if err == nil {
		return succeeded(method, sig, false)
	}
	if d.classify(err) != Retryable {
		return failed(method, StagePrimarySign, err.Error(), "")
	}

	return d.fallback(ctx, method, req, account, caps.Raw)
}

func (d *Dispatcher) fallback(ctx context.Context, method typeddata.Method, req *typeddata.Request, account string, raw RawRequester) Outcome {
	if raw == nil {
		return failed(method, StageFallbackSign, constants.NoRPCTransportText, "")
	}
	wire := method.WireName()

	encoded, err := req.JSON()
	if err != nil {
		return failed(method, StageFallbackSign, err.Error(), "")
	}

	d.attempt(method, PayloadString)
	sig, firstErr := raw.Request(ctx, wire, []any{account, encoded})
	if firstErr == nil {
		return succeeded(method, sig, true)
	}

	d.attempt(method, PayloadObject)
	sig, secondErr := raw.Request(ctx, wire, []any{account, req})
	if secondErr == nil {
		return succeeded(method, sig, true)
	}

	return failed(method, StageFallbackSign, secondErr.Error(), firstErr.Error())
}

func (d *Dispatcher) attempt(method typeddata.Method, payload string) {
	if d.onAttempt != nil {
		d.onAttempt(method, payload)
	}
}
