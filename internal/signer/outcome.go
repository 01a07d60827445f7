package signer

import (
	"encoding/json"

	"github.com/quantumauth-io/typed-data-signer/internal/typeddata"
)

type Stage int

const (
	StageValidation Stage = iota + 1
	StagePrimarySign
	StageFallbackSign
)

func (s Stage) String() string {
	switch s {
	case StageValidation:
		return "validation"
	case StagePrimarySign:
		return "primary_sign"
	case StageFallbackSign:
		return "fallback_sign"
	default:
		return "none"
	}
}

func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Failure describes why no signature was produced.
type Failure struct {
	Stage    Stage  `json:"stage"`
	Message  string `json:"message"`
	RawError string `json:"rawError,omitempty"`
}

func (f *Failure) Error() string {
	if f.RawError != "" {
		return f.Stage.String() + ": " + f.Message + " (first attempt: " + f.RawError + ")"
	}
	return f.Stage.String() + ": " + f.Message
}

// Outcome is the single, immutable result of one sign call.
type Outcome struct {
	Signature   string
	Method      typeddata.Method
	ViaFallback bool
	Failure     *Failure
}

func (o Outcome) OK() bool {
	return o.Failure == nil
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.Failure != nil {
		return json.Marshal(struct {
			OK      bool     `json:"ok"`
			Method  string   `json:"method,omitempty"`
			Failure *Failure `json:"failure"`
		}{OK: false, Method: o.Method.WireName(), Failure: o.Failure})
	}
	return json.Marshal(struct {
		OK          bool   `json:"ok"`
		Signature   string `json:"signature"`
		Method      string `json:"method"`
		ViaFallback bool   `json:"viaFallback"`
	}{OK: true, Signature: o.Signature, Method: o.Method.WireName(), ViaFallback: o.ViaFallback})
}

func succeeded(method typeddata.Method, sig string, viaFallback bool) Outcome {
	return Outcome{Signature: sig, Method: method, ViaFallback: viaFallback}
}

func failed(method typeddata.Method, stage Stage, message, rawError string) Outcome {
	return Outcome{Method: method, Failure: &Failure{Stage: stage, Message: message, RawError: rawError}}
}
