package signer

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/typed-data-signer/internal/constants"
	"github.com/quantumauth-io/typed-data-signer/internal/eventlog"
	"github.com/quantumauth-io/typed-data-signer/internal/metrics"
	"github.com/quantumauth-io/typed-data-signer/internal/typeddata"
)

// Service wraps the dispatcher with the user-facing outcome log and metrics.
type Service struct {
	dispatcher *Dispatcher
	events     *eventlog.Log
}

func NewService(events *eventlog.Log, opts ...Option) *Service {
	opts = append([]Option{WithAttemptHook(countAttempt)}, opts...)
	return &Service{
		dispatcher: NewDispatcher(opts...),
		events:     events,
	}
}

func (s *Service) Events() *eventlog.Log {
	return s.events
}

// Sign parses raw as it is now, signs it and records exactly one outcome
// entry. A "signing started" entry precedes it when the wallet is reached.
func (s *Service) Sign(ctx context.Context, method typeddata.Method, raw, account string, caps Capabilities) Outcome {
	req, parseErr := typeddata.Parse(raw)
	if parseErr != nil {
		metrics.ValidationRejections.WithLabelValues(typeddata.KindOf(parseErr).String()).Inc()
		req = nil
	}

	if strings.TrimSpace(account) != "" && req != nil && caps.Primary != nil {
		s.events.Info(constants.SigningStartedText, map[string]any{
			"method":      method.WireName(),
			"domain":      json.RawMessage(req.Domain),
			"primaryType": req.PrimaryType,
		})
	}

	out := s.dispatcher.Sign(ctx, method, req, account, caps)
	s.record(out, parseErr)
	return out
}

func (s *Service) record(out Outcome, parseErr error) {
	method := out.Method.WireName()
	if out.OK() {
		metrics.SignOutcomes.WithLabelValues(method, "success", "").Inc()
		log.Info("typed data signed", "method", method, "via_fallback", out.ViaFallback)
		s.events.Success(constants.SigningSucceededText, map[string]any{
			"signature":   out.Signature,
			"method":      method,
			"viaFallback": out.ViaFallback,
		})
		return
	}

	f := out.Failure
	metrics.SignOutcomes.WithLabelValues(method, "failure", f.Stage.String()).Inc()
	log.Warn("typed data signing failed", "method", method, "stage", f.Stage.String(), "error", f.Message)

	detail := map[string]any{
		"stage":  f.Stage.String(),
		"method": method,
		"error":  f.Message,
	}
	if f.RawError != "" {
		detail["rawError"] = f.RawError
	}
	if parseErr != nil && f.Stage == StageValidation && f.Message == constants.InvalidJSONShapeText {
		detail["parseError"] = parseErr.Error()
	}
	s.events.Error(f.Message, detail)
}

func countAttempt(method typeddata.Method, payload string) {
	metrics.FallbackAttempts.WithLabelValues(method.WireName(), payload).Inc()
}
