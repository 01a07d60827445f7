package signer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumauth-io/typed-data-signer/internal/constants"
	"github.com/quantumauth-io/typed-data-signer/internal/eventlog"
	"github.com/quantumauth-io/typed-data-signer/internal/typeddata"
)

func okPrimary(sig string) PrimarySigner {
	return PrimarySignerFunc(func(context.Context, json.RawMessage, json.RawMessage, string, json.RawMessage) (string, error) {
		return sig, nil
	})
}

func TestService_SuccessLogsStartAndOutcome(t *testing.T) {
	events := eventlog.New()
	svc := NewService(events)

	out := svc.Sign(context.Background(), typeddata.MethodV4, testTypedData, testAccount, Capabilities{Primary: okPrimary(testSignature)})
	require.True(t, out.OK())

	entries := events.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, eventlog.LevelInfo, entries[0].Level)
	assert.Equal(t, constants.SigningStartedText, entries[0].Message)
	start := entries[0].Detail.(map[string]any)
	assert.Equal(t, "Mail", start["primaryType"])
	assert.Equal(t, constants.WireSignTypedDataV4, start["method"])

	assert.Equal(t, eventlog.LevelSuccess, entries[1].Level)
	done := entries[1].Detail.(map[string]any)
	assert.Equal(t, testSignature, done["signature"])
	assert.Equal(t, false, done["viaFallback"])
}

func TestService_ValidationFailureLogsOneEntry(t *testing.T) {
	events := eventlog.New()
	svc := NewService(events)

	out := svc.Sign(context.Background(), typeddata.MethodV4, testTypedData, "", Capabilities{Primary: okPrimary(testSignature)})
	require.False(t, out.OK())

	entries := events.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, eventlog.LevelError, entries[0].Level)
	assert.Equal(t, constants.WalletNotConnectedText, entries[0].Message)
}

func TestService_ParsesTextOnEverySign(t *testing.T) {
	calls := 0
	primary := PrimarySignerFunc(func(_ context.Context, _ json.RawMessage, _ json.RawMessage, primaryType string, _ json.RawMessage) (string, error) {
		calls++
		assert.Equal(t, "Mail", primaryType)
		return testSignature, nil
	})
	svc := NewService(eventlog.New())

	out := svc.Sign(context.Background(), typeddata.MethodV4, "  ", testAccount, Capabilities{Primary: primary})
	require.False(t, out.OK())
	assert.Equal(t, constants.InvalidJSONShapeText, out.Failure.Message, "blank text is an error at sign time")

	out = svc.Sign(context.Background(), typeddata.MethodV4, `{"domain":{}}`, testAccount, Capabilities{Primary: primary})
	require.False(t, out.OK())
	assert.Equal(t, StageValidation, out.Failure.Stage)

	out = svc.Sign(context.Background(), typeddata.MethodV4, testTypedData, testAccount, Capabilities{Primary: primary})
	assert.True(t, out.OK())
	assert.Equal(t, 1, calls)
}

func TestService_InvalidShapeCarriesParseError(t *testing.T) {
	events := eventlog.New()
	svc := NewService(events)

	out := svc.Sign(context.Background(), typeddata.MethodV3, `{"domain":{},"types":{}}`, testAccount, Capabilities{Primary: okPrimary(testSignature)})
	require.False(t, out.OK())

	entries := events.Entries()
	require.Len(t, entries, 1)
	detail := entries[0].Detail.(map[string]any)
	assert.Equal(t, constants.ShapeErrorText, detail["parseError"])
	assert.Equal(t, "validation", detail["stage"])
}

func TestService_FallbackFailureKeepsBothErrors(t *testing.T) {
	events := eventlog.New()
	svc := NewService(events)

	calls := 0
	caps := Capabilities{
		Primary: PrimarySignerFunc(func(context.Context, json.RawMessage, json.RawMessage, string, json.RawMessage) (string, error) {
			return "", errors.New("Invalid address")
		}),
		Raw: RawRequesterFunc(func(_ context.Context, method string, _ []any) (string, error) {
			calls++
			assert.Equal(t, constants.WireSignTypedDataV4, method)
			if calls == 1 {
				return "", errors.New("string rejected")
			}
			return "", errors.New("object rejected")
		}),
	}

	out := svc.Sign(context.Background(), typeddata.MethodV4, testTypedData, testAccount, caps)
	require.False(t, out.OK())
	assert.Equal(t, 2, calls)

	entries := events.Entries()
	require.Len(t, entries, 2)
	last := entries[1]
	assert.Equal(t, "object rejected", last.Message)
	detail := last.Detail.(map[string]any)
	assert.Equal(t, "string rejected", detail["rawError"])
	assert.Equal(t, "fallback_sign", detail["stage"])
}
