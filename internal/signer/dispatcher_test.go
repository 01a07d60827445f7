package signer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quantumauth-io/typed-data-signer/internal/constants"
	"github.com/quantumauth-io/typed-data-signer/internal/typeddata"
)

// =============================================================================
// Fixtures
// =============================================================================

const (
	testAccount   = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	testSignature = "0x4355c47d63924e8a72e509b65029052eb6c299d53a04e167c5775fd466751c9d07299936d304c153f6443dfa05f40ff007d72911b6f72307f996231605b915621c"
	testTypedData = `{
  "domain": {"name": "Ether Mail", "version": "1", "chainId": 1, "verifyingContract": "0xcccccccccccccccccccccccccccccccccccccccc"},
  "types": {"Mail": [{"name": "contents", "type": "string"}]},
  "primaryType": "Mail",
  "message": {"contents": "Hello, Bob!"}
}`
)

type MockPrimarySigner struct {
	mock.Mock
}

func (m *MockPrimarySigner) SignTypedData(ctx context.Context, domain, types json.RawMessage, primaryType string, message json.RawMessage) (string, error) {
	args := m.Called(ctx, domain, types, primaryType, message)
	return args.String(0), args.Error(1)
}

type MockRawRequester struct {
	mock.Mock
}

func (m *MockRawRequester) Request(ctx context.Context, method string, params []any) (string, error) {
	args := m.Called(ctx, method, params)
	return args.String(0), args.Error(1)
}

func testRequest(t *testing.T) *typeddata.Request {
	t.Helper()
	req, err := typeddata.Parse(testTypedData)
	require.NoError(t, err)
	return req
}

func stringPayload(params []any) bool {
	if len(params) != 2 {
		return false
	}
	_, ok := params[1].(string)
	return ok
}

func objectPayload(params []any) bool {
	if len(params) != 2 {
		return false
	}
	_, ok := params[1].(*typeddata.Request)
	return ok
}

// =============================================================================
// Primary path
// =============================================================================

func TestSign_PrimarySuccessNeverTouchesRaw(t *testing.T) {
	primary := new(MockPrimarySigner)
	raw := new(MockRawRequester)
	req := testRequest(t)

	primary.On("SignTypedData", mock.Anything, req.Domain, req.Types, "Mail", req.Message).Return(testSignature, nil).Once()

	out := NewDispatcher().Sign(context.Background(), typeddata.MethodV4, req, testAccount, Capabilities{Primary: primary, Raw: raw})

	require.True(t, out.OK())
	assert.Equal(t, testSignature, out.Signature)
	assert.Equal(t, typeddata.MethodV4, out.Method)
	assert.False(t, out.ViaFallback)
	primary.AssertExpectations(t)
	raw.AssertNotCalled(t, "Request", mock.Anything, mock.Anything, mock.Anything)
}

func TestSign_TerminalPrimaryErrorSkipsFallback(t *testing.T) {
	primary := new(MockPrimarySigner)
	raw := new(MockRawRequester)

	primary.On("SignTypedData", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("User rejected the request.")).Once()

	out := NewDispatcher().Sign(context.Background(), typeddata.MethodV3, testRequest(t), testAccount, Capabilities{Primary: primary, Raw: raw})

	require.False(t, out.OK())
	assert.Equal(t, StagePrimarySign, out.Failure.Stage)
	assert.Equal(t, "User rejected the request.", out.Failure.Message)
	assert.Empty(t, out.Failure.RawError)
	assert.Len(t, raw.Calls, 0)
}

// =============================================================================
// Fallback chain
// =============================================================================

func TestSign_FallbackFirstAttemptUsesStringPayload(t *testing.T) {
	primary := new(MockPrimarySigner)
	raw := new(MockRawRequester)
	req := testRequest(t)

	primary.On("SignTypedData", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New(`Invalid address "0xcccccccccccccccccccccccccccccccccccccccc"`)).Once()
	raw.On("Request", mock.Anything, constants.WireSignTypedDataV4, mock.MatchedBy(stringPayload)).Return(testSignature, nil).Once()

	out := NewDispatcher().Sign(context.Background(), typeddata.MethodV4, req, testAccount, Capabilities{Primary: primary, Raw: raw})

	require.True(t, out.OK())
	assert.True(t, out.ViaFallback)
	assert.Equal(t, testSignature, out.Signature)
	require.Len(t, raw.Calls, 1)

	params := raw.Calls[0].Arguments.Get(2).([]any)
	assert.Equal(t, testAccount, params[0])
	encoded, err := req.JSON()
	require.NoError(t, err)
	assert.Equal(t, encoded, params[1])
}

func TestSign_FallbackSecondAttemptUsesObjectPayload(t *testing.T) {
	primary := new(MockPrimarySigner)
	raw := new(MockRawRequester)
	req := testRequest(t)

	primary.On("SignTypedData", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("Address is not checksummed")).Once()
	raw.On("Request", mock.Anything, constants.WireSignTypedDataV1, mock.MatchedBy(stringPayload)).
		Return("", errors.New("expected object")).Once()
	raw.On("Request", mock.Anything, constants.WireSignTypedDataV1, mock.MatchedBy(objectPayload)).
		Return(testSignature, nil).Once()

	out := NewDispatcher().Sign(context.Background(), typeddata.MethodV1, req, testAccount, Capabilities{Primary: primary, Raw: raw})

	require.True(t, out.OK())
	assert.True(t, out.ViaFallback)
	assert.Equal(t, typeddata.MethodV1, out.Method)
	require.Len(t, raw.Calls, 2)
	assert.True(t, stringPayload(raw.Calls[0].Arguments.Get(2).([]any)), "string form goes first")
	second := raw.Calls[1].Arguments.Get(2).([]any)
	assert.Same(t, req, second[1])
	raw.AssertExpectations(t)
}

func TestSign_FallbackBothAttemptsFail(t *testing.T) {
	primary := new(MockPrimarySigner)
	raw := new(MockRawRequester)

	primary.On("SignTypedData", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("invalid address")).Once()
	raw.On("Request", mock.Anything, constants.WireSignTypedDataV3, mock.MatchedBy(stringPayload)).
		Return("", errors.New("first failed")).Once()
	raw.On("Request", mock.Anything, constants.WireSignTypedDataV3, mock.MatchedBy(objectPayload)).
		Return("", errors.New("second failed")).Once()

	out := NewDispatcher().Sign(context.Background(), typeddata.MethodV3, testRequest(t), testAccount, Capabilities{Primary: primary, Raw: raw})

	require.False(t, out.OK())
	assert.Equal(t, StageFallbackSign, out.Failure.Stage)
	assert.Equal(t, "second failed", out.Failure.Message)
	assert.Equal(t, "first failed", out.Failure.RawError)
	raw.AssertNumberOfCalls(t, "Request", 2)
}

func TestSign_FallbackWithoutTransport(t *testing.T) {
	primary := new(MockPrimarySigner)
	primary.On("SignTypedData", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("Invalid address")).Once()

	out := NewDispatcher().Sign(context.Background(), typeddata.MethodV4, testRequest(t), testAccount, Capabilities{Primary: primary})

	require.False(t, out.OK())
	assert.Equal(t, StageFallbackSign, out.Failure.Stage)
	assert.Equal(t, constants.NoRPCTransportText, out.Failure.Message)
}

func TestSign_AttemptHookSeesEachRawCall(t *testing.T) {
	primary := PrimarySignerFunc(func(context.Context, json.RawMessage, json.RawMessage, string, json.RawMessage) (string, error) {
		return "", errors.New("Invalid address")
	})
	raw := RawRequesterFunc(func(context.Context, string, []any) (string, error) {
		return "", errors.New("nope")
	})

	var seen []string
	d := NewDispatcher(WithAttemptHook(func(_ typeddata.Method, payload string) {
		seen = append(seen, payload)
	}))
	d.Sign(context.Background(), typeddata.MethodV4, testRequest(t), testAccount, Capabilities{Primary: primary, Raw: raw})

	assert.Equal(t, []string{PayloadString, PayloadObject}, seen)
}

func TestSign_CustomClassifier(t *testing.T) {
	primary := new(MockPrimarySigner)
	raw := new(MockRawRequester)
	primary.On("SignTypedData", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("Invalid address")).Once()

	never := func(error) FailureClass { return Terminal }
	out := NewDispatcher(WithClassifier(never)).Sign(context.Background(), typeddata.MethodV4, testRequest(t), testAccount, Capabilities{Primary: primary, Raw: raw})

	require.False(t, out.OK())
	assert.Equal(t, StagePrimarySign, out.Failure.Stage)
	assert.Len(t, raw.Calls, 0)
}

// =============================================================================
// Preconditions
// =============================================================================

func TestSign_Preconditions(t *testing.T) {
	primary := new(MockPrimarySigner)
	caps := Capabilities{Primary: primary, Raw: new(MockRawRequester)}

	tests := []struct {
		name    string
		req     *typeddata.Request
		account string
		caps    Capabilities
		want    string
	}{
		{name: "no account", req: testRequest(t), account: "", caps: caps, want: constants.WalletNotConnectedText},
		{name: "blank account", req: testRequest(t), account: "  ", caps: caps, want: constants.WalletNotConnectedText},
		{name: "account checked before request", req: nil, account: "", caps: caps, want: constants.WalletNotConnectedText},
		{name: "nil request", req: nil, account: testAccount, caps: caps, want: constants.InvalidJSONShapeText},
		{name: "zero request", req: &typeddata.Request{}, account: testAccount, caps: caps, want: constants.InvalidJSONShapeText},
		{name: "no primary signer", req: testRequest(t), account: testAccount, caps: Capabilities{}, want: constants.NoPrimarySignerText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewDispatcher().Sign(context.Background(), typeddata.MethodV4, tt.req, tt.account, tt.caps)
			require.False(t, out.OK())
			assert.Equal(t, StageValidation, out.Failure.Stage)
			assert.Equal(t, tt.want, out.Failure.Message)
		})
	}
	assert.Len(t, primary.Calls, 0)
}

// =============================================================================
// Outcome encoding
// =============================================================================

func TestOutcome_JSON(t *testing.T) {
	ok, err := json.Marshal(succeeded(typeddata.MethodV4, testSignature, true))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true,"signature":"`+testSignature+`","method":"eth_signTypedData_v4","viaFallback":true}`, string(ok))

	bad, err := json.Marshal(failed(typeddata.MethodV3, StageFallbackSign, "second", "first"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":false,"method":"eth_signTypedData_v3","failure":{"stage":"fallback_sign","message":"second","rawError":"first"}}`, string(bad))
}
