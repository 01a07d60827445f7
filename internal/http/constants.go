package http

import "time"

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"

	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
	corsMaxAge        = 10 * time.Minute
)

// Generic HTTP / JSON strings
const (
	HTTPErrorInvalidRequestText = "invalid request"
	HTTPErrorInvalidJSONText    = "invalid JSON"
	HTTPErrorForbiddenText      = "forbidden"
	HTTPErrorForbiddenHostText  = "forbidden host"
	HTTPErrorUnknownMethodText  = "unknown signing method"
	HTTPErrorNotFoundText       = "not found"
)

// JSON-RPC error codes (EIP-1474 style)
const (
	JSONRPCErrorCodeInvalidRequest = -32600
	JSONRPCErrorCodeMethodNotFound = -32601
	JSONRPCErrorCodeInvalidParams  = -32602
	JSONRPCErrorCodeInternalError  = -32603
)

// Wallet messages
const (
	WalletConnectFailedText = "failed to connect wallet"
)
