package agentwallet

import (
	"encoding/json"
	"fmt"
)

const (
	extensionPairHeader = "X-QA-Extension"

	signTypedDataPath = "/wallet/signTypedDataV4"
	rpcPath           = "/wallet/rpc"
)

type signTypedDataReq struct {
	Origin        string `json:"origin"`
	Address       string `json:"address"`
	TypedDataJson string `json:"typedDataJson"`
}

type rpcReq struct {
	Origin string `json:"origin"`
	Method string `json:"method"`
	Params any    `json:"params"`
}

type rpcErr struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *rpcErr) Error() string {
	if e.Data == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Data)
}

// agentResp covers every reply shape of the wallet endpoints.
type agentResp struct {
	Signature    string          `json:"signature,omitempty"`
	Result       json.RawMessage `json:"result,omitempty"`
	Unauthorized bool            `json:"unauthorized,omitempty"`
	Error        *rpcErr         `json:"error,omitempty"`
}
