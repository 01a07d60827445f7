package typeddata

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Domain is a decoded view of the domain separator. Every field is optional;
// forwarding to a wallet always uses Request.Domain so nothing is invented or dropped.
type Domain struct {
	Name              *string `json:"name,omitempty"`
	Version           *string `json:"version,omitempty"`
	ChainID           any     `json:"chainId,omitempty"`
	VerifyingContract *string `json:"verifyingContract,omitempty"`
	Salt              *string `json:"salt,omitempty"`
}

type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// TypeTree maps a struct name to its ordered field list.
type TypeTree map[string][]Field

// Request is a shape-checked typed-data payload. Members are kept as the
// caller wrote them; marshalling emits domain, types, primaryType, message.
type Request struct {
	Domain      json.RawMessage `json:"domain"`
	Types       json.RawMessage `json:"types"`
	PrimaryType string          `json:"primaryType"`
	Message     json.RawMessage `json:"message"`
}

// Valid re-checks the shallow shape. A zero Request is not valid.
func (r *Request) Valid() bool {
	if r == nil {
		return false
	}
	return isObject(r.Domain) && isObject(r.Types) && isObject(r.Message)
}

// JSON returns the compact string encoding of the request.
func (r *Request) JSON() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", errors.Wrap(err, "encode typed data")
	}
	return string(b), nil
}

func (r *Request) DomainView() (Domain, error) {
	var d Domain
	if err := decodeNumbers(r.Domain, &d); err != nil {
		return Domain{}, errors.Wrap(err, "decode domain")
	}
	return d, nil
}

func (r *Request) TypeTree() (TypeTree, error) {
	var t TypeTree
	if err := json.Unmarshal(r.Types, &t); err != nil {
		return nil, errors.Wrap(err, "decode types")
	}
	return t, nil
}

func (r *Request) MessageFields() (map[string]any, error) {
	var m map[string]any
	if err := decodeNumbers(r.Message, &m); err != nil {
		return nil, errors.Wrap(err, "decode message")
	}
	return m, nil
}

// decodeNumbers keeps numeric literals as json.Number so 256-bit values survive.
func decodeNumbers(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(out)
}

func leadingByte(data []byte) byte {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func isObject(data json.RawMessage) bool {
	return leadingByte(data) == '{' && json.Valid(data)
}
