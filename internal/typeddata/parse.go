package typeddata

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/quantumauth-io/typed-data-signer/internal/constants"
)

// Parse turns editor text into a Request. Empty text is a syntax error here;
// use CheckLive for edit-in-progress feedback.
func Parse(raw string) (*Request, error) {
	data := []byte(raw)
	if err := checkSyntax(data); err != nil {
		return nil, err
	}

	if leadingByte(data) != '{' {
		return nil, shapeError()
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, shapeError()
	}

	domain, types, message := top["domain"], top["types"], top["message"]
	primaryRaw := top["primaryType"]

	var primaryType string
	primaryOK := leadingByte(primaryRaw) == '"' && json.Unmarshal(primaryRaw, &primaryType) == nil

	if !isObject(domain) || !isObject(types) || !primaryOK || !isObject(message) {
		return nil, shapeError()
	}

	return &Request{
		Domain:      compact(domain),
		Types:       compact(types),
		PrimaryType: primaryType,
		Message:     compact(message),
	}, nil
}

// CheckLive validates text while it is being edited: blank text is not yet an
// error, anything else must at least be well-formed JSON.
func CheckLive(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return checkSyntax([]byte(raw))
}

// Format pretty-prints JSON with two-space indentation, keeping key order and
// number literals. On a syntax error it returns "" and the error.
func Format(raw string) (string, error) {
	data := []byte(raw)
	if err := checkSyntax(data); err != nil {
		return "", err
	}

	var flat bytes.Buffer
	if err := json.Compact(&flat, data); err != nil {
		return "", syntaxError(err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, flat.Bytes(), "", constants.JSONIndent); err != nil {
		return "", syntaxError(err)
	}
	return out.String(), nil
}

func checkSyntax(data []byte) error {
	if json.Valid(data) {
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return syntaxError(err)
	}
	return syntaxError(errInvalidJSON)
}

func compact(data json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return data
	}
	return buf.Bytes()
}
