package typeddata

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/quantumauth-io/typed-data-signer/internal/constants"
)

// Method is one of the three historical typed-data signing conventions.
type Method int

const (
	MethodV1 Method = iota + 1
	MethodV3
	MethodV4
)

// DefaultMethod is what a fresh editor starts on.
const DefaultMethod = MethodV4

var methods = []Method{MethodV1, MethodV3, MethodV4}

// Methods returns every supported method in wire order.
func Methods() []Method {
	out := make([]Method, len(methods))
	copy(out, methods)
	return out
}

// WireName is the JSON-RPC method name a wallet exposes for m.
func (m Method) WireName() string {
	switch m {
	case MethodV1:
		return constants.WireSignTypedDataV1
	case MethodV3:
		return constants.WireSignTypedDataV3
	case MethodV4:
		return constants.WireSignTypedDataV4
	default:
		return ""
	}
}

// Label is the short tab label ("v1", "v3", "v4").
func (m Method) Label() string {
	switch m {
	case MethodV1:
		return "v1"
	case MethodV3:
		return "v3"
	case MethodV4:
		return "v4"
	default:
		return ""
	}
}

func (m Method) String() string {
	if w := m.WireName(); w != "" {
		return w
	}
	return "unknown"
}

func (m Method) Valid() bool {
	return m.WireName() != ""
}

// ParseMethod accepts a wire name or a short label, case-insensitively.
func ParseMethod(s string) (Method, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range methods {
		if s == strings.ToLower(m.WireName()) || s == m.Label() {
			return m, nil
		}
	}
	return 0, errors.Newf("unknown signing method %q", s)
}

func (m Method) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, errors.Newf("invalid signing method %d", int(m))
	}
	return []byte(m.WireName()), nil
}

func (m *Method) UnmarshalText(b []byte) error {
	parsed, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
