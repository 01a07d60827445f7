package wtypes

import (
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/quantumauth-io/typed-data-signer/internal/constants"
)

const SignatureLength = 65

// ParseSignature decodes a 0x-prefixed 65-byte r||s||v signature as returned
// by a wallet. V may be in either the 0/1 or the 27/28 convention.
func ParseSignature(sig string) ([]byte, error) {
	b, err := hexutil.Decode(sig)
	if err != nil {
		return nil, errors.Wrap(err, constants.MalformedSignatureText)
	}
	if len(b) != SignatureLength {
		return nil, errors.Newf("%s: must be %d bytes, got %d", constants.MalformedSignatureText, SignatureLength, len(b))
	}
	switch b[64] {
	case 0, 1, 27, 28:
	default:
		return nil, errors.Newf("%s: unexpected v value %d", constants.MalformedSignatureText, b[64])
	}
	return b, nil
}

// SigToV27 converts V 0/1 -> 27/28 (some APIs expect this).
// If V is already 27/28, it leaves it unchanged.
func SigToV27(sig65 []byte) ([]byte, error) {
	if len(sig65) != SignatureLength {
		return nil, errors.Newf("signature must be %d bytes, got %d", SignatureLength, len(sig65))
	}
	out := make([]byte, SignatureLength)
	copy(out, sig65)

	switch out[64] {
	case 0, 1:
		out[64] += 27
	case 27, 28:
		// ok
	default:
		return nil, errors.Newf("unexpected v value %d", out[64])
	}
	return out, nil
}
