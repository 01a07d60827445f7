package wtypes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sigHex(v string) string {
	return "0x" + strings.Repeat("ab", 64) + v
}

func TestParseSignature(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"v0", sigHex("00"), false},
		{"v1", sigHex("01"), false},
		{"v27", sigHex("1b"), false},
		{"v28", sigHex("1c"), false},
		{"bad v", sigHex("05"), true},
		{"short", "0x" + strings.Repeat("ab", 64), true},
		{"no prefix", strings.Repeat("ab", 65), true},
		{"not hex", "0xzz", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseSignature(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "malformed signature")
				return
			}
			require.NoError(t, err)
			assert.Len(t, b, SignatureLength)
		})
	}
}

func TestSigToV27(t *testing.T) {
	b, err := ParseSignature(sigHex("01"))
	require.NoError(t, err)

	out, err := SigToV27(b)
	require.NoError(t, err)
	assert.Equal(t, byte(28), out[64])
	assert.Equal(t, byte(1), b[64], "input must not be modified")

	same, err := SigToV27(out)
	require.NoError(t, err)
	assert.Equal(t, out, same)

	_, err = SigToV27(b[:10])
	assert.Error(t, err)

	b[64] = 9
	_, err = SigToV27(b)
	assert.Error(t, err)
}
