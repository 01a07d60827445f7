package signer

import "strings"

type FailureClass int

const (
	Terminal FailureClass = iota
	Retryable
)

func (c FailureClass) String() string {
	if c == Retryable {
		return "retryable"
	}
	return "terminal"
}

// Classifier decides whether a primary signing error may be routed around
// through raw provider RPC.
type Classifier func(err error) FailureClass

var addressMismatchMarkers = []string{"address", "Address", "Invalid"}

// AddressMismatch treats any error whose text mentions an address, or starts
// an "Invalid ..." complaint, as a checksum/format disagreement between the
// wallet's typed-data API and its RPC surface. Case-sensitive.
//
// It over-triggers: an unrelated "Invalid ..." error also enters the fallback.
func AddressMismatch(err error) FailureClass {
	if err == nil {
		return Terminal
	}
	msg := err.Error()
	for _, m := range addressMismatchMarkers {
		if strings.Contains(msg, m) {
			return Retryable
		}
	}
	return Terminal
}
