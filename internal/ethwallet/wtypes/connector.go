package wtypes

import (
	"context"

	"github.com/quantumauth-io/typed-data-signer/internal/signer"
)

// Connector is a live link to a wallet: the account it signs for plus the
// signing capabilities it offers.
type Connector interface {
	Account() string
	ChainID(ctx context.Context) (string, error)
	Capabilities() signer.Capabilities
	Close() error
}
