package rpcwallet

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/quantumauth-io/typed-data-signer/internal/constants"
	"github.com/quantumauth-io/typed-data-signer/internal/ethwallet/wtypes"
	"github.com/quantumauth-io/typed-data-signer/internal/signer"
	"github.com/quantumauth-io/typed-data-signer/internal/typeddata"
)

var ErrNoAccounts = errors.New("wallet exposes no accounts")

// Wallet signs through a JSON-RPC endpoint (a node, a local signer or a
// wallet bridge) that understands the eth_signTypedData family.
type Wallet struct {
	client  *rpc.Client
	account string
}

var _ wtypes.Connector = (*Wallet)(nil)

// Dial connects to url. When account is empty the first of eth_accounts is used.
func Dial(ctx context.Context, url, account string) (*Wallet, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", url)
	}
	w := &Wallet{client: client, account: strings.TrimSpace(account)}

	if w.account == "" {
		accounts, err := w.Accounts(ctx)
		if err != nil {
			client.Close()
			return nil, err
		}
		if len(accounts) == 0 {
			client.Close()
			return nil, ErrNoAccounts
		}
		w.account = accounts[0]
	}
	return w, nil
}

func (w *Wallet) Account() string { return w.account }

func (w *Wallet) Accounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := w.client.CallContext(ctx, &accounts, constants.WireAccounts); err != nil {
		return nil, errors.Wrap(err, "eth_accounts")
	}
	return accounts, nil
}

// ChainID returns the chain id in decimal.
func (w *Wallet) ChainID(ctx context.Context) (string, error) {
	var id hexutil.Big
	if err := w.client.CallContext(ctx, &id, constants.WireChainID); err != nil {
		return "", errors.Wrap(err, "eth_chainId")
	}
	return id.ToInt().String(), nil
}

func (w *Wallet) Capabilities() signer.Capabilities {
	return signer.Capabilities{Primary: w, Raw: w}
}

func (w *Wallet) Close() error {
	w.client.Close()
	return nil
}

// SignTypedData is the strict high-level path: addresses must be well formed
// and correctly checksummed, and the payload must decode as EIP-712 typed data.
func (w *Wallet) SignTypedData(ctx context.Context, domain, types json.RawMessage, primaryType string, message json.RawMessage) (string, error) {
	from, err := checkAddress(w.account)
	if err != nil {
		return "", err
	}
	if err := checkVerifyingContract(domain); err != nil {
		return "", err
	}

	req := typeddata.Request{Domain: domain, Types: types, PrimaryType: primaryType, Message: message}
	payload, err := json.Marshal(&req)
	if err != nil {
		return "", errors.Wrap(err, "encode typed data")
	}
	// Decoded for validation only; the wallet receives the caller's members.
	var td apitypes.TypedData
	if err := json.Unmarshal(payload, &td); err != nil {
		return "", errors.Wrap(err, "invalid typed data")
	}

	var sig string
	if err := w.client.CallContext(ctx, &sig, constants.WireSignTypedDataV4, from.Hex(), json.RawMessage(payload)); err != nil {
		return "", err
	}
	if _, err := wtypes.ParseSignature(sig); err != nil {
		return "", err
	}
	return sig, nil
}

// Request forwards a raw JSON-RPC call. Params are sent untouched.
func (w *Wallet) Request(ctx context.Context, method string, params []any) (string, error) {
	var sig string
	if err := w.client.CallContext(ctx, &sig, method, params...); err != nil {
		return "", err
	}
	if _, err := wtypes.ParseSignature(sig); err != nil {
		return "", err
	}
	return sig, nil
}

// checkAddress accepts all-lower and all-upper hex; mixed case must be a valid EIP-55 checksum.
func checkAddress(s string) (common.Address, error) {
	ma, err := common.NewMixedcaseAddressFromString(s)
	if err != nil {
		return common.Address{}, errors.Newf(constants.InvalidAddressFormatStr, s)
	}
	body := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	mixed := body != strings.ToLower(body) && body != strings.ToUpper(body)
	if mixed && !ma.ValidChecksum() {
		return common.Address{}, errors.Newf(constants.InvalidAddressFormatStr, s)
	}
	return ma.Address(), nil
}

func checkVerifyingContract(domain json.RawMessage) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(domain, &fields); err != nil {
		return errors.Wrap(err, "invalid domain")
	}
	raw, ok := fields["verifyingContract"]
	if !ok {
		return nil
	}
	var addr string
	if err := json.Unmarshal(raw, &addr); err != nil {
		return errors.Newf(constants.InvalidAddressFormatStr, string(raw))
	}
	_, err := checkAddress(addr)
	return err
}
