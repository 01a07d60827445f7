package agentwallet

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/quantumauth-io/typed-data-signer/internal/constants"
	"github.com/quantumauth-io/typed-data-signer/internal/ethwallet/wtypes"
	"github.com/quantumauth-io/typed-data-signer/internal/signer"
)

var ErrNoAccounts = errors.New("agent exposes no accounts")

// Wallet signs through a local quantum-auth agent.
type Wallet struct {
	httpClient *http.Client
	baseURL    string
	origin     string
	token      string
	account    string
	noRaw      bool
}

var _ wtypes.Connector = (*Wallet)(nil)

type Option func(*Wallet)

// WithToken sets the pairing token sent as X-QA-Extension.
func WithToken(token string) Option {
	return func(w *Wallet) { w.token = token }
}

func WithHTTPClient(c *http.Client) Option {
	return func(w *Wallet) {
		if c != nil {
			w.httpClient = c
		}
	}
}

// NoRaw builds a primary-only connector without the raw RPC transport.
func NoRaw() Option {
	return func(w *Wallet) { w.noRaw = true }
}

// New creates an agent connector. When account is empty the agent is asked for eth_accounts.
func New(ctx context.Context, baseURL, origin, account string, opts ...Option) (*Wallet, error) {
	w := &Wallet{
		httpClient: &http.Client{Timeout: constants.DefaultRequestTimeoutSeconds * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		origin:     origin,
		account:    strings.TrimSpace(account),
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.account == "" {
		var accounts []string
		if err := w.call(ctx, constants.WireAccounts, []any{}, &accounts); err != nil {
			return nil, errors.Wrap(err, "eth_accounts")
		}
		if len(accounts) == 0 {
			return nil, ErrNoAccounts
		}
		w.account = accounts[0]
	}
	return w, nil
}

func (w *Wallet) Account() string { return w.account }

func (w *Wallet) ChainID(ctx context.Context) (string, error) {
	var id hexutil.Big
	if err := w.call(ctx, constants.WireChainID, []any{}, &id); err != nil {
		return "", errors.Wrap(err, "eth_chainId")
	}
	return (*big.Int)(&id).String(), nil
}

func (w *Wallet) Capabilities() signer.Capabilities {
	if w.noRaw {
		return signer.Capabilities{Primary: w}
	}
	return signer.Capabilities{Primary: w, Raw: w}
}

func (w *Wallet) Close() error {
	w.httpClient.CloseIdleConnections()
	return nil
}

// SignTypedData wraps POST /wallet/signTypedDataV4.
func (w *Wallet) SignTypedData(ctx context.Context, domain, types json.RawMessage, primaryType string, message json.RawMessage) (string, error) {
	typedData, err := json.Marshal(map[string]any{
		"types":       types,
		"primaryType": primaryType,
		"domain":      domain,
		"message":     message,
	})
	if err != nil {
		return "", errors.Wrap(err, "encode typed data")
	}

	out, err := w.post(ctx, signTypedDataPath, signTypedDataReq{
		Origin:        w.origin,
		Address:       w.account,
		TypedDataJson: string(typedData),
	})
	if err != nil {
		return "", err
	}
	if _, err := wtypes.ParseSignature(out.Signature); err != nil {
		return "", err
	}
	return out.Signature, nil
}

// Request wraps POST /wallet/rpc. The reply's result must be a signature.
func (w *Wallet) Request(ctx context.Context, method string, params []any) (string, error) {
	var sig string
	if err := w.call(ctx, method, params, &sig); err != nil {
		return "", err
	}
	if _, err := wtypes.ParseSignature(sig); err != nil {
		return "", err
	}
	return sig, nil
}

func (w *Wallet) call(ctx context.Context, method string, params []any, result any) error {
	out, err := w.post(ctx, rpcPath, rpcReq{Origin: w.origin, Method: method, Params: params})
	if err != nil {
		return err
	}
	if len(out.Result) == 0 {
		return errors.Newf("%s: empty result", method)
	}
	if err := json.Unmarshal(out.Result, result); err != nil {
		return errors.Wrapf(err, "decode %s result", method)
	}
	return nil
}

func (w *Wallet) post(ctx context.Context, path string, body any) (*agentResp, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if w.token != "" {
		req.Header.Set(extensionPairHeader, w.token)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	var out agentResp
	if err := json.Unmarshal(bodyBytes, &out); err != nil {
		return nil, errors.Newf("%s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}
	switch {
	case out.Unauthorized:
		return nil, errors.New(constants.NotControlledByWallet)
	case out.Error != nil:
		return nil, out.Error
	case resp.StatusCode != http.StatusOK:
		return nil, errors.Newf("%s: status %d", path, resp.StatusCode)
	}
	return &out, nil
}
