package session

import (
	"context"
	"net/http"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/typed-data-signer/cmd/typed-data-signer/config"
	"github.com/quantumauth-io/typed-data-signer/internal/ethwallet/agentwallet"
	"github.com/quantumauth-io/typed-data-signer/internal/ethwallet/rpcwallet"
	"github.com/quantumauth-io/typed-data-signer/internal/ethwallet/wtypes"
	"github.com/quantumauth-io/typed-data-signer/internal/signer"
)

// Dialer opens a connector for the given wallet settings and account override.
type Dialer func(ctx context.Context, cfg config.WalletSettings, account string) (wtypes.Connector, error)

// Dial picks the connector implementation from cfg.Transport.
func Dial(ctx context.Context, cfg config.WalletSettings, account string) (wtypes.Connector, error) {
	if account == "" {
		account = cfg.Account
	}
	switch cfg.Transport {
	case config.TransportRPC:
		w, err := rpcwallet.Dial(ctx, cfg.RPCURL, account)
		if err != nil {
			return nil, err
		}
		return w, nil
	case config.TransportAgent:
		opts := []agentwallet.Option{agentwallet.WithToken(cfg.AgentToken)}
		if cfg.Timeout > 0 {
			opts = append(opts, agentwallet.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
		}
		if cfg.NoRaw {
			opts = append(opts, agentwallet.NoRaw())
		}
		w, err := agentwallet.New(ctx, cfg.AgentURL, cfg.Origin, account, opts...)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		return nil, errors.Newf("unknown wallet transport %q", cfg.Transport)
	}
}

// State is a snapshot of the wallet connection.
type State struct {
	Connected bool   `json:"connected"`
	Account   string `json:"account,omitempty"`
	ChainID   string `json:"chainId,omitempty"`
	Transport string `json:"transport,omitempty"`
}

// Session holds the currently connected wallet, if any.
type Session struct {
	mu      sync.RWMutex
	cfg     config.WalletSettings
	dial    Dialer
	conn    wtypes.Connector
	chainID string
}

func New(cfg config.WalletSettings, dial Dialer) *Session {
	if dial == nil {
		dial = Dial
	}
	return &Session{cfg: cfg, dial: dial}
}

// Connect replaces any existing connection. account overrides the configured one.
func (s *Session) Connect(ctx context.Context, account string) (State, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	conn, err := s.dial(ctx, s.cfg, account)
	if err != nil {
		return State{}, errors.Wrap(err, "connect wallet")
	}

	// chain id is informational only
	chainID, err := conn.ChainID(ctx)
	if err != nil {
		log.Warn("chain id unavailable", "error", err)
		chainID = ""
	}

	s.mu.Lock()
	old := s.conn
	s.conn = conn
	s.chainID = chainID
	s.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	log.Info("wallet connected", "account", conn.Account(), "transport", s.cfg.Transport, "chainId", chainID)
	return s.State(), nil
}

func (s *Session) Disconnect() {
	s.mu.Lock()
	old := s.conn
	s.conn = nil
	s.chainID = ""
	s.mu.Unlock()

	if old != nil {
		_ = old.Close()
		log.Info("wallet disconnected", "account", old.Account())
	}
}

// Current returns the connected account and its capabilities. Both are zero when disconnected.
func (s *Session) Current() (string, signer.Capabilities) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.conn == nil {
		return "", signer.Capabilities{}
	}
	return s.conn.Account(), s.conn.Capabilities()
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.conn == nil {
		return State{}
	}
	return State{
		Connected: true,
		Account:   s.conn.Account(),
		ChainID:   s.chainID,
		Transport: s.cfg.Transport,
	}
}
