package config

import (
	"bytes"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"

	"github.com/quantumauth-io/typed-data-signer/internal/constants"
)

const (
	EnvPrefix = "TDS"

	TransportRPC   = "rpc"
	TransportAgent = "agent"
)

type ServerSettings struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type WalletSettings struct {
	Transport  string
	RPCURL     string
	AgentURL   string
	AgentToken string
	// Origin is reported to the agent; defaults to the local server origin.
	Origin  string
	Account string
	NoRaw   bool
	Timeout time.Duration
}

type Config struct {
	Server ServerSettings
	Wallet WalletSettings
}

func SearchPaths() []string {
	home, _ := os.UserHomeDir()
	return []string{
		filepath.Join(home, ".config", constants.AppName),
		filepath.Join(home, "config"),
		".",
	}
}

func Load() (*Config, error) {
	return LoadFrom(SearchPaths()...)
}

// LoadFrom layers the embedded defaults, the first config.yaml found in paths
// and TDS_* environment variables, in that order.
func LoadFrom(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(EmbeddedConfigYAML)); err != nil {
		return nil, errors.Wrap(err, "read embedded config")
	}

	v.SetConfigName("config")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalises the settings in place.
func (c *Config) Validate() error {
	c.Server.Host = strings.Trim(strings.TrimSpace(c.Server.Host), "[]")
	if !IsSafeLocalHost(c.Server.Host) {
		return errors.Newf("Server.Host must be a loopback host, got %q", c.Server.Host)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Newf("Server.Port out of range: %d", c.Server.Port)
	}

	origins := make([]string, 0, len(c.Server.AllowedOrigins))
	seen := map[string]struct{}{}
	for _, raw := range c.Server.AllowedOrigins {
		o := NormalizeOrigin(raw)
		if o == "" {
			return errors.Newf("Server.AllowedOrigins contains invalid origin %q", raw)
		}
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		origins = append(origins, o)
	}
	c.Server.AllowedOrigins = origins

	w := &c.Wallet
	w.Transport = strings.ToLower(strings.TrimSpace(w.Transport))
	switch w.Transport {
	case TransportRPC:
		if strings.TrimSpace(w.RPCURL) == "" {
			return errors.New("Wallet.RPCURL is required for the rpc transport")
		}
	case TransportAgent:
		if strings.TrimSpace(w.AgentURL) == "" {
			return errors.New("Wallet.AgentURL is required for the agent transport")
		}
	default:
		return errors.Newf("invalid Wallet.Transport %q (allowed: rpc, agent)", w.Transport)
	}

	w.Account = strings.TrimSpace(w.Account)
	if w.Account != "" && !common.IsHexAddress(w.Account) {
		return errors.Newf("Wallet.Account invalid address: %q", w.Account)
	}
	if w.Timeout <= 0 {
		w.Timeout = constants.DefaultRequestTimeoutSeconds * time.Second
	}
	if strings.TrimSpace(w.Origin) == "" {
		w.Origin = "http://" + c.Addr()
	}
	return nil
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// NormalizeOrigin reduces an origin to lower-case scheme://host[:port], or "" when invalid.
func NormalizeOrigin(in string) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return ""
	}
	u, err := url.Parse(in)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host)
}

// IsSafeLocalHost reports whether a host or host:port names this machine.
func IsSafeLocalHost(hostport string) bool {
	host := hostport
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		host = h
	}
	host = strings.ToLower(strings.Trim(host, "[]"))
	return host == "127.0.0.1" || host == "localhost" || host == "::1"
}
