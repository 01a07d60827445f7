package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/quantumauth-io/quantum-go-utils/log"
	"github.com/spf13/cobra"

	"github.com/quantumauth-io/typed-data-signer/cmd/typed-data-signer/config"
	"github.com/quantumauth-io/typed-data-signer/internal/ethwallet/wtypes"
	"github.com/quantumauth-io/typed-data-signer/internal/eventlog"
	"github.com/quantumauth-io/typed-data-signer/internal/session"
	"github.com/quantumauth-io/typed-data-signer/internal/signer"
	"github.com/quantumauth-io/typed-data-signer/internal/templates"
	"github.com/quantumauth-io/typed-data-signer/internal/typeddata"
)

func newSignCmd() *cobra.Command {
	var (
		methodFlag string
		file       string
		account    string
		v27        bool
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a typed-data file once with the configured wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := typeddata.ParseMethod(methodFlag)
			if err != nil {
				return err
			}
			text, err := templates.ReadFile(file)
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			sess := session.New(cfg.Wallet, nil)
			defer sess.Disconnect()
			if _, err := sess.Connect(cmd.Context(), account); err != nil {
				log.Warn("wallet connect failed", "error", err)
			}

			service := signer.NewService(eventlog.New())
			acct, caps := sess.Current()
			out := service.Sign(cmd.Context(), method, text, acct, caps)

			w := cmd.OutOrStdout()
			if err := eventlog.Render(w, service.Events().Entries(), useColor(w)); err != nil {
				return err
			}
			if !out.OK() {
				return errors.New(out.Failure.Message)
			}
			sig := out.Signature
			if v27 {
				if sig, err = normalizeV(sig); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(w, sig)
			return err
		},
	}

	cmd.Flags().StringVarP(&methodFlag, "method", "m", typeddata.DefaultMethod.Label(), "Signing method: v1, v3, v4 or a wire name")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Typed-data JSON file")
	cmd.Flags().StringVar(&account, "account", "", "Account override (defaults to Wallet.Account or the wallet's first account)")
	cmd.Flags().BoolVar(&v27, "v27", false, "Print the signature with V normalised to 27/28")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func normalizeV(sig string) (string, error) {
	b, err := wtypes.ParseSignature(sig)
	if err != nil {
		return "", err
	}
	if b, err = wtypes.SigToV27(b); err != nil {
		return "", err
	}
	return hexutil.Encode(b), nil
}
