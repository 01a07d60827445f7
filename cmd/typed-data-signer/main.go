package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quantumauth-io/typed-data-signer/internal/constants"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           constants.AppName,
		Short:         "Validate, format and sign EIP-712 typed data through a connected wallet",
		Version:       Version + " (" + Commit + ", " + BuildDate + ")",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(
		newServeCmd(),
		newSignCmd(),
		newTemplatesCmd(),
		newFormatCmd(),
		newValidateCmd(),
	)
	return cmd
}

// useColor reports whether w is an interactive terminal.
func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
