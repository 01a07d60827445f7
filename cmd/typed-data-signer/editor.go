package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/quantumauth-io/typed-data-signer/internal/constants"
	"github.com/quantumauth-io/typed-data-signer/internal/templates"
	"github.com/quantumauth-io/typed-data-signer/internal/typeddata"
)

func newFormatCmd() *cobra.Command {
	var (
		file  string
		write bool
	)

	cmd := &cobra.Command{
		Use:   "format",
		Short: "Pretty-print a JSON file with two-space indentation",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := templates.ReadFile(file)
			if err != nil {
				return err
			}
			pretty, err := typeddata.Format(text)
			if err != nil {
				return errors.Wrapf(err, "format %s", file)
			}
			if write {
				return os.WriteFile(file, []byte(pretty+"\n"), constants.FilePerm)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), pretty)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Rewrite the file in place")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that a file is signable typed data",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := templates.ReadFile(file)
			if err != nil {
				return err
			}
			req, err := typeddata.Parse(text)
			if err != nil {
				return errors.Newf("%s error: %s", typeddata.KindOf(err), err.Error())
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "valid: primaryType %s\n", req.PrimaryType)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
