package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantumauth-io/typed-data-signer/internal/templates"
	"github.com/quantumauth-io/typed-data-signer/internal/typeddata"
)

func newTemplatesCmd() *cobra.Command {
	var methodFlag string

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the built-in typed-data templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			list := templates.All()
			if methodFlag != "" {
				m, err := typeddata.ParseMethod(methodFlag)
				if err != nil {
					return err
				}
				list = templates.For(m)
			}
			w := cmd.OutOrStdout()
			for _, t := range list {
				if _, err := fmt.Fprintf(w, "%s\t%s\n", t.Method.Label(), t.Label); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&methodFlag, "method", "m", "", "Only list templates for this method")
	cmd.AddCommand(newTemplatesExportCmd())
	return cmd
}

func newTemplatesExportCmd() *cobra.Command {
	var (
		methodFlag string
		label      string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a template to a .json file, or to stdout without --out",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := typeddata.ParseMethod(methodFlag)
			if err != nil {
				return err
			}
			t, err := templates.Find(m, label)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out == "" {
				_, err = fmt.Fprintln(w, t.JSON)
				return err
			}
			path, err := templates.WriteFile(out, t.JSON)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, path)
			return err
		},
	}

	cmd.Flags().StringVarP(&methodFlag, "method", "m", typeddata.DefaultMethod.Label(), "Signing method")
	cmd.Flags().StringVarP(&label, "label", "l", "", "Template label (defaults to the method's first template)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file; .json is appended when missing")
	return cmd
}
