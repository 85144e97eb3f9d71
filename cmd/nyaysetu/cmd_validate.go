package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/nyaysetu/internal/keywords"
)

var errValidationFailed = errors.New("validation failed")

func newValidateCmd(get func() *app, flags *rootFlags) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:       "validate rti|affidavit --file request.json",
		Short:     "Check form fields against legal and state rules",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"rti", "affidavit"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := keywords.Parse(args[0])
			if err != nil {
				return err
			}

			var fields map[string]any
			if err := readJSON(cmd.InOrStdin(), file, &fields); err != nil {
				return err
			}

			report, err := get().validator.Validate(dt, fields)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.json {
				if err := printJSON(out, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(out, report.String())
			}

			if !report.Passed() {
				return errValidationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON request file, - for stdin")
	return cmd
}
