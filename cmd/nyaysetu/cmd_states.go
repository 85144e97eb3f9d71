package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/nyaysetu/internal/jurisdiction"
)

func newStatesCmd(get func() *app, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "states [state]",
		Short: "List profiled states or show the rules for one state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := get().registry
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				summaries := reg.Summaries()
				if flags.json {
					return printJSON(out, summaries)
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "STATE\tFEE\tBPL WAIVER\tLANGUAGES")
				for _, s := range summaries {
					fmt.Fprintf(tw, "%s\tRs. %d\t%t\t%s\n", s.State, s.Fee, s.BPLExemption, strings.Join(s.Languages, ", "))
				}
				return tw.Flush()
			}

			name, ok := reg.Canonical(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", jurisdiction.ErrUnknownState, args[0])
			}
			_, profiled := reg.Profile(name)
			resp := jurisdiction.StateResponse{
				State:    name,
				Profiled: profiled,
				Profile:  reg.Resolve(name),
			}
			if flags.json {
				return printJSON(out, resp)
			}

			p := resp.Profile
			fmt.Fprintf(out, "%s\n", name)
			if !profiled {
				fmt.Fprintf(out, "(no profile; showing %s rules)\n", p.State)
			}
			fmt.Fprintf(out, "RTI fee:            Rs. %d via %s\n", p.RTI.Fee, strings.Join(p.RTI.PaymentModes, ", "))
			fmt.Fprintf(out, "BPL exemption:      %t\n", p.RTI.BPLExemption)
			fmt.Fprintf(out, "PIO:                %s\n", p.RTI.PIODesignation)
			fmt.Fprintf(out, "Appellate:          %s\n", p.RTI.AppellateDesignation)
			fmt.Fprintf(out, "Stamp paper:        Rs. %d (mandatory: %t)\n", p.Affidavit.StampPaperValue, p.Affidavit.StampMandatory)
			fmt.Fprintf(out, "Guardian below age: %d\n", p.Affidavit.GuardianAgeLimit)
			fmt.Fprintf(out, "Verification:       %s\n", p.Affidavit.VerificationFormat)
			return nil
		},
	}
}
