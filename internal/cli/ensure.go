package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEnsureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure [path]",
		Short: "Verify the artifact and regenerate it if missing or broken",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			report, err := s.manager.Ensure(pathArg(args))
			if err != nil {
				return classify(err)
			}

			out := cmd.OutOrStdout()
			if flags.jsonMode {
				if err := printJSON(out, report); err != nil {
					return err
				}
				return failedChecks(report.After)
			}

			switch {
			case !report.Regenerated:
				fmt.Fprintln(out, "Artifact healthy:", report.Path)
			case report.Before == nil:
				fmt.Fprintln(out, "Artifact was missing, regenerated:", report.Path)
			default:
				fmt.Fprintf(out, "Artifact failed %d check(s), regenerated: %s\n", len(report.Before.Missing()), report.Path)
			}
			printVerification(out, report.Path, report.After)
			return failedChecks(report.After)
		},
	}
}
