package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [path]",
		Short: "Check the artifact for its required markers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			path := s.manager.Resolve(pathArg(args))
			result, err := s.manager.CheckIntegrity(path)
			if err != nil {
				return classify(err)
			}

			out := cmd.OutOrStdout()
			if flags.jsonMode {
				if err := printJSON(out, map[string]any{"path": path, "verification": result}); err != nil {
					return err
				}
			} else {
				printVerification(out, path, result)
			}
			return failedChecks(result)
		},
	}
}

// failedChecks returns a user error when any required marker is missing.
func failedChecks(result *types.VerificationResult) error {
	if result.Passed {
		return nil
	}
	return userError(fmt.Errorf("verification failed: %d of %d checks missing", len(result.Missing()), len(result.Outcomes)))
}

func printVerification(w io.Writer, path string, result *types.VerificationResult) {
	fmt.Fprintln(w, "Verifying", path)
	printOutcomes(w, result.Outcomes)
	fmt.Fprintf(w, "Lines: %d  Size: %s\n", result.Stats.Lines, humanize.Bytes(uint64(result.Stats.Bytes)))
	if result.Passed {
		fmt.Fprintln(w, "Result: PASS")
	} else {
		fmt.Fprintln(w, "Result: FAIL")
	}
}

func printOutcomes(w io.Writer, outcomes []types.CheckOutcome) {
	for _, o := range outcomes {
		mark := "ok"
		if !o.Present {
			mark = "MISSING"
		}
		fmt.Fprintf(w, "  [%-7s] %s\n", mark, o.Label)
	}
}
