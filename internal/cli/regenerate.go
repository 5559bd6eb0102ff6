package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate [path]",
		Short: "Back up and rewrite the artifact, then verify it",
		Long: "Regenerate renders the component from the embedded template. Any existing\n" +
			"file is backed up first. The default path is the configured component.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			path, err := s.manager.Regenerate(pathArg(args))
			if err != nil {
				return classify(err)
			}
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
				fmt.Fprintln(out, "Regenerated", path)
				printVerification(out, path, result)
			}
			return failedChecks(result)
		},
	}
}
