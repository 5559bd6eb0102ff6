package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [path]",
		Short: "Show content statistics and style checks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			path := s.manager.Resolve(pathArg(args))
			result, err := s.manager.Stats(path)
			if err != nil {
				return classify(err)
			}

			out := cmd.OutOrStdout()
			if flags.jsonMode {
				return printJSON(out, map[string]any{"path": path, "stats": result.Stats, "style": result.Outcomes})
			}

			st := result.Stats
			fmt.Fprintln(out, "Statistics for", path)
			fmt.Fprintf(out, "  lines:      %s\n", humanize.Comma(int64(st.Lines)))
			fmt.Fprintf(out, "  size:       %s (%s bytes)\n", humanize.Bytes(uint64(st.Bytes)), humanize.Comma(int64(st.Bytes)))
			fmt.Fprintf(out, "  characters: %s\n", humanize.Comma(int64(st.Chars)))
			for _, tc := range st.Tokens {
				fmt.Fprintf(out, "  %-12q %d\n", tc.Token, tc.Count)
			}
			fmt.Fprintln(out, "Style")
			printOutcomes(out, result.Outcomes)
			return nil
		},
	}
}
