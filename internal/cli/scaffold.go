package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

func newScaffoldCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "scaffold <Name>",
		Short: "Print a component template",
		Long: "Scaffold prints a TSX component skeleton to stdout. Nothing is written to\n" +
			"disk. Name must start with an uppercase letter.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			content, err := s.manager.Scaffold(args[0], kind)
			if err != nil {
				return classify(err)
			}
			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]string{"name": args[0], "type": kind, "content": content})
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "type", types.KindFunctional, "template kind: functional or page")
	return cmd
}
