package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the scribe release version.
const Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/scribe"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the scribe version",
		Args:  cobra.NoArgs,
		// Skip config loading.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]string{"version": Version, "module": modulePath})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scribe v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
