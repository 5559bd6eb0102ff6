package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scribe/internal/paths"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the config, backup, and template directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := ensureDefaultConfigFile(configDir)
			if err != nil {
				return sysError(fmt.Errorf("init: %w", err))
			}
			// Re-read so a freshly written file is the source of settings.
			if created {
				if settings, err = loadConfig(configDir); err != nil {
					return userError(err)
				}
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			cfg := s.manager.Config()
			out := cmd.OutOrStdout()
			if flags.jsonMode {
				report := map[string]any{
					"root":      cfg.Root,
					"config":    configDir,
					"backups":   cfg.BackupPath(),
					"templates": cfg.TemplatePath(),
					"artifact":  cfg.ArtifactPath(),
				}
				if s.catalog != nil {
					report["data"] = s.catalog.DataDir()
				}
				return printJSON(out, report)
			}

			fmt.Fprintln(out, "Scribe initialized")
			fmt.Fprintln(out, "  root:     ", cfg.Root)
			fmt.Fprintln(out, "  config:   ", configDir)
			fmt.Fprintln(out, "  backups:  ", cfg.BackupPath())
			fmt.Fprintln(out, "  templates:", cfg.TemplatePath())
			if s.catalog != nil {
				fmt.Fprintln(out, "  data:     ", paths.ResolveDataDir(settings.GetString(cfgKeyDataDir), rootDir))
			}
			return nil
		},
	}
}
