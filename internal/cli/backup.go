package cli

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup <file>",
		Short: "Snapshot a file into the backup directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Command-line paths are relative to the working directory.
			target, err := filepath.Abs(args[0])
			if err != nil {
				return sysError(fmt.Errorf("resolve %s: %w", args[0], err))
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			rec, err := s.manager.BackupOnly(target)
			if err != nil {
				return classify(err)
			}
			if rec == nil {
				return userError(fmt.Errorf("%w: %s", types.ErrMissingArtifact, target))
			}

			out := cmd.OutOrStdout()
			if flags.jsonMode {
				return printJSON(out, rec)
			}
			fmt.Fprintf(out, "Backed up %s\n  -> %s (%s)\n", target, rec.BackupPath, humanize.Bytes(uint64(rec.Size)))
			return nil
		},
	}
}

func newBackupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backups",
		Short: "List backups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			records, err := s.manager.Backups()
			if err != nil {
				return classify(err)
			}

			out := cmd.OutOrStdout()
			if flags.jsonMode {
				if records == nil {
					records = []types.BackupRecord{}
				}
				return printJSON(out, records)
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No backups in", s.manager.Config().BackupPath())
				return nil
			}
			for _, r := range records {
				fmt.Fprintf(out, "%s  %s  %8s  %s\n",
					r.CapturedAt.Format("02/01/2006 15:04:05"),
					humanize.Time(r.CapturedAt),
					humanize.Bytes(uint64(r.Size)),
					filepath.Base(r.BackupPath))
			}
			return nil
		},
	}
}
