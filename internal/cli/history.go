package cli

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scribe/internal/catalog"
	"github.com/mesh-intelligence/scribe/pkg/types"
)

func newHistoryCmd() *cobra.Command {
	var (
		kind  string
		path  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded backup and regenerate events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind != "" && !types.ValidEventKind(kind) {
				return userError(fmt.Errorf("%w: %q", types.ErrUnknownEventKind, kind))
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()
			if s.catalog == nil {
				return userError(errors.New("catalog is disabled in config.yaml"))
			}

			filter := catalog.Filter{Kind: kind, Limit: limit}
			if path != "" {
				filter.Path = s.manager.Resolve(path)
			}
			events, err := s.catalog.Events(filter)
			if err != nil {
				return classify(err)
			}

			out := cmd.OutOrStdout()
			if flags.jsonMode {
				if events == nil {
					events = []types.Event{}
				}
				return printJSON(out, events)
			}
			if len(events) == 0 {
				fmt.Fprintln(out, "No events recorded")
				return nil
			}
			for _, e := range events {
				fmt.Fprintf(out, "%s  %-10s  %-14s  %s\n",
					e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Kind, humanize.Time(e.CreatedAt), e.Path)
				if e.Detail != "" {
					fmt.Fprintln(out, "    ", e.Detail)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "filter by event kind: backup or regenerate")
	cmd.Flags().StringVar(&path, "path", "", "filter by artifact path")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of events (0 for all)")
	return cmd
}
