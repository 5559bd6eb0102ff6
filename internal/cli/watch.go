package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scribe/internal/watch"
)

func newWatchCmd() *cobra.Command {
	var (
		heal     bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-verify the artifact whenever it changes",
		Long: "Watch checks the artifact on start and after every change until interrupted.\n" +
			"With --heal, a missing or failing artifact is regenerated.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			w := watch.New(s.manager.Resolve(pathArg(args)), s.manager,
				watch.WithHeal(heal),
				watch.WithDebounce(debounce),
				watch.WithLogger(logger),
				watch.WithReporter(func(r watch.Result) { printWatchResult(out, r) }))
			if err := w.Run(ctx); err != nil {
				return sysError(err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&heal, "heal", false, "regenerate the artifact when it is missing or fails checks")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before re-checking")
	return cmd
}

func printWatchResult(w io.Writer, r watch.Result) {
	stamp := time.Now().Format("15:04:05")
	if flags.jsonMode {
		entry := map[string]any{"time": stamp, "path": r.Path, "trigger": r.Trigger, "healed": r.Healed, "missing": r.Missing}
		if r.Verification != nil {
			entry["passed"] = r.Verification.Passed
			entry["failed_checks"] = r.Verification.Missing()
		}
		if r.Err != nil {
			entry["error"] = r.Err.Error()
		}
		_ = printJSON(w, entry)
		return
	}

	switch {
	case r.Err != nil:
		fmt.Fprintf(w, "%s  %-7s  error: %v\n", stamp, r.Trigger, r.Err)
	case r.Missing:
		fmt.Fprintf(w, "%s  %-7s  missing: %s\n", stamp, r.Trigger, r.Path)
	case r.Verification.Passed && r.Healed:
		fmt.Fprintf(w, "%s  %-7s  regenerated, PASS\n", stamp, r.Trigger)
	case r.Verification.Passed:
		fmt.Fprintf(w, "%s  %-7s  PASS\n", stamp, r.Trigger)
	default:
		fmt.Fprintf(w, "%s  %-7s  FAIL missing %v\n", stamp, r.Trigger, r.Verification.Missing())
	}
}

