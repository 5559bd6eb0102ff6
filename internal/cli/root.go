// Package cli implements the scribe command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/scribe/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	root      string
	configDir string
	jsonMode  bool
	verbose   bool
}

var flags rootFlags

// Per-invocation state set by PersistentPreRunE.
var (
	logger    *zap.Logger
	settings  *viper.Viper
	rootDir   string
	configDir string
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

func userError(err error) error { return &ExitError{Code: exitUserError, Err: err} }

func sysError(err error) error { return &ExitError{Code: exitSysError, Err: err} }

// NewRootCmd creates the top-level "scribe" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "scribe",
		Short: "Regenerate, back up, and verify a generated UI component",
		Long: "Scribe keeps a generated TSX component healthy: it renders the component from\n" +
			"embedded templates, snapshots whatever it overwrites, and checks the result\n" +
			"against a checklist of required markers.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	root.PersistentFlags().StringVar(&flags.root, "root", "", "project root (default: $SCRIBE_ROOT or the working directory)")
	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: <root>/.scribe)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newRegenerateCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newBackupCmd())
	root.AddCommand(newBackupsCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newEnsureCmd())
	root.AddCommand(newScaffoldCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newWatchCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns its exit code. The logger is
// synced on every path, including failed commands.
func run(args []string, stdout, stderr io.Writer) int {
	logger = nil
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "scribe:", err)

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	// Flag and argument parsing errors from cobra.
	return exitUserError
}

// setup resolves the root and config directories, loads config.yaml, and
// builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	rootDir, err = paths.ResolveRoot(flags.root)
	if err != nil {
		return sysError(fmt.Errorf("resolve root: %w", err))
	}
	configDir, err = paths.ResolveConfigDir(flags.configDir, rootDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	settings, err = loadConfig(configDir)
	if err != nil {
		return userError(err)
	}
	logger, err = buildLogger(settings.GetString(cfgKeyLogLevel), flags.verbose)
	if err != nil {
		return userError(err)
	}
	return nil
}

// buildLogger can be overridden in tests.
var buildLogger = newLogger

// newLogger builds a production zap logger writing to stderr. --verbose
// forces debug level.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", level, err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	return config.Build()
}
