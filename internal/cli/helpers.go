package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mesh-intelligence/scribe/internal/catalog"
	"github.com/mesh-intelligence/scribe/internal/manager"
	"github.com/mesh-intelligence/scribe/internal/paths"
	"github.com/mesh-intelligence/scribe/pkg/types"
)

// session bundles the manager and, when enabled, the attached catalog. The
// caller must defer Close.
type session struct {
	manager *manager.Manager
	catalog *catalog.Backend
}

// openSession builds a manager from the loaded configuration. With
// catalog enabled, the event catalog is attached and wired as the journal.
func openSession() (*session, error) {
	s := &session{}
	opts := []manager.Option{manager.WithLogger(logger)}

	if settings.GetBool(cfgKeyCatalog) {
		dataDir := paths.ResolveDataDir(settings.GetString(cfgKeyDataDir), rootDir)
		backend := catalog.NewBackend()
		if err := backend.Attach(dataDir); err != nil {
			return nil, sysError(fmt.Errorf("attach catalog: %w", err))
		}
		s.catalog = backend
		opts = append(opts, manager.WithJournal(backend))
	}

	m, err := manager.New(projectConfig(rootDir, settings), opts...)
	if err != nil {
		s.Close()
		return nil, classify(err)
	}
	s.manager = m
	return s, nil
}

func (s *session) Close() error {
	if s.catalog == nil {
		return nil
	}
	return s.catalog.Detach()
}

// classify maps domain errors to exit codes.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	switch {
	case errors.Is(err, types.ErrRootEmpty),
		errors.Is(err, types.ErrComponentPathEmpty),
		errors.Is(err, types.ErrComponentPathAbsolute),
		errors.Is(err, types.ErrMissingArtifact),
		errors.Is(err, types.ErrInvalidComponentName),
		errors.Is(err, types.ErrInvalidTag),
		errors.Is(err, types.ErrUnknownEventKind):
		return userError(err)
	default:
		return sysError(err)
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal output: %w", err))
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
