// Package watch re-verifies an artifact whenever its file changes on disk.
//
// The parent directory is watched rather than the file itself: atomic
// rewrites replace the inode, which would silently end a file watch.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/scribe/internal/manager"
	"github.com/mesh-intelligence/scribe/pkg/types"
)

// DefaultDebounce collapses bursts of editor saves into one check.
const DefaultDebounce = 300 * time.Millisecond

// Checker is the subset of the manager the watcher drives.
type Checker interface {
	CheckIntegrity(path string) (*types.VerificationResult, error)
	Ensure(path string) (*manager.EnsureReport, error)
}

// Result is reported after every check.
type Result struct {
	Path         string
	Trigger      string
	Verification *types.VerificationResult
	Healed       bool
	Missing      bool
	Err          error
}

// Watcher watches one artifact path.
type Watcher struct {
	target   string
	checker  Checker
	heal     bool
	debounce time.Duration
	logger   *zap.Logger
	report   func(Result)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithHeal regenerates the artifact when it goes missing or fails checks.
func WithHeal(heal bool) Option {
	return func(w *Watcher) { w.heal = heal }
}

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) { w.logger = logger }
}

// WithReporter receives each check result. Calls happen on the Run goroutine.
func WithReporter(fn func(Result)) Option {
	return func(w *Watcher) { w.report = fn }
}

// New returns a watcher for target, which must be an absolute path.
func New(target string, checker Checker, opts ...Option) *Watcher {
	w := &Watcher{
		target:   filepath.Clean(target),
		checker:  checker,
		debounce: DefaultDebounce,
		logger:   zap.NewNop(),
		report:   func(Result) {},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run checks the artifact once, then again after every settled change, until
// ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Info("watching artifact", zap.String("path", w.target), zap.Bool("heal", w.heal))

	w.check("start")

	tick := w.debounce / 3
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var (
		pending    bool
		lastChange time.Time
		trigger    string
	)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped", zap.String("path", w.target))
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			op := opName(event.Op)
			if op == "" || filepath.Clean(event.Name) != w.target {
				continue
			}
			w.logger.Debug("artifact changed", zap.String("op", op))
			pending, lastChange, trigger = true, time.Now(), op

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", zap.Error(err))

		case <-ticker.C:
			if pending && time.Since(lastChange) >= w.debounce {
				pending = false
				w.check(trigger)
			}
		}
	}
}

func (w *Watcher) check(trigger string) {
	res := Result{Path: w.target, Trigger: trigger}

	if w.heal {
		report, err := w.checker.Ensure(w.target)
		if err != nil {
			res.Err = err
		} else {
			res.Verification = report.After
			res.Healed = report.Regenerated
		}
	} else {
		result, err := w.checker.CheckIntegrity(w.target)
		switch {
		case errors.Is(err, types.ErrMissingArtifact):
			res.Missing = true
		case err != nil:
			res.Err = err
		default:
			res.Verification = result
		}
	}

	if res.Err != nil {
		w.logger.Error("check failed", zap.String("path", w.target), zap.Error(res.Err))
	}
	w.report(res)
}

func opName(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "modify"
	case op.Has(fsnotify.Remove):
		return "delete"
	case op.Has(fsnotify.Rename):
		return "rename"
	default:
		return ""
	}
}
