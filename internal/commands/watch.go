package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/okra-platform/smithy-codegen/internal/config"
	"github.com/okra-platform/smithy-codegen/internal/watch"
)

// SignalNotifier abstracts os/signal for testing
type SignalNotifier interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

type defaultSignalNotifier struct{}

func (n *defaultSignalNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) {
	signal.Notify(c, sig...)
}

func (n *defaultSignalNotifier) Stop(c chan<- os.Signal) {
	signal.Stop(c)
}

// Watch regenerates on every change to a watched model file until interrupted
func (c *Controller) Watch(ctx context.Context) error {
	return c.watch(ctx, &defaultSignalNotifier{})
}

func (c *Controller) watch(ctx context.Context, signals SignalNotifier) error {
	cfg, projectDir, err := c.loadProject()
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out(), "👀 Watching %s for changes (%s → %s)\n",
		projectDir, cfg.Model, config.ResolvePath(projectDir, cfg.Output))

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signals.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signals.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(c.out(), "\n👋 Stopping watcher...")
			cancel()
		case <-ctx.Done():
		}
	}()

	roots, patterns := watchTargets(cfg, projectDir)
	gen := NewGenerateCommand(cfg, projectDir, c.logger())
	session := watch.NewSession(roots[0], patterns, cfg.Watch.Exclude, func(ctx context.Context) error {
		_, err := gen.Run(ctx)
		return err
	}, c.logger())
	for _, root := range roots[1:] {
		session.AddRoot(root)
	}

	if err := session.Run(ctx); err != nil {
		return fmt.Errorf("watch error: %w", err)
	}
	return nil
}

// watchTargets returns the directories to watch, the project first, and the
// file patterns. The model file itself always matches, and its directory is
// watched when it lies outside the project.
func watchTargets(cfg *config.Config, projectDir string) ([]string, []string) {
	model := config.ResolvePath(projectDir, cfg.Model)
	roots := []string{projectDir}
	if rel, err := filepath.Rel(projectDir, filepath.Dir(model)); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		roots = append(roots, filepath.Dir(model))
	}

	patterns := cfg.Watch.Patterns
	if base := filepath.Base(model); !slices.Contains(patterns, base) {
		patterns = append(slices.Clone(patterns), base)
	}
	return roots, patterns
}
