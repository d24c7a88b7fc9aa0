package watch

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Regenerate runs one generation pass
type Regenerate func(ctx context.Context) error

// Session regenerates output whenever a watched file changes. A failed
// generation is logged and the session keeps watching.
type Session struct {
	root       string
	extra      []string
	patterns   []string
	exclude    []string
	regenerate Regenerate
	logger     zerolog.Logger

	// Mutex to prevent concurrent generations
	mu   sync.Mutex
	runs int
}

// NewSession creates a session watching root
func NewSession(root string, patterns, exclude []string, regenerate Regenerate, logger zerolog.Logger) *Session {
	return &Session{
		root:       root,
		patterns:   patterns,
		exclude:    exclude,
		regenerate: regenerate,
		logger:     logger.With().Str("component", "watch").Logger(),
	}
}

// AddRoot watches another directory besides root, such as the directory of a
// model file that lives outside the project
func (s *Session) AddRoot(dir string) {
	s.extra = append(s.extra, dir)
}

// Run generates once, then watches until ctx is cancelled. Cancellation is
// not reported as an error.
func (s *Session) Run(ctx context.Context) error {
	s.generate(ctx, "initial")

	watcher, err := NewFileWatcher(s.patterns, s.exclude, func(path string, op fsnotify.Op) {
		s.handleFileChange(ctx, path, op)
	}, s.logger)
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range append([]string{s.root}, s.extra...) {
		if err := watcher.AddDirectory(dir); err != nil {
			return err
		}
	}

	s.logger.Info().Str("dir", s.root).Strs("extra", s.extra).Strs("patterns", s.patterns).Msg("watching for changes")
	err = watcher.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Runs returns how many generation passes have completed
func (s *Session) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

// handleFileChange is called when a watched file changes
func (s *Session) handleFileChange(ctx context.Context, path string, op fsnotify.Op) {
	// Ignore temporary files and editor backups
	if strings.Contains(path, ".tmp") || strings.HasSuffix(path, "~") {
		return
	}

	var action string
	switch {
	case op&fsnotify.Create != 0:
		action = "created"
	case op&fsnotify.Write != 0:
		action = "modified"
	case op&fsnotify.Remove != 0:
		action = "deleted"
	case op&fsnotify.Rename != 0:
		action = "renamed"
	default:
		return
	}

	relPath, err := filepath.Rel(s.root, path)
	if err != nil {
		relPath = path
	}
	s.logger.Info().Str("file", relPath).Str("action", action).Msg("model changed")
	s.generate(ctx, relPath)
}

func (s *Session) generate(ctx context.Context, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	err := s.regenerate(ctx)
	s.runs++
	if err != nil {
		s.logger.Error().Err(err).Str("trigger", reason).Msg("generation failed")
		return
	}
	s.logger.Info().Str("trigger", reason).Dur("took", time.Since(start)).Msg("generation succeeded")
}
