// Package watch re-runs generation when model files change
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// FileWatcher watches files for changes based on patterns
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	patterns []string
	exclude  []string
	onChange func(path string, op fsnotify.Op)
	logger   zerolog.Logger
}

// NewFileWatcher creates a new file watcher. Exclude patterns ending in "/"
// match directory names; other patterns match file base names.
func NewFileWatcher(patterns []string, exclude []string, onChange func(path string, op fsnotify.Op), logger zerolog.Logger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		patterns: patterns,
		exclude:  exclude,
		onChange: onChange,
		logger:   logger,
	}, nil
}

// AddDirectory recursively adds a directory to the watcher
func (fw *FileWatcher) AddDirectory(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Only watch directories
		if !info.IsDir() {
			return nil
		}
		if path != dir && fw.excludedDir(filepath.Base(path)) {
			return filepath.SkipDir
		}

		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		fw.logger.Debug().Str("dir", path).Msg("watching directory")
		return nil
	})
}

// Start begins watching for file changes and blocks until ctx is done
func (fw *FileWatcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}

			// Check if file matches our patterns
			if fw.shouldWatch(event.Name) {
				fw.onChange(event.Name, event.Op)
			}

			// If a new directory is created, add it to the watcher
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !fw.excludedDir(info.Name()) {
					if err := fw.AddDirectory(event.Name); err != nil {
						fw.logger.Warn().Err(err).Str("dir", event.Name).Msg("failed to watch new directory")
					}
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if err != nil {
				// Log error but continue watching
				fw.logger.Error().Err(err).Msg("watcher error")
			}
		}
	}
}

func (fw *FileWatcher) excludedDir(name string) bool {
	for _, pattern := range fw.exclude {
		dirPattern, ok := strings.CutSuffix(pattern, "/")
		if !ok {
			continue
		}
		if matched, _ := filepath.Match(dirPattern, name); matched {
			return true
		}
	}
	return false
}

// shouldWatch checks if a file should trigger a change event based on patterns
func (fw *FileWatcher) shouldWatch(path string) bool {
	base := filepath.Base(path)

	// Check excludes first
	for _, pattern := range fw.exclude {
		if strings.HasSuffix(pattern, "/") {
			dir := string(filepath.Separator) + strings.TrimSuffix(pattern, "/") + string(filepath.Separator)
			if strings.Contains(filepath.Clean(path), dir) {
				return false
			}
			continue
		}
		if matched, _ := filepath.Match(pattern, base); matched {
			return false
		}
	}

	// Check if file matches any watch pattern
	for _, pattern := range fw.patterns {
		// Handle ** for recursive matching
		if suffix, ok := strings.CutPrefix(pattern, "**/"); ok {
			if matched, _ := filepath.Match(suffix, base); matched {
				return true
			}
		} else if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
