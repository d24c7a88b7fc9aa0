// Package output persists generated files
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// FileSystem defines the file system operations the sink needs
type FileSystem interface {
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(name string, data []byte, perm os.FileMode) error
}

type osFileSystem struct{}

func (fs *osFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (fs *osFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// DirSink writes generated files below a root directory
type DirSink struct {
	root       string
	filesystem FileSystem
	logger     zerolog.Logger
}

// NewDirSink creates a sink writing to root on the local file system
func NewDirSink(root string, logger zerolog.Logger) *DirSink {
	return NewDirSinkWithFS(root, &osFileSystem{}, logger)
}

// NewDirSinkWithFS creates a sink writing through fs
func NewDirSinkWithFS(root string, fs FileSystem, logger zerolog.Logger) *DirSink {
	return &DirSink{
		root:       root,
		filesystem: fs,
		logger:     logger.With().Str("component", "output").Logger(),
	}
}

// Root returns the directory files are written to
func (s *DirSink) Root() string {
	return s.root
}

// Write stores every file of files below the root, in file name order.
// Names must be relative and stay inside the root.
func (s *DirSink) Write(files map[string]string) error {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path, err := s.path(name)
		if err != nil {
			return err
		}
		if err := s.filesystem.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", name, err)
		}
		if err := s.filesystem.WriteFile(path, []byte(files[name]), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		s.logger.Debug().Str("file", path).Int("bytes", len(files[name])).Msg("wrote file")
	}

	s.logger.Info().Str("dir", s.root).Int("files", len(names)).Msg("files written")
	return nil
}

func (s *DirSink) path(name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("file name %q escapes the output directory", name)
	}
	return filepath.Join(s.root, clean), nil
}
