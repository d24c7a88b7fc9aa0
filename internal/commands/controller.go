// Package commands contains the CLI commands for the application
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/okra-platform/smithy-codegen/internal/config"
)

type Flags struct {
	LogLevel   string
	ConfigPath string
	Model      string
	Output     string
}

type Controller struct {
	Flags *Flags

	// Out receives user-facing output; os.Stdout when nil
	Out io.Writer
	// Logger overrides the global logger when set
	Logger *zerolog.Logger
}

func (c *Controller) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Controller) logger() zerolog.Logger {
	if c.Logger != nil {
		return *c.Logger
	}
	return log.Logger
}

func (c *Controller) flags() *Flags {
	if c.Flags == nil {
		return &Flags{}
	}
	return c.Flags
}

// loadProject finds the project configuration and applies flag overrides.
// Without a codegen.json, defaults are used when --model is given.
func (c *Controller) loadProject() (*config.Config, string, error) {
	flags := c.flags()

	var cfg *config.Config
	var projectDir string
	var err error
	if flags.ConfigPath != "" {
		cfg, err = config.LoadConfigFromPath(flags.ConfigPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load project config: %w", err)
		}
		projectDir = filepath.Dir(flags.ConfigPath)
	} else {
		cfg, projectDir, err = config.LoadConfig()
		if err != nil {
			if flags.Model == "" {
				return nil, "", fmt.Errorf("failed to load project config: %w", err)
			}
			cfg = config.Default()
			if projectDir, err = os.Getwd(); err != nil {
				return nil, "", fmt.Errorf("failed to get current directory: %w", err)
			}
		}
	}

	// Flag paths are relative to the working directory, not the project
	if flags.Model != "" {
		model, err := filepath.Abs(flags.Model)
		if err != nil {
			return nil, "", err
		}
		cfg.SetModel(model)
	}
	if flags.Output != "" {
		if cfg.Output, err = filepath.Abs(flags.Output); err != nil {
			return nil, "", err
		}
	}
	return cfg, projectDir, nil
}
