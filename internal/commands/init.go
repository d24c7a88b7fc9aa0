package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/okra-platform/smithy-codegen/internal/codegen"
	"github.com/okra-platform/smithy-codegen/internal/config"
)

type InitOptions struct {
	ProjectName string
	Model       string
	Language    string
	Output      string
}

type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	Getwd() (string, error)
}

type osFileSystem struct{}

func (fs *osFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (fs *osFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (fs *osFileSystem) Getwd() (string, error) {
	return os.Getwd()
}

type InitCommand struct {
	filesystem FileSystem
	languages  []string
	// For testing: if set, skip prompting
	testOptions *InitOptions
}

func NewInitCommand() *InitCommand {
	return &InitCommand{
		filesystem: &osFileSystem{},
		languages:  codegen.DefaultRegistry.Languages(),
	}
}

// Init writes a codegen.json in the working directory from interactive answers
func (c *Controller) Init(ctx context.Context) error {
	cmd := NewInitCommand()
	path, err := cmd.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out(), "✅ Created %s\n", path)
	return nil
}

func (ic *InitCommand) Run(ctx context.Context) (string, error) {
	return ic.RunWithOptions(ctx)
}

// RunWithOptions runs the init form, passing opts to the bubbletea program
func (ic *InitCommand) RunWithOptions(ctx context.Context, opts ...tea.ProgramOption) (string, error) {
	dir, err := ic.filesystem.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	path := filepath.Join(dir, config.FileName)
	if _, err := ic.filesystem.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}

	var options *InitOptions

	// For testing: use provided options instead of prompting
	if ic.testOptions != nil {
		options = ic.testOptions
	} else {
		options, err = ic.promptInitOptions(ctx, opts...)
		if err != nil {
			return "", fmt.Errorf("failed to get init options: %w", err)
		}
	}

	if err := validateModelPath(options.Model); err != nil {
		return "", err
	}

	cfg := &config.Config{
		Name:     options.ProjectName,
		Model:    options.Model,
		Language: options.Language,
		Output:   options.Output,
	}
	cfg.ApplyDefaults()

	data, err := cfg.Marshal()
	if err != nil {
		return "", err
	}
	if err := ic.filesystem.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

func (ic *InitCommand) promptInitOptions(ctx context.Context, opts ...tea.ProgramOption) (*InitOptions, error) {
	options := &InitOptions{
		Model:    "./model.json",
		Language: "cpp",
		Output:   "./build",
	}

	form := ic.createInitForm(options)

	if len(opts) > 0 {
		// For testing: run with provided options
		program := tea.NewProgram(form, opts...)
		if _, err := program.Run(); err != nil {
			return nil, err
		}
	} else {
		// Normal execution
		if err := form.RunWithContext(ctx); err != nil {
			return nil, err
		}
	}

	return options, nil
}

func (ic *InitCommand) createInitForm(options *InitOptions) *huh.Form {
	languages := make([]huh.Option[string], 0, len(ic.languages))
	for _, lang := range ic.languages {
		languages = append(languages, huh.NewOption(lang, lang))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Description("Name used for the generated sources").
				Value(&options.ProjectName).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("project name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Title("Model").
				Description("Smithy JSON AST (.json) or OKRA IDL (.okra.gql)").
				Value(&options.Model).
				Validate(validateModelPath),

			huh.NewSelect[string]().
				Title("Language").
				Description("Target language").
				Options(languages...).
				Value(&options.Language),

			huh.NewInput().
				Title("Output directory").
				Value(&options.Output),
		),
	)
}

func validateModelPath(s string) error {
	switch filepath.Ext(s) {
	case "", ".json", ".gql", ".graphql":
		return nil
	}
	return fmt.Errorf("model must be a .json, .gql or .graphql file")
}
