package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/okra-platform/smithy-codegen/internal/codegen"
	"github.com/okra-platform/smithy-codegen/internal/config"
	"github.com/okra-platform/smithy-codegen/internal/model"
	"github.com/okra-platform/smithy-codegen/internal/output"
	"github.com/okra-platform/smithy-codegen/internal/schema"
)

// Sink persists generated files
type Sink interface {
	Write(files map[string]string) error
}

// GenerateCommand loads the model, runs the configured target and writes the result
type GenerateCommand struct {
	cfg        *config.Config
	projectDir string
	readFile   func(name string) ([]byte, error)
	sink       Sink
	logger     zerolog.Logger
}

// NewGenerateCommand creates a generate command writing below the configured output directory
func NewGenerateCommand(cfg *config.Config, projectDir string, logger zerolog.Logger) *GenerateCommand {
	return &GenerateCommand{
		cfg:        cfg,
		projectDir: projectDir,
		readFile:   os.ReadFile,
		sink:       output.NewDirSink(config.ResolvePath(projectDir, cfg.Output), logger),
		logger:     logger,
	}
}

// Generate runs one generation pass for the current project
func (c *Controller) Generate(ctx context.Context) error {
	cfg, projectDir, err := c.loadProject()
	if err != nil {
		return err
	}

	files, err := NewGenerateCommand(cfg, projectDir, c.logger()).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out(), "✅ Generated %d files in %s\n", len(files), config.ResolvePath(projectDir, cfg.Output))
	return nil
}

// Run generates and writes every file. Nothing is written when generation fails.
func (gc *GenerateCommand) Run(ctx context.Context) (codegen.FileMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := gc.loadModel()
	if err != nil {
		return nil, err
	}

	files, err := codegen.Generate(m, gc.cfg.Language, codegen.Options{
		Indent:               gc.cfg.Indent,
		DeclarationExtension: gc.cfg.DeclarationExtension,
		DefinitionExtension:  gc.cfg.DefinitionExtension,
		IncludeComments:      gc.cfg.IncludeComments,
	}, gc.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", gc.cfg.Language, err)
	}

	if err := gc.sink.Write(files); err != nil {
		return nil, err
	}
	return files, nil
}

func (gc *GenerateCommand) loadModel() (*model.Model, error) {
	path := config.ResolvePath(gc.projectDir, gc.cfg.Model)
	data, err := gc.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}

	var m *model.Model
	switch gc.cfg.ModelFormat() {
	case config.FormatGraphQL:
		m, err = schema.ParseGraphQL(string(data))
	default:
		m, err = schema.ParseJSONAST(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", gc.cfg.Model, err)
	}

	gc.logger.Debug().Str("model", path).Int("shapes", m.Len()).Msg("model loaded")
	return m, nil
}
