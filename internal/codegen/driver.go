// Package codegen turns a shape graph into generated source files
package codegen

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/okra-platform/smithy-codegen/internal/codegen/symbol"
	"github.com/okra-platform/smithy-codegen/internal/codegen/walker"
	"github.com/okra-platform/smithy-codegen/internal/codegen/writer"
	"github.com/okra-platform/smithy-codegen/internal/model"
)

// FileMap maps generated file names to their content
type FileMap map[string]string

// Names returns the file names sorted
func (f FileMap) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Driver runs one target over a model. A Driver holds no per-run state and
// can be reused; every Run gets its own resolver and writer registry.
type Driver struct {
	target Target
	indent string
	logger zerolog.Logger
}

// NewDriver creates a driver for target
func NewDriver(target Target, opts Options, logger zerolog.Logger) *Driver {
	return &Driver{
		target: target,
		indent: opts.Indent,
		logger: logger.With().Str("component", "codegen").Str("language", target.Language()).Logger(),
	}
}

// Generate resolves language in the DefaultRegistry and runs it over m
func Generate(m *model.Model, language string, opts Options, logger zerolog.Logger) (FileMap, error) {
	target, err := DefaultRegistry.Get(language, opts)
	if err != nil {
		return nil, err
	}
	return NewDriver(target, opts, logger).Run(m)
}

// Run generates every structure reachable from the model's single service.
// Any error aborts the run and no files are returned.
func (d *Driver) Run(m *model.Model) (FileMap, error) {
	services := m.Services()
	if len(services) != 1 {
		return nil, &InvalidModelError{Found: len(services)}
	}
	service := services[0]

	view := m.WithoutTraits()
	shapes, err := walker.Walk(view, service.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", service.ID, err)
	}
	d.logger.Debug().Str("service", service.ID.String()).Int("shapes", len(shapes)).Msg("walked service closure")

	symbols := symbol.NewResolver(view, d.target.Convention())
	if err := checkConflicts(shapes, symbols); err != nil {
		return nil, err
	}

	registry := writer.NewRegistry(d.indent)
	for _, shape := range shapes {
		if err := d.dispatch(shape, symbols, registry); err != nil {
			return nil, err
		}
	}

	files, err := registry.Finalize()
	if err != nil {
		return nil, err
	}
	d.logger.Info().Int("files", len(files)).Msg("generation complete")
	return FileMap(files), nil
}

// dispatch routes a shape by kind. Only structures generate code; every
// other kind is listed so that adding a kind forces a decision here.
func (d *Driver) dispatch(shape *model.Shape, symbols *symbol.Resolver, registry *writer.Registry) error {
	switch shape.Kind {
	case model.KindStructure:
		return d.emitStructure(shape, symbols, registry)

	case model.KindService, model.KindOperation, model.KindResource:
		// client and server scaffolding is not generated

	case model.KindUnion, model.KindList, model.KindSet, model.KindMap:
		// only reachable through members, which resolve them when used

	case model.KindMember:
		// emitted as part of the owning structure

	case model.KindString, model.KindBoolean, model.KindByte, model.KindShort,
		model.KindInteger, model.KindLong, model.KindFloat, model.KindDouble,
		model.KindBigInteger, model.KindBigDecimal, model.KindBlob,
		model.KindTimestamp, model.KindDocument:
		// built-in types

	default:
		return fmt.Errorf("unhandled shape kind %s for %s", shape.Kind, shape.ID)
	}
	return nil
}

func (d *Driver) emitStructure(shape *model.Shape, symbols *symbol.Resolver, registry *writer.Registry) error {
	sym, err := symbols.Resolve(shape)
	if err != nil {
		return err
	}

	decl, err := registry.Writer(sym.DeclarationFile)
	if err != nil {
		return err
	}
	if err := d.target.EmitDeclaration(decl, shape, symbols); err != nil {
		return fmt.Errorf("failed to emit declaration of %s: %w", shape.ID, err)
	}

	def, err := registry.Writer(sym.DefinitionFile)
	if err != nil {
		return err
	}
	if err := d.target.EmitDefinition(def, shape, symbols); err != nil {
		return fmt.Errorf("failed to emit definition of %s: %w", shape.ID, err)
	}

	d.logger.Debug().
		Str("shape", shape.ID.String()).
		Str("declaration", sym.DeclarationFile).
		Str("definition", sym.DefinitionFile).
		Msg("emitted structure")
	return nil
}

// checkConflicts fails when two structures, or the two halves of one
// structure, would write to the same file
func checkConflicts(shapes []*model.Shape, symbols *symbol.Resolver) error {
	owners := make(map[string]model.ShapeID)
	for _, shape := range shapes {
		if shape.Kind != model.KindStructure {
			continue
		}
		sym, err := symbols.Resolve(shape)
		if err != nil {
			return err
		}
		if sym.DeclarationFile == sym.DefinitionFile {
			return &SymbolConflictError{File: sym.DeclarationFile, First: shape.ID, Second: shape.ID}
		}
		for _, file := range []string{sym.DeclarationFile, sym.DefinitionFile} {
			if owner, taken := owners[file]; taken {
				return &SymbolConflictError{File: file, First: owner, Second: shape.ID}
			}
			owners[file] = shape.ID
		}
	}
	return nil
}
