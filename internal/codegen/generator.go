package codegen

import (
	"github.com/okra-platform/smithy-codegen/internal/codegen/symbol"
	"github.com/okra-platform/smithy-codegen/internal/codegen/writer"
	"github.com/okra-platform/smithy-codegen/internal/model"
)

// Target is the interface every target language implements
type Target interface {
	// Language returns the name of the target language (e.g., "cpp")
	Language() string

	// Convention returns the naming rules the symbol resolver applies
	Convention() symbol.Convention

	// EmitDeclaration writes the declaration unit of a structure shape
	EmitDeclaration(w *writer.Writer, shape *model.Shape, symbols *symbol.Resolver) error

	// EmitDefinition writes the definition unit of a structure shape
	EmitDefinition(w *writer.Writer, shape *model.Shape, symbols *symbol.Resolver) error
}

// Options contains common options for code generation
type Options struct {
	// Indent is the indentation unit of every generated file
	Indent string

	// DeclarationExtension and DefinitionExtension override the target's
	// default file extensions (without the dot)
	DeclarationExtension string
	DefinitionExtension  string

	// IncludeComments determines whether to include documentation comments
	IncludeComments bool
}
