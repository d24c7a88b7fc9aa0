package codegen

import (
	"github.com/okra-platform/smithy-codegen/internal/codegen/cpp"
)

// DefaultRegistry is the global registry instance with pre-registered targets
var DefaultRegistry = NewRegistry()

func init() {
	newCpp := func(opts Options) Target {
		return cpp.NewGenerator(cpp.Options{
			HeaderExtension: opts.DeclarationExtension,
			SourceExtension: opts.DefinitionExtension,
			IncludeComments: opts.IncludeComments,
		})
	}

	DefaultRegistry.Register("cpp", newCpp)
	// c++ is an alias for cpp
	DefaultRegistry.Register("c++", newCpp)
}
