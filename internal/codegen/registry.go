package codegen

import (
	"fmt"
	"sort"
)

// Factory builds a target for one run
type Factory func(opts Options) Target

// Registry manages available target languages
type Registry struct {
	targets map[string]Factory
}

// NewRegistry creates a new target registry
func NewRegistry() *Registry {
	r := &Registry{
		targets: make(map[string]Factory),
	}
	return r
}

// Register adds a new target factory to the registry
func (r *Registry) Register(language string, factory Factory) {
	r.targets[language] = factory
}

// Get returns a target for the specified language
func (r *Registry) Get(language string, opts Options) (Target, error) {
	factory, exists := r.targets[language]
	if !exists {
		return nil, fmt.Errorf("unsupported language: %s", language)
	}

	return factory(opts), nil
}

// Languages returns the registered language names sorted
func (r *Registry) Languages() []string {
	languages := make([]string, 0, len(r.targets))
	for lang := range r.targets {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages
}
