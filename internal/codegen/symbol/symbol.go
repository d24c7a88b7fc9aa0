// Package symbol maps shapes to the names and files they generate
package symbol

import (
	"errors"
	"fmt"

	"github.com/okra-platform/smithy-codegen/internal/model"
)

// ErrUnsupportedShapeKind is returned for shapes the target language has no
// mapping for
var ErrUnsupportedShapeKind = errors.New("unsupported shape kind")

// UnsupportedShapeKindError names the shape that could not be resolved
type UnsupportedShapeKindError struct {
	ID   model.ShapeID
	Kind model.Kind
}

func (e *UnsupportedShapeKindError) Error() string {
	return fmt.Sprintf("unsupported shape kind %s for %s", e.Kind, e.ID)
}

// Is reports whether target is ErrUnsupportedShapeKind
func (e *UnsupportedShapeKindError) Is(target error) bool {
	return target == ErrUnsupportedShapeKind
}

// Symbol is the generated identity of a shape. Built-in types have no files.
type Symbol struct {
	// Name is the type as written in generated source
	Name string

	DeclarationFile string
	DefinitionFile  string
}

// HasFiles reports whether the shape produces a declaration/definition pair
func (s Symbol) HasFiles() bool {
	return s.DeclarationFile != "" && s.DefinitionFile != ""
}

// Convention describes how a target language names things
type Convention struct {
	// DeclarationExtension and DefinitionExtension are appended to the
	// structure name, without the dot (e.g. "h" and "cpp")
	DeclarationExtension string
	DefinitionExtension  string

	// Builtins maps primitive kinds to a built-in type name. Kinds missing
	// here are unsupported.
	Builtins map[model.Kind]string
}

// Resolver resolves shapes against one model. A resolver belongs to a single
// generation run; its cache must not be shared with another model.
type Resolver struct {
	model      *model.Model
	convention Convention
	cache      map[model.ShapeID]Symbol
}

// NewResolver creates a resolver over m
func NewResolver(m *model.Model, convention Convention) *Resolver {
	return &Resolver{
		model:      m,
		convention: convention,
		cache:      make(map[model.ShapeID]Symbol),
	}
}

// Resolve returns the symbol for shape. A member resolves to the symbol of
// its target. Structure file names are derived from the bare shape name
// without sanitization, so names must already be valid file name components.
func (r *Resolver) Resolve(shape *model.Shape) (Symbol, error) {
	if sym, ok := r.cache[shape.ID]; ok {
		return sym, nil
	}

	var sym Symbol
	switch shape.Kind {
	case model.KindMember:
		target, err := r.ResolveID(shape.Target)
		if err != nil {
			return Symbol{}, err
		}
		sym = target

	case model.KindStructure:
		name := shape.ID.Name
		sym = Symbol{
			Name:            name,
			DeclarationFile: name + "." + r.convention.DeclarationExtension,
			DefinitionFile:  name + "." + r.convention.DefinitionExtension,
		}

	default:
		name, ok := r.convention.Builtins[shape.Kind]
		if !ok || !shape.Kind.IsPrimitive() {
			return Symbol{}, &UnsupportedShapeKindError{ID: shape.ID, Kind: shape.Kind}
		}
		sym = Symbol{Name: name}
	}

	r.cache[shape.ID] = sym
	return sym, nil
}

// ResolveID looks id up in the model and resolves it
func (r *Resolver) ResolveID(id model.ShapeID) (Symbol, error) {
	if sym, ok := r.cache[id]; ok {
		return sym, nil
	}

	shape, err := r.model.Lookup(id)
	if err != nil {
		return Symbol{}, err
	}
	return r.Resolve(shape)
}
