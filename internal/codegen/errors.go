package codegen

import (
	"errors"
	"fmt"

	"github.com/okra-platform/smithy-codegen/internal/model"
)

var (
	// ErrInvalidModel indicates the model does not have exactly one service
	ErrInvalidModel = errors.New("invalid model")
	// ErrSymbolConflict indicates two outputs would be written to the same file
	ErrSymbolConflict = errors.New("conflicting symbols")
)

// InvalidModelError reports the number of services found
type InvalidModelError struct {
	Found int
}

func (e *InvalidModelError) Error() string {
	return fmt.Sprintf("invalid model: expected exactly one service, found %d", e.Found)
}

// Is reports whether target is ErrInvalidModel
func (e *InvalidModelError) Is(target error) bool {
	return target == ErrInvalidModel
}

// SymbolConflictError reports a file claimed twice. First and Second are the
// same shape when its declaration and definition files coincide.
type SymbolConflictError struct {
	File   string
	First  model.ShapeID
	Second model.ShapeID
}

func (e *SymbolConflictError) Error() string {
	if e.First == e.Second {
		return fmt.Sprintf("conflicting symbols: declaration and definition of %s both target %s", e.First, e.File)
	}
	return fmt.Sprintf("conflicting symbols: %s and %s both target %s", e.First, e.Second, e.File)
}

// Is reports whether target is ErrSymbolConflict
func (e *SymbolConflictError) Is(target error) bool {
	return target == ErrSymbolConflict
}
