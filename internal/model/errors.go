package model

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownShape   = errors.New("unknown shape")
	ErrDuplicateShape = errors.New("duplicate shape")
)

// UnknownShapeError reports a shape id that is absent from the model
type UnknownShapeError struct {
	ID ShapeID
}

func (e *UnknownShapeError) Error() string {
	return fmt.Sprintf("unknown shape: %s", e.ID)
}

// Is reports whether target is ErrUnknownShape
func (e *UnknownShapeError) Is(target error) bool {
	return target == ErrUnknownShape
}
