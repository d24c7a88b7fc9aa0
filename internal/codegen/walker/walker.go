// Package walker computes the closure of shapes reachable from a root shape
package walker

import (
	"fmt"

	"github.com/okra-platform/smithy-codegen/internal/model"
)

// Walk returns every shape reachable from root, root included, each exactly
// once, in depth-first discovery order. Trait applications are never
// followed; callers pass a model that has already been stripped of traits.
func Walk(m *model.Model, root model.ShapeID) ([]*model.Shape, error) {
	start, err := m.Lookup(root)
	if err != nil {
		return nil, err
	}

	w := &walk{
		model:   m,
		visited: make(map[model.ShapeID]struct{}),
	}
	if err := w.visit(start); err != nil {
		return nil, err
	}
	return w.shapes, nil
}

type walk struct {
	model   *model.Model
	visited map[model.ShapeID]struct{}
	shapes  []*model.Shape
}

func (w *walk) visit(shape *model.Shape) error {
	if _, ok := w.visited[shape.ID]; ok {
		return nil
	}
	w.visited[shape.ID] = struct{}{}
	w.shapes = append(w.shapes, shape)

	for _, id := range Neighbors(shape) {
		if _, ok := w.visited[id]; ok {
			continue
		}
		next, err := w.model.Lookup(id)
		if err != nil {
			return fmt.Errorf("%s references %w", shape.ID, err)
		}
		if err := w.visit(next); err != nil {
			return err
		}
	}
	return nil
}

// Neighbors returns the ids a shape points at, in declaration order
func Neighbors(shape *model.Shape) []model.ShapeID {
	var ids []model.ShapeID
	add := func(list ...model.ShapeID) {
		for _, id := range list {
			if !id.IsZero() {
				ids = append(ids, id)
			}
		}
	}

	switch shape.Kind {
	case model.KindStructure, model.KindUnion, model.KindList, model.KindSet, model.KindMap:
		for _, member := range shape.Members {
			add(member.ID)
		}

	case model.KindMember:
		add(shape.Target)

	case model.KindOperation:
		add(shape.Input, shape.Output)
		add(shape.Errors...)

	case model.KindService:
		add(shape.Operations...)
		add(shape.Resources...)
		add(shape.Errors...)

	case model.KindResource:
		for _, identifier := range shape.Identifiers {
			add(identifier.Target)
		}
		add(shape.Lifecycle.Operations()...)
		add(shape.Operations...)
		add(shape.CollectionOperations...)
		add(shape.Resources...)

	case model.KindString, model.KindBoolean, model.KindByte, model.KindShort,
		model.KindInteger, model.KindLong, model.KindFloat, model.KindDouble,
		model.KindBigInteger, model.KindBigDecimal, model.KindBlob,
		model.KindTimestamp, model.KindDocument:
		// leaves
	}

	return ids
}
