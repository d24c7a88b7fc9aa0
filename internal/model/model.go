// Package model holds the shape graph consumed by the code generator
package model

import (
	"fmt"
	"sort"
)

// Model is an immutable, already-validated shape graph. It always contains
// the prelude primitives.
type Model struct {
	shapes map[ShapeID]*Shape
	// members are indexed separately so Shapes only lists top-level shapes
	members map[ShapeID]*Shape
}

// New builds a model from the given top-level shapes. Shapes redefining a
// prelude id replace the prelude version; any other duplicate is an error.
func New(shapes ...*Shape) (*Model, error) {
	m := &Model{
		shapes:  make(map[ShapeID]*Shape),
		members: make(map[ShapeID]*Shape),
	}

	for _, s := range preludeShapes() {
		m.shapes[s.ID] = s
	}

	for _, s := range shapes {
		if s == nil {
			continue
		}
		if s.Kind == KindMember {
			return nil, fmt.Errorf("member %s cannot be declared at the top level", s.ID)
		}
		if _, exists := m.shapes[s.ID]; exists && s.ID.Namespace != PreludeNamespace {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateShape, s.ID)
		}
		m.shapes[s.ID] = s

		for _, member := range s.Members {
			if member.ID.Root() != s.ID {
				return nil, fmt.Errorf("member %s does not belong to %s", member.ID, s.ID)
			}
			if _, exists := m.members[member.ID]; exists {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateShape, member.ID)
			}
			m.members[member.ID] = member
		}
	}

	return m, nil
}

// Lookup returns the shape with the given id, members included
func (m *Model) Lookup(id ShapeID) (*Shape, error) {
	if id.Member != "" {
		if s, ok := m.members[id]; ok {
			return s, nil
		}
	} else if s, ok := m.shapes[id]; ok {
		return s, nil
	}
	return nil, &UnknownShapeError{ID: id}
}

// Contains reports whether the model holds the given id
func (m *Model) Contains(id ShapeID) bool {
	_, err := m.Lookup(id)
	return err == nil
}

// Shapes returns every top-level shape sorted by id
func (m *Model) Shapes() []*Shape {
	out := make([]*Shape, 0, len(m.shapes))
	for _, s := range m.shapes {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// ShapesOfKind returns the top-level shapes of kind k sorted by id
func (m *Model) ShapesOfKind(k Kind) []*Shape {
	var out []*Shape
	for _, s := range m.Shapes() {
		if s.Kind == k {
			out = append(out, s)
		}
	}
	return out
}

// Services returns the service shapes sorted by id
func (m *Model) Services() []*Shape {
	return m.ShapesOfKind(KindService)
}

// Len returns the number of top-level shapes, prelude included
func (m *Model) Len() int {
	return len(m.shapes)
}

// WithoutTraits returns a view of the model with trait definitions removed
// and trait applications dropped from every remaining shape. Doc strings are
// kept. The receiver is left untouched.
func (m *Model) WithoutTraits() *Model {
	out := &Model{
		shapes:  make(map[ShapeID]*Shape, len(m.shapes)),
		members: make(map[ShapeID]*Shape, len(m.members)),
	}
	for id, s := range m.shapes {
		if s.IsTraitDefinition() {
			continue
		}
		c := s.withoutTraits()
		out.shapes[id] = c
		for _, member := range c.Members {
			out.members[member.ID] = member
		}
	}
	return out
}
