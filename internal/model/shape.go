package model

// TraitDefinition marks a shape as a trait definition
var TraitDefinition = ShapeID{Namespace: PreludeNamespace, Name: "trait"}

// Documentation is the trait carrying a shape's doc comment
var Documentation = ShapeID{Namespace: PreludeNamespace, Name: "documentation"}

// Shape is a node of the model graph. Shapes are built once by a loader and
// treated as read-only afterwards; only the fields relevant to Kind are set.
type Shape struct {
	ID     ShapeID
	Kind   Kind
	Doc    string
	Traits []Trait

	// Members of a structure, union, list ("member"), set ("member") or map
	// ("key", "value"), in declaration order
	Members []*Shape

	// Target of a member
	Target ShapeID

	// Version of a service
	Version string

	// Operations and Resources bound to a service or resource
	Operations []ShapeID
	Resources  []ShapeID

	// Errors of an operation, or common errors of a service
	Errors []ShapeID

	// Input and Output of an operation; zero when absent
	Input  ShapeID
	Output ShapeID

	// Identifiers, lifecycle and collection operations of a resource
	Identifiers          []Identifier
	Lifecycle            Lifecycle
	CollectionOperations []ShapeID
}

// Trait is a trait application. Value holds the raw JSON node value.
type Trait struct {
	ID    ShapeID
	Value string
}

// Identifier is a named resource identifier
type Identifier struct {
	Name   string
	Target ShapeID
}

// Lifecycle holds the lifecycle operations of a resource
type Lifecycle struct {
	Create ShapeID
	Put    ShapeID
	Read   ShapeID
	Update ShapeID
	Delete ShapeID
	List   ShapeID
}

// Operations returns the non-zero lifecycle operations in a fixed order
func (l Lifecycle) Operations() []ShapeID {
	var ids []ShapeID
	for _, id := range []ShapeID{l.Create, l.Put, l.Read, l.Update, l.Delete, l.List} {
		if !id.IsZero() {
			ids = append(ids, id)
		}
	}
	return ids
}

// NewMember returns a member shape called name, owned by owner and targeting target
func NewMember(owner ShapeID, name string, target ShapeID) *Shape {
	return &Shape{
		ID:     owner.WithMember(name),
		Kind:   KindMember,
		Target: target,
	}
}

// NewStructure returns a structure shape owning the given members
func NewStructure(id ShapeID, members ...*Shape) *Shape {
	return &Shape{ID: id, Kind: KindStructure, Members: members}
}

// MemberName returns the member name of a member shape
func (s *Shape) MemberName() string {
	return s.ID.Member
}

// Trait returns the application of the given trait, if any
func (s *Shape) Trait(id ShapeID) (Trait, bool) {
	for _, t := range s.Traits {
		if t.ID == id {
			return t, true
		}
	}
	return Trait{}, false
}

// IsTraitDefinition reports whether the shape defines a trait
func (s *Shape) IsTraitDefinition() bool {
	_, ok := s.Trait(TraitDefinition)
	return ok
}

// withoutTraits returns a copy of s, and of its members, with trait
// applications removed
func (s *Shape) withoutTraits() *Shape {
	c := *s
	c.Traits = nil
	if len(s.Members) > 0 {
		c.Members = make([]*Shape, len(s.Members))
		for i, m := range s.Members {
			c.Members[i] = m.withoutTraits()
		}
	}
	return &c
}
