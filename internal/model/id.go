package model

import (
	"fmt"
	"strings"
)

// ShapeID is the absolute identifier of a shape: namespace#Name, or
// namespace#Name$member for members
type ShapeID struct {
	Namespace string
	Name      string
	Member    string
}

// ParseShapeID parses an absolute shape id such as "example.weather#City$name"
func ParseShapeID(s string) (ShapeID, error) {
	ns, rest, ok := strings.Cut(s, "#")
	if !ok || ns == "" || rest == "" {
		return ShapeID{}, fmt.Errorf("invalid shape id %q: expected namespace#Name", s)
	}

	name, member, hasMember := strings.Cut(rest, "$")
	if name == "" || (hasMember && member == "") {
		return ShapeID{}, fmt.Errorf("invalid shape id %q", s)
	}

	return ShapeID{Namespace: ns, Name: name, Member: member}, nil
}

// MustParseShapeID is ParseShapeID for literals; it panics on malformed input
func MustParseShapeID(s string) ShapeID {
	id, err := ParseShapeID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the absolute form of the id
func (id ShapeID) String() string {
	if id.IsZero() {
		return ""
	}
	if id.Member != "" {
		return id.Namespace + "#" + id.Name + "$" + id.Member
	}
	return id.Namespace + "#" + id.Name
}

// IsZero reports whether the id is unset
func (id ShapeID) IsZero() bool {
	return id == ShapeID{}
}

// WithMember returns the id of the named member of this shape
func (id ShapeID) WithMember(member string) ShapeID {
	return ShapeID{Namespace: id.Namespace, Name: id.Name, Member: member}
}

// Root strips the member part
func (id ShapeID) Root() ShapeID {
	return ShapeID{Namespace: id.Namespace, Name: id.Name}
}
