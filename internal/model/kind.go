package model

import "fmt"

// Kind is the closed set of shape kinds a model may contain.
// Code that switches on Kind is expected to list every value; Kinds returns
// them all so tests can check that a switch is total.
type Kind int

const (
	KindString Kind = iota + 1
	KindBoolean
	KindByte
	KindShort
	KindInteger
	KindLong
	KindFloat
	KindDouble
	KindBigInteger
	KindBigDecimal
	KindBlob
	KindTimestamp
	KindDocument

	KindList
	KindSet
	KindMap
	KindStructure
	KindUnion

	KindService
	KindResource
	KindOperation

	KindMember
)

var kindNames = map[Kind]string{
	KindString:     "string",
	KindBoolean:    "boolean",
	KindByte:       "byte",
	KindShort:      "short",
	KindInteger:    "integer",
	KindLong:       "long",
	KindFloat:      "float",
	KindDouble:     "double",
	KindBigInteger: "bigInteger",
	KindBigDecimal: "bigDecimal",
	KindBlob:       "blob",
	KindTimestamp:  "timestamp",
	KindDocument:   "document",
	KindList:       "list",
	KindSet:        "set",
	KindMap:        "map",
	KindStructure:  "structure",
	KindUnion:      "union",
	KindService:    "service",
	KindResource:   "resource",
	KindOperation:  "operation",
	KindMember:     "member",
}

// Kinds returns every kind in declaration order
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := KindString; k <= KindMember; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind maps a Smithy type name ("structure", "bigInteger", ...) to a Kind
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown shape type %q", s)
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsPrimitive reports whether k is one of the simple (non-aggregate,
// non-behavioral) kinds
func (k Kind) IsPrimitive() bool {
	return k >= KindString && k <= KindDocument
}
