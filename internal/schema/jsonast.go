package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"

	"github.com/okra-platform/smithy-codegen/internal/model"
)

// Trait ids the loaders produce or interpret
var (
	EnumTrait     = model.ShapeID{Namespace: model.PreludeNamespace, Name: "enum"}
	RequiredTrait = model.ShapeID{Namespace: model.PreludeNamespace, Name: "required"}
	enumValue     = model.ShapeID{Namespace: model.PreludeNamespace, Name: "enumValue"}
)

// enumEntry is one value of an enum trait
type enumEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ParseJSONAST decodes a Smithy JSON AST document into a model. Member order
// follows the order of the document.
func ParseJSONAST(data []byte) (*model.Model, error) {
	if _, err := jsonparser.GetString(data, "smithy"); err != nil {
		return nil, fmt.Errorf("failed to read smithy version: %w", err)
	}

	var shapes []*model.Shape
	err := objectEach(data, "shapes", func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		rawID, err := jsonparser.ParseString(key)
		if err != nil {
			return err
		}
		if dataType != jsonparser.Object {
			return fmt.Errorf("shape %s: expected an object", rawID)
		}

		id, err := model.ParseShapeID(rawID)
		if err != nil {
			return err
		}

		shape, err := parseShape(id, value)
		if err != nil {
			return fmt.Errorf("shape %s: %w", id, err)
		}
		if shape != nil {
			shapes = append(shapes, shape)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON AST: %w", err)
	}

	return model.New(shapes...)
}

func parseShape(id model.ShapeID, data []byte) (*model.Shape, error) {
	typ, err := jsonparser.GetString(data, "type")
	if err != nil {
		return nil, fmt.Errorf("missing type: %v", err)
	}

	shape := &model.Shape{ID: id}

	switch typ {
	case "apply":
		// trait applications to other shapes are not part of the graph
		return nil, nil
	case "enum":
		shape.Kind = model.KindString
	case "intEnum":
		shape.Kind = model.KindInteger
	default:
		kind, err := model.ParseKind(typ)
		if err != nil || kind == model.KindMember {
			return nil, fmt.Errorf("unknown shape type %q", typ)
		}
		shape.Kind = kind
	}

	if err := parseTraits(shape, data); err != nil {
		return nil, err
	}

	switch typ {
	case "enum", "intEnum":
		return shape, parseEnum(shape, data)
	}

	switch shape.Kind {
	case model.KindStructure, model.KindUnion:
		err = objectEach(data, "members", func(key []byte, value []byte, _ jsonparser.ValueType, _ int) error {
			name, err := jsonparser.ParseString(key)
			if err != nil {
				return err
			}
			member, err := parseMember(id, name, value)
			if err != nil {
				return err
			}
			shape.Members = append(shape.Members, member)
			return nil
		})

	case model.KindList, model.KindSet:
		err = appendMembers(shape, data, "member")

	case model.KindMap:
		err = appendMembers(shape, data, "key", "value")

	case model.KindService:
		shape.Version, _ = jsonparser.GetString(data, "version")
		if shape.Operations, err = targets(data, "operations"); err != nil {
			break
		}
		if shape.Resources, err = targets(data, "resources"); err != nil {
			break
		}
		shape.Errors, err = targets(data, "errors")

	case model.KindOperation:
		if shape.Input, err = target(data, "input"); err != nil {
			break
		}
		if shape.Output, err = target(data, "output"); err != nil {
			break
		}
		shape.Errors, err = targets(data, "errors")

	case model.KindResource:
		err = parseResource(shape, data)
	}
	if err != nil {
		return nil, err
	}

	return shape, nil
}

func parseResource(shape *model.Shape, data []byte) error {
	err := objectEach(data, "identifiers", func(key []byte, value []byte, _ jsonparser.ValueType, _ int) error {
		name, err := jsonparser.ParseString(key)
		if err != nil {
			return err
		}
		id, err := target(value)
		if err != nil {
			return err
		}
		shape.Identifiers = append(shape.Identifiers, model.Identifier{Name: name, Target: id})
		return nil
	})
	if err != nil {
		return fmt.Errorf("identifiers: %w", err)
	}

	lifecycle := map[string]*model.ShapeID{
		"create": &shape.Lifecycle.Create,
		"put":    &shape.Lifecycle.Put,
		"read":   &shape.Lifecycle.Read,
		"update": &shape.Lifecycle.Update,
		"delete": &shape.Lifecycle.Delete,
		"list":   &shape.Lifecycle.List,
	}
	for key, dst := range lifecycle {
		if *dst, err = target(data, key); err != nil {
			return err
		}
	}

	if shape.Operations, err = targets(data, "operations"); err != nil {
		return err
	}
	if shape.CollectionOperations, err = targets(data, "collectionOperations"); err != nil {
		return err
	}
	shape.Resources, err = targets(data, "resources")
	return err
}

// parseEnum turns enum members into an enum trait on a string (or integer) shape
func parseEnum(shape *model.Shape, data []byte) error {
	var entries []enumEntry
	err := objectEach(data, "members", func(key []byte, value []byte, _ jsonparser.ValueType, _ int) error {
		name, err := jsonparser.ParseString(key)
		if err != nil {
			return err
		}
		entry := enumEntry{Name: name, Value: name}
		if raw, dataType, _, err := jsonparser.Get(value, "traits", enumValue.String()); err == nil {
			if dataType == jsonparser.String {
				if entry.Value, err = jsonparser.ParseString(raw); err != nil {
					return err
				}
			} else {
				entry.Value = string(raw)
			}
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return err
	}

	value, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	shape.Traits = append(shape.Traits, model.Trait{ID: EnumTrait, Value: string(value)})
	return nil
}

func parseMember(owner model.ShapeID, name string, data []byte) (*model.Shape, error) {
	id, err := target(data)
	if err != nil {
		return nil, fmt.Errorf("member %s: %w", name, err)
	}
	if id.IsZero() {
		return nil, fmt.Errorf("member %s: missing target", name)
	}

	member := model.NewMember(owner, name, id)
	if err := parseTraits(member, data); err != nil {
		return nil, fmt.Errorf("member %s: %w", name, err)
	}
	return member, nil
}

func appendMembers(shape *model.Shape, data []byte, names ...string) error {
	for _, name := range names {
		value, _, _, err := jsonparser.Get(data, name)
		if err != nil {
			return fmt.Errorf("missing %s: %v", name, err)
		}
		member, err := parseMember(shape.ID, name, value)
		if err != nil {
			return err
		}
		shape.Members = append(shape.Members, member)
	}
	return nil
}

// parseTraits keeps every trait application as raw JSON and lifts the
// documentation trait into Doc
func parseTraits(shape *model.Shape, data []byte) error {
	err := objectEach(data, "traits", func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		rawID, err := jsonparser.ParseString(key)
		if err != nil {
			return err
		}
		id, err := model.ParseShapeID(rawID)
		if err != nil {
			return err
		}

		raw := string(value)
		if dataType == jsonparser.String {
			raw = `"` + raw + `"`
			if id == model.Documentation {
				if shape.Doc, err = jsonparser.ParseString(value); err != nil {
					return err
				}
			}
		}
		shape.Traits = append(shape.Traits, model.Trait{ID: id, Value: raw})
		return nil
	})
	if err != nil {
		return fmt.Errorf("traits: %w", err)
	}
	return nil
}

// objectEach iterates the object at key. Only a missing key counts as empty;
// errors raised while visiting entries are returned as is.
func objectEach(data []byte, key string, fn func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error) error {
	value, dataType, _, err := jsonparser.Get(data, key)
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return nil
	}
	if err != nil {
		return err
	}
	if dataType != jsonparser.Object {
		return fmt.Errorf("%s: expected an object", key)
	}
	return jsonparser.ObjectEach(value, fn)
}

// target reads a {"target": "ns#Name"} reference at the given path. A missing
// reference and smithy.api#Unit both yield the zero id.
func target(data []byte, keys ...string) (model.ShapeID, error) {
	raw, err := jsonparser.GetString(data, append(keys, "target")...)
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return model.ShapeID{}, nil
	}
	if err != nil {
		return model.ShapeID{}, err
	}

	id, err := model.ParseShapeID(raw)
	if err != nil {
		return model.ShapeID{}, err
	}
	if id == model.Unit {
		return model.ShapeID{}, nil
	}
	return id, nil
}

// targets reads a list of references at key
func targets(data []byte, key string) ([]model.ShapeID, error) {
	var ids []model.ShapeID
	var failed error
	_, err := jsonparser.ArrayEach(data, func(value []byte, _ jsonparser.ValueType, _ int, err error) {
		if failed != nil {
			return
		}
		if err != nil {
			failed = err
			return
		}
		id, err := target(value)
		if err != nil {
			failed = err
			return
		}
		if !id.IsZero() {
			ids = append(ids, id)
		}
	}, key)
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	if failed != nil {
		return nil, fmt.Errorf("%s: %w", key, failed)
	}
	return ids, nil
}
