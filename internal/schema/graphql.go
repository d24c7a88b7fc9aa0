package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/ast"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/astparser"

	"github.com/okra-platform/smithy-codegen/internal/model"
)

// scalars maps built-in GraphQL scalars to prelude shapes
var scalars = map[string]model.ShapeID{
	"String":  model.String,
	"ID":      model.String,
	"Int":     model.Integer,
	"Float":   model.Float,
	"Boolean": model.Boolean,
}

// graphqlLoader converts one parsed IDL document into shapes
type graphqlLoader struct {
	doc       *ast.Document
	namespace string
	version   string
	shapes    []*model.Shape
	// lists synthesized for [T] fields, by id
	lists map[model.ShapeID]bool
}

// ParseGraphQL parses an OKRA GraphQL IDL document (after preprocessing)
// into a model. The @okra(namespace: ...) header is required.
func ParseGraphQL(input string) (*model.Model, error) {
	// First preprocess the input
	preprocessed := PreprocessGraphQL(input)

	// Parse the GraphQL document
	doc, report := astparser.ParseGraphqlDocumentString(preprocessed)
	if report.HasErrors() {
		return nil, fmt.Errorf("failed to parse GraphQL: %v", report)
	}

	l := &graphqlLoader{
		doc:   &doc,
		lists: make(map[model.ShapeID]bool),
	}
	l.parseMetadata()
	if l.namespace == "" {
		return nil, fmt.Errorf("failed to parse GraphQL: missing @okra(namespace: ...) header")
	}

	// Walk through definitions
	for i := range doc.RootNodes {
		node := &doc.RootNodes[i]
		var err error
		switch node.Kind {
		case ast.NodeKindObjectTypeDefinition:
			err = l.parseObjectType(node.Ref)
		case ast.NodeKindInputObjectTypeDefinition:
			err = l.parseInputObjectType(node.Ref)
		case ast.NodeKindEnumTypeDefinition:
			err = l.parseEnumType(node.Ref)
		}
		if err != nil {
			return nil, err
		}
	}

	return model.New(l.shapes...)
}

func (l *graphqlLoader) id(name string) model.ShapeID {
	return model.ShapeID{Namespace: l.namespace, Name: name}
}

// parseMetadata reads namespace and version from the _Schema type that
// preprocessing produced for the @okra header
func (l *graphqlLoader) parseMetadata() {
	for i := range l.doc.RootNodes {
		node := l.doc.RootNodes[i]
		if node.Kind != ast.NodeKindObjectTypeDefinition {
			continue
		}
		typeDef := l.doc.ObjectTypeDefinitions[node.Ref]
		if l.doc.Input.ByteSliceString(typeDef.Name) != "_Schema" {
			continue
		}

		for _, fieldRef := range typeDef.FieldsDefinition.Refs {
			for _, directiveRef := range l.doc.FieldDefinitions[fieldRef].Directives.Refs {
				directive := l.doc.Directives[directiveRef]
				if l.doc.Input.ByteSliceString(directive.Name) != "okra" {
					continue
				}
				args := parseDirectiveArgs(l.doc, directive)
				l.namespace = args["namespace"]
				l.version = args["version"]
				return
			}
		}
	}
}

func (l *graphqlLoader) parseObjectType(ref int) error {
	typeDef := l.doc.ObjectTypeDefinitions[ref]
	typeName := l.doc.Input.ByteSliceString(typeDef.Name)

	if typeName == "_Schema" {
		return nil
	}

	// Check if this is a service (type Service_*)
	if serviceName, ok := strings.CutPrefix(typeName, "Service_"); ok {
		return l.parseService(typeDef, serviceName)
	}

	id, err := l.validID(typeName)
	if err != nil {
		return err
	}
	structure := model.NewStructure(id)
	structure.Doc = getDescription(l.doc, typeDef.Description)

	for _, fieldRef := range typeDef.FieldsDefinition.Refs {
		fieldDef := l.doc.FieldDefinitions[fieldRef]
		member, err := l.parseMember(id, fieldDef.Name, fieldDef.Type, fieldDef.Description, fieldDef.Directives)
		if err != nil {
			return err
		}
		structure.Members = append(structure.Members, member)
	}

	l.shapes = append(l.shapes, structure)
	return nil
}

func (l *graphqlLoader) parseInputObjectType(ref int) error {
	typeDef := l.doc.InputObjectTypeDefinitions[ref]
	id, err := l.validID(l.doc.Input.ByteSliceString(typeDef.Name))
	if err != nil {
		return err
	}
	structure := model.NewStructure(id)
	structure.Doc = getDescription(l.doc, typeDef.Description)

	for _, valueRef := range typeDef.InputFieldsDefinition.Refs {
		valueDef := l.doc.InputValueDefinitions[valueRef]
		member, err := l.parseMember(id, valueDef.Name, valueDef.Type, valueDef.Description, valueDef.Directives)
		if err != nil {
			return err
		}
		structure.Members = append(structure.Members, member)
	}

	l.shapes = append(l.shapes, structure)
	return nil
}

func (l *graphqlLoader) parseMember(owner model.ShapeID, name ast.ByteSliceReference, typeRef int, desc ast.Description, directives ast.DirectiveList) (*model.Shape, error) {
	target, required := l.parseType(typeRef)
	if target.IsZero() {
		return nil, fmt.Errorf("field %s of %s has no named type", l.doc.Input.ByteSliceString(name), owner)
	}

	member := model.NewMember(owner, l.doc.Input.ByteSliceString(name), target)
	member.Doc = getDescription(l.doc, desc)
	if required {
		member.Traits = append(member.Traits, model.Trait{ID: RequiredTrait, Value: "{}"})
	}

	traits, err := l.parseDirectives(directives)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", member.ID, err)
	}
	member.Traits = append(member.Traits, traits...)
	return member, nil
}

// parseEnumType yields a string shape carrying its values as an enum trait
func (l *graphqlLoader) parseEnumType(ref int) error {
	enumDef := l.doc.EnumTypeDefinitions[ref]
	id, err := l.validID(l.doc.Input.ByteSliceString(enumDef.Name))
	if err != nil {
		return err
	}

	entries := make([]enumEntry, 0, len(enumDef.EnumValuesDefinition.Refs))
	for _, valueRef := range enumDef.EnumValuesDefinition.Refs {
		name := l.doc.Input.ByteSliceString(l.doc.EnumValueDefinitions[valueRef].EnumValue)
		entries = append(entries, enumEntry{Name: name, Value: name})
	}
	value, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	l.shapes = append(l.shapes, &model.Shape{
		ID:     id,
		Kind:   model.KindString,
		Doc:    getDescription(l.doc, enumDef.Description),
		Traits: []model.Trait{{ID: EnumTrait, Value: string(value)}},
	})
	return nil
}

// parseService yields the service and one operation per method. Operation
// names are the capitalized method names.
func (l *graphqlLoader) parseService(typeDef ast.ObjectTypeDefinition, serviceName string) error {
	serviceID, err := l.validID(serviceName)
	if err != nil {
		return err
	}
	service := &model.Shape{
		ID:      serviceID,
		Kind:    model.KindService,
		Doc:     getDescription(l.doc, typeDef.Description),
		Version: l.version,
	}

	for _, fieldRef := range typeDef.FieldsDefinition.Refs {
		fieldDef := l.doc.FieldDefinitions[fieldRef]
		methodName := l.doc.Input.ByteSliceString(fieldDef.Name)

		op := &model.Shape{
			ID:   l.id(inflect.Capitalize(methodName)),
			Kind: model.KindOperation,
			Doc:  getDescription(l.doc, fieldDef.Description),
		}
		op.Output, _ = l.parseType(fieldDef.Type)

		// Assume first argument is the input
		if len(fieldDef.ArgumentsDefinition.Refs) > 0 {
			argDef := l.doc.InputValueDefinitions[fieldDef.ArgumentsDefinition.Refs[0]]
			op.Input, _ = l.parseType(argDef.Type)
		}

		traits, err := l.parseDirectives(fieldDef.Directives)
		if err != nil {
			return fmt.Errorf("method %s: %w", methodName, err)
		}
		op.Traits = traits

		service.Operations = append(service.Operations, op.ID)
		l.shapes = append(l.shapes, op)
	}

	l.shapes = append(l.shapes, service)
	return nil
}

// parseType returns the shape a type reference targets and whether it is
// non-null. [T] targets a list shape named after its element, synthesized
// on first use.
func (l *graphqlLoader) parseType(typeRef int) (model.ShapeID, bool) {
	required := false
	currentRef := typeRef

	// Handle NonNull wrapper
	if l.doc.Types[currentRef].TypeKind == ast.TypeKindNonNull {
		required = true
		currentRef = l.doc.Types[currentRef].OfType
	}

	switch l.doc.Types[currentRef].TypeKind {
	case ast.TypeKindList:
		elem, _ := l.parseType(l.doc.Types[currentRef].OfType)
		if elem.IsZero() {
			return model.ShapeID{}, required
		}
		return l.listOf(elem), required

	case ast.TypeKindNamed:
		typeName := l.doc.Input.ByteSliceString(l.doc.Types[currentRef].Name)
		if id, ok := scalars[typeName]; ok {
			return id, required
		}
		return l.id(typeName), required
	}

	return model.ShapeID{}, required
}

func (l *graphqlLoader) listOf(elem model.ShapeID) model.ShapeID {
	id := l.id(elem.Name + "List")
	if !l.lists[id] {
		l.lists[id] = true
		l.shapes = append(l.shapes, &model.Shape{
			ID:      id,
			Kind:    model.KindList,
			Members: []*model.Shape{model.NewMember(id, "member", elem)},
		})
	}
	return id
}

// parseDirectives turns directives into trait applications in the document
// namespace; arguments become a JSON object
func (l *graphqlLoader) parseDirectives(directives ast.DirectiveList) ([]model.Trait, error) {
	var traits []model.Trait
	for _, directiveRef := range directives.Refs {
		directive := l.doc.Directives[directiveRef]
		value, err := json.Marshal(parseDirectiveArgs(l.doc, directive))
		if err != nil {
			return nil, err
		}
		traits = append(traits, model.Trait{
			ID:    l.id(l.doc.Input.ByteSliceString(directive.Name)),
			Value: string(value),
		})
	}
	return traits, nil
}

// validID rejects type names that would collide with synthesized lists or
// cannot form a shape id
func (l *graphqlLoader) validID(name string) (model.ShapeID, error) {
	id := l.id(name)
	if _, err := model.ParseShapeID(id.String()); err != nil {
		return model.ShapeID{}, err
	}
	if l.lists[id] {
		return model.ShapeID{}, fmt.Errorf("type %s collides with the list synthesized for [%s]", name, strings.TrimSuffix(name, "List"))
	}
	return id, nil
}

func parseDirectiveArgs(doc *ast.Document, directive ast.Directive) map[string]string {
	args := make(map[string]string)

	for _, argRef := range directive.Arguments.Refs {
		arg := doc.Arguments[argRef]
		argName := doc.Input.ByteSliceString(arg.Name)
		args[argName] = parseValue(doc, doc.ArgumentValue(argRef))
	}

	return args
}

func parseValue(doc *ast.Document, value ast.Value) string {
	switch value.Kind {
	case ast.ValueKindString:
		return doc.StringValueContentString(value.Ref)

	case ast.ValueKindEnum:
		if value.Ref >= 0 && value.Ref < len(doc.EnumValues) {
			return doc.Input.ByteSliceString(doc.EnumValues[value.Ref].Name)
		}

	case ast.ValueKindBoolean:
		// The Ref is either 0 (false) or 1 (true)
		if value.Ref >= 0 && value.Ref < len(doc.BooleanValues) {
			if doc.BooleanValues[value.Ref] {
				return "true"
			}
			return "false"
		}

	case ast.ValueKindInteger:
		return fmt.Sprintf("%d", doc.IntValueAsInt(value.Ref))

	case ast.ValueKindFloat:
		return fmt.Sprintf("%g", doc.FloatValueAsFloat32(value.Ref))
	}

	return ""
}

func getDescription(doc *ast.Document, desc ast.Description) string {
	if !desc.IsDefined {
		return ""
	}

	return strings.TrimSpace(doc.Input.ByteSliceString(desc.Content))
}
