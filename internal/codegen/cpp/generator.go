// Package cpp emits C++ entity classes for structure shapes
package cpp

import (
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/okra-platform/smithy-codegen/internal/codegen/symbol"
	"github.com/okra-platform/smithy-codegen/internal/codegen/writer"
	"github.com/okra-platform/smithy-codegen/internal/model"
)

const (
	DefaultHeaderExtension = "h"
	DefaultSourceExtension = "cpp"
)

// Options configures the C++ generator
type Options struct {
	HeaderExtension string
	SourceExtension string
	IncludeComments bool
}

// Generator emits a header/source pair per structure
type Generator struct {
	opts Options
}

// NewGenerator creates a new C++ generator, filling in default extensions
func NewGenerator(opts Options) *Generator {
	if opts.HeaderExtension == "" {
		opts.HeaderExtension = DefaultHeaderExtension
	}
	if opts.SourceExtension == "" {
		opts.SourceExtension = DefaultSourceExtension
	}
	return &Generator{opts: opts}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "cpp"
}

// Convention returns the C++ naming convention
func (g *Generator) Convention() symbol.Convention {
	return symbol.Convention{
		DeclarationExtension: g.opts.HeaderExtension,
		DefinitionExtension:  g.opts.SourceExtension,
		Builtins: map[model.Kind]string{
			model.KindString: "std::string",
		},
	}
}

// member is a structure member with its resolved C++ type
type member struct {
	name  string
	typ   string
	field string
	// header of a structure-typed member, empty for builtins
	include string
}

func (m member) getter() string {
	return "get" + inflect.Capitalize(m.name)
}

func (m member) setter() string {
	return "set" + inflect.Capitalize(m.name)
}

func (m member) param() string {
	return m.typ + " " + m.name
}

// resolveMembers resolves every member before anything is written so a
// failure never leaves a half-emitted class behind
func resolveMembers(shape *model.Shape, symbols *symbol.Resolver) ([]member, error) {
	if shape.Kind != model.KindStructure {
		return nil, fmt.Errorf("cpp: %s is a %s, not a structure", shape.ID, shape.Kind)
	}

	members := make([]member, 0, len(shape.Members))
	for _, m := range shape.Members {
		sym, err := symbols.Resolve(m)
		if err != nil {
			return nil, fmt.Errorf("member %s: %w", m.ID, err)
		}
		members = append(members, member{
			name:    m.MemberName(),
			typ:     sym.Name,
			field:   "_" + m.MemberName(),
			include: sym.DeclarationFile,
		})
	}
	return members, nil
}

func params(members []member) string {
	list := make([]string, len(members))
	for i, m := range members {
		list[i] = m.param()
	}
	return strings.Join(list, ", ")
}

// EmitDeclaration writes the class declaration of a structure: preamble,
// constructor and accessor signatures, then private storage
func (g *Generator) EmitDeclaration(w *writer.Writer, shape *model.Shape, symbols *symbol.Resolver) error {
	class, err := symbols.Resolve(shape)
	if err != nil {
		return err
	}
	members, err := resolveMembers(shape, symbols)
	if err != nil {
		return err
	}

	w.WriteLine("#pragma once")
	w.BlankLine()
	w.WriteLine("#include <string>")
	for _, include := range dependentHeaders(class, members) {
		w.WriteLinef(`#include "%s"`, include)
	}
	w.BlankLine()

	if g.opts.IncludeComments {
		w.WriteDocComment(shape.Doc)
	}

	w.WriteLinef("class %s {", class.Name)
	w.WriteLine("public:")
	w.Indent()
	w.WriteLinef("%s(%s);", class.Name, params(members))
	w.BlankLine()
	for _, m := range members {
		w.WriteLinef("%s %s();", m.typ, m.getter())
		w.WriteLinef("void %s(%s);", m.setter(), m.param())
	}
	if err := w.Dedent(); err != nil {
		return err
	}

	w.WriteLine("private:")
	w.Indent()
	for _, m := range members {
		w.WriteLinef("%s %s;", m.typ, m.field)
	}
	if err := w.Dedent(); err != nil {
		return err
	}
	w.WriteLine("};")

	return nil
}

// EmitDefinition writes the out-of-line constructor and accessor bodies
func (g *Generator) EmitDefinition(w *writer.Writer, shape *model.Shape, symbols *symbol.Resolver) error {
	class, err := symbols.Resolve(shape)
	if err != nil {
		return err
	}
	members, err := resolveMembers(shape, symbols)
	if err != nil {
		return err
	}

	w.WriteLinef(`#include "%s"`, class.DeclarationFile)
	w.BlankLine()

	if len(members) == 0 {
		w.WriteLinef("%s::%s() { }", class.Name, class.Name)
		return nil
	}

	w.WriteLinef("%s::%s(%s) : %s { }", class.Name, class.Name, params(members), initializers(members))
	w.BlankLine()

	for _, m := range members {
		w.WriteLinef("%s %s::%s() { return %s; }", m.typ, class.Name, m.getter(), m.field)
		w.WriteLinef("void %s::%s(%s) { %s = %s; }", class.Name, m.setter(), m.param(), m.field, m.name)
	}

	return nil
}

func initializers(members []member) string {
	list := make([]string, len(members))
	for i, m := range members {
		list[i] = fmt.Sprintf("%s { %s }", m.field, m.name)
	}
	return strings.Join(list, ", ")
}

// dependentHeaders lists the headers of structure-typed members, once each,
// in member order. A class never includes itself.
func dependentHeaders(class symbol.Symbol, members []member) []string {
	var headers []string
	seen := map[string]bool{class.DeclarationFile: true}
	for _, m := range members {
		if m.include == "" || seen[m.include] {
			continue
		}
		seen[m.include] = true
		headers = append(headers, m.include)
	}
	return headers
}
