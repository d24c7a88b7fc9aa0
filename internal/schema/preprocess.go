package schema

import (
	"regexp"
)

// headerRegex matches an @okra(...) header at the start of a line, allowing
// one level of nested parentheses in the arguments
var headerRegex = regexp.MustCompile(`(?m)^@okra\s*\(((?:[^()]*|\([^)]*\))*)\)`)

// serviceRegex matches `service Name {` at the start of a line
var serviceRegex = regexp.MustCompile(`(?m)^service\s+(\w+)\s*{`)

// PreprocessGraphQL rewrites the IDL extensions into plain GraphQL so the
// document can be parsed by a standard parser:
//
//	@okra(args)        -> type _Schema { _: String @okra(args) }
//	service Name {     -> type Service_Name {
func PreprocessGraphQL(input string) string {
	input = headerRegex.ReplaceAllString(input, "type _Schema {\n  _: String @okra($1)\n}")
	return serviceRegex.ReplaceAllString(input, "type Service_$1 {")
}
