package writer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIndentUnderflow is returned by Dedent when the writer is already at
// indentation level zero. It always indicates a bug in the caller.
var ErrIndentUnderflow = errors.New("dedent below indentation level zero")

// Writer accumulates generated source for a single file with managed
// indentation. Text is buffered line by line so whitespace policies can be
// applied when each line is completed.
type Writer struct {
	sb           strings.Builder
	line         strings.Builder
	linePrefix   string
	indentLevel  int
	indentString string
	needsIndent  bool

	trimTrailingSpaces bool
	trimBlankLines     bool
	lastBlank          bool
}

// Option configures a Writer
type Option func(*Writer)

// WithTrimTrailingSpaces strips spaces and tabs from the end of every line
func WithTrimTrailingSpaces() Option {
	return func(w *Writer) { w.trimTrailingSpaces = true }
}

// WithTrimBlankLines collapses runs of blank lines into a single blank line
func WithTrimBlankLines() Option {
	return func(w *Writer) { w.trimBlankLines = true }
}

// NewWriter creates a new code writer with specified indentation string
func NewWriter(indentString string, opts ...Option) *Writer {
	w := &Writer{
		indentString: indentString,
		needsIndent:  true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Indent increases the indentation level
func (w *Writer) Indent() {
	w.indentLevel++
	w.updatePrefix()
}

// Dedent decreases the indentation level
func (w *Writer) Dedent() error {
	if w.indentLevel == 0 {
		return ErrIndentUnderflow
	}
	w.indentLevel--
	w.updatePrefix()
	return nil
}

// Write writes a string without adding a newline. Embedded newlines split
// the text into separate lines.
func (w *Writer) Write(s string) {
	for {
		before, after, found := strings.Cut(s, "\n")
		w.writePartial(before)
		if !found {
			return
		}
		w.Newline()
		s = after
	}
}

// Writef writes a formatted string without adding a newline
func (w *Writer) Writef(format string, args ...interface{}) {
	w.Write(fmt.Sprintf(format, args...))
}

// WriteLine writes a string and adds a newline
func (w *Writer) WriteLine(s string) {
	w.Write(s)
	w.Newline()
}

// WriteLinef writes a formatted string and adds a newline
func (w *Writer) WriteLinef(format string, args ...interface{}) {
	w.Writef(format, args...)
	w.Newline()
}

// Newline completes the current line
func (w *Writer) Newline() {
	text := w.line.String()
	w.line.Reset()
	w.needsIndent = true

	if w.trimTrailingSpaces {
		text = strings.TrimRight(text, " \t")
	}

	blank := strings.TrimSpace(text) == ""
	if blank {
		if w.trimBlankLines && w.lastBlank {
			return
		}
		// blank lines never carry indentation
		if w.trimTrailingSpaces {
			text = ""
		}
	}

	w.sb.WriteString(text)
	w.sb.WriteString("\n")
	w.lastBlank = blank
}

// BlankLine adds an empty line unless the previous line is already blank
func (w *Writer) BlankLine() {
	if w.sb.Len() > 0 && !w.lastBlank {
		w.Newline()
	}
}

// IndentLevel returns the current indentation level
func (w *Writer) IndentLevel() int {
	return w.indentLevel
}

// String returns the generated code, including any unterminated last line
func (w *Writer) String() string {
	if w.line.Len() == 0 {
		return w.sb.String()
	}
	text := w.line.String()
	if w.trimTrailingSpaces {
		text = strings.TrimRight(text, " \t")
	}
	return w.sb.String() + text
}

func (w *Writer) writePartial(s string) {
	if s == "" {
		return
	}
	if w.needsIndent {
		w.line.WriteString(w.linePrefix)
		w.needsIndent = false
	}
	w.line.WriteString(s)
}

// updatePrefix updates the line prefix based on current indentation
func (w *Writer) updatePrefix() {
	w.linePrefix = strings.Repeat(w.indentString, w.indentLevel)
}

// WriteComment writes a single-line comment
func (w *Writer) WriteComment(comment string) {
	w.WriteLinef("// %s", comment)
}

// WriteDocComment writes a documentation comment block
func (w *Writer) WriteDocComment(doc string) {
	if doc == "" {
		return
	}
	lines := strings.Split(strings.TrimSpace(doc), "\n")
	for _, line := range lines {
		w.WriteComment(strings.TrimSpace(line))
	}
}
