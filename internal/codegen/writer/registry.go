package writer

import "errors"

// ErrFinalized is returned when a registry is used after Finalize
var ErrFinalized = errors.New("writer registry already finalized")

// DefaultIndent is the indentation unit of registry-created writers
const DefaultIndent = "    "

// Registry owns one Writer per output file for the duration of a single
// generation run. It is not safe for concurrent use.
type Registry struct {
	indent    string
	writers   map[string]*Writer
	finalized bool
}

// NewRegistry creates an empty registry whose writers indent with indent
// (DefaultIndent when empty)
func NewRegistry(indent string) *Registry {
	if indent == "" {
		indent = DefaultIndent
	}
	return &Registry{
		indent:  indent,
		writers: make(map[string]*Writer),
	}
}

// Writer returns the writer for fileName, creating it on first use. Every
// call with the same name returns the same writer.
func (r *Registry) Writer(fileName string) (*Writer, error) {
	if r.finalized {
		return nil, ErrFinalized
	}
	if w, ok := r.writers[fileName]; ok {
		return w, nil
	}

	w := NewWriter(r.indent, WithTrimBlankLines(), WithTrimTrailingSpaces())
	r.writers[fileName] = w
	return w, nil
}

// Finalize drains every writer into a file name to content map. The registry
// accepts no further use afterwards.
func (r *Registry) Finalize() (map[string]string, error) {
	if r.finalized {
		return nil, ErrFinalized
	}
	r.finalized = true

	files := make(map[string]string, len(r.writers))
	for name, w := range r.writers {
		files[name] = w.String()
	}
	r.writers = nil
	return files, nil
}
