package writer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_SameWriterPerFile(t *testing.T) {
	// Test: a file name maps to exactly one writer
	r := NewRegistry("")

	a, err := r.Writer("City.h")
	require.NoError(t, err)
	b, err := r.Writer("City.h")
	require.NoError(t, err)
	c, err := r.Writer("City.cpp")
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestRegistry_AppendsAcrossCallers(t *testing.T) {
	// Test: writes from different call sites accumulate in one file
	r := NewRegistry("")

	first, err := r.Writer("shared.h")
	require.NoError(t, err)
	first.WriteLine("// one")

	second, err := r.Writer("shared.h")
	require.NoError(t, err)
	second.WriteLine("// two")

	files, err := r.Finalize()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"shared.h": "// one\n// two\n"}, files)
}

func TestRegistry_WritersUsePolicies(t *testing.T) {
	// Test: registry writers indent with four spaces and trim whitespace
	r := NewRegistry("")

	w, err := r.Writer("A.h")
	require.NoError(t, err)
	w.WriteLine("class A {")
	w.Indent()
	w.WriteLine("A();  ")
	w.WriteLine("")
	w.WriteLine("")
	require.NoError(t, w.Dedent())
	w.WriteLine("};")

	files, err := r.Finalize()
	require.NoError(t, err)
	assert.Equal(t, "class A {\n    A();\n\n};\n", files["A.h"])
}

func TestRegistry_Finalize(t *testing.T) {
	// Test: finalize drains all writers and closes the registry
	r := NewRegistry("\t")

	w, err := r.Writer("x.h")
	require.NoError(t, err)
	w.WriteLine("x")
	_, err = r.Writer("empty.h")
	require.NoError(t, err)

	files, err := r.Finalize()
	require.NoError(t, err)
	assert.Equal(t, "x\n", files["x.h"])
	assert.Equal(t, "", files["empty.h"])

	_, err = r.Writer("x.h")
	assert.ErrorIs(t, err, ErrFinalized)

	_, err = r.Finalize()
	assert.ErrorIs(t, err, ErrFinalized)
}
