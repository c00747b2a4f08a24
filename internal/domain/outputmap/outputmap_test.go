package outputmap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cltnschlosser/swift-driver/internal/domain/vpath"
)

type mapReader map[string]string

func (m mapReader) ReadFile(name string) ([]byte, error) {
	if contents, ok := m[name]; ok {
		return []byte(contents), nil
	}
	return nil, fmt.Errorf("open %s: no such file", name)
}

const sampleJSON = `{
  "a.swift": {
    "object": "build/a.o",
    "dependencies": "build/a.d"
  },
  "": {
    "swiftmodule": "build/demo.swiftmodule",
    "swift-dependencies": "build/demo.swiftdeps"
  }
}`

func TestLoadJSON(t *testing.T) {
	fs := mapReader{"/m.json": sampleJSON}
	m, err := Load("/m.json", fs)
	require.NoError(t, err)

	obj, ok := m.ExistingOutput(vpath.NewRelative("a.swift"), vpath.FileTypeObject)
	require.True(t, ok)
	assert.Equal(t, "build/a.o", obj.Name())

	mod, ok := m.ExistingOutputForSingleInput(vpath.FileTypeSwiftModule)
	require.True(t, ok)
	assert.Equal(t, "build/demo.swiftmodule", mod.Name())

	_, ok = m.ExistingOutput(vpath.NewRelative("b.swift"), vpath.FileTypeObject)
	assert.False(t, ok)
}

func TestLoadYAML(t *testing.T) {
	fs := mapReader{"/m.yaml": "a.swift:\n  object: build/a.o\n"}
	m, err := Load("/m.yaml", fs)
	require.NoError(t, err)

	obj, ok := m.ExistingOutput(vpath.NewRelative("a.swift"), vpath.FileTypeObject)
	require.True(t, ok)
	assert.Equal(t, "build/a.o", obj.Name())
}

func TestLoadErrors(t *testing.T) {
	fs := mapReader{"/bad.json": "{not json", "/badtag.json": `{"a.swift": {"bogus": "x"}}`}

	_, err := Load("/missing.json", fs)
	require.Error(t, err)

	_, err = Load("/bad.json", fs)
	require.Error(t, err)

	_, err = Load("/badtag.json", fs)
	require.ErrorContains(t, err, "unknown output type")
}

func TestResolveRelativePaths(t *testing.T) {
	m, err := Parse([]byte(sampleJSON))
	require.NoError(t, err)

	wd := vpath.NewAbsolute("/work")
	resolved := m.ResolveRelativePaths(wd)

	obj, ok := resolved.ExistingOutput(vpath.NewRelative("a.swift"), vpath.FileTypeObject)
	require.True(t, ok)
	assert.Equal(t, "/work/build/a.o", obj.Name())

	// Input keys are untouched.
	_, ok = resolved.ExistingOutput(vpath.NewAbsolute("/work/a.swift"), vpath.FileTypeObject)
	assert.False(t, ok)

	// Idempotent.
	again := resolved.ResolveRelativePaths(wd)
	obj2, ok := again.ExistingOutput(vpath.NewRelative("a.swift"), vpath.FileTypeObject)
	require.True(t, ok)
	assert.Equal(t, obj.Name(), obj2.Name())
}

func TestRenderIsStable(t *testing.T) {
	m, err := Parse([]byte(sampleJSON))
	require.NoError(t, err)

	first := m.Render()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, m.Render())
	}
	assert.Contains(t, first, `"a.swift":`)
	assert.Contains(t, first, "object: build/a.o")
}
