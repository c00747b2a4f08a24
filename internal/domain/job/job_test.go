package job

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cltnschlosser/swift-driver/internal/domain/vpath"
)

func TestCommandLineQuoting(t *testing.T) {
	j := Job{
		Kind:      KindCompile,
		Tool:      "/usr/bin/swift-frontend",
		Arguments: []string{"-c", "a file.swift", "-o", "a.o", "plain"},
	}
	assert.Equal(t, "/usr/bin/swift-frontend -c 'a file.swift' -o a.o plain", j.CommandLine())
}

func TestCommandLineEmbeddedQuote(t *testing.T) {
	j := Job{Tool: "tool", Arguments: []string{`it's`}}
	assert.Equal(t, `tool 'it'"'"'s'`, j.CommandLine())
}

func TestPrimaryOutput(t *testing.T) {
	j := Job{}
	_, ok := j.PrimaryOutput()
	assert.False(t, ok)

	j.Outputs = []vpath.TypedVirtualPath{
		{File: vpath.NewRelative("a.o"), Type: vpath.FileTypeObject},
		{File: vpath.NewRelative("a.d"), Type: vpath.FileTypeDependencies},
	}
	primary, ok := j.PrimaryOutput()
	assert.True(t, ok)
	assert.Equal(t, "a.o", primary.File.Name())
}
