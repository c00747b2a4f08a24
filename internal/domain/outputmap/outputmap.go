// Package outputmap loads and queries the output file map: a declarative
// side table mapping (input path, output type) to a concrete path.
package outputmap

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cltnschlosser/swift-driver/internal/domain/vpath"
)

// singleInputKey is the distinguished key carrying whole-module outputs.
const singleInputKey = ""

// fileReader is the slice of the filesystem the loader needs.
type fileReader interface {
	ReadFile(name string) ([]byte, error)
}

// OutputFileMap maps input paths to their per-type output paths. The
// empty input key holds outputs of a single whole-module compilation.
type OutputFileMap struct {
	entries map[string]map[vpath.FileType]vpath.VirtualPath
	// resolvedAgainst records the base a ResolveRelativePaths call
	// already applied, making the rebase idempotent.
	resolvedAgainst string
}

// Load reads and decodes the map at path. Files ending in .yaml or .yml
// decode as YAML; everything else decodes as JSON.
func Load(path string, fs fileReader) (*OutputFileMap, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]map[string]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, err
	}
	return fromRaw(raw)
}

// Parse decodes a JSON output file map from memory.
func Parse(data []byte) (*OutputFileMap, error) {
	var raw map[string]map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return fromRaw(raw)
}

func fromRaw(raw map[string]map[string]string) (*OutputFileMap, error) {
	m := &OutputFileMap{entries: make(map[string]map[vpath.FileType]vpath.VirtualPath, len(raw))}
	for input, outputs := range raw {
		typed := make(map[vpath.FileType]vpath.VirtualPath, len(outputs))
		for tag, path := range outputs {
			t, ok := vpath.FileTypeFromTag(tag)
			if !ok {
				return nil, fmt.Errorf("unknown output type %q for input %q", tag, input)
			}
			typed[t] = vpath.New(path)
		}
		m.entries[input] = typed
	}
	return m, nil
}

// ExistingOutput returns the mapped output for the given input and type.
func (m *OutputFileMap) ExistingOutput(input vpath.VirtualPath, t vpath.FileType) (vpath.VirtualPath, bool) {
	outputs, ok := m.entries[input.Name()]
	if !ok {
		return vpath.VirtualPath{}, false
	}
	p, ok := outputs[t]
	return p, ok
}

// ExistingOutputForSingleInput returns the whole-module output for the
// given type.
func (m *OutputFileMap) ExistingOutputForSingleInput(t vpath.FileType) (vpath.VirtualPath, bool) {
	outputs, ok := m.entries[singleInputKey]
	if !ok {
		return vpath.VirtualPath{}, false
	}
	p, ok := outputs[t]
	return p, ok
}

// ResolveRelativePaths returns a map whose relative value paths are
// rebased against the given directory. Input keys are left untouched.
// Resolving twice against the same base is the identity.
func (m *OutputFileMap) ResolveRelativePaths(relativeTo vpath.VirtualPath) *OutputFileMap {
	if m.resolvedAgainst == relativeTo.Name() {
		return m
	}
	out := &OutputFileMap{
		entries:         make(map[string]map[vpath.FileType]vpath.VirtualPath, len(m.entries)),
		resolvedAgainst: relativeTo.Name(),
	}
	for input, outputs := range m.entries {
		resolved := make(map[vpath.FileType]vpath.VirtualPath, len(outputs))
		for t, p := range outputs {
			resolved[t] = p.ResolvedRelativeTo(relativeTo)
		}
		out.entries[input] = resolved
	}
	return out
}

// Render dumps the map in a stable, human-readable form for
// -driver-print-output-file-map.
func (m *OutputFileMap) Render() string {
	inputs := make([]string, 0, len(m.entries))
	for input := range m.entries {
		inputs = append(inputs, input)
	}
	sort.Strings(inputs)

	var b strings.Builder
	for _, input := range inputs {
		outputs := m.entries[input]
		tags := make([]string, 0, len(outputs))
		byTag := make(map[string]vpath.VirtualPath, len(outputs))
		for t, p := range outputs {
			tags = append(tags, t.Tag())
			byTag[t.Tag()] = p
		}
		sort.Strings(tags)
		fmt.Fprintf(&b, "%q:\n", input)
		for _, tag := range tags {
			fmt.Fprintf(&b, "  %s: %s\n", tag, byTag[tag].Name())
		}
	}
	return b.String()
}
