package vpath

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Kind discriminates the cases of a VirtualPath.
type Kind uint8

const (
	// KindRelative is a path resolved against the working directory.
	KindRelative Kind = iota
	// KindAbsolute is a path anchored at the filesystem root.
	KindAbsolute
	// KindTemporary is a relative path materialized by the executor in a
	// build-private directory.
	KindTemporary
	// KindStandardInput is the process's standard input.
	KindStandardInput
	// KindStandardOutput is the process's standard output.
	KindStandardOutput
	// KindFileList is a response-style list of paths written out before
	// jobs run.
	KindFileList
	// KindTemporaryWithKnownContents is a temporary whose contents are
	// already decided at planning time.
	KindTemporaryWithKnownContents
)

// FileList holds the entries of a KindFileList path.
type FileList struct {
	Entries []VirtualPath
}

// VirtualPath is a logical file location. Temporary paths stay relative
// until the executor materializes them; the standard streams carry no
// path at all.
//
// The zero value is the empty relative path.
type VirtualPath struct {
	kind     Kind
	path     string
	contents string    // payload for KindTemporaryWithKnownContents
	list     *FileList // payload for KindFileList
}

// New constructs a path from a string: absolute when the string is a
// valid absolute path, relative otherwise.
func New(path string) VirtualPath {
	if filepath.IsAbs(path) {
		return VirtualPath{kind: KindAbsolute, path: filepath.Clean(path)}
	}
	return VirtualPath{kind: KindRelative, path: path}
}

// NewAbsolute constructs an absolute path.
func NewAbsolute(path string) VirtualPath {
	return VirtualPath{kind: KindAbsolute, path: filepath.Clean(path)}
}

// NewRelative constructs a relative path.
func NewRelative(path string) VirtualPath {
	return VirtualPath{kind: KindRelative, path: path}
}

// NewTemporary constructs a temporary path. The path is kept relative
// even though its materialization will be absolute.
func NewTemporary(path string) VirtualPath {
	return VirtualPath{kind: KindTemporary, path: path}
}

// NewTemporaryWithUniqueBasename constructs a temporary whose basename is
// "<prefix>-<token>.<ext>" with a unique token per call.
func NewTemporaryWithUniqueBasename(prefix string, t FileType) VirtualPath {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	name := prefix + "-" + token
	if ext := t.Ext(); ext != "" {
		name += "." + ext
	}
	return NewTemporary(name)
}

// NewFileList constructs a file-list path with known entries.
func NewFileList(path string, entries []VirtualPath) VirtualPath {
	return VirtualPath{kind: KindFileList, path: path, list: &FileList{Entries: entries}}
}

// NewTemporaryWithKnownContents constructs a temporary whose contents
// are fixed at planning time.
func NewTemporaryWithKnownContents(path string, contents []byte) VirtualPath {
	return VirtualPath{kind: KindTemporaryWithKnownContents, path: path, contents: string(contents)}
}

// StandardInput returns the standard-input path.
func StandardInput() VirtualPath {
	return VirtualPath{kind: KindStandardInput}
}

// StandardOutput returns the standard-output path.
func StandardOutput() VirtualPath {
	return VirtualPath{kind: KindStandardOutput}
}

// Kind returns the case of the path.
func (p VirtualPath) Kind() Kind {
	return p.kind
}

// IsTemporary reports whether the executor materializes this path.
func (p VirtualPath) IsTemporary() bool {
	switch p.kind {
	case KindTemporary, KindFileList, KindTemporaryWithKnownContents:
		return true
	default:
		return false
	}
}

// IsStandardStream reports whether the path is stdin or stdout.
func (p VirtualPath) IsStandardStream() bool {
	return p.kind == KindStandardInput || p.kind == KindStandardOutput
}

// Name returns the path string, or "-" for the standard streams.
func (p VirtualPath) Name() string {
	if p.IsStandardStream() {
		return "-"
	}
	return p.path
}

// String returns Name.
func (p VirtualPath) String() string {
	return p.Name()
}

// KnownContents returns the planning-time contents of a
// TemporaryWithKnownContents path.
func (p VirtualPath) KnownContents() ([]byte, bool) {
	if p.kind != KindTemporaryWithKnownContents {
		return nil, false
	}
	return []byte(p.contents), true
}

// List returns the entries of a FileList path.
func (p VirtualPath) List() (*FileList, bool) {
	if p.kind != KindFileList {
		return nil, false
	}
	return p.list, true
}

// Extension returns the basename's extension without the dot, or "" when
// there is none. The standard streams have no extension.
func (p VirtualPath) Extension() string {
	if p.IsStandardStream() {
		return ""
	}
	base := filepath.Base(p.path)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return base[i+1:]
	}
	return ""
}

// Basename returns the last path component. The standard streams have no
// basename.
func (p VirtualPath) Basename() string {
	if p.IsStandardStream() {
		return ""
	}
	return filepath.Base(p.path)
}

// BasenameWithoutExt returns the last component with its extension
// removed.
func (p VirtualPath) BasenameWithoutExt() string {
	base := p.Basename()
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}

// AbsolutePath returns the path string when the path is absolute.
func (p VirtualPath) AbsolutePath() (string, bool) {
	if p.kind != KindAbsolute {
		return "", false
	}
	return p.path, true
}

// ParentDirectory returns the containing directory, preserving the path
// case. The standard streams have no parent.
func (p VirtualPath) ParentDirectory() (VirtualPath, bool) {
	if p.IsStandardStream() {
		return VirtualPath{}, false
	}
	return VirtualPath{kind: p.kind, path: filepath.Dir(p.path)}, true
}

// AppendingComponent returns the path extended by one literal component.
// Appending to a standard stream is a programmer error.
func (p VirtualPath) AppendingComponent(component string) VirtualPath {
	if p.IsStandardStream() {
		panic("vpath: cannot append a component to a standard stream")
	}
	return VirtualPath{kind: p.kind, path: filepath.Join(p.path, component)}
}

// ReplacingExtension returns the path with its extension swapped for the
// file type's. A type without an extension just drops the old one.
func (p VirtualPath) ReplacingExtension(t FileType) VirtualPath {
	if p.IsStandardStream() {
		panic("vpath: cannot replace the extension of a standard stream")
	}
	dir := filepath.Dir(p.path)
	name := p.BasenameWithoutExt()
	if ext := t.Ext(); ext != "" {
		name += "." + ext
	}
	return VirtualPath{kind: p.kind, path: filepath.Join(dir, name)}
}

// ResolvedRelativeTo rebases a relative path against the given directory.
// Every other case is returned unchanged; temporaries in particular stay
// relative to the executor's build directory.
func (p VirtualPath) ResolvedRelativeTo(dir VirtualPath) VirtualPath {
	if p.kind != KindRelative || dir.IsStandardStream() {
		return p
	}
	return VirtualPath{kind: dir.kind, path: filepath.Join(dir.path, p.path)}
}

// TypedVirtualPath pairs a path with the type of artifact it holds.
type TypedVirtualPath struct {
	File VirtualPath
	Type FileType
}

// String renders "path (type)" for debugging output.
func (t TypedVirtualPath) String() string {
	return t.File.Name() + " (" + t.Type.Tag() + ")"
}
