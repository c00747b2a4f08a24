package vpath

import (
	"testing"
)

func TestNewClassifiesPaths(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Kind
	}{
		{"absolute", "/usr/bin/swift", KindAbsolute},
		{"relative", "a.swift", KindRelative},
		{"relative with dirs", "build/a.swift", KindRelative},
		{"dot relative", "./a.swift", KindRelative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.in).Kind(); got != tt.want {
				t.Errorf("New(%q).Kind() = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		name string
		path VirtualPath
		want string
	}{
		{"swift source", NewRelative("a.swift"), "swift"},
		{"no extension", NewRelative("Makefile"), ""},
		{"dotfile", NewRelative(".hidden"), ""},
		{"nested", NewAbsolute("/x/y/a.o"), "o"},
		{"stdin", StandardInput(), ""},
		{"stdout", StandardOutput(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.path.Extension(); got != tt.want {
				t.Errorf("Extension() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBasenameWithoutExt(t *testing.T) {
	tests := []struct {
		path VirtualPath
		want string
	}{
		{NewRelative("dir/libfoo.dylib"), "libfoo"},
		{NewRelative("a.swift"), "a"},
		{NewAbsolute("/x/Makefile"), "Makefile"},
	}
	for _, tt := range tests {
		if got := tt.path.BasenameWithoutExt(); got != tt.want {
			t.Errorf("BasenameWithoutExt(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestReplacingExtension(t *testing.T) {
	p := NewRelative("build/main.swift").ReplacingExtension(FileTypeObject)
	if p.Name() != "build/main.o" {
		t.Errorf("got %q, want build/main.o", p.Name())
	}
	if p.Kind() != KindRelative {
		t.Errorf("kind changed to %v", p.Kind())
	}

	opt := NewRelative("main.swift").ReplacingExtension(FileTypeYAMLOptRecord)
	if opt.Name() != "main.opt.yaml" {
		t.Errorf("got %q, want main.opt.yaml", opt.Name())
	}
}

func TestStandardStreams(t *testing.T) {
	in := StandardInput()
	if in.Name() != "-" {
		t.Errorf("stdin Name() = %q", in.Name())
	}
	if _, ok := in.ParentDirectory(); ok {
		t.Error("stdin must have no parent")
	}
	if _, ok := in.AbsolutePath(); ok {
		t.Error("stdin must have no absolute path")
	}

	defer func() {
		if recover() == nil {
			t.Error("appending to stdout must panic")
		}
	}()
	StandardOutput().AppendingComponent("x")
}

func TestResolvedRelativeTo(t *testing.T) {
	wd := NewAbsolute("/work")

	rel := NewRelative("a.o").ResolvedRelativeTo(wd)
	if got, ok := rel.AbsolutePath(); !ok || got != "/work/a.o" {
		t.Errorf("resolved = %q, ok=%v", got, ok)
	}

	abs := NewAbsolute("/elsewhere/a.o").ResolvedRelativeTo(wd)
	if abs.Name() != "/elsewhere/a.o" {
		t.Errorf("absolute path was rebased: %q", abs.Name())
	}

	tmp := NewTemporary("a.o").ResolvedRelativeTo(wd)
	if !tmp.IsTemporary() || tmp.Name() != "a.o" {
		t.Errorf("temporary was rebased: %q", tmp.Name())
	}
}

func TestTemporaryWithUniqueBasename(t *testing.T) {
	a := NewTemporaryWithUniqueBasename("sources", FileTypeSwift)
	b := NewTemporaryWithUniqueBasename("sources", FileTypeSwift)
	if a.Name() == b.Name() {
		t.Errorf("basenames not unique: %q", a.Name())
	}
	if a.Extension() != "swift" {
		t.Errorf("extension = %q", a.Extension())
	}
	if !a.IsTemporary() {
		t.Error("not temporary")
	}
}

func TestFileTypeFromExtension(t *testing.T) {
	if ft, ok := FileTypeFromExtension("swift"); !ok || ft != FileTypeSwift {
		t.Errorf("swift → %v, %v", ft, ok)
	}
	// Unknown extensions classify as linkable objects.
	if ft, ok := FileTypeFromExtension("dat"); ok || ft != FileTypeObject {
		t.Errorf("dat → %v, %v", ft, ok)
	}
}
