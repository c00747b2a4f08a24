// Package toolchain selects the target toolchain by triple and exposes
// the small capability set the driver needs from it: tool lookup,
// sanitizer runtime checks, and the default SDK.
package toolchain

import (
	"fmt"
	"path/filepath"

	"github.com/cltnschlosser/swift-driver/internal/domain/triple"
	"github.com/cltnschlosser/swift-driver/internal/ports"
)

// Kind discriminates the toolchain variants.
type Kind int

const (
	// KindDarwin drives Apple platforms.
	KindDarwin Kind = iota
	// KindGenericUnix drives Linux, FreeBSD and Haiku.
	KindGenericUnix
	// KindWebAssembly drives WASI targets.
	KindWebAssembly
)

// String returns the toolchain name.
func (k Kind) String() string {
	switch k {
	case KindDarwin:
		return "darwin"
	case KindGenericUnix:
		return "unix"
	case KindWebAssembly:
		return "wasm"
	default:
		return "unknown"
	}
}

// UnsupportedTargetError reports a triple no toolchain can drive.
type UnsupportedTargetError struct {
	Triple triple.Triple
}

// Error implements error.
func (e *UnsupportedTargetError) Error() string {
	return fmt.Sprintf("unsupported target '%s'", e.Triple)
}

// Toolchain is a tagged selector over the variant behaviors. Dispatch is
// by the kind tag; there is no inheritance.
type Toolchain struct {
	Kind Kind
}

// Select picks the toolchain for the triple's OS family. Windows is
// recognized but has no toolchain, so it fails like any other
// unsupported target, naming the triple.
func Select(t triple.Triple) (Toolchain, error) {
	switch t.Family() {
	case triple.FamilyDarwin:
		return Toolchain{Kind: KindDarwin}, nil
	case triple.FamilyLinux, triple.FamilyFreeBSD, triple.FamilyHaiku:
		return Toolchain{Kind: KindGenericUnix}, nil
	case triple.FamilyWASI:
		return Toolchain{Kind: KindWebAssembly}, nil
	default:
		return Toolchain{}, &UnsupportedTargetError{Triple: t}
	}
}

// FrontendExecutableName returns the frontend binary's name.
func (tc Toolchain) FrontendExecutableName() string {
	return "swift-frontend"
}

// LookupTool resolves a tool name against the tools directory when one
// is set; otherwise the name is left for PATH resolution.
func (tc Toolchain) LookupTool(name, toolsDirectory string) string {
	if toolsDirectory == "" {
		return name
	}
	return filepath.Join(toolsDirectory, name)
}

// SanitizerRuntimeLibName returns the name of the runtime library that
// must ship with the toolchain for the sanitizer to be usable.
func (tc Toolchain) SanitizerRuntimeLibName(sanitizer string, t triple.Triple) string {
	switch tc.Kind {
	case KindDarwin:
		return fmt.Sprintf("libclang_rt.%s_osx_dynamic.dylib", sanitizer)
	default:
		return fmt.Sprintf("libclang_rt.%s-%s.a", sanitizer, t.Arch)
	}
}

// RuntimeLibraryExists reports whether the sanitizer's runtime library
// is present under the resource directory. Without a resource directory
// the library is assumed present; the frontend re-checks at compile
// time.
func (tc Toolchain) RuntimeLibraryExists(sanitizer string, t triple.Triple, resourceDir string, fs ports.FileSystem) bool {
	if resourceDir == "" {
		return true
	}
	lib := filepath.Join(resourceDir, "clang", "lib", t.OSNameWithoutVersion(), tc.SanitizerRuntimeLibName(sanitizer, t))
	return fs.Exists(lib)
}

// DefaultSDKPath returns the toolchain's fallback SDK, when it has one.
func (tc Toolchain) DefaultSDKPath(fs ports.FileSystem) (string, bool) {
	if tc.Kind != KindDarwin {
		return "", false
	}
	const cltSDK = "/Library/Developer/CommandLineTools/SDKs/MacOSX.sdk"
	if fs.Exists(cltSDK) {
		return cltSDK, true
	}
	return "", false
}
