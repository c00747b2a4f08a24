// Package triple parses LLVM-style target triples and classifies them
// into the families the driver cares about.
package triple

import "strings"

// OSFamily groups target operating systems by toolchain behavior.
type OSFamily int

const (
	// FamilyUnknown is any OS the driver has no toolchain for.
	FamilyUnknown OSFamily = iota
	// FamilyDarwin covers macOS, iOS, tvOS and watchOS.
	FamilyDarwin
	// FamilyLinux is Linux with a GNU-ish userland.
	FamilyLinux
	// FamilyFreeBSD is FreeBSD.
	FamilyFreeBSD
	// FamilyHaiku is Haiku.
	FamilyHaiku
	// FamilyWASI is WebAssembly with a WASI libc.
	FamilyWASI
	// FamilyWindows is Windows.
	FamilyWindows
)

// Triple is a parsed arch-vendor-os(-environment) target descriptor. The
// original spelling is preserved for rendering.
type Triple struct {
	Arch        string
	Vendor      string
	OS          string
	Environment string

	raw string
}

// Parse splits a triple spelling into its components. Two-component
// spellings parse as arch-os; three components with a recognized OS in
// the middle parse as arch-os-environment, otherwise arch-vendor-os.
func Parse(s string) Triple {
	t := Triple{raw: s}
	parts := strings.Split(s, "-")
	switch len(parts) {
	case 1:
		t.Arch = parts[0]
	case 2:
		t.Arch, t.OS = parts[0], parts[1]
	case 3:
		if looksLikeOS(parts[1]) {
			t.Arch, t.OS, t.Environment = parts[0], parts[1], parts[2]
		} else {
			t.Arch, t.Vendor, t.OS = parts[0], parts[1], parts[2]
		}
	default:
		t.Arch, t.Vendor, t.OS = parts[0], parts[1], parts[2]
		t.Environment = strings.Join(parts[3:], "-")
	}
	return t
}

var osPrefixes = []string{
	"macos", "macosx", "darwin", "ios", "tvos", "watchos",
	"linux", "freebsd", "haiku", "wasi", "windows", "win32",
}

func looksLikeOS(s string) bool {
	for _, prefix := range osPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// String returns the original spelling.
func (t Triple) String() string {
	return t.raw
}

// OSNameWithoutVersion strips any trailing version digits from the OS
// component ("macosx10.15" becomes "macosx").
func (t Triple) OSNameWithoutVersion() string {
	return strings.TrimRight(t.OS, "0123456789.")
}

// Family classifies the OS component.
func (t Triple) Family() OSFamily {
	switch t.OSNameWithoutVersion() {
	case "macos", "macosx", "darwin", "ios", "tvos", "watchos":
		return FamilyDarwin
	case "linux":
		return FamilyLinux
	case "freebsd":
		return FamilyFreeBSD
	case "haiku":
		return FamilyHaiku
	case "wasi":
		return FamilyWASI
	case "windows", "win32":
		return FamilyWindows
	default:
		return FamilyUnknown
	}
}

// IsSimulator reports whether the environment marks a simulator target.
func (t Triple) IsSimulator() bool {
	return t.Environment == "simulator"
}

// Is64Bit reports whether the architecture is a 64-bit one.
func (t Triple) Is64Bit() bool {
	switch t.Arch {
	case "x86_64", "amd64", "arm64", "arm64e", "aarch64", "aarch64_be",
		"ppc64", "ppc64le", "riscv64", "s390x", "mips64", "mips64el", "wasm64":
		return true
	default:
		return false
	}
}
