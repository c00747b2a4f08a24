package driver

import (
	"github.com/cltnschlosser/swift-driver/internal/domain/vpath"
)

// LinkOutputType selects what the linker produces.
type LinkOutputType int

const (
	// LinkExecutable links a runnable image.
	LinkExecutable LinkOutputType = iota
	// LinkDynamicLibrary links a shared library.
	LinkDynamicLibrary
	// LinkStaticLibrary archives a static library.
	LinkStaticLibrary
)

// String returns the link-output name.
func (t LinkOutputType) String() string {
	switch t {
	case LinkExecutable:
		return "executable"
	case LinkDynamicLibrary:
		return "dynamic library"
	case LinkStaticLibrary:
		return "static library"
	default:
		return "unknown"
	}
}

// DebugInfoFormat selects the debug-info container format.
type DebugInfoFormat string

// Debug info formats.
const (
	DebugInfoFormatDwarf    DebugInfoFormat = "dwarf"
	DebugInfoFormatCodeView DebugInfoFormat = "codeview"
)

// DebugInfoLevel selects how much debug info the compiler emits.
type DebugInfoLevel int

const (
	// DebugInfoLevelNone emits no debug info.
	DebugInfoLevelNone DebugInfoLevel = iota
	// DebugInfoLevelLineTables emits line tables only.
	DebugInfoLevelLineTables
	// DebugInfoLevelDwarfTypes emits full debug info with DWARF type
	// descriptions.
	DebugInfoLevelDwarfTypes
	// DebugInfoLevelASTTypes emits full debug info referencing the
	// serialized module for types.
	DebugInfoLevelASTTypes
)

// RequiresModule reports whether the level needs a serialized module to
// resolve type references.
func (l DebugInfoLevel) RequiresModule() bool {
	return l == DebugInfoLevelASTTypes || l == DebugInfoLevelDwarfTypes
}

// DebugInfo is the resolved debug-information configuration.
type DebugInfo struct {
	Format       DebugInfoFormat
	Level        DebugInfoLevel
	ShouldVerify bool
}

// ModuleOutputKind says how the serialized module is produced.
type ModuleOutputKind int

const (
	// ModuleOutputNone emits no module.
	ModuleOutputNone ModuleOutputKind = iota
	// ModuleOutputTopLevel emits the module as a requested product.
	ModuleOutputTopLevel
	// ModuleOutputAuxiliary emits the module as a build byproduct.
	ModuleOutputAuxiliary
)

// ModuleOutputInfo is the resolved module plan.
type ModuleOutputInfo struct {
	Kind ModuleOutputKind
	// Path is set unless Kind is ModuleOutputNone.
	Path vpath.VirtualPath
	// Name is the module name.
	Name string
	// NameIsFallback records that the name was derived rather than
	// given.
	NameIsFallback bool
}

// LTOKind selects link-time optimization.
type LTOKind string

// LTO kinds.
const (
	LTOFull LTOKind = "llvm-full"
	LTOThin LTOKind = "llvm-thin"
)

// OptimizationRecordFormat selects the opt-record serialization.
type OptimizationRecordFormat string

// Optimization record formats.
const (
	OptRecordYAML      OptimizationRecordFormat = "yaml"
	OptRecordBitstream OptimizationRecordFormat = "bitstream"
)

// Sanitizer names accepted by -sanitize=.
const (
	SanitizerAddress   = "address"
	SanitizerThread    = "thread"
	SanitizerUndefined = "undefined"
	SanitizerFuzzer    = "fuzzer"
	SanitizerScudo     = "scudo"
)
