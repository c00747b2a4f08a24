// Package vpath provides the driver's virtual path values: logical file
// locations that may be absolute, relative, temporary, or one of the
// standard streams, paired with a closed enumeration of file types.
package vpath

// FileType identifies the kind of artifact a path refers to.
type FileType int

// The closed set of file types the driver plans for.
const (
	// FileTypeSwift is a Swift source file.
	FileTypeSwift FileType = iota
	// FileTypeObject is a compiled object file.
	FileTypeObject
	// FileTypeLLVMBitcode is serialized LLVM bitcode.
	FileTypeLLVMBitcode
	// FileTypeAssembly is a textual assembly file.
	FileTypeAssembly
	// FileTypeSIL is canonical SIL.
	FileTypeSIL
	// FileTypeRawSIL is SIL before diagnostic passes.
	FileTypeRawSIL
	// FileTypeSIB is a serialized SIL binary.
	FileTypeSIB
	// FileTypeRawSIB is a serialized raw SIL binary.
	FileTypeRawSIB
	// FileTypeLLVMIR is textual LLVM IR.
	FileTypeLLVMIR
	// FileTypeSwiftModule is a serialized module.
	FileTypeSwiftModule
	// FileTypeSwiftDocumentation is a serialized module doc file.
	FileTypeSwiftDocumentation
	// FileTypeSwiftSourceInfo is a serialized source info file.
	FileTypeSwiftSourceInfo
	// FileTypeSwiftInterface is a textual module interface.
	FileTypeSwiftInterface
	// FileTypePrivateSwiftInterface is a textual private module interface.
	FileTypePrivateSwiftInterface
	// FileTypePCH is a precompiled bridging header.
	FileTypePCH
	// FileTypeAST is a dumped AST.
	FileTypeAST
	// FileTypePCM is a precompiled Clang module.
	FileTypePCM
	// FileTypeImportedModules is the list of imported modules.
	FileTypeImportedModules
	// FileTypeIndexData is index-while-building data.
	FileTypeIndexData
	// FileTypeRemap is a remap file produced by the migrator.
	FileTypeRemap
	// FileTypeDependencies is a Make-style dependencies file.
	FileTypeDependencies
	// FileTypeDiagnostics is a serialized diagnostics file.
	FileTypeDiagnostics
	// FileTypeObjCHeader is a generated Objective-C header.
	FileTypeObjCHeader
	// FileTypeModuleTrace is a loaded-module trace.
	FileTypeModuleTrace
	// FileTypeTBD is a text-based dynamic library stub.
	FileTypeTBD
	// FileTypeYAMLOptRecord is a YAML optimization record.
	FileTypeYAMLOptRecord
	// FileTypeBitstreamOptRecord is a bitstream optimization record.
	FileTypeBitstreamOptRecord
	// FileTypeJSONDependencies is dependency-scanner output.
	FileTypeJSONDependencies
	// FileTypeJSONClangDependencies is Clang dependency-scanner output.
	FileTypeJSONClangDependencies
	// FileTypeSwiftDeps is per-input incremental dependency state.
	FileTypeSwiftDeps
	// FileTypeImage is a linked image (executable or library).
	FileTypeImage
)

type fileTypeInfo struct {
	tag string // stable tag used in output file maps and bindings
	ext string // file extension, without the leading dot
}

var fileTypes = map[FileType]fileTypeInfo{
	FileTypeSwift:                 {"swift", "swift"},
	FileTypeObject:                {"object", "o"},
	FileTypeLLVMBitcode:           {"llvm-bc", "bc"},
	FileTypeAssembly:              {"assembly", "s"},
	FileTypeSIL:                   {"sil", "sil"},
	FileTypeRawSIL:                {"raw-sil", "sil"},
	FileTypeSIB:                   {"sib", "sib"},
	FileTypeRawSIB:                {"raw-sib", "sib"},
	FileTypeLLVMIR:                {"llvm-ir", "ll"},
	FileTypeSwiftModule:           {"swiftmodule", "swiftmodule"},
	FileTypeSwiftDocumentation:    {"swiftdoc", "swiftdoc"},
	FileTypeSwiftSourceInfo:       {"swiftsourceinfo", "swiftsourceinfo"},
	FileTypeSwiftInterface:        {"swiftinterface", "swiftinterface"},
	FileTypePrivateSwiftInterface: {"private-swiftinterface", "private.swiftinterface"},
	FileTypePCH:                   {"pch", "pch"},
	FileTypeAST:                   {"ast-dump", "ast"},
	FileTypePCM:                   {"pcm", "pcm"},
	FileTypeImportedModules:       {"imported-modules", "importedmodules"},
	FileTypeIndexData:             {"index-data", ""},
	FileTypeRemap:                 {"remap", "remap"},
	FileTypeDependencies:          {"dependencies", "d"},
	FileTypeDiagnostics:           {"diagnostics", "dia"},
	FileTypeObjCHeader:            {"objc-header", "h"},
	FileTypeModuleTrace:           {"module-trace", "trace.json"},
	FileTypeTBD:                   {"tbd", "tbd"},
	FileTypeYAMLOptRecord:         {"yaml-opt-record", "opt.yaml"},
	FileTypeBitstreamOptRecord:    {"bitstream-opt-record", "opt.bitstream"},
	FileTypeJSONDependencies:      {"json-dependencies", "dependencies.json"},
	FileTypeJSONClangDependencies: {"json-clang-dependencies", "clang-dependencies.json"},
	FileTypeSwiftDeps:             {"swift-dependencies", "swiftdeps"},
	FileTypeImage:                 {"image", "out"},
}

// Tag returns the stable name used to key output file maps and to label
// bindings.
func (t FileType) Tag() string {
	return fileTypes[t].tag
}

// Ext returns the file extension for the type, without the leading dot.
func (t FileType) Ext() string {
	return fileTypes[t].ext
}

// String returns the stable tag.
func (t FileType) String() string {
	return t.Tag()
}

// FileTypeFromTag resolves an output-file-map tag to its type.
func FileTypeFromTag(tag string) (FileType, bool) {
	for t, info := range fileTypes {
		if info.tag == tag {
			return t, true
		}
	}
	return FileTypeObject, false
}

// extensionTypes maps input file extensions to their types. Extensions
// shared by several types resolve to the canonical one.
var extensionTypes = map[string]FileType{
	"swift":           FileTypeSwift,
	"o":               FileTypeObject,
	"bc":              FileTypeLLVMBitcode,
	"s":               FileTypeAssembly,
	"sil":             FileTypeSIL,
	"sib":             FileTypeSIB,
	"ll":              FileTypeLLVMIR,
	"swiftmodule":     FileTypeSwiftModule,
	"swiftdoc":        FileTypeSwiftDocumentation,
	"swiftsourceinfo": FileTypeSwiftSourceInfo,
	"swiftinterface":  FileTypeSwiftInterface,
	"pch":             FileTypePCH,
	"ast":             FileTypeAST,
	"pcm":             FileTypePCM,
	"remap":           FileTypeRemap,
	"d":               FileTypeDependencies,
	"dia":             FileTypeDiagnostics,
	"h":               FileTypeObjCHeader,
	"tbd":             FileTypeTBD,
	"swiftdeps":       FileTypeSwiftDeps,
}

// FileTypeFromExtension maps a file extension to its type. Unknown
// extensions classify as object files, matching how linkable inputs with
// arbitrary extensions are treated.
func FileTypeFromExtension(ext string) (FileType, bool) {
	if t, ok := extensionTypes[ext]; ok {
		return t, true
	}
	return FileTypeObject, false
}
