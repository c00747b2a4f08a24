package driver

import (
	"fmt"

	"github.com/cltnschlosser/swift-driver/internal/domain/options"
	"github.com/cltnschlosser/swift-driver/internal/domain/vpath"
)

// resolveLTO records the -lto= kind. The object-like primary output
// switches to bitcode when LTO is on.
func (d *Driver) resolveLTO() {
	arg, ok := d.ParsedOptions.GetLastArgument(optLTO)
	if !ok {
		return
	}
	switch LTOKind(arg) {
	case LTOFull:
		kind := LTOFull
		d.LTO = &kind
	case LTOThin:
		kind := LTOThin
		d.LTO = &kind
	default:
		d.diags.Error("invalid value '%s' in '%s'", arg, optLTO)
	}
}

// objectLikeFileType is the primary output feeding the linker: bitcode
// under LTO, a machine object otherwise.
func (d *Driver) objectLikeFileType() vpath.FileType {
	if d.LTO != nil {
		return vpath.FileTypeLLVMBitcode
	}
	return vpath.FileTypeObject
}

// computePrimaryOutputs resolves the compiler's primary output type and
// the expected linker product from the mode option group.
func (d *Driver) computePrimaryOutputs() error {
	setCompile := func(t vpath.FileType) {
		d.CompilerOutputType = &t
	}
	setLink := func(t LinkOutputType) {
		d.LinkerOutputType = &t
	}

	modeOpt, hasModeOpt := d.ParsedOptions.GetLastInGroup(groupMode)
	if hasModeOpt {
		switch modeOpt.Option {
		case optEmitExecutable:
			if d.ParsedOptions.HasArgument(optStatic) {
				return &ConflictingOptionsError{First: optStatic.String(), Second: optEmitExecutable.String()}
			}
			setCompile(d.objectLikeFileType())
			setLink(LinkExecutable)
		case optEmitLibrary:
			if d.ParsedOptions.HasArgument(optStatic) {
				setLink(LinkStaticLibrary)
			} else {
				setLink(LinkDynamicLibrary)
			}
			setCompile(d.objectLikeFileType())
		case optEmitObject:
			setCompile(vpath.FileTypeObject)
		case optEmitAssembly:
			setCompile(vpath.FileTypeAssembly)
		case optEmitSIL:
			setCompile(vpath.FileTypeSIL)
		case optEmitSILGen:
			setCompile(vpath.FileTypeRawSIL)
		case optEmitSIB:
			setCompile(vpath.FileTypeSIB)
		case optEmitSIBGen:
			setCompile(vpath.FileTypeRawSIB)
		case optEmitIR:
			setCompile(vpath.FileTypeLLVMIR)
		case optEmitBC:
			setCompile(vpath.FileTypeLLVMBitcode)
		case optDumpAST:
			setCompile(vpath.FileTypeAST)
		case optEmitPCM:
			setCompile(vpath.FileTypePCM)
		case optEmitImportedModules:
			setCompile(vpath.FileTypeImportedModules)
		case optIndexFile:
			setCompile(vpath.FileTypeIndexData)
		case optUpdateCode:
			setCompile(vpath.FileTypeRemap)
		case optScanDependencies:
			setCompile(vpath.FileTypeJSONDependencies)
		case optScanClangDependencies:
			setCompile(vpath.FileTypeJSONClangDependencies)
		case optI:
			return fmt.Errorf("the flag '-i' is no longer supported; use 'swift input-filename'")
		case optRepl, optLLDBRepl, optInterpret,
			optParse, optTypecheck, optDumpParse, optPrintAST, optResolveImports:
			// No compile output.
		}
	} else {
		switch {
		case d.ParsedOptions.HasArgument(optEmitModule, optEmitModulePath):
			setCompile(vpath.FileTypeSwiftModule)
		case d.Kind == DriverKindInteractive:
			// No compile output.
		default:
			setCompile(d.objectLikeFileType())
			setLink(LinkExecutable)
		}
	}

	if out, ok := d.ParsedOptions.GetLastArgument(optOutput); ok {
		p := d.effectivePath(vpath.New(out))
		d.ExplicitOutputPath = &p
	}

	d.validateEmbedBitcode()
	return nil
}

// validateEmbedBitcode erases -embed-bitcode[-marker] when the primary
// output is not an object.
func (d *Driver) validateEmbedBitcode() {
	embed := d.ParsedOptions.HasArgument(optEmbedBitcode)
	marker := d.ParsedOptions.HasArgument(optEmbedBitcodeMarker)
	if !embed && !marker {
		return
	}
	if d.CompilerOutputType != nil && *d.CompilerOutputType == vpath.FileTypeObject {
		return
	}
	flag := optEmbedBitcode
	if !embed {
		flag = optEmbedBitcodeMarker
	}
	d.diags.Warn("ignoring '%s' since no object file is being generated", flag)
	d.ParsedOptions.EraseArgument(optEmbedBitcode, optEmbedBitcodeMarker)
}

// supplementaryPath applies the shared placement policy for one output
// kind: an explicit path flag wins and consumes the request flags; with
// no request the output is skipped; a whole-module compilation prefers
// the output file map's single-input entry; then placement follows -o;
// finally the module name in the current directory.
func (d *Driver) supplementaryPath(isOutputFlags []*options.Option, pathFlag *options.Option, t vpath.FileType) *vpath.VirtualPath {
	if arg, ok := d.ParsedOptions.GetLastArgument(pathFlag); ok {
		d.ParsedOptions.HasArgument(isOutputFlags...)
		p := d.effectivePath(vpath.New(arg))
		return &p
	}
	if len(isOutputFlags) == 0 || !d.ParsedOptions.HasArgument(isOutputFlags...) {
		return nil
	}
	p := d.defaultSupplementaryPath(t)
	return &p
}

// defaultSupplementaryPath places a requested output without an
// explicit path.
func (d *Driver) defaultSupplementaryPath(t vpath.FileType) vpath.VirtualPath {
	if d.Mode.IsSingleCompilation() && d.OutputFileMap != nil {
		if p, ok := d.OutputFileMap.ExistingOutputForSingleInput(t); ok {
			return p
		}
	}
	if out, ok := d.ParsedOptions.GetLastArgument(optOutput); ok {
		outPath := d.effectivePath(vpath.New(out))
		if d.CompilerOutputType != nil && *d.CompilerOutputType == t {
			return outPath
		}
		if parent, ok := outPath.ParentDirectory(); ok {
			return parent.AppendingComponent(d.ModuleOutputInfo.Name).ReplacingExtension(t)
		}
	}
	return d.effectivePath(vpath.NewRelative(d.ModuleOutputInfo.Name).ReplacingExtension(t))
}

// moduleAdjacentPath places a module-adjacent artifact next to the
// module output, swapping the extension.
func (d *Driver) moduleAdjacentPath(t vpath.FileType) vpath.VirtualPath {
	return d.ModuleOutputInfo.Path.ReplacingExtension(t)
}

// computeSupplementaryOutputs derives every side-band artifact path.
func (d *Driver) computeSupplementaryOutputs() {
	d.DependenciesFilePath = d.supplementaryPath(
		[]*options.Option{optEmitDependencies}, optEmitDependenciesPath, vpath.FileTypeDependencies)
	d.SerializedDiagnosticsFilePath = d.supplementaryPath(
		[]*options.Option{optSerializeDiagnostics}, optSerializeDiagnosticsPath, vpath.FileTypeDiagnostics)
	d.ObjCHeaderOutputPath = d.supplementaryPath(
		[]*options.Option{optEmitObjCHeader}, optEmitObjCHeaderPath, vpath.FileTypeObjCHeader)
	d.TBDPath = d.supplementaryPath(
		[]*options.Option{optEmitTBD}, optEmitTBDPath, vpath.FileTypeTBD)

	d.computeLoadedModuleTracePath()
	d.computeInterfacePaths()
	d.computeModuleAdjacentOutputs()
	d.computeOptimizationRecordPath()
}

// computeLoadedModuleTracePath honors the explicit flag pair and the
// SWIFT_LOADED_MODULE_TRACE_FILE environment override.
func (d *Driver) computeLoadedModuleTracePath() {
	if arg, ok := d.ParsedOptions.GetLastArgument(optEmitLoadedModuleTracePath); ok {
		d.ParsedOptions.HasArgument(optEmitLoadedModuleTrace)
		p := d.effectivePath(vpath.New(arg))
		d.LoadedModuleTracePath = &p
		return
	}
	if env, ok := d.env.Get("SWIFT_LOADED_MODULE_TRACE_FILE"); ok && env != "" {
		d.ParsedOptions.HasArgument(optEmitLoadedModuleTrace)
		p := d.effectivePath(vpath.New(env))
		d.LoadedModuleTracePath = &p
		return
	}
	if !d.ParsedOptions.HasArgument(optEmitLoadedModuleTrace) {
		return
	}
	p := d.defaultSupplementaryPath(vpath.FileTypeModuleTrace)
	d.LoadedModuleTracePath = &p
}

// computeInterfacePaths plans the textual module interfaces, preferring
// placement next to the module output.
func (d *Driver) computeInterfacePaths() {
	if arg, ok := d.ParsedOptions.GetLastArgument(optEmitModuleInterfacePath); ok {
		d.ParsedOptions.HasArgument(optEmitModuleInterface)
		p := d.effectivePath(vpath.New(arg))
		d.SwiftInterfacePath = &p
	} else if d.ParsedOptions.HasArgument(optEmitModuleInterface) {
		p := d.interfaceDefaultPath(vpath.FileTypeSwiftInterface)
		d.SwiftInterfacePath = &p
	}

	if arg, ok := d.ParsedOptions.GetLastArgument(optEmitPrivateModuleInterfacePath); ok {
		p := d.effectivePath(vpath.New(arg))
		d.SwiftPrivateInterfacePath = &p
	} else if d.SwiftInterfacePath != nil {
		p := d.interfaceDefaultPath(vpath.FileTypePrivateSwiftInterface)
		d.SwiftPrivateInterfacePath = &p
	}
}

func (d *Driver) interfaceDefaultPath(t vpath.FileType) vpath.VirtualPath {
	if d.ModuleOutputInfo.Kind != ModuleOutputNone {
		return d.moduleAdjacentPath(t)
	}
	return d.defaultSupplementaryPath(t)
}

// computeModuleAdjacentOutputs plans the doc and source-info files,
// which are implied by module emission rather than requested by flags.
func (d *Driver) computeModuleAdjacentOutputs() {
	if arg, ok := d.ParsedOptions.GetLastArgument(optEmitModuleDocPath); ok {
		d.ParsedOptions.HasArgument(optEmitModuleDoc)
		p := d.effectivePath(vpath.New(arg))
		d.ModuleDocOutputPath = &p
	} else if d.ModuleOutputInfo.Kind != ModuleOutputNone || d.ParsedOptions.HasArgument(optEmitModuleDoc) {
		if d.ModuleOutputInfo.Kind != ModuleOutputNone {
			p := d.moduleAdjacentPath(vpath.FileTypeSwiftDocumentation)
			d.ModuleDocOutputPath = &p
		} else {
			p := d.defaultSupplementaryPath(vpath.FileTypeSwiftDocumentation)
			d.ModuleDocOutputPath = &p
		}
	}

	if d.ParsedOptions.HasArgument(optAvoidEmitModuleSourceInfo) {
		return
	}
	if arg, ok := d.ParsedOptions.GetLastArgument(optEmitModuleSourceInfoPath); ok {
		d.ParsedOptions.HasArgument(optEmitModuleSourceInfo)
		p := d.effectivePath(vpath.New(arg))
		d.ModuleSourceInfoPath = &p
		return
	}
	if d.ModuleOutputInfo.Kind == ModuleOutputNone && !d.ParsedOptions.HasArgument(optEmitModuleSourceInfo) {
		return
	}
	if d.ModuleOutputInfo.Kind != ModuleOutputNone {
		// A Project/ directory next to the module captures source info
		// when it exists.
		if parent, ok := d.ModuleOutputInfo.Path.ParentDirectory(); ok && !d.ModuleOutputInfo.Path.IsTemporary() {
			project := parent.AppendingComponent("Project")
			if d.fs.IsDirectory(project.Name()) {
				p := project.AppendingComponent(d.ModuleOutputInfo.Path.Basename()).ReplacingExtension(vpath.FileTypeSwiftSourceInfo)
				d.ModuleSourceInfoPath = &p
				return
			}
		}
		p := d.moduleAdjacentPath(vpath.FileTypeSwiftSourceInfo)
		d.ModuleSourceInfoPath = &p
		return
	}
	p := d.defaultSupplementaryPath(vpath.FileTypeSwiftSourceInfo)
	d.ModuleSourceInfoPath = &p
}

// computeOptimizationRecordPath plans the opt-record output and its
// format.
func (d *Driver) computeOptimizationRecordPath() {
	format := OptRecordYAML
	formatKnown := false
	if arg, ok := d.ParsedOptions.GetLastArgument(optSaveOptimizationRecordEQ); ok {
		switch OptimizationRecordFormat(arg) {
		case OptRecordYAML:
			format = OptRecordYAML
		case OptRecordBitstream:
			format = OptRecordBitstream
		default:
			d.diags.Error("invalid value '%s' in '%s'", arg, optSaveOptimizationRecordEQ)
			return
		}
		formatKnown = true
	}
	recordType := vpath.FileTypeYAMLOptRecord
	if format == OptRecordBitstream {
		recordType = vpath.FileTypeBitstreamOptRecord
	}

	if arg, ok := d.ParsedOptions.GetLastArgument(optSaveOptimizationRecordPath); ok {
		d.ParsedOptions.HasArgument(optSaveOptimizationRecord, optSaveOptimizationRecordEQ)
		p := d.effectivePath(vpath.New(arg))
		d.OptimizationRecordPath = &p
		d.OptimizationRecordFormat = format
		return
	}
	if !d.ParsedOptions.HasArgument(optSaveOptimizationRecord) && !formatKnown {
		return
	}
	p := d.defaultSupplementaryPath(recordType)
	d.OptimizationRecordPath = &p
	d.OptimizationRecordFormat = format
}

// computeBridgingHeaderPlan records the imported bridging header and,
// when the mode supports it, where its precompiled form lands.
func (d *Driver) computeBridgingHeaderPlan() {
	header, ok := d.ParsedOptions.GetLastArgument(optImportObjCHeader)
	if !ok {
		return
	}
	headerPath := vpath.New(header)
	d.ImportedObjCHeader = &headerPath

	if !d.Mode.SupportsBridgingPCH() {
		return
	}
	if !d.ParsedOptions.HasFlag(optEnableBridgingPCH, optDisableBridgingPCH, true) {
		return
	}

	if d.OutputFileMap != nil {
		if p, ok := d.OutputFileMap.ExistingOutput(headerPath, vpath.FileTypePCH); ok {
			d.BridgingPrecompiledHeader = &p
			return
		}
	}
	if dir, ok := d.ParsedOptions.GetLastArgument(optPCHOutputDir); ok {
		p := d.effectivePath(vpath.New(dir)).
			AppendingComponent(headerPath.BasenameWithoutExt()).
			ReplacingExtension(vpath.FileTypePCH)
		d.BridgingPrecompiledHeader = &p
		return
	}
	p := vpath.NewTemporaryWithUniqueBasename(headerPath.BasenameWithoutExt(), vpath.FileTypePCH)
	d.BridgingPrecompiledHeader = &p
}
