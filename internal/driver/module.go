package driver

import (
	"strings"
	"unicode"

	"github.com/cltnschlosser/swift-driver/internal/domain/vpath"
)

// stdlibModuleName is reserved for the standard library itself.
const stdlibModuleName = "Swift"

// fallbackModuleName is used when a derived name is invalid and an
// executable is (probably) being built.
const fallbackModuleName = "main"

// badModuleName marks an invalid module name the user must fix.
const badModuleName = "__bad__"

// computeModuleOutputInfo derives the module emission kind, the module
// name, and the module output path.
func (d *Driver) computeModuleOutputInfo() ModuleOutputInfo {
	info := ModuleOutputInfo{Kind: d.computeModuleOutputKind()}

	if info.Kind != ModuleOutputNone &&
		(d.Mode.Kind == ModeREPL || d.Mode.Kind == ModeImmediate) {
		d.diags.Error("%s mode cannot emit a module", d.Mode)
		info.Kind = ModuleOutputNone
	}

	info.Name, info.NameIsFallback = d.deriveModuleName()
	if info.Kind == ModuleOutputNone {
		return info
	}

	info.Path = d.computeModuleOutputPath(info)
	return info
}

func (d *Driver) computeModuleOutputKind() ModuleOutputKind {
	switch {
	case d.ParsedOptions.HasArgument(optEmitModule, optEmitModulePath):
		return ModuleOutputTopLevel
	case d.DebugInfo.Level.RequiresModule() && d.LinkerOutputType != nil:
		return ModuleOutputAuxiliary
	case d.Mode.Kind != ModeSingleCompile &&
		d.ParsedOptions.HasArgument(optEmitObjCHeader, optEmitObjCHeaderPath,
			optEmitModuleInterface, optEmitModuleInterfacePath,
			optEmitPrivateModuleInterfacePath):
		return ModuleOutputAuxiliary
	default:
		return ModuleOutputNone
	}
}

// deriveModuleName resolves the module name: the explicit option wins,
// the REPL is "REPL", then the -o basename, then the single input's
// basename. Invalid names fall back to "main" for (probable)
// executables, otherwise diagnose.
func (d *Driver) deriveModuleName() (string, bool) {
	if name, ok := d.ParsedOptions.GetLastArgument(optModuleName); ok {
		return d.checkedModuleName(name, false)
	}
	if d.Mode.Kind == ModeREPL {
		return "REPL", false
	}
	if out, ok := d.ParsedOptions.GetLastArgument(optOutput); ok {
		outPath := vpath.New(out)
		name := outPath.BasenameWithoutExt()
		hadExtension := strings.ContainsRune(outPath.Basename(), '.')
		if d.buildingLibrary() && hadExtension {
			name = strings.TrimPrefix(name, "lib")
		}
		return d.checkedModuleName(name, false)
	}
	if len(d.InputFiles) == 1 && !d.InputFiles[0].File.IsStandardStream() {
		return d.checkedModuleName(d.InputFiles[0].File.BasenameWithoutExt(), true)
	}
	return d.checkedModuleName("", true)
}

func (d *Driver) buildingLibrary() bool {
	return d.LinkerOutputType != nil &&
		(*d.LinkerOutputType == LinkDynamicLibrary || *d.LinkerOutputType == LinkStaticLibrary)
}

// maybeBuildingExecutable says whether the invocation plausibly links a
// runnable image. The resolved linker output type is authoritative when
// known.
func (d *Driver) maybeBuildingExecutable() bool {
	if d.LinkerOutputType != nil {
		return *d.LinkerOutputType == LinkExecutable
	}
	return d.CompilerOutputType == nil
}

func (d *Driver) checkedModuleName(name string, isFallback bool) (string, bool) {
	if isValidModuleName(name) && (name != stdlibModuleName || d.ParsedOptions.HasArgument(optParseStdlib)) {
		return name, isFallback
	}
	if d.CompilerOutputType == nil || d.maybeBuildingExecutable() {
		return fallbackModuleName, true
	}
	d.diags.Error("module name \"%s\" is not a valid identifier", name)
	return badModuleName, true
}

// isValidModuleName checks the identifier grammar: a letter or
// underscore followed by letters, digits, or underscores.
func isValidModuleName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// computeModuleOutputPath places the module: the explicit path wins,
// a top-level module follows -o, and an auxiliary module lands in a
// temporary.
func (d *Driver) computeModuleOutputPath(info ModuleOutputInfo) vpath.VirtualPath {
	if arg, ok := d.ParsedOptions.GetLastArgument(optEmitModulePath); ok {
		return d.effectivePath(vpath.New(arg))
	}

	if info.Kind == ModuleOutputAuxiliary {
		return vpath.NewTemporary(info.Name + "." + vpath.FileTypeSwiftModule.Ext())
	}

	moduleFilename := info.Name + "." + vpath.FileTypeSwiftModule.Ext()
	if out, ok := d.ParsedOptions.GetLastArgument(optOutput); ok {
		outPath := d.effectivePath(vpath.New(out))
		if d.CompilerOutputType != nil && *d.CompilerOutputType == vpath.FileTypeSwiftModule {
			return outPath
		}
		if parent, ok := outPath.ParentDirectory(); ok {
			return parent.AppendingComponent(moduleFilename)
		}
	}
	return d.effectivePath(vpath.NewRelative(moduleFilename))
}
