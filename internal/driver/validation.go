package driver

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/cltnschlosser/swift-driver/internal/domain/triple"
	"github.com/cltnschlosser/swift-driver/internal/domain/vpath"
	"github.com/cltnschlosser/swift-driver/internal/ports"
)

// computeDebugInfo resolves the -g group, the container format, and
// -verify-debug-info.
func (d *Driver) computeDebugInfo() DebugInfo {
	info := DebugInfo{Format: DebugInfoFormatDwarf}

	if last, ok := d.ParsedOptions.GetLastInGroup(groupDebug); ok {
		switch last.Option {
		case optG:
			info.Level = DebugInfoLevelASTTypes
		case optGLineTablesOnly:
			info.Level = DebugInfoLevelLineTables
		case optGDwarfTypes:
			info.Level = DebugInfoLevelDwarfTypes
		case optGNone:
			info.Level = DebugInfoLevelNone
		}
	}

	if d.ParsedOptions.HasArgument(optVerifyDebugInfo) {
		if info.Level == DebugInfoLevelNone {
			d.diags.Warn("ignoring '%s'; no debug info is being generated", optVerifyDebugInfo)
		} else {
			info.ShouldVerify = true
		}
	}

	if arg, ok := d.ParsedOptions.GetLastArgument(optDebugInfoFormat); ok {
		switch DebugInfoFormat(arg) {
		case DebugInfoFormatDwarf, DebugInfoFormatCodeView:
			info.Format = DebugInfoFormat(arg)
		default:
			d.diags.Error("invalid value '%s' in '%s'", arg, optDebugInfoFormat)
		}
		if info.Level == DebugInfoLevelNone {
			d.diags.Error("option '%s' is missing a required argument (-g)", optDebugInfoFormat)
		}
		if info.Format == DebugInfoFormatCodeView &&
			(info.Level == DebugInfoLevelLineTables || info.Level == DebugInfoLevelDwarfTypes) {
			levelOpt := optGLineTablesOnly
			if info.Level == DebugInfoLevelDwarfTypes {
				levelOpt = optGDwarfTypes
			}
			d.diags.Error("argument '%s=codeview' is not allowed with '%s'", optDebugInfoFormat, levelOpt)
		}
	}

	return info
}

// validateArguments runs the cross-option validators. Diagnostics route
// to the sink and planning continues; the constructor aborts afterwards
// if any were errors.
func (d *Driver) validateArguments() {
	d.validateWarningOptions()
	d.validateProfilingOptions()
	d.validateConditionalCompilationFlags()
	d.validateFrameworkSearchPaths()
	d.validatePrefixMaps()
	d.validateSanitizers()
	d.validateSanitizerCoverage()
}

func (d *Driver) validateWarningOptions() {
	suppress := d.ParsedOptions.HasArgument(optSuppressWarnings)
	if suppress && d.ParsedOptions.HasArgument(optWarningsAsErrors) {
		d.diags.Error("argument '%s' is not allowed with '%s'", optWarningsAsErrors, optSuppressWarnings)
	}
}

func (d *Driver) validateProfilingOptions() {
	generate := d.ParsedOptions.HasArgument(optProfileGenerate)
	uses := d.ParsedOptions.GetAll(optProfileUse)
	if generate && len(uses) > 0 {
		d.diags.Error("argument '%s' is not allowed with '%s'", optProfileUse, optProfileGenerate)
	}
	for _, use := range uses {
		for _, path := range use.Arguments() {
			probe := path
			if !vpath.New(path).IsStandardStream() {
				probe = d.effectivePath(vpath.New(path)).Name()
			}
			if !d.fs.Exists(probe) {
				d.diags.Error("no profdata file exists at '%s'", path)
			}
		}
	}
}

func (d *Driver) validateConditionalCompilationFlags() {
	for _, def := range d.ParsedOptions.GetAll(optD) {
		name := def.Argument()
		switch {
		case strings.Contains(name, "="):
			d.diags.Warn("conditional compilation flags do not have values in Swift; they are either present or absent (rather than '%s')", name)
		case strings.HasPrefix(name, "-D"):
			d.diags.Error("invalid argument '-D%s'; did you provide a redundant '-D' in your build settings?", name)
		case !isValidConditionalCompilationFlag(name):
			d.diags.Error("conditional compilation flags must be valid Swift identifiers (rather than '%s')", name)
		}
	}
}

func isValidConditionalCompilationFlag(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

func (d *Driver) validateFrameworkSearchPaths() {
	for _, entry := range d.ParsedOptions.GetAll(optF, optFsystem) {
		path := strings.TrimSuffix(entry.Argument(), "/")
		if strings.HasSuffix(path, ".framework") {
			d.diags.Warn("framework search path ends in \".framework\"; add directory containing framework instead: %s", entry.Argument())
		}
	}
}

func (d *Driver) validatePrefixMaps() {
	for _, entry := range d.ParsedOptions.GetAll(optDebugPrefixMap, optCoveragePrefixMap) {
		if strings.Count(entry.Argument(), "=") != 1 {
			d.diags.Error("invalid argument '%s %s'; it must be of the form 'original=remapped'", entry.Option, entry.Argument())
		}
	}
}

// sanitizerSupportedOS says whether the target OS family can host
// sanitizer runtimes at all.
func sanitizerSupportedOS(family triple.OSFamily) bool {
	switch family {
	case triple.FamilyDarwin, triple.FamilyLinux, triple.FamilyWindows:
		return true
	default:
		return false
	}
}

func (d *Driver) validateSanitizers() {
	entries := d.ParsedOptions.GetAll(optSanitize)
	if len(entries) == 0 {
		return
	}

	resourceDir, _ := d.ParsedOptions.GetLastArgument(optResourceDir)
	seen := make(map[string]bool)
	for _, entry := range entries {
		for _, kind := range entry.Arguments() {
			switch kind {
			case SanitizerAddress, SanitizerThread, SanitizerUndefined, SanitizerFuzzer, SanitizerScudo:
			default:
				d.diags.Error("invalid value '%s' in '%s'", kind, optSanitize)
				continue
			}
			if !sanitizerSupportedOS(d.TargetTriple.Family()) {
				d.diags.Error("%s sanitizer is unavailable on target '%s'", kind, d.TargetTriple)
				continue
			}
			if kind == SanitizerThread && !d.TargetTriple.Is64Bit() {
				d.diags.Error("thread sanitizer is unavailable on target '%s'", d.TargetTriple)
				continue
			}
			if !d.Toolchain.RuntimeLibraryExists(kind, d.TargetTriple, resourceDir, d.fs) {
				d.diags.Error("unsupported option '-sanitize=%s' for target '%s'", kind, d.TargetTriple)
				continue
			}
			if !seen[kind] {
				seen[kind] = true
				d.EnabledSanitizers = append(d.EnabledSanitizers, kind)
			}
		}
	}

	if seen[SanitizerThread] && seen[SanitizerAddress] {
		d.diags.Error("argument '-sanitize=thread' is not allowed with '-sanitize=address'")
	}
	if seen[SanitizerScudo] {
		for _, kind := range d.EnabledSanitizers {
			if kind != SanitizerScudo && kind != SanitizerUndefined {
				d.diags.Error("argument '-sanitize=scudo' is not allowed with '-sanitize=%s'", kind)
			}
		}
	}
}

// sanitizerCoverageModifiers is the accepted modifier set beyond the
// required coverage type.
var sanitizerCoverageModifiers = map[string]bool{
	"indirect-calls": true, "trace-bb": true, "trace-cmp": true,
	"trace-div": true, "trace-gep": true, "8bit-counters": true,
	"trace-pc": true, "trace-pc-guard": true, "inline-8bit-counters": true,
	"pc-table": true, "stack-depth": true,
}

func (d *Driver) validateSanitizerCoverage() {
	entries := d.ParsedOptions.GetAll(optSanitizeCoverage)
	if len(entries) == 0 {
		return
	}

	hasType := false
	for _, entry := range entries {
		for _, value := range entry.Arguments() {
			switch value {
			case "func", "bb", "edge":
				hasType = true
			default:
				if !sanitizerCoverageModifiers[value] {
					d.diags.Error("invalid value '%s' in '%s'", value, optSanitizeCoverage)
				}
			}
		}
	}
	if !hasType {
		d.diags.Error("option '%s' is missing a required argument (\"func\", \"bb\", \"edge\")", optSanitizeCoverage)
	}
	if len(d.EnabledSanitizers) == 0 {
		d.diags.Error("option '%s' requires a sanitizer to be enabled. Use -sanitize= to enable a sanitizer", optSanitizeCoverage)
	}
}

// resolveExecutorPolicy computes the run-time knobs the dispatcher
// passes to the executor.
func (d *Driver) resolveExecutorPolicy() {
	d.NumParallelJobs = d.resolveParallelJobs()
	d.NumThreads = d.resolveNumThreads()
	d.FilelistThreshold = d.resolveFilelistThreshold()
	d.ContinueBuildingAfterErrors = d.Mode.IsBatchCompile() ||
		d.ParsedOptions.HasArgument(optContinueBuildingAfterErrors)
	d.ForceResponseFiles = d.ParsedOptions.HasArgument(optDriverForceResponseFiles)
	d.ParseableOutput = d.ParsedOptions.HasArgument(optParseableOutput)
	d.ShowJobLifecycle = d.ParsedOptions.HasArgument(optDriverShowJobLifecycle)
}

func (d *Driver) resolveParallelJobs() int {
	jobs := 1
	if arg, ok := d.ParsedOptions.GetLastArgument(optJ); ok {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			d.diags.Error("invalid value '%s' in '%s'", arg, optJ)
			return 1
		}
		jobs = n
	}
	if v, ok := d.env.Get("SWIFTC_MAXIMUM_DETERMINISM"); ok && v != "" && jobs > 1 {
		d.diags.Remark("SWIFTC_MAXIMUM_DETERMINISM overriding -j")
		jobs = 1
	}
	return jobs
}

func (d *Driver) resolveNumThreads() int {
	arg, ok := d.ParsedOptions.GetLastArgument(optNumThreads)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		d.diags.Error("invalid value '%s' in '%s'", arg, optNumThreads)
		return 0
	}
	if d.Mode.IsBatchCompile() {
		d.diags.Warn("ignoring -num-threads argument; cannot multithread batch mode")
		return 0
	}
	return n
}

func (d *Driver) resolveFilelistThreshold() int {
	if arg, ok := d.ParsedOptions.GetLastArgument(optDriverFilelistThreshold); ok {
		n, err := strconv.Atoi(arg)
		if err != nil {
			d.diags.Error("invalid value '%s' in '%s'", arg, optDriverFilelistThreshold)
			return defaultFilelistThreshold
		}
		return n
	}
	if d.ParsedOptions.HasArgument(optDriverUseFilelists) {
		d.diags.Warn("the option '%s' is deprecated; use '%s=0' instead", optDriverUseFilelists, optDriverFilelistThreshold)
		return 0
	}
	return defaultFilelistThreshold
}

// defaultFilelistThreshold is the input count above which the driver
// switches to file lists.
const defaultFilelistThreshold = 128

// setUpIncrementalState enables incremental compilation when requested
// and not disqualified by the compilation shape.
func (d *Driver) setUpIncrementalState(state ports.IncrementalState) {
	if !d.ParsedOptions.HasArgument(optIncremental) {
		return
	}
	showIncremental := d.ParsedOptions.HasArgument(optDriverShowIncremental)

	disqualify := func(reason string) {
		if showIncremental {
			d.diags.Remark("incremental compilation has been disabled: %s", reason)
		}
	}
	if d.Mode.IsSingleCompilation() {
		disqualify("whole-module compilations do not track per-input state")
		return
	}
	if d.ParsedOptions.HasArgument(optEmbedBitcode) {
		disqualify("it is not compatible with -embed-bitcode")
		return
	}
	var recordPath vpath.VirtualPath
	if d.OutputFileMap != nil {
		if p, ok := d.OutputFileMap.ExistingOutputForSingleInput(vpath.FileTypeSwiftDeps); ok {
			recordPath = p
		}
	}
	if recordPath.Name() == "" {
		disqualify("the output file map has no master dependencies entry")
		return
	}
	d.BuildRecordPath = &recordPath
	d.Incremental = state
}
