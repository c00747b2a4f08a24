package driver

import "github.com/cltnschlosser/swift-driver/internal/domain/options"

// Option groups used for in-group queries.
const (
	groupMode  options.Group = "mode"
	groupDebug options.Group = "g"
)

// The driver's option table. Options are identified by pointer; every
// query below goes through these vars.
var (
	optDriverMode       = &options.Option{Spelling: "--driver-mode=", Kind: options.KindJoined}
	optWorkingDirectory = &options.Option{Spelling: "-working-directory", Kind: options.KindSeparate, MetaVar: "<path>"}

	optTarget        = &options.Option{Spelling: "-target", Kind: options.KindSeparate, MetaVar: "<triple>"}
	optTargetVariant = &options.Option{Spelling: "-target-variant", Kind: options.KindSeparate, MetaVar: "<triple>"}
	optSDK           = &options.Option{Spelling: "-sdk", Kind: options.KindSeparate, MetaVar: "<path>"}
	optResourceDir   = &options.Option{Spelling: "-resource-dir", Kind: options.KindSeparate, MetaVar: "<path>"}
	optStaticResourceDir = &options.Option{Spelling: "-use-static-resource-dir", Kind: options.KindFlag}
	optToolsDirectory = &options.Option{Spelling: "-tools-directory", Kind: options.KindSeparate, MetaVar: "<path>"}
	optFrontendPath   = &options.Option{Spelling: "-driver-use-frontend-path", Kind: options.KindSeparate, MetaVar: "<cmd[;arg...]>"}

	optOutputFileMap = &options.Option{Spelling: "-output-file-map", Kind: options.KindSeparate, MetaVar: "<path>"}
	optOutput        = &options.Option{Spelling: "-o", Kind: options.KindJoinedOrSeparate, MetaVar: "<path>"}
	optModuleName    = &options.Option{Spelling: "-module-name", Kind: options.KindSeparate, MetaVar: "<name>"}

	// Module emission.
	optEmitModule     = &options.Option{Spelling: "-emit-module", Kind: options.KindFlag}
	optEmitModulePath = &options.Option{Spelling: "-emit-module-path", Kind: options.KindJoinedOrSeparate, MetaVar: "<path>"}

	// Supplementary outputs.
	optEmitObjCHeader                 = &options.Option{Spelling: "-emit-objc-header", Kind: options.KindFlag}
	optEmitObjCHeaderPath             = &options.Option{Spelling: "-emit-objc-header-path", Kind: options.KindSeparate, MetaVar: "<path>"}
	optEmitModuleInterface            = &options.Option{Spelling: "-emit-module-interface", Kind: options.KindFlag}
	optEmitModuleInterfacePath        = &options.Option{Spelling: "-emit-module-interface-path", Kind: options.KindSeparate, MetaVar: "<path>"}
	optEmitPrivateModuleInterfacePath = &options.Option{Spelling: "-emit-private-module-interface-path", Kind: options.KindSeparate, MetaVar: "<path>"}
	optEmitModuleDoc                  = &options.Option{Spelling: "-emit-module-doc", Kind: options.KindFlag}
	optEmitModuleDocPath              = &options.Option{Spelling: "-emit-module-doc-path", Kind: options.KindSeparate, MetaVar: "<path>"}
	optEmitModuleSourceInfo           = &options.Option{Spelling: "-emit-module-source-info", Kind: options.KindFlag}
	optEmitModuleSourceInfoPath       = &options.Option{Spelling: "-emit-module-source-info-path", Kind: options.KindSeparate, MetaVar: "<path>"}
	optAvoidEmitModuleSourceInfo      = &options.Option{Spelling: "-avoid-emit-module-source-info", Kind: options.KindFlag}
	optEmitDependencies               = &options.Option{Spelling: "-emit-dependencies", Kind: options.KindFlag}
	optEmitDependenciesPath           = &options.Option{Spelling: "-emit-dependencies-path", Kind: options.KindSeparate, MetaVar: "<path>"}
	optSerializeDiagnostics           = &options.Option{Spelling: "-serialize-diagnostics", Kind: options.KindFlag}
	optSerializeDiagnosticsPath       = &options.Option{Spelling: "-serialize-diagnostics-path", Kind: options.KindSeparate, MetaVar: "<path>"}
	optEmitLoadedModuleTrace          = &options.Option{Spelling: "-emit-loaded-module-trace", Kind: options.KindFlag}
	optEmitLoadedModuleTracePath      = &options.Option{Spelling: "-emit-loaded-module-trace-path", Kind: options.KindSeparate, MetaVar: "<path>"}
	optEmitTBD                        = &options.Option{Spelling: "-emit-tbd", Kind: options.KindFlag}
	optEmitTBDPath                    = &options.Option{Spelling: "-emit-tbd-path", Kind: options.KindSeparate, MetaVar: "<path>"}

	// Compilation modes.
	optEmitExecutable       = &options.Option{Spelling: "-emit-executable", Kind: options.KindFlag, Group: groupMode}
	optEmitLibrary          = &options.Option{Spelling: "-emit-library", Kind: options.KindFlag, Group: groupMode}
	optEmitObject           = &options.Option{Spelling: "-emit-object", Kind: options.KindFlag, Group: groupMode}
	optC                    = &options.Option{Spelling: "-c", Kind: options.KindFlag, Group: groupMode, Alias: optEmitObject}
	optEmitAssembly         = &options.Option{Spelling: "-emit-assembly", Kind: options.KindFlag, Group: groupMode}
	optS                    = &options.Option{Spelling: "-S", Kind: options.KindFlag, Group: groupMode, Alias: optEmitAssembly}
	optEmitSIL              = &options.Option{Spelling: "-emit-sil", Kind: options.KindFlag, Group: groupMode}
	optEmitSILGen           = &options.Option{Spelling: "-emit-silgen", Kind: options.KindFlag, Group: groupMode}
	optEmitSIB              = &options.Option{Spelling: "-emit-sib", Kind: options.KindFlag, Group: groupMode}
	optEmitSIBGen           = &options.Option{Spelling: "-emit-sibgen", Kind: options.KindFlag, Group: groupMode}
	optEmitIR               = &options.Option{Spelling: "-emit-ir", Kind: options.KindFlag, Group: groupMode}
	optEmitBC               = &options.Option{Spelling: "-emit-bc", Kind: options.KindFlag, Group: groupMode}
	optDumpAST              = &options.Option{Spelling: "-dump-ast", Kind: options.KindFlag, Group: groupMode}
	optEmitPCM              = &options.Option{Spelling: "-emit-pcm", Kind: options.KindFlag, Group: groupMode}
	optEmitImportedModules  = &options.Option{Spelling: "-emit-imported-modules", Kind: options.KindFlag, Group: groupMode}
	optIndexFile            = &options.Option{Spelling: "-index-file", Kind: options.KindFlag, Group: groupMode}
	optUpdateCode           = &options.Option{Spelling: "-update-code", Kind: options.KindFlag, Group: groupMode}
	optParse                = &options.Option{Spelling: "-parse", Kind: options.KindFlag, Group: groupMode}
	optTypecheck            = &options.Option{Spelling: "-typecheck", Kind: options.KindFlag, Group: groupMode}
	optDumpParse            = &options.Option{Spelling: "-dump-parse", Kind: options.KindFlag, Group: groupMode}
	optPrintAST             = &options.Option{Spelling: "-print-ast", Kind: options.KindFlag, Group: groupMode}
	optResolveImports       = &options.Option{Spelling: "-resolve-imports", Kind: options.KindFlag, Group: groupMode}
	optI                    = &options.Option{Spelling: "-i", Kind: options.KindFlag, Group: groupMode}
	optRepl                 = &options.Option{Spelling: "-repl", Kind: options.KindFlag, Group: groupMode}
	optLLDBRepl             = &options.Option{Spelling: "-lldb-repl", Kind: options.KindFlag, Group: groupMode}
	optDeprecatedIntegratedRepl = &options.Option{Spelling: "-deprecated-integrated-repl", Kind: options.KindFlag, Group: groupMode}
	optInterpret            = &options.Option{Spelling: "-interpret", Kind: options.KindFlag, Group: groupMode}
	optScanDependencies     = &options.Option{Spelling: "-scan-dependencies", Kind: options.KindFlag, Group: groupMode}
	optScanClangDependencies = &options.Option{Spelling: "-scan-clang-dependencies", Kind: options.KindFlag, Group: groupMode}

	// Indexing.
	optIndexFilePath            = &options.Option{Spelling: "-index-file-path", Kind: options.KindSeparate, MetaVar: "<path>"}
	optIndexStorePath           = &options.Option{Spelling: "-index-store-path", Kind: options.KindSeparate, MetaVar: "<path>"}
	optIndexIgnoreSystemModules = &options.Option{Spelling: "-index-ignore-system-modules", Kind: options.KindFlag}

	// Batch mode and whole-module optimization.
	optEnableBatchMode     = &options.Option{Spelling: "-enable-batch-mode", Kind: options.KindFlag}
	optDisableBatchMode    = &options.Option{Spelling: "-disable-batch-mode", Kind: options.KindFlag}
	optDriverBatchSeed     = &options.Option{Spelling: "-driver-batch-seed", Kind: options.KindSeparate, MetaVar: "<n>"}
	optDriverBatchCount    = &options.Option{Spelling: "-driver-batch-count", Kind: options.KindSeparate, MetaVar: "<n>"}
	optDriverBatchSizeLimit = &options.Option{Spelling: "-driver-batch-size-limit", Kind: options.KindSeparate, MetaVar: "<n>"}
	optWMO   = &options.Option{Spelling: "-whole-module-optimization", Kind: options.KindFlag}
	optWMOAlias = &options.Option{Spelling: "-wmo", Kind: options.KindFlag, Alias: optWMO}
	optForceSingleFrontendInvocation = &options.Option{Spelling: "-force-single-frontend-invocation", Kind: options.KindFlag, Alias: optWMO}
	optNoWMO = &options.Option{Spelling: "-no-whole-module-optimization", Kind: options.KindFlag}

	// Parallelism.
	optJ          = &options.Option{Spelling: "-j", Kind: options.KindJoinedOrSeparate, MetaVar: "<n>"}
	optNumThreads = &options.Option{Spelling: "-num-threads", Kind: options.KindSeparate, MetaVar: "<n>"}

	// Bridging header.
	optEnableBridgingPCH  = &options.Option{Spelling: "-enable-bridging-pch", Kind: options.KindFlag}
	optDisableBridgingPCH = &options.Option{Spelling: "-disable-bridging-pch", Kind: options.KindFlag}
	optImportObjCHeader   = &options.Option{Spelling: "-import-objc-header", Kind: options.KindSeparate, MetaVar: "<path>"}
	optPCHOutputDir       = &options.Option{Spelling: "-pch-output-dir", Kind: options.KindSeparate, MetaVar: "<dir>"}

	// Sanitizers.
	optSanitize         = &options.Option{Spelling: "-sanitize=", Kind: options.KindCommaJoined, MetaVar: "<check>"}
	optSanitizeCoverage = &options.Option{Spelling: "-sanitize-coverage=", Kind: options.KindCommaJoined, MetaVar: "<type>"}

	// Conditional compilation and search paths.
	optD       = &options.Option{Spelling: "-D", Kind: options.KindJoinedOrSeparate, MetaVar: "<flag>"}
	optF       = &options.Option{Spelling: "-F", Kind: options.KindJoinedOrSeparate, MetaVar: "<dir>"}
	optFsystem = &options.Option{Spelling: "-Fsystem", Kind: options.KindJoinedOrSeparate, MetaVar: "<dir>"}

	// Profiling and coverage.
	optProfileGenerate   = &options.Option{Spelling: "-profile-generate", Kind: options.KindFlag}
	optProfileUse        = &options.Option{Spelling: "-profile-use=", Kind: options.KindCommaJoined, MetaVar: "<profdata>"}
	optCoveragePrefixMap = &options.Option{Spelling: "-coverage-prefix-map", Kind: options.KindSeparate, MetaVar: "<old>=<new>"}

	// Debug info.
	optG               = &options.Option{Spelling: "-g", Kind: options.KindFlag, Group: groupDebug}
	optGLineTablesOnly = &options.Option{Spelling: "-gline-tables-only", Kind: options.KindFlag, Group: groupDebug}
	optGDwarfTypes     = &options.Option{Spelling: "-gdwarf-types", Kind: options.KindFlag, Group: groupDebug}
	optGNone           = &options.Option{Spelling: "-gnone", Kind: options.KindFlag, Group: groupDebug}
	optDebugInfoFormat = &options.Option{Spelling: "-debug-info-format=", Kind: options.KindJoined, MetaVar: "<format>"}
	optVerifyDebugInfo = &options.Option{Spelling: "-verify-debug-info", Kind: options.KindFlag}
	optDebugPrefixMap  = &options.Option{Spelling: "-debug-prefix-map", Kind: options.KindSeparate, MetaVar: "<old>=<new>"}

	// Optimization records and LTO.
	optLTO                        = &options.Option{Spelling: "-lto=", Kind: options.KindJoined, MetaVar: "<kind>"}
	optSaveOptimizationRecord     = &options.Option{Spelling: "-save-optimization-record", Kind: options.KindFlag}
	optSaveOptimizationRecordEQ   = &options.Option{Spelling: "-save-optimization-record=", Kind: options.KindJoined, MetaVar: "<format>"}
	optSaveOptimizationRecordPath = &options.Option{Spelling: "-save-optimization-record-path", Kind: options.KindSeparate, MetaVar: "<path>"}

	// Bitcode embedding.
	optEmbedBitcode       = &options.Option{Spelling: "-embed-bitcode", Kind: options.KindFlag}
	optEmbedBitcodeMarker = &options.Option{Spelling: "-embed-bitcode-marker", Kind: options.KindFlag}

	optRuntimeCompatibilityVersion = &options.Option{Spelling: "-runtime-compatibility-version", Kind: options.KindSeparate, MetaVar: "<version>"}

	// Warnings.
	optSuppressWarnings = &options.Option{Spelling: "-suppress-warnings", Kind: options.KindFlag}
	optWarningsAsErrors = &options.Option{Spelling: "-warnings-as-errors", Kind: options.KindFlag}

	// Library evolution and parsing.
	optParseAsLibrary = &options.Option{Spelling: "-parse-as-library", Kind: options.KindFlag}
	optParseStdlib    = &options.Option{Spelling: "-parse-stdlib", Kind: options.KindFlag}
	optStatic         = &options.Option{Spelling: "-static", Kind: options.KindFlag}

	// Incremental builds.
	optIncremental           = &options.Option{Spelling: "-incremental", Kind: options.KindFlag}
	optDriverShowIncremental = &options.Option{Spelling: "-driver-show-incremental", Kind: options.KindFlag}

	optContinueBuildingAfterErrors = &options.Option{Spelling: "-continue-building-after-errors", Kind: options.KindFlag}
	optParseableOutput             = &options.Option{Spelling: "-parseable-output", Kind: options.KindFlag}
	optV                           = &options.Option{Spelling: "-v", Kind: options.KindFlag}
	optVersion                     = &options.Option{Spelling: "-version", Kind: options.KindFlag}
	optVersionLong                 = &options.Option{Spelling: "--version", Kind: options.KindFlag, Alias: optVersion}

	// Driver behavior.
	optDriverPrintJobs          = &options.Option{Spelling: "-driver-print-jobs", Kind: options.KindFlag}
	optHashHashHash             = &options.Option{Spelling: "-###", Kind: options.KindFlag, Alias: optDriverPrintJobs}
	optDriverPrintOutputFileMap = &options.Option{Spelling: "-driver-print-output-file-map", Kind: options.KindFlag}
	optDriverPrintBindings      = &options.Option{Spelling: "-driver-print-bindings", Kind: options.KindFlag}
	optDriverPrintActions       = &options.Option{Spelling: "-driver-print-actions", Kind: options.KindFlag}
	optDriverPrintGraphviz      = &options.Option{Spelling: "-driver-print-graphviz", Kind: options.KindFlag}
	optDriverShowJobLifecycle   = &options.Option{Spelling: "-driver-show-job-lifecycle", Kind: options.KindFlag}
	optDriverWarnUnusedOptions  = &options.Option{Spelling: "-driver-warn-unused-options", Kind: options.KindFlag}
	optDriverForceResponseFiles = &options.Option{Spelling: "-driver-force-response-files", Kind: options.KindFlag}
	optDriverUseFilelists       = &options.Option{Spelling: "-driver-use-filelists", Kind: options.KindFlag}
	optDriverFilelistThreshold  = &options.Option{Spelling: "-driver-filelist-threshold", Kind: options.KindSeparate, MetaVar: "<n>"}
	optDriverFilelistThresholdEQ = &options.Option{Spelling: "-driver-filelist-threshold=", Kind: options.KindJoined, Alias: optDriverFilelistThreshold}
)

// optionTable returns the full driver option table.
func optionTable() *options.Table {
	return options.NewTable([]*options.Option{
		optDriverMode, optWorkingDirectory,
		optTarget, optTargetVariant, optSDK, optResourceDir, optStaticResourceDir,
		optToolsDirectory, optFrontendPath,
		optOutputFileMap, optOutput, optModuleName,
		optEmitModule, optEmitModulePath,
		optEmitObjCHeader, optEmitObjCHeaderPath,
		optEmitModuleInterface, optEmitModuleInterfacePath, optEmitPrivateModuleInterfacePath,
		optEmitModuleDoc, optEmitModuleDocPath,
		optEmitModuleSourceInfo, optEmitModuleSourceInfoPath, optAvoidEmitModuleSourceInfo,
		optEmitDependencies, optEmitDependenciesPath,
		optSerializeDiagnostics, optSerializeDiagnosticsPath,
		optEmitLoadedModuleTrace, optEmitLoadedModuleTracePath,
		optEmitTBD, optEmitTBDPath,
		optEmitExecutable, optEmitLibrary, optEmitObject, optC, optEmitAssembly, optS,
		optEmitSIL, optEmitSILGen, optEmitSIB, optEmitSIBGen, optEmitIR, optEmitBC,
		optDumpAST, optEmitPCM, optEmitImportedModules, optIndexFile, optUpdateCode,
		optParse, optTypecheck, optDumpParse, optPrintAST, optResolveImports,
		optI, optRepl, optLLDBRepl, optDeprecatedIntegratedRepl, optInterpret,
		optScanDependencies, optScanClangDependencies,
		optIndexFilePath, optIndexStorePath, optIndexIgnoreSystemModules,
		optEnableBatchMode, optDisableBatchMode,
		optDriverBatchSeed, optDriverBatchCount, optDriverBatchSizeLimit,
		optWMO, optWMOAlias, optForceSingleFrontendInvocation, optNoWMO,
		optJ, optNumThreads,
		optEnableBridgingPCH, optDisableBridgingPCH, optImportObjCHeader, optPCHOutputDir,
		optSanitize, optSanitizeCoverage,
		optD, optF, optFsystem,
		optProfileGenerate, optProfileUse, optCoveragePrefixMap,
		optG, optGLineTablesOnly, optGDwarfTypes, optGNone,
		optDebugInfoFormat, optVerifyDebugInfo, optDebugPrefixMap,
		optLTO, optSaveOptimizationRecord, optSaveOptimizationRecordEQ, optSaveOptimizationRecordPath,
		optEmbedBitcode, optEmbedBitcodeMarker,
		optRuntimeCompatibilityVersion,
		optSuppressWarnings, optWarningsAsErrors,
		optParseAsLibrary, optParseStdlib, optStatic,
		optIncremental, optDriverShowIncremental,
		optContinueBuildingAfterErrors, optParseableOutput, optV, optVersion, optVersionLong,
		optDriverPrintJobs, optHashHashHash, optDriverPrintOutputFileMap,
		optDriverPrintBindings, optDriverPrintActions, optDriverPrintGraphviz,
		optDriverShowJobLifecycle, optDriverWarnUnusedOptions, optDriverForceResponseFiles,
		optDriverUseFilelists, optDriverFilelistThreshold, optDriverFilelistThresholdEQ,
	})
}
