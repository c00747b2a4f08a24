package driver

import (
	"fmt"
	"strconv"

	"github.com/cltnschlosser/swift-driver/internal/domain/diagnostics"
	"github.com/cltnschlosser/swift-driver/internal/domain/options"
)

// CompilerModeKind enumerates the compilation modes.
type CompilerModeKind int

const (
	// ModeStandardCompile runs one frontend job per input.
	ModeStandardCompile CompilerModeKind = iota
	// ModeSingleCompile runs a single whole-module frontend job.
	ModeSingleCompile
	// ModeBatchCompile groups inputs into multi-primary frontend jobs.
	ModeBatchCompile
	// ModeImmediate interprets the inputs directly.
	ModeImmediate
	// ModeREPL starts the LLDB-enhanced REPL.
	ModeREPL
	// ModeCompilePCM precompiles a Clang module.
	ModeCompilePCM
)

// BatchModeInfo carries the optional batch-partitioning knobs.
type BatchModeInfo struct {
	Seed      *int
	Count     *int
	SizeLimit *int
}

// CompilerMode is the resolved compilation mode.
type CompilerMode struct {
	Kind  CompilerModeKind
	Batch BatchModeInfo
}

// IsSingleCompilation reports whether the whole module compiles in one
// frontend job.
func (m CompilerMode) IsSingleCompilation() bool {
	return m.Kind == ModeSingleCompile || m.Kind == ModeCompilePCM
}

// IsBatchCompile reports whether inputs are batched.
func (m CompilerMode) IsBatchCompile() bool {
	return m.Kind == ModeBatchCompile
}

// SupportsBridgingPCH reports whether the mode can precompile a bridging
// header.
func (m CompilerMode) SupportsBridgingPCH() bool {
	switch m.Kind {
	case ModeStandardCompile, ModeSingleCompile, ModeBatchCompile:
		return true
	default:
		return false
	}
}

// String returns the mode name.
func (m CompilerMode) String() string {
	switch m.Kind {
	case ModeStandardCompile:
		return "standard compilation"
	case ModeSingleCompile:
		return "whole-module compilation"
	case ModeBatchCompile:
		return "batch compilation"
	case ModeImmediate:
		return "immediate compilation"
	case ModeREPL:
		return "repl"
	case ModeCompilePCM:
		return "compile Clang module"
	default:
		return "unknown"
	}
}

// computeCompilerMode resolves the compilation mode from the parsed
// options per the fixed priority: explicit mode flags first, then the
// interactive default, then the batch-driver decision tree over
// whole-module optimization, index-file, and batch mode.
func computeCompilerMode(parsed *options.ParsedOptions, kind DriverKind, hasInputs bool, diags *diagnostics.Engine) (CompilerMode, error) {
	if parsed.HasArgument(optEmitImportedModules) {
		return CompilerMode{Kind: ModeSingleCompile}, nil
	}
	if parsed.HasArgument(optRepl, optLLDBRepl) {
		return CompilerMode{Kind: ModeREPL}, nil
	}
	if parsed.HasArgument(optDeprecatedIntegratedRepl) {
		return CompilerMode{}, ErrIntegratedReplRemoved
	}
	if parsed.HasArgument(optEmitPCM) {
		return CompilerMode{Kind: ModeCompilePCM}, nil
	}

	if kind == DriverKindInteractive {
		if hasInputs {
			return CompilerMode{Kind: ModeImmediate}, nil
		}
		return CompilerMode{Kind: ModeREPL}, nil
	}

	useWMO := parsed.HasFlag(optWMO, optNoWMO, false)
	hasIndexFile := parsed.HasArgument(optIndexFile)
	wantBatch := parsed.HasFlag(optEnableBatchMode, optDisableBatchMode, false)
	dumpAST := parsed.HasArgument(optDumpAST)

	if dumpAST && useWMO {
		diags.Warn("ignoring '%s'; '%s' only runs one file at a time", optWMO, optDumpAST)
		parsed.EraseArgument(optWMO)
		return CompilerMode{Kind: ModeStandardCompile}, nil
	}
	if dumpAST && hasIndexFile {
		diags.Warn("ignoring '%s'; '%s' only runs one file at a time", optIndexFile, optDumpAST)
		parsed.EraseArgument(optIndexFile, optIndexFilePath)
		return CompilerMode{Kind: ModeStandardCompile}, nil
	}

	if useWMO || hasIndexFile {
		if wantBatch {
			blocker := optWMO
			if hasIndexFile {
				blocker = optIndexFile
			}
			diags.Warn("ignoring '%s' because '%s' was also specified", optEnableBatchMode, blocker)
		}
		return CompilerMode{Kind: ModeSingleCompile}, nil
	}

	if wantBatch {
		info, err := parseBatchModeInfo(parsed)
		if err != nil {
			return CompilerMode{}, err
		}
		return CompilerMode{Kind: ModeBatchCompile, Batch: info}, nil
	}

	return CompilerMode{Kind: ModeStandardCompile}, nil
}

func parseBatchModeInfo(parsed *options.ParsedOptions) (BatchModeInfo, error) {
	var info BatchModeInfo
	var err error
	if info.Seed, err = optionalIntArg(parsed, optDriverBatchSeed); err != nil {
		return info, err
	}
	if info.Count, err = optionalIntArg(parsed, optDriverBatchCount); err != nil {
		return info, err
	}
	if info.SizeLimit, err = optionalIntArg(parsed, optDriverBatchSizeLimit); err != nil {
		return info, err
	}
	return info, nil
}

func optionalIntArg(parsed *options.ParsedOptions, opt *options.Option) (*int, error) {
	arg, ok := parsed.GetLastArgument(opt)
	if !ok {
		return nil, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, &InvalidArgumentValueError{Option: fmt.Sprint(opt), Value: arg}
	}
	return &n, nil
}
