package driver

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cltnschlosser/swift-driver/internal/domain/diagnostics"
	"github.com/cltnschlosser/swift-driver/internal/domain/options"
	"github.com/cltnschlosser/swift-driver/internal/domain/outputmap"
	"github.com/cltnschlosser/swift-driver/internal/domain/toolchain"
	"github.com/cltnschlosser/swift-driver/internal/domain/triple"
	"github.com/cltnschlosser/swift-driver/internal/domain/vpath"
	"github.com/cltnschlosser/swift-driver/internal/ports"
)

// Config carries the external collaborators a Driver is constructed
// over. Nil Env, Logger, Diagnostics and Stdout fields get defaults
// (empty environment, nop logger, a console diagnostic sink, os.Stdout);
// FileSystem and Executor have no default and must be set.
type Config struct {
	Env         ports.Env
	FileSystem  ports.FileSystem
	Executor    ports.DriverExecutor
	Logger      ports.Logger
	Diagnostics *diagnostics.Engine
	// Stdout receives the output of the print modes and the version
	// banner (default: os.Stdout).
	Stdout io.Writer
	// Incremental, when set, is threaded through to the executor and
	// the build record.
	Incremental ports.IncrementalState
}

// Driver is the fully-elaborated description of one compilation,
// produced by New and consumed by Run. Every field is immutable after
// construction except ParsedOptions, which Run touches to finish
// consumption tracking.
type Driver struct {
	env      ports.Env
	fs       ports.FileSystem
	executor ports.DriverExecutor
	logger   ports.Logger
	diags    *diagnostics.Engine
	stdout   io.Writer

	// Kind is the driver personality that parsed this invocation.
	Kind DriverKind
	// ParsedOptions is the ordered option multiset, with consumption
	// marks from every planning step.
	ParsedOptions *options.ParsedOptions
	// WorkingDirectory, when set, rebases every relative path.
	WorkingDirectory *vpath.VirtualPath
	// InputFiles are the typed positional inputs in command order.
	InputFiles []vpath.TypedVirtualPath
	// RecordedInputModificationDates snapshots input mtimes at
	// construction, keyed by the input's logical path.
	RecordedInputModificationDates map[string]time.Time
	// OutputFileMap is the loaded, rebased side table, if any.
	OutputFileMap *outputmap.OutputFileMap
	// Mode is the resolved compilation mode.
	Mode CompilerMode

	// TargetTriple is the effective target.
	TargetTriple triple.Triple
	// TargetVariantTriple is the zippered variant target, if any.
	TargetVariantTriple *triple.Triple
	// Toolchain drives target-specific decisions.
	Toolchain toolchain.Toolchain
	// TargetInfo is the frontend's view of the target.
	TargetInfo toolchain.FrontendTargetInfo
	// SDKPath is the resolved SDK root, if any.
	SDKPath string

	frontendPath       string
	frontendPrefixArgs []string
	toolsDirectory     string

	// CompilerOutputType is the frontend's primary output type; nil
	// when the frontend produces no output file.
	CompilerOutputType *vpath.FileType
	// ExplicitOutputPath is the rebased -o argument, if given.
	ExplicitOutputPath *vpath.VirtualPath
	// LinkerOutputType is set when a link step is expected.
	LinkerOutputType *LinkOutputType
	// LTO is the requested link-time-optimization kind.
	LTO *LTOKind
	// DebugInfo is the resolved debug-information configuration.
	DebugInfo DebugInfo
	// ModuleOutputInfo is the resolved module plan.
	ModuleOutputInfo ModuleOutputInfo
	// EnabledSanitizers lists the requested sanitizers in command
	// order, deduplicated.
	EnabledSanitizers []string

	// ImportedObjCHeader is the bridging header, if any.
	ImportedObjCHeader *vpath.VirtualPath
	// BridgingPrecompiledHeader is where the bridging PCH lands.
	BridgingPrecompiledHeader *vpath.VirtualPath

	// Supplementary output paths; nil when not produced.
	DependenciesFilePath          *vpath.VirtualPath
	SerializedDiagnosticsFilePath *vpath.VirtualPath
	ObjCHeaderOutputPath          *vpath.VirtualPath
	LoadedModuleTracePath         *vpath.VirtualPath
	TBDPath                       *vpath.VirtualPath
	ModuleDocOutputPath           *vpath.VirtualPath
	ModuleSourceInfoPath          *vpath.VirtualPath
	SwiftInterfacePath            *vpath.VirtualPath
	SwiftPrivateInterfacePath     *vpath.VirtualPath
	OptimizationRecordPath        *vpath.VirtualPath
	// OptimizationRecordFormat is meaningful when
	// OptimizationRecordPath is set.
	OptimizationRecordFormat OptimizationRecordFormat

	// Executor policy.
	NumParallelJobs             int
	NumThreads                  int
	ContinueBuildingAfterErrors bool
	ForceResponseFiles          bool
	FilelistThreshold           int
	ParseableOutput             bool
	ShowJobLifecycle            bool

	// Incremental is the opaque incremental-compilation handle.
	Incremental ports.IncrementalState
	// BuildRecordPath is where the build record is written, if
	// enabled.
	BuildRecordPath *vpath.VirtualPath

	startTime time.Time
	ran       bool
}

// New runs the invocation-to-plan pipeline. argv includes the program
// name. Validation diagnostics route to the sink and planning
// continues; hard errors abort with the originating error.
func New(ctx context.Context, argv []string, cfg Config) (*Driver, error) {
	d := &Driver{
		env:       cfg.Env,
		fs:        cfg.FileSystem,
		executor:  cfg.Executor,
		logger:    cfg.Logger,
		diags:     cfg.Diagnostics,
		stdout:    cfg.Stdout,
		startTime: time.Now(),
	}
	if d.env == nil {
		d.env = ports.MapEnv{}
	}
	if d.diags == nil {
		d.diags = diagnostics.NewEngine(diagnostics.NewConsoleSink())
	}
	if d.logger == nil {
		d.logger = nopLogger{}
	}
	if d.stdout == nil {
		d.stdout = os.Stdout
	}

	if len(argv) == 0 {
		return nil, &InvalidDriverNameError{Name: ""}
	}
	inv := ClassifyArgv(argv)
	if inv.Mode == RunModeSubcommand {
		return nil, &SubcommandPassedToDriverError{Subcommand: inv.Subcommand}
	}
	argv = inv.Argv

	args, kindName := extractDriverMode(argv[1:], filepath.Base(argv[0]))
	kind, err := driverKindFromName(kindName)
	if err != nil {
		return nil, err
	}
	d.Kind = kind

	args = options.ExpandResponseFiles(args, d.fs, d.diags)
	parsed, err := options.NewParser(optionTable()).Parse(args)
	if err != nil {
		return nil, err
	}
	if inv.IsRepl {
		parsed.AddFlag(optRepl)
	}
	d.ParsedOptions = parsed

	if err := d.resolveWorkingDirectory(); err != nil {
		return nil, err
	}
	if err := d.collectInputs(); err != nil {
		return nil, err
	}
	mode, err := computeCompilerMode(parsed, kind, len(d.InputFiles) > 0, d.diags)
	if err != nil {
		return nil, err
	}
	d.Mode = mode
	if err := d.checkForMissingInputs(); err != nil {
		return nil, err
	}

	if err := d.loadOutputFileMap(); err != nil {
		return nil, err
	}
	d.snapshotInputModificationDates()

	if err := d.resolveToolchainAndTargetInfo(ctx); err != nil {
		return nil, err
	}

	d.resolveLTO()
	if err := d.computePrimaryOutputs(); err != nil {
		return nil, err
	}
	d.DebugInfo = d.computeDebugInfo()
	d.ModuleOutputInfo = d.computeModuleOutputInfo()
	d.computeSupplementaryOutputs()
	d.computeBridgingHeaderPlan()
	d.validateArguments()
	d.resolveExecutorPolicy()
	d.setUpIncrementalState(cfg.Incremental)

	if d.diags.HasErrors() {
		return nil, &PlanningFailedError{Errors: d.diags.ErrorCount()}
	}
	return d, nil
}

// PlanningFailedError reports that validation emitted errors.
type PlanningFailedError struct {
	Errors int
}

// Error implements error.
func (e *PlanningFailedError) Error() string {
	if e.Errors == 1 {
		return "planning failed with 1 error"
	}
	return "planning failed with errors"
}

// extractDriverMode applies the --driver-mode= override, which wins over
// the invocation basename and is consumed before parsing.
func extractDriverMode(args []string, defaultName string) ([]string, string) {
	name := defaultName
	kept := make([]string, 0, len(args))
	for _, arg := range args {
		if mode, ok := strings.CutPrefix(arg, "--driver-mode="); ok {
			name = mode
			continue
		}
		kept = append(kept, arg)
	}
	return kept, name
}

// nopLogger is the default logger when none is configured.
type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...ports.Field) {}
func (nopLogger) Info(context.Context, string, ...ports.Field)  {}
func (nopLogger) Warn(context.Context, string, ...ports.Field)  {}
func (nopLogger) Error(context.Context, string, ...ports.Field) {}
func (nopLogger) With(...ports.Field) ports.Logger              { return nopLogger{} }
func (nopLogger) Level() ports.Level                            { return ports.LevelError }

// resolveWorkingDirectory captures -working-directory, made absolute
// against the process working directory.
func (d *Driver) resolveWorkingDirectory() error {
	arg, ok := d.ParsedOptions.GetLastArgument(optWorkingDirectory)
	if !ok {
		return nil
	}
	if !filepath.IsAbs(arg) {
		cwd, err := d.fs.Getwd()
		if err != nil {
			return err
		}
		arg = filepath.Join(cwd, arg)
	}
	wd := vpath.NewAbsolute(arg)
	d.WorkingDirectory = &wd
	return nil
}

// effectiveStatPath resolves a logical path to the one the filesystem
// is asked about: relative paths resolve against the working directory
// when one is set.
func (d *Driver) effectiveStatPath(p vpath.VirtualPath) string {
	if d.WorkingDirectory != nil {
		return p.ResolvedRelativeTo(*d.WorkingDirectory).Name()
	}
	return p.Name()
}

// snapshotInputModificationDates captures the mtime of every input for
// which stat succeeds, before any job runs.
func (d *Driver) snapshotInputModificationDates() {
	d.RecordedInputModificationDates = make(map[string]time.Time, len(d.InputFiles))
	for _, input := range d.InputFiles {
		if input.File.IsStandardStream() {
			continue
		}
		info, err := d.fs.Stat(d.effectiveStatPath(input.File))
		if err != nil {
			continue
		}
		d.RecordedInputModificationDates[input.File.Name()] = info.ModTime
	}
}

// loadOutputFileMap eagerly loads -output-file-map and rebases it to
// the working directory.
func (d *Driver) loadOutputFileMap() error {
	path, ok := d.ParsedOptions.GetLastArgument(optOutputFileMap)
	if !ok {
		return nil
	}
	m, err := outputmap.Load(d.effectivePath(vpath.New(path)).Name(), d.fs)
	if err != nil {
		return &UnableToLoadOutputFileMapError{Path: path, Err: err}
	}
	if d.WorkingDirectory != nil {
		m = m.ResolveRelativePaths(*d.WorkingDirectory)
	}
	d.OutputFileMap = m
	return nil
}

// effectivePath rebases a relative path against the working directory
// when one is set; other paths pass through.
func (d *Driver) effectivePath(p vpath.VirtualPath) vpath.VirtualPath {
	if d.WorkingDirectory != nil {
		return p.ResolvedRelativeTo(*d.WorkingDirectory)
	}
	return p
}

// Diagnostics exposes the engine for callers that share it with other
// subsystems.
func (d *Driver) Diagnostics() *diagnostics.Engine {
	return d.diags
}

// FrontendPath is the resolved frontend executable, honoring
// -tools-directory and -driver-use-frontend-path.
func (d *Driver) FrontendPath() string {
	return d.frontendPath
}

// FrontendPrefixArgs are prepended to every frontend invocation.
func (d *Driver) FrontendPrefixArgs() []string {
	return d.frontendPrefixArgs
}
