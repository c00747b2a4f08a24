package driver

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cltnschlosser/swift-driver/internal/domain/diagnostics"
	"github.com/cltnschlosser/swift-driver/internal/domain/job"
	"github.com/cltnschlosser/swift-driver/internal/ports"
)

// testWorld bundles the mocked collaborators a Driver is constructed
// over in tests.
type testWorld struct {
	fs     *ports.MockFileSystem
	exec   *ports.MockExecutor
	sink   *diagnostics.CapturingSink
	env    ports.MapEnv
	stdout bytes.Buffer
}

func newWorld() *testWorld {
	w := &testWorld{
		fs:   ports.NewMockFileSystem(),
		exec: ports.NewMockExecutor(),
		sink: diagnostics.NewCapturingSink(),
		env:  ports.MapEnv{},
	}
	w.targetInfo("x86_64-unknown-linux-gnu")
	return w
}

// targetInfo installs the frontend's -print-target-info reply.
func (w *testWorld) targetInfo(tripleStr string) {
	w.exec.CaptureResults[job.KindPrintTargetInfo] = []byte(fmt.Sprintf(
		`{"compilerVersion": "Swift 5.3-dev", "target": {"triple": %q, "swiftRuntimeCompatibilityVersion": "5.0"}}`,
		tripleStr))
}

func (w *testWorld) build(t *testing.T, argv ...string) (*Driver, error) {
	t.Helper()
	return New(context.Background(), argv, Config{
		Env:         w.env,
		FileSystem:  w.fs,
		Executor:    w.exec,
		Diagnostics: diagnostics.NewEngine(w.sink),
		Stdout:      &w.stdout,
	})
}

func (w *testWorld) mustBuild(t *testing.T, argv ...string) *Driver {
	t.Helper()
	d, err := w.build(t, argv...)
	require.NoError(t, err, "diagnostics: %v", w.sink.Messages())
	return d
}

func (w *testWorld) warnings() []string {
	var out []string
	for _, d := range w.sink.Diagnostics() {
		if d.Severity == diagnostics.SeverityWarning {
			out = append(out, d.Message)
		}
	}
	return out
}

func (w *testWorld) errors() []string {
	var out []string
	for _, d := range w.sink.Diagnostics() {
		if d.Severity == diagnostics.SeverityError {
			out = append(out, d.Message)
		}
	}
	return out
}

func TestSubcommandDispatch(t *testing.T) {
	// "swift package build" forwards to swift-package.
	inv := ClassifyArgv([]string{"swift", "package", "build"})
	assert.Equal(t, RunModeSubcommand, inv.Mode)
	assert.Equal(t, "swift-package", inv.Subcommand)
	assert.Equal(t, []string{"swift-package", "build"}, inv.Argv)

	w := newWorld()
	_, err := w.build(t, "swift", "package", "build")
	var subErr *SubcommandPassedToDriverError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "swift-package", subErr.Subcommand)
}

func TestFrontendPassthrough(t *testing.T) {
	inv := ClassifyArgv([]string{"swift", "-frontend", "-c", "a.swift"})
	assert.Equal(t, RunModeSubcommand, inv.Mode)
	assert.Equal(t, "swift-frontend", inv.Subcommand)
	assert.Equal(t, []string{"swift-frontend", "-c", "a.swift"}, inv.Argv)

	inv = ClassifyArgv([]string{"swiftc", "-modulewrap", "x.o"})
	assert.Equal(t, "swift-modulewrap", inv.Subcommand)
}

func TestReplClassification(t *testing.T) {
	inv := ClassifyArgv([]string{"swift", "repl"})
	assert.Equal(t, RunModeNormal, inv.Mode)
	assert.True(t, inv.IsRepl)
	assert.Equal(t, []string{"swift"}, inv.Argv)

	w := newWorld()
	d := w.mustBuild(t, "swift", "repl")
	assert.Equal(t, ModeREPL, d.Mode.Kind)
	assert.Equal(t, "REPL", d.ModuleOutputInfo.Name)
}

func TestNormalInvocationsAreNotSubcommands(t *testing.T) {
	for _, argv := range [][]string{
		{"swift", "-g", "a.swift"},
		{"swift", "/abs/a.swift"},
		{"swift", "a.swift"},
		{"swiftc", "a.swift"},
	} {
		inv := ClassifyArgv(argv)
		assert.Equal(t, RunModeNormal, inv.Mode, "%v", argv)
	}
}

func TestDriverModeOverride(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swift", "--driver-mode=swiftc", "a.swift")
	assert.Equal(t, DriverKindBatch, d.Kind)

	_, err := w.build(t, "swiftc", "--driver-mode=swift-hunt", "a.swift")
	var nameErr *InvalidDriverNameError
	require.ErrorAs(t, err, &nameErr)
	assert.Equal(t, "swift-hunt", nameErr.Name)
}

func TestInteractiveModes(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swift", "a.swift")
	assert.Equal(t, ModeImmediate, d.Mode.Kind)

	w = newWorld()
	d = w.mustBuild(t, "swift")
	assert.Equal(t, ModeREPL, d.Mode.Kind)
}

func TestNoInputFiles(t *testing.T) {
	w := newWorld()
	_, err := w.build(t, "swiftc")
	assert.ErrorIs(t, err, ErrNoInputFiles)

	// A bare version request needs no inputs.
	w = newWorld()
	_, err = w.build(t, "swiftc", "-v")
	assert.NoError(t, err)
}

func TestInputClassification(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swiftc", "a.swift", "b.o", "-", "weird.xyz")
	require.Len(t, d.InputFiles, 4)
	assert.Equal(t, "a.swift", d.InputFiles[0].File.Name())
	assert.Equal(t, "swift", d.InputFiles[0].Type.Tag())
	assert.Equal(t, "object", d.InputFiles[1].Type.Tag())
	assert.Equal(t, "-", d.InputFiles[2].File.Name())
	assert.Equal(t, "swift", d.InputFiles[2].Type.Tag())
	// Unknown extensions classify as objects.
	assert.Equal(t, "object", d.InputFiles[3].Type.Tag())
}

func TestRecordedInputModificationDates(t *testing.T) {
	w := newWorld()
	w.fs.Files["a.swift"] = "let x = 1"
	w.fs.Files["b.swift"] = "let y = 2"
	d := w.mustBuild(t, "swiftc", "a.swift", "b.swift", "missing.swift")

	// Exactly one entry per input that stats successfully.
	assert.Len(t, d.RecordedInputModificationDates, 2)
	_, ok := d.RecordedInputModificationDates["missing.swift"]
	assert.False(t, ok)
}

func TestModuleNameFromLibraryOutput(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swiftc", "a.swift", "b.swift", "-o", "libfoo.dylib", "-emit-library")
	require.NotNil(t, d.LinkerOutputType)
	assert.Equal(t, LinkDynamicLibrary, *d.LinkerOutputType)
	assert.Equal(t, "foo", d.ModuleOutputInfo.Name)
	assert.False(t, d.ModuleOutputInfo.NameIsFallback)
}

func TestModuleNameFallbacks(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swiftc", "main.swift")
	assert.Equal(t, "main", d.ModuleOutputInfo.Name)

	// An invalid derived name falls back to "main" for an executable.
	w = newWorld()
	d = w.mustBuild(t, "swiftc", "12-bad-name.swift")
	assert.Equal(t, "main", d.ModuleOutputInfo.Name)
	assert.True(t, d.ModuleOutputInfo.NameIsFallback)

	// "Swift" is reserved unless -parse-stdlib.
	w = newWorld()
	d = w.mustBuild(t, "swiftc", "a.swift", "-module-name", "Swift", "-parse-stdlib")
	assert.Equal(t, "Swift", d.ModuleOutputInfo.Name)
}

func TestInvalidModuleNameDiagnosed(t *testing.T) {
	w := newWorld()
	_, err := w.build(t, "swiftc", "-c", "a.swift", "-module-name", "not-an-identifier")
	require.Error(t, err)
	require.NotEmpty(t, w.errors())
	assert.Contains(t, w.errors()[0], "not a valid identifier")
}

func TestWMODumpASTOverride(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swiftc", "-wmo", "-dump-ast", "x.swift")
	assert.Equal(t, ModeStandardCompile, d.Mode.Kind)
	require.NotEmpty(t, w.warnings())
	assert.Contains(t, w.warnings()[0], "-whole-module-optimization")
	// The flag was erased.
	assert.False(t, d.ParsedOptions.HasArgument(optWMO))
}

func TestModeDecisionTree(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want CompilerModeKind
	}{
		{"default", []string{"swiftc", "a.swift"}, ModeStandardCompile},
		{"wmo", []string{"swiftc", "-whole-module-optimization", "a.swift"}, ModeSingleCompile},
		{"wmo negated", []string{"swiftc", "-wmo", "-no-whole-module-optimization", "a.swift"}, ModeStandardCompile},
		{"index file", []string{"swiftc", "-index-file", "a.swift"}, ModeSingleCompile},
		{"batch", []string{"swiftc", "-enable-batch-mode", "a.swift"}, ModeBatchCompile},
		{"batch disabled", []string{"swiftc", "-enable-batch-mode", "-disable-batch-mode", "a.swift"}, ModeStandardCompile},
		{"emit-imported-modules", []string{"swiftc", "-emit-imported-modules", "a.swift"}, ModeSingleCompile},
		{"emit-pcm", []string{"swiftc", "-emit-pcm", "a.pcm"}, ModeCompilePCM},
		{"repl flag", []string{"swift", "-repl"}, ModeREPL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld()
			d := w.mustBuild(t, tt.args...)
			assert.Equal(t, tt.want, d.Mode.Kind)
		})
	}
}

func TestBatchModeIgnoredWithWMO(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swiftc", "-enable-batch-mode", "-wmo", "a.swift")
	assert.Equal(t, ModeSingleCompile, d.Mode.Kind)
	require.NotEmpty(t, w.warnings())
	assert.Contains(t, w.warnings()[0], "-enable-batch-mode")
}

func TestBatchModeInfo(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swiftc", "-enable-batch-mode",
		"-driver-batch-seed", "7", "-driver-batch-count", "3", "a.swift")
	require.True(t, d.Mode.IsBatchCompile())
	require.NotNil(t, d.Mode.Batch.Seed)
	assert.Equal(t, 7, *d.Mode.Batch.Seed)
	require.NotNil(t, d.Mode.Batch.Count)
	assert.Equal(t, 3, *d.Mode.Batch.Count)
	assert.Nil(t, d.Mode.Batch.SizeLimit)

	w = newWorld()
	_, err := w.build(t, "swiftc", "-enable-batch-mode", "-driver-batch-seed", "nope", "a.swift")
	var valueErr *InvalidArgumentValueError
	require.ErrorAs(t, err, &valueErr)
}

func TestIntegratedReplRemoved(t *testing.T) {
	w := newWorld()
	_, err := w.build(t, "swift", "-deprecated-integrated-repl")
	assert.ErrorIs(t, err, ErrIntegratedReplRemoved)
}

func TestObsoleteInterpreterFlag(t *testing.T) {
	w := newWorld()
	_, err := w.build(t, "swiftc", "-i", "a.swift")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no longer supported")
}

func TestStaticExecutableConflict(t *testing.T) {
	w := newWorld()
	_, err := w.build(t, "swiftc", "-static", "-emit-executable", "a.swift")
	var conflict *ConflictingOptionsError
	require.ErrorAs(t, err, &conflict)
}

func TestStaticLibrary(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swiftc", "-static", "-emit-library", "a.swift")
	require.NotNil(t, d.LinkerOutputType)
	assert.Equal(t, LinkStaticLibrary, *d.LinkerOutputType)
}

func TestLTOSwitchesObjectLikeToBitcode(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swiftc", "-lto=llvm-full", "-emit-executable", "a.swift")
	require.NotNil(t, d.CompilerOutputType)
	assert.Equal(t, "llvm-bc", d.CompilerOutputType.Tag())
	require.NotNil(t, d.LTO)
	assert.Equal(t, LTOFull, *d.LTO)
}

func TestEmbedBitcodeErasedForNonObjectOutput(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swiftc", "-embed-bitcode", "-emit-sil", "a.swift")
	require.NotEmpty(t, w.warnings())
	assert.Contains(t, w.warnings()[0], "-embed-bitcode")
	assert.False(t, d.ParsedOptions.HasArgument(optEmbedBitcode))
}
