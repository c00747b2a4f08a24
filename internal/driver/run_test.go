package driver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cltnschlosser/swift-driver/internal/domain/diagnostics"
	"github.com/cltnschlosser/swift-driver/internal/domain/job"
	"github.com/cltnschlosser/swift-driver/internal/domain/vpath"
)

func compileJob(input, output string) job.Job {
	return job.Job{
		Kind:      job.KindCompile,
		Tool:      "/toolchain/bin/swift-frontend",
		Arguments: []string{"-frontend", "-c", input, "-o", output},
		Inputs:    []vpath.TypedVirtualPath{{File: vpath.New(input), Type: vpath.FileTypeSwift}},
		Outputs:   []vpath.TypedVirtualPath{{File: vpath.New(output), Type: vpath.FileTypeObject}},
	}
}

func linkJob(inputs []string, output string) job.Job {
	j := job.Job{
		Kind:      job.KindLink,
		Tool:      "/usr/bin/clang",
		Arguments: append([]string{"-o", output}, inputs...),
		Outputs:   []vpath.TypedVirtualPath{{File: vpath.New(output), Type: vpath.FileTypeImage}},
	}
	for _, input := range inputs {
		j.Inputs = append(j.Inputs, vpath.TypedVirtualPath{File: vpath.New(input), Type: vpath.FileTypeObject})
	}
	return j
}

func TestPrintJobs(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swiftc", "-driver-print-jobs", "a.swift", "b.swift")

	jobs := []job.Job{compileJob("a.swift", "a.o"), compileJob("b.swift", "b.o")}
	require.NoError(t, d.Run(context.Background(), jobs))

	out := w.stdout.String()
	assert.Contains(t, out, "/toolchain/bin/swift-frontend -frontend -c a.swift -o a.o")
	assert.Contains(t, out, "b.swift -o b.o")
	// Nothing was executed.
	assert.Empty(t, w.exec.Workloads)
	assert.Empty(t, w.exec.InPlaceJobs)
}

func TestPrintOutputFileMap(t *testing.T) {
	w := newWorld()
	w.fs.Files["m.json"] = `{"a.swift": {"object": "a.o"}}`
	d := w.mustBuild(t, "swiftc", "-driver-print-output-file-map", "-output-file-map", "m.json", "a.swift")
	require.NoError(t, d.Run(context.Background(), nil))
	assert.Contains(t, w.stdout.String(), "object: a.o")

	w = newWorld()
	d = w.mustBuild(t, "swiftc", "-driver-print-output-file-map", "a.swift")
	assert.Error(t, d.Run(context.Background(), nil))
}

func TestPrintBindings(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swiftc", "-driver-print-bindings", "a.swift")

	require.NoError(t, d.Run(context.Background(), []job.Job{compileJob("a.swift", "a.o")}))
	assert.Equal(t,
		"# \"x86_64-unknown-linux-gnu\" - \"swift-frontend\", inputs: [\"a.swift\"], output: {object: \"a.o\"}\n",
		w.stdout.String())
}

func TestPrintActions(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swiftc", "-driver-print-actions", "a.swift", "b.swift")

	jobs := []job.Job{
		compileJob("a.swift", "a.o"),
		compileJob("b.swift", "b.o"),
		linkJob([]string{"a.o", "b.o"}, "main"),
	}
	require.NoError(t, d.Run(context.Background(), jobs))

	assert.Equal(t,
		"0: input, \"a.swift\", swift\n"+
			"1: compile, {0}, object\n"+
			"2: input, \"b.swift\", swift\n"+
			"3: compile, {2}, object\n"+
			"4: input, \"a.o\", object\n"+
			"5: input, \"b.o\", object\n"+
			"6: link, {4, 5}, image\n",
		w.stdout.String())
}

func TestPrintGraphviz(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swiftc", "-driver-print-graphviz", "a.swift")

	jobs := []job.Job{
		compileJob("a.swift", "a.o"),
		linkJob([]string{"a.o"}, "main"),
	}
	require.NoError(t, d.Run(context.Background(), jobs))

	out := w.stdout.String()
	assert.Contains(t, out, "digraph Jobs {")
	assert.Contains(t, out, `job_0 [label="compile"];`)
	assert.Contains(t, out, `job_0 -> job_1 [label="a.o"];`)
}

func TestSingleJobRunsInPlace(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swiftc", "-c", "a.swift")

	require.NoError(t, d.Run(context.Background(), []job.Job{compileJob("a.swift", "a.o")}))
	require.Len(t, w.exec.InPlaceJobs, 1)
	assert.Empty(t, w.exec.Workloads)
}

func TestParseableOutputForcesWorkload(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swiftc", "-c", "-parseable-output", "a.swift")

	require.NoError(t, d.Run(context.Background(), []job.Job{compileJob("a.swift", "a.o")}))
	assert.Empty(t, w.exec.InPlaceJobs)
	require.Len(t, w.exec.Workloads, 1)
}

func TestRequestedInPlaceExecutionWins(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swift", "a.swift")

	interpret := job.Job{
		Kind:                     job.KindInterpret,
		Tool:                     "swift-frontend",
		RequestsInPlaceExecution: true,
	}
	require.NoError(t, d.Run(context.Background(), []job.Job{interpret}))
	require.Len(t, w.exec.InPlaceJobs, 1)
	assert.Equal(t, job.KindInterpret, w.exec.InPlaceJobs[0].Kind)
}

func TestVersionRequestPrintsBanner(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swiftc", "-c", "a.swift")

	version := job.Job{Kind: job.KindVersionRequest, RequestsInPlaceExecution: true}
	require.NoError(t, d.Run(context.Background(), []job.Job{version}))
	assert.Contains(t, w.stdout.String(), "swift-driver version")
	assert.Empty(t, w.exec.InPlaceJobs)
}

func TestWorkloadCarriesExecutorPolicy(t *testing.T) {
	w := newWorld()
	w.fs.Files["a.swift"] = "x"
	w.fs.Files["b.swift"] = "y"
	d := w.mustBuild(t, "swiftc", "-c", "a.swift", "b.swift", "-module-name", "App",
		"-j", "3", "-continue-building-after-errors", "-driver-force-response-files")

	jobs := []job.Job{compileJob("a.swift", "a.o"), compileJob("b.swift", "b.o")}
	require.NoError(t, d.Run(context.Background(), jobs))

	require.Len(t, w.exec.Workloads, 1)
	assert.Len(t, w.exec.Workloads[0].Jobs, 2)
	opts := w.exec.Options[0]
	assert.Equal(t, 3, opts.NumParallelJobs)
	assert.True(t, opts.ContinueBuildingAfterErrors)
	assert.True(t, opts.ForceResponseFiles)
	assert.Len(t, opts.RecordedInputModificationDates, 2)
}

func TestUnusedOptionWarnings(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swiftc", "-c", "a.swift",
		"-driver-warn-unused-options", "-index-store-path", "store")

	require.NoError(t, d.Run(context.Background(), []job.Job{compileJob("a.swift", "a.o")}))
	assert.True(t, containsMatch(w.warnings(), "'-index-store-path' is unused"))
}

func TestBuildRecordWritten(t *testing.T) {
	w := newWorld()
	w.fs.Files["a.swift"] = "x"
	w.fs.Files["m.json"] = `{
	  "a.swift": {"object": "a.o", "swift-dependencies": "a.swiftdeps"},
	  "": {"swift-dependencies": "build.swiftdeps"}
	}`
	d := w.mustBuild(t, "swiftc", "-c", "-incremental", "-output-file-map", "m.json", "a.swift")
	require.NotNil(t, d.BuildRecordPath)
	assert.Equal(t, "build.swiftdeps", d.BuildRecordPath.Name())

	require.NoError(t, d.Run(context.Background(), []job.Job{compileJob("a.swift", "a.o")}))
	// The build record forced the workload path and was written.
	require.Len(t, w.exec.Workloads, 1)
	record, ok := w.fs.Written["build.swiftdeps"]
	require.True(t, ok)
	assert.Contains(t, string(record), "version: Swift 5.3-dev")
	assert.Contains(t, string(record), "a.swift")
}

func TestIncrementalDisqualifiedWithoutMapEntry(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swiftc", "-c", "-incremental", "-driver-show-incremental", "a.swift")
	assert.Nil(t, d.BuildRecordPath)

	remarked := false
	for _, diag := range w.sink.Diagnostics() {
		if diag.Severity == diagnostics.SeverityRemark {
			remarked = true
		}
	}
	assert.True(t, remarked)
}

func TestRunTwicePanics(t *testing.T) {
	w := newWorld()
	d := w.mustBuild(t, "swiftc", "-c", "a.swift")
	require.NoError(t, d.Run(context.Background(), nil))
	assert.Panics(t, func() {
		_ = d.Run(context.Background(), nil)
	})
}
