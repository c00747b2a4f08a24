package planning

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cltnschlosser/swift-driver/internal/domain/diagnostics"
	"github.com/cltnschlosser/swift-driver/internal/domain/job"
	"github.com/cltnschlosser/swift-driver/internal/driver"
	"github.com/cltnschlosser/swift-driver/internal/ports"
)

func buildDriver(t *testing.T, argv ...string) *driver.Driver {
	t.Helper()
	exec := ports.NewMockExecutor()
	exec.CaptureResults[job.KindPrintTargetInfo] = []byte(fmt.Sprintf(
		`{"compilerVersion": "Swift 5.3-dev", "target": {"triple": %q}}`,
		"x86_64-unknown-linux-gnu"))
	d, err := driver.New(context.Background(), argv, driver.Config{
		Env:         ports.MapEnv{},
		FileSystem:  ports.NewMockFileSystem(),
		Executor:    exec,
		Diagnostics: diagnostics.NewEngine(nil),
	})
	require.NoError(t, err)
	return d
}

func TestPlanStandardCompileAndLink(t *testing.T) {
	d := buildDriver(t, "swiftc", "a.swift", "b.swift", "-o", "main")
	jobs, err := NewPlanner(d).PlanJobs()
	require.NoError(t, err)
	require.Len(t, jobs, 3)

	assert.Equal(t, job.KindCompile, jobs[0].Kind)
	assert.Equal(t, job.KindCompile, jobs[1].Kind)
	assert.Equal(t, job.KindLink, jobs[2].Kind)

	link := jobs[2]
	require.Len(t, link.Outputs, 1)
	assert.Equal(t, "main", link.Outputs[0].File.Name())
	assert.Len(t, link.Inputs, 2)
}

func TestPlanObjectOnly(t *testing.T) {
	d := buildDriver(t, "swiftc", "-c", "a.swift")
	jobs, err := NewPlanner(d).PlanJobs()
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, job.KindCompile, jobs[0].Kind)
	assert.Contains(t, jobs[0].Arguments, "-primary-file")
}

func TestPlanWholeModule(t *testing.T) {
	d := buildDriver(t, "swiftc", "-wmo", "-c", "a.swift", "b.swift", "-o", "all.o")
	jobs, err := NewPlanner(d).PlanJobs()
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, job.KindCompile, jobs[0].Kind)
	assert.Len(t, jobs[0].Inputs, 2)
	assert.Equal(t, "all.o", jobs[0].Outputs[0].File.Name())
}

func TestPlanImmediateRunsInPlace(t *testing.T) {
	d := buildDriver(t, "swift", "script.swift")
	jobs, err := NewPlanner(d).PlanJobs()
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, job.KindInterpret, jobs[0].Kind)
	assert.True(t, jobs[0].RequestsInPlaceExecution)
}

func TestPlanRepl(t *testing.T) {
	d := buildDriver(t, "swift", "repl")
	jobs, err := NewPlanner(d).PlanJobs()
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, job.KindREPL, jobs[0].Kind)
}

func TestPlanEmitsMergeModule(t *testing.T) {
	d := buildDriver(t, "swiftc", "-emit-module", "a.swift", "b.swift", "-module-name", "Lib")
	jobs, err := NewPlanner(d).PlanJobs()
	require.NoError(t, err)

	var merge *job.Job
	for i := range jobs {
		if jobs[i].Kind == job.KindMergeModule {
			merge = &jobs[i]
		}
	}
	require.NotNil(t, merge)
	assert.Equal(t, "Lib.swiftmodule", merge.Outputs[0].File.Name())
}

func TestPlanBareVersionRequest(t *testing.T) {
	d := buildDriver(t, "swiftc", "-v")
	jobs, err := NewPlanner(d).PlanJobs()
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, job.KindVersionRequest, jobs[0].Kind)
	assert.True(t, jobs[0].RequestsInPlaceExecution)
}

func TestPlanPassesThroughObjectInputs(t *testing.T) {
	d := buildDriver(t, "swiftc", "a.swift", "extra.o", "-o", "main")
	jobs, err := NewPlanner(d).PlanJobs()
	require.NoError(t, err)

	link := jobs[len(jobs)-1]
	require.Equal(t, job.KindLink, link.Kind)
	names := make([]string, 0, len(link.Inputs))
	for _, input := range link.Inputs {
		names = append(names, input.File.Name())
	}
	assert.Contains(t, names, "extra.o")
}
