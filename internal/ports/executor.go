// Package ports defines interfaces for the driver's external
// collaborators: the job executor, the filesystem, the environment, and
// structured logging. Mock implementations live beside the interfaces.
package ports

import (
	"context"
	"fmt"
	"time"

	"github.com/cltnschlosser/swift-driver/internal/domain/job"
)

// IncrementalState is the opaque handle to the incremental-compilation
// engine. The driver core only threads it through to the executor and
// asks which inputs were skipped when writing the build record.
type IncrementalState interface {
	// SkippedInputs returns the input paths the engine decided not to
	// rebuild.
	SkippedInputs() []string
}

// Workload is the unit submitted to the executor: every planned job
// exactly once, plus optional incremental state.
type Workload struct {
	Jobs        []job.Job
	Incremental IncrementalState
}

// WorkloadOptions carries the executor policy the driver resolved.
type WorkloadOptions struct {
	NumParallelJobs             int
	ContinueBuildingAfterErrors bool
	ForceResponseFiles          bool
	// RecordedInputModificationDates is the snapshot of input mtimes
	// taken before any job ran, keyed by input path.
	RecordedInputModificationDates map[string]time.Time
}

// CapturedProcessError reports a captured sub-invocation that exited
// non-zero.
type CapturedProcessError struct {
	ExitCode int
	Stderr   string
}

// Error implements error.
func (e *CapturedProcessError) Error() string {
	return fmt.Sprintf("process exited with code %d: %s", e.ExitCode, e.Stderr)
}

// DriverExecutor launches the jobs the driver plans. The driver core
// never manages processes itself.
type DriverExecutor interface {
	// Description renders a human-readable description of the job.
	Description(j job.Job) string

	// ExecuteInPlace runs a single job in the driver's place, blocking
	// until it finishes.
	ExecuteInPlace(ctx context.Context, j job.Job, env []string) error

	// CaptureOutput runs a single job synchronously and returns its
	// standard output. A non-zero exit returns a CapturedProcessError.
	CaptureOutput(ctx context.Context, j job.Job, env []string) ([]byte, error)

	// ExecuteWorkload runs every job in the workload under the given
	// policy. Ordering across jobs is the executor's responsibility.
	ExecuteWorkload(ctx context.Context, w Workload, opts WorkloadOptions) error
}

// MockExecutor is a test double for DriverExecutor.
type MockExecutor struct {
	// CaptureResults maps a job kind to the bytes CaptureOutput
	// returns for it.
	CaptureResults map[job.Kind][]byte
	// CaptureErr, when set, is returned by CaptureOutput.
	CaptureErr error
	// WorkloadErr, when set, is returned by ExecuteWorkload.
	WorkloadErr error

	InPlaceJobs []job.Job
	Workloads   []Workload
	Options     []WorkloadOptions
	Captured    []job.Job
}

// NewMockExecutor creates an empty mock.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{CaptureResults: make(map[job.Kind][]byte)}
}

// Description renders the job's command line.
func (m *MockExecutor) Description(j job.Job) string {
	return j.CommandLine()
}

// ExecuteInPlace records the job.
func (m *MockExecutor) ExecuteInPlace(_ context.Context, j job.Job, _ []string) error {
	m.InPlaceJobs = append(m.InPlaceJobs, j)
	return nil
}

// CaptureOutput returns the configured bytes for the job's kind.
func (m *MockExecutor) CaptureOutput(_ context.Context, j job.Job, _ []string) ([]byte, error) {
	m.Captured = append(m.Captured, j)
	if m.CaptureErr != nil {
		return nil, m.CaptureErr
	}
	if out, ok := m.CaptureResults[j.Kind]; ok {
		return out, nil
	}
	return nil, fmt.Errorf("no mock output for job kind %q", j.Kind)
}

// ExecuteWorkload records the workload and options.
func (m *MockExecutor) ExecuteWorkload(_ context.Context, w Workload, opts WorkloadOptions) error {
	m.Workloads = append(m.Workloads, w)
	m.Options = append(m.Options, opts)
	return m.WorkloadErr
}
