// Package execution provides the process-launching DriverExecutor
// adapter.
package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/cltnschlosser/swift-driver/internal/domain/job"
	"github.com/cltnschlosser/swift-driver/internal/ports"
)

// ProcessExecutor launches jobs as child processes.
type ProcessExecutor struct{}

// NewProcessExecutor creates a new ProcessExecutor.
func NewProcessExecutor() *ProcessExecutor {
	return &ProcessExecutor{}
}

// Description renders the job's command line.
func (e *ProcessExecutor) Description(j job.Job) string {
	return j.CommandLine()
}

// ExecuteInPlace runs the job wired to the driver's standard streams and
// blocks until it exits.
func (e *ProcessExecutor) ExecuteInPlace(ctx context.Context, j job.Job, env []string) error {
	cmd := exec.CommandContext(ctx, j.Tool, j.Arguments...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(childEnv(env), j.ExtraEnvironment...)
	return cmd.Run()
}

// childEnv falls back to the process environment when the caller did not
// supply one.
func childEnv(env []string) []string {
	if env == nil {
		return os.Environ()
	}
	return env
}

// CaptureOutput runs the job and returns its standard output. A non-zero
// exit becomes a CapturedProcessError carrying the exit code and stderr.
func (e *ProcessExecutor) CaptureOutput(ctx context.Context, j job.Job, env []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, j.Tool, j.Arguments...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = append(childEnv(env), j.ExtraEnvironment...)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.Bytes(), &ports.CapturedProcessError{
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// ExecuteWorkload runs the jobs with bounded parallelism. Without
// ContinueBuildingAfterErrors the first failure cancels the shared
// context: no further jobs start, and jobs still running are killed.
func (e *ProcessExecutor) ExecuteWorkload(ctx context.Context, w ports.Workload, opts ports.WorkloadOptions) error {
	parallel := opts.NumParallelJobs
	if parallel < 1 {
		parallel = 1
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, parallel)
	errs := make(chan error, len(w.Jobs))
	var wg sync.WaitGroup

	for _, j := range w.Jobs {
		if runCtx.Err() != nil {
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(j job.Job) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := e.run(runCtx, j); err != nil {
				errs <- err
				if !opts.ContinueBuildingAfterErrors {
					cancel()
				}
			}
		}(j)
	}
	wg.Wait()
	close(errs)

	var failures []error
	for err := range errs {
		failures = append(failures, err)
	}
	return errors.Join(failures...)
}

// run executes one workload job wired to the driver's streams.
func (e *ProcessExecutor) run(ctx context.Context, j job.Job) error {
	cmd := exec.CommandContext(ctx, j.Tool, j.Arguments...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), j.ExtraEnvironment...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", j.Kind, err)
	}
	return nil
}
