// Package main provides the entry point for the compiler driver.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/cltnschlosser/swift-driver/internal/adapters/execution"
	"github.com/cltnschlosser/swift-driver/internal/adapters/filesystem"
	"github.com/cltnschlosser/swift-driver/internal/adapters/logging"
	"github.com/cltnschlosser/swift-driver/internal/domain/diagnostics"
	"github.com/cltnschlosser/swift-driver/internal/driver"
	"github.com/cltnschlosser/swift-driver/internal/planning"
	"github.com/cltnschlosser/swift-driver/internal/ports"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()

	sink := diagnostics.NewConsoleSink()
	diags := diagnostics.NewEngine(sink)

	var logger ports.Logger = logging.NewNopLogger()
	if os.Getenv("SWIFT_DRIVER_LOG") != "" {
		logger = logging.NewConsoleLogger(logging.WithLevel(ports.LevelDebug))
	}

	d, err := driver.New(ctx, os.Args, driver.Config{
		Env:         snapshotEnv(),
		FileSystem:  filesystem.NewRealFileSystem(),
		Executor:    execution.NewProcessExecutor(),
		Logger:      logger,
		Diagnostics: diags,
	})
	if err != nil {
		var subcommand *driver.SubcommandPassedToDriverError
		if errors.As(err, &subcommand) {
			fmt.Fprintf(os.Stderr, "error: unsupported invocation: run '%s' directly\n", subcommand.Subcommand)
			return 2
		}
		var planningErr *driver.PlanningFailedError
		if !errors.As(err, &planningErr) {
			// Planning failures already rendered their diagnostics.
			diags.Error("%v", err)
		}
		return 1
	}

	jobs, err := planning.NewPlanner(d).PlanJobs()
	if err != nil {
		diags.Error("%v", err)
		return 1
	}

	if err := d.Run(ctx, jobs); err != nil {
		diags.Error("%v", err)
		return 1
	}
	if diags.HasErrors() {
		return 1
	}
	return 0
}

// snapshotEnv captures the process environment once, at entry.
func snapshotEnv() ports.MapEnv {
	env := ports.MapEnv{}
	for _, entry := range os.Environ() {
		for i := 0; i < len(entry); i++ {
			if entry[i] == '=' {
				env[entry[:i]] = entry[i+1:]
				break
			}
		}
	}
	return env
}
