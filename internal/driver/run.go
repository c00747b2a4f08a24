package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cltnschlosser/swift-driver/internal/domain/job"
	"github.com/cltnschlosser/swift-driver/internal/ports"
)

// driverVersion is stamped by the build.
var driverVersion = "dev"

// Run dispatches the planned jobs: the print modes short-circuit, a
// lone job may run in the driver's place, and everything else goes to
// the executor as one workload. Run is called at most once per Driver.
func (d *Driver) Run(ctx context.Context, jobs []job.Job) error {
	if d.ran {
		panic("driver: Run called twice")
	}
	d.ran = true
	defer d.warnUnusedOptions()

	bannerPrinted := false
	if d.ParsedOptions.HasArgument(optV, optVersion) {
		d.printVersionBanner()
		bannerPrinted = true
	}

	switch {
	case d.ParsedOptions.HasArgument(optDriverPrintJobs):
		for _, j := range jobs {
			fmt.Fprintln(d.stdout, d.executor.Description(j))
		}
		return nil

	case d.ParsedOptions.HasArgument(optDriverPrintOutputFileMap):
		if d.OutputFileMap == nil {
			return fmt.Errorf("no output file map specified")
		}
		fmt.Fprint(d.stdout, d.OutputFileMap.Render())
		return nil

	case d.ParsedOptions.HasArgument(optDriverPrintBindings):
		d.printBindings(jobs)
		return nil

	case d.ParsedOptions.HasArgument(optDriverPrintActions):
		d.printActions(jobs)
		return nil

	case d.ParsedOptions.HasArgument(optDriverPrintGraphviz):
		d.printGraphviz(jobs)
		return nil
	}

	if inPlace, ok := d.inPlaceJob(jobs); ok {
		if inPlace.Kind == job.KindVersionRequest {
			if !bannerPrinted {
				d.printVersionBanner()
			}
			return nil
		}
		d.logger.Debug(ctx, "executing in place", ports.F("kind", string(inPlace.Kind)))
		return d.executor.ExecuteInPlace(ctx, inPlace, nil)
	}

	workload := ports.Workload{Jobs: jobs, Incremental: d.Incremental}
	err := d.executor.ExecuteWorkload(ctx, workload, ports.WorkloadOptions{
		NumParallelJobs:                d.NumParallelJobs,
		ContinueBuildingAfterErrors:    d.ContinueBuildingAfterErrors,
		ForceResponseFiles:             d.ForceResponseFiles,
		RecordedInputModificationDates: d.RecordedInputModificationDates,
	})
	if recordErr := d.writeBuildRecord(jobs); recordErr != nil {
		d.diags.Warn("could not write build record: %v", recordErr)
	}
	return err
}

// inPlaceJob decides whether a single job runs in the driver's place:
// either the job requests it, or it is the only job and neither
// parseable output nor a build record needs the outer driver loop.
func (d *Driver) inPlaceJob(jobs []job.Job) (job.Job, bool) {
	var requested []job.Job
	for _, j := range jobs {
		if j.RequestsInPlaceExecution {
			requested = append(requested, j)
		}
	}
	if len(requested) == 1 {
		return requested[0], true
	}
	if len(jobs) == 1 && !d.ParseableOutput && d.BuildRecordPath == nil {
		return jobs[0], true
	}
	return job.Job{}, false
}

func (d *Driver) printVersionBanner() {
	fmt.Fprintf(d.stdout, "swift-driver version %s (%s)\n", driverVersion,
		"github.com/cltnschlosser/swift-driver")
}

// printBindings emits one line per job in the fixed bindings format.
func (d *Driver) printBindings(jobs []job.Job) {
	for _, j := range jobs {
		inputs := make([]string, 0, len(j.Inputs))
		for _, input := range j.Inputs {
			inputs = append(inputs, fmt.Sprintf("%q", input.File.Name()))
		}
		outputs := make([]string, 0, len(j.Outputs))
		for _, output := range j.Outputs {
			outputs = append(outputs, fmt.Sprintf("%s: %q", output.Type.Tag(), output.File.Name()))
		}
		fmt.Fprintf(d.stdout, "# %q - %q, inputs: [%s], output: {%s}\n",
			d.TargetTriple.String(), filepath.Base(j.Tool),
			strings.Join(inputs, ", "), strings.Join(outputs, ", "))
	}
}

// printActions assigns integer IDs to inputs and jobs in encounter
// order. Inputs print on first sight.
func (d *Driver) printActions(jobs []job.Job) {
	nextID := 0
	inputIDs := make(map[string]int)

	for _, j := range jobs {
		var inputRefs []string
		for _, input := range j.Inputs {
			name := input.File.Name()
			id, seen := inputIDs[name]
			if !seen {
				id = nextID
				nextID++
				inputIDs[name] = id
				fmt.Fprintf(d.stdout, "%d: input, %q, %s\n", id, name, input.Type.Tag())
			}
			inputRefs = append(inputRefs, fmt.Sprint(id))
		}
		outType := "none"
		if primary, ok := j.PrimaryOutput(); ok {
			outType = primary.Type.Tag()
		}
		fmt.Fprintf(d.stdout, "%d: %s, {%s}, %s\n", nextID, j.Kind, strings.Join(inputRefs, ", "), outType)
		nextID++
	}
}

// printGraphviz renders the job graph as DOT, with an edge wherever one
// job's output feeds another's input.
func (d *Driver) printGraphviz(jobs []job.Job) {
	fmt.Fprintln(d.stdout, "digraph Jobs {")

	producers := make(map[string]int)
	for i, j := range jobs {
		for _, output := range j.Outputs {
			producers[output.File.Name()] = i
		}
	}
	nodeName := func(i int) string {
		return fmt.Sprintf("job_%d", i)
	}
	for i, j := range jobs {
		fmt.Fprintf(d.stdout, "  %s [label=%q];\n", nodeName(i), string(j.Kind))
	}
	for i, j := range jobs {
		for _, input := range j.Inputs {
			if producer, ok := producers[input.File.Name()]; ok && producer != i {
				fmt.Fprintf(d.stdout, "  %s -> %s [label=%q];\n", nodeName(producer), nodeName(i), input.File.Name())
			}
		}
	}
	fmt.Fprintln(d.stdout, "}")
}

// warnUnusedOptions emits one warning per option never consumed by any
// planning step, when requested.
func (d *Driver) warnUnusedOptions() {
	if !d.ParsedOptions.HasArgument(optDriverWarnUnusedOptions) {
		return
	}
	for _, unused := range d.ParsedOptions.UnconsumedOptions() {
		d.diags.Warn("option '%s' is unused", unused.Option)
	}
}
