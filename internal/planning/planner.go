// Package planning constructs the jobs for a planned compilation. It is
// a deliberately small collaborator of the driver core: one frontend
// job per input (or one whole-module job), an optional module merge,
// and an optional link step.
package planning

import (
	"github.com/cltnschlosser/swift-driver/internal/domain/job"
	"github.com/cltnschlosser/swift-driver/internal/domain/vpath"
	"github.com/cltnschlosser/swift-driver/internal/driver"
)

// Planner builds jobs from a constructed Driver.
type Planner struct {
	d *driver.Driver
}

// NewPlanner creates a planner over the driver.
func NewPlanner(d *driver.Driver) *Planner {
	return &Planner{d: d}
}

// PlanJobs builds the job list for the driver's compilation mode.
func (p *Planner) PlanJobs() ([]job.Job, error) {
	d := p.d
	switch d.Mode.Kind {
	case driver.ModeREPL:
		return []job.Job{{
			Kind:                     job.KindREPL,
			Tool:                     d.FrontendPath(),
			Arguments:                p.frontendArgs("-repl"),
			RequestsInPlaceExecution: true,
		}}, nil

	case driver.ModeImmediate:
		args := p.frontendArgs("-interpret")
		for _, input := range d.InputFiles {
			args = append(args, input.File.Name())
		}
		return []job.Job{{
			Kind:                     job.KindInterpret,
			Tool:                     d.FrontendPath(),
			Arguments:                args,
			Inputs:                   d.InputFiles,
			RequestsInPlaceExecution: true,
		}}, nil

	case driver.ModeSingleCompile, driver.ModeCompilePCM:
		return p.planSingleCompile()

	default:
		return p.planStandardCompile()
	}
}

// frontendArgs starts a frontend argument vector with the shared
// context: the mode flag, target, module name, and SDK.
func (p *Planner) frontendArgs(modeFlag string) []string {
	d := p.d
	args := append([]string{}, d.FrontendPrefixArgs()...)
	args = append(args, "-frontend", modeFlag, "-target", d.TargetTriple.String())
	if d.ModuleOutputInfo.Name != "" {
		args = append(args, "-module-name", d.ModuleOutputInfo.Name)
	}
	if d.SDKPath != "" {
		args = append(args, "-sdk", d.SDKPath)
	}
	return args
}

// compileOutput decides where one input's primary output lands.
func (p *Planner) compileOutput(input vpath.TypedVirtualPath, t vpath.FileType) vpath.VirtualPath {
	d := p.d
	if d.OutputFileMap != nil {
		if out, ok := d.OutputFileMap.ExistingOutput(input.File, t); ok {
			return out
		}
	}
	if input.File.IsStandardStream() {
		return vpath.NewTemporaryWithUniqueBasename("stdin", t)
	}
	return vpath.NewTemporary(input.File.BasenameWithoutExt() + "." + t.Ext())
}

func (p *Planner) planSingleCompile() ([]job.Job, error) {
	d := p.d
	if d.CompilerOutputType == nil {
		return nil, nil
	}
	outType := *d.CompilerOutputType

	var output vpath.VirtualPath
	if d.ExplicitOutputPath != nil {
		output = *d.ExplicitOutputPath
	} else if d.OutputFileMap != nil {
		if mapped, ok := d.OutputFileMap.ExistingOutputForSingleInput(outType); ok {
			output = mapped
		}
	}
	if output.Name() == "" {
		output = vpath.NewRelative(d.ModuleOutputInfo.Name + "." + outType.Ext())
	}

	args := p.frontendArgs(modeFlagFor(outType))
	for _, input := range d.InputFiles {
		args = append(args, input.File.Name())
	}
	args = append(args, "-o", output.Name())

	compile := job.Job{
		Kind:      job.KindCompile,
		Tool:      d.FrontendPath(),
		Arguments: args,
		Inputs:    d.InputFiles,
		Outputs:   []vpath.TypedVirtualPath{{File: output, Type: outType}},
	}
	jobs := []job.Job{compile}
	return p.appendLinkJob(jobs, compile.Outputs)
}

func (p *Planner) planStandardCompile() ([]job.Job, error) {
	d := p.d
	if len(d.InputFiles) == 0 {
		// Only a bare version request reaches planning without inputs.
		return []job.Job{{
			Kind:                     job.KindVersionRequest,
			RequestsInPlaceExecution: true,
		}}, nil
	}
	if d.CompilerOutputType == nil {
		return nil, nil
	}
	outType := *d.CompilerOutputType

	var jobs []job.Job
	var linkInputs []vpath.TypedVirtualPath
	for _, input := range d.InputFiles {
		if input.Type != vpath.FileTypeSwift {
			// Linkable inputs pass straight through to the linker.
			linkInputs = append(linkInputs, input)
			continue
		}
		output := p.compileOutput(input, outType)
		args := p.frontendArgs("-c")
		args = append(args, "-primary-file", input.File.Name())
		args = append(args, "-o", output.Name())

		jobs = append(jobs, job.Job{
			Kind:      job.KindCompile,
			Tool:      d.FrontendPath(),
			Arguments: args,
			Inputs:    []vpath.TypedVirtualPath{input},
			Outputs:   []vpath.TypedVirtualPath{{File: output, Type: outType}},
		})
		linkInputs = append(linkInputs, vpath.TypedVirtualPath{File: output, Type: outType})
	}

	if d.ModuleOutputInfo.Kind != driver.ModuleOutputNone {
		jobs = append(jobs, p.mergeModuleJob(jobs))
	}
	return p.appendLinkJob(jobs, linkInputs)
}

// mergeModuleJob combines the per-input partial modules into the
// planned module output.
func (p *Planner) mergeModuleJob(compiles []job.Job) job.Job {
	d := p.d
	args := p.frontendArgs("-merge-modules")
	var inputs []vpath.TypedVirtualPath
	for _, compile := range compiles {
		inputs = append(inputs, compile.Inputs...)
	}
	args = append(args, "-o", d.ModuleOutputInfo.Path.Name())
	return job.Job{
		Kind:      job.KindMergeModule,
		Tool:      d.FrontendPath(),
		Arguments: args,
		Inputs:    inputs,
		Outputs: []vpath.TypedVirtualPath{
			{File: d.ModuleOutputInfo.Path, Type: vpath.FileTypeSwiftModule},
		},
	}
}

// appendLinkJob adds the link step when one is expected.
func (p *Planner) appendLinkJob(jobs []job.Job, linkInputs []vpath.TypedVirtualPath) ([]job.Job, error) {
	d := p.d
	if d.LinkerOutputType == nil {
		return jobs, nil
	}

	output := vpath.NewRelative(d.ModuleOutputInfo.Name)
	if d.ExplicitOutputPath != nil {
		output = *d.ExplicitOutputPath
	}

	args := []string{"-o", output.Name()}
	for _, input := range linkInputs {
		args = append(args, input.File.Name())
	}
	jobs = append(jobs, job.Job{
		Kind:      job.KindLink,
		Tool:      "clang",
		Arguments: args,
		Inputs:    linkInputs,
		Outputs:   []vpath.TypedVirtualPath{{File: output, Type: vpath.FileTypeImage}},
	})
	return jobs, nil
}

func modeFlagFor(t vpath.FileType) string {
	switch t {
	case vpath.FileTypeSwiftModule:
		return "-emit-module"
	case vpath.FileTypeLLVMIR:
		return "-emit-ir"
	case vpath.FileTypeLLVMBitcode:
		return "-emit-bc"
	case vpath.FileTypeAssembly:
		return "-S"
	case vpath.FileTypeSIL:
		return "-emit-sil"
	case vpath.FileTypePCM:
		return "-emit-pcm"
	default:
		return "-c"
	}
}
