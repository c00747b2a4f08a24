// Package job defines the planned unit of work the driver hands to an
// executor: one invocation of the frontend, the linker, or a helper
// tool, with typed inputs and outputs.
package job

import (
	"strings"

	"github.com/cltnschlosser/swift-driver/internal/domain/vpath"
)

// Kind names what a job does. The dispatcher special-cases a few kinds;
// everything else is opaque to the driver core.
type Kind string

// Job kinds the driver core knows about.
const (
	KindCompile         Kind = "compile"
	KindBackend         Kind = "backend"
	KindMergeModule     Kind = "merge-module"
	KindModuleWrap      Kind = "modulewrap"
	KindLink            Kind = "link"
	KindGeneratePCH     Kind = "generate-pch"
	KindInterpret       Kind = "interpret"
	KindREPL            Kind = "repl"
	KindPrintTargetInfo Kind = "print-target-info"
	KindVersionRequest  Kind = "version-request"
)

// Job is a planned tool invocation. Paths referenced by a job stay
// virtual; the executor materializes temporaries before launch.
type Job struct {
	Kind Kind
	// Tool is the executable to run.
	Tool string
	// Arguments are passed after the tool path.
	Arguments []string
	// Inputs are the files the job reads, in a stable order.
	Inputs []vpath.TypedVirtualPath
	// Outputs are the files the job writes, primary output first.
	Outputs []vpath.TypedVirtualPath
	// ExtraEnvironment entries of the form KEY=VALUE are appended to
	// the child environment.
	ExtraEnvironment []string
	// RequestsInPlaceExecution asks the dispatcher to run the job in
	// the driver's place rather than through the parallel executor.
	RequestsInPlaceExecution bool
}

// PrimaryOutput returns the first output, if any.
func (j Job) PrimaryOutput() (vpath.TypedVirtualPath, bool) {
	if len(j.Outputs) == 0 {
		return vpath.TypedVirtualPath{}, false
	}
	return j.Outputs[0], true
}

// CommandLine renders the invocation as a shell-quoted line.
func (j Job) CommandLine() string {
	parts := make([]string, 0, len(j.Arguments)+1)
	parts = append(parts, shellQuote(j.Tool))
	for _, arg := range j.Arguments {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

// shellQuote wraps the argument in single quotes when it contains
// characters the shell would interpret.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n\"'\\$&|<>;*?()[]{}~#") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
