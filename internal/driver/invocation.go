package driver

import (
	"path/filepath"
	"strings"
)

// DriverKind selects the user-facing personality of the driver.
type DriverKind int

const (
	// DriverKindInteractive is the "swift" personality: immediate mode
	// and the REPL.
	DriverKindInteractive DriverKind = iota
	// DriverKindBatch is the "swiftc" personality: batch compilation.
	DriverKindBatch
)

// String returns the driver name for the kind.
func (k DriverKind) String() string {
	if k == DriverKindInteractive {
		return "swift"
	}
	return "swiftc"
}

// driverKindFromName maps an invocation name to its kind.
func driverKindFromName(name string) (DriverKind, error) {
	switch name {
	case "swift":
		return DriverKindInteractive, nil
	case "swiftc":
		return DriverKindBatch, nil
	default:
		return 0, &InvalidDriverNameError{Name: name}
	}
}

// InvocationRunMode says whether the invocation runs this driver or must
// be forwarded to another tool.
type InvocationRunMode int

const (
	// RunModeNormal runs this driver.
	RunModeNormal InvocationRunMode = iota
	// RunModeSubcommand forwards to the named subcommand tool.
	RunModeSubcommand
)

// Invocation is the result of pre-parse classification.
type Invocation struct {
	Mode InvocationRunMode
	// Subcommand is the tool to forward to in RunModeSubcommand.
	Subcommand string
	// Argv is the (possibly rewritten) argument vector. In subcommand
	// mode argv[0] is the subcommand tool.
	Argv []string
	// IsRepl is set when the bare "repl" word selected the REPL.
	IsRepl bool
}

// ClassifyArgv inspects argv before option parsing. Only the generic
// driver names look at their first argument: "-frontend" and
// "-modulewrap" rewrite to a direct tool invocation, and any other bare
// word under "swift" synthesizes a "swift-<word>" subcommand.
func ClassifyArgv(argv []string) Invocation {
	out := Invocation{Mode: RunModeNormal, Argv: argv}
	if len(argv) == 0 {
		return out
	}

	execName := filepath.Base(argv[0])
	if execName != "swift" && execName != "swiftc" {
		return out
	}
	if len(argv) < 2 {
		return out
	}

	firstArg := argv[1]
	switch {
	case firstArg == "-frontend":
		return subcommandInvocation("swift-frontend", argv)
	case firstArg == "-modulewrap":
		return subcommandInvocation("swift-modulewrap", argv)
	case strings.HasPrefix(firstArg, "-"), strings.HasPrefix(firstArg, "/"), strings.Contains(firstArg, "."):
		return out
	case firstArg == "repl" && execName == "swift":
		out.IsRepl = true
		out.Argv = append([]string{argv[0]}, argv[2:]...)
		return out
	case execName == "swift":
		return subcommandInvocation("swift-"+firstArg, argv)
	default:
		return out
	}
}

func subcommandInvocation(subcommand string, argv []string) Invocation {
	return Invocation{
		Mode:       RunModeSubcommand,
		Subcommand: subcommand,
		Argv:       append([]string{subcommand}, argv[2:]...),
	}
}
