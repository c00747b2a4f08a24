// Package diagnostics provides the driver's diagnostic values and the
// engine that routes them to a sink.
package diagnostics

import (
	"fmt"
	"strings"
)

// Severity classifies a diagnostic.
type Severity int

const (
	// SeverityError marks a diagnostic that fails the invocation.
	SeverityError Severity = iota
	// SeverityWarning marks a recoverable problem.
	SeverityWarning
	// SeverityNote attaches additional context to a prior diagnostic.
	SeverityNote
	// SeverityRemark reports an informational fact about the build.
	SeverityRemark
	// SeverityIgnored marks a diagnostic that has been suppressed.
	SeverityIgnored
)

// String returns the lower-case severity label used in rendered output.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	case SeverityRemark:
		return "remark"
	case SeverityIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// Location identifies where a diagnostic originated.
type Location struct {
	File   string
	Line   int
	Column int
}

// UnknownLocation is the zero location used for diagnostics without a
// source position, such as command-line validation.
var UnknownLocation = Location{}

// IsUnknown reports whether the location carries no position.
func (l Location) IsUnknown() bool {
	return l.File == ""
}

// String renders the location as file:line:column, omitting zero parts.
func (l Location) String() string {
	if l.IsUnknown() {
		return ""
	}
	var b strings.Builder
	b.WriteString(l.File)
	if l.Line > 0 {
		fmt.Fprintf(&b, ":%d", l.Line)
		if l.Column > 0 {
			fmt.Fprintf(&b, ":%d", l.Column)
		}
	}
	return b.String()
}

// Diagnostic is a single message routed through the engine.
type Diagnostic struct {
	Severity Severity
	Location Location
	Message  string
}

// String renders the diagnostic the way the console sink prints it,
// without the trailing newline.
func (d Diagnostic) String() string {
	if d.Location.IsUnknown() {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Location, d.Severity, d.Message)
}
