package diagnostics

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// ConsoleSink renders diagnostics to a writer, one per line, in the form
// "<location>: <severity>: <message>". The location prefix is omitted for
// diagnostics without a position.
type ConsoleSink struct {
	mu       sync.Mutex
	out      io.Writer
	colorize bool
}

// ConsoleSinkOption configures a console sink.
type ConsoleSinkOption func(*ConsoleSink)

// WithOutput sets the output writer (default: os.Stderr).
func WithOutput(w io.Writer) ConsoleSinkOption {
	return func(s *ConsoleSink) {
		s.out = w
	}
}

// WithColor enables or disables severity coloring (default: on unless
// fatih/color's NoColor is set, which it derives from standard output
// being a terminal and from NO_COLOR and TERM=dumb).
func WithColor(enabled bool) ConsoleSinkOption {
	return func(s *ConsoleSink) {
		s.colorize = enabled
	}
}

// NewConsoleSink creates a console sink.
func NewConsoleSink(opts ...ConsoleSinkOption) *ConsoleSink {
	s := &ConsoleSink{
		out:      os.Stderr,
		colorize: !color.NoColor,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var severityColors = map[Severity]*color.Color{
	SeverityError:   color.New(color.FgRed, color.Bold),
	SeverityWarning: color.New(color.FgYellow, color.Bold),
	SeverityNote:    color.New(color.FgCyan),
	SeverityRemark:  color.New(color.FgHiBlack),
}

// HandleDiagnostic writes the diagnostic to the sink's writer.
func (s *ConsoleSink) HandleDiagnostic(d Diagnostic) {
	if d.Severity == SeverityIgnored {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	label := d.Severity.String()
	if s.colorize {
		if c, ok := severityColors[d.Severity]; ok {
			label = c.Sprint(label)
		}
	}
	if d.Location.IsUnknown() {
		fmt.Fprintf(s.out, "%s: %s\n", label, d.Message)
		return
	}
	fmt.Fprintf(s.out, "%s: %s: %s\n", d.Location, label, d.Message)
}

// CapturingSink records every diagnostic it receives. It is intended for
// tests and for tools that inspect driver output programmatically.
type CapturingSink struct {
	mu          sync.Mutex
	diagnostics []Diagnostic
}

// NewCapturingSink creates an empty capturing sink.
func NewCapturingSink() *CapturingSink {
	return &CapturingSink{}
}

// HandleDiagnostic records the diagnostic.
func (s *CapturingSink) HandleDiagnostic(d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diagnostics = append(s.diagnostics, d)
}

// Diagnostics returns a copy of everything recorded so far.
func (s *CapturingSink) Diagnostics() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Diagnostic, len(s.diagnostics))
	copy(out, s.diagnostics)
	return out
}

// Messages returns the recorded messages in order.
func (s *CapturingSink) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.diagnostics))
	for _, d := range s.diagnostics {
		out = append(out, d.Message)
	}
	return out
}
