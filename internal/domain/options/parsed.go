package options

import "strings"

// ParsedOption is one occurrence of an option in the argument vector.
type ParsedOption struct {
	Option   *Option
	Spelling string // spelling as written, for error messages
	Index    int    // position in the original argument order
	values   []string
	consumed bool
}

// Argument returns the single argument, or "" for flags.
func (p *ParsedOption) Argument() string {
	if len(p.values) == 0 {
		return ""
	}
	return p.values[0]
}

// Arguments returns every argument carried by the occurrence.
func (p *ParsedOption) Arguments() []string {
	return p.values
}

// IsConsumed reports whether any planner committed to this occurrence.
func (p *ParsedOption) IsConsumed() bool {
	return p.consumed
}

// String renders the occurrence the way it was written.
func (p *ParsedOption) String() string {
	if len(p.values) == 0 {
		return p.Spelling
	}
	if strings.HasSuffix(p.Spelling, "=") || p.Option.Kind == KindJoined || p.Option.Kind == KindCommaJoined {
		return p.Spelling + strings.Join(p.values, ",")
	}
	return p.Spelling + " " + strings.Join(p.values, " ")
}

// ParsedOptions is the ordered multiset of options parsed from an
// invocation. Query methods that commit to an option mark every matching
// occurrence consumed; the unconsumed remainder feeds the unused-option
// warning sweep.
type ParsedOptions struct {
	entries   []*ParsedOption
	nextIndex int
}

// Add appends an occurrence, preserving order.
func (po *ParsedOptions) Add(opt *Option, spelling string, values ...string) *ParsedOption {
	if spelling == "" {
		spelling = opt.Spelling
	}
	entry := &ParsedOption{
		Option:   opt.Canonical(),
		Spelling: spelling,
		Index:    po.nextIndex,
		values:   values,
	}
	po.nextIndex++
	po.entries = append(po.entries, entry)
	return entry
}

// AddFlag appends a synthesized flag occurrence.
func (po *ParsedOptions) AddFlag(opt *Option) *ParsedOption {
	return po.Add(opt, "")
}

func matches(entry *ParsedOption, opts []*Option) bool {
	for _, o := range opts {
		if entry.Option == o.Canonical() {
			return true
		}
	}
	return false
}

// HasArgument reports whether any of the options occurs, consuming every
// occurrence.
func (po *ParsedOptions) HasArgument(opts ...*Option) bool {
	found := false
	for _, e := range po.entries {
		if matches(e, opts) {
			e.consumed = true
			found = true
		}
	}
	return found
}

// GetLast returns the last occurrence of any of the options, consuming
// every occurrence of all of them.
func (po *ParsedOptions) GetLast(opts ...*Option) (*ParsedOption, bool) {
	var last *ParsedOption
	for _, e := range po.entries {
		if matches(e, opts) {
			e.consumed = true
			last = e
		}
	}
	return last, last != nil
}

// GetLastArgument returns the argument of the last occurrence.
func (po *ParsedOptions) GetLastArgument(opts ...*Option) (string, bool) {
	last, ok := po.GetLast(opts...)
	if !ok {
		return "", false
	}
	return last.Argument(), true
}

// HasFlag resolves a positive/negative flag pair: the later occurrence
// wins, and def applies when neither occurs. Both spellings are consumed.
func (po *ParsedOptions) HasFlag(positive, negative *Option, def bool) bool {
	result := def
	for _, e := range po.entries {
		switch {
		case matches(e, []*Option{positive}):
			e.consumed = true
			result = true
		case matches(e, []*Option{negative}):
			e.consumed = true
			result = false
		}
	}
	return result
}

// GetLastInGroup returns the last occurrence of any option in the group,
// consuming every occurrence in the group.
func (po *ParsedOptions) GetLastInGroup(g Group) (*ParsedOption, bool) {
	var last *ParsedOption
	for _, e := range po.entries {
		if e.Option.Group == g && e.Option.Kind != KindInput {
			e.consumed = true
			last = e
		}
	}
	return last, last != nil
}

// GetAll returns every occurrence of any of the options in order,
// consuming them.
func (po *ParsedOptions) GetAll(opts ...*Option) []*ParsedOption {
	var out []*ParsedOption
	for _, e := range po.entries {
		if matches(e, opts) {
			e.consumed = true
			out = append(out, e)
		}
	}
	return out
}

// EraseArgument removes every occurrence of the option.
func (po *ParsedOptions) EraseArgument(opts ...*Option) {
	kept := po.entries[:0]
	for _, e := range po.entries {
		if !matches(e, opts) {
			kept = append(kept, e)
		}
	}
	po.entries = kept
}

// AllInputs returns the positional inputs in order. Inputs do not take
// part in consumption tracking.
func (po *ParsedOptions) AllInputs() []string {
	var out []string
	for _, e := range po.entries {
		if e.Option.Kind == KindInput {
			out = append(out, e.Argument())
		}
	}
	return out
}

// ForEach visits every occurrence in order; returning false stops the
// walk. The callback may mutate the visited occurrence.
func (po *ParsedOptions) ForEach(fn func(*ParsedOption) bool) {
	for _, e := range po.entries {
		if !fn(e) {
			return
		}
	}
}

// UnconsumedOptions returns every named option no planner committed to.
func (po *ParsedOptions) UnconsumedOptions() []*ParsedOption {
	var out []*ParsedOption
	for _, e := range po.entries {
		if !e.consumed && e.Option.Kind != KindInput {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of occurrences, inputs included.
func (po *ParsedOptions) Len() int {
	return len(po.entries)
}
