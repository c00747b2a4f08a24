// Package options implements the driver's option model: a table of known
// options supplied by the caller, a parser that turns an argument vector
// into an ordered multiset of parsed options with consumption tracking,
// and the response-file expander.
package options

import "strings"

// Kind describes how an option takes its argument.
type Kind int

const (
	// KindFlag takes no argument.
	KindFlag Kind = iota
	// KindJoined takes its argument glued to the spelling ("-DFOO").
	KindJoined
	// KindSeparate takes its argument as the following element ("-o x").
	KindSeparate
	// KindJoinedOrSeparate accepts either form.
	KindJoinedOrSeparate
	// KindCommaJoined takes a comma-separated list glued to the spelling.
	KindCommaJoined
	// KindRemaining consumes every remaining element.
	KindRemaining
	// KindInput marks a positional input, not a named option.
	KindInput
)

// Group collects related options for in-group queries.
type Group string

// Option describes one entry of the option table. Options are compared
// by identity, so a table must hand out stable pointers.
type Option struct {
	// Spelling is the full spelling including leading dashes. Joined
	// options that require an equals sign include it ("-sanitize=").
	Spelling string
	Kind     Kind
	Group    Group
	// Alias, when set, names the canonical option this spelling parses
	// as.
	Alias   *Option
	MetaVar string
}

// Canonical resolves the alias chain.
func (o *Option) Canonical() *Option {
	c := o
	for c.Alias != nil {
		c = c.Alias
	}
	return c
}

// String returns the spelling without a trailing equals sign.
func (o *Option) String() string {
	return strings.TrimSuffix(o.Spelling, "=")
}

// Input is the pseudo-option carried by positional arguments.
var Input = &Option{Spelling: "<input>", Kind: KindInput}

// Table is the set of options a parser recognizes.
type Table struct {
	exact  map[string]*Option
	joined []*Option // longest spelling first
}

// NewTable builds a table from the given options.
func NewTable(opts []*Option) *Table {
	t := &Table{exact: make(map[string]*Option, len(opts))}
	for _, o := range opts {
		switch o.Kind {
		case KindJoined, KindCommaJoined:
			t.joined = append(t.joined, o)
		case KindJoinedOrSeparate:
			t.joined = append(t.joined, o)
			t.exact[o.Spelling] = o
		default:
			t.exact[o.Spelling] = o
		}
	}
	// Longest spellings match first so "-Fsystem" wins over "-F".
	for i := 1; i < len(t.joined); i++ {
		for j := i; j > 0 && len(t.joined[j].Spelling) > len(t.joined[j-1].Spelling); j-- {
			t.joined[j], t.joined[j-1] = t.joined[j-1], t.joined[j]
		}
	}
	return t
}

// Lookup finds an exact-spelling option.
func (t *Table) Lookup(spelling string) (*Option, bool) {
	o, ok := t.exact[spelling]
	return o, ok
}

// MatchJoined finds the joined option whose spelling prefixes arg,
// returning the option and the glued argument.
func (t *Table) MatchJoined(arg string) (*Option, string, bool) {
	for _, o := range t.joined {
		if strings.HasPrefix(arg, o.Spelling) && arg != o.Spelling {
			return o, arg[len(o.Spelling):], true
		}
	}
	return nil, "", false
}
