package options

import (
	"fmt"
	"strings"
)

// UnknownOptionError reports an argument that matches no table entry.
type UnknownOptionError struct {
	Spelling string
}

// Error implements error.
func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown argument: '%s'", e.Spelling)
}

// MissingArgumentError reports a separate-argument option at the end of
// the vector.
type MissingArgumentError struct {
	Spelling string
}

// Error implements error.
func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing argument value for '%s'", e.Spelling)
}

// Parser turns an argument vector into ParsedOptions using a table.
type Parser struct {
	table *Table
}

// NewParser creates a parser over the given table.
func NewParser(table *Table) *Parser {
	return &Parser{table: table}
}

// Parse interprets args (without the program name). "-" and anything not
// beginning with a dash become positional inputs.
func (p *Parser) Parse(args []string) (*ParsedOptions, error) {
	parsed := &ParsedOptions{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			parsed.Add(Input, arg, arg)
			continue
		}

		if opt, ok := p.table.Lookup(arg); ok {
			switch opt.Kind {
			case KindFlag:
				parsed.Add(opt, arg)
			case KindSeparate, KindJoinedOrSeparate:
				if i+1 >= len(args) {
					return nil, &MissingArgumentError{Spelling: arg}
				}
				i++
				parsed.Add(opt, arg, args[i])
			case KindRemaining:
				parsed.Add(opt, arg, args[i+1:]...)
				i = len(args)
			default:
				parsed.Add(opt, arg)
			}
			continue
		}

		if opt, value, ok := p.table.MatchJoined(arg); ok {
			if opt.Kind == KindCommaJoined {
				parsed.Add(opt, opt.Spelling, strings.Split(value, ",")...)
			} else {
				parsed.Add(opt, opt.Spelling, value)
			}
			continue
		}

		return nil, &UnknownOptionError{Spelling: arg}
	}
	return parsed, nil
}
