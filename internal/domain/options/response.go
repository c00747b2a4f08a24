package options

import (
	"path/filepath"
	"strings"

	"github.com/cltnschlosser/swift-driver/internal/domain/diagnostics"
)

// fileReader is the slice of the filesystem the expander needs.
type fileReader interface {
	ReadFile(name string) ([]byte, error)
}

// ExpandResponseFiles replaces every "@<absolute-path>" argument with the
// tokenized contents of that file, transitively. A response file reached
// again while it is still being expanded is skipped with a warning.
// Non-absolute @-arguments and unreadable files are left verbatim.
func ExpandResponseFiles(args []string, fs fileReader, diags *diagnostics.Engine) []string {
	expanding := make(map[string]bool)
	return expandArgs(args, fs, diags, expanding)
}

func expandArgs(args []string, fs fileReader, diags *diagnostics.Engine, expanding map[string]bool) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if !strings.HasPrefix(arg, "@") {
			out = append(out, arg)
			continue
		}
		path := arg[1:]
		if !filepath.IsAbs(path) {
			out = append(out, arg)
			continue
		}
		if expanding[path] {
			diags.Warn("response file '%s' is recursively expanded", path)
			continue
		}
		data, err := fs.ReadFile(path)
		if err != nil {
			out = append(out, arg)
			continue
		}
		expanding[path] = true
		out = append(out, expandArgs(tokenizeResponseFile(data), fs, diags, expanding)...)
		delete(expanding, path)
	}
	return out
}

// tokenizeResponseFile splits a response file into arguments. Lines
// beginning with "//" are comments; a backslash escapes the next
// character; balanced single or double quotes make whitespace literal;
// otherwise unescaped whitespace separates tokens.
func tokenizeResponseFile(data []byte) []string {
	var tokens []string
	for _, line := range splitLines(string(data)) {
		if strings.HasPrefix(line, "//") {
			continue
		}
		tokens = append(tokens, tokenizeLine(line)...)
	}
	return tokens
}

func splitLines(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
}

func tokenizeLine(line string) []string {
	var tokens []string
	var current strings.Builder
	inToken := false
	var quote byte

	flush := func() {
		if inToken {
			tokens = append(tokens, current.String())
			current.Reset()
			inToken = false
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line):
			i++
			current.WriteByte(line[i])
			inToken = true
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				current.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
			inToken = true
		case c == ' ' || c == '\t':
			flush()
		default:
			current.WriteByte(c)
			inToken = true
		}
	}
	flush()
	return tokens
}
