package driver

import (
	"github.com/cltnschlosser/swift-driver/internal/domain/vpath"
)

// collectInputs classifies every positional argument into a typed
// virtual path. "-" reads Swift source from standard input; everything
// else is typed by extension, with unknown extensions treated as
// linkable objects. Relative inputs stay relative; rebasing is the
// output-file-map's and the stat layer's concern.
func (d *Driver) collectInputs() error {
	inputs := d.ParsedOptions.AllInputs()
	d.InputFiles = make([]vpath.TypedVirtualPath, 0, len(inputs))
	for _, input := range inputs {
		if input == "-" {
			d.InputFiles = append(d.InputFiles, vpath.TypedVirtualPath{
				File: vpath.StandardInput(),
				Type: vpath.FileTypeSwift,
			})
			continue
		}
		file := vpath.New(input)
		fileType, _ := vpath.FileTypeFromExtension(file.Extension())
		d.InputFiles = append(d.InputFiles, vpath.TypedVirtualPath{File: file, Type: fileType})
	}
	return nil
}

// checkForMissingInputs rejects compilations that need inputs but got
// none. The REPL needs none, and a bare version request is answered by
// the dispatcher.
func (d *Driver) checkForMissingInputs() error {
	if len(d.InputFiles) > 0 {
		return nil
	}
	switch d.Mode.Kind {
	case ModeREPL:
		return nil
	default:
		if d.ParsedOptions.HasArgument(optV, optVersion) {
			return nil
		}
		return ErrNoInputFiles
	}
}

// swiftSourceInputs returns the inputs that are Swift sources.
func (d *Driver) swiftSourceInputs() []vpath.TypedVirtualPath {
	var out []vpath.TypedVirtualPath
	for _, input := range d.InputFiles {
		if input.Type == vpath.FileTypeSwift {
			out = append(out, input)
		}
	}
	return out
}
