package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cltnschlosser/swift-driver/internal/domain/job"
	"github.com/cltnschlosser/swift-driver/internal/domain/options"
)

// buildRecord is the YAML document persisted after a build so the next
// incremental run can detect changed inputs and changed options.
type buildRecord struct {
	Version        string             `yaml:"version"`
	Options        string             `yaml:"options"`
	BuildStartTime []int64            `yaml:"build_start_time"`
	Inputs         map[string][]int64 `yaml:"inputs"`
	SkippedInputs  []string           `yaml:"skipped_inputs,omitempty"`
}

// writeBuildRecord persists the build record when incremental builds
// enabled one. It captures the recorded (pre-build) input mtimes and
// the inputs the incremental engine skipped.
func (d *Driver) writeBuildRecord(jobs []job.Job) error {
	if d.BuildRecordPath == nil {
		return nil
	}

	record := buildRecord{
		Version:        d.TargetInfo.CompilerVersion,
		Options:        d.optionsHash(),
		BuildStartTime: []int64{d.startTime.Unix(), int64(d.startTime.Nanosecond())},
		Inputs:         make(map[string][]int64, len(d.InputFiles)),
	}
	for _, input := range d.InputFiles {
		mtime, ok := d.RecordedInputModificationDates[input.File.Name()]
		if !ok {
			continue
		}
		record.Inputs[input.File.Name()] = []int64{mtime.Unix(), int64(mtime.Nanosecond())}
	}
	if d.Incremental != nil {
		record.SkippedInputs = d.Incremental.SkippedInputs()
	}

	data, err := yaml.Marshal(&record)
	if err != nil {
		return err
	}
	return d.fs.WriteFile(d.effectiveStatPath(*d.BuildRecordPath), data)
}

// optionsHash digests the named options so a changed invocation
// invalidates the record.
func (d *Driver) optionsHash() string {
	var parts []string
	d.ParsedOptions.ForEach(func(p *options.ParsedOption) bool {
		if p.Option.Kind != options.KindInput {
			parts = append(parts, p.String())
		}
		return true
	})
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}
