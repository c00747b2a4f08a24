package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/cltnschlosser/swift-driver/internal/domain/job"
	"github.com/cltnschlosser/swift-driver/internal/domain/toolchain"
	"github.com/cltnschlosser/swift-driver/internal/domain/triple"
	"github.com/cltnschlosser/swift-driver/internal/ports"
)

// hostTriple maps the running platform to its default target triple.
func hostTriple() triple.Triple {
	switch runtime.GOOS {
	case "darwin":
		if runtime.GOARCH == "arm64" {
			return triple.Parse("arm64-apple-macosx11.0")
		}
		return triple.Parse("x86_64-apple-macosx10.15")
	case "freebsd":
		return triple.Parse("x86_64-unknown-freebsd12")
	default:
		if runtime.GOARCH == "arm64" {
			return triple.Parse("aarch64-unknown-linux-gnu")
		}
		return triple.Parse("x86_64-unknown-linux-gnu")
	}
}

// resolveToolchainAndTargetInfo selects the toolchain for the effective
// triple, resolves tool paths and the SDK, and runs the one-shot
// -print-target-info frontend job.
func (d *Driver) resolveToolchainAndTargetInfo(ctx context.Context) error {
	explicitTarget := false
	if arg, ok := d.ParsedOptions.GetLastArgument(optTarget); ok {
		d.TargetTriple = triple.Parse(arg)
		explicitTarget = true
	} else {
		d.TargetTriple = hostTriple()
	}
	if arg, ok := d.ParsedOptions.GetLastArgument(optTargetVariant); ok {
		variant := triple.Parse(arg)
		d.TargetVariantTriple = &variant
	}

	tc, err := toolchain.Select(d.TargetTriple)
	if err != nil {
		return err
	}
	d.Toolchain = tc

	if toolsDir, ok := d.ParsedOptions.GetLastArgument(optToolsDirectory); ok {
		d.toolsDirectory = toolsDir
	}
	if err := d.resolveFrontendPath(); err != nil {
		return err
	}
	d.resolveSDK()

	info, err := d.fetchTargetInfo(ctx)
	if err != nil {
		return err
	}
	d.TargetInfo = info
	if info.Target.Triple != "" {
		reported := triple.Parse(info.Target.Triple)
		if explicitTarget && !d.TargetTriple.IsSimulator() && reported.IsSimulator() {
			d.diags.Warn("compiling for '%s'; the frontend selected the simulator environment '%s'",
				d.TargetTriple, reported)
		}
		d.TargetTriple = reported
	}
	if info.SDKPath != "" && d.SDKPath == "" {
		d.SDKPath = info.SDKPath
	}

	d.overrideRuntimeCompatibilityVersion()
	return nil
}

// resolveFrontendPath honors -driver-use-frontend-path: the first
// ';'-separated segment replaces the frontend path, the rest become a
// prefix argument vector for every frontend invocation.
func (d *Driver) resolveFrontendPath() error {
	d.frontendPath = d.Toolchain.LookupTool(d.Toolchain.FrontendExecutableName(), d.toolsDirectory)
	override, ok := d.ParsedOptions.GetLastArgument(optFrontendPath)
	if !ok {
		return nil
	}
	segments := strings.Split(override, ";")
	if len(segments) > 1 && !filepath.IsAbs(segments[0]) {
		return ErrRelativeFrontendPath
	}
	d.frontendPath = segments[0]
	d.frontendPrefixArgs = segments[1:]
	return nil
}

// resolveSDK applies the SDK priority: -sdk, then SDKROOT, then the
// toolchain default (immediate and repl modes only). An empty value
// clears the SDK; a trailing slash is stripped; a nonexistent path
// warns but is retained.
func (d *Driver) resolveSDK() {
	var sdk string
	var have bool
	if arg, ok := d.ParsedOptions.GetLastArgument(optSDK); ok {
		sdk, have = arg, true
	} else if env, ok := d.env.Get("SDKROOT"); ok {
		sdk, have = env, true
	} else if d.Mode.Kind == ModeImmediate || d.Mode.Kind == ModeREPL {
		if def, ok := d.Toolchain.DefaultSDKPath(d.fs); ok {
			sdk, have = def, true
		}
	}
	if !have || sdk == "" {
		return
	}
	sdk = strings.TrimSuffix(sdk, "/")
	if sdk != "" && !d.fs.Exists(sdk) {
		d.diags.Warn("no such SDK: '%s'", sdk)
	}
	d.SDKPath = sdk
}

// fetchTargetInfo runs the frontend's -print-target-info job through
// the executor and decodes its JSON output.
func (d *Driver) fetchTargetInfo(ctx context.Context) (toolchain.FrontendTargetInfo, error) {
	args := append([]string{}, d.frontendPrefixArgs...)
	args = append(args, "-frontend", "-print-target-info", "-target", d.TargetTriple.String())
	if d.TargetVariantTriple != nil {
		args = append(args, "-target-variant", d.TargetVariantTriple.String())
	}
	if d.SDKPath != "" {
		args = append(args, "-sdk", d.SDKPath)
	}
	if resourceDir, ok := d.ParsedOptions.GetLastArgument(optResourceDir); ok {
		args = append(args, "-resource-dir", resourceDir)
	}
	if d.ParsedOptions.HasArgument(optStaticResourceDir) {
		args = append(args, "-use-static-resource-dir")
	}
	if version, ok := d.ParsedOptions.GetLastArgument(optRuntimeCompatibilityVersion); ok {
		args = append(args, "-runtime-compatibility-version", version)
	}

	infoJob := job.Job{
		Kind:      job.KindPrintTargetInfo,
		Tool:      d.frontendPath,
		Arguments: args,
	}
	output, err := d.executor.CaptureOutput(ctx, infoJob, nil)
	if err != nil {
		var procErr *ports.CapturedProcessError
		if errors.As(err, &procErr) {
			return toolchain.FrontendTargetInfo{}, &FailedToRunFrontendError{
				ExitCode: procErr.ExitCode,
				Stderr:   procErr.Stderr,
			}
		}
		return toolchain.FrontendTargetInfo{}, fmt.Errorf("%w: %v", ErrFailedToRetrieveFrontendTargetInfo, err)
	}
	if len(output) == 0 {
		return toolchain.FrontendTargetInfo{}, ErrUnableToReadFrontendTargetInfo
	}

	info, err := toolchain.DecodeTargetInfo(output)
	if err != nil {
		detail := err.Error()
		var decodeErr *toolchain.DecodeError
		if errors.As(err, &decodeErr) {
			detail = decodeErr.Detail
		}
		return toolchain.FrontendTargetInfo{}, &UnableToDecodeFrontendTargetInfoError{
			Output: string(output),
			Argv:   append([]string{d.frontendPath}, args...),
			Detail: detail,
		}
	}
	return info, nil
}

// overrideRuntimeCompatibilityVersion applies an explicit
// -runtime-compatibility-version to both the target and the variant. An
// invalid version diagnoses and leaves the decoded values alone.
func (d *Driver) overrideRuntimeCompatibilityVersion() {
	version, ok := d.ParsedOptions.GetLastArgument(optRuntimeCompatibilityVersion)
	if !ok {
		return
	}
	if version != "none" && !semver.IsValid("v"+version) {
		d.diags.Error("invalid value '%s' in '%s'", version, optRuntimeCompatibilityVersion)
		return
	}
	d.TargetInfo.Target.RuntimeCompatibilityVersion = version
	if d.TargetInfo.TargetVariant != nil {
		d.TargetInfo.TargetVariant.RuntimeCompatibilityVersion = version
	}
}
