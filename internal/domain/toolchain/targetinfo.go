package toolchain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// TargetInfo describes one target as reported by the frontend.
type TargetInfo struct {
	Triple                      string `json:"triple"`
	UnversionedTriple           string `json:"unversionedTriple"`
	RuntimeCompatibilityVersion string `json:"swiftRuntimeCompatibilityVersion"`
	LibrariesRequireRPath       bool   `json:"librariesRequireRPath"`
}

// FrontendTargetInfo is the structure the frontend emits for
// -print-target-info. The driver may override the runtime compatibility
// versions after decoding.
type FrontendTargetInfo struct {
	CompilerVersion string      `json:"compilerVersion"`
	Target          TargetInfo  `json:"target"`
	TargetVariant   *TargetInfo `json:"targetVariant"`
	SDKPath         string      `json:"sdkPath"`
}

// DecodeError explains why target-info output did not decode, with a
// human-readable detail distinguishing the failure class.
type DecodeError struct {
	Detail string
	Err    error
}

// Error implements error.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not decode frontend target info: %s", e.Detail)
}

// Unwrap returns the underlying decode error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeTargetInfo parses the frontend's -print-target-info output.
func DecodeTargetInfo(data []byte) (FrontendTargetInfo, error) {
	var info FrontendTargetInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return FrontendTargetInfo{}, &DecodeError{Detail: decodeDetail(err), Err: err}
	}
	if info.Target.Triple == "" {
		err := errors.New("missing key 'target.triple'")
		return FrontendTargetInfo{}, &DecodeError{Detail: err.Error(), Err: err}
	}
	if info.CompilerVersion == "" {
		err := errors.New("missing key 'compilerVersion'")
		return FrontendTargetInfo{}, &DecodeError{Detail: err.Error(), Err: err}
	}
	return info, nil
}

func decodeDetail(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field != "" {
			return fmt.Sprintf("type mismatch for key '%s': found %s, expected %s", typeErr.Field, typeErr.Value, typeErr.Type)
		}
		return fmt.Sprintf("type mismatch: found %s, expected %s", typeErr.Value, typeErr.Type)
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Sprintf("corrupted data at offset %d: %s", syntaxErr.Offset, syntaxErr.Error())
	}
	return "missing or malformed value: " + err.Error()
}
