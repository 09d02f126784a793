package domain

import (
	"fmt"
	"path/filepath"
)

// RunMode selects between whole-file and per-endpoint generation.
type RunMode string

const (
	RunModeBulk     RunMode = "bulk"
	RunModeAPIByAPI RunMode = "api_by_api"
)

// Label returns the directory name used under the model output folder.
func (m RunMode) Label() string {
	switch m {
	case RunModeBulk:
		return "BatchAPI"
	case RunModeAPIByAPI:
		return "API-by-API"
	default:
		return string(m)
	}
}

// ParseRunMode accepts the flag spellings of a run mode.
func ParseRunMode(value string) (RunMode, error) {
	switch value {
	case "bulk", "batch", "1":
		return RunModeBulk, nil
	case "api_by_api", "api-by-api", "endpoint", "2":
		return RunModeAPIByAPI, nil
	default:
		return "", &ConfigError{Field: "mode", Err: fmt.Errorf("%w: %q", ErrUnsupportedMode, value)}
	}
}

// Framework names a supported route manifest shape.
type Framework string

const (
	FrameworkFastAPI Framework = "fastapi"
	FrameworkFlask   Framework = "flask"
)

// GenerationResult pairs an endpoint with the documentation produced for it.
type GenerationResult struct {
	Endpoint EndpointRecord
	Version  string
	Text     string
}

// ReportPath composes <dir>/<model>/<mode-label>/<version>/<basename><timestamp>.md.
func ReportPath(dir, model string, mode RunMode, version, basename, timestamp string) string {
	return filepath.Join(dir, model, mode.Label(), version, basename+timestamp+".md")
}
