// Package config holds the option set shared by the CLI and the renderer,
// and the typed exit-code error cobra's root command returns to main.
package config

import "fmt"

// Technique selects the light-transport estimator a render uses.
type Technique int

const (
	TechniquePT Technique = iota
	TechniqueBPT
	TechniqueVCM
)

func (t Technique) String() string {
	switch t {
	case TechniquePT:
		return "pt"
	case TechniqueBPT:
		return "bpt"
	case TechniqueVCM:
		return "vcm"
	default:
		return "unknown"
	}
}

// Options mirrors original_source/Options.hpp's option set, extended with
// the fields spec.md §6 names that the original CLI predates (beta,
// roulette, min-subpath, resolution, parallel).
type Options struct {
	Input  string
	Output string

	Technique Technique

	NumPhotons  int
	MaxGather   int
	MaxRadius   float64
	Beta        float64
	Roulette    float64
	MinSubpath  int

	NumSamples int
	NumSeconds float64
	NumJobs    int
	Snapshot   int
	CameraID   int

	Width, Height int
	Parallel      bool
	Batch         bool

	Reference string
}

// Default returns the option set's defaults, matching Options.hpp's field
// initializers.
func Default() Options {
	return Options{
		Technique:  TechniquePT,
		NumPhotons: 1000000,
		MaxGather:  100,
		MaxRadius:  0.1,
		Beta:       2.0,
		Roulette:   0.5,
		MinSubpath: 3,
		NumJobs:    1,
		Width:      512,
		Height:     512,
	}
}

// ToMetadata flattens the option set to the string dictionary persisted in
// an image's metadata, mirroring Options::updateDictionary.
func (o Options) ToMetadata() map[string]string {
	return map[string]string{
		"input":       o.Input,
		"output":      o.Output,
		"technique":   o.Technique.String(),
		"num_photons": fmt.Sprint(o.NumPhotons),
		"max_gather":  fmt.Sprint(o.MaxGather),
		"max_radius":  fmt.Sprint(o.MaxRadius),
		"beta":        fmt.Sprint(o.Beta),
		"roulette":    fmt.Sprint(o.Roulette),
		"min_subpath": fmt.Sprint(o.MinSubpath),
		"num_samples": fmt.Sprint(o.NumSamples),
		"num_seconds": fmt.Sprint(o.NumSeconds),
		"num_jobs":    fmt.Sprint(o.NumJobs),
		"snapshot":    fmt.Sprint(o.Snapshot),
		"camera_id":   fmt.Sprint(o.CameraID),
		"width":       fmt.Sprint(o.Width),
		"height":      fmt.Sprint(o.Height),
	}
}

// ExitError carries the process exit code a failure should produce,
// per spec.md §7's exit-code table (0 success, 1 input error, 2 I/O
// error, 3 numerical/assertion error).
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError wraps err with the given exit code.
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}
