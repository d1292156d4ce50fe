package ndfdprobe

import "github.com/pkg/errors"

// Error codes mirror the negative return codes the source's probe drivers
// used to signal which error class aborted a run (spec.md §6):
//
//	-1 invalid initial state (result not empty)
//	-2 no input files
//	-3 cannot open file
//
// CodeInvalidState is unreachable through this API: Probe always allocates
// a fresh Accumulator internally (there is no caller-supplied result
// parameter for a prior call's leftovers to occupy), so the condition
// spec.md §6 describes cannot arise here — see DESIGN.md. It is kept as a
// named constant so ConfigError's two reasons stay distinguishable even
// though only CodeNoInputFiles is ever produced.
//
// CodeFormat and CodeProbe are this module's own per-file diagnostic
// classes (FormatError, ProbeError below); they are logged through
// WithLogger and never returned as Probe's top-level error, so they don't
// collide with spec.md §6's three-code scheme for the call's return value.
const (
	CodeInvalidState = -1
	CodeNoInputFiles = -2
	CodeFormat       = -2
	CodeProbe        = -3
)

// ConfigError is fatal: a call-level misconfiguration caught before any
// I/O (an empty file list, an inconsistent result state). The probe
// returns the matching code and performs no further work.
type ConfigError struct {
	msg  string
	err  error
	code int
}

func newConfigError(msg string, cause error, code int) *ConfigError {
	return &ConfigError{msg: msg, err: cause, code: code}
}

func (e *ConfigError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *ConfigError) Unwrap() error { return e.err }

// Code reports which of spec.md §6's config-class reasons this is.
func (e *ConfigError) Code() int { return e.code }

// FormatError is per-file: an invalid grid definition, Nx*Ny < len(grid),
// or a malformed point-file line. For GRIB/Cube files the current file is
// abandoned and the driver continues with the next one; for point files
// the whole call fails.
type FormatError struct {
	File string
	msg  string
	err  error
}

func newFormatError(file, msg string, cause error) *FormatError {
	return &FormatError{File: file, msg: msg, err: cause}
}

func (e *FormatError) Error() string {
	if e.err != nil {
		return e.File + ": " + e.msg + ": " + e.err.Error()
	}
	return e.File + ": " + e.msg
}

func (e *FormatError) Unwrap() error { return e.err }

func (e *FormatError) Code() int { return CodeFormat }

// ProbeError wraps an I/O or unpacker failure against one input file.
// It is logged and the file is skipped; it never aborts the multi-file
// driver (spec.md §4.5's failure semantics).
type ProbeError struct {
	File string
	err  error
}

func newProbeError(file string, cause error) *ProbeError {
	return &ProbeError{File: file, err: cause}
}

func (e *ProbeError) Error() string {
	return errors.Wrapf(e.err, "probing %s", e.File).Error()
}

func (e *ProbeError) Unwrap() error { return e.err }

func (e *ProbeError) Code() int { return CodeProbe }
