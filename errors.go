package bumpx

import "fmt"

type pipelineError string

func (e pipelineError) Error() string {
	return string(e)
}

// WithDetail returns an error carrying extra context that still matches the
// sentinel under errors.Is.
func (e pipelineError) WithDetail(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprintf(format, args...))
}

// Fatal input errors. Anything else the pipeline can degrade around is a
// warning on the Result instead.
var (
	// ErrEmptyNormalMap means the required source normal map is missing or
	// has zero pixels.
	ErrEmptyNormalMap = pipelineError("normal map is empty")

	// ErrNotPowerOfTwo means a source dimension is not a power of two. The
	// mip chain layout assumes exact halving, so this is unrecoverable.
	ErrNotPowerOfTwo = pipelineError("texture dimensions must be powers of two")

	// ErrTooSmall means a source dimension is below one compressed tile.
	// Every mip level floors at 4 pixels per side, so nothing smaller can
	// be encoded.
	ErrTooSmall = pipelineError("texture dimensions must be at least 4x4")
)

// Warning records a non-fatal input problem the pipeline worked around, such
// as an auxiliary map dropped for mismatched dimensions. Warnings never
// change the fate of the run, only its inputs.
type Warning string

func warnf(format string, args ...interface{}) Warning {
	return Warning(fmt.Sprintf(format, args...))
}
