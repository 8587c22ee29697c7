package multitrack

import "errors"

// Common errors returned by effects.
var (
	// ErrCanceled is returned when a progress callback aborts an
	// operation. The track list is left untouched.
	ErrCanceled = errors.New("operation canceled")

	// ErrNoRoom indicates that generated audio would overwrite existing
	// audio while clips are not allowed to move.
	ErrNoRoom = errors.New("not enough room to generate the audio")

	// ErrRateMismatch indicates tracks with differing sample rates where
	// a single rate is required.
	ErrRateMismatch = errors.New("tracks have differing sample rates")

	// ErrInvalidConfig indicates an effect that is not set up correctly.
	ErrInvalidConfig = errors.New("invalid effect configuration")
)

// ProgressFunc reports fractional progress for the track at the given
// index. Returning a non-nil error (conventionally ErrCanceled) aborts
// the operation.
type ProgressFunc func(trackIndex int, frac float64) error

// Effect carries the state shared by the effect bases: the progress
// callback and the clip-movement preference consulted before writing
// into occupied regions.
type Effect struct {
	// Progress is called as tracks are processed; nil disables
	// reporting.
	Progress ProgressFunc

	// CanMoveClips mirrors the editor preference that lets edits shift
	// later audio. When false, generating into an empty region fails if
	// the audio displaced past the selection would land on existing
	// material.
	CanMoveClips bool
}

// trackProgress reports progress for one track, tolerating a nil
// callback.
func (e *Effect) trackProgress(trackIndex int, frac float64) error {
	if e.Progress == nil {
		return nil
	}
	return e.Progress(trackIndex, frac)
}
