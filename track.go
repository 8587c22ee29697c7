package multitrack

import (
	"math"
	"sync/atomic"

	"github.com/tphakala/go-audio-multitrack/internal/block"
)

// nextTrackID hands out stable track identities. IDs survive deep
// copies made for commit/rollback, so references by ID stay valid when
// a shadow copy replaces the original.
var nextTrackID atomic.Int64

// WaveTrack is a mono audio track: float64 samples in bounded-size
// blocks, positioned on the timeline by an offset in seconds.
//
// WaveTrack is not safe for concurrent mutation.
type WaveTrack struct {
	id        int64
	name      string
	rate      float64
	gain      float64
	pan       float64 // -1 (left) .. 1 (right)
	offset    float64 // start time in seconds
	selected  bool
	syncGroup int
	buf       *block.Buffer
}

// NewWaveTrack creates an empty track at the given sample rate.
// Non-positive rates fall back to 44100 Hz.
func NewWaveTrack(name string, rate float64) *WaveTrack {
	if rate <= 0 {
		rate = 44100
	}
	return &WaveTrack{
		id:   nextTrackID.Add(1),
		name: name,
		rate: rate,
		gain: 1,
		buf:  block.New(block.DefaultMaxBlockSize),
	}
}

// ID returns the track's stable identity.
func (t *WaveTrack) ID() int64 { return t.id }

// Name returns the track name.
func (t *WaveTrack) Name() string { return t.name }

// SetName sets the track name.
func (t *WaveTrack) SetName(name string) { t.name = name }

// Rate returns the sample rate in Hz.
func (t *WaveTrack) Rate() float64 { return t.rate }

// Gain returns the track gain factor.
func (t *WaveTrack) Gain() float64 { return t.gain }

// SetGain sets the track gain factor.
func (t *WaveTrack) SetGain(g float64) { t.gain = g }

// Pan returns the pan position in [-1, 1].
func (t *WaveTrack) Pan() float64 { return t.pan }

// SetPan sets the pan position, clamped to [-1, 1].
func (t *WaveTrack) SetPan(p float64) {
	t.pan = math.Max(-1, math.Min(1, p))
}

// Offset returns the track start time in seconds.
func (t *WaveTrack) Offset() float64 { return t.offset }

// SetOffset moves the track on the timeline.
func (t *WaveTrack) SetOffset(o float64) { t.offset = o }

// Selected reports whether the track is selected.
func (t *WaveTrack) Selected() bool { return t.selected }

// SetSelected sets the selected flag.
func (t *WaveTrack) SetSelected(v bool) { t.selected = v }

// SyncGroup returns the sync-lock group the track belongs to.
func (t *WaveTrack) SyncGroup() int { return t.syncGroup }

// SetSyncGroup assigns the track to a sync-lock group.
func (t *WaveTrack) SetSyncGroup(g int) { t.syncGroup = g }

// Len returns the number of stored samples.
func (t *WaveTrack) Len() int { return t.buf.Len() }

// StartTime returns the time of the first sample.
func (t *WaveTrack) StartTime() float64 { return t.offset }

// EndTime returns the time just past the last sample.
func (t *WaveTrack) EndTime() float64 {
	return t.offset + float64(t.buf.Len())/t.rate
}

// Duration returns the track length in seconds.
func (t *WaveTrack) Duration() float64 {
	return float64(t.buf.Len()) / t.rate
}

// TimeToSamples converts a duration in seconds to a sample count,
// rounding to the nearest sample.
func (t *WaveTrack) TimeToSamples(d float64) int {
	return int(math.Floor(d*t.rate + 0.5))
}

// SamplesToTime converts a sample count to seconds.
func (t *WaveTrack) SamplesToTime(n int) float64 {
	return float64(n) / t.rate
}

// sampleIndex converts an absolute time to a track-relative sample
// index. The result may be negative or past the end.
func (t *WaveTrack) sampleIndex(at float64) int {
	return t.TimeToSamples(at - t.offset)
}

// MaxBlockSize returns the largest block the track will allocate.
func (t *WaveTrack) MaxBlockSize() int { return t.buf.MaxBlockSize() }

// BestBlockSize returns the preferred append chunk size at the given
// track-relative sample index.
func (t *WaveTrack) BestBlockSize(at int) int { return t.buf.BestBlockSize(at) }

// Append adds samples to the end of the track.
func (t *WaveTrack) Append(samples []float64) { t.buf.Append(samples) }

// Flush finalizes pending writes, repacking undersized blocks.
func (t *WaveTrack) Flush() { t.buf.Flush() }

// Get copies track samples starting at the given track-relative index
// into out, zero-filling outside the track. It returns the number of
// samples that came from stored data.
func (t *WaveTrack) Get(start int, out []float64) int {
	return t.buf.Get(start, out)
}

// Samples returns a copy of all stored samples.
func (t *WaveTrack) Samples() []float64 {
	out := make([]float64, t.buf.Len())
	t.buf.Get(0, out)
	return out
}

// IsEmpty reports whether the track has no audio in [t0, t1).
func (t *WaveTrack) IsEmpty(t0, t1 float64) bool {
	if t.buf.Len() == 0 || t1 <= t0 {
		return true
	}
	return t1 <= t.StartTime() || t0 >= t.EndTime()
}

// Clear deletes audio in [t0, t1), shifting later audio earlier by the
// cleared duration. Clearing a span before the track start pulls the
// track earlier by the cleared portion of that span.
func (t *WaveTrack) Clear(t0, t1 float64) {
	if t1 <= t0 {
		return
	}
	start, end := t.StartTime(), t.EndTime()
	i0 := t.sampleIndex(math.Max(t0, start))
	i1 := t.sampleIndex(math.Min(t1, end))
	if i1 > i0 {
		t.buf.Delete(i0, i1-i0)
	}
	if t0 < start {
		t.offset -= math.Min(t1, start) - t0
	}
}

// InsertSilence inserts dur seconds of silence at time at, shifting
// audio after at later. Inserting at or before the track start just
// moves the whole track later.
func (t *WaveTrack) InsertSilence(at, dur float64) {
	n := t.TimeToSamples(dur)
	if n <= 0 {
		return
	}
	if at <= t.offset {
		t.offset += t.SamplesToTime(n)
		return
	}
	t.buf.InsertSilence(t.sampleIndex(at), n)
}

// Paste inserts the samples of src at time at, shifting later audio
// later by src's duration. Pasting past the end pads the gap with
// silence; pasting before the start moves the track start back to at.
// The source track's own offset is ignored.
func (t *WaveTrack) Paste(at float64, src *WaveTrack) {
	if src == nil || src.Len() == 0 {
		return
	}
	idx := t.frontPad(at)
	t.buf.Insert(idx, src.Samples())
}

// frontPad prepares an insertion at time at: when at precedes the track
// start, the gap becomes leading silence and the offset moves to at. It
// returns the insertion index.
func (t *WaveTrack) frontPad(at float64) int {
	idx := t.sampleIndex(at)
	if idx < 0 {
		t.buf.InsertSilence(0, -idx)
		t.offset = at
		idx = 0
	}
	return idx
}

// ClearAndPaste replaces [t0, t1) with the contents of src pasted at
// t0. The warper tells where audio that followed t1 should land; with a
// nil warper it simply follows the pasted material. A PasteWarper with
// NewT1 = t0 + src.Duration() reproduces the plain behavior.
func (t *WaveTrack) ClearAndPaste(t0, t1 float64, src *WaveTrack, warper TimeWarper) {
	t.Clear(t0, t1)
	t.Paste(t0, src)
	if warper == nil {
		return
	}
	haveT1 := t0
	if src != nil {
		haveT1 += src.Duration()
	}
	wantT1 := warper.Warp(t1)
	d := t.TimeToSamples(wantT1 - haveT1)
	switch {
	case d > 0:
		t.InsertSilence(haveT1, t.SamplesToTime(d))
	case d < 0:
		t.Clear(wantT1, haveT1)
	}
}

// SyncLockAdjust keeps a group-locked track aligned when a sibling's
// region ending at oldT1 was replaced by one ending at newT1: the track
// grows by silence or shrinks by clearing accordingly.
func (t *WaveTrack) SyncLockAdjust(oldT1, newT1 float64) {
	switch {
	case newT1 > oldT1:
		if oldT1 >= t.EndTime() {
			return
		}
		t.InsertSilence(oldT1, newT1-oldT1)
	case newT1 < oldT1:
		t.Clear(newT1, oldT1)
	}
}

// EmptyCopy returns a new empty track carrying the same name, rate,
// gain, pan and sync group, positioned at time zero and deselected.
func (t *WaveTrack) EmptyCopy() *WaveTrack {
	out := NewWaveTrack(t.name, t.rate)
	out.gain = t.gain
	out.pan = t.pan
	out.syncGroup = t.syncGroup
	return out
}

// Copy returns a deep copy that keeps the original's identity, so a
// committed shadow copy still satisfies references by track ID.
func (t *WaveTrack) Copy() *WaveTrack {
	out := *t
	out.buf = t.buf.Clone()
	return &out
}
