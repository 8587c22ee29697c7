package multitrack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-multitrack/internal/testutil"
)

const (
	// testRate keeps sample/time conversions easy to reason about:
	// one sample per millisecond.
	testRate = 1000.0

	testTimeTolerance = 1e-9
)

// rampTrack creates a track holding n samples of a unit ramp.
func rampTrack(t *testing.T, name string, n int) *WaveTrack {
	t.Helper()
	track := NewWaveTrack(name, testRate)
	track.Append(testutil.Ramp(n, 1))
	track.Flush()
	return track
}

func TestNewWaveTrack_Defaults(t *testing.T) {
	track := NewWaveTrack("lead", testRate)

	assert.Equal(t, "lead", track.Name())
	assert.Equal(t, testRate, track.Rate())
	assert.Equal(t, 1.0, track.Gain())
	assert.Equal(t, 0.0, track.Pan())
	assert.False(t, track.Selected())
	assert.Equal(t, 0, track.Len())
	assert.NotZero(t, track.ID())
}

func TestNewWaveTrack_UniqueIDs(t *testing.T) {
	a := NewWaveTrack("a", testRate)
	b := NewWaveTrack("b", testRate)

	assert.NotEqual(t, a.ID(), b.ID())
}

func TestWaveTrack_Times(t *testing.T) {
	track := rampTrack(t, "t", 500)
	track.SetOffset(1.5)

	assert.InDelta(t, 1.5, track.StartTime(), testTimeTolerance)
	assert.InDelta(t, 2.0, track.EndTime(), testTimeTolerance)
	assert.InDelta(t, 0.5, track.Duration(), testTimeTolerance)
	assert.Equal(t, 250, track.TimeToSamples(0.25))
	assert.InDelta(t, 0.25, track.SamplesToTime(250), testTimeTolerance)
}

func TestWaveTrack_IsEmpty(t *testing.T) {
	track := rampTrack(t, "t", 100) // audio in [0, 0.1)
	track.SetOffset(1.0)            // now [1.0, 1.1)

	assert.True(t, track.IsEmpty(0, 1.0))
	assert.True(t, track.IsEmpty(1.1, 2.0))
	assert.False(t, track.IsEmpty(1.05, 1.2))
	assert.True(t, track.IsEmpty(1.05, 1.05), "degenerate range is empty")
	assert.True(t, NewWaveTrack("empty", testRate).IsEmpty(0, 10))
}

func TestWaveTrack_GetZeroFillsOutside(t *testing.T) {
	track := rampTrack(t, "t", 10)

	out := make([]float64, 6)
	copied := track.Get(-3, out)

	assert.Equal(t, 3, copied)
	assert.Equal(t, []float64{0, 0, 0, 0, 1, 2}, out)
}

func TestWaveTrack_Clear_Middle(t *testing.T) {
	track := rampTrack(t, "t", 10)

	track.Clear(0.002, 0.005) // samples 2..4

	assert.Equal(t, 7, track.Len())
	assert.Equal(t, []float64{0, 1, 5, 6, 7, 8, 9}, track.Samples())
	assert.InDelta(t, 0, track.StartTime(), testTimeTolerance)
}

func TestWaveTrack_Clear_BeforeStartShiftsTrack(t *testing.T) {
	track := rampTrack(t, "t", 10)
	track.SetOffset(1.0)

	track.Clear(0.5, 0.8)

	assert.Equal(t, 10, track.Len())
	assert.InDelta(t, 0.7, track.StartTime(), testTimeTolerance)
}

func TestWaveTrack_Clear_StraddlingStart(t *testing.T) {
	track := rampTrack(t, "t", 10)
	track.SetOffset(1.0)

	// Clears [0.9, 1.0) of empty space and samples 0..4.
	track.Clear(0.9, 1.005)

	assert.Equal(t, 5, track.Len())
	assert.Equal(t, []float64{5, 6, 7, 8, 9}, track.Samples())
	assert.InDelta(t, 0.9, track.StartTime(), testTimeTolerance)
}

func TestWaveTrack_Paste_Middle(t *testing.T) {
	track := rampTrack(t, "t", 4)
	src := NewWaveTrack("src", testRate)
	src.Append([]float64{8, 9})

	track.Paste(0.002, src)

	assert.Equal(t, []float64{0, 1, 8, 9, 2, 3}, track.Samples())
}

func TestWaveTrack_Paste_PastEndPadsSilence(t *testing.T) {
	track := rampTrack(t, "t", 2)
	src := NewWaveTrack("src", testRate)
	src.Append([]float64{5})

	track.Paste(0.004, src)

	assert.Equal(t, []float64{0, 1, 0, 0, 5}, track.Samples())
}

func TestWaveTrack_Paste_BeforeStart(t *testing.T) {
	track := rampTrack(t, "t", 2)
	track.SetOffset(1.0)
	src := NewWaveTrack("src", testRate)
	src.Append([]float64{5, 6})

	track.Paste(0.5, src)

	// Pasted audio at [0.5, 0.502), silence gap, original shifted later
	// by the pasted duration.
	assert.InDelta(t, 0.5, track.StartTime(), testTimeTolerance)
	samples := track.Samples()
	require.Equal(t, 504, len(samples))
	assert.Equal(t, []float64{5, 6}, samples[:2])
	assert.Equal(t, []float64{0, 1}, samples[502:])
}

func TestWaveTrack_InsertSilence(t *testing.T) {
	track := rampTrack(t, "t", 4)

	track.InsertSilence(0.002, 0.002)

	assert.Equal(t, []float64{0, 1, 0, 0, 2, 3}, track.Samples())
}

func TestWaveTrack_InsertSilence_BeforeStartShiftsOffset(t *testing.T) {
	track := rampTrack(t, "t", 4)
	track.SetOffset(1.0)

	track.InsertSilence(0.5, 0.25)

	assert.Equal(t, 4, track.Len())
	assert.InDelta(t, 1.25, track.StartTime(), testTimeTolerance)
}

func TestWaveTrack_ClearAndPaste_ReplacesSelection(t *testing.T) {
	track := rampTrack(t, "t", 1000) // 1 second
	src := NewWaveTrack("src", testRate)
	src.Append(testutil.Constant(500, 7))

	// Replace [0.25, 0.5) with 0.5 s of sevens.
	track.ClearAndPaste(0.25, 0.5, src, PasteWarper{OldT1: 0.5, NewT1: 0.75})

	assert.Equal(t, 1250, track.Len())
	samples := track.Samples()
	assert.Equal(t, 249.0, samples[249], "audio before the selection is untouched")
	assert.Equal(t, 7.0, samples[250])
	assert.Equal(t, 7.0, samples[749])
	assert.Equal(t, 500.0, samples[750], "trailing audio lands at the warped time")
}

func TestWaveTrack_ClearAndPaste_NilWarper(t *testing.T) {
	track := rampTrack(t, "t", 1000)
	src := NewWaveTrack("src", testRate)
	src.Append(testutil.Constant(100, 7))

	track.ClearAndPaste(0.25, 0.5, src, nil)

	// 250 samples removed, 100 inserted.
	assert.Equal(t, 850, track.Len())
	assert.Equal(t, 500.0, track.Samples()[350])
}

func TestWaveTrack_SyncLockAdjust(t *testing.T) {
	t.Run("grow_inserts_silence", func(t *testing.T) {
		track := rampTrack(t, "t", 1000)

		track.SyncLockAdjust(0.5, 0.75)

		assert.Equal(t, 1250, track.Len())
		samples := track.Samples()
		assert.Equal(t, 499.0, samples[499])
		assert.Equal(t, 0.0, samples[500])
		assert.Equal(t, 500.0, samples[750])
	})

	t.Run("grow_past_end_is_noop", func(t *testing.T) {
		track := rampTrack(t, "t", 100)

		track.SyncLockAdjust(0.5, 0.75)

		assert.Equal(t, 100, track.Len())
	})

	t.Run("shrink_clears", func(t *testing.T) {
		track := rampTrack(t, "t", 1000)

		track.SyncLockAdjust(0.75, 0.5)

		assert.Equal(t, 750, track.Len())
		assert.Equal(t, 750.0, track.Samples()[500])
	})
}

func TestWaveTrack_EmptyCopy(t *testing.T) {
	track := rampTrack(t, "t", 10)
	track.SetGain(0.5)
	track.SetPan(-1)
	track.SetSyncGroup(3)
	track.SetOffset(2)
	track.SetSelected(true)

	cp := track.EmptyCopy()

	assert.Equal(t, track.Name(), cp.Name())
	assert.Equal(t, track.Rate(), cp.Rate())
	assert.Equal(t, track.Gain(), cp.Gain())
	assert.Equal(t, track.Pan(), cp.Pan())
	assert.Equal(t, track.SyncGroup(), cp.SyncGroup())
	assert.Zero(t, cp.Len())
	assert.Zero(t, cp.Offset())
	assert.False(t, cp.Selected())
	assert.NotEqual(t, track.ID(), cp.ID())
}

func TestWaveTrack_Copy_KeepsIdentity(t *testing.T) {
	track := rampTrack(t, "t", 10)

	cp := track.Copy()
	cp.Append([]float64{42})

	assert.Equal(t, track.ID(), cp.ID())
	assert.Equal(t, 10, track.Len(), "copy mutations do not leak back")
	assert.Equal(t, 11, cp.Len())
}

func TestWaveTrack_BlockSizes(t *testing.T) {
	track := NewWaveTrack("t", testRate)

	max := track.MaxBlockSize()
	assert.Equal(t, max, track.BestBlockSize(0))
	assert.Equal(t, max-100, track.BestBlockSize(100))
}
