package multitrack

import (
	"math"

	"github.com/tphakala/go-audio-multitrack/internal/sampleops"
)

// defaultMixName names the rendered track when several inputs are mixed
// and no name was given.
const defaultMixName = "Mix"

// MixOptions configures MixAndRender.
type MixOptions struct {
	// Name for the rendered track. With a single input track the input's
	// name is kept instead. Empty means "Mix".
	Name string

	// StartTime and EndTime bound the render. When equal (typically both
	// zero) the whole range in which any input has audio is used.
	StartTime float64
	EndTime   float64

	// Progress is polled once per rendered block with the overall
	// fraction done; returning an error aborts the render.
	Progress func(frac float64) error
}

// MixAndRender mixes the selected tracks of the list down to a new
// track, applying per-track gain and constant-power pan. The result is
// mono when every input is centre-panned, otherwise a linked pair of
// tracks carrying the left and right channels (right is nil for mono).
// With no selected tracks, or an empty render range, all results are
// nil.
//
// All inputs must share one sample rate; resampling is out of scope.
// The rendered track starts at the mix start time with unity gain and
// centre pan.
func MixAndRender(list *TrackList, opts MixOptions) (left, right *WaveTrack, err error) {
	sel := list.Selected()
	if len(sel) == 0 {
		return nil, nil, nil
	}

	rate := sel[0].Rate()
	mono := true
	for _, t := range sel {
		if t.Rate() != rate {
			return nil, nil, ErrRateMismatch
		}
		if t.Pan() != 0 {
			mono = false
		}
	}

	// Find when the inputs start and end, in case the caller did not
	// bound the render. An empty track starts and ends at its offset and
	// must not pin the start time there.
	var mixStart, mixEnd float64
	gotStart := false
	for _, t := range sel {
		ts, te := t.StartTime(), t.EndTime()
		if te > mixEnd {
			mixEnd = te
		}
		if ts != te {
			if !gotStart || ts < mixStart {
				mixStart = ts
				gotStart = true
			}
		}
	}

	start, end := opts.StartTime, opts.EndTime
	if start == end {
		start, end = mixStart, mixEnd
	}
	if end <= start {
		return nil, nil, nil
	}

	left = sel[0].EmptyCopy()
	left.SetGain(1)
	left.SetPan(0)
	left.SetOffset(start)
	if len(sel) == 1 {
		left.SetName(sel[0].Name())
	} else if opts.Name != "" {
		left.SetName(opts.Name)
	} else {
		left.SetName(defaultMixName)
	}
	if !mono {
		right = NewWaveTrack(left.Name(), rate)
		right.SetOffset(start)
	}

	total := left.TimeToSamples(end - start)
	blockLen := left.MaxBlockSize()
	var (
		accL   = make([]float64, blockLen)
		accR   = make([]float64, blockLen)
		in     = make([]float64, blockLen)
		scaled = make([]float64, blockLen)
	)

	for done := 0; done < total; {
		n := min(blockLen, total-done)
		clearBlock(accL[:n])
		if right != nil {
			clearBlock(accR[:n])
		}

		for _, t := range sel {
			// Track-relative index of this block's first frame.
			idx := t.TimeToSamples(start-t.StartTime()) + done
			t.Get(idx, in[:n])

			if mono {
				sampleops.Scale(scaled[:n], in[:n], t.Gain())
				sampleops.Accumulate(accL[:n], scaled[:n])
				continue
			}
			gl, gr := panGains(t.Pan())
			sampleops.Scale(scaled[:n], in[:n], t.Gain()*gl)
			sampleops.Accumulate(accL[:n], scaled[:n])
			sampleops.Scale(scaled[:n], in[:n], t.Gain()*gr)
			sampleops.Accumulate(accR[:n], scaled[:n])
		}

		left.Append(accL[:n])
		if right != nil {
			right.Append(accR[:n])
		}
		done += n

		if opts.Progress != nil {
			if err := opts.Progress(float64(done) / float64(total)); err != nil {
				return nil, nil, err
			}
		}
	}

	left.Flush()
	if right != nil {
		right.Flush()
	}
	return left, right, nil
}

// panGains returns constant-power channel gains for a pan position in
// [-1, 1]: full left is (1, 0), centre is (√2/2, √2/2), full right is
// (0, 1).
func panGains(pan float64) (gl, gr float64) {
	theta := (pan + 1) * math.Pi / 4
	return math.Cos(theta), math.Sin(theta)
}

func clearBlock(b []float64) {
	for i := range b {
		b[i] = 0
	}
}
