package multitrack

// TwoPassProcessor is the per-sample logic of a TwoPassEffect. Pass 1
// typically analyzes, pass 2 processes with what pass 1 learned.
//
// The process methods receive two sequential buffers: buf1 is the block
// being emitted, buf2 the block that follows (nil at the end of a
// track). Either may be modified; changes to buf2 are seen again when
// it becomes buf1, which allows delay-style processing.
type TwoPassProcessor interface {
	// InitPass1 runs once before the first pass.
	InitPass1() error

	// InitPass2 runs once before the second pass. Returning false skips
	// the pass, committing the first pass output as-is.
	InitPass2() (bool, error)

	// NewTrackPass1 runs before each track in pass 1.
	NewTrackPass1() error

	// NewTrackPass2 runs before each track in pass 2.
	NewTrackPass2() error

	// ProcessPass1 processes one block (with lookahead) in pass 1.
	ProcessPass1(buf1, buf2 []float64) error

	// ProcessPass2 processes one block (with lookahead) in pass 2.
	ProcessPass2(buf1, buf2 []float64) error
}

// TwoPassEffect processes the selected region of each selected track in
// up to two passes. Pass 1 reads the original audio into a shadow
// track; pass 2 re-reads the pass-1 output. Results are committed into
// the list only after every track succeeded.
type TwoPassEffect struct {
	Effect

	// SecondPassDisabled declares up front that no second pass will be
	// needed; the pass is skipped and progress accounts a single pass.
	SecondPassDisabled bool
}

// twoPassWork tracks the state of one selected track through the
// passes.
type twoPassWork struct {
	listIndex int
	track     *WaveTrack
	t0, t1    float64 // selection clamped to the track
	out       *WaveTrack
}

// Process runs the processor over the selected tracks.
func (e *TwoPassEffect) Process(list *TrackList, sel *TimeSelection, proc TwoPassProcessor) error {
	var works []*twoPassWork
	for i, track := range list.Tracks() {
		if !track.Selected() {
			continue
		}
		t0 := max(sel.T0, track.StartTime())
		t1 := min(sel.T1, track.EndTime())
		if t1 <= t0 {
			continue
		}
		works = append(works, &twoPassWork{listIndex: i, track: track, t0: t0, t1: t1})
	}
	if len(works) == 0 {
		return nil
	}

	passes := 2
	if e.SecondPassDisabled {
		passes = 1
	}

	if err := proc.InitPass1(); err != nil {
		return err
	}
	for wi, w := range works {
		if err := proc.NewTrackPass1(); err != nil {
			return err
		}
		i0 := clampIndex(w.track.sampleIndex(w.t0), w.track.Len())
		i1 := clampIndex(w.track.sampleIndex(w.t1), w.track.Len())
		out, err := e.processPass(w.track, i0, i1, wi, 0, passes, proc.ProcessPass1)
		if err != nil {
			return err
		}
		w.out = out
	}

	if !e.SecondPassDisabled {
		run, err := proc.InitPass2()
		if err != nil {
			return err
		}
		if run {
			for wi, w := range works {
				if err := proc.NewTrackPass2(); err != nil {
					return err
				}
				out, err := e.processPass(w.out, 0, w.out.Len(), wi, 1, passes, proc.ProcessPass2)
				if err != nil {
					return err
				}
				w.out = out
			}
		}
	}

	for _, w := range works {
		replacement := w.track.Copy()
		replacement.ClearAndPaste(w.t0, w.t1, w.out, IdentityWarper{})
		list.tracks[w.listIndex] = replacement
	}
	return nil
}

// processPass streams samples [i0, i1) of src through fn with one block
// of lookahead, collecting the emitted blocks into a new track.
func (e *TwoPassEffect) processPass(src *WaveTrack, i0, i1, trackIndex, pass, passes int,
	fn func(buf1, buf2 []float64) error) (*WaveTrack, error) {

	out := src.EmptyCopy()
	blockLen := src.MaxBlockSize()
	cur := make([]float64, blockLen)
	next := make([]float64, blockLen)

	total := i1 - i0
	pos := i0
	done := 0

	n1 := min(blockLen, i1-pos)
	if n1 > 0 {
		src.Get(pos, cur[:n1])
		pos += n1
	}
	for n1 > 0 {
		var lookahead []float64
		n2 := min(blockLen, i1-pos)
		if n2 > 0 {
			src.Get(pos, next[:n2])
			pos += n2
			lookahead = next[:n2]
		}

		if err := fn(cur[:n1], lookahead); err != nil {
			return nil, err
		}
		out.Append(cur[:n1])
		done += n1

		frac := (float64(pass)*float64(total) + float64(done)) /
			(float64(passes) * float64(total))
		if err := e.trackProgress(trackIndex, frac); err != nil {
			return nil, err
		}

		// The lookahead block, including any modifications, becomes the
		// next emitted block.
		cur, next = next, cur
		n1 = n2
	}
	out.Flush()
	return out, nil
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
