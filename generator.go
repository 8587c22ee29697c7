package multitrack

import "fmt"

// Synth produces the audio a Generator writes into each selected track.
// Implementations are driven block-by-block so long generations can
// report progress and be canceled between blocks.
type Synth interface {
	// Reset prepares the synth for a new track. totalSamples is the
	// number of samples that will be requested for this track.
	Reset(track *WaveTrack, totalSamples int)

	// Block fills dst completely with the next samples. Every element
	// must be written; dst may contain stale data.
	Block(dst []float64) error
}

// Generator synthesizes Duration seconds of audio into the selected
// region of every selected track. It works on shadow copies and commits
// them only when every track succeeded, so a failed or canceled run
// leaves the list untouched. On success the time selection is updated
// to cover the generated audio.
type Generator struct {
	Effect

	// Duration is the length of audio to generate, in seconds. Zero
	// clears the selected region instead.
	Duration float64

	// Synth produces the samples. Required unless Duration is zero.
	Synth Synth
}

// Process runs the generator over the selected tracks of the list.
// Unselected tracks that are sync-lock selected are adjusted so their
// group alignment survives the duration change.
func (g *Generator) Process(list *TrackList, sel *TimeSelection) error {
	if g.Synth == nil && g.Duration > 0 {
		return fmt.Errorf("%w: generator has no synth", ErrInvalidConfig)
	}

	t0, t1 := sel.T0, sel.T1
	outputs := make(map[int]*WaveTrack)
	trackIndex := 0

	for i, track := range list.Tracks() {
		switch {
		case track.Selected():
			out := track.Copy()
			if err := g.generateOne(out, trackIndex, t0, t1); err != nil {
				return err
			}
			outputs[i] = out
			trackIndex++
		case list.IsSyncLockSelected(track):
			out := track.Copy()
			out.SyncLockAdjust(t1, t0+g.Duration)
			outputs[i] = out
		}
	}

	for i, out := range outputs {
		list.tracks[i] = out
	}
	sel.T1 = t0 + g.Duration
	return nil
}

// generateOne synthesizes into a single track copy.
func (g *Generator) generateOne(track *WaveTrack, trackIndex int, t0, t1 float64) error {
	rate := track.Rate()

	// When clips cannot move and we are generating into empty space,
	// make sure the audio displaced past the selection has room.
	if !g.CanMoveClips &&
		track.IsEmpty(t0, t1+1/rate) &&
		!track.IsEmpty(t0, t0+g.Duration-(t1-t0)-1/rate) {
		return ErrNoRoom
	}

	if g.Duration <= 0 {
		track.Clear(t0, t1)
		return nil
	}

	numSamples := track.TimeToSamples(g.Duration)
	tmp := track.EmptyCopy()
	g.Synth.Reset(track, numSamples)

	data := make([]float64, tmp.MaxBlockSize())
	for done := 0; done < numSamples; {
		n := min(tmp.BestBlockSize(done), numSamples-done)
		if err := g.Synth.Block(data[:n]); err != nil {
			return err
		}
		tmp.Append(data[:n])
		done += n

		if err := g.trackProgress(trackIndex, float64(done)/float64(numSamples)); err != nil {
			return err
		}
	}
	tmp.Flush()

	track.ClearAndPaste(t0, t1, tmp, PasteWarper{OldT1: t1, NewT1: t0 + g.Duration})
	return nil
}
