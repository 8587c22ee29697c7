// Package multitrack provides the track-level editing model of a
// multi-track audio editor in pure Go: wave tracks with block-based
// sample storage, list-style track selection with commit/rollback,
// generator effects that synthesize audio into the selected region of
// each selected track, two-pass per-track processing, and mixing of
// selected tracks down to a new mono or stereo track.
//
// # Features
//
//   - WaveTrack/TrackList model with time-addressed editing (clear,
//     paste, sync-lock adjustment) over bounded-size sample blocks
//   - List-selection semantics (shift-click range, ctrl-click toggle)
//     with snapshot/commit/rollback via SelectionChanger
//   - Generator effects driven by a Synth interface, with block-by-block
//     progress reporting and cancellation
//   - Two-pass mono effect base (analysis pass + processing pass)
//   - Mix-and-render of the selected tracks with per-track gain and
//     constant-power pan, SIMD-accelerated via github.com/tphakala/simd
//   - Project persistence as YAML metadata plus per-track WAV files
//
// # Quick Start
//
// Generate two seconds of a 440 Hz tone into a selected track:
//
//	track := multitrack.NewWaveTrack("lead", 44100)
//	list := multitrack.NewTrackList(track)
//	track.SetSelected(true)
//
//	sel := multitrack.TimeSelection{}
//	gen := multitrack.Generator{
//	    Duration: 2.0,
//	    Synth:    &multitrack.ToneSynth{Waveform: multitrack.Sine, StartFreq: 440, StartAmp: 0.8},
//	}
//	if err := gen.Process(list, &sel); err != nil {
//	    log.Fatal(err)
//	}
//
// Mix the selected tracks down to a new track:
//
//	left, right, err := multitrack.MixAndRender(list, multitrack.MixOptions{Name: "Mix"})
//
// All effects operate on shadow copies and commit only on success, so a
// canceled or failed operation leaves the track list untouched.
package multitrack
