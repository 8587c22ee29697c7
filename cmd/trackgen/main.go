// Command trackgen synthesizes audio into a WAV file.
//
// Usage:
//
//	trackgen -wave sine -freq 440 -dur 2 output.wav
//	trackgen -wave sine -freq 220 -freq-end 880 -amp 0.8 -dur 5 chirp.wav
//	trackgen -wave noise -amp 0.25 -dur 10 noise.wav
//	trackgen -wave silence -dur 1 gap.wav
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	multitrack "github.com/tphakala/go-audio-multitrack"
	"github.com/tphakala/go-audio-multitrack/internal/wavio"
)

const (
	// CLI defaults
	defaultWave     = "sine"
	defaultFreqHz   = 440.0
	defaultAmp      = 0.8
	defaultDuration = 1.0
	defaultRateHz   = 44100.0
	defaultBitDepth = 16
	defaultSeed     = 1

	minRequiredArgs = 1
	percentScale    = 100
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	wave := flag.String("wave", defaultWave, "Waveform: sine, square, sawtooth, triangle, noise, silence")
	freq := flag.Float64("freq", defaultFreqHz, "Tone frequency in Hz")
	freqEnd := flag.Float64("freq-end", 0, "End frequency in Hz for a chirp (0 = constant)")
	amp := flag.Float64("amp", defaultAmp, "Amplitude in [0, 1]")
	ampEnd := flag.Float64("amp-end", 0, "End amplitude for a fade (0 = constant)")
	dur := flag.Float64("dur", defaultDuration, "Duration in seconds")
	rate := flag.Float64("rate", defaultRateHz, "Sample rate in Hz")
	depth := flag.Int("depth", defaultBitDepth, "Output bit depth: 16, 24 or 32")
	seed := flag.Uint64("seed", defaultSeed, "Noise generator seed")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -wave sine -freq 440 -dur 2 tone.wav\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -wave noise -amp 0.25 -dur 10 noise.wav\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}
	outPath := args[0]

	if *dur <= 0 {
		return fmt.Errorf("duration must be positive, got %g", *dur)
	}
	if *amp < 0 || *amp > 1 {
		return fmt.Errorf("amplitude must be in [0, 1], got %g", *amp)
	}

	synth, err := buildSynth(*wave, *freq, *freqEnd, *amp, *ampEnd, *seed)
	if err != nil {
		return err
	}

	track := multitrack.NewWaveTrack("generated", *rate)
	track.SetSelected(true)
	list := multitrack.NewTrackList(track)
	sel := multitrack.TimeSelection{}

	gen := multitrack.Generator{Duration: *dur, Synth: synth}
	if *verbose {
		lastPercent := -1
		gen.Progress = func(trackIndex int, frac float64) error {
			if p := int(frac * percentScale); p != lastPercent {
				lastPercent = p
				fmt.Fprintf(os.Stderr, "\rGenerating... %3d%%", p)
			}
			return nil
		}
	}

	start := time.Now()
	if err := gen.Process(list, &sel); err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	if *verbose {
		fmt.Fprintf(os.Stderr, "\rGenerated %d samples in %v\n",
			list.Track(0).Len(), time.Since(start).Round(time.Millisecond))
	}

	if err := wavio.WriteMono(outPath, list.Track(0).Samples(), int(*rate), *depth); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	if *verbose {
		fmt.Fprintf(os.Stderr, "Wrote %s (%g s at %g Hz, %d-bit)\n", outPath, *dur, *rate, *depth)
	}
	return nil
}

func buildSynth(wave string, freq, freqEnd, amp, ampEnd float64, seed uint64) (multitrack.Synth, error) {
	switch wave {
	case "noise":
		return &multitrack.NoiseSynth{Amp: amp, Seed: seed}, nil
	case "silence":
		return multitrack.SilenceSynth{}, nil
	default:
		waveform, err := multitrack.ParseWaveform(wave)
		if err != nil {
			return nil, err
		}
		return &multitrack.ToneSynth{
			Waveform:  waveform,
			StartFreq: freq,
			EndFreq:   freqEnd,
			StartAmp:  amp,
			EndAmp:    ampEnd,
		}, nil
	}
}
