// Command mixdown mixes WAV files into one track.
//
// Usage:
//
//	mixdown -out mix.wav drums.wav bass.wav vocals.wav
//	mixdown -out mix.wav -gain 1,0.5 -pan -0.3,0.3 left.wav right.wav
//	mixdown -out mix.wav -start 10 -end 30 long.wav
//
// Per-input gain and pan are comma-separated lists matched to the
// inputs in order; missing entries default to unity gain and centre
// pan. Any off-centre pan makes the output stereo.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	multitrack "github.com/tphakala/go-audio-multitrack"
	"github.com/tphakala/go-audio-multitrack/internal/wavio"
)

const (
	// CLI defaults
	defaultOutput   = "mix.wav"
	defaultBitDepth = 16
	defaultGain     = 1.0

	minRequiredArgs = 1
	percentScale    = 100
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", defaultOutput, "Output WAV file")
	gains := flag.String("gain", "", "Comma-separated per-input gains (e.g. 1,0.5,0.8)")
	pans := flag.String("pan", "", "Comma-separated per-input pans in [-1, 1]")
	start := flag.Float64("start", 0, "Mix start time in seconds")
	end := flag.Float64("end", 0, "Mix end time in seconds (0 = full length)")
	depth := flag.Int("depth", defaultBitDepth, "Output bit depth: 16, 24 or 32")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav [input2.wav ...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -out mix.wav drums.wav bass.wav\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -out mix.wav -pan -0.5,0.5 a.wav b.wav\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	gainList, err := parseFloatList(*gains, len(args), defaultGain)
	if err != nil {
		return fmt.Errorf("invalid -gain: %w", err)
	}
	panList, err := parseFloatList(*pans, len(args), 0)
	if err != nil {
		return fmt.Errorf("invalid -pan: %w", err)
	}

	list := multitrack.NewTrackList()
	for i, path := range args {
		samples, rate, err := wavio.ReadMono(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		track := multitrack.NewWaveTrack(path, float64(rate))
		track.Append(samples)
		track.Flush()
		track.SetGain(gainList[i])
		track.SetPan(panList[i])
		track.SetSelected(true)
		list.Append(track)
		if *verbose {
			fmt.Fprintf(os.Stderr, "Loaded %s: %d samples at %d Hz (gain %g, pan %g)\n",
				path, len(samples), rate, gainList[i], panList[i])
		}
	}

	mixEnd := *end
	if mixEnd == 0 && *start != 0 {
		for _, t := range list.Tracks() {
			if t.EndTime() > mixEnd {
				mixEnd = t.EndTime()
			}
		}
	}

	opts := multitrack.MixOptions{StartTime: *start, EndTime: mixEnd}
	if *verbose {
		lastPercent := -1
		opts.Progress = func(frac float64) error {
			if p := int(frac * percentScale); p != lastPercent {
				lastPercent = p
				fmt.Fprintf(os.Stderr, "\rMixing... %3d%%", p)
			}
			return nil
		}
	}

	began := time.Now()
	left, right, err := multitrack.MixAndRender(list, opts)
	if err != nil {
		return fmt.Errorf("mix failed: %w", err)
	}
	if left == nil {
		return fmt.Errorf("nothing to mix")
	}
	if *verbose {
		fmt.Fprintf(os.Stderr, "\rMixed %d inputs in %v\n", len(args), time.Since(began).Round(time.Millisecond))
	}

	rate := int(left.Rate())
	if right != nil {
		err = wavio.WriteStereo(*out, left.Samples(), right.Samples(), rate, *depth)
	} else {
		err = wavio.WriteMono(*out, left.Samples(), rate, *depth)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", *out, err)
	}
	if *verbose {
		channels := "mono"
		if right != nil {
			channels = "stereo"
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%s, %d samples, %d-bit)\n", *out, channels, left.Len(), *depth)
	}
	return nil
}

// parseFloatList parses a comma-separated list, padding with fallback
// up to n entries.
func parseFloatList(s string, n int, fallback float64) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		out[i] = fallback
	}
	if s == "" {
		return out, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) > n {
		return nil, fmt.Errorf("%d values for %d inputs", len(parts), n)
	}
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q", part)
		}
		out[i] = v
	}
	return out, nil
}
