package multitrack

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Waveform enumerates the tone shapes ToneSynth can produce.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
)

// String returns the lower-case waveform name.
func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Sawtooth:
		return "sawtooth"
	case Triangle:
		return "triangle"
	default:
		return fmt.Sprintf("waveform(%d)", int(w))
	}
}

// ParseWaveform maps a waveform name to its value.
func ParseWaveform(s string) (Waveform, error) {
	switch s {
	case "sine":
		return Sine, nil
	case "square":
		return Square, nil
	case "sawtooth", "saw":
		return Sawtooth, nil
	case "triangle":
		return Triangle, nil
	default:
		return 0, fmt.Errorf("unknown waveform %q", s)
	}
}

// ToneSynth generates a periodic tone. Frequency and amplitude are
// interpolated linearly from their start to their end values over the
// generated span, which covers steady tones, chirps and fades with one
// type. Zero end values mean "same as start".
type ToneSynth struct {
	Waveform  Waveform
	StartFreq float64 // Hz
	EndFreq   float64 // Hz; 0 = StartFreq
	StartAmp  float64 // 0..1
	EndAmp    float64 // 0..1; 0 with a nonzero StartAmp = StartAmp

	rate  float64
	total int
	pos   int
	phase float64
	freq0 float64
	freq1 float64
	amp0  float64
	amp1  float64
}

// Reset prepares the synth for a track.
func (s *ToneSynth) Reset(track *WaveTrack, totalSamples int) {
	s.rate = track.Rate()
	s.total = totalSamples
	s.pos = 0
	s.phase = 0
	s.freq0 = s.StartFreq
	s.freq1 = s.EndFreq
	if s.freq1 == 0 {
		s.freq1 = s.freq0
	}
	s.amp0 = s.StartAmp
	s.amp1 = s.EndAmp
	if s.amp1 == 0 && s.amp0 != 0 {
		s.amp1 = s.amp0
	}
}

// Block fills dst with the next tone samples.
func (s *ToneSynth) Block(dst []float64) error {
	for i := range dst {
		frac := 0.0
		if s.total > 1 {
			frac = float64(s.pos) / float64(s.total-1)
		}
		freq := s.freq0 + (s.freq1-s.freq0)*frac
		amp := s.amp0 + (s.amp1-s.amp0)*frac

		dst[i] = amp * shape(s.Waveform, s.phase)

		s.phase += 2 * math.Pi * freq / s.rate
		if s.phase >= 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
		s.pos++
	}
	return nil
}

// shape evaluates one waveform cycle at the given phase in [0, 2π).
func shape(w Waveform, phase float64) float64 {
	cycle := phase / (2 * math.Pi)
	switch w {
	case Square:
		if cycle < 0.5 {
			return 1
		}
		return -1
	case Sawtooth:
		return 2*cycle - 1
	case Triangle:
		return 1 - 4*math.Abs(cycle-0.5)
	default:
		return math.Sin(phase)
	}
}

// NoiseSynth generates white noise with a deterministic seed, so the
// same configuration reproduces the same audio.
type NoiseSynth struct {
	Amp  float64
	Seed uint64

	rng *rand.Rand
}

// Reset reseeds the generator for a new track.
func (s *NoiseSynth) Reset(track *WaveTrack, totalSamples int) {
	s.rng = rand.New(rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15))
}

// Block fills dst with uniform noise in [-Amp, Amp].
func (s *NoiseSynth) Block(dst []float64) error {
	for i := range dst {
		dst[i] = (s.rng.Float64()*2 - 1) * s.Amp
	}
	return nil
}

// SilenceSynth generates silence.
type SilenceSynth struct{}

// Reset implements Synth.
func (SilenceSynth) Reset(track *WaveTrack, totalSamples int) {}

// Block zeroes dst.
func (SilenceSynth) Block(dst []float64) error {
	for i := range dst {
		dst[i] = 0
	}
	return nil
}
