// Package wavio reads and writes track sample data as WAV files using
// github.com/go-audio/wav. Samples are float64 in [-1, 1] on the library
// side and integer PCM (16, 24 or 32 bit) on disk.
package wavio

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tphakala/go-audio-multitrack/internal/sampleops"
)

// Supported PCM bit depths.
const (
	BitDepth16 = 16
	BitDepth24 = 24
	BitDepth32 = 32
)

// Full-scale values for each supported bit depth.
const (
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	wavAudioFormatPCM = 1
)

var (
	// ErrUnsupportedDepth indicates a bit depth other than 16/24/32.
	ErrUnsupportedDepth = errors.New("unsupported bit depth")

	// ErrChannelMismatch indicates stereo channel slices of unequal length.
	ErrChannelMismatch = errors.New("stereo channels differ in length")
)

// fullScale returns the positive full-scale value for a bit depth.
func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case BitDepth16:
		return maxInt16, nil
	case BitDepth24:
		return maxInt24, nil
	case BitDepth32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedDepth, bitDepth)
	}
}

// WriteMono writes a mono WAV file at the given rate and bit depth.
func WriteMono(path string, samples []float64, rate, bitDepth int) error {
	return writePCM(path, samples, nil, rate, bitDepth, 1)
}

// WriteStereo writes a two-channel WAV file. Channel slices must have
// equal length.
func WriteStereo(path string, left, right []float64, rate, bitDepth int) error {
	if len(left) != len(right) {
		return fmt.Errorf("%w: left %d, right %d", ErrChannelMismatch, len(left), len(right))
	}
	return writePCM(path, left, right, rate, bitDepth, 2)
}

func writePCM(path string, left, right []float64, rate, bitDepth, channels int) error {
	scale, err := fullScale(bitDepth)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, bitDepth, channels, wavAudioFormatPCM)

	frames := left
	if channels == 2 {
		interleaved := make([]float64, len(left)*2)
		sampleops.Interleave(interleaved, left, right)
		frames = interleaved
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		SourceBitDepth: bitDepth,
		Data:           make([]int, len(frames)),
	}
	for i, s := range frames {
		buf.Data[i] = clampPCM(s, scale)
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize %s: %w", path, err)
	}
	return nil
}

// ReadMono reads a WAV file, mixing multi-channel content down to mono
// by averaging. It returns the samples and the file's sample rate.
func ReadMono(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	scale, err := fullScale(int(dec.BitDepth))
	if err != nil {
		return nil, 0, err
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	frames := len(buf.Data) / channels
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var acc float64
		for c := 0; c < channels; c++ {
			acc += float64(buf.Data[i*channels+c]) / scale
		}
		out[i] = acc / float64(channels)
	}
	return out, buf.Format.SampleRate, nil
}

// clampPCM converts a float sample to integer PCM, saturating at full
// scale.
func clampPCM(s, scale float64) int {
	v := s * scale
	if v > scale {
		v = scale
	} else if v < -scale-1 {
		v = -scale - 1
	}
	if v >= 0 {
		return int(v + 0.5)
	}
	return int(v - 0.5)
}
