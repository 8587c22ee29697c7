package multitrack

import "github.com/tphakala/go-audio-multitrack/internal/sampleops"

// defaultNormalizeTarget is the peak amplitude normalized audio is
// scaled to when none is configured.
const defaultNormalizeTarget = 1.0

// NormalizeProcessor is a TwoPassProcessor that scales audio to a
// target peak amplitude: pass 1 measures the peak across all selected
// tracks, pass 2 applies one common gain. Silent material is left
// untouched (the second pass is skipped).
type NormalizeProcessor struct {
	// Target peak amplitude in [0, 1]. Zero means 1.0.
	Target float64

	peak float64
	gain float64
}

// InitPass1 resets the measured peak.
func (p *NormalizeProcessor) InitPass1() error {
	p.peak = 0
	return nil
}

// InitPass2 computes the gain; a zero peak skips the pass.
func (p *NormalizeProcessor) InitPass2() (bool, error) {
	if p.peak == 0 {
		return false, nil
	}
	target := p.Target
	if target == 0 {
		target = defaultNormalizeTarget
	}
	p.gain = target / p.peak
	return true, nil
}

// NewTrackPass1 implements TwoPassProcessor.
func (p *NormalizeProcessor) NewTrackPass1() error { return nil }

// NewTrackPass2 implements TwoPassProcessor.
func (p *NormalizeProcessor) NewTrackPass2() error { return nil }

// ProcessPass1 measures the peak. Only buf1 is inspected; every block
// shows up there exactly once.
func (p *NormalizeProcessor) ProcessPass1(buf1, buf2 []float64) error {
	if peak := sampleops.Peak(buf1); peak > p.peak {
		p.peak = peak
	}
	return nil
}

// ProcessPass2 applies the gain.
func (p *NormalizeProcessor) ProcessPass2(buf1, buf2 []float64) error {
	sampleops.ScaleInPlace(buf1, p.gain)
	return nil
}
