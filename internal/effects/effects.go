// Package effects implements the drum's mono processing chain. Stage order
// is fixed: distortion, filter (with envelope and LFO cutoff modulation),
// compressor, EQ, reverb, limiter. Optional stages neutralize themselves when
// disabled instead of being rewired, except the limiter, which is skipped
// outright because it has no transparent parameterization.
package effects

import (
	"math"

	"github.com/cbegin/drum808-go/internal/lfo"
)

// Stage processes mono audio one sample at a time.
type Stage interface {
	Process(x float64) float64
	Reset()
}

// Chain applies the fixed stage order to a mono signal.
type Chain struct {
	sampleRate float64

	dist   *Distortion
	filter *Filter
	comp   *Compressor
	eq     *EQ3Band
	rev    *Reverb
	lim    *Limiter

	lfo        lfo.LFO
	lfoEnabled bool
}

// NewChain builds a chain with every stage in its neutral state.
func NewChain(sampleRate int) *Chain {
	sr := float64(sampleRate)
	return &Chain{
		sampleRate: sr,
		dist:       NewDistortion(),
		filter:     NewFilter(sr),
		comp:       NewCompressor(sr),
		eq:         NewEQ3Band(sr),
		rev:        NewReverb(sampleRate),
		lim:        NewLimiter(),
	}
}

func (c *Chain) Process(x float64) float64 {
	x = c.dist.Process(x)
	if c.lfoEnabled {
		// LFO swings the cutoff by up to half the static value at full depth.
		c.filter.SetLFOMod(c.lfo.Sample(c.sampleRate) * 0.5)
	}
	x = c.filter.Process(x)
	x = c.comp.Process(x)
	x = c.eq.Process(x)
	x = c.rev.Process(x)
	if c.lim.Enabled() {
		x = c.lim.Process(x)
	}
	return x
}

// Trigger restarts the filter envelope alongside a voice trigger.
func (c *Chain) Trigger() {
	c.filter.TriggerEnv()
}

// ReleaseEnv starts the filter envelope release.
func (c *Chain) ReleaseEnv() {
	c.filter.ReleaseEnv()
}

func (c *Chain) Reset() {
	c.dist.Reset()
	c.filter.Reset()
	c.comp.Reset()
	c.eq.Reset()
	c.rev.Reset()
	c.lim.Reset()
	c.lfo.Reset()
}

func (c *Chain) SetDistortion(kind DistortionKind, drive, mix float64, bitDepth int) {
	c.dist.Set(kind, drive, mix, bitDepth)
}

func (c *Chain) SetFilter(typ FilterType, cutoff, q float64) {
	c.filter.Set(typ, cutoff, q)
}

func (c *Chain) SetFilterEnvelope(enabled bool, amount, attack, decay, sustain, release float64) {
	c.filter.SetEnvelope(enabled, amount, attack, decay, sustain, release)
}

func (c *Chain) SetCompressor(enabled bool, thresholdDB, ratio, attackSec, releaseSec, makeupDB float64) {
	c.comp.Set(enabled, thresholdDB, ratio, attackSec, releaseSec, makeupDB)
}

func (c *Chain) SetEQ(lowDB, midDB, highDB, midFreq float64) {
	c.eq.Set(lowDB, midDB, highDB, midFreq)
}

func (c *Chain) SetReverb(enabled bool, decaySec, preDelaySec, mix float64) {
	c.rev.Set(enabled, decaySec, preDelaySec, mix)
}

func (c *Chain) SetLimiter(enabled bool, thresholdDB float64) {
	c.lim.Set(enabled, thresholdDB)
}

// SetLFO configures filter-cutoff modulation. rateHz is derived by the
// caller from tempo and note division.
func (c *Chain) SetLFO(enabled bool, rateHz float64, waveform int, depth float64) {
	c.lfoEnabled = enabled && depth > 0 && rateHz > 0
	c.lfo.Set(depth, rateHz, waveform)
	if !c.lfoEnabled {
		c.filter.SetLFOMod(0)
	}
}

func dbToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
