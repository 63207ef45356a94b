package effects

import "math"

// Compressor implements basic mono dynamic range compression. When disabled
// it stays in the signal path as an identity pass (ratio forced to 1:1,
// makeup to unity) so toggling it never rewires the chain; the envelope
// follower keeps running so re-enabling does not pump.
type Compressor struct {
	sampleRate float64
	enabled    bool
	threshold  float64 // linear
	ratio      float64
	attack     float64 // coefficient
	release    float64 // coefficient
	makeup     float64 // linear
	env        float64
}

func NewCompressor(sampleRate float64) *Compressor {
	c := &Compressor{sampleRate: sampleRate}
	c.Set(false, -20, 4, 0.005, 0.1, 0)
	return c
}

func (c *Compressor) Set(enabled bool, thresholdDB, ratio, attackSec, releaseSec, makeupDB float64) {
	c.enabled = enabled
	c.threshold = dbToLinear(thresholdDB)
	if ratio < 1 {
		ratio = 1
	}
	c.ratio = ratio
	c.attack = envCoeff(attackSec, c.sampleRate)
	c.release = envCoeff(releaseSec, c.sampleRate)
	c.makeup = dbToLinear(makeupDB)
}

func (c *Compressor) Process(x float64) float64 {
	abs := math.Abs(x)
	if abs > c.env {
		c.env += c.attack * (abs - c.env)
	} else {
		c.env += c.release * (abs - c.env)
	}
	if !c.enabled {
		return x
	}
	return x * c.computeGain(c.env) * c.makeup
}

func (c *Compressor) computeGain(env float64) float64 {
	if env <= c.threshold || c.threshold <= 0 || c.ratio <= 1 {
		return 1
	}
	over := env / c.threshold
	return math.Pow(over, 1/c.ratio-1)
}

func (c *Compressor) Reset() {
	c.env = 0
}

func envCoeff(seconds, sampleRate float64) float64 {
	frames := seconds * sampleRate
	if frames < 1 {
		frames = 1
	}
	return 1 - math.Exp(-1/frames)
}
