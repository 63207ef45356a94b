package effects

import "math"

// EQ3Band is a mono 3-band equalizer. The low/high crossovers sit an octave
// either side of the mid center frequency; gains are specified in dB and
// neutral at 0 dB, so there is no enable flag.
type EQ3Band struct {
	sampleRate float64
	lowGain    float64 // linear
	midGain    float64
	highGain   float64
	lpAlpha    float64
	hpAlpha    float64
	lp         float64 // lowpass state
	hp         float64 // highpass state
}

func NewEQ3Band(sampleRate float64) *EQ3Band {
	eq := &EQ3Band{sampleRate: sampleRate}
	eq.Set(0, 0, 0, 1000)
	return eq
}

func (eq *EQ3Band) Set(lowDB, midDB, highDB, midFreq float64) {
	eq.lowGain = dbToLinear(lowDB)
	eq.midGain = dbToLinear(midDB)
	eq.highGain = dbToLinear(highDB)
	if midFreq < 40 {
		midFreq = 40
	}
	dt := 1 / eq.sampleRate
	lpRC := 1 / (2 * math.Pi * (midFreq / 2))
	hpRC := 1 / (2 * math.Pi * (midFreq * 2))
	eq.lpAlpha = dt / (lpRC + dt)
	eq.hpAlpha = dt / (hpRC + dt)
}

func (eq *EQ3Band) Process(x float64) float64 {
	eq.lp += eq.lpAlpha * (x - eq.lp)
	low := eq.lp

	eq.hp += eq.hpAlpha * (x - eq.hp)
	high := x - eq.hp

	mid := x - low - high
	return low*eq.lowGain + mid*eq.midGain + high*eq.highGain
}

func (eq *EQ3Band) Reset() {
	eq.lp = 0
	eq.hp = 0
}
