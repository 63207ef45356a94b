// Package lfo provides the low-frequency oscillator that modulates the
// filter cutoff, with rates expressed as tempo-synced note divisions.
package lfo

import "math"

// Waveform constants for the cutoff LFO.
const (
	WaveSine = iota
	WaveTriangle
	WaveSquare
	WaveSaw
)

// LFO is a phase-accumulating low-frequency oscillator producing per-sample
// modulation values in [-depth, +depth].
type LFO struct {
	depth    float64
	rateHz   float64
	waveform int
	phase    float64 // [0, 1)
}

// Set configures the LFO parameters.
func (l *LFO) Set(depth, rateHz float64, waveform int) {
	l.depth = depth
	l.rateHz = rateHz
	if waveform < WaveSine || waveform > WaveSaw {
		waveform = WaveSine
	}
	l.waveform = waveform
}

// Sample advances the LFO by one sample and returns a value in
// [-depth, +depth]. Returns 0 if depth or rate is zero.
func (l *LFO) Sample(sampleRate float64) float64 {
	if l.depth == 0 || l.rateHz == 0 || sampleRate == 0 {
		return 0
	}

	var waveVal float64
	switch l.waveform {
	case WaveTriangle:
		if l.phase < 0.5 {
			waveVal = 4*l.phase - 1
		} else {
			waveVal = 3 - 4*l.phase
		}
	case WaveSquare:
		if l.phase < 0.5 {
			waveVal = 1
		} else {
			waveVal = -1
		}
	case WaveSaw:
		waveVal = 1 - 2*l.phase
	default: // WaveSine
		waveVal = math.Sin(2 * math.Pi * l.phase)
	}

	l.phase += l.rateHz / sampleRate
	for l.phase >= 1 {
		l.phase -= 1
	}
	return waveVal * l.depth
}

// Active returns true if the LFO has non-zero depth and rate.
func (l *LFO) Active() bool {
	return l.depth != 0 && l.rateHz != 0
}

// Reset zeros the LFO phase.
func (l *LFO) Reset() {
	l.phase = 0
}

// divisionBeats maps a note division to its length in quarter-note beats.
var divisionBeats = map[string]float64{
	"1/1":  4,
	"1/2":  2,
	"1/4":  1,
	"1/8":  0.5,
	"1/8.": 0.75,
	"1/8t": 1.0 / 3,
	"1/16": 0.25,
	"1/32": 0.125,
}

// RateForDivision converts a tempo in BPM and a note division into an LFO
// rate in Hz. Unknown divisions fall back to eighth notes.
func RateForDivision(bpm float64, division string) float64 {
	if bpm <= 0 {
		return 0
	}
	beats, ok := divisionBeats[division]
	if !ok {
		beats = 0.5
	}
	return bpm / 60 / beats
}
