// Package analyzer passively observes the output bus for visualization. The
// tap copies samples into a ring buffer on the audio thread; readers take
// best-effort snapshots at their own rate. Neither view is authoritative;
// a read that straddles a buffer boundary just shows a slightly torn frame.
package analyzer

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/maddyblue/go-dsp/fft"
)

const defaultRingLen = 1 << 15

// Analyzer holds the mono ring buffer both views read from.
type Analyzer struct {
	mu       sync.Mutex
	ring     []float64
	writePos int
	total    int64
}

func New() *Analyzer {
	return &Analyzer{ring: make([]float64, defaultRingLen)}
}

// Tap appends one processed buffer. Called from the audio thread; the
// critical section is a plain copy.
func (a *Analyzer) Tap(samples []float64) {
	a.mu.Lock()
	for _, s := range samples {
		a.ring[a.writePos] = s
		a.writePos = (a.writePos + 1) % len(a.ring)
		a.total++
	}
	a.mu.Unlock()
}

// Total returns the number of samples tapped since creation.
func (a *Analyzer) Total() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}

// Waveform returns the most recent n samples, oldest first. If fewer than n
// samples have been tapped the leading entries are zero.
func (a *Analyzer) Waveform(n int) []float64 {
	if n > len(a.ring) {
		n = len(a.ring)
	}
	out := make([]float64, n)
	a.mu.Lock()
	start := (a.writePos - n + 2*len(a.ring)) % len(a.ring)
	for i := 0; i < n; i++ {
		out[i] = a.ring[(start+i)%len(a.ring)]
	}
	a.mu.Unlock()
	return out
}

// Spectrum returns the magnitude spectrum of the most recent fftSize
// samples, Hann windowed: fftSize/2+1 bins, linear magnitude.
func (a *Analyzer) Spectrum(fftSize int) []float64 {
	if fftSize < 2 {
		fftSize = 2
	}
	frame := a.Waveform(fftSize)
	for i := range frame {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(fftSize-1)))
		frame[i] *= w
	}
	bins := fft.FFTReal(frame)
	out := make([]float64, fftSize/2+1)
	for i := range out {
		out[i] = cmplx.Abs(bins[i]) / float64(fftSize)
	}
	return out
}
