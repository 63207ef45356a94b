package analyzer

import (
	"math"
	"testing"
)

func TestWaveformReturnsMostRecentSamples(t *testing.T) {
	a := New()
	a.Tap([]float64{1, 2, 3, 4, 5})
	got := a.Waveform(3)
	want := []float64{3, 4, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Waveform(3) = %v, want %v", got, want)
		}
	}
}

func TestWaveformPadsWithZerosBeforeFill(t *testing.T) {
	a := New()
	a.Tap([]float64{7})
	got := a.Waveform(4)
	want := []float64{0, 0, 0, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Waveform(4) = %v, want %v", got, want)
		}
	}
}

func TestWaveformWrapsRing(t *testing.T) {
	a := New()
	buf := make([]float64, defaultRingLen)
	for i := range buf {
		buf[i] = float64(i)
	}
	a.Tap(buf)
	a.Tap([]float64{-1, -2})
	got := a.Waveform(3)
	want := []float64{float64(defaultRingLen - 1), -1, -2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after wrap Waveform(3) = %v, want %v", got, want)
		}
	}
	if a.Total() != int64(defaultRingLen+2) {
		t.Errorf("Total = %d, want %d", a.Total(), defaultRingLen+2)
	}
}

func TestSpectrumPeakTracksInputFrequency(t *testing.T) {
	const (
		sampleRate = 44100.0
		fftSize    = 4096
	)
	a := New()
	buf := make([]float64, fftSize)
	freq := 1000.0
	for i := range buf {
		buf[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}
	a.Tap(buf)

	spectrum := a.Spectrum(fftSize)
	if len(spectrum) != fftSize/2+1 {
		t.Fatalf("spectrum length = %d, want %d", len(spectrum), fftSize/2+1)
	}
	peak := 0
	for i, m := range spectrum {
		if m > spectrum[peak] {
			peak = i
		}
	}
	peakFreq := float64(peak) * sampleRate / fftSize
	if math.Abs(peakFreq-freq) > sampleRate/fftSize*2 {
		t.Errorf("spectrum peak at %f Hz, want near %f", peakFreq, freq)
	}
}
