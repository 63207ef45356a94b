package voice

import (
	"math"
	"testing"
)

func kickConfig() Config {
	return Config{
		Waveform:  WaveSine,
		Frequency: 41.2,
		Velocity:  1,
		Pitch:     PitchConfig{StartOffset: 36, Decay: 0.08, Curve: CurveExponential},
		Amp:       ADSRConfig{Attack: 0.002, Decay: 0.4, Sustain: 0, Release: 0.15},
	}
}

func TestVoiceProducesSignal(t *testing.T) {
	v := New(44100, kickConfig())
	v.Trigger()
	var nonZero bool
	for i := 0; i < 5000; i++ {
		if v.Render() != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Fatalf("expected non-zero output after trigger")
	}
}

func TestVoiceDecaysToSilence(t *testing.T) {
	cfg := kickConfig()
	v := New(44100, cfg)
	v.Trigger()
	total := int((cfg.Amp.Attack + cfg.Amp.Decay + cfg.Amp.Release + 0.1) * 44100)
	var last float64
	for i := 0; i < total; i++ {
		last = v.Render()
	}
	if math.Abs(last) > 1e-6 {
		t.Errorf("expected silence after full envelope, got %f", last)
	}
	if v.Active() {
		t.Errorf("voice should be inactive after the release completes")
	}
}

func TestRetriggerWhileReleasingRestartsEnvelope(t *testing.T) {
	v := New(44100, kickConfig())
	v.Trigger()
	// Run into the release tail, then retrigger.
	for i := 0; i < 44100/2; i++ {
		v.Render()
	}
	v.Trigger()
	var peak float64
	for i := 0; i < 5000; i++ {
		s := math.Abs(v.Render())
		if s > peak {
			peak = s
		}
	}
	if peak < 0.05 {
		t.Fatalf("retrigger produced no signal, peak = %f", peak)
	}
}

// Shortening attack+decay below the time a sounding voice has already run
// must still release it: the schedule moved behind the sample counter, so the
// release has to catch up instead of waiting for an exact match.
func TestAutoReleaseAfterEnvelopeShortenedMidHit(t *testing.T) {
	const sr = 44100
	cfg := kickConfig()
	cfg.Amp = ADSRConfig{Attack: 0.01, Decay: 0.5, Sustain: 0.5, Release: 0.05}
	v := New(sr, cfg)
	v.Trigger()
	for i := 0; i < sr/4; i++ {
		v.Render()
	}
	cfg.Amp = ADSRConfig{Attack: 0.001, Decay: 0.001, Sustain: 0.5, Release: 0.05}
	v.SetConfig(cfg)
	var last float64
	for i := 0; i < sr; i++ {
		last = v.Render()
	}
	if v.Active() {
		t.Fatalf("voice still active one second after the shortened attack+decay elapsed")
	}
	if math.Abs(last) > 1e-6 {
		t.Errorf("output = %f, want silence after release", last)
	}
}

func TestRampFreqLinear(t *testing.T) {
	cfg := kickConfig()
	cfg.Pitch = PitchConfig{StartOffset: 12, Decay: 0.1, Curve: CurveLinear}
	v := New(44100, cfg)
	got := v.rampFreq(200, 100, 0.05)
	if math.Abs(got-150) > 1e-9 {
		t.Errorf("linear ramp midpoint = %f, want 150", got)
	}
	if got := v.rampFreq(200, 100, 0.2); got != 100 {
		t.Errorf("ramp past decay = %f, want 100", got)
	}
}

func TestRampFreqExponentialFloorsTarget(t *testing.T) {
	cfg := kickConfig()
	cfg.Pitch = PitchConfig{StartOffset: 12, Decay: 0.1, Curve: CurveExponential}
	v := New(44100, cfg)
	got := v.rampFreq(200, 0, 0.05)
	if math.IsNaN(got) || math.IsInf(got, 0) || got <= 0 {
		t.Fatalf("exponential ramp to zero target must stay finite positive, got %f", got)
	}
}

func TestSubOctaveScale(t *testing.T) {
	if got := subOctaveScale(-1); got != 0.5 {
		t.Errorf("octave -1 scale = %f, want 0.5", got)
	}
	if got := subOctaveScale(-2); got != 0.25 {
		t.Errorf("octave -2 scale = %f, want 0.25", got)
	}
}

// With no pitch sweep and no detune, the -2 octave sub must sit at exactly a
// quarter of the main frequency. Measured from zero crossings of a sub-only
// render at steady state.
func TestSubQuarterFrequencyAtSteadyState(t *testing.T) {
	const sr = 44100
	cfg := Config{
		Waveform:  WaveSine,
		Frequency: 200,
		Velocity:  0, // silence the main oscillator
		Pitch:     PitchConfig{StartOffset: 0, Decay: 0.01, Curve: CurveLinear},
		Amp:       ADSRConfig{Attack: 0.001, Decay: 2, Sustain: 1, Release: 2},
		Sub:       SubConfig{Enabled: true, Level: 1, Octave: -2, Detune: 0},
	}
	v := New(sr, cfg)
	v.Trigger()
	// Skip past attack and pitch ramp.
	for i := 0; i < sr/10; i++ {
		v.Render()
	}
	crossings := 0
	prev := v.Render()
	for i := 0; i < sr; i++ {
		s := v.Render()
		if (prev <= 0 && s > 0) || (prev >= 0 && s < 0) {
			crossings++
		}
		prev = s
	}
	gotFreq := float64(crossings) / 2
	if math.Abs(gotFreq-50) > 1 {
		t.Errorf("sub frequency = %f Hz, want 50 (quarter of 200)", gotFreq)
	}
}

func TestNoiseLayerDeterministic(t *testing.T) {
	cfg := kickConfig()
	cfg.Velocity = 0
	cfg.Noise = NoiseConfig{Enabled: true, Color: NoiseWhite, Level: 1, Attack: 0.001, Decay: 0.05, FilterFreq: 8000}
	a := New(44100, cfg)
	b := New(44100, cfg)
	a.Trigger()
	b.Trigger()
	for i := 0; i < 4096; i++ {
		sa, sb := a.Render(), b.Render()
		if sa != sb {
			t.Fatalf("noise diverged at sample %d: %f vs %f", i, sa, sb)
		}
	}
}

func TestDisabledLayersContributeZero(t *testing.T) {
	cfg := kickConfig()
	cfg.Velocity = 0 // main gated
	cfg.Sub = SubConfig{Enabled: false, Level: 1, Octave: -1}
	cfg.Noise = NoiseConfig{Enabled: false, Color: NoiseWhite, Level: 1, Attack: 0.001, Decay: 0.05, FilterFreq: 8000}
	v := New(44100, cfg)
	v.Trigger()
	for i := 0; i < 4096; i++ {
		if s := v.Render(); s != 0 {
			t.Fatalf("disabled layers must contribute exactly zero, got %f at %d", s, i)
		}
	}
}

func TestADSRSustainHoldsLevel(t *testing.T) {
	e := NewADSR(1000, ADSRConfig{Attack: 0.01, Decay: 0.01, Sustain: 0.5, Release: 0.01})
	e.Trigger()
	for i := 0; i < 100; i++ {
		e.Next()
	}
	if got := e.Level(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("sustain level = %f, want 0.5", got)
	}
	e.Release()
	for i := 0; i < 100; i++ {
		e.Next()
	}
	if e.Active() {
		t.Errorf("envelope should be idle after release")
	}
}
