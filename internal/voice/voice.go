// Package voice generates the raw drum signal: a pitched primary oscillator,
// an optional sub-oscillator an octave or two down, and a filtered noise
// transient, each shaped by its own envelope and mixed to one mono bus.
package voice

import "math"

const twoPi = math.Pi * 2

// Waveform selects the primary oscillator shape.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveTriangle
)

// PitchCurve selects how the pitch envelope ramps down to the base frequency.
type PitchCurve int

const (
	CurveLinear PitchCurve = iota
	CurveExponential
)

// Exponential ramps floor the target frequency here so a zero or near-zero
// endpoint cannot degenerate the ratio-based sweep.
const minRampFreq = 0.01

// PitchConfig describes the downward pitch sweep fired on every trigger.
type PitchConfig struct {
	StartOffset float64 // semitones above the base frequency
	Decay       float64 // seconds to reach the base frequency
	Curve       PitchCurve
}

// SubConfig parameterizes the sub-oscillator layer (always a sine).
type SubConfig struct {
	Enabled bool
	Level   float64 // 0..1
	Octave  int     // -1 or -2
	Detune  float64 // cents, -50..50
}

// Config is the complete voice description. The engine maps its parameter
// store into this on every update; the offline renderer builds one from a
// snapshot.
type Config struct {
	Waveform  Waveform
	Frequency float64 // resolved base frequency, Hz
	Velocity  float64 // 0..1
	Pitch     PitchConfig
	Amp       ADSRConfig
	Sub       SubConfig
	Noise     NoiseConfig
}

// Voice is one monophonic drum voice. Render produces one sample at a time;
// Trigger restarts the envelopes and pitch ramp in place, so retriggering
// while a previous hit is still releasing is always safe.
type Voice struct {
	sampleRate float64
	cfg        Config

	amp      *ADSR
	noiseEnv *ADSR
	noise    *noiseSource

	mainPhase float64
	subPhase  float64

	n         int64 // samples since trigger
	releaseAt int64 // sample index where the auto-release fires
	triggered bool
}

func New(sampleRate int, cfg Config) *Voice {
	v := &Voice{
		sampleRate: float64(sampleRate),
		amp:        NewADSR(float64(sampleRate), cfg.Amp),
		noiseEnv:   NewADSR(float64(sampleRate), ADSRConfig{}),
		noise:      newNoiseSource(float64(sampleRate)),
	}
	v.SetConfig(cfg)
	return v
}

// SetConfig applies a new parameter set. Envelope levels and oscillator
// phases are preserved so live edits do not interrupt a sounding voice.
func (v *Voice) SetConfig(cfg Config) {
	v.cfg = cfg
	v.amp.Configure(cfg.Amp)
	v.noiseEnv.Configure(ADSRConfig{
		Attack:  cfg.Noise.Attack,
		Decay:   cfg.Noise.Decay,
		Sustain: 0,
		Release: cfg.Noise.Decay,
	})
	v.noise.configure(cfg.Noise.Color, cfg.Noise.FilterFreq)
	v.releaseAt = int64((cfg.Amp.Attack + cfg.Amp.Decay) * v.sampleRate)
}

// Trigger fires the voice: envelopes restart from their current levels and
// the pitch ramp restarts from the configured offset. The release is
// scheduled at attack+decay, matching the fixed-hold behavior of the drum.
func (v *Voice) Trigger() {
	v.n = 0
	v.triggered = true
	v.amp.Trigger()
	if v.cfg.Noise.Enabled {
		v.noise.reset()
		v.noiseEnv.Trigger()
	}
}

// Release starts the amplitude release immediately. Normally the voice
// auto-releases at attack+decay; this exists for note-off driven callers.
func (v *Voice) Release() {
	v.amp.Release()
}

// Active reports whether the voice is still producing signal.
func (v *Voice) Active() bool {
	return v.triggered && (v.amp.Active() || v.noiseEnv.Active())
}

// Render produces the next mono sample.
func (v *Voice) Render() float64 {
	if !v.triggered {
		return 0
	}
	t := float64(v.n) / v.sampleRate

	// SetConfig can move releaseAt behind an already-running voice, so this
	// must catch up rather than match exactly. Release is idempotent.
	if v.n >= v.releaseAt {
		v.amp.Release()
	}
	env := v.amp.Next()

	base := v.cfg.Frequency
	start := base * math.Pow(2, v.cfg.Pitch.StartOffset/12)
	mainFreq := v.rampFreq(start, base, t)
	v.mainPhase += mainFreq / v.sampleRate
	if v.mainPhase >= 1 {
		v.mainPhase -= 1
	}
	main := v.oscSample(v.mainPhase)

	var sub float64
	subGain := 0.0
	if v.cfg.Sub.Enabled {
		subGain = v.cfg.Sub.Level
		mul := subOctaveScale(v.cfg.Sub.Octave) * math.Pow(2, v.cfg.Sub.Detune/1200)
		subFreq := v.rampFreq(start*mul, base*mul, t)
		v.subPhase += subFreq / v.sampleRate
		if v.subPhase >= 1 {
			v.subPhase -= 1
		}
		sub = math.Sin(twoPi * v.subPhase)
	}

	var noise float64
	noiseGain := 0.0
	if v.cfg.Noise.Enabled {
		noiseGain = v.cfg.Noise.Level
		noise = v.noise.next() * v.noiseEnv.Next()
	}

	v.n++
	vel := v.cfg.Velocity
	return main*env*vel + sub*env*subGain + noise*noiseGain
}

func (v *Voice) oscSample(phase float64) float64 {
	switch v.cfg.Waveform {
	case WaveTriangle:
		return 2*math.Abs(2*phase-1) - 1
	default:
		return math.Sin(twoPi * phase)
	}
}

// rampFreq evaluates the pitch envelope at time t: from start down to end
// over the configured decay, then flat at end.
func (v *Voice) rampFreq(start, end, t float64) float64 {
	d := v.cfg.Pitch.Decay
	if t >= d || d <= 0 || start == end {
		return end
	}
	switch v.cfg.Pitch.Curve {
	case CurveLinear:
		return start + (end-start)*(t/d)
	default:
		s := math.Max(start, minRampFreq)
		e := math.Max(end, minRampFreq)
		return s * math.Pow(e/s, t/d)
	}
}

func subOctaveScale(octave int) float64 {
	if octave == -2 {
		return 0.25
	}
	return 0.5
}

func onePoleAlpha(cutoff, sampleRate float64) float64 {
	if cutoff <= 0 || cutoff >= sampleRate/2 {
		return 0
	}
	rc := 1.0 / (twoPi * cutoff)
	dt := 1.0 / sampleRate
	return dt / (rc + dt)
}
