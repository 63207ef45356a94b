package drum808

import (
	"math"

	"github.com/cbegin/drum808-go/internal/effects"
	"github.com/cbegin/drum808-go/internal/lfo"
	"github.com/cbegin/drum808-go/internal/voice"
)

// voiceConfig maps the parameter aggregate into the voice graph's config.
// The live engine and the offline renderer both go through this, which is
// what keeps their voices numerically equivalent.
func voiceConfig(p SoundParameters) voice.Config {
	freq := p.Oscillator.Frequency
	if freq <= 0 {
		freq = NoteFrequency(p.Oscillator.Note)
	}
	return voice.Config{
		Waveform:  voiceWaveform(p.Oscillator.Waveform),
		Frequency: freq,
		Velocity:  p.Oscillator.Velocity,
		Pitch: voice.PitchConfig{
			StartOffset: p.PitchEnvelope.StartOffset,
			Decay:       p.PitchEnvelope.Decay,
			Curve:       voiceCurve(p.PitchEnvelope.Curve),
		},
		Amp: voice.ADSRConfig{
			Attack:  p.AmpEnvelope.Attack,
			Decay:   p.AmpEnvelope.Decay,
			Sustain: p.AmpEnvelope.Sustain,
			Release: p.AmpEnvelope.Release,
		},
		Sub: voice.SubConfig{
			Enabled: p.SubOscillator.Enabled,
			Level:   p.SubOscillator.Level,
			Octave:  p.SubOscillator.Octave,
			Detune:  p.SubOscillator.Detune,
		},
		Noise: voice.NoiseConfig{
			Enabled:    p.NoiseLayer.Enabled,
			Color:      voiceNoiseColor(p.NoiseLayer.Color),
			Level:      p.NoiseLayer.Level,
			Attack:     p.NoiseLayer.Attack,
			Decay:      p.NoiseLayer.Decay,
			FilterFreq: p.NoiseLayer.FilterFreq,
		},
	}
}

// configureChain pushes every effects section into the chain's stages.
func configureChain(c *effects.Chain, p SoundParameters) {
	c.SetDistortion(distortionKind(p.Distortion.Kind), p.Distortion.Drive, p.Distortion.Mix, p.Distortion.BitDepth)
	c.SetFilter(filterType(p.Filter.Type), p.Filter.Frequency, p.Filter.Resonance)
	c.SetFilterEnvelope(p.FilterEnvelope.Enabled, p.FilterEnvelope.Amount,
		p.FilterEnvelope.Attack, p.FilterEnvelope.Decay, p.FilterEnvelope.Sustain, p.FilterEnvelope.Release)
	c.SetCompressor(p.Compressor.Enabled, p.Compressor.Threshold, p.Compressor.Ratio,
		p.Compressor.Attack, p.Compressor.Release, p.Compressor.Makeup)
	c.SetEQ(p.EQ.LowGain, p.EQ.MidGain, p.EQ.HighGain, p.EQ.MidFreq)
	c.SetReverb(p.Reverb.Enabled, p.Reverb.Decay, p.Reverb.PreDelay, p.Reverb.Mix)
	c.SetLimiter(p.Limiter.Enabled, p.Limiter.Threshold)
	applyLFO(c, p)
}

func applyLFO(c *effects.Chain, p SoundParameters) {
	c.SetLFO(p.LFO.Enabled, lfo.RateForDivision(p.LFO.Tempo, p.LFO.Division), lfoWaveform(p.LFO.Waveform), p.LFO.Depth)
}

func voiceWaveform(w Waveform) voice.Waveform {
	if w == WaveTriangle {
		return voice.WaveTriangle
	}
	return voice.WaveSine
}

func voiceCurve(c PitchCurve) voice.PitchCurve {
	if c == CurveLinear {
		return voice.CurveLinear
	}
	return voice.CurveExponential
}

func voiceNoiseColor(c NoiseColor) voice.NoiseColor {
	if c == NoisePink {
		return voice.NoisePink
	}
	return voice.NoiseWhite
}

func distortionKind(k DistortionKind) effects.DistortionKind {
	switch k {
	case DistHardClip:
		return effects.HardClip
	case DistWaveshaper:
		return effects.Waveshaper
	case DistTape:
		return effects.Tape
	case DistBitCrush:
		return effects.BitCrush
	default:
		return effects.SoftClip
	}
}

func filterType(t FilterType) effects.FilterType {
	switch t {
	case FilterHighpass:
		return effects.FilterHP
	case FilterBandpass:
		return effects.FilterBP
	default:
		return effects.FilterLP
	}
}

func lfoWaveform(w LFOWaveform) int {
	switch w {
	case LFOTriangle:
		return lfo.WaveTriangle
	case LFOSquare:
		return lfo.WaveSquare
	case LFOSaw:
		return lfo.WaveSaw
	default:
		return lfo.WaveSine
	}
}

func dbToGain(db float64) float64 {
	return math.Pow(10, db/20)
}
