package drum808

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Preset is the serialized boundary format: a named, categorized full
// parameter aggregate. Malformed payloads are rejected here and never reach
// the engine in a partial state.
type Preset struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Params   SoundParameters `json:"params"`
}

var (
	ErrPresetNoName   = errors.New("preset missing name")
	ErrPresetNoParams = errors.New("preset missing params")
)

// ParsePreset validates and decodes a preset JSON payload. The returned
// preset's parameters are clamped into range.
func ParsePreset(data []byte) (*Preset, error) {
	var raw struct {
		Name     string           `json:"name"`
		Category string           `json:"category"`
		Params   *SoundParameters `json:"params"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse preset: %w", err)
	}
	if raw.Name == "" {
		return nil, ErrPresetNoName
	}
	if raw.Params == nil {
		return nil, ErrPresetNoParams
	}
	p := &Preset{Name: raw.Name, Category: raw.Category, Params: *raw.Params}
	p.Params.Clamp()
	return p, nil
}

// Encode serializes the preset as indented JSON.
func (p *Preset) Encode() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// ApplyPreset replaces the engine's entire parameter set with the preset's.
func (e *Engine) ApplyPreset(p *Preset) {
	e.SetParams(p.Params)
}

// ClassicPreset is the reference 808 kick: E1 sine, soft-clip drive with a
// light mix, limiter at -2 dB.
func ClassicPreset() Preset {
	params := DefaultParameters()
	params.Distortion = DistortionParams{Drive: 0.1, Kind: DistSoftClip, Mix: 0.2, BitDepth: 8}
	params.Limiter = LimiterParams{Enabled: true, Threshold: -2}
	return Preset{Name: "Classic", Category: "kick", Params: params}
}

// PunchyPreset adds a pink-noise click and a faster, harder pitch drop.
func PunchyPreset() Preset {
	params := DefaultParameters()
	params.Oscillator.Note = "G1"
	params.Oscillator.Frequency = NoteFrequency("G1")
	params.PitchEnvelope = PitchEnvelopeParams{StartOffset: 48, Decay: 0.04, Curve: CurveExponential}
	params.AmpEnvelope = AmpEnvelopeParams{Attack: 0.001, Decay: 0.25, Sustain: 0, Release: 0.08}
	params.NoiseLayer = NoiseLayerParams{Enabled: true, Color: NoisePink, Level: 0.4, Attack: 0.0005, Decay: 0.03, FilterFreq: 6000}
	params.Distortion = DistortionParams{Drive: 0.35, Kind: DistHardClip, Mix: 0.5, BitDepth: 8}
	params.Compressor = CompressorParams{Enabled: true, Threshold: -15, Ratio: 4, Attack: 0.002, Release: 0.08, Makeup: 3}
	return Preset{Name: "Punchy", Category: "kick", Params: params}
}

// DeepPreset layers a -2 octave sub under a long, slow sweep.
func DeepPreset() Preset {
	params := DefaultParameters()
	params.Oscillator.Note = "C1"
	params.Oscillator.Frequency = NoteFrequency("C1")
	params.SubOscillator = SubOscillatorParams{Enabled: true, Level: 0.6, Octave: -2, Detune: 0}
	params.PitchEnvelope = PitchEnvelopeParams{StartOffset: 24, Decay: 0.15, Curve: CurveExponential}
	params.AmpEnvelope = AmpEnvelopeParams{Attack: 0.004, Decay: 0.7, Sustain: 0, Release: 0.3}
	params.Filter = FilterParams{Type: FilterLowpass, Frequency: 2500, Resonance: 1.2}
	params.Reverb = ReverbParams{Enabled: true, Decay: 2.5, PreDelay: 0.03, Mix: 0.15}
	return Preset{Name: "Deep", Category: "kick", Params: params}
}

// Presets returns the built-in catalog.
func Presets() []Preset {
	return []Preset{ClassicPreset(), PunchyPreset(), DeepPreset()}
}
