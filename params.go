package drum808

// SoundParameters is the complete, canonical parameter set for one drum voice
// and its effects chain. It is the unit of save/load/compare: presets carry a
// full aggregate, the engine mutates it only through the per-section update
// calls, and the offline renderer consumes an immutable snapshot of it.
type SoundParameters struct {
	Oscillator     OscillatorParams     `json:"oscillator"`
	SubOscillator  SubOscillatorParams  `json:"subOscillator"`
	NoiseLayer     NoiseLayerParams     `json:"noiseLayer"`
	PitchEnvelope  PitchEnvelopeParams  `json:"pitchEnvelope"`
	AmpEnvelope    AmpEnvelopeParams    `json:"ampEnvelope"`
	Distortion     DistortionParams     `json:"distortion"`
	Filter         FilterParams         `json:"filter"`
	FilterEnvelope FilterEnvelopeParams `json:"filterEnvelope"`
	Compressor     CompressorParams     `json:"compressor"`
	EQ             EQParams             `json:"eq"`
	Reverb         ReverbParams         `json:"reverb"`
	Limiter        LimiterParams        `json:"limiter"`
	LFO            LFOParams            `json:"lfo"`
	MasterVolume   float64              `json:"masterVolume"` // dB, -60..0
}

type Waveform string

const (
	WaveSine     Waveform = "sine"
	WaveTriangle Waveform = "triangle"
)

type OscillatorParams struct {
	Waveform  Waveform `json:"waveform"`
	Note      string   `json:"note"`      // e.g. "E1"
	Frequency float64  `json:"frequency"` // Hz, resolved from Note
	Velocity  float64  `json:"velocity"`  // 0..1
}

type SubOscillatorParams struct {
	Enabled bool    `json:"enabled"`
	Level   float64 `json:"level"`  // 0..1
	Octave  int     `json:"octave"` // -1 or -2
	Detune  float64 `json:"detune"` // cents, -50..50
}

type NoiseColor string

const (
	NoiseWhite NoiseColor = "white"
	NoisePink  NoiseColor = "pink"
)

type NoiseLayerParams struct {
	Enabled    bool       `json:"enabled"`
	Color      NoiseColor `json:"color"`
	Level      float64    `json:"level"`      // 0..1
	Attack     float64    `json:"attack"`     // seconds
	Decay      float64    `json:"decay"`      // seconds
	FilterFreq float64    `json:"filterFreq"` // lowpass cutoff, Hz
}

type PitchCurve string

const (
	CurveLinear      PitchCurve = "linear"
	CurveExponential PitchCurve = "exponential"
)

type PitchEnvelopeParams struct {
	StartOffset float64    `json:"startOffset"` // semitones above target, 0..48
	Decay       float64    `json:"decay"`       // seconds
	Curve       PitchCurve `json:"curve"`
}

type AmpEnvelopeParams struct {
	Attack  float64 `json:"attack"`  // seconds
	Decay   float64 `json:"decay"`   // seconds
	Sustain float64 `json:"sustain"` // level, 0..1
	Release float64 `json:"release"` // seconds
}

type DistortionKind string

const (
	DistSoftClip   DistortionKind = "softclip"
	DistHardClip   DistortionKind = "hardclip"
	DistWaveshaper DistortionKind = "waveshaper"
	DistTape       DistortionKind = "tape"
	DistBitCrush   DistortionKind = "bitcrush"
)

type DistortionParams struct {
	Drive    float64        `json:"drive"` // 0..1
	Kind     DistortionKind `json:"kind"`
	Mix      float64        `json:"mix"`      // dry/wet, 0..1
	BitDepth int            `json:"bitDepth"` // 1..16, bitcrush only
}

type FilterType string

const (
	FilterLowpass  FilterType = "lowpass"
	FilterHighpass FilterType = "highpass"
	FilterBandpass FilterType = "bandpass"
)

type FilterParams struct {
	Type      FilterType `json:"type"`
	Frequency float64    `json:"frequency"` // cutoff, Hz
	Resonance float64    `json:"resonance"` // Q
}

type FilterEnvelopeParams struct {
	Enabled bool    `json:"enabled"`
	Amount  float64 `json:"amount"` // sweep above static cutoff, Hz
	Attack  float64 `json:"attack"`
	Decay   float64 `json:"decay"`
	Sustain float64 `json:"sustain"`
	Release float64 `json:"release"`
}

type CompressorParams struct {
	Enabled   bool    `json:"enabled"`
	Threshold float64 `json:"threshold"` // dB
	Ratio     float64 `json:"ratio"`
	Attack    float64 `json:"attack"`  // seconds
	Release   float64 `json:"release"` // seconds
	Makeup    float64 `json:"makeup"`  // dB
}

type EQParams struct {
	LowGain  float64 `json:"lowGain"`  // dB
	MidGain  float64 `json:"midGain"`  // dB
	HighGain float64 `json:"highGain"` // dB
	MidFreq  float64 `json:"midFreq"`  // mid band center, Hz
}

type ReverbParams struct {
	Enabled  bool    `json:"enabled"`
	Decay    float64 `json:"decay"`    // 0.1..10 seconds
	PreDelay float64 `json:"preDelay"` // 0..0.1 seconds
	Mix      float64 `json:"mix"`      // 0..1
}

type LimiterParams struct {
	Enabled   bool    `json:"enabled"`
	Threshold float64 `json:"threshold"` // dB, -12..0
}

type LFOWaveform string

const (
	LFOSine     LFOWaveform = "sine"
	LFOTriangle LFOWaveform = "triangle"
	LFOSquare   LFOWaveform = "square"
	LFOSaw      LFOWaveform = "saw"
)

type LFOParams struct {
	Enabled  bool        `json:"enabled"`
	Tempo    float64     `json:"tempo"`    // BPM
	Division string      `json:"division"` // e.g. "1/4", "1/8", "1/16"
	Waveform LFOWaveform `json:"waveform"`
	Depth    float64     `json:"depth"` // 0..1
	Target   string      `json:"target"`
}

// DefaultParameters returns the classic 808 kick: sine at E1 with a fast
// exponential pitch drop, sub and noise off, a transparent effects chain.
func DefaultParameters() SoundParameters {
	return SoundParameters{
		Oscillator: OscillatorParams{
			Waveform:  WaveSine,
			Note:      "E1",
			Frequency: NoteFrequency("E1"),
			Velocity:  1,
		},
		SubOscillator: SubOscillatorParams{Enabled: false, Level: 0.5, Octave: -1, Detune: 0},
		NoiseLayer: NoiseLayerParams{
			Enabled: false, Color: NoiseWhite, Level: 0.3,
			Attack: 0.001, Decay: 0.05, FilterFreq: 8000,
		},
		PitchEnvelope: PitchEnvelopeParams{StartOffset: 36, Decay: 0.08, Curve: CurveExponential},
		AmpEnvelope:   AmpEnvelopeParams{Attack: 0.002, Decay: 0.4, Sustain: 0, Release: 0.15},
		Distortion:    DistortionParams{Drive: 0, Kind: DistSoftClip, Mix: 0, BitDepth: 8},
		Filter:        FilterParams{Type: FilterLowpass, Frequency: 8000, Resonance: 0.707},
		FilterEnvelope: FilterEnvelopeParams{
			Enabled: false, Amount: 2000,
			Attack: 0.005, Decay: 0.2, Sustain: 0, Release: 0.1,
		},
		Compressor: CompressorParams{
			Enabled: false, Threshold: -20, Ratio: 4,
			Attack: 0.005, Release: 0.1, Makeup: 0,
		},
		EQ:           EQParams{LowGain: 0, MidGain: 0, HighGain: 0, MidFreq: 1000},
		Reverb:       ReverbParams{Enabled: false, Decay: 1.5, PreDelay: 0.02, Mix: 0.2},
		Limiter:      LimiterParams{Enabled: true, Threshold: -1},
		LFO:          LFOParams{Enabled: false, Tempo: 120, Division: "1/8", Waveform: LFOSine, Depth: 0.5, Target: "filterCutoff"},
		MasterVolume: -6,
	}
}

// Clamp normalizes every numeric field into its documented range and every
// enum field to a valid member. The engine itself assumes already-valid input;
// this is the boundary check callers apply before handing parameters over.
func (p *SoundParameters) Clamp() {
	p.Oscillator.Velocity = clampF(p.Oscillator.Velocity, 0, 1)
	if p.Oscillator.Frequency <= 0 {
		p.Oscillator.Frequency = NoteFrequency(p.Oscillator.Note)
	}
	p.Oscillator.Frequency = clampF(p.Oscillator.Frequency, 10, 2000)
	if p.Oscillator.Waveform != WaveTriangle {
		p.Oscillator.Waveform = WaveSine
	}

	p.SubOscillator.Level = clampF(p.SubOscillator.Level, 0, 1)
	if p.SubOscillator.Octave != -2 {
		p.SubOscillator.Octave = -1
	}
	p.SubOscillator.Detune = clampF(p.SubOscillator.Detune, -50, 50)

	if p.NoiseLayer.Color != NoisePink {
		p.NoiseLayer.Color = NoiseWhite
	}
	p.NoiseLayer.Level = clampF(p.NoiseLayer.Level, 0, 1)
	p.NoiseLayer.Attack = clampF(p.NoiseLayer.Attack, 0, 1)
	p.NoiseLayer.Decay = clampF(p.NoiseLayer.Decay, 0.001, 2)
	p.NoiseLayer.FilterFreq = clampF(p.NoiseLayer.FilterFreq, 20, 20000)

	p.PitchEnvelope.StartOffset = clampF(p.PitchEnvelope.StartOffset, 0, 48)
	p.PitchEnvelope.Decay = clampF(p.PitchEnvelope.Decay, 0.001, 2)
	if p.PitchEnvelope.Curve != CurveLinear {
		p.PitchEnvelope.Curve = CurveExponential
	}

	p.AmpEnvelope.Attack = clampF(p.AmpEnvelope.Attack, 0.0005, 2)
	p.AmpEnvelope.Decay = clampF(p.AmpEnvelope.Decay, 0.001, 4)
	p.AmpEnvelope.Sustain = clampF(p.AmpEnvelope.Sustain, 0, 1)
	p.AmpEnvelope.Release = clampF(p.AmpEnvelope.Release, 0.001, 4)

	p.Distortion.Drive = clampF(p.Distortion.Drive, 0, 1)
	p.Distortion.Mix = clampF(p.Distortion.Mix, 0, 1)
	p.Distortion.BitDepth = clampI(p.Distortion.BitDepth, 1, 16)
	switch p.Distortion.Kind {
	case DistSoftClip, DistHardClip, DistWaveshaper, DistTape, DistBitCrush:
	default:
		p.Distortion.Kind = DistSoftClip
	}

	switch p.Filter.Type {
	case FilterLowpass, FilterHighpass, FilterBandpass:
	default:
		p.Filter.Type = FilterLowpass
	}
	p.Filter.Frequency = clampF(p.Filter.Frequency, 20, 20000)
	p.Filter.Resonance = clampF(p.Filter.Resonance, 0.1, 30)

	p.FilterEnvelope.Amount = clampF(p.FilterEnvelope.Amount, 0, 10000)
	p.FilterEnvelope.Attack = clampF(p.FilterEnvelope.Attack, 0.0005, 2)
	p.FilterEnvelope.Decay = clampF(p.FilterEnvelope.Decay, 0.001, 4)
	p.FilterEnvelope.Sustain = clampF(p.FilterEnvelope.Sustain, 0, 1)
	p.FilterEnvelope.Release = clampF(p.FilterEnvelope.Release, 0.001, 4)

	p.Compressor.Threshold = clampF(p.Compressor.Threshold, -60, 0)
	p.Compressor.Ratio = clampF(p.Compressor.Ratio, 1, 20)
	p.Compressor.Attack = clampF(p.Compressor.Attack, 0.0005, 1)
	p.Compressor.Release = clampF(p.Compressor.Release, 0.001, 2)
	p.Compressor.Makeup = clampF(p.Compressor.Makeup, 0, 24)

	p.EQ.LowGain = clampF(p.EQ.LowGain, -24, 24)
	p.EQ.MidGain = clampF(p.EQ.MidGain, -24, 24)
	p.EQ.HighGain = clampF(p.EQ.HighGain, -24, 24)
	p.EQ.MidFreq = clampF(p.EQ.MidFreq, 200, 8000)

	p.Reverb.Decay = clampF(p.Reverb.Decay, 0.1, 10)
	p.Reverb.PreDelay = clampF(p.Reverb.PreDelay, 0, 0.1)
	p.Reverb.Mix = clampF(p.Reverb.Mix, 0, 1)

	p.Limiter.Threshold = clampF(p.Limiter.Threshold, -12, 0)

	p.LFO.Tempo = clampF(p.LFO.Tempo, 20, 300)
	p.LFO.Depth = clampF(p.LFO.Depth, 0, 1)
	switch p.LFO.Waveform {
	case LFOSine, LFOTriangle, LFOSquare, LFOSaw:
	default:
		p.LFO.Waveform = LFOSine
	}

	p.MasterVolume = clampF(p.MasterVolume, -60, 0)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
