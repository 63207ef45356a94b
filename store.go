package drum808

import "sync"

// Per-section patch types. A nil field means "keep the current value", so a
// caller only ever specifies the fields it is changing.

type OscillatorPatch struct {
	Waveform  *Waveform `json:"waveform,omitempty"`
	Note      *string   `json:"note,omitempty"`
	Frequency *float64  `json:"frequency,omitempty"`
	Velocity  *float64  `json:"velocity,omitempty"`
}

type SubOscillatorPatch struct {
	Enabled *bool    `json:"enabled,omitempty"`
	Level   *float64 `json:"level,omitempty"`
	Octave  *int     `json:"octave,omitempty"`
	Detune  *float64 `json:"detune,omitempty"`
}

type NoiseLayerPatch struct {
	Enabled    *bool       `json:"enabled,omitempty"`
	Color      *NoiseColor `json:"color,omitempty"`
	Level      *float64    `json:"level,omitempty"`
	Attack     *float64    `json:"attack,omitempty"`
	Decay      *float64    `json:"decay,omitempty"`
	FilterFreq *float64    `json:"filterFreq,omitempty"`
}

type PitchEnvelopePatch struct {
	StartOffset *float64    `json:"startOffset,omitempty"`
	Decay       *float64    `json:"decay,omitempty"`
	Curve       *PitchCurve `json:"curve,omitempty"`
}

type AmpEnvelopePatch struct {
	Attack  *float64 `json:"attack,omitempty"`
	Decay   *float64 `json:"decay,omitempty"`
	Sustain *float64 `json:"sustain,omitempty"`
	Release *float64 `json:"release,omitempty"`
}

type DistortionPatch struct {
	Drive    *float64        `json:"drive,omitempty"`
	Kind     *DistortionKind `json:"kind,omitempty"`
	Mix      *float64        `json:"mix,omitempty"`
	BitDepth *int            `json:"bitDepth,omitempty"`
}

type FilterPatch struct {
	Type      *FilterType `json:"type,omitempty"`
	Frequency *float64    `json:"frequency,omitempty"`
	Resonance *float64    `json:"resonance,omitempty"`
}

type FilterEnvelopePatch struct {
	Enabled *bool    `json:"enabled,omitempty"`
	Amount  *float64 `json:"amount,omitempty"`
	Attack  *float64 `json:"attack,omitempty"`
	Decay   *float64 `json:"decay,omitempty"`
	Sustain *float64 `json:"sustain,omitempty"`
	Release *float64 `json:"release,omitempty"`
}

type CompressorPatch struct {
	Enabled   *bool    `json:"enabled,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
	Ratio     *float64 `json:"ratio,omitempty"`
	Attack    *float64 `json:"attack,omitempty"`
	Release   *float64 `json:"release,omitempty"`
	Makeup    *float64 `json:"makeup,omitempty"`
}

type EQPatch struct {
	LowGain  *float64 `json:"lowGain,omitempty"`
	MidGain  *float64 `json:"midGain,omitempty"`
	HighGain *float64 `json:"highGain,omitempty"`
	MidFreq  *float64 `json:"midFreq,omitempty"`
}

type ReverbPatch struct {
	Enabled  *bool    `json:"enabled,omitempty"`
	Decay    *float64 `json:"decay,omitempty"`
	PreDelay *float64 `json:"preDelay,omitempty"`
	Mix      *float64 `json:"mix,omitempty"`
}

type LimiterPatch struct {
	Enabled   *bool    `json:"enabled,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
}

type LFOPatch struct {
	Enabled  *bool        `json:"enabled,omitempty"`
	Tempo    *float64     `json:"tempo,omitempty"`
	Division *string      `json:"division,omitempty"`
	Waveform *LFOWaveform `json:"waveform,omitempty"`
	Depth    *float64     `json:"depth,omitempty"`
}

// paramStore holds the one authoritative SoundParameters copy. Merges happen
// under the mutex; Snapshot returns a value copy, so a renderer holding one
// never observes later mutations.
type paramStore struct {
	mu     sync.Mutex
	params SoundParameters
}

func newParamStore(params SoundParameters) *paramStore {
	return &paramStore{params: params}
}

func (s *paramStore) Snapshot() SoundParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

func (s *paramStore) Replace(params SoundParameters) {
	s.mu.Lock()
	s.params = params
	s.mu.Unlock()
}

func (s *paramStore) ApplyOscillator(p OscillatorPatch) SoundParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := &s.params.Oscillator
	if p.Waveform != nil {
		sec.Waveform = *p.Waveform
	}
	if p.Note != nil {
		sec.Note = *p.Note
		sec.Frequency = NoteFrequency(*p.Note)
	}
	if p.Frequency != nil {
		sec.Frequency = *p.Frequency
	}
	if p.Velocity != nil {
		sec.Velocity = *p.Velocity
	}
	return s.params
}

func (s *paramStore) ApplySubOscillator(p SubOscillatorPatch) SoundParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := &s.params.SubOscillator
	if p.Enabled != nil {
		sec.Enabled = *p.Enabled
	}
	if p.Level != nil {
		sec.Level = *p.Level
	}
	if p.Octave != nil {
		sec.Octave = *p.Octave
	}
	if p.Detune != nil {
		sec.Detune = *p.Detune
	}
	return s.params
}

func (s *paramStore) ApplyNoiseLayer(p NoiseLayerPatch) SoundParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := &s.params.NoiseLayer
	if p.Enabled != nil {
		sec.Enabled = *p.Enabled
	}
	if p.Color != nil {
		sec.Color = *p.Color
	}
	if p.Level != nil {
		sec.Level = *p.Level
	}
	if p.Attack != nil {
		sec.Attack = *p.Attack
	}
	if p.Decay != nil {
		sec.Decay = *p.Decay
	}
	if p.FilterFreq != nil {
		sec.FilterFreq = *p.FilterFreq
	}
	return s.params
}

func (s *paramStore) ApplyPitchEnvelope(p PitchEnvelopePatch) SoundParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := &s.params.PitchEnvelope
	if p.StartOffset != nil {
		sec.StartOffset = *p.StartOffset
	}
	if p.Decay != nil {
		sec.Decay = *p.Decay
	}
	if p.Curve != nil {
		sec.Curve = *p.Curve
	}
	return s.params
}

func (s *paramStore) ApplyAmpEnvelope(p AmpEnvelopePatch) SoundParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := &s.params.AmpEnvelope
	if p.Attack != nil {
		sec.Attack = *p.Attack
	}
	if p.Decay != nil {
		sec.Decay = *p.Decay
	}
	if p.Sustain != nil {
		sec.Sustain = *p.Sustain
	}
	if p.Release != nil {
		sec.Release = *p.Release
	}
	return s.params
}

func (s *paramStore) ApplyDistortion(p DistortionPatch) SoundParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := &s.params.Distortion
	if p.Drive != nil {
		sec.Drive = *p.Drive
	}
	if p.Kind != nil {
		sec.Kind = *p.Kind
	}
	if p.Mix != nil {
		sec.Mix = *p.Mix
	}
	if p.BitDepth != nil {
		sec.BitDepth = *p.BitDepth
	}
	return s.params
}

func (s *paramStore) ApplyFilter(p FilterPatch) SoundParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := &s.params.Filter
	if p.Type != nil {
		sec.Type = *p.Type
	}
	if p.Frequency != nil {
		sec.Frequency = *p.Frequency
	}
	if p.Resonance != nil {
		sec.Resonance = *p.Resonance
	}
	return s.params
}

func (s *paramStore) ApplyFilterEnvelope(p FilterEnvelopePatch) SoundParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := &s.params.FilterEnvelope
	if p.Enabled != nil {
		sec.Enabled = *p.Enabled
	}
	if p.Amount != nil {
		sec.Amount = *p.Amount
	}
	if p.Attack != nil {
		sec.Attack = *p.Attack
	}
	if p.Decay != nil {
		sec.Decay = *p.Decay
	}
	if p.Sustain != nil {
		sec.Sustain = *p.Sustain
	}
	if p.Release != nil {
		sec.Release = *p.Release
	}
	return s.params
}

func (s *paramStore) ApplyCompressor(p CompressorPatch) SoundParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := &s.params.Compressor
	if p.Enabled != nil {
		sec.Enabled = *p.Enabled
	}
	if p.Threshold != nil {
		sec.Threshold = *p.Threshold
	}
	if p.Ratio != nil {
		sec.Ratio = *p.Ratio
	}
	if p.Attack != nil {
		sec.Attack = *p.Attack
	}
	if p.Release != nil {
		sec.Release = *p.Release
	}
	if p.Makeup != nil {
		sec.Makeup = *p.Makeup
	}
	return s.params
}

func (s *paramStore) ApplyEQ(p EQPatch) SoundParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := &s.params.EQ
	if p.LowGain != nil {
		sec.LowGain = *p.LowGain
	}
	if p.MidGain != nil {
		sec.MidGain = *p.MidGain
	}
	if p.HighGain != nil {
		sec.HighGain = *p.HighGain
	}
	if p.MidFreq != nil {
		sec.MidFreq = *p.MidFreq
	}
	return s.params
}

func (s *paramStore) ApplyReverb(p ReverbPatch) SoundParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := &s.params.Reverb
	if p.Enabled != nil {
		sec.Enabled = *p.Enabled
	}
	if p.Decay != nil {
		sec.Decay = *p.Decay
	}
	if p.PreDelay != nil {
		sec.PreDelay = *p.PreDelay
	}
	if p.Mix != nil {
		sec.Mix = *p.Mix
	}
	return s.params
}

func (s *paramStore) ApplyLimiter(p LimiterPatch) SoundParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := &s.params.Limiter
	if p.Enabled != nil {
		sec.Enabled = *p.Enabled
	}
	if p.Threshold != nil {
		sec.Threshold = *p.Threshold
	}
	return s.params
}

func (s *paramStore) ApplyLFO(p LFOPatch) SoundParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := &s.params.LFO
	if p.Enabled != nil {
		sec.Enabled = *p.Enabled
	}
	if p.Tempo != nil {
		sec.Tempo = *p.Tempo
	}
	if p.Division != nil {
		sec.Division = *p.Division
	}
	if p.Waveform != nil {
		sec.Waveform = *p.Waveform
	}
	if p.Depth != nil {
		sec.Depth = *p.Depth
	}
	return s.params
}

func (s *paramStore) ApplyMasterVolume(db float64) SoundParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.MasterVolume = db
	return s.params
}
