package effects

import (
	"math"

	"github.com/cbegin/drum808-go/internal/voice"
)

// FilterType selects which SVF output feeds the chain.
type FilterType int

const (
	FilterLP FilterType = iota
	FilterHP
	FilterBP
)

// Filter is a resonant state-variable filter (topology-preserving transform
// form) whose cutoff can be swept by an ADSR envelope and nudged by the LFO.
// While the envelope is disabled the cutoff is exactly the static value, so
// disabling it mid-sweep cannot leave the cutoff stranded.
type Filter struct {
	sampleRate float64
	typ        FilterType
	cutoff     float64
	q          float64

	envEnabled bool
	envAmount  float64 // Hz above static cutoff at full envelope level
	env        *voice.ADSR

	lfoMod float64 // -0.5..0.5, fraction of static cutoff

	ic1eq float64
	ic2eq float64
}

func NewFilter(sampleRate float64) *Filter {
	return &Filter{
		sampleRate: sampleRate,
		typ:        FilterLP,
		cutoff:     8000,
		q:          0.707,
		env:        voice.NewADSR(sampleRate, voice.ADSRConfig{}),
	}
}

func (f *Filter) Set(typ FilterType, cutoff, q float64) {
	f.typ = typ
	f.cutoff = cutoff
	if q < 0.1 {
		q = 0.1
	}
	f.q = q
}

func (f *Filter) SetEnvelope(enabled bool, amount, attack, decay, sustain, release float64) {
	f.envEnabled = enabled
	f.envAmount = amount
	f.env.Configure(voice.ADSRConfig{Attack: attack, Decay: decay, Sustain: sustain, Release: release})
}

// SetLFOMod sets the per-sample LFO contribution as a fraction of the static
// cutoff.
func (f *Filter) SetLFOMod(mod float64) {
	f.lfoMod = mod
}

// TriggerEnv restarts the cutoff sweep. A no-op while the envelope is
// disabled.
func (f *Filter) TriggerEnv() {
	if f.envEnabled {
		f.env.Trigger()
	}
}

func (f *Filter) ReleaseEnv() {
	f.env.Release()
}

func (f *Filter) Process(x float64) float64 {
	fc := f.cutoff
	if f.envEnabled {
		fc += f.env.Next() * f.envAmount
	}
	if f.lfoMod != 0 {
		fc += f.cutoff * f.lfoMod
	}
	fc = clamp(fc, 20, 0.49*f.sampleRate)

	g := math.Tan(math.Pi * fc / f.sampleRate)
	k := 1 / f.q
	v1 := (f.ic1eq + g*(x-f.ic2eq)) / (1 + g*(g+k))
	v2 := f.ic2eq + g*v1
	f.ic1eq = 2*v1 - f.ic1eq
	f.ic2eq = 2*v2 - f.ic2eq

	switch f.typ {
	case FilterHP:
		return x - k*v1 - v2
	case FilterBP:
		return v1
	default:
		return v2
	}
}

func (f *Filter) Reset() {
	f.ic1eq = 0
	f.ic2eq = 0
	f.lfoMod = 0
}
