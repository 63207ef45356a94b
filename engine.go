// Package drum808 is a parametric 808-style bass-drum synthesizer: a sine or
// triangle oscillator with a downward pitch sweep, optional sub-oscillator
// and noise layers, and an effects chain that the voice can be patched
// through or routed around. The same parameter set drives both the live
// engine and a deterministic offline renderer for WAV export.
package drum808

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cbegin/drum808-go/internal/analyzer"
	"github.com/cbegin/drum808-go/internal/audio"
	"github.com/cbegin/drum808-go/internal/effects"
	"github.com/cbegin/drum808-go/internal/router"
	"github.com/cbegin/drum808-go/internal/voice"
)

// Jack identifiers for the patch bay. The router only cares about the one
// voice-out -> effects-in cable; the ids are exported for cable-drawing
// collaborators.
const (
	VoiceOutJack  = "voice-out"
	EffectsInJack = "effects-in"
)

const DefaultSampleRate = 44100

var ErrEngineClosed = errors.New("engine closed")

const (
	stateNew int32 = iota
	stateStarting
	stateReady
	stateClosed
)

type Option func(*engineConfig)

type engineConfig struct {
	params SoundParameters
}

// WithParameters sets the initial parameter aggregate (clamped at this
// boundary) instead of the classic kick defaults.
func WithParameters(params SoundParameters) Option {
	return func(cfg *engineConfig) {
		params.Clamp()
		cfg.params = params
	}
}

// Engine is one live synthesizer instance: voice graph, effects chain, patch
// bay, analyzer taps and an audio backend. Construct it with NewEngine, start
// audio with Start, dispose with Close; an engine is never reused across
// sessions.
type Engine struct {
	sampleRate int
	store      *paramStore

	// mu guards the live graph. The audio thread takes it once per buffer;
	// control calls take it per update, so topology changes land between
	// buffers, never mid-buffer.
	mu    sync.Mutex
	voice *voice.Voice
	chain *effects.Chain

	bay     *router.PatchBay
	patched atomic.Bool

	an     *analyzer.Analyzer
	tapBuf []float64

	masterGain atomic.Uint64 // float64 bits, linear

	clock     atomic.Int64 // samples rendered since Start
	triggerAt atomic.Int64 // sample index of the last trigger

	startMu   sync.Mutex
	startCond *sync.Cond
	state     atomic.Int32
	backend   *audio.Player
}

// NewEngine constructs the full signal graph. No audio starts until Start;
// parameter updates made before then are absorbed by the store and
// reconciled into the live graph when Start completes.
func NewEngine(sampleRate int, opts ...Option) *Engine {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	cfg := engineConfig{params: DefaultParameters()}
	for _, opt := range opts {
		opt(&cfg)
	}
	e := &Engine{
		sampleRate: sampleRate,
		store:      newParamStore(cfg.params),
		voice:      voice.New(sampleRate, voiceConfig(cfg.params)),
		chain:      effects.NewChain(sampleRate),
		an:         analyzer.New(),
	}
	e.startCond = sync.NewCond(&e.startMu)
	e.bay = router.NewPatchBay(e.onRoutingChange)
	e.bay.SetAutoConnect(VoiceOutJack, EffectsInJack)
	e.bay.RegisterJack(VoiceOutJack, router.Source)
	e.bay.RegisterJack(EffectsInJack, router.Sink)

	e.applyAll(cfg.params)
	return e
}

// SampleRate returns the engine's fixed sample rate.
func (e *Engine) SampleRate() int { return e.sampleRate }

// Start opens the audio backend and begins streaming. Concurrent calls
// while a start is in flight coalesce into that one attempt; after a failure
// the engine stays unstarted and Start may be retried. Parameter updates
// made before Start are re-applied once it succeeds.
func (e *Engine) Start() error {
	e.startMu.Lock()
	for e.state.Load() == stateStarting {
		e.startCond.Wait()
	}
	switch e.state.Load() {
	case stateReady:
		e.startMu.Unlock()
		return nil
	case stateClosed:
		e.startMu.Unlock()
		return ErrEngineClosed
	}
	e.state.Store(stateStarting)
	e.startMu.Unlock()

	backend, err := audio.NewPlayer(e.sampleRate, e)
	return e.finishStart(backend, err)
}

// finishStart publishes the outcome of an in-flight start attempt. A Close
// that landed while the backend was opening wins: the fresh backend is
// stopped and the engine stays closed.
func (e *Engine) finishStart(backend *audio.Player, err error) error {
	e.startMu.Lock()
	defer func() {
		e.startCond.Broadcast()
		e.startMu.Unlock()
	}()
	if e.state.Load() == stateClosed {
		if backend != nil {
			_ = backend.Stop()
		}
		return ErrEngineClosed
	}
	if err != nil {
		e.state.Store(stateNew)
		return err
	}
	e.backend = backend
	// Reconcile everything written while uninitialized.
	e.applyAll(e.store.Snapshot())
	e.patched.Store(e.bay.Connected(VoiceOutJack, EffectsInJack))
	e.state.Store(stateReady)
	backend.Play()
	return nil
}

// Started reports whether the audio backend is running.
func (e *Engine) Started() bool {
	return e.state.Load() == stateReady
}

// Close stops the audio backend and retires the engine.
func (e *Engine) Close() error {
	e.startMu.Lock()
	defer e.startMu.Unlock()
	if e.state.Load() == stateClosed {
		return nil
	}
	e.state.Store(stateClosed)
	e.startCond.Broadcast()
	if e.backend != nil {
		err := e.backend.Stop()
		e.backend = nil
		return err
	}
	return nil
}

// Process renders one mono buffer. It is the audio backend's pull callback
// and implements audio.SampleSource.
func (e *Engine) Process(dst []float32) {
	gain := math.Float64frombits(e.masterGain.Load())
	patched := e.patched.Load()

	e.mu.Lock()
	if cap(e.tapBuf) < len(dst) {
		e.tapBuf = make([]float64, len(dst))
	}
	tap := e.tapBuf[:len(dst)]
	for i := range dst {
		s := e.voice.Render()
		if patched {
			s = e.chain.Process(s)
		}
		s *= gain
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		dst[i] = float32(s)
		tap[i] = s
	}
	e.mu.Unlock()

	e.an.Tap(tap)
	e.clock.Add(int64(len(dst)))
}

// Trigger fires the drum. Safe to call while a previous hit is still
// releasing: envelopes restart in place.
func (e *Engine) Trigger() {
	e.triggerAt.Store(e.clock.Load())
	e.mu.Lock()
	e.voice.Trigger()
	e.chain.Trigger()
	e.mu.Unlock()
}

// NoteOn retunes the oscillator to the named note, applies the velocity and
// triggers. Monophonic: a second NoteOn retriggers the same voice.
func (e *Engine) NoteOn(note string, velocity float64) {
	velocity = clampF(velocity, 0, 1)
	e.UpdateOscillator(OscillatorPatch{Note: &note, Velocity: &velocity})
	e.Trigger()
}

// NoteOff starts the release immediately. The voice auto-releases at
// attack+decay anyway, so this only shortens a hit.
func (e *Engine) NoteOff() {
	e.mu.Lock()
	e.voice.Release()
	e.chain.ReleaseEnv()
	e.mu.Unlock()
}

// TriggerTime returns the engine-clock time of the last trigger, in seconds.
func (e *Engine) TriggerTime() float64 {
	return float64(e.triggerAt.Load()) / float64(e.sampleRate)
}

// Now returns the engine-clock time, in seconds of audio rendered.
func (e *Engine) Now() float64 {
	return float64(e.clock.Load()) / float64(e.sampleRate)
}

// SetPatched routes the voice through the effects chain (true) or straight
// to the output bus (false). Idempotent: repeating the current state is a
// no-op, and exactly one path is active at all times.
func (e *Engine) SetPatched(patched bool) {
	if patched == e.bay.Connected(VoiceOutJack, EffectsInJack) {
		return
	}
	if patched {
		_, _ = e.bay.Connect(VoiceOutJack, EffectsInJack)
	} else {
		e.bay.DisconnectJacks(VoiceOutJack, EffectsInJack)
	}
}

// Patched reports whether the effects chain is in the signal path.
func (e *Engine) Patched() bool {
	return e.patched.Load()
}

// Connect patches a cable between two jacks and returns its connection id.
func (e *Engine) Connect(source, sink string) (int, error) {
	return e.bay.Connect(source, sink)
}

// Disconnect removes a cable by id; unknown ids are ignored.
func (e *Engine) Disconnect(connID int) {
	e.bay.Disconnect(connID)
}

// IsConnected reports whether a jack holds an active cable.
func (e *Engine) IsConnected(jack string) bool {
	return e.bay.IsConnected(jack)
}

// Connections returns a snapshot of the patch bay state.
func (e *Engine) Connections() []router.Connection {
	return e.bay.Connections()
}

func (e *Engine) onRoutingChange() {
	was := e.patched.Load()
	now := e.bay.Connected(VoiceOutJack, EffectsInJack)
	if was == now {
		return
	}
	e.patched.Store(now)
	if now {
		// Entering the chain with stale reverb/filter state would smear the
		// previous hit into the new path.
		e.mu.Lock()
		e.chain.Reset()
		e.mu.Unlock()
	}
}

// Params returns a snapshot of the current parameter aggregate.
func (e *Engine) Params() SoundParameters {
	return e.store.Snapshot()
}

// Snapshot is the offline renderer's view: the parameter aggregate plus the
// current patched flag, immutable once taken.
func (e *Engine) Snapshot() (SoundParameters, bool) {
	return e.store.Snapshot(), e.patched.Load()
}

// SetParams replaces every section atomically (the preset "replace-all"
// entry point) and reconciles router-dependent state afterward.
func (e *Engine) SetParams(params SoundParameters) {
	params.Clamp()
	e.store.Replace(params)
	e.applyAll(params)
	e.patched.Store(e.bay.Connected(VoiceOutJack, EffectsInJack))
}

func (e *Engine) applyAll(params SoundParameters) {
	e.masterGain.Store(math.Float64bits(dbToGain(params.MasterVolume)))
	e.mu.Lock()
	e.voice.SetConfig(voiceConfig(params))
	configureChain(e.chain, params)
	e.mu.Unlock()
}

func (e *Engine) applyVoice(params SoundParameters) {
	e.mu.Lock()
	e.voice.SetConfig(voiceConfig(params))
	e.mu.Unlock()
}

// Per-section update surface. Each merges a partial patch into the store and
// pushes the result into the live graph; all are safe before Start.

func (e *Engine) UpdateOscillator(p OscillatorPatch) {
	e.applyVoice(e.store.ApplyOscillator(p))
}

func (e *Engine) UpdateSubOscillator(p SubOscillatorPatch) {
	e.applyVoice(e.store.ApplySubOscillator(p))
}

func (e *Engine) UpdateNoiseLayer(p NoiseLayerPatch) {
	e.applyVoice(e.store.ApplyNoiseLayer(p))
}

func (e *Engine) UpdatePitchEnvelope(p PitchEnvelopePatch) {
	e.applyVoice(e.store.ApplyPitchEnvelope(p))
}

func (e *Engine) UpdateAmpEnvelope(p AmpEnvelopePatch) {
	e.applyVoice(e.store.ApplyAmpEnvelope(p))
}

func (e *Engine) UpdateDistortion(p DistortionPatch) {
	params := e.store.ApplyDistortion(p)
	e.mu.Lock()
	e.chain.SetDistortion(distortionKind(params.Distortion.Kind),
		params.Distortion.Drive, params.Distortion.Mix, params.Distortion.BitDepth)
	e.mu.Unlock()
}

func (e *Engine) UpdateFilter(p FilterPatch) {
	params := e.store.ApplyFilter(p)
	e.mu.Lock()
	e.chain.SetFilter(filterType(params.Filter.Type), params.Filter.Frequency, params.Filter.Resonance)
	e.mu.Unlock()
}

func (e *Engine) UpdateFilterEnvelope(p FilterEnvelopePatch) {
	params := e.store.ApplyFilterEnvelope(p)
	fe := params.FilterEnvelope
	e.mu.Lock()
	e.chain.SetFilterEnvelope(fe.Enabled, fe.Amount, fe.Attack, fe.Decay, fe.Sustain, fe.Release)
	e.mu.Unlock()
}

func (e *Engine) UpdateCompressor(p CompressorPatch) {
	params := e.store.ApplyCompressor(p)
	c := params.Compressor
	e.mu.Lock()
	e.chain.SetCompressor(c.Enabled, c.Threshold, c.Ratio, c.Attack, c.Release, c.Makeup)
	e.mu.Unlock()
}

func (e *Engine) UpdateEQ(p EQPatch) {
	params := e.store.ApplyEQ(p)
	e.mu.Lock()
	e.chain.SetEQ(params.EQ.LowGain, params.EQ.MidGain, params.EQ.HighGain, params.EQ.MidFreq)
	e.mu.Unlock()
}

func (e *Engine) UpdateReverb(p ReverbPatch) {
	params := e.store.ApplyReverb(p)
	r := params.Reverb
	e.mu.Lock()
	e.chain.SetReverb(r.Enabled, r.Decay, r.PreDelay, r.Mix)
	e.mu.Unlock()
}

func (e *Engine) UpdateLimiter(p LimiterPatch) {
	params := e.store.ApplyLimiter(p)
	e.mu.Lock()
	e.chain.SetLimiter(params.Limiter.Enabled, params.Limiter.Threshold)
	e.mu.Unlock()
}

func (e *Engine) UpdateLFO(p LFOPatch) {
	params := e.store.ApplyLFO(p)
	e.mu.Lock()
	applyLFO(e.chain, params)
	e.mu.Unlock()
}

// SetMasterVolume sets the output level in dB (-60..0). Lock-free with
// respect to the audio thread.
func (e *Engine) SetMasterVolume(db float64) {
	db = clampF(db, -60, 0)
	e.store.ApplyMasterVolume(db)
	e.masterGain.Store(math.Float64bits(dbToGain(db)))
}

// Waveform returns the most recent n output samples for scope drawing.
// Best-effort: a read may straddle a buffer boundary.
func (e *Engine) Waveform(n int) []float64 {
	return e.an.Waveform(n)
}

// Spectrum returns the magnitude spectrum of the most recent fftSize output
// samples.
func (e *Engine) Spectrum(fftSize int) []float64 {
	return e.an.Spectrum(fftSize)
}
