package drum808

import (
	"encoding/binary"

	"github.com/cbegin/drum808-go/internal/effects"
	"github.com/cbegin/drum808-go/internal/voice"
)

// Extra tail rendered past the end of the amplitude release so reverb and
// filter ringing are not cut off mid-decay.
const renderTailSec = 0.1

// RenderDuration returns the default offline render length for a parameter
// set: the full amplitude envelope plus a short tail.
func RenderDuration(params SoundParameters) float64 {
	a := params.AmpEnvelope
	return a.Attack + a.Decay + a.Release + renderTailSec
}

// RenderSamples synthesizes one drum hit from scratch: a fresh voice and,
// when patched, a fresh effects chain, mirroring the live graph exactly but
// sharing no state with it. seconds <= 0 selects the default duration.
// Output is mono float32 clamped to [-1, 1].
func RenderSamples(params SoundParameters, patched bool, sampleRate int, seconds float64) []float32 {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if seconds <= 0 {
		seconds = RenderDuration(params)
	}

	v := voice.New(sampleRate, voiceConfig(params))
	var chain *effects.Chain
	if patched {
		chain = effects.NewChain(sampleRate)
		configureChain(chain, params)
	}
	gain := dbToGain(params.MasterVolume)

	v.Trigger()
	if chain != nil {
		chain.Trigger()
	}

	out := make([]float32, int(seconds*float64(sampleRate)))
	for i := range out {
		s := v.Render()
		if chain != nil {
			s = chain.Process(s)
		}
		s *= gain
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		out[i] = float32(s)
	}
	return out
}

// Render snapshots the live engine's parameters and patch state and renders
// them offline, with no side effects on the engine.
func Render(e *Engine, seconds float64) []float32 {
	params, patched := e.Snapshot()
	return RenderSamples(params, patched, e.SampleRate(), seconds)
}

// EncodeWAVInt16LE encodes mono samples as a 16-bit PCM WAV file: the
// canonical 44-byte header followed by little-endian signed samples. Input
// is clamped to [-1, 1] before scaling. Output is exactly 44+2N bytes.
func EncodeWAVInt16LE(samples []float32, sampleRate int) []byte {
	const (
		channels      = 1
		bitsPerSample = 16
	)
	dataSize := len(samples) * 2
	byteRate := sampleRate * channels * 2
	blockAlign := channels * 2
	chunkSize := 36 + dataSize
	out := make([]byte, 44+dataSize)
	copy(out[0:], []byte("RIFF"))
	binary.LittleEndian.PutUint32(out[4:], uint32(chunkSize))
	copy(out[8:], []byte("WAVE"))
	copy(out[12:], []byte("fmt "))
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 1) // PCM
	binary.LittleEndian.PutUint16(out[22:], channels)
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], bitsPerSample)
	copy(out[36:], []byte("data"))
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		v := int16(s * 32767)
		binary.LittleEndian.PutUint16(out[44+i*2:], uint16(v))
	}
	return out
}
