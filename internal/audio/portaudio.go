//go:build portaudio

// PortAudio output backend, selected with -tags portaudio. Uses a callback
// stream: PortAudio pulls mono float32 buffers straight from the source.
package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gordonklaus/portaudio"
)

// SampleSource produces mono float32 audio into dst.
type SampleSource interface {
	Process(dst []float32)
}

var (
	paInitOnce sync.Once
	paInitErr  error
)

// Player owns one live output stream.
type Player struct {
	mu         sync.Mutex
	stream     *portaudio.Stream
	sampleRate int
	playing    bool
	frames     atomic.Int64
}

func NewPlayer(sampleRate int, source SampleSource) (*Player, error) {
	paInitOnce.Do(func() {
		paInitErr = portaudio.Initialize()
	})
	if paInitErr != nil {
		return nil, paInitErr
	}
	p := &Player{sampleRate: sampleRate}
	cb := func(out []float32) {
		source.Process(out)
		p.frames.Add(int64(len(out)))
	}
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), portaudio.FramesPerBufferUnspecified, cb)
	if err != nil {
		return nil, err
	}
	p.stream = stream
	return p, nil
}

func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stream != nil && !p.playing {
		if err := p.stream.Start(); err == nil {
			p.playing = true
		}
	}
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stream != nil && p.playing {
		_ = p.stream.Stop()
		p.playing = false
	}
}

func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Position returns the playback position derived from frames delivered to
// the callback.
func (p *Player) Position() time.Duration {
	return time.Duration(float64(p.frames.Load()) / float64(p.sampleRate) * float64(time.Second))
}

func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stream == nil {
		return nil
	}
	if p.playing {
		_ = p.stream.Stop()
		p.playing = false
	}
	err := p.stream.Close()
	p.stream = nil
	return err
}
