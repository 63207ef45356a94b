// Package router models the patch bay that decides whether the voice bus
// feeds the effects chain or bypasses it. Jacks are registered by the engine;
// the one default connection (voice out -> effects in) is wired automatically
// exactly once, the first time both jacks exist. After that, only explicit
// connect/disconnect calls change the topology.
package router

import (
	"fmt"
	"sync"
)

// JackKind distinguishes signal sources from sinks.
type JackKind int

const (
	Source JackKind = iota
	Sink
)

// Connection is one directed source->sink patch cable.
type Connection struct {
	ID     int
	Source string
	Sink   string
}

// PatchBay tracks jacks and their connections. A jack holds at most one
// active connection; connecting into an occupied jack replaces the prior
// cable. Disconnects are idempotent: removing a connection that is already
// gone is a no-op, never an error.
type PatchBay struct {
	mu       sync.Mutex
	jacks    map[string]JackKind
	conns    map[int]Connection
	bySource map[string]int
	bySink   map[string]int
	nextID   int

	autoSource string
	autoSink   string
	autoDone   bool

	// onChange is invoked, outside the lock, after any topology change.
	onChange func()
}

func NewPatchBay(onChange func()) *PatchBay {
	return &PatchBay{
		jacks:    make(map[string]JackKind),
		conns:    make(map[int]Connection),
		bySource: make(map[string]int),
		bySink:   make(map[string]int),
		nextID:   1,
		onChange: onChange,
	}
}

// SetAutoConnect arms the one-shot default wiring. The connection is made the
// first time both jacks are registered and never again.
func (b *PatchBay) SetAutoConnect(source, sink string) {
	b.mu.Lock()
	b.autoSource = source
	b.autoSink = sink
	fired := b.tryAutoConnectLocked()
	b.mu.Unlock()
	if fired {
		b.notify()
	}
}

// RegisterJack announces a jack to the bay. Registering an existing jack
// updates its kind.
func (b *PatchBay) RegisterJack(id string, kind JackKind) {
	b.mu.Lock()
	b.jacks[id] = kind
	fired := b.tryAutoConnectLocked()
	b.mu.Unlock()
	if fired {
		b.notify()
	}
}

func (b *PatchBay) tryAutoConnectLocked() bool {
	if b.autoDone || b.autoSource == "" || b.autoSink == "" {
		return false
	}
	if _, ok := b.jacks[b.autoSource]; !ok {
		return false
	}
	if _, ok := b.jacks[b.autoSink]; !ok {
		return false
	}
	b.autoDone = true
	b.connectLocked(b.autoSource, b.autoSink)
	return true
}

// Connect patches source into sink, replacing any cable already occupying
// either jack. Returns the new connection's id.
func (b *PatchBay) Connect(source, sink string) (int, error) {
	b.mu.Lock()
	if kind, ok := b.jacks[source]; !ok || kind != Source {
		b.mu.Unlock()
		return 0, fmt.Errorf("no source jack %q", source)
	}
	if kind, ok := b.jacks[sink]; !ok || kind != Sink {
		b.mu.Unlock()
		return 0, fmt.Errorf("no sink jack %q", sink)
	}
	id := b.connectLocked(source, sink)
	b.mu.Unlock()
	b.notify()
	return id, nil
}

func (b *PatchBay) connectLocked(source, sink string) int {
	if id, ok := b.bySource[source]; ok {
		b.removeLocked(id)
	}
	if id, ok := b.bySink[sink]; ok {
		b.removeLocked(id)
	}
	id := b.nextID
	b.nextID++
	b.conns[id] = Connection{ID: id, Source: source, Sink: sink}
	b.bySource[source] = id
	b.bySink[sink] = id
	return id
}

// Disconnect removes a connection by id. Unknown ids are ignored.
func (b *PatchBay) Disconnect(id int) {
	b.mu.Lock()
	_, ok := b.conns[id]
	if ok {
		b.removeLocked(id)
	}
	b.mu.Unlock()
	if ok {
		b.notify()
	}
}

// DisconnectJacks removes the source->sink connection if present.
func (b *PatchBay) DisconnectJacks(source, sink string) {
	b.mu.Lock()
	id, ok := b.bySource[source]
	if ok {
		if c := b.conns[id]; c.Sink != sink {
			ok = false
		}
	}
	if ok {
		b.removeLocked(id)
	}
	b.mu.Unlock()
	if ok {
		b.notify()
	}
}

func (b *PatchBay) removeLocked(id int) {
	c := b.conns[id]
	delete(b.conns, id)
	delete(b.bySource, c.Source)
	delete(b.bySink, c.Sink)
}

// IsConnected reports whether the jack holds an active connection.
func (b *PatchBay) IsConnected(jack string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.bySource[jack]; ok {
		return true
	}
	_, ok := b.bySink[jack]
	return ok
}

// Connected reports whether the specific source->sink cable exists.
func (b *PatchBay) Connected(source, sink string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	id, ok := b.bySource[source]
	if !ok {
		return false
	}
	return b.conns[id].Sink == sink
}

// Connections returns a snapshot of all active connections.
func (b *PatchBay) Connections() []Connection {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Connection, 0, len(b.conns))
	for _, c := range b.conns {
		out = append(out, c)
	}
	return out
}

func (b *PatchBay) notify() {
	if b.onChange != nil {
		b.onChange()
	}
}
