package drum808

import (
	"errors"
	"testing"
)

func TestParsePresetRoundTrip(t *testing.T) {
	orig := PunchyPreset()
	data, err := orig.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := ParsePreset(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Name != "Punchy" || got.Category != "kick" {
		t.Errorf("identity lost: %q / %q", got.Name, got.Category)
	}
	if got.Params != orig.Params {
		t.Errorf("parameters changed through the round trip")
	}
}

func TestParsePresetRejectsMalformedPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{"missing name", `{"category":"kick","params":{}}`, ErrPresetNoName},
		{"missing params", `{"name":"x","category":"kick"}`, ErrPresetNoParams},
	}
	for _, tt := range tests {
		_, err := ParsePreset([]byte(tt.payload))
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.wantErr)
		}
	}
	if _, err := ParsePreset([]byte(`{not json`)); err == nil {
		t.Errorf("invalid JSON accepted")
	}
}

func TestParsePresetClampsParameters(t *testing.T) {
	payload := `{"name":"hot","params":{"oscillator":{"waveform":"sine","note":"E1","frequency":41.2,"velocity":9},"masterVolume":20}}`
	p, err := ParsePreset([]byte(payload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Params.Oscillator.Velocity != 1 {
		t.Errorf("velocity = %f, want clamped to 1", p.Params.Oscillator.Velocity)
	}
	if p.Params.MasterVolume != 0 {
		t.Errorf("master volume = %f, want clamped to 0", p.Params.MasterVolume)
	}
}

func TestApplyPresetReplacesEngineParams(t *testing.T) {
	e := NewEngine(44100)
	p := DeepPreset()
	e.ApplyPreset(&p)
	params := e.Params()
	if params.Oscillator.Note != "C1" {
		t.Errorf("note = %q, want C1", params.Oscillator.Note)
	}
	if !params.Reverb.Enabled {
		t.Errorf("preset reverb not applied")
	}
}

func TestBuiltinCatalog(t *testing.T) {
	presets := Presets()
	if len(presets) != 3 {
		t.Fatalf("catalog size = %d, want 3", len(presets))
	}
	seen := map[string]bool{}
	for _, p := range presets {
		if p.Name == "" || p.Category == "" {
			t.Errorf("preset missing identity: %+v", p)
		}
		if seen[p.Name] {
			t.Errorf("duplicate preset name %q", p.Name)
		}
		seen[p.Name] = true
		// Catalog entries must already be in range.
		clamped := p.Params
		clamped.Clamp()
		if clamped != p.Params {
			t.Errorf("preset %q carries out-of-range parameters", p.Name)
		}
	}
}
