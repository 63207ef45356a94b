package voice

// NoiseColor selects the spectral tilt of the noise layer.
type NoiseColor int

const (
	NoiseWhite NoiseColor = iota
	NoisePink
)

// NoiseConfig parameterizes the click/noise transient layer.
type NoiseConfig struct {
	Enabled    bool
	Color      NoiseColor
	Level      float64 // 0..1
	Attack     float64 // seconds
	Decay      float64 // seconds
	FilterFreq float64 // fixed lowpass cutoff in Hz
}

// noiseSource generates white or pink noise through a fixed one-pole lowpass.
// The white source is a 16-bit LFSR so renders are bit-identical run to run;
// pink is the white source shaped by a Paul Kellet style pinking filter.
type noiseSource struct {
	sampleRate float64
	color      NoiseColor
	lfsr       uint16
	lpAlpha    float64
	lp         float64
	b0, b1, b2 float64 // pinking filter state
}

const noiseSeed = 0xACE1

func newNoiseSource(sampleRate float64) *noiseSource {
	return &noiseSource{sampleRate: sampleRate, lfsr: noiseSeed}
}

func (n *noiseSource) configure(color NoiseColor, filterFreq float64) {
	n.color = color
	n.lpAlpha = onePoleAlpha(filterFreq, n.sampleRate)
}

// reset reseeds the generator so each trigger produces the same transient.
func (n *noiseSource) reset() {
	n.lfsr = noiseSeed
	n.lp = 0
	n.b0, n.b1, n.b2 = 0, 0, 0
}

func (n *noiseSource) next() float64 {
	bit := (n.lfsr ^ (n.lfsr >> 1)) & 1
	n.lfsr = (n.lfsr >> 1) | (bit << 15)
	white := float64(int(n.lfsr&0x7FFF))/16383.5 - 1.0

	s := white
	if n.color == NoisePink {
		n.b0 = 0.99765*n.b0 + white*0.0990460
		n.b1 = 0.96300*n.b1 + white*0.2965164
		n.b2 = 0.57000*n.b2 + white*1.0526913
		s = (n.b0 + n.b1 + n.b2 + white*0.1848) * 0.2
	}
	if n.lpAlpha > 0 {
		n.lp += n.lpAlpha * (s - n.lp)
		s = n.lp
	}
	return s
}
