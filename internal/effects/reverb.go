package effects

import "math"

// Schroeder comb delays in seconds; prime-ish ratios to avoid resonances.
var combDelays = [4]float64{0.0297, 0.0371, 0.0411, 0.0437}

// allpass delays in seconds
var allpassDelays = [2]float64{0.005, 0.0017}

// Reverb is a mono Schroeder reverb: a pre-delay line into four parallel
// combs and two series allpasses. The comb feedbacks are derived from the
// requested decay time (RT60), so the tail length tracks the decay
// parameter. Disabled, the stage passes dry signal through untouched.
type Reverb struct {
	sampleRate int
	enabled    bool
	mix        float64
	pre        []float64
	prePos     int
	combs      [4]combFilter
	allpass    [2]allpassFilter
}

type combFilter struct {
	buf []float64
	pos int
	fb  float64
}

type allpassFilter struct {
	buf []float64
	pos int
	fb  float64
}

func NewReverb(sampleRate int) *Reverb {
	r := &Reverb{sampleRate: sampleRate}
	r.Set(false, 1.5, 0.02, 0.2)
	return r
}

// Set rebuilds the delay network for the given decay (seconds, RT60) and
// pre-delay (seconds). Buffers are reallocated only here, never on the
// audio path.
func (r *Reverb) Set(enabled bool, decaySec, preDelaySec, mix float64) {
	r.enabled = enabled
	r.mix = clamp(mix, 0, 1)
	if decaySec < 0.1 {
		decaySec = 0.1
	}
	sr := float64(r.sampleRate)

	preLen := int(preDelaySec * sr)
	if preLen < 1 {
		preLen = 1
	}
	r.pre = make([]float64, preLen)
	r.prePos = 0

	for i := range r.combs {
		n := int(combDelays[i] * sr)
		if n < 1 {
			n = 1
		}
		// RT60: gain that decays 60 dB over decaySec.
		r.combs[i] = combFilter{
			buf: make([]float64, n),
			fb:  math.Pow(0.001, combDelays[i]/decaySec),
		}
	}
	for i := range r.allpass {
		n := int(allpassDelays[i] * sr)
		if n < 1 {
			n = 1
		}
		r.allpass[i] = allpassFilter{buf: make([]float64, n), fb: 0.5}
	}
}

func (r *Reverb) Process(x float64) float64 {
	if !r.enabled || r.mix == 0 {
		return x
	}
	in := r.pre[r.prePos]
	r.pre[r.prePos] = x
	r.prePos++
	if r.prePos >= len(r.pre) {
		r.prePos = 0
	}

	var wet float64
	for i := range r.combs {
		wet += r.combs[i].process(in)
	}
	wet *= 0.25
	for i := range r.allpass {
		wet = r.allpass[i].process(wet)
	}
	return x*(1-r.mix) + wet*r.mix
}

func (r *Reverb) Reset() {
	for i := range r.pre {
		r.pre[i] = 0
	}
	r.prePos = 0
	for i := range r.combs {
		for j := range r.combs[i].buf {
			r.combs[i].buf[j] = 0
		}
		r.combs[i].pos = 0
	}
	for i := range r.allpass {
		for j := range r.allpass[i].buf {
			r.allpass[i].buf[j] = 0
		}
		r.allpass[i].pos = 0
	}
}

func (c *combFilter) process(in float64) float64 {
	out := c.buf[c.pos]
	c.buf[c.pos] = in + out*c.fb
	c.pos++
	if c.pos >= len(c.buf) {
		c.pos = 0
	}
	return out
}

func (a *allpassFilter) process(in float64) float64 {
	bufOut := a.buf[a.pos]
	out := -in + bufOut
	a.buf[a.pos] = in + bufOut*a.fb
	a.pos++
	if a.pos >= len(a.buf) {
		a.pos = 0
	}
	return out
}
