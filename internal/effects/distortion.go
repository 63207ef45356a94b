package effects

import "math"

// DistortionKind selects one of the interchangeable waveshaping algorithms.
type DistortionKind int

const (
	SoftClip DistortionKind = iota
	HardClip
	Waveshaper
	Tape
	BitCrush
)

// Distortion applies a waveshaper with a linear dry/wet crossfade. Switching
// kind rebuilds the shaping function while preserving drive and mix; drive
// (0-1) maps into each algorithm's own intensity parameter.
type Distortion struct {
	kind     DistortionKind
	drive    float64
	mix      float64
	bitDepth int
	shaper   func(float64) float64
}

// NewDistortion returns a transparent distortion: mix 0, soft clip, no drive.
func NewDistortion() *Distortion {
	d := &Distortion{kind: SoftClip, bitDepth: 16}
	d.rebuild()
	return d
}

func (d *Distortion) Set(kind DistortionKind, drive, mix float64, bitDepth int) {
	d.kind = kind
	d.drive = clamp(drive, 0, 1)
	d.mix = clamp(mix, 0, 1)
	if bitDepth < 1 {
		bitDepth = 1
	}
	if bitDepth > 16 {
		bitDepth = 16
	}
	d.bitDepth = bitDepth
	d.rebuild()
}

func (d *Distortion) Process(x float64) float64 {
	if d.mix == 0 {
		return x
	}
	wet := d.shaper(x)
	return wet*d.mix + x*(1-d.mix)
}

func (d *Distortion) Reset() {}

// rebuild constructs the pure sample->sample shaping function for the
// current kind and drive.
func (d *Distortion) rebuild() {
	drive := d.drive
	switch d.kind {
	case HardClip:
		// Drive lowers the clipping threshold; output renormalized so the
		// ceiling stays at unity.
		th := 1 - 0.8*drive
		d.shaper = func(x float64) float64 {
			return clamp(x, -th, th) / th
		}
	case Waveshaper:
		// Classic k-curve shaper; drive steepens the knee.
		k := drive * 100
		d.shaper = func(x float64) float64 {
			return (1 + k) * x / (1 + k*math.Abs(x))
		}
	case Tape:
		// Cubic soft saturation with drive as input gain.
		g := 1 + drive*4
		d.shaper = func(x float64) float64 {
			y := x * g
			if y > 1 {
				return 2.0 / 3.0
			}
			if y < -1 {
				return -2.0 / 3.0
			}
			return y - y*y*y/3
		}
	case BitCrush:
		// Quantize to 2^depth levels; drive adds input gain before the
		// quantizer so low depths crunch harder.
		half := math.Pow(2, float64(d.bitDepth-1))
		g := 1 + drive*4
		d.shaper = func(x float64) float64 {
			y := clamp(x*g, -1, 1)
			return math.Round(y*half) / half
		}
	default: // SoftClip
		// Drive maps to tanh input gain.
		g := 1 + drive*9
		d.shaper = func(x float64) float64 {
			return math.Tanh(x * g)
		}
	}
}
