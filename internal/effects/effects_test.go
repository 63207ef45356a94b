package effects

import (
	"math"
	"testing"
)

const testRate = 44100

func sineAt(freq float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / testRate)
	}
	return out
}

func rms(samples []float64) float64 {
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(samples)))
}

func TestDistortionMixZeroIsIdentity(t *testing.T) {
	d := NewDistortion()
	d.Set(SoftClip, 0.9, 0, 16)
	for _, x := range []float64{-1.5, -0.3, 0, 0.7, 2} {
		if got := d.Process(x); got != x {
			t.Errorf("mix 0: Process(%f) = %f, want input unchanged", x, got)
		}
	}
}

func TestDistortionOutputBounded(t *testing.T) {
	kinds := []DistortionKind{SoftClip, HardClip, Waveshaper, Tape, BitCrush}
	for _, kind := range kinds {
		d := NewDistortion()
		d.Set(kind, 1, 1, 8)
		for _, x := range []float64{-1, -0.5, -0.1, 0, 0.1, 0.5, 1} {
			got := d.Process(x)
			if math.Abs(got) > 1.0001 {
				t.Errorf("kind %d: Process(%f) = %f exceeds unity", kind, x, got)
			}
		}
	}
}

func TestDistortionKindSwitchKeepsDriveAndMix(t *testing.T) {
	d := NewDistortion()
	d.Set(SoftClip, 0.6, 0.8, 16)
	d.Set(Tape, 0.6, 0.8, 16)
	if d.drive != 0.6 || d.mix != 0.8 {
		t.Errorf("drive/mix after kind switch = %f/%f, want 0.6/0.8", d.drive, d.mix)
	}
}

func TestBitCrushQuantizesToFewLevels(t *testing.T) {
	d := NewDistortion()
	d.Set(BitCrush, 0, 1, 2)
	levels := map[float64]bool{}
	for _, x := range sineAt(100, 4096) {
		levels[d.Process(x)] = true
	}
	// 2 bits quantize to at most 2^2+1 output values.
	if len(levels) > 5 {
		t.Errorf("bit depth 2 produced %d distinct levels, want at most 5", len(levels))
	}
}

func TestHardClipCeilingIsUnity(t *testing.T) {
	d := NewDistortion()
	d.Set(HardClip, 0.5, 1, 16)
	if got := d.Process(1.0); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("hard clip at full scale = %f, want renormalized to 1", got)
	}
}

func TestFilterLowpassAttenuatesHighFrequencies(t *testing.T) {
	f := NewFilter(testRate)
	f.Set(FilterLP, 200, 0.707)
	in := sineAt(8000, 8192)
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = f.Process(x)
	}
	inRMS := rms(in[4096:])
	outRMS := rms(out[4096:])
	if outRMS > inRMS*0.05 {
		t.Errorf("lowpass at 200 Hz barely attenuated 8 kHz: in %f out %f", inRMS, outRMS)
	}
}

func TestFilterHighpassPassesHighFrequencies(t *testing.T) {
	f := NewFilter(testRate)
	f.Set(FilterHP, 200, 0.707)
	in := sineAt(8000, 8192)
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = f.Process(x)
	}
	if got := rms(out[4096:]); got < rms(in[4096:])*0.8 {
		t.Errorf("highpass at 200 Hz attenuated 8 kHz too much: rms %f", got)
	}
}

func TestFilterEnvelopeDisabledUsesStaticCutoff(t *testing.T) {
	static := NewFilter(testRate)
	static.Set(FilterLP, 500, 0.707)

	withEnv := NewFilter(testRate)
	withEnv.Set(FilterLP, 500, 0.707)
	withEnv.SetEnvelope(false, 4000, 0.01, 0.1, 0, 0.1)
	withEnv.TriggerEnv() // no-op while disabled

	for i, x := range sineAt(300, 2048) {
		a, b := static.Process(x), withEnv.Process(x)
		if a != b {
			t.Fatalf("disabled envelope changed output at sample %d: %f vs %f", i, a, b)
		}
	}
}

func TestCompressorDisabledIsIdentity(t *testing.T) {
	c := NewCompressor(testRate)
	c.Set(false, -20, 4, 0.005, 0.1, 0)
	for _, x := range sineAt(100, 1024) {
		if got := c.Process(x); got != x {
			t.Fatalf("disabled compressor altered sample: %f -> %f", x, got)
		}
	}
}

func TestCompressorReducesLoudSignal(t *testing.T) {
	c := NewCompressor(testRate)
	c.Set(true, -20, 4, 0.001, 0.1, 0)
	in := sineAt(100, testRate/2)
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = c.Process(x)
	}
	// Measure after the follower settles.
	inRMS := rms(in[len(in)/2:])
	outRMS := rms(out[len(out)/2:])
	if outRMS >= inRMS {
		t.Errorf("compressor did not reduce level: in %f out %f", inRMS, outRMS)
	}
}

func TestCompressorUnityRatioIsTransparent(t *testing.T) {
	c := NewCompressor(testRate)
	c.Set(true, -20, 1, 0.005, 0.1, 0)
	for _, x := range sineAt(100, 1024) {
		if got := c.Process(x); got != x {
			t.Fatalf("ratio 1:1 altered sample: %f -> %f", x, got)
		}
	}
}

func TestEQFlatIsUnityGain(t *testing.T) {
	eq := NewEQ3Band(testRate)
	eq.Set(0, 0, 0, 1000)
	in := sineAt(440, 8192)
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = eq.Process(x)
	}
	inRMS := rms(in[4096:])
	outRMS := rms(out[4096:])
	if math.Abs(outRMS-inRMS) > inRMS*0.01 {
		t.Errorf("flat EQ not unity: in %f out %f", inRMS, outRMS)
	}
}

func TestEQLowBoostRaisesLowFrequencies(t *testing.T) {
	eq := NewEQ3Band(testRate)
	eq.Set(6, 0, 0, 1000)
	in := sineAt(60, 8192)
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = eq.Process(x)
	}
	if rms(out[4096:]) <= rms(in[4096:]) {
		t.Errorf("+6 dB low shelf did not raise a 60 Hz tone")
	}
}

func TestReverbDisabledIsIdentity(t *testing.T) {
	r := NewReverb(testRate)
	r.Set(false, 1.5, 0.02, 0.3)
	for _, x := range sineAt(100, 1024) {
		if got := r.Process(x); got != x {
			t.Fatalf("disabled reverb altered sample: %f -> %f", x, got)
		}
	}
}

func TestReverbProducesTail(t *testing.T) {
	r := NewReverb(testRate)
	r.Set(true, 1.0, 0.005, 0.5)
	// Impulse in, then silence.
	r.Process(1)
	var tail float64
	for i := 0; i < testRate/4; i++ {
		tail += math.Abs(r.Process(0))
	}
	if tail == 0 {
		t.Fatalf("reverb produced no tail after an impulse")
	}
}

func TestLimiterClampsToCeiling(t *testing.T) {
	l := NewLimiter()
	l.Set(true, -6)
	ceiling := dbToLinear(-6)
	for _, x := range []float64{-2, -1, -0.1, 0, 0.1, 1, 2} {
		got := l.Process(x)
		if math.Abs(got) > ceiling+1e-12 {
			t.Errorf("Process(%f) = %f above ceiling %f", x, got, ceiling)
		}
	}
	if got := l.Process(0.1); got != 0.1 {
		t.Errorf("sample below ceiling altered: got %f", got)
	}
}

// With every optional stage in its neutral state the chain must match a bare
// filter+EQ path sample for sample. Disabling a stage and removing it have to
// be indistinguishable.
func TestNeutralChainMatchesMinimalPath(t *testing.T) {
	chain := NewChain(testRate)

	filter := NewFilter(testRate)
	eq := NewEQ3Band(testRate)

	for i, x := range sineAt(150, 4096) {
		want := eq.Process(filter.Process(x))
		got := chain.Process(x)
		if got != want {
			t.Fatalf("neutral chain diverged from minimal path at sample %d: %f vs %f", i, got, want)
		}
	}
}

func TestChainLFOModulatesFilterCutoff(t *testing.T) {
	modulated := NewChain(testRate)
	modulated.SetFilter(FilterLP, 500, 2)
	modulated.SetLFO(true, 5, 0, 1)

	static := NewChain(testRate)
	static.SetFilter(FilterLP, 500, 2)

	var differed bool
	for _, x := range sineAt(500, testRate/2) {
		if modulated.Process(x) != static.Process(x) {
			differed = true
			break
		}
	}
	if !differed {
		t.Fatalf("enabled LFO produced output identical to the static filter")
	}
}

func TestChainLFODisableClearsModulation(t *testing.T) {
	c := NewChain(testRate)
	c.SetFilter(FilterLP, 500, 2)
	c.SetLFO(true, 5, 0, 1)
	for _, x := range sineAt(500, 4096) {
		c.Process(x)
	}
	c.SetLFO(false, 5, 0, 1)
	if c.filter.lfoMod != 0 {
		t.Fatalf("filter modulation = %f after disabling the LFO, want 0", c.filter.lfoMod)
	}
	c.Reset()

	fresh := NewChain(testRate)
	fresh.SetFilter(FilterLP, 500, 2)
	for i, x := range sineAt(500, 4096) {
		a, b := c.Process(x), fresh.Process(x)
		if a != b {
			t.Fatalf("disabled LFO still bends the filter at sample %d: %f vs %f", i, a, b)
		}
	}
}

func TestChainLFOZeroDepthStaysDisabled(t *testing.T) {
	c := NewChain(testRate)
	c.SetLFO(true, 5, 0, 0)

	static := NewChain(testRate)
	for i, x := range sineAt(500, 2048) {
		a, b := c.Process(x), static.Process(x)
		if a != b {
			t.Fatalf("zero-depth LFO changed output at sample %d: %f vs %f", i, a, b)
		}
	}
}

func TestChainLimiterSkippedWhenDisabled(t *testing.T) {
	on := NewChain(testRate)
	on.SetLimiter(true, -40)
	off := NewChain(testRate)
	off.SetLimiter(false, -40)

	var differed bool
	for _, x := range sineAt(100, 4096) {
		if on.Process(x) != off.Process(x) {
			differed = true
			break
		}
	}
	if !differed {
		t.Errorf("a -40 dB limiter should change a full-scale signal when enabled")
	}
}
