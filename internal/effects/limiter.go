package effects

// Limiter is a hard ceiling at the configured threshold. It is the one stage
// the chain physically routes around when disabled: a limiter has no
// transparent parameterization, so Enabled gates its membership in the path.
type Limiter struct {
	enabled bool
	ceiling float64 // linear
}

func NewLimiter() *Limiter {
	l := &Limiter{}
	l.Set(false, 0)
	return l
}

func (l *Limiter) Set(enabled bool, thresholdDB float64) {
	l.enabled = enabled
	l.ceiling = dbToLinear(thresholdDB)
}

func (l *Limiter) Enabled() bool { return l.enabled }

func (l *Limiter) Process(x float64) float64 {
	if x > l.ceiling {
		return l.ceiling
	}
	if x < -l.ceiling {
		return -l.ceiling
	}
	return x
}

func (l *Limiter) Reset() {}
