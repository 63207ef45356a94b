package voice

type envStage int

const (
	envIdle envStage = iota
	envAttack
	envDecay
	envSustain
	envRelease
)

// ADSRConfig holds envelope times in seconds and the sustain level (0-1).
type ADSRConfig struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// ADSR is a level-based attack/decay/sustain/release envelope advanced one
// sample at a time. Level-based means Trigger never snaps the output: a
// re-trigger restarts the attack from the current level, so retriggering a
// voice mid-release cannot click or deadlock the envelope.
type ADSR struct {
	sampleRate  float64
	cfg         ADSRConfig
	stage       envStage
	level       float64
	releaseStep float64
}

func NewADSR(sampleRate float64, cfg ADSRConfig) *ADSR {
	return &ADSR{sampleRate: sampleRate, cfg: cfg}
}

func (e *ADSR) Configure(cfg ADSRConfig) {
	e.cfg = cfg
}

// Trigger restarts the attack stage from the current level.
func (e *ADSR) Trigger() {
	e.stage = envAttack
}

// Release starts the release ramp from wherever the level currently is.
// Calling it while already idle or releasing is harmless.
func (e *ADSR) Release() {
	if e.stage == envIdle || e.stage == envRelease {
		return
	}
	e.stage = envRelease
	frames := e.cfg.Release * e.sampleRate
	if frames < 1 {
		frames = 1
	}
	e.releaseStep = e.level / frames
}

// Next advances the envelope by one sample and returns the new level.
func (e *ADSR) Next() float64 {
	switch e.stage {
	case envAttack:
		step := 1.0 / (e.cfg.Attack * e.sampleRate)
		if step <= 0 || step > 1 {
			step = 1
		}
		e.level += step
		if e.level >= 1 {
			e.level = 1
			e.stage = envDecay
		}
	case envDecay:
		frames := e.cfg.Decay * e.sampleRate
		if frames < 1 {
			frames = 1
		}
		e.level -= (1 - e.cfg.Sustain) / frames
		if e.level <= e.cfg.Sustain {
			e.level = e.cfg.Sustain
			if e.cfg.Sustain <= 0 {
				e.level = 0
				e.stage = envIdle
			} else {
				e.stage = envSustain
			}
		}
	case envSustain:
		e.level = e.cfg.Sustain
	case envRelease:
		e.level -= e.releaseStep
		if e.level <= 0 {
			e.level = 0
			e.stage = envIdle
		}
	}
	return e.level
}

// Active reports whether the envelope is producing a non-idle level.
func (e *ADSR) Active() bool {
	return e.stage != envIdle || e.level > 0
}

// Level returns the current level without advancing.
func (e *ADSR) Level() float64 { return e.level }
