package audio

import (
	"math"
	"math/rand/v2"
	"time"
)

// SampleRate is the rate of every rendered cue, in Hz.
const SampleRate = 22050

// Cue identifies a synthesized sound effect.
type Cue int

const (
	// CueHover is the "bat on ball" tick played when the selection moves.
	CueHover Cue = iota
	// CueClick is the heavier "drive" played on activation.
	CueClick
	// CueStatic is the walkie-talkie burst that brackets narrated lines.
	CueStatic
	// CueFanfare is the crowd swell that opens the intro. It is longer
	// than a transient cue.
	CueFanfare
)

func (c Cue) String() string {
	switch c {
	case CueHover:
		return "hover"
	case CueClick:
		return "click"
	case CueStatic:
		return "static"
	case CueFanfare:
		return "fanfare"
	default:
		return "unknown"
	}
}

// envelope is a piecewise exponential curve starting at start.
type envelope struct {
	start float64
	segs  []segment
}

type segment struct {
	to  float64
	dur float64 // seconds
}

func constant(v float64) envelope { return envelope{start: v} }

func expRamp(from, to, dur float64) envelope {
	return envelope{start: from, segs: []segment{{to: to, dur: dur}}}
}

func (e envelope) at(t float64) float64 {
	v := e.start
	for _, s := range e.segs {
		if t < s.dur {
			return v * math.Pow(s.to/v, t/s.dur)
		}
		t -= s.dur
		v = s.to
	}
	return v
}

// voice is one filtered noise layer. A zero cutoff disables that filter.
type voice struct {
	lowpass  envelope
	highpass envelope
	gain     envelope
	stop     float64 // seconds; zero means the whole cue
}

// onePole is a first-order IIR low-pass section.
type onePole struct{ y float64 }

func (f *onePole) step(x, cutoff float64) float64 {
	a := 1 - math.Exp(-2*math.Pi*cutoff/SampleRate)
	f.y += a * (x - f.y)
	return f.y
}

// cueSpec describes how each cue is rendered.
var cueSpec = map[Cue]struct {
	dur    float64
	voices []voice
}{
	CueHover: {dur: 0.2, voices: []voice{
		// wood thud
		{lowpass: expRamp(600, 100, 0.1), gain: expRamp(0.8, 0.01, 0.15)},
		// leather crack, band around 2.5kHz
		{lowpass: constant(3200), highpass: constant(1900), gain: expRamp(0.3, 0.01, 0.05), stop: 0.1},
	}},
	CueClick: {dur: 0.3, voices: []voice{
		{lowpass: expRamp(400, 50, 0.2), gain: expRamp(1.0, 0.01, 0.25)},
	}},
	CueStatic: {dur: 0.2, voices: []voice{
		{highpass: constant(1000), gain: expRamp(0.2, 0.01, 0.1)},
	}},
	CueFanfare: {dur: 1.5, voices: []voice{
		{
			lowpass:  constant(1800),
			highpass: constant(300),
			gain:     envelope{start: 0.02, segs: []segment{{to: 0.6, dur: 0.5}, {to: 0.01, dur: 1.0}}},
		},
		{lowpass: expRamp(500, 80, 0.3), gain: expRamp(0.9, 0.01, 0.3), stop: 0.4},
	}},
}

// Duration reports how long the rendered cue plays.
func (c Cue) Duration() time.Duration {
	spec, ok := cueSpec[c]
	if !ok {
		return 0
	}
	return time.Duration(spec.dur * float64(time.Second))
}

// noiseBuffer returns one second of white noise from a seeded source.
func noiseBuffer(seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	buf := make([]float64, SampleRate)
	for i := range buf {
		buf[i] = rng.Float64()*2 - 1
	}
	return buf
}

// Render synthesizes the PCM samples for a cue from a noise buffer.
func Render(c Cue, noise []float64) []int16 {
	spec, ok := cueSpec[c]
	if !ok || len(noise) == 0 {
		return nil
	}

	n := int(spec.dur * SampleRate)
	mix := make([]float64, n)
	for _, v := range spec.voices {
		var lp, hp onePole
		stop := n
		if v.stop > 0 {
			stop = min(n, int(v.stop*SampleRate))
		}
		for i := range stop {
			t := float64(i) / SampleRate
			x := noise[i%len(noise)]
			if f := v.lowpass.at(t); f > 0 {
				x = lp.step(x, f)
			}
			if f := v.highpass.at(t); f > 0 {
				x -= hp.step(x, f)
			}
			mix[i] += x * v.gain.at(t)
		}
	}

	out := make([]int16, n)
	for i, s := range mix {
		s = max(-1, min(1, s))
		out[i] = int16(s * math.MaxInt16)
	}
	return out
}
