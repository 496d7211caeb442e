package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Уровень, к которому затухает огибающая
const decayFloor = 0.001

// noise generates white noise in [-1, 1], the same value on both channels.
type noise struct {
	rng *rand.Rand
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := n.rng.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (n *noise) Err() error { return nil }

// highPass is a second-order high-pass biquad (RBJ cookbook, Q = 1/sqrt2).
type highPass struct {
	streamer beep.Streamer

	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     [2]float64
}

func newHighPass(s beep.Streamer, cutoff float64, rate beep.SampleRate) *highPass {
	w0 := 2 * math.Pi * cutoff / float64(rate)
	cos := math.Cos(w0)
	alpha := math.Sin(w0) / math.Sqrt2 // sin(w0) / 2Q
	a0 := 1 + alpha

	return &highPass{
		streamer: s,
		b0:       (1 + cos) / 2 / a0,
		b1:       -(1 + cos) / a0,
		b2:       (1 + cos) / 2 / a0,
		a1:       -2 * cos / a0,
		a2:       (1 - alpha) / a0,
	}
}

func (f *highPass) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		for ch := 0; ch < 2; ch++ {
			x := samples[i][ch]
			y := f.b0*x + f.b1*f.x1[ch] + f.b2*f.x2[ch] - f.a1*f.y1[ch] - f.a2*f.y2[ch]
			f.x2[ch], f.x1[ch] = f.x1[ch], x
			f.y2[ch], f.y1[ch] = f.y1[ch], y
			samples[i][ch] = y
		}
	}
	return n, ok
}

func (f *highPass) Err() error { return f.streamer.Err() }

// envelope ramps linearly from 0 to peak over the attack, then decays
// exponentially to decayFloor*peak by the end of the burst.
type envelope struct {
	streamer beep.Streamer
	peak     float64
	attack   int
	total    int
	position int
}

func newEnvelope(s beep.Streamer, peak float64, attack, duration time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		peak:     peak,
		attack:   rate.N(attack),
		total:    rate.N(duration),
	}
}

func (e *envelope) gain(pos int) float64 {
	if pos < e.attack {
		return e.peak * float64(pos) / float64(e.attack)
	}
	decay := e.total - e.attack
	if decay <= 0 {
		return e.peak
	}
	t := float64(pos-e.attack) / float64(decay)
	return e.peak * math.Pow(decayFloor, t)
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	if e.position >= e.total {
		return 0, false
	}
	if rest := e.total - e.position; len(samples) > rest {
		samples = samples[:rest]
	}

	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain(e.position)
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; zero means silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// NewBurst builds one scratch sound: white noise through a high-pass with a
// random cutoff in the configured band, shaped by the attack/decay envelope.
func NewBurst(cfg Config, rng *rand.Rand) beep.Streamer {
	cfg = cfg.withDefaults()
	rate := beep.SampleRate(cfg.SampleRate)

	cutoff := cfg.CutoffMin + rng.Float64()*(cfg.CutoffMax-cfg.CutoffMin)
	filtered := newHighPass(&noise{rng: rng}, cutoff, rate)
	shaped := newEnvelope(filtered, cfg.Peak, cfg.Attack, cfg.Duration, rate)

	return beep.Take(rate.N(cfg.Duration), newVolume(shaped, cfg.Volume))
}
