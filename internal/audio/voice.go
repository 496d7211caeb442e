package audio

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// ErrClosed is returned by Burst after Close.
var ErrClosed = errors.New("audio: voice closed")

// Voice produces scratch bursts for one card.
type Voice struct {
	out Output
	cfg Config

	mu     sync.Mutex
	rng    *rand.Rand
	closed bool
}

// NewVoice creates a voice playing through out. The device is opened here,
// so an unavailable output fails construction rather than every burst.
func NewVoice(out Output, cfg Config) (*Voice, error) {
	if out == nil {
		return nil, ErrUnavailable
	}
	if s, ok := out.(*Speaker); ok {
		if err := s.Init(); err != nil {
			return nil, err
		}
	}
	return &Voice{
		out: out,
		cfg: cfg.withDefaults(),
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Burst plays one filtered-noise burst and returns immediately.
func (v *Voice) Burst() error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	s := NewBurst(v.cfg, v.rng)
	v.mu.Unlock()

	return v.out.Play(s)
}

// Close stops the voice; bursts already playing run out on their own.
func (v *Voice) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	return nil
}
