package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// ErrUnavailable is returned when the audio device cannot be opened.
var ErrUnavailable = errors.New("audio: output unavailable")

// Output plays finished streamers.
type Output interface {
	Play(s beep.Streamer) error
}

// Speaker is the process-wide sound card. beep's speaker is global, so every
// voice shares one Speaker and it is initialized on the first Play.
type Speaker struct {
	rate beep.SampleRate

	once sync.Once
	err  error
}

// NewSpeaker returns an output for the given sample rate.
func NewSpeaker(sampleRate int) *Speaker {
	if sampleRate <= 0 {
		sampleRate = DefaultConfig().SampleRate
	}
	return &Speaker{rate: beep.SampleRate(sampleRate)}
}

// Init opens the device. Safe to call many times; only the first call counts.
func (s *Speaker) Init() error {
	s.once.Do(func() {
		if err := speaker.Init(s.rate, s.rate.N(100*time.Millisecond)); err != nil {
			s.err = fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	})
	return s.err
}

// Play mixes s into the output.
func (s *Speaker) Play(st beep.Streamer) error {
	if err := s.Init(); err != nil {
		return err
	}
	speaker.Play(st)
	return nil
}

// Discard drains nothing and plays nothing. Used when audio is disabled.
type Discard struct{}

func (Discard) Play(beep.Streamer) error { return nil }
