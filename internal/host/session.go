package host

import (
	"context"
	"scratchcard/internal/audio"
	"scratchcard/internal/scratch"
	"scratchcard/internal/scratch/asset"
	"scratchcard/internal/scratch/frame"
	"time"
)

// Backend is what a host needs from the card API.
type Backend interface {
	scratch.CardSource
	scratch.Committer
	scratch.FillerSource
}

// Options for NewGroup.
type Options struct {
	Backend Backend
	Scratch scratch.Config
	Audio   audio.Config
	// Optional image painted on every cover
	Background string
	Hooks      scratch.Hooks
	// Nil means a loop starting now
	Loop *frame.Loop
}

// NewGroup wires a card group to the backend, the speaker and the background
// image, then starts loading the card list.
func NewGroup(ctx context.Context, opts Options) *scratch.Group {
	loop := opts.Loop
	if loop == nil {
		loop = frame.New(time.Now())
	}

	var bg *asset.Image
	if opts.Background != "" {
		bg = asset.LoadFile(opts.Background)
	}

	g := scratch.NewGroup(ctx, scratch.GroupDeps{
		Loop:       loop,
		Config:     opts.Scratch,
		Committer:  opts.Backend,
		Filler:     opts.Backend,
		Source:     opts.Backend,
		Voices:     Voices(opts.Audio),
		Hooks:      opts.Hooks,
		Background: bg,
	})
	g.Reload()
	return g
}

// Voices returns a factory of per-card voices sharing one speaker. Disabled
// audio yields voices that play nothing.
func Voices(cfg audio.Config) scratch.VoiceFactory {
	var out audio.Output = audio.Discard{}
	if cfg.Enabled {
		out = audio.NewSpeaker(cfg.SampleRate)
	}
	return func() (scratch.Voice, error) {
		v, err := audio.NewVoice(out, cfg)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
