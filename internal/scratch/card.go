package scratch

import (
	"errors"
	"scratchcard/internal/model"
	"scratchcard/internal/scratch/asset"
	"scratchcard/internal/scratch/frame"
	"time"
)

var errNoCommitter = errors.New("scratch: no committer configured")

// Card drives one scratch card: its surface, the session of the current
// unscratched lifetime and the reveal state. Every method must be called
// on the group's loop goroutine.
type Card struct {
	group *Group
	cfg   Config
	card  model.ScratchCard

	surface *Surface
	sampler *frame.Handle
	reveal  *frame.Handle

	voice       Voice
	voiceFailed bool

	// сессия
	state      State
	pressed    bool
	last       Point
	hasLast    bool
	progress   float64
	dirty      bool
	lastStroke time.Time
	lastSound  time.Time

	result *Result
	filler *model.FillerMessage
}

func newCard(g *Group, mc model.ScratchCard) *Card {
	c := &Card{group: g, cfg: g.cfg, card: mc}
	if mc.IsScratched {
		c.state = StateCommitted
	}
	return c
}

// Card returns the latest snapshot from the data layer.
func (c *Card) Card() model.ScratchCard { return c.card }

// State returns the reveal state.
func (c *Card) State() State { return c.state }

// Progress returns the revealed fraction seen by the last sample.
func (c *Card) Progress() float64 { return c.progress }

// Surface returns the live surface, nil when unmounted.
func (c *Card) Surface() *Surface { return c.surface }

// Pressed reports whether a stroke is in progress.
func (c *Card) Pressed() bool { return c.pressed }

// Result returns the commit resolution, nil before it.
func (c *Card) Result() *Result { return c.result }

// Filler returns the filler message fetched after a loss.
func (c *Card) Filler() *model.FillerMessage { return c.filler }

// Locked reports whether erasing is refused right now.
func (c *Card) Locked() bool {
	return !c.canErase()
}

// Mount creates the surface and starts the sampler. It does nothing when
// the card is scratched, the reveal latch is set or a surface is live.
// A zero box falls back to the configured default size. If bg is still
// loading, the image is drawn when it arrives unless the surface was
// released or already erased by then.
func (c *Card) Mount(box Box, dpr float64, bg *asset.Image) bool {
	if c.card.IsScratched || c.state.Latched() || c.surface != nil {
		return false
	}
	if box.Empty() {
		box = Box{W: c.cfg.DefaultWidth, H: c.cfg.DefaultHeight}
	}
	if bg == nil {
		bg = c.group.deps.Background
	}

	s := newSurface(box, dpr, c.cfg.StrokeRadius)
	if err := s.paintCover(c.cfg); err != nil {
		s.Release()
		return false
	}
	if img, ok := bg.Get(); ok {
		s.drawBackground(img)
	} else if bg != nil {
		c.awaitBackground(s, bg)
	}
	s.drawLabel(c.cfg)

	c.surface = s
	c.progress = 0
	c.dirty = false
	c.hasLast = false
	c.pressed = false
	c.startSampler()

	Logger().Debug("scratch: card mounted",
		"card", c.card.ID, "box", box, "dpr", s.DPR())
	return true
}

// awaitBackground draws bg onto s once it loads. The draw is skipped if the
// surface is released first or the user already erased part of it.
func (c *Card) awaitBackground(s *Surface, bg *asset.Image) {
	loop := c.group.loop
	go func() {
		select {
		case <-bg.Done():
		case <-s.Done():
			return
		}
		loop.Post(func() {
			if !s.Alive() || s.erased {
				return
			}
			img, ok := bg.Get()
			if !ok {
				return
			}
			s.drawBackground(img)
			s.drawLabel(c.cfg)
		})
	}()
}

// Unmount releases the surface, the sampler and the voice. A commit that
// is already scheduled still runs.
func (c *Card) Unmount() {
	c.stopSampler()
	if c.surface != nil {
		c.surface.Release()
		c.surface = nil
	}
	if c.voice != nil {
		_ = c.voice.Close()
		c.voice = nil
	}
	c.pressed = false
	c.hasLast = false
	c.dirty = false
}

// SetOrigin moves the surface to a new on-screen position.
func (c *Card) SetOrigin(p Point) {
	if c.surface != nil {
		c.surface.origin = p
	}
}

// Sync takes a new snapshot of the card from the data layer.
func (c *Card) Sync(mc model.ScratchCard) {
	if mc.ID != c.card.ID {
		c.Unmount()
		c.reveal.Cancel()
		c.reveal = nil
		*c = Card{group: c.group, cfg: c.cfg, card: mc}
		if mc.IsScratched {
			c.state = StateCommitted
		}
		return
	}

	wasScratched := c.card.IsScratched
	c.card = mc
	if mc.IsScratched && !wasScratched {
		c.settle()
	}
}

// settle handles the card turning scratched server side: the session ends
// for good and the card never goes back to idle.
func (c *Card) settle() {
	c.reveal.Cancel()
	c.reveal = nil
	c.Unmount()
	c.progress = 0
	c.lastStroke = time.Time{}
	c.lastSound = time.Time{}
	c.state = StateCommitted
	Logger().Debug("scratch: card settled", "card", c.card.ID)
}

// canErase gates input: no erasing once scratched, once the latch is set,
// or while any card of the group holds the commit slot.
func (c *Card) canErase() bool {
	if c.card.IsScratched || c.state.Latched() || c.surface == nil {
		return false
	}
	return !c.group.slot.Busy()
}

// PointerDown starts a stroke at screen point p.
func (c *Card) PointerDown(p Point, now time.Time) {
	if !c.canErase() {
		return
	}
	c.pressed = true
	c.hasLast = false
	c.stroke(p, now)
}

// PointerMove continues the stroke while the pointer is pressed.
func (c *Card) PointerMove(p Point, now time.Time) {
	if !c.pressed {
		return
	}
	c.stroke(p, now)
}

// PointerUp ends the stroke; the next press starts with a disc.
func (c *Card) PointerUp() {
	c.pressed = false
	c.hasLast = false
}

// stroke erases at p if the sample passes the gate and the throttle.
// Samples inside the throttle window are dropped.
func (c *Card) stroke(p Point, now time.Time) bool {
	if !c.canErase() {
		// после снятия блокировки штрих начинается заново с диска
		c.hasLast = false
		return false
	}
	if !c.lastStroke.IsZero() && now.Sub(c.lastStroke) < c.cfg.StrokeInterval {
		return false
	}
	local, ok := c.surface.ToLocal(p)
	if !ok {
		return false
	}

	var err error
	if c.hasLast {
		err = c.surface.EraseSegment(c.last, local)
	} else {
		err = c.surface.EraseDisc(local)
	}
	if err != nil {
		return false
	}

	c.lastStroke = now
	c.last = local
	c.hasLast = true
	c.dirty = true
	if c.state == StateIdle {
		c.state = StateScratching
		Logger().Debug("scratch: scratching", "card", c.card.ID)
	}
	c.feedback(now)
	return true
}

// feedback plays a burst if the sound interval has passed. Audio problems
// never reach the erase pipeline.
func (c *Card) feedback(now time.Time) {
	if !c.lastSound.IsZero() && now.Sub(c.lastSound) < c.cfg.SoundInterval {
		return
	}
	c.lastSound = now

	v := c.ensureVoice()
	if v == nil {
		return
	}
	_ = v.Burst()
}

func (c *Card) ensureVoice() Voice {
	if c.voice != nil || c.voiceFailed {
		return c.voice
	}
	factory := c.group.deps.Voices
	if factory == nil {
		c.voiceFailed = true
		return nil
	}
	v, err := factory()
	if err != nil || v == nil {
		c.voiceFailed = true
		return nil
	}
	c.voice = v
	return v
}

// latch sets the one-shot reveal latch, locks input and schedules the
// commit after the suspense delay.
func (c *Card) latch() {
	c.state = StateThresholdReached
	c.pressed = false
	c.hasLast = false
	c.stopSampler()
	Logger().Debug("scratch: threshold reached",
		"card", c.card.ID, "progress", c.progress)
	if h := c.group.deps.Hooks.OnReveal; h != nil {
		h(c.card.ID)
	}

	c.state = StateRevealing
	c.reveal = c.group.loop.After(c.cfg.RevealDelay, func() {
		c.reveal = nil
		c.group.commit(c)
	})
}

// finish records the commit resolution. A failed commit does not roll the
// card back: the mask stays as the user left it.
func (c *Card) finish(res *model.CommitResult, err error) {
	c.state = StateCommitted
	c.result = &Result{CardID: c.card.ID, Outcome: res, Err: err}

	if err != nil {
		Logger().Warn("scratch: commit failed", "card", c.card.ID, "error", err)
	} else {
		Logger().Debug("scratch: committed", "card", c.card.ID, "won", res != nil && res.Won)
	}
	if h := c.group.deps.Hooks.OnCommit; h != nil {
		h(*c.result)
	}
	if err == nil && res != nil && !res.Won {
		c.group.fetchFiller(c)
	}
}
