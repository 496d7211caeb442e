package scratch

import (
	"context"
	"scratchcard/internal/model"
	"scratchcard/internal/scratch/asset"
	"scratchcard/internal/scratch/frame"
	"sort"
	"time"

	"github.com/google/uuid"
)

// CardSource lists the user's cards with outcomes already resolved.
type CardSource interface {
	ListCards(ctx context.Context) ([]model.ScratchCard, error)
}

// Committer finalizes a card's outcome. The engine calls it once per card
// and never retries.
type Committer interface {
	CommitScratch(ctx context.Context, cardID uuid.UUID) (*model.CommitResult, error)
}

// FillerSource fetches an optional message shown after a losing reveal.
type FillerSource interface {
	FetchFillerMessage(ctx context.Context) (*model.FillerMessage, error)
}

// Voice plays one feedback burst. Implementations must not block.
type Voice interface {
	Burst() error
	Close() error
}

// VoiceFactory builds a card's voice on its first accepted stroke.
type VoiceFactory func() (Voice, error)

// Result is the resolution of a card's commit.
type Result struct {
	CardID  uuid.UUID
	Outcome *model.CommitResult
	Err     error
}

// Hooks are called on the loop goroutine. Any of them may be nil.
type Hooks struct {
	// OnReveal fires once per card when the threshold latch is set
	OnReveal func(cardID uuid.UUID)
	// OnCommit fires when the commit call resolves
	OnCommit func(res Result)
	// OnFiller fires when a filler message arrives after a loss
	OnFiller func(cardID uuid.UUID, msg model.FillerMessage)
	// OnCards fires after Sync applied a new card list
	OnCards func(cards []*Card)
}

// GroupDeps зависимости группы карт
type GroupDeps struct {
	Loop      *frame.Loop
	Config    Config
	Committer Committer
	Filler    FillerSource
	Source    CardSource
	Voices    VoiceFactory
	Hooks     Hooks
	// Фоновая картинка для новых карт; может быть nil
	Background *asset.Image
}

// Group is a set of cards sharing one commit slot. All methods except
// Reload must be called on the loop goroutine.
type Group struct {
	ctx    context.Context
	loop   *frame.Loop
	cfg    Config
	slot   *Slot
	deps   GroupDeps
	cards  map[uuid.UUID]*Card
	active *Card // карта, получившая нажатие (один контакт)
}

// NewGroup creates a group. ctx bounds every remote call the group makes.
func NewGroup(ctx context.Context, deps GroupDeps) *Group {
	if deps.Loop == nil {
		deps.Loop = frame.New(time.Now())
	}
	return &Group{
		ctx:   ctx,
		loop:  deps.Loop,
		cfg:   deps.Config.withDefaults(),
		slot:  NewSlot(),
		deps:  deps,
		cards: make(map[uuid.UUID]*Card),
	}
}

// Loop returns the loop the group runs on.
func (g *Group) Loop() *frame.Loop { return g.loop }

// Slot returns the group's commit slot.
func (g *Group) Slot() *Slot { return g.slot }

// Config returns the effective configuration.
func (g *Group) Config() Config { return g.cfg }

// Card returns the controller for id.
func (g *Group) Card(id uuid.UUID) (*Card, bool) {
	c, ok := g.cards[id]
	return c, ok
}

// Cards returns controllers ordered by card number.
func (g *Group) Cards() []*Card {
	out := make([]*Card, 0, len(g.cards))
	for _, c := range g.cards {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].card.CardNumber == out[j].card.CardNumber {
			return out[i].card.ID.String() < out[j].card.ID.String()
		}
		return out[i].card.CardNumber < out[j].card.CardNumber
	})
	return out
}

// Sync applies a fresh card list: new cards get controllers, known cards
// take the new snapshot, cards missing from the list are unmounted.
func (g *Group) Sync(cards []model.ScratchCard) {
	seen := make(map[uuid.UUID]struct{}, len(cards))
	for _, mc := range cards {
		seen[mc.ID] = struct{}{}
		if c, ok := g.cards[mc.ID]; ok {
			c.Sync(mc)
			continue
		}
		g.cards[mc.ID] = newCard(g, mc)
	}
	for id, c := range g.cards {
		if _, ok := seen[id]; ok {
			continue
		}
		c.Unmount()
		if g.active == c {
			g.active = nil
		}
		delete(g.cards, id)
	}

	Logger().Debug("scratch: cards synced", "count", len(g.cards))
	if g.deps.Hooks.OnCards != nil {
		g.deps.Hooks.OnCards(g.Cards())
	}
}

// Reload fetches the card list in the background and applies it on the loop.
// Errors leave the current cards untouched.
func (g *Group) Reload() {
	if g.deps.Source == nil {
		return
	}
	go func() {
		cards, err := g.deps.Source.ListCards(g.ctx)
		if err != nil {
			Logger().Warn("scratch: reload cards", "error", err)
			return
		}
		g.loop.Post(func() { g.Sync(cards) })
	}()
}

// CardAt returns the mounted card whose surface contains p.
func (g *Group) CardAt(p Point) (*Card, bool) {
	for _, c := range g.cards {
		if c.surface != nil && c.surface.Contains(p) {
			return c, true
		}
	}
	return nil, false
}

// PointerDown routes a press to the card under p and captures the pointer.
func (g *Group) PointerDown(p Point, now time.Time) {
	c, ok := g.CardAt(p)
	if !ok {
		return
	}
	g.active = c
	c.PointerDown(p, now)
}

// PointerMove forwards movement to the card that got the press.
func (g *Group) PointerMove(p Point, now time.Time) {
	if g.active == nil {
		return
	}
	g.active.PointerMove(p, now)
}

// PointerUp ends the current stroke.
func (g *Group) PointerUp() {
	if g.active == nil {
		return
	}
	g.active.PointerUp()
	g.active = nil
}

// Close unmounts every card.
func (g *Group) Close() {
	for _, c := range g.cards {
		c.Unmount()
	}
	g.active = nil
}

// commit runs the remote call for c while holding the slot. The slot is
// released when the call resolves, whatever the outcome.
func (g *Group) commit(c *Card) {
	id := c.card.ID
	if g.deps.Committer == nil {
		c.finish(nil, errNoCommitter)
		return
	}

	go func() {
		if err := g.slot.Acquire(g.ctx, id); err != nil {
			g.loop.Post(func() { c.finish(nil, err) })
			return
		}
		res, err := g.deps.Committer.CommitScratch(g.ctx, id)
		g.slot.Release(id)
		g.loop.Post(func() { c.finish(res, err) })
	}()
}

// fetchFiller enriches a losing card. Failures leave the card without one.
func (g *Group) fetchFiller(c *Card) {
	if g.deps.Filler == nil {
		return
	}
	id := c.card.ID
	go func() {
		msg, err := g.deps.Filler.FetchFillerMessage(g.ctx)
		if err != nil || msg == nil {
			return
		}
		g.loop.Post(func() {
			c.filler = msg
			if g.deps.Hooks.OnFiller != nil {
				g.deps.Hooks.OnFiller(id, *msg)
			}
		})
	}()
}
