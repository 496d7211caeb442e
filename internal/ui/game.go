package ui

import (
	"image/color"
	"scratchcard/internal/host"
	"scratchcard/internal/scratch"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	background = color.RGBA{0x1e, 0x1f, 0x26, 0xff}
	cardFace   = color.RGBA{0xf4, 0xee, 0xdc, 0xff}
	wonFace    = color.RGBA{0xff, 0xd7, 0x5e, 0xff}
)

// view is the GPU side of one card's mask.
type view struct {
	img *ebiten.Image
	buf []byte
	rev uint64
	w   int
	h   int
}

// Game hosts a card group in an ebiten window. Coordinates inside the game
// are device pixels; the engine works in logical pixels.
type Game struct {
	group   *scratch.Group
	grid    host.Grid
	tracker *host.Tracker
	touch   ebiten.TouchID
	touched bool
	dpr     float64
	views   map[uuid.UUID]*view
	order   []*scratch.Card
}

func NewGame(group *scratch.Group, grid host.Grid) *Game {
	g := &Game{
		group: group,
		grid:  grid,
		dpr:   1,
		views: make(map[uuid.UUID]*view),
	}
	g.tracker = host.NewTracker(group)
	return g
}

// SetCards is meant for scratch.Hooks.OnCards.
func (g *Game) SetCards(cards []*scratch.Card) {
	g.order = cards
	live := make(map[uuid.UUID]struct{}, len(cards))
	for _, c := range cards {
		live[c.Card().ID] = struct{}{}
	}
	for id, v := range g.views {
		if _, ok := live[id]; !ok {
			v.img.Deallocate()
			delete(g.views, id)
		}
	}
}

func (g *Game) Update() error {
	now := time.Now()

	g.mount()
	pressed, p := g.pointer()
	g.tracker.Update(pressed, p, now)
	g.group.Loop().Step(now)

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.group.Reload()
	}
	return nil
}

// mount gives every unscratched card a surface at its grid slot.
func (g *Game) mount() {
	for i, c := range g.order {
		origin := g.grid.Origin(i)
		if c.Surface() == nil {
			c.Mount(g.grid.Cell, g.dpr, nil)
		}
		c.SetOrigin(origin)
	}
}

// pointer returns the primary contact in logical pixels: the first touch if
// any, the left mouse button otherwise.
func (g *Game) pointer() (bool, scratch.Point) {
	var ids []ebiten.TouchID
	ids = ebiten.AppendTouchIDs(ids)

	if g.touched {
		for _, id := range ids {
			if id == g.touch {
				x, y := ebiten.TouchPosition(id)
				return true, g.logical(x, y)
			}
		}
		g.touched = false
	}
	if len(ids) > 0 {
		g.touch, g.touched = ids[0], true
		x, y := ebiten.TouchPosition(ids[0])
		return true, g.logical(x, y)
	}

	x, y := ebiten.CursorPosition()
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), g.logical(x, y)
}

func (g *Game) logical(x, y int) scratch.Point {
	return scratch.Point{X: float64(x) / g.dpr, Y: float64(y) / g.dpr}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	for i, c := range g.order {
		o := g.grid.Origin(i)
		x, y := float32(o.X*g.dpr), float32(o.Y*g.dpr)
		w, h := float32(g.grid.Cell.W*g.dpr), float32(g.grid.Cell.H*g.dpr)

		face := cardFace
		if res := c.Result(); res != nil && res.Outcome != nil && res.Outcome.Won {
			face = wonFace
		}
		vector.DrawFilledRect(screen, x, y, w, h, face, false)
		// под маской: исход, пока он неизвестен, знак вопроса
		hidden := "?"
		if c.Result() != nil || c.Card().IsScratched {
			hidden = host.Status(c)
		}
		ebitenutil.DebugPrintAt(screen, hidden, int(x)+8, int(y+h/2)-8)

		if v := g.upload(c); v != nil {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(x), float64(y))
			screen.DrawImage(v.img, op)
		}
		ebitenutil.DebugPrintAt(screen, host.Status(c), int(x), int(y+h)+2)
	}
}

// upload copies the mask to its texture when it changed since the last frame.
func (g *Game) upload(c *scratch.Card) *view {
	s := c.Surface()
	id := c.Card().ID
	v := g.views[id]
	if s == nil {
		if v != nil {
			v.img.Deallocate()
			delete(g.views, id)
		}
		return nil
	}

	w, h := s.PixelSize()
	if v == nil || v.w != w || v.h != h {
		if v != nil {
			v.img.Deallocate()
		}
		v = &view{img: ebiten.NewImage(w, h), buf: make([]byte, w*h*4), w: w, h: h}
		v.rev = s.Revision() - 1
		g.views[id] = v
	}
	if v.rev == s.Revision() {
		return v
	}

	pix, err := s.Pixels()
	if err != nil {
		return nil
	}
	host.Premultiply(v.buf, pix)
	v.img.WritePixels(v.buf)
	v.rev = s.Revision()
	return v
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if m := ebiten.Monitor(); m != nil {
		g.dpr = m.DeviceScaleFactor()
	}
	return int(float64(outsideWidth) * g.dpr), int(float64(outsideHeight) * g.dpr)
}
