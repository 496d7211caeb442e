// Package term hosts a card group in a terminal. Each character cell covers
// a block of the mask; the block's mean alpha picks a shade rune.
package term

import (
	"context"
	"scratchcard/internal/host"
	"scratchcard/internal/scratch"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Logical pixels per character cell. Terminal cells are about twice as tall
// as wide.
const (
	CellW = 4.0
	CellH = 8.0
)

var (
	styleDefault = tcell.StyleDefault
	styleCover   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xb8, 0xb8, 0xc0)).Background(tcell.ColorBlack)
	styleFace    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(0xf4, 0xee, 0xdc))
	styleWon     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(0xff, 0xd7, 0x5e))
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// shades from fully covered to almost gone
var shades = []rune{'█', '▓', '▒', '░'}

// Shade picks the rune for a block with the given mean alpha. Zero means
// the block is revealed and the face shows through.
func Shade(alpha uint8) (rune, bool) {
	switch {
	case alpha == 0:
		return 0, false
	case alpha >= 192:
		return shades[0], true
	case alpha >= 128:
		return shades[1], true
	case alpha >= 64:
		return shades[2], true
	default:
		return shades[3], true
	}
}

// Grid lays out cards of the given size in cell-aligned slots.
func Grid(cell scratch.Box) host.Grid {
	return host.Grid{Cols: 2, Cell: cell, Gap: 4 * CellW, Margin: CellH, Caption: CellH}
}

// ToPoint returns the logical point at the centre of cell (x, y).
func ToPoint(x, y int) scratch.Point {
	return scratch.Point{X: (float64(x) + 0.5) * CellW, Y: (float64(y) + 0.5) * CellH}
}

// View draws the group onto a tcell screen and feeds it mouse input.
type View struct {
	screen  tcell.Screen
	group   *scratch.Group
	grid    host.Grid
	tracker *host.Tracker
	cards   []*scratch.Card
}

func New(screen tcell.Screen, group *scratch.Group, grid host.Grid) *View {
	return &View{
		screen:  screen,
		group:   group,
		grid:    grid,
		tracker: host.NewTracker(group),
	}
}

// SetCards is meant for scratch.Hooks.OnCards.
func (v *View) SetCards(cards []*scratch.Card) {
	v.cards = cards
}

// Handle applies one terminal event. It returns false when the user asked
// to quit.
func (v *View) Handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			v.group.Reload()
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		v.tracker.Update(ev.Buttons()&tcell.Button1 != 0, ToPoint(x, y), now)
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// Tick advances the engine to now, mounting cards that need a surface.
func (v *View) Tick(now time.Time) {
	for i, c := range v.cards {
		if c.Surface() == nil {
			c.Mount(v.grid.Cell, 1, nil)
		}
		c.SetOrigin(v.grid.Origin(i))
	}
	v.group.Loop().Step(now)
}

// Draw renders every card and its status line.
func (v *View) Draw() {
	v.screen.Clear()
	for i, c := range v.cards {
		v.drawCard(c, v.grid.Origin(i))
	}
	v.screen.Show()
}

func (v *View) drawCard(c *scratch.Card, o scratch.Point) {
	x0, y0 := int(o.X/CellW), int(o.Y/CellH)
	cols, rows := int(v.grid.Cell.W/CellW), int(v.grid.Cell.H/CellH)

	face := styleFace
	if res := c.Result(); res != nil && res.Outcome != nil && res.Outcome.Won {
		face = styleWon
	}
	hidden := []rune("?")
	if c.Result() != nil || c.Card().IsScratched {
		hidden = []rune(host.Status(c))
	}
	// текст по центру карты
	hy := rows / 2
	hx := max((cols-len(hidden))/2, 0)

	var pix []byte
	var stride, bw, bh int
	if s := c.Surface(); s != nil {
		if p, err := s.Pixels(); err == nil {
			pix = p
			stride, _ = s.PixelSize()
			bw = max(int(CellW*s.DPR()), 1)
			bh = max(int(CellH*s.DPR()), 1)
		}
	}

	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			r, st := ' ', face
			if cy == hy && cx >= hx && cx-hx < len(hidden) {
				r = hidden[cx-hx]
			}
			if pix != nil {
				if sr, covered := Shade(host.AlphaAt(pix, stride, cx*bw, cy*bh, bw, bh)); covered {
					r, st = sr, styleCover
				}
			}
			v.screen.SetContent(x0+cx, y0+cy, r, nil, st)
		}
	}
	putString(v.screen, x0, y0+rows, host.Status(c), styleStatus)
}

func putString(s tcell.Screen, x, y int, str string, st tcell.Style) {
	for i, r := range []rune(str) {
		s.SetContent(x+i, y, r, nil, st)
	}
}

// Run polls terminal events and redraws at about 60 FPS until ctx is done
// or the user quits.
func (v *View) Run(ctx context.Context) error {
	v.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	v.screen.SetStyle(styleDefault)

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	go v.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !v.Handle(ev, time.Now()) {
				return nil
			}
		case now := <-ticker.C:
			v.Tick(now)
			v.Draw()
		}
	}
}
