package host

import (
	"context"
	"scratchcard/internal/audio"
	"scratchcard/internal/model"
	"scratchcard/internal/scratch"
	"scratchcard/internal/scratch/frame"
	"testing"
	"time"

	"github.com/google/uuid"
)

type event struct {
	kind string
	p    scratch.Point
}

type recorder struct {
	events []event
}

func (r *recorder) PointerDown(p scratch.Point, _ time.Time) {
	r.events = append(r.events, event{"down", p})
}

func (r *recorder) PointerMove(p scratch.Point, _ time.Time) {
	r.events = append(r.events, event{"move", p})
}

func (r *recorder) PointerUp() {
	r.events = append(r.events, event{kind: "up"})
}

func TestTracker(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker(rec)
	now := time.Now()

	a, b := scratch.Point{X: 1, Y: 1}, scratch.Point{X: 5, Y: 1}
	tr.Update(false, a, now)
	tr.Update(true, a, now)
	tr.Update(true, a, now)
	tr.Update(true, b, now)
	tr.Update(false, b, now)
	tr.Update(false, a, now)

	want := []event{{"down", a}, {"move", b}, {kind: "up"}}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %+v, want %+v", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, rec.events[i], want[i])
		}
	}
}

func TestGrid(t *testing.T) {
	g := Grid{Cols: 2, Cell: scratch.Box{W: 200, H: 110}, Gap: 10, Margin: 20, Caption: 16}

	if got := g.Origin(0); got != (scratch.Point{X: 20, Y: 20}) {
		t.Errorf("Origin(0) = %+v", got)
	}
	if got := g.Origin(3); got != (scratch.Point{X: 230, Y: 156}) {
		t.Errorf("Origin(3) = %+v", got)
	}
	if w, h := g.Size(3); w != 450 || h != 302 {
		t.Errorf("Size(3) = %vx%v, want 450x302", w, h)
	}
	if w, _ := g.Size(1); w != 240 {
		t.Errorf("Size(1) width = %v, want 240", w)
	}
}

func TestPremultiply(t *testing.T) {
	src := []byte{
		200, 100, 50, 255,
		200, 100, 50, 0,
		200, 100, 50, 51,
	}
	dst := make([]byte, len(src))
	Premultiply(dst, src)

	want := []byte{
		200, 100, 50, 255,
		0, 0, 0, 0,
		40, 20, 10, 51,
	}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst = %v, want %v", dst, want)
		}
	}
}

func TestAlphaAt(t *testing.T) {
	// 2x2: непрозрачный, прозрачный / прозрачный, непрозрачный
	pix := []byte{
		0, 0, 0, 255, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 255,
	}
	if got := AlphaAt(pix, 2, 0, 0, 2, 2); got != 127 {
		t.Errorf("AlphaAt(whole) = %d, want 127", got)
	}
	if got := AlphaAt(pix, 2, 0, 0, 1, 1); got != 255 {
		t.Errorf("AlphaAt(top-left) = %d, want 255", got)
	}
	if got := AlphaAt(pix, 2, 5, 5, 1, 1); got != 0 {
		t.Errorf("AlphaAt(outside) = %d, want 0", got)
	}
}

type fakeBackend struct {
	cards []model.ScratchCard
	won   bool
}

func (f *fakeBackend) ListCards(context.Context) ([]model.ScratchCard, error) {
	return f.cards, nil
}

func (f *fakeBackend) CommitScratch(_ context.Context, id uuid.UUID) (*model.CommitResult, error) {
	return &model.CommitResult{CardID: id, Won: f.won, Message: "Congratulations!",
		Prize: &model.Prize{Description: "coffee", Code: "C1"}}, nil
}

func (f *fakeBackend) FetchFillerMessage(context.Context) (*model.FillerMessage, error) {
	return &model.FillerMessage{Message: "next time", Emoji: "🍀"}, nil
}

func TestNewGroupLoadsCards(t *testing.T) {
	backend := &fakeBackend{cards: []model.ScratchCard{
		{ID: uuid.New(), CardNumber: 2},
		{ID: uuid.New(), CardNumber: 1, IsScratched: true},
	}}
	loop := frame.New(time.Now())
	g := NewGroup(context.Background(), Options{Backend: backend, Loop: loop})

	deadline := time.Now().Add(2 * time.Second)
	for len(g.Cards()) < 2 {
		if time.Now().After(deadline) {
			t.Fatal("cards never loaded")
		}
		loop.Step(time.Now())
		time.Sleep(time.Millisecond)
	}

	cards := g.Cards()
	if cards[0].Card().CardNumber != 1 || cards[1].Card().CardNumber != 2 {
		t.Errorf("cards out of order")
	}
	if got := Status(cards[0]); got != "No prize" {
		t.Errorf("Status(scratched loss) = %q", got)
	}
	if got := Status(cards[1]); got != "Card #2" {
		t.Errorf("Status(fresh) = %q", got)
	}
}

func TestVoicesDisabled(t *testing.T) {
	cfg := audio.DefaultConfig()
	cfg.Enabled = false

	v, err := Voices(cfg)()
	if err != nil {
		t.Fatalf("voice error = %v", err)
	}
	if err := v.Burst(); err != nil {
		t.Errorf("Burst() = %v", err)
	}
}
