package scratch

import (
	"context"
	"errors"
	"scratchcard/internal/model"
	"scratchcard/internal/scratch/frame"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

var epoch = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// fakeCommitter records calls and the peak number of concurrent calls.
type fakeCommitter struct {
	mu          sync.Mutex
	calls       []uuid.UUID
	inFlight    int
	maxInFlight int

	gate   chan struct{} // каждый вызов ждёт сигнала, если не nil
	errFor map[uuid.UUID]error
	won    bool
}

func (f *fakeCommitter) CommitScratch(ctx context.Context, id uuid.UUID) (*model.CommitResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, id)
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	gate := f.gate
	err := f.errFor[id]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
		}
	}

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return &model.CommitResult{CardID: id, Won: f.won, Message: "done"}, nil
}

func (f *fakeCommitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeCommitter) peak() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxInFlight
}

type fakeFiller struct {
	msg *model.FillerMessage
	err error
}

func (f fakeFiller) FetchFillerMessage(context.Context) (*model.FillerMessage, error) {
	return f.msg, f.err
}

type fakeVoice struct {
	bursts int
	closed bool
	err    error
}

func (v *fakeVoice) Burst() error {
	v.bursts++
	return v.err
}

func (v *fakeVoice) Close() error {
	v.closed = true
	return nil
}

var errBoom = errors.New("boom")

// harness is a group on a manually stepped loop.
type harness struct {
	t       *testing.T
	loop    *frame.Loop
	group   *Group
	now     time.Time
	reveals map[uuid.UUID]int
	commits []Result
}

func newHarness(t *testing.T, deps GroupDeps) *harness {
	t.Helper()

	h := &harness{
		t:       t,
		loop:    frame.New(epoch),
		now:     epoch,
		reveals: make(map[uuid.UUID]int),
	}
	deps.Loop = h.loop
	onReveal := deps.Hooks.OnReveal
	deps.Hooks.OnReveal = func(id uuid.UUID) {
		h.reveals[id]++
		if onReveal != nil {
			onReveal(id)
		}
	}
	onCommit := deps.Hooks.OnCommit
	deps.Hooks.OnCommit = func(res Result) {
		h.commits = append(h.commits, res)
		if onCommit != nil {
			onCommit(res)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h.group = NewGroup(ctx, deps)
	return h
}

// addCard registers an unscratched card and returns its controller.
func (h *harness) addCard(number int) *Card {
	h.t.Helper()

	mc := model.ScratchCard{ID: uuid.New(), CardNumber: number}
	cards := []model.ScratchCard{mc}
	for _, c := range h.group.Cards() {
		cards = append(cards, c.Card())
	}
	h.group.Sync(cards)

	c, ok := h.group.Card(mc.ID)
	if !ok {
		h.t.Fatalf("card %d not registered", number)
	}
	return c
}

// step advances the loop by d.
func (h *harness) step(d time.Duration) {
	h.now = h.now.Add(d)
	h.loop.Step(h.now)
}

// frame advances the loop by one frame.
func (h *harness) frame() {
	h.step(frame.DefaultInterval)
}

// waitFor steps frames until cond holds, failing after a real-time timeout.
func (h *harness) waitFor(what string, cond func() bool) {
	h.t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			h.t.Fatalf("timed out waiting for %s", what)
		}
		h.frame()
		time.Sleep(time.Millisecond)
	}
}

// setAlpha overwrites every pixel's alpha with fn(pixelIndex).
func setAlpha(t *testing.T, c *Card, fn func(i int) uint8) {
	t.Helper()

	pix, err := c.Surface().Pixels()
	if err != nil {
		t.Fatalf("Pixels() error = %v", err)
	}
	for i := 0; i*4+3 < len(pix); i++ {
		pix[i*4+3] = fn(i)
	}
	c.dirty = true
}

// eraseAll clears the whole mask as if the user scratched everything off.
func eraseAll(t *testing.T, c *Card) {
	t.Helper()
	setAlpha(t, c, func(int) uint8 { return 0 })
}
