package scratch

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Slot is the group-wide commit slot: at most one card owns it at a time.
// Waiters are served in arrival order. Only the owner can release it.
type Slot struct {
	mu      sync.Mutex
	held    bool
	owner   uuid.UUID
	waiters []*slotWaiter
}

type slotWaiter struct {
	id    uuid.UUID
	ready chan struct{}
}

// NewSlot создаёт свободный слот
func NewSlot() *Slot {
	return &Slot{}
}

// TryAcquire takes the slot for id if it is free.
func (s *Slot) TryAcquire(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.held {
		return false
	}
	s.held = true
	s.owner = id
	return true
}

// Acquire blocks until id owns the slot or ctx is done.
func (s *Slot) Acquire(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	if !s.held {
		s.held = true
		s.owner = id
		s.mu.Unlock()
		return nil
	}
	w := &slotWaiter{id: id, ready: make(chan struct{})}
	s.waiters = append(s.waiters, w)
	s.mu.Unlock()

	select {
	case <-w.ready:
		return nil
	case <-ctx.Done():
	}

	s.mu.Lock()
	for i, q := range s.waiters {
		if q == w {
			s.waiters = append(s.waiters[:i], s.waiters[i+1:]...)
			s.mu.Unlock()
			return ctx.Err()
		}
	}
	s.mu.Unlock()

	// слот успели передать нам одновременно с отменой: возвращаем его
	s.Release(id)
	return ctx.Err()
}

// Release frees the slot or hands it to the next waiter. It is a no-op
// unless id is the current owner.
func (s *Slot) Release(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.held || s.owner != id {
		return false
	}
	if len(s.waiters) == 0 {
		s.held = false
		s.owner = uuid.Nil
		return true
	}

	next := s.waiters[0]
	s.waiters[0] = nil
	s.waiters = s.waiters[1:]
	s.owner = next.id
	close(next.ready)
	return true
}

// Owner returns the card holding the slot.
func (s *Slot) Owner() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owner, s.held
}

// OwnedBy reports whether id holds the slot.
func (s *Slot) OwnedBy(id uuid.UUID) bool {
	owner, held := s.Owner()
	return held && owner == id
}

// Busy reports whether any card holds the slot.
func (s *Slot) Busy() bool {
	_, held := s.Owner()
	return held
}

// Waiting returns the number of queued acquirers.
func (s *Slot) Waiting() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.waiters)
}
