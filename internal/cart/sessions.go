package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const sweepInterval = 1 * time.Minute

type sessionEntry struct {
	cart     *Cart
	lastSeen time.Time
}

// Sessions maps guest session IDs to carts. Carts live in memory for the
// duration of a browsing session; entries idle past the TTL are swept by a
// background janitor.
type Sessions struct {
	mu   sync.Mutex
	ttl  time.Duration
	m    map[string]*sessionEntry
	stop chan struct{}
	done chan struct{}
}

func NewSessions(ttl time.Duration) *Sessions {
	s := &Sessions{
		ttl:  ttl,
		m:    make(map[string]*sessionEntry),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go s.sweeper()
	return s
}

// Create allocates a fresh cart under a new session ID.
func (s *Sessions) Create() (string, *Cart) {
	id := "s_" + uuid.NewString()
	c := New()

	s.mu.Lock()
	s.m[id] = &sessionEntry{cart: c, lastSeen: time.Now()}
	s.mu.Unlock()

	return id, c
}

// Get resolves a session's cart, refreshing its idle timer. A missing or
// expired session returns false.
func (s *Sessions) Get(id string) (*Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.m[id]
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && time.Since(e.lastSeen) > s.ttl {
		delete(s.m, id)
		return nil, false
	}

	e.lastSeen = time.Now()
	return e.cart, true
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

func (s *Sessions) Close() {
	close(s.stop)
	<-s.done
}

func (s *Sessions) sweeper() {
	defer close(s.done)

	t := time.NewTicker(sweepInterval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			s.sweep(time.Now())
		case <-s.stop:
			return
		}
	}
}

func (s *Sessions) sweep(now time.Time) {
	if s.ttl <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.m {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.m, id)
		}
	}
}
