// Package state holds the single-slot reactive session state: the current
// user profile or nil, observable by any number of subscribers. The session
// manager is the only writer; publications fan out FIFO per subscriber.
package state

import "sync"

// Profile is the published identity snapshot. The slot owns its value;
// publishers hand over a copy and subscribers receive copies.
type Profile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	RoleID   int    `json:"role_id"`
}

type subscriber struct {
	ch   chan *Profile
	done chan struct{}
}

// Slot is the process-wide session state container. The zero value is not
// usable; construct with New.
type Slot struct {
	mu      sync.Mutex
	current *Profile
	nextID  int
	subs    map[int]*subscriber
}

// New creates an empty slot (no signed-in user).
func New() *Slot {
	return &Slot{subs: make(map[int]*subscriber)}
}

// Current returns the last published profile, or nil when signed out.
func (s *Slot) Current() *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProfile(s.current)
}

// Publish replaces the slot value and notifies every subscriber. Passing
// nil signals "signed out". The single-writer discipline of the session
// manager keeps publications FIFO per subscriber; a canceled subscriber is
// skipped rather than blocked on.
func (s *Slot) Publish(p *Profile) {
	s.mu.Lock()
	s.current = cloneProfile(p)
	targets := make([]*subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		targets = append(targets, sub)
	}
	s.mu.Unlock()

	for _, sub := range targets {
		select {
		case sub.ch <- cloneProfile(p):
		case <-sub.done:
		}
	}
}

// Subscribe registers an observer. The returned channel receives every
// subsequent publication in order. cancel unregisters the observer; the
// channel is never closed, so readers must select on their own lifetime
// signal rather than ranging until close.
func (s *Slot) Subscribe(buffer int) (<-chan *Profile, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	sub := &subscriber{
		ch:   make(chan *Profile, buffer),
		done: make(chan struct{}),
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = sub
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(sub.done)
		})
	}
	return sub.ch, cancel
}

func cloneProfile(p *Profile) *Profile {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}
