// Package session centralizes session-change notification. Every screen
// used to hold its own auth subscription; here one process-wide store fans
// events out to any number of subscribers.
package session

import "sync"

// Event types delivered to subscribers.
const (
	SignedIn  = "signed_in"
	SignedOut = "signed_out"
)

// Event describes a session change: the new identity on sign-in, the
// departing one on sign-out.
type Event struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Store broadcasts session events to subscribers.
type Store struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{subs: make(map[int]chan Event)}
}

// Subscribe registers a listener and returns its channel plus a cancel
// function. The cancel function must be called when the listener goes away;
// it closes the channel.
func (s *Store) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan Event, 8)
	s.subs[id] = ch
	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber. A subscriber whose buffer
// is full misses the event rather than blocking the publisher.
func (s *Store) Publish(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
