// Package idgen assigns integer identifiers to new records.
package idgen

import "sync"

// Sequence hands out strictly increasing ids. An id, once issued or observed,
// is never handed out again, even if the record holding it is deleted.
type Sequence struct {
	mu   sync.Mutex
	last int64
}

// NewSequence returns a sequence whose first id is above every id in seen.
func NewSequence(seen ...int64) *Sequence {
	s := &Sequence{}
	for _, id := range seen {
		s.Observe(id)
	}
	return s
}

// Next returns the next id. An empty sequence starts at 1.
func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	return s.last
}

// Observe raises the floor so that Next never returns an id <= id.
func (s *Sequence) Observe(id int64) {
	s.mu.Lock()
	if id > s.last {
		s.last = id
	}
	s.mu.Unlock()
}

// Last returns the most recently issued or observed id, 0 if none.
func (s *Sequence) Last() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
