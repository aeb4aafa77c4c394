package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Store keeps one Display per browser session. Each access extends the
// session; sessions idle for longer than the TTL expire.
type Store struct {
	sessions *cache.Cache
}

// NewStore creates an empty store. A ttl <= 0 keeps sessions forever.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		return &Store{sessions: cache.New(cache.NoExpiration, 0)}
	}
	return &Store{sessions: cache.New(ttl, ttl)}
}

// Get returns the display for id. Unknown, expired or malformed ids get a
// fresh session; the returned id is the one to hand back to the client.
func (s *Store) Get(id string) (string, *Display) {
	if _, err := uuid.Parse(id); err == nil {
		if v, ok := s.sessions.Get(id); ok {
			d := v.(*Display)
			s.sessions.Set(id, d, cache.DefaultExpiration)
			return id, d
		}
	}

	id = uuid.NewString()
	d := NewDisplay()
	s.sessions.Set(id, d, cache.DefaultExpiration)
	return id, d
}

// Len returns the number of sessions held, including expired ones the
// janitor has not yet removed.
func (s *Store) Len() int {
	return s.sessions.ItemCount()
}
