package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"github.com/promptform/promptform/pkg/model"
)

// ErrNotFound reports a session id that is unknown or expired.
var ErrNotFound = errors.New("session: not found")

const (
	// DefaultTTL is how long an idle session survives before eviction.
	DefaultTTL = 30 * time.Minute

	cleanupInterval = 5 * time.Minute
)

// Store keeps live sessions in an expiring in-memory cache. Each Create
// mints a fresh UUID; lookups after the TTL return ErrNotFound.
type Store struct {
	cache *cache.Cache
}

// NewStore builds a store with the given idle TTL. A non-positive ttl falls
// back to DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{cache: cache.New(ttl, cleanupInterval)}
}

// Create opens a session for the spec and returns it.
func (s *Store) Create(spec model.FormSpec) (*Session, error) {
	sess, err := New(uuid.NewString(), spec)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(sess.ID(), sess)
	return sess, nil
}

// Get returns the live session for id.
func (s *Store) Get(id string) (*Session, error) {
	value, ok := s.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	sess, ok := value.(*Session)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	// Writing the entry back slides its expiry, so active sessions stay
	// alive past the idle TTL.
	s.cache.SetDefault(id, sess)
	return sess, nil
}

// Delete drops the session immediately.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Len reports how many sessions are currently live.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
